package handler

import (
	"context"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/RawanAyoub/TaskTaco-sub000/internal/dto"
)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// withUser stands in for the auth middleware
func withUser(userID uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextUserID, userID)
		c.Set(ContextToken, "test-token")
		c.Next()
	}
}

// MockAuthService is a mock implementation of AuthService
type MockAuthService struct {
	RegisterFunc       func(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	LoginFunc          func(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	LogoutFunc         func(ctx context.Context, tokenStr string) error
	ValidateTokenFunc  func(ctx context.Context, tokenStr string) (uuid.UUID, error)
	ChangePasswordFunc func(ctx context.Context, userID uuid.UUID, req *dto.ChangePasswordRequest) error
}

func (m *MockAuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, req)
	}
	return nil, nil
}

func (m *MockAuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, req)
	}
	return nil, nil
}

func (m *MockAuthService) Logout(ctx context.Context, tokenStr string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, tokenStr)
	}
	return nil
}

func (m *MockAuthService) ValidateToken(ctx context.Context, tokenStr string) (uuid.UUID, error) {
	if m.ValidateTokenFunc != nil {
		return m.ValidateTokenFunc(ctx, tokenStr)
	}
	return uuid.Nil, nil
}

func (m *MockAuthService) ChangePassword(ctx context.Context, userID uuid.UUID, req *dto.ChangePasswordRequest) error {
	if m.ChangePasswordFunc != nil {
		return m.ChangePasswordFunc(ctx, userID, req)
	}
	return nil
}

// MockBoardService is a mock implementation of BoardService
type MockBoardService struct {
	CreateBoardFunc func(ctx context.Context, userID uuid.UUID, req *dto.CreateBoardRequest) (*dto.BoardResponse, error)
	ListBoardsFunc  func(ctx context.Context, userID uuid.UUID) ([]*dto.BoardResponse, error)
	GetBoardFunc    func(ctx context.Context, userID, boardID uuid.UUID) (*dto.BoardDetailResponse, error)
	UpdateBoardFunc func(ctx context.Context, userID, boardID uuid.UUID, req *dto.UpdateBoardRequest) (*dto.BoardResponse, error)
	DeleteBoardFunc func(ctx context.Context, userID, boardID uuid.UUID) error
}

func (m *MockBoardService) CreateBoard(ctx context.Context, userID uuid.UUID, req *dto.CreateBoardRequest) (*dto.BoardResponse, error) {
	if m.CreateBoardFunc != nil {
		return m.CreateBoardFunc(ctx, userID, req)
	}
	return nil, nil
}

func (m *MockBoardService) ListBoards(ctx context.Context, userID uuid.UUID) ([]*dto.BoardResponse, error) {
	if m.ListBoardsFunc != nil {
		return m.ListBoardsFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockBoardService) GetBoard(ctx context.Context, userID, boardID uuid.UUID) (*dto.BoardDetailResponse, error) {
	if m.GetBoardFunc != nil {
		return m.GetBoardFunc(ctx, userID, boardID)
	}
	return nil, nil
}

func (m *MockBoardService) UpdateBoard(ctx context.Context, userID, boardID uuid.UUID, req *dto.UpdateBoardRequest) (*dto.BoardResponse, error) {
	if m.UpdateBoardFunc != nil {
		return m.UpdateBoardFunc(ctx, userID, boardID, req)
	}
	return nil, nil
}

func (m *MockBoardService) DeleteBoard(ctx context.Context, userID, boardID uuid.UUID) error {
	if m.DeleteBoardFunc != nil {
		return m.DeleteBoardFunc(ctx, userID, boardID)
	}
	return nil
}

// MockColumnService is a mock implementation of ColumnService
type MockColumnService struct {
	CreateColumnFunc func(ctx context.Context, userID, boardID uuid.UUID, req *dto.CreateColumnRequest) (*dto.ColumnResponse, error)
	ListColumnsFunc  func(ctx context.Context, userID, boardID uuid.UUID) ([]*dto.ColumnResponse, error)
	UpdateColumnFunc func(ctx context.Context, userID, columnID uuid.UUID, req *dto.UpdateColumnRequest) (*dto.ColumnResponse, error)
	MoveColumnFunc   func(ctx context.Context, userID, columnID uuid.UUID, order int) (*dto.ColumnResponse, error)
	DeleteColumnFunc func(ctx context.Context, userID, columnID uuid.UUID) error
}

func (m *MockColumnService) CreateColumn(ctx context.Context, userID, boardID uuid.UUID, req *dto.CreateColumnRequest) (*dto.ColumnResponse, error) {
	if m.CreateColumnFunc != nil {
		return m.CreateColumnFunc(ctx, userID, boardID, req)
	}
	return nil, nil
}

func (m *MockColumnService) ListColumns(ctx context.Context, userID, boardID uuid.UUID) ([]*dto.ColumnResponse, error) {
	if m.ListColumnsFunc != nil {
		return m.ListColumnsFunc(ctx, userID, boardID)
	}
	return nil, nil
}

func (m *MockColumnService) UpdateColumn(ctx context.Context, userID, columnID uuid.UUID, req *dto.UpdateColumnRequest) (*dto.ColumnResponse, error) {
	if m.UpdateColumnFunc != nil {
		return m.UpdateColumnFunc(ctx, userID, columnID, req)
	}
	return nil, nil
}

func (m *MockColumnService) MoveColumn(ctx context.Context, userID, columnID uuid.UUID, order int) (*dto.ColumnResponse, error) {
	if m.MoveColumnFunc != nil {
		return m.MoveColumnFunc(ctx, userID, columnID, order)
	}
	return nil, nil
}

func (m *MockColumnService) DeleteColumn(ctx context.Context, userID, columnID uuid.UUID) error {
	if m.DeleteColumnFunc != nil {
		return m.DeleteColumnFunc(ctx, userID, columnID)
	}
	return nil
}

// MockTaskService is a mock implementation of TaskService
type MockTaskService struct {
	CreateTaskFunc func(ctx context.Context, userID, columnID uuid.UUID, req *dto.CreateTaskRequest) (*dto.TaskResponse, error)
	ListTasksFunc  func(ctx context.Context, userID, columnID uuid.UUID) ([]*dto.TaskResponse, error)
	GetTaskFunc    func(ctx context.Context, userID, taskID uuid.UUID) (*dto.TaskResponse, error)
	UpdateTaskFunc func(ctx context.Context, userID, taskID uuid.UUID, req *dto.UpdateTaskRequest) (*dto.TaskResponse, error)
	MoveTaskFunc   func(ctx context.Context, userID, taskID uuid.UUID, req *dto.MoveTaskRequest) (*dto.TaskResponse, error)
	DeleteTaskFunc func(ctx context.Context, userID, taskID uuid.UUID) error
}

func (m *MockTaskService) CreateTask(ctx context.Context, userID, columnID uuid.UUID, req *dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	if m.CreateTaskFunc != nil {
		return m.CreateTaskFunc(ctx, userID, columnID, req)
	}
	return nil, nil
}

func (m *MockTaskService) ListTasks(ctx context.Context, userID, columnID uuid.UUID) ([]*dto.TaskResponse, error) {
	if m.ListTasksFunc != nil {
		return m.ListTasksFunc(ctx, userID, columnID)
	}
	return nil, nil
}

func (m *MockTaskService) GetTask(ctx context.Context, userID, taskID uuid.UUID) (*dto.TaskResponse, error) {
	if m.GetTaskFunc != nil {
		return m.GetTaskFunc(ctx, userID, taskID)
	}
	return nil, nil
}

func (m *MockTaskService) UpdateTask(ctx context.Context, userID, taskID uuid.UUID, req *dto.UpdateTaskRequest) (*dto.TaskResponse, error) {
	if m.UpdateTaskFunc != nil {
		return m.UpdateTaskFunc(ctx, userID, taskID, req)
	}
	return nil, nil
}

func (m *MockTaskService) MoveTask(ctx context.Context, userID, taskID uuid.UUID, req *dto.MoveTaskRequest) (*dto.TaskResponse, error) {
	if m.MoveTaskFunc != nil {
		return m.MoveTaskFunc(ctx, userID, taskID, req)
	}
	return nil, nil
}

func (m *MockTaskService) DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error {
	if m.DeleteTaskFunc != nil {
		return m.DeleteTaskFunc(ctx, userID, taskID)
	}
	return nil
}

// MockUserService is a mock implementation of UserService
type MockUserService struct {
	GetMeFunc                    func(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
	UpdateProfileFunc            func(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
	DeleteMeFunc                 func(ctx context.Context, userID uuid.UUID) error
	GetSettingsFunc              func(ctx context.Context, userID uuid.UUID) (*dto.SettingsResponse, error)
	UpdateSettingsFunc           func(ctx context.Context, userID uuid.UUID, req *dto.UpdateSettingsRequest) (*dto.SettingsResponse, error)
	CreateProfileImageUploadFunc func(ctx context.Context, userID uuid.UUID, req *dto.PresignedURLRequest) (*dto.PresignedURLResponse, error)
	ConfirmProfileImageFunc      func(ctx context.Context, userID, attachmentID uuid.UUID) (*dto.UserResponse, error)
	UploadProfileImageFunc       func(ctx context.Context, userID uuid.UUID, fileName, contentType string, size int64, file io.Reader) (*dto.UserResponse, error)
	DeleteProfileImageFunc       func(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
}

func (m *MockUserService) GetMe(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	if m.GetMeFunc != nil {
		return m.GetMeFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockUserService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	if m.UpdateProfileFunc != nil {
		return m.UpdateProfileFunc(ctx, userID, req)
	}
	return nil, nil
}

func (m *MockUserService) DeleteMe(ctx context.Context, userID uuid.UUID) error {
	if m.DeleteMeFunc != nil {
		return m.DeleteMeFunc(ctx, userID)
	}
	return nil
}

func (m *MockUserService) GetSettings(ctx context.Context, userID uuid.UUID) (*dto.SettingsResponse, error) {
	if m.GetSettingsFunc != nil {
		return m.GetSettingsFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockUserService) UpdateSettings(ctx context.Context, userID uuid.UUID, req *dto.UpdateSettingsRequest) (*dto.SettingsResponse, error) {
	if m.UpdateSettingsFunc != nil {
		return m.UpdateSettingsFunc(ctx, userID, req)
	}
	return nil, nil
}

func (m *MockUserService) CreateProfileImageUpload(ctx context.Context, userID uuid.UUID, req *dto.PresignedURLRequest) (*dto.PresignedURLResponse, error) {
	if m.CreateProfileImageUploadFunc != nil {
		return m.CreateProfileImageUploadFunc(ctx, userID, req)
	}
	return nil, nil
}

func (m *MockUserService) ConfirmProfileImage(ctx context.Context, userID, attachmentID uuid.UUID) (*dto.UserResponse, error) {
	if m.ConfirmProfileImageFunc != nil {
		return m.ConfirmProfileImageFunc(ctx, userID, attachmentID)
	}
	return nil, nil
}

func (m *MockUserService) UploadProfileImage(ctx context.Context, userID uuid.UUID, fileName, contentType string, size int64, file io.Reader) (*dto.UserResponse, error) {
	if m.UploadProfileImageFunc != nil {
		return m.UploadProfileImageFunc(ctx, userID, fileName, contentType, size, file)
	}
	return nil, nil
}

func (m *MockUserService) DeleteProfileImage(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	if m.DeleteProfileImageFunc != nil {
		return m.DeleteProfileImageFunc(ctx, userID)
	}
	return nil, nil
}
