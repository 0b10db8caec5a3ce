package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/RawanAyoub/TaskTaco-sub000/internal/domain"
)

// passthroughTransactor runs fn without a transaction
type passthroughTransactor struct{}

func (passthroughTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// MockBoardRepository is a mock implementation of BoardRepository
type MockBoardRepository struct {
	CreateFunc                  func(ctx context.Context, board *domain.Board) error
	FindByIDFunc                func(ctx context.Context, id uuid.UUID) (*domain.Board, error)
	FindByUserIDFunc            func(ctx context.Context, userID uuid.UUID) ([]*domain.Board, error)
	FindWithColumnsAndTasksFunc func(ctx context.Context, id uuid.UUID) (*domain.Board, error)
	UpdateFunc                  func(ctx context.Context, board *domain.Board) error
	DeleteFunc                  func(ctx context.Context, id uuid.UUID) error
	FindIDsByUserIDFunc         func(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

func (m *MockBoardRepository) Create(ctx context.Context, board *domain.Board) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, board)
	}
	return nil
}

func (m *MockBoardRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockBoardRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Board, error) {
	if m.FindByUserIDFunc != nil {
		return m.FindByUserIDFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockBoardRepository) FindWithColumnsAndTasks(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
	if m.FindWithColumnsAndTasksFunc != nil {
		return m.FindWithColumnsAndTasksFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockBoardRepository) Update(ctx context.Context, board *domain.Board) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, board)
	}
	return nil
}

func (m *MockBoardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockBoardRepository) FindIDsByUserID(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	if m.FindIDsByUserIDFunc != nil {
		return m.FindIDsByUserIDFunc(ctx, userID)
	}
	return nil, nil
}

// MockColumnRepository is a mock implementation of ColumnRepository
type MockColumnRepository struct {
	CreateFunc             func(ctx context.Context, column *domain.Column) error
	FindByIDFunc           func(ctx context.Context, id uuid.UUID) (*domain.Column, error)
	FindByBoardIDFunc      func(ctx context.Context, boardID uuid.UUID) ([]*domain.Column, error)
	LockByBoardIDFunc      func(ctx context.Context, boardID uuid.UUID) ([]*domain.Column, error)
	FindByBoardAndNameFunc func(ctx context.Context, boardID uuid.UUID, name string, excludeID uuid.UUID) (*domain.Column, error)
	UpdateNameFunc         func(ctx context.Context, id uuid.UUID, name string) error
	UpdateOrdersFunc       func(ctx context.Context, columns []*domain.Column) error
	DeleteFunc             func(ctx context.Context, id uuid.UUID) error
	DeleteByBoardIDsFunc   func(ctx context.Context, boardIDs []uuid.UUID) error
	FindIDsByBoardIDsFunc  func(ctx context.Context, boardIDs []uuid.UUID) ([]uuid.UUID, error)
	FindBoardIDsFunc       func(ctx context.Context) ([]uuid.UUID, error)
}

func (m *MockColumnRepository) Create(ctx context.Context, column *domain.Column) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, column)
	}
	return nil
}

func (m *MockColumnRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Column, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockColumnRepository) FindByBoardID(ctx context.Context, boardID uuid.UUID) ([]*domain.Column, error) {
	if m.FindByBoardIDFunc != nil {
		return m.FindByBoardIDFunc(ctx, boardID)
	}
	return nil, nil
}

func (m *MockColumnRepository) LockByBoardID(ctx context.Context, boardID uuid.UUID) ([]*domain.Column, error) {
	if m.LockByBoardIDFunc != nil {
		return m.LockByBoardIDFunc(ctx, boardID)
	}
	return nil, nil
}

func (m *MockColumnRepository) FindByBoardAndName(ctx context.Context, boardID uuid.UUID, name string, excludeID uuid.UUID) (*domain.Column, error) {
	if m.FindByBoardAndNameFunc != nil {
		return m.FindByBoardAndNameFunc(ctx, boardID, name, excludeID)
	}
	return nil, nil
}

func (m *MockColumnRepository) UpdateName(ctx context.Context, id uuid.UUID, name string) error {
	if m.UpdateNameFunc != nil {
		return m.UpdateNameFunc(ctx, id, name)
	}
	return nil
}

func (m *MockColumnRepository) UpdateOrders(ctx context.Context, columns []*domain.Column) error {
	if m.UpdateOrdersFunc != nil {
		return m.UpdateOrdersFunc(ctx, columns)
	}
	return nil
}

func (m *MockColumnRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockColumnRepository) DeleteByBoardIDs(ctx context.Context, boardIDs []uuid.UUID) error {
	if m.DeleteByBoardIDsFunc != nil {
		return m.DeleteByBoardIDsFunc(ctx, boardIDs)
	}
	return nil
}

func (m *MockColumnRepository) FindIDsByBoardIDs(ctx context.Context, boardIDs []uuid.UUID) ([]uuid.UUID, error) {
	if m.FindIDsByBoardIDsFunc != nil {
		return m.FindIDsByBoardIDsFunc(ctx, boardIDs)
	}
	return nil, nil
}

func (m *MockColumnRepository) FindBoardIDs(ctx context.Context) ([]uuid.UUID, error) {
	if m.FindBoardIDsFunc != nil {
		return m.FindBoardIDsFunc(ctx)
	}
	return nil, nil
}

// MockTaskRepository is a mock implementation of TaskRepository
type MockTaskRepository struct {
	CreateFunc            func(ctx context.Context, task *domain.Task) error
	FindByIDFunc          func(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	FindByColumnIDFunc    func(ctx context.Context, columnID uuid.UUID) ([]*domain.Task, error)
	LockByColumnIDFunc    func(ctx context.Context, columnID uuid.UUID) ([]*domain.Task, error)
	UpdateContentFunc     func(ctx context.Context, task *domain.Task) error
	UpdatePositionsFunc   func(ctx context.Context, tasks []*domain.Task) error
	DeleteFunc            func(ctx context.Context, id uuid.UUID) error
	DeleteByColumnIDFunc  func(ctx context.Context, columnID uuid.UUID) (int64, error)
	DeleteByColumnIDsFunc func(ctx context.Context, columnIDs []uuid.UUID) error
	FindColumnIDsFunc     func(ctx context.Context) ([]uuid.UUID, error)
}

func (m *MockTaskRepository) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, task)
	}
	return nil
}

func (m *MockTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockTaskRepository) FindByColumnID(ctx context.Context, columnID uuid.UUID) ([]*domain.Task, error) {
	if m.FindByColumnIDFunc != nil {
		return m.FindByColumnIDFunc(ctx, columnID)
	}
	return nil, nil
}

func (m *MockTaskRepository) LockByColumnID(ctx context.Context, columnID uuid.UUID) ([]*domain.Task, error) {
	if m.LockByColumnIDFunc != nil {
		return m.LockByColumnIDFunc(ctx, columnID)
	}
	return nil, nil
}

func (m *MockTaskRepository) UpdateContent(ctx context.Context, task *domain.Task) error {
	if m.UpdateContentFunc != nil {
		return m.UpdateContentFunc(ctx, task)
	}
	return nil
}

func (m *MockTaskRepository) UpdatePositions(ctx context.Context, tasks []*domain.Task) error {
	if m.UpdatePositionsFunc != nil {
		return m.UpdatePositionsFunc(ctx, tasks)
	}
	return nil
}

func (m *MockTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockTaskRepository) DeleteByColumnID(ctx context.Context, columnID uuid.UUID) (int64, error) {
	if m.DeleteByColumnIDFunc != nil {
		return m.DeleteByColumnIDFunc(ctx, columnID)
	}
	return 0, nil
}

func (m *MockTaskRepository) DeleteByColumnIDs(ctx context.Context, columnIDs []uuid.UUID) error {
	if m.DeleteByColumnIDsFunc != nil {
		return m.DeleteByColumnIDsFunc(ctx, columnIDs)
	}
	return nil
}

func (m *MockTaskRepository) FindColumnIDs(ctx context.Context) ([]uuid.UUID, error) {
	if m.FindColumnIDsFunc != nil {
		return m.FindColumnIDsFunc(ctx)
	}
	return nil, nil
}

// MockBlacklist is a mock implementation of auth.Blacklist
type MockBlacklist struct {
	RevokeFunc    func(ctx context.Context, jti string, expiresAt time.Time) error
	IsRevokedFunc func(ctx context.Context, jti string) (bool, error)
}

func (m *MockBlacklist) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	if m.RevokeFunc != nil {
		return m.RevokeFunc(ctx, jti, expiresAt)
	}
	return nil
}

func (m *MockBlacklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if m.IsRevokedFunc != nil {
		return m.IsRevokedFunc(ctx, jti)
	}
	return false, nil
}
