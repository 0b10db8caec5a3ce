package service

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/RawanAyoub/TaskTaco-sub000/internal/database"
	"github.com/RawanAyoub/TaskTaco-sub000/internal/domain"
	"github.com/RawanAyoub/TaskTaco-sub000/internal/dto"
	"github.com/RawanAyoub/TaskTaco-sub000/internal/repository"
	"github.com/RawanAyoub/TaskTaco-sub000/internal/response"
)

// MaxProfileImageSize is the largest accepted profile picture in bytes
const MaxProfileImageSize = 5 << 20

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// UserService manages the signed-in user's profile, settings and picture
type UserService interface {
	GetMe(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
	// DeleteMe removes the account with its boards, settings and pictures
	DeleteMe(ctx context.Context, userID uuid.UUID) error

	GetSettings(ctx context.Context, userID uuid.UUID) (*dto.SettingsResponse, error)
	UpdateSettings(ctx context.Context, userID uuid.UUID, req *dto.UpdateSettingsRequest) (*dto.SettingsResponse, error)

	CreateProfileImageUpload(ctx context.Context, userID uuid.UUID, req *dto.PresignedURLRequest) (*dto.PresignedURLResponse, error)
	ConfirmProfileImage(ctx context.Context, userID, attachmentID uuid.UUID) (*dto.UserResponse, error)
	UploadProfileImage(ctx context.Context, userID uuid.UUID, fileName, contentType string, size int64, file io.Reader) (*dto.UserResponse, error)
	DeleteProfileImage(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
}

type userServiceImpl struct {
	tx             database.Transactor
	userRepo       repository.UserRepository
	settingsRepo   repository.SettingsRepository
	boardRepo      repository.BoardRepository
	columnRepo     repository.ColumnRepository
	taskRepo       repository.TaskRepository
	attachmentRepo repository.AttachmentRepository
	s3Client       S3Client
	uploadTTL      time.Duration
	logger         *zap.Logger
}

// NewUserService creates a new UserService. A nil s3Client disables the
// profile picture operations.
func NewUserService(
	tx database.Transactor,
	userRepo repository.UserRepository,
	settingsRepo repository.SettingsRepository,
	boardRepo repository.BoardRepository,
	columnRepo repository.ColumnRepository,
	taskRepo repository.TaskRepository,
	attachmentRepo repository.AttachmentRepository,
	s3Client S3Client,
	uploadTTL time.Duration,
	logger *zap.Logger,
) UserService {
	if uploadTTL <= 0 {
		uploadTTL = time.Hour
	}
	return &userServiceImpl{
		tx:             tx,
		userRepo:       userRepo,
		settingsRepo:   settingsRepo,
		boardRepo:      boardRepo,
		columnRepo:     columnRepo,
		taskRepo:       taskRepo,
		attachmentRepo: attachmentRepo,
		s3Client:       s3Client,
		uploadTTL:      uploadTTL,
		logger:         logger,
	}
}

func (s *userServiceImpl) findUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, lookupError(err, "User not found", "Failed to fetch user")
	}
	return user, nil
}

func (s *userServiceImpl) GetMe(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toUserResponse(user, s.s3Client), nil
}

func (s *userServiceImpl) UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.DisplayName != nil {
		name := strings.TrimSpace(*req.DisplayName)
		if name == "" {
			return nil, response.NewValidationError("Display name cannot be empty", "")
		}
		user.DisplayName = name
	}
	if req.Bio != nil {
		user.Bio = strings.TrimSpace(*req.Bio)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, response.NewInternalError("Failed to update profile", err)
	}
	return toUserResponse(user, s.s3Client), nil
}

func (s *userServiceImpl) DeleteMe(ctx context.Context, userID uuid.UUID) error {
	var objectKeys []string
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.findUser(ctx, userID); err != nil {
			return err
		}

		boardIDs, err := s.boardRepo.FindIDsByUserID(ctx, userID)
		if err != nil {
			return response.NewInternalError("Failed to fetch boards", err)
		}
		columnIDs, err := s.columnRepo.FindIDsByBoardIDs(ctx, boardIDs)
		if err != nil {
			return response.NewInternalError("Failed to fetch columns", err)
		}
		if err := s.taskRepo.DeleteByColumnIDs(ctx, columnIDs); err != nil {
			return response.NewInternalError("Failed to delete tasks", err)
		}
		if err := s.columnRepo.DeleteByBoardIDs(ctx, boardIDs); err != nil {
			return response.NewInternalError("Failed to delete columns", err)
		}
		for _, id := range boardIDs {
			if err := s.boardRepo.Delete(ctx, id); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return response.NewInternalError("Failed to delete board", err)
			}
		}

		attachments, err := s.attachmentRepo.FindByOwnerID(ctx, userID)
		if err != nil {
			return response.NewInternalError("Failed to fetch attachments", err)
		}
		ids := make([]uuid.UUID, len(attachments))
		for i, a := range attachments {
			ids[i] = a.ID
			objectKeys = append(objectKeys, a.FileKey)
		}
		if err := s.attachmentRepo.DeleteBatch(ctx, ids); err != nil {
			return response.NewInternalError("Failed to delete attachments", err)
		}

		if err := s.settingsRepo.DeleteByUserID(ctx, userID); err != nil {
			return response.NewInternalError("Failed to delete settings", err)
		}
		if err := s.userRepo.Delete(ctx, userID); err != nil {
			return lookupError(err, "User not found", "Failed to delete user")
		}
		return nil
	})
	if err != nil {
		return internalError(err, "Failed to delete account")
	}

	s.deleteObjects(ctx, objectKeys...)
	s.logger.Info("User deleted", zap.String("user_id", userID.String()))
	return nil
}

// GetSettings returns stored settings, or the defaults when none were saved
func (s *userServiceImpl) GetSettings(ctx context.Context, userID uuid.UUID) (*dto.SettingsResponse, error) {
	settings, err := s.loadSettings(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toSettingsResponse(settings), nil
}

func (s *userServiceImpl) loadSettings(ctx context.Context, userID uuid.UUID) (*domain.UserSettings, error) {
	settings, err := s.settingsRepo.FindByUserID(ctx, userID)
	if err == nil {
		return settings, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.DefaultSettings(userID), nil
	}
	return nil, response.NewInternalError("Failed to fetch settings", err)
}

func (s *userServiceImpl) UpdateSettings(ctx context.Context, userID uuid.UUID, req *dto.UpdateSettingsRequest) (*dto.SettingsResponse, error) {
	settings, err := s.loadSettings(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Theme != nil {
		theme := domain.Theme(*req.Theme)
		if !theme.IsValid() {
			return nil, response.NewValidationError("Invalid theme", *req.Theme)
		}
		settings.Theme = theme
	}
	if req.AccentColor != nil {
		settings.AccentColor = strings.ToLower(*req.AccentColor)
	}
	if req.CompactCards != nil {
		settings.CompactCards = *req.CompactCards
	}

	if err := s.settingsRepo.Save(ctx, settings); err != nil {
		return nil, response.NewInternalError("Failed to save settings", err)
	}
	return toSettingsResponse(settings), nil
}

func (s *userServiceImpl) requireStorage() error {
	if s.s3Client == nil {
		return response.NewAppError(response.ErrCodeServiceUnavailable, "File storage is not configured", "")
	}
	return nil
}

func validateImage(contentType string, size int64) error {
	if !allowedImageTypes[strings.ToLower(contentType)] {
		return response.NewValidationError("Unsupported image type", contentType)
	}
	if size <= 0 || size > MaxProfileImageSize {
		return response.NewValidationError("Image must be between 1 byte and 5 MiB", "")
	}
	return nil
}

// CreateProfileImageUpload issues a presigned PUT URL and records a TEMP
// attachment that expires unless confirmed
func (s *userServiceImpl) CreateProfileImageUpload(ctx context.Context, userID uuid.UUID, req *dto.PresignedURLRequest) (*dto.PresignedURLResponse, error) {
	if err := s.requireStorage(); err != nil {
		return nil, err
	}
	if err := validateImage(req.ContentType, req.FileSize); err != nil {
		return nil, err
	}
	if _, err := s.findUser(ctx, userID); err != nil {
		return nil, err
	}

	uploadURL, fileKey, err := s.s3Client.GeneratePresignedURL(ctx, userID, req.FileName, req.ContentType)
	if err != nil {
		return nil, response.NewInternalError("Failed to generate upload URL", err)
	}

	expiresAt := time.Now().UTC().Add(s.uploadTTL)
	attachment := &domain.Attachment{
		OwnerID:     userID,
		Status:      domain.AttachmentStatusTemp,
		FileName:    filepath.Base(req.FileName),
		FileKey:     fileKey,
		FileSize:    req.FileSize,
		ContentType: strings.ToLower(req.ContentType),
		ExpiresAt:   &expiresAt,
	}
	if err := s.attachmentRepo.Create(ctx, attachment); err != nil {
		return nil, response.NewInternalError("Failed to record upload", err)
	}

	return &dto.PresignedURLResponse{
		AttachmentID: attachment.ID,
		UploadURL:    uploadURL,
		FileKey:      fileKey,
		ExpiresAt:    expiresAt,
	}, nil
}

func (s *userServiceImpl) ConfirmProfileImage(ctx context.Context, userID, attachmentID uuid.UUID) (*dto.UserResponse, error) {
	if err := s.requireStorage(); err != nil {
		return nil, err
	}

	var user *domain.User
	var previous []string
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		if user, err = s.findUser(ctx, userID); err != nil {
			return err
		}

		attachment, err := s.attachmentRepo.FindByID(ctx, attachmentID)
		if err != nil {
			return lookupError(err, "Upload not found", "Failed to fetch upload")
		}
		if attachment.OwnerID != userID {
			return response.NewNotFoundError("Upload not found", "")
		}
		if attachment.Status != domain.AttachmentStatusTemp {
			return response.NewValidationError("Upload is already confirmed", "")
		}
		if attachment.ExpiresAt != nil && attachment.ExpiresAt.Before(time.Now().UTC()) {
			return response.NewValidationError("Upload has expired", "")
		}

		if err := s.attachmentRepo.Confirm(ctx, attachment.ID); err != nil {
			return lookupError(err, "Upload not found", "Failed to confirm upload")
		}
		if previous, err = s.replaceProfileImage(ctx, user, attachment); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, internalError(err, "Failed to confirm profile image")
	}

	s.deleteObjects(ctx, previous...)
	return toUserResponse(user, s.s3Client), nil
}

// UploadProfileImage streams the file to storage and sets it as the picture
func (s *userServiceImpl) UploadProfileImage(ctx context.Context, userID uuid.UUID, fileName, contentType string, size int64, file io.Reader) (*dto.UserResponse, error) {
	if err := s.requireStorage(); err != nil {
		return nil, err
	}
	if err := validateImage(contentType, size); err != nil {
		return nil, err
	}
	if _, err := s.findUser(ctx, userID); err != nil {
		return nil, err
	}

	fileKey, err := s.s3Client.GenerateFileKey(userID, filepath.Ext(fileName))
	if err != nil {
		return nil, response.NewInternalError("Failed to generate file key", err)
	}
	if _, err := s.s3Client.UploadFile(ctx, fileKey, io.LimitReader(file, MaxProfileImageSize), contentType); err != nil {
		return nil, response.NewInternalError("Failed to upload file", err)
	}

	var user *domain.User
	var previous []string
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		if user, err = s.findUser(ctx, userID); err != nil {
			return err
		}
		attachment := &domain.Attachment{
			OwnerID:     userID,
			Status:      domain.AttachmentStatusConfirmed,
			FileName:    filepath.Base(fileName),
			FileKey:     fileKey,
			FileSize:    size,
			ContentType: strings.ToLower(contentType),
		}
		if err := s.attachmentRepo.Create(ctx, attachment); err != nil {
			return response.NewInternalError("Failed to record upload", err)
		}
		previous, err = s.replaceProfileImage(ctx, user, attachment)
		return err
	})
	if err != nil {
		// the object is orphaned without its row
		s.deleteObjects(ctx, fileKey)
		return nil, internalError(err, "Failed to set profile image")
	}

	s.deleteObjects(ctx, previous...)
	return toUserResponse(user, s.s3Client), nil
}

func (s *userServiceImpl) DeleteProfileImage(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	if err := s.requireStorage(); err != nil {
		return nil, err
	}

	var user *domain.User
	var previous []string
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		if user, err = s.findUser(ctx, userID); err != nil {
			return err
		}
		previous, err = s.replaceProfileImage(ctx, user, nil)
		return err
	})
	if err != nil {
		return nil, internalError(err, "Failed to delete profile image")
	}

	s.deleteObjects(ctx, previous...)
	return toUserResponse(user, s.s3Client), nil
}

// replaceProfileImage points the user at next (nil clears the picture) and
// deletes every other confirmed attachment row of the user. It returns the
// object keys that are no longer referenced.
func (s *userServiceImpl) replaceProfileImage(ctx context.Context, user *domain.User, next *domain.Attachment) ([]string, error) {
	attachments, err := s.attachmentRepo.FindByOwnerID(ctx, user.ID)
	if err != nil {
		return nil, response.NewInternalError("Failed to fetch attachments", err)
	}

	var staleIDs []uuid.UUID
	var staleKeys []string
	for _, a := range attachments {
		if a.Status != domain.AttachmentStatusConfirmed || (next != nil && a.ID == next.ID) {
			continue
		}
		staleIDs = append(staleIDs, a.ID)
		staleKeys = append(staleKeys, a.FileKey)
	}
	if err := s.attachmentRepo.DeleteBatch(ctx, staleIDs); err != nil {
		return nil, response.NewInternalError("Failed to delete previous image", err)
	}

	if next != nil {
		key := next.FileKey
		user.ProfileImageKey = &key
	} else {
		user.ProfileImageKey = nil
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, response.NewInternalError("Failed to update profile image", err)
	}
	return staleKeys, nil
}

// deleteObjects removes objects after the database change committed. Failures
// are logged; the cleanup job does not see confirmed rows, so they are left behind.
func (s *userServiceImpl) deleteObjects(ctx context.Context, keys ...string) {
	if s.s3Client == nil {
		return
	}
	for _, key := range keys {
		if key == "" {
			continue
		}
		if err := s.s3Client.DeleteFile(ctx, key); err != nil {
			s.logger.Warn("Failed to delete object from storage",
				zap.String("file_key", key),
				zap.Error(err))
		}
	}
}
