package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/RawanAyoub/TaskTaco-sub000/internal/client"
	"github.com/RawanAyoub/TaskTaco-sub000/internal/domain"
	"github.com/RawanAyoub/TaskTaco-sub000/internal/dto"
	"github.com/RawanAyoub/TaskTaco-sub000/internal/realtime"
	"github.com/RawanAyoub/TaskTaco-sub000/internal/repository"
	"github.com/RawanAyoub/TaskTaco-sub000/internal/response"
)

// EventPublisher receives board events after a mutation commits
type EventPublisher interface {
	Publish(ev realtime.Event)
}

// S3Client is the subset of the storage client the services use
type S3Client = client.S3ClientInterface

// ownership resolves entities through their board and hides anything the
// caller does not own behind NOT_FOUND
type ownership struct {
	boardRepo  repository.BoardRepository
	columnRepo repository.ColumnRepository
	taskRepo   repository.TaskRepository
}

func (o ownership) board(ctx context.Context, userID, boardID uuid.UUID) (*domain.Board, error) {
	board, err := o.boardRepo.FindByID(ctx, boardID)
	if err != nil {
		return nil, lookupError(err, "Board not found", "Failed to fetch board")
	}
	if board.UserID != userID {
		return nil, response.NewNotFoundError("Board not found", "")
	}
	return board, nil
}

func (o ownership) column(ctx context.Context, userID, columnID uuid.UUID) (*domain.Column, *domain.Board, error) {
	column, err := o.columnRepo.FindByID(ctx, columnID)
	if err != nil {
		return nil, nil, lookupError(err, "Column not found", "Failed to fetch column")
	}
	board, err := o.board(ctx, userID, column.BoardID)
	if err != nil {
		if response.HasCode(err, response.ErrCodeNotFound) {
			return nil, nil, response.NewNotFoundError("Column not found", "")
		}
		return nil, nil, err
	}
	return column, board, nil
}

func (o ownership) task(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, *domain.Column, error) {
	task, err := o.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		return nil, nil, lookupError(err, "Task not found", "Failed to fetch task")
	}
	column, _, err := o.column(ctx, userID, task.ColumnID)
	if err != nil {
		if response.HasCode(err, response.ErrCodeNotFound) {
			return nil, nil, response.NewNotFoundError("Task not found", "")
		}
		return nil, nil, err
	}
	return task, column, nil
}

// lookupError maps a repository lookup failure to NOT_FOUND or INTERNAL_ERROR
func lookupError(err error, notFound, internal string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return response.NewNotFoundError(notFound, "")
	}
	var appErr *response.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return response.NewInternalError(internal, err)
}

// internalError passes AppErrors through and wraps anything else
func internalError(err error, message string) error {
	var appErr *response.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return response.NewInternalError(message, err)
}

func publish(p EventPublisher, logger *zap.Logger, ev realtime.Event) {
	if p == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("Failed to publish board event",
				zap.String("type", ev.Type),
				zap.String("board_id", ev.BoardID.String()),
				zap.Any("panic", r))
		}
	}()
	p.Publish(ev)
}

func toBoardResponse(b *domain.Board) *dto.BoardResponse {
	return &dto.BoardResponse{
		ID:        b.ID,
		Name:      b.Name,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func toColumnResponse(c *domain.Column) *dto.ColumnResponse {
	return &dto.ColumnResponse{
		ID:        c.ID,
		BoardID:   c.BoardID,
		Name:      c.Name,
		Order:     c.Order,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toTaskResponse(t *domain.Task) *dto.TaskResponse {
	resp := &dto.TaskResponse{
		ID:          t.ID,
		ColumnID:    t.ColumnID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Priority:    string(t.Priority),
		DueDate:     t.DueDate,
		Labels:      []dto.LabelDTO{},
		Checklist:   []dto.ChecklistItemDTO{},
		Stickers:    []string{},
		Order:       t.Order,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	// Stored JSON is written by this package; a malformed value reads as empty
	decodeJSON(t.Labels, &resp.Labels)
	decodeJSON(t.Checklist, &resp.Checklist)
	decodeJSON(t.Stickers, &resp.Stickers)
	return resp
}

func decodeJSON(raw datatypes.JSON, into interface{}) {
	if len(raw) == 0 {
		return
	}
	_ = json.Unmarshal(raw, into)
}

func encodeJSON(v interface{}) (datatypes.JSON, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, response.NewInternalError("Failed to encode task field", err)
	}
	return datatypes.JSON(b), nil
}

func toUserResponse(u *domain.User, s3 S3Client) *dto.UserResponse {
	resp := &dto.UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Bio:         u.Bio,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
	if u.ProfileImageKey != nil && *u.ProfileImageKey != "" && s3 != nil {
		url := s3.GetFileURL(*u.ProfileImageKey)
		resp.ProfileImageURL = &url
	}
	return resp
}

func toSettingsResponse(s *domain.UserSettings) *dto.SettingsResponse {
	return &dto.SettingsResponse{
		Theme:        string(s.Theme),
		AccentColor:  s.AccentColor,
		CompactCards: s.CompactCards,
	}
}
