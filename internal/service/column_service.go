package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/RawanAyoub/TaskTaco-sub000/internal/database"
	"github.com/RawanAyoub/TaskTaco-sub000/internal/domain"
	"github.com/RawanAyoub/TaskTaco-sub000/internal/dto"
	"github.com/RawanAyoub/TaskTaco-sub000/internal/metrics"
	"github.com/RawanAyoub/TaskTaco-sub000/internal/ordering"
	"github.com/RawanAyoub/TaskTaco-sub000/internal/realtime"
	"github.com/RawanAyoub/TaskTaco-sub000/internal/repository"
	"github.com/RawanAyoub/TaskTaco-sub000/internal/response"
)

// ColumnService defines the interface for column business logic
type ColumnService interface {
	// CreateColumn inserts a column at req.Order, or appends it when Order is nil
	CreateColumn(ctx context.Context, userID, boardID uuid.UUID, req *dto.CreateColumnRequest) (*dto.ColumnResponse, error)
	ListColumns(ctx context.Context, userID, boardID uuid.UUID) ([]*dto.ColumnResponse, error)
	UpdateColumn(ctx context.Context, userID, columnID uuid.UUID, req *dto.UpdateColumnRequest) (*dto.ColumnResponse, error)
	MoveColumn(ctx context.Context, userID, columnID uuid.UUID, order int) (*dto.ColumnResponse, error)
	// DeleteColumn removes the column with its tasks and closes the gap
	DeleteColumn(ctx context.Context, userID, columnID uuid.UUID) error
}

type columnServiceImpl struct {
	tx         database.Transactor
	columnRepo repository.ColumnRepository
	taskRepo   repository.TaskRepository
	owner      ownership
	events     EventPublisher
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

// NewColumnService creates a new instance of ColumnService
func NewColumnService(
	tx database.Transactor,
	boardRepo repository.BoardRepository,
	columnRepo repository.ColumnRepository,
	taskRepo repository.TaskRepository,
	events EventPublisher,
	m *metrics.Metrics,
	logger *zap.Logger,
) ColumnService {
	return &columnServiceImpl{
		tx:         tx,
		columnRepo: columnRepo,
		taskRepo:   taskRepo,
		owner:      ownership{boardRepo: boardRepo, columnRepo: columnRepo, taskRepo: taskRepo},
		events:     events,
		metrics:    m,
		logger:     logger,
	}
}

func sameColumn(a, b *domain.Column) bool { return a.ID == b.ID }

func duplicateNameError(name string) error {
	return response.NewAppError(response.ErrCodeDuplicateName, "A column with this name already exists on the board", name)
}

// ensureUniqueName fails with DUPLICATE_NAME when another column of the board
// already uses name
func (s *columnServiceImpl) ensureUniqueName(ctx context.Context, boardID uuid.UUID, name string, excludeID uuid.UUID) error {
	_, err := s.columnRepo.FindByBoardAndName(ctx, boardID, name, excludeID)
	if err == nil {
		return duplicateNameError(name)
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return response.NewInternalError("Failed to check column name", err)
}

func (s *columnServiceImpl) CreateColumn(ctx context.Context, userID, boardID uuid.UUID, req *dto.CreateColumnRequest) (*dto.ColumnResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, response.NewValidationError("Column name is required", "")
	}

	column := &domain.Column{BoardID: boardID, Name: name}
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.owner.board(ctx, userID, boardID); err != nil {
			return err
		}
		if err := s.ensureUniqueName(ctx, boardID, name, uuid.Nil); err != nil {
			return err
		}

		siblings, err := s.columnRepo.LockByBoardID(ctx, boardID)
		if err != nil {
			return response.NewInternalError("Failed to fetch columns", err)
		}

		target := len(siblings)
		if req.Order != nil {
			target = *req.Order
		}
		_, changed := ordering.Insert(siblings, column, target)

		shifted := make([]*domain.Column, 0, len(changed))
		for _, c := range changed {
			if c != column {
				shifted = append(shifted, c)
			}
		}
		if err := s.columnRepo.UpdateOrders(ctx, shifted); err != nil {
			return response.NewInternalError("Failed to reorder columns", err)
		}
		if err := s.columnRepo.Create(ctx, column); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return duplicateNameError(name)
			}
			return response.NewInternalError("Failed to create column", err)
		}
		return nil
	})
	if err != nil {
		return nil, internalError(err, "Failed to create column")
	}

	if s.metrics != nil {
		s.metrics.IncrementColumnCreated()
	}
	resp := toColumnResponse(column)
	publish(s.events, s.logger, realtime.NewEvent(realtime.EventColumnCreated, boardID, column.ID, userID, resp))
	return resp, nil
}

func (s *columnServiceImpl) ListColumns(ctx context.Context, userID, boardID uuid.UUID) ([]*dto.ColumnResponse, error) {
	if _, err := s.owner.board(ctx, userID, boardID); err != nil {
		return nil, err
	}

	columns, err := s.columnRepo.FindByBoardID(ctx, boardID)
	if err != nil {
		return nil, response.NewInternalError("Failed to fetch columns", err)
	}

	responses := make([]*dto.ColumnResponse, len(columns))
	for i, c := range columns {
		responses[i] = toColumnResponse(c)
	}
	return responses, nil
}

// UpdateColumn renames the column when the name changed and moves it when the
// order changed. Both happen in the same transaction.
func (s *columnServiceImpl) UpdateColumn(ctx context.Context, userID, columnID uuid.UUID, req *dto.UpdateColumnRequest) (*dto.ColumnResponse, error) {
	var name string
	if req.Name != nil {
		name = strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, response.NewValidationError("Column name is required", "")
		}
	}

	var column *domain.Column
	moved := false
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		column, _, err = s.owner.column(ctx, userID, columnID)
		if err != nil {
			return err
		}

		if req.Name != nil && name != column.Name {
			if err := s.ensureUniqueName(ctx, column.BoardID, name, column.ID); err != nil {
				return err
			}
			if err := s.columnRepo.UpdateName(ctx, column.ID, name); err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return duplicateNameError(name)
				}
				return response.NewInternalError("Failed to rename column", err)
			}
			column.Name = name
		}

		if req.Order != nil && *req.Order != column.Order {
			if column, err = s.move(ctx, column, *req.Order); err != nil {
				return err
			}
			moved = true
		}
		return nil
	})
	if err != nil {
		return nil, internalError(err, "Failed to update column")
	}

	resp := toColumnResponse(column)
	eventType := realtime.EventColumnUpdated
	if moved {
		eventType = realtime.EventColumnMoved
	}
	publish(s.events, s.logger, realtime.NewEvent(eventType, column.BoardID, column.ID, userID, resp))
	return resp, nil
}

func (s *columnServiceImpl) MoveColumn(ctx context.Context, userID, columnID uuid.UUID, order int) (*dto.ColumnResponse, error) {
	var column *domain.Column
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		column, _, err = s.owner.column(ctx, userID, columnID)
		if err != nil {
			return err
		}
		column, err = s.move(ctx, column, order)
		return err
	})
	if err != nil {
		return nil, internalError(err, "Failed to move column")
	}

	resp := toColumnResponse(column)
	publish(s.events, s.logger, realtime.NewEvent(realtime.EventColumnMoved, column.BoardID, column.ID, userID, resp))
	return resp, nil
}

// move repositions column within its board. Must run inside a transaction.
func (s *columnServiceImpl) move(ctx context.Context, column *domain.Column, target int) (*domain.Column, error) {
	siblings, err := s.columnRepo.LockByBoardID(ctx, column.BoardID)
	if err != nil {
		return nil, response.NewInternalError("Failed to fetch columns", err)
	}

	// work on the locked copy so the written orders match what was read
	var item *domain.Column
	for _, c := range siblings {
		if c.ID == column.ID {
			item = c
			break
		}
	}
	if item == nil {
		return nil, response.NewNotFoundError("Column not found", "")
	}
	item.Name = column.Name

	_, changed := ordering.Move(siblings, item, target, sameColumn)
	if err := s.columnRepo.UpdateOrders(ctx, changed); err != nil {
		return nil, response.NewInternalError("Failed to reorder columns", err)
	}

	if s.metrics != nil {
		s.metrics.RecordReorder(metrics.ReorderColumnMove)
	}
	return item, nil
}

func (s *columnServiceImpl) DeleteColumn(ctx context.Context, userID, columnID uuid.UUID) error {
	var column *domain.Column
	var removedTasks int64
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		column, _, err = s.owner.column(ctx, userID, columnID)
		if err != nil {
			return err
		}

		if removedTasks, err = s.taskRepo.DeleteByColumnID(ctx, column.ID); err != nil {
			return response.NewInternalError("Failed to delete tasks", err)
		}
		if err := s.columnRepo.Delete(ctx, column.ID); err != nil {
			return lookupError(err, "Column not found", "Failed to delete column")
		}

		remaining, err := s.columnRepo.LockByBoardID(ctx, column.BoardID)
		if err != nil {
			return response.NewInternalError("Failed to fetch columns", err)
		}
		_, changed := ordering.Compact(remaining)
		if err := s.columnRepo.UpdateOrders(ctx, changed); err != nil {
			return response.NewInternalError("Failed to reorder columns", err)
		}
		if s.metrics != nil && len(changed) > 0 {
			s.metrics.RecordReorder(metrics.ReorderCompact)
		}
		return nil
	})
	if err != nil {
		return internalError(err, "Failed to delete column")
	}

	s.logger.Debug("Column deleted",
		zap.String("column_id", column.ID.String()),
		zap.Int64("tasks_deleted", removedTasks))
	publish(s.events, s.logger, realtime.NewEvent(realtime.EventColumnDeleted, column.BoardID, column.ID, userID, nil))
	return nil
}
