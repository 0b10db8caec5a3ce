package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/RawanAyoub/TaskTaco-sub000/internal/database"
	"github.com/RawanAyoub/TaskTaco-sub000/internal/domain"
	"github.com/RawanAyoub/TaskTaco-sub000/internal/dto"
	"github.com/RawanAyoub/TaskTaco-sub000/internal/metrics"
	"github.com/RawanAyoub/TaskTaco-sub000/internal/ordering"
	"github.com/RawanAyoub/TaskTaco-sub000/internal/realtime"
	"github.com/RawanAyoub/TaskTaco-sub000/internal/repository"
	"github.com/RawanAyoub/TaskTaco-sub000/internal/response"
)

// BoardService defines the interface for board business logic
type BoardService interface {
	CreateBoard(ctx context.Context, userID uuid.UUID, req *dto.CreateBoardRequest) (*dto.BoardResponse, error)
	ListBoards(ctx context.Context, userID uuid.UUID) ([]*dto.BoardResponse, error)
	GetBoard(ctx context.Context, userID, boardID uuid.UUID) (*dto.BoardDetailResponse, error)
	UpdateBoard(ctx context.Context, userID, boardID uuid.UUID, req *dto.UpdateBoardRequest) (*dto.BoardResponse, error)
	DeleteBoard(ctx context.Context, userID, boardID uuid.UUID) error
}

// boardServiceImpl is the implementation of BoardService
type boardServiceImpl struct {
	tx         database.Transactor
	boardRepo  repository.BoardRepository
	columnRepo repository.ColumnRepository
	taskRepo   repository.TaskRepository
	owner      ownership
	events     EventPublisher
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

// NewBoardService creates a new instance of BoardService
func NewBoardService(
	tx database.Transactor,
	boardRepo repository.BoardRepository,
	columnRepo repository.ColumnRepository,
	taskRepo repository.TaskRepository,
	events EventPublisher,
	m *metrics.Metrics,
	logger *zap.Logger,
) BoardService {
	return &boardServiceImpl{
		tx:         tx,
		boardRepo:  boardRepo,
		columnRepo: columnRepo,
		taskRepo:   taskRepo,
		owner:      ownership{boardRepo: boardRepo, columnRepo: columnRepo, taskRepo: taskRepo},
		events:     events,
		metrics:    m,
		logger:     logger,
	}
}

// CreateBoard creates an empty board for the user
func (s *boardServiceImpl) CreateBoard(ctx context.Context, userID uuid.UUID, req *dto.CreateBoardRequest) (*dto.BoardResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, response.NewValidationError("Board name is required", "")
	}

	board := &domain.Board{UserID: userID, Name: name}
	if err := s.boardRepo.Create(ctx, board); err != nil {
		return nil, response.NewInternalError("Failed to create board", err)
	}

	if s.metrics != nil {
		s.metrics.IncrementBoardCreated()
	}
	s.logger.Debug("Board created", zap.String("board_id", board.ID.String()), zap.String("user_id", userID.String()))

	return toBoardResponse(board), nil
}

// ListBoards returns the user's boards, oldest first
func (s *boardServiceImpl) ListBoards(ctx context.Context, userID uuid.UUID) ([]*dto.BoardResponse, error) {
	boards, err := s.boardRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, response.NewInternalError("Failed to fetch boards", err)
	}

	responses := make([]*dto.BoardResponse, len(boards))
	for i, board := range boards {
		responses[i] = toBoardResponse(board)
	}
	return responses, nil
}

// GetBoard returns the board with its columns and tasks, each sorted by order
func (s *boardServiceImpl) GetBoard(ctx context.Context, userID, boardID uuid.UUID) (*dto.BoardDetailResponse, error) {
	board, err := s.boardRepo.FindWithColumnsAndTasks(ctx, boardID)
	if err != nil {
		return nil, lookupError(err, "Board not found", "Failed to fetch board")
	}
	if board.UserID != userID {
		return nil, response.NewNotFoundError("Board not found", "")
	}

	columns := make([]*domain.Column, len(board.Columns))
	for i := range board.Columns {
		columns[i] = &board.Columns[i]
	}
	ordering.Sort(columns)

	detail := &dto.BoardDetailResponse{
		BoardResponse: *toBoardResponse(board),
		Columns:       make([]dto.ColumnDetailResponse, 0, len(columns)),
	}
	for _, column := range columns {
		tasks := make([]*domain.Task, len(column.Tasks))
		for i := range column.Tasks {
			tasks[i] = &column.Tasks[i]
		}
		ordering.Sort(tasks)

		cd := dto.ColumnDetailResponse{
			ColumnResponse: *toColumnResponse(column),
			Tasks:          make([]dto.TaskResponse, 0, len(tasks)),
		}
		for _, task := range tasks {
			cd.Tasks = append(cd.Tasks, *toTaskResponse(task))
		}
		detail.Columns = append(detail.Columns, cd)
	}

	return detail, nil
}

// UpdateBoard renames a board
func (s *boardServiceImpl) UpdateBoard(ctx context.Context, userID, boardID uuid.UUID, req *dto.UpdateBoardRequest) (*dto.BoardResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, response.NewValidationError("Board name is required", "")
	}

	board, err := s.owner.board(ctx, userID, boardID)
	if err != nil {
		return nil, err
	}

	board.Name = name
	if err := s.boardRepo.Update(ctx, board); err != nil {
		return nil, response.NewInternalError("Failed to update board", err)
	}

	resp := toBoardResponse(board)
	publish(s.events, s.logger, realtime.NewEvent(realtime.EventBoardUpdated, board.ID, board.ID, userID, resp))
	return resp, nil
}

// DeleteBoard removes the board with all of its columns and tasks in one transaction
func (s *boardServiceImpl) DeleteBoard(ctx context.Context, userID, boardID uuid.UUID) error {
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.owner.board(ctx, userID, boardID); err != nil {
			return err
		}

		boardIDs := []uuid.UUID{boardID}
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
		if err := s.boardRepo.Delete(ctx, boardID); err != nil {
			return lookupError(err, "Board not found", "Failed to delete board")
		}
		return nil
	})
	if err != nil {
		return internalError(err, "Failed to delete board")
	}

	publish(s.events, s.logger, realtime.NewEvent(realtime.EventBoardDeleted, boardID, boardID, userID, nil))
	return nil
}
