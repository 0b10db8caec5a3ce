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

// TaskService defines the interface for task business logic
type TaskService interface {
	// CreateTask appends a task to the end of the column
	CreateTask(ctx context.Context, userID, columnID uuid.UUID, req *dto.CreateTaskRequest) (*dto.TaskResponse, error)
	ListTasks(ctx context.Context, userID, columnID uuid.UUID) ([]*dto.TaskResponse, error)
	GetTask(ctx context.Context, userID, taskID uuid.UUID) (*dto.TaskResponse, error)
	// UpdateTask changes content only; position is left alone
	UpdateTask(ctx context.Context, userID, taskID uuid.UUID, req *dto.UpdateTaskRequest) (*dto.TaskResponse, error)
	MoveTask(ctx context.Context, userID, taskID uuid.UUID, req *dto.MoveTaskRequest) (*dto.TaskResponse, error)
	DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error
}

type taskServiceImpl struct {
	tx       database.Transactor
	taskRepo repository.TaskRepository
	owner    ownership
	events   EventPublisher
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

// NewTaskService creates a new instance of TaskService
func NewTaskService(
	tx database.Transactor,
	boardRepo repository.BoardRepository,
	columnRepo repository.ColumnRepository,
	taskRepo repository.TaskRepository,
	events EventPublisher,
	m *metrics.Metrics,
	logger *zap.Logger,
) TaskService {
	return &taskServiceImpl{
		tx:       tx,
		taskRepo: taskRepo,
		owner:    ownership{boardRepo: boardRepo, columnRepo: columnRepo, taskRepo: taskRepo},
		events:   events,
		metrics:  m,
		logger:   logger,
	}
}

func sameTask(a, b *domain.Task) bool { return a.ID == b.ID }

func (s *taskServiceImpl) CreateTask(ctx context.Context, userID, columnID uuid.UUID, req *dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, response.NewValidationError("Task title is required", "")
	}
	priority := domain.PriorityMedium
	if req.Priority != "" {
		priority = domain.Priority(req.Priority)
		if !priority.IsValid() {
			return nil, response.NewValidationError("Invalid priority", req.Priority)
		}
	}

	task := &domain.Task{
		ColumnID:    columnID,
		Title:       title,
		Description: req.Description,
		Status:      strings.TrimSpace(req.Status),
		Priority:    priority,
		DueDate:     req.DueDate,
	}
	if err := setTaskCollections(task, req.Labels, req.Checklist, req.Stickers); err != nil {
		return nil, err
	}

	var boardID uuid.UUID
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		column, board, err := s.owner.column(ctx, userID, columnID)
		if err != nil {
			return err
		}
		boardID = board.ID
		if task.Status == "" {
			task.Status = column.Name
		}

		siblings, err := s.taskRepo.LockByColumnID(ctx, columnID)
		if err != nil {
			return response.NewInternalError("Failed to fetch tasks", err)
		}
		_, changed := ordering.Insert(siblings, task, len(siblings))

		// a sparse group is closed up before the new task takes the last slot
		shifted := make([]*domain.Task, 0, len(changed))
		for _, t := range changed {
			if t != task {
				shifted = append(shifted, t)
			}
		}
		if err := s.taskRepo.UpdatePositions(ctx, shifted); err != nil {
			return response.NewInternalError("Failed to reorder tasks", err)
		}
		if err := s.taskRepo.Create(ctx, task); err != nil {
			return response.NewInternalError("Failed to create task", err)
		}
		return nil
	})
	if err != nil {
		return nil, internalError(err, "Failed to create task")
	}

	if s.metrics != nil {
		s.metrics.IncrementTaskCreated()
	}
	resp := toTaskResponse(task)
	publish(s.events, s.logger, realtime.NewEvent(realtime.EventTaskCreated, boardID, task.ID, userID, resp))
	return resp, nil
}

func (s *taskServiceImpl) ListTasks(ctx context.Context, userID, columnID uuid.UUID) ([]*dto.TaskResponse, error) {
	if _, _, err := s.owner.column(ctx, userID, columnID); err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.FindByColumnID(ctx, columnID)
	if err != nil {
		return nil, response.NewInternalError("Failed to fetch tasks", err)
	}

	responses := make([]*dto.TaskResponse, len(tasks))
	for i, t := range tasks {
		responses[i] = toTaskResponse(t)
	}
	return responses, nil
}

func (s *taskServiceImpl) GetTask(ctx context.Context, userID, taskID uuid.UUID) (*dto.TaskResponse, error) {
	task, _, err := s.owner.task(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}
	return toTaskResponse(task), nil
}

func (s *taskServiceImpl) UpdateTask(ctx context.Context, userID, taskID uuid.UUID, req *dto.UpdateTaskRequest) (*dto.TaskResponse, error) {
	task, column, err := s.owner.task(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	// Apply only the fields that were sent
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, response.NewValidationError("Task title is required", "")
		}
		task.Title = title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Status != nil {
		task.Status = strings.TrimSpace(*req.Status)
	}
	if req.Priority != nil {
		p := domain.Priority(*req.Priority)
		if !p.IsValid() {
			return nil, response.NewValidationError("Invalid priority", *req.Priority)
		}
		task.Priority = p
	}
	if req.ClearDueDate {
		task.DueDate = nil
	} else if req.DueDate != nil {
		task.DueDate = req.DueDate
	}

	if req.Labels != nil || req.Checklist != nil || req.Stickers != nil {
		current := toTaskResponse(task)
		labels, checklist, stickers := current.Labels, current.Checklist, current.Stickers
		if req.Labels != nil {
			labels = *req.Labels
		}
		if req.Checklist != nil {
			checklist = *req.Checklist
		}
		if req.Stickers != nil {
			stickers = *req.Stickers
		}
		if err := setTaskCollections(task, labels, checklist, stickers); err != nil {
			return nil, err
		}
	}

	if err := s.taskRepo.UpdateContent(ctx, task); err != nil {
		return nil, response.NewInternalError("Failed to update task", err)
	}

	resp := toTaskResponse(task)
	publish(s.events, s.logger, realtime.NewEvent(realtime.EventTaskUpdated, column.BoardID, task.ID, userID, resp))
	return resp, nil
}

// MoveTask places the task at req.Order in req.ColumnID. Within one column the
// group is reordered in place; across columns the source group is compacted
// and the task is spliced into the target group.
func (s *taskServiceImpl) MoveTask(ctx context.Context, userID, taskID uuid.UUID, req *dto.MoveTaskRequest) (*dto.TaskResponse, error) {
	if req.Order == nil {
		return nil, response.NewValidationError("Order is required", "")
	}
	target := *req.Order

	var moved *domain.Task
	var sourceBoardID, targetBoardID uuid.UUID
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		task, source, err := s.owner.task(ctx, userID, taskID)
		if err != nil {
			return err
		}
		sourceBoardID = source.BoardID

		dest := source
		if req.ColumnID != source.ID {
			if dest, _, err = s.owner.column(ctx, userID, req.ColumnID); err != nil {
				return err
			}
		}
		targetBoardID = dest.BoardID

		if dest.ID == source.ID {
			moved, err = s.moveWithinColumn(ctx, task, target)
			return err
		}
		moved, err = s.moveAcrossColumns(ctx, task, source.ID, dest.ID, target)
		return err
	})
	if err != nil {
		return nil, internalError(err, "Failed to move task")
	}

	resp := toTaskResponse(moved)
	publish(s.events, s.logger, realtime.NewEvent(realtime.EventTaskMoved, targetBoardID, moved.ID, userID, resp))
	if sourceBoardID != targetBoardID {
		publish(s.events, s.logger, realtime.NewEvent(realtime.EventTaskDeleted, sourceBoardID, moved.ID, userID, nil))
	}
	return resp, nil
}

func (s *taskServiceImpl) moveWithinColumn(ctx context.Context, task *domain.Task, target int) (*domain.Task, error) {
	siblings, err := s.taskRepo.LockByColumnID(ctx, task.ColumnID)
	if err != nil {
		return nil, response.NewInternalError("Failed to fetch tasks", err)
	}
	item := findTask(siblings, task.ID)
	if item == nil {
		return nil, response.NewNotFoundError("Task not found", "")
	}

	_, changed := ordering.Move(siblings, item, target, sameTask)
	if err := s.taskRepo.UpdatePositions(ctx, changed); err != nil {
		return nil, response.NewInternalError("Failed to reorder tasks", err)
	}
	if s.metrics != nil {
		s.metrics.RecordReorder(metrics.ReorderTaskMove)
	}
	return item, nil
}

func (s *taskServiceImpl) moveAcrossColumns(ctx context.Context, task *domain.Task, sourceID, destID uuid.UUID, target int) (*domain.Task, error) {
	// Lock both groups in a fixed order so concurrent cross moves cannot deadlock
	first, second := sourceID, destID
	if strings.Compare(destID.String(), sourceID.String()) < 0 {
		first, second = destID, sourceID
	}
	groups := make(map[uuid.UUID][]*domain.Task, 2)
	for _, id := range []uuid.UUID{first, second} {
		tasks, err := s.taskRepo.LockByColumnID(ctx, id)
		if err != nil {
			return nil, response.NewInternalError("Failed to fetch tasks", err)
		}
		groups[id] = tasks
	}

	item := findTask(groups[sourceID], task.ID)
	if item == nil {
		return nil, response.NewNotFoundError("Task not found", "")
	}

	remaining := make([]*domain.Task, 0, len(groups[sourceID]))
	for _, t := range groups[sourceID] {
		if t.ID != item.ID {
			remaining = append(remaining, t)
		}
	}
	_, sourceChanged := ordering.Compact(remaining)

	item.ColumnID = destID
	_, destChanged := ordering.Insert(groups[destID], item, target)

	if err := s.taskRepo.UpdatePositions(ctx, append(sourceChanged, destChanged...)); err != nil {
		return nil, response.NewInternalError("Failed to reorder tasks", err)
	}
	if s.metrics != nil {
		s.metrics.RecordReorder(metrics.ReorderTaskTransfer)
	}
	return item, nil
}

func (s *taskServiceImpl) DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error {
	var boardID uuid.UUID
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		task, column, err := s.owner.task(ctx, userID, taskID)
		if err != nil {
			return err
		}
		boardID = column.BoardID

		if err := s.taskRepo.Delete(ctx, task.ID); err != nil {
			return lookupError(err, "Task not found", "Failed to delete task")
		}

		remaining, err := s.taskRepo.LockByColumnID(ctx, column.ID)
		if err != nil {
			return response.NewInternalError("Failed to fetch tasks", err)
		}
		_, changed := ordering.Compact(remaining)
		if err := s.taskRepo.UpdatePositions(ctx, changed); err != nil {
			return response.NewInternalError("Failed to reorder tasks", err)
		}
		if s.metrics != nil && len(changed) > 0 {
			s.metrics.RecordReorder(metrics.ReorderCompact)
		}
		return nil
	})
	if err != nil {
		return internalError(err, "Failed to delete task")
	}

	publish(s.events, s.logger, realtime.NewEvent(realtime.EventTaskDeleted, boardID, taskID, userID, nil))
	return nil
}

func findTask(tasks []*domain.Task, id uuid.UUID) *domain.Task {
	for _, t := range tasks {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// setTaskCollections encodes the JSON columns; nil slices are stored as [].
// Checklist items without an id get one.
func setTaskCollections(task *domain.Task, labels []dto.LabelDTO, checklist []dto.ChecklistItemDTO, stickers []string) error {
	if labels == nil {
		labels = []dto.LabelDTO{}
	}
	if checklist == nil {
		checklist = []dto.ChecklistItemDTO{}
	}
	for i := range checklist {
		if checklist[i].ID == "" {
			checklist[i].ID = uuid.NewString()
		}
	}
	if stickers == nil {
		stickers = []string{}
	}

	var err error
	if task.Labels, err = encodeJSON(labels); err != nil {
		return err
	}
	if task.Checklist, err = encodeJSON(checklist); err != nil {
		return err
	}
	task.Stickers, err = encodeJSON(stickers)
	return err
}
