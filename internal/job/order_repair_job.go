package job

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/RawanAyoub/TaskTaco-sub000/internal/database"
	"github.com/RawanAyoub/TaskTaco-sub000/internal/metrics"
	"github.com/RawanAyoub/TaskTaco-sub000/internal/ordering"
	"github.com/RawanAyoub/TaskTaco-sub000/internal/repository"
)

// Metric labels for repaired groups
const (
	repairColumns = "columns"
	repairTasks   = "tasks"
)

// OrderRepairJob renumbers any column or task group whose stored orders are
// not exactly 0..n-1. Under READ COMMITTED two concurrent reorders of the
// same group can leave gaps or duplicates; this closes them.
type OrderRepairJob struct {
	tx         database.Transactor
	columnRepo repository.ColumnRepository
	taskRepo   repository.TaskRepository
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

// NewOrderRepairJob creates a new OrderRepairJob
func NewOrderRepairJob(
	tx database.Transactor,
	columnRepo repository.ColumnRepository,
	taskRepo repository.TaskRepository,
	m *metrics.Metrics,
	logger *zap.Logger,
) *OrderRepairJob {
	return &OrderRepairJob{
		tx:         tx,
		columnRepo: columnRepo,
		taskRepo:   taskRepo,
		metrics:    m,
		logger:     logger,
	}
}

// Run checks every group once
func (j *OrderRepairJob) Run() {
	ctx := context.Background()

	columns, tasks := j.RepairAll(ctx)
	if columns+tasks > 0 {
		j.logger.Warn("Repaired sparse or duplicated orders",
			zap.Int("column_groups", columns),
			zap.Int("task_groups", tasks),
		)
	}
}

// RepairAll returns how many column groups and task groups were renumbered
func (j *OrderRepairJob) RepairAll(ctx context.Context) (columns, tasks int) {
	boardIDs, err := j.columnRepo.FindBoardIDs(ctx)
	if err != nil {
		j.logger.Error("Failed to list boards for order repair", zap.Error(err))
	}
	for _, boardID := range boardIDs {
		repaired, err := j.repairColumns(ctx, boardID)
		if err != nil {
			j.logger.Error("Failed to repair column orders", zap.String("board_id", boardID.String()), zap.Error(err))
			continue
		}
		if repaired {
			columns++
			j.record(repairColumns)
		}
	}

	columnIDs, err := j.taskRepo.FindColumnIDs(ctx)
	if err != nil {
		j.logger.Error("Failed to list columns for order repair", zap.Error(err))
	}
	for _, columnID := range columnIDs {
		repaired, err := j.repairTasks(ctx, columnID)
		if err != nil {
			j.logger.Error("Failed to repair task orders", zap.String("column_id", columnID.String()), zap.Error(err))
			continue
		}
		if repaired {
			tasks++
			j.record(repairTasks)
		}
	}
	return columns, tasks
}

func (j *OrderRepairJob) repairColumns(ctx context.Context, boardID uuid.UUID) (bool, error) {
	repaired := false
	err := j.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		group, err := j.columnRepo.LockByBoardID(ctx, boardID)
		if err != nil || ordering.IsDense(group) {
			return err
		}
		_, changed := ordering.Compact(group)
		repaired = true
		return j.columnRepo.UpdateOrders(ctx, changed)
	})
	return repaired && err == nil, err
}

func (j *OrderRepairJob) repairTasks(ctx context.Context, columnID uuid.UUID) (bool, error) {
	repaired := false
	err := j.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		group, err := j.taskRepo.LockByColumnID(ctx, columnID)
		if err != nil || ordering.IsDense(group) {
			return err
		}
		_, changed := ordering.Compact(group)
		repaired = true
		return j.taskRepo.UpdatePositions(ctx, changed)
	})
	return repaired && err == nil, err
}

func (j *OrderRepairJob) record(group string) {
	if j.metrics != nil {
		j.metrics.RecordOrderRepair(group)
	}
}
