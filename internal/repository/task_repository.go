package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/RawanAyoub/TaskTaco-sub000/internal/database"
	"github.com/RawanAyoub/TaskTaco-sub000/internal/domain"
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	// FindByColumnID returns the column's tasks sorted by order
	FindByColumnID(ctx context.Context, columnID uuid.UUID) ([]*domain.Task, error)
	// LockByColumnID is FindByColumnID taking row locks where supported
	LockByColumnID(ctx context.Context, columnID uuid.UUID) ([]*domain.Task, error)
	// UpdateContent writes every field except ColumnID and Order
	UpdateContent(ctx context.Context, task *domain.Task) error
	// UpdatePositions writes ColumnID and Order of each given task
	UpdatePositions(ctx context.Context, tasks []*domain.Task) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByColumnID(ctx context.Context, columnID uuid.UUID) (int64, error)
	DeleteByColumnIDs(ctx context.Context, columnIDs []uuid.UUID) error
	FindColumnIDs(ctx context.Context) ([]uuid.UUID, error)
}

type taskRepositoryImpl struct {
	db *gorm.DB
}

// NewTaskRepository creates a new instance of TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepositoryImpl{db: db}
}

func (r *taskRepositoryImpl) Create(ctx context.Context, task *domain.Task) error {
	return database.Conn(ctx, r.db).Create(task).Error
}

func (r *taskRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	var task domain.Task
	if err := database.Conn(ctx, r.db).Where("id = ?", id).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepositoryImpl) FindByColumnID(ctx context.Context, columnID uuid.UUID) ([]*domain.Task, error) {
	return r.findByColumnID(database.Conn(ctx, r.db), columnID)
}

func (r *taskRepositoryImpl) LockByColumnID(ctx context.Context, columnID uuid.UUID) ([]*domain.Task, error) {
	return r.findByColumnID(database.Conn(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}), columnID)
}

func (r *taskRepositoryImpl) findByColumnID(conn *gorm.DB, columnID uuid.UUID) ([]*domain.Task, error) {
	var tasks []*domain.Task
	if err := conn.
		Where("column_id = ?", columnID).
		Order("sort_order ASC").
		Order("created_at ASC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepositoryImpl) UpdateContent(ctx context.Context, task *domain.Task) error {
	return database.Conn(ctx, r.db).Model(task).
		Select("title", "description", "status", "priority", "due_date", "labels", "checklist", "stickers").
		Updates(task).Error
}

func (r *taskRepositoryImpl) UpdatePositions(ctx context.Context, tasks []*domain.Task) error {
	conn := database.Conn(ctx, r.db)
	for _, t := range tasks {
		if err := conn.Model(&domain.Task{}).Where("id = ?", t.ID).Updates(map[string]interface{}{
			"column_id":  t.ColumnID,
			"sort_order": t.Order,
		}).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *taskRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	result := database.Conn(ctx, r.db).Where("id = ?", id).Delete(&domain.Task{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *taskRepositoryImpl) DeleteByColumnID(ctx context.Context, columnID uuid.UUID) (int64, error) {
	result := database.Conn(ctx, r.db).Where("column_id = ?", columnID).Delete(&domain.Task{})
	return result.RowsAffected, result.Error
}

func (r *taskRepositoryImpl) DeleteByColumnIDs(ctx context.Context, columnIDs []uuid.UUID) error {
	if len(columnIDs) == 0 {
		return nil
	}
	return database.Conn(ctx, r.db).Where("column_id IN ?", columnIDs).Delete(&domain.Task{}).Error
}

// FindColumnIDs returns every column that holds at least one task
func (r *taskRepositoryImpl) FindColumnIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := database.Conn(ctx, r.db).Model(&domain.Task{}).
		Distinct("column_id").
		Pluck("column_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
