package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/RawanAyoub/TaskTaco-sub000/internal/database"
	"github.com/RawanAyoub/TaskTaco-sub000/internal/domain"
)

// ColumnRepository defines the interface for column data access
type ColumnRepository interface {
	Create(ctx context.Context, column *domain.Column) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Column, error)
	// FindByBoardID returns the board's columns sorted by order
	FindByBoardID(ctx context.Context, boardID uuid.UUID) ([]*domain.Column, error)
	// LockByBoardID is FindByBoardID taking row locks where the database
	// supports them; call it inside a transaction before reordering
	LockByBoardID(ctx context.Context, boardID uuid.UUID) ([]*domain.Column, error)
	// FindByBoardAndName looks up an exact, case-sensitive name match in a
	// board, ignoring excludeID when it is not uuid.Nil
	FindByBoardAndName(ctx context.Context, boardID uuid.UUID, name string, excludeID uuid.UUID) (*domain.Column, error)
	UpdateName(ctx context.Context, id uuid.UUID, name string) error
	UpdateOrders(ctx context.Context, columns []*domain.Column) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByBoardIDs(ctx context.Context, boardIDs []uuid.UUID) error
	FindIDsByBoardIDs(ctx context.Context, boardIDs []uuid.UUID) ([]uuid.UUID, error)
	FindBoardIDs(ctx context.Context) ([]uuid.UUID, error)
}

type columnRepositoryImpl struct {
	db *gorm.DB
}

// NewColumnRepository creates a new instance of ColumnRepository
func NewColumnRepository(db *gorm.DB) ColumnRepository {
	return &columnRepositoryImpl{db: db}
}

func (r *columnRepositoryImpl) Create(ctx context.Context, column *domain.Column) error {
	return database.Conn(ctx, r.db).Omit("Tasks").Create(column).Error
}

func (r *columnRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Column, error) {
	var column domain.Column
	if err := database.Conn(ctx, r.db).Where("id = ?", id).First(&column).Error; err != nil {
		return nil, err
	}
	return &column, nil
}

func (r *columnRepositoryImpl) FindByBoardID(ctx context.Context, boardID uuid.UUID) ([]*domain.Column, error) {
	return r.findByBoardID(database.Conn(ctx, r.db), boardID)
}

func (r *columnRepositoryImpl) LockByBoardID(ctx context.Context, boardID uuid.UUID) ([]*domain.Column, error) {
	return r.findByBoardID(database.Conn(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}), boardID)
}

func (r *columnRepositoryImpl) findByBoardID(conn *gorm.DB, boardID uuid.UUID) ([]*domain.Column, error) {
	var columns []*domain.Column
	if err := conn.
		Where("board_id = ?", boardID).
		Order("sort_order ASC").
		Order("created_at ASC").
		Find(&columns).Error; err != nil {
		return nil, err
	}
	return columns, nil
}

func (r *columnRepositoryImpl) FindByBoardAndName(ctx context.Context, boardID uuid.UUID, name string, excludeID uuid.UUID) (*domain.Column, error) {
	var column domain.Column
	q := database.Conn(ctx, r.db).Where("board_id = ? AND name = ?", boardID, name)
	if excludeID != uuid.Nil {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.First(&column).Error; err != nil {
		return nil, err
	}
	return &column, nil
}

func (r *columnRepositoryImpl) UpdateName(ctx context.Context, id uuid.UUID, name string) error {
	return database.Conn(ctx, r.db).Model(&domain.Column{}).Where("id = ?", id).Update("name", name).Error
}

// UpdateOrders writes the Order of each given column
func (r *columnRepositoryImpl) UpdateOrders(ctx context.Context, columns []*domain.Column) error {
	conn := database.Conn(ctx, r.db)
	for _, c := range columns {
		if err := conn.Model(&domain.Column{}).Where("id = ?", c.ID).Update("sort_order", c.Order).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *columnRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	result := database.Conn(ctx, r.db).Where("id = ?", id).Delete(&domain.Column{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *columnRepositoryImpl) DeleteByBoardIDs(ctx context.Context, boardIDs []uuid.UUID) error {
	if len(boardIDs) == 0 {
		return nil
	}
	return database.Conn(ctx, r.db).Where("board_id IN ?", boardIDs).Delete(&domain.Column{}).Error
}

func (r *columnRepositoryImpl) FindIDsByBoardIDs(ctx context.Context, boardIDs []uuid.UUID) ([]uuid.UUID, error) {
	ids := []uuid.UUID{}
	if len(boardIDs) == 0 {
		return ids, nil
	}
	if err := database.Conn(ctx, r.db).Model(&domain.Column{}).
		Where("board_id IN ?", boardIDs).
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// FindBoardIDs returns every board that has at least one column
func (r *columnRepositoryImpl) FindBoardIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := database.Conn(ctx, r.db).Model(&domain.Column{}).
		Distinct("board_id").
		Pluck("board_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
