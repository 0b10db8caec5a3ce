package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/RawanAyoub/TaskTaco-sub000/internal/database"
	"github.com/RawanAyoub/TaskTaco-sub000/internal/domain"
)

// SettingsRepository defines the interface for user settings data access
type SettingsRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*domain.UserSettings, error)
	Save(ctx context.Context, settings *domain.UserSettings) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}

type settingsRepositoryImpl struct {
	db *gorm.DB
}

// NewSettingsRepository creates a new instance of SettingsRepository
func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepositoryImpl{db: db}
}

func (r *settingsRepositoryImpl) FindByUserID(ctx context.Context, userID uuid.UUID) (*domain.UserSettings, error) {
	var settings domain.UserSettings
	if err := database.Conn(ctx, r.db).Where("user_id = ?", userID).First(&settings).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

// Save inserts the row when it has no ID yet and updates every field otherwise
func (r *settingsRepositoryImpl) Save(ctx context.Context, settings *domain.UserSettings) error {
	conn := database.Conn(ctx, r.db)
	if settings.ID == uuid.Nil {
		return conn.Create(settings).Error
	}
	return conn.Model(settings).Select("theme", "accent_color", "compact_cards").Updates(settings).Error
}

func (r *settingsRepositoryImpl) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	return database.Conn(ctx, r.db).Where("user_id = ?", userID).Delete(&domain.UserSettings{}).Error
}
