package repository

import (
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/RawanAyoub/TaskTaco-sub000/internal/database"
	"github.com/RawanAyoub/TaskTaco-sub000/internal/domain"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql db: %v", err)
	}
	// a second connection would see a different in-memory database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB) *domain.User {
	t.Helper()
	u := &domain.User{Email: uuid.NewString() + "@example.com", PasswordHash: "hash", DisplayName: "Seed"}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func seedBoard(t *testing.T, db *gorm.DB, userID uuid.UUID, name string) *domain.Board {
	t.Helper()
	b := &domain.Board{UserID: userID, Name: name}
	if err := db.Create(b).Error; err != nil {
		t.Fatalf("seed board: %v", err)
	}
	return b
}

func seedColumns(t *testing.T, db *gorm.DB, boardID uuid.UUID, names ...string) []*domain.Column {
	t.Helper()
	out := make([]*domain.Column, len(names))
	for i, n := range names {
		out[i] = &domain.Column{BoardID: boardID, Name: n, Order: i}
		if err := db.Create(out[i]).Error; err != nil {
			t.Fatalf("seed column: %v", err)
		}
	}
	return out
}

func seedTasks(t *testing.T, db *gorm.DB, columnID uuid.UUID, titles ...string) []*domain.Task {
	t.Helper()
	out := make([]*domain.Task, len(titles))
	for i, title := range titles {
		out[i] = &domain.Task{ColumnID: columnID, Title: title, Priority: domain.PriorityMedium, Order: i}
		if err := db.Create(out[i]).Error; err != nil {
			t.Fatalf("seed task: %v", err)
		}
	}
	return out
}
