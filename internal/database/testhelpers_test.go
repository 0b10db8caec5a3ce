package database

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/RawanAyoub/TaskTaco-sub000/internal/domain"
)

// newTestDB opens a migrated in-memory SQLite database. One connection keeps
// every caller on the same in-memory database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, AutoMigrate(db))
	return db
}

func mustUser(t *testing.T, db *gorm.DB) *domain.User {
	t.Helper()
	u := &domain.User{
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "x",
		DisplayName:  "Tester",
	}
	require.NoError(t, db.Create(u).Error)
	return u
}
