package service

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/RawanAyoub/TaskTaco-sub000/internal/database"
	"github.com/RawanAyoub/TaskTaco-sub000/internal/domain"
	"github.com/RawanAyoub/TaskTaco-sub000/internal/realtime"
	"github.com/RawanAyoub/TaskTaco-sub000/internal/repository"
)

func setupTestDB(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// a second connection would see a different in-memory database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db))
	return db
}

// recordingPublisher keeps every published event
type recordingPublisher struct {
	mu     sync.Mutex
	events []realtime.Event
}

func (p *recordingPublisher) Publish(ev realtime.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, ev := range p.events {
		out[i] = ev.Type
	}
	return out
}

// boardFixture wires the board, column and task services to one database
type boardFixture struct {
	ctx     context.Context
	db      *gorm.DB
	events  *recordingPublisher
	boards  BoardService
	columns ColumnService
	tasks   TaskService
	user    *domain.User
}

func newBoardFixture(t testing.TB) *boardFixture {
	t.Helper()
	db := setupTestDB(t)
	tx := database.NewTransactor(db, database.TxOptions{Serializable: true})
	boardRepo := repository.NewBoardRepository(db)
	columnRepo := repository.NewColumnRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	events := &recordingPublisher{}
	log := zap.NewNop()

	return &boardFixture{
		ctx:     context.Background(),
		db:      db,
		events:  events,
		boards:  NewBoardService(tx, boardRepo, columnRepo, taskRepo, events, nil, log),
		columns: NewColumnService(tx, boardRepo, columnRepo, taskRepo, events, nil, log),
		tasks:   NewTaskService(tx, boardRepo, columnRepo, taskRepo, events, nil, log),
		user:    seedUser(t, db),
	}
}

func seedUser(t testing.TB, db *gorm.DB) *domain.User {
	t.Helper()
	u := &domain.User{Email: uuid.NewString() + "@example.com", PasswordHash: "hash", DisplayName: "Seed"}
	require.NoError(t, db.Create(u).Error)
	return u
}

// columnNames returns the board's column names in stored order
func columnNames(t testing.TB, db *gorm.DB, boardID uuid.UUID) []string {
	t.Helper()
	var cols []domain.Column
	require.NoError(t, db.Where("board_id = ?", boardID).Order("sort_order").Find(&cols).Error)
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	return names
}

func columnOrders(t testing.TB, db *gorm.DB, boardID uuid.UUID) []int {
	t.Helper()
	var orders []int
	require.NoError(t, db.Model(&domain.Column{}).Where("board_id = ?", boardID).Order("sort_order").Pluck("sort_order", &orders).Error)
	return orders
}

func taskTitles(t testing.TB, db *gorm.DB, columnID uuid.UUID) []string {
	t.Helper()
	var tasks []domain.Task
	require.NoError(t, db.Where("column_id = ?", columnID).Order("sort_order").Find(&tasks).Error)
	titles := make([]string, len(tasks))
	for i, task := range tasks {
		titles[i] = task.Title
	}
	return titles
}

func taskOrders(t testing.TB, db *gorm.DB, columnID uuid.UUID) []int {
	t.Helper()
	var orders []int
	require.NoError(t, db.Model(&domain.Task{}).Where("column_id = ?", columnID).Order("sort_order").Pluck("sort_order", &orders).Error)
	return orders
}

func dense(orders []int) bool {
	for i, o := range orders {
		if o != i {
			return false
		}
	}
	return true
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }
