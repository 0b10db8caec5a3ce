package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestHealthHandler(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	tests := []struct {
		name   string
		db     func() *gorm.DB
		redis  *redis.Client
		setup  func()
		path   string
		status int
	}{
		{"liveness ignores dependencies", func() *gorm.DB { return nil }, nil, nil, "/health", http.StatusOK},
		{"ready with database only", func() *gorm.DB { return db }, nil, nil, "/ready", http.StatusOK},
		{"ready with database and redis", func() *gorm.DB { return db }, rdb, nil, "/ready", http.StatusOK},
		{"not ready before database connects", func() *gorm.DB { return nil }, nil, nil, "/ready", http.StatusServiceUnavailable},
		{"not ready when redis is down", func() *gorm.DB { return db }, rdb, mr.Close, "/ready", http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setup != nil {
				tt.setup()
			}
			handler := NewHealthHandler(tt.db, tt.redis)
			router := setupTestRouter()
			router.GET("/health", handler.Health)
			router.GET("/ready", handler.Ready)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.status, w.Code, w.Body.String())
		})
	}
}
