package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/RawanAyoub/TaskTaco-sub000/internal/dto"
	"github.com/RawanAyoub/TaskTaco-sub000/internal/response"
)

func TestColumnHandler_CreateColumn(t *testing.T) {
	userID := uuid.New()
	boardID := uuid.New()

	tests := []struct {
		name           string
		path           string
		body           string
		mockService    func(*MockColumnService)
		expectedStatus int
		expectedCode   string
	}{
		{
			name: "appends when order is omitted",
			path: "/api/boards/" + boardID.String() + "/columns",
			body: `{"name":"To Do"}`,
			mockService: func(m *MockColumnService) {
				m.CreateColumnFunc = func(ctx context.Context, owner, board uuid.UUID, req *dto.CreateColumnRequest) (*dto.ColumnResponse, error) {
					assert.Nil(t, req.Order)
					return &dto.ColumnResponse{ID: uuid.New(), BoardID: board, Name: req.Name, Order: 3}, nil
				}
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "passes the requested order",
			path: "/api/boards/" + boardID.String() + "/columns",
			body: `{"name":"Doing","order":0}`,
			mockService: func(m *MockColumnService) {
				m.CreateColumnFunc = func(ctx context.Context, owner, board uuid.UUID, req *dto.CreateColumnRequest) (*dto.ColumnResponse, error) {
					if assert.NotNil(t, req.Order) {
						assert.Equal(t, 0, *req.Order)
					}
					return &dto.ColumnResponse{ID: uuid.New(), BoardID: board, Name: req.Name}, nil
				}
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "duplicate name",
			path: "/api/boards/" + boardID.String() + "/columns",
			body: `{"name":"Done"}`,
			mockService: func(m *MockColumnService) {
				m.CreateColumnFunc = func(ctx context.Context, owner, board uuid.UUID, req *dto.CreateColumnRequest) (*dto.ColumnResponse, error) {
					return nil, response.NewAppError(response.ErrCodeDuplicateName, "Column name already exists on this board", "")
				}
			},
			expectedStatus: http.StatusConflict,
			expectedCode:   response.ErrCodeDuplicateName,
		},
		{
			name:           "invalid board id",
			path:           "/api/boards/nope/columns",
			body:           `{"name":"Done"}`,
			mockService:    func(m *MockColumnService) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   response.ErrCodeValidation,
		},
		{
			name:           "malformed body",
			path:           "/api/boards/" + boardID.String() + "/columns",
			body:           `{"name":`,
			mockService:    func(m *MockColumnService) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   response.ErrCodeValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockColumnService{}
			tt.mockService(mockService)
			handler := NewColumnHandler(mockService)

			router := setupTestRouter()
			router.POST("/api/boards/:boardId/columns", withUser(userID), handler.CreateColumn)

			req := httptest.NewRequest(http.MethodPost, tt.path, bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, errorCode(t, w))
			}
		})
	}
}

func TestColumnHandler_MoveColumn(t *testing.T) {
	userID := uuid.New()
	columnID := uuid.New()

	tests := []struct {
		name           string
		body           string
		wantOrder      int
		expectedStatus int
	}{
		{"moves to target", `{"order":2}`, 2, http.StatusOK},
		{"negative target is passed through for clamping", `{"order":-5}`, -5, http.StatusOK},
		{"zero is a valid target", `{"order":0}`, 0, http.StatusOK},
		{"order is required", `{}`, 0, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			mockService := &MockColumnService{
				MoveColumnFunc: func(ctx context.Context, owner, id uuid.UUID, order int) (*dto.ColumnResponse, error) {
					called = true
					assert.Equal(t, columnID, id)
					assert.Equal(t, tt.wantOrder, order)
					return &dto.ColumnResponse{ID: id}, nil
				},
			}
			router := setupTestRouter()
			router.PUT("/api/columns/:columnId/move", withUser(userID), NewColumnHandler(mockService).MoveColumn)

			req := httptest.NewRequest(http.MethodPut, "/api/columns/"+columnID.String()+"/move", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedStatus == http.StatusOK, called)
		})
	}
}

func TestColumnHandler_UpdateListDelete(t *testing.T) {
	userID := uuid.New()
	boardID := uuid.New()
	columnID := uuid.New()

	mockService := &MockColumnService{
		ListColumnsFunc: func(ctx context.Context, owner, board uuid.UUID) ([]*dto.ColumnResponse, error) {
			return []*dto.ColumnResponse{{ID: columnID, BoardID: board, Name: "To Do"}}, nil
		},
		UpdateColumnFunc: func(ctx context.Context, owner, id uuid.UUID, req *dto.UpdateColumnRequest) (*dto.ColumnResponse, error) {
			return &dto.ColumnResponse{ID: id, Name: *req.Name}, nil
		},
		DeleteColumnFunc: func(ctx context.Context, owner, id uuid.UUID) error {
			return response.NewNotFoundError("Column not found", "")
		},
	}
	handler := NewColumnHandler(mockService)
	router := setupTestRouter()
	router.Use(withUser(userID))
	router.GET("/api/boards/:boardId/columns", handler.ListColumns)
	router.PUT("/api/columns/:columnId", handler.UpdateColumn)
	router.DELETE("/api/columns/:columnId", handler.DeleteColumn)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/boards/"+boardID.String()+"/columns", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	req := httptest.NewRequest(http.MethodPut, "/api/columns/"+columnID.String(), bytes.NewBufferString(`{"name":"Doing"}`))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/columns/"+columnID.String(), nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, response.ErrCodeNotFound, errorCode(t, w))
}
