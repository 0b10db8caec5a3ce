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

func TestTaskHandler_CreateTask(t *testing.T) {
	userID := uuid.New()
	columnID := uuid.New()

	tests := []struct {
		name           string
		body           string
		mockService    func(*MockTaskService)
		expectedStatus int
	}{
		{
			name: "creates with defaults",
			body: `{"title":"Buy milk"}`,
			mockService: func(m *MockTaskService) {
				m.CreateTaskFunc = func(ctx context.Context, owner, column uuid.UUID, req *dto.CreateTaskRequest) (*dto.TaskResponse, error) {
					return &dto.TaskResponse{ID: uuid.New(), ColumnID: column, Title: req.Title, Priority: "Medium"}, nil
				}
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "title is required",
			body:           `{"description":"no title"}`,
			mockService:    func(m *MockTaskService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown priority",
			body:           `{"title":"x","priority":"Urgent"}`,
			mockService:    func(m *MockTaskService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "label color must be hex",
			body:           `{"title":"x","labels":[{"name":"bug","color":"red"}]}`,
			mockService:    func(m *MockTaskService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "column not found",
			body: `{"title":"x"}`,
			mockService: func(m *MockTaskService) {
				m.CreateTaskFunc = func(ctx context.Context, owner, column uuid.UUID, req *dto.CreateTaskRequest) (*dto.TaskResponse, error) {
					return nil, response.NewNotFoundError("Column not found", "")
				}
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockTaskService{}
			tt.mockService(mockService)
			router := setupTestRouter()
			router.POST("/api/columns/:columnId/tasks", withUser(userID), NewTaskHandler(mockService).CreateTask)

			req := httptest.NewRequest(http.MethodPost, "/api/columns/"+columnID.String()+"/tasks", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
		})
	}
}

func TestTaskHandler_MoveTask(t *testing.T) {
	userID := uuid.New()
	taskID := uuid.New()
	target := uuid.New()

	tests := []struct {
		name           string
		body           string
		expectedStatus int
	}{
		{"moves to another column", `{"columnId":"` + target.String() + `","order":0}`, http.StatusOK},
		{"order is required", `{"columnId":"` + target.String() + `"}`, http.StatusBadRequest},
		{"column is required", `{"order":1}`, http.StatusBadRequest},
		{"column must be a UUID", `{"columnId":"abc","order":1}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockTaskService{
				MoveTaskFunc: func(ctx context.Context, owner, id uuid.UUID, req *dto.MoveTaskRequest) (*dto.TaskResponse, error) {
					assert.Equal(t, target, req.ColumnID)
					return &dto.TaskResponse{ID: id, ColumnID: req.ColumnID, Order: *req.Order}, nil
				},
			}
			router := setupTestRouter()
			router.PUT("/api/tasks/:taskId/move", withUser(userID), NewTaskHandler(mockService).MoveTask)

			req := httptest.NewRequest(http.MethodPut, "/api/tasks/"+taskID.String()+"/move", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
		})
	}
}

func TestTaskHandler_UpdateTask_PartialBody(t *testing.T) {
	userID := uuid.New()
	taskID := uuid.New()

	var got *dto.UpdateTaskRequest
	mockService := &MockTaskService{
		UpdateTaskFunc: func(ctx context.Context, owner, id uuid.UUID, req *dto.UpdateTaskRequest) (*dto.TaskResponse, error) {
			got = req
			return &dto.TaskResponse{ID: id}, nil
		},
	}
	router := setupTestRouter()
	router.PUT("/api/tasks/:taskId", withUser(userID), NewTaskHandler(mockService).UpdateTask)

	req := httptest.NewRequest(http.MethodPut, "/api/tasks/"+taskID.String(), bytes.NewBufferString(`{"priority":"High","stickers":[]}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	if assert.NotNil(t, got) {
		assert.Nil(t, got.Title)
		assert.Equal(t, "High", *got.Priority)
		assert.Nil(t, got.Labels, "absent collections stay untouched")
		if assert.NotNil(t, got.Stickers) {
			assert.Empty(t, *got.Stickers, "an empty list clears")
		}
	}
}

func TestTaskHandler_GetListDelete(t *testing.T) {
	userID := uuid.New()
	taskID := uuid.New()
	columnID := uuid.New()

	mockService := &MockTaskService{
		GetTaskFunc: func(ctx context.Context, owner, id uuid.UUID) (*dto.TaskResponse, error) {
			if id != taskID {
				return nil, response.NewNotFoundError("Task not found", "")
			}
			return &dto.TaskResponse{ID: id}, nil
		},
		ListTasksFunc: func(ctx context.Context, owner, column uuid.UUID) ([]*dto.TaskResponse, error) {
			return []*dto.TaskResponse{}, nil
		},
		DeleteTaskFunc: func(ctx context.Context, owner, id uuid.UUID) error { return nil },
	}
	handler := NewTaskHandler(mockService)
	router := setupTestRouter()
	router.Use(withUser(userID))
	router.GET("/api/tasks/:taskId", handler.GetTask)
	router.GET("/api/columns/:columnId/tasks", handler.ListTasks)
	router.DELETE("/api/tasks/:taskId", handler.DeleteTask)

	cases := []struct {
		method string
		path   string
		status int
	}{
		{http.MethodGet, "/api/tasks/" + taskID.String(), http.StatusOK},
		{http.MethodGet, "/api/tasks/" + uuid.NewString(), http.StatusNotFound},
		{http.MethodGet, "/api/tasks/not-a-uuid", http.StatusBadRequest},
		{http.MethodGet, "/api/columns/" + columnID.String() + "/tasks", http.StatusOK},
		{http.MethodDelete, "/api/tasks/" + taskID.String(), http.StatusOK},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))
		assert.Equal(t, tc.status, w.Code, "%s %s", tc.method, tc.path)
	}
}
