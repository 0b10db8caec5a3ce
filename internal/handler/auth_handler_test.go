package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/RawanAyoub/TaskTaco-sub000/internal/dto"
	"github.com/RawanAyoub/TaskTaco-sub000/internal/response"
)

func TestAuthHandler_Register(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		mockService    func(*MockAuthService)
		expectedStatus int
		expectedCode   string
	}{
		{
			name: "registers and returns a token",
			body: `{"email":"ada@example.com","password":"correct-horse","displayName":"Ada"}`,
			mockService: func(m *MockAuthService) {
				m.RegisterFunc = func(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
					return &dto.AuthResponse{AccessToken: "t", TokenType: "Bearer", ExpiresAt: time.Now().Add(time.Hour)}, nil
				}
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "invalid email",
			body:           `{"email":"nope","password":"correct-horse","displayName":"Ada"}`,
			mockService:    func(m *MockAuthService) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   response.ErrCodeValidation,
		},
		{
			name:           "password too short",
			body:           `{"email":"ada@example.com","password":"short","displayName":"Ada"}`,
			mockService:    func(m *MockAuthService) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   response.ErrCodeValidation,
		},
		{
			name: "email already registered",
			body: `{"email":"ada@example.com","password":"correct-horse","displayName":"Ada"}`,
			mockService: func(m *MockAuthService) {
				m.RegisterFunc = func(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
					return nil, response.NewAppError(response.ErrCodeAlreadyExists, "Email is already registered", "")
				}
			},
			expectedStatus: http.StatusConflict,
			expectedCode:   response.ErrCodeAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockAuthService{}
			tt.mockService(mockService)
			router := setupTestRouter()
			router.POST("/api/auth/register", NewAuthHandler(mockService).Register)

			req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewBufferString(tt.body))
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

func TestAuthHandler_Login(t *testing.T) {
	mockService := &MockAuthService{
		LoginFunc: func(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
			if req.Password != "correct-horse" {
				return nil, response.NewUnauthorizedError("Invalid email or password", "")
			}
			return &dto.AuthResponse{AccessToken: "t", TokenType: "Bearer"}, nil
		},
	}
	router := setupTestRouter()
	router.POST("/api/auth/login", NewAuthHandler(mockService).Login)

	for body, status := range map[string]int{
		`{"email":"ada@example.com","password":"correct-horse"}`: http.StatusOK,
		`{"email":"ada@example.com","password":"wrong-horse"}`:   http.StatusUnauthorized,
		`{"email":"ada@example.com"}`:                            http.StatusBadRequest,
	} {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, status, w.Code, body)
	}
}

func TestAuthHandler_LogoutRevokesCallerToken(t *testing.T) {
	var revoked string
	mockService := &MockAuthService{
		LogoutFunc: func(ctx context.Context, tokenStr string) error {
			revoked = tokenStr
			return nil
		},
	}
	router := setupTestRouter()
	router.POST("/api/auth/logout", withUser(uuid.New()), NewAuthHandler(mockService).Logout)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "test-token", revoked)
}

func TestAuthHandler_LogoutStoreUnavailable(t *testing.T) {
	mockService := &MockAuthService{
		LogoutFunc: func(ctx context.Context, tokenStr string) error {
			return response.NewAppError(response.ErrCodeServiceUnavailable, "Token store unavailable", "")
		},
	}
	router := setupTestRouter()
	router.POST("/api/auth/logout", withUser(uuid.New()), NewAuthHandler(mockService).Logout)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestAuthHandler_ChangePassword(t *testing.T) {
	userID := uuid.New()
	mockService := &MockAuthService{
		ChangePasswordFunc: func(ctx context.Context, id uuid.UUID, req *dto.ChangePasswordRequest) error {
			assert.Equal(t, userID, id)
			return nil
		},
	}
	router := setupTestRouter()
	router.PUT("/api/auth/password", withUser(userID), NewAuthHandler(mockService).ChangePassword)

	req := httptest.NewRequest(http.MethodPut, "/api/auth/password", bytes.NewBufferString(`{"currentPassword":"old-password","newPassword":"new-password"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
