package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/RawanAyoub/TaskTaco-sub000/internal/response"
)

// Context keys set by the auth middleware
const (
	ContextUserID = "user_id"
	ContextToken  = "jwtToken"
)

// AuthData holds the authenticated user ID and the raw bearer token.
type AuthData struct {
	UserID uuid.UUID
	Token  string
}

// ExtractAuthData reads the caller set by the auth middleware. It writes a
// 401 and returns false when the request was not authenticated.
func ExtractAuthData(c *gin.Context) (AuthData, bool) {
	userID, exists := c.Get(ContextUserID)
	if !exists {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "User ID not found in context")
		return AuthData{}, false
	}
	userUUID, ok := userID.(uuid.UUID)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Invalid user ID format")
		return AuthData{}, false
	}

	var tokenStr string
	if token, exists := c.Get(ContextToken); exists {
		tokenStr, _ = token.(string)
	}

	return AuthData{
		UserID: userUUID,
		Token:  tokenStr,
	}, true
}

// parseIDParam parses a UUID path parameter, writing a 400 on failure
func parseIDParam(c *gin.Context, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid "+label+" ID")
		return uuid.Nil, false
	}
	return id, true
}
