package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/RawanAyoub/TaskTaco-sub000/internal/response"
)

const validateTimeout = 5 * time.Second

// TokenValidator resolves a bearer token to its user, rejecting revoked tokens
type TokenValidator interface {
	ValidateToken(ctx context.Context, tokenStr string) (uuid.UUID, error)
}

// AuthWithValidator returns a middleware that authenticates requests by their
// Authorization: Bearer header. On success user_id and jwtToken are set on
// the context.
func AuthWithValidator(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "Authorization header is required")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			abortUnauthorized(c, "Invalid authorization header format")
			return
		}
		tokenString := strings.TrimSpace(parts[1])

		userID, ok := validate(c, validator, tokenString)
		if !ok {
			return
		}

		c.Set("user_id", userID)
		c.Set("jwtToken", tokenString)

		c.Next()
	}
}

// QueryTokenAuth authenticates by the token query parameter. Browsers cannot
// set headers on a WebSocket handshake, so the live feed uses this instead.
func QueryTokenAuth(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.Query("token")
		if tokenString == "" {
			abortUnauthorized(c, "token query parameter is required")
			return
		}

		userID, ok := validate(c, validator, tokenString)
		if !ok {
			return
		}

		c.Set("user_id", userID)
		c.Set("jwtToken", tokenString)

		c.Next()
	}
}

func validate(c *gin.Context, validator TokenValidator, tokenString string) (uuid.UUID, bool) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), validateTimeout)
	defer cancel()

	userID, err := validator.ValidateToken(ctx, tokenString)
	if err != nil {
		abortUnauthorized(c, "Invalid or expired token")
		return uuid.Nil, false
	}
	return userID, true
}

func abortUnauthorized(c *gin.Context, message string) {
	response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, message)
	c.Abort()
}
