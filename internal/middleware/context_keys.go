package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/inboxd/backend/internal/core/domain"
)

// authPayloadKey is the key used to store the verified token payload.
// Using a custom type prevents collisions.
const authPayloadKey = contextKey("authPayload")

// GetAuthPayloadFromContext retrieves the verified token payload attached by
// the auth middleware. It returns the payload and a boolean indicating if it
// was found.
func GetAuthPayloadFromContext(c *gin.Context) (domain.TokenPayload, bool) {
	val := c.Request.Context().Value(authPayloadKey)
	if val == nil {
		return domain.TokenPayload{}, false
	}
	payload, ok := val.(domain.TokenPayload)
	return payload, ok
}

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	payload, ok := GetAuthPayloadFromContext(c)
	if !ok || payload.UserID == "" {
		return "", false
	}
	return payload.UserID, true
}
