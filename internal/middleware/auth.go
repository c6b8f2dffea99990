package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/inboxd/backend/internal/apperrors"
	portssvc "github.com/inboxd/backend/internal/core/ports/services"
)

// AuthMiddleware creates a Gin middleware handler that validates access
// tokens. Verification is stateless (signature + expiry); no revocation list
// is consulted, so an access token stays usable until its natural expiry.
// The referenced user must still exist in the directory.
func AuthMiddleware(tokenService portssvc.TokenSvcFacade, userService portssvc.UserSvcFacade) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Access token required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			logger.Warn("Authorization header format invalid")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		payload, err := tokenService.VerifyAccessToken(c.Request.Context(), parts[1])
		if err != nil {
			// Expired and invalid are the same to the client, distinct in logs.
			if errors.Is(err, apperrors.ErrTokenExpired) {
				logger.Warn("Access token expired")
			} else {
				logger.Warn("Access token invalid", "error", err)
			}
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Invalid or expired token"})
			return
		}

		// Re-confirm the account still exists; tokens outlive deletions.
		if _, err := userService.GetUserByID(c.Request.Context(), payload.UserID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				logger.Warn("Token references a deleted user", "user_id", payload.UserID)
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
				return
			}
			logger.Error("Failed to verify user existence", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		// Store the payload in the context and enrich the logger
		ctxWithPayload := context.WithValue(c.Request.Context(), authPayloadKey, *payload)
		enrichedLogger := logger.With(slog.String("user_id", payload.UserID))
		ctxWithLogger := context.WithValue(ctxWithPayload, loggerCtxKey, enrichedLogger)
		c.Request = c.Request.WithContext(ctxWithLogger)

		c.Next()
	}
}
