package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/inboxd/backend/internal/apperrors"
	portssvc "github.com/inboxd/backend/internal/core/ports/services"
	"github.com/inboxd/backend/internal/dto"
	"github.com/inboxd/backend/internal/middleware"
	"github.com/inboxd/backend/internal/platform/config"
)

// AuthHandler handles authentication related requests.
type AuthHandler struct {
	authService portssvc.AuthSvcFacade
	cfg         *config.Config
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService portssvc.AuthSvcFacade, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cfg:         cfg,
	}
}

// ErrorResponse is a generic error response structure for handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Register godoc
// @Summary Register new user
// @Description Creates a new account and signs the client in.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterRequest true "User Registration Info"
// @Success 201 {object} dto.AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Conflict (email already registered)"
// @Failure 500 {object} ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	result, err := h.authService.Register(c.Request.Context(), portssvc.RegisterParams{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicateEmail) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: "User already exists"})
			return
		}
		logger := middleware.GetLoggerFromContext(c)
		logger.Error("Failed to register user", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
		return
	}

	setRefreshTokenCookie(c, h.cfg, result.Tokens.RefreshToken)
	c.JSON(http.StatusCreated, dto.AuthResponse{
		Message:     "Registration successful",
		User:        dto.ToUserResponse(result.User),
		AccessToken: result.Tokens.AccessToken,
	})
}

// Login godoc
// @Summary User login
// @Description Authenticates a user and returns an access token; the refresh token is set as a cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Email and password required"})
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid credentials"})
			return
		}
		logger := middleware.GetLoggerFromContext(c)
		logger.Error("Login failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
		return
	}

	setRefreshTokenCookie(c, h.cfg, result.Tokens.RefreshToken)
	c.JSON(http.StatusOK, dto.AuthResponse{
		Message:     "Login successful",
		User:        dto.ToUserResponse(result.User),
		AccessToken: result.Tokens.AccessToken,
	})
}

// Refresh godoc
// @Summary Rotate the refresh token
// @Description Exchanges the refresh-token cookie for a new access token and a rotated refresh cookie.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.RefreshResponse
// @Failure 401 {object} ErrorResponse "Missing, invalid, or replayed refresh token; cookie is cleared"
// @Failure 500 {object} ErrorResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	presented, err := c.Cookie(h.cfg.RefreshTokenCookieName)
	if err != nil || presented == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Refresh token required"})
		return
	}

	tokens, err := h.authService.RefreshTokenPair(c.Request.Context(), presented)
	if err != nil {
		// Whatever went wrong, the presented cookie is no longer usable.
		clearRefreshTokenCookie(c, h.cfg)

		if errors.Is(err, apperrors.ErrInvalidToken) ||
			errors.Is(err, apperrors.ErrTokenExpired) ||
			errors.Is(err, apperrors.ErrRefreshTokenInvalid) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid or expired refresh token"})
			return
		}
		logger := middleware.GetLoggerFromContext(c)
		logger.Error("Token refresh failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Token refresh failed"})
		return
	}

	setRefreshTokenCookie(c, h.cfg, tokens.RefreshToken)
	c.JSON(http.StatusOK, dto.RefreshResponse{
		Message:     "Tokens refreshed successfully",
		AccessToken: tokens.AccessToken,
	})
}

// Logout godoc
// @Summary Log out the current session
// @Description Revokes the presented refresh token and clears the cookie. Always succeeds.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.MessageResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	presented, _ := c.Cookie(h.cfg.RefreshTokenCookieName)

	// Fail-soft: the user's intent to end the session is honored even when
	// the store-side revoke fails.
	if err := h.authService.Logout(c.Request.Context(), presented); err != nil {
		logger := middleware.GetLoggerFromContext(c)
		logger.Error("Logout revoke failed", slog.String("error", err.Error()))
	}

	clearRefreshTokenCookie(c, h.cfg)
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Logout successful"})
}

// LogoutAll godoc
// @Summary Log out everywhere
// @Description Revokes every active refresh token owned by the authenticated user.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /auth/logout-all [post]
func (h *AuthHandler) LogoutAll(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	if err := h.authService.LogoutAll(c.Request.Context(), userID); err != nil {
		logger := middleware.GetLoggerFromContext(c)
		logger.Error("Logout-all failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
		return
	}

	clearRefreshTokenCookie(c, h.cfg)
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Logged out from all devices"})
}
