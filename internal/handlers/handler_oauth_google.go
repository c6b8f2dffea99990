package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/inboxd/backend/internal/core/domain"
	portssvc "github.com/inboxd/backend/internal/core/ports/services"
	"github.com/inboxd/backend/internal/middleware"
	"github.com/inboxd/backend/internal/platform/config"
	"golang.org/x/oauth2"
)

// GoogleOAuthHandler handles the Google OAuth redirect flow.
type GoogleOAuthHandler struct {
	googleOAuthService portssvc.GoogleOAuthSvcFacade
	authService        portssvc.AuthSvcFacade
	cfg                *config.Config
}

// NewGoogleOAuthHandler creates a new instance of GoogleOAuthHandler.
func NewGoogleOAuthHandler(
	googleOAuthService portssvc.GoogleOAuthSvcFacade,
	authService portssvc.AuthSvcFacade,
	cfg *config.Config,
) *GoogleOAuthHandler {
	return &GoogleOAuthHandler{
		googleOAuthService: googleOAuthService,
		authService:        authService,
		cfg:                cfg,
	}
}

// redirectWithError sends the browser back to the frontend callback page
// with a failure reason. Internals never travel on the query string.
func (h *GoogleOAuthHandler) redirectWithError(c *gin.Context, reason string) {
	c.Redirect(http.StatusFound,
		fmt.Sprintf("%s/auth/callback?error=%s", h.cfg.FrontendBaseURL, url.QueryEscape(reason)))
}

// LoginGoogle godoc
// @Summary Begin Google login
// @Description Redirects the browser to Google's consent page with a CSRF state cookie.
// @Tags oauth
// @Success 302
// @Failure 500 {object} ErrorResponse
// @Router /auth/google [get]
func (h *GoogleOAuthHandler) LoginGoogle(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromContext(c)

	state, err := h.googleOAuthService.GenerateStateString(ctx)
	if err != nil {
		logger.Error("Failed to generate OAuth state", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
		return
	}

	setOAuthStateCookie(c, h.cfg, state)
	c.Redirect(http.StatusFound, h.googleOAuthService.GetGoogleLoginURL(ctx, state))
}

// CallbackGoogle godoc
// @Summary Google login callback
// @Description Exchanges the authorization code, reconciles the account, and redirects to the frontend with an access token.
// @Tags oauth
// @Success 302
// @Router /auth/google/callback [get]
func (h *GoogleOAuthHandler) CallbackGoogle(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromContext(c)

	clearOAuthStateCookie(c, h.cfg)

	if errParam := c.Query("error"); errParam != "" {
		logger.Warn("Google returned an error on callback", slog.String("error", errParam))
		h.redirectWithError(c, "Authentication failed")
		return
	}

	expectedState, err := c.Cookie(oauthStateCookieName)
	if err != nil || expectedState == "" || c.Query("state") != expectedState {
		logger.Warn("OAuth state mismatch on callback")
		h.redirectWithError(c, "Authentication failed")
		return
	}

	code := c.Query("code")
	if code == "" {
		logger.Warn("Authorization code missing on callback")
		h.redirectWithError(c, "Authentication failed")
		return
	}

	oauth2Token, err := h.googleOAuthService.ExchangeCodeForToken(ctx, code)
	if err != nil {
		logger.Error("Failed to exchange authorization code with Google", slog.String("error", err.Error()))
		h.redirectWithError(c, "Authentication failed")
		return
	}

	profile, err := h.extractProfile(c, oauth2Token)
	if err != nil {
		logger.Error("Failed to obtain Google profile", slog.String("error", err.Error()))
		h.redirectWithError(c, "Authentication failed")
		return
	}

	result, err := h.authService.GoogleLogin(ctx, *profile)
	if err != nil {
		logger.Error("Google login failed", slog.String("error", err.Error()))
		h.redirectWithError(c, "Authentication failed")
		return
	}
	logger.Info("User logged in via Google",
		slog.String("user_id", result.User.UserID),
		slog.String("email", result.User.Email))

	setRefreshTokenCookie(c, h.cfg, result.Tokens.RefreshToken)
	c.Redirect(http.StatusFound,
		fmt.Sprintf("%s/auth/callback?token=%s", h.cfg.FrontendBaseURL, url.QueryEscape(result.Tokens.AccessToken)))
}

// extractProfile prefers the verified ID token from the code exchange and
// falls back to the userinfo endpoint when the response carries none.
func (h *GoogleOAuthHandler) extractProfile(c *gin.Context, token *oauth2.Token) (*domain.GoogleUserInfo, error) {
	ctx := c.Request.Context()

	if idTokenString, ok := token.Extra("id_token").(string); ok && idTokenString != "" {
		payload, err := h.googleOAuthService.ValidateGoogleIDToken(ctx, idTokenString)
		if err != nil {
			return nil, err
		}
		email, _ := payload.Claims["email"].(string)
		givenName, _ := payload.Claims["given_name"].(string)
		familyName, _ := payload.Claims["family_name"].(string)
		emailVerified, _ := payload.Claims["email_verified"].(bool)
		return &domain.GoogleUserInfo{
			Email:         email,
			GivenName:     givenName,
			FamilyName:    familyName,
			EmailVerified: emailVerified,
		}, nil
	}

	return h.googleOAuthService.GetUserInfo(ctx, token)
}
