package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/inboxd/backend/internal/platform/config"
)

// oauthStateCookieName holds the CSRF state between the redirect to Google
// and the callback.
const oauthStateCookieName = "oauthState"

// setRefreshTokenCookie delivers the refresh token on an HTTP-only cookie
// scoped to the auth route prefix. The client never sees it from JS.
func setRefreshTokenCookie(c *gin.Context, cfg *config.Config, token string) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     cfg.RefreshTokenCookieName,
		Value:    token,
		Path:     cfg.RefreshTokenCookiePath,
		MaxAge:   int(cfg.JWTRefreshExpiryDuration.Seconds()),
		HttpOnly: true,
		Secure:   cfg.IsProduction,
		SameSite: http.SameSiteStrictMode,
	})
}

// clearRefreshTokenCookie expires the refresh cookie. Attributes must match
// the ones used when setting it or browsers keep the old cookie.
func clearRefreshTokenCookie(c *gin.Context, cfg *config.Config) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     cfg.RefreshTokenCookieName,
		Value:    "",
		Path:     cfg.RefreshTokenCookiePath,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cfg.IsProduction,
		SameSite: http.SameSiteStrictMode,
	})
}

// setOAuthStateCookie stores the OAuth CSRF state for the callback leg.
// SameSite is Lax, not Strict: the callback arrives as a cross-site
// navigation from Google and a Strict cookie would not be sent with it.
func setOAuthStateCookie(c *gin.Context, cfg *config.Config, state string) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     oauthStateCookieName,
		Value:    state,
		Path:     cfg.RefreshTokenCookiePath,
		MaxAge:   600,
		HttpOnly: true,
		Secure:   cfg.IsProduction,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearOAuthStateCookie(c *gin.Context, cfg *config.Config) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     oauthStateCookieName,
		Value:    "",
		Path:     cfg.RefreshTokenCookiePath,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cfg.IsProduction,
		SameSite: http.SameSiteLaxMode,
	})
}
