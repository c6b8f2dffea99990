package domain

// TokenPayload is the claim set embedded in both access and refresh tokens.
// It is transient, never persisted.
type TokenPayload struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

// TokenPair is one access token plus its companion refresh token.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// AuthResult is what the auth service hands back from register, login, and
// Google login.
type AuthResult struct {
	User   *User
	Tokens TokenPair
}

// GoogleUserInfo holds the profile fields extracted from a validated Google
// ID token (or the userinfo endpoint as a fallback).
type GoogleUserInfo struct {
	Email         string `json:"email"`
	EmailVerified bool   `json:"verified_email"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
}
