package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/inboxd/backend/internal/apperrors"
	"github.com/inboxd/backend/internal/core/domain"
	portssvc "github.com/inboxd/backend/internal/core/ports/services"
	"github.com/inboxd/backend/internal/dto"
	"github.com/inboxd/backend/internal/handlers"
	"github.com/inboxd/backend/internal/platform/config"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock AuthService ---
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, params portssvc.RegisterParams) (*domain.AuthResult, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuthResult), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuthResult), args.Error(1)
}

func (m *MockAuthService) GoogleLogin(ctx context.Context, profile domain.GoogleUserInfo) (*domain.AuthResult, error) {
	args := m.Called(ctx, profile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuthResult), args.Error(1)
}

func (m *MockAuthService) RefreshTokenPair(ctx context.Context, presentedToken string) (*domain.TokenPair, error) {
	args := m.Called(ctx, presentedToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TokenPair), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, presentedToken string) error {
	args := m.Called(ctx, presentedToken)
	return args.Error(0)
}

func (m *MockAuthService) LogoutAll(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockAuthService) CleanupRefreshTokens(ctx context.Context, olderThanDays int) (int64, error) {
	args := m.Called(ctx, olderThanDays)
	return args.Get(0).(int64), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.AuthSvcFacade = (*MockAuthService)(nil)

// --- Test Suite ---
type AuthHandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	cfg             *config.Config
	mockAuthService *MockAuthService
}

func (suite *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.cfg = &config.Config{
		RefreshTokenCookieName:   "refreshToken",
		RefreshTokenCookiePath:   "/api/v1/auth",
		JWTRefreshExpiryDuration: 7 * 24 * time.Hour,
	}
	suite.mockAuthService = new(MockAuthService)

	handler := handlers.NewAuthHandler(suite.mockAuthService, suite.cfg)
	suite.router = gin.New()
	auth := suite.router.Group("/api/v1/auth")
	auth.POST("/register", handler.Register)
	auth.POST("/login", handler.Login)
	auth.POST("/refresh", handler.Refresh)
	auth.POST("/logout", handler.Logout)
}

func (suite *AuthHandlerTestSuite) postJSON(path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(http.MethodPost, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// refreshCookie extracts the refresh-token Set-Cookie from the response, if any.
func (suite *AuthHandlerTestSuite) refreshCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == suite.cfg.RefreshTokenCookieName {
			return cookie
		}
	}
	return nil
}

func authResultFixture() *domain.AuthResult {
	return &domain.AuthResult{
		User: &domain.User{
			UserID:    "user-1",
			Email:     "alice@x.com",
			FirstName: "Alice",
			LastName:  "A",
		},
		Tokens: domain.TokenPair{
			AccessToken:  "access-jwt",
			RefreshToken: "refresh-jwt",
		},
	}
}

// --- Register Tests ---

func (suite *AuthHandlerTestSuite) TestRegister_Success() {
	suite.mockAuthService.On("Register", mock.Anything, mock.MatchedBy(func(p portssvc.RegisterParams) bool {
		return p.Email == "alice@x.com" && p.Password == "Password1!" && p.FirstName == "Alice"
	})).Return(authResultFixture(), nil).Once()

	w := suite.postJSON("/api/v1/auth/register", dto.RegisterRequest{
		Email:     "alice@x.com",
		Password:  "Password1!",
		FirstName: "Alice",
		LastName:  "A",
	}, nil)

	suite.Equal(http.StatusCreated, w.Code)

	var body dto.AuthResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal("Registration successful", body.Message)
	suite.Equal("access-jwt", body.AccessToken)
	suite.Equal("alice@x.com", body.User.Email)
	suite.NotContains(w.Body.String(), "passwordHash")

	cookie := suite.refreshCookie(w)
	suite.Require().NotNil(cookie)
	suite.Equal("refresh-jwt", cookie.Value)
	suite.True(cookie.HttpOnly)
	suite.Equal("/api/v1/auth", cookie.Path)
	suite.Equal(http.SameSiteStrictMode, cookie.SameSite)

	suite.mockAuthService.AssertExpectations(suite.T())
}

func (suite *AuthHandlerTestSuite) TestRegister_DuplicateEmail() {
	suite.mockAuthService.On("Register", mock.Anything, mock.AnythingOfType("services.RegisterParams")).
		Return(nil, apperrors.ErrDuplicateEmail).Once()

	w := suite.postJSON("/api/v1/auth/register", dto.RegisterRequest{
		Email:     "alice@x.com",
		Password:  "Password1!",
		FirstName: "Alice",
		LastName:  "A",
	}, nil)

	suite.Equal(http.StatusConflict, w.Code)
	suite.Contains(w.Body.String(), "User already exists")
	suite.Nil(suite.refreshCookie(w))
}

func (suite *AuthHandlerTestSuite) TestRegister_ValidationRejectsShortPassword() {
	w := suite.postJSON("/api/v1/auth/register", dto.RegisterRequest{
		Email:     "alice@x.com",
		Password:  "short",
		FirstName: "Alice",
		LastName:  "A",
	}, nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockAuthService.AssertNotCalled(suite.T(), "Register", mock.Anything, mock.Anything)
}

// --- Login Tests ---

func (suite *AuthHandlerTestSuite) TestLogin_Success() {
	suite.mockAuthService.On("Login", mock.Anything, "alice@x.com", "Password1!").
		Return(authResultFixture(), nil).Once()

	w := suite.postJSON("/api/v1/auth/login", dto.LoginRequest{
		Email:    "alice@x.com",
		Password: "Password1!",
	}, nil)

	suite.Equal(http.StatusOK, w.Code)

	var body dto.AuthResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal("Login successful", body.Message)
	suite.Equal("access-jwt", body.AccessToken)

	cookie := suite.refreshCookie(w)
	suite.Require().NotNil(cookie)
	suite.Equal("refresh-jwt", cookie.Value)
}

func (suite *AuthHandlerTestSuite) TestLogin_InvalidCredentials() {
	suite.mockAuthService.On("Login", mock.Anything, "alice@x.com", "wrong").
		Return(nil, apperrors.ErrInvalidCredentials).Once()

	w := suite.postJSON("/api/v1/auth/login", dto.LoginRequest{
		Email:    "alice@x.com",
		Password: "wrong",
	}, nil)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Contains(w.Body.String(), "Invalid credentials")
	suite.Nil(suite.refreshCookie(w))
}

// --- Refresh Tests ---

func (suite *AuthHandlerTestSuite) TestRefresh_Success() {
	suite.mockAuthService.On("RefreshTokenPair", mock.Anything, "old-refresh").
		Return(&domain.TokenPair{AccessToken: "new-access", RefreshToken: "new-refresh"}, nil).Once()

	w := suite.postJSON("/api/v1/auth/refresh", nil, &http.Cookie{Name: "refreshToken", Value: "old-refresh"})

	suite.Equal(http.StatusOK, w.Code)

	var body dto.RefreshResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal("Tokens refreshed successfully", body.Message)
	suite.Equal("new-access", body.AccessToken)

	cookie := suite.refreshCookie(w)
	suite.Require().NotNil(cookie)
	suite.Equal("new-refresh", cookie.Value)
}

func (suite *AuthHandlerTestSuite) TestRefresh_MissingCookie() {
	w := suite.postJSON("/api/v1/auth/refresh", nil, nil)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Contains(w.Body.String(), "Refresh token required")
	suite.mockAuthService.AssertNotCalled(suite.T(), "RefreshTokenPair", mock.Anything, mock.Anything)
}

func (suite *AuthHandlerTestSuite) TestRefresh_ReplayedTokenClearsCookie() {
	suite.mockAuthService.On("RefreshTokenPair", mock.Anything, "replayed").
		Return(nil, apperrors.ErrRefreshTokenInvalid).Once()

	w := suite.postJSON("/api/v1/auth/refresh", nil, &http.Cookie{Name: "refreshToken", Value: "replayed"})

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Contains(w.Body.String(), "Invalid or expired refresh token")

	cookie := suite.refreshCookie(w)
	suite.Require().NotNil(cookie)
	suite.Empty(cookie.Value)
	suite.Less(cookie.MaxAge, 0)
}

// --- Logout Tests ---

func (suite *AuthHandlerTestSuite) TestLogout_Success() {
	suite.mockAuthService.On("Logout", mock.Anything, "live-refresh").Return(nil).Once()

	w := suite.postJSON("/api/v1/auth/logout", nil, &http.Cookie{Name: "refreshToken", Value: "live-refresh"})

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "Logout successful")

	cookie := suite.refreshCookie(w)
	suite.Require().NotNil(cookie)
	suite.Empty(cookie.Value)
}

func (suite *AuthHandlerTestSuite) TestLogout_SucceedsWhenRevokeFails() {
	suite.mockAuthService.On("Logout", mock.Anything, "live-refresh").
		Return(apperrors.NewInternalServerError("db down")).Once()

	w := suite.postJSON("/api/v1/auth/logout", nil, &http.Cookie{Name: "refreshToken", Value: "live-refresh"})

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "Logout successful")
}

func (suite *AuthHandlerTestSuite) TestLogout_SucceedsWithoutCookie() {
	suite.mockAuthService.On("Logout", mock.Anything, "").Return(nil).Once()

	w := suite.postJSON("/api/v1/auth/logout", nil, nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "Logout successful")
}

// --- Run Test Suite ---
func TestAuthHandler(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}
