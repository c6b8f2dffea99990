package middleware_test

import (
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
	"github.com/inboxd/backend/internal/core/services"
	"github.com/inboxd/backend/internal/middleware"
	"github.com/inboxd/backend/internal/platform/config"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// --- Test Suite ---
type AuthMiddlewareTestSuite struct {
	suite.Suite
	router          *gin.Engine
	cfg             *config.Config
	tokenService    portssvc.TokenSvcFacade
	mockUserService *MockUserService
	seenPayload     *domain.TokenPayload
}

func (suite *AuthMiddlewareTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.cfg = &config.Config{
		JWTIssuer:                "inboxd-test",
		JWTAccessSecret:          "access-secret-for-tests",
		JWTRefreshSecret:         "refresh-secret-for-tests",
		JWTAccessExpiryDuration:  15 * time.Minute,
		JWTRefreshExpiryDuration: 7 * 24 * time.Hour,
	}
	suite.tokenService = services.NewTokenService(suite.cfg)
	suite.mockUserService = new(MockUserService)
	suite.seenPayload = nil

	suite.router = gin.New()
	suite.router.GET("/protected",
		middleware.AuthMiddleware(suite.tokenService, suite.mockUserService),
		func(c *gin.Context) {
			if payload, ok := middleware.GetAuthPayloadFromContext(c); ok {
				suite.seenPayload = &payload
			}
			c.JSON(http.StatusOK, gin.H{"message": "ok"})
		})
}

func (suite *AuthMiddlewareTestSuite) serve(authHeader string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *AuthMiddlewareTestSuite) errorMessage(w *httptest.ResponseRecorder) string {
	var body map[string]string
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	return body["error"]
}

func (suite *AuthMiddlewareTestSuite) issueToken(userID, email string) string {
	token, _, err := suite.tokenService.IssueAccessToken(context.Background(), domain.TokenPayload{UserID: userID, Email: email})
	suite.Require().NoError(err)
	return token
}

// --- Test Cases ---

func (suite *AuthMiddlewareTestSuite) TestMissingHeader() {
	w := suite.serve("")

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Equal("Access token required", suite.errorMessage(w))
	suite.Nil(suite.seenPayload)
}

func (suite *AuthMiddlewareTestSuite) TestMalformedHeader() {
	for _, header := range []string{"Token abc", "Bearer", "Bearer a b"} {
		w := suite.serve(header)
		suite.Equal(http.StatusUnauthorized, w.Code, "header: %q", header)
		suite.Equal("Authorization header format must be Bearer {token}", suite.errorMessage(w))
	}
	suite.Nil(suite.seenPayload)
}

func (suite *AuthMiddlewareTestSuite) TestInvalidToken() {
	w := suite.serve("Bearer not-a-real-token")

	suite.Equal(http.StatusForbidden, w.Code)
	suite.Equal("Invalid or expired token", suite.errorMessage(w))
	suite.mockUserService.AssertNotCalled(suite.T(), "GetUserByID", mock.Anything, mock.Anything)
}

func (suite *AuthMiddlewareTestSuite) TestExpiredToken() {
	expiredCfg := *suite.cfg
	expiredCfg.JWTAccessExpiryDuration = -1 * time.Minute
	expiredSigner := services.NewTokenService(&expiredCfg)
	token, _, err := expiredSigner.IssueAccessToken(context.Background(), domain.TokenPayload{UserID: "user-1", Email: "alice@x.com"})
	suite.Require().NoError(err)

	w := suite.serve("Bearer " + token)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.Equal("Invalid or expired token", suite.errorMessage(w))
}

func (suite *AuthMiddlewareTestSuite) TestRefreshTokenRejectedAsAccess() {
	token, _, err := suite.tokenService.IssueRefreshToken(context.Background(), domain.TokenPayload{UserID: "user-1", Email: "alice@x.com"})
	suite.Require().NoError(err)

	w := suite.serve("Bearer " + token)

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *AuthMiddlewareTestSuite) TestDeletedUser() {
	token := suite.issueToken("user-gone", "gone@x.com")
	suite.mockUserService.On("GetUserByID", mock.Anything, "user-gone").Return(nil, apperrors.ErrNotFound).Once()

	w := suite.serve("Bearer " + token)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Equal("User not found", suite.errorMessage(w))
	suite.mockUserService.AssertExpectations(suite.T())
}

func (suite *AuthMiddlewareTestSuite) TestUserLookupFailure() {
	token := suite.issueToken("user-1", "alice@x.com")
	suite.mockUserService.On("GetUserByID", mock.Anything, "user-1").Return(nil, apperrors.NewInternalServerError("db down")).Once()

	w := suite.serve("Bearer " + token)

	suite.Equal(http.StatusInternalServerError, w.Code)
}

func (suite *AuthMiddlewareTestSuite) TestValidTokenAttachesPayload() {
	token := suite.issueToken("user-1", "alice@x.com")
	user := &domain.User{UserID: "user-1", Email: "alice@x.com"}
	suite.mockUserService.On("GetUserByID", mock.Anything, "user-1").Return(user, nil).Once()

	w := suite.serve("Bearer " + token)

	suite.Equal(http.StatusOK, w.Code)
	suite.Require().NotNil(suite.seenPayload)
	suite.Equal("user-1", suite.seenPayload.UserID)
	suite.Equal("alice@x.com", suite.seenPayload.Email)
	suite.mockUserService.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestAuthMiddleware(t *testing.T) {
	suite.Run(t, new(AuthMiddlewareTestSuite))
}
