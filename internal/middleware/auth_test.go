// internal/middleware/auth_test.go
package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/frameit/frameit-backend/internal/models"
	"github.com/frameit/frameit-backend/internal/utils"
)

type AuthMiddlewareTestSuite struct {
	suite.Suite
	router *gin.Engine
	userID uuid.UUID
}

func (suite *AuthMiddlewareTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	utils.SetJWTSecret("middleware-test-secret")
	suite.userID = uuid.New()
}

func (suite *AuthMiddlewareTestSuite) SetupTest() {
	suite.router = gin.New()

	lookup := func(id uuid.UUID) (interface{}, error) {
		if id != suite.userID {
			return nil, errors.New("record not found")
		}
		return &models.User{Email: "shopper@example.com"}, nil
	}

	suite.router.GET("/protected", Authenticate(ContextUserKey, lookup), func(c *gin.Context) {
		user, ok := CurrentUser(c)
		require.True(suite.T(), ok)
		c.JSON(http.StatusOK, gin.H{"email": user.Email})
	})
}

func (suite *AuthMiddlewareTestSuite) token() string {
	token, err := utils.GenerateToken(suite.userID, time.Hour)
	require.NoError(suite.T(), err)
	return token
}

func (suite *AuthMiddlewareTestSuite) request(modify func(*http.Request)) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("GET", "/protected", nil)
	if modify != nil {
		modify(req)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *AuthMiddlewareTestSuite) TestNoToken() {
	w := suite.request(nil)
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

func (suite *AuthMiddlewareTestSuite) TestBearerHeader() {
	token := suite.token()
	w := suite.request(func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
	})
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Contains(suite.T(), w.Body.String(), "shopper@example.com")
}

func (suite *AuthMiddlewareTestSuite) TestBareHeaderWithoutBearerPrefix() {
	token := suite.token()
	w := suite.request(func(req *http.Request) {
		req.Header.Set("Authorization", token)
	})
	assert.Equal(suite.T(), http.StatusOK, w.Code)
}

func (suite *AuthMiddlewareTestSuite) TestCookieFallback() {
	w := suite.request(func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: TokenCookie, Value: suite.token()})
	})
	assert.Equal(suite.T(), http.StatusOK, w.Code)
}

func (suite *AuthMiddlewareTestSuite) TestHeaderTakesPrecedenceOverCookie() {
	w := suite.request(func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer garbage")
		req.AddCookie(&http.Cookie{Name: TokenCookie, Value: suite.token()})
	})
	// An invalid header token is not silently papered over by the cookie.
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

func (suite *AuthMiddlewareTestSuite) TestInvalidToken() {
	w := suite.request(func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer not-a-jwt")
	})
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

func (suite *AuthMiddlewareTestSuite) TestExpiredToken() {
	token, err := utils.GenerateToken(suite.userID, -time.Minute)
	require.NoError(suite.T(), err)

	w := suite.request(func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
	})
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

func (suite *AuthMiddlewareTestSuite) TestUnknownSubject() {
	token, err := utils.GenerateToken(uuid.New(), time.Hour)
	require.NoError(suite.T(), err)

	w := suite.request(func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
	})
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

func (suite *AuthMiddlewareTestSuite) TestAdminGuardAttachesAdmin() {
	adminID := uuid.New()
	lookup := func(id uuid.UUID) (interface{}, error) {
		if id != adminID {
			return nil, errors.New("record not found")
		}
		return &models.Admin{Email: "ops@frameit.test"}, nil
	}

	r := gin.New()
	r.GET("/admin-only", Authenticate(ContextAdminKey, lookup), func(c *gin.Context) {
		admin, ok := CurrentAdmin(c)
		require.True(suite.T(), ok)
		// A user-context read must not see the admin principal.
		_, userOK := CurrentUser(c)
		assert.False(suite.T(), userOK)
		c.JSON(http.StatusOK, gin.H{"email": admin.Email})
	})

	token, err := utils.GenerateToken(adminID, time.Hour)
	require.NoError(suite.T(), err)

	req, _ := http.NewRequest("GET", "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Contains(suite.T(), w.Body.String(), "ops@frameit.test")
}

func TestAuthMiddlewareTestSuite(t *testing.T) {
	suite.Run(t, new(AuthMiddlewareTestSuite))
}

func TestExtractTokenEmptyRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request, _ = http.NewRequest("GET", "/", nil)

	assert.Empty(t, ExtractToken(c))
}
