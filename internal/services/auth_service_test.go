// internal/services/auth_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frameit/frameit-backend/internal/config"
	"github.com/frameit/frameit-backend/internal/models"
)

func testAuthService() *AuthService {
	return NewAuthService(nil, &config.Config{
		Environment: "test",
		JWT:         config.JWTConfig{SecretKey: "test", TokenTTL: 168},
	})
}

func TestRegisterRejectsInvalidEmail(t *testing.T) {
	svc := testAuthService()

	_, err := svc.Register(&RegisterRequest{
		Email:     "not-an-email",
		Password:  "s3cret-pass",
		FirstName: "Ada",
		LastName:  "Lovelace",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	svc := testAuthService()

	_, err := svc.Register(&RegisterRequest{
		Email:     "ada@example.com",
		Password:  "short",
		FirstName: "Ada",
		LastName:  "Lovelace",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestLoginRejectsMissingFields(t *testing.T) {
	svc := testAuthService()

	_, err := svc.Login(&LoginRequest{Email: "ada@example.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestCookieMaxAgeMatchesTokenTTL(t *testing.T) {
	svc := testAuthService()

	assert.Equal(t, 168*3600, svc.CookieMaxAge())
}

func TestSecureCookiesOnlyInProduction(t *testing.T) {
	assert.False(t, testAuthService().SecureCookies())

	prod := NewAuthService(nil, &config.Config{Environment: "production"})
	assert.True(t, prod.SecureCookies())
}

func TestPasswordHashRoundTrip(t *testing.T) {
	var user models.User
	require.NoError(t, user.SetPassword("correct horse battery"))

	assert.NotEqual(t, "correct horse battery", user.PasswordHash)
	assert.NoError(t, user.CheckPassword("correct horse battery"))
	assert.Error(t, user.CheckPassword("wrong"))
}
