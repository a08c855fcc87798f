// internal/middleware/auth.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/frameit/frameit-backend/internal/models"
	"github.com/frameit/frameit-backend/internal/utils"
)

const (
	// TokenCookie is the httpOnly cookie the auth handlers set; it is the
	// fallback token source when no Authorization header is present.
	TokenCookie = "token"

	ContextUserKey  = "current_user"
	ContextAdminKey = "current_admin"
)

// PrincipalLookup resolves a verified token subject to a principal. It is
// injected so user and admin guards share one authenticator, and so tests
// can run without a database.
type PrincipalLookup func(id uuid.UUID) (interface{}, error)

// ExtractToken pulls the bearer token from the Authorization header (with
// or without the "Bearer " prefix) or the token cookie.
func ExtractToken(c *gin.Context) string {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	if cookie, err := c.Cookie(TokenCookie); err == nil {
		return cookie
	}
	return ""
}

// Authenticate verifies the request token and attaches the looked-up
// principal to the context under contextKey. Missing token, bad signature,
// and unknown subject all fail the same way: 401, no state change.
func Authenticate(contextKey string, lookup PrincipalLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ExtractToken(c)
		if token == "" {
			utils.UnauthorizedResponse(c, "Authentication required")
			c.Abort()
			return
		}

		principalID, err := utils.ValidateToken(token)
		if err != nil {
			utils.UnauthorizedResponse(c, "Invalid or expired token")
			c.Abort()
			return
		}

		principal, err := lookup(principalID)
		if err != nil {
			utils.UnauthorizedResponse(c, "Invalid token")
			c.Abort()
			return
		}

		c.Set(contextKey, principal)
		c.Next()
	}
}

// UserRequired guards storefront endpoints.
func UserRequired(db *gorm.DB) gin.HandlerFunc {
	return Authenticate(ContextUserKey, func(id uuid.UUID) (interface{}, error) {
		var user models.User
		if err := db.First(&user, "id = ?", id).Error; err != nil {
			return nil, err
		}
		return &user, nil
	})
}

// AdminRequired guards admin endpoints. Admins live in their own table, so
// a user token can never pass this guard.
func AdminRequired(db *gorm.DB) gin.HandlerFunc {
	return Authenticate(ContextAdminKey, func(id uuid.UUID) (interface{}, error) {
		var admin models.Admin
		if err := db.First(&admin, "id = ?", id).Error; err != nil {
			return nil, err
		}
		return &admin, nil
	})
}

// CurrentUser returns the authenticated user attached by UserRequired.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, exists := c.Get(ContextUserKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}

// CurrentAdmin returns the authenticated admin attached by AdminRequired.
func CurrentAdmin(c *gin.Context) (*models.Admin, bool) {
	v, exists := c.Get(ContextAdminKey)
	if !exists {
		return nil, false
	}
	admin, ok := v.(*models.Admin)
	return admin, ok
}
