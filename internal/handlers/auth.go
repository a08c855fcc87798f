// internal/handlers/auth.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/frameit/frameit-backend/internal/middleware"
	"github.com/frameit/frameit-backend/internal/services"
	"github.com/frameit/frameit-backend/internal/utils"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// setTokenCookie mirrors the token into an httpOnly cookie so browser
// clients do not have to manage the Authorization header themselves.
func (h *AuthHandler) setTokenCookie(c *gin.Context, token string) {
	c.SetCookie(
		middleware.TokenCookie,
		token,
		h.authService.CookieMaxAge(),
		"/",
		"",
		h.authService.SecureCookies(),
		true,
	)
}

// POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	authResponse, err := h.authService.Register(&req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	h.setTokenCookie(c, authResponse.Token)
	utils.CreatedResponse(c, gin.H{
		"user":  authResponse.User,
		"token": authResponse.Token,
	})
}

// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	authResponse, err := h.authService.Login(&req)
	if err != nil {
		utils.UnauthorizedResponse(c, err.Error())
		return
	}

	h.setTokenCookie(c, authResponse.Token)
	utils.SuccessResponse(c, gin.H{
		"user":  authResponse.User,
		"token": authResponse.Token,
	})
}

// POST /api/auth/admin/login
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	authResponse, err := h.authService.AdminLogin(&req)
	if err != nil {
		utils.UnauthorizedResponse(c, err.Error())
		return
	}

	h.setTokenCookie(c, authResponse.Token)
	utils.SuccessResponse(c, gin.H{
		"admin": authResponse.Admin,
		"token": authResponse.Token,
	})
}

// POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(middleware.TokenCookie, "", -1, "/", "", h.authService.SecureCookies(), true)
	utils.SuccessResponse(c, gin.H{"message": "Logged out"})
}

// GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c, "Authentication required")
		return
	}
	utils.SuccessResponse(c, gin.H{"user": user})
}
