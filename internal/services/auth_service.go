// internal/services/auth_service.go
package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/frameit/frameit-backend/internal/config"
	"github.com/frameit/frameit-backend/internal/models"
	"github.com/frameit/frameit-backend/internal/utils"
)

type AuthService struct {
	db  *gorm.DB
	cfg *config.Config
}

type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserAuthResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

type AdminAuthResponse struct {
	Admin *models.Admin `json:"admin"`
	Token string        `json:"token"`
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{
		db:  db,
		cfg: cfg,
	}
}

func (s *AuthService) tokenTTL() time.Duration {
	return time.Duration(s.cfg.JWT.TokenTTL) * time.Hour
}

func (s *AuthService) Register(req *RegisterRequest) (*UserAuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var existing models.User
	if err := s.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return nil, errors.New("user already exists")
	}

	user := &models.User{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}

	// Hashing happens here, not in an ORM hook, so a failed hash never
	// reaches the database.
	if err := user.SetPassword(req.Password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := utils.GenerateToken(user.ID, s.tokenTTL())
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &UserAuthResponse{User: user, Token: token}, nil
}

func (s *AuthService) Login(req *LoginRequest) (*UserAuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var user models.User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("invalid credentials")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if err := user.CheckPassword(req.Password); err != nil {
		return nil, errors.New("invalid credentials")
	}

	token, err := utils.GenerateToken(user.ID, s.tokenTTL())
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &UserAuthResponse{User: &user, Token: token}, nil
}

func (s *AuthService) AdminLogin(req *LoginRequest) (*AdminAuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	// Admin emails are stored lower-cased; normalize before lookup.
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var admin models.Admin
	if err := s.db.Where("email = ?", email).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("invalid credentials")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if err := admin.CheckPassword(req.Password); err != nil {
		return nil, errors.New("invalid credentials")
	}

	token, err := utils.GenerateToken(admin.ID, s.tokenTTL())
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &AdminAuthResponse{Admin: &admin, Token: token}, nil
}

// CookieMaxAge is the token cookie lifetime in seconds, matching the JWT
// expiry.
func (s *AuthService) CookieMaxAge() int {
	return s.cfg.JWT.TokenTTL * 3600
}

// SecureCookies reports whether auth cookies should carry the Secure flag.
func (s *AuthService) SecureCookies() bool {
	return s.cfg.Environment == "production"
}
