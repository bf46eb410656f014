package service

import (
	"time"

	"github.com/younger1612/Rd-storev1/internal/apierror"
	"github.com/younger1612/Rd-storev1/internal/config"
	"github.com/younger1612/Rd-storev1/internal/dto"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Single-operator deployment: one built-in account, no user table.
const demoUsername = "admin"
const demoPassword = "password"

type AuthService interface {
	Login(req dto.LoginRequest) (*dto.LoginResponse, error)
}

type authService struct {
	cfg          *config.Config
	passwordHash []byte
}

// NewAuthService hashes the built-in credential once at startup so Login can
// go through the same bcrypt comparison a user table would.
func NewAuthService(cfg *config.Config) (AuthService, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &authService{cfg: cfg, passwordHash: hash}, nil
}

func (s *authService) Login(req dto.LoginRequest) (*dto.LoginResponse, error) {
	if req.Username != demoUsername ||
		bcrypt.CompareHashAndPassword(s.passwordHash, []byte(req.Password)) != nil {
		return nil, apierror.NewValidation("invalid credentials")
	}

	expiresAt := time.Now().Add(time.Duration(s.cfg.JWTExpirationHours) * time.Hour)
	claims := jwt.MapClaims{
		"sub": req.Username,
		"iat": time.Now().Unix(),
		"exp": expiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, apierror.NewTxFailure("failed to sign token", err)
	}

	return &dto.LoginResponse{Token: signed, ExpiresAt: expiresAt}, nil
}
