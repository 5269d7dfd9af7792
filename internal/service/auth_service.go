package service

import (
	"errors"
	"os"

	"go-resell-sync/pkg/jwt"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type LoginResponse struct {
	Token string `json:"token"`
	Email string `json:"email"`
}

// AuthService authenticates the single back-office admin. Credentials come
// from ADMIN_EMAIL and ADMIN_PASSWORD_HASH (a bcrypt hash) in the environment.
type AuthService interface {
	Login(email, password string) (*LoginResponse, error)
}

type authService struct{}

func NewAuthService() AuthService {
	return &authService{}
}

func (s *authService) Login(email, password string) (*LoginResponse, error) {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminHash := os.Getenv("ADMIN_PASSWORD_HASH")
	if adminEmail == "" || adminHash == "" {
		return nil, errors.New("admin credentials are not configured")
	}

	if email != adminEmail {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(adminHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := jwt.GenerateToken(email)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{Token: token, Email: email}, nil
}
