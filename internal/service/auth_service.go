package service

import (
	"context"
	"errors"
	"strings"

	"lending_backend/internal/domain"
	"lending_backend/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// UserStore is the part of the user repository used for login
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type AuthService struct {
	users UserStore
}

func NewAuthService(users UserStore) *AuthService {
	return &AuthService{users: users}
}

// Login checks email and password and issues a bearer token
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, token, err := s.login(ctx, email, password)
	switch {
	case err == nil:
		LoginAttempts.WithLabelValues("success").Inc()
	case errors.Is(err, ErrInvalidCredentials):
		LoginAttempts.WithLabelValues("invalid").Inc()
	default:
		LoginAttempts.WithLabelValues("error").Inc()
	}
	return user, token, err
}

func (s *AuthService) login(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, "", ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !user.IsActive || !CheckPassword(user.PasswordHash, password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := GenerateJWT(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func CheckPassword(hash, password string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
