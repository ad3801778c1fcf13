package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/designclub49123/kalakranti/internal/domain"
	"github.com/designclub49123/kalakranti/internal/repository"
)

var (
	ErrProfileEmailExists = repository.ErrProfileEmailExists
	ErrWrongPassword      = errors.New("wrong password")
)

type AuthProfileRepository interface {
	Create(ctx context.Context, profile domain.Profile) (domain.Profile, error)
	FindByEmail(ctx context.Context, email string) (domain.Profile, error)
}

type AuthService struct {
	repo AuthProfileRepository
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func NewAuthService(repo AuthProfileRepository) *AuthService {
	return &AuthService{
		repo: repo,
	}
}

// Signup registers a new account. Every self-service signup is a student;
// admin roles are granted out of band. Emails are stored lowercased so
// later lookups are case-insensitive.
func (s *AuthService) Signup(ctx context.Context, profile domain.Profile) (domain.Profile, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(profile.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.Profile{}, err
	}
	profile.Password = string(hash)
	profile.Email = normalizeEmail(profile.Email)
	profile.Role = domain.RoleStudent

	created, err := s.repo.Create(ctx, profile)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (domain.Profile, error) {
	profile, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return domain.Profile{}, ErrProfileNotFound
		}

		return domain.Profile{}, fmt.Errorf("s.repo.FindByEmail -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(profile.Password), []byte(password)); err != nil {
		return domain.Profile{}, ErrWrongPassword
	}

	return profile, nil
}
