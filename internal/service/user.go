package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/designclub49123/kalakranti/internal/domain"
	"github.com/designclub49123/kalakranti/internal/repository"
)

var ErrProfileNotFound = repository.ErrProfileNotFound

type UserProfileRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Profile, error)
	FindAll(ctx context.Context) ([]domain.Profile, error)
	Update(ctx context.Context, profile domain.Profile) (domain.Profile, error)
}

type UserService struct {
	repo UserProfileRepository
}

func NewUserService(repo UserProfileRepository) *UserService {
	return &UserService{
		repo: repo,
	}
}

func (s *UserService) GetProfile(ctx context.Context, id uint) (domain.Profile, error) {
	profile, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return domain.Profile{}, ErrProfileNotFound
		}

		return domain.Profile{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return profile, nil
}

// UpdateProfile saves the mutable fields of the caller's own profile.
// Role and email never change through this path.
func (s *UserService) UpdateProfile(ctx context.Context, profile domain.Profile) (domain.Profile, error) {
	updated, err := s.repo.Update(ctx, profile)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return domain.Profile{}, ErrProfileNotFound
		}

		return domain.Profile{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *UserService) ListProfiles(ctx context.Context, actor domain.Actor) ([]domain.Profile, error) {
	if !actor.HasAdminAccess() {
		return nil, ErrForbidden
	}

	profiles, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return profiles, nil
}
