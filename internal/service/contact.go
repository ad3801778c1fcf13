package service

import (
	"context"
	"fmt"

	"github.com/designclub49123/kalakranti/internal/domain"
)

type ContactRepository interface {
	Create(ctx context.Context, submission domain.ContactSubmission) (domain.ContactSubmission, error)
	FindAll(ctx context.Context) ([]domain.ContactSubmission, error)
}

type ContactService struct {
	repo ContactRepository
}

func NewContactService(repo ContactRepository) *ContactService {
	return &ContactService{
		repo: repo,
	}
}

// Submit is public; anyone can send a message without an account.
func (s *ContactService) Submit(ctx context.Context, submission domain.ContactSubmission) (domain.ContactSubmission, error) {
	created, err := s.repo.Create(ctx, submission)
	if err != nil {
		return domain.ContactSubmission{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *ContactService) ListSubmissions(ctx context.Context, actor domain.Actor) ([]domain.ContactSubmission, error) {
	if !actor.HasAdminAccess() {
		return nil, ErrForbidden
	}

	submissions, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return submissions, nil
}
