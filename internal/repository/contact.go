package repository

import (
	"context"
	"fmt"

	"github.com/designclub49123/kalakranti/internal/domain"
	"github.com/designclub49123/kalakranti/internal/repository/dao"
)

type ContactDAO interface {
	Insert(ctx context.Context, submission dao.ContactSubmission) (dao.ContactSubmission, error)
	FindAll(ctx context.Context) ([]dao.ContactSubmission, error)
}

type ContactRepository struct {
	dao ContactDAO
}

func NewContactRepository(dao ContactDAO) *ContactRepository {
	return &ContactRepository{
		dao: dao,
	}
}

func (r *ContactRepository) Create(ctx context.Context, submission domain.ContactSubmission) (domain.ContactSubmission, error) {
	created, err := r.dao.Insert(ctx, dao.ContactSubmission{
		Name:      submission.Name,
		Email:     submission.Email,
		Phone:     submission.Phone,
		Message:   submission.Message,
		CreatedAt: submission.CreatedAt,
	})
	if err != nil {
		return domain.ContactSubmission{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *ContactRepository) FindAll(ctx context.Context) ([]domain.ContactSubmission, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	submissions := make([]domain.ContactSubmission, len(found))
	for i, s := range found {
		submissions[i] = r.daoToDomain(s)
	}

	return submissions, nil
}

func (r *ContactRepository) daoToDomain(s dao.ContactSubmission) domain.ContactSubmission {
	return domain.ContactSubmission{
		ID:        s.ID,
		Name:      s.Name,
		Email:     s.Email,
		Phone:     s.Phone,
		Message:   s.Message,
		CreatedAt: s.CreatedAt,
	}
}
