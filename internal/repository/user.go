package repository

import (
	"context"
	"fmt"

	"github.com/designclub49123/kalakranti/internal/domain"
	"github.com/designclub49123/kalakranti/internal/repository/dao"
)

var (
	ErrProfileEmailExists = dao.ErrProfileEmailExists
	ErrProfileNotFound    = dao.ErrProfileNotFound
)

type ProfileDAO interface {
	Insert(ctx context.Context, profile dao.Profile) (dao.Profile, error)
	FindByID(ctx context.Context, id uint) (dao.Profile, error)
	FindByEmail(ctx context.Context, email string) (dao.Profile, error)
	FindByIDs(ctx context.Context, ids []uint) ([]dao.Profile, error)
	FindAll(ctx context.Context) ([]dao.Profile, error)
	Update(ctx context.Context, profile dao.Profile) (dao.Profile, error)
}

type ProfileRepository struct {
	dao ProfileDAO
}

func NewProfileRepository(dao ProfileDAO) *ProfileRepository {
	return &ProfileRepository{
		dao: dao,
	}
}

func (r *ProfileRepository) Create(ctx context.Context, profile domain.Profile) (domain.Profile, error) {
	created, err := r.dao.Insert(ctx, dao.Profile{
		FullName: profile.FullName,
		Email:    profile.Email,
		Phone:    profile.Phone,
		Role:     string(profile.Role),
		Password: profile.Password,
	})
	if err != nil {
		return domain.Profile{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *ProfileRepository) FindByID(ctx context.Context, id uint) (domain.Profile, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *ProfileRepository) FindByEmail(ctx context.Context, email string) (domain.Profile, error) {
	found, err := r.dao.FindByEmail(ctx, email)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("r.dao.FindByEmail -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *ProfileRepository) FindByIDs(ctx context.Context, ids []uint) ([]domain.Profile, error) {
	found, err := r.dao.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByIDs -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *ProfileRepository) FindAll(ctx context.Context) ([]domain.Profile, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *ProfileRepository) Update(ctx context.Context, profile domain.Profile) (domain.Profile, error) {
	updated, err := r.dao.Update(ctx, dao.Profile{
		ID:        profile.ID,
		FullName:  profile.FullName,
		Phone:     profile.Phone,
		AvatarURL: profile.AvatarURL,
	})
	if err != nil {
		return domain.Profile{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *ProfileRepository) daoToDomain(p dao.Profile) domain.Profile {
	return domain.Profile{
		ID:        p.ID,
		FullName:  p.FullName,
		Email:     p.Email,
		Phone:     p.Phone,
		Role:      domain.Role(p.Role),
		AvatarURL: p.AvatarURL,
		Password:  p.Password,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func (r *ProfileRepository) daosToDomain(profiles []dao.Profile) []domain.Profile {
	out := make([]domain.Profile, len(profiles))
	for i, p := range profiles {
		out[i] = r.daoToDomain(p)
	}
	return out
}
