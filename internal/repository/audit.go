package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/designclub49123/kalakranti/internal/domain"
	"github.com/designclub49123/kalakranti/internal/repository/dao"
)

type AuditDAO interface {
	Insert(ctx context.Context, entry dao.AuditLog) (dao.AuditLog, error)
	FindRecent(ctx context.Context, limit int) ([]dao.AuditLog, error)
}

type AuditRepository struct {
	dao AuditDAO
}

func NewAuditRepository(dao AuditDAO) *AuditRepository {
	return &AuditRepository{
		dao: dao,
	}
}

func (r *AuditRepository) Create(ctx context.Context, entry domain.AuditLog) (domain.AuditLog, error) {
	created, err := r.dao.Insert(ctx, dao.AuditLog{
		UserID:    entry.UserID,
		Action:    entry.Action,
		Details:   dao.JSONB(entry.Details),
		CreatedAt: entry.CreatedAt,
	})
	if err != nil {
		return domain.AuditLog{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *AuditRepository) FindRecent(ctx context.Context, limit int) ([]domain.AuditLog, error) {
	found, err := r.dao.FindRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindRecent -> %w", err)
	}

	entries := make([]domain.AuditLog, len(found))
	for i, e := range found {
		entries[i] = r.daoToDomain(e)
	}

	return entries, nil
}

func (r *AuditRepository) daoToDomain(e dao.AuditLog) domain.AuditLog {
	return domain.AuditLog{
		ID:        e.ID,
		UserID:    e.UserID,
		Action:    e.Action,
		Details:   json.RawMessage(e.Details),
		CreatedAt: e.CreatedAt,
	}
}
