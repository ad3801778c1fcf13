package repository

import (
	"context"
	"fmt"

	"github.com/designclub49123/kalakranti/internal/domain"
	"github.com/designclub49123/kalakranti/internal/repository/dao"
)

var ErrCertificateExists = dao.ErrCertificateExists

type CertificateDAO interface {
	Insert(ctx context.Context, cert dao.Certificate) (dao.Certificate, error)
	FindByUserID(ctx context.Context, userID uint) ([]dao.Certificate, error)
	CountByStall(ctx context.Context, stallID uint) (int64, error)
}

type CertificateRepository struct {
	dao CertificateDAO
}

func NewCertificateRepository(dao CertificateDAO) *CertificateRepository {
	return &CertificateRepository{
		dao: dao,
	}
}

func (r *CertificateRepository) Create(ctx context.Context, cert domain.Certificate) (domain.Certificate, error) {
	created, err := r.dao.Insert(ctx, dao.Certificate{
		Type:           string(cert.Type),
		UserID:         cert.UserID,
		StallID:        cert.StallID,
		EventID:        cert.EventID,
		CertificateURL: cert.CertificateURL,
		BlockchainHash: cert.BlockchainHash,
		GeneratedAt:    cert.GeneratedAt,
	})
	if err != nil {
		return domain.Certificate{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *CertificateRepository) FindByUserID(ctx context.Context, userID uint) ([]domain.Certificate, error) {
	found, err := r.dao.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByUserID -> %w", err)
	}

	certs := make([]domain.Certificate, len(found))
	for i, c := range found {
		certs[i] = r.daoToDomain(c)
	}

	return certs, nil
}

func (r *CertificateRepository) CountByStall(ctx context.Context, stallID uint) (int64, error) {
	count, err := r.dao.CountByStall(ctx, stallID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountByStall -> %w", err)
	}

	return count, nil
}

func (r *CertificateRepository) daoToDomain(c dao.Certificate) domain.Certificate {
	return domain.Certificate{
		ID:             c.ID,
		Type:           domain.CertificateType(c.Type),
		UserID:         c.UserID,
		StallID:        c.StallID,
		EventID:        c.EventID,
		CertificateURL: c.CertificateURL,
		BlockchainHash: c.BlockchainHash,
		GeneratedAt:    c.GeneratedAt,
	}
}
