package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrCertificateExists = errors.New("certificate already issued for this subject")

type Certificate struct {
	ID uint `gorm:"primaryKey"`

	Type    string `gorm:"not null;uniqueIndex:idx_certificates_subject"`
	UserID  uint   `gorm:"not null;uniqueIndex:idx_certificates_subject"`
	StallID *uint  `gorm:"uniqueIndex:idx_certificates_subject"`
	EventID uint   `gorm:"not null;index"`

	CertificateURL string
	BlockchainHash string

	GeneratedAt time.Time `gorm:"not null"`
}

type CertificateDAO struct {
	db *gorm.DB
}

func NewCertificateDAO(db *gorm.DB) *CertificateDAO {
	return &CertificateDAO{
		db: db,
	}
}

func (d *CertificateDAO) Insert(ctx context.Context, cert Certificate) (Certificate, error) {
	result := d.db.WithContext(ctx).Create(&cert)
	if result.Error != nil {
		if isUniqueViolation(result.Error, "idx_certificates_subject") {
			return Certificate{}, ErrCertificateExists
		}

		return Certificate{}, result.Error
	}

	return cert, nil
}

func (d *CertificateDAO) FindByUserID(ctx context.Context, userID uint) ([]Certificate, error) {
	var certs []Certificate

	result := d.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("generated_at DESC").
		Find(&certs)
	if result.Error != nil {
		return nil, result.Error
	}

	return certs, nil
}

func (d *CertificateDAO) CountByStall(ctx context.Context, stallID uint) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).
		Model(&Certificate{}).
		Where("stall_id = ?", stallID).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}
