package dao

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type AuditLog struct {
	ID uint `gorm:"primaryKey"`

	UserID  *uint  `gorm:"index"`
	Action  string `gorm:"not null"`
	Details JSONB

	CreatedAt time.Time `gorm:"not null"`
}

type AuditDAO struct {
	db *gorm.DB
}

func NewAuditDAO(db *gorm.DB) *AuditDAO {
	return &AuditDAO{
		db: db,
	}
}

func (d *AuditDAO) Insert(ctx context.Context, entry AuditLog) (AuditLog, error) {
	result := d.db.WithContext(ctx).Create(&entry)
	if result.Error != nil {
		return AuditLog{}, result.Error
	}

	return entry, nil
}

func (d *AuditDAO) FindRecent(ctx context.Context, limit int) ([]AuditLog, error) {
	var entries []AuditLog

	result := d.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries)
	if result.Error != nil {
		return nil, result.Error
	}

	return entries, nil
}
