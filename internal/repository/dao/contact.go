package dao

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type ContactSubmission struct {
	ID uint `gorm:"primaryKey"`

	Name    string `gorm:"not null"`
	Email   string `gorm:"not null"`
	Phone   string
	Message string `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null"`
}

type ContactDAO struct {
	db *gorm.DB
}

func NewContactDAO(db *gorm.DB) *ContactDAO {
	return &ContactDAO{
		db: db,
	}
}

func (d *ContactDAO) Insert(ctx context.Context, submission ContactSubmission) (ContactSubmission, error) {
	result := d.db.WithContext(ctx).Create(&submission)
	if result.Error != nil {
		return ContactSubmission{}, result.Error
	}

	return submission, nil
}

func (d *ContactDAO) FindAll(ctx context.Context) ([]ContactSubmission, error) {
	var submissions []ContactSubmission

	result := d.db.WithContext(ctx).Order("created_at DESC").Find(&submissions)
	if result.Error != nil {
		return nil, result.Error
	}

	return submissions, nil
}
