package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrGalleryImageNotFound = errors.New("gallery image not found")

type GalleryImage struct {
	ID uint `gorm:"primaryKey"`

	EventID    *uint `gorm:"index"`
	ImageURL   string `gorm:"not null"`
	Caption    string
	UploadedBy uint `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null"`
}

func (GalleryImage) TableName() string {
	return "gallery"
}

type GalleryDAO struct {
	db *gorm.DB
}

func NewGalleryDAO(db *gorm.DB) *GalleryDAO {
	return &GalleryDAO{
		db: db,
	}
}

func (d *GalleryDAO) Insert(ctx context.Context, image GalleryImage) (GalleryImage, error) {
	result := d.db.WithContext(ctx).Create(&image)
	if result.Error != nil {
		return GalleryImage{}, result.Error
	}

	return image, nil
}

func (d *GalleryDAO) FindAll(ctx context.Context, eventID uint) ([]GalleryImage, error) {
	query := d.db.WithContext(ctx)
	if eventID != 0 {
		query = query.Where("event_id = ?", eventID)
	}

	var images []GalleryImage
	result := query.Order("created_at DESC").Find(&images)
	if result.Error != nil {
		return nil, result.Error
	}

	return images, nil
}

func (d *GalleryDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&GalleryImage{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrGalleryImageNotFound
	}

	return nil
}
