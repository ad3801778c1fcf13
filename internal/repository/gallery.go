package repository

import (
	"context"
	"fmt"

	"github.com/designclub49123/kalakranti/internal/domain"
	"github.com/designclub49123/kalakranti/internal/repository/dao"
)

var ErrGalleryImageNotFound = dao.ErrGalleryImageNotFound

type GalleryDAO interface {
	Insert(ctx context.Context, image dao.GalleryImage) (dao.GalleryImage, error)
	FindAll(ctx context.Context, eventID uint) ([]dao.GalleryImage, error)
	Delete(ctx context.Context, id uint) error
}

type GalleryRepository struct {
	dao GalleryDAO
}

func NewGalleryRepository(dao GalleryDAO) *GalleryRepository {
	return &GalleryRepository{
		dao: dao,
	}
}

func (r *GalleryRepository) Create(ctx context.Context, image domain.GalleryImage) (domain.GalleryImage, error) {
	created, err := r.dao.Insert(ctx, dao.GalleryImage{
		EventID:    image.EventID,
		ImageURL:   image.ImageURL,
		Caption:    image.Caption,
		UploadedBy: image.UploadedBy,
		CreatedAt:  image.CreatedAt,
	})
	if err != nil {
		return domain.GalleryImage{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *GalleryRepository) FindAll(ctx context.Context, eventID uint) ([]domain.GalleryImage, error) {
	found, err := r.dao.FindAll(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	images := make([]domain.GalleryImage, len(found))
	for i, img := range found {
		images[i] = r.daoToDomain(img)
	}

	return images, nil
}

func (r *GalleryRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *GalleryRepository) daoToDomain(img dao.GalleryImage) domain.GalleryImage {
	return domain.GalleryImage{
		ID:         img.ID,
		EventID:    img.EventID,
		ImageURL:   img.ImageURL,
		Caption:    img.Caption,
		UploadedBy: img.UploadedBy,
		CreatedAt:  img.CreatedAt,
	}
}
