package service

import (
	"context"
	"fmt"

	"github.com/designclub49123/kalakranti/internal/domain"
)

type GalleryRepository interface {
	Create(ctx context.Context, image domain.GalleryImage) (domain.GalleryImage, error)
	FindAll(ctx context.Context, eventID uint) ([]domain.GalleryImage, error)
	Delete(ctx context.Context, id uint) error
}

// ImageStore persists uploaded image bytes and returns a public URL.
type ImageStore interface {
	Upload(ctx context.Context, filename string, data []byte) (string, error)
}

type GalleryService struct {
	repo  GalleryRepository
	store ImageStore
}

func NewGalleryService(repo GalleryRepository, store ImageStore) *GalleryService {
	return &GalleryService{
		repo:  repo,
		store: store,
	}
}

// AddImage uploads the image bytes and records the gallery entry.
func (s *GalleryService) AddImage(ctx context.Context, actor domain.Actor, image domain.GalleryImage, filename string, data []byte) (domain.GalleryImage, error) {
	if !actor.HasAdminAccess() {
		return domain.GalleryImage{}, ErrForbidden
	}

	url, err := s.store.Upload(ctx, filename, data)
	if err != nil {
		return domain.GalleryImage{}, fmt.Errorf("s.store.Upload -> %w", err)
	}

	image.ImageURL = url
	image.UploadedBy = actor.UserID

	created, err := s.repo.Create(ctx, image)
	if err != nil {
		return domain.GalleryImage{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// ListImages is public. A zero eventID lists the whole gallery.
func (s *GalleryService) ListImages(ctx context.Context, eventID uint) ([]domain.GalleryImage, error) {
	images, err := s.repo.FindAll(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return images, nil
}

func (s *GalleryService) DeleteImage(ctx context.Context, actor domain.Actor, id uint) error {
	if !actor.HasAdminAccess() {
		return ErrForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}
