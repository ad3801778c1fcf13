package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrFormNotFound = errors.New("form not found")
	ErrFormInactive = errors.New("form is not accepting responses")
)

type Form struct {
	ID uint `gorm:"primaryKey"`

	AdminID     uint   `gorm:"not null;index"`
	Title       string `gorm:"not null"`
	Description string
	Questions   JSONB `gorm:"not null"`
	Settings    JSONB
	IsActive    bool `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type FormResponse struct {
	ID uint `gorm:"primaryKey"`

	FormID    uint  `gorm:"not null;index"`
	Form      Form  `gorm:"foreignKey:FormID;constraint:OnDelete:CASCADE"`
	UserID    *uint `gorm:"index"`
	Responses JSONB `gorm:"not null"`

	SubmittedAt time.Time `gorm:"not null"`
}

type FormDAO struct {
	db *gorm.DB
}

func NewFormDAO(db *gorm.DB) *FormDAO {
	return &FormDAO{
		db: db,
	}
}

func (d *FormDAO) Insert(ctx context.Context, form Form) (Form, error) {
	result := d.db.WithContext(ctx).Create(&form)
	if result.Error != nil {
		return Form{}, result.Error
	}

	return form, nil
}

func (d *FormDAO) FindByID(ctx context.Context, id uint) (Form, error) {
	var form Form

	result := d.db.WithContext(ctx).First(&form, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Form{}, ErrFormNotFound
		}

		return Form{}, result.Error
	}

	return form, nil
}

func (d *FormDAO) FindAll(ctx context.Context) ([]Form, error) {
	var forms []Form

	result := d.db.WithContext(ctx).Order("created_at DESC").Find(&forms)
	if result.Error != nil {
		return nil, result.Error
	}

	return forms, nil
}

func (d *FormDAO) Update(ctx context.Context, form Form) (Form, error) {
	result := d.db.WithContext(ctx).
		Model(&Form{}).
		Where("id = ?", form.ID).
		Updates(map[string]interface{}{
			"title":       form.Title,
			"description": form.Description,
			"questions":   form.Questions,
			"settings":    form.Settings,
		})
	if result.Error != nil {
		return Form{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Form{}, ErrFormNotFound
	}

	return d.FindByID(ctx, form.ID)
}

func (d *FormDAO) SetActive(ctx context.Context, id uint, active bool) error {
	result := d.db.WithContext(ctx).
		Model(&Form{}).
		Where("id = ?", id).
		Update("is_active", active)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrFormNotFound
	}

	return nil
}

func (d *FormDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Form{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrFormNotFound
	}

	return nil
}

func (d *FormDAO) InsertResponse(ctx context.Context, response FormResponse) (FormResponse, error) {
	result := d.db.WithContext(ctx).Create(&response)
	if result.Error != nil {
		return FormResponse{}, result.Error
	}

	return response, nil
}

func (d *FormDAO) FindResponses(ctx context.Context, formID uint) ([]FormResponse, error) {
	var responses []FormResponse

	result := d.db.WithContext(ctx).
		Where("form_id = ?", formID).
		Order("submitted_at DESC").
		Find(&responses)
	if result.Error != nil {
		return nil, result.Error
	}

	return responses, nil
}
