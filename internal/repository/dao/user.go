package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrProfileEmailExists = errors.New("profile email already exists")
	ErrProfileNotFound    = errors.New("profile not found")
)

type Profile struct {
	ID uint `gorm:"primaryKey"`

	FullName string `gorm:"not null"`
	Email    string `gorm:"unique;not null"`
	Phone    string
	Role     string `gorm:"not null;default:student"`

	AvatarURL string
	Password  string `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type ProfileDAO struct {
	db *gorm.DB
}

func NewProfileDAO(db *gorm.DB) *ProfileDAO {
	return &ProfileDAO{
		db: db,
	}
}

func (d *ProfileDAO) Insert(ctx context.Context, profile Profile) (Profile, error) {
	result := d.db.WithContext(ctx).Create(&profile)
	if result.Error != nil {
		if isUniqueViolation(result.Error, `unique constraint "uni_profiles_email"`) {
			return Profile{}, ErrProfileEmailExists
		}

		return Profile{}, result.Error
	}

	return profile, nil
}

func (d *ProfileDAO) FindByID(ctx context.Context, id uint) (Profile, error) {
	var profile Profile

	result := d.db.WithContext(ctx).First(&profile, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Profile{}, ErrProfileNotFound
		}

		return Profile{}, result.Error
	}

	return profile, nil
}

func (d *ProfileDAO) FindByEmail(ctx context.Context, email string) (Profile, error) {
	var profile Profile

	result := d.db.WithContext(ctx).First(&profile, "email = ?", email)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Profile{}, ErrProfileNotFound
		}

		return Profile{}, result.Error
	}

	return profile, nil
}

func (d *ProfileDAO) FindByIDs(ctx context.Context, ids []uint) ([]Profile, error) {
	var profiles []Profile

	result := d.db.WithContext(ctx).Where("id IN ?", ids).Find(&profiles)
	if result.Error != nil {
		return nil, result.Error
	}

	return profiles, nil
}

func (d *ProfileDAO) FindAll(ctx context.Context) ([]Profile, error) {
	var profiles []Profile

	result := d.db.WithContext(ctx).Order("full_name").Find(&profiles)
	if result.Error != nil {
		return nil, result.Error
	}

	return profiles, nil
}

// Update writes the caller-editable contact fields. Role is deliberately
// not part of the column list.
func (d *ProfileDAO) Update(ctx context.Context, profile Profile) (Profile, error) {
	result := d.db.WithContext(ctx).
		Model(&Profile{}).
		Where("id = ?", profile.ID).
		Select("full_name", "phone", "avatar_url").
		Updates(map[string]interface{}{
			"full_name":  profile.FullName,
			"phone":      profile.Phone,
			"avatar_url": profile.AvatarURL,
		})
	if result.Error != nil {
		return Profile{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Profile{}, ErrProfileNotFound
	}

	return d.FindByID(ctx, profile.ID)
}
