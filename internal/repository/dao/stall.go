package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrStallNotFound    = errors.New("stall not found")
	ErrStallNotPending  = errors.New("stall already decided")
	ErrStallNotApproved = errors.New("stall not approved")
	ErrStallNumberTaken = errors.New("stall number already taken for this event")
)

type Stall struct {
	ID uint `gorm:"primaryKey"`

	EventID  uint    `gorm:"not null;index;uniqueIndex:idx_stalls_event_number"`
	Event    Event   `gorm:"foreignKey:EventID"`
	LeaderID uint    `gorm:"not null;index"`
	Leader   Profile `gorm:"foreignKey:LeaderID"`

	Name        string `gorm:"not null"`
	Description string
	Members     []Profile `gorm:"many2many:stall_members;"`

	Status      string `gorm:"not null;default:pending"`
	StallNumber *int   `gorm:"uniqueIndex:idx_stalls_event_number"`
	Attachments JSONB

	AppliedAt  time.Time `gorm:"not null"`
	ApprovedAt *time.Time
}

type StallDAO struct {
	db *gorm.DB
}

func NewStallDAO(db *gorm.DB) *StallDAO {
	return &StallDAO{
		db: db,
	}
}

// InsertWithLeaderPhone creates the stall, its member associations and the
// leader's phone overwrite as one transaction. The member profiles must
// already exist; only join rows are written for them.
func (d *StallDAO) InsertWithLeaderPhone(ctx context.Context, stall Stall, leaderPhone string) (Stall, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&Profile{}).
			Where("id = ?", stall.LeaderID).
			Update("phone", leaderPhone)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrProfileNotFound
		}

		return tx.Omit("Members.*").Create(&stall).Error
	})
	if err != nil {
		return Stall{}, err
	}

	return stall, nil
}

func (d *StallDAO) FindByID(ctx context.Context, id uint) (Stall, error) {
	var stall Stall

	result := d.db.WithContext(ctx).
		Preload("Event").
		Preload("Leader").
		Preload("Members").
		First(&stall, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Stall{}, ErrStallNotFound
		}

		return Stall{}, result.Error
	}

	return stall, nil
}

func (d *StallDAO) FindByLeaderID(ctx context.Context, leaderID uint) ([]Stall, error) {
	var stalls []Stall

	result := d.db.WithContext(ctx).
		Preload("Event").
		Preload("Members").
		Where("leader_id = ?", leaderID).
		Order("applied_at DESC").
		Find(&stalls)
	if result.Error != nil {
		return nil, result.Error
	}

	return stalls, nil
}

// List returns stalls with event and leader joined, newest application
// first. eventID 0, empty status and empty search mean no constraint;
// search matches the stall name or the leader's name.
func (d *StallDAO) List(ctx context.Context, eventID uint, status, search string) ([]Stall, error) {
	query := d.db.WithContext(ctx).
		Preload("Event").
		Preload("Leader").
		Preload("Members")

	if eventID != 0 {
		query = query.Where("event_id = ?", eventID)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if search != "" {
		pattern := "%" + search + "%"
		query = query.
			Joins("JOIN profiles ON profiles.id = stalls.leader_id").
			Where("stalls.name ILIKE ? OR profiles.full_name ILIKE ?", pattern, pattern)
	}

	var stalls []Stall
	result := query.Order("applied_at DESC").Find(&stalls)
	if result.Error != nil {
		return nil, result.Error
	}

	return stalls, nil
}

func (d *StallDAO) FindApprovedByEvent(ctx context.Context, eventID uint) ([]Stall, error) {
	var stalls []Stall

	result := d.db.WithContext(ctx).
		Preload("Leader").
		Preload("Members").
		Where("event_id = ? AND status = ?", eventID, "approved").
		Order("stall_number ASC NULLS LAST").
		Find(&stalls)
	if result.Error != nil {
		return nil, result.Error
	}

	return stalls, nil
}

// UpdateStatusFromPending flips a pending stall to the given status. The
// pending guard lives in the WHERE clause so concurrent decisions cannot
// both win.
func (d *StallDAO) UpdateStatusFromPending(ctx context.Context, id uint, status string, approvedAt *time.Time) (Stall, error) {
	result := d.db.WithContext(ctx).
		Model(&Stall{}).
		Where("id = ? AND status = ?", id, "pending").
		Updates(map[string]interface{}{
			"status":      status,
			"approved_at": approvedAt,
		})
	if result.Error != nil {
		return Stall{}, result.Error
	}
	if result.RowsAffected == 0 {
		// Either the stall is gone or it was decided already.
		if _, err := d.FindByID(ctx, id); err != nil {
			return Stall{}, err
		}

		return Stall{}, ErrStallNotPending
	}

	return d.FindByID(ctx, id)
}

// SetNumber assigns a stall number to an approved stall. Re-assigning the
// same number is a no-op; a number held by another stall of the same event
// trips the composite unique index.
func (d *StallDAO) SetNumber(ctx context.Context, id uint, number int) (Stall, error) {
	result := d.db.WithContext(ctx).
		Model(&Stall{}).
		Where("id = ? AND status = ?", id, "approved").
		Update("stall_number", number)
	if result.Error != nil {
		if isUniqueViolation(result.Error, "idx_stalls_event_number") {
			return Stall{}, ErrStallNumberTaken
		}

		return Stall{}, result.Error
	}
	if result.RowsAffected == 0 {
		if _, err := d.FindByID(ctx, id); err != nil {
			return Stall{}, err
		}

		return Stall{}, ErrStallNotApproved
	}

	return d.FindByID(ctx, id)
}

// MemberUserIDs returns the distinct leader and member profile IDs across
// every stall of the event, for communications recipient lists.
func (d *StallDAO) MemberUserIDs(ctx context.Context, eventID uint) ([]uint, error) {
	stalls, err := d.List(ctx, eventID, "", "")
	if err != nil {
		return nil, err
	}

	seen := make(map[uint]struct{})
	var ids []uint
	for _, stall := range stalls {
		if _, ok := seen[stall.LeaderID]; !ok {
			seen[stall.LeaderID] = struct{}{}
			ids = append(ids, stall.LeaderID)
		}
		for _, m := range stall.Members {
			if _, ok := seen[m.ID]; !ok {
				seen[m.ID] = struct{}{}
				ids = append(ids, m.ID)
			}
		}
	}

	return ids, nil
}
