package domain

import "time"

type Event struct {
	ID               uint      `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	StartDate        time.Time `json:"start_date"`
	EndDate          time.Time `json:"end_date"`
	RegistrationOpen bool      `json:"registration_open"`
	CreatedBy        uint      `json:"created_by"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// AcceptsRegistrations reports whether new stalls may reference the event.
func (e Event) AcceptsRegistrations(now time.Time) bool {
	return e.RegistrationOpen && !e.EndDate.Before(truncateToDay(now))
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
