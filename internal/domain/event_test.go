package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/designclub49123/kalakranti/internal/domain"
)

func TestEvent_AcceptsRegistrations(t *testing.T) {
	now := time.Date(2026, time.March, 10, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name  string
		event domain.Event
		want  bool
	}{
		{
			name: "open and ongoing",
			event: domain.Event{
				RegistrationOpen: true,
				EndDate:          now.AddDate(0, 0, 5),
			},
			want: true,
		},
		{
			name: "ends later today",
			event: domain.Event{
				RegistrationOpen: true,
				EndDate:          time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC),
			},
			want: true,
		},
		{
			name: "ended yesterday",
			event: domain.Event{
				RegistrationOpen: true,
				EndDate:          now.AddDate(0, 0, -1),
			},
			want: false,
		},
		{
			name: "registration closed",
			event: domain.Event{
				RegistrationOpen: false,
				EndDate:          now.AddDate(0, 0, 5),
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.event.AcceptsRegistrations(now))
		})
	}
}

func TestStall_TeamSize(t *testing.T) {
	stall := domain.Stall{
		Members: []domain.Profile{{ID: 2}, {ID: 3}},
	}

	assert.Equal(t, 3, stall.TeamSize())
	assert.Equal(t, 1, domain.Stall{}.TeamSize())
}
