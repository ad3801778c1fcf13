package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/designclub49123/kalakranti/internal/domain"
	"github.com/designclub49123/kalakranti/internal/repository"
	"github.com/designclub49123/kalakranti/internal/service"
)

type fakeFullEventRepo struct {
	events map[uint]domain.Event
	nextID uint
}

func newFakeFullEventRepo() *fakeFullEventRepo {
	return &fakeFullEventRepo{events: make(map[uint]domain.Event)}
}

func (f *fakeFullEventRepo) Create(_ context.Context, event domain.Event) (domain.Event, error) {
	f.nextID++
	event.ID = f.nextID
	f.events[event.ID] = event

	return event, nil
}

func (f *fakeFullEventRepo) FindByID(_ context.Context, id uint) (domain.Event, error) {
	event, ok := f.events[id]
	if !ok {
		return domain.Event{}, repository.ErrEventNotFound
	}

	return event, nil
}

func (f *fakeFullEventRepo) FindAll(_ context.Context) ([]domain.Event, error) {
	events := make([]domain.Event, 0, len(f.events))
	for _, e := range f.events {
		events = append(events, e)
	}

	return events, nil
}

func (f *fakeFullEventRepo) FindOpen(_ context.Context, today time.Time) ([]domain.Event, error) {
	var events []domain.Event
	for _, e := range f.events {
		if e.AcceptsRegistrations(today) {
			events = append(events, e)
		}
	}

	return events, nil
}

func (f *fakeFullEventRepo) Update(_ context.Context, event domain.Event) (domain.Event, error) {
	if _, ok := f.events[event.ID]; !ok {
		return domain.Event{}, repository.ErrEventNotFound
	}
	f.events[event.ID] = event

	return event, nil
}

func (f *fakeFullEventRepo) Delete(_ context.Context, id uint) error {
	if _, ok := f.events[id]; !ok {
		return repository.ErrEventNotFound
	}
	delete(f.events, id)

	return nil
}

func TestEventService_CreateEvent(t *testing.T) {
	t.Run("creates and audits", func(t *testing.T) {
		repo := newFakeFullEventRepo()
		audit := &fakeAudit{}
		svc := service.NewEventService(repo, audit)

		event, err := svc.CreateEvent(context.Background(), admin, domain.Event{
			Name:      "Tech Fest",
			StartDate: time.Now(),
			EndDate:   time.Now().AddDate(0, 0, 2),
		})

		require.NoError(t, err)
		assert.NotZero(t, event.ID)
		require.Len(t, audit.entries, 1)
		assert.Equal(t, "event.created", audit.entries[0].action)
	})

	t.Run("rejects end date before start date", func(t *testing.T) {
		svc := service.NewEventService(newFakeFullEventRepo(), &fakeAudit{})

		_, err := svc.CreateEvent(context.Background(), admin, domain.Event{
			Name:      "Tech Fest",
			StartDate: time.Now(),
			EndDate:   time.Now().AddDate(0, 0, -1),
		})

		assert.ErrorIs(t, err, service.ErrInvalidDateRange)
	})

	t.Run("junior admins can manage events", func(t *testing.T) {
		svc := service.NewEventService(newFakeFullEventRepo(), &fakeAudit{})

		created, err := svc.CreateEvent(context.Background(), reviewer, domain.Event{
			Name:      "Tech Fest",
			StartDate: time.Now(),
			EndDate:   time.Now().AddDate(0, 0, 2),
		})

		require.NoError(t, err)
		assert.Equal(t, "Tech Fest", created.Name)
	})

	t.Run("students cannot manage events", func(t *testing.T) {
		svc := service.NewEventService(newFakeFullEventRepo(), &fakeAudit{})

		_, err := svc.CreateEvent(context.Background(), leader, domain.Event{Name: "Tech Fest"})

		assert.ErrorIs(t, err, service.ErrForbidden)
	})
}

func TestEventService_ListOpenEvents(t *testing.T) {
	repo := newFakeFullEventRepo()
	svc := service.NewEventService(repo, &fakeAudit{})

	open, err := svc.CreateEvent(context.Background(), admin, domain.Event{
		Name:             "Tech Fest",
		StartDate:        time.Now(),
		EndDate:          time.Now().AddDate(0, 0, 2),
		RegistrationOpen: true,
	})
	require.NoError(t, err)

	_, err = svc.CreateEvent(context.Background(), admin, domain.Event{
		Name:      "Closed Fest",
		StartDate: time.Now(),
		EndDate:   time.Now().AddDate(0, 0, 2),
	})
	require.NoError(t, err)

	events, err := svc.ListOpenEvents(context.Background())

	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, open.ID, events[0].ID)
}

func TestEventService_DeleteEvent(t *testing.T) {
	repo := newFakeFullEventRepo()
	svc := service.NewEventService(repo, &fakeAudit{})

	event, err := svc.CreateEvent(context.Background(), admin, domain.Event{
		Name:      "Tech Fest",
		StartDate: time.Now(),
		EndDate:   time.Now().AddDate(0, 0, 2),
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteEvent(context.Background(), admin, event.ID))

	err = svc.DeleteEvent(context.Background(), admin, event.ID)
	assert.ErrorIs(t, err, service.ErrEventNotFound)
}
