package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/designclub49123/kalakranti/internal/domain"
	"github.com/designclub49123/kalakranti/internal/repository"
)

var (
	ErrEventNotFound    = repository.ErrEventNotFound
	ErrInvalidDateRange = errors.New("event end date is before its start date")
)

type EventRepository interface {
	Create(ctx context.Context, event domain.Event) (domain.Event, error)
	FindByID(ctx context.Context, id uint) (domain.Event, error)
	FindAll(ctx context.Context) ([]domain.Event, error)
	FindOpen(ctx context.Context, today time.Time) ([]domain.Event, error)
	Update(ctx context.Context, event domain.Event) (domain.Event, error)
	Delete(ctx context.Context, id uint) error
}

type EventService struct {
	repo  EventRepository
	audit AuditRecorder
}

func NewEventService(repo EventRepository, audit AuditRecorder) *EventService {
	return &EventService{
		repo:  repo,
		audit: audit,
	}
}

func (s *EventService) CreateEvent(ctx context.Context, actor domain.Actor, event domain.Event) (domain.Event, error) {
	if !actor.HasAdminAccess() {
		return domain.Event{}, ErrForbidden
	}
	if event.EndDate.Before(event.StartDate) {
		return domain.Event{}, ErrInvalidDateRange
	}

	created, err := s.repo.Create(ctx, event)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	s.audit.Record(ctx, actor.UserID, "event.created", map[string]interface{}{
		"event_id": created.ID,
		"name":     created.Name,
	})

	return created, nil
}

func (s *EventService) GetEvent(ctx context.Context, id uint) (domain.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return domain.Event{}, ErrEventNotFound
		}

		return domain.Event{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return event, nil
}

func (s *EventService) ListEvents(ctx context.Context) ([]domain.Event, error) {
	events, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return events, nil
}

// ListOpenEvents returns events still accepting stall registrations,
// soonest first.
func (s *EventService) ListOpenEvents(ctx context.Context) ([]domain.Event, error) {
	events, err := s.repo.FindOpen(ctx, time.Now())
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindOpen -> %w", err)
	}

	return events, nil
}

func (s *EventService) UpdateEvent(ctx context.Context, actor domain.Actor, event domain.Event) (domain.Event, error) {
	if !actor.HasAdminAccess() {
		return domain.Event{}, ErrForbidden
	}
	if event.EndDate.Before(event.StartDate) {
		return domain.Event{}, ErrInvalidDateRange
	}

	updated, err := s.repo.Update(ctx, event)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return domain.Event{}, ErrEventNotFound
		}

		return domain.Event{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	s.audit.Record(ctx, actor.UserID, "event.updated", map[string]interface{}{
		"event_id": updated.ID,
	})

	return updated, nil
}

func (s *EventService) DeleteEvent(ctx context.Context, actor domain.Actor, id uint) error {
	if !actor.HasAdminAccess() {
		return ErrForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return ErrEventNotFound
		}

		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	s.audit.Record(ctx, actor.UserID, "event.deleted", map[string]interface{}{
		"event_id": id,
	})

	return nil
}
