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
	ErrFormNotFound = repository.ErrFormNotFound
	ErrFormInactive = repository.ErrFormInactive
)

// MissingAnswersError lists the required questions a submission left blank.
type MissingAnswersError struct {
	QuestionIDs []string
}

func (e *MissingAnswersError) Error() string {
	return fmt.Sprintf("required questions left unanswered: %v", e.QuestionIDs)
}

type FormRepository interface {
	Create(ctx context.Context, form domain.Form) (domain.Form, error)
	FindByID(ctx context.Context, id uint) (domain.Form, error)
	FindAll(ctx context.Context) ([]domain.Form, error)
	Update(ctx context.Context, form domain.Form) (domain.Form, error)
	SetActive(ctx context.Context, id uint, active bool) error
	Delete(ctx context.Context, id uint) error
	CreateResponse(ctx context.Context, response domain.FormResponse) (domain.FormResponse, error)
	FindResponses(ctx context.Context, formID uint) ([]domain.FormResponse, error)
}

type FormService struct {
	repo FormRepository
}

func NewFormService(repo FormRepository) *FormService {
	return &FormService{
		repo: repo,
	}
}

func (s *FormService) CreateForm(ctx context.Context, actor domain.Actor, form domain.Form) (domain.Form, error) {
	if !actor.HasAdminAccess() {
		return domain.Form{}, ErrForbidden
	}

	form.AdminID = actor.UserID
	created, err := s.repo.Create(ctx, form)
	if err != nil {
		return domain.Form{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *FormService) GetForm(ctx context.Context, id uint) (domain.Form, error) {
	form, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrFormNotFound) {
			return domain.Form{}, ErrFormNotFound
		}

		return domain.Form{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return form, nil
}

func (s *FormService) ListForms(ctx context.Context, actor domain.Actor) ([]domain.Form, error) {
	if !actor.HasAdminAccess() {
		return nil, ErrForbidden
	}

	forms, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return forms, nil
}

func (s *FormService) UpdateForm(ctx context.Context, actor domain.Actor, form domain.Form) (domain.Form, error) {
	if !actor.HasAdminAccess() {
		return domain.Form{}, ErrForbidden
	}

	updated, err := s.repo.Update(ctx, form)
	if err != nil {
		if errors.Is(err, repository.ErrFormNotFound) {
			return domain.Form{}, ErrFormNotFound
		}

		return domain.Form{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *FormService) SetFormActive(ctx context.Context, actor domain.Actor, id uint, active bool) error {
	if !actor.HasAdminAccess() {
		return ErrForbidden
	}

	if err := s.repo.SetActive(ctx, id, active); err != nil {
		if errors.Is(err, repository.ErrFormNotFound) {
			return ErrFormNotFound
		}

		return fmt.Errorf("s.repo.SetActive -> %w", err)
	}

	return nil
}

// DeleteForm removes a form together with its responses.
func (s *FormService) DeleteForm(ctx context.Context, actor domain.Actor, id uint) error {
	if !actor.HasAdminAccess() {
		return ErrForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrFormNotFound) {
			return ErrFormNotFound
		}

		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

// SubmitResponse records a submission against an active form. Required
// questions must all be answered; the form must still be active.
func (s *FormService) SubmitResponse(ctx context.Context, response domain.FormResponse) (domain.FormResponse, error) {
	form, err := s.repo.FindByID(ctx, response.FormID)
	if err != nil {
		if errors.Is(err, repository.ErrFormNotFound) {
			return domain.FormResponse{}, ErrFormNotFound
		}

		return domain.FormResponse{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if !form.IsActive {
		return domain.FormResponse{}, ErrFormInactive
	}

	if missing := form.MissingRequired(response.Responses); len(missing) > 0 {
		return domain.FormResponse{}, &MissingAnswersError{QuestionIDs: missing}
	}

	response.SubmittedAt = time.Now()
	created, err := s.repo.CreateResponse(ctx, response)
	if err != nil {
		return domain.FormResponse{}, fmt.Errorf("s.repo.CreateResponse -> %w", err)
	}

	return created, nil
}

func (s *FormService) ListResponses(ctx context.Context, actor domain.Actor, formID uint) ([]domain.FormResponse, error) {
	if !actor.HasAdminAccess() {
		return nil, ErrForbidden
	}

	responses, err := s.repo.FindResponses(ctx, formID)
	if err != nil {
		if errors.Is(err, repository.ErrFormNotFound) {
			return nil, ErrFormNotFound
		}

		return nil, fmt.Errorf("s.repo.FindResponses -> %w", err)
	}

	return responses, nil
}
