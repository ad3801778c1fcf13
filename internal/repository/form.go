package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/designclub49123/kalakranti/internal/domain"
	"github.com/designclub49123/kalakranti/internal/repository/dao"
)

var (
	ErrFormNotFound = dao.ErrFormNotFound
	ErrFormInactive = dao.ErrFormInactive
)

type FormDAO interface {
	Insert(ctx context.Context, form dao.Form) (dao.Form, error)
	FindByID(ctx context.Context, id uint) (dao.Form, error)
	FindAll(ctx context.Context) ([]dao.Form, error)
	Update(ctx context.Context, form dao.Form) (dao.Form, error)
	SetActive(ctx context.Context, id uint, active bool) error
	Delete(ctx context.Context, id uint) error
	InsertResponse(ctx context.Context, response dao.FormResponse) (dao.FormResponse, error)
	FindResponses(ctx context.Context, formID uint) ([]dao.FormResponse, error)
}

type FormRepository struct {
	dao FormDAO
}

func NewFormRepository(dao FormDAO) *FormRepository {
	return &FormRepository{
		dao: dao,
	}
}

func (r *FormRepository) Create(ctx context.Context, form domain.Form) (domain.Form, error) {
	daoForm, err := r.domainToDao(form)
	if err != nil {
		return domain.Form{}, err
	}

	created, err := r.dao.Insert(ctx, daoForm)
	if err != nil {
		return domain.Form{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created)
}

func (r *FormRepository) FindByID(ctx context.Context, id uint) (domain.Form, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Form{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found)
}

func (r *FormRepository) FindAll(ctx context.Context) ([]domain.Form, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	forms := make([]domain.Form, 0, len(found))
	for _, f := range found {
		form, err := r.daoToDomain(f)
		if err != nil {
			return nil, err
		}
		forms = append(forms, form)
	}

	return forms, nil
}

func (r *FormRepository) Update(ctx context.Context, form domain.Form) (domain.Form, error) {
	daoForm, err := r.domainToDao(form)
	if err != nil {
		return domain.Form{}, err
	}

	updated, err := r.dao.Update(ctx, daoForm)
	if err != nil {
		return domain.Form{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated)
}

func (r *FormRepository) SetActive(ctx context.Context, id uint, active bool) error {
	if err := r.dao.SetActive(ctx, id, active); err != nil {
		return fmt.Errorf("r.dao.SetActive -> %w", err)
	}

	return nil
}

func (r *FormRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *FormRepository) CreateResponse(ctx context.Context, response domain.FormResponse) (domain.FormResponse, error) {
	answers, err := json.Marshal(response.Responses)
	if err != nil {
		return domain.FormResponse{}, fmt.Errorf("json.Marshal -> %w", err)
	}

	created, err := r.dao.InsertResponse(ctx, dao.FormResponse{
		FormID:      response.FormID,
		UserID:      response.UserID,
		Responses:   dao.JSONB(answers),
		SubmittedAt: response.SubmittedAt,
	})
	if err != nil {
		return domain.FormResponse{}, fmt.Errorf("r.dao.InsertResponse -> %w", err)
	}

	return r.responseDaoToDomain(created)
}

func (r *FormRepository) FindResponses(ctx context.Context, formID uint) ([]domain.FormResponse, error) {
	found, err := r.dao.FindResponses(ctx, formID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindResponses -> %w", err)
	}

	responses := make([]domain.FormResponse, 0, len(found))
	for _, resp := range found {
		converted, err := r.responseDaoToDomain(resp)
		if err != nil {
			return nil, err
		}
		responses = append(responses, converted)
	}

	return responses, nil
}

func (r *FormRepository) domainToDao(form domain.Form) (dao.Form, error) {
	questions, err := json.Marshal(form.Questions)
	if err != nil {
		return dao.Form{}, fmt.Errorf("json.Marshal -> %w", err)
	}

	return dao.Form{
		ID:          form.ID,
		AdminID:     form.AdminID,
		Title:       form.Title,
		Description: form.Description,
		Questions:   dao.JSONB(questions),
		Settings:    dao.JSONB(form.Settings),
		IsActive:    form.IsActive,
		CreatedAt:   form.CreatedAt,
		UpdatedAt:   form.UpdatedAt,
	}, nil
}

func (r *FormRepository) daoToDomain(f dao.Form) (domain.Form, error) {
	var questions []domain.Question
	if len(f.Questions) > 0 {
		if err := json.Unmarshal(f.Questions, &questions); err != nil {
			return domain.Form{}, fmt.Errorf("json.Unmarshal questions -> %w", err)
		}
	}

	return domain.Form{
		ID:          f.ID,
		AdminID:     f.AdminID,
		Title:       f.Title,
		Description: f.Description,
		Questions:   questions,
		Settings:    json.RawMessage(f.Settings),
		IsActive:    f.IsActive,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}, nil
}

func (r *FormRepository) responseDaoToDomain(resp dao.FormResponse) (domain.FormResponse, error) {
	var answers map[string]json.RawMessage
	if len(resp.Responses) > 0 {
		if err := json.Unmarshal(resp.Responses, &answers); err != nil {
			return domain.FormResponse{}, fmt.Errorf("json.Unmarshal responses -> %w", err)
		}
	}

	return domain.FormResponse{
		ID:          resp.ID,
		FormID:      resp.FormID,
		UserID:      resp.UserID,
		Responses:   answers,
		SubmittedAt: resp.SubmittedAt,
	}, nil
}
