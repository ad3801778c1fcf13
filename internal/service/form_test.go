package service_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/designclub49123/kalakranti/internal/domain"
	"github.com/designclub49123/kalakranti/internal/repository"
	"github.com/designclub49123/kalakranti/internal/service"
)

type fakeFormRepo struct {
	forms     map[uint]domain.Form
	responses []domain.FormResponse
	nextID    uint
}

func newFakeFormRepo() *fakeFormRepo {
	return &fakeFormRepo{forms: make(map[uint]domain.Form)}
}

func (f *fakeFormRepo) Create(_ context.Context, form domain.Form) (domain.Form, error) {
	f.nextID++
	form.ID = f.nextID
	f.forms[form.ID] = form

	return form, nil
}

func (f *fakeFormRepo) FindByID(_ context.Context, id uint) (domain.Form, error) {
	form, ok := f.forms[id]
	if !ok {
		return domain.Form{}, repository.ErrFormNotFound
	}

	return form, nil
}

func (f *fakeFormRepo) FindAll(_ context.Context) ([]domain.Form, error) {
	forms := make([]domain.Form, 0, len(f.forms))
	for _, form := range f.forms {
		forms = append(forms, form)
	}

	return forms, nil
}

func (f *fakeFormRepo) Update(_ context.Context, form domain.Form) (domain.Form, error) {
	if _, ok := f.forms[form.ID]; !ok {
		return domain.Form{}, repository.ErrFormNotFound
	}
	f.forms[form.ID] = form

	return form, nil
}

func (f *fakeFormRepo) SetActive(_ context.Context, id uint, active bool) error {
	form, ok := f.forms[id]
	if !ok {
		return repository.ErrFormNotFound
	}
	form.IsActive = active
	f.forms[id] = form

	return nil
}

func (f *fakeFormRepo) Delete(_ context.Context, id uint) error {
	if _, ok := f.forms[id]; !ok {
		return repository.ErrFormNotFound
	}
	delete(f.forms, id)

	return nil
}

func (f *fakeFormRepo) CreateResponse(_ context.Context, response domain.FormResponse) (domain.FormResponse, error) {
	response.ID = uint(len(f.responses) + 1)
	f.responses = append(f.responses, response)

	return response, nil
}

func (f *fakeFormRepo) FindResponses(_ context.Context, formID uint) ([]domain.FormResponse, error) {
	var responses []domain.FormResponse
	for _, r := range f.responses {
		if r.FormID == formID {
			responses = append(responses, r)
		}
	}

	return responses, nil
}

func feedbackForm(active bool) domain.Form {
	return domain.Form{
		Title:    "Event Feedback",
		IsActive: active,
		Questions: []domain.Question{
			{ID: "q1", Type: domain.QuestionText, Question: "Your name", Required: true},
			{ID: "q2", Type: domain.QuestionRadio, Question: "Rating", Options: []string{"1", "2", "3"}, Required: true},
			{ID: "q3", Type: domain.QuestionTextarea, Question: "Comments"},
		},
	}
}

func TestFormService_SubmitResponse(t *testing.T) {
	newFixture := func(active bool) (*service.FormService, *fakeFormRepo, uint) {
		repo := newFakeFormRepo()
		svc := service.NewFormService(repo)
		form, err := svc.CreateForm(context.Background(), admin, feedbackForm(active))
		require.NoError(t, err)

		return svc, repo, form.ID
	}

	t.Run("accepts a complete submission", func(t *testing.T) {
		svc, repo, formID := newFixture(true)

		created, err := svc.SubmitResponse(context.Background(), domain.FormResponse{
			FormID: formID,
			Responses: map[string]json.RawMessage{
				"q1": json.RawMessage(`"Asha"`),
				"q2": json.RawMessage(`"3"`),
			},
		})

		require.NoError(t, err)
		assert.WithinDuration(t, time.Now(), created.SubmittedAt, time.Second)
		assert.Len(t, repo.responses, 1)
	})

	t.Run("names every missing required question", func(t *testing.T) {
		svc, _, formID := newFixture(true)

		_, err := svc.SubmitResponse(context.Background(), domain.FormResponse{
			FormID: formID,
			Responses: map[string]json.RawMessage{
				"q3": json.RawMessage(`"nice event"`),
			},
		})

		var missingErr *service.MissingAnswersError
		require.ErrorAs(t, err, &missingErr)
		assert.ElementsMatch(t, []string{"q1", "q2"}, missingErr.QuestionIDs)
	})

	t.Run("empty answers do not satisfy required questions", func(t *testing.T) {
		svc, _, formID := newFixture(true)

		_, err := svc.SubmitResponse(context.Background(), domain.FormResponse{
			FormID: formID,
			Responses: map[string]json.RawMessage{
				"q1": json.RawMessage(`""`),
				"q2": json.RawMessage(`null`),
			},
		})

		var missingErr *service.MissingAnswersError
		require.ErrorAs(t, err, &missingErr)
		assert.ElementsMatch(t, []string{"q1", "q2"}, missingErr.QuestionIDs)
	})

	t.Run("inactive forms reject submissions", func(t *testing.T) {
		svc, _, formID := newFixture(false)

		_, err := svc.SubmitResponse(context.Background(), domain.FormResponse{
			FormID: formID,
			Responses: map[string]json.RawMessage{
				"q1": json.RawMessage(`"Asha"`),
				"q2": json.RawMessage(`"3"`),
			},
		})

		assert.ErrorIs(t, err, service.ErrFormInactive)
	})

	t.Run("unknown forms report not found", func(t *testing.T) {
		svc, _, _ := newFixture(true)

		_, err := svc.SubmitResponse(context.Background(), domain.FormResponse{FormID: 404})

		assert.ErrorIs(t, err, service.ErrFormNotFound)
	})
}

func TestFormService_AdminGuards(t *testing.T) {
	repo := newFakeFormRepo()
	svc := service.NewFormService(repo)
	student := domain.Actor{UserID: 5, Role: domain.RoleStudent}

	_, err := svc.CreateForm(context.Background(), student, feedbackForm(true))
	assert.ErrorIs(t, err, service.ErrForbidden)

	_, err = svc.ListForms(context.Background(), student)
	assert.ErrorIs(t, err, service.ErrForbidden)

	err = svc.DeleteForm(context.Background(), student, 1)
	assert.ErrorIs(t, err, service.ErrForbidden)

	_, err = svc.ListResponses(context.Background(), student, 1)
	assert.ErrorIs(t, err, service.ErrForbidden)
}

func TestFormService_SetFormActive(t *testing.T) {
	repo := newFakeFormRepo()
	svc := service.NewFormService(repo)

	form, err := svc.CreateForm(context.Background(), admin, feedbackForm(false))
	require.NoError(t, err)

	require.NoError(t, svc.SetFormActive(context.Background(), admin, form.ID, true))

	reloaded, err := svc.GetForm(context.Background(), form.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.IsActive)
}
