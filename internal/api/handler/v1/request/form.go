package request

import (
	"encoding/json"
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/designclub49123/kalakranti/internal/domain"
)

var errChoiceNeedsOptions = errors.New("radio, checkbox and select questions need at least one option")

type QuestionPayload struct {
	ID       string   `json:"id"`
	Type     string   `json:"type"`
	Question string   `json:"question"`
	Options  []string `json:"options,omitempty"`
	Required bool     `json:"required"`
}

func (q QuestionPayload) validate() error {
	err := validation.ValidateStruct(
		&q,
		validation.Field(&q.ID, validation.Required),
		validation.Field(&q.Type, validation.Required,
			validation.In("text", "textarea", "radio", "checkbox", "select")),
		validation.Field(&q.Question, validation.Required),
	)
	if err != nil {
		return err
	}

	switch domain.QuestionType(q.Type) {
	case domain.QuestionRadio, domain.QuestionCheckbox, domain.QuestionSelect:
		if len(q.Options) == 0 {
			return errChoiceNeedsOptions
		}
	}

	return nil
}

type CreateFormRequest struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Questions   []QuestionPayload `json:"questions"`
	Settings    json.RawMessage   `json:"settings,omitempty"`
	IsActive    bool              `json:"is_active"`
}

func (req *CreateFormRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(2, 200)),
		validation.Field(&req.Questions, validation.Required),
	)
	if err != nil {
		return err
	}

	for _, q := range req.Questions {
		if err := q.validate(); err != nil {
			return err
		}
	}

	return nil
}

type SetFormActiveRequest struct {
	IsActive *bool `json:"is_active"`
}

func (req *SetFormActiveRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.IsActive, validation.NotNil),
	)
}

type SubmitFormResponseRequest struct {
	Responses map[string]json.RawMessage `json:"responses"`
}

func (req *SubmitFormResponseRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Responses, validation.Required),
	)
}
