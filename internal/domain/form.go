package domain

import (
	"encoding/json"
	"time"
)

type QuestionType string

const (
	QuestionText     QuestionType = "text"
	QuestionTextarea QuestionType = "textarea"
	QuestionRadio    QuestionType = "radio"
	QuestionCheckbox QuestionType = "checkbox"
	QuestionSelect   QuestionType = "select"
)

type Question struct {
	ID       string       `json:"id"`
	Type     QuestionType `json:"type"`
	Question string       `json:"question"`
	Options  []string     `json:"options,omitempty"`
	Required bool         `json:"required"`
}

type Form struct {
	ID          uint            `json:"id"`
	AdminID     uint            `json:"admin_id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Questions   []Question      `json:"questions"`
	Settings    json.RawMessage `json:"settings,omitempty"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// MissingRequired returns the IDs of required questions absent from answers.
func (f Form) MissingRequired(answers map[string]json.RawMessage) []string {
	var missing []string
	for _, q := range f.Questions {
		if !q.Required {
			continue
		}
		if v, ok := answers[q.ID]; !ok || len(v) == 0 || string(v) == `""` || string(v) == "null" {
			missing = append(missing, q.ID)
		}
	}
	return missing
}

type FormResponse struct {
	ID          uint                       `json:"id"`
	FormID      uint                       `json:"form_id"`
	UserID      *uint                      `json:"user_id"`
	Responses   map[string]json.RawMessage `json:"responses"`
	SubmittedAt time.Time                  `json:"submitted_at"`
}
