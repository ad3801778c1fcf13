package request

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

var phoneRegex = regexp.MustCompile(`^\+?[0-9][0-9 -]{7,14}$`)

type RegisterStallRequest struct {
	EventID      uint     `json:"event_id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	MemberEmails []string `json:"member_emails"`
	LeaderPhone  string   `json:"leader_phone"`
}

func (req *RegisterStallRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.EventID, validation.Required),
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Description, validation.Length(0, 2000)),
		validation.Field(&req.MemberEmails, validation.By(validEmails)),
		validation.Field(&req.LeaderPhone, validation.Required, validation.Match(phoneRegex)),
	)
}

func validEmails(value interface{}) error {
	emails, ok := value.([]string)
	if !ok {
		return nil
	}

	for _, email := range emails {
		if email == "" {
			continue
		}
		if err := is.Email.Validate(email); err != nil {
			return err
		}
	}

	return nil
}

type DecideStallRequest struct {
	Decision string `json:"decision"`
}

func (req *DecideStallRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Decision, validation.Required, validation.In("approved", "rejected")),
	)
}

type AssignStallNumberRequest struct {
	StallNumber int `json:"stall_number"`
}

func (req *AssignStallNumberRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.StallNumber, validation.Required, validation.Min(1)),
	)
}
