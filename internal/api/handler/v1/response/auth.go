package response

import "github.com/designclub49123/kalakranti/internal/domain"

type LoginResponse struct {
	Token string         `json:"token"`
	User  domain.Profile `json:"user"`
}
