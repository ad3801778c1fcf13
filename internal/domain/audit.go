package domain

import (
	"encoding/json"
	"time"
)

type AuditLog struct {
	ID        uint            `json:"id"`
	UserID    *uint           `json:"user_id"`
	Action    string          `json:"action"`
	Details   json.RawMessage `json:"details,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}
