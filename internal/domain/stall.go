package domain

import "time"

type StallStatus string

const (
	StallPending  StallStatus = "pending"
	StallApproved StallStatus = "approved"
	StallRejected StallStatus = "rejected"
)

// MaxStallMembers is the number of additional members a stall may have on
// top of the leader. 1 leader + 4 members = 5 people per team.
const MaxStallMembers = 4

type Stall struct {
	ID          uint        `json:"id"`
	EventID     uint        `json:"event_id"`
	LeaderID    uint        `json:"leader_id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Members     []Profile   `json:"members"`
	Status      StallStatus `json:"status"`
	StallNumber *int        `json:"stall_number"`
	Attachments []string    `json:"attachments,omitempty"`
	AppliedAt   time.Time   `json:"applied_at"`
	ApprovedAt  *time.Time  `json:"approved_at"`
}

func (s Stall) IsPending() bool {
	return s.Status == StallPending
}

func (s Stall) IsApproved() bool {
	return s.Status == StallApproved
}

// TeamSize counts the leader plus every member.
func (s Stall) TeamSize() int {
	return 1 + len(s.Members)
}

// StallSummary is the joined projection the admin review and public listing
// screens consume: one shape per query, no runtime shape normalization.
type StallSummary struct {
	ID          uint        `json:"id"`
	EventID     uint        `json:"event_id"`
	EventName   string      `json:"event_name"`
	LeaderID    uint        `json:"leader_id"`
	LeaderName  string      `json:"leader_name"`
	LeaderEmail string      `json:"leader_email"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Status      StallStatus `json:"status"`
	StallNumber *int        `json:"stall_number"`
	MemberCount int         `json:"member_count"`
	AppliedAt   time.Time   `json:"applied_at"`
	ApprovedAt  *time.Time  `json:"approved_at"`
}

// StallFilter narrows ListStalls. Zero values mean "no constraint".
type StallFilter struct {
	EventID uint
	Status  StallStatus
	Search  string
}
