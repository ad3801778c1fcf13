package domain

import "time"

type CertificateType string

const (
	CertificateLeader        CertificateType = "leader"
	CertificateMember        CertificateType = "member"
	CertificateParticipation CertificateType = "participation"
)

type Certificate struct {
	ID             uint            `json:"id"`
	Type           CertificateType `json:"type"`
	UserID         uint            `json:"user_id"`
	StallID        *uint           `json:"stall_id"`
	EventID        uint            `json:"event_id"`
	CertificateURL string          `json:"certificate_url"`
	BlockchainHash string          `json:"blockchain_hash"`
	GeneratedAt    time.Time       `json:"generated_at"`
}

// IssueResult reports the fan-out for one stall: which subjects got a new
// certificate and which were skipped because one already existed.
type IssueResult struct {
	StallID       uint   `json:"stall_id"`
	StallName     string `json:"stall_name"`
	Issued        int    `json:"issued"`
	AlreadyIssued []uint `json:"already_issued,omitempty"`
	Err           string `json:"error,omitempty"`
}
