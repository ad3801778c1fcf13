package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/designclub49123/kalakranti/internal/domain"
	"github.com/designclub49123/kalakranti/internal/repository"
)

var ErrCertificateExists = repository.ErrCertificateExists

type CertificateRepository interface {
	Create(ctx context.Context, cert domain.Certificate) (domain.Certificate, error)
	FindByUserID(ctx context.Context, userID uint) ([]domain.Certificate, error)
}

type CertificateStallRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Stall, error)
	FindApprovedByEvent(ctx context.Context, eventID uint) ([]domain.Stall, error)
}

type CertificateService struct {
	repo  CertificateRepository
	sRepo CertificateStallRepository
	audit AuditRecorder
}

func NewCertificateService(repo CertificateRepository, sRepo CertificateStallRepository, audit AuditRecorder) *CertificateService {
	return &CertificateService{
		repo:  repo,
		sRepo: sRepo,
		audit: audit,
	}
}

// IssueCertificates fans out over an approved stall's team: one leader
// certificate plus one member certificate per teammate. Subjects that
// already hold a certificate for the stall are skipped, so re-running the
// issuance tops up missing certificates without duplicating any.
func (s *CertificateService) IssueCertificates(ctx context.Context, actor domain.Actor, stallID uint) (domain.IssueResult, error) {
	if !actor.HasAdminAccess() {
		return domain.IssueResult{}, ErrForbidden
	}

	stall, err := s.sRepo.FindByID(ctx, stallID)
	if err != nil {
		if errors.Is(err, repository.ErrStallNotFound) {
			return domain.IssueResult{}, ErrStallNotFound
		}

		return domain.IssueResult{}, fmt.Errorf("s.sRepo.FindByID -> %w", err)
	}
	if !stall.IsApproved() {
		return domain.IssueResult{}, ErrStallNotApproved
	}

	result, err := s.issueForStall(ctx, stall)
	if err != nil {
		return domain.IssueResult{}, err
	}

	s.audit.Record(ctx, actor.UserID, "certificates.issued", map[string]interface{}{
		"stall_id":        stallID,
		"issued":          result.Issued,
		"already_existed": len(result.AlreadyIssued),
	})

	return result, nil
}

// IssueCertificatesForEvent runs the per-stall fan-out over every approved
// stall of an event. A failure on one stall is reported in its result and
// does not stop the rest.
func (s *CertificateService) IssueCertificatesForEvent(ctx context.Context, actor domain.Actor, eventID uint) ([]domain.IssueResult, error) {
	if !actor.HasAdminAccess() {
		return nil, ErrForbidden
	}

	stalls, err := s.sRepo.FindApprovedByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("s.sRepo.FindApprovedByEvent -> %w", err)
	}

	results := make([]domain.IssueResult, 0, len(stalls))
	issued := 0
	for _, stall := range stalls {
		result, err := s.issueForStall(ctx, stall)
		if err != nil {
			results = append(results, domain.IssueResult{
				StallID:   stall.ID,
				StallName: stall.Name,
				Err:       err.Error(),
			})

			continue
		}

		issued += result.Issued
		results = append(results, result)
	}

	s.audit.Record(ctx, actor.UserID, "certificates.issued_for_event", map[string]interface{}{
		"event_id": eventID,
		"stalls":   len(stalls),
		"issued":   issued,
	})

	return results, nil
}

func (s *CertificateService) issueForStall(ctx context.Context, stall domain.Stall) (domain.IssueResult, error) {
	result := domain.IssueResult{
		StallID:   stall.ID,
		StallName: stall.Name,
	}

	leader := domain.Certificate{
		Type:           domain.CertificateLeader,
		UserID:         stall.LeaderID,
		StallID:        &stall.ID,
		EventID:        stall.EventID,
		CertificateURL: fmt.Sprintf("cert_%d_leader.pdf", stall.ID),
		BlockchainHash: fmt.Sprintf("hash_%d_leader", time.Now().UnixNano()),
		GeneratedAt:    time.Now(),
	}
	if err := s.insert(ctx, leader, &result); err != nil {
		return domain.IssueResult{}, err
	}

	for _, member := range stall.Members {
		cert := domain.Certificate{
			Type:           domain.CertificateMember,
			UserID:         member.ID,
			StallID:        &stall.ID,
			EventID:        stall.EventID,
			CertificateURL: fmt.Sprintf("cert_%d_%d.pdf", stall.ID, member.ID),
			BlockchainHash: fmt.Sprintf("hash_%d_%d", time.Now().UnixNano(), member.ID),
			GeneratedAt:    time.Now(),
		}
		if err := s.insert(ctx, cert, &result); err != nil {
			return domain.IssueResult{}, err
		}
	}

	return result, nil
}

func (s *CertificateService) insert(ctx context.Context, cert domain.Certificate, result *domain.IssueResult) error {
	if _, err := s.repo.Create(ctx, cert); err != nil {
		if errors.Is(err, repository.ErrCertificateExists) {
			result.AlreadyIssued = append(result.AlreadyIssued, cert.UserID)

			return nil
		}

		return fmt.Errorf("s.repo.Create -> %w", err)
	}

	result.Issued++

	return nil
}

// ListMyCertificates returns every certificate held by the caller, newest
// first.
func (s *CertificateService) ListMyCertificates(ctx context.Context, actor domain.Actor) ([]domain.Certificate, error) {
	certs, err := s.repo.FindByUserID(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByUserID -> %w", err)
	}

	return certs, nil
}
