package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/designclub49123/kalakranti/internal/domain"
	"github.com/designclub49123/kalakranti/internal/repository"
)

var (
	ErrStallNotFound    = repository.ErrStallNotFound
	ErrStallNotPending  = repository.ErrStallNotPending
	ErrStallNotApproved = repository.ErrStallNotApproved
	ErrStallNumberTaken = repository.ErrStallNumberTaken
	ErrForbidden        = errors.New("caller is not allowed to perform this action")
	ErrEventClosed      = errors.New("event is not accepting stall registrations")
	ErrSelfAsMember     = errors.New("leader cannot be listed as a team member")
	ErrDuplicateMember  = errors.New("the same member is listed more than once")
	ErrTooManyMembers   = fmt.Errorf("a stall team may have at most %v members besides the leader", domain.MaxStallMembers)
	ErrInvalidDecision  = errors.New("decision must be approved or rejected")
	ErrInvalidStallNum  = errors.New("stall number must be a positive integer")
)

// MemberNotFoundError names the first member email with no matching account,
// so the leader knows exactly which teammate still needs to sign up.
type MemberNotFoundError struct {
	Email string
}

func (e *MemberNotFoundError) Error() string {
	return fmt.Sprintf("no account found for member email %q", e.Email)
}

type StallRepository interface {
	Create(ctx context.Context, stall domain.Stall, memberIDs []uint, leaderPhone string) (domain.Stall, error)
	FindByID(ctx context.Context, id uint) (domain.Stall, error)
	FindByLeaderID(ctx context.Context, leaderID uint) ([]domain.Stall, error)
	List(ctx context.Context, filter domain.StallFilter) ([]domain.StallSummary, error)
	UpdateStatusFromPending(ctx context.Context, id uint, status domain.StallStatus, approvedAt *time.Time) (domain.Stall, error)
	SetNumber(ctx context.Context, id uint, number int) (domain.Stall, error)
}

type StallProfileRepository interface {
	FindByEmail(ctx context.Context, email string) (domain.Profile, error)
}

type StallEventRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Event, error)
}

type StallService struct {
	repo  StallRepository
	uRepo StallProfileRepository
	eRepo StallEventRepository
	audit AuditRecorder
}

func NewStallService(repo StallRepository, uRepo StallProfileRepository, eRepo StallEventRepository, audit AuditRecorder) *StallService {
	return &StallService{
		repo:  repo,
		uRepo: uRepo,
		eRepo: eRepo,
		audit: audit,
	}
}

// RegisterStall files a new stall application for the given event. Member
// emails are resolved to existing accounts one by one; the first email with
// no account aborts the whole registration. The leader's phone number is
// saved on their profile in the same transaction as the stall row.
func (s *StallService) RegisterStall(ctx context.Context, actor domain.Actor, stall domain.Stall, memberEmails []string, leaderPhone string) (domain.Stall, error) {
	event, err := s.eRepo.FindByID(ctx, stall.EventID)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return domain.Stall{}, ErrEventNotFound
		}

		return domain.Stall{}, fmt.Errorf("s.eRepo.FindByID -> %w", err)
	}
	if !event.AcceptsRegistrations(time.Now()) {
		return domain.Stall{}, ErrEventClosed
	}

	memberIDs, err := s.resolveMembers(ctx, actor.UserID, memberEmails)
	if err != nil {
		return domain.Stall{}, err
	}

	stall.LeaderID = actor.UserID
	stall.Status = domain.StallPending
	stall.AppliedAt = time.Now()

	created, err := s.repo.Create(ctx, stall, memberIDs, leaderPhone)
	if err != nil {
		return domain.Stall{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	s.audit.Record(ctx, actor.UserID, "stall.registered", map[string]interface{}{
		"stall_id": created.ID,
		"event_id": created.EventID,
		"members":  len(memberIDs),
	})

	return created, nil
}

func (s *StallService) resolveMembers(ctx context.Context, leaderID uint, emails []string) ([]uint, error) {
	if len(emails) > domain.MaxStallMembers {
		return nil, ErrTooManyMembers
	}

	seen := make(map[string]bool, len(emails))
	ids := make([]uint, 0, len(emails))
	for _, raw := range emails {
		submitted := strings.TrimSpace(raw)
		if submitted == "" {
			continue
		}
		// Profiles store emails lowercased; the error keeps the form the
		// leader typed.
		email := normalizeEmail(submitted)
		if seen[email] {
			return nil, ErrDuplicateMember
		}
		seen[email] = true

		profile, err := s.uRepo.FindByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, repository.ErrProfileNotFound) {
				return nil, &MemberNotFoundError{Email: submitted}
			}

			return nil, fmt.Errorf("s.uRepo.FindByEmail -> %w", err)
		}
		if profile.ID == leaderID {
			return nil, ErrSelfAsMember
		}

		ids = append(ids, profile.ID)
	}

	return ids, nil
}

// DecideStall approves or rejects a pending stall. Only pending stalls can
// be decided; a stall that was already decided stays as it is.
func (s *StallService) DecideStall(ctx context.Context, actor domain.Actor, stallID uint, decision domain.StallStatus) (domain.Stall, error) {
	if !actor.HasAdminAccess() {
		return domain.Stall{}, ErrForbidden
	}
	if decision != domain.StallApproved && decision != domain.StallRejected {
		return domain.Stall{}, ErrInvalidDecision
	}

	var approvedAt *time.Time
	if decision == domain.StallApproved {
		now := time.Now()
		approvedAt = &now
	}

	stall, err := s.repo.UpdateStatusFromPending(ctx, stallID, decision, approvedAt)
	if err != nil {
		if errors.Is(err, repository.ErrStallNotFound) {
			return domain.Stall{}, ErrStallNotFound
		}
		if errors.Is(err, repository.ErrStallNotPending) {
			return domain.Stall{}, ErrStallNotPending
		}

		return domain.Stall{}, fmt.Errorf("s.repo.UpdateStatusFromPending -> %w", err)
	}

	s.audit.Record(ctx, actor.UserID, "stall."+string(decision), map[string]interface{}{
		"stall_id": stallID,
	})

	return stall, nil
}

// AssignStallNumber gives an approved stall its physical spot. Numbers are
// unique within an event; reassigning the same stall a new number is fine.
func (s *StallService) AssignStallNumber(ctx context.Context, actor domain.Actor, stallID uint, number int) (domain.Stall, error) {
	if !actor.HasAdminAccess() {
		return domain.Stall{}, ErrForbidden
	}
	if number < 1 {
		return domain.Stall{}, ErrInvalidStallNum
	}

	stall, err := s.repo.SetNumber(ctx, stallID, number)
	if err != nil {
		if errors.Is(err, repository.ErrStallNotFound) {
			return domain.Stall{}, ErrStallNotFound
		}
		if errors.Is(err, repository.ErrStallNotApproved) {
			return domain.Stall{}, ErrStallNotApproved
		}
		if errors.Is(err, repository.ErrStallNumberTaken) {
			return domain.Stall{}, ErrStallNumberTaken
		}

		return domain.Stall{}, fmt.Errorf("s.repo.SetNumber -> %w", err)
	}

	s.audit.Record(ctx, actor.UserID, "stall.number_assigned", map[string]interface{}{
		"stall_id":     stallID,
		"stall_number": number,
	})

	return stall, nil
}

func (s *StallService) GetStall(ctx context.Context, actor domain.Actor, stallID uint) (domain.Stall, error) {
	stall, err := s.repo.FindByID(ctx, stallID)
	if err != nil {
		if errors.Is(err, repository.ErrStallNotFound) {
			return domain.Stall{}, ErrStallNotFound
		}

		return domain.Stall{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if !actor.HasAdminAccess() && stall.LeaderID != actor.UserID {
		return domain.Stall{}, ErrForbidden
	}

	return stall, nil
}

func (s *StallService) ListStalls(ctx context.Context, actor domain.Actor, filter domain.StallFilter) ([]domain.StallSummary, error) {
	if !actor.HasAdminAccess() {
		return nil, ErrForbidden
	}

	stalls, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("s.repo.List -> %w", err)
	}

	return stalls, nil
}

// MyStalls lists the applications led by the calling student.
func (s *StallService) MyStalls(ctx context.Context, actor domain.Actor) ([]domain.Stall, error) {
	stalls, err := s.repo.FindByLeaderID(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByLeaderID -> %w", err)
	}

	return stalls, nil
}
