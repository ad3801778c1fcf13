package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/designclub49123/kalakranti/internal/domain"
	"github.com/designclub49123/kalakranti/internal/repository/dao"
)

var (
	ErrStallNotFound    = dao.ErrStallNotFound
	ErrStallNotPending  = dao.ErrStallNotPending
	ErrStallNotApproved = dao.ErrStallNotApproved
	ErrStallNumberTaken = dao.ErrStallNumberTaken
)

type StallDAO interface {
	InsertWithLeaderPhone(ctx context.Context, stall dao.Stall, leaderPhone string) (dao.Stall, error)
	FindByID(ctx context.Context, id uint) (dao.Stall, error)
	FindByLeaderID(ctx context.Context, leaderID uint) ([]dao.Stall, error)
	List(ctx context.Context, eventID uint, status, search string) ([]dao.Stall, error)
	FindApprovedByEvent(ctx context.Context, eventID uint) ([]dao.Stall, error)
	UpdateStatusFromPending(ctx context.Context, id uint, status string, approvedAt *time.Time) (dao.Stall, error)
	SetNumber(ctx context.Context, id uint, number int) (dao.Stall, error)
	MemberUserIDs(ctx context.Context, eventID uint) ([]uint, error)
}

type StallRepository struct {
	dao   StallDAO
	uRepo *ProfileRepository
}

func NewStallRepository(dao StallDAO, uRepo *ProfileRepository) *StallRepository {
	return &StallRepository{
		dao:   dao,
		uRepo: uRepo,
	}
}

// Create inserts a pending stall for the given member profile IDs and
// overwrites the leader's phone in the same transaction.
func (r *StallRepository) Create(ctx context.Context, stall domain.Stall, memberIDs []uint, leaderPhone string) (domain.Stall, error) {
	daoStall := dao.Stall{
		EventID:     stall.EventID,
		LeaderID:    stall.LeaderID,
		Name:        stall.Name,
		Description: stall.Description,
		Status:      string(domain.StallPending),
		AppliedAt:   stall.AppliedAt,
	}
	daoStall.Members = make([]dao.Profile, len(memberIDs))
	for i, id := range memberIDs {
		daoStall.Members[i] = dao.Profile{ID: id}
	}

	created, err := r.dao.InsertWithLeaderPhone(ctx, daoStall, leaderPhone)
	if err != nil {
		return domain.Stall{}, fmt.Errorf("r.dao.InsertWithLeaderPhone -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *StallRepository) FindByID(ctx context.Context, id uint) (domain.Stall, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Stall{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *StallRepository) FindByLeaderID(ctx context.Context, leaderID uint) ([]domain.Stall, error) {
	found, err := r.dao.FindByLeaderID(ctx, leaderID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByLeaderID -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *StallRepository) List(ctx context.Context, filter domain.StallFilter) ([]domain.StallSummary, error) {
	found, err := r.dao.List(ctx, filter.EventID, string(filter.Status), filter.Search)
	if err != nil {
		return nil, fmt.Errorf("r.dao.List -> %w", err)
	}

	summaries := make([]domain.StallSummary, len(found))
	for i, s := range found {
		summaries[i] = domain.StallSummary{
			ID:          s.ID,
			EventID:     s.EventID,
			EventName:   s.Event.Name,
			LeaderID:    s.LeaderID,
			LeaderName:  s.Leader.FullName,
			LeaderEmail: s.Leader.Email,
			Name:        s.Name,
			Description: s.Description,
			Status:      domain.StallStatus(s.Status),
			StallNumber: s.StallNumber,
			MemberCount: len(s.Members),
			AppliedAt:   s.AppliedAt,
			ApprovedAt:  s.ApprovedAt,
		}
	}

	return summaries, nil
}

func (r *StallRepository) FindApprovedByEvent(ctx context.Context, eventID uint) ([]domain.Stall, error) {
	found, err := r.dao.FindApprovedByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindApprovedByEvent -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *StallRepository) UpdateStatusFromPending(ctx context.Context, id uint, status domain.StallStatus, approvedAt *time.Time) (domain.Stall, error) {
	updated, err := r.dao.UpdateStatusFromPending(ctx, id, string(status), approvedAt)
	if err != nil {
		return domain.Stall{}, fmt.Errorf("r.dao.UpdateStatusFromPending -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *StallRepository) SetNumber(ctx context.Context, id uint, number int) (domain.Stall, error) {
	updated, err := r.dao.SetNumber(ctx, id, number)
	if err != nil {
		return domain.Stall{}, fmt.Errorf("r.dao.SetNumber -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *StallRepository) MemberUserIDs(ctx context.Context, eventID uint) ([]uint, error) {
	ids, err := r.dao.MemberUserIDs(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.MemberUserIDs -> %w", err)
	}

	return ids, nil
}

func (r *StallRepository) daoToDomain(s dao.Stall) domain.Stall {
	stall := domain.Stall{
		ID:          s.ID,
		EventID:     s.EventID,
		LeaderID:    s.LeaderID,
		Name:        s.Name,
		Description: s.Description,
		Status:      domain.StallStatus(s.Status),
		StallNumber: s.StallNumber,
		AppliedAt:   s.AppliedAt,
		ApprovedAt:  s.ApprovedAt,
	}

	if len(s.Members) > 0 {
		stall.Members = r.uRepo.daosToDomain(s.Members)
	}

	return stall
}

func (r *StallRepository) daosToDomain(stalls []dao.Stall) []domain.Stall {
	out := make([]domain.Stall, len(stalls))
	for i, s := range stalls {
		out[i] = r.daoToDomain(s)
	}
	return out
}
