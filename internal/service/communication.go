package service

import (
	"context"
	"fmt"

	"github.com/designclub49123/kalakranti/internal/domain"
)

type CommunicationStallRepository interface {
	MemberUserIDs(ctx context.Context, eventID uint) ([]uint, error)
}

type CommunicationProfileRepository interface {
	FindByIDs(ctx context.Context, ids []uint) ([]domain.Profile, error)
	FindAll(ctx context.Context) ([]domain.Profile, error)
}

// CommunicationService resolves announcement audiences. Sending itself
// happens through an external channel; the API only answers "who".
type CommunicationService struct {
	sRepo CommunicationStallRepository
	uRepo CommunicationProfileRepository
}

func NewCommunicationService(sRepo CommunicationStallRepository, uRepo CommunicationProfileRepository) *CommunicationService {
	return &CommunicationService{
		sRepo: sRepo,
		uRepo: uRepo,
	}
}

// Recipients returns every profile taking part in the given event, leaders
// and members alike. A zero eventID addresses every registered account.
func (s *CommunicationService) Recipients(ctx context.Context, actor domain.Actor, eventID uint) ([]domain.Profile, error) {
	if !actor.HasAdminAccess() {
		return nil, ErrForbidden
	}

	if eventID == 0 {
		profiles, err := s.uRepo.FindAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("s.uRepo.FindAll -> %w", err)
		}

		return profiles, nil
	}

	ids, err := s.sRepo.MemberUserIDs(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("s.sRepo.MemberUserIDs -> %w", err)
	}
	if len(ids) == 0 {
		return []domain.Profile{}, nil
	}

	profiles, err := s.uRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("s.uRepo.FindByIDs -> %w", err)
	}

	return profiles, nil
}
