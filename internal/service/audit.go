package service

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/designclub49123/kalakranti/internal/domain"
)

// AuditRecorder is implemented by AuditService. Recording never fails the
// operation being audited.
type AuditRecorder interface {
	Record(ctx context.Context, userID uint, action string, details map[string]interface{})
}

type AuditRepository interface {
	Create(ctx context.Context, entry domain.AuditLog) (domain.AuditLog, error)
	FindRecent(ctx context.Context, limit int) ([]domain.AuditLog, error)
}

type AuditService struct {
	repo   AuditRepository
	logger *zap.Logger
}

func NewAuditService(repo AuditRepository, logger *zap.Logger) *AuditService {
	return &AuditService{
		repo:   repo,
		logger: logger,
	}
}

func (s *AuditService) Record(ctx context.Context, userID uint, action string, details map[string]interface{}) {
	raw, err := json.Marshal(details)
	if err != nil {
		s.logger.Warn("failed to marshal audit details",
			zap.String("action", action),
			zap.Error(err))
		raw = []byte("{}")
	}

	entry := domain.AuditLog{
		UserID:  &userID,
		Action:  action,
		Details: raw,
	}
	if _, err := s.repo.Create(ctx, entry); err != nil {
		s.logger.Warn("failed to record audit entry",
			zap.String("action", action),
			zap.Uint("user_id", userID),
			zap.Error(err))
	}
}

func (s *AuditService) ListRecent(ctx context.Context, actor domain.Actor, limit int) ([]domain.AuditLog, error) {
	if !actor.HasAdminAccess() {
		return nil, ErrForbidden
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	entries, err := s.repo.FindRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindRecent -> %w", err)
	}

	return entries, nil
}
