package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/scolarest/cantine-api/internal/domain"
	"github.com/scolarest/cantine-api/internal/repository"
)

type ActionLogRepository interface {
	Create(ctx context.Context, log domain.ActionLog) (domain.ActionLog, error)
	List(ctx context.Context, filter repository.ActionLogFilter) ([]domain.ActionLog, error)
}

// AuditService appends to the action log. Entries are written best-effort: a
// failed audit write is logged but never fails the request that triggered it.
type AuditService struct {
	repo ActionLogRepository
}

func NewAuditService(repo ActionLogRepository) *AuditService {
	return &AuditService{
		repo: repo,
	}
}

func (s *AuditService) Record(ctx context.Context, log domain.ActionLog) {
	if _, err := s.repo.Create(ctx, log); err != nil {
		zap.L().Error("failed to record audit entry",
			zap.String("action", string(log.ActionType)),
			zap.String("model", log.ModelName),
			zap.Error(err),
		)
	}
}

func (s *AuditService) List(ctx context.Context, filter repository.ActionLogFilter) ([]domain.ActionLog, error) {
	return s.repo.List(ctx, filter)
}
