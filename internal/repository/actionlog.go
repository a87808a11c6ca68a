package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/scolarest/cantine-api/internal/domain"
	"github.com/scolarest/cantine-api/internal/repository/dao"
)

// ActionLogFilter narrows audit listings.
type ActionLogFilter struct {
	UserID    *uint
	Action    domain.ActionType
	ModelName string
	Depuis    *time.Time
	Limit     int
}

type ActionLogDAO interface {
	Insert(ctx context.Context, log dao.ActionLog) (dao.ActionLog, error)
	List(ctx context.Context, filter dao.ActionLogFilter) ([]dao.ActionLog, error)
}

type ActionLogRepository struct {
	dao ActionLogDAO
}

func NewActionLogRepository(dao ActionLogDAO) *ActionLogRepository {
	return &ActionLogRepository{
		dao: dao,
	}
}

func (r *ActionLogRepository) Create(ctx context.Context, log domain.ActionLog) (domain.ActionLog, error) {
	created, err := r.dao.Insert(ctx, dao.ActionLog{
		UserID:      log.UserID,
		Action:      string(log.ActionType),
		ModelName:   log.ModelName,
		ObjectID:    log.ObjectID,
		Description: log.Description,
		IPAddress:   log.IPAddress,
		UserAgent:   log.UserAgent,
	})
	if err != nil {
		return domain.ActionLog{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return actionLogDaoToDomain(created), nil
}

func (r *ActionLogRepository) List(ctx context.Context, filter ActionLogFilter) ([]domain.ActionLog, error) {
	found, err := r.dao.List(ctx, dao.ActionLogFilter{
		UserID:    filter.UserID,
		Action:    string(filter.Action),
		ModelName: filter.ModelName,
		Depuis:    filter.Depuis,
		Limit:     filter.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("r.dao.List -> %w", err)
	}

	logs := make([]domain.ActionLog, 0, len(found))
	for _, l := range found {
		logs = append(logs, actionLogDaoToDomain(l))
	}

	return logs, nil
}

func actionLogDaoToDomain(l dao.ActionLog) domain.ActionLog {
	return domain.ActionLog{
		ID:          l.ID,
		UserID:      l.UserID,
		ActionType:  domain.ActionType(l.Action),
		ModelName:   l.ModelName,
		ObjectID:    l.ObjectID,
		Description: l.Description,
		IPAddress:   l.IPAddress,
		UserAgent:   l.UserAgent,
		CreatedAt:   l.CreatedAt,
	}
}
