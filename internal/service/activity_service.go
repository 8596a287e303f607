package service

import (
	"context"
	"fmt"

	"github.com/brushworks/fieldops-api/internal/domain"
	"github.com/brushworks/fieldops-api/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxActivityLimit = 100

// ActivityService reads the audit trail. Writes happen inside the owning
// services' transactions, never through the API.
type ActivityService struct {
	activityRepo *repository.ActivityRepository
	logger       *zap.Logger
}

func NewActivityService(activityRepo *repository.ActivityRepository, logger *zap.Logger) *ActivityService {
	return &ActivityService{
		activityRepo: activityRepo,
		logger:       logger,
	}
}

func (s *ActivityService) ListRecent(ctx context.Context, limit int) ([]domain.Activity, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > maxActivityLimit {
		limit = maxActivityLimit
	}
	activities, err := s.activityRepo.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	return activities, nil
}

func (s *ActivityService) ListByRelated(ctx context.Context, relatedID uuid.UUID, limit int) ([]domain.Activity, error) {
	activities, err := s.activityRepo.ListByRelated(ctx, relatedID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	return activities, nil
}
