package repository

import (
	"context"
	"time"

	"github.com/brushworks/fieldops-api/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ActivityRepository handles the append-only audit trail. There are no
// update or delete methods on purpose.
type ActivityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *ActivityRepository) WithTx(tx *gorm.DB) *ActivityRepository {
	return &ActivityRepository{db: tx}
}

func (r *ActivityRepository) Create(ctx context.Context, activity *domain.Activity) error {
	return r.db.WithContext(ctx).Create(activity).Error
}

// ListRecent returns the newest activities first, capped at limit
func (r *ActivityRepository) ListRecent(ctx context.Context, limit int) ([]domain.Activity, error) {
	if limit <= 0 {
		limit = 10
	}
	var activities []domain.Activity
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&activities).Error
	return activities, err
}

// ListByRelated returns activities for one entity, newest first
func (r *ActivityRepository) ListByRelated(ctx context.Context, relatedID uuid.UUID, limit int) ([]domain.Activity, error) {
	if limit <= 0 {
		limit = 50
	}
	var activities []domain.Activity
	err := r.db.WithContext(ctx).
		Where("related_id = ?", relatedID).
		Order("created_at DESC").
		Limit(limit).
		Find(&activities).Error
	return activities, err
}

// ExistsSince reports whether an activity of the given type for the entity
// was written at or after the cutoff. Used to avoid duplicate reminders.
func (r *ActivityRepository) ExistsSince(ctx context.Context, activityType domain.ActivityType, relatedID uuid.UUID, cutoff time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Activity{}).
		Where("type = ? AND related_id = ? AND created_at >= ?", activityType, relatedID, cutoff).
		Count(&count).Error
	return count > 0, err
}
