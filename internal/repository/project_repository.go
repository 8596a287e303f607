package repository

import (
	"context"
	"time"

	"github.com/brushworks/fieldops-api/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *ProjectRepository) WithTx(tx *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: tx}
}

func (r *ProjectRepository) Create(ctx context.Context, project *domain.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

func (r *ProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	var project domain.Project
	err := r.db.WithContext(ctx).Preload("Client").Where("id = ?", id).First(&project).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *ProjectRepository) List(ctx context.Context, status *domain.ProjectStatus) ([]domain.Project, error) {
	var projects []domain.Project
	query := r.db.WithContext(ctx).Preload("Client").Order("created_at DESC")
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	err := query.Find(&projects).Error
	return projects, err
}

func (r *ProjectRepository) Update(ctx context.Context, project *domain.Project) error {
	return r.db.WithContext(ctx).Save(project).Error
}

func (r *ProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Project{}, "id = ?", id).Error
}

// UpdateStatus writes only the status column
func (r *ProjectRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ProjectStatus) error {
	return r.db.WithContext(ctx).
		Model(&domain.Project{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// CountByStatuses counts projects in any of the given statuses
func (r *ProjectRepository) CountByStatuses(ctx context.Context, statuses []domain.ProjectStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Project{}).
		Where("status IN ?", statuses).
		Count(&count).Error
	return count, err
}

// CountUrgent counts high-priority projects among the given statuses
func (r *ProjectRepository) CountUrgent(ctx context.Context, statuses []domain.ProjectStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Project{}).
		Where("status IN ? AND priority IN ?", statuses,
			[]domain.ProjectPriority{domain.PriorityHigh, domain.PriorityUrgent}).
		Count(&count).Error
	return count, err
}

// SumCompletedValueBetween sums the value of projects completed with an
// end date inside [from, to)
func (r *ProjectRepository) SumCompletedValueBetween(ctx context.Context, from, to time.Time) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).
		Model(&domain.Project{}).
		Select("COALESCE(SUM(value), 0)").
		Where("status = ? AND end_date IS NOT NULL AND end_date >= ? AND end_date < ?",
			domain.StatusCompleted, from, to).
		Scan(&total).Error
	return total, err
}
