package repository

import (
	"context"

	"github.com/brushworks/fieldops-api/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AssignmentRepository struct {
	db *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *AssignmentRepository) WithTx(tx *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{db: tx}
}

func (r *AssignmentRepository) Create(ctx context.Context, assignment *domain.ProjectAssignment) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

func (r *AssignmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ProjectAssignment, error) {
	var assignment domain.ProjectAssignment
	err := r.db.WithContext(ctx).Preload("Personnel").Where("id = ?", id).First(&assignment).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *AssignmentRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]domain.ProjectAssignment, error) {
	var assignments []domain.ProjectAssignment
	err := r.db.WithContext(ctx).
		Preload("Personnel").
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&assignments).Error
	return assignments, err
}

func (r *AssignmentRepository) Update(ctx context.Context, assignment *domain.ProjectAssignment) error {
	return r.db.WithContext(ctx).Save(assignment).Error
}

func (r *AssignmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.ProjectAssignment{}, "id = ?", id).Error
}

// CountOccupied counts distinct personnel with an open-ended assignment.
// Closed assignments (end_date set) do not mark anyone as occupied.
func (r *AssignmentRepository) CountOccupied(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.ProjectAssignment{}).
		Where("end_date IS NULL").
		Distinct("personnel_id").
		Count(&count).Error
	return count, err
}
