package repository

import (
	"context"

	"github.com/brushworks/fieldops-api/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectImageRepository struct {
	db *gorm.DB
}

func NewProjectImageRepository(db *gorm.DB) *ProjectImageRepository {
	return &ProjectImageRepository{db: db}
}

// WithTx returns a copy bound to the given transaction
func (r *ProjectImageRepository) WithTx(tx *gorm.DB) *ProjectImageRepository {
	return &ProjectImageRepository{db: tx}
}

func (r *ProjectImageRepository) Create(ctx context.Context, image *domain.ProjectImage) error {
	return r.db.WithContext(ctx).Create(image).Error
}

func (r *ProjectImageRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ProjectImage, error) {
	var image domain.ProjectImage
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&image).Error
	if err != nil {
		return nil, err
	}
	return &image, nil
}

func (r *ProjectImageRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]domain.ProjectImage, error) {
	var images []domain.ProjectImage
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&images).Error
	return images, err
}

func (r *ProjectImageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.ProjectImage{}, "id = ?", id).Error
}
