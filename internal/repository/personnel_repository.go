package repository

import (
	"context"

	"github.com/brushworks/fieldops-api/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PersonnelRepository struct {
	db *gorm.DB
}

func NewPersonnelRepository(db *gorm.DB) *PersonnelRepository {
	return &PersonnelRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *PersonnelRepository) WithTx(tx *gorm.DB) *PersonnelRepository {
	return &PersonnelRepository{db: tx}
}

func (r *PersonnelRepository) Create(ctx context.Context, person *domain.Personnel) error {
	return r.db.WithContext(ctx).Create(person).Error
}

func (r *PersonnelRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Personnel, error) {
	var person domain.Personnel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&person).Error
	if err != nil {
		return nil, err
	}
	return &person, nil
}

func (r *PersonnelRepository) List(ctx context.Context) ([]domain.Personnel, error) {
	var personnel []domain.Personnel
	err := r.db.WithContext(ctx).Order("name ASC").Find(&personnel).Error
	return personnel, err
}

func (r *PersonnelRepository) Update(ctx context.Context, person *domain.Personnel) error {
	return r.db.WithContext(ctx).Save(person).Error
}

// CountActive counts active roster entries
func (r *PersonnelRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Personnel{}).
		Where("is_active = ?", true).
		Count(&count).Error
	return count, err
}
