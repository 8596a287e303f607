package repository

import (
	"context"

	"github.com/brushworks/fieldops-api/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ServiceOrderRepository struct {
	db *gorm.DB
}

func NewServiceOrderRepository(db *gorm.DB) *ServiceOrderRepository {
	return &ServiceOrderRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *ServiceOrderRepository) WithTx(tx *gorm.DB) *ServiceOrderRepository {
	return &ServiceOrderRepository{db: tx}
}

func (r *ServiceOrderRepository) Create(ctx context.Context, order *domain.ServiceOrder) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *ServiceOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ServiceOrder, error) {
	var order domain.ServiceOrder
	err := r.db.WithContext(ctx).Preload("Project").Where("id = ?", id).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *ServiceOrderRepository) List(ctx context.Context, projectID *uuid.UUID) ([]domain.ServiceOrder, error) {
	var orders []domain.ServiceOrder
	query := r.db.WithContext(ctx).Preload("Project").Order("created_at DESC")
	if projectID != nil {
		query = query.Where("project_id = ?", *projectID)
	}
	err := query.Find(&orders).Error
	return orders, err
}

func (r *ServiceOrderRepository) Update(ctx context.Context, order *domain.ServiceOrder) error {
	return r.db.WithContext(ctx).Save(order).Error
}

func (r *ServiceOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.ServiceOrder{}, "id = ?", id).Error
}
