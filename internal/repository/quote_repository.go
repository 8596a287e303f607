package repository

import (
	"context"

	"github.com/brushworks/fieldops-api/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QuoteRepository struct {
	db *gorm.DB
}

func NewQuoteRepository(db *gorm.DB) *QuoteRepository {
	return &QuoteRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *QuoteRepository) WithTx(tx *gorm.DB) *QuoteRepository {
	return &QuoteRepository{db: tx}
}

func (r *QuoteRepository) Create(ctx context.Context, quote *domain.Quote) error {
	return r.db.WithContext(ctx).Create(quote).Error
}

func (r *QuoteRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Quote, error) {
	var quote domain.Quote
	err := r.db.WithContext(ctx).Preload("Project").Where("id = ?", id).First(&quote).Error
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

func (r *QuoteRepository) List(ctx context.Context, projectID *uuid.UUID) ([]domain.Quote, error) {
	var quotes []domain.Quote
	query := r.db.WithContext(ctx).Preload("Project").Order("created_at DESC")
	if projectID != nil {
		query = query.Where("project_id = ?", *projectID)
	}
	err := query.Find(&quotes).Error
	return quotes, err
}

func (r *QuoteRepository) Update(ctx context.Context, quote *domain.Quote) error {
	return r.db.WithContext(ctx).Save(quote).Error
}

// CountPending counts unapproved quotes and sums their potential value
func (r *QuoteRepository) CountPending(ctx context.Context) (int64, float64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Quote{}).
		Where("is_approved = ?", false).
		Count(&count).Error
	if err != nil {
		return 0, 0, err
	}

	var total float64
	err = r.db.WithContext(ctx).
		Model(&domain.Quote{}).
		Select("COALESCE(SUM(total_amount), 0)").
		Where("is_approved = ?", false).
		Scan(&total).Error
	return count, total, err
}
