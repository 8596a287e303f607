package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/brushworks/fieldops-api/internal/domain"
	"github.com/brushworks/fieldops-api/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type QuoteService struct {
	db             *gorm.DB
	quoteRepo      *repository.QuoteRepository
	projectRepo    *repository.ProjectRepository
	activityRepo   *repository.ActivityRepository
	projectService *ProjectService
	logger         *zap.Logger
}

func NewQuoteService(
	db *gorm.DB,
	quoteRepo *repository.QuoteRepository,
	projectRepo *repository.ProjectRepository,
	activityRepo *repository.ActivityRepository,
	projectService *ProjectService,
	logger *zap.Logger,
) *QuoteService {
	return &QuoteService{
		db:             db,
		quoteRepo:      quoteRepo,
		projectRepo:    projectRepo,
		activityRepo:   activityRepo,
		projectService: projectService,
		logger:         logger,
	}
}

// Create creates a quote for a project. The total is computed here from the
// cost components; any total a client sent along is discarded. Creating a
// quote against a project still in pending_visit marks it quote_sent in the
// same transaction.
func (s *QuoteService) Create(ctx context.Context, req *domain.CreateQuoteRequest) (*domain.Quote, error) {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	project, err := s.projectRepo.GetByID(ctx, req.ProjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("project %s: %w", req.ProjectID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	breakdown := domain.ComputeQuoteTotal(req.MaterialsCost, req.LaborCost, req.AdditionalCosts, req.Margin)
	now := time.Now()

	var quote *domain.Quote
	for attempt := 0; attempt < numberMaxAttempts; attempt++ {
		quote = &domain.Quote{
			ProjectID:       project.ID,
			QuoteNumber:     newQuoteNumber(now),
			MaterialsCost:   domain.RoundCurrency(req.MaterialsCost),
			LaborCost:       domain.RoundCurrency(req.LaborCost),
			AdditionalCosts: domain.RoundCurrency(req.AdditionalCosts),
			Margin:          req.Margin,
			TotalAmount:     breakdown.Total,
			Notes:           req.Notes,
			ValidUntil:      req.ValidUntil,
			SentAt:          &now,
			CreatedBy:       actor.UserID,
		}

		err = s.db.Transaction(func(tx *gorm.DB) error {
			if err := s.quoteRepo.WithTx(tx).Create(ctx, quote); err != nil {
				return err
			}

			activity := &domain.Activity{
				Title:       fmt.Sprintf("Quote created: %s", quote.QuoteNumber),
				Description: fmt.Sprintf("Quote %s for project %q, total %.2f", quote.QuoteNumber, project.Title, quote.TotalAmount),
				Type:        domain.ActivityTypeQuote,
				RelatedID:   &quote.ID,
				RelatedType: "quote",
				CreatedBy:   actor.UserID,
			}
			if err := s.activityRepo.WithTx(tx).Create(ctx, activity); err != nil {
				return err
			}

			if project.Status == domain.StatusPendingVisit {
				return s.projectService.transitionTx(ctx, tx, project, domain.StatusQuoteSent, actor.UserID, "quote sent")
			}
			return nil
		})
		if err == nil {
			break
		}
		if !isDuplicateKeyError(err) {
			return nil, fmt.Errorf("failed to create quote: %w", err)
		}
		// Number collision, try a fresh suffix
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create quote after %d attempts: %w", numberMaxAttempts, err)
	}

	s.logger.Info("quote created",
		zap.String("quote_id", quote.ID.String()),
		zap.String("quote_number", quote.QuoteNumber),
		zap.Float64("total", quote.TotalAmount),
	)
	return quote, nil
}

func (s *QuoteService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Quote, error) {
	quote, err := s.quoteRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("quote %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get quote: %w", err)
	}
	return quote, nil
}

func (s *QuoteService) List(ctx context.Context, projectID *uuid.UUID) ([]domain.Quote, error) {
	quotes, err := s.quoteRepo.List(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list quotes: %w", err)
	}
	return quotes, nil
}

// Approve marks a quote approved and advances its project to
// quote_approved. Approval is one-way and idempotent: re-approving an
// already-approved quote returns it unchanged without writing anything.
func (s *QuoteService) Approve(ctx context.Context, id uuid.UUID) (*domain.Quote, error) {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	quote, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if quote.IsApproved {
		return quote, nil
	}

	project, err := s.projectRepo.GetByID(ctx, quote.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	now := time.Now()
	quote.IsApproved = true
	quote.ApprovalDate = &now

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.quoteRepo.WithTx(tx).Update(ctx, quote); err != nil {
			return fmt.Errorf("failed to approve quote: %w", err)
		}

		activity := &domain.Activity{
			Title:       fmt.Sprintf("Quote approved: %s", quote.QuoteNumber),
			Description: fmt.Sprintf("Quote %s for project %q approved, total %.2f", quote.QuoteNumber, project.Title, quote.TotalAmount),
			Type:        domain.ActivityTypeQuote,
			RelatedID:   &quote.ID,
			RelatedType: "quote",
			CreatedBy:   actor.UserID,
		}
		if err := s.activityRepo.WithTx(tx).Create(ctx, activity); err != nil {
			return err
		}

		return s.projectService.transitionTx(ctx, tx, project, domain.StatusQuoteApproved, actor.UserID, "quote approved")
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("quote approved",
		zap.String("quote_id", quote.ID.String()),
		zap.String("quote_number", quote.QuoteNumber),
	)
	return quote, nil
}
