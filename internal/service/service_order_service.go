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

type ServiceOrderService struct {
	db             *gorm.DB
	orderRepo      *repository.ServiceOrderRepository
	projectRepo    *repository.ProjectRepository
	activityRepo   *repository.ActivityRepository
	projectService *ProjectService
	logger         *zap.Logger
}

func NewServiceOrderService(
	db *gorm.DB,
	orderRepo *repository.ServiceOrderRepository,
	projectRepo *repository.ProjectRepository,
	activityRepo *repository.ActivityRepository,
	projectService *ProjectService,
	logger *zap.Logger,
) *ServiceOrderService {
	return &ServiceOrderService{
		db:             db,
		orderRepo:      orderRepo,
		projectRepo:    projectRepo,
		activityRepo:   activityRepo,
		projectService: projectService,
		logger:         logger,
	}
}

// Create creates a work order and moves its project into in_preparation
func (s *ServiceOrderService) Create(ctx context.Context, req *domain.CreateServiceOrderRequest) (*domain.ServiceOrder, error) {
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

	now := time.Now()
	var order *domain.ServiceOrder
	for attempt := 0; attempt < numberMaxAttempts; attempt++ {
		order = &domain.ServiceOrder{
			ProjectID:    project.ID,
			OrderNumber:  newOrderNumber(now),
			Description:  req.Description,
			Instructions: req.Instructions,
			CreatedBy:    actor.UserID,
		}

		err = s.db.Transaction(func(tx *gorm.DB) error {
			if err := s.orderRepo.WithTx(tx).Create(ctx, order); err != nil {
				return err
			}

			activity := &domain.Activity{
				Title:       fmt.Sprintf("Service order created: %s", order.OrderNumber),
				Description: fmt.Sprintf("Work order %s scheduled for project %q", order.OrderNumber, project.Title),
				Type:        domain.ActivityTypeServiceOrder,
				RelatedID:   &order.ID,
				RelatedType: "service_order",
				CreatedBy:   actor.UserID,
			}
			if err := s.activityRepo.WithTx(tx).Create(ctx, activity); err != nil {
				return err
			}

			return s.projectService.transitionTx(ctx, tx, project, domain.StatusInPreparation, actor.UserID, "service order created")
		})
		if err == nil {
			break
		}
		if !isDuplicateKeyError(err) {
			return nil, fmt.Errorf("failed to create service order: %w", err)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create service order after %d attempts: %w", numberMaxAttempts, err)
	}

	s.logger.Info("service order created",
		zap.String("order_id", order.ID.String()),
		zap.String("order_number", order.OrderNumber),
	)
	return order, nil
}

func (s *ServiceOrderService) GetByID(ctx context.Context, id uuid.UUID) (*domain.ServiceOrder, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("service order %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get service order: %w", err)
	}
	return order, nil
}

func (s *ServiceOrderService) List(ctx context.Context, projectID *uuid.UUID) ([]domain.ServiceOrder, error) {
	orders, err := s.orderRepo.List(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list service orders: %w", err)
	}
	return orders, nil
}

// Update edits description or instructions on an order that has not started
func (s *ServiceOrderService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateServiceOrderRequest) (*domain.ServiceOrder, error) {
	if _, err := actorFromContext(ctx); err != nil {
		return nil, err
	}

	order, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.StartedAt != nil {
		return nil, fmt.Errorf("service order %s already started: %w", order.OrderNumber, ErrConflict)
	}

	if req.Description != nil {
		order.Description = *req.Description
	}
	if req.Instructions != nil {
		order.Instructions = *req.Instructions
	}

	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to update service order: %w", err)
	}
	return order, nil
}

// Delete removes an order that has not started
func (s *ServiceOrderService) Delete(ctx context.Context, id uuid.UUID) error {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return err
	}

	order, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if order.StartedAt != nil {
		return fmt.Errorf("service order %s already started: %w", order.OrderNumber, ErrConflict)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.orderRepo.WithTx(tx).Delete(ctx, id); err != nil {
			return fmt.Errorf("failed to delete service order: %w", err)
		}
		activity := &domain.Activity{
			Title:       fmt.Sprintf("Service order deleted: %s", order.OrderNumber),
			Type:        domain.ActivityTypeServiceOrder,
			RelatedID:   &order.ID,
			RelatedType: "service_order",
			CreatedBy:   actor.UserID,
		}
		return s.activityRepo.WithTx(tx).Create(ctx, activity)
	})
}

// Start stamps startedAt, stores the optional signature captured on site
// and moves the project to in_progress. An order can only start once.
func (s *ServiceOrderService) Start(ctx context.Context, id uuid.UUID, signature string) (*domain.ServiceOrder, error) {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	order, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.StartedAt != nil {
		return nil, fmt.Errorf("service order %s already started: %w", order.OrderNumber, ErrConflict)
	}

	project, err := s.projectRepo.GetByID(ctx, order.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	now := time.Now()
	order.StartedAt = &now
	order.StartSignature = signature

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.orderRepo.WithTx(tx).Update(ctx, order); err != nil {
			return fmt.Errorf("failed to start service order: %w", err)
		}

		activity := &domain.Activity{
			Title:       fmt.Sprintf("Work started: %s", order.OrderNumber),
			Description: fmt.Sprintf("Work order %s started on project %q", order.OrderNumber, project.Title),
			Type:        domain.ActivityTypeServiceOrder,
			RelatedID:   &order.ID,
			RelatedType: "service_order",
			CreatedBy:   actor.UserID,
		}
		if err := s.activityRepo.WithTx(tx).Create(ctx, activity); err != nil {
			return err
		}

		return s.projectService.transitionTx(ctx, tx, project, domain.StatusInProgress, actor.UserID, "service order started")
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("service order started",
		zap.String("order_id", order.ID.String()),
		zap.String("order_number", order.OrderNumber),
	)
	return order, nil
}

// Complete stamps completedAt, stores the optional end signature and moves
// the project to completed. Requires a started, not yet completed order.
func (s *ServiceOrderService) Complete(ctx context.Context, id uuid.UUID, signature string) (*domain.ServiceOrder, error) {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	order, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.StartedAt == nil {
		return nil, fmt.Errorf("service order %s not started: %w", order.OrderNumber, ErrConflict)
	}
	if order.CompletedAt != nil {
		return nil, fmt.Errorf("service order %s already completed: %w", order.OrderNumber, ErrConflict)
	}

	project, err := s.projectRepo.GetByID(ctx, order.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	now := time.Now()
	order.CompletedAt = &now
	order.EndSignature = signature

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.orderRepo.WithTx(tx).Update(ctx, order); err != nil {
			return fmt.Errorf("failed to complete service order: %w", err)
		}

		activity := &domain.Activity{
			Title:       fmt.Sprintf("Work completed: %s", order.OrderNumber),
			Description: fmt.Sprintf("Work order %s completed on project %q", order.OrderNumber, project.Title),
			Type:        domain.ActivityTypeServiceOrder,
			RelatedID:   &order.ID,
			RelatedType: "service_order",
			CreatedBy:   actor.UserID,
		}
		if err := s.activityRepo.WithTx(tx).Create(ctx, activity); err != nil {
			return err
		}

		return s.projectService.transitionTx(ctx, tx, project, domain.StatusCompleted, actor.UserID, "service order completed")
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("service order completed",
		zap.String("order_id", order.ID.String()),
		zap.String("order_number", order.OrderNumber),
	)
	return order, nil
}
