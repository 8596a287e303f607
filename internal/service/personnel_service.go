package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/brushworks/fieldops-api/internal/domain"
	"github.com/brushworks/fieldops-api/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type PersonnelService struct {
	db             *gorm.DB
	personnelRepo  *repository.PersonnelRepository
	assignmentRepo *repository.AssignmentRepository
	activityRepo   *repository.ActivityRepository
	logger         *zap.Logger
}

func NewPersonnelService(
	db *gorm.DB,
	personnelRepo *repository.PersonnelRepository,
	assignmentRepo *repository.AssignmentRepository,
	activityRepo *repository.ActivityRepository,
	logger *zap.Logger,
) *PersonnelService {
	return &PersonnelService{
		db:             db,
		personnelRepo:  personnelRepo,
		assignmentRepo: assignmentRepo,
		activityRepo:   activityRepo,
		logger:         logger,
	}
}

func (s *PersonnelService) Create(ctx context.Context, req *domain.CreatePersonnelRequest) (*domain.Personnel, error) {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	person := &domain.Personnel{
		Name:       req.Name,
		Type:       domain.PersonnelType(req.Type),
		Position:   req.Position,
		HourlyRate: req.HourlyRate,
		Phone:      req.Phone,
		Email:      req.Email,
		IsActive:   true,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.personnelRepo.WithTx(tx).Create(ctx, person); err != nil {
			return fmt.Errorf("failed to create personnel: %w", err)
		}
		activity := &domain.Activity{
			Title:       fmt.Sprintf("Personnel added: %s", person.Name),
			Description: fmt.Sprintf("%s joined the roster as %s", person.Name, person.Type),
			Type:        domain.ActivityTypePersonnel,
			RelatedID:   &person.ID,
			RelatedType: "personnel",
			CreatedBy:   actor.UserID,
		}
		return s.activityRepo.WithTx(tx).Create(ctx, activity)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("personnel created",
		zap.String("personnel_id", person.ID.String()),
		zap.String("name", person.Name),
	)
	return person, nil
}

func (s *PersonnelService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Personnel, error) {
	person, err := s.personnelRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("personnel %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get personnel: %w", err)
	}
	return person, nil
}

func (s *PersonnelService) List(ctx context.Context) ([]domain.Personnel, error) {
	personnel, err := s.personnelRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list personnel: %w", err)
	}
	return personnel, nil
}

func (s *PersonnelService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdatePersonnelRequest) (*domain.Personnel, error) {
	if _, err := actorFromContext(ctx); err != nil {
		return nil, err
	}

	person, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		person.Name = *req.Name
	}
	if req.Type != nil {
		person.Type = domain.PersonnelType(*req.Type)
	}
	if req.Position != nil {
		person.Position = *req.Position
	}
	if req.HourlyRate != nil {
		person.HourlyRate = *req.HourlyRate
	}
	if req.Phone != nil {
		person.Phone = *req.Phone
	}
	if req.Email != nil {
		person.Email = *req.Email
	}
	if req.IsActive != nil {
		person.IsActive = *req.IsActive
	}

	if err := s.personnelRepo.Update(ctx, person); err != nil {
		return nil, fmt.Errorf("failed to update personnel: %w", err)
	}
	return person, nil
}

// Availability computes how many active people are free right now:
// active roster minus distinct personnel holding an open-ended assignment.
func (s *PersonnelService) Availability(ctx context.Context) (total, available int64, err error) {
	total, err = s.personnelRepo.CountActive(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count active personnel: %w", err)
	}
	occupied, err := s.assignmentRepo.CountOccupied(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count occupied personnel: %w", err)
	}
	available = total - occupied
	if available < 0 {
		available = 0
	}
	return total, available, nil
}
