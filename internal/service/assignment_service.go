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

type AssignmentService struct {
	db             *gorm.DB
	assignmentRepo *repository.AssignmentRepository
	projectRepo    *repository.ProjectRepository
	personnelRepo  *repository.PersonnelRepository
	activityRepo   *repository.ActivityRepository
	logger         *zap.Logger
}

func NewAssignmentService(
	db *gorm.DB,
	assignmentRepo *repository.AssignmentRepository,
	projectRepo *repository.ProjectRepository,
	personnelRepo *repository.PersonnelRepository,
	activityRepo *repository.ActivityRepository,
	logger *zap.Logger,
) *AssignmentService {
	return &AssignmentService{
		db:             db,
		assignmentRepo: assignmentRepo,
		projectRepo:    projectRepo,
		personnelRepo:  personnelRepo,
		activityRepo:   activityRepo,
		logger:         logger,
	}
}

// Create assigns a person to a project. Leaving endDate empty makes the
// assignment open-ended, which marks the person as occupied until closed.
func (s *AssignmentService) Create(ctx context.Context, req *domain.CreateAssignmentRequest) (*domain.ProjectAssignment, error) {
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

	person, err := s.personnelRepo.GetByID(ctx, req.PersonnelID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("personnel %s: %w", req.PersonnelID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get personnel: %w", err)
	}

	assignment := &domain.ProjectAssignment{
		ProjectID:   req.ProjectID,
		PersonnelID: req.PersonnelID,
		Role:        req.Role,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.assignmentRepo.WithTx(tx).Create(ctx, assignment); err != nil {
			return fmt.Errorf("failed to create assignment: %w", err)
		}
		activity := &domain.Activity{
			Title:       fmt.Sprintf("Personnel assigned: %s", person.Name),
			Description: fmt.Sprintf("%s assigned to project %q", person.Name, project.Title),
			Type:        domain.ActivityTypePersonnel,
			RelatedID:   &assignment.ProjectID,
			RelatedType: "project",
			CreatedBy:   actor.UserID,
		}
		return s.activityRepo.WithTx(tx).Create(ctx, activity)
	})
	if err != nil {
		return nil, err
	}

	assignment.Personnel = person
	return assignment, nil
}

func (s *AssignmentService) ListByProject(ctx context.Context, projectID uuid.UUID) ([]domain.ProjectAssignment, error) {
	assignments, err := s.assignmentRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	return assignments, nil
}

// Update reschedules or closes an assignment; setting endDate frees the person
func (s *AssignmentService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateAssignmentRequest) (*domain.ProjectAssignment, error) {
	if _, err := actorFromContext(ctx); err != nil {
		return nil, err
	}

	assignment, err := s.assignmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("assignment %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}

	if req.Role != nil {
		assignment.Role = *req.Role
	}
	if req.StartDate != nil {
		assignment.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		assignment.EndDate = req.EndDate
	}

	if err := s.assignmentRepo.Update(ctx, assignment); err != nil {
		return nil, fmt.Errorf("failed to update assignment: %w", err)
	}
	return assignment, nil
}

func (s *AssignmentService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := actorFromContext(ctx); err != nil {
		return err
	}

	if _, err := s.assignmentRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("assignment %s: %w", id, ErrNotFound)
		}
		return fmt.Errorf("failed to get assignment: %w", err)
	}

	if err := s.assignmentRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete assignment: %w", err)
	}
	return nil
}
