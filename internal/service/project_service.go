package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/brushworks/fieldops-api/internal/config"
	"github.com/brushworks/fieldops-api/internal/domain"
	"github.com/brushworks/fieldops-api/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ProjectService struct {
	db           *gorm.DB
	projectRepo  *repository.ProjectRepository
	clientRepo   *repository.ClientRepository
	activityRepo *repository.ActivityRepository
	pipeline     *config.PipelineConfig
	logger       *zap.Logger
}

func NewProjectService(
	db *gorm.DB,
	projectRepo *repository.ProjectRepository,
	clientRepo *repository.ClientRepository,
	activityRepo *repository.ActivityRepository,
	pipeline *config.PipelineConfig,
	logger *zap.Logger,
) *ProjectService {
	return &ProjectService{
		db:           db,
		projectRepo:  projectRepo,
		clientRepo:   clientRepo,
		activityRepo: activityRepo,
		pipeline:     pipeline,
		logger:       logger,
	}
}

func (s *ProjectService) Create(ctx context.Context, req *domain.CreateProjectRequest) (*domain.Project, error) {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	// The client must exist before a project can reference it
	if _, err := s.clientRepo.GetByID(ctx, req.ClientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("client %s: %w", req.ClientID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}

	priority := domain.ProjectPriority(req.Priority)
	if req.Priority == "" {
		priority = domain.PriorityNormal
	}

	project := &domain.Project{
		Title:       req.Title,
		Description: req.Description,
		ClientID:    req.ClientID,
		Status:      domain.StatusPendingVisit,
		Priority:    priority,
		Address:     req.Address,
		VisitDate:   req.VisitDate,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Value:       req.Value,
		CreatedBy:   actor.UserID,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.projectRepo.WithTx(tx).Create(ctx, project); err != nil {
			return fmt.Errorf("failed to create project: %w", err)
		}
		activity := &domain.Activity{
			Title:       fmt.Sprintf("Project created: %s", project.Title),
			Description: fmt.Sprintf("Project %q entered the pipeline at %s", project.Title, project.Status),
			Type:        domain.ActivityTypeProject,
			RelatedID:   &project.ID,
			RelatedType: "project",
			CreatedBy:   actor.UserID,
		}
		return s.activityRepo.WithTx(tx).Create(ctx, activity)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("project created",
		zap.String("project_id", project.ID.String()),
		zap.String("title", project.Title),
		zap.String("client_id", project.ClientID.String()),
	)
	return project, nil
}

func (s *ProjectService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("project %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return project, nil
}

func (s *ProjectService) List(ctx context.Context, status *domain.ProjectStatus) ([]domain.Project, error) {
	if status != nil && !status.IsValid() {
		return nil, fmt.Errorf("unknown status %q: %w", *status, ErrInvalidInput)
	}
	projects, err := s.projectRepo.List(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// Update applies partial field changes. Status is deliberately excluded;
// it only moves through UpdateStatus or lifecycle side effects.
func (s *ProjectService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateProjectRequest) (*domain.Project, error) {
	if _, err := actorFromContext(ctx); err != nil {
		return nil, err
	}

	project, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		project.Title = *req.Title
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.Priority != nil {
		project.Priority = domain.ProjectPriority(*req.Priority)
	}
	if req.Address != nil {
		project.Address = *req.Address
	}
	if req.VisitDate != nil {
		project.VisitDate = req.VisitDate
	}
	if req.StartDate != nil {
		project.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		project.EndDate = req.EndDate
	}
	if req.Value != nil {
		project.Value = *req.Value
	}

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	return project, nil
}

func (s *ProjectService) Delete(ctx context.Context, id uuid.UUID) error {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return err
	}

	project, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.projectRepo.WithTx(tx).Delete(ctx, id); err != nil {
			return fmt.Errorf("failed to delete project: %w", err)
		}
		activity := &domain.Activity{
			Title:       fmt.Sprintf("Project deleted: %s", project.Title),
			Type:        domain.ActivityTypeProject,
			RelatedID:   &project.ID,
			RelatedType: "project",
			CreatedBy:   actor.UserID,
		}
		return s.activityRepo.WithTx(tx).Create(ctx, activity)
	})
}

// UpdateStatus moves a project to another pipeline stage. The status value
// must be one of the known stages; in strict mode the move must also follow
// the forward pipeline order. The write and its audit record are atomic.
func (s *ProjectService) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ProjectStatus) (*domain.Project, error) {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if !status.IsValid() {
		return nil, fmt.Errorf("unknown status %q: %w", status, ErrInvalidInput)
	}

	project, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !domain.CanTransition(project.Status, status, s.pipeline.StrictTransitions) {
		return nil, fmt.Errorf("transition %s -> %s not allowed: %w", project.Status, status, ErrInvalidInput)
	}

	from := project.Status
	err = s.db.Transaction(func(tx *gorm.DB) error {
		return s.transitionTx(ctx, tx, project, status, actor.UserID, "manual status change")
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("project status changed",
		zap.String("project_id", project.ID.String()),
		zap.String("from", string(from)),
		zap.String("to", string(status)),
	)
	return project, nil
}

// transitionTx writes a status change and its activity inside an existing
// transaction. Lifecycle side effects (quote sent/approved, order
// start/complete) call this directly and bypass the strict-mode table,
// since they are causally driven rather than manual board moves.
func (s *ProjectService) transitionTx(ctx context.Context, tx *gorm.DB, project *domain.Project, to domain.ProjectStatus, actorID uuid.UUID, reason string) error {
	from := project.Status
	if from == to {
		return nil
	}

	if err := s.projectRepo.WithTx(tx).UpdateStatus(ctx, project.ID, to); err != nil {
		return fmt.Errorf("failed to update project status: %w", err)
	}
	project.Status = to

	activity := &domain.Activity{
		Title:       fmt.Sprintf("Project status: %s -> %s", from, to),
		Description: fmt.Sprintf("Project %q moved from %s to %s (%s)", project.Title, from, to, reason),
		Type:        domain.ActivityTypeProject,
		RelatedID:   &project.ID,
		RelatedType: "project",
		CreatedBy:   actorID,
	}
	return s.activityRepo.WithTx(tx).Create(ctx, activity)
}
