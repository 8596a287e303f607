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

// prospectFollowUpLead is the default follow-up window for new prospects
const prospectFollowUpLead = 7 * 24 * time.Hour

type ClientService struct {
	db           *gorm.DB
	clientRepo   *repository.ClientRepository
	activityRepo *repository.ActivityRepository
	logger       *zap.Logger
}

func NewClientService(
	db *gorm.DB,
	clientRepo *repository.ClientRepository,
	activityRepo *repository.ActivityRepository,
	logger *zap.Logger,
) *ClientService {
	return &ClientService{
		db:           db,
		clientRepo:   clientRepo,
		activityRepo: activityRepo,
		logger:       logger,
	}
}

// Create creates a client or prospect. New prospects without a follow-up
// date get one a week out and a last-contact date of today.
func (s *ClientService) Create(ctx context.Context, req *domain.CreateClientRequest) (*domain.Client, error) {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	client := &domain.Client{
		Name:            req.Name,
		Type:            domain.ClientType(req.Type),
		ContactPerson:   req.ContactPerson,
		Email:           req.Email,
		Phone:           req.Phone,
		Address:         req.Address,
		Notes:           req.Notes,
		IsProspect:      req.IsProspect,
		LastContactDate: req.LastContactDate,
		NextFollowUp:    req.NextFollowUp,
		CreatedBy:       actor.UserID,
	}

	if client.IsProspect {
		now := time.Now()
		if client.NextFollowUp == nil {
			followUp := now.Add(prospectFollowUpLead)
			client.NextFollowUp = &followUp
		}
		if client.LastContactDate == nil {
			client.LastContactDate = &now
		}
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.clientRepo.WithTx(tx).Create(ctx, client); err != nil {
			return fmt.Errorf("failed to create client: %w", err)
		}

		kind := "Client"
		if client.IsProspect {
			kind = "Prospect"
		}
		activity := &domain.Activity{
			Title:       fmt.Sprintf("%s created: %s", kind, client.Name),
			Description: fmt.Sprintf("%s %q was added", kind, client.Name),
			Type:        domain.ActivityTypeClient,
			RelatedID:   &client.ID,
			RelatedType: "client",
			CreatedBy:   actor.UserID,
		}
		return s.activityRepo.WithTx(tx).Create(ctx, activity)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("client created",
		zap.String("client_id", client.ID.String()),
		zap.String("name", client.Name),
		zap.Bool("is_prospect", client.IsProspect),
	)
	return client, nil
}

func (s *ClientService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	client, err := s.clientRepo.GetByIDWithProjects(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("client %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return client, nil
}

func (s *ClientService) List(ctx context.Context) ([]domain.Client, error) {
	clients, err := s.clientRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	return clients, nil
}

// ListRequiringFollowUp returns prospects whose follow-up date has passed
func (s *ClientService) ListRequiringFollowUp(ctx context.Context) ([]domain.Client, error) {
	clients, err := s.clientRepo.ListRequiringFollowUp(ctx, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to list follow-ups: %w", err)
	}
	return clients, nil
}

// Update applies partial changes. Converting a prospect to a full client
// (isProspect true -> false) additionally logs a conversion activity; the
// reverse direction has no flow and is treated as a plain field write.
func (s *ClientService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateClientRequest) (*domain.Client, error) {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("client %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}

	wasProspect := client.IsProspect

	if req.Name != nil {
		client.Name = *req.Name
	}
	if req.Type != nil {
		client.Type = domain.ClientType(*req.Type)
	}
	if req.ContactPerson != nil {
		client.ContactPerson = *req.ContactPerson
	}
	if req.Email != nil {
		client.Email = *req.Email
	}
	if req.Phone != nil {
		client.Phone = *req.Phone
	}
	if req.Address != nil {
		client.Address = *req.Address
	}
	if req.Notes != nil {
		client.Notes = *req.Notes
	}
	if req.IsProspect != nil {
		client.IsProspect = *req.IsProspect
	}
	if req.LastContactDate != nil {
		client.LastContactDate = req.LastContactDate
	}
	if req.NextFollowUp != nil {
		client.NextFollowUp = req.NextFollowUp
	}

	converted := wasProspect && !client.IsProspect

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.clientRepo.WithTx(tx).Update(ctx, client); err != nil {
			return fmt.Errorf("failed to update client: %w", err)
		}
		if converted {
			activity := &domain.Activity{
				Title:       fmt.Sprintf("Prospect converted: %s", client.Name),
				Description: fmt.Sprintf("Prospect %q became a client", client.Name),
				Type:        domain.ActivityTypeClient,
				RelatedID:   &client.ID,
				RelatedType: "client",
				CreatedBy:   actor.UserID,
			}
			return s.activityRepo.WithTx(tx).Create(ctx, activity)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if converted {
		s.logger.Info("prospect converted to client",
			zap.String("client_id", client.ID.String()),
			zap.String("name", client.Name),
		)
	}
	return client, nil
}

// Delete removes a client. A client that still has projects is never
// deleted; the caller must resolve the dependency first.
func (s *ClientService) Delete(ctx context.Context, id uuid.UUID) error {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return err
	}

	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("client %s: %w", id, ErrNotFound)
		}
		return fmt.Errorf("failed to get client: %w", err)
	}

	projectCount, err := s.clientRepo.CountProjects(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count client projects: %w", err)
	}
	if projectCount > 0 {
		return fmt.Errorf("client has %d associated project(s), remove them first: %w", projectCount, ErrConflict)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.clientRepo.WithTx(tx).Delete(ctx, id); err != nil {
			return fmt.Errorf("failed to delete client: %w", err)
		}
		activity := &domain.Activity{
			Title:       fmt.Sprintf("Client deleted: %s", client.Name),
			Type:        domain.ActivityTypeClient,
			RelatedID:   &client.ID,
			RelatedType: "client",
			CreatedBy:   actor.UserID,
		}
		return s.activityRepo.WithTx(tx).Create(ctx, activity)
	})
	if err != nil {
		return err
	}

	s.logger.Info("client deleted",
		zap.String("client_id", id.String()),
		zap.String("name", client.Name),
	)
	return nil
}

// RecordFollowUpReminders writes a follow_up activity for every prospect
// whose next follow-up date has passed, at most once per prospect per day.
// Called by the background reminder job; CreatedBy stays zero because the
// entries are system generated.
func (s *ClientService) RecordFollowUpReminders(ctx context.Context, now time.Time) (int, error) {
	clients, err := s.clientRepo.ListRequiringFollowUp(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("failed to list overdue prospects: %w", err)
	}

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	created := 0
	for i := range clients {
		client := &clients[i]

		exists, err := s.activityRepo.ExistsSince(ctx, domain.ActivityTypeFollowUp, client.ID, dayStart)
		if err != nil {
			return created, fmt.Errorf("failed to check existing reminder: %w", err)
		}
		if exists {
			continue
		}

		activity := &domain.Activity{
			Title:       fmt.Sprintf("Follow-up due: %s", client.Name),
			Description: fmt.Sprintf("Prospect %q is overdue for follow-up", client.Name),
			Type:        domain.ActivityTypeFollowUp,
			RelatedID:   &client.ID,
			RelatedType: "client",
		}
		if err := s.activityRepo.Create(ctx, activity); err != nil {
			return created, fmt.Errorf("failed to record reminder: %w", err)
		}
		created++
	}

	if created > 0 {
		s.logger.Info("follow-up reminders recorded", zap.Int("count", created))
	}
	return created, nil
}
