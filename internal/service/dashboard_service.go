package service

import (
	"context"
	"fmt"
	"time"

	"github.com/brushworks/fieldops-api/internal/domain"
	"github.com/brushworks/fieldops-api/internal/mapper"
	"github.com/brushworks/fieldops-api/internal/repository"
	"go.uber.org/zap"
)

// Display constants for the dashboard. The profit margin and the revenue
// split are presentation approximations agreed with the business, not
// values derived from quote line items.
const (
	assumedProfitMargin = 0.43
	revenueSplitMats    = 0.28
	revenueSplitLabor   = 0.29
	revenueSplitNet     = 0.43
)

// activeStatuses are the stages counted as "active" on the dashboard
var activeStatuses = []domain.ProjectStatus{
	domain.StatusInPreparation,
	domain.StatusInProgress,
}

type DashboardService struct {
	projectRepo      *repository.ProjectRepository
	quoteRepo        *repository.QuoteRepository
	clientRepo       *repository.ClientRepository
	activityRepo     *repository.ActivityRepository
	personnelService *PersonnelService
	logger           *zap.Logger
}

func NewDashboardService(
	projectRepo *repository.ProjectRepository,
	quoteRepo *repository.QuoteRepository,
	clientRepo *repository.ClientRepository,
	activityRepo *repository.ActivityRepository,
	personnelService *PersonnelService,
	logger *zap.Logger,
) *DashboardService {
	return &DashboardService{
		projectRepo:      projectRepo,
		quoteRepo:        quoteRepo,
		clientRepo:       clientRepo,
		activityRepo:     activityRepo,
		personnelService: personnelService,
		logger:           logger,
	}
}

// GetStats recomputes the dashboard aggregates from the store on every
// call; nothing here is cached or incrementally maintained.
func (s *DashboardService) GetStats(ctx context.Context) (*domain.DashboardStats, error) {
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	nextMonth := monthStart.AddDate(0, 1, 0)
	prevMonth := monthStart.AddDate(0, -1, 0)

	thisMonthValue, err := s.projectRepo.SumCompletedValueBetween(ctx, monthStart, nextMonth)
	if err != nil {
		return nil, fmt.Errorf("failed to sum completed value: %w", err)
	}
	lastMonthValue, err := s.projectRepo.SumCompletedValueBetween(ctx, prevMonth, monthStart)
	if err != nil {
		return nil, fmt.Errorf("failed to sum last month value: %w", err)
	}

	monthlyProfit := domain.RoundCurrency(thisMonthValue * assumedProfitMargin)
	lastMonthProfit := lastMonthValue * assumedProfitMargin

	// A month with no prior baseline reads as a flat 100% increase
	profitChange := 100.0
	if lastMonthProfit != 0 {
		profitChange = domain.RoundCurrency((monthlyProfit - lastMonthProfit) / lastMonthProfit * 100)
	}

	activeProjects, err := s.projectRepo.CountByStatuses(ctx, activeStatuses)
	if err != nil {
		return nil, fmt.Errorf("failed to count active projects: %w", err)
	}
	urgentProjects, err := s.projectRepo.CountUrgent(ctx, activeStatuses)
	if err != nil {
		return nil, fmt.Errorf("failed to count urgent projects: %w", err)
	}

	pendingQuotes, pendingValue, err := s.quoteRepo.CountPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count pending quotes: %w", err)
	}

	totalPersonnel, availablePersonnel, err := s.personnelService.Availability(ctx)
	if err != nil {
		return nil, err
	}

	activities, err := s.activityRepo.ListRecent(ctx, 10)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent activities: %w", err)
	}
	activityDTOs := make([]domain.ActivityDTO, len(activities))
	for i := range activities {
		activityDTOs[i] = mapper.ToActivityDTO(&activities[i])
	}

	followUps, err := s.clientRepo.ListRequiringFollowUp(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("failed to list follow-ups: %w", err)
	}
	followUpDTOs := make([]domain.ClientDTO, len(followUps))
	for i := range followUps {
		followUpDTOs[i] = mapper.ToClientDTO(&followUps[i])
	}

	return &domain.DashboardStats{
		MonthlyProfit:       monthlyProfit,
		ProfitChangePercent: profitChange,
		ActiveProjects:      activeProjects,
		UrgentProjects:      urgentProjects,
		PendingQuotes:       pendingQuotes,
		PendingQuotesValue:  domain.RoundCurrency(pendingValue),
		TotalPersonnel:      totalPersonnel,
		AvailablePersonnel:  availablePersonnel,
		Revenue: domain.RevenueBreakdown{
			Materials: domain.RoundCurrency(thisMonthValue * revenueSplitMats),
			Labor:     domain.RoundCurrency(thisMonthValue * revenueSplitLabor),
			Net:       domain.RoundCurrency(thisMonthValue * revenueSplitNet),
		},
		RecentActivities:    activityDTOs,
		ClientsNeedFollowUp: followUpDTOs,
	}, nil
}
