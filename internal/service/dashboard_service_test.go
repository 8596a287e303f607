package service_test

import (
	"testing"
	"time"

	"github.com/brushworks/fieldops-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardEmptyStore(t *testing.T) {
	env := newTestEnv(t)

	stats, err := env.dashboard.GetStats(env.ctx)
	require.NoError(t, err)

	assert.Equal(t, 0.0, stats.MonthlyProfit)
	// No prior month to compare against reads as a flat 100% increase
	assert.Equal(t, 100.0, stats.ProfitChangePercent)
	assert.Equal(t, int64(0), stats.ActiveProjects)
	assert.Equal(t, int64(0), stats.UrgentProjects)
	assert.Equal(t, int64(0), stats.PendingQuotes)
	assert.Equal(t, int64(0), stats.TotalPersonnel)
	assert.Empty(t, stats.RecentActivities)
	assert.Empty(t, stats.ClientsNeedFollowUp)
}

func TestDashboardCounts(t *testing.T) {
	env := newTestEnv(t)
	project := env.createProject(t)

	// One active project, urgent
	urgent := "urgent"
	_, err := env.projects.Update(env.ctx, project.ID, &domain.UpdateProjectRequest{Priority: &urgent})
	require.NoError(t, err)
	_, err = env.projects.UpdateStatus(env.ctx, project.ID, domain.StatusInProgress)
	require.NoError(t, err)

	// One pending quote worth 1150.00
	_, err = env.quotes.Create(env.ctx, &domain.CreateQuoteRequest{
		ProjectID:     project.ID,
		MaterialsCost: 1000,
		Margin:        15,
	})
	require.NoError(t, err)

	env.createPerson(t, "Kari Maler")

	stats, err := env.dashboard.GetStats(env.ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(1), stats.ActiveProjects)
	assert.Equal(t, int64(1), stats.UrgentProjects)
	assert.Equal(t, int64(1), stats.PendingQuotes)
	assert.Equal(t, 1150.00, stats.PendingQuotesValue)
	assert.Equal(t, int64(1), stats.TotalPersonnel)
	assert.Equal(t, int64(1), stats.AvailablePersonnel)
	assert.NotEmpty(t, stats.RecentActivities)
}

func TestDashboardMonthlyProfit(t *testing.T) {
	env := newTestEnv(t)
	project := env.createProject(t)

	// A project completed this month books its value as revenue
	end := time.Now()
	_, err := env.projects.Update(env.ctx, project.ID, &domain.UpdateProjectRequest{EndDate: &end})
	require.NoError(t, err)
	_, err = env.projects.UpdateStatus(env.ctx, project.ID, domain.StatusCompleted)
	require.NoError(t, err)

	stats, err := env.dashboard.GetStats(env.ctx)
	require.NoError(t, err)

	// 50000 at the assumed 43% margin
	assert.Equal(t, 21500.00, stats.MonthlyProfit)
	assert.Equal(t, 14000.00, stats.Revenue.Materials)
	assert.Equal(t, 14500.00, stats.Revenue.Labor)
	assert.Equal(t, 21500.00, stats.Revenue.Net)
}

func TestDashboardApprovedQuoteNotPending(t *testing.T) {
	env := newTestEnv(t)
	project := env.createProject(t)

	quote, err := env.quotes.Create(env.ctx, &domain.CreateQuoteRequest{
		ProjectID:     project.ID,
		MaterialsCost: 1000,
	})
	require.NoError(t, err)
	_, err = env.quotes.Approve(env.ctx, quote.ID)
	require.NoError(t, err)

	stats, err := env.dashboard.GetStats(env.ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.PendingQuotes)
}

func TestDashboardFollowUps(t *testing.T) {
	env := newTestEnv(t)

	overdue := time.Now().Add(-time.Hour)
	_, err := env.clients.Create(env.ctx, &domain.CreateClientRequest{
		Name:         "Overdue Prospect",
		Type:         "residential",
		IsProspect:   true,
		NextFollowUp: &overdue,
	})
	require.NoError(t, err)

	stats, err := env.dashboard.GetStats(env.ctx)
	require.NoError(t, err)
	require.Len(t, stats.ClientsNeedFollowUp, 1)
	assert.Equal(t, "Overdue Prospect", stats.ClientsNeedFollowUp[0].Name)
}
