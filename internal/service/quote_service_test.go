package service_test

import (
	"strings"
	"testing"

	"github.com/brushworks/fieldops-api/internal/domain"
	"github.com/brushworks/fieldops-api/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuoteCreateComputesTotal(t *testing.T) {
	env := newTestEnv(t)
	project := env.createProject(t)

	quote, err := env.quotes.Create(env.ctx, &domain.CreateQuoteRequest{
		ProjectID:       project.ID,
		MaterialsCost:   1200,
		LaborCost:       1000,
		AdditionalCosts: 150,
		Margin:          20,
	})
	require.NoError(t, err)

	assert.Equal(t, 2820.00, quote.TotalAmount)
	assert.Regexp(t, `^Q\d{4}-\d{4}$`, quote.QuoteNumber)
	assert.NotNil(t, quote.SentAt)
	assert.False(t, quote.IsApproved)
}

func TestQuoteCreateAdvancesProject(t *testing.T) {
	env := newTestEnv(t)
	project := env.createProject(t)

	_, err := env.quotes.Create(env.ctx, &domain.CreateQuoteRequest{
		ProjectID:     project.ID,
		MaterialsCost: 100,
	})
	require.NoError(t, err)

	reloaded, err := env.projects.GetByID(env.ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusQuoteSent, reloaded.Status)

	titles := env.activityTitles(t, project.ID)
	assert.Contains(t, titles, "Project status: pending_visit -> quote_sent")
}

func TestQuoteCreateLeavesLaterStagesAlone(t *testing.T) {
	env := newTestEnv(t)
	project := env.createProject(t)

	_, err := env.projects.UpdateStatus(env.ctx, project.ID, domain.StatusInProgress)
	require.NoError(t, err)

	// A follow-up quote on a running project must not drag it backwards
	_, err = env.quotes.Create(env.ctx, &domain.CreateQuoteRequest{
		ProjectID:     project.ID,
		MaterialsCost: 500,
	})
	require.NoError(t, err)

	reloaded, err := env.projects.GetByID(env.ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInProgress, reloaded.Status)
}

func TestQuoteCreateUnknownProject(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.quotes.Create(env.ctx, &domain.CreateQuoteRequest{
		ProjectID:     uuid.New(),
		MaterialsCost: 100,
	})
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestQuoteApprove(t *testing.T) {
	env := newTestEnv(t)
	project := env.createProject(t)

	quote, err := env.quotes.Create(env.ctx, &domain.CreateQuoteRequest{
		ProjectID:     project.ID,
		MaterialsCost: 1000,
		Margin:        15,
	})
	require.NoError(t, err)

	approved, err := env.quotes.Approve(env.ctx, quote.ID)
	require.NoError(t, err)
	assert.True(t, approved.IsApproved)
	assert.NotNil(t, approved.ApprovalDate)

	reloaded, err := env.projects.GetByID(env.ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusQuoteApproved, reloaded.Status)
}

func TestQuoteApproveIdempotent(t *testing.T) {
	env := newTestEnv(t)
	project := env.createProject(t)

	quote, err := env.quotes.Create(env.ctx, &domain.CreateQuoteRequest{
		ProjectID:     project.ID,
		MaterialsCost: 1000,
	})
	require.NoError(t, err)

	first, err := env.quotes.Approve(env.ctx, quote.ID)
	require.NoError(t, err)

	second, err := env.quotes.Approve(env.ctx, quote.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ApprovalDate.Unix(), second.ApprovalDate.Unix())

	// Only one approval is ever recorded
	approvals := 0
	for _, title := range env.activityTitles(t, quote.ID) {
		if strings.HasPrefix(title, "Quote approved:") {
			approvals++
		}
	}
	assert.Equal(t, 1, approvals)
}

func TestQuoteListByProject(t *testing.T) {
	env := newTestEnv(t)
	project := env.createProject(t)
	other := env.createProject(t)

	_, err := env.quotes.Create(env.ctx, &domain.CreateQuoteRequest{ProjectID: project.ID, MaterialsCost: 100})
	require.NoError(t, err)
	_, err = env.quotes.Create(env.ctx, &domain.CreateQuoteRequest{ProjectID: other.ID, MaterialsCost: 200})
	require.NoError(t, err)

	quotes, err := env.quotes.List(env.ctx, &project.ID)
	require.NoError(t, err)
	require.Len(t, quotes, 1)
	assert.Equal(t, project.ID, quotes[0].ProjectID)

	all, err := env.quotes.List(env.ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
