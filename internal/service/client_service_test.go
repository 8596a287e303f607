package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/brushworks/fieldops-api/internal/domain"
	"github.com/brushworks/fieldops-api/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientCreateRequiresActor(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.clients.Create(context.Background(), &domain.CreateClientRequest{
		Name: "No Actor AS",
		Type: "commercial",
	})
	assert.ErrorIs(t, err, service.ErrUnauthorized)
}

func TestClientCreateStampsActor(t *testing.T) {
	env := newTestEnv(t)

	client := env.createClient(t, false)
	assert.Equal(t, env.actor.UserID, client.CreatedBy)

	titles := env.activityTitles(t, client.ID)
	require.Len(t, titles, 1)
	assert.Equal(t, "Client created: Nordic Interiors", titles[0])
}

func TestProspectDefaults(t *testing.T) {
	env := newTestEnv(t)

	before := time.Now()
	client := env.createClient(t, true)

	require.NotNil(t, client.NextFollowUp)
	require.NotNil(t, client.LastContactDate)
	assert.WithinDuration(t, before.Add(7*24*time.Hour), *client.NextFollowUp, 5*time.Second)
	assert.WithinDuration(t, before, *client.LastContactDate, 5*time.Second)

	titles := env.activityTitles(t, client.ID)
	require.Len(t, titles, 1)
	assert.Equal(t, "Prospect created: Nordic Interiors", titles[0])
}

func TestProspectExplicitFollowUpKept(t *testing.T) {
	env := newTestEnv(t)

	followUp := time.Now().Add(48 * time.Hour).Truncate(time.Second)
	client, err := env.clients.Create(env.ctx, &domain.CreateClientRequest{
		Name:         "Eager Prospect",
		Type:         "residential",
		IsProspect:   true,
		NextFollowUp: &followUp,
	})
	require.NoError(t, err)
	require.NotNil(t, client.NextFollowUp)
	assert.WithinDuration(t, followUp, *client.NextFollowUp, time.Second)
}

func TestProspectConversionRecordsActivity(t *testing.T) {
	env := newTestEnv(t)
	client := env.createClient(t, true)

	notProspect := false
	updated, err := env.clients.Update(env.ctx, client.ID, &domain.UpdateClientRequest{
		IsProspect: &notProspect,
	})
	require.NoError(t, err)
	assert.False(t, updated.IsProspect)

	titles := env.activityTitles(t, client.ID)
	assert.Contains(t, titles, "Prospect converted: Nordic Interiors")
}

func TestClientUpdateWithoutConversion(t *testing.T) {
	env := newTestEnv(t)
	client := env.createClient(t, false)

	phone := "+47 900 00 000"
	updated, err := env.clients.Update(env.ctx, client.ID, &domain.UpdateClientRequest{
		Phone: &phone,
	})
	require.NoError(t, err)
	assert.Equal(t, phone, updated.Phone)

	titles := env.activityTitles(t, client.ID)
	assert.NotContains(t, titles, "Prospect converted: Nordic Interiors")
}

func TestClientDeleteBlockedByProjects(t *testing.T) {
	env := newTestEnv(t)
	project := env.createProject(t)

	err := env.clients.Delete(env.ctx, project.ClientID)
	assert.ErrorIs(t, err, service.ErrConflict)

	// Still there
	_, err = env.clients.GetByID(env.ctx, project.ClientID)
	assert.NoError(t, err)
}

func TestClientDelete(t *testing.T) {
	env := newTestEnv(t)
	client := env.createClient(t, false)

	require.NoError(t, env.clients.Delete(env.ctx, client.ID))

	_, err := env.clients.GetByID(env.ctx, client.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestClientGetMissing(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.clients.GetByID(env.ctx, uuid.New())
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestListRequiringFollowUp(t *testing.T) {
	env := newTestEnv(t)

	overdue := time.Now().Add(-24 * time.Hour)
	_, err := env.clients.Create(env.ctx, &domain.CreateClientRequest{
		Name:         "Overdue Prospect",
		Type:         "residential",
		IsProspect:   true,
		NextFollowUp: &overdue,
	})
	require.NoError(t, err)

	// Default follow-up a week out, not due yet
	env.createClient(t, true)

	due, err := env.clients.ListRequiringFollowUp(env.ctx)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, "Overdue Prospect", due[0].Name)
}

func TestRecordFollowUpRemindersOncePerDay(t *testing.T) {
	env := newTestEnv(t)

	overdue := time.Now().Add(-24 * time.Hour)
	client, err := env.clients.Create(env.ctx, &domain.CreateClientRequest{
		Name:         "Overdue Prospect",
		Type:         "residential",
		IsProspect:   true,
		NextFollowUp: &overdue,
	})
	require.NoError(t, err)

	now := time.Now()
	created, err := env.clients.RecordFollowUpReminders(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 1, created)

	// Second run the same day is a no-op
	created, err = env.clients.RecordFollowUpReminders(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 0, created)

	titles := env.activityTitles(t, client.ID)
	reminders := 0
	for _, title := range titles {
		if title == "Follow-up due: Overdue Prospect" {
			reminders++
		}
	}
	assert.Equal(t, 1, reminders)
}
