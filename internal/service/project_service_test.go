package service_test

import (
	"testing"

	"github.com/brushworks/fieldops-api/internal/config"
	"github.com/brushworks/fieldops-api/internal/domain"
	"github.com/brushworks/fieldops-api/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectCreateDefaults(t *testing.T) {
	env := newTestEnv(t)

	project := env.createProject(t)
	assert.Equal(t, domain.StatusPendingVisit, project.Status)
	assert.Equal(t, domain.PriorityNormal, project.Priority)
	assert.Equal(t, env.actor.UserID, project.CreatedBy)

	titles := env.activityTitles(t, project.ID)
	require.Len(t, titles, 1)
	assert.Equal(t, "Project created: Office repaint", titles[0])
}

func TestProjectCreateUnknownClient(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.projects.Create(env.ctx, &domain.CreateProjectRequest{
		Title:       "Orphan project",
		Description: "No client backs this",
		ClientID:    uuid.New(),
	})
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestProjectListByStatus(t *testing.T) {
	env := newTestEnv(t)
	env.createProject(t)

	pending := domain.StatusPendingVisit
	projects, err := env.projects.List(env.ctx, &pending)
	require.NoError(t, err)
	assert.Len(t, projects, 1)

	completed := domain.StatusCompleted
	projects, err = env.projects.List(env.ctx, &completed)
	require.NoError(t, err)
	assert.Empty(t, projects)

	bogus := domain.ProjectStatus("bogus")
	_, err = env.projects.List(env.ctx, &bogus)
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestProjectUpdateStatusRecordsTransition(t *testing.T) {
	env := newTestEnv(t)
	project := env.createProject(t)

	updated, err := env.projects.UpdateStatus(env.ctx, project.ID, domain.StatusQuoteSent)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusQuoteSent, updated.Status)

	titles := env.activityTitles(t, project.ID)
	assert.Contains(t, titles, "Project status: pending_visit -> quote_sent")
}

func TestProjectUpdateStatusUnknown(t *testing.T) {
	env := newTestEnv(t)
	project := env.createProject(t)

	_, err := env.projects.UpdateStatus(env.ctx, project.ID, domain.ProjectStatus("nonsense"))
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestProjectUpdateStatusPermissiveAllowsBackwards(t *testing.T) {
	env := newTestEnv(t)
	project := env.createProject(t)

	_, err := env.projects.UpdateStatus(env.ctx, project.ID, domain.StatusCompleted)
	require.NoError(t, err)

	// Default pipeline mode lets the board correct mistakes freely
	updated, err := env.projects.UpdateStatus(env.ctx, project.ID, domain.StatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInProgress, updated.Status)
}

func TestProjectUpdateStatusStrictMode(t *testing.T) {
	env := newTestEnvWithPipeline(t, &config.PipelineConfig{StrictTransitions: true})
	project := env.createProject(t)

	// Skipping ahead is rejected
	_, err := env.projects.UpdateStatus(env.ctx, project.ID, domain.StatusInProgress)
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	// The next stage is fine
	updated, err := env.projects.UpdateStatus(env.ctx, project.ID, domain.StatusQuoteSent)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusQuoteSent, updated.Status)

	// Moving backwards is rejected
	_, err = env.projects.UpdateStatus(env.ctx, project.ID, domain.StatusPendingVisit)
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	// Archiving is always available
	updated, err = env.projects.UpdateStatus(env.ctx, project.ID, domain.StatusArchived)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusArchived, updated.Status)
}

func TestProjectUpdateFields(t *testing.T) {
	env := newTestEnv(t)
	project := env.createProject(t)

	title := "Office repaint, phase two"
	value := 75000.0
	priority := "urgent"
	updated, err := env.projects.Update(env.ctx, project.ID, &domain.UpdateProjectRequest{
		Title:    &title,
		Value:    &value,
		Priority: &priority,
	})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)
	assert.Equal(t, value, updated.Value)
	assert.Equal(t, domain.PriorityUrgent, updated.Priority)
	// Untouched fields survive
	assert.Equal(t, project.Description, updated.Description)
}

func TestProjectDelete(t *testing.T) {
	env := newTestEnv(t)
	project := env.createProject(t)

	require.NoError(t, env.projects.Delete(env.ctx, project.ID))

	_, err := env.projects.GetByID(env.ctx, project.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)
}
