package service_test

import (
	"testing"
	"time"

	"github.com/brushworks/fieldops-api/internal/domain"
	"github.com/brushworks/fieldops-api/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (e *testEnv) createPerson(t *testing.T, name string) *domain.Personnel {
	t.Helper()
	person, err := e.personnel.Create(e.ctx, &domain.CreatePersonnelRequest{
		Name:       name,
		Type:       "employee",
		Position:   "painter",
		HourlyRate: 450,
	})
	require.NoError(t, err)
	return person
}

func TestPersonnelCreate(t *testing.T) {
	env := newTestEnv(t)

	person := env.createPerson(t, "Kari Maler")
	assert.True(t, person.IsActive)
	assert.Equal(t, domain.PersonnelTypeEmployee, person.Type)

	titles := env.activityTitles(t, person.ID)
	require.Len(t, titles, 1)
	assert.Equal(t, "Personnel added: Kari Maler", titles[0])
}

func TestPersonnelUpdate(t *testing.T) {
	env := newTestEnv(t)
	person := env.createPerson(t, "Kari Maler")

	rate := 520.0
	inactive := false
	updated, err := env.personnel.Update(env.ctx, person.ID, &domain.UpdatePersonnelRequest{
		HourlyRate: &rate,
		IsActive:   &inactive,
	})
	require.NoError(t, err)
	assert.Equal(t, 520.0, updated.HourlyRate)
	assert.False(t, updated.IsActive)
}

func TestPersonnelGetMissing(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.personnel.GetByID(env.ctx, uuid.New())
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestAvailability(t *testing.T) {
	env := newTestEnv(t)
	project := env.createProject(t)

	people := make([]*domain.Personnel, 5)
	names := []string{"Anne", "Bjorn", "Cecilie", "David", "Eva"}
	for i, name := range names {
		people[i] = env.createPerson(t, name)
	}

	// Two open-ended assignments occupy two people
	for _, person := range people[:2] {
		_, err := env.assignments.Create(env.ctx, &domain.CreateAssignmentRequest{
			ProjectID:   project.ID,
			PersonnelID: person.ID,
		})
		require.NoError(t, err)
	}

	// A closed assignment does not occupy anyone
	end := time.Now().Add(-time.Hour)
	_, err := env.assignments.Create(env.ctx, &domain.CreateAssignmentRequest{
		ProjectID:   project.ID,
		PersonnelID: people[2].ID,
		EndDate:     &end,
	})
	require.NoError(t, err)

	total, available, err := env.personnel.Availability(env.ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Equal(t, int64(3), available)
}

func TestAvailabilityCountsPersonOnce(t *testing.T) {
	env := newTestEnv(t)
	project := env.createProject(t)
	other := env.createProject(t)
	person := env.createPerson(t, "Kari Maler")

	// The same person on two projects is still just one occupied head
	for _, p := range []*domain.Project{project, other} {
		_, err := env.assignments.Create(env.ctx, &domain.CreateAssignmentRequest{
			ProjectID:   p.ID,
			PersonnelID: person.ID,
		})
		require.NoError(t, err)
	}

	total, available, err := env.personnel.Availability(env.ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, int64(0), available)
}

func TestAssignmentCloseFreesPerson(t *testing.T) {
	env := newTestEnv(t)
	project := env.createProject(t)
	person := env.createPerson(t, "Kari Maler")

	assignment, err := env.assignments.Create(env.ctx, &domain.CreateAssignmentRequest{
		ProjectID:   project.ID,
		PersonnelID: person.ID,
		Role:        "lead painter",
	})
	require.NoError(t, err)

	_, available, err := env.personnel.Availability(env.ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), available)

	end := time.Now()
	_, err = env.assignments.Update(env.ctx, assignment.ID, &domain.UpdateAssignmentRequest{
		EndDate: &end,
	})
	require.NoError(t, err)

	_, available, err = env.personnel.Availability(env.ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), available)
}

func TestAssignmentCreateUnknownPersonnel(t *testing.T) {
	env := newTestEnv(t)
	project := env.createProject(t)

	_, err := env.assignments.Create(env.ctx, &domain.CreateAssignmentRequest{
		ProjectID:   project.ID,
		PersonnelID: uuid.New(),
	})
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestAssignmentListByProject(t *testing.T) {
	env := newTestEnv(t)
	project := env.createProject(t)
	person := env.createPerson(t, "Kari Maler")

	_, err := env.assignments.Create(env.ctx, &domain.CreateAssignmentRequest{
		ProjectID:   project.ID,
		PersonnelID: person.ID,
	})
	require.NoError(t, err)

	assignments, err := env.assignments.ListByProject(env.ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, assignments, 1)
	assert.Equal(t, person.ID, assignments[0].PersonnelID)
}

func TestAssignmentDelete(t *testing.T) {
	env := newTestEnv(t)
	project := env.createProject(t)
	person := env.createPerson(t, "Kari Maler")

	assignment, err := env.assignments.Create(env.ctx, &domain.CreateAssignmentRequest{
		ProjectID:   project.ID,
		PersonnelID: person.ID,
	})
	require.NoError(t, err)

	require.NoError(t, env.assignments.Delete(env.ctx, assignment.ID))

	assignments, err := env.assignments.ListByProject(env.ctx, project.ID)
	require.NoError(t, err)
	assert.Empty(t, assignments)
}
