package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/brushworks/fieldops-api/internal/auth"
	"github.com/brushworks/fieldops-api/internal/config"
	"github.com/brushworks/fieldops-api/internal/domain"
	"github.com/brushworks/fieldops-api/internal/repository"
	"github.com/brushworks/fieldops-api/internal/service"
	"github.com/brushworks/fieldops-api/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// testEnv wires every service against one in-memory database so tests can
// exercise the cross-service side effects (status transitions, activity
// records) exactly as production does.
type testEnv struct {
	db *gorm.DB

	clientRepo    *repository.ClientRepository
	projectRepo   *repository.ProjectRepository
	quoteRepo     *repository.QuoteRepository
	orderRepo     *repository.ServiceOrderRepository
	personnelRepo *repository.PersonnelRepository
	activityRepo  *repository.ActivityRepository

	users       *service.UserService
	clients     *service.ClientService
	projects    *service.ProjectService
	quotes      *service.QuoteService
	orders      *service.ServiceOrderService
	personnel   *service.PersonnelService
	assignments *service.AssignmentService
	activities  *service.ActivityService
	dashboard   *service.DashboardService

	actor *auth.UserContext
	ctx   context.Context
}

func newTestEnv(t *testing.T) *testEnv {
	return newTestEnvWithPipeline(t, &config.PipelineConfig{})
}

func newTestEnvWithPipeline(t *testing.T, pipeline *config.PipelineConfig) *testEnv {
	t.Helper()

	db := testutil.SetupTestDB(t)
	log := zap.NewNop()

	userRepo := repository.NewUserRepository(db)
	clientRepo := repository.NewClientRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	quoteRepo := repository.NewQuoteRepository(db)
	orderRepo := repository.NewServiceOrderRepository(db)
	personnelRepo := repository.NewPersonnelRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	activityRepo := repository.NewActivityRepository(db)

	tokens, err := auth.NewTokenManager("test-secret", "fieldops-api", time.Hour)
	require.NoError(t, err)

	projects := service.NewProjectService(db, projectRepo, clientRepo, activityRepo, pipeline, log)
	personnel := service.NewPersonnelService(db, personnelRepo, assignmentRepo, activityRepo, log)

	env := &testEnv{
		db:            db,
		clientRepo:    clientRepo,
		projectRepo:   projectRepo,
		quoteRepo:     quoteRepo,
		orderRepo:     orderRepo,
		personnelRepo: personnelRepo,
		activityRepo:  activityRepo,

		users:       service.NewUserService(db, userRepo, activityRepo, tokens, log),
		clients:     service.NewClientService(db, clientRepo, activityRepo, log),
		projects:    projects,
		quotes:      service.NewQuoteService(db, quoteRepo, projectRepo, activityRepo, projects, log),
		orders:      service.NewServiceOrderService(db, orderRepo, projectRepo, activityRepo, projects, log),
		personnel:   personnel,
		assignments: service.NewAssignmentService(db, assignmentRepo, projectRepo, personnelRepo, activityRepo, log),
		activities:  service.NewActivityService(activityRepo, log),
		dashboard:   service.NewDashboardService(projectRepo, quoteRepo, clientRepo, activityRepo, personnel, log),
	}

	env.actor = &auth.UserContext{
		UserID:   uuid.New(),
		Username: "tester",
		FullName: "Test User",
		Role:     domain.RoleAdmin,
	}
	env.ctx = auth.WithUserContext(context.Background(), env.actor)
	return env
}

// asRole returns a request context authenticated with the given role
func (e *testEnv) asRole(role domain.UserRole) context.Context {
	return auth.WithUserContext(context.Background(), &auth.UserContext{
		UserID:   uuid.New(),
		Username: "other",
		Role:     role,
	})
}

func (e *testEnv) createClient(t *testing.T, prospect bool) *domain.Client {
	t.Helper()
	client, err := e.clients.Create(e.ctx, &domain.CreateClientRequest{
		Name:       "Nordic Interiors",
		Type:       "commercial",
		IsProspect: prospect,
	})
	require.NoError(t, err)
	return client
}

func (e *testEnv) createProject(t *testing.T) *domain.Project {
	t.Helper()
	client := e.createClient(t, false)
	project, err := e.projects.Create(e.ctx, &domain.CreateProjectRequest{
		Title:       "Office repaint",
		Description: "Repaint all office floors",
		ClientID:    client.ID,
		Value:       50000,
	})
	require.NoError(t, err)
	return project
}

// activityTitles returns the titles recorded against an entity, newest first
func (e *testEnv) activityTitles(t *testing.T, relatedID uuid.UUID) []string {
	t.Helper()
	activities, err := e.activities.ListByRelated(e.ctx, relatedID, 50)
	require.NoError(t, err)
	titles := make([]string, len(activities))
	for i := range activities {
		titles[i] = activities[i].Title
	}
	return titles
}
