package handler_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/brushworks/fieldops-api/internal/auth"
	"github.com/brushworks/fieldops-api/internal/config"
	"github.com/brushworks/fieldops-api/internal/domain"
	"github.com/brushworks/fieldops-api/internal/repository"
	"github.com/brushworks/fieldops-api/internal/service"
	"github.com/brushworks/fieldops-api/internal/testutil"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// handlerEnv wires the service stack for handler tests the same way main does
type handlerEnv struct {
	db  *gorm.DB
	ctx context.Context

	users      *service.UserService
	clients    *service.ClientService
	projects   *service.ProjectService
	quotes     *service.QuoteService
	activities *service.ActivityService
}

func newHandlerEnv(t *testing.T) *handlerEnv {
	t.Helper()

	db := testutil.SetupTestDB(t)
	log := zap.NewNop()

	userRepo := repository.NewUserRepository(db)
	clientRepo := repository.NewClientRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	quoteRepo := repository.NewQuoteRepository(db)
	activityRepo := repository.NewActivityRepository(db)

	tokens, err := auth.NewTokenManager("test-secret", "fieldops-api", time.Hour)
	require.NoError(t, err)

	projects := service.NewProjectService(db, projectRepo, clientRepo, activityRepo, &config.PipelineConfig{}, log)

	userCtx := &auth.UserContext{
		UserID:   uuid.New(),
		Username: "tester",
		Role:     domain.RoleAdmin,
	}

	return &handlerEnv{
		db:  db,
		ctx: auth.WithUserContext(context.Background(), userCtx),

		users:      service.NewUserService(db, userRepo, activityRepo, tokens, log),
		clients:    service.NewClientService(db, clientRepo, activityRepo, log),
		projects:   projects,
		quotes:     service.NewQuoteService(db, quoteRepo, projectRepo, activityRepo, projects, log),
		activities: service.NewActivityService(activityRepo, log),
	}
}

func (e *handlerEnv) createProject(t *testing.T) *domain.Project {
	t.Helper()
	client, err := e.clients.Create(e.ctx, &domain.CreateClientRequest{
		Name: "Nordic Interiors",
		Type: "commercial",
	})
	require.NoError(t, err)
	project, err := e.projects.Create(e.ctx, &domain.CreateProjectRequest{
		Title:       "Office repaint",
		Description: "Repaint all office floors",
		ClientID:    client.ID,
	})
	require.NoError(t, err)
	return project
}

// withURLParam attaches a chi route parameter so handlers can read it
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}
