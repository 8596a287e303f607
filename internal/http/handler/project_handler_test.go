package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/brushworks/fieldops-api/internal/domain"
	"github.com/brushworks/fieldops-api/internal/http/handler"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newProjectHandler(env *handlerEnv) *handler.ProjectHandler {
	return handler.NewProjectHandler(env.projects, env.activities, zap.NewNop())
}

func TestProjectHandler_Create(t *testing.T) {
	env := newHandlerEnv(t)
	h := newProjectHandler(env)

	client, err := env.clients.Create(env.ctx, &domain.CreateClientRequest{
		Name: "Nordic Interiors",
		Type: "commercial",
	})
	require.NoError(t, err)

	body, _ := json.Marshal(map[string]interface{}{
		"title":       "Office repaint",
		"description": "Repaint all office floors",
		"clientId":    client.ID,
		"value":       50000,
	})
	req := httptest.NewRequest(http.MethodPost, "/projects", bytes.NewReader(body)).WithContext(env.ctx)
	rr := httptest.NewRecorder()
	h.Create(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var dto domain.ProjectDTO
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &dto))
	assert.Equal(t, domain.StatusPendingVisit, dto.Status)
	assert.Equal(t, client.ID, dto.ClientID)
}

func TestProjectHandler_CreateValidation(t *testing.T) {
	env := newHandlerEnv(t)
	h := newProjectHandler(env)

	// Missing required fields
	req := httptest.NewRequest(http.MethodPost, "/projects", bytes.NewReader([]byte(`{}`))).WithContext(env.ctx)
	rr := httptest.NewRecorder()
	h.Create(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestProjectHandler_GetByID(t *testing.T) {
	env := newHandlerEnv(t)
	h := newProjectHandler(env)
	project := env.createProject(t)

	req := httptest.NewRequest(http.MethodGet, "/projects/"+project.ID.String(), nil).WithContext(env.ctx)
	req = withURLParam(req, "id", project.ID.String())
	rr := httptest.NewRecorder()
	h.GetByID(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var dto domain.ProjectDTO
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &dto))
	assert.Equal(t, project.ID, dto.ID)
	assert.Equal(t, "Nordic Interiors", dto.ClientName)
}

func TestProjectHandler_GetByIDNotFound(t *testing.T) {
	env := newHandlerEnv(t)
	h := newProjectHandler(env)

	missing := uuid.New().String()
	req := httptest.NewRequest(http.MethodGet, "/projects/"+missing, nil).WithContext(env.ctx)
	req = withURLParam(req, "id", missing)
	rr := httptest.NewRecorder()
	h.GetByID(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestProjectHandler_GetByIDBadUUID(t *testing.T) {
	env := newHandlerEnv(t)
	h := newProjectHandler(env)

	req := httptest.NewRequest(http.MethodGet, "/projects/not-a-uuid", nil).WithContext(env.ctx)
	req = withURLParam(req, "id", "not-a-uuid")
	rr := httptest.NewRecorder()
	h.GetByID(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestProjectHandler_UpdateStatus(t *testing.T) {
	env := newHandlerEnv(t)
	h := newProjectHandler(env)
	project := env.createProject(t)

	body := []byte(`{"status":"quote_sent"}`)
	req := httptest.NewRequest(http.MethodPatch, "/projects/"+project.ID.String()+"/status", bytes.NewReader(body)).WithContext(env.ctx)
	req = withURLParam(req, "id", project.ID.String())
	rr := httptest.NewRecorder()
	h.UpdateStatus(rr, req)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var dto domain.ProjectDTO
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &dto))
	assert.Equal(t, domain.StatusQuoteSent, dto.Status)
}

func TestProjectHandler_UpdateStatusUnknown(t *testing.T) {
	env := newHandlerEnv(t)
	h := newProjectHandler(env)
	project := env.createProject(t)

	body := []byte(`{"status":"launched"}`)
	req := httptest.NewRequest(http.MethodPatch, "/projects/"+project.ID.String()+"/status", bytes.NewReader(body)).WithContext(env.ctx)
	req = withURLParam(req, "id", project.ID.String())
	rr := httptest.NewRecorder()
	h.UpdateStatus(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestProjectHandler_ListFilter(t *testing.T) {
	env := newHandlerEnv(t)
	h := newProjectHandler(env)
	env.createProject(t)

	req := httptest.NewRequest(http.MethodGet, "/projects?status=pending_visit", nil).WithContext(env.ctx)
	rr := httptest.NewRecorder()
	h.List(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var dtos []domain.ProjectDTO
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &dtos))
	assert.Len(t, dtos, 1)

	req = httptest.NewRequest(http.MethodGet, "/projects?status=completed", nil).WithContext(env.ctx)
	rr = httptest.NewRecorder()
	h.List(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	dtos = nil
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &dtos))
	assert.Empty(t, dtos)
}

func TestProjectHandler_Delete(t *testing.T) {
	env := newHandlerEnv(t)
	h := newProjectHandler(env)
	project := env.createProject(t)

	req := httptest.NewRequest(http.MethodDelete, "/projects/"+project.ID.String(), nil).WithContext(env.ctx)
	req = withURLParam(req, "id", project.ID.String())
	rr := httptest.NewRecorder()
	h.Delete(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
}
