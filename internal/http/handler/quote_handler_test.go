package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/brushworks/fieldops-api/internal/domain"
	"github.com/brushworks/fieldops-api/internal/http/handler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestQuoteHandler_CreateComputesTotal(t *testing.T) {
	env := newHandlerEnv(t)
	h := handler.NewQuoteHandler(env.quotes, zap.NewNop())
	project := env.createProject(t)

	// A client-supplied total is ignored; the server recomputes it
	body, _ := json.Marshal(map[string]interface{}{
		"projectId":       project.ID,
		"materialsCost":   1200,
		"laborCost":       1000,
		"additionalCosts": 150,
		"margin":          20,
		"totalAmount":     1.0,
	})
	req := httptest.NewRequest(http.MethodPost, "/quotes", bytes.NewReader(body)).WithContext(env.ctx)
	rr := httptest.NewRecorder()
	h.Create(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var dto domain.QuoteDTO
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &dto))
	assert.Equal(t, 2820.00, dto.TotalAmount)
	assert.False(t, dto.IsApproved)
}

func TestQuoteHandler_Approve(t *testing.T) {
	env := newHandlerEnv(t)
	h := handler.NewQuoteHandler(env.quotes, zap.NewNop())
	project := env.createProject(t)

	quote, err := env.quotes.Create(env.ctx, &domain.CreateQuoteRequest{
		ProjectID:     project.ID,
		MaterialsCost: 1000,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/quotes/"+quote.ID.String()+"/approve", nil).WithContext(env.ctx)
	req = withURLParam(req, "id", quote.ID.String())
	rr := httptest.NewRecorder()
	h.Approve(rr, req)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var dto domain.QuoteDTO
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &dto))
	assert.True(t, dto.IsApproved)

	reloaded, err := env.projects.GetByID(env.ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusQuoteApproved, reloaded.Status)
}

func TestQuoteHandler_ListByProject(t *testing.T) {
	env := newHandlerEnv(t)
	h := handler.NewQuoteHandler(env.quotes, zap.NewNop())
	project := env.createProject(t)

	_, err := env.quotes.Create(env.ctx, &domain.CreateQuoteRequest{
		ProjectID:     project.ID,
		MaterialsCost: 100,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/quotes?projectId="+project.ID.String(), nil).WithContext(env.ctx)
	rr := httptest.NewRecorder()
	h.List(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var dtos []domain.QuoteDTO
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &dtos))
	assert.Len(t, dtos, 1)
}

func TestQuoteHandler_ListBadProjectID(t *testing.T) {
	env := newHandlerEnv(t)
	h := handler.NewQuoteHandler(env.quotes, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/quotes?projectId=not-a-uuid", nil).WithContext(env.ctx)
	rr := httptest.NewRecorder()
	h.List(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
