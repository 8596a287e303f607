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

func TestAuthHandler_Login(t *testing.T) {
	env := newHandlerEnv(t)
	h := handler.NewAuthHandler(env.users, zap.NewNop())

	_, err := env.users.Create(env.ctx, &domain.CreateUserRequest{
		Username: "painter1",
		Password: "hunter2hunter2",
		Role:     "member",
	})
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		body := []byte(`{"username":"painter1","password":"hunter2hunter2"}`)
		req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
		rr := httptest.NewRecorder()
		h.Login(rr, req)

		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

		var resp domain.LoginResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, "painter1", resp.User.Username)
	})

	t.Run("wrong password", func(t *testing.T) {
		body := []byte(`{"username":"painter1","password":"not-the-password"}`)
		req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
		rr := httptest.NewRecorder()
		h.Login(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("missing fields", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader([]byte(`{}`)))
		rr := httptest.NewRecorder()
		h.Login(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestAuthHandler_Me(t *testing.T) {
	env := newHandlerEnv(t)
	h := handler.NewAuthHandler(env.users, zap.NewNop())

	t.Run("unauthenticated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		rr := httptest.NewRecorder()
		h.Me(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
