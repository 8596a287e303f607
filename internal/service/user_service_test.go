package service_test

import (
	"context"
	"testing"

	"github.com/brushworks/fieldops-api/internal/auth"
	"github.com/brushworks/fieldops-api/internal/domain"
	"github.com/brushworks/fieldops-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (e *testEnv) createUser(t *testing.T, username, role string) *domain.User {
	t.Helper()
	user, err := e.users.Create(e.ctx, &domain.CreateUserRequest{
		Username: username,
		Password: "hunter2hunter2",
		FullName: "Some Painter",
		Role:     role,
	})
	require.NoError(t, err)
	return user
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "painter1", "member")

	resp, err := env.users.Login(context.Background(), &domain.LoginRequest{
		Username: "painter1",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "painter1", resp.User.Username)
	assert.Equal(t, domain.RoleMember, resp.User.Role)
}

func TestLoginBadPassword(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "painter1", "member")

	_, err := env.users.Login(context.Background(), &domain.LoginRequest{
		Username: "painter1",
		Password: "wrong password",
	})
	assert.ErrorIs(t, err, service.ErrUnauthorized)
}

func TestLoginUnknownUser(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.users.Login(context.Background(), &domain.LoginRequest{
		Username: "ghost",
		Password: "whatever1",
	})
	assert.ErrorIs(t, err, service.ErrUnauthorized)
}

func TestLoginDisabledAccount(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "painter1", "member")

	inactive := false
	_, err := env.users.Update(env.ctx, user.ID, &domain.UpdateUserRequest{IsActive: &inactive})
	require.NoError(t, err)

	_, err = env.users.Login(context.Background(), &domain.LoginRequest{
		Username: "painter1",
		Password: "hunter2hunter2",
	})
	assert.ErrorIs(t, err, service.ErrPermissionDenied)
}

func TestUserCreateRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.users.Create(env.asRole(domain.RoleMember), &domain.CreateUserRequest{
		Username: "newbie",
		Password: "hunter2hunter2",
		Role:     "member",
	})
	assert.ErrorIs(t, err, service.ErrPermissionDenied)
}

func TestUserCreateDuplicateUsername(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "painter1", "member")

	_, err := env.users.Create(env.ctx, &domain.CreateUserRequest{
		Username: "painter1",
		Password: "hunter2hunter2",
		Role:     "member",
	})
	assert.ErrorIs(t, err, service.ErrConflict)
}

func TestOnlySuperadminMintsSuperadmin(t *testing.T) {
	env := newTestEnv(t)

	// env.actor is an admin, not a superadmin
	_, err := env.users.Create(env.ctx, &domain.CreateUserRequest{
		Username: "boss",
		Password: "hunter2hunter2",
		Role:     "superadmin",
	})
	assert.ErrorIs(t, err, service.ErrPermissionDenied)

	_, err = env.users.Create(env.asRole(domain.RoleSuperAdmin), &domain.CreateUserRequest{
		Username: "boss",
		Password: "hunter2hunter2",
		Role:     "superadmin",
	})
	assert.NoError(t, err)
}

func TestUserDeleteSelf(t *testing.T) {
	env := newTestEnv(t)

	user := env.createUser(t, "painter1", "admin")
	selfCtx := auth.WithUserContext(context.Background(), &auth.UserContext{
		UserID:   user.ID,
		Username: user.Username,
		Role:     domain.RoleAdmin,
	})

	err := env.users.Delete(selfCtx, user.ID)
	assert.ErrorIs(t, err, service.ErrPermissionDenied)
}

func TestUserDeleteSuperadminRequiresSuperadmin(t *testing.T) {
	env := newTestEnv(t)

	boss, err := env.users.Create(env.asRole(domain.RoleSuperAdmin), &domain.CreateUserRequest{
		Username: "boss",
		Password: "hunter2hunter2",
		Role:     "superadmin",
	})
	require.NoError(t, err)

	err = env.users.Delete(env.ctx, boss.ID)
	assert.ErrorIs(t, err, service.ErrPermissionDenied)

	err = env.users.Delete(env.asRole(domain.RoleSuperAdmin), boss.ID)
	assert.NoError(t, err)
}

func TestUserDelete(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "painter1", "member")

	require.NoError(t, env.users.Delete(env.ctx, user.ID))

	_, err := env.users.GetByID(env.ctx, user.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestUserUpdatePassword(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "painter1", "member")

	newPassword := "fresh-paint-99"
	_, err := env.users.Update(env.ctx, user.ID, &domain.UpdateUserRequest{Password: &newPassword})
	require.NoError(t, err)

	_, err = env.users.Login(context.Background(), &domain.LoginRequest{
		Username: "painter1",
		Password: "fresh-paint-99",
	})
	assert.NoError(t, err)

	_, err = env.users.Login(context.Background(), &domain.LoginRequest{
		Username: "painter1",
		Password: "hunter2hunter2",
	})
	assert.ErrorIs(t, err, service.ErrUnauthorized)
}

func TestEnsureAdminUser(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.users.EnsureAdminUser(context.Background(), "admin", "bootstrap-secret"))

	users, err := env.users.List(env.ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, domain.RoleSuperAdmin, users[0].Role)

	// A second call against a populated store does nothing
	require.NoError(t, env.users.EnsureAdminUser(context.Background(), "admin2", "bootstrap-secret"))
	users, err = env.users.List(env.ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestEnsureAdminUserNoCredentials(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.users.EnsureAdminUser(context.Background(), "", ""))

	users, err := env.users.List(env.ctx)
	require.NoError(t, err)
	assert.Empty(t, users)
}
