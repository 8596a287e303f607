package auth

import (
	"context"
	"testing"

	"github.com/brushworks/fieldops-api/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserContextRoundTrip(t *testing.T) {
	user := &UserContext{UserID: uuid.New(), Username: "tester", Role: domain.RoleAdmin}
	ctx := WithUserContext(context.Background(), user)

	got, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, user, got)

	_, ok = FromContext(context.Background())
	assert.False(t, ok)
}

func TestRoleChecks(t *testing.T) {
	superadmin := &UserContext{Role: domain.RoleSuperAdmin}
	admin := &UserContext{Role: domain.RoleAdmin}
	member := &UserContext{Role: domain.RoleMember}
	viewer := &UserContext{Role: domain.RoleViewer}

	assert.True(t, superadmin.IsSuperAdmin())
	assert.False(t, admin.IsSuperAdmin())

	assert.True(t, superadmin.IsAdmin())
	assert.True(t, admin.IsAdmin())
	assert.False(t, member.IsAdmin())
	assert.False(t, viewer.IsAdmin())

	assert.True(t, superadmin.CanWrite())
	assert.True(t, member.CanWrite())
	assert.False(t, viewer.CanWrite())

	assert.True(t, member.HasAnyRole(domain.RoleAdmin, domain.RoleMember))
	assert.False(t, member.HasAnyRole(domain.RoleAdmin, domain.RoleViewer))
}
