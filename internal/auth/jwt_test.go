package auth

import (
	"testing"
	"time"

	"github.com/brushworks/fieldops-api/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser() *domain.User {
	return &domain.User{
		BaseModel: domain.BaseModel{ID: uuid.New()},
		Username:  "painter1",
		FullName:  "Test Painter",
		Role:      domain.RoleMember,
	}
}

func TestTokenRoundTrip(t *testing.T) {
	tm, err := NewTokenManager("test-secret", "fieldops-api", time.Hour)
	require.NoError(t, err)

	user := testUser()
	token, expiresAt, err := tm.Issue(user)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	userCtx, err := tm.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userCtx.UserID)
	assert.Equal(t, "painter1", userCtx.Username)
	assert.Equal(t, "Test Painter", userCtx.FullName)
	assert.Equal(t, domain.RoleMember, userCtx.Role)
}

func TestTokenWrongSecret(t *testing.T) {
	tm, err := NewTokenManager("secret-a", "fieldops-api", time.Hour)
	require.NoError(t, err)
	other, err := NewTokenManager("secret-b", "fieldops-api", time.Hour)
	require.NoError(t, err)

	token, _, err := tm.Issue(testUser())
	require.NoError(t, err)

	_, err = other.Validate(token)
	assert.Error(t, err)
}

func TestTokenWrongIssuer(t *testing.T) {
	tm, err := NewTokenManager("test-secret", "other-service", time.Hour)
	require.NoError(t, err)
	token, _, err := tm.Issue(testUser())
	require.NoError(t, err)

	validator, err := NewTokenManager("test-secret", "fieldops-api", time.Hour)
	require.NoError(t, err)
	_, err = validator.Validate(token)
	assert.Error(t, err)
}

func TestTokenExpired(t *testing.T) {
	tm, err := NewTokenManager("test-secret", "fieldops-api", time.Hour)
	require.NoError(t, err)
	tm.lifetime = -time.Minute

	token, _, err := tm.Issue(testUser())
	require.NoError(t, err)

	_, err = tm.Validate(token)
	assert.Error(t, err)
}

func TestTokenGarbage(t *testing.T) {
	tm, err := NewTokenManager("test-secret", "fieldops-api", time.Hour)
	require.NoError(t, err)

	_, err = tm.Validate("not.a.token")
	assert.Error(t, err)
}

func TestNewTokenManagerRequiresSecret(t *testing.T) {
	_, err := NewTokenManager("", "fieldops-api", time.Hour)
	assert.Error(t, err)
}
