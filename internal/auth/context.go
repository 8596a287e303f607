package auth

import (
	"context"

	"github.com/brushworks/fieldops-api/internal/domain"
	"github.com/google/uuid"
)

// UserContext holds the authenticated user attached to a request. The
// domain layer stamps createdBy/actor fields from this and only this;
// client-supplied identity fields are never trusted.
type UserContext struct {
	UserID   uuid.UUID
	Username string
	FullName string
	Role     domain.UserRole
}

type contextKey string

const userContextKey contextKey = "userContext"

// WithUserContext adds user context to the context
func WithUserContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// FromContext extracts user context from the context
func FromContext(ctx context.Context) (*UserContext, bool) {
	user, ok := ctx.Value(userContextKey).(*UserContext)
	return user, ok
}

// HasAnyRole checks if the user has any of the specified roles
func (u *UserContext) HasAnyRole(roles ...domain.UserRole) bool {
	for _, role := range roles {
		if u.Role == role {
			return true
		}
	}
	return false
}

// IsSuperAdmin checks if the user is a super admin
func (u *UserContext) IsSuperAdmin() bool {
	return u.Role == domain.RoleSuperAdmin
}

// IsAdmin checks if the user can manage accounts and delete records
func (u *UserContext) IsAdmin() bool {
	return u.HasAnyRole(domain.RoleSuperAdmin, domain.RoleAdmin)
}

// CanWrite checks if the user may perform mutating operations
func (u *UserContext) CanWrite() bool {
	return u.Role != domain.RoleViewer
}
