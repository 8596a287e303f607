package service

import (
	"context"
	"fmt"

	"github.com/brushworks/fieldops-api/internal/auth"
)

// actorFromContext returns the authenticated user for a mutating operation.
// Every create/approve/status-change stamps its actor from here; a missing
// actor is a hard failure, never a silent default account.
func actorFromContext(ctx context.Context) (*auth.UserContext, error) {
	actor, ok := auth.FromContext(ctx)
	if !ok || actor == nil {
		return nil, fmt.Errorf("no authenticated actor in request context: %w", ErrUnauthorized)
	}
	return actor, nil
}
