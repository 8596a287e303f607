package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProjectStatusIsValid(t *testing.T) {
	for _, status := range AllProjectStatuses {
		assert.True(t, status.IsValid(), "expected %q to be valid", status)
	}

	assert.False(t, ProjectStatus("").IsValid())
	assert.False(t, ProjectStatus("unknown").IsValid())
	assert.False(t, ProjectStatus("Pending_Visit").IsValid())
}

func TestCanTransitionPermissive(t *testing.T) {
	// Default mode: any pair of valid stages is allowed, including backwards
	assert.True(t, CanTransition(StatusCompleted, StatusPendingVisit, false))
	assert.True(t, CanTransition(StatusPendingVisit, StatusArchived, false))
	assert.True(t, CanTransition(StatusInProgress, StatusInProgress, false))

	// Unknown stages are rejected even in permissive mode
	assert.False(t, CanTransition(ProjectStatus("bogus"), StatusCompleted, false))
	assert.False(t, CanTransition(StatusCompleted, ProjectStatus("bogus"), false))
}

func TestCanTransitionStrict(t *testing.T) {
	// Forward steps are allowed
	assert.True(t, CanTransition(StatusPendingVisit, StatusQuoteSent, true))
	assert.True(t, CanTransition(StatusQuoteSent, StatusQuoteApproved, true))
	assert.True(t, CanTransition(StatusFinalReview, StatusCompleted, true))

	// Any stage may be archived
	assert.True(t, CanTransition(StatusPendingVisit, StatusArchived, true))
	assert.True(t, CanTransition(StatusInProgress, StatusArchived, true))

	// Archived can be restored to completed
	assert.True(t, CanTransition(StatusArchived, StatusCompleted, true))

	// Skipping stages or moving backwards is rejected
	assert.False(t, CanTransition(StatusPendingVisit, StatusQuoteApproved, true))
	assert.False(t, CanTransition(StatusCompleted, StatusPendingVisit, true))
	assert.False(t, CanTransition(StatusQuoteApproved, StatusQuoteSent, true))

	// Same-stage moves are a no-op, not an error
	assert.True(t, CanTransition(StatusInProgress, StatusInProgress, true))
}

func TestServiceOrderDerivedStatus(t *testing.T) {
	order := &ServiceOrder{}
	assert.Equal(t, OrderStatusPending, order.Status())

	now := time.Now()
	order.StartedAt = &now
	assert.Equal(t, OrderStatusInProgress, order.Status())

	order.CompletedAt = &now
	assert.Equal(t, OrderStatusCompleted, order.Status())
}
