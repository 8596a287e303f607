package domain

// AllProjectStatuses lists every pipeline stage in forward order
var AllProjectStatuses = []ProjectStatus{
	StatusPendingVisit,
	StatusQuoteSent,
	StatusQuoteApproved,
	StatusInPreparation,
	StatusInProgress,
	StatusFinalReview,
	StatusCompleted,
	StatusArchived,
}

// IsValid checks if the status is one of the known pipeline stages
func (s ProjectStatus) IsValid() bool {
	for _, status := range AllProjectStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// forwardTransitions is the strict pipeline order. Each stage may advance to
// the next one; any stage may be archived, and archived projects can be
// restored to completed for corrections.
var forwardTransitions = map[ProjectStatus][]ProjectStatus{
	StatusPendingVisit:  {StatusQuoteSent, StatusArchived},
	StatusQuoteSent:     {StatusQuoteApproved, StatusArchived},
	StatusQuoteApproved: {StatusInPreparation, StatusArchived},
	StatusInPreparation: {StatusInProgress, StatusArchived},
	StatusInProgress:    {StatusFinalReview, StatusArchived},
	StatusFinalReview:   {StatusCompleted, StatusArchived},
	StatusCompleted:     {StatusArchived},
	StatusArchived:      {StatusCompleted},
}

// CanTransition reports whether a manual status change from one stage to
// another is allowed. In the default permissive mode every pair of valid
// stages is allowed, matching how the board is operated in practice (any
// column can be corrected to any other). Strict mode confines manual moves
// to the forward pipeline order.
func CanTransition(from, to ProjectStatus, strict bool) bool {
	if !from.IsValid() || !to.IsValid() {
		return false
	}
	if !strict {
		return true
	}
	if from == to {
		return true
	}
	for _, next := range forwardTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
