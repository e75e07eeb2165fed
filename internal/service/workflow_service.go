package service

import (
	"fmt"
	"muniplan_backend/internal/model"
	"muniplan_backend/internal/util"
	"time"
)

// transitionKey identifies one legal workflow move. Permission checks used
// to live as inline conditionals on every screen; a single table keyed by
// (status, role, action) gives every caller identical enforcement.
type transitionKey struct {
	status model.EntryStatus
	role   model.UserRole
	action model.EntryAction
}

var transitionTable = map[transitionKey]model.EntryStatus{
	{model.EntryPendingDirector, model.Director, model.ActionApprove}: model.EntryPendingAdmin,
	{model.EntryPendingDirector, model.Director, model.ActionReject}:  model.EntryRejected,
	{model.EntryPendingAdmin, model.Admin, model.ActionApprove}:       model.EntryApproved,
	{model.EntryPendingAdmin, model.Admin, model.ActionReject}:        model.EntryRejected,
}

// SubmissionStatus picks the state a freshly submitted entry enters. Admins
// skip their own director gate; everyone else waits for director review.
func SubmissionStatus(role model.UserRole) model.EntryStatus {
	if role == model.Admin {
		return model.EntryPendingAdmin
	}
	return model.EntryPendingDirector
}

// DefaultQueueStatus is the filter a reviewer's queue opens with: the state
// that role owns.
func DefaultQueueStatus(role model.UserRole) model.EntryStatus {
	if role == model.Admin {
		return model.EntryPendingAdmin
	}
	return model.EntryPendingDirector
}

// ProposeTransition decides one workflow move without touching storage.
// An illegal (status, role, action) combination yields
// util.ErrUnauthorizedTransition and no decision; a legal rejection with an
// empty reason yields util.ErrInvalidInput. The entry itself is never
// mutated here.
func ProposeTransition(entry *model.DataEntry, role model.UserRole, actorID uint, action model.EntryAction, reason string, now time.Time) (*model.TransitionDecision, error) {
	if entry.Status.IsTerminal() {
		return nil, fmt.Errorf("entry %s is already %s: %w", entry.ID, entry.Status, util.ErrUnauthorizedTransition)
	}

	next, ok := transitionTable[transitionKey{entry.Status, role, action}]
	if !ok {
		return nil, fmt.Errorf("%s may not %s an entry in %s: %w", role, action, entry.Status, util.ErrUnauthorizedTransition)
	}

	decision := &model.TransitionDecision{NewStatus: next}

	switch action {
	case model.ActionApprove:
		if entry.Status == model.EntryPendingDirector {
			decision.DirectorApprovedBy = &actorID
			decision.DirectorApprovedAt = &now
		} else {
			decision.ReviewedBy = &actorID
			decision.ReviewedAt = &now
		}
	case model.ActionReject:
		if reason == "" {
			return nil, fmt.Errorf("rejection requires a reason: %w", util.ErrInvalidInput)
		}
		decision.ReviewedBy = &actorID
		decision.ReviewedAt = &now
		decision.RejectionReason = reason
	}

	return decision, nil
}
