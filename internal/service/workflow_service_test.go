package service

import (
	"muniplan_backend/internal/model"
	"muniplan_backend/internal/util"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pendingEntry(status model.EntryStatus) *model.DataEntry {
	e := &model.DataEntry{
		IndicatorID: 7,
		Value:       42,
		PeriodYear:  2026,
		Status:      status,
		EnteredBy:   3,
	}
	e.ID = "entry-1"
	return e
}

func TestProposeTransition_DirectorApprove(t *testing.T) {
	now := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	entry := pendingEntry(model.EntryPendingDirector)

	decision, err := ProposeTransition(entry, model.Director, 11, model.ActionApprove, "", now)
	require.NoError(t, err)

	assert.Equal(t, model.EntryPendingAdmin, decision.NewStatus)
	require.NotNil(t, decision.DirectorApprovedBy)
	assert.Equal(t, uint(11), *decision.DirectorApprovedBy)
	assert.Equal(t, now, *decision.DirectorApprovedAt)
	assert.Nil(t, decision.ReviewedBy)
}

func TestProposeTransition_AdminApprove(t *testing.T) {
	now := time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC)
	entry := pendingEntry(model.EntryPendingAdmin)

	decision, err := ProposeTransition(entry, model.Admin, 21, model.ActionApprove, "", now)
	require.NoError(t, err)

	assert.Equal(t, model.EntryApproved, decision.NewStatus)
	require.NotNil(t, decision.ReviewedBy)
	assert.Equal(t, uint(21), *decision.ReviewedBy)
	assert.Equal(t, now, *decision.ReviewedAt)
	assert.Nil(t, decision.DirectorApprovedBy)
}

func TestProposeTransition_RejectStampsReason(t *testing.T) {
	now := time.Now()

	for _, tc := range []struct {
		status model.EntryStatus
		role   model.UserRole
	}{
		{model.EntryPendingDirector, model.Director},
		{model.EntryPendingAdmin, model.Admin},
	} {
		decision, err := ProposeTransition(pendingEntry(tc.status), tc.role, 5, model.ActionReject, "figure contradicts quarterly report", now)
		require.NoError(t, err)

		assert.Equal(t, model.EntryRejected, decision.NewStatus)
		assert.Equal(t, "figure contradicts quarterly report", decision.RejectionReason)
		require.NotNil(t, decision.ReviewedBy)
		assert.Equal(t, uint(5), *decision.ReviewedBy)
	}
}

func TestProposeTransition_RejectWithoutReason(t *testing.T) {
	decision, err := ProposeTransition(pendingEntry(model.EntryPendingAdmin), model.Admin, 5, model.ActionReject, "", time.Now())

	assert.Nil(t, decision)
	assert.ErrorIs(t, err, util.ErrInvalidInput)
}

func TestProposeTransition_DirectorCannotTouchAdminQueue(t *testing.T) {
	// A director rejecting in the admin queue is an authorization failure,
	// not a missing-reason failure, even with an empty reason.
	decision, err := ProposeTransition(pendingEntry(model.EntryPendingAdmin), model.Director, 5, model.ActionReject, "", time.Now())

	assert.Nil(t, decision)
	assert.ErrorIs(t, err, util.ErrUnauthorizedTransition)
}

func TestProposeTransition_OnlyTableEntriesAreLegal(t *testing.T) {
	statuses := []model.EntryStatus{
		model.EntryDraft,
		model.EntryPendingDirector,
		model.EntryPendingAdmin,
		model.EntryApproved,
		model.EntryRejected,
	}
	roles := []model.UserRole{model.Submitter, model.Director, model.Admin}
	actions := []model.EntryAction{model.ActionApprove, model.ActionReject}

	legal := map[[3]string]bool{
		{string(model.EntryPendingDirector), string(model.Director), string(model.ActionApprove)}: true,
		{string(model.EntryPendingDirector), string(model.Director), string(model.ActionReject)}:  true,
		{string(model.EntryPendingAdmin), string(model.Admin), string(model.ActionApprove)}:       true,
		{string(model.EntryPendingAdmin), string(model.Admin), string(model.ActionReject)}:        true,
	}

	for _, status := range statuses {
		for _, role := range roles {
			for _, action := range actions {
				entry := pendingEntry(status)
				decision, err := ProposeTransition(entry, role, 9, action, "some reason", time.Now())

				key := [3]string{string(status), string(role), string(action)}
				if legal[key] {
					assert.NoError(t, err, "expected legal: %v", key)
					assert.NotNil(t, decision)
				} else {
					assert.ErrorIs(t, err, util.ErrUnauthorizedTransition, "expected illegal: %v", key)
					assert.Nil(t, decision)
				}

				// The decision function never mutates the entry.
				assert.Equal(t, status, entry.Status)
				assert.Nil(t, entry.ReviewedBy)
				assert.Nil(t, entry.DirectorApprovedBy)
			}
		}
	}
}

func TestProposeTransition_TerminalStatesAreLocked(t *testing.T) {
	for _, status := range []model.EntryStatus{model.EntryApproved, model.EntryRejected} {
		for _, role := range []model.UserRole{model.Director, model.Admin} {
			_, err := ProposeTransition(pendingEntry(status), role, 9, model.ActionApprove, "", time.Now())
			assert.ErrorIs(t, err, util.ErrUnauthorizedTransition, "status=%s role=%s", status, role)
		}
	}
}

func TestSubmissionStatus_AdminSkipsDirectorGate(t *testing.T) {
	assert.Equal(t, model.EntryPendingDirector, SubmissionStatus(model.Submitter))
	assert.Equal(t, model.EntryPendingDirector, SubmissionStatus(model.Director))
	assert.Equal(t, model.EntryPendingAdmin, SubmissionStatus(model.Admin))
}

func TestDefaultQueueStatus(t *testing.T) {
	assert.Equal(t, model.EntryPendingDirector, DefaultQueueStatus(model.Director))
	assert.Equal(t, model.EntryPendingAdmin, DefaultQueueStatus(model.Admin))
}
