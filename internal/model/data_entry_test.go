package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePeriod(t *testing.T) {
	q2 := 2
	q5 := 5
	m11 := 11
	m13 := 13

	cases := []struct {
		name  string
		entry DataEntry
		want  bool
	}{
		{"yearly only", DataEntry{PeriodYear: 2026}, true},
		{"quarterly", DataEntry{PeriodYear: 2026, PeriodQuarter: &q2}, true},
		{"monthly", DataEntry{PeriodYear: 2026, PeriodMonth: &m11}, true},
		{"quarter and month together", DataEntry{PeriodYear: 2026, PeriodQuarter: &q2, PeriodMonth: &m11}, false},
		{"quarter out of range", DataEntry{PeriodYear: 2026, PeriodQuarter: &q5}, false},
		{"month out of range", DataEntry{PeriodYear: 2026, PeriodMonth: &m13}, false},
		{"missing year", DataEntry{PeriodQuarter: &q2}, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.entry.ValidatePeriod(), tc.name)
	}
}

func TestEligible(t *testing.T) {
	assert.False(t, EntryDraft.Eligible())
	assert.False(t, EntryPendingDirector.Eligible())
	assert.True(t, EntryPendingAdmin.Eligible())
	assert.True(t, EntryApproved.Eligible())
	assert.False(t, EntryRejected.Eligible())
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, EntryApproved.IsTerminal())
	assert.True(t, EntryRejected.IsTerminal())
	assert.False(t, EntryDraft.IsTerminal())
	assert.False(t, EntryPendingDirector.IsTerminal())
	assert.False(t, EntryPendingAdmin.IsTerminal())
}
