package model

import "time"

type EntryStatus string

const (
	EntryDraft           EntryStatus = "draft"
	EntryPendingDirector EntryStatus = "pending_director"
	EntryPendingAdmin    EntryStatus = "pending_admin"
	EntryApproved        EntryStatus = "approved"
	EntryRejected        EntryStatus = "rejected"
)

// IsTerminal reports whether no further workflow transition is allowed.
// Corrections to a decided entry go through a new entry, never mutation.
func (s EntryStatus) IsTerminal() bool {
	return s == EntryApproved || s == EntryRejected
}

// Eligible reports whether entries in this status count toward achievement.
// Entries awaiting the final admin decision are counted provisionally so
// dashboards can show in-flight figures; drafts, entries still at the
// director gate and rejected entries never count.
func (s EntryStatus) Eligible() bool {
	return s == EntryApproved || s == EntryPendingAdmin
}

type EntryAction string

const (
	ActionApprove EntryAction = "approve"
	ActionReject  EntryAction = "reject"
)

// DataEntry is one submitted measurement for an indicator in a period.
// Value is immutable after submission; all later changes happen through
// workflow transitions so the approval audit trail stays intact.
type DataEntry struct {
	UUIDBase
	IndicatorID   uint        `gorm:"index;type:bigint unsigned;not null" json:"indicatorId"`
	Value         float64     `gorm:"not null" json:"value"`
	PeriodYear    int         `gorm:"index;not null" json:"periodYear"`
	PeriodQuarter *int        `json:"periodQuarter"`
	PeriodMonth   *int        `json:"periodMonth"`
	Status        EntryStatus `gorm:"size:20;index;default:'pending_director'" json:"status"`
	EnteredBy     uint        `gorm:"type:bigint unsigned;not null" json:"enteredBy"`

	DirectorApprovedBy *uint      `gorm:"type:bigint unsigned" json:"directorApprovedBy"`
	DirectorApprovedAt *time.Time `json:"directorApprovedAt"`
	ReviewedBy         *uint      `gorm:"type:bigint unsigned" json:"reviewedBy"`
	ReviewedAt         *time.Time `json:"reviewedAt"`
	RejectionReason    string     `gorm:"type:text" json:"rejectionReason,omitempty"`
}

func (DataEntry) TableName() string {
	return "data_entries"
}

// TransitionDecision is what a legal workflow transition writes back: the
// new status plus the audit stamps for whoever acted. The persistence layer
// applies it with a compare-and-swap on the status the decision was computed
// from.
type TransitionDecision struct {
	NewStatus EntryStatus

	DirectorApprovedBy *uint
	DirectorApprovedAt *time.Time
	ReviewedBy         *uint
	ReviewedAt         *time.Time
	RejectionReason    string
}

// ValidatePeriod enforces the granularity invariant: at most one of
// quarter/month may be set, and each must be in range when present.
func (e *DataEntry) ValidatePeriod() bool {
	if e.PeriodQuarter != nil && e.PeriodMonth != nil {
		return false
	}
	if e.PeriodQuarter != nil && (*e.PeriodQuarter < 1 || *e.PeriodQuarter > 4) {
		return false
	}
	if e.PeriodMonth != nil && (*e.PeriodMonth < 1 || *e.PeriodMonth > 12) {
		return false
	}
	return e.PeriodYear > 0
}
