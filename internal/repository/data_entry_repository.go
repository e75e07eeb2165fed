package repository

import (
	"muniplan_backend/internal/model"
	"muniplan_backend/internal/util"

	"gorm.io/gorm"
)

type DataEntryRepository struct {
	DB *gorm.DB
}

func NewDataEntryRepository(db *gorm.DB) *DataEntryRepository {
	return &DataEntryRepository{DB: db}
}

func (r *DataEntryRepository) Create(entry *model.DataEntry) error {
	return r.DB.Create(entry).Error
}

func (r *DataEntryRepository) FindByID(id string) (*model.DataEntry, error) {
	var entry model.DataEntry
	err := r.DB.Where("id = ?", id).First(&entry).Error
	return &entry, err
}

func (r *DataEntryRepository) FindByIndicatorYear(indicatorID uint, year int) ([]model.DataEntry, error) {
	var entries []model.DataEntry
	err := r.DB.Where("indicator_id = ? AND period_year = ?", indicatorID, year).
		Order("period_quarter, period_month, created_at").
		Find(&entries).Error
	return entries, err
}

// FindEligibleByIndicatorYear returns only entries that count toward
// achievement: approved ones plus those awaiting the final admin decision.
func (r *DataEntryRepository) FindEligibleByIndicatorYear(indicatorID uint, year int) ([]model.DataEntry, error) {
	var entries []model.DataEntry
	err := r.DB.Where("indicator_id = ? AND period_year = ? AND status IN ?",
		indicatorID, year,
		[]model.EntryStatus{model.EntryApproved, model.EntryPendingAdmin}).
		Order("period_quarter, period_month, created_at").
		Find(&entries).Error
	return entries, err
}

func (r *DataEntryRepository) FindByStatus(status model.EntryStatus, page, limit int) ([]model.DataEntry, int64, error) {
	var entries []model.DataEntry
	var total int64

	q := r.DB.Model(&model.DataEntry{}).Where("status = ?", status)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("created_at").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&entries).Error
	return entries, total, err
}

// ApplyTransition persists a workflow decision with an optimistic check on
// the status the decision was computed from. When two reviewers race, the
// second UPDATE matches zero rows and surfaces util.ErrEntryModified instead
// of silently double-applying.
func (r *DataEntryRepository) ApplyTransition(id string, expected model.EntryStatus, decision *model.TransitionDecision) error {
	updates := map[string]interface{}{
		"status": decision.NewStatus,
	}
	if decision.DirectorApprovedBy != nil {
		updates["director_approved_by"] = decision.DirectorApprovedBy
		updates["director_approved_at"] = decision.DirectorApprovedAt
	}
	if decision.ReviewedBy != nil {
		updates["reviewed_by"] = decision.ReviewedBy
		updates["reviewed_at"] = decision.ReviewedAt
	}
	if decision.RejectionReason != "" {
		updates["rejection_reason"] = decision.RejectionReason
	}

	res := r.DB.Model(&model.DataEntry{}).
		Where("id = ? AND status = ?", id, expected).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return util.ErrEntryModified
	}
	return nil
}
