package service

import (
	"errors"
	"muniplan_backend/internal/model"
	"muniplan_backend/internal/repository"
	"muniplan_backend/internal/util"
	"muniplan_backend/pkg/monitoring"
	"time"
)

// EntryService owns the data entry lifecycle: submission and the approval
// transitions. The decision logic itself lives in workflow_service.go; this
// service loads state, persists decisions and keeps report caches honest.
type EntryService struct {
	EntryRepo     *repository.DataEntryRepository
	IndicatorRepo *repository.IndicatorRepository
	Reports       *ReportService
}

func NewEntryService(
	entryRepo *repository.DataEntryRepository,
	indicatorRepo *repository.IndicatorRepository,
	reports *ReportService,
) *EntryService {
	return &EntryService{
		EntryRepo:     entryRepo,
		IndicatorRepo: indicatorRepo,
		Reports:       reports,
	}
}

type EntryRequest struct {
	IndicatorID   uint    `json:"indicatorId" binding:"required"`
	Value         float64 `json:"value"`
	PeriodYear    int     `json:"periodYear" binding:"required"`
	PeriodQuarter *int    `json:"periodQuarter"`
	PeriodMonth   *int    `json:"periodMonth"`
	// Draft keeps the entry out of the review pipeline until an explicit
	// submit.
	Draft bool `json:"draft"`
}

// CreateEntry submits a new measurement. The entry enters the state the
// submitter's role dictates and its value is frozen from here on; a wrong
// figure is corrected with a new entry after rejection, never by editing.
func (s *EntryService) CreateEntry(actorID uint, role model.UserRole, req EntryRequest) (*model.DataEntry, error) {
	if _, err := s.IndicatorRepo.FindByID(req.IndicatorID); err != nil {
		return nil, util.ErrIndicatorNotFound
	}

	status := SubmissionStatus(role)
	if req.Draft {
		status = model.EntryDraft
	}

	entry := &model.DataEntry{
		IndicatorID:   req.IndicatorID,
		Value:         req.Value,
		PeriodYear:    req.PeriodYear,
		PeriodQuarter: req.PeriodQuarter,
		PeriodMonth:   req.PeriodMonth,
		Status:        status,
		EnteredBy:     actorID,
	}

	if !entry.ValidatePeriod() {
		return nil, util.ErrInvalidInput
	}

	if err := s.EntryRepo.Create(entry); err != nil {
		return nil, err
	}

	// A fresh pending_admin entry is already provisionally visible to reports.
	if entry.Status == model.EntryPendingAdmin {
		s.Reports.InvalidateForIndicator(entry.IndicatorID)
	}

	return entry, nil
}

// Submit moves a draft into the review pipeline. Only the creator may
// submit, and the state it enters follows the same escalation rule as a
// direct submission; there is no way back to draft afterwards.
func (s *EntryService) Submit(entryID string, actorID uint, role model.UserRole) (*model.DataEntry, error) {
	entry, err := s.EntryRepo.FindByID(entryID)
	if err != nil {
		return nil, util.ErrEntryNotFound
	}
	if entry.Status != model.EntryDraft || entry.EnteredBy != actorID {
		return nil, util.ErrUnauthorizedTransition
	}

	decision := &model.TransitionDecision{NewStatus: SubmissionStatus(role)}
	if err := s.EntryRepo.ApplyTransition(entry.ID, model.EntryDraft, decision); err != nil {
		return nil, err
	}

	if decision.NewStatus == model.EntryPendingAdmin {
		s.Reports.InvalidateForIndicator(entry.IndicatorID)
	}

	return s.EntryRepo.FindByID(entry.ID)
}

// Transition applies one approval action. The optimistic check in
// ApplyTransition makes racing reviewers safe: the loser gets
// util.ErrEntryModified and must re-read.
func (s *EntryService) Transition(entryID string, actorID uint, role model.UserRole, action model.EntryAction, reason string) (*model.DataEntry, error) {
	entry, err := s.EntryRepo.FindByID(entryID)
	if err != nil {
		return nil, util.ErrEntryNotFound
	}

	decision, err := ProposeTransition(entry, role, actorID, action, reason, time.Now())
	if err != nil {
		monitoring.WorkflowTransitions.WithLabelValues(string(action), "denied").Inc()
		return nil, err
	}

	if err := s.EntryRepo.ApplyTransition(entry.ID, entry.Status, decision); err != nil {
		if errors.Is(err, util.ErrEntryModified) {
			monitoring.WorkflowTransitions.WithLabelValues(string(action), "conflict").Inc()
		}
		return nil, err
	}

	monitoring.WorkflowTransitions.WithLabelValues(string(action), "applied").Inc()
	s.Reports.InvalidateForIndicator(entry.IndicatorID)

	return s.EntryRepo.FindByID(entry.ID)
}

// Queue lists pending entries for a reviewer. Without an explicit status the
// filter defaults to the state the role owns.
func (s *EntryService) Queue(role model.UserRole, status model.EntryStatus, page, limit int) ([]model.DataEntry, int64, error) {
	if status == "" {
		status = DefaultQueueStatus(role)
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.EntryRepo.FindByStatus(status, page, limit)
}

func (s *EntryService) ListByIndicator(indicatorID uint, year int) ([]model.DataEntry, error) {
	if _, err := s.IndicatorRepo.FindByID(indicatorID); err != nil {
		return nil, util.ErrIndicatorNotFound
	}
	return s.EntryRepo.FindByIndicatorYear(indicatorID, year)
}
