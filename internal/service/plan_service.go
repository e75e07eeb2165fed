package service

import (
	"muniplan_backend/internal/model"
	"muniplan_backend/internal/repository"
	"muniplan_backend/internal/util"
)

// PlanService covers plan authoring: departments, goals, indicators and
// yearly target overrides.
type PlanService struct {
	DepartmentRepo *repository.DepartmentRepository
	GoalRepo       *repository.GoalRepository
	IndicatorRepo  *repository.IndicatorRepository
}

func NewPlanService(
	departmentRepo *repository.DepartmentRepository,
	goalRepo *repository.GoalRepository,
	indicatorRepo *repository.IndicatorRepository,
) *PlanService {
	return &PlanService{
		DepartmentRepo: departmentRepo,
		GoalRepo:       goalRepo,
		IndicatorRepo:  indicatorRepo,
	}
}

type GoalRequest struct {
	DepartmentID uint   `json:"departmentId" binding:"required"`
	Title        string `json:"title" binding:"required"`
	Description  string `json:"description"`
	StartYear    int    `json:"startYear" binding:"required"`
	EndYear      int    `json:"endYear" binding:"required"`
}

type IndicatorRequest struct {
	GoalID            uint                    `json:"goalId" binding:"required"`
	Name              string                  `json:"name" binding:"required"`
	Unit              string                  `json:"unit"`
	CalculationMethod model.CalculationMethod `json:"calculationMethod"`
	BaselineValue     *float64                `json:"baselineValue"`
	TargetValue       *float64                `json:"targetValue"`
}

type YearlyTargetRequest struct {
	Year        int     `json:"year" binding:"required"`
	TargetValue float64 `json:"targetValue" binding:"required"`
}

func (s *PlanService) ListDepartments() ([]model.Department, error) {
	return s.DepartmentRepo.List()
}

func (s *PlanService) CreateGoal(req GoalRequest) (*model.Goal, error) {
	if req.EndYear < req.StartYear {
		return nil, util.ErrInvalidInput
	}
	goal := &model.Goal{
		DepartmentID: req.DepartmentID,
		Title:        req.Title,
		Description:  req.Description,
		StartYear:    req.StartYear,
		EndYear:      req.EndYear,
	}
	if err := s.GoalRepo.Create(goal); err != nil {
		return nil, err
	}
	return goal, nil
}

func (s *PlanService) UpdateGoal(id uint, req GoalRequest) (*model.Goal, error) {
	goal, err := s.GoalRepo.FindByID(id)
	if err != nil {
		return nil, util.ErrGoalNotFound
	}
	if req.EndYear < req.StartYear {
		return nil, util.ErrInvalidInput
	}

	goal.DepartmentID = req.DepartmentID
	goal.Title = req.Title
	goal.Description = req.Description
	goal.StartYear = req.StartYear
	goal.EndYear = req.EndYear

	if err := s.GoalRepo.Update(goal); err != nil {
		return nil, err
	}
	return goal, nil
}

// DeleteGoal refuses while indicators still reference the goal, so approved
// history behind those indicators can never be orphaned.
func (s *PlanService) DeleteGoal(id uint) error {
	if _, err := s.GoalRepo.FindByID(id); err != nil {
		return util.ErrGoalNotFound
	}
	count, err := s.GoalRepo.CountIndicators(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return util.ErrGoalInUse
	}
	return s.GoalRepo.Delete(id)
}

func (s *PlanService) ListGoals(departmentID uint) ([]model.Goal, error) {
	if departmentID > 0 {
		return s.GoalRepo.FindByDepartment(departmentID)
	}
	return s.GoalRepo.List()
}

func (s *PlanService) CreateIndicator(req IndicatorRequest) (*model.Indicator, error) {
	if _, err := s.GoalRepo.FindByID(req.GoalID); err != nil {
		return nil, util.ErrGoalNotFound
	}

	method := req.CalculationMethod
	if method == "" {
		method = model.MethodCumulative
	}

	indicator := &model.Indicator{
		GoalID:            req.GoalID,
		Name:              req.Name,
		Unit:              req.Unit,
		CalculationMethod: method,
		BaselineValue:     req.BaselineValue,
		TargetValue:       req.TargetValue,
	}
	if err := s.IndicatorRepo.Create(indicator); err != nil {
		return nil, err
	}
	return indicator, nil
}

func (s *PlanService) UpdateIndicator(id uint, req IndicatorRequest) (*model.Indicator, error) {
	indicator, err := s.IndicatorRepo.FindByID(id)
	if err != nil {
		return nil, util.ErrIndicatorNotFound
	}

	indicator.Name = req.Name
	indicator.Unit = req.Unit
	if req.CalculationMethod != "" {
		indicator.CalculationMethod = req.CalculationMethod
	}
	indicator.BaselineValue = req.BaselineValue
	indicator.TargetValue = req.TargetValue

	if err := s.IndicatorRepo.Update(indicator); err != nil {
		return nil, err
	}
	return indicator, nil
}

// DeleteIndicator refuses while data entries reference the indicator.
func (s *PlanService) DeleteIndicator(id uint) error {
	if _, err := s.IndicatorRepo.FindByID(id); err != nil {
		return util.ErrIndicatorNotFound
	}
	count, err := s.IndicatorRepo.CountEntries(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return util.ErrIndicatorInUse
	}
	return s.IndicatorRepo.Delete(id)
}

func (s *PlanService) ListIndicators(goalID uint) ([]model.Indicator, error) {
	if goalID > 0 {
		return s.IndicatorRepo.FindByGoalID(goalID)
	}
	return s.IndicatorRepo.List()
}

func (s *PlanService) SetYearlyTarget(indicatorID uint, req YearlyTargetRequest) (*model.YearlyTarget, error) {
	if _, err := s.IndicatorRepo.FindByID(indicatorID); err != nil {
		return nil, util.ErrIndicatorNotFound
	}
	if req.Year <= 0 {
		return nil, util.ErrInvalidInput
	}

	target := &model.YearlyTarget{
		IndicatorID: indicatorID,
		Year:        req.Year,
		TargetValue: req.TargetValue,
	}
	if err := s.IndicatorRepo.UpsertYearlyTarget(target); err != nil {
		return nil, err
	}
	return target, nil
}

func (s *PlanService) ListYearlyTargets(indicatorID uint) ([]model.YearlyTarget, error) {
	if _, err := s.IndicatorRepo.FindByID(indicatorID); err != nil {
		return nil, util.ErrIndicatorNotFound
	}
	return s.IndicatorRepo.ListYearlyTargets(indicatorID)
}
