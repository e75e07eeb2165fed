package repository

import (
	"errors"
	"muniplan_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type IndicatorRepository struct {
	DB *gorm.DB
}

func NewIndicatorRepository(db *gorm.DB) *IndicatorRepository {
	return &IndicatorRepository{DB: db}
}

func (r *IndicatorRepository) Create(indicator *model.Indicator) error {
	return r.DB.Create(indicator).Error
}

// Update only touches the fields planning staff may correct; an indicator's
// goal never moves.
func (r *IndicatorRepository) Update(indicator *model.Indicator) error {
	return r.DB.Model(&model.Indicator{}).
		Where("id = ?", indicator.ID).
		Updates(map[string]interface{}{
			"name":               indicator.Name,
			"unit":               indicator.Unit,
			"calculation_method": indicator.CalculationMethod,
			"baseline_value":     indicator.BaselineValue,
			"target_value":       indicator.TargetValue,
		}).Error
}

func (r *IndicatorRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Indicator{}, id).Error
}

func (r *IndicatorRepository) FindByID(id uint) (*model.Indicator, error) {
	var indicator model.Indicator
	err := r.DB.First(&indicator, id).Error
	return &indicator, err
}

func (r *IndicatorRepository) FindByGoalID(goalID uint) ([]model.Indicator, error) {
	var indicators []model.Indicator
	err := r.DB.Where("goal_id = ?", goalID).Order("name").Find(&indicators).Error
	return indicators, err
}

func (r *IndicatorRepository) List() ([]model.Indicator, error) {
	var indicators []model.Indicator
	err := r.DB.Order("goal_id, name").Find(&indicators).Error
	return indicators, err
}

// CountEntries gates deletion: indicators referenced by data entries are
// refused, never cascaded.
func (r *IndicatorRepository) CountEntries(indicatorID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.DataEntry{}).Where("indicator_id = ?", indicatorID).Count(&count).Error
	return count, err
}

// UpsertYearlyTarget creates or replaces the override for (indicator, year).
func (r *IndicatorRepository) UpsertYearlyTarget(target *model.YearlyTarget) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "indicator_id"}, {Name: "year"}},
		DoUpdates: clause.AssignmentColumns([]string{"target_value", "updated_at"}),
	}).Create(target).Error
}

// FindYearlyTarget returns nil without error when no override exists; the
// caller falls back to the indicator default.
func (r *IndicatorRepository) FindYearlyTarget(indicatorID uint, year int) (*model.YearlyTarget, error) {
	var target model.YearlyTarget
	err := r.DB.Where("indicator_id = ? AND year = ?", indicatorID, year).First(&target).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &target, nil
}

func (r *IndicatorRepository) ListYearlyTargets(indicatorID uint) ([]model.YearlyTarget, error) {
	var targets []model.YearlyTarget
	err := r.DB.Where("indicator_id = ?", indicatorID).Order("year").Find(&targets).Error
	return targets, err
}
