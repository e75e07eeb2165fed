package repository

import (
	"muniplan_backend/internal/model"

	"gorm.io/gorm"
)

// GoalRepository handles strategic goal persistence.

type GoalRepository struct {
	DB *gorm.DB
}

func NewGoalRepository(db *gorm.DB) *GoalRepository {
	return &GoalRepository{DB: db}
}

func (r *GoalRepository) Create(goal *model.Goal) error {
	return r.DB.Create(goal).Error
}

func (r *GoalRepository) Update(goal *model.Goal) error {
	return r.DB.Model(&model.Goal{}).
		Where("id = ?", goal.ID).
		Updates(map[string]interface{}{
			"department_id": goal.DepartmentID,
			"title":         goal.Title,
			"description":   goal.Description,
			"start_year":    goal.StartYear,
			"end_year":      goal.EndYear,
		}).Error
}

func (r *GoalRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Goal{}, id).Error
}

func (r *GoalRepository) FindByID(id uint) (*model.Goal, error) {
	var goal model.Goal
	err := r.DB.First(&goal, id).Error
	return &goal, err
}

func (r *GoalRepository) FindByDepartment(departmentID uint) ([]model.Goal, error) {
	var goals []model.Goal
	err := r.DB.Where("department_id = ?", departmentID).Order("start_year").Find(&goals).Error
	return goals, err
}

func (r *GoalRepository) List() ([]model.Goal, error) {
	var goals []model.Goal
	err := r.DB.Order("department_id, start_year").Find(&goals).Error
	return goals, err
}

// CountIndicators tells whether a goal can be deleted: goals with indicators
// are refused, never cascaded.
func (r *GoalRepository) CountIndicators(goalID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Indicator{}).Where("goal_id = ?", goalID).Count(&count).Error
	return count, err
}
