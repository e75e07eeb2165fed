package model

type CalculationMethod string

const (
	// MethodCumulative accumulates period contributions on top of the baseline.
	MethodCumulative CalculationMethod = "cumulative"
	MethodIncreasing CalculationMethod = "increasing"
	// MethodCumulativeDecreasing measures progress by reduction from the baseline.
	MethodCumulativeDecreasing CalculationMethod = "cumulative_decreasing"
	MethodDecreasing           CalculationMethod = "decreasing"
	// MethodMaintenance treats entries as the actual level, no baseline offset.
	MethodMaintenance CalculationMethod = "maintenance"
	MethodPercentage  CalculationMethod = "percentage"
)

// Indicator is a measured quantity owned by a strategic goal. BaselineValue
// and TargetValue are nullable: a missing baseline means zero, a missing
// target means the indicator is unconfigured for years without a yearly
// target override.
type Indicator struct {
	BaseModel
	GoalID            uint              `gorm:"index;type:bigint unsigned;not null" json:"goalId"`
	Name              string            `gorm:"size:255;not null" json:"name"`
	Unit              string            `gorm:"size:50" json:"unit"`
	CalculationMethod CalculationMethod `gorm:"size:30;default:'cumulative'" json:"calculationMethod"`
	BaselineValue     *float64          `json:"baselineValue"`
	TargetValue       *float64          `json:"targetValue"`
}

func (Indicator) TableName() string {
	return "indicators"
}

// YearlyTarget overrides the indicator's default target for one fiscal year.
// At most one per (indicator, year).
type YearlyTarget struct {
	BaseModel
	IndicatorID uint    `gorm:"uniqueIndex:idx_indicator_year;type:bigint unsigned;not null" json:"indicatorId"`
	Year        int     `gorm:"uniqueIndex:idx_indicator_year;not null" json:"year"`
	TargetValue float64 `gorm:"not null" json:"targetValue"`
}

func (YearlyTarget) TableName() string {
	return "yearly_targets"
}
