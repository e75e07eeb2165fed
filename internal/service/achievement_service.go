package service

import (
	"muniplan_backend/internal/model"
)

// AchievementResult is the outcome of one indicator/year computation. Nil
// Percent means "no data": the indicator has no usable target or no eligible
// entries, and reporting surfaces render a placeholder instead of 0%.
type AchievementResult struct {
	Actual  *float64 `json:"actual"`
	Percent *float64 `json:"percent"`
}

func (r AchievementResult) HasData() bool {
	return r.Percent != nil
}

// EffectiveTarget resolves the target for one year: the yearly override wins,
// then the indicator default. Nil means the year is unconfigured.
func EffectiveTarget(indicator *model.Indicator, yearly *model.YearlyTarget) *float64 {
	if yearly != nil {
		t := yearly.TargetValue
		return &t
	}
	if indicator.TargetValue != nil {
		t := *indicator.TargetValue
		return &t
	}
	return nil
}

// FilterEligible keeps only entries whose status counts toward achievement.
// The engine itself never looks at workflow state; callers filter first.
func FilterEligible(entries []model.DataEntry) []model.DataEntry {
	eligible := make([]model.DataEntry, 0, len(entries))
	for _, e := range entries {
		if e.Status.Eligible() {
			eligible = append(eligible, e)
		}
	}
	return eligible
}

// ComputeAchievement turns a baseline, an effective target and the eligible
// entries of one year into a single achievement percentage.
//
// A target of zero or less is treated as unconfigured, the same as a missing
// one: dividing by it would be meaningless, so the result is "no data" rather
// than a crash or an infinity. The percentage is never clamped; indicators
// legitimately overshoot 100 and decreasing indicators that regressed go
// negative.
func ComputeAchievement(indicator *model.Indicator, effectiveTarget *float64, entries []model.DataEntry) AchievementResult {
	if effectiveTarget == nil || *effectiveTarget <= 0 || len(entries) == 0 {
		return AchievementResult{}
	}

	var sum float64
	for _, e := range entries {
		sum += e.Value
	}

	var baseline float64
	if indicator.BaselineValue != nil {
		baseline = *indicator.BaselineValue
	}

	var actual float64
	switch indicator.CalculationMethod {
	case model.MethodCumulativeDecreasing, model.MethodDecreasing:
		actual = baseline - sum
	case model.MethodMaintenance, model.MethodPercentage:
		// Entries carry the level directly. Summing all periods mirrors the
		// behavior the portal has always had; see DESIGN.md for the snapshot
		// alternative.
		actual = sum
	default:
		// Unrecognized methods fall back to cumulative.
		actual = baseline + sum
	}

	percent := actual / *effectiveTarget * 100
	return AchievementResult{Actual: &actual, Percent: &percent}
}

type StatusBucket string

const (
	BucketExceeding StatusBucket = "exceeding_target"
	BucketExcellent StatusBucket = "excellent"
	BucketGood      StatusBucket = "good"
	BucketModerate  StatusBucket = "moderate"
	BucketWeak      StatusBucket = "weak"
	BucketVeryWeak  StatusBucket = "very_weak"
	BucketNoData    StatusBucket = "no_data"
)

// Bucketize maps an achievement percentage to its qualitative tier. The cut
// points are fixed: 100.0 is still excellent, anything above is exceeding;
// each lower bound is inclusive.
func Bucketize(percent *float64) StatusBucket {
	if percent == nil {
		return BucketNoData
	}
	p := *percent
	switch {
	case p > 100:
		return BucketExceeding
	case p >= 80:
		return BucketExcellent
	case p >= 60:
		return BucketGood
	case p >= 40:
		return BucketModerate
	case p >= 20:
		return BucketWeak
	default:
		return BucketVeryWeak
	}
}

// BucketStats accumulates bucket counts for rollup views. Add is O(1) and
// commutative, so callers may fold indicator lists in any order.
type BucketStats struct {
	Exceeding int `json:"exceedingTarget"`
	Excellent int `json:"excellent"`
	Good      int `json:"good"`
	Moderate  int `json:"moderate"`
	Weak      int `json:"weak"`
	VeryWeak  int `json:"veryWeak"`
	NoData    int `json:"noData"`

	Total      int     `json:"total"`
	WithData   int     `json:"withData"`
	PercentSum float64 `json:"-"`
}

func (s *BucketStats) Add(bucket StatusBucket, percent *float64) {
	s.Total++
	switch bucket {
	case BucketExceeding:
		s.Exceeding++
	case BucketExcellent:
		s.Excellent++
	case BucketGood:
		s.Good++
	case BucketModerate:
		s.Moderate++
	case BucketWeak:
		s.Weak++
	case BucketVeryWeak:
		s.VeryWeak++
	default:
		s.NoData++
	}
	if percent != nil {
		s.WithData++
		s.PercentSum += *percent
	}
}

// AveragePercent is the mean over indicators that had data, nil when none did.
func (s *BucketStats) AveragePercent() *float64 {
	if s.WithData == 0 {
		return nil
	}
	avg := s.PercentSum / float64(s.WithData)
	return &avg
}
