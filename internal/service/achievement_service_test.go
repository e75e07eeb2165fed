package service

import (
	"muniplan_backend/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }

func indicator(method model.CalculationMethod, baseline, target *float64) *model.Indicator {
	return &model.Indicator{
		Name:              "test indicator",
		CalculationMethod: method,
		BaselineValue:     baseline,
		TargetValue:       target,
	}
}

func entries(values ...float64) []model.DataEntry {
	out := make([]model.DataEntry, len(values))
	for i, v := range values {
		q := i + 1
		out[i] = model.DataEntry{
			Value:         v,
			PeriodYear:    2026,
			PeriodQuarter: &q,
			Status:        model.EntryApproved,
		}
	}
	return out
}

func TestComputeAchievement_CumulativeScenario(t *testing.T) {
	// baseline=100, target=200, Q1=20, Q2=30 -> actual=150, 75%, good
	ind := indicator(model.MethodCumulative, f(100), f(200))
	result := ComputeAchievement(ind, f(200), entries(20, 30))

	require.True(t, result.HasData())
	assert.Equal(t, 150.0, *result.Actual)
	assert.Equal(t, 75.0, *result.Percent)
	assert.Equal(t, BucketGood, Bucketize(result.Percent))
}

func TestComputeAchievement_Decreasing(t *testing.T) {
	ind := indicator(model.MethodCumulativeDecreasing, f(100), nil)
	result := ComputeAchievement(ind, f(50), entries(10, 20))

	require.True(t, result.HasData())
	assert.Equal(t, 70.0, *result.Actual)
	assert.Equal(t, 140.0, *result.Percent)

	alias := indicator(model.MethodDecreasing, f(100), nil)
	aliasResult := ComputeAchievement(alias, f(50), entries(10, 20))
	assert.Equal(t, *result.Actual, *aliasResult.Actual)
}

func TestComputeAchievement_MaintenanceIgnoresBaseline(t *testing.T) {
	ind := indicator(model.MethodMaintenance, f(1000), f(80))
	result := ComputeAchievement(ind, f(80), entries(40, 20))

	require.True(t, result.HasData())
	assert.Equal(t, 60.0, *result.Actual)
	assert.Equal(t, 75.0, *result.Percent)

	alias := indicator(model.MethodPercentage, f(1000), f(80))
	aliasResult := ComputeAchievement(alias, f(80), entries(40, 20))
	assert.Equal(t, *result.Actual, *aliasResult.Actual)
}

func TestComputeAchievement_UnknownMethodFallsBackToCumulative(t *testing.T) {
	ind := indicator(model.CalculationMethod("mystery"), f(10), nil)
	result := ComputeAchievement(ind, f(100), entries(5, 5))

	require.True(t, result.HasData())
	assert.Equal(t, 20.0, *result.Actual)
}

func TestComputeAchievement_NilBaselineIsZero(t *testing.T) {
	ind := indicator(model.MethodCumulative, nil, nil)
	result := ComputeAchievement(ind, f(100), entries(25, 25))

	require.True(t, result.HasData())
	assert.Equal(t, 50.0, *result.Actual)
	assert.Equal(t, 50.0, *result.Percent)
}

func TestComputeAchievement_NoData(t *testing.T) {
	ind := indicator(model.MethodCumulative, f(100), f(200))

	cases := map[string]AchievementResult{
		"no target":       ComputeAchievement(ind, nil, entries(20)),
		"zero target":     ComputeAchievement(ind, f(0), entries(20)),
		"negative target": ComputeAchievement(ind, f(-5), entries(20)),
		"no entries":      ComputeAchievement(ind, f(200), nil),
	}

	for name, result := range cases {
		assert.False(t, result.HasData(), name)
		assert.Nil(t, result.Actual, name)
		assert.Nil(t, result.Percent, name)
	}
}

func TestComputeAchievement_NoClamping(t *testing.T) {
	over := ComputeAchievement(indicator(model.MethodCumulative, f(0), nil), f(100), entries(150))
	require.True(t, over.HasData())
	assert.Equal(t, 150.0, *over.Percent)

	regressed := ComputeAchievement(indicator(model.MethodDecreasing, f(10), nil), f(100), entries(50))
	require.True(t, regressed.HasData())
	assert.Equal(t, -40.0, *regressed.Actual)
	assert.Equal(t, -40.0, *regressed.Percent)
}

func TestComputeAchievement_PureAndIdempotent(t *testing.T) {
	ind := indicator(model.MethodCumulative, f(100), f(200))
	input := entries(20, 30)
	snapshot := entries(20, 30)

	first := ComputeAchievement(ind, f(200), input)
	second := ComputeAchievement(ind, f(200), input)

	assert.Equal(t, *first.Actual, *second.Actual)
	assert.Equal(t, *first.Percent, *second.Percent)

	// Inputs must be treated as read-only views.
	for i := range input {
		assert.Equal(t, snapshot[i].Value, input[i].Value)
		assert.Equal(t, snapshot[i].Status, input[i].Status)
	}
	assert.Equal(t, 100.0, *ind.BaselineValue)
}

func TestEffectiveTarget_ResolutionOrder(t *testing.T) {
	ind := indicator(model.MethodCumulative, nil, f(200))

	yearly := &model.YearlyTarget{IndicatorID: 1, Year: 2026, TargetValue: 250}
	assert.Equal(t, 250.0, *EffectiveTarget(ind, yearly))

	assert.Equal(t, 200.0, *EffectiveTarget(ind, nil))

	bare := indicator(model.MethodCumulative, nil, nil)
	assert.Nil(t, EffectiveTarget(bare, nil))
}

func TestFilterEligible(t *testing.T) {
	all := []model.DataEntry{
		{Value: 1, Status: model.EntryDraft},
		{Value: 2, Status: model.EntryPendingDirector},
		{Value: 3, Status: model.EntryPendingAdmin},
		{Value: 4, Status: model.EntryApproved},
		{Value: 5, Status: model.EntryRejected},
	}

	eligible := FilterEligible(all)
	require.Len(t, eligible, 2)
	assert.Equal(t, 3.0, eligible[0].Value)
	assert.Equal(t, 4.0, eligible[1].Value)
}

func TestBucketize_Boundaries(t *testing.T) {
	cases := []struct {
		percent float64
		want    StatusBucket
	}{
		{100.001, BucketExceeding},
		{100.0, BucketExcellent},
		{99.999, BucketExcellent},
		{80.0, BucketExcellent},
		{79.999, BucketGood},
		{60.0, BucketGood},
		{59.999, BucketModerate},
		{40.0, BucketModerate},
		{39.999, BucketWeak},
		{20.0, BucketWeak},
		{19.999, BucketVeryWeak},
		{0.0, BucketVeryWeak},
		{-40.0, BucketVeryWeak},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Bucketize(&tc.percent), "percent=%v", tc.percent)
	}

	assert.Equal(t, BucketNoData, Bucketize(nil))
}

func TestBucketStats_AddIsCommutative(t *testing.T) {
	inputs := []struct {
		bucket  StatusBucket
		percent *float64
	}{
		{BucketExceeding, f(120)},
		{BucketExcellent, f(90)},
		{BucketWeak, f(25)},
		{BucketNoData, nil},
		{BucketVeryWeak, f(5)},
	}

	var forward, backward BucketStats
	for _, in := range inputs {
		forward.Add(in.bucket, in.percent)
	}
	for i := len(inputs) - 1; i >= 0; i-- {
		backward.Add(inputs[i].bucket, inputs[i].percent)
	}

	assert.Equal(t, forward, backward)
	assert.Equal(t, 5, forward.Total)
	assert.Equal(t, 4, forward.WithData)
	assert.Equal(t, 1, forward.NoData)

	require.NotNil(t, forward.AveragePercent())
	assert.Equal(t, 60.0, *forward.AveragePercent())
}

func TestBucketStats_AverageWithNoData(t *testing.T) {
	var stats BucketStats
	stats.Add(BucketNoData, nil)
	stats.Add(BucketNoData, nil)

	assert.Equal(t, 2, stats.Total)
	assert.Nil(t, stats.AveragePercent())
}
