package service

import (
	"context"
	"encoding/json"
	"fmt"
	"muniplan_backend/internal/config"
	"muniplan_backend/internal/model"
	"muniplan_backend/internal/repository"
	"muniplan_backend/internal/util"
	"muniplan_backend/pkg/logger"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// ReportService aggregates achievement across indicators for dashboards and
// rollup views. Rollups are cached in Redis with a short TTL and invalidated
// whenever a workflow transition changes what is eligible.
type ReportService struct {
	IndicatorRepo *repository.IndicatorRepository
	GoalRepo      *repository.GoalRepository
	EntryRepo     *repository.DataEntryRepository
	Redis         *redis.Client
	CacheTTL      time.Duration
}

func NewReportService(
	indicatorRepo *repository.IndicatorRepository,
	goalRepo *repository.GoalRepository,
	entryRepo *repository.DataEntryRepository,
	rdb *redis.Client,
	cfg *config.Config,
) *ReportService {
	return &ReportService{
		IndicatorRepo: indicatorRepo,
		GoalRepo:      goalRepo,
		EntryRepo:     entryRepo,
		Redis:         rdb,
		CacheTTL:      time.Duration(cfg.Report.CacheTTLSeconds) * time.Second,
	}
}

// IndicatorAchievement is the per-indicator reporting row.
type IndicatorAchievement struct {
	IndicatorID     uint         `json:"indicatorId"`
	Name            string       `json:"name"`
	Unit            string       `json:"unit"`
	Year            int          `json:"year"`
	EffectiveTarget *float64     `json:"effectiveTarget"`
	Actual          *float64     `json:"actual"`
	Percent         *float64     `json:"percent"`
	Bucket          StatusBucket `json:"bucket"`
	EntryCount      int          `json:"entryCount"`
}

// RollupReport aggregates a set of indicators for one year.
type RollupReport struct {
	Year           int                    `json:"year"`
	Indicators     []IndicatorAchievement `json:"indicators"`
	Stats          BucketStats            `json:"stats"`
	AveragePercent *float64               `json:"averagePercent"`
}

func (s *ReportService) GetIndicatorAchievement(indicatorID uint, year int) (*IndicatorAchievement, error) {
	indicator, err := s.IndicatorRepo.FindByID(indicatorID)
	if err != nil {
		return nil, util.ErrIndicatorNotFound
	}
	row, err := s.achievementRow(indicator, year)
	if err != nil {
		return nil, err
	}
	return row, nil
}

func (s *ReportService) achievementRow(indicator *model.Indicator, year int) (*IndicatorAchievement, error) {
	yearly, err := s.IndicatorRepo.FindYearlyTarget(indicator.ID, year)
	if err != nil {
		return nil, err
	}
	entries, err := s.EntryRepo.FindEligibleByIndicatorYear(indicator.ID, year)
	if err != nil {
		return nil, err
	}

	target := EffectiveTarget(indicator, yearly)
	result := ComputeAchievement(indicator, target, entries)

	return &IndicatorAchievement{
		IndicatorID:     indicator.ID,
		Name:            indicator.Name,
		Unit:            indicator.Unit,
		Year:            year,
		EffectiveTarget: target,
		Actual:          result.Actual,
		Percent:         result.Percent,
		Bucket:          Bucketize(result.Percent),
		EntryCount:      len(entries),
	}, nil
}

func (s *ReportService) rollup(indicators []model.Indicator, year int) (*RollupReport, error) {
	report := &RollupReport{Year: year, Indicators: make([]IndicatorAchievement, 0, len(indicators))}

	for i := range indicators {
		row, err := s.achievementRow(&indicators[i], year)
		if err != nil {
			return nil, err
		}
		report.Indicators = append(report.Indicators, *row)
		report.Stats.Add(row.Bucket, row.Percent)
	}

	report.AveragePercent = report.Stats.AveragePercent()
	return report, nil
}

// GetGoalRollup aggregates all indicators of one goal.
func (s *ReportService) GetGoalRollup(goalID uint, year int) (*RollupReport, error) {
	if _, err := s.GoalRepo.FindByID(goalID); err != nil {
		return nil, util.ErrGoalNotFound
	}

	key := fmt.Sprintf("report:goal:%d:%d", goalID, year)
	if cached := s.fromCache(key); cached != nil {
		return cached, nil
	}

	indicators, err := s.IndicatorRepo.FindByGoalID(goalID)
	if err != nil {
		return nil, err
	}

	report, err := s.rollup(indicators, year)
	if err != nil {
		return nil, err
	}
	s.toCache(key, report)
	return report, nil
}

// GetDepartmentRollup aggregates every indicator under a department's goals.
func (s *ReportService) GetDepartmentRollup(departmentID uint, year int) (*RollupReport, error) {
	key := fmt.Sprintf("report:department:%d:%d", departmentID, year)
	if cached := s.fromCache(key); cached != nil {
		return cached, nil
	}

	goals, err := s.GoalRepo.FindByDepartment(departmentID)
	if err != nil {
		return nil, err
	}

	var indicators []model.Indicator
	for _, g := range goals {
		rows, err := s.IndicatorRepo.FindByGoalID(g.ID)
		if err != nil {
			return nil, err
		}
		indicators = append(indicators, rows...)
	}

	report, err := s.rollup(indicators, year)
	if err != nil {
		return nil, err
	}
	s.toCache(key, report)
	return report, nil
}

// GetDashboardSummary aggregates the whole plan for one year.
func (s *ReportService) GetDashboardSummary(year int) (*RollupReport, error) {
	key := fmt.Sprintf("report:dashboard:%d", year)
	if cached := s.fromCache(key); cached != nil {
		return cached, nil
	}

	indicators, err := s.IndicatorRepo.List()
	if err != nil {
		return nil, err
	}

	report, err := s.rollup(indicators, year)
	if err != nil {
		return nil, err
	}
	s.toCache(key, report)
	return report, nil
}

// InvalidateForIndicator drops every cached rollup the indicator feeds:
// its goal, the goal's department, and the dashboard.
func (s *ReportService) InvalidateForIndicator(indicatorID uint) {
	if s.Redis == nil {
		return
	}

	ctx := context.Background()
	patterns := []string{"report:dashboard:*"}

	if indicator, err := s.IndicatorRepo.FindByID(indicatorID); err == nil {
		patterns = append(patterns, fmt.Sprintf("report:goal:%d:*", indicator.GoalID))
		if goal, err := s.GoalRepo.FindByID(indicator.GoalID); err == nil {
			patterns = append(patterns, fmt.Sprintf("report:department:%d:*", goal.DepartmentID))
		}
	}

	for _, pattern := range patterns {
		keys, err := s.Redis.Keys(ctx, pattern).Result()
		if err != nil || len(keys) == 0 {
			continue
		}
		if err := s.Redis.Del(ctx, keys...).Err(); err != nil {
			logger.Log.Warn("report cache invalidation failed", zap.String("pattern", pattern), zap.Error(err))
		}
	}
}

func (s *ReportService) fromCache(key string) *RollupReport {
	if s.Redis == nil {
		return nil
	}
	raw, err := s.Redis.Get(context.Background(), key).Bytes()
	if err != nil {
		return nil
	}
	var report RollupReport
	if err := json.Unmarshal(raw, &report); err != nil {
		return nil
	}
	return &report
}

func (s *ReportService) toCache(key string, report *RollupReport) {
	if s.Redis == nil {
		return
	}
	raw, err := json.Marshal(report)
	if err != nil {
		return
	}
	if err := s.Redis.Set(context.Background(), key, raw, s.CacheTTL).Err(); err != nil {
		logger.Log.Warn("report cache write failed", zap.String("key", key), zap.Error(err))
	}
}
