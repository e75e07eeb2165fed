package controller

import (
	"errors"
	"muniplan_backend/internal/service"
	"muniplan_backend/internal/util"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type ReportController struct {
	ReportService *service.ReportService
}

func NewReportController(reportService *service.ReportService) *ReportController {
	return &ReportController{ReportService: reportService}
}

func reportYear(ctx *gin.Context) int {
	year, err := strconv.Atoi(ctx.Query("year"))
	if err != nil || year <= 0 {
		return time.Now().Year()
	}
	return year
}

// @Summary Indicator achievement
// @Description Achievement percent and bucket for one indicator year. Percent
// @Description is null when the year has no usable target or no eligible entries.
// @Tags reports
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "indicator id"
// @Param year query int false "period year, defaults to current"
// @Success 200 {object} util.Response
// @Router /api/reports/indicators/{id} [get]
func (c *ReportController) IndicatorAchievement(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	report, err := c.ReportService.GetIndicatorAchievement(id, reportYear(ctx))
	if err != nil {
		if errors.Is(err, util.ErrIndicatorNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, report)
}

// @Summary Goal rollup
// @Tags reports
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "goal id"
// @Param year query int false "period year, defaults to current"
// @Success 200 {object} util.Response
// @Router /api/reports/goals/{id} [get]
func (c *ReportController) GoalRollup(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	report, err := c.ReportService.GetGoalRollup(id, reportYear(ctx))
	if err != nil {
		if errors.Is(err, util.ErrGoalNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, report)
}

// @Summary Department rollup
// @Tags reports
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "department id"
// @Param year query int false "period year, defaults to current"
// @Success 200 {object} util.Response
// @Router /api/reports/departments/{id} [get]
func (c *ReportController) DepartmentRollup(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	report, err := c.ReportService.GetDepartmentRollup(id, reportYear(ctx))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, report)
}

// @Summary Plan-wide dashboard summary
// @Tags reports
// @Produce json
// @Security ApiKeyAuth
// @Param year query int false "period year, defaults to current"
// @Success 200 {object} util.Response
// @Router /api/reports/dashboard [get]
func (c *ReportController) DashboardSummary(ctx *gin.Context) {
	report, err := c.ReportService.GetDashboardSummary(reportYear(ctx))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, report)
}
