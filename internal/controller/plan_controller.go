package controller

import (
	"errors"
	"muniplan_backend/internal/service"
	"muniplan_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type PlanController struct {
	PlanService *service.PlanService
}

func NewPlanController(planService *service.PlanService) *PlanController {
	return &PlanController{PlanService: planService}
}

func parseID(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil || id == 0 {
		util.BadRequest(ctx, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// @Summary List departments
// @Tags plan
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/departments [get]
func (c *PlanController) ListDepartments(ctx *gin.Context) {
	depts, err := c.PlanService.ListDepartments()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, depts)
}

// @Summary List strategic goals
// @Tags plan
// @Produce json
// @Security ApiKeyAuth
// @Param departmentId query int false "filter by department"
// @Success 200 {object} util.Response
// @Router /api/goals [get]
func (c *PlanController) ListGoals(ctx *gin.Context) {
	departmentID, _ := strconv.ParseUint(ctx.Query("departmentId"), 10, 64)
	goals, err := c.PlanService.ListGoals(uint(departmentID))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, goals)
}

// @Summary Create a strategic goal
// @Tags plan
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param goal body service.GoalRequest true "goal"
// @Success 201 {object} util.Response
// @Router /api/goals [post]
func (c *PlanController) CreateGoal(ctx *gin.Context) {
	var req service.GoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	goal, err := c.PlanService.CreateGoal(req)
	if err != nil {
		if errors.Is(err, util.ErrInvalidInput) {
			util.BadRequest(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, goal)
}

// @Summary Update a strategic goal
// @Tags plan
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "goal id"
// @Param goal body service.GoalRequest true "goal"
// @Success 200 {object} util.Response
// @Router /api/goals/{id} [put]
func (c *PlanController) UpdateGoal(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var req service.GoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	goal, err := c.PlanService.UpdateGoal(id, req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrGoalNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrInvalidInput):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, goal)
}

// @Summary Delete a strategic goal
// @Description Refused while indicators still reference the goal
// @Tags plan
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "goal id"
// @Success 200 {object} util.Response
// @Router /api/goals/{id} [delete]
func (c *PlanController) DeleteGoal(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	if err := c.PlanService.DeleteGoal(id); err != nil {
		switch {
		case errors.Is(err, util.ErrGoalNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrGoalInUse):
			util.Conflict(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// @Summary List indicators
// @Tags plan
// @Produce json
// @Security ApiKeyAuth
// @Param goalId query int false "filter by goal"
// @Success 200 {object} util.Response
// @Router /api/indicators [get]
func (c *PlanController) ListIndicators(ctx *gin.Context) {
	goalID, _ := strconv.ParseUint(ctx.Query("goalId"), 10, 64)
	indicators, err := c.PlanService.ListIndicators(uint(goalID))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, indicators)
}

// @Summary Create an indicator
// @Tags plan
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param indicator body service.IndicatorRequest true "indicator"
// @Success 201 {object} util.Response
// @Router /api/indicators [post]
func (c *PlanController) CreateIndicator(ctx *gin.Context) {
	var req service.IndicatorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	indicator, err := c.PlanService.CreateIndicator(req)
	if err != nil {
		if errors.Is(err, util.ErrGoalNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, indicator)
}

// @Summary Update an indicator
// @Tags plan
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "indicator id"
// @Param indicator body service.IndicatorRequest true "indicator"
// @Success 200 {object} util.Response
// @Router /api/indicators/{id} [put]
func (c *PlanController) UpdateIndicator(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var req service.IndicatorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	indicator, err := c.PlanService.UpdateIndicator(id, req)
	if err != nil {
		if errors.Is(err, util.ErrIndicatorNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, indicator)
}

// @Summary Delete an indicator
// @Description Refused while data entries still reference the indicator
// @Tags plan
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "indicator id"
// @Success 200 {object} util.Response
// @Router /api/indicators/{id} [delete]
func (c *PlanController) DeleteIndicator(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	if err := c.PlanService.DeleteIndicator(id); err != nil {
		switch {
		case errors.Is(err, util.ErrIndicatorNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrIndicatorInUse):
			util.Conflict(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// @Summary Set a yearly target override
// @Tags plan
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "indicator id"
// @Param target body service.YearlyTargetRequest true "target"
// @Success 200 {object} util.Response
// @Router /api/indicators/{id}/targets [put]
func (c *PlanController) SetYearlyTarget(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var req service.YearlyTargetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	target, err := c.PlanService.SetYearlyTarget(id, req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrIndicatorNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrInvalidInput):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, target)
}

// @Summary List yearly target overrides
// @Tags plan
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "indicator id"
// @Success 200 {object} util.Response
// @Router /api/indicators/{id}/targets [get]
func (c *PlanController) ListYearlyTargets(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	targets, err := c.PlanService.ListYearlyTargets(id)
	if err != nil {
		if errors.Is(err, util.ErrIndicatorNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, targets)
}
