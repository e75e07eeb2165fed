package controller

import (
	"errors"
	"muniplan_backend/internal/model"
	"muniplan_backend/internal/service"
	"muniplan_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type EntryController struct {
	EntryService *service.EntryService
}

func NewEntryController(entryService *service.EntryService) *EntryController {
	return &EntryController{EntryService: entryService}
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

// @Summary Submit a data entry
// @Description Submit one measurement for an indicator period. Admins enter
// @Description the admin queue directly; everyone else waits for director review.
// @Tags entries
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param entry body service.EntryRequest true "entry"
// @Success 201 {object} util.Response
// @Router /api/entries [post]
func (c *EntryController) CreateEntry(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.EntryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	entry, err := c.EntryService.CreateEntry(claims.UserID, claims.Role, req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrIndicatorNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrInvalidInput):
			util.BadRequest(ctx, "period must set at most one of quarter/month, in range")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, entry)
}

// @Summary Review queue
// @Description Pending entries for the caller's role; directors default to
// @Description pending_director, admins to pending_admin.
// @Tags entries
// @Produce json
// @Security ApiKeyAuth
// @Param status query string false "explicit status filter"
// @Param page query int false "page" default(1)
// @Param limit query int false "page size" default(20)
// @Success 200 {object} util.Response
// @Router /api/entries/queue [get]
func (c *EntryController) Queue(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	status := model.EntryStatus(ctx.Query("status"))

	entries, total, err := c.EntryService.Queue(claims.Role, status, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  entries,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// @Summary List entries for an indicator year
// @Tags entries
// @Produce json
// @Security ApiKeyAuth
// @Param indicatorId query int true "indicator id"
// @Param year query int true "period year"
// @Success 200 {object} util.Response
// @Router /api/entries [get]
func (c *EntryController) ListByIndicator(ctx *gin.Context) {
	indicatorID, err := strconv.ParseUint(ctx.Query("indicatorId"), 10, 64)
	if err != nil || indicatorID == 0 {
		util.BadRequest(ctx, "indicatorId is required")
		return
	}
	year, err := strconv.Atoi(ctx.Query("year"))
	if err != nil || year <= 0 {
		util.BadRequest(ctx, "year is required")
		return
	}

	entries, err := c.EntryService.ListByIndicator(uint(indicatorID), year)
	if err != nil {
		if errors.Is(err, util.ErrIndicatorNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, entries)
}

// @Summary Submit a draft entry
// @Description Moves the caller's own draft into the review pipeline.
// @Tags entries
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "entry id"
// @Success 200 {object} util.Response
// @Router /api/entries/{id}/submit [post]
func (c *EntryController) Submit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	entry, err := c.EntryService.Submit(ctx.Param("id"), claims.UserID, claims.Role)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrEntryNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrUnauthorizedTransition):
			util.Forbidden(ctx, "only the creator may submit a draft")
		case errors.Is(err, util.ErrEntryModified):
			util.Conflict(ctx, "entry changed, reload and retry")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, entry)
}

// @Summary Approve an entry
// @Description Directors move pending_director to pending_admin; admins move
// @Description pending_admin to approved. Anything else is refused.
// @Tags entries
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "entry id"
// @Success 200 {object} util.Response
// @Router /api/entries/{id}/approve [post]
func (c *EntryController) Approve(ctx *gin.Context) {
	c.transition(ctx, model.ActionApprove, "")
}

// @Summary Reject an entry
// @Description Rejection needs a non-empty reason and is terminal.
// @Tags entries
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "entry id"
// @Param body body object true "rejection reason"
// @Success 200 {object} util.Response
// @Router /api/entries/{id}/reject [post]
func (c *EntryController) Reject(ctx *gin.Context) {
	var req rejectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	c.transition(ctx, model.ActionReject, req.Reason)
}

func (c *EntryController) transition(ctx *gin.Context, action model.EntryAction, reason string) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	entry, err := c.EntryService.Transition(ctx.Param("id"), claims.UserID, claims.Role, action, reason)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrEntryNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrUnauthorizedTransition):
			util.Forbidden(ctx, err.Error())
		case errors.Is(err, util.ErrInvalidInput):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrEntryModified):
			util.Conflict(ctx, "entry was decided by someone else, reload and retry")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, entry)
}
