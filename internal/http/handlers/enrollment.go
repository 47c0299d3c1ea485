package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	types "github.com/yungbote/enrollment-eligibility/internal/domain/enrollment"
	"github.com/yungbote/enrollment-eligibility/internal/http/response"
	"github.com/yungbote/enrollment-eligibility/internal/platform/apierr"
	"github.com/yungbote/enrollment-eligibility/internal/platform/logger"
	"github.com/yungbote/enrollment-eligibility/internal/services"
)

type EnrollmentHandler struct {
	log *logger.Logger
	svc services.EnrollmentService
}

func NewEnrollmentHandler(baseLog *logger.Logger, svc services.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{log: baseLog.With("handler", "EnrollmentHandler"), svc: svc}
}

type userURI struct {
	UserID int64 `uri:"user_id" binding:"required,min=1"`
}

type trainingPlanEnrollmentURI struct {
	UserID       int64 `uri:"user_id" binding:"required,min=1"`
	EnrollmentID int64 `uri:"enrollment_id" binding:"required,min=1"`
}

type filterQuery struct {
	Filter string `form:"filter" binding:"max=64"`
}

// GET /api/users/:user_id/training-plan-enrollments/:enrollment_id/items
func (h *EnrollmentHandler) ListTrainingPlanItems(c *gin.Context) {
	var uri trainingPlanEnrollmentURI
	if err := c.ShouldBindUri(&uri); err != nil {
		h.badRequest(c, err)
		return
	}
	items, err := h.svc.GetTrainingPlanPathItems(c.Request.Context(), uri.UserID, uri.EnrollmentID)
	if err != nil {
		h.fail(c, "ListTrainingPlanItems", err)
		return
	}
	response.RespondOK(c, gin.H{"items": items})
}

// GET /api/users/:user_id/open-items?filter=all|exclude_curricula
func (h *EnrollmentHandler) ListOpenItems(c *gin.Context) {
	userID, filter, ok := h.bindUserAndFilter(c)
	if !ok {
		return
	}
	items, err := h.svc.GetOpenItems(c.Request.Context(), userID, filter)
	if err != nil {
		h.fail(c, "ListOpenItems", err)
		return
	}
	response.RespondOK(c, gin.H{"items": items})
}

// GET /api/users/:user_id/curricula
func (h *EnrollmentHandler) ListCurricula(c *gin.Context) {
	var uri userURI
	if err := c.ShouldBindUri(&uri); err != nil {
		h.badRequest(c, err)
		return
	}
	suites, err := h.svc.GetRequiredCurricula(c.Request.Context(), uri.UserID)
	if err != nil {
		h.fail(c, "ListCurricula", err)
		return
	}
	response.RespondOK(c, gin.H{"suites": suites})
}

// GET /api/users/:user_id/training-plans
func (h *EnrollmentHandler) ListTrainingPlans(c *gin.Context) {
	var uri userURI
	if err := c.ShouldBindUri(&uri); err != nil {
		h.badRequest(c, err)
		return
	}
	suites, err := h.svc.GetRequiredTrainingPlans(c.Request.Context(), uri.UserID)
	if err != nil {
		h.fail(c, "ListTrainingPlans", err)
		return
	}
	response.RespondOK(c, gin.H{"suites": suites})
}

// GET /api/users/:user_id/assignments?filter=all|exclude_curricula
func (h *EnrollmentHandler) GetAssignments(c *gin.Context) {
	userID, filter, ok := h.bindUserAndFilter(c)
	if !ok {
		return
	}
	ov, err := h.svc.GetAssignmentOverview(c.Request.Context(), userID, filter)
	if err != nil {
		h.fail(c, "GetAssignments", err)
		return
	}
	response.RespondOK(c, ov)
}

func (h *EnrollmentHandler) bindUserAndFilter(c *gin.Context) (int64, types.CourseEnrollmentFilter, bool) {
	var uri userURI
	if err := c.ShouldBindUri(&uri); err != nil {
		h.badRequest(c, err)
		return 0, types.FilterAll, false
	}
	var q filterQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.badRequest(c, err)
		return 0, types.FilterAll, false
	}
	filter, err := types.ParseCourseEnrollmentFilter(q.Filter)
	if err != nil {
		h.badRequest(c, err)
		return 0, types.FilterAll, false
	}
	return uri.UserID, filter, true
}

func (h *EnrollmentHandler) badRequest(c *gin.Context, err error) {
	response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
}

func (h *EnrollmentHandler) fail(c *gin.Context, op string, err error) {
	ae := apierr.FromError(err, "load_failed")
	if ae.Status >= http.StatusInternalServerError {
		h.log.Error("Enrollment request failed", "op", op, "code", ae.Code, "error", err)
	}
	_ = c.Error(err)
	response.RespondAPIError(c, ae)
}
