package plans

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"career-advisor/internal/qr"
	"career-advisor/internal/shared/server/middleware"
	"career-advisor/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches plan routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/plans", h.generate)
	rg.GET("/plans", h.list)
	rg.GET("/plans/:id", h.get)
	rg.GET("/plans/:id/qr.png", h.coursesQR)
}

func (h *Handler) generate(c *gin.Context) {
	sessionID := middleware.SessionIDFromContext(c)

	plan, err := h.Svc.Generate(c.Request.Context(), sessionID)
	if err != nil {
		var blocked *BlockedError
		switch {
		case errors.As(err, &blocked):
			respond.Error(c, http.StatusUnprocessableEntity, "plan_blocked",
				"complete your profile and skills before generating a plan",
				gin.H{"missing": blocked.Missing})
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to generate plan", nil)
		}
		return
	}

	c.Set("planId", plan.ID)
	respond.Created(c, toResponse(plan))
}

func (h *Handler) list(c *gin.Context) {
	sessionID := middleware.SessionIDFromContext(c)

	limit := 20
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if limit < 0 {
		limit = 0
	}
	if limit > 50 {
		limit = 50
	}

	planList, err := h.Svc.List(c.Request.Context(), sessionID, limit)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list plans", nil)
		return
	}

	resp := make([]PlanSummary, 0, len(planList))
	for _, plan := range planList {
		resp = append(resp, toSummary(plan))
	}
	respond.OK(c, resp)
}

func (h *Handler) get(c *gin.Context) {
	sessionID := middleware.SessionIDFromContext(c)
	planID := c.Param("id")

	plan, err := h.Svc.Get(c.Request.Context(), sessionID, planID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "plan not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch plan", nil)
		}
		return
	}

	respond.OK(c, toResponse(plan))
}

func (h *Handler) coursesQR(c *gin.Context) {
	sessionID := middleware.SessionIDFromContext(c)
	planID := c.Param("id")

	image, err := h.Svc.CoursesQR(c.Request.Context(), sessionID, planID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "plan not found", nil)
		case errors.Is(err, ErrNoCourses):
			respond.Error(c, http.StatusNotFound, "no_courses", "plan has no course links", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to render QR image", nil)
		}
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+qr.FileName+`"`)
	c.Data(http.StatusOK, qr.ContentType, image)
}
