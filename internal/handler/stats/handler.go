package stats

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/careops/hospital-api/internal/handler"
	"github.com/careops/hospital-api/internal/middleware"
	"github.com/careops/hospital-api/internal/service/stats"
)

type Handler struct {
	service *stats.Service
}

func NewHandler(service *stats.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Overview(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewRedirectResponse("authentication required", middleware.RedirectLogin))
		return
	}

	overview, err := h.service.ComputeStats(c.Request.Context(), actor)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(overview))
}

func (h *Handler) FinanceStats(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewRedirectResponse("authentication required", middleware.RedirectLogin))
		return
	}

	fs, err := h.service.FinanceStats(c.Request.Context(), actor)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(fs))
}

func (h *Handler) DeptRevenue(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewRedirectResponse("authentication required", middleware.RedirectLogin))
		return
	}

	rows, err := h.service.DeptRevenue(c.Request.Context(), actor)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(rows))
}
