package payment

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/careops/hospital-api/internal/handler"
	"github.com/careops/hospital-api/internal/middleware"
	"github.com/careops/hospital-api/internal/model"
	"github.com/careops/hospital-api/internal/service/payment"
)

type Handler struct {
	service *payment.Service
}

func NewHandler(service *payment.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) ListUnpaid(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewRedirectResponse("authentication required", middleware.RedirectLogin))
		return
	}

	orders, err := h.service.ListUnpaid(c.Request.Context(), actor)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(orders))
}

func (h *Handler) ListHistory(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewRedirectResponse("authentication required", middleware.RedirectLogin))
		return
	}

	orders, err := h.service.ListHistory(c.Request.Context(), actor)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(orders))
}

func (h *Handler) Settle(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewRedirectResponse("authentication required", middleware.RedirectLogin))
		return
	}

	var req model.SettleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	order, err := h.service.Settle(c.Request.Context(), actor, req.OrderID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(order))
}
