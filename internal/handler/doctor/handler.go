package doctor

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/careops/hospital-api/internal/handler"
	"github.com/careops/hospital-api/internal/model"
	"github.com/careops/hospital-api/internal/service/directory"
)

type Handler struct {
	service *directory.Service
}

func NewHandler(service *directory.Service) *Handler {
	return &Handler{service: service}
}

// ListDoctors returns the roster, optionally filtered to one department.
// The client uses this for its booking cascade; pairing enforcement still
// happens server-side at creation.
func (h *Handler) ListDoctors(c *gin.Context) {
	dept := c.Query("department")

	var (
		doctors []*model.Doctor
		err     error
	)
	if dept != "" {
		doctors, err = h.service.ListDoctors(c.Request.Context(), model.Department(dept))
	} else {
		doctors, err = h.service.ListAllDoctors(c.Request.Context())
	}
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(doctors))
}

func (h *Handler) ListDepartments(c *gin.Context) {
	c.JSON(http.StatusOK, handler.NewSuccessResponse(model.AllDepartments))
}
