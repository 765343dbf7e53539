package medicine

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/careops/hospital-api/internal/handler"
	"github.com/careops/hospital-api/internal/repository"
)

type Handler struct {
	repo repository.MedicineRepository
}

func NewHandler(repo repository.MedicineRepository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) ListMedicines(c *gin.Context) {
	medicines, err := h.repo.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(medicines))
}
