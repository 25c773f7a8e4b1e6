package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Farmacia-api/internal/application/analytics"
)

// DashboardHandler resumen del inventario (protegido).
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary godoc
// @Summary      Resumen del inventario
// @Description  Unidades, valor del inventario, lotes vencidos o críticos y medicamentos bajo el punto de reorden.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.InventoryDashboardDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory/dashboard [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	out, err := h.uc.GetSummary(c.UserContext(), time.Now())
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}
