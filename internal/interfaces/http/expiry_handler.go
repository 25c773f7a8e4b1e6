package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Farmacia-api/internal/application/inventory"
)

// ExpiryHandler reporte de vencimientos (protegido).
type ExpiryHandler struct {
	uc *inventory.ExpiryUseCase
}

// NewExpiryHandler construye el handler.
func NewExpiryHandler(uc *inventory.ExpiryUseCase) *ExpiryHandler {
	return &ExpiryHandler{uc: uc}
}

// Report godoc
// @Summary      Reporte de vencimientos
// @Description  Lotes activos clasificados en expired, critical, warning y safe, en orden FEFO.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ExpiryReportDTO
// @Router       /api/inventory/expiry-report [get]
func (h *ExpiryHandler) Report(c *fiber.Ctx) error {
	out, err := h.uc.Report(c.UserContext(), time.Now())
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// ReportPDF godoc
// @Summary      Reporte de vencimientos en PDF
// @Tags         inventory
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}    binary
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory/expiry-report/pdf [get]
func (h *ExpiryHandler) ReportPDF(c *fiber.Ctx) error {
	data, filename, err := h.uc.ReportPDF(c.UserContext(), time.Now())
	if err != nil {
		return handleError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}
