package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Farmacia-api/internal/application/usecase"
)

// TransactionHandler consulta de transacciones (admin).
type TransactionHandler struct {
	uc *usecase.TransactionUseCase
}

// NewTransactionHandler construye el handler.
func NewTransactionHandler(uc *usecase.TransactionUseCase) *TransactionHandler {
	return &TransactionHandler{uc: uc}
}

// List godoc
// @Summary      Listar transacciones
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        type    query  string  false  "purchase, sale, return, disposal"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200     {object}  dto.TransactionListResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/transactions [get]
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	page := pageFromQuery(c)
	out, err := h.uc.List(c.UserContext(), c.Query("type"), page.Limit, page.Offset)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener transacción con sus lotes
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la transacción"
// @Success      200  {object}  dto.TransactionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transactions/{id} [get]
func (h *TransactionHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}
