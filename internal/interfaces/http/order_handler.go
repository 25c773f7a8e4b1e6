package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/application/usecase"
	"github.com/jhoicas/Farmacia-api/internal/domain"
)

// OrderHandler órdenes de compra (protegido).
type OrderHandler struct {
	uc *usecase.OrderUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *usecase.OrderUseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// Place godoc
// @Summary      Crear orden de compra
// @Description  Registra una compra en estado pending. Sin unit_cost se usa el precio del catálogo.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PlaceOrderRequest  true  "medicine_id, quantity"
// @Success      201   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Place(c *fiber.Ctx) error {
	var in dto.PlaceOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if verr := validateStruct(in); verr != nil {
		return c.Status(fiber.StatusBadRequest).JSON(verr)
	}
	out, err := h.uc.PlaceOrder(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Approve godoc
// @Summary      Aprobar orden de compra
// @Description  Recibe el lote de la orden en el inventario y la marca completed.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID de la orden"
// @Param        body  body  dto.ApproveOrderRequest  true  "expiry_date (AAAA-MM-DD)"
// @Success      200   {object}  dto.OrderApprovalResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/approve [post]
func (h *OrderHandler) Approve(c *fiber.Ctx) error {
	var in dto.ApproveOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if verr := validateStruct(in); verr != nil {
		return c.Status(fiber.StatusBadRequest).JSON(verr)
	}
	expiry, err := time.Parse(dateLayout, in.ExpiryDate)
	if err != nil {
		return handleError(c, domain.ErrInvalidInput)
	}
	var received time.Time
	if in.ReceivedDate != "" {
		if received, err = time.Parse(dateLayout, in.ReceivedDate); err != nil {
			return handleError(c, domain.ErrInvalidInput)
		}
	}
	out, err := h.uc.Approve(c.UserContext(), c.Params("id"), usecase.ApproveOrderInput{
		UserID:       GetUserID(c),
		BatchNumber:  in.BatchNumber,
		ExpiryDate:   expiry,
		ReceivedDate: received,
	})
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Reject godoc
// @Summary      Rechazar orden de compra
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.TransactionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/reject [post]
func (h *OrderHandler) Reject(c *fiber.Ctx) error {
	out, err := h.uc.Reject(c.UserContext(), c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}
