package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/application/inventory"
	"github.com/jhoicas/Farmacia-api/internal/application/usecase"
	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
)

const dateLayout = "2006-01-02"

// StockHandler entradas, ventas y consultas de stock por lotes (protegido).
type StockHandler struct {
	stock     *inventory.StockUseCase
	medicines *usecase.MedicineUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(stock *inventory.StockUseCase, medicines *usecase.MedicineUseCase) *StockHandler {
	return &StockHandler{stock: stock, medicines: medicines}
}

// ReceiveSupply godoc
// @Summary      Registrar entrada de un lote
// @Description  Crea un lote nuevo del medicamento con su costo y vencimiento.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del medicamento"
// @Param        body  body  dto.ReceiveSupplyRequest  true  "quantity, unit_cost, expiry_date (AAAA-MM-DD)"
// @Success      201   {object}  dto.ReceiveSupplyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/medicines/{id}/batches [post]
func (h *StockHandler) ReceiveSupply(c *fiber.Ctx) error {
	var in dto.ReceiveSupplyRequest
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

	medicineID := c.Params("id")
	batch, err := h.stock.ReceiveSupply(c.UserContext(), inventory.ReceiveSupplyInput{
		MedicineID:   medicineID,
		UserID:       GetUserID(c),
		BatchNumber:  in.BatchNumber,
		Quantity:     in.Quantity,
		UnitCost:     in.UnitCost,
		ExpiryDate:   expiry,
		ReceivedDate: received,
	})
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ReceiveSupplyResponse{
		BatchID:     batch.ID,
		BatchNumber: batch.BatchNumber,
		Available:   h.stock.AvailableQuantity(medicineID),
	})
}

// Sell godoc
// @Summary      Registrar venta (FEFO)
// @Description  Descuenta la cantidad de los lotes que vencen primero. Todo o nada.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string           true  "ID del medicamento"
// @Param        body  body  dto.SellRequest  true  "quantity, reference_number"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/medicines/{id}/sales [post]
func (h *StockHandler) Sell(c *fiber.Ctx) error {
	var in dto.SellRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if verr := validateStruct(in); verr != nil {
		return c.Status(fiber.StatusBadRequest).JSON(verr)
	}
	medicineID := c.Params("id")
	res, err := h.stock.Sell(c.UserContext(), inventory.SellInput{
		MedicineID:      medicineID,
		UserID:          GetUserID(c),
		Quantity:        in.Quantity,
		ReferenceNumber: in.ReferenceNumber,
	})
	if err != nil {
		return handleError(c, err)
	}
	out := dto.SaleResponse{
		TransactionID: res.TransactionID,
		MedicineID:    medicineID,
		Quantity:      res.Plan.TotalQuantity(),
		TotalAmount:   res.TotalAmount,
		TotalCost:     res.TotalCost,
		Plan:          make([]dto.ConsumptionLineDTO, 0, len(res.Plan.Lines)),
	}
	for _, l := range res.Plan.Lines {
		out.Plan = append(out.Plan, dto.ConsumptionLineDTO{
			BatchID:     l.BatchID,
			BatchNumber: l.BatchNumber,
			Quantity:    l.Quantity,
			UnitCost:    l.UnitCost,
			Remaining:   l.Remaining,
		})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListBatches godoc
// @Summary      Lotes del medicamento en orden FEFO
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del medicamento"
// @Param        active  query  bool    false  "Solo lotes con unidades"
// @Success      200     {array}   dto.BatchResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/medicines/{id}/batches [get]
func (h *StockHandler) ListBatches(c *fiber.Ctx) error {
	medicineID := c.Params("id")
	if _, err := h.medicines.GetByID(c.UserContext(), medicineID); err != nil {
		return handleError(c, err)
	}
	now := time.Now()
	batches := h.stock.ListBatches(medicineID, c.QueryBool("active", false))
	out := make([]dto.BatchResponse, 0, len(batches))
	for _, b := range batches {
		out = append(out, toBatchResponse(b, now))
	}
	return c.JSON(out)
}

// Stock godoc
// @Summary      Stock agregado del medicamento
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del medicamento"
// @Success      200  {object}  dto.StockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/medicines/{id}/stock [get]
func (h *StockHandler) Stock(c *fiber.Ctx) error {
	medicineID := c.Params("id")
	if _, err := h.medicines.GetByID(c.UserContext(), medicineID); err != nil {
		return handleError(c, err)
	}
	view := h.stock.StockView(medicineID)
	out := dto.StockResponse{
		MedicineID:       medicineID,
		Available:        view.Available,
		ActiveBatches:    view.ActiveBatches,
		ExhaustedBatches: view.ExhaustedBatches,
		AverageUnitCost:  view.AverageUnitCost,
	}
	if view.NextExpiry != nil {
		s := view.NextExpiry.Format(dateLayout)
		out.NextExpiry = &s
	}
	return c.JSON(out)
}

func toBatchResponse(b entity.Batch, now time.Time) dto.BatchResponse {
	return dto.BatchResponse{
		ID:           b.ID,
		MedicineID:   b.ProductID,
		BatchNumber:  b.BatchNumber,
		Quantity:     b.Quantity,
		UnitCost:     b.UnitCost,
		ExpiryDate:   b.ExpiryDate.Format(dateLayout),
		ReceivedDate: b.ReceivedDate.Format(dateLayout),
		State:        b.State(),
		Expired:      b.IsExpired(now),
	}
}
