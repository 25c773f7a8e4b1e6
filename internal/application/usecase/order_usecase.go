package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/application/inventory"
	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
)

var maxOrderQuantity = decimal.NewFromInt(1_000_000_000)

// OrderUseCase órdenes de compra: minoristas y proveedores las crean en pending y el administrador
// las aprueba (recibiendo el lote en el ledger) o las rechaza.
type OrderUseCase struct {
	stock        *inventory.StockUseCase
	txnRepo      repository.TransactionRepository
	medicineRepo repository.MedicineRepository
	now          func() time.Time
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(
	stock *inventory.StockUseCase,
	txnRepo repository.TransactionRepository,
	medicineRepo repository.MedicineRepository,
) *OrderUseCase {
	return &OrderUseCase{stock: stock, txnRepo: txnRepo, medicineRepo: medicineRepo, now: time.Now}
}

// ApproveOrderInput datos del lote con el que se recibe la orden.
type ApproveOrderInput struct {
	UserID       string
	BatchNumber  string
	ExpiryDate   time.Time
	ReceivedDate time.Time
}

// PlaceOrder registra una compra pendiente. El total es cantidad * costo unitario
// (el precio del catálogo si no se indica costo).
func (uc *OrderUseCase) PlaceOrder(ctx context.Context, userID string, in dto.PlaceOrderRequest) (*dto.TransactionResponse, error) {
	if !in.Quantity.IsInteger() || !in.Quantity.IsPositive() || in.Quantity.GreaterThan(maxOrderQuantity) {
		return nil, domain.ErrInvalidQuantity
	}
	med, err := uc.medicineRepo.GetByID(ctx, in.MedicineID)
	if err != nil {
		return nil, fmt.Errorf("obtener medicamento: %w", err)
	}
	if med == nil {
		return nil, domain.ErrNotFound
	}
	unitCost := med.UnitPrice
	if in.UnitCost != nil {
		if in.UnitCost.IsNegative() {
			return nil, domain.ErrInvalidCost
		}
		unitCost = *in.UnitCost
	}

	now := uc.now()
	id := uuid.New().String()
	ref := strings.TrimSpace(in.ReferenceNumber)
	if ref == "" {
		ref = "ORD-" + strings.ToUpper(strings.ReplaceAll(id, "-", "")[:8])
	}
	txn := &entity.Transaction{
		ID:              id,
		Type:            entity.TransactionTypePurchase,
		ReferenceNumber: ref,
		MedicineID:      med.ID,
		Quantity:        in.Quantity.IntPart(),
		TotalAmount:     in.Quantity.Mul(unitCost),
		Status:          entity.TransactionStatusPending,
		CreatedBy:       userID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.txnRepo.Create(ctx, txn); err != nil {
		return nil, err
	}
	return toTransactionResponse(txn), nil
}

// Approve recibe el lote de la orden y la marca completed en una sola unidad atómica.
// El costo unitario del lote es total / cantidad de la orden.
func (uc *OrderUseCase) Approve(ctx context.Context, id string, in ApproveOrderInput) (*dto.OrderApprovalResponse, error) {
	order, err := uc.getOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	unitCost := decimal.Zero
	if order.Quantity > 0 {
		unitCost = order.TotalAmount.Div(decimal.NewFromInt(order.Quantity))
	}
	batch, err := uc.stock.ReceiveOrder(ctx, order, inventory.ReceiveSupplyInput{
		UserID:       in.UserID,
		BatchNumber:  in.BatchNumber,
		UnitCost:     unitCost,
		ExpiryDate:   in.ExpiryDate,
		ReceivedDate: in.ReceivedDate,
	})
	if err != nil {
		return nil, err
	}

	order.Status = entity.TransactionStatusCompleted
	order.UpdatedAt = uc.now()
	order.Items = []entity.TransactionItem{{
		TransactionID: order.ID,
		BatchID:       batch.ID,
		Quantity:      batch.Quantity,
		UnitCost:      batch.UnitCost,
	}}
	return &dto.OrderApprovalResponse{
		Transaction: *toTransactionResponse(order),
		BatchID:     batch.ID,
		BatchNumber: batch.BatchNumber,
		Available:   uc.stock.AvailableQuantity(order.MedicineID),
	}, nil
}

// Reject cancela una orden pendiente sin tocar el stock.
func (uc *OrderUseCase) Reject(ctx context.Context, id string) (*dto.TransactionResponse, error) {
	order, err := uc.getOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if !entity.CanTransition(order.Status, entity.TransactionStatusCancelled) {
		return nil, domain.ErrInvalidTransition
	}
	err = uc.txnRepo.UpdateStatus(ctx, order.ID, entity.TransactionStatusPending, entity.TransactionStatusCancelled)
	if err != nil {
		return nil, err
	}
	order.Status = entity.TransactionStatusCancelled
	order.UpdatedAt = uc.now()
	return toTransactionResponse(order), nil
}

func (uc *OrderUseCase) getOrder(ctx context.Context, id string) (*entity.Transaction, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.ErrInvalidInput
	}
	txn, err := uc.txnRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if txn == nil {
		return nil, domain.ErrNotFound
	}
	if txn.Type != entity.TransactionTypePurchase {
		return nil, domain.ErrInvalidTransition
	}
	return txn, nil
}
