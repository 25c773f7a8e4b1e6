package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/inventory"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
)

// maxQuantity tope por operación; evita desbordar int64 al convertir desde decimal.
var maxQuantity = decimal.NewFromInt(1_000_000_000)

// StockUseCase orquesta el libro de stock en memoria con su persistencia.
// Cada recepción o venta es una unidad atómica: el ledger bloquea el producto, la transacción SQL
// se ejecuta dentro de ese bloqueo y el ledger solo aplica el cambio si la transacción hizo Commit.
type StockUseCase struct {
	ledger       *inventory.StockLedger
	txRunner     TxRunner
	medicineRepo repository.MedicineRepository
	notifier     StockNotifier
	now          func() time.Time
}

// NewStockUseCase construye el caso de uso. notifier puede ser nil.
func NewStockUseCase(
	ledger *inventory.StockLedger,
	txRunner TxRunner,
	medicineRepo repository.MedicineRepository,
	notifier StockNotifier,
) *StockUseCase {
	return &StockUseCase{
		ledger:       ledger,
		txRunner:     txRunner,
		medicineRepo: medicineRepo,
		notifier:     notifier,
		now:          time.Now,
	}
}

// ReceiveSupplyInput entrada de una recepción de mercancía.
type ReceiveSupplyInput struct {
	MedicineID   string
	UserID       string
	BatchNumber  string
	Quantity     decimal.Decimal
	UnitCost     decimal.Decimal
	ExpiryDate   time.Time
	ReceivedDate time.Time // opcional
}

// SellInput entrada de una venta.
type SellInput struct {
	MedicineID      string
	UserID          string
	Quantity        decimal.Decimal
	ReferenceNumber string
}

// SaleResult resultado de una venta confirmada.
type SaleResult struct {
	TransactionID string
	Plan          *entity.ConsumptionPlan
	TotalAmount   decimal.Decimal // cantidad * precio de venta
	TotalCost     decimal.Decimal // Σ cantidad * costo del lote
}

// ReceiveSupply registra un lote nuevo: lo persiste junto con una transacción de compra y,
// tras el Commit, lo incorpora al ledger y publica el evento StockReceived.
func (uc *StockUseCase) ReceiveSupply(ctx context.Context, in ReceiveSupplyInput) (*entity.Batch, error) {
	return uc.receive(ctx, in, nil)
}

// ReceiveOrder recibe el lote de una orden de compra pendiente. La orden pasa a completed en la misma
// transacción SQL que crea el lote; si otra petición ya la cerró se devuelve ErrConflict y el ledger no cambia.
// La cantidad y el medicamento salen de la orden; in aporta lote, costo y fechas.
func (uc *StockUseCase) ReceiveOrder(ctx context.Context, order *entity.Transaction, in ReceiveSupplyInput) (*entity.Batch, error) {
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if order.Type != entity.TransactionTypePurchase || !entity.CanTransition(order.Status, entity.TransactionStatusCompleted) {
		return nil, domain.ErrInvalidTransition
	}
	in.MedicineID = order.MedicineID
	in.Quantity = decimal.NewFromInt(order.Quantity)
	return uc.receive(ctx, in, order)
}

func (uc *StockUseCase) receive(ctx context.Context, in ReceiveSupplyInput, order *entity.Transaction) (*entity.Batch, error) {
	qty, err := wholeQuantity(in.Quantity)
	if err != nil {
		return nil, err
	}
	if in.UnitCost.IsNegative() {
		return nil, domain.ErrInvalidCost
	}
	if in.ExpiryDate.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	if _, err := uc.getMedicine(ctx, in.MedicineID); err != nil {
		return nil, err
	}

	now := uc.now()
	batch, err := uc.ledger.ReceiveSupplyAndCommit(inventory.SupplyInput{
		ProductID:    in.MedicineID,
		BatchNumber:  in.BatchNumber,
		Quantity:     qty,
		UnitCost:     in.UnitCost,
		ExpiryDate:   in.ExpiryDate,
		ReceivedDate: in.ReceivedDate,
	}, func(b entity.Batch) error {
		return uc.txRunner.Run(ctx, func(batchRepo repository.BatchRepository, txnRepo repository.TransactionRepository) error {
			if err := batchRepo.Create(ctx, &b); err != nil {
				return err
			}
			var txnID string
			if order != nil {
				txnID = order.ID
				err := txnRepo.UpdateStatus(ctx, order.ID, entity.TransactionStatusPending, entity.TransactionStatusCompleted)
				if err != nil {
					return err
				}
			} else {
				txn := &entity.Transaction{
					ID:              uuid.New().String(),
					Type:            entity.TransactionTypePurchase,
					ReferenceNumber: b.BatchNumber,
					MedicineID:      b.ProductID,
					Quantity:        b.Quantity,
					TotalAmount:     decimal.NewFromInt(b.Quantity).Mul(b.UnitCost),
					Status:          entity.TransactionStatusCompleted,
					CreatedBy:       in.UserID,
					CreatedAt:       now,
					UpdatedAt:       now,
				}
				if err := txnRepo.Create(ctx, txn); err != nil {
					return err
				}
				txnID = txn.ID
			}
			return txnRepo.CreateItems(ctx, []entity.TransactionItem{{
				TransactionID: txnID,
				BatchID:       b.ID,
				Quantity:      b.Quantity,
				UnitCost:      b.UnitCost,
			}})
		})
	})
	if err != nil {
		return nil, err
	}

	if uc.notifier != nil {
		ev := StockReceived{
			MedicineID:  batch.ProductID,
			BatchID:     batch.ID,
			BatchNumber: batch.BatchNumber,
			Quantity:    batch.Quantity,
			ExpiryDate:  batch.ExpiryDate,
			Available:   uc.ledger.AvailableQuantity(batch.ProductID),
			ReceivedBy:  in.UserID,
		}
		if err := uc.notifier.PublishStockReceived(ctx, ev); err != nil {
			log.Warn().Err(err).
				Str("medicine_id", ev.MedicineID).
				Str("batch_id", ev.BatchID).
				Msg("lote registrado sin notificación")
		}
	}
	return batch, nil
}

// Sell descuenta la cantidad en orden FEFO. Los descuentos por lote, la transacción de venta y sus ítems
// se escriben en una sola transacción SQL; si cualquiera falla no se toca ni la BD ni el ledger.
func (uc *StockUseCase) Sell(ctx context.Context, in SellInput) (*SaleResult, error) {
	qty, err := wholeQuantity(in.Quantity)
	if err != nil {
		return nil, err
	}
	med, err := uc.getMedicine(ctx, in.MedicineID)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	txnID := uuid.New().String()
	ref := strings.TrimSpace(in.ReferenceNumber)
	if ref == "" {
		ref = "VTA-" + strings.ToUpper(strings.ReplaceAll(txnID, "-", "")[:8])
	}
	total := decimal.NewFromInt(qty).Mul(med.UnitPrice)

	plan, err := uc.ledger.ConsumeAndCommit(in.MedicineID, qty, func(plan *entity.ConsumptionPlan) error {
		return uc.txRunner.Run(ctx, func(batchRepo repository.BatchRepository, txnRepo repository.TransactionRepository) error {
			for _, line := range plan.Lines {
				if err := batchRepo.DecrementQuantity(ctx, line.BatchID, line.Quantity); err != nil {
					return err
				}
			}
			txn := &entity.Transaction{
				ID:              txnID,
				Type:            entity.TransactionTypeSale,
				ReferenceNumber: ref,
				MedicineID:      in.MedicineID,
				Quantity:        qty,
				TotalAmount:     total,
				Status:          entity.TransactionStatusCompleted,
				CreatedBy:       in.UserID,
				CreatedAt:       now,
				UpdatedAt:       now,
			}
			if err := txnRepo.Create(ctx, txn); err != nil {
				return err
			}
			items := make([]entity.TransactionItem, 0, len(plan.Lines))
			for _, line := range plan.Lines {
				items = append(items, entity.TransactionItem{
					TransactionID: txnID,
					BatchID:       line.BatchID,
					Quantity:      line.Quantity,
					UnitCost:      line.UnitCost,
				})
			}
			return txnRepo.CreateItems(ctx, items)
		})
	})
	if err != nil {
		return nil, err
	}
	return &SaleResult{
		TransactionID: txnID,
		Plan:          plan,
		TotalAmount:   total,
		TotalCost:     plan.TotalCost(),
	}, nil
}

// AvailableQuantity unidades disponibles del medicamento (0 si nunca tuvo lotes).
func (uc *StockUseCase) AvailableQuantity(medicineID string) int64 {
	return uc.ledger.AvailableQuantity(medicineID)
}

// ListBatches lotes del medicamento en orden FEFO; onlyActive filtra los agotados.
func (uc *StockUseCase) ListBatches(medicineID string, onlyActive bool) []entity.Batch {
	batches := uc.ledger.ListBatches(medicineID)
	if !onlyActive {
		return batches
	}
	active := batches[:0]
	for _, b := range batches {
		if b.IsActive() {
			active = append(active, b)
		}
	}
	return active
}

// StockView agregado de stock del medicamento.
func (uc *StockUseCase) StockView(medicineID string) entity.ProductStockView {
	return uc.ledger.StockView(medicineID)
}

func (uc *StockUseCase) getMedicine(ctx context.Context, id string) (*entity.Medicine, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.ErrInvalidInput
	}
	med, err := uc.medicineRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener medicamento: %w", err)
	}
	if med == nil {
		return nil, domain.ErrNotFound
	}
	return med, nil
}

// wholeQuantity exige un entero positivo.
func wholeQuantity(q decimal.Decimal) (int64, error) {
	if !q.IsInteger() || !q.IsPositive() || q.GreaterThan(maxQuantity) {
		return 0, domain.ErrInvalidQuantity
	}
	return q.IntPart(), nil
}
