package repository

import (
	"context"

	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
)

// BatchRepository define el puerto de persistencia para lotes de inventario.
// Usado dentro de transacciones junto con TransactionRepository.
type BatchRepository interface {
	Create(ctx context.Context, batch *entity.Batch) error
	// DecrementQuantity descuenta qty solo si el lote aún tiene al menos qty unidades;
	// si la fila no cumple la condición devuelve domain.ErrConflict.
	DecrementQuantity(ctx context.Context, batchID string, qty int64) error
	GetByID(ctx context.Context, id string) (*entity.Batch, error)
	ListAll(ctx context.Context) ([]entity.Batch, error)
	ListByMedicine(ctx context.Context, medicineID string) ([]entity.Batch, error)
}
