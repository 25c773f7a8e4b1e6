package repository

import (
	"context"

	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
)

// TransactionRepository define el puerto de persistencia para transacciones y sus ítems por lote.
type TransactionRepository interface {
	Create(ctx context.Context, txn *entity.Transaction) error
	CreateItems(ctx context.Context, items []entity.TransactionItem) error
	GetByID(ctx context.Context, id string) (*entity.Transaction, error)
	List(ctx context.Context, txnType string, limit, offset int) ([]*entity.Transaction, error)
	// UpdateStatus cambia el estado solo si la transacción sigue en from; si no, domain.ErrConflict.
	UpdateStatus(ctx context.Context, id, from, to string) error
}
