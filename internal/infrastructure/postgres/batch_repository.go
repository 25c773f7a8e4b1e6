package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
)

var _ repository.BatchRepository = (*BatchRepo)(nil)

const batchColumns = `id, medicine_id, batch_number, quantity, unit_cost, expiry_date, received_date, created_at`

// BatchRepo implementación de BatchRepository sobre PostgreSQL (usable con pool o tx).
type BatchRepo struct {
	q Querier
}

// NewBatchRepository construye el adaptador de lotes. Pasar pool o tx (Querier).
func NewBatchRepository(q Querier) *BatchRepo {
	return &BatchRepo{q: q}
}

// Create persiste un lote nuevo.
func (r *BatchRepo) Create(ctx context.Context, b *entity.Batch) error {
	query := `
		INSERT INTO inventory_batches (` + batchColumns + `, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)`
	_, err := r.q.Exec(ctx, query,
		b.ID, b.ProductID, b.BatchNumber, b.Quantity, b.UnitCost, b.ExpiryDate, b.ReceivedDate, b.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert batch: %w", err)
	}
	return nil
}

// DecrementQuantity descuenta qty solo si el lote conserva al menos qty unidades.
// 0 filas afectadas significa que otra instancia ya consumió el lote: ErrConflict.
func (r *BatchRepo) DecrementQuantity(ctx context.Context, batchID string, qty int64) error {
	query := `
		UPDATE inventory_batches SET quantity = quantity - $2, updated_at = now()
		WHERE id = $1 AND quantity >= $2`
	tag, err := r.q.Exec(ctx, query, batchID, qty)
	if err != nil {
		return fmt.Errorf("decrement batch: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}

// GetByID obtiene un lote por ID; nil si no existe.
func (r *BatchRepo) GetByID(ctx context.Context, id string) (*entity.Batch, error) {
	query := `SELECT ` + batchColumns + ` FROM inventory_batches WHERE id = $1`
	b, err := scanBatch(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch: %w", err)
	}
	return b, nil
}

// ListAll todos los lotes (incluidos agotados) para cargar el ledger al iniciar.
func (r *BatchRepo) ListAll(ctx context.Context) ([]entity.Batch, error) {
	query := `SELECT ` + batchColumns + ` FROM inventory_batches ORDER BY medicine_id, expiry_date, received_date, id`
	return r.list(ctx, query)
}

// ListByMedicine lotes de un medicamento en orden FEFO.
func (r *BatchRepo) ListByMedicine(ctx context.Context, medicineID string) ([]entity.Batch, error) {
	query := `SELECT ` + batchColumns + ` FROM inventory_batches WHERE medicine_id = $1
		ORDER BY expiry_date, received_date, id`
	return r.list(ctx, query, medicineID)
}

func (r *BatchRepo) list(ctx context.Context, query string, args ...any) ([]entity.Batch, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()
	list := []entity.Batch{}
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		list = append(list, *b)
	}
	return list, rows.Err()
}

func scanBatch(row pgx.Row) (*entity.Batch, error) {
	var b entity.Batch
	if err := row.Scan(
		&b.ID, &b.ProductID, &b.BatchNumber, &b.Quantity, &b.UnitCost, &b.ExpiryDate, &b.ReceivedDate, &b.CreatedAt,
	); err != nil {
		return nil, err
	}
	b.ExpiryDate = entity.DateOf(b.ExpiryDate)
	b.ReceivedDate = entity.DateOf(b.ReceivedDate)
	return &b, nil
}
