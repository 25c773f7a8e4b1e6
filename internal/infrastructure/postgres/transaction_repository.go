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

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

const transactionColumns = `id, type, reference_number, COALESCE(medicine_id::text, ''), quantity, total_amount, status,
	COALESCE(created_by::text, ''), created_at, updated_at`

// TransactionRepo implementación de TransactionRepository sobre PostgreSQL (usable con pool o tx).
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador de transacciones.
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

// Create persiste la cabecera de la transacción (los ítems van con CreateItems).
func (r *TransactionRepo) Create(ctx context.Context, t *entity.Transaction) error {
	query := `
		INSERT INTO transactions (id, type, reference_number, medicine_id, quantity, total_amount, status, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.Type, t.ReferenceNumber, nullIfEmpty(t.MedicineID), t.Quantity, t.TotalAmount, t.Status,
		nullIfEmpty(t.CreatedBy), t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// CreateItems persiste los lotes afectados por una transacción.
func (r *TransactionRepo) CreateItems(ctx context.Context, items []entity.TransactionItem) error {
	query := `INSERT INTO transaction_items (transaction_id, batch_id, quantity, unit_cost) VALUES ($1, $2, $3, $4)`
	for _, it := range items {
		if _, err := r.q.Exec(ctx, query, it.TransactionID, it.BatchID, it.Quantity, it.UnitCost); err != nil {
			return fmt.Errorf("insert transaction item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una transacción con sus ítems; nil si no existe.
func (r *TransactionRepo) GetByID(ctx context.Context, id string) (*entity.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`
	t, err := scanTransaction(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}

	rows, err := r.q.Query(ctx, `
		SELECT transaction_id, batch_id, quantity, unit_cost
		FROM transaction_items WHERE transaction_id = $1 ORDER BY batch_id`, id)
	if err != nil {
		return nil, fmt.Errorf("list transaction items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.TransactionItem
		if err := rows.Scan(&it.TransactionID, &it.BatchID, &it.Quantity, &it.UnitCost); err != nil {
			return nil, fmt.Errorf("scan transaction item: %w", err)
		}
		t.Items = append(t.Items, it)
	}
	return t, rows.Err()
}

// List lista transacciones recientes primero; txnType vacío no filtra.
func (r *TransactionRepo) List(ctx context.Context, txnType string, limit, offset int) ([]*entity.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + ` FROM transactions
		WHERE ($1 = '' OR type = $1)
		ORDER BY created_at DESC, id LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, txnType, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// UpdateStatus cambia el estado con guarda sobre el estado actual; ErrConflict si la fila no existe
// o ya no está en from.
func (r *TransactionRepo) UpdateStatus(ctx context.Context, id, from, to string) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE transactions SET status = $3, updated_at = now() WHERE id = $1 AND status = $2`,
		id, from, to)
	if err != nil {
		return fmt.Errorf("update transaction status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}

func scanTransaction(row pgx.Row) (*entity.Transaction, error) {
	var t entity.Transaction
	err := row.Scan(&t.ID, &t.Type, &t.ReferenceNumber, &t.MedicineID, &t.Quantity, &t.TotalAmount, &t.Status,
		&t.CreatedBy, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
