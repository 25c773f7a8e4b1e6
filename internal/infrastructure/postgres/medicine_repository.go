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

var _ repository.MedicineRepository = (*MedicineRepo)(nil)

const medicineColumns = `id, name, generic_name, manufacturer, category, dosage, unit, unit_price, created_at, updated_at`

// MedicineRepo implementación de MedicineRepository sobre PostgreSQL.
type MedicineRepo struct {
	q Querier
}

// NewMedicineRepository construye el adaptador del catálogo.
func NewMedicineRepository(q Querier) *MedicineRepo {
	return &MedicineRepo{q: q}
}

// Create persiste un medicamento. Nombre + dosis repetidos → ErrDuplicate.
func (r *MedicineRepo) Create(ctx context.Context, m *entity.Medicine) error {
	query := `INSERT INTO medicines (` + medicineColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.Name, m.GenericName, m.Manufacturer, m.Category, m.Dosage, m.Unit, m.UnitPrice, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert medicine: %w", err)
	}
	return nil
}

// GetByID obtiene un medicamento por ID; nil si no existe.
func (r *MedicineRepo) GetByID(ctx context.Context, id string) (*entity.Medicine, error) {
	return r.getOne(ctx, `SELECT `+medicineColumns+` FROM medicines WHERE id = $1`, id)
}

// GetByNameAndDosage busca por la clave natural del catálogo.
func (r *MedicineRepo) GetByNameAndDosage(ctx context.Context, name, dosage string) (*entity.Medicine, error) {
	return r.getOne(ctx, `SELECT `+medicineColumns+` FROM medicines WHERE name = $1 AND dosage = $2`, name, dosage)
}

// List lista medicamentos por nombre; category vacía no filtra.
func (r *MedicineRepo) List(ctx context.Context, category string, limit, offset int) ([]*entity.Medicine, error) {
	query := `
		SELECT ` + medicineColumns + ` FROM medicines
		WHERE ($1 = '' OR category = $1)
		ORDER BY name, dosage LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, category, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list medicines: %w", err)
	}
	defer rows.Close()
	var list []*entity.Medicine
	for rows.Next() {
		m, err := scanMedicine(rows)
		if err != nil {
			return nil, fmt.Errorf("scan medicine: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// NamesByIDs id → nombre para los IDs que existan.
func (r *MedicineRepo) NamesByIDs(ctx context.Context, ids []string) (map[string]string, error) {
	out := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := r.q.Query(ctx, `SELECT id, name FROM medicines WHERE id::text = ANY($1::text[])`, ids)
	if err != nil {
		return nil, fmt.Errorf("medicine names: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("scan medicine name: %w", err)
		}
		out[id] = name
	}
	return out, rows.Err()
}

func (r *MedicineRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Medicine, error) {
	m, err := scanMedicine(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get medicine: %w", err)
	}
	return m, nil
}

func scanMedicine(row pgx.Row) (*entity.Medicine, error) {
	var m entity.Medicine
	err := row.Scan(&m.ID, &m.Name, &m.GenericName, &m.Manufacturer, &m.Category, &m.Dosage, &m.Unit,
		&m.UnitPrice, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
