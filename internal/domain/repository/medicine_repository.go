package repository

import (
	"context"

	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
)

// MedicineRepository define el puerto de persistencia para el catálogo de medicamentos (DIP).
type MedicineRepository interface {
	Create(ctx context.Context, medicine *entity.Medicine) error
	GetByID(ctx context.Context, id string) (*entity.Medicine, error)
	GetByNameAndDosage(ctx context.Context, name, dosage string) (*entity.Medicine, error)
	List(ctx context.Context, category string, limit, offset int) ([]*entity.Medicine, error)
	// NamesByIDs devuelve id → nombre para los IDs existentes.
	NamesByIDs(ctx context.Context, ids []string) (map[string]string, error)
}
