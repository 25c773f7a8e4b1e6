package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
)

// MedicineUseCase casos de uso del catálogo de medicamentos. El stock no se toca aquí: vive en los lotes.
type MedicineUseCase struct {
	repo  repository.MedicineRepository
	title cases.Caser
}

// NewMedicineUseCase construye el caso de uso.
func NewMedicineUseCase(repo repository.MedicineRepository) *MedicineUseCase {
	return &MedicineUseCase{repo: repo, title: cases.Title(language.Spanish)}
}

// Create registra un medicamento. Nombre + dosis deben ser únicos (ErrDuplicate).
// Categoría y fabricante se normalizan a tipo título para que los filtros no dependan de mayúsculas.
func (uc *MedicineUseCase) Create(ctx context.Context, in dto.CreateMedicineRequest) (*dto.MedicineResponse, error) {
	name := strings.TrimSpace(in.Name)
	dosage := strings.TrimSpace(in.Dosage)
	if name == "" || dosage == "" || in.UnitPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByNameAndDosage(ctx, name, dosage)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	med := &entity.Medicine{
		ID:           uuid.New().String(),
		Name:         name,
		GenericName:  strings.TrimSpace(in.GenericName),
		Manufacturer: uc.normalize(in.Manufacturer),
		Category:     uc.normalize(in.Category),
		Dosage:       dosage,
		Unit:         in.Unit,
		UnitPrice:    in.UnitPrice,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, med); err != nil {
		return nil, err
	}
	return toMedicineResponse(med), nil
}

// GetByID obtiene un medicamento; ErrNotFound si no existe.
func (uc *MedicineUseCase) GetByID(ctx context.Context, id string) (*dto.MedicineResponse, error) {
	med, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if med == nil {
		return nil, domain.ErrNotFound
	}
	return toMedicineResponse(med), nil
}

// List lista medicamentos con paginación; category vacía no filtra.
func (uc *MedicineUseCase) List(ctx context.Context, category string, limit, offset int) (*dto.MedicineListResponse, error) {
	if category != "" {
		category = uc.normalize(category)
	}
	list, err := uc.repo.List(ctx, category, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MedicineResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMedicineResponse(m))
	}
	return &dto.MedicineListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func (uc *MedicineUseCase) normalize(s string) string {
	return uc.title.String(strings.Join(strings.Fields(s), " "))
}

func toMedicineResponse(m *entity.Medicine) *dto.MedicineResponse {
	return &dto.MedicineResponse{
		ID:           m.ID,
		Name:         m.Name,
		GenericName:  m.GenericName,
		Manufacturer: m.Manufacturer,
		Category:     m.Category,
		Dosage:       m.Dosage,
		Unit:         m.Unit,
		UnitPrice:    m.UnitPrice,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
