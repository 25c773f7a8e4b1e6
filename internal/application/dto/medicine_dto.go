package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateMedicineRequest entrada para registrar un medicamento en el catálogo.
type CreateMedicineRequest struct {
	Name         string          `json:"name" validate:"required,min=1,max=200"`
	GenericName  string          `json:"generic_name" validate:"omitempty,max=200"`
	Manufacturer string          `json:"manufacturer" validate:"required,max=200"`
	Category     string          `json:"category" validate:"required,max=100"`
	Dosage       string          `json:"dosage" validate:"required,max=100"`
	Unit         string          `json:"unit" validate:"required,oneof=tablet capsule syrup injection cream drops"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
}

// MedicineResponse salida de un medicamento.
type MedicineResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	GenericName  string          `json:"generic_name"`
	Manufacturer string          `json:"manufacturer"`
	Category     string          `json:"category"`
	Dosage       string          `json:"dosage"`
	Unit         string          `json:"unit"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// MedicineListResponse lista paginada de medicamentos.
type MedicineListResponse struct {
	Items []MedicineResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
