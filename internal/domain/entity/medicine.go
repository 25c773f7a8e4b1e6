package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Medicine representa un medicamento del catálogo. El stock no vive aquí: se maneja por lotes (Batch).
type Medicine struct {
	ID           string
	Name         string
	GenericName  string
	Manufacturer string
	Category     string
	Dosage       string
	Unit         string          // tablet, capsule, syrup, injection
	UnitPrice    decimal.Decimal // precio de venta
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
