package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados lógicos de un lote.
const (
	BatchStateActive    = "active"    // quantity > 0
	BatchStateExhausted = "exhausted" // quantity == 0, se conserva como historial
)

// Batch representa un lote de un medicamento recibido en una sola entrada.
// Quantity solo la modifica el libro de stock; UnitCost y las fechas son inmutables tras la creación.
type Batch struct {
	ID           string
	ProductID    string
	BatchNumber  string
	Quantity     int64
	UnitCost     decimal.Decimal
	ExpiryDate   time.Time // fecha calendario (UTC, medianoche)
	ReceivedDate time.Time // fecha calendario (UTC, medianoche)
	CreatedAt    time.Time
}

// IsActive indica si el lote aún tiene unidades disponibles.
func (b Batch) IsActive() bool { return b.Quantity > 0 }

// State devuelve active o exhausted.
func (b Batch) State() string {
	if b.IsActive() {
		return BatchStateActive
	}
	return BatchStateExhausted
}

// IsExpired indica si el lote venció respecto a now (la fecha de vencimiento ya pasó).
func (b Batch) IsExpired(now time.Time) bool {
	return b.ExpiryDate.Before(DateOf(now))
}

// DateOf trunca t a la fecha calendario en UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
