package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de transacción.
const (
	TransactionTypePurchase = "purchase" // entrada de lote
	TransactionTypeSale     = "sale"     // salida FEFO
	TransactionTypeReturn   = "return"
	TransactionTypeDisposal = "disposal"
)

// Estados de transacción.
const (
	TransactionStatusPending   = "pending"
	TransactionStatusCompleted = "completed"
	TransactionStatusCancelled = "cancelled"
)

// Transaction registro contable de una compra, venta, devolución o baja.
type Transaction struct {
	ID              string
	Type            string
	ReferenceNumber string
	MedicineID      string
	Quantity        int64
	TotalAmount     decimal.Decimal
	Status          string
	CreatedBy       string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Items           []TransactionItem
}

// TransactionItem lote afectado por una transacción (para ventas, una línea del plan de consumo).
type TransactionItem struct {
	TransactionID string
	BatchID       string
	Quantity      int64
	UnitCost      decimal.Decimal
}

// IsValidTransactionType valida el tipo.
func IsValidTransactionType(t string) bool {
	switch t {
	case TransactionTypePurchase, TransactionTypeSale, TransactionTypeReturn, TransactionTypeDisposal:
		return true
	}
	return false
}

// CanTransition indica si el cambio de estado está permitido: solo pending puede pasar a completed o cancelled.
func CanTransition(from, to string) bool {
	if from != TransactionStatusPending {
		return false
	}
	return to == TransactionStatusCompleted || to == TransactionStatusCancelled
}
