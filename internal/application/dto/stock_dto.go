package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiveSupplyRequest body para POST /api/medicines/:id/batches.
// Las fechas van en formato AAAA-MM-DD; received_date es opcional (hoy).
type ReceiveSupplyRequest struct {
	BatchNumber  string          `json:"batch_number" validate:"omitempty,max=50"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	ExpiryDate   string          `json:"expiry_date" validate:"required,datetime=2006-01-02"`
	ReceivedDate string          `json:"received_date" validate:"omitempty,datetime=2006-01-02"`
}

// ReceiveSupplyResponse lote creado.
type ReceiveSupplyResponse struct {
	BatchID     string `json:"batch_id"`
	BatchNumber string `json:"batch_number"`
	Available   int64  `json:"available"`
}

// SellRequest body para POST /api/medicines/:id/sales.
type SellRequest struct {
	Quantity        decimal.Decimal `json:"quantity"`
	ReferenceNumber string          `json:"reference_number" validate:"omitempty,max=50"`
}

// ConsumptionLineDTO una línea del plan FEFO.
type ConsumptionLineDTO struct {
	BatchID     string          `json:"batch_id"`
	BatchNumber string          `json:"batch_number"`
	Quantity    int64           `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	Remaining   int64           `json:"remaining"`
}

// SaleResponse resultado de una venta.
type SaleResponse struct {
	TransactionID string               `json:"transaction_id"`
	MedicineID    string               `json:"medicine_id"`
	Quantity      int64                `json:"quantity"`
	TotalAmount   decimal.Decimal      `json:"total_amount"`
	TotalCost     decimal.Decimal      `json:"total_cost"`
	Plan          []ConsumptionLineDTO `json:"plan"`
}

// BatchResponse salida de un lote.
type BatchResponse struct {
	ID           string          `json:"id"`
	MedicineID   string          `json:"medicine_id"`
	BatchNumber  string          `json:"batch_number"`
	Quantity     int64           `json:"quantity"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	ExpiryDate   string          `json:"expiry_date"`
	ReceivedDate string          `json:"received_date"`
	State        string          `json:"state"`
	Expired      bool            `json:"expired"`
}

// StockResponse agregado de stock de un medicamento.
type StockResponse struct {
	MedicineID       string          `json:"medicine_id"`
	Available        int64           `json:"available"`
	ActiveBatches    int             `json:"active_batches"`
	ExhaustedBatches int             `json:"exhausted_batches"`
	AverageUnitCost  decimal.Decimal `json:"average_unit_cost"`
	NextExpiry       *string         `json:"next_expiry,omitempty"`
}

// ExpiryCountsDTO totales por estado de vencimiento.
type ExpiryCountsDTO struct {
	Expired  int `json:"expired"`
	Critical int `json:"critical"`
	Warning  int `json:"warning"`
	Safe     int `json:"safe"`
}

// ExpiryItemDTO un lote activo dentro del reporte de vencimientos.
type ExpiryItemDTO struct {
	BatchID      string    `json:"batch_id"`
	MedicineID   string    `json:"medicine_id"`
	MedicineName string    `json:"medicine_name"`
	BatchNumber  string    `json:"batch_number"`
	Quantity     int64     `json:"quantity"`
	ExpiryDate   time.Time `json:"expiry_date"`
	DaysLeft     int       `json:"days_left"`
	Status       string    `json:"status"`
}

// ExpiryReportDTO reporte de vencimientos de todos los lotes activos.
type ExpiryReportDTO struct {
	GeneratedAt time.Time       `json:"generated_at"`
	Counts      ExpiryCountsDTO `json:"counts"`
	Items       []ExpiryItemDTO `json:"items"`
}
