package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionItemResponse lote afectado.
type TransactionItemResponse struct {
	BatchID  string          `json:"batch_id"`
	Quantity int64           `json:"quantity"`
	UnitCost decimal.Decimal `json:"unit_cost"`
}

// TransactionResponse salida de una transacción.
type TransactionResponse struct {
	ID              string                    `json:"id"`
	Type            string                    `json:"type"`
	ReferenceNumber string                    `json:"reference_number"`
	MedicineID      string                    `json:"medicine_id"`
	Quantity        int64                     `json:"quantity"`
	TotalAmount     decimal.Decimal           `json:"total_amount"`
	Status          string                    `json:"status"`
	CreatedBy       string                    `json:"created_by"`
	CreatedAt       time.Time                 `json:"created_at"`
	UpdatedAt       time.Time                 `json:"updated_at"`
	Items           []TransactionItemResponse `json:"items,omitempty"`
}

// TransactionListResponse lista paginada.
type TransactionListResponse struct {
	Items []TransactionResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}

// PlaceOrderRequest body para POST /api/orders. Sin unit_cost se usa el precio del catálogo.
type PlaceOrderRequest struct {
	MedicineID      string           `json:"medicine_id" validate:"required"`
	Quantity        decimal.Decimal  `json:"quantity"`
	UnitCost        *decimal.Decimal `json:"unit_cost,omitempty"`
	ReferenceNumber string           `json:"reference_number" validate:"omitempty,max=50"`
}

// ApproveOrderRequest body para POST /api/orders/:id/approve. Fechas en formato AAAA-MM-DD.
type ApproveOrderRequest struct {
	BatchNumber  string `json:"batch_number" validate:"omitempty,max=50"`
	ExpiryDate   string `json:"expiry_date" validate:"required,datetime=2006-01-02"`
	ReceivedDate string `json:"received_date" validate:"omitempty,datetime=2006-01-02"`
}

// OrderApprovalResponse orden completada y lote que la recibió.
type OrderApprovalResponse struct {
	Transaction TransactionResponse `json:"transaction"`
	BatchID     string              `json:"batch_id"`
	BatchNumber string              `json:"batch_number"`
	Available   int64               `json:"available"`
}
