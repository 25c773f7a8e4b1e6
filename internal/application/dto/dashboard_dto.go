package dto

import "github.com/shopspring/decimal"

// LowStockItemDTO medicamento por debajo del punto de reorden.
type LowStockItemDTO struct {
	MedicineID   string `json:"medicine_id"`
	MedicineName string `json:"medicine_name"`
	Available    int64  `json:"available"`
	ReorderPoint int64  `json:"reorder_point"`
}

// InventoryDashboardDTO resumen del inventario para el tablero principal.
type InventoryDashboardDTO struct {
	DateLabel       string            `json:"date_label"`
	Medicines       int               `json:"medicines"`
	ActiveBatches   int               `json:"active_batches"`
	TotalUnits      int64             `json:"total_units"`
	InventoryValue  decimal.Decimal   `json:"inventory_value"`
	ExpiredBatches  int               `json:"expired_batches"`
	CriticalBatches int               `json:"critical_batches"`
	LowStock        []LowStockItemDTO `json:"low_stock"`
}
