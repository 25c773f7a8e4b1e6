// Package analytics contiene los casos de uso de resumen del inventario para el tablero.
package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/domain/inventory"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
)

const (
	dashboardLowStockLimit = 10 // medicamentos en el widget de reposición
	catalogPageSize        = 500
)

// DashboardUseCase arma el resumen del inventario a partir del ledger.
//
// Fuente de datos: catálogo desde MedicineRepository + lotes desde StockLedger (lectura).
type DashboardUseCase struct {
	ledger       *inventory.StockLedger
	medicineRepo repository.MedicineRepository
	reorderPoint int64
	criticalDays int
}

// NewDashboardUseCase construye el caso de uso. reorderPoint <= 0 desactiva la lista de reposición.
func NewDashboardUseCase(
	ledger *inventory.StockLedger,
	medicineRepo repository.MedicineRepository,
	reorderPoint int64,
	criticalDays int,
) *DashboardUseCase {
	if criticalDays <= 0 {
		criticalDays = inventory.DefaultCriticalDays
	}
	return &DashboardUseCase{
		ledger:       ledger,
		medicineRepo: medicineRepo,
		reorderPoint: reorderPoint,
		criticalDays: criticalDays,
	}
}

// GetSummary totales de stock, valor del inventario (Σ cantidad * costo del lote), lotes vencidos o
// críticos y los medicamentos con stock por debajo del punto de reorden (los más escasos primero).
// Recorre el catálogo completo: un medicamento que nunca tuvo lotes cuenta con 0 disponibles.
func (uc *DashboardUseCase) GetSummary(ctx context.Context, now time.Time) (*dto.InventoryDashboardDTO, error) {
	out := &dto.InventoryDashboardDTO{
		DateLabel:      monthLabel(now),
		InventoryValue: decimal.Zero,
		LowStock:       []dto.LowStockItemDTO{},
	}

	names := make(map[string]string)
	var order []string
	for offset := 0; ; offset += catalogPageSize {
		page, err := uc.medicineRepo.List(ctx, "", catalogPageSize, offset)
		if err != nil {
			return nil, fmt.Errorf("dashboard: catálogo: %w", err)
		}
		for _, m := range page {
			if _, seen := names[m.ID]; !seen {
				order = append(order, m.ID)
			}
			names[m.ID] = m.Name
		}
		if len(page) < catalogPageSize {
			break
		}
	}
	// Lotes de productos que ya no figuran en el catálogo también suman al inventario.
	for _, pid := range uc.ledger.ProductIDs() {
		if _, ok := names[pid]; !ok {
			names[pid] = ""
			order = append(order, pid)
		}
	}

	var low []dto.LowStockItemDTO
	for _, pid := range order {
		out.Medicines++
		var available int64
		for _, b := range uc.ledger.ListBatches(pid) {
			if !b.IsActive() {
				continue
			}
			out.ActiveBatches++
			available += b.Quantity
			out.InventoryValue = out.InventoryValue.Add(decimal.NewFromInt(b.Quantity).Mul(b.UnitCost))
			switch inventory.ClassifyExpiry(b.ExpiryDate, now, uc.criticalDays, uc.criticalDays) {
			case inventory.ExpiryExpired:
				out.ExpiredBatches++
			case inventory.ExpiryCritical:
				out.CriticalBatches++
			}
		}
		out.TotalUnits += available
		if available < uc.reorderPoint {
			low = append(low, dto.LowStockItemDTO{
				MedicineID:   pid,
				MedicineName: names[pid],
				Available:    available,
				ReorderPoint: uc.reorderPoint,
			})
		}
	}
	out.InventoryValue = out.InventoryValue.Round(2)

	sort.SliceStable(low, func(i, j int) bool {
		if low[i].Available != low[j].Available {
			return low[i].Available < low[j].Available
		}
		return low[i].MedicineID < low[j].MedicineID
	})
	if len(low) > dashboardLowStockLimit {
		low = low[:dashboardLowStockLimit]
	}
	if len(low) > 0 {
		out.LowStock = low
	}
	return out, nil
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
