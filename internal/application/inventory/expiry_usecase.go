package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/inventory"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
)

// unknownMedicineName se muestra cuando el lote apunta a un medicamento que ya no está en el catálogo.
const unknownMedicineName = "—"

// ExpiryUseCase reporte de vencimientos sobre los lotes activos del ledger.
type ExpiryUseCase struct {
	ledger       *inventory.StockLedger
	medicineRepo repository.MedicineRepository
	generator    ExpiryReportPDFGenerator
	criticalDays int
	warningDays  int
}

// NewExpiryUseCase construye el caso de uso. Umbrales <= 0 toman los valores por defecto.
func NewExpiryUseCase(
	ledger *inventory.StockLedger,
	medicineRepo repository.MedicineRepository,
	generator ExpiryReportPDFGenerator,
	criticalDays, warningDays int,
) *ExpiryUseCase {
	if criticalDays <= 0 {
		criticalDays = inventory.DefaultCriticalDays
	}
	if warningDays <= 0 {
		warningDays = inventory.DefaultWarningDays
	}
	return &ExpiryUseCase{
		ledger:       ledger,
		medicineRepo: medicineRepo,
		generator:    generator,
		criticalDays: criticalDays,
		warningDays:  warningDays,
	}
}

// Report clasifica cada lote activo en expired / critical / warning / safe respecto a now.
// Los ítems salen ordenados por vencimiento (orden FEFO global).
func (uc *ExpiryUseCase) Report(ctx context.Context, now time.Time) (*dto.ExpiryReportDTO, error) {
	var active []entity.Batch
	for _, pid := range uc.ledger.ProductIDs() {
		for _, b := range uc.ledger.ListBatches(pid) {
			if b.IsActive() {
				active = append(active, b)
			}
		}
	}
	inventory.SortFEFO(active)

	ids := make([]string, 0, len(active))
	seen := make(map[string]struct{})
	for _, b := range active {
		if _, ok := seen[b.ProductID]; !ok {
			seen[b.ProductID] = struct{}{}
			ids = append(ids, b.ProductID)
		}
	}
	names := map[string]string{}
	if len(ids) > 0 {
		var err error
		names, err = uc.medicineRepo.NamesByIDs(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("nombres de medicamentos: %w", err)
		}
	}

	report := &dto.ExpiryReportDTO{GeneratedAt: now, Items: make([]dto.ExpiryItemDTO, 0, len(active))}
	for _, b := range active {
		status := inventory.ClassifyExpiry(b.ExpiryDate, now, uc.criticalDays, uc.warningDays)
		switch status {
		case inventory.ExpiryExpired:
			report.Counts.Expired++
		case inventory.ExpiryCritical:
			report.Counts.Critical++
		case inventory.ExpiryWarning:
			report.Counts.Warning++
		default:
			report.Counts.Safe++
		}
		name, ok := names[b.ProductID]
		if !ok {
			name = unknownMedicineName
		}
		report.Items = append(report.Items, dto.ExpiryItemDTO{
			BatchID:      b.ID,
			MedicineID:   b.ProductID,
			MedicineName: name,
			BatchNumber:  b.BatchNumber,
			Quantity:     b.Quantity,
			ExpiryDate:   b.ExpiryDate,
			DaysLeft:     inventory.DaysUntil(b.ExpiryDate, now),
			Status:       string(status),
		})
	}
	return report, nil
}

// ReportPDF genera el reporte y lo renderiza en PDF. Devuelve bytes y nombre de archivo sugerido.
func (uc *ExpiryUseCase) ReportPDF(ctx context.Context, now time.Time) ([]byte, string, error) {
	report, err := uc.Report(ctx, now)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err := uc.generator.GenerateExpiryReportPDF(ctx, report)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generar reporte: %w", err)
	}
	return pdfBytes, fmt.Sprintf("vencimientos-%s.pdf", now.Format("20060102")), nil
}
