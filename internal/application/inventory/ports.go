package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback y el error se propaga sin envolver.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		batchRepo repository.BatchRepository,
		txnRepo repository.TransactionRepository,
	) error) error
}

// StockReceived evento publicado tras registrar un lote.
type StockReceived struct {
	MedicineID  string    `json:"medicine_id"`
	BatchID     string    `json:"batch_id"`
	BatchNumber string    `json:"batch_number"`
	Quantity    int64     `json:"quantity"`
	ExpiryDate  time.Time `json:"expiry_date"`
	Available   int64     `json:"available"`
	ReceivedBy  string    `json:"received_by"`
}

// StockNotifier avisa a otras sesiones de la llegada de stock. Se llama después del commit;
// un error al publicar no revierte la recepción: StockUseCase lo registra como warning y sigue.
type StockNotifier interface {
	PublishStockReceived(ctx context.Context, ev StockReceived) error
}

// StockEventSubscriber entrega los eventos StockReceived publicados por cualquier instancia.
// SubscribeStockReceived bloquea hasta que ctx se cancela o la fuente se cierra.
type StockEventSubscriber interface {
	SubscribeStockReceived(ctx context.Context, handler func(StockReceived)) error
}

// ExpiryReportPDFGenerator genera la representación PDF del reporte de vencimientos.
type ExpiryReportPDFGenerator interface {
	GenerateExpiryReportPDF(ctx context.Context, report *dto.ExpiryReportDTO) ([]byte, error)
}
