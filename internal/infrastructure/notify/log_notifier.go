package notify

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Farmacia-api/internal/application/inventory"
)

var _ inventory.StockNotifier = (*LogStockNotifier)(nil)

// LogStockNotifier registra el evento en el log cuando no hay Redis configurado.
type LogStockNotifier struct {
	log zerolog.Logger
}

// NewLogStockNotifier construye el notifier.
func NewLogStockNotifier(l zerolog.Logger) *LogStockNotifier {
	return &LogStockNotifier{log: l}
}

// PublishStockReceived escribe el evento con nivel info. Nunca falla.
func (n *LogStockNotifier) PublishStockReceived(_ context.Context, ev inventory.StockReceived) error {
	n.log.Info().
		Str("event", EventStockReceived).
		Str("medicine_id", ev.MedicineID).
		Str("batch_id", ev.BatchID).
		Str("batch_number", ev.BatchNumber).
		Int64("quantity", ev.Quantity).
		Int64("available", ev.Available).
		Time("expiry_date", ev.ExpiryDate).
		Msg("stock recibido")
	return nil
}
