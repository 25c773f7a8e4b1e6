package http

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/rs/zerolog/log"
	"github.com/valyala/fasthttp"

	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/application/inventory"
)

const (
	stockEventName   = "stock.received"
	sseKeepAlive     = 25 * time.Second
	sseClientBacklog = 32 // eventos en cola por cliente; si se llena se descartan
)

// StockEventsHandler transmite por SSE los lotes recibidos (protegido).
type StockEventsHandler struct {
	source inventory.StockEventSubscriber
}

// NewStockEventsHandler construye el handler. source nil deja el endpoint en 503.
func NewStockEventsHandler(source inventory.StockEventSubscriber) *StockEventsHandler {
	return &StockEventsHandler{source: source}
}

// Stream godoc
// @Summary      Eventos de stock en vivo
// @Description  Server-Sent Events: un evento stock.received por cada lote registrado. medicine_id filtra por medicamento.
// @Tags         inventory
// @Security     Bearer
// @Produce      text/event-stream
// @Param        medicine_id  query  string  false  "Filtrar por medicamento"
// @Success      200  {string}  string  "stream"
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/events/stock [get]
func (h *StockEventsHandler) Stream(c *fiber.Ctx) error {
	if h.source == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Code:    "EVENTS_DISABLED",
			Message: "los eventos en vivo requieren Redis",
		})
	}
	filter := utils.CopyString(c.Query("medicine_id"))
	userID := utils.CopyString(GetUserID(c))

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		events := make(chan inventory.StockReceived, sseClientBacklog)
		done := make(chan error, 1)
		go func() {
			done <- h.source.SubscribeStockReceived(ctx, func(ev inventory.StockReceived) {
				if filter != "" && ev.MedicineID != filter {
					return
				}
				select {
				case events <- ev:
				default:
				}
			})
		}()

		if _, err := w.WriteString(": conectado\n\n"); err != nil || w.Flush() != nil {
			return
		}
		ticker := time.NewTicker(sseKeepAlive)
		defer ticker.Stop()
		for {
			select {
			case ev := <-events:
				if err := writeStockEvent(w, ev); err != nil {
					return
				}
			case <-ticker.C:
				if _, err := w.WriteString(": ping\n\n"); err != nil || w.Flush() != nil {
					return
				}
			case err := <-done:
				if err != nil {
					log.Warn().Err(err).Str("user_id", userID).Msg("suscripción de eventos de stock terminada")
				}
				for {
					select {
					case ev := <-events:
						if writeStockEvent(w, ev) != nil {
							return
						}
					default:
						return
					}
				}
			}
		}
	}))
	return nil
}

func writeStockEvent(w *bufio.Writer, ev inventory.StockReceived) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", stockEventName, data); err != nil {
		return err
	}
	return w.Flush()
}
