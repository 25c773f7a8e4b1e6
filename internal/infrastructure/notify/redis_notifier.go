package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Farmacia-api/internal/application/inventory"
)

// EventStockReceived nombre del evento en el canal.
const EventStockReceived = "stock.received"

// DefaultChannel canal Pub/Sub por defecto.
const DefaultChannel = "farmacia:stock"

var (
	_ inventory.StockNotifier        = (*RedisStockNotifier)(nil)
	_ inventory.StockEventSubscriber = (*RedisStockNotifier)(nil)
)

// Message sobre publicado en Redis.
type Message struct {
	Event     string                  `json:"event"`
	Timestamp int64                   `json:"timestamp"` // unix nano
	Payload   inventory.StockReceived `json:"payload"`
}

// RedisStockNotifier publica los eventos de stock por Redis Pub/Sub para que otras sesiones se enteren.
type RedisStockNotifier struct {
	client     *redis.Client
	ownsClient bool
	channel    string
	log        zerolog.Logger
}

// Option configura el notifier.
type Option func(*RedisStockNotifier)

// WithChannel cambia el canal Pub/Sub.
func WithChannel(channel string) Option {
	return func(n *RedisStockNotifier) {
		if channel != "" {
			n.channel = channel
		}
	}
}

// WithLogger asigna el logger para fallos de publicación.
func WithLogger(l zerolog.Logger) Option {
	return func(n *RedisStockNotifier) { n.log = l }
}

// NewRedisStockNotifier crea el cliente y verifica la conexión con PING.
func NewRedisStockNotifier(ctx context.Context, opts *redis.Options, options ...Option) (*RedisStockNotifier, error) {
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("conectar a Redis: %w", err)
	}
	n := NewRedisStockNotifierWithClient(client, options...)
	n.ownsClient = true
	return n, nil
}

// NewRedisStockNotifierWithClient usa un cliente existente; quien lo creó se encarga de cerrarlo.
func NewRedisStockNotifierWithClient(client *redis.Client, options ...Option) *RedisStockNotifier {
	n := &RedisStockNotifier{
		client:  client,
		channel: DefaultChannel,
		log:     zerolog.Nop(),
	}
	for _, opt := range options {
		opt(n)
	}
	return n
}

// Channel canal en uso.
func (n *RedisStockNotifier) Channel() string { return n.channel }

// PublishStockReceived publica el evento. Los errores se registran y también se devuelven.
func (n *RedisStockNotifier) PublishStockReceived(ctx context.Context, ev inventory.StockReceived) error {
	data, err := json.Marshal(Message{
		Event:     EventStockReceived,
		Timestamp: time.Now().UnixNano(),
		Payload:   ev,
	})
	if err != nil {
		n.log.Error().Err(err).Str("batch_id", ev.BatchID).Msg("serializar evento de stock")
		return fmt.Errorf("serializar evento: %w", err)
	}
	if err := n.client.Publish(ctx, n.channel, data).Err(); err != nil {
		n.log.Error().Err(err).
			Str("channel", n.channel).
			Str("medicine_id", ev.MedicineID).
			Str("batch_id", ev.BatchID).
			Msg("no se pudo publicar el evento de stock")
		return fmt.Errorf("publicar evento: %w", err)
	}
	n.log.Debug().
		Str("channel", n.channel).
		Str("medicine_id", ev.MedicineID).
		Int64("available", ev.Available).
		Msg("evento de stock publicado")
	return nil
}

// Subscribe entrega los eventos recibidos en el canal hasta que ctx se cancela.
// Los mensajes que no se pueden decodificar se descartan con un warning.
func (n *RedisStockNotifier) Subscribe(ctx context.Context, handler func(Message)) error {
	sub := n.client.Subscribe(ctx, n.channel)
	defer sub.Close()

	// Esperar confirmación de la suscripción antes de devolver el control al bucle.
	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("suscribir a %s: %w", n.channel, err)
	}
	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			var m Message
			if err := json.Unmarshal([]byte(msg.Payload), &m); err != nil {
				n.log.Warn().Err(err).Str("channel", n.channel).Msg("mensaje de stock inválido")
				continue
			}
			handler(m)
		}
	}
}

// SubscribeStockReceived entrega solo los eventos stock.received, ya decodificados.
func (n *RedisStockNotifier) SubscribeStockReceived(ctx context.Context, handler func(inventory.StockReceived)) error {
	return n.Subscribe(ctx, func(m Message) {
		if m.Event == EventStockReceived {
			handler(m.Payload)
		}
	})
}

// Close cierra el cliente si fue creado por el notifier.
func (n *RedisStockNotifier) Close() error {
	if n.ownsClient {
		return n.client.Close()
	}
	return nil
}
