//go:build integration

package notify_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jhoicas/Farmacia-api/internal/application/inventory"
	"github.com/jhoicas/Farmacia-api/internal/infrastructure/notify"
)

func newRedisAddr(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("integración omitida con -short")
	}
	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)
	return fmt.Sprintf("%s:%s", host, port.Port())
}

func TestRedisStockNotifier_PublicaYSuscribe(t *testing.T) {
	addr := newRedisAddr(t)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	n, err := notify.NewRedisStockNotifier(ctx, &redis.Options{Addr: addr}, notify.WithChannel("farmacia:test"))
	require.NoError(t, err)
	defer n.Close()

	received := make(chan notify.Message, 1)
	subCtx, stop := context.WithCancel(ctx)
	defer stop()
	go func() {
		_ = n.Subscribe(subCtx, func(m notify.Message) { received <- m })
	}()

	ev := inventory.StockReceived{MedicineID: "m-1", BatchID: "b-1", Quantity: 10, Available: 10}
	// reintentar hasta que la suscripción esté activa
	require.Eventually(t, func() bool {
		require.NoError(t, n.PublishStockReceived(ctx, ev))
		select {
		case m := <-received:
			assert.Equal(t, notify.EventStockReceived, m.Event)
			assert.Equal(t, "b-1", m.Payload.BatchID)
			return true
		case <-time.After(200 * time.Millisecond):
			return false
		}
	}, 10*time.Second, 100*time.Millisecond)
}

func TestRedisStockNotifier_SubscribeStockReceivedFiltraEventos(t *testing.T) {
	addr := newRedisAddr(t)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	raw := redis.NewClient(&redis.Options{Addr: addr})
	defer raw.Close()
	n := notify.NewRedisStockNotifierWithClient(raw, notify.WithChannel("farmacia:filtro"))

	received := make(chan inventory.StockReceived, 4)
	subCtx, stop := context.WithCancel(ctx)
	defer stop()
	go func() {
		_ = n.SubscribeStockReceived(subCtx, func(ev inventory.StockReceived) { received <- ev })
	}()

	ev := inventory.StockReceived{MedicineID: "m-2", BatchID: "b-2", Quantity: 4, Available: 4}
	require.Eventually(t, func() bool {
		require.NoError(t, raw.Publish(ctx, "farmacia:filtro", `{"event":"otro.evento","payload":{"batch_id":"x"}}`).Err())
		require.NoError(t, raw.Publish(ctx, "farmacia:filtro", "no es json").Err())
		require.NoError(t, n.PublishStockReceived(ctx, ev))
		select {
		case got := <-received:
			assert.Equal(t, "b-2", got.BatchID)
			return true
		case <-time.After(200 * time.Millisecond):
			return false
		}
	}, 10*time.Second, 100*time.Millisecond)
}

func TestNewRedisStockNotifier_SinServidor(t *testing.T) {
	_, err := notify.NewRedisStockNotifier(context.Background(), &redis.Options{Addr: "127.0.0.1:1", DialTimeout: 200 * time.Millisecond})
	assert.Error(t, err)
}
