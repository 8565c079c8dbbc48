//go:build integration

package eventbus

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/amirasaad/ledger/pkg/domain/events"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupRedisBus(tb testing.TB) *RedisEventBus {
	tb.Helper()
	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7.0.5",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	require.NoError(tb, err)
	tb.Cleanup(func() { _ = container.Terminate(ctx) })

	port, err := container.MappedPort(ctx, "6379")
	require.NoError(tb, err)
	host, err := container.Host(ctx)
	require.NoError(tb, err)

	bus, err := NewWithRedis(
		"redis://"+host+":"+port.Port(),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		&RedisEventBusConfig{Group: "test", Block: 500 * time.Millisecond},
	)
	require.NoError(tb, err)
	tb.Cleanup(func() { _ = bus.Close() })
	return bus
}

func TestRedisBusHandlerReceivesEvent(t *testing.T) {
	bus := setupRedisBus(t)

	received := make(chan uuid.UUID, 1)
	bus.Register(events.EventTypeTransactionRecorded, func(_ context.Context, e events.Event) error {
		received <- e.(*events.TransactionRecorded).ID
		return nil
	})

	id := uuid.New()
	require.NoError(t, bus.Emit(context.Background(), &events.TransactionRecorded{ID: id, Kind: "deposit", Amount: 1}))

	select {
	case got := <-received:
		require.Equal(t, id, got)
	case <-time.After(10 * time.Second):
		t.Fatal("event not delivered")
	}
}
