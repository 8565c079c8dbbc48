// Command kafka_smoketest publishes one ledger event through the Kafka event
// bus and waits for it to come back, to check a local broker setup.
//
// Usage: BROKERS=localhost:9092 go run ./scripts/kafka_smoketest
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"
	"time"

	infraeventbus "github.com/amirasaad/ledger/infra/eventbus"
	"github.com/amirasaad/ledger/pkg/domain/events"
	"github.com/google/uuid"
)

// RunSmokeTest emits a TransactionRecorded event and waits until the bus
// delivers it back to a registered handler.
func RunSmokeTest(ctx context.Context, logger *slog.Logger) error {
	brokers := strings.TrimSpace(os.Getenv("BROKERS"))
	if brokers == "" {
		brokers = "localhost:9092"
	}
	groupID := strings.TrimSpace(os.Getenv("GROUP_ID"))
	if groupID == "" {
		groupID = "ledger-smoketest-" + uuid.NewString()[:8]
	}

	bus, err := infraeventbus.NewWithKafka(brokers, logger, &infraeventbus.KafkaEventBusConfig{
		GroupID:     groupID,
		TopicPrefix: "ledger.smoketest",
	})
	if err != nil {
		return err
	}
	defer bus.Close() //nolint:errcheck

	want := &events.TransactionRecorded{
		ID:        uuid.New(),
		AccountID: uuid.New(),
		Kind:      "deposit",
		Amount:    100,
		Status:    "success",
		Timestamp: time.Now().UTC(),
	}
	got := make(chan uuid.UUID, 1)
	bus.Register(events.EventTypeTransactionRecorded, func(_ context.Context, e events.Event) error {
		if rec, ok := e.(*events.TransactionRecorded); ok {
			select {
			case got <- rec.ID:
			default:
			}
		}
		return nil
	})

	// Let the consumer group join before the first write.
	time.Sleep(2 * time.Second)
	if err := bus.Emit(ctx, want); err != nil {
		return err
	}
	logger.Info("event emitted", "id", want.ID)

	for {
		select {
		case id := <-got:
			if id == want.ID {
				logger.Info("event received", "id", id)
				return nil
			}
		case <-ctx.Done():
			return errors.New("timed out waiting for the event to come back")
		}
	}
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := RunSmokeTest(ctx, logger); err != nil {
		logger.Error("smoke test failed", "error", err)
		os.Exit(1)
	}
	logger.Info("smoke test passed")
}
