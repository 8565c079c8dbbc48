package eventbus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/amirasaad/ledger/pkg/domain/events"
	"github.com/amirasaad/ledger/pkg/eventbus"
	"github.com/redis/go-redis/v9"
)

// RedisEventBusConfig holds configuration for the Redis Streams bus.
type RedisEventBusConfig struct {
	Group     string
	KeyPrefix string
	Block     time.Duration
}

// DefaultRedisEventBusConfig returns default configuration for RedisEventBus.
func DefaultRedisEventBusConfig() *RedisEventBusConfig {
	return &RedisEventBusConfig{
		Group: "ledger",
		Block: 5 * time.Second,
	}
}

// RedisEventBus implements the event bus on Redis Streams, one stream per event type.
type RedisEventBus struct {
	client *redis.Client
	config *RedisEventBusConfig
	logger *slog.Logger

	handlers    map[events.EventType][]eventbus.HandlerFunc
	handlersMtx sync.RWMutex

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewWithRedis creates a new Redis-backed event bus.
// url: Redis connection URL (e.g., "redis://localhost:6379/0")
func NewWithRedis(url string, logger *slog.Logger, config *RedisEventBusConfig) (*RedisEventBus, error) {
	if url == "" {
		return nil, fmt.Errorf("redis event bus: url is required")
	}
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis event bus: invalid URL: %w", err)
	}
	return NewWithRedisClient(redis.NewClient(opt), logger, config)
}

// NewWithRedisClient creates a Redis-backed event bus on an existing client.
func NewWithRedisClient(client *redis.Client, logger *slog.Logger, config *RedisEventBusConfig) (*RedisEventBus, error) {
	if config == nil {
		config = DefaultRedisEventBusConfig()
	}
	if config.Group == "" {
		config.Group = "ledger"
	}
	if config.Block <= 0 {
		config.Block = 5 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())
	if err := client.Ping(ctx).Err(); err != nil {
		cancel()
		return nil, fmt.Errorf("redis event bus: connection failed: %w", err)
	}

	return &RedisEventBus{
		client:   client,
		config:   config,
		logger:   logger.With("bus", "redis"),
		handlers: make(map[events.EventType][]eventbus.HandlerFunc),
		ctx:      ctx,
		cancel:   cancel,
	}, nil
}

// Emit appends the event to the stream for its type.
func (b *RedisEventBus) Emit(ctx context.Context, event events.Event) error {
	envBytes, err := encodeEnvelope(event)
	if err != nil {
		return fmt.Errorf("redis event bus: %w", err)
	}

	stream := b.streamNameFor(events.EventType(event.Type()))
	if err := b.client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		Values: map[string]any{"event": string(envBytes)},
	}).Err(); err != nil {
		return fmt.Errorf("redis event bus: emit failed: %w", err)
	}

	b.logger.Debug("event emitted", "type", event.Type(), "stream", stream)
	return nil
}

// Register adds a handler and starts one consumer per event type.
func (b *RedisEventBus) Register(eventType events.EventType, handler eventbus.HandlerFunc) {
	b.handlersMtx.Lock()
	first := len(b.handlers[eventType]) == 0
	b.handlers[eventType] = append(b.handlers[eventType], handler)
	b.handlersMtx.Unlock()

	if !first {
		return
	}

	stream := b.streamNameFor(eventType)
	err := b.client.XGroupCreateMkStream(b.ctx, stream, b.config.Group, "0").Err()
	if err != nil && !isBusyGroup(err) {
		b.logger.Error("failed to create consumer group", "error", err, "stream", stream)
		return
	}

	host, _ := os.Hostname()
	consumer := fmt.Sprintf("%s-%d", host, os.Getpid())
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		b.consumeLoop(eventType, stream, consumer)
	}()
	b.logger.Info("handler registered", "event_type", eventType, "stream", stream, "consumer", consumer)
}

func (b *RedisEventBus) consumeLoop(eventType events.EventType, stream, consumer string) {
	for {
		res, err := b.client.XReadGroup(b.ctx, &redis.XReadGroupArgs{
			Group:    b.config.Group,
			Consumer: consumer,
			Streams:  []string{stream, ">"},
			Count:    10,
			Block:    b.config.Block,
		}).Result()
		if b.ctx.Err() != nil {
			return
		}
		if err != nil {
			if !errors.Is(err, redis.Nil) {
				b.logger.Error("error reading from stream", "error", err, "stream", stream)
				time.Sleep(time.Second)
			}
			continue
		}

		for _, s := range res {
			for _, msg := range s.Messages {
				b.handleMessage(eventType, stream, msg)
			}
		}
	}
}

func (b *RedisEventBus) handleMessage(eventType events.EventType, stream string, msg redis.XMessage) {
	defer func() {
		if err := b.client.XAck(b.ctx, stream, b.config.Group, msg.ID).Err(); err != nil {
			b.logger.Error("failed to acknowledge message", "error", err, "msg_id", msg.ID)
		}
	}()

	raw, ok := msg.Values["event"].(string)
	if !ok {
		return
	}
	evt, err := decodeEnvelope([]byte(raw))
	if err != nil {
		b.logger.Error("failed to decode event", "error", err, "msg_id", msg.ID)
		b.pushToDLQ(eventType, msg.Values)
		return
	}

	b.handlersMtx.RLock()
	handlers := append([]eventbus.HandlerFunc(nil), b.handlers[eventType]...)
	b.handlersMtx.RUnlock()

	if !executeHandlers(b.ctx, b.logger, evt, handlers) {
		b.pushToDLQ(eventType, msg.Values)
	}
}

// pushToDLQ keeps the raw message for inspection or reprocessing.
func (b *RedisEventBus) pushToDLQ(eventType events.EventType, values map[string]any) {
	dlq := b.config.KeyPrefix + nameFor("dlq", eventType)
	if err := b.client.XAdd(b.ctx, &redis.XAddArgs{Stream: dlq, Values: values}).Err(); err != nil {
		b.logger.Error("failed to push to DLQ", "error", err, "stream", dlq)
		return
	}
	b.logger.Warn("event pushed to DLQ", "stream", dlq)
}

func (b *RedisEventBus) streamNameFor(eventType events.EventType) string {
	return b.config.KeyPrefix + nameFor("events", eventType)
}

// Close stops consumers and closes the client.
func (b *RedisEventBus) Close() error {
	b.cancel()
	b.wg.Wait()
	return b.client.Close()
}

func isBusyGroup(err error) bool {
	return err != nil && strings.HasPrefix(err.Error(), "BUSYGROUP")
}

var _ eventbus.Bus = (*RedisEventBus)(nil)
