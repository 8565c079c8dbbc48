// Package initializer wires the infrastructure behind the ledger: logger,
// database, unit of work and event bus.
package initializer

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/amirasaad/ledger/infra"
	infra_eventbus "github.com/amirasaad/ledger/infra/eventbus"
	infra_repository "github.com/amirasaad/ledger/infra/repository"
	"github.com/amirasaad/ledger/pkg/config"
	"github.com/amirasaad/ledger/pkg/eventbus"
	"gorm.io/gorm"
)

// Resources are the long-lived handles behind Deps that must be released on
// shutdown.
type Resources struct {
	DB      *gorm.DB
	closers []io.Closer
}

// Close releases the event bus and the database pool.
func (r *Resources) Close() error {
	var errs []error
	for i := len(r.closers) - 1; i >= 0; i-- {
		errs = append(errs, r.closers[i].Close())
	}
	if r.DB != nil {
		if sqlDB, err := r.DB.DB(); err == nil {
			errs = append(errs, sqlDB.Close())
		}
	}
	return errors.Join(errs...)
}

// InitializeDependencies initializes all the application dependencies
func InitializeDependencies(cfg *config.App) (
	deps *config.Deps,
	res *Resources,
	err error,
) {
	logger := setupLogger(cfg.Log)
	deps = &config.Deps{Logger: logger, Config: cfg}
	res = &Resources{}

	// Initialize database
	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		return nil, nil, err
	}
	res.DB = db

	// Initialize unit of work
	deps.Uow = infra_repository.NewUoW(db)

	// Initialize event bus
	bus, err := initEventBus(cfg, logger)
	if err != nil {
		_ = res.Close()
		return nil, nil, err
	}
	if c, ok := bus.(io.Closer); ok {
		res.closers = append(res.closers, c)
	}
	deps.EventBus = bus

	return deps, res, nil
}

// initEventBus selects the bus named by EVENTBUS_DRIVER. An explicit broker
// driver without an address is a configuration error; an unreachable broker
// falls back to the in-memory bus.
func initEventBus(cfg *config.App, logger *slog.Logger) (eventbus.Bus, error) {
	driver := ""
	if cfg.EventBus != nil {
		driver = strings.ToLower(strings.TrimSpace(cfg.EventBus.Driver))
	}

	switch driver {
	case "", "memory":
		return infra_eventbus.NewWithMemory(logger), nil

	case "redis":
		if cfg.Redis == nil || cfg.Redis.URL == "" {
			return nil, fmt.Errorf("event bus driver redis requires REDIS_URL")
		}
		bus, err := infra_eventbus.NewWithRedis(cfg.Redis.URL, logger, &infra_eventbus.RedisEventBusConfig{
			Group:     cfg.Redis.Group,
			KeyPrefix: cfg.Redis.KeyPrefix,
		})
		if err != nil {
			logger.Warn("Redis event bus unavailable, falling back to memory", "error", err)
			return infra_eventbus.NewWithMemory(logger), nil
		}
		logger.Info("Using Redis event bus")
		return bus, nil

	case "kafka":
		if cfg.Kafka == nil || strings.TrimSpace(cfg.Kafka.Brokers) == "" {
			return nil, fmt.Errorf("event bus driver kafka requires KAFKA_BROKERS")
		}
		bus, err := infra_eventbus.NewWithKafka(cfg.Kafka.Brokers, logger, &infra_eventbus.KafkaEventBusConfig{
			GroupID:     cfg.Kafka.GroupID,
			TopicPrefix: cfg.Kafka.TopicPrefix,
		})
		if err != nil {
			logger.Warn("Kafka event bus unavailable, falling back to memory", "error", err)
			return infra_eventbus.NewWithMemory(logger), nil
		}
		logger.Info("Using Kafka event bus")
		return bus, nil
	}
	return nil, fmt.Errorf("unsupported event bus driver %q", driver)
}
