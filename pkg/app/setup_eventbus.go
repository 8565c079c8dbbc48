package app

import (
	"context"
	"log/slog"

	"github.com/amirasaad/ledger/pkg/domain/events"
	"github.com/amirasaad/ledger/pkg/eventbus"
)

// setupEventBus registers the in-process subscribers.
func (a *App) setupEventBus() {
	bus := a.Deps.EventBus
	if bus == nil {
		return
	}
	logger := a.Deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	audit := logger.With("component", "audit")

	for _, eventType := range []events.EventType{
		events.EventTypeTransactionRecorded,
		events.EventTypeAccountRegistered,
		events.EventTypeEmployeeRemoved,
	} {
		bus.Register(eventType, auditHandler(audit))
	}
}

// auditHandler writes every event to the audit log.
func auditHandler(logger *slog.Logger) eventbus.HandlerFunc {
	return func(ctx context.Context, e events.Event) error {
		switch evt := e.(type) {
		case *events.TransactionRecorded:
			logger.InfoContext(ctx, "transaction recorded",
				"transactionID", evt.ID,
				"accountID", evt.AccountID,
				"kind", evt.Kind,
				"status", evt.Status,
				"amount", evt.Amount,
			)
		case *events.AccountRegistered:
			logger.InfoContext(ctx, "account registered", "accountID", evt.AccountID, "role", evt.Role)
		case *events.EmployeeRemoved:
			logger.InfoContext(ctx, "employee removed", "accountID", evt.AccountID, "removedBy", evt.RemovedBy)
		default:
			logger.InfoContext(ctx, "event", "type", e.Type())
		}
		return nil
	}
}
