package eventbus

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/amirasaad/ledger/pkg/domain/events"
	"github.com/amirasaad/ledger/pkg/eventbus"
)

// executeHandlers runs every handler, recovering panics. It reports whether
// all of them succeeded.
func executeHandlers(
	ctx context.Context,
	logger *slog.Logger,
	evt events.Event,
	handlers []eventbus.HandlerFunc,
) bool {
	ok := true
	for _, handler := range handlers {
		func() {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("handler panic recovered", "panic", r, "event_type", evt.Type())
					ok = false
				}
			}()
			if err := handler(ctx, evt); err != nil {
				logger.Error("handler error", "error", err, "event_type", evt.Type())
				ok = false
			}
		}()
	}
	return ok
}

func nameFor(prefix string, eventType events.EventType) string {
	parts := strings.Split(eventType.String(), ".")
	if len(parts) == 2 {
		return fmt.Sprintf(
			"%s:%s:%s",
			prefix,
			strings.ToLower(parts[0]),
			strings.ToLower(parts[1]))
	}
	return fmt.Sprintf("%s:%s", prefix, strings.ToLower(eventType.String()))
}
