package eventbus

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/amirasaad/ledger/pkg/domain/events"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryEventBus_EmitDispatchesByType(t *testing.T) {
	bus := NewWithMemory(slog.New(slog.NewTextHandler(io.Discard, nil)))

	var got []events.Event
	bus.Register(events.EventTypeTransactionRecorded, func(_ context.Context, e events.Event) error {
		got = append(got, e)
		return nil
	})
	// failing and panicking handlers do not stop the others
	bus.Register(events.EventTypeTransactionRecorded, func(context.Context, events.Event) error {
		return errors.New("boom")
	})
	bus.Register(events.EventTypeTransactionRecorded, func(context.Context, events.Event) error {
		panic("boom")
	})

	evt := &events.TransactionRecorded{ID: uuid.New(), Kind: "deposit", Amount: 100, Status: "success"}
	require.NoError(t, bus.Emit(context.Background(), evt))
	require.NoError(t, bus.Emit(context.Background(), &events.EmployeeRemoved{AccountID: uuid.New()}))

	require.Len(t, got, 1)
	assert.Same(t, evt, got[0])
	assert.Len(t, bus.Published(), 2)

	bus.ClearPublished()
	assert.Empty(t, bus.Published())
}

func TestEnvelopeRoundTrip(t *testing.T) {
	counterparty := uuid.New()
	in := &events.TransactionRecorded{
		ID: uuid.New(), AccountID: uuid.New(), Kind: "transfer", Amount: 30000,
		Status: "success", CounterpartyID: &counterparty,
	}
	raw, err := encodeEnvelope(in)
	require.NoError(t, err)

	out, err := decodeEnvelope(raw)
	require.NoError(t, err)
	rec, ok := out.(*events.TransactionRecorded)
	require.True(t, ok)
	assert.Equal(t, in.ID, rec.ID)
	assert.Equal(t, counterparty, *rec.CounterpartyID)

	_, err = decodeEnvelope([]byte(`{"type":"Nope.Nope","payload":{}}`))
	assert.Error(t, err)
}

func TestNames(t *testing.T) {
	assert.Equal(t, "events:ledger:transactionrecorded", nameFor("events", events.EventTypeTransactionRecorded))
	assert.Equal(t, "ledger.events.ledger-transactionrecorded", topicNameFor("ledger.events", events.EventTypeTransactionRecorded))
	assert.Equal(t, []string{"a:1", "b:2"}, parseBrokers(" a:1, ,b:2"))
}
