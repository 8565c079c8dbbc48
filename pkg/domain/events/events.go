package events

import (
	"time"

	"github.com/google/uuid"
)

// Event is anything that can travel on the event bus.
type Event interface {
	Type() string
}

// TransactionRecorded is emitted after a transaction record has been committed.
type TransactionRecorded struct {
	ID             uuid.UUID  `json:"id"`
	AccountID      uuid.UUID  `json:"account_id"`
	Kind           string     `json:"kind"`
	Amount         int64      `json:"amount"`
	Status         string     `json:"status"`
	CounterpartyID *uuid.UUID `json:"counterparty_id,omitempty"`
	Timestamp      time.Time  `json:"timestamp"`
}

func (e *TransactionRecorded) Type() string { return EventTypeTransactionRecorded.String() }

// AccountRegistered is emitted when a new account is created.
type AccountRegistered struct {
	AccountID uuid.UUID `json:"account_id"`
	Role      string    `json:"role"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *AccountRegistered) Type() string { return EventTypeAccountRegistered.String() }

// EmployeeRemoved is emitted when an admin removes an employee account.
type EmployeeRemoved struct {
	AccountID uuid.UUID `json:"account_id"`
	RemovedBy uuid.UUID `json:"removed_by"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *EmployeeRemoved) Type() string { return EventTypeEmployeeRemoved.String() }
