package dto

import (
	"time"

	"github.com/google/uuid"
)

// TransactionRead is a read-optimized DTO for history queries. Counterparty
// fields are resolved from the accounts table when CounterpartyID is set.
type TransactionRead struct {
	ID                uuid.UUID
	AccountID         uuid.UUID
	Kind              string
	Amount            int64 // paise
	Status            string
	CounterpartyID    *uuid.UUID
	CounterpartyName  string
	CounterpartyPhone string
	CreatedAt         time.Time
}

// TransactionCreate is a DTO for appending a new transaction record.
type TransactionCreate struct {
	ID             uuid.UUID
	AccountID      uuid.UUID
	Kind           string
	Amount         int64
	Status         string
	CounterpartyID *uuid.UUID
	CreatedAt      time.Time
}
