package commands

import (
	"github.com/amirasaad/ledger/pkg/money"
	"github.com/google/uuid"
)

// Withdraw is a DTO for withdraw operations.
type Withdraw struct {
	AccountID uuid.UUID
	Amount    money.Amount
}
