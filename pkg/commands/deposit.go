// Package commands contains command DTOs for service and handler orchestration.
package commands

import (
	"github.com/amirasaad/ledger/pkg/money"
	"github.com/google/uuid"
)

// Deposit is a DTO for deposit operations (command pattern).
type Deposit struct {
	AccountID uuid.UUID
	Amount    money.Amount
}
