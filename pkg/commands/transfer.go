package commands

import (
	"github.com/amirasaad/ledger/pkg/money"
	"github.com/google/uuid"
)

// Transfer moves Amount from SenderID to the account holding RecipientPhone.
type Transfer struct {
	SenderID       uuid.UUID
	RecipientPhone string
	Amount         money.Amount
}
