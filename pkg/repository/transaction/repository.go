package transaction

import (
	"context"

	"github.com/amirasaad/ledger/pkg/dto"
	"github.com/google/uuid"
)

// Repository defines the interface for transaction record access.
// Records are append-only: there is no update or delete.
type Repository interface {
	// Create appends a new transaction record from a DTO.
	Create(ctx context.Context, create dto.TransactionCreate) error

	// ListByAccount lists all records owned by accountID, newest first,
	// with counterparty name and phone resolved.
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*dto.TransactionRead, error)
}
