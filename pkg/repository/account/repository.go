package account

import (
	"context"

	"github.com/amirasaad/ledger/pkg/dto"
	"github.com/google/uuid"
)

// Repository defines the interface for account data access operations.
// Lookups never return removed accounts; Exists* checks do, so removed
// employees keep their phone and aadhaar reserved.
type Repository interface {
	// Create inserts a new account record from a DTO.
	Create(ctx context.Context, create dto.AccountCreate) error

	// Get retrieves an account by its ID.
	Get(ctx context.Context, id uuid.UUID) (*dto.AccountRead, error)

	// GetByPhone retrieves an account by its holder phone.
	GetByPhone(ctx context.Context, phone string) (*dto.AccountRead, error)

	// GetForUpdate retrieves an account and locks its row until the surrounding
	// transaction ends.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*dto.AccountRead, error)

	// UpdateBalance writes a new balance if the row still carries ExpectedVersion.
	UpdateBalance(ctx context.Context, id uuid.UUID, update dto.BalanceUpdate) error

	// ExistsByPhone reports whether any account, removed or not, uses phone.
	ExistsByPhone(ctx context.Context, phone string) (bool, error)

	// ExistsByAadhaar reports whether any account, removed or not, uses aadhaar.
	ExistsByAadhaar(ctx context.Context, aadhaar string) (bool, error)

	// ListByRole lists accounts holding role, oldest first.
	ListByRole(ctx context.Context, role string) ([]*dto.AccountRead, error)

	// Remove soft-deletes the account with the given ID and role.
	Remove(ctx context.Context, id uuid.UUID, role string) error
}
