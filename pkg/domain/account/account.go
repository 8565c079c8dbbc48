package account

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/amirasaad/ledger/pkg/domain"
	"github.com/amirasaad/ledger/pkg/money"
	"github.com/amirasaad/ledger/pkg/utils"
	"github.com/google/uuid"
)

var (
	// ErrTransactionAmountMustBePositive is returned when a transaction amount is not positive.
	ErrTransactionAmountMustBePositive = fmt.Errorf("%w: transaction amount must be positive", domain.ErrInvalidAmount)

	// ErrInsufficientFunds is returned when an account has insufficient funds for a withdrawal or transfer.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrAccountNotFound is returned when an account cannot be found.
	ErrAccountNotFound = fmt.Errorf("account %w", domain.ErrNotFound)

	// ErrRecipientNotFound is returned when no account matches a transfer's recipient phone.
	ErrRecipientNotFound = fmt.Errorf("recipient %w", domain.ErrNotFound)

	// ErrCannotTransferToSameAccount is returned when a transfer is attempted from an account to itself.
	ErrCannotTransferToSameAccount = errors.New("cannot transfer to your own account")

	// ErrInvalidRole is returned for a role outside the closed set.
	ErrInvalidRole = fmt.Errorf("%w: invalid role", domain.ErrValidation)

	// ErrInvalidCategory is returned for an account type other than savings or current.
	ErrInvalidCategory = fmt.Errorf("%w: account type must be savings or current", domain.ErrValidation)

	// ErrInvalidPhone is returned when a phone number is not 10 digits.
	ErrInvalidPhone = fmt.Errorf("%w: phone must be 10 digits", domain.ErrValidation)

	// ErrInvalidAadhaar is returned when a national ID is not 12 digits.
	ErrInvalidAadhaar = fmt.Errorf("%w: aadhaar must be 12 digits", domain.ErrValidation)

	// ErrNameRequired is returned when the display name is blank.
	ErrNameRequired = fmt.Errorf("%w: name is required", domain.ErrValidation)

	// ErrPhoneTaken is returned when another account already uses the phone number.
	ErrPhoneTaken = fmt.Errorf("%w: account with this phone number already exists", domain.ErrAlreadyExists)

	// ErrAadhaarTaken is returned when another account already uses the aadhaar number.
	ErrAadhaarTaken = fmt.Errorf("%w: account with this aadhaar already exists", domain.ErrAlreadyExists)
)

// Role is the closed set of roles an account can hold.
type Role string

const (
	RoleUser     Role = "user"
	RoleEmployee Role = "employee"
	RoleManager  Role = "manager"
	RoleAdmin    Role = "admin"
)

// ParseRole converts a raw string into a Role.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", ErrInvalidRole
	}
	return r, nil
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleEmployee, RoleManager, RoleAdmin:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }

// Category is the account type.
type Category string

const (
	CategorySavings Category = "savings"
	CategoryCurrent Category = "current"
)

// Valid reports whether c is savings or current.
func (c Category) Valid() bool {
	return c == CategorySavings || c == CategoryCurrent
}

// Account represents one holder's balance and identity.
// It is the aggregate root for balance changes.
//
// Invariants:
//   - Balance is never negative.
//   - Phone and Aadhaar are unique across the ledger (enforced by the store).
//   - Role is one of the closed set of roles.
type Account struct {
	ID           uuid.UUID
	Name         string
	Phone        string
	Aadhaar      string
	Category     Category
	Role         Role
	Balance      money.Amount
	PasswordHash string
	// Version is bumped on every balance write and guards concurrent updates.
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Builder provides a fluent API for constructing Account instances.
type Builder struct {
	id           uuid.UUID
	name         string
	phone        string
	aadhaar      string
	category     Category
	role         Role
	balance      money.Amount
	passwordHash string
	version      int64
	createdAt    time.Time
	updatedAt    time.Time
}

// New creates a new Builder with a fresh UUID, role user and a savings account.
func New() *Builder {
	now := time.Now().UTC()
	return &Builder{
		id:        uuid.New(),
		role:      RoleUser,
		category:  CategorySavings,
		createdAt: now,
		updatedAt: now,
	}
}

func (b *Builder) WithID(id uuid.UUID) *Builder {
	b.id = id
	return b
}

func (b *Builder) WithName(name string) *Builder {
	b.name = strings.TrimSpace(name)
	return b
}

func (b *Builder) WithPhone(phone string) *Builder {
	b.phone = strings.TrimSpace(phone)
	return b
}

func (b *Builder) WithAadhaar(aadhaar string) *Builder {
	b.aadhaar = strings.TrimSpace(aadhaar)
	return b
}

func (b *Builder) WithCategory(c Category) *Builder {
	b.category = c
	return b
}

func (b *Builder) WithRole(r Role) *Builder {
	b.role = r
	return b
}

// WithBalance sets the balance. Only used when hydrating from the store or in tests.
func (b *Builder) WithBalance(balance money.Amount) *Builder {
	b.balance = balance
	return b
}

// WithPasswordHash sets an already hashed password.
func (b *Builder) WithPasswordHash(hash string) *Builder {
	b.passwordHash = hash
	return b
}

func (b *Builder) WithVersion(v int64) *Builder {
	b.version = v
	return b
}

func (b *Builder) WithCreatedAt(t time.Time) *Builder {
	b.createdAt = t
	return b
}

func (b *Builder) WithUpdatedAt(t time.Time) *Builder {
	b.updatedAt = t
	return b
}

// Build validates the identity attributes and returns the Account.
func (b *Builder) Build() (*Account, error) {
	if b.name == "" {
		return nil, ErrNameRequired
	}
	if !utils.IsPhone(b.phone) {
		return nil, ErrInvalidPhone
	}
	if !utils.IsAadhaar(b.aadhaar) {
		return nil, ErrInvalidAadhaar
	}
	if !b.category.Valid() {
		return nil, ErrInvalidCategory
	}
	if !b.role.Valid() {
		return nil, ErrInvalidRole
	}
	if b.balance < 0 {
		return nil, ErrInsufficientFunds
	}
	return &Account{
		ID:           b.id,
		Name:         b.name,
		Phone:        b.phone,
		Aadhaar:      b.aadhaar,
		Category:     b.category,
		Role:         b.role,
		Balance:      b.balance,
		PasswordHash: b.passwordHash,
		Version:      b.version,
		CreatedAt:    b.createdAt,
		UpdatedAt:    b.updatedAt,
	}, nil
}

// CanCover reports whether the balance is at least amount.
func (a *Account) CanCover(amount money.Amount) bool {
	return a.Balance >= amount
}

// Credit adds amount to the balance.
func (a *Account) Credit(amount money.Amount) error {
	if !amount.IsPositive() {
		return ErrTransactionAmountMustBePositive
	}
	bal, err := a.Balance.Add(amount)
	if err != nil {
		return err
	}
	a.Balance = bal
	a.UpdatedAt = time.Now().UTC()
	return nil
}

// Debit removes amount from the balance, refusing to go below zero.
func (a *Account) Debit(amount money.Amount) error {
	if !amount.IsPositive() {
		return ErrTransactionAmountMustBePositive
	}
	if !a.CanCover(amount) {
		return ErrInsufficientFunds
	}
	a.Balance -= amount
	a.UpdatedAt = time.Now().UTC()
	return nil
}
