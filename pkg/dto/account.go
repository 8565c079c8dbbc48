package dto

import (
	"time"

	"github.com/google/uuid"
)

// AccountRead is a read-optimized DTO for account queries and API responses.
type AccountRead struct {
	ID           uuid.UUID
	Name         string
	Phone        string
	Aadhaar      string
	Category     string
	Role         string
	Balance      int64 // paise
	PasswordHash string
	Version      int64 // optimistic lock token for balance writes
	CreatedAt    time.Time
}

// AccountCreate is a DTO for creating a new account. Balance always starts at zero.
type AccountCreate struct {
	ID           uuid.UUID
	Name         string
	Phone        string
	Aadhaar      string
	Category     string
	Role         string
	PasswordHash string
}

// BalanceUpdate is a DTO for a guarded balance write.
type BalanceUpdate struct {
	Balance         int64
	ExpectedVersion int64
}
