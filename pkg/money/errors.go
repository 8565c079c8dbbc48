package money

import (
	"fmt"

	"github.com/amirasaad/ledger/pkg/domain"
)

// Common money package errors. All of them are invalid-amount errors.
var (
	// ErrTooManyDecimals is returned when an amount has more than two decimal places.
	ErrTooManyDecimals = fmt.Errorf("%w: more than %d decimal places", domain.ErrInvalidAmount, Decimals)

	// ErrOverflow is returned when an amount or balance would not fit in int64 paise.
	ErrOverflow = fmt.Errorf("%w: value out of range", domain.ErrInvalidAmount)

	// ErrMalformed is returned when an amount cannot be parsed as a number.
	ErrMalformed = fmt.Errorf("%w: not a number", domain.ErrInvalidAmount)
)
