package repository

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/amirasaad/ledger/pkg/domain"
	"gorm.io/gorm"
)

// ErrStaleAccount is returned when a balance write loses the version check.
var ErrStaleAccount = fmt.Errorf("%w: account version changed", domain.ErrConflict)

// sqliteCheckViolation is SQLITE_CONSTRAINT_CHECK. The sqlite dialector only
// translates unique and foreign key violations, so CHECK failures such as
// balance >= 0 arrive raw.
const sqliteCheckViolation = 275

// MapGormErrorToDomain converts GORM errors to domain errors.
// This keeps infrastructure concerns (database errors) within the infrastructure layer.
// Traverses the error chain to find GORM errors and maps them to appropriate domain errors.
func MapGormErrorToDomain(err error) error {
	if err == nil {
		return nil
	}

	currentErr := err
	for currentErr != nil {
		switch {
		case errors.Is(currentErr, gorm.ErrDuplicatedKey):
			return domain.ErrAlreadyExists
		case errors.Is(currentErr, gorm.ErrRecordNotFound):
			return domain.ErrNotFound
		case errors.Is(currentErr, gorm.ErrCheckConstraintViolated),
			isSQLiteCheckViolation(currentErr):
			return domain.ErrValidation
		}

		currentErr = errors.Unwrap(currentErr)
	}

	// Return original error if no mapping found
	return err
}

// isSQLiteCheckViolation reads the extended result code the same way the
// sqlite dialector does, without importing the cgo driver.
func isSQLiteCheckViolation(err error) bool {
	raw, mErr := json.Marshal(err)
	if mErr != nil {
		return false
	}
	var code struct {
		ExtendedCode int `json:"ExtendedCode"`
	}
	if json.Unmarshal(raw, &code) != nil {
		return false
	}
	return code.ExtendedCode == sqliteCheckViolation
}

// WrapError wraps a GORM operation and automatically maps errors.
//
// Usage:
//
//	err := WrapError(func() error {
//	    return r.db.WithContext(ctx).Create(&acct).Error
//	})
func WrapError(op func() error) error {
	return MapGormErrorToDomain(op())
}
