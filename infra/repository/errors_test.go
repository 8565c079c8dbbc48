package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/amirasaad/ledger/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// sqliteError has the exported shape of the cgo driver's error.
type sqliteError struct {
	Code         int
	ExtendedCode int
	SystemErrno  int
}

func (e sqliteError) Error() string { return fmt.Sprintf("sqlite error %d", e.ExtendedCode) }

func TestMapGormErrorToDomain_LedgerConstraints(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   error
		want error
	}{
		{name: "duplicate phone or aadhaar", in: gorm.ErrDuplicatedKey, want: domain.ErrAlreadyExists},
		{name: "balance check on postgres", in: gorm.ErrCheckConstraintViolated, want: domain.ErrValidation},
		{name: "balance check on sqlite", in: sqliteError{Code: 19, ExtendedCode: 275}, want: domain.ErrValidation},
		{name: "wrapped balance check", in: fmt.Errorf("update accounts: %w", sqliteError{Code: 19, ExtendedCode: 275}), want: domain.ErrValidation},
		{name: "missing account", in: gorm.ErrRecordNotFound, want: domain.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.ErrorIs(t, MapGormErrorToDomain(tt.in), tt.want)
		})
	}
}

func TestMapGormErrorToDomain_PassesThroughOtherErrors(t *testing.T) {
	t.Parallel()
	assert.NoError(t, MapGormErrorToDomain(nil))

	busy := sqliteError{Code: 5, ExtendedCode: 5}
	assert.Equal(t, busy, MapGormErrorToDomain(busy))

	down := errors.New("dial tcp: connection refused")
	assert.Same(t, down, MapGormErrorToDomain(down))
}

func TestErrStaleAccount(t *testing.T) {
	t.Parallel()
	require.ErrorIs(t, ErrStaleAccount, domain.ErrConflict)
	assert.NotErrorIs(t, ErrStaleAccount, domain.ErrValidation)
	assert.ErrorIs(t, WrapError(func() error { return ErrStaleAccount }), domain.ErrConflict)
}
