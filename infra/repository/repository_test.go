package repository_test

import (
	"context"
	"testing"
	"time"

	infrarepo "github.com/amirasaad/ledger/infra/repository"
	"github.com/amirasaad/ledger/pkg/domain"
	"github.com/amirasaad/ledger/pkg/dto"
	"github.com/amirasaad/ledger/pkg/testutils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountRepository_CreateAndLookup(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := testutils.NewTestDB(t)
	repo := infrarepo.NewAccountRepository(db)

	acct := testutils.SeedAccount(t, db, testutils.AccountSeed{Name: "Asha", Phone: "9000000001"})

	byPhone, err := repo.GetByPhone(ctx, "9000000001")
	require.NoError(t, err)
	assert.Equal(t, acct.ID, byPhone.ID)
	assert.Equal(t, "user", byPhone.Role)

	_, err = repo.GetByPhone(ctx, "9999999999")
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = repo.Get(ctx, uuid.New())
	require.ErrorIs(t, err, domain.ErrNotFound)

	err = repo.Create(ctx, dto.AccountCreate{
		ID: uuid.New(), Name: "Dup", Phone: "9000000001", Aadhaar: "999988887777",
		Category: "savings", Role: "user",
	})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestAccountRepository_UpdateBalance(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := testutils.NewTestDB(t)
	repo := infrarepo.NewAccountRepository(db)
	acct := testutils.SeedAccount(t, db, testutils.AccountSeed{Name: "Asha", Phone: "9000000001", Balance: 1000})
	require.Equal(t, int64(1), acct.Version)

	require.NoError(t, repo.UpdateBalance(ctx, acct.ID, dto.BalanceUpdate{Balance: 700, ExpectedVersion: 1}))

	// a writer holding the old version loses
	err := repo.UpdateBalance(ctx, acct.ID, dto.BalanceUpdate{Balance: 900, ExpectedVersion: 1})
	require.ErrorIs(t, err, domain.ErrConflict)

	got, err := repo.GetForUpdate(ctx, acct.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(700), got.Balance)
	assert.Equal(t, int64(2), got.Version)
}

func TestAccountRepository_ConstraintErrors(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := testutils.NewTestDB(t)
	repo := infrarepo.NewAccountRepository(db)
	acct := testutils.SeedAccount(t, db, testutils.AccountSeed{
		Name: "Asha", Phone: "9000000001", Aadhaar: "111122223333", Balance: 500,
	})

	err := repo.Create(ctx, dto.AccountCreate{
		ID: uuid.New(), Name: "Other", Phone: "9000000002", Aadhaar: "111122223333",
		Category: "savings", Role: "user",
	})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists, "duplicate aadhaar")

	err = repo.UpdateBalance(ctx, acct.ID, dto.BalanceUpdate{Balance: -1, ExpectedVersion: acct.Version})
	require.ErrorIs(t, err, domain.ErrValidation, "balance >= 0")
	assert.NotErrorIs(t, err, domain.ErrConflict)

	got, err := repo.Get(ctx, acct.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(500), got.Balance)
	assert.Equal(t, acct.Version, got.Version)

	err = repo.UpdateBalance(ctx, acct.ID, dto.BalanceUpdate{Balance: 400, ExpectedVersion: acct.Version + 5})
	require.ErrorIs(t, err, infrarepo.ErrStaleAccount)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestAccountRepository_ListAndRemove(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := testutils.NewTestDB(t)
	repo := infrarepo.NewAccountRepository(db)

	testutils.SeedAccount(t, db, testutils.AccountSeed{Name: "U1", Phone: "9000000001"})
	emp := testutils.SeedAccount(t, db, testutils.AccountSeed{
		Name: "E1", Phone: "9000000002", Role: "employee", Category: "current",
	})

	users, err := repo.ListByRole(ctx, "user")
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "U1", users[0].Name)

	// role mismatch is a miss
	require.ErrorIs(t, repo.Remove(ctx, emp.ID, "user"), domain.ErrNotFound)
	require.NoError(t, repo.Remove(ctx, emp.ID, "employee"))

	employees, err := repo.ListByRole(ctx, "employee")
	require.NoError(t, err)
	assert.Empty(t, employees)

	_, err = repo.Get(ctx, emp.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)

	// removed accounts keep their identifiers reserved
	taken, err := repo.ExistsByPhone(ctx, "9000000002")
	require.NoError(t, err)
	assert.True(t, taken)
	taken, err = repo.ExistsByAadhaar(ctx, emp.Aadhaar)
	require.NoError(t, err)
	assert.True(t, taken)
	taken, err = repo.ExistsByPhone(ctx, "9000000003")
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestTransactionRepository_ListByAccount(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := testutils.NewTestDB(t)
	txRepo := infrarepo.NewTransactionRepository(db)

	alice := testutils.SeedAccount(t, db, testutils.AccountSeed{Name: "Alice", Phone: "9000000001"})
	bob := testutils.SeedAccount(t, db, testutils.AccountSeed{Name: "Bob", Phone: "9000000002"})

	base := time.Now().UTC()
	require.NoError(t, txRepo.Create(ctx, dto.TransactionCreate{
		ID: uuid.New(), AccountID: alice.ID, Kind: "deposit", Amount: 50000,
		Status: "success", CreatedAt: base,
	}))
	require.NoError(t, txRepo.Create(ctx, dto.TransactionCreate{
		ID: uuid.New(), AccountID: alice.ID, Kind: "transfer", Amount: 30000,
		Status: "success", CounterpartyID: &bob.ID, CreatedAt: base.Add(time.Second),
	}))
	require.NoError(t, txRepo.Create(ctx, dto.TransactionCreate{
		ID: uuid.New(), AccountID: bob.ID, Kind: "deposit", Amount: 30000,
		Status: "success", CounterpartyID: &alice.ID, CreatedAt: base.Add(time.Second),
	}))

	history, err := txRepo.ListByAccount(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)

	// newest first
	assert.Equal(t, "transfer", history[0].Kind)
	assert.Equal(t, "Bob", history[0].CounterpartyName)
	assert.Equal(t, "9000000002", history[0].CounterpartyPhone)
	assert.Equal(t, "deposit", history[1].Kind)
	assert.Nil(t, history[1].CounterpartyID)
	assert.Empty(t, history[1].CounterpartyName)

	empty, err := txRepo.ListByAccount(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, empty)
}
