package testutils

import (
	"context"
	"fmt"
	"testing"

	infrarepo "github.com/amirasaad/ledger/infra/repository"
	"github.com/amirasaad/ledger/pkg/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB opens a private in-memory SQLite database with the ledger schema.
// A single connection keeps every session on the same in-memory database.
func NewTestDB(t testing.TB) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, infrarepo.AutoMigrate(db))
	return db
}

// AccountSeed describes an account inserted directly into the store.
type AccountSeed struct {
	Name         string
	Phone        string
	Aadhaar      string
	Role         string
	Category     string
	PasswordHash string
	Balance      int64
}

// SeedAccount inserts an account and sets its opening balance.
func SeedAccount(t testing.TB, db *gorm.DB, seed AccountSeed) *dto.AccountRead {
	t.Helper()
	ctx := context.Background()
	if seed.Role == "" {
		seed.Role = "user"
	}
	if seed.Category == "" {
		seed.Category = "savings"
	}
	if seed.Aadhaar == "" {
		seed.Aadhaar = "1234" + seed.Phone[2:]
	}
	repo := infrarepo.NewAccountRepository(db)
	id := uuid.New()
	require.NoError(t, repo.Create(ctx, dto.AccountCreate{
		ID:           id,
		Name:         seed.Name,
		Phone:        seed.Phone,
		Aadhaar:      seed.Aadhaar,
		Category:     seed.Category,
		Role:         seed.Role,
		PasswordHash: seed.PasswordHash,
	}))
	if seed.Balance > 0 {
		require.NoError(t, repo.UpdateBalance(ctx, id, dto.BalanceUpdate{Balance: seed.Balance}))
	}
	acct, err := repo.Get(ctx, id)
	require.NoError(t, err)
	return acct
}
