package repository

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Account represents an account record in the database.
type Account struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"size:255;not null"`
	Phone        string    `gorm:"size:10;uniqueIndex;not null"`
	Aadhaar      string    `gorm:"size:12;uniqueIndex;not null"`
	Category     string    `gorm:"size:16;not null"`
	Role         string    `gorm:"size:16;not null;index"`
	Balance      int64     `gorm:"not null;check:balance >= 0"`
	PasswordHash string    `gorm:"not null"`
	Version      int64     `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	RemovedAt    gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for the Account model.
func (Account) TableName() string {
	return "accounts"
}

// Transaction represents a persisted, immutable transaction record.
type Transaction struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	AccountID      uuid.UUID  `gorm:"type:uuid;not null;index:idx_transactions_account_created,priority:1"`
	Kind           string     `gorm:"size:16;not null"`
	Amount         int64      `gorm:"not null;check:amount > 0"`
	CounterpartyID *uuid.UUID `gorm:"type:uuid"`
	Status         string     `gorm:"size:16;not null"`
	CreatedAt      time.Time  `gorm:"not null;index:idx_transactions_account_created,priority:2"`
}

// TableName specifies the table name for the Transaction model.
func (Transaction) TableName() string {
	return "transactions"
}

// transactionRow is a history row joined with its counterparty.
type transactionRow struct {
	Transaction
	CounterpartyName  *string
	CounterpartyPhone *string
}

// AutoMigrate creates or updates the ledger tables. Used for SQLite test
// databases; postgres deployments run the SQL migrations in infra/migrations.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&Account{}, &Transaction{})
}
