package repository

import (
	"context"

	"github.com/amirasaad/ledger/pkg/dto"
	"github.com/amirasaad/ledger/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new append-only transaction repository.
func NewTransactionRepository(db *gorm.DB) repository.TransactionRepository {
	return &transactionRepository{db: db}
}

// Create implements repository.TransactionRepository.
func (r *transactionRepository) Create(ctx context.Context, create dto.TransactionCreate) error {
	tx := Transaction{
		ID:             create.ID,
		AccountID:      create.AccountID,
		Kind:           create.Kind,
		Amount:         create.Amount,
		CounterpartyID: create.CounterpartyID,
		Status:         create.Status,
		CreatedAt:      create.CreatedAt,
	}
	return WrapError(func() error {
		return r.db.WithContext(ctx).Create(&tx).Error
	})
}

// ListByAccount implements repository.TransactionRepository.
func (r *transactionRepository) ListByAccount(
	ctx context.Context,
	accountID uuid.UUID,
) ([]*dto.TransactionRead, error) {
	var rows []transactionRow
	err := r.db.WithContext(ctx).
		Table("transactions AS t").
		Select("t.*, c.name AS counterparty_name, c.phone AS counterparty_phone").
		Joins("LEFT JOIN accounts AS c ON c.id = t.counterparty_id").
		Where("t.account_id = ?", accountID).
		Order("t.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	result := make([]*dto.TransactionRead, 0, len(rows))
	for i := range rows {
		result = append(result, mapTransactionRowToDTO(&rows[i]))
	}
	return result, nil
}

func mapTransactionRowToDTO(row *transactionRow) *dto.TransactionRead {
	read := &dto.TransactionRead{
		ID:             row.ID,
		AccountID:      row.AccountID,
		Kind:           row.Kind,
		Amount:         row.Amount,
		Status:         row.Status,
		CounterpartyID: row.CounterpartyID,
		CreatedAt:      row.CreatedAt,
	}
	if row.CounterpartyName != nil {
		read.CounterpartyName = *row.CounterpartyName
	}
	if row.CounterpartyPhone != nil {
		read.CounterpartyPhone = *row.CounterpartyPhone
	}
	return read
}
