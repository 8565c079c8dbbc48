package account

import (
	"time"

	"github.com/amirasaad/ledger/pkg/money"
	"github.com/google/uuid"
)

// Kind is the type of balance-changing operation a record documents.
type Kind string

const (
	KindDeposit  Kind = "deposit"
	KindWithdraw Kind = "withdraw"
	KindTransfer Kind = "transfer"
)

// TransactionStatus is the outcome of the attempted operation.
type TransactionStatus string

const (
	TransactionStatusSuccess TransactionStatus = "success"
	TransactionStatusFailed  TransactionStatus = "failed"
)

// Transaction is an immutable audit record owned by AccountID.
// A successful transfer produces a "transfer" record for the sender and a
// "deposit" record for the recipient; each points at the other side through
// CounterpartyID.
type Transaction struct {
	ID             uuid.UUID
	AccountID      uuid.UUID
	Kind           Kind
	Amount         money.Amount
	CounterpartyID *uuid.UUID
	Status         TransactionStatus
	CreatedAt      time.Time
}

// NewTransaction creates a record for the given outcome. Amount must be positive
// even for failed attempts.
func NewTransaction(
	accountID uuid.UUID,
	kind Kind,
	amount money.Amount,
	status TransactionStatus,
	counterparty *uuid.UUID,
) (*Transaction, error) {
	if !amount.IsPositive() {
		return nil, ErrTransactionAmountMustBePositive
	}
	return &Transaction{
		ID:             uuid.New(),
		AccountID:      accountID,
		Kind:           kind,
		Amount:         amount,
		CounterpartyID: counterparty,
		Status:         status,
		CreatedAt:      time.Now().UTC(),
	}, nil
}

// NewTransactionFromData creates a Transaction from raw data (used for DB hydration or test fixtures).
func NewTransactionFromData(
	id, accountID uuid.UUID,
	kind Kind,
	amount money.Amount,
	status TransactionStatus,
	counterparty *uuid.UUID,
	created time.Time,
) *Transaction {
	return &Transaction{
		ID:             id,
		AccountID:      accountID,
		Kind:           kind,
		Amount:         amount,
		CounterpartyID: counterparty,
		Status:         status,
		CreatedAt:      created,
	}
}

// Succeeded reports whether the operation was applied.
func (t *Transaction) Succeeded() bool {
	return t.Status == TransactionStatusSuccess
}
