package repository

import (
	"github.com/amirasaad/ledger/pkg/repository/account"
	"github.com/amirasaad/ledger/pkg/repository/transaction"
)

// AccountRepository is the account store port.
type AccountRepository = account.Repository

// TransactionRepository is the transaction record store port.
type TransactionRepository = transaction.Repository
