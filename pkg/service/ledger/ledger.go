// Package ledger implements the money-movement engine: deposits, withdrawals,
// transfers and history over the ledger store.
//
// Every balance-changing operation:
//   - takes the in-process lock of each account it touches, in ID order;
//   - re-reads those accounts with row locks inside one unit of work;
//   - writes balances behind the optimistic version check;
//   - records exactly one transaction record for the initiator (plus the
//     recipient's deposit record on a successful transfer);
//   - publishes the committed records on the event bus.
//
// Failed attempts (insufficient funds) commit their failed record and then
// return the error; balances are untouched.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/amirasaad/ledger/pkg/commands"
	"github.com/amirasaad/ledger/pkg/config"
	"github.com/amirasaad/ledger/pkg/domain"
	"github.com/amirasaad/ledger/pkg/domain/account"
	"github.com/amirasaad/ledger/pkg/domain/events"
	"github.com/amirasaad/ledger/pkg/dto"
	"github.com/amirasaad/ledger/pkg/eventbus"
	"github.com/amirasaad/ledger/pkg/money"
	"github.com/amirasaad/ledger/pkg/repository"
	"github.com/google/uuid"
)

// DefaultOperationTimeout bounds one operation when no configuration is given.
const DefaultOperationTimeout = 5 * time.Second

// Service provides the ledger's balance operations.
type Service struct {
	uow     repository.UnitOfWork
	bus     eventbus.Bus
	locker  *Locker
	timeout time.Duration
	logger  *slog.Logger
}

// NewService creates a new Service with the provided dependencies.
func NewService(deps config.Deps) *Service {
	timeout := DefaultOperationTimeout
	if deps.Config != nil && deps.Config.Ledger != nil && deps.Config.Ledger.OperationTimeout > 0 {
		timeout = deps.Config.Ledger.OperationTimeout
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		uow:     deps.Uow,
		bus:     deps.EventBus,
		locker:  NewLocker(),
		timeout: timeout,
		logger:  logger.With("service", "ledger"),
	}
}

// TransferResult is the outcome of a successful transfer.
type TransferResult struct {
	SenderBalance money.Amount
	RecipientName string
	Amount        money.Amount
}

// Message renders the confirmation shown to the sender.
func (r *TransferResult) Message() string {
	return fmt.Sprintf("Transferred %s to %s", r.Amount, r.RecipientName)
}

// Deposit credits cmd.Amount to the account and returns the new balance.
func (s *Service) Deposit(ctx context.Context, cmd commands.Deposit) (money.Amount, error) {
	logger := s.logger.With("accountID", cmd.AccountID, "amount", cmd.Amount.String())
	logger.Info("Deposit started")
	if !cmd.Amount.IsPositive() {
		logger.Error("Deposit failed: invalid amount")
		return 0, account.ErrTransactionAmountMustBePositive
	}

	parent := ctx
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	unlock, err := s.locker.Lock(ctx, cmd.AccountID)
	if err != nil {
		err = classify(err)
		logger.Error("Deposit failed: lock error", "error", err)
		return 0, err
	}
	defer unlock()

	var (
		balance  money.Amount
		recorded []*account.Transaction
	)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accRepo, txRepo, err := repositories(uow)
		if err != nil {
			return err
		}
		acc, err := loadForUpdate(ctx, accRepo, cmd.AccountID)
		if err != nil {
			return err
		}
		version := acc.Version
		if err := acc.Credit(cmd.Amount); err != nil {
			return err
		}
		if err := saveBalance(ctx, accRepo, acc, version); err != nil {
			return err
		}
		rec, err := record(ctx, txRepo, acc.ID, account.KindDeposit, cmd.Amount, account.TransactionStatusSuccess, nil)
		if err != nil {
			return err
		}
		balance = acc.Balance
		recorded = append(recorded, rec)
		return nil
	})
	if err != nil {
		err = classify(err)
		logger.Error("Deposit failed", "error", err)
		return 0, err
	}

	s.publish(parent, recorded...)
	logger.Info("Deposit successful", "balance", balance.String())
	return balance, nil
}

// Withdraw debits cmd.Amount from the account and returns the new balance.
// When the balance does not cover the amount a failed record is committed and
// account.ErrInsufficientFunds is returned.
func (s *Service) Withdraw(ctx context.Context, cmd commands.Withdraw) (money.Amount, error) {
	logger := s.logger.With("accountID", cmd.AccountID, "amount", cmd.Amount.String())
	logger.Info("Withdraw started")
	if !cmd.Amount.IsPositive() {
		logger.Error("Withdraw failed: invalid amount")
		return 0, account.ErrTransactionAmountMustBePositive
	}

	parent := ctx
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	unlock, err := s.locker.Lock(ctx, cmd.AccountID)
	if err != nil {
		err = classify(err)
		logger.Error("Withdraw failed: lock error", "error", err)
		return 0, err
	}
	defer unlock()

	var (
		balance      money.Amount
		insufficient bool
		recorded     []*account.Transaction
	)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accRepo, txRepo, err := repositories(uow)
		if err != nil {
			return err
		}
		acc, err := loadForUpdate(ctx, accRepo, cmd.AccountID)
		if err != nil {
			return err
		}
		if !acc.CanCover(cmd.Amount) {
			rec, err := record(ctx, txRepo, acc.ID, account.KindWithdraw, cmd.Amount, account.TransactionStatusFailed, nil)
			if err != nil {
				return err
			}
			insufficient = true
			balance = acc.Balance
			recorded = append(recorded, rec)
			return nil
		}
		version := acc.Version
		if err := acc.Debit(cmd.Amount); err != nil {
			return err
		}
		if err := saveBalance(ctx, accRepo, acc, version); err != nil {
			return err
		}
		rec, err := record(ctx, txRepo, acc.ID, account.KindWithdraw, cmd.Amount, account.TransactionStatusSuccess, nil)
		if err != nil {
			return err
		}
		balance = acc.Balance
		recorded = append(recorded, rec)
		return nil
	})
	if err != nil {
		err = classify(err)
		logger.Error("Withdraw failed", "error", err)
		return 0, err
	}

	s.publish(parent, recorded...)
	if insufficient {
		logger.Warn("Withdraw failed: insufficient funds", "balance", balance.String())
		return 0, account.ErrInsufficientFunds
	}
	logger.Info("Withdraw successful", "balance", balance.String())
	return balance, nil
}

// Transfer moves cmd.Amount from the sender to the account holding
// cmd.RecipientPhone in one unit of work.
func (s *Service) Transfer(ctx context.Context, cmd commands.Transfer) (*TransferResult, error) {
	logger := s.logger.With("senderID", cmd.SenderID, "recipientPhone", cmd.RecipientPhone, "amount", cmd.Amount.String())
	logger.Info("Transfer started")
	if !cmd.Amount.IsPositive() {
		logger.Error("Transfer failed: invalid amount")
		return nil, account.ErrTransactionAmountMustBePositive
	}

	parent := ctx
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	// The pre-lookup only finds the lock keys; both rows are re-read FOR UPDATE
	// inside the unit of work.
	accRepo, err := s.uow.AccountRepository()
	if err != nil {
		return nil, classify(err)
	}
	sender, err := get(ctx, accRepo, cmd.SenderID)
	if err != nil {
		err = classify(err)
		logger.Error("Transfer failed: sender lookup", "error", err)
		return nil, err
	}
	recipient, err := accRepo.GetByPhone(ctx, cmd.RecipientPhone)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			err = account.ErrRecipientNotFound
		}
		err = classify(err)
		logger.Error("Transfer failed: recipient lookup", "error", err)
		return nil, err
	}
	if sender.Phone == recipient.Phone || sender.ID == recipient.ID {
		logger.Error("Transfer failed: self transfer")
		return nil, account.ErrCannotTransferToSameAccount
	}

	unlock, err := s.locker.Lock(ctx, sender.ID, recipient.ID)
	if err != nil {
		err = classify(err)
		logger.Error("Transfer failed: lock error", "error", err)
		return nil, err
	}
	defer unlock()

	var (
		result       *TransferResult
		insufficient bool
		recorded     []*account.Transaction
	)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accRepo, txRepo, err := repositories(uow)
		if err != nil {
			return err
		}
		from, to, err := loadPairForUpdate(ctx, accRepo, sender.ID, recipient.ID)
		if err != nil {
			return err
		}

		if !from.CanCover(cmd.Amount) {
			rec, err := record(ctx, txRepo, from.ID, account.KindTransfer, cmd.Amount, account.TransactionStatusFailed, &to.ID)
			if err != nil {
				return err
			}
			insufficient = true
			recorded = append(recorded, rec)
			return nil
		}

		fromVersion, toVersion := from.Version, to.Version
		if err := from.Debit(cmd.Amount); err != nil {
			return err
		}
		if err := to.Credit(cmd.Amount); err != nil {
			return err
		}
		if err := saveBalance(ctx, accRepo, from, fromVersion); err != nil {
			return err
		}
		if err := saveBalance(ctx, accRepo, to, toVersion); err != nil {
			return err
		}

		out, err := record(ctx, txRepo, from.ID, account.KindTransfer, cmd.Amount, account.TransactionStatusSuccess, &to.ID)
		if err != nil {
			return err
		}
		in, err := record(ctx, txRepo, to.ID, account.KindDeposit, cmd.Amount, account.TransactionStatusSuccess, &from.ID)
		if err != nil {
			return err
		}
		recorded = append(recorded, out, in)
		result = &TransferResult{
			SenderBalance: from.Balance,
			RecipientName: to.Name,
			Amount:        cmd.Amount,
		}
		return nil
	})
	if err != nil {
		err = classify(err)
		logger.Error("Transfer failed", "error", err)
		return nil, err
	}

	s.publish(parent, recorded...)
	if insufficient {
		logger.Warn("Transfer failed: insufficient funds")
		return nil, account.ErrInsufficientFunds
	}
	logger.Info("Transfer successful", "senderBalance", result.SenderBalance.String())
	return result, nil
}

// History returns the account's records, newest first, with counterparties resolved.
func (s *Service) History(ctx context.Context, accountID uuid.UUID) ([]*dto.TransactionRead, error) {
	logger := s.logger.With("accountID", accountID)
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	accRepo, err := s.uow.AccountRepository()
	if err != nil {
		return nil, classify(err)
	}
	if _, err := get(ctx, accRepo, accountID); err != nil {
		err = classify(err)
		logger.Error("History failed: account lookup", "error", err)
		return nil, err
	}
	txRepo, err := s.uow.TransactionRepository()
	if err != nil {
		return nil, classify(err)
	}
	records, err := txRepo.ListByAccount(ctx, accountID)
	if err != nil {
		err = classify(err)
		logger.Error("History failed", "error", err)
		return nil, err
	}
	return records, nil
}

// Balance returns the account's current balance.
func (s *Service) Balance(ctx context.Context, accountID uuid.UUID) (money.Amount, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	accRepo, err := s.uow.AccountRepository()
	if err != nil {
		return 0, classify(err)
	}
	acc, err := get(ctx, accRepo, accountID)
	if err != nil {
		return 0, classify(err)
	}
	return acc.Balance, nil
}

func (s *Service) publish(ctx context.Context, recorded ...*account.Transaction) {
	if s.bus == nil {
		return
	}
	for _, rec := range recorded {
		evt := &events.TransactionRecorded{
			ID:             rec.ID,
			AccountID:      rec.AccountID,
			Kind:           string(rec.Kind),
			Amount:         int64(rec.Amount),
			Status:         string(rec.Status),
			CounterpartyID: rec.CounterpartyID,
			Timestamp:      rec.CreatedAt,
		}
		if err := s.bus.Emit(ctx, evt); err != nil {
			s.logger.Warn("failed to publish transaction event", "transactionID", rec.ID, "error", err)
		}
	}
}

func repositories(uow repository.UnitOfWork) (repository.AccountRepository, repository.TransactionRepository, error) {
	accRepo, err := uow.AccountRepository()
	if err != nil {
		return nil, nil, err
	}
	txRepo, err := uow.TransactionRepository()
	if err != nil {
		return nil, nil, err
	}
	return accRepo, txRepo, nil
}

func get(ctx context.Context, repo repository.AccountRepository, id uuid.UUID) (*account.Account, error) {
	read, err := repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, account.ErrAccountNotFound
		}
		return nil, err
	}
	return toDomain(read), nil
}

func loadForUpdate(ctx context.Context, repo repository.AccountRepository, id uuid.UUID) (*account.Account, error) {
	read, err := repo.GetForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, account.ErrAccountNotFound
		}
		return nil, err
	}
	return toDomain(read), nil
}

// loadPairForUpdate row-locks both accounts in the same order the Locker uses.
func loadPairForUpdate(
	ctx context.Context,
	repo repository.AccountRepository,
	fromID, toID uuid.UUID,
) (from, to *account.Account, err error) {
	for _, id := range sortedUnique([]uuid.UUID{fromID, toID}) {
		acc, err := loadForUpdate(ctx, repo, id)
		if err != nil {
			return nil, nil, err
		}
		if id == fromID {
			from = acc
		} else {
			to = acc
		}
	}
	return from, to, nil
}

func saveBalance(ctx context.Context, repo repository.AccountRepository, acc *account.Account, expectedVersion int64) error {
	if err := repo.UpdateBalance(ctx, acc.ID, dto.BalanceUpdate{
		Balance:         int64(acc.Balance),
		ExpectedVersion: expectedVersion,
	}); err != nil {
		return err
	}
	acc.Version = expectedVersion + 1
	return nil
}

func record(
	ctx context.Context,
	repo repository.TransactionRepository,
	accountID uuid.UUID,
	kind account.Kind,
	amount money.Amount,
	status account.TransactionStatus,
	counterparty *uuid.UUID,
) (*account.Transaction, error) {
	rec, err := account.NewTransaction(accountID, kind, amount, status, counterparty)
	if err != nil {
		return nil, err
	}
	if err := repo.Create(ctx, dto.TransactionCreate{
		ID:             rec.ID,
		AccountID:      rec.AccountID,
		Kind:           string(rec.Kind),
		Amount:         int64(rec.Amount),
		Status:         string(rec.Status),
		CounterpartyID: rec.CounterpartyID,
		CreatedAt:      rec.CreatedAt,
	}); err != nil {
		return nil, err
	}
	return rec, nil
}

func toDomain(read *dto.AccountRead) *account.Account {
	return &account.Account{
		ID:           read.ID,
		Name:         read.Name,
		Phone:        read.Phone,
		Aadhaar:      read.Aadhaar,
		Category:     account.Category(read.Category),
		Role:         account.Role(read.Role),
		Balance:      money.Amount(read.Balance),
		PasswordHash: read.PasswordHash,
		Version:      read.Version,
		CreatedAt:    read.CreatedAt,
	}
}

// classify keeps domain errors and turns anything else coming out of the
// store, including timeouts, into domain.ErrUnavailable.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	}
	for _, known := range []error{
		domain.ErrNotFound,
		domain.ErrInvalidAmount,
		domain.ErrValidation,
		domain.ErrConflict,
		domain.ErrAlreadyExists,
		domain.ErrUnavailable,
		account.ErrInsufficientFunds,
		account.ErrCannotTransferToSameAccount,
	} {
		if errors.Is(err, known) {
			return err
		}
	}
	return fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
}
