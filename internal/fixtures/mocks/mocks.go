// Package mocks holds testify mocks of the repository and event bus ports.
package mocks

import (
	"context"
	"reflect"

	"github.com/amirasaad/ledger/pkg/domain/events"
	"github.com/amirasaad/ledger/pkg/dto"
	"github.com/amirasaad/ledger/pkg/eventbus"
	"github.com/amirasaad/ledger/pkg/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockUnitOfWork is a mock of repository.UnitOfWork. Do runs fn against the
// mock itself unless the expectation returns an error.
type MockUnitOfWork struct {
	mock.Mock
}

// NewMockUnitOfWork creates a MockUnitOfWork whose expectations are asserted on cleanup.
func NewMockUnitOfWork(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockUnitOfWork {
	m := &MockUnitOfWork{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockUnitOfWork) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	args := m.Called(ctx, fn)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(m)
}

func (m *MockUnitOfWork) GetRepository(repoType reflect.Type) (any, error) {
	args := m.Called(repoType)
	return args.Get(0), args.Error(1)
}

func (m *MockUnitOfWork) AccountRepository() (repository.AccountRepository, error) {
	args := m.Called()
	repo, _ := args.Get(0).(repository.AccountRepository)
	return repo, args.Error(1)
}

func (m *MockUnitOfWork) TransactionRepository() (repository.TransactionRepository, error) {
	args := m.Called()
	repo, _ := args.Get(0).(repository.TransactionRepository)
	return repo, args.Error(1)
}

// MockAccountRepository is a mock of repository.AccountRepository.
type MockAccountRepository struct {
	mock.Mock
}

// NewMockAccountRepository creates a MockAccountRepository whose expectations are asserted on cleanup.
func NewMockAccountRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockAccountRepository {
	m := &MockAccountRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockAccountRepository) Create(ctx context.Context, create dto.AccountCreate) error {
	return m.Called(ctx, create).Error(0)
}

func (m *MockAccountRepository) Get(ctx context.Context, id uuid.UUID) (*dto.AccountRead, error) {
	args := m.Called(ctx, id)
	acct, _ := args.Get(0).(*dto.AccountRead)
	return acct, args.Error(1)
}

func (m *MockAccountRepository) GetByPhone(ctx context.Context, phone string) (*dto.AccountRead, error) {
	args := m.Called(ctx, phone)
	acct, _ := args.Get(0).(*dto.AccountRead)
	return acct, args.Error(1)
}

func (m *MockAccountRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*dto.AccountRead, error) {
	args := m.Called(ctx, id)
	acct, _ := args.Get(0).(*dto.AccountRead)
	return acct, args.Error(1)
}

func (m *MockAccountRepository) UpdateBalance(ctx context.Context, id uuid.UUID, update dto.BalanceUpdate) error {
	return m.Called(ctx, id, update).Error(0)
}

func (m *MockAccountRepository) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	args := m.Called(ctx, phone)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) ExistsByAadhaar(ctx context.Context, aadhaar string) (bool, error) {
	args := m.Called(ctx, aadhaar)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) ListByRole(ctx context.Context, role string) ([]*dto.AccountRead, error) {
	args := m.Called(ctx, role)
	list, _ := args.Get(0).([]*dto.AccountRead)
	return list, args.Error(1)
}

func (m *MockAccountRepository) Remove(ctx context.Context, id uuid.UUID, role string) error {
	return m.Called(ctx, id, role).Error(0)
}

// MockTransactionRepository is a mock of repository.TransactionRepository.
type MockTransactionRepository struct {
	mock.Mock
}

// NewMockTransactionRepository creates a MockTransactionRepository whose expectations are asserted on cleanup.
func NewMockTransactionRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTransactionRepository {
	m := &MockTransactionRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockTransactionRepository) Create(ctx context.Context, create dto.TransactionCreate) error {
	return m.Called(ctx, create).Error(0)
}

func (m *MockTransactionRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*dto.TransactionRead, error) {
	args := m.Called(ctx, accountID)
	list, _ := args.Get(0).([]*dto.TransactionRead)
	return list, args.Error(1)
}

// MockBus is a mock of eventbus.Bus.
type MockBus struct {
	mock.Mock
}

// NewMockBus creates a MockBus whose expectations are asserted on cleanup.
func NewMockBus(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockBus {
	m := &MockBus{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockBus) Emit(ctx context.Context, event events.Event) error {
	return m.Called(ctx, event).Error(0)
}

func (m *MockBus) Register(eventType events.EventType, handler eventbus.HandlerFunc) {
	m.Called(eventType, handler)
}

var (
	_ repository.UnitOfWork            = (*MockUnitOfWork)(nil)
	_ repository.AccountRepository     = (*MockAccountRepository)(nil)
	_ repository.TransactionRepository = (*MockTransactionRepository)(nil)
	_ eventbus.Bus                     = (*MockBus)(nil)
)
