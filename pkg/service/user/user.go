// Package user provides account-holder management: registration, staff
// lookups, employee administration and the admin bootstrap.
package user

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
	"github.com/amirasaad/ledger/pkg/repository"
	"github.com/amirasaad/ledger/pkg/utils"
	"github.com/google/uuid"
)

var (
	ErrPasswordRequired = fmt.Errorf("%w: password is required", domain.ErrValidation)
	// bcrypt ignores everything past 72 bytes.
	ErrPasswordTooLong = fmt.Errorf("%w: password must be at most 72 bytes", domain.ErrValidation)
	// ErrEmployeeNotFound is returned when the id does not name a live employee.
	ErrEmployeeNotFound = fmt.Errorf("%w: employee not found", domain.ErrNotFound)
)

// Service provides business logic for account holders.
type Service struct {
	uow          repository.UnitOfWork
	bus          eventbus.Bus
	passwordCost int
	logger       *slog.Logger
}

// NewService creates a new Service with the provided dependencies.
func NewService(deps config.Deps) *Service {
	cost := 0
	if deps.Config != nil && deps.Config.Auth != nil {
		cost = deps.Config.Auth.PasswordCost
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		uow:          deps.Uow,
		bus:          deps.EventBus,
		passwordCost: cost,
		logger:       logger.With("service", "user"),
	}
}

// Register creates a role=user account.
func (s *Service) Register(ctx context.Context, cmd commands.Register) (*dto.AccountRead, error) {
	log := s.logger.With("phone", cmd.Phone)
	log.Info("Register started")
	acct, err := s.create(ctx, newAccountInput{
		name:     cmd.Name,
		phone:    cmd.Phone,
		aadhaar:  cmd.Aadhaar,
		category: account.Category(cmd.Category),
		role:     account.RoleUser,
		password: cmd.Password,
	})
	if err != nil {
		log.Error("Register failed", "error", err)
		return nil, err
	}
	log.Info("Register successful", "accountID", acct.ID)
	return acct, nil
}

// CreateEmployee creates a role=employee account with a current category.
func (s *Service) CreateEmployee(ctx context.Context, cmd commands.CreateEmployee) (*dto.AccountRead, error) {
	log := s.logger.With("phone", cmd.Phone)
	log.Info("CreateEmployee started")
	acct, err := s.create(ctx, newAccountInput{
		name:     cmd.Name,
		phone:    cmd.Phone,
		aadhaar:  cmd.Aadhaar,
		category: account.CategoryCurrent,
		role:     account.RoleEmployee,
		password: cmd.Password,
	})
	if err != nil {
		log.Error("CreateEmployee failed", "error", err)
		return nil, err
	}
	log.Info("CreateEmployee successful", "accountID", acct.ID)
	return acct, nil
}

// EnsureAdmin creates the predefined admin unless an admin already holds the
// phone. It reports whether an account was created.
func (s *Service) EnsureAdmin(ctx context.Context, cfg *config.Admin) (*dto.AccountRead, bool, error) {
	if cfg == nil || cfg.Phone == "" || cfg.Password == "" {
		return nil, false, fmt.Errorf("%w: admin phone and password are required", domain.ErrValidation)
	}
	log := s.logger.With("phone", cfg.Phone)
	repo, err := s.uow.AccountRepository()
	if err != nil {
		return nil, false, err
	}
	existing, err := repo.GetByPhone(ctx, cfg.Phone)
	switch {
	case err == nil && account.Role(existing.Role) == account.RoleAdmin:
		log.Info("EnsureAdmin: admin already present", "accountID", existing.ID)
		return existing, false, nil
	case err == nil:
		return nil, false, account.ErrPhoneTaken
	case !errors.Is(err, domain.ErrNotFound):
		return nil, false, err
	}

	acct, err := s.create(ctx, newAccountInput{
		name:     cfg.Name,
		phone:    cfg.Phone,
		aadhaar:  cfg.Aadhaar,
		category: account.CategoryCurrent,
		role:     account.RoleAdmin,
		password: cfg.Password,
	})
	if err != nil {
		log.Error("EnsureAdmin failed", "error", err)
		return nil, false, err
	}
	log.Info("EnsureAdmin created admin", "accountID", acct.ID)
	return acct, true, nil
}

// ListUsers lists role=user accounts, oldest first.
func (s *Service) ListUsers(ctx context.Context) ([]*dto.AccountRead, error) {
	return s.listByRole(ctx, account.RoleUser)
}

// ListEmployees lists role=employee accounts that have not been removed.
func (s *Service) ListEmployees(ctx context.Context) ([]*dto.AccountRead, error) {
	return s.listByRole(ctx, account.RoleEmployee)
}

func (s *Service) listByRole(ctx context.Context, role account.Role) ([]*dto.AccountRead, error) {
	repo, err := s.uow.AccountRepository()
	if err != nil {
		return nil, err
	}
	list, err := repo.ListByRole(ctx, role.String())
	if err != nil {
		s.logger.Error("listByRole failed", "role", role, "error", err)
		return nil, err
	}
	return list, nil
}

// GetUser returns one account by ID.
func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (*dto.AccountRead, error) {
	repo, err := s.uow.AccountRepository()
	if err != nil {
		return nil, err
	}
	acct, err := repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, account.ErrAccountNotFound
		}
		return nil, err
	}
	return acct, nil
}

// GetByPhone returns one account by its holder phone.
func (s *Service) GetByPhone(ctx context.Context, phone string) (*dto.AccountRead, error) {
	repo, err := s.uow.AccountRepository()
	if err != nil {
		return nil, err
	}
	acct, err := repo.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, account.ErrAccountNotFound
		}
		return nil, err
	}
	return acct, nil
}

// RemoveEmployee soft-deletes a role=employee account. Balances are not touched
// and the employee's phone and aadhaar stay reserved.
func (s *Service) RemoveEmployee(ctx context.Context, id, removedBy uuid.UUID) error {
	log := s.logger.With("employeeID", id, "removedBy", removedBy)
	log.Info("RemoveEmployee started")
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		if err := repo.Remove(ctx, id, account.RoleEmployee.String()); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return ErrEmployeeNotFound
			}
			return err
		}
		return nil
	})
	if err != nil {
		log.Error("RemoveEmployee failed", "error", err)
		return err
	}
	s.publish(ctx, &events.EmployeeRemoved{AccountID: id, RemovedBy: removedBy, Timestamp: time.Now().UTC()})
	log.Info("RemoveEmployee successful")
	return nil
}

type newAccountInput struct {
	name     string
	phone    string
	aadhaar  string
	category account.Category
	role     account.Role
	password string
}

func (s *Service) create(ctx context.Context, in newAccountInput) (*dto.AccountRead, error) {
	if in.password == "" {
		return nil, ErrPasswordRequired
	}
	if len(in.password) > 72 {
		return nil, ErrPasswordTooLong
	}
	acct, err := account.New().
		WithName(in.name).
		WithPhone(in.phone).
		WithAadhaar(in.aadhaar).
		WithCategory(in.category).
		WithRole(in.role).
		Build()
	if err != nil {
		return nil, err
	}
	hash, err := utils.HashPassword(in.password, s.passwordCost)
	if err != nil {
		return nil, err
	}

	var created *dto.AccountRead
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		taken, err := repo.ExistsByPhone(ctx, acct.Phone)
		if err != nil {
			return err
		}
		if taken {
			return account.ErrPhoneTaken
		}
		taken, err = repo.ExistsByAadhaar(ctx, acct.Aadhaar)
		if err != nil {
			return err
		}
		if taken {
			return account.ErrAadhaarTaken
		}
		if err := repo.Create(ctx, dto.AccountCreate{
			ID:           acct.ID,
			Name:         acct.Name,
			Phone:        acct.Phone,
			Aadhaar:      acct.Aadhaar,
			Category:     string(acct.Category),
			Role:         acct.Role.String(),
			PasswordHash: hash,
		}); err != nil {
			return err
		}
		created, err = repo.Get(ctx, acct.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, &events.AccountRegistered{AccountID: created.ID, Role: created.Role, Timestamp: created.CreatedAt})
	return created, nil
}

func (s *Service) publish(ctx context.Context, evt events.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Emit(ctx, evt); err != nil {
		s.logger.Warn("failed to publish event", "type", evt.Type(), "error", err)
	}
}
