// Package auth authenticates account holders by phone and password and
// issues the JWTs that carry their principal.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/amirasaad/ledger/pkg/config"
	"github.com/amirasaad/ledger/pkg/domain"
	"github.com/amirasaad/ledger/pkg/domain/account"
	"github.com/amirasaad/ledger/pkg/dto"
	"github.com/amirasaad/ledger/pkg/policy"
	"github.com/amirasaad/ledger/pkg/repository"
	"github.com/amirasaad/ledger/pkg/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidCredentials is returned for an unknown phone or a wrong password alike.
var ErrInvalidCredentials = fmt.Errorf("%w: invalid phone or password", domain.ErrUnauthorized)

// dummyHash is compared against when the phone is unknown so both failure
// paths spend the same bcrypt time.
const dummyHash = "$2a$10$.IIxpSc3OElWXLV2Wj517eUGmZ64IQgBNQ4OcFbanW85CTrgrIDQy"

const (
	claimUserID = "user_id"
	claimRole   = "role"
)

type Service struct {
	uow    repository.UnitOfWork
	cfg    *config.Jwt
	logger *slog.Logger
}

// NewWithJWT creates an auth service that signs HS256 tokens with cfg.Secret.
func NewWithJWT(
	uow repository.UnitOfWork,
	cfg *config.Jwt,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{uow: uow, cfg: cfg, logger: logger.With("service", "auth")}
}

func (s *Service) CheckPasswordHash(password, hash string) bool {
	valid := utils.CheckPasswordHash(password, hash)
	if !valid {
		s.logger.Error("Password hash check failed")
	}
	return valid
}

// Login authenticates any account holder by phone and password.
func (s *Service) Login(ctx context.Context, phone, password string) (*dto.AccountRead, error) {
	log := s.logger.With("context", "Login", "phone", phone)
	log.Debug("Login called")
	acct, err := s.authenticate(ctx, phone, password)
	if err != nil {
		log.Error("Login failed", "error", err)
		return nil, err
	}
	log.Info("Login successful", "accountID", acct.ID)
	return acct, nil
}

// AdminLogin is Login restricted to role=admin accounts. Non-admin holders get
// the same error as a wrong password.
func (s *Service) AdminLogin(ctx context.Context, phone, password string) (*dto.AccountRead, error) {
	log := s.logger.With("context", "AdminLogin", "phone", phone)
	log.Debug("AdminLogin called")
	acct, err := s.authenticate(ctx, phone, password)
	if err != nil {
		log.Error("AdminLogin failed", "error", err)
		return nil, err
	}
	if account.Role(acct.Role) != account.RoleAdmin {
		log.Error("AdminLogin failed: not an admin", "accountID", acct.ID)
		return nil, ErrInvalidCredentials
	}
	log.Info("AdminLogin successful", "accountID", acct.ID)
	return acct, nil
}

func (s *Service) authenticate(ctx context.Context, phone, password string) (*dto.AccountRead, error) {
	repo, err := s.uow.AccountRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get account repository: %w", err)
	}
	acct, err := repo.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			_ = utils.CheckPasswordHash(password, dummyHash)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	}
	if !utils.CheckPasswordHash(password, acct.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return acct, nil
}

// GenerateToken signs a token carrying the account's ID and role.
func (s *Service) GenerateToken(ctx context.Context, acct *dto.AccountRead) (string, error) {
	log := s.logger.With("accountID", acct.ID)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		claimUserID: acct.ID.String(),
		claimRole:   acct.Role,
		"exp":       time.Now().Add(s.cfg.Expiry).Unix(),
	})
	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		log.Error("GenerateToken failed", "error", err)
		return "", err
	}
	log.Debug("GenerateToken successful")
	return signed, nil
}

// PrincipalFromToken resolves the principal of a token already verified by
// the JWT middleware. The account is reloaded on every call so that a removed
// account loses access immediately and the stored role is the one enforced.
func (s *Service) PrincipalFromToken(ctx context.Context, token *jwt.Token) (*policy.Principal, error) {
	if token == nil {
		return nil, policy.ErrUnauthenticated
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, policy.ErrUnauthenticated
	}
	rawID, ok := claims[claimUserID].(string)
	if !ok {
		return nil, policy.ErrUnauthenticated
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, policy.ErrUnauthenticated
	}

	repo, err := s.uow.AccountRepository()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	}
	acct, err := repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Info("PrincipalFromToken: account no longer exists", "accountID", id)
			return nil, policy.ErrUnauthenticated
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	}
	role, err := account.ParseRole(acct.Role)
	if err != nil {
		return nil, policy.ErrUnauthenticated
	}
	return &policy.Principal{AccountID: acct.ID, Role: role}, nil
}
