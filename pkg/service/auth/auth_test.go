package auth_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	infrarepo "github.com/amirasaad/ledger/infra/repository"
	"github.com/amirasaad/ledger/internal/fixtures/mocks"
	"github.com/amirasaad/ledger/pkg/config"
	"github.com/amirasaad/ledger/pkg/domain"
	"github.com/amirasaad/ledger/pkg/domain/account"
	"github.com/amirasaad/ledger/pkg/dto"
	"github.com/amirasaad/ledger/pkg/policy"
	"github.com/amirasaad/ledger/pkg/repository"
	authsvc "github.com/amirasaad/ledger/pkg/service/auth"
	"github.com/amirasaad/ledger/pkg/testutils"
	"github.com/amirasaad/ledger/pkg/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var jwtCfg = &config.Jwt{Secret: "test-secret", Expiry: time.Hour}

type seedFunc func(name, phone, role, password string) *dto.AccountRead

func newService(t *testing.T) (*authsvc.Service, seedFunc) {
	t.Helper()
	svc, seed, _ := newServiceWithStore(t)
	return svc, seed
}

func newServiceWithStore(t *testing.T) (*authsvc.Service, seedFunc, repository.UnitOfWork) {
	t.Helper()
	db := testutils.NewTestDB(t)
	uow := infrarepo.NewUoW(db)
	svc := authsvc.NewWithJWT(uow, jwtCfg, slog.Default())
	seed := func(name, phone, role, password string) *dto.AccountRead {
		hash, err := utils.HashPassword(password, bcrypt.MinCost)
		require.NoError(t, err)
		return testutils.SeedAccount(t, db, testutils.AccountSeed{
			Name: name, Phone: phone, Role: role, PasswordHash: hash,
		})
	}
	return svc, seed, uow
}

func parse(t *testing.T, signed string) *jwt.Token {
	t.Helper()
	token, err := jwt.Parse(signed, func(*jwt.Token) (any, error) { return []byte(jwtCfg.Secret), nil })
	require.NoError(t, err)
	return token
}

func TestCheckPasswordHash(t *testing.T) {
	t.Parallel()
	hash, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	s := authsvc.NewWithJWT(nil, jwtCfg, slog.Default())
	assert.True(t, s.CheckPasswordHash("password", string(hash)))
	assert.False(t, s.CheckPasswordHash("wrong", string(hash)))
}

func TestLogin(t *testing.T) {
	t.Parallel()
	svc, seed := newService(t)
	alice := seed("Alice", "9000000001", "user", "secret1")

	t.Run("success", func(t *testing.T) {
		got, err := svc.Login(context.Background(), "9000000001", "secret1")
		require.NoError(t, err)
		assert.Equal(t, alice.ID, got.ID)
	})

	t.Run("wrong password and unknown phone look the same", func(t *testing.T) {
		_, errWrong := svc.Login(context.Background(), "9000000001", "nope")
		_, errUnknown := svc.Login(context.Background(), "9999999999", "secret1")
		require.ErrorIs(t, errWrong, authsvc.ErrInvalidCredentials)
		require.ErrorIs(t, errUnknown, authsvc.ErrInvalidCredentials)
		assert.ErrorIs(t, errWrong, domain.ErrUnauthorized)
		assert.Equal(t, errWrong.Error(), errUnknown.Error())
	})
}

func TestAdminLogin(t *testing.T) {
	t.Parallel()
	svc, seed := newService(t)
	admin := seed("Root", "9000000009", "admin", "adminpass")
	seed("Emp", "9000000005", "employee", "emppass")

	got, err := svc.AdminLogin(context.Background(), "9000000009", "adminpass")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, got.ID)

	_, err = svc.AdminLogin(context.Background(), "9000000005", "emppass")
	assert.ErrorIs(t, err, authsvc.ErrInvalidCredentials)
}

func TestLogin_StoreFailure(t *testing.T) {
	t.Parallel()
	uow := mocks.NewMockUnitOfWork(t)
	repo := mocks.NewMockAccountRepository(t)
	uow.On("AccountRepository").Return(repo, nil).Once()
	repo.On("GetByPhone", mock.Anything, "9000000001").Return(nil, errors.New("connection refused")).Once()

	svc := authsvc.NewWithJWT(uow, jwtCfg, slog.Default())
	_, err := svc.Login(context.Background(), "9000000001", "x")
	require.ErrorIs(t, err, domain.ErrUnavailable)
	assert.NotErrorIs(t, err, domain.ErrUnauthorized)
}

func TestGenerateTokenAndPrincipal(t *testing.T) {
	t.Parallel()
	svc, seed := newService(t)
	emp := seed("Emp", "9000000011", "employee", "emppass")

	signed, err := svc.GenerateToken(context.Background(), emp)
	require.NoError(t, err)

	p, err := svc.PrincipalFromToken(context.Background(), parse(t, signed))
	require.NoError(t, err)
	assert.Equal(t, emp.ID, p.AccountID)
	assert.Equal(t, account.RoleEmployee, p.Role)
}

func TestPrincipalFromToken_RoleComesFromStore(t *testing.T) {
	t.Parallel()
	svc, seed := newService(t)
	user := seed("Bob", "9000000012", "user", "bobpass")

	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID.String(),
		"role":    "admin",
	})
	p, err := svc.PrincipalFromToken(context.Background(), forged)
	require.NoError(t, err)
	assert.Equal(t, account.RoleUser, p.Role)
}

func TestPrincipalFromToken_RemovedAccount(t *testing.T) {
	t.Parallel()
	svc, seed, uow := newServiceWithStore(t)
	emp := seed("Gone", "9000000013", "employee", "emppass")

	signed, err := svc.GenerateToken(context.Background(), emp)
	require.NoError(t, err)
	token := parse(t, signed)

	_, err = svc.PrincipalFromToken(context.Background(), token)
	require.NoError(t, err)

	repo, err := uow.AccountRepository()
	require.NoError(t, err)
	require.NoError(t, repo.Remove(context.Background(), emp.ID, "employee"))

	_, err = svc.PrincipalFromToken(context.Background(), token)
	require.ErrorIs(t, err, policy.ErrUnauthenticated)
}

func TestPrincipalFromToken_StoreFailure(t *testing.T) {
	t.Parallel()
	id := uuid.New()
	uow := mocks.NewMockUnitOfWork(t)
	repo := mocks.NewMockAccountRepository(t)
	uow.On("AccountRepository").Return(repo, nil).Once()
	repo.On("Get", mock.Anything, id).Return(nil, errors.New("connection refused")).Once()

	svc := authsvc.NewWithJWT(uow, jwtCfg, slog.Default())
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": id.String(), "role": "user"})
	_, err := svc.PrincipalFromToken(context.Background(), token)
	require.ErrorIs(t, err, domain.ErrUnavailable)
	assert.NotErrorIs(t, err, domain.ErrUnauthorized)
}

func TestPrincipalFromToken_Rejects(t *testing.T) {
	t.Parallel()
	svc, _ := newService(t)

	tests := []struct {
		name   string
		claims jwt.MapClaims
	}{
		{name: "missing user id", claims: jwt.MapClaims{"role": "user"}},
		{name: "bad user id", claims: jwt.MapClaims{"user_id": "nope", "role": "user"}},
		{name: "unknown account", claims: jwt.MapClaims{"user_id": uuid.NewString(), "role": "user"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.PrincipalFromToken(context.Background(), jwt.NewWithClaims(jwt.SigningMethodHS256, tt.claims))
			assert.ErrorIs(t, err, domain.ErrUnauthorized)
		})
	}

	_, err := svc.PrincipalFromToken(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
