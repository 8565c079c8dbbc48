package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/amirasaad/ledger/pkg/config"
	"github.com/amirasaad/ledger/pkg/domain"
	"github.com/amirasaad/ledger/pkg/domain/account"
	"github.com/amirasaad/ledger/pkg/policy"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testJwt = &config.Jwt{Secret: "middleware-secret", Expiry: time.Hour}

type claimsResolver struct{}

func (claimsResolver) PrincipalFromToken(_ context.Context, token *jwt.Token) (*policy.Principal, error) {
	if token == nil {
		return nil, policy.ErrUnauthenticated
	}
	claims := token.Claims.(jwt.MapClaims)
	id, err := uuid.Parse(claims["user_id"].(string))
	if err != nil {
		return nil, policy.ErrUnauthenticated
	}
	return &policy.Principal{AccountID: id, Role: account.Role(claims["role"].(string))}, nil
}

func sign(t *testing.T, id uuid.UUID, role string, secret string) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": id.String(),
		"role":    role,
		"exp":     time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

type failingResolver struct{ err error }

func (r failingResolver) PrincipalFromToken(context.Context, *jwt.Token) (*policy.Principal, error) {
	return nil, r.err
}

func newProtectedApp(op policy.Operation) *fiber.App {
	return newAppWithResolver(claimsResolver{}, op)
}

func newAppWithResolver(resolver PrincipalResolver, op policy.Operation) *fiber.App {
	app := fiber.New()
	app.Get("/", JwtProtected(testJwt), Authorize(resolver, op), func(c *fiber.Ctx) error {
		p, ok := Principal(c)
		if !ok {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		fromCtx, ok := policy.FromContext(c.UserContext())
		if !ok || fromCtx.AccountID != p.AccountID {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		return c.SendString(p.AccountID.String())
	})
	return app
}

func do(t *testing.T, app *fiber.App, token string) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close() //nolint:errcheck
	return resp.StatusCode
}

func TestProtected_Unauthorized(t *testing.T) {
	t.Parallel()
	app := newProtectedApp(policy.OpDeposit)
	assert.Equal(t, fiber.StatusUnauthorized, do(t, app, ""))
	assert.Equal(t, fiber.StatusUnauthorized, do(t, app, "garbage"))
	assert.Equal(t, fiber.StatusUnauthorized, do(t, app, sign(t, uuid.New(), "user", "other-secret")))
}

func TestAuthorize_Forbidden(t *testing.T) {
	t.Parallel()
	app := newProtectedApp(policy.OpListUsers)
	assert.Equal(t, fiber.StatusForbidden, do(t, app, sign(t, uuid.New(), "user", testJwt.Secret)))
	assert.Equal(t, fiber.StatusOK, do(t, app, sign(t, uuid.New(), "employee", testJwt.Secret)))
}

func TestAuthorize_SetsPrincipal(t *testing.T) {
	t.Parallel()
	app := newProtectedApp(policy.OpDeposit)
	assert.Equal(t, fiber.StatusOK, do(t, app, sign(t, uuid.New(), "user", testJwt.Secret)))
}

func TestAuthorize_ResolverFailures(t *testing.T) {
	t.Parallel()
	token := sign(t, uuid.New(), "employee", testJwt.Secret)

	gone := newAppWithResolver(failingResolver{err: policy.ErrUnauthenticated}, policy.OpListUsers)
	assert.Equal(t, fiber.StatusUnauthorized, do(t, gone, token))

	down := newAppWithResolver(failingResolver{err: fmt.Errorf("%w: db down", domain.ErrUnavailable)}, policy.OpListUsers)
	assert.Equal(t, fiber.StatusServiceUnavailable, do(t, down, token))
}

func TestJwtError(t *testing.T) {
	t.Parallel()
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		return jwtError(c, errors.New("missing or malformed JWT"))
	})
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	defer resp.Body.Close() //nolint:errcheck
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
