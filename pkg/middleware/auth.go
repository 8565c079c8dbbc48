// Package middleware provides the Fiber middleware that authenticates
// requests and enforces the access policy.
package middleware

import (
	"context"
	"errors"

	"github.com/amirasaad/ledger/pkg/config"
	"github.com/amirasaad/ledger/pkg/domain"
	"github.com/amirasaad/ledger/pkg/policy"
	"github.com/amirasaad/ledger/webapi/common"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// tokenKey is where jwtware stores the verified token.
const tokenKey = "user"

const principalKey = "principal"

// PrincipalResolver turns a verified token into a principal.
type PrincipalResolver interface {
	PrincipalFromToken(ctx context.Context, token *jwt.Token) (*policy.Principal, error)
}

// JwtProtected verifies the bearer token with cfg's secret.
func JwtProtected(cfg *config.Jwt) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   jwtware.SigningKey{JWTAlg: jwtware.HS256, Key: []byte(cfg.Secret)},
		ContextKey:   tokenKey,
		ErrorHandler: jwtError,
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	return common.ProblemDetailsJSON(c, "Unauthorized", policy.ErrUnauthenticated, err.Error(), fiber.StatusUnauthorized)
}

// Authorize resolves the principal of a request verified by JwtProtected and
// rejects it unless the policy grants op. The principal is then available
// from Principal and from the request's user context.
func Authorize(resolver PrincipalResolver, op policy.Operation) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, _ := c.Locals(tokenKey).(*jwt.Token)
		p, err := resolver.PrincipalFromToken(c.UserContext(), token)
		if errors.Is(err, domain.ErrUnavailable) {
			return common.ProblemDetailsJSON(c, "Service Unavailable", err)
		}
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err, fiber.StatusUnauthorized)
		}
		if err := policy.Authorize(p, op); err != nil {
			return common.ProblemDetailsJSON(c, "Forbidden", err)
		}
		c.Locals(principalKey, p)
		c.SetUserContext(policy.NewContext(c.UserContext(), p))
		return c.Next()
	}
}

// Principal returns the principal stored by Authorize.
func Principal(c *fiber.Ctx) (*policy.Principal, bool) {
	p, ok := c.Locals(principalKey).(*policy.Principal)
	return p, ok && p != nil
}
