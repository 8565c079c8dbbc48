// Package webapi provides the HTTP surface of the ledger.
// It is organized into sub-packages per audience:
// - auth: registration and login
// - ledger: balance operations of the authenticated user
// - employee: staff views over user accounts
// - admin: employee administration
package webapi

import (
	"errors"
	"strings"

	"github.com/amirasaad/ledger/pkg/app"
	adminweb "github.com/amirasaad/ledger/webapi/admin"
	authweb "github.com/amirasaad/ledger/webapi/auth"
	"github.com/amirasaad/ledger/webapi/common"
	employeeweb "github.com/amirasaad/ledger/webapi/employee"
	ledgerweb "github.com/amirasaad/ledger/webapi/ledger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/gofiber/swagger"
)

// SetupApp Initialize Fiber with custom configuration
func SetupApp(app *app.App) *fiber.App {
	cfg := app.Config

	fiberApp := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		},
	})
	fiberApp.Get("/swagger/*", swagger.New(swagger.Config{
		TryItOutEnabled:      true,
		PersistAuthorization: true,
	}))

	if cfg.RateLimit != nil && cfg.RateLimit.MaxRequests > 0 {
		fiberApp.Use(limiter.New(limiter.Config{
			Max:          cfg.RateLimit.MaxRequests,
			Expiration:   cfg.RateLimit.Window,
			KeyGenerator: clientKey,
			LimitReached: func(c *fiber.Ctx) error {
				return common.ProblemDetailsJSON(
					c,
					"Too Many Requests",
					errors.New("rate limit exceeded"),
					fiber.StatusTooManyRequests,
				)
			},
		}))
	}
	if cfg.Cors != nil && cfg.Cors.AllowOrigins != "" {
		fiberApp.Use(cors.New(cors.Config{
			AllowOrigins: cfg.Cors.AllowOrigins,
			AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		}))
	}
	fiberApp.Use(recover.New())
	fiberApp.Use(logger.New())

	fiberApp.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Ledger API is running!")
	})

	authweb.Routes(fiberApp, app.AuthService, app.UserService)
	ledgerweb.Routes(fiberApp, app.LedgerService, app.AuthService, cfg)
	employeeweb.Routes(fiberApp, app.UserService, app.AuthService, cfg)
	adminweb.Routes(fiberApp, app.UserService, app.AuthService, cfg)
	return fiberApp
}

// clientKey identifies the caller for rate limiting. Behind a proxy the
// first X-Forwarded-For hop wins, then X-Real-IP, then the socket address.
func clientKey(c *fiber.Ctx) string {
	if forwardedFor := c.Get("X-Forwarded-For"); forwardedFor != "" {
		if i := strings.Index(forwardedFor, ","); i != -1 {
			return strings.TrimSpace(forwardedFor[:i])
		}
		return strings.TrimSpace(forwardedFor)
	}
	if realIP := c.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	return c.IP()
}
