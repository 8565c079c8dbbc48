package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/amirasaad/ledger/docs"
	"github.com/amirasaad/ledger/infra"
	"github.com/amirasaad/ledger/infra/initializer"
	"github.com/amirasaad/ledger/pkg/app"
	"github.com/amirasaad/ledger/pkg/config"
	"github.com/amirasaad/ledger/webapi"
	log "github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v2"
)

const shutdownTimeout = 10 * time.Second

// @title Ledger API
// @version 1.0.0
// @description Multi-role banking ledger API
// @host localhost:3000
// @BasePath /
//
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description "Enter your Bearer token in the format: `Bearer {token}`"
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	deps, res, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer func() {
		if err := res.Close(); err != nil {
			deps.Logger.Warn("closing resources", "error", err)
		}
	}()
	logger := deps.Logger

	version, err := infra.RunMigrations(res.DB)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	logger.Info("schema up to date", "version", version)

	ledgerApp := app.New(deps, cfg)

	if err := bootstrapAdmin(ledgerApp, cfg); err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	docs.SwaggerInfo.Host = addr
	docs.SwaggerInfo.Schemes = []string{cfg.Server.Scheme}

	fiberApp := webapi.SetupApp(ledgerApp)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting server",
			"env", cfg.Env,
			"address", addr,
			"scheme", cfg.Server.Scheme,
			"eventbus", cfg.EventBus.Driver,
		)
		errCh <- fiberApp.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	return shutdown(fiberApp, logger.Info)
}

func bootstrapAdmin(a *app.App, cfg *config.App) error {
	if cfg.Admin == nil || cfg.Admin.Phone == "" || cfg.Admin.Password == "" {
		a.Deps.Logger.Warn("ADMIN_PHONE or ADMIN_PASSWORD not set, skipping admin bootstrap")
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	admin, created, err := a.UserService.EnsureAdmin(ctx, cfg.Admin)
	if err != nil {
		return fmt.Errorf("failed to bootstrap admin: %w", err)
	}
	a.Deps.Logger.Info("admin ready", "accountID", admin.ID, "created", created)
	return nil
}

func shutdown(fiberApp *fiber.App, info func(msg string, args ...any)) error {
	info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := fiberApp.ShutdownWithContext(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}
