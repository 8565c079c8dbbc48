// Package app assembles the ledger services on top of the injected
// infrastructure.
package app

import (
	"github.com/amirasaad/ledger/pkg/config"
	"github.com/amirasaad/ledger/pkg/service/auth"
	"github.com/amirasaad/ledger/pkg/service/ledger"
	"github.com/amirasaad/ledger/pkg/service/user"
)

type App struct {
	Deps          *config.Deps
	Config        *config.App
	AuthService   *auth.Service
	UserService   *user.Service
	LedgerService *ledger.Service
}

func New(deps *config.Deps, cfg *config.App) *App {
	if deps.Config == nil {
		deps.Config = cfg
	}
	app := &App{
		Deps:   deps,
		Config: cfg,
	}
	app.setupEventBus()

	var jwtCfg *config.Jwt
	if cfg.Auth != nil {
		jwtCfg = cfg.Auth.Jwt
	}
	app.AuthService = auth.NewWithJWT(deps.Uow, jwtCfg, deps.Logger)
	app.UserService = user.NewService(*deps)
	app.LedgerService = ledger.NewService(*deps)
	return app
}
