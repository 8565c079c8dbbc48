// Package handler exposes the ledger API as a single net/http handler for
// serverless deployments.
package handler

import (
	"log"
	"net/http"
	"sync"

	"github.com/amirasaad/ledger/infra"
	"github.com/amirasaad/ledger/infra/initializer"
	"github.com/amirasaad/ledger/pkg/app"
	"github.com/amirasaad/ledger/pkg/config"
	"github.com/amirasaad/ledger/webapi"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
)

var (
	once    sync.Once
	handler http.HandlerFunc
)

// Handler is the main entry point of the application.
// Think of it like the main() method
func Handler(w http.ResponseWriter, r *http.Request) {
	// This is needed to set the proper request path in `*fiber.Ctx`
	r.RequestURI = r.URL.String()

	once.Do(func() { handler = build() })
	handler.ServeHTTP(w, r)
}

// build wires the app once per process; warm invocations reuse the pool.
func build() http.HandlerFunc {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load application configuration: %v", err)
	}
	deps, res, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		log.Fatalf("failed to initialize dependencies: %v", err)
	}
	if _, err := infra.RunMigrations(res.DB); err != nil {
		deps.Logger.Error("Failed to run migrations", "error", err)
		log.Fatal(err)
	}
	return adaptor.FiberApp(webapi.SetupApp(app.New(deps, cfg)))
}
