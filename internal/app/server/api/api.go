// The storage API consumed by the price-list client:
//
//	HEAD   /api/precos       # liveness probe (auth)
//	GET    /api/precos       # list all prices (auth)
//	GET    /api/precos/{id}  # get one price (auth)
//	POST   /api/precos       # create, server assigns id (auth)
//	PUT    /api/precos/{id}  # update (auth)
//	DELETE /api/precos/{id}  # delete (auth)
//	GET    /health           # health check (public)
//
// Authentication is delegated to the external portal: the auth
// middleware verifies the X-Session-Token header (or sessionToken query
// parameter) through the portal's verify-session contract.
package api

import (
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"golang.org/x/exp/slog"

	"pricelist/internal/app/server/api/http/health"
	"pricelist/internal/app/server/api/http/middleware"
	"pricelist/internal/app/server/api/http/middleware/auth"
	loggerMW "pricelist/internal/app/server/api/http/middleware/logger"
	priceAPI "pricelist/internal/app/server/api/http/price"
	"pricelist/internal/app/server/config"
	"pricelist/internal/domain/price"
	"pricelist/internal/domain/session"
	"pricelist/internal/infrastructure/storage/postgres"
	"pricelist/internal/portal"
)

type Handlers struct {
	Health *health.Handler
	Price  *priceAPI.Handler
}

// New creates a *chi.Mux with all operations registered through huma.
func New(cfg *config.Config, storage *postgres.Storage, log *slog.Logger) *chi.Mux {
	mux := chi.NewMux()

	humaConfig := huma.DefaultConfig("Tabela de Precos API", "1.0.0")
	API := humachi.New(mux, humaConfig)

	h := handlers(cfg, storage, log)
	h.Health.SetupRoutes(API)
	h.Price.SetupRoutes(API)

	return mux
}

func handlers(cfg *config.Config, storage *postgres.Storage, log *slog.Logger) *Handlers {
	portalClient := portal.NewClient(cfg.Portal.BaseURL, log)
	sessionTTL := time.Duration(cfg.Portal.SessionCacheSeconds) * time.Second
	sessionService := session.NewService(portalClient, sessionTTL, log)

	authMW := auth.New(sessionService, log)
	logMW := loggerMW.New(log)
	middlewares := middleware.NewContainer()

	middlewares.Add(logMW.Middleware())
	healthHandler := health.NewHandler(log, middlewares.GetAllAndClear())

	priceRepo := postgres.NewPriceRepository(storage.Pool(), log)
	priceService := price.NewService(priceRepo, log)
	middlewares.Add(authMW.Middleware())
	middlewares.Add(logMW.Middleware())
	priceHandler := priceAPI.NewHandler(priceService, log, middlewares.GetAllAndClear())

	return &Handlers{
		Health: healthHandler,
		Price:  priceHandler,
	}
}
