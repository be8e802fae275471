package app

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/marketpulse/config"
	"github.com/guttosm/marketpulse/internal/api"
	"github.com/guttosm/marketpulse/internal/index"
	"github.com/guttosm/marketpulse/internal/service"
	"github.com/guttosm/marketpulse/internal/storage"
)

// InitializeApp wires the HTTP application from config.AppConfig.
//
// Responsibilities:
//   - Resolves the weight table and builds the index calculator.
//   - Connects to PostgreSQL (see InitPostgres).
//   - Builds repository, report service, handler and router.
//   - Registers health and readiness checks.
//
// Returns:
//   - *gin.Engine: the configured router.
//   - func(): cleanup closing the database pool.
//   - error: any initialization error.
func InitializeApp() (*gin.Engine, func(), error) {
	cfg := config.AppConfig

	calc, err := NewCalculator(cfg)
	if err != nil {
		return nil, nil, err
	}

	db, err := postgresOpener(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize postgres: %w", err)
	}

	repo := storage.NewTradesRepository(db)
	svc := service.NewReportService(repo, calc)
	handler := api.NewHandler(svc)

	router := api.NewRouter(handler, api.RouterOptions{
		RequestTimeout: cfg.Server.RequestTimeout,
		RateLimit:      cfg.Server.RateLimit,
	})

	api.NewHealthHandler(db.PingContext).Register(router)

	cleanup := func() {
		_ = db.Close()
	}

	return router, cleanup, nil
}

// NewCalculator builds the index calculator for the weight table named in cfg.
func NewCalculator(cfg config.Config) (*index.Calculator, error) {
	weights, err := config.ResolveWeights(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve index weights: %w", err)
	}
	return index.NewCalculator(weights), nil
}

// OpenStore connects to PostgreSQL and returns the trade repository for the
// CLI modes, plus a cleanup closing the pool.
func OpenStore(cfg config.Config) (storage.TradesRepository, func(), error) {
	db, err := postgresOpener(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize postgres: %w", err)
	}
	return storage.NewTradesRepository(db), func() { _ = db.Close() }, nil
}
