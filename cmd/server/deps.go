package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/beyondgbrowse/snowgate/internal/config"
	"github.com/beyondgbrowse/snowgate/internal/handler"
	"github.com/beyondgbrowse/snowgate/internal/pkg/database"
	pgrepo "github.com/beyondgbrowse/snowgate/internal/repository/postgres"
	sqliterepo "github.com/beyondgbrowse/snowgate/internal/repository/sqlite"
	"github.com/beyondgbrowse/snowgate/internal/repository/statements"
	"github.com/beyondgbrowse/snowgate/internal/service"
)

// Dependencies holds all application dependencies
type Dependencies struct {
	Config *config.Config
	Logger *zap.Logger

	Store   service.QueryStore
	Gateway *service.GatewayService

	GatewayHandler *handler.GatewayHandler
	HealthHandler  *handler.HealthHandler
}

// initDependencies opens the configured store and builds the layers above it
func initDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	store, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
		Store:  store,
	}

	deps.Gateway = service.NewGatewayService(store)
	deps.GatewayHandler = handler.NewGatewayHandler(deps.Gateway, logger)
	deps.HealthHandler = handler.NewHealthHandler(deps.Gateway, appVersion)

	logger.Info("store ready", zap.String("driver", cfg.Store.Driver))

	return deps, nil
}

func openStore(ctx context.Context, cfg *config.Config) (service.QueryStore, error) {
	switch cfg.Store.Driver {
	case config.DriverSQLite:
		db, err := database.NewSQLite(ctx, cfg.SQLite, statements.SQLiteSchema)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite: %w", err)
		}
		return sqliterepo.NewAnnotationStore(db.DB, cfg.Store.AutocompleteLimit), nil
	case config.DriverPostgres:
		db, err := database.NewPostgres(ctx, cfg.Postgres)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize PostgreSQL: %w", err)
		}
		return pgrepo.NewAnnotationStore(db, cfg.Store.AutocompleteLimit), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

// Close releases the store
func (d *Dependencies) Close() {
	if d.Store == nil {
		return
	}
	if err := d.Store.Close(); err != nil {
		d.Logger.Error("failed to close store", zap.Error(err))
	}
}
