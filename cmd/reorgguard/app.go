package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/goran-ethernal/ReorgGuard/internal/common"
	"github.com/goran-ethernal/ReorgGuard/internal/config"
	"github.com/goran-ethernal/ReorgGuard/internal/db"
	"github.com/goran-ethernal/ReorgGuard/internal/logger"
	"github.com/goran-ethernal/ReorgGuard/internal/migrations"
	"github.com/goran-ethernal/ReorgGuard/internal/rpc"
	"github.com/goran-ethernal/ReorgGuard/internal/store"
	pkgconfig "github.com/goran-ethernal/ReorgGuard/pkg/config"
)

// app holds the components shared by the commands.
type app struct {
	cfg        *pkgconfig.Config
	log        *logger.Logger
	database   *sql.DB
	blocks     *store.BlockStore
	watermarks *store.WatermarkStore
	client     *rpc.Client
}

// openApp loads the configuration and opens the migrated block history database.
func openApp(configPath string) (*app, error) {
	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	a := &app{
		cfg: cfg,
		log: logger.NewComponentLoggerFromConfig(common.ComponentCLI, cfg.Logging),
	}

	a.database, err = db.NewSQLiteDBFromConfig(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to create database: %w", err)
	}

	if err := migrations.RunMigrationsDB(a.log, a.database); err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	storeLog := a.componentLogger(common.ComponentBlockStore)
	a.blocks = store.NewBlockStore(a.database, storeLog)
	a.watermarks = store.NewWatermarkStore(a.database, storeLog)

	return a, nil
}

// dialNode connects the node client configured under rpc.
func (a *app) dialNode(ctx context.Context) error {
	client, err := rpc.NewClient(ctx, a.cfg.RPC, a.componentLogger(common.ComponentRPCClient))
	if err != nil {
		return fmt.Errorf("failed to create RPC client: %w", err)
	}

	a.client = client
	return nil
}

func (a *app) componentLogger(component string) *logger.Logger {
	return logger.NewComponentLoggerFromConfig(component, a.cfg.Logging)
}

// Close releases the node connection and the database.
func (a *app) Close() {
	if a.client != nil {
		a.client.Close()
	}

	if a.database != nil {
		if err := a.database.Close(); err != nil {
			a.log.Warnf("Failed to close database: %v", err)
		}
	}
}
