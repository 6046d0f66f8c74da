package migrations

import (
	"database/sql"
	_ "embed"

	"github.com/goran-ethernal/ReorgGuard/internal/db"
	"github.com/goran-ethernal/ReorgGuard/internal/logger"
	"github.com/goran-ethernal/ReorgGuard/pkg/config"
)

//go:embed 001_block_history.sql
var mig001 string

//go:embed 002_consumer_state.sql
var mig002 string

func all() []db.Migration {
	return []db.Migration{
		{
			ID:  "001_block_history.sql",
			SQL: mig001,
		},
		{
			ID:  "002_consumer_state.sql",
			SQL: mig002,
		},
	}
}

// RunMigrations creates or upgrades the block history schema in the configured database.
func RunMigrations(cfg config.DatabaseConfig) error {
	return db.RunMigrations(cfg, all())
}

// RunMigrationsDB creates or upgrades the block history schema on an open database.
func RunMigrationsDB(log *logger.Logger, database *sql.DB) error {
	return db.RunMigrationsDB(log, database, all())
}
