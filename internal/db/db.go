package db

import (
	"database/sql"
	"fmt"
	"net/url"
	"strconv"

	"github.com/goran-ethernal/ReorgGuard/pkg/config"
	_ "github.com/mattn/go-sqlite3"
)

const driverName = "sqlite3"

// dsn builds the go-sqlite3 connection string. Settings passed here are applied
// to every pooled connection, not only the first one.
func dsn(cfg config.DatabaseConfig) string {
	params := url.Values{}
	params.Set("_txlock", "immediate")
	params.Set("_journal_mode", cfg.JournalMode)
	params.Set("_busy_timeout", strconv.Itoa(cfg.BusyTimeout))
	if cfg.Synchronous != "" {
		params.Set("_synchronous", cfg.Synchronous)
	}

	return "file:" + cfg.Path + "?" + params.Encode()
}

// NewSQLiteDBFromConfig opens the block history database with the given configuration.
func NewSQLiteDBFromConfig(cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open(driverName, dsn(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConnections)
	db.SetMaxIdleConns(cfg.MaxIdleConnections)

	if cfg.CacheSize != 0 {
		if _, err := db.Exec(fmt.Sprintf("PRAGMA cache_size = %d", cfg.CacheSize)); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set cache size: %w", err)
		}
	}

	return db, nil
}
