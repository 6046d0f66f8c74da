package db

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goran-ethernal/ReorgGuard/internal/logger"
	"github.com/goran-ethernal/ReorgGuard/pkg/config"
	migrate "github.com/rubenv/sql-migrate"
	"github.com/russross/meddler"
	"github.com/stretchr/testify/require"
)

const testMigration = `
-- +migrate Down
DROP TABLE IF EXISTS hashes;

-- +migrate Up
CREATE TABLE hashes (
    id INTEGER PRIMARY KEY,
    value TEXT,
    optional TEXT
);
`

type hashRow struct {
	ID       int64        `meddler:"id,pk"`
	Value    common.Hash  `meddler:"value,hash"`
	Optional *common.Hash `meddler:"optional,hash"`
}

func setupTestDB(t *testing.T, journal string) *sql.DB {
	t.Helper()

	dbConfig := config.DatabaseConfig{
		Path:        filepath.Join(t.TempDir(), "db_test.db"),
		JournalMode: journal,
	}
	dbConfig.ApplyDefaults()

	sqlDB, err := NewSQLiteDBFromConfig(dbConfig)
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	return sqlDB
}

func TestNewSQLiteDBFromConfig_JournalModes(t *testing.T) {
	t.Parallel()

	for _, mode := range []string{"WAL", "DELETE", "TRUNCATE"} {
		t.Run(mode, func(t *testing.T) {
			t.Parallel()

			sqlDB := setupTestDB(t, mode)

			var journal string
			require.NoError(t, sqlDB.QueryRow("PRAGMA journal_mode").Scan(&journal))
			require.Equal(t, mode, strings.ToUpper(journal))
		})
	}
}

func TestDSN(t *testing.T) {
	t.Parallel()

	cfg := config.DatabaseConfig{Path: "/tmp/reorgguard.db", JournalMode: "WAL", Synchronous: "NORMAL", BusyTimeout: 5000}
	require.Equal(t,
		"file:/tmp/reorgguard.db?_busy_timeout=5000&_journal_mode=WAL&_synchronous=NORMAL&_txlock=immediate",
		dsn(cfg))

	cfg.Synchronous = ""
	require.NotContains(t, dsn(cfg), "_synchronous")
}

func TestNewSQLiteDBFromConfig_SynchronousOnEveryConnection(t *testing.T) {
	t.Parallel()

	sqlDB := setupTestDB(t, "WAL")
	ctx := context.Background()

	first, err := sqlDB.Conn(ctx)
	require.NoError(t, err)
	defer first.Close()

	second, err := sqlDB.Conn(ctx)
	require.NoError(t, err)
	defer second.Close()

	for _, conn := range []*sql.Conn{first, second} {
		var synchronous int
		require.NoError(t, conn.QueryRowContext(ctx, "PRAGMA synchronous").Scan(&synchronous))
		require.Equal(t, 1, synchronous, "NORMAL")
	}
}

func TestRunMigrationsDB_UpAndDown(t *testing.T) {
	sqlDB := setupTestDB(t, "WAL")
	log := logger.NewNopLogger()
	migrations := []Migration{{ID: "001_hashes.sql", SQL: testMigration}}

	require.NoError(t, RunMigrationsDB(log, sqlDB, migrations))
	// running twice is a no-op
	require.NoError(t, RunMigrationsDB(log, sqlDB, migrations))

	_, err := sqlDB.Exec("INSERT INTO hashes (value) VALUES ('0x01')")
	require.NoError(t, err)

	require.NoError(t, RunMigrationsDBExtended(log, sqlDB, migrations, migrate.Down, NoLimitMigrations))

	_, err = sqlDB.Exec("SELECT * FROM hashes")
	require.Error(t, err)
}

func TestRunMigrationsDB_MissingSeparator(t *testing.T) {
	sqlDB := setupTestDB(t, "WAL")

	err := RunMigrationsDB(logger.NewNopLogger(), sqlDB, []Migration{
		{ID: "broken.sql", SQL: "CREATE TABLE broken (id INTEGER);"},
	})
	require.ErrorContains(t, err, "missing '-- +migrate Up' separator")
}

func TestHashMeddler_RoundTrip(t *testing.T) {
	sqlDB := setupTestDB(t, "WAL")
	require.NoError(t, RunMigrationsDB(logger.NewNopLogger(), sqlDB, []Migration{
		{ID: "001_hashes.sql", SQL: testMigration},
	}))

	optional := common.HexToHash("0xbeef")
	rows := []*hashRow{
		{Value: common.HexToHash("0xabc123"), Optional: &optional},
		{Value: common.HexToHash("0xdef456")},
	}
	for _, row := range rows {
		require.NoError(t, meddler.Insert(sqlDB, "hashes", row))
	}

	var loaded []*hashRow
	require.NoError(t, meddler.QueryAll(sqlDB, &loaded, "SELECT * FROM hashes ORDER BY id"))
	require.Len(t, loaded, 2)

	require.Equal(t, rows[0].Value, loaded[0].Value)
	require.NotNil(t, loaded[0].Optional)
	require.Equal(t, optional, *loaded[0].Optional)

	require.Equal(t, rows[1].Value, loaded[1].Value)
	require.Nil(t, loaded[1].Optional)
}

func TestHashMeddler_PreWriteRejectsOtherTypes(t *testing.T) {
	_, err := HashMeddler{}.PreWrite("0x01")
	require.Error(t, err)

	value, err := HashMeddler{}.PreWrite((*common.Hash)(nil))
	require.NoError(t, err)
	require.Nil(t, value)
}
