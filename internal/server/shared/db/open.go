// Package db opens the metadata store and pairs it with the matching
// repository manager.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"

	"github.com/dmitrijs2005/simplefilehost/internal/server/repositories/repomanager"
)

// DefaultSQLiteFile is created inside the data directory when no DSN is set.
const DefaultSQLiteFile = "database.sqlite.db"

// Options configures Open.
type Options struct {
	Driver       string
	DSN          string
	DataDir      string
	MaxOpenConns int
}

// SQLiteDSN builds a modernc DSN for path with foreign keys enforced.
// Transactions begin IMMEDIATE so concurrent read-then-write transactions
// queue on busy_timeout instead of failing with SQLITE_BUSY on upgrade.
func SQLiteDSN(path string) string {
	return "file:" + path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_txlock=immediate"
}

// Resolve fills in the default DSN for the driver.
func (o Options) Resolve() (driver, dsn string) {
	driver = o.Driver
	if driver == "" || driver == "sqlite3" {
		driver = repomanager.DriverSQLite
	}
	if driver == "postgres" {
		driver = repomanager.DriverPostgres
	}
	dsn = o.DSN
	if dsn == "" && driver == repomanager.DriverSQLite {
		dsn = SQLiteDSN(filepath.Join(o.DataDir, DefaultSQLiteFile))
	}
	return driver, dsn
}

// Open connects, pings and migrates the database.
func Open(ctx context.Context, o Options) (*sql.DB, repomanager.RepositoryManager, error) {
	driver, dsn := o.Resolve()
	if dsn == "" {
		return nil, nil, fmt.Errorf("database dsn is required for driver %q", driver)
	}

	m, err := repomanager.New(driver)
	if err != nil {
		return nil, nil, err
	}

	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("db open error: %w", err)
	}
	if o.MaxOpenConns > 0 {
		conn.SetMaxOpenConns(o.MaxOpenConns)
	}

	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("db ping error: %w", err)
	}

	if err := m.RunMigrations(ctx, conn); err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("migration error: %w", err)
	}

	return conn, m, nil
}
