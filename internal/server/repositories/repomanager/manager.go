package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/simplefilehost/internal/dbx"
	"github.com/dmitrijs2005/simplefilehost/internal/server/repositories/files"
	"github.com/dmitrijs2005/simplefilehost/internal/server/repositories/sharelinks"
	"github.com/dmitrijs2005/simplefilehost/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
)

// RepositoryManager vends dialect-specific repositories bound to either a
// *sql.DB or a *sql.Tx, and migrates the schema.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Files(db dbx.DBTX) files.Repository
	ShareLinks(db dbx.DBTX) sharelinks.Repository
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// New returns the manager for driver ("sqlite" or "pgx").
func New(driver string) (RepositoryManager, error) {
	switch driver {
	case DriverSQLite:
		return NewSQLiteRepositoryManager(), nil
	case DriverPostgres:
		return NewPostgresRepositoryManager(), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}
