// Package repomanager vends dialect-specific repositories bound to a
// dbx.DBTX and applies the embedded goose migrations.
package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/userstore/internal/dbx"
	"github.com/dmitrijs2005/userstore/internal/server/migrations"
	"github.com/dmitrijs2005/userstore/internal/server/repositories/claims"
	"github.com/dmitrijs2005/userstore/internal/server/repositories/roles"
	"github.com/dmitrijs2005/userstore/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Dialect() dbx.Dialect
	Users(db dbx.DBTX) users.Repository
	Roles(db dbx.DBTX) roles.Repository
	Claims(db dbx.DBTX) claims.Repository
}

// New returns the manager for a database/sql driver name.
func New(driver string) (RepositoryManager, error) {
	dialect, err := dbx.DialectFor(driver)
	if err != nil {
		return nil, err
	}

	switch dialect {
	case dbx.Postgres:
		return NewPostgresRepositoryManager(), nil
	case dbx.SQLite:
		return NewSQLiteRepositoryManager(), nil
	default:
		return nil, fmt.Errorf("no repository manager for dialect %q", dialect)
	}
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

func runMigrations(ctx context.Context, db *sql.DB, dialect dbx.Dialect, dir string) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect(dialect.GooseDialect()); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, db, dir); err != nil {
		return err
	}
	return nil
}
