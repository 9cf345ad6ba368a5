package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/userstore/internal/dbx"
	"github.com/dmitrijs2005/userstore/internal/server/migrations"
	"github.com/dmitrijs2005/userstore/internal/server/repositories/claims"
	"github.com/dmitrijs2005/userstore/internal/server/repositories/roles"
	"github.com/dmitrijs2005/userstore/internal/server/repositories/users"
)

type SQLiteRepositoryManager struct{}

func NewSQLiteRepositoryManager() *SQLiteRepositoryManager {
	return &SQLiteRepositoryManager{}
}

func (m *SQLiteRepositoryManager) Dialect() dbx.Dialect {
	return dbx.SQLite
}

func (m *SQLiteRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) Roles(db dbx.DBTX) roles.Repository {
	return roles.NewSQLRepository(db, dbx.SQLite)
}

func (m *SQLiteRepositoryManager) Claims(db dbx.DBTX) claims.Repository {
	return claims.NewSQLRepository(db, dbx.SQLite)
}

func (m *SQLiteRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return runMigrations(ctx, db, dbx.SQLite, migrations.SQLiteDir)
}
