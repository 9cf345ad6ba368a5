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

// PostgresRepositoryManager serves both the pgx and lib/pq drivers.
type PostgresRepositoryManager struct{}

func NewPostgresRepositoryManager() *PostgresRepositoryManager {
	return &PostgresRepositoryManager{}
}

func (m *PostgresRepositoryManager) Dialect() dbx.Dialect {
	return dbx.Postgres
}

func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Roles(db dbx.DBTX) roles.Repository {
	return roles.NewSQLRepository(db, dbx.Postgres)
}

func (m *PostgresRepositoryManager) Claims(db dbx.DBTX) claims.Repository {
	return claims.NewSQLRepository(db, dbx.Postgres)
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return runMigrations(ctx, db, dbx.Postgres, migrations.PostgresDir)
}
