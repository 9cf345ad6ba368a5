package services

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/userstore/internal/server/identity"
	"github.com/dmitrijs2005/userstore/internal/server/models"
	"github.com/dmitrijs2005/userstore/internal/server/repositories/repomanager"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

type recordingObserver struct {
	mu   sync.Mutex
	ops  []string
	errs []error
}

func (o *recordingObserver) Observe(op string, err error, _ time.Time) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.ops = append(o.ops, op)
	o.errs = append(o.errs, err)
}

func setupSQLite(t *testing.T) (*sql.DB, repomanager.RepositoryManager) {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	goose.SetLogger(goose.NopLogger())
	m := repomanager.NewSQLiteRepositoryManager()
	require.NoError(t, m.RunMigrations(context.Background(), db))
	return db, m
}

func newServices(t *testing.T) (*UserService, *RoleService, *sql.DB) {
	t.Helper()
	db, m := setupSQLite(t)
	return NewUserService(db, m, nil, nil), NewRoleService(db, m, nil, nil), db
}

func strPtr(s string) *string { return &s }

func ada() *models.User {
	return &models.User{
		Identity:  identity.Identity{UserName: "ada", Email: "ada@example.com"},
		FirstName: strPtr("Ada"),
		LastName:  strPtr("Lovelace"),
	}
}
