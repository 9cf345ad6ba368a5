package claims

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/userstore/internal/common"
	"github.com/dmitrijs2005/userstore/internal/dbx"
	"github.com/dmitrijs2005/userstore/internal/server/migrations"
	"github.com/dmitrijs2005/userstore/internal/server/models"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupSQLite(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	goose.SetLogger(goose.NopLogger())
	goose.SetBaseFS(migrations.Migrations)
	require.NoError(t, goose.SetDialect("sqlite3"))
	require.NoError(t, goose.UpContext(context.Background(), db, migrations.SQLiteDir))
	return db
}

func TestSQLite_AddListRemove(t *testing.T) {
	r := NewSQLRepository(setupSQLite(t), dbx.SQLite)
	ctx := context.Background()

	first := &models.UserClaim{UserID: "u1", ClaimType: "dept", ClaimValue: "eng"}
	second := &models.UserClaim{UserID: "u1", ClaimType: "level", ClaimValue: "3"}
	other := &models.UserClaim{UserID: "u2", ClaimType: "dept", ClaimValue: "ops"}

	for _, c := range []*models.UserClaim{first, second, other} {
		require.NoError(t, r.Add(ctx, c))
		assert.Positive(t, c.ID)
	}
	assert.Less(t, first.ID, second.ID)

	list, err := r.ListForUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []*models.UserClaim{first, second}, list)

	require.NoError(t, r.Remove(ctx, "u1", "dept", "eng"))
	require.ErrorIs(t, r.Remove(ctx, "u1", "dept", "eng"), common.ErrorNotFound)

	require.NoError(t, r.DeleteForUser(ctx, "u1"))
	list, err = r.ListForUser(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, list)

	list, err = r.ListForUser(ctx, "u2")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestPostgres_AddRebindsAndScansID(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`VALUES ($1, $2, $3)`)).
		WithArgs("u1", "dept", "eng").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	c := &models.UserClaim{UserID: "u1", ClaimType: "dept", ClaimValue: "eng"}
	require.NoError(t, NewSQLRepository(db, dbx.Postgres).Add(context.Background(), c))
	assert.Equal(t, int64(7), c.ID)

	require.NoError(t, mock.ExpectationsWereMet())
}
