package dbx

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialectFor(t *testing.T) {
	tests := []struct {
		driver  string
		want    Dialect
		wantErr bool
	}{
		{driver: DriverPgx, want: Postgres},
		{driver: DriverPq, want: Postgres},
		{driver: DriverSQLite, want: SQLite},
		{driver: "mysql", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			got, err := DialectFor(tt.driver)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDialect_Rebind(t *testing.T) {
	q := `SELECT id FROM users WHERE normalized_user_name = ? AND id <> ?`

	assert.Equal(t, `SELECT id FROM users WHERE normalized_user_name = $1 AND id <> $2`, Postgres.Rebind(q))
	assert.Equal(t, q, SQLite.Rebind(q))
}

func TestDialect_GooseDialect(t *testing.T) {
	assert.Equal(t, "postgres", Postgres.GooseDialect())
	assert.Equal(t, "sqlite3", SQLite.GooseDialect())
}

func TestOpen_SQLiteMemory(t *testing.T) {
	db, err := Open(context.Background(), DriverSQLite, ":memory:", PoolOptions{MaxOpenConns: 1, ConnMaxLifetime: time.Minute})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	assert.Equal(t, 1, db.Stats().MaxOpenConnections)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), "mysql", "dsn", PoolOptions{})
	require.Error(t, err)
}
