package server

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/userstore/internal/common"
	"github.com/dmitrijs2005/userstore/internal/server/config"
	"github.com/dmitrijs2005/userstore/internal/server/identity"
	"github.com/dmitrijs2005/userstore/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.DatabaseDriver = "sqlite"
	c.DatabaseDSN = ":memory:"
	c.MaxOpenConns = 1
	c.ConnMaxLifetime = 0
	c.EndpointAddrGRPC = "127.0.0.1:0"
	c.MetricsAddr = "127.0.0.1:0"
	c.LogLevel = "error"
	c.ShutdownTimeout = time.Second
	return c
}

func TestNewApp_SQLiteStoreIsUsable(t *testing.T) {
	ctx := context.Background()

	app, err := NewApp(ctx, testConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.db.Close() })

	u, err := app.Users.Create(ctx, &models.User{Identity: identity.Identity{UserName: "ada"}})
	require.NoError(t, err)
	assert.Positive(t, u.NumericID)

	require.NoError(t, app.Users.Delete(ctx, u.Identity.ID))
	_, err = app.Users.FindByID(ctx, u.Identity.ID)
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestNewApp_UnknownDriver(t *testing.T) {
	c := testConfig()
	c.DatabaseDriver = "mysql"

	_, err := NewApp(context.Background(), c)
	require.Error(t, err)
}

func TestNewApp_UnknownLogBackend(t *testing.T) {
	c := testConfig()
	c.LogBackend = "logrus"

	_, err := NewApp(context.Background(), c)
	require.Error(t, err)
}

func TestRun_StopsOnCancel(t *testing.T) {
	app, err := NewApp(context.Background(), testConfig())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	select {
	case err := <-done:
		t.Fatalf("app exited too early: %v", err)
	case <-time.After(150 * time.Millisecond):
	}

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("app did not stop after cancel")
	}

	require.Error(t, app.db.Ping(), "db must be closed after Run")
}

func TestRun_ServerFailureStopsApp(t *testing.T) {
	c := testConfig()
	c.EndpointAddrGRPC = "127.0.0.1:99999"

	app, err := NewApp(context.Background(), c)
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- app.Run(context.Background()) }()

	select {
	case err := <-done:
		require.Error(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("app did not stop after server failure")
	}
}
