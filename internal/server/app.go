// Package server wires the user store process: logger, database,
// migrations, the user and role stores, and the gRPC health and metrics
// endpoints with graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/userstore/internal/dbx"
	"github.com/dmitrijs2005/userstore/internal/logging"
	"github.com/dmitrijs2005/userstore/internal/server/config"
	"github.com/dmitrijs2005/userstore/internal/server/metrics"
	"github.com/dmitrijs2005/userstore/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/userstore/internal/server/services"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	gs "github.com/dmitrijs2005/userstore/internal/server/grpc"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	db       *sql.DB
	registry *prometheus.Registry
	Users    *services.UserService
	Roles    *services.RoleService
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger, err := logging.New(logging.Options{Backend: c.LogBackend, Level: c.LogLevel, File: c.LogFile})
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	db, err := dbx.Open(ctx, c.DatabaseDriver, c.DatabaseDSN, dbx.PoolOptions{
		MaxOpenConns:    c.MaxOpenConns,
		ConnMaxLifetime: c.ConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	m, err := repomanager.New(c.DatabaseDriver)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("repository manager init error: %w", err)
	}

	if c.AutoMigrate {
		if err := m.RunMigrations(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migration error: %w", err)
		}
		logger.Info(ctx, "Migrations applied", "dialect", string(m.Dialect()))
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(db, "userstore"),
	)
	storeMetrics := metrics.NewStoreMetrics(registry)

	return &App{
		config:   c,
		logger:   logger,
		db:       db,
		registry: registry,
		Users:    services.NewUserService(db, m, logger, storeMetrics),
		Roles:    services.NewRoleService(db, m, logger, storeMetrics),
	}, nil
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case <-sigs:
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

// Run serves until ctx is cancelled, a termination signal arrives or one of
// the servers fails. The database is closed before Run returns.
func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(ctx, cancelFunc)

	grpcServer := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.db, app.config.HealthCheckInterval)
	metricsServer := metrics.NewServer(app.config.MetricsAddr, app.registry, grpcServer.Ready, app.logger, app.config.ShutdownTimeout)

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		runErr error
	)

	start := func(name string, run func(context.Context) error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := run(ctx); err != nil {
				app.logger.Error(ctx, "server failed", "server", name, "error", err)
				mu.Lock()
				runErr = errors.Join(runErr, fmt.Errorf("%s: %w", name, err))
				mu.Unlock()
				cancelFunc()
			}
		}()
	}

	start("grpc", grpcServer.Run)
	start("metrics", metricsServer.Run)

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Warn(context.Background(), "db close error", "error", err)
	}
	app.logger.Info(context.Background(), "App stopped")

	return runErr
}
