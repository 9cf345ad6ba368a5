package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/userstore/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   gRPC bind address (e.g., ":50051")
//	-m string   metrics bind address (e.g., ":9090")
//	-k string   database driver: pgx, postgres or sqlite
//	-d string   database DSN
//	-o int      max open connections
//	-n          do not run migrations on startup
//	-i int      health check interval, seconds
//	-b string   log backend: slog or zap
//	-l string   log level
//	-f string   log file
func parseFlags(config *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:],
		[]string{"-a", "-m", "-k", "-d", "-o", "-i", "-b", "-l", "-f"},
		"-n")

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run gRPC server")
	fs.StringVar(&config.MetricsAddr, "m", config.MetricsAddr, "address and port to serve metrics")
	fs.StringVar(&config.DatabaseDriver, "k", config.DatabaseDriver, "database driver")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.IntVar(&config.MaxOpenConns, "o", config.MaxOpenConns, "max open connections")

	noMigrate := fs.Bool("n", !config.AutoMigrate, "skip migrations on startup")
	healthCheckInterval := fs.Int("i", int(config.HealthCheckInterval.Seconds()), "health check interval (in seconds)")

	fs.StringVar(&config.LogBackend, "b", config.LogBackend, "log backend")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.StringVar(&config.LogFile, "f", config.LogFile, "log file")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// only flags given on the command line override earlier sources
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "n":
			config.AutoMigrate = !*noMigrate
		case "i":
			config.HealthCheckInterval = time.Duration(*healthCheckInterval) * time.Second
		}
	})
}
