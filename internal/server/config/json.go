package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/userstore/internal/flagx"
	"github.com/dmitrijs2005/userstore/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Interval
// fields use timex.Duration, so both "10s" and integer nanoseconds are
// accepted. Absent keys are nil and leave the Config untouched.
type JsonConfig struct {
	EndpointAddrGRPC    *string         `json:"endpoint_addr_grpc"`
	MetricsAddr         *string         `json:"metrics_addr"`
	DatabaseDriver      *string         `json:"database_driver"`
	DatabaseDSN         *string         `json:"database_dsn"`
	MaxOpenConns        *int            `json:"max_open_conns"`
	ConnMaxLifetime     *timex.Duration `json:"conn_max_lifetime"`
	AutoMigrate         *bool           `json:"auto_migrate"`
	HealthCheckInterval *timex.Duration `json:"health_check_interval"`
	ShutdownTimeout     *timex.Duration `json:"shutdown_timeout"`
	LogBackend          *string         `json:"log_backend"`
	LogLevel            *string         `json:"log_level"`
	LogFile             *string         `json:"log_file"`
}

// parseJson loads configuration values from the file named by the -c or
// -config flag. Without the flag nothing is loaded. An unreadable file or
// invalid JSON panics.
func parseJson(config *Config) {

	// try flags
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	c.apply(config)
}

func (c *JsonConfig) apply(config *Config) {
	setIf(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setIf(&config.MetricsAddr, c.MetricsAddr)
	setIf(&config.DatabaseDriver, c.DatabaseDriver)
	setIf(&config.DatabaseDSN, c.DatabaseDSN)
	setIf(&config.MaxOpenConns, c.MaxOpenConns)
	setIf(&config.AutoMigrate, c.AutoMigrate)
	setIf(&config.LogBackend, c.LogBackend)
	setIf(&config.LogLevel, c.LogLevel)
	setIf(&config.LogFile, c.LogFile)

	if c.ConnMaxLifetime != nil {
		config.ConnMaxLifetime = c.ConnMaxLifetime.Duration
	}
	if c.HealthCheckInterval != nil {
		config.HealthCheckInterval = c.HealthCheckInterval.Duration
	}
	if c.ShutdownTimeout != nil {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
