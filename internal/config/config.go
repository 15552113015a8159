package config

import "time"

// Config is the complete application configuration. Defaults come from the
// root command's viper block; user overrides live in the XDG config file and
// environment variables carry the app identity prefix.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Store    StoreConfig    `mapstructure:"store"`
	Dispatch DispatchConfig `mapstructure:"dispatch"`
	Wiki     WikiConfig     `mapstructure:"wiki"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Health   HealthConfig   `mapstructure:"health"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// StoreConfig contains database configuration for libsql/Turso.
type StoreConfig struct {
	Driver    string `mapstructure:"driver"`
	Path      string `mapstructure:"path"`
	URL       string `mapstructure:"url"`
	AuthToken string `mapstructure:"auth_token"`
}

// DispatchConfig controls batch browser dispatch.
type DispatchConfig struct {
	// Delay is the pause between opening consecutive browser tabs.
	Delay time.Duration `mapstructure:"delay"`

	// AutoOpen opens generated URLs immediately after an investigation.
	AutoOpen bool `mapstructure:"auto_open"`

	// SaveHistory records investigations in the local store.
	SaveHistory bool `mapstructure:"save_history"`
}

// WikiConfig configures the Wikipedia summary collaborator.
type WikiConfig struct {
	BaseURL   string `mapstructure:"base_url"`
	Sentences int    `mapstructure:"sentences"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level controls the minimum log level: trace, debug, info, warn, error.
	Level string `mapstructure:"level"`

	// Profile selects the logging complexity level: SIMPLE or STRUCTURED.
	Profile string `mapstructure:"profile"`
}

// MetricsConfig contains Prometheus metrics configuration.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port"`
}

// HealthConfig contains health check configuration.
type HealthConfig struct {
	Enabled bool `mapstructure:"enabled"`
}
