package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/ini.v1"
)

const (
	// DefaultListenPort is the port used when neither config.ini nor the
	// environment provide one.
	DefaultListenPort = 12080

	envPrefix = "SNOWGATE"
)

// Options controls where Load looks for configuration files.
type Options struct {
	// LegacyINI is the path of the historical config.ini ([General] listenPort).
	LegacyINI string
	// SearchPaths are the directories searched for config.yaml.
	SearchPaths []string
}

// DefaultOptions returns the file locations used by the server binary
func DefaultOptions() Options {
	return Options{
		LegacyINI:   "./config.ini",
		SearchPaths: []string{".", "./config", "/etc/snowgate"},
	}
}

// Load loads configuration from the default locations
func Load() (*Config, error) {
	return LoadWithOptions(DefaultOptions())
}

// LoadWithOptions loads configuration from defaults, the legacy ini file,
// an optional yaml file and SNOWGATE_* environment variables, in that order
// of increasing precedence.
func LoadWithOptions(opts Options) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if err := applyLegacyINI(v, opts.LegacyINI); err != nil {
		return nil, err
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// config.ini shares the "config" basename, so the yaml file is located
	// explicitly instead of through viper's extension search.
	if path := findYAML(opts.SearchPaths); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config

	// Server
	cfg.Server.Host = v.GetString("server.host")
	port := v.GetInt("server.port")
	cfg.Server.Env = v.GetString("server.env")

	// Store
	cfg.Store.Driver = strings.ToLower(v.GetString("store.driver"))
	cfg.Store.AutocompleteLimit = v.GetInt("store.autocomplete_limit")

	// PostgreSQL
	cfg.Postgres.Host = v.GetString("postgres.host")
	cfg.Postgres.Port = v.GetInt("postgres.port")
	cfg.Postgres.User = v.GetString("postgres.user")
	cfg.Postgres.Password = v.GetString("postgres.password")
	cfg.Postgres.Database = v.GetString("postgres.database")
	cfg.Postgres.SSLMode = v.GetString("postgres.ssl_mode")
	cfg.Postgres.MaxConns = int32(v.GetInt("postgres.max_conns"))
	cfg.Postgres.MinConns = int32(v.GetInt("postgres.min_conns"))

	// SQLite
	cfg.SQLite.Path = v.GetString("sqlite.path")

	// Logging
	cfg.Log.Level = v.GetString("log.level")
	cfg.Log.Format = v.GetString("log.format")

	// Metrics
	cfg.Metrics.Port = v.GetInt("metrics.port")

	// Sentry
	cfg.Sentry.DSN = v.GetString("sentry.dsn")
	cfg.Sentry.Environment = v.GetString("sentry.environment")
	cfg.Sentry.SampleRate = v.GetFloat64("sentry.sample_rate")
	cfg.Sentry.TracesSampleRate = v.GetFloat64("sentry.traces_sample_rate")

	if port < 1 || port > 65535 {
		return nil, fmt.Errorf("server port %d out of range 1-65535", port)
	}
	cfg.Server.Port = uint16(port)

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", DefaultListenPort)
	v.SetDefault("server.env", "development")

	// Store defaults
	v.SetDefault("store.driver", DriverPostgres)
	v.SetDefault("store.autocomplete_limit", 10)

	// PostgreSQL defaults
	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.user", "snowgate")
	v.SetDefault("postgres.password", "snowgate")
	v.SetDefault("postgres.database", "beyondgbrowse")
	v.SetDefault("postgres.ssl_mode", "disable")
	v.SetDefault("postgres.max_conns", 25)
	v.SetDefault("postgres.min_conns", 2)

	// SQLite defaults
	v.SetDefault("sqlite.path", "snowgate.db")

	// Logging defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Metrics defaults
	v.SetDefault("metrics.port", 0)

	// Sentry defaults
	v.SetDefault("sentry.sample_rate", 1.0)
	v.SetDefault("sentry.traces_sample_rate", 0.0)
}

// applyLegacyINI honours the [General] listenPort key of the historical
// config.ini. A missing file is not an error.
func applyLegacyINI(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	f, err := ini.Load(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	key := f.Section("General").Key("listenPort")
	if key.String() == "" {
		return nil
	}
	port, err := key.Uint()
	if err != nil {
		return fmt.Errorf("invalid General.listenPort in %s: %w", path, err)
	}
	v.SetDefault("server.port", port)
	return nil
}

func findYAML(dirs []string) string {
	for _, dir := range dirs {
		for _, name := range []string{"config.yaml", "config.yml"} {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
	}
	return ""
}

func validate(cfg *Config) error {
	switch cfg.Store.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
	if cfg.Store.AutocompleteLimit <= 0 {
		return fmt.Errorf("store.autocomplete_limit must be positive")
	}
	if cfg.Metrics.Port < 0 || cfg.Metrics.Port > 65535 {
		return fmt.Errorf("metrics port %d out of range", cfg.Metrics.Port)
	}
	if cfg.Metrics.Port != 0 && cfg.Metrics.Port == int(cfg.Server.Port) {
		return fmt.Errorf("metrics port must differ from server port")
	}
	return nil
}
