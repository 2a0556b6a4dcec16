// Package config handles configuration loading and management for ShikaBOM.
// It supports XDG config paths, project-level overrides, and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Database drivers understood by the store factory.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// Config holds all configuration for ShikaBOM.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	TUI      TUIConfig      `mapstructure:"tui"`
	Serve    ServeConfig    `mapstructure:"serve"`
	Export   ExportConfig   `mapstructure:"export"`
}

// DatabaseConfig selects and tunes the store backend.
type DatabaseConfig struct {
	Driver      string `mapstructure:"driver"`
	DSN         string `mapstructure:"dsn"`
	SQLitePath  string `mapstructure:"sqlite_path"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
	// QueryTimeout bounds every single data call made from the TUI.
	QueryTimeout time.Duration `mapstructure:"query_timeout"`
}

// LogConfig holds file logging settings. An empty Path disables logging.
type LogConfig struct {
	Path       string `mapstructure:"path"`
	Level      string `mapstructure:"level"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
}

// TUIConfig holds TUI display settings.
type TUIConfig struct {
	AltScreen bool `mapstructure:"alt_screen"`
	// WatchDB refreshes the screens when the sqlite file changes on disk.
	WatchDB bool `mapstructure:"watch_db"`
}

// ServeConfig holds settings for the desktop command server.
type ServeConfig struct {
	Addr string `mapstructure:"addr"`
}

// ExportConfig holds exchange sink settings.
type ExportConfig struct {
	S3 S3Config `mapstructure:"s3"`
}

// S3Config holds the object storage target for s3:// exports.
type S3Config struct {
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
	Endpoint  string `mapstructure:"endpoint"`
	PathStyle bool   `mapstructure:"path_style"`
}

// Load loads configuration from XDG paths, project overrides, and environment variables.
// Precedence (highest to lowest):
// 1. Environment variables (SHIKABOM_DATABASE_DSN, DATABASE_URL, SHIKABOM_DATABASE_DRIVER)
// 2. Project config (.shikabom.yaml in current directory or parent)
// 3. User config (~/.config/shikabom/config.yaml)
// 4. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(getUserConfigDir())

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading user config: %w", err)
		}
	}

	if projectConfig := findProjectConfig(); projectConfig != "" {
		projectViper := viper.New()
		projectViper.SetConfigFile(projectConfig)
		if err := projectViper.ReadInConfig(); err == nil {
			if err := v.MergeConfigMap(projectViper.AllSettings()); err != nil {
				return nil, fmt.Errorf("merging project config: %w", err)
			}
		}
	}

	bindEnv(v)

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	cfg.expand()

	return cfg, nil
}

// LoadFromPath loads configuration from a specific path (for testing).
func LoadFromPath(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	cfg.expand()

	return cfg, nil
}

// Save writes the configuration to the user config file.
func Save(cfg *Config) error {
	return SaveTo(cfg, GetUserConfigPath())
}

// SaveTo writes the configuration to path, creating its directory.
func SaveTo(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("database.driver", cfg.Database.Driver)
	v.Set("database.dsn", cfg.Database.DSN)
	v.Set("database.sqlite_path", cfg.Database.SQLitePath)
	v.Set("database.auto_migrate", cfg.Database.AutoMigrate)
	v.Set("database.query_timeout", cfg.Database.QueryTimeout.String())
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.max_size_mb", cfg.Log.MaxSizeMB)
	v.Set("log.max_backups", cfg.Log.MaxBackups)
	v.Set("tui.alt_screen", cfg.TUI.AltScreen)
	v.Set("tui.watch_db", cfg.TUI.WatchDB)
	v.Set("serve.addr", cfg.Serve.Addr)
	v.Set("export.s3.bucket", cfg.Export.S3.Bucket)
	v.Set("export.s3.region", cfg.Export.S3.Region)
	v.Set("export.s3.endpoint", cfg.Export.S3.Endpoint)
	v.Set("export.s3.path_style", cfg.Export.S3.PathStyle)

	return v.WriteConfig()
}

// GetUserConfigPath returns the path to the user config file.
func GetUserConfigPath() string {
	return filepath.Join(getUserConfigDir(), "config.yaml")
}

// GetProjectConfigPath returns the path to the project config file if it exists.
func GetProjectConfigPath() string {
	return findProjectConfig()
}

// Validate checks values that viper cannot type-check.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite, DriverMemory:
	default:
		return fmt.Errorf("unknown database driver %q (want %s, %s or %s)",
			c.Database.Driver, DriverPostgres, DriverSQLite, DriverMemory)
	}
	if c.Database.QueryTimeout < 0 {
		return fmt.Errorf("database.query_timeout cannot be negative")
	}
	return nil
}

func (c *Config) expand() {
	c.Database.DSN = os.ExpandEnv(c.Database.DSN)
	c.Database.SQLitePath = expandPath(c.Database.SQLitePath)
	c.Log.Path = expandPath(c.Log.Path)
}

// bindEnv maps the supported environment variables onto config keys.
// SHIKABOM_DATABASE_DSN wins over DATABASE_URL.
func bindEnv(v *viper.Viper) {
	v.SetEnvPrefix("shikabom")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.BindEnv("database.dsn", "SHIKABOM_DATABASE_DSN", "DATABASE_URL")
	v.BindEnv("database.driver", "SHIKABOM_DATABASE_DRIVER")
}

// setDefaults configures default values.
func setDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("database.driver", d.Database.Driver)
	v.SetDefault("database.dsn", d.Database.DSN)
	v.SetDefault("database.sqlite_path", d.Database.SQLitePath)
	v.SetDefault("database.auto_migrate", d.Database.AutoMigrate)
	v.SetDefault("database.query_timeout", d.Database.QueryTimeout.String())

	v.SetDefault("log.path", d.Log.Path)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.max_size_mb", d.Log.MaxSizeMB)
	v.SetDefault("log.max_backups", d.Log.MaxBackups)

	v.SetDefault("tui.alt_screen", d.TUI.AltScreen)
	v.SetDefault("tui.watch_db", d.TUI.WatchDB)

	v.SetDefault("serve.addr", d.Serve.Addr)

	v.SetDefault("export.s3.bucket", "")
	v.SetDefault("export.s3.region", d.Export.S3.Region)
	v.SetDefault("export.s3.endpoint", "")
	v.SetDefault("export.s3.path_style", false)
}

// getUserConfigDir returns the XDG config directory for ShikaBOM.
func getUserConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "shikabom")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "shikabom")
	}
	return filepath.Join(home, ".config", "shikabom")
}

// DefaultLogPath returns the XDG state location of the log file.
func DefaultLogPath() string {
	if xdgState := os.Getenv("XDG_STATE_HOME"); xdgState != "" {
		return filepath.Join(xdgState, "shikabom", "shikabom.log")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "shikabom.log")
	}
	return filepath.Join(home, ".local", "state", "shikabom", "shikabom.log")
}

// findProjectConfig searches for .shikabom.yaml in the current directory and parents.
func findProjectConfig() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		configPath := filepath.Join(cwd, ".shikabom.yaml")
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(cwd)
		if parent == cwd {
			break
		}
		cwd = parent
	}

	return ""
}

// expandPath expands ${VAR} references and a leading ~/.
func expandPath(p string) string {
	p = os.ExpandEnv(p)
	if len(p) >= 2 && p[:2] == "~/" {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, p[2:])
		}
	}
	return p
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			Driver:       DriverPostgres,
			DSN:          "postgres://localhost/shikabom?sslmode=disable",
			SQLitePath:   "",
			AutoMigrate:  true,
			QueryTimeout: 5 * time.Second,
		},
		Log: LogConfig{
			Path:       DefaultLogPath(),
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
		TUI: TUIConfig{
			AltScreen: true,
			WatchDB:   true,
		},
		Serve: ServeConfig{
			Addr: "127.0.0.1:7878",
		},
		Export: ExportConfig{
			S3: S3Config{Region: "us-east-1"},
		},
	}
}
