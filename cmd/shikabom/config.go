package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/ShayCichocki/shikabom/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Manage configuration",
	Long: `View or modify ShikaBOM configuration.

Without arguments, displays current configuration.
With one argument (key), displays the value for that key.
With two arguments (key value), sets the configuration value.

Configuration is stored at ~/.config/shikabom/config.yaml
Project-specific overrides can be placed in .shikabom.yaml`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch len(args) {
		case 0:
			displayAllConfig(cfg)
			return nil
		case 1:
			value, err := getConfigValue(cfg, args[0])
			if err != nil {
				return err
			}
			fmt.Println(value)
			return nil
		}
		return setConfigKey(cfg, args[0], args[1])
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file from a short interactive form",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := runConfigForm(cfg); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				printStatus("⚠", "Aborted, nothing written", warnColor)
				return nil
			}
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		if err := config.Save(cfg); err != nil {
			return fmt.Errorf("save config: %w", err)
		}
		printStatus("✓", "Wrote "+config.GetUserConfigPath(), okColor)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
}

// configKeys lists every key in display order.
var configKeys = []string{
	"database.driver",
	"database.dsn",
	"database.sqlite_path",
	"database.auto_migrate",
	"database.query_timeout",
	"log.path",
	"log.level",
	"log.max_size_mb",
	"log.max_backups",
	"tui.alt_screen",
	"tui.watch_db",
	"serve.addr",
	"export.s3.bucket",
	"export.s3.region",
	"export.s3.endpoint",
	"export.s3.path_style",
}

// displayAllConfig prints all configuration values.
func displayAllConfig(cfg *config.Config) {
	for _, key := range configKeys {
		value, _ := getConfigValue(cfg, key)
		if key == "database.dsn" {
			value += fmt.Sprintf(" (%s)", config.GetDSNSource(cfg))
		}
		fmt.Printf("%s: %s\n", key, value)
	}
}

// setConfigKey sets a configuration value and saves the config.
func setConfigKey(cfg *config.Config, key, value string) error {
	if err := setConfigValue(cfg, key, value); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	printStatus("✓", fmt.Sprintf("Set %s = %s", key, value), okColor)
	return nil
}

// getConfigValue retrieves a configuration value by dot-notation key.
func getConfigValue(cfg *config.Config, key string) (string, error) {
	switch strings.ToLower(key) {
	case "database.driver":
		return cfg.Database.Driver, nil
	case "database.dsn":
		return config.MaskDSN(cfg.Database.DSN), nil
	case "database.sqlite_path":
		return sqlitePath(cfg), nil
	case "database.auto_migrate":
		return strconv.FormatBool(cfg.Database.AutoMigrate), nil
	case "database.query_timeout":
		return cfg.Database.QueryTimeout.String(), nil
	case "log.path":
		if cfg.Log.Path == "" {
			return "(disabled)", nil
		}
		return cfg.Log.Path, nil
	case "log.level":
		return cfg.Log.Level, nil
	case "log.max_size_mb":
		return strconv.Itoa(cfg.Log.MaxSizeMB), nil
	case "log.max_backups":
		return strconv.Itoa(cfg.Log.MaxBackups), nil
	case "tui.alt_screen":
		return strconv.FormatBool(cfg.TUI.AltScreen), nil
	case "tui.watch_db":
		return strconv.FormatBool(cfg.TUI.WatchDB), nil
	case "serve.addr":
		return cfg.Serve.Addr, nil
	case "export.s3.bucket":
		return cfg.Export.S3.Bucket, nil
	case "export.s3.region":
		return cfg.Export.S3.Region, nil
	case "export.s3.endpoint":
		return cfg.Export.S3.Endpoint, nil
	case "export.s3.path_style":
		return strconv.FormatBool(cfg.Export.S3.PathStyle), nil
	default:
		return "", fmt.Errorf("unknown configuration key: %s", key)
	}
}

// setConfigValue sets a configuration value by dot-notation key.
func setConfigValue(cfg *config.Config, key, value string) error {
	parseBool := func(dst *bool) error {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %w", key, err)
		}
		*dst = b
		return nil
	}
	parseInt := func(dst *int) error {
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid value for %s: %w", key, err)
		}
		*dst = n
		return nil
	}

	switch strings.ToLower(key) {
	case "database.driver":
		cfg.Database.Driver = value
	case "database.dsn":
		cfg.Database.DSN = value
	case "database.sqlite_path":
		cfg.Database.SQLitePath = value
	case "database.auto_migrate":
		return parseBool(&cfg.Database.AutoMigrate)
	case "database.query_timeout":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration for database.query_timeout: %w", err)
		}
		cfg.Database.QueryTimeout = d
	case "log.path":
		cfg.Log.Path = value
	case "log.level":
		cfg.Log.Level = value
	case "log.max_size_mb":
		return parseInt(&cfg.Log.MaxSizeMB)
	case "log.max_backups":
		return parseInt(&cfg.Log.MaxBackups)
	case "tui.alt_screen":
		return parseBool(&cfg.TUI.AltScreen)
	case "tui.watch_db":
		return parseBool(&cfg.TUI.WatchDB)
	case "serve.addr":
		cfg.Serve.Addr = value
	case "export.s3.bucket":
		cfg.Export.S3.Bucket = value
	case "export.s3.region":
		cfg.Export.S3.Region = value
	case "export.s3.endpoint":
		cfg.Export.S3.Endpoint = value
	case "export.s3.path_style":
		return parseBool(&cfg.Export.S3.PathStyle)
	default:
		return fmt.Errorf("unknown configuration key: %s", key)
	}
	return nil
}

// runConfigForm asks for the database settings and fills cfg.
func runConfigForm(cfg *config.Config) error {
	driver := cfg.Database.Driver
	if err := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Database").
			Options(
				huh.NewOption("PostgreSQL", config.DriverPostgres),
				huh.NewOption("SQLite file", config.DriverSQLite),
				huh.NewOption("In memory (nothing is saved)", config.DriverMemory),
			).
			Value(&driver),
	)).Run(); err != nil {
		return err
	}
	cfg.Database.Driver = driver

	path := sqlitePath(cfg)
	var fields []huh.Field
	switch driver {
	case config.DriverPostgres:
		fields = append(fields, huh.NewInput().
			Title("Postgres DSN").
			Placeholder(config.Default().Database.DSN).
			Value(&cfg.Database.DSN).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return errors.New("a DSN is required")
				}
				return nil
			}))
	case config.DriverSQLite:
		fields = append(fields, huh.NewInput().
			Title("Database file").
			Value(&path))
	}
	fields = append(fields,
		huh.NewConfirm().
			Title("Create or upgrade the schema on start?").
			Value(&cfg.Database.AutoMigrate),
		huh.NewSelect[string]().
			Title("Log level").
			Options(huh.NewOptions("debug", "info", "warn", "error")...).
			Value(&cfg.Log.Level),
	)
	if err := huh.NewForm(huh.NewGroup(fields...)).Run(); err != nil {
		return err
	}
	if driver == config.DriverSQLite {
		cfg.Database.SQLitePath = path
	}
	return nil
}
