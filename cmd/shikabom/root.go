package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ShayCichocki/shikabom/internal/config"
	"github.com/ShayCichocki/shikabom/internal/logging"
)

var (
	cfgFile    string
	driverFlag string
	dsnFlag    string

	// cfg is loaded once per invocation by the root pre-run hook.
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "shikabom",
	Short: "Electronics parts inventory and BOM manager",
	Long: `ShikaBOM keeps an electronics parts inventory in a database and lets you
browse and edit it from the terminal.

With no arguments, launches the TUI with three screens:
- Parts: the catalog with per-part totals, create and edit forms
- Stock: stocked parts with on hand, available and balance counters
- Projects: named BOMs built from catalog parts

The database is PostgreSQL by default. Set database.driver to sqlite for a
single local file, or memory for a throwaway session.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logging.L().Sync()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd.Context())
	},
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		printStatus("✗", err.Error(), errorColor)
		stop()
		os.Exit(1)
	}
}

// setup loads configuration, applies flag overrides and installs the logger.
func setup() error {
	var err error
	if cfgFile != "" {
		cfg, err = config.LoadFromPath(cfgFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if driverFlag != "" {
		cfg.Database.Driver = driverFlag
	}
	if dsnFlag != "" {
		switch cfg.Database.Driver {
		case config.DriverSQLite:
			cfg.Database.SQLitePath = dsnFlag
		default:
			cfg.Database.DSN = dsnFlag
		}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	l, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	logging.SetGlobal(l)
	l.Debug("config loaded",
		zap.String("driver", cfg.Database.Driver),
		zap.String("dsn", config.MaskDSN(cfg.Database.DSN)),
		zap.String("dsn_source", string(config.GetDSNSource(cfg))))
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: XDG config with .shikabom.yaml override)")
	rootCmd.PersistentFlags().StringVar(&driverFlag, "driver", "", "Database driver: postgres, sqlite or memory")
	rootCmd.PersistentFlags().StringVar(&dsnFlag, "dsn", "", "Postgres DSN, or the database file for sqlite")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(partsCmd)
	rootCmd.AddCommand(stockCmd)
	rootCmd.AddCommand(projectsCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(serveCmd)
}
