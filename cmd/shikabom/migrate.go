package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or upgrade the database schema",
	Long: `Apply every pending schema migration to the configured database.

The TUI and the other commands migrate automatically unless
database.auto_migrate is false; this command is for databases where that is
switched off.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := *cfg
		c.Database.AutoMigrate = false
		s, err := openStore(cmd.Context(), &c)
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.Migrate(cmd.Context()); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		if v, ok := s.(schemaVersioner); ok {
			n, err := v.SchemaVersion(cmd.Context())
			if err != nil {
				return err
			}
			printStatus("✓", fmt.Sprintf("Schema at version %d (%s)", n, cfg.Database.Driver), okColor)
			return nil
		}
		printStatus("✓", fmt.Sprintf("Schema ready (%s)", cfg.Database.Driver), okColor)
		return nil
	},
}

// schemaVersioner is implemented by the SQL backends.
type schemaVersioner interface {
	SchemaVersion(ctx context.Context) (int, error)
}
