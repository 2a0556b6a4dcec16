package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ShayCichocki/shikabom/internal/config"
	"github.com/ShayCichocki/shikabom/internal/logging"
	"github.com/ShayCichocki/shikabom/internal/store"
	"github.com/ShayCichocki/shikabom/internal/store/memory"
	"github.com/ShayCichocki/shikabom/internal/store/postgres"
	"github.com/ShayCichocki/shikabom/internal/store/sqlite"
)

// sqlitePath returns the database file the sqlite backend uses.
func sqlitePath(c *config.Config) string {
	if c.Database.SQLitePath != "" {
		return c.Database.SQLitePath
	}
	return sqlite.DefaultPath()
}

// openStore opens the configured backend and applies migrations when
// auto_migrate is on.
func openStore(ctx context.Context, c *config.Config) (store.Store, error) {
	var (
		s   store.Store
		err error
	)
	switch c.Database.Driver {
	case config.DriverPostgres:
		s, err = postgres.Open(ctx, c.Database.DSN)
	case config.DriverSQLite:
		s, err = sqlite.Open(ctx, sqlitePath(c))
	case config.DriverMemory:
		s = memory.New()
	default:
		err = fmt.Errorf("unknown database driver %q", c.Database.Driver)
	}
	if err != nil {
		return nil, err
	}

	logging.L().Info("store opened", zap.String("driver", c.Database.Driver))

	if c.Database.AutoMigrate {
		if err := s.Migrate(ctx); err != nil {
			s.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}
	return s, nil
}

// withStore opens the store, runs fn and closes the store.
func withStore(ctx context.Context, fn func(store.Store) error) error {
	s, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s)
}
