package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/ShayCichocki/shikabom/internal/config"
	"github.com/ShayCichocki/shikabom/internal/logging"
	"github.com/ShayCichocki/shikabom/internal/tui"
)

var errNotATerminal = errors.New("the TUI needs a terminal; use the parts, stock and projects subcommands for scripting")

// runTUI starts the interactive screens.
func runTUI(ctx context.Context) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) || !term.IsTerminal(int(os.Stdin.Fd())) {
		return errNotATerminal
	}

	s, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	logger := logging.L().Named("tui")
	opts := []tui.Option{
		tui.WithLogger(logger),
		tui.WithQueryTimeout(cfg.Database.QueryTimeout),
	}

	if cfg.Database.Driver == config.DriverSQLite && cfg.TUI.WatchDB {
		w, err := tui.NewDBWatcher(sqlitePath(cfg))
		if err != nil {
			logger.Warn("database watcher disabled", zap.Error(err))
		} else {
			defer w.Close()
			opts = append(opts, tui.WithDBWatcher(w))
		}
	}

	progOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if cfg.TUI.AltScreen {
		progOpts = append(progOpts, tea.WithAltScreen())
	}

	p := tea.NewProgram(tui.NewApp(s, opts...), progOpts...)
	if _, err := p.Run(); err != nil {
		// A signal cancels ctx, which kills the program; that is a clean exit.
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
