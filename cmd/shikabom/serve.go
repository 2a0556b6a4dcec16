package main

import (
	"github.com/spf13/cobra"

	"github.com/ShayCichocki/shikabom/internal/desktop"
	"github.com/ShayCichocki/shikabom/internal/logging"
	"github.com/ShayCichocki/shikabom/internal/store"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the desktop command API over HTTP",
	Long: `Serve the store as named JSON commands for a desktop front-end.

  POST /invoke/{command}   run a command with a JSON body of arguments
  GET  /healthz            liveness
  GET  /metrics            Prometheus metrics

The server stops on SIGINT or SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := cfg.Serve.Addr
		if serveAddr != "" {
			addr = serveAddr
		}
		logger := logging.L().Named("desktop")
		return withStore(cmd.Context(), func(s store.Store) error {
			commands := desktop.NewCommands(s, desktop.WithCommandLogger(logger))
			srv := desktop.NewServer(commands, logger, cfg.Database.QueryTimeout)
			printStatus("✓", "Listening on http://"+addr, okColor)
			return srv.ListenAndServe(cmd.Context(), addr)
		})
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default: serve.addr)")
}
