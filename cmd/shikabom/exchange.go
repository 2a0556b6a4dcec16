package main

import (
	"bytes"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/ShayCichocki/shikabom/internal/exchange"
	"github.com/ShayCichocki/shikabom/internal/store"
)

var importCmd = &cobra.Command{
	Use:   "import <catalog.yaml | s3://bucket/key | ->",
	Short: "Import parts and stock from a YAML catalog",
	Long: `Import a YAML catalog with parts: and stock: sections.

Existing parts are updated. Stock quantities are added to what is already
stored, so importing the same catalog twice doubles its stock.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		loc := &exchange.Locator{S3: cfg.Export.S3}
		src, err := loc.Source(ctx, args[0])
		if err != nil {
			return err
		}
		data, err := src.Get(ctx)
		if err != nil {
			return err
		}
		catalog, err := exchange.ReadCatalog(bytes.NewReader(data))
		if err != nil {
			return err
		}

		return withStore(ctx, func(s store.Store) error {
			res, err := exchange.ImportCatalog(ctx, s, catalog)
			if err != nil {
				return err
			}
			printStatus("✓", fmt.Sprintf("Imported %s: %d parts created, %d updated, %d stock rows, %d stock levels",
				src, res.PartsCreated, res.PartsUpdated, res.StockAdded, res.LevelsSet), okColor)
			return nil
		})
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the catalog or a project BOM",
}

var exportFormat string

var exportBOMCmd = &cobra.Command{
	Use:   "bom <project> <file.csv | file.yaml | s3://bucket/key | ->",
	Short: "Export a project BOM as CSV or YAML",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		format := exportFormat
		if format == "" {
			format = exchange.FormatFromName(args[1])
		}

		return withStore(ctx, func(s store.Store) error {
			p, err := s.GetProject(ctx, args[0])
			if err != nil {
				return err
			}
			var buf bytes.Buffer
			if err := exchange.WriteBOM(&buf, p, format); err != nil {
				return err
			}
			return put(cmd, args[1], exchange.ContentType(format), buf.Bytes())
		})
	},
}

var exportCatalogCmd = &cobra.Command{
	Use:   "catalog <file.yaml | s3://bucket/key | ->",
	Short: "Export every part and its stock as a YAML catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		return withStore(ctx, func(s store.Store) error {
			c, err := exchange.ExportCatalog(ctx, s)
			if err != nil {
				return err
			}
			var buf bytes.Buffer
			if err := exchange.WriteCatalog(&buf, c); err != nil {
				return err
			}
			return put(cmd, args[0], exchange.ContentType(exchange.FormatYAML), buf.Bytes())
		})
	},
}

// put writes data to target and reports where it went.
func put(cmd *cobra.Command, target, contentType string, data []byte) error {
	loc := &exchange.Locator{S3: cfg.Export.S3}
	sink, err := loc.Sink(cmd.Context(), target, contentType)
	if err != nil {
		return err
	}
	if err := sink.Put(cmd.Context(), data); err != nil {
		return err
	}
	if target != "-" {
		printStatus("✓", fmt.Sprintf("Wrote %s to %s", humanize.Bytes(uint64(len(data))), sink), okColor)
	}
	return nil
}

func init() {
	exportBOMCmd.Flags().StringVar(&exportFormat, "format", "", "csv or yaml (default: from the file extension)")
	exportCmd.AddCommand(exportBOMCmd, exportCatalogCmd)
}
