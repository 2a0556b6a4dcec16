package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ShayCichocki/shikabom/internal/store"
	"github.com/ShayCichocki/shikabom/pkg/models"
)

var partsCmd = &cobra.Command{
	Use:     "parts",
	Aliases: []string{"part"},
	Short:   "List, show and add catalog parts",
}

var partsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every part with its total quantity",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd.Context(), func(s store.Store) error {
			parts, err := s.ListParts(cmd.Context())
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(parts))
			for _, p := range parts {
				rows = append(rows, []string{
					p.PartNumber, strconv.FormatInt(p.TotalQty, 10), p.Manufacturer,
					p.Package, p.Label, p.Value, p.Tolerance,
				})
			}
			printTable([]string{"Part Number", "Total Qty", "Manufacturer", "Package", "Label", "Value", "Tolerance"}, rows)
			return nil
		})
	},
}

var partsShowCmd = &cobra.Command{
	Use:   "show <part-number>",
	Short: "Show a part and where it is stored",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd.Context(), func(s store.Store) error {
			p, err := s.GetPart(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			storage, err := s.ListPartStorage(cmd.Context(), p.PartNumber)
			if err != nil {
				return err
			}

			printField("Part Number", p.PartNumber)
			for _, f := range models.PartFields()[1:] {
				printField(f.String(), p.Get(f))
			}
			printField("Total Qty", strconv.FormatInt(p.TotalQty, 10))
			if len(storage) > 0 {
				fmt.Println()
				rows := make([][]string, 0, len(storage))
				for _, ps := range storage {
					rows = append(rows, []string{ps.Location, strconv.FormatInt(ps.Quantity, 10)})
				}
				printTable([]string{"Location", "Qty"}, rows)
			}
			return nil
		})
	},
}

var newPart models.Part

var partsAddCmd = &cobra.Command{
	Use:   "add <part-number>",
	Short: "Add a part to the catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p := newPart
		p.PartNumber = args[0]
		return withStore(cmd.Context(), func(s store.Store) error {
			if err := s.CreatePart(cmd.Context(), &p); err != nil {
				return err
			}
			printStatus("✓", "Created part "+p.PartNumber, okColor)
			return nil
		})
	},
}

func init() {
	f := partsAddCmd.Flags()
	f.StringVar(&newPart.Manufacturer, "mfg", "", "Manufacturer")
	f.StringVar(&newPart.Description, "desc", "", "Description")
	f.StringVar(&newPart.Label, "label", "", "Bin label")
	f.StringVar(&newPart.Package, "package", "", "Package, e.g. 0603")
	f.StringVar(&newPart.Value, "value", "", "Value, e.g. 10k")
	f.StringVar(&newPart.Tolerance, "tolerance", "", "Tolerance, e.g. 1%")

	partsCmd.AddCommand(partsListCmd, partsShowCmd, partsAddCmd)
}
