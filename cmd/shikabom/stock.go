package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ShayCichocki/shikabom/internal/store"
	"github.com/ShayCichocki/shikabom/pkg/models"
)

var stockCmd = &cobra.Command{
	Use:   "stock",
	Short: "List stocked parts and add stock",
}

var stockListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stocked parts with their counters",
	Long: `List every stocked part. Parts that were never stocked are not shown.

Low stock rows, where the balance is below zero, are highlighted.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd.Context(), func(s store.Store) error {
			stock, err := s.ListStock(cmd.Context())
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(stock))
			low := 0
			for _, si := range stock {
				pn := si.PartNumber
				if si.IsLow() {
					pn = color.RedString(pn)
					low++
				}
				rows = append(rows, []string{
					pn,
					strconv.FormatInt(si.TotalStock, 10),
					strconv.FormatInt(si.OnHand, 10),
					strconv.FormatInt(si.Available, 10),
					strconv.FormatInt(si.InProd, 10),
					strconv.FormatInt(si.Balance, 10),
					strconv.FormatInt(si.LowStockThreshold, 10),
					strconv.FormatInt(si.OnOrder, 10),
				})
			}
			printTable([]string{"Part Number", "Total Stock", "On Hand", "Available", "In Production", "Balance", "Low Stock Threshold", "On Order"}, rows)
			if low > 0 {
				printStatus("⚠", fmt.Sprintf("%d part(s) below their low stock threshold", low), warnColor)
			}
			return nil
		})
	},
}

var stockAddCmd = &cobra.Command{
	Use:   "add <part-number> <location> <qty>",
	Short: "Add stock of a part at a location",
	Long: `Add qty units of a part at a storage location. The location is created
when it does not exist yet, and the quantity is added to what is already
stored there.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		qty, err := strconv.ParseInt(args[2], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid quantity %q: %w", args[2], err)
		}
		return withStore(cmd.Context(), func(s store.Store) error {
			if err := s.AddStock(cmd.Context(), args[0], args[1], qty); err != nil {
				return err
			}
			printStatus("✓", fmt.Sprintf("Added %d of %s at %s", qty, args[0], args[1]), okColor)
			return nil
		})
	},
}

var levels struct {
	threshold int64
	onOrder   int64
	inProd    int64
}

var stockLevelsCmd = &cobra.Command{
	Use:   "levels <part-number>",
	Short: "Set the low stock threshold, on order and in production counters",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		l := models.StockLevels{
			PartNumber:        args[0],
			LowStockThreshold: levels.threshold,
			OnOrder:           levels.onOrder,
			InProd:            levels.inProd,
		}
		return withStore(cmd.Context(), func(s store.Store) error {
			if err := s.SetStockLevels(cmd.Context(), l); err != nil {
				return err
			}
			printStatus("✓", "Updated stock levels of "+args[0], okColor)
			return nil
		})
	},
}

func init() {
	f := stockLevelsCmd.Flags()
	f.Int64Var(&levels.threshold, "threshold", 0, "Low stock threshold")
	f.Int64Var(&levels.onOrder, "on-order", 0, "Units on order")
	f.Int64Var(&levels.inProd, "in-prod", 0, "Units reserved for production")

	stockCmd.AddCommand(stockListCmd, stockAddCmd, stockLevelsCmd)
}
