package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ShayCichocki/shikabom/internal/store"
	"github.com/ShayCichocki/shikabom/pkg/models"
)

var projectsCmd = &cobra.Command{
	Use:     "projects",
	Aliases: []string{"project"},
	Short:   "List, create and show projects and their BOMs",
}

var projectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every project",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd.Context(), func(s store.Store) error {
			projects, err := s.ListProjects(cmd.Context())
			if err != nil {
				return err
			}
			for _, p := range projects {
				fmt.Println(p.Name)
			}
			return nil
		})
	},
}

var projectsCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create an empty project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd.Context(), func(s store.Store) error {
			if err := s.CreateProject(cmd.Context(), args[0]); err != nil {
				return err
			}
			printStatus("✓", "Created project "+args[0], okColor)
			return nil
		})
	},
}

var projectsShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show the BOM of a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd.Context(), func(s store.Store) error {
			p, err := s.GetProject(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(p.Parts))
			for _, c := range p.Parts {
				info := c.PartInfo
				rows = append(rows, []string{
					c.PartNumber, c.Designators, strconv.FormatInt(c.Qty, 10),
					info.Value, info.Tolerance, info.Package, info.Label, info.Manufacturer,
				})
			}
			printField("Project", p.Name)
			printField("Placements", strconv.FormatInt(p.TotalPlacements(), 10))
			printTable([]string{"Part Number", "Designator(s)", "Qty", "Value", "Tolerance", "Package", "Label", "MFG"}, rows)
			return nil
		})
	},
}

var bomDesignators string

var projectsAddCmd = &cobra.Command{
	Use:   "add <project> <part-number> <qty>",
	Short: "Add a part to a project's BOM",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		qty, err := strconv.ParseInt(args[2], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid quantity %q: %w", args[2], err)
		}
		c := models.ProjectComponent{PartNumber: args[1], Designators: bomDesignators, Qty: qty}
		return withStore(cmd.Context(), func(s store.Store) error {
			if err := s.AddComponent(cmd.Context(), args[0], c); err != nil {
				return err
			}
			printStatus("✓", fmt.Sprintf("Added %s x%d to %s", c.PartNumber, qty, args[0]), okColor)
			return nil
		})
	},
}

func init() {
	projectsAddCmd.Flags().StringVarP(&bomDesignators, "designators", "d", "", "Reference designators, e.g. R1,R2")

	projectsCmd.AddCommand(projectsListCmd, projectsCreateCmd, projectsShowCmd, projectsAddCmd)
}
