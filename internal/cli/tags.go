package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/catalog/pkg/catalog"
)

func newCategoriesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List item categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printNames(a, cmd, catalog.Categories())
		},
	}
}

func newUnitsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "units",
		Short: "List measurement units",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printNames(a, cmd, catalog.MeasurementUnits())
		},
	}
}

// printNames prints one wire name per line, or a JSON array with --json.
func printNames[T ~string](a *app, cmd *cobra.Command, names []T) error {
	if a.flags.jsonMode {
		return printJSON(cmd, names)
	}
	for _, n := range names {
		fmt.Fprintln(cmd.OutOrStdout(), string(n))
	}
	return nil
}
