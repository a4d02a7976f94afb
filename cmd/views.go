package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/dataview-cli/internal/view"
)

var viewsShowOptions bool

var viewsCmd = &cobra.Command{
	Use:   "views",
	Short: "List supported view types",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-16s %-12s %s\n", "VIEW", "LAYOUT", "DESCRIPTION")
		for _, v := range view.Catalog() {
			fmt.Fprintf(out, "%-16s %-12s %s\n", v.Type, v.Family, v.Description)
		}
		if viewsShowOptions {
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Options (--opt key=value):")
			defaults := view.DefaultOptions().Map()
			for _, k := range view.OptionKeys() {
				fmt.Fprintf(out, "  %-22s default %v\n", k, defaults[k])
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(viewsCmd)
	viewsCmd.Flags().BoolVar(&viewsShowOptions, "options", false, "also list view options with their defaults")
}
