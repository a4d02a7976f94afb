package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/dataview-cli/internal/palette"
	"github.com/KaramelBytes/dataview-cli/internal/utils"
)

var (
	palCount   int
	palShuffle bool
	palPie     bool
	palFormat  string
	palJSON    bool
)

var paletteCmd = &cobra.Command{
	Use:   "palette",
	Short: "Print the colour sequence views are painted with",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if palCount < 0 {
			return fmt.Errorf("--count must be >= 0")
		}
		c, err := settings().Palette()
		if err != nil {
			return err
		}
		if palFormat != "" {
			f, err := palette.ParseFormat(palFormat)
			if err != nil {
				return err
			}
			c.Format = f
		}
		g := palette.New(c)

		count := palCount
		colours := g.Graph(count, palShuffle)
		if palPie {
			colours = g.Pie(count, palShuffle)
		}

		out := cmd.OutOrStdout()
		if palJSON {
			b, err := utils.PrettyJSON(colours)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(b))
			return nil
		}
		for i, col := range colours {
			fmt.Fprintf(out, "%3d  %s\n", i, col)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(paletteCmd)
	paletteCmd.Flags().IntVarP(&palCount, "count", "n", len(palette.DefaultGraph), "number of colours")
	paletteCmd.Flags().BoolVar(&palShuffle, "shuffle", false, "apply the seeded shuffle")
	paletteCmd.Flags().BoolVar(&palPie, "pie", false, "use the pie palette")
	paletteCmd.Flags().StringVar(&palFormat, "format", "", "generated colour format: hsl | hex (default from config)")
	paletteCmd.Flags().BoolVar(&palJSON, "json", false, "print as a JSON array")
}
