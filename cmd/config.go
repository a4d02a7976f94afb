package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/dataview-cli/internal/config"
	"github.com/KaramelBytes/dataview-cli/internal/dataset"
	"github.com/KaramelBytes/dataview-cli/internal/logger"
	"github.com/KaramelBytes/dataview-cli/internal/palette"
	"github.com/KaramelBytes/dataview-cli/internal/view"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set DataView configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := settings()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "default_delimiter: %q\n", c.DefaultDelimiter)
		fmt.Fprintf(out, "default_view: %s\n", c.DefaultView)
		fmt.Fprintf(out, "graph_colours: %s\n", strings.Join(c.GraphColours, ","))
		fmt.Fprintf(out, "pie_colours: %s\n", strings.Join(c.PieColours, ","))
		fmt.Fprintf(out, "colour_format: %s\n", c.ColourFormat)
		fmt.Fprintf(out, "log_level: %s\n", c.LogLevel)
		fmt.Fprintf(out, "log_pretty: %t\n", c.LogPretty)
		fmt.Fprintf(out, "cache_ttl_sec: %d\n", c.CacheTTLSec)
		fmt.Fprintf(out, "server_address: %s\n", c.ServerAddress)
		fmt.Fprintf(out, "fetch_timeout_sec: %d\n", c.FetchTimeoutSec)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		c, err := cfgpkg.Load(cfgFile)
		if err != nil {
			return err
		}
		if err := setKey(c, key, val); err != nil {
			return err
		}
		if err := cfgpkg.Save(c, cfgFile); err != nil {
			return err
		}
		cfg = c
		fmt.Fprintf(cmd.OutOrStdout(), "%s Saved %s\n", okMark, key)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}

func setKey(c *cfgpkg.Global, key, val string) error {
	switch key {
	case "default_delimiter":
		if _, err := dataset.ParseDelimiter(val); err != nil {
			return err
		}
		c.DefaultDelimiter = val
	case "default_view":
		t, err := view.ParseType(val)
		if err != nil {
			return err
		}
		c.DefaultView = string(t)
	case "graph_colours":
		c.GraphColours = splitList(val)
	case "pie_colours":
		c.PieColours = splitList(val)
	case "colour_format":
		f, err := palette.ParseFormat(val)
		if err != nil {
			return err
		}
		c.ColourFormat = string(f)
	case "log_level":
		if _, err := logger.ParseLevel(val); err != nil {
			return err
		}
		c.LogLevel = strings.ToLower(val)
	case "log_pretty":
		b, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("invalid bool for log_pretty: %v", val)
		}
		c.LogPretty = b
	case "cache_ttl_sec":
		i, err := strconv.Atoi(val)
		if err != nil || i < 0 {
			return fmt.Errorf("invalid int for cache_ttl_sec: %v", val)
		}
		c.CacheTTLSec = i
	case "server_address":
		c.ServerAddress = val
	case "fetch_timeout_sec":
		i, err := strconv.Atoi(val)
		if err != nil || i <= 0 {
			return fmt.Errorf("invalid int for fetch_timeout_sec: %v", val)
		}
		c.FetchTimeoutSec = i
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	return nil
}

// splitList reads a comma-separated colour list, keeping commas inside
// parentheses such as hsl(200, 60%, 48%). Empty resets to the built-in palette.
func splitList(s string) []string {
	var (
		out   []string
		cur   strings.Builder
		depth int
	)
	flush := func() {
		if p := strings.TrimSpace(cur.String()); p != "" {
			out = append(out, p)
		}
		cur.Reset()
	}
	for _, r := range s {
		switch {
		case r == '(':
			depth++
		case r == ')' && depth > 0:
			depth--
		case r == ',' && depth == 0:
			flush()
			continue
		}
		cur.WriteRune(r)
	}
	flush()
	return out
}
