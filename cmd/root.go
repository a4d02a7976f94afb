package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/dataview-cli/internal/config"
	"github.com/KaramelBytes/dataview-cli/internal/logger"
	"github.com/KaramelBytes/dataview-cli/internal/pipeline"
)

var (
	// Global flags
	cfgFile string
	debug   bool
	// HTTP flags (override config if set)
	flagFetchTimeoutSec int
	flagNoCache         bool

	// Loaded configuration
	cfg *cfgpkg.Global
)

var (
	okMark   = color.New(color.FgGreen).Sprint("✓")
	warnMark = color.New(color.FgYellow).Sprint("⚠")
	errMark  = color.New(color.FgRed).Sprint("✗")
)

var rootCmd = &cobra.Command{
	Use:   "dataview",
	Short: "DataView CLI: turn delimited data into chart, table, stat and ranked views",
	Long: `DataView reads CSV, TSV or XLSX data from a file or URL and shapes it into
renderer-ready view models: bar, line, pie, pyramid and mixed charts, plain
and searchable tables, statistic cards and ranked lists.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		loadConfig(cmd.Root())
	},
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errMark, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.dataview/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().IntVar(&flagFetchTimeoutSec, "fetch-timeout", 0, "URL fetch timeout in seconds (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "disable render memoisation")
}

// loadConfig runs from rootCmd's own pre-run hook and must not refer to rootCmd.
func loadConfig(root *cobra.Command) {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to built-in settings
		fmt.Fprintf(os.Stderr, "%s Warning: failed to load config: %v\n", warnMark, err)
		c = cfgpkg.Default()
	}
	cfg = c

	f := root.PersistentFlags()
	if f.Changed("fetch-timeout") && flagFetchTimeoutSec > 0 {
		cfg.FetchTimeoutSec = flagFetchTimeoutSec
	}
	if flagNoCache {
		cfg.CacheTTLSec = 0
	}

	level := cfg.LogLevel
	if debug {
		level = "debug"
	}
	if err := logger.Configure(level, cfg.LogPretty); err != nil {
		fmt.Fprintf(os.Stderr, "%s Warning: %v, logging at info\n", warnMark, err)
		_ = logger.Configure("info", cfg.LogPretty)
	}
}

// settings returns the loaded configuration, or the defaults when a command
// runs without the persistent pre-run.
func settings() *cfgpkg.Global {
	if cfg == nil {
		cfg = cfgpkg.Default()
	}
	return cfg
}

func newRenderer() (*pipeline.Renderer, error) {
	c := settings()
	pal, err := c.Palette()
	if err != nil {
		return nil, err
	}
	r := pipeline.New(pipeline.Config{
		Palette:  pal,
		CacheTTL: time.Duration(c.CacheTTLSec) * time.Second,
	})
	log.Debug().Str("format", string(pal.Format)).Int("cache_ttl_sec", c.CacheTTLSec).Msg("renderer ready")
	return r, nil
}

func fetchTimeout() time.Duration {
	return time.Duration(settings().FetchTimeoutSec) * time.Second
}
