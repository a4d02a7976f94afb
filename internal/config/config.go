package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/dataview-cli/internal/palette"
)

// Global configuration structure.
type Global struct {
	DefaultDelimiter string   `mapstructure:"default_delimiter" yaml:"default_delimiter"`
	DefaultView      string   `mapstructure:"default_view" yaml:"default_view"`
	GraphColours     []string `mapstructure:"graph_colours" yaml:"graph_colours"`
	PieColours       []string `mapstructure:"pie_colours" yaml:"pie_colours"`
	ColourFormat     string   `mapstructure:"colour_format" yaml:"colour_format"`

	// Logging
	LogLevel  string `mapstructure:"log_level" yaml:"log_level"`
	LogPretty bool   `mapstructure:"log_pretty" yaml:"log_pretty"`

	// Memoisation of rendered views; 0 disables it
	CacheTTLSec int `mapstructure:"cache_ttl_sec" yaml:"cache_ttl_sec"`

	// HTTP
	ServerAddress   string `mapstructure:"server_address" yaml:"server_address"`
	FetchTimeoutSec int    `mapstructure:"fetch_timeout_sec" yaml:"fetch_timeout_sec"`
}

// Default returns the built-in settings.
func Default() *Global {
	return &Global{
		DefaultDelimiter: ";",
		DefaultView:      "bar",
		GraphColours:     append([]string{}, palette.DefaultGraph...),
		PieColours:       append([]string{}, palette.DefaultPie...),
		ColourFormat:     string(palette.FormatHSL),
		LogLevel:         "info",
		LogPretty:        true,
		CacheTTLSec:      300,
		ServerAddress:    ":8080",
		FetchTimeoutSec:  20,
	}
}

// Dir returns ~/.dataview.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".dataview"), nil
}

// Palette builds the palette configuration from the colour settings.
func (c *Global) Palette() (palette.Config, error) {
	f, err := palette.ParseFormat(c.ColourFormat)
	if err != nil {
		return palette.Config{}, err
	}
	return palette.Config{
		Graph:  append([]string{}, c.GraphColours...),
		Pie:    append([]string{}, c.PieColours...),
		Format: f,
	}, nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.dataview/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		dir, err := Dir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("DATAVIEW")
	v.AutomaticEnv()

	// Defaults
	d := Default()
	v.SetDefault("default_delimiter", d.DefaultDelimiter)
	v.SetDefault("default_view", d.DefaultView)
	v.SetDefault("graph_colours", d.GraphColours)
	v.SetDefault("pie_colours", d.PieColours)
	v.SetDefault("colour_format", d.ColourFormat)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_pretty", d.LogPretty)
	v.SetDefault("cache_ttl_sec", d.CacheTTLSec)
	v.SetDefault("server_address", d.ServerAddress)
	v.SetDefault("fetch_timeout_sec", d.FetchTimeoutSec)

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		_ = os.MkdirAll(dir, 0o755)
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if len(c.GraphColours) == 0 {
		c.GraphColours = append([]string{}, palette.DefaultGraph...)
	}
	if len(c.PieColours) == 0 {
		c.PieColours = append([]string{}, palette.DefaultPie...)
	}
	return &c, nil
}
