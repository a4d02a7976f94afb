// Package palette produces deterministic colour sequences for charts and cards.
package palette

import (
	"fmt"
	"math"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Format selects how procedurally generated colours are written.
type Format string

const (
	FormatHSL Format = "hsl"
	FormatHex Format = "hex"
)

// DefaultGraph is the brand palette for chart series, cards and groups.
var DefaultGraph = []string{"#0D7FA1", "#064C3F", "#00C9A7", "#F5B942", "#D84055", "#8c564b"}

// DefaultPie is the palette for pie and doughnut slices.
var DefaultPie = []string{"#36a2eb", "#ff6384", "#4bc0c0", "#ffcd56", "#9966ff", "#c9cbcf"}

const (
	saturation = 0.60
	lightness  = 0.48
)

// Config carries the base colour lists a Generator draws from.
type Config struct {
	Graph  []string
	Pie    []string
	Format Format
}

// DefaultConfig returns the built-in brand colours in HSL format.
func DefaultConfig() Config {
	return Config{
		Graph:  append([]string{}, DefaultGraph...),
		Pie:    append([]string{}, DefaultPie...),
		Format: FormatHSL,
	}
}

// ParseFormat accepts "hsl" or "hex" (any case); empty means hsl.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(FormatHSL):
		return FormatHSL, nil
	case string(FormatHex):
		return FormatHex, nil
	}
	return "", fmt.Errorf("unsupported colour format %q (use hsl or hex)", s)
}

// Hash mixes an index into a stable 32-bit value.
func Hash(i int) uint32 {
	h := uint32(i+1) * 2654435761
	return (h >> 16) ^ h
}

// Hue returns the golden-angle hue in degrees for index i.
func Hue(i int) int {
	return int(math.Floor(math.Mod(float64(Hash(i))*137.508, 360) + 0.5))
}

// Generate returns the procedural colour for index i as an hsl() string.
func Generate(i int) string {
	return GenerateFormat(i, FormatHSL)
}

// GenerateFormat returns the procedural colour for index i in the given format.
func GenerateFormat(i int, f Format) string {
	hue := Hue(i)
	if f == FormatHex {
		return colorful.Hsl(float64(hue%360), saturation, lightness).Hex()
	}
	return fmt.Sprintf("hsl(%d, 60%%, 48%%)", hue)
}

// Get returns count colours drawn from base.
func Get(base []string, count int, shuffle bool) []string {
	return get(base, count, shuffle, FormatHSL)
}

func get(base []string, count int, shuffle bool, f Format) []string {
	if count <= 0 {
		return []string{}
	}
	extended := append(make([]string, 0, max(count, len(base))), base...)
	for len(extended) < count {
		extended = append(extended, GenerateFormat(len(extended), f))
	}
	out := append([]string{}, extended[:count]...)
	if shuffle {
		// seeded Fisher-Yates
		for i := len(out) - 1; i > 0; i-- {
			j := int(Hash(i) % uint32(i+1))
			out[i], out[j] = out[j], out[i]
		}
	}
	return out
}

// Generator hands out palettes from an injected Config.
type Generator struct {
	cfg Config
}

// New builds a Generator. Empty base lists fall back to the built-in ones.
func New(cfg Config) *Generator {
	if len(cfg.Graph) == 0 {
		cfg.Graph = append([]string{}, DefaultGraph...)
	}
	if len(cfg.Pie) == 0 {
		cfg.Pie = append([]string{}, DefaultPie...)
	}
	if cfg.Format == "" {
		cfg.Format = FormatHSL
	}
	return &Generator{cfg: cfg}
}

// Config returns a copy of the generator's configuration.
func (g *Generator) Config() Config {
	return Config{
		Graph:  append([]string{}, g.cfg.Graph...),
		Pie:    append([]string{}, g.cfg.Pie...),
		Format: g.cfg.Format,
	}
}

// Graph returns count colours from the graph palette.
func (g *Generator) Graph(count int, shuffle bool) []string {
	return get(g.cfg.Graph, count, shuffle, g.cfg.Format)
}

// Pie returns count colours from the pie palette.
func (g *Generator) Pie(count int, shuffle bool) []string {
	return get(g.cfg.Pie, count, shuffle, g.cfg.Format)
}
