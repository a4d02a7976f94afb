package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/KaramelBytes/dataview-cli/internal/palette"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	c, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(c, Default()) {
		t.Fatalf("config = %#v", c)
	}
	dir, _ := Dir()
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("config dir not created: %v", err)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	c := Default()
	c.DefaultView = "pie"
	c.DefaultDelimiter = ","
	c.GraphColours = []string{"#111111", "#222222"}
	c.ColourFormat = "hex"
	c.CacheTTLSec = 0
	if err := Save(c, ""); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(got, c) {
		t.Fatalf("got %#v want %#v", got, c)
	}
}

func TestLoad_ExplicitFileAndEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte("default_view: stats\nserver_address: \":9000\"\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("DATAVIEW_SERVER_ADDRESS", ":7000")
	c, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.DefaultView != "stats" {
		t.Fatalf("default_view = %q", c.DefaultView)
	}
	if c.ServerAddress != ":7000" {
		t.Fatalf("env should win over file, got %q", c.ServerAddress)
	}
}

func TestPalette(t *testing.T) {
	c := Default()
	p, err := c.Palette()
	if err != nil {
		t.Fatalf("palette: %v", err)
	}
	if p.Format != palette.FormatHSL || !reflect.DeepEqual(p.Graph, palette.DefaultGraph) {
		t.Fatalf("palette = %#v", p)
	}
	c.ColourFormat = "cmyk"
	if _, err := c.Palette(); err == nil {
		t.Fatalf("expected error for unknown colour format")
	}
}
