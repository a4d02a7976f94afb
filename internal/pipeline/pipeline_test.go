package pipeline

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/KaramelBytes/dataview-cli/internal/dataset"
	"github.com/KaramelBytes/dataview-cli/internal/palette"
	"github.com/KaramelBytes/dataview-cli/internal/view"
)

func TestRender_StatsScenario(t *testing.T) {
	r := New(Config{Palette: palette.DefaultConfig()})
	res, err := r.Render(Request{Text: "country,gdp\nUS,100\nUK,text", Delimiter: ',', View: view.Stats})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	cards := res.Stats.Cards
	if len(cards) != 2 || *cards[0].Primary != 100 || !cards[1].IsText || cards[1].PrimaryText != "text" {
		t.Fatalf("cards = %#v", cards)
	}
}

func TestRender_DefaultsToBarAndSemicolon(t *testing.T) {
	r := New(Config{})
	res, err := r.Render(Request{Text: "a;b\n1;2"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if res.View != view.Bar || res.Chart == nil || res.Chart.Datasets[0].Values[0] != 2 {
		t.Fatalf("result = %#v", res)
	}
}

func TestRender_NormalisesViewCase(t *testing.T) {
	res, err := New(Config{}).Render(Request{Text: "a;b\n1;2", View: "RANKEDBARS"})
	if err != nil || res.View != view.RankedBars {
		t.Fatalf("view = %v, %v", res, err)
	}
}

func TestRender_ParseError(t *testing.T) {
	_, err := New(Config{}).Render(Request{Text: "a;b\n\"x;1", View: view.Table})
	var pe *dataset.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ParseError, got %v", err)
	}
}

func TestRender_UnknownView(t *testing.T) {
	_, err := New(Config{}).Render(Request{Text: "a;b\n1;2", View: "radar"})
	if !errors.Is(err, view.ErrUnknownView) {
		t.Fatalf("expected ErrUnknownView, got %v", err)
	}
}

func TestRender_EmptyInput(t *testing.T) {
	res, err := New(Config{}).Render(Request{Text: "   ", View: view.Pie})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !res.Empty || len(res.Chart.Datasets) != 0 {
		t.Fatalf("result = %#v", res)
	}
}

func TestRender_SearchNarrowsSearchableTable(t *testing.T) {
	r := New(Config{})
	text := "city;country\nParis;France\nLyon;France\nBerlin;Germany"
	res, err := r.Render(Request{Text: text, View: view.SearchableTable, Search: " france "})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	tm := res.Table
	if tm.Matched != 2 || tm.Total != 3 || len(tm.Rows) != 2 || tm.Search != "france" {
		t.Fatalf("table = %#v", tm)
	}

	res, err = r.Render(Request{Text: text, View: view.SearchableTable, Search: "spain"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(res.Table.Rows) != 0 || len(res.Table.Headers) != 2 {
		t.Fatalf("no-match table = %#v", res.Table)
	}

	res, err = r.Render(Request{Text: text, View: view.Table, Search: "paris"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(res.Table.Rows) != 3 || len(res.Warnings) != 1 {
		t.Fatalf("plain table should ignore search: %#v %v", res.Table, res.Warnings)
	}
}

func TestRender_OptionWarnings(t *testing.T) {
	res, err := New(Config{}).Render(Request{
		Text:    "a;b\nx;1",
		View:    view.Stats,
		Options: map[string]any{"statColumns": "12"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if res.Stats.Columns != 3 || len(res.Warnings) != 1 || !strings.Contains(res.Warnings[0], "statColumns") {
		t.Fatalf("columns = %d warnings = %v", res.Stats.Columns, res.Warnings)
	}
}

func TestRender_Memoised(t *testing.T) {
	r := New(Config{CacheTTL: time.Minute})
	req := Request{Text: "a;b\n1;2", View: view.Line, Options: map[string]any{"shuffleColours": "false"}}
	first, err := r.Render(req)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	// equivalent option map decodes to the same key
	req.Options = map[string]any{"shuffleColours": false}
	second, err := r.Render(req)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if first != second {
		t.Fatalf("expected memoised result to be reused")
	}
	req.Text = "a;b\n1;3"
	third, err := r.Render(req)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if third == first {
		t.Fatalf("different text must not hit the cache")
	}
}

func TestRender_NoCacheByDefault(t *testing.T) {
	r := New(Config{})
	req := Request{Text: "a;b\n1;2"}
	a, _ := r.Render(req)
	b, _ := r.Render(req)
	if a == b {
		t.Fatalf("results should be fresh without a cache TTL")
	}
}

func TestFilter(t *testing.T) {
	fr, err := New(Config{}).Filter("a,b\nx,1\ny,2", ',', "Y")
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if fr.Matched != 1 || fr.Total != 2 || fr.Rows[0]["a"] != "y" {
		t.Fatalf("result = %#v", fr)
	}
}
