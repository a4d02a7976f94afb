package preview

import (
	"strings"
	"testing"

	"github.com/KaramelBytes/dataview-cli/internal/pipeline"
	"github.com/KaramelBytes/dataview-cli/internal/view"
)

func render(t *testing.T, req pipeline.Request) *view.Result {
	t.Helper()
	res, err := pipeline.New(pipeline.Config{}).Render(req)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return res
}

func TestMarkdown_Chart(t *testing.T) {
	res := render(t, pipeline.Request{Text: "year;north;trend\n2020;1200;3\n2021;x;4", View: view.Mixed})
	md := Markdown(res, "sales.csv")
	for _, want := range []string{"Source: sales.csv", "View: mixed (series layout)", "| label | north | trend (line) |", "| 2020 | 1,200 | 3 |", "| 2021 | NaN | 4 |", "[COLOURS]"} {
		if !strings.Contains(md, want) {
			t.Fatalf("missing %q in:\n%s", want, md)
		}
	}
}

func TestMarkdown_PieShares(t *testing.T) {
	res := render(t, pipeline.Request{Text: "l;v\na;1\nb;3", View: view.Pie})
	md := Markdown(res, "")
	if !strings.Contains(md, "| a | 1 (25%) |") || !strings.Contains(md, "| b | 3 (75%) |") {
		t.Fatalf("unexpected pie preview:\n%s", md)
	}
}

func TestMarkdown_SearchableTable(t *testing.T) {
	res := render(t, pipeline.Request{Text: "city;note\nParis;a|b\nBerlin;c", View: view.SearchableTable, Search: "par"})
	md := Markdown(res, "")
	if !strings.Contains(md, `Search "par": 1 of 2 rows`) || !strings.Contains(md, "| Paris | a/b |") {
		t.Fatalf("unexpected table preview:\n%s", md)
	}
	res = render(t, pipeline.Request{Text: "city;note\nParis;a", View: view.SearchableTable, Search: "zzz"})
	if md := Markdown(res, ""); !strings.Contains(md, "No matching rows.") || !strings.Contains(md, "| city | note |") {
		t.Fatalf("no-match preview:\n%s", md)
	}
}

func TestMarkdown_Stats(t *testing.T) {
	res := render(t, pipeline.Request{Text: "country;gdp;2019\nUS;100;90\nUK;text;5", View: view.Stats})
	md := Markdown(res, "")
	for _, want := range []string{"- US: 100 (gdp)", "▼ 2019: 90", "- UK: text", "= 2019: 5"} {
		if !strings.Contains(md, want) {
			t.Fatalf("missing %q in:\n%s", want, md)
		}
	}
}

func TestMarkdown_Ranked(t *testing.T) {
	res := render(t, pipeline.Request{Text: "group,label,value\nA,x,10\nA,y,5\nB,z,20", Delimiter: ',', View: view.RankedBars})
	md := Markdown(res, "")
	if !strings.Contains(md, "## A") || !strings.Contains(md, "## B") {
		t.Fatalf("missing group titles:\n%s", md)
	}
	if !strings.Contains(md, "1. "+strings.Repeat("█", 20)+" x 10") {
		t.Fatalf("missing full bar:\n%s", md)
	}
	if !strings.Contains(md, "2. "+strings.Repeat("█", 10)+strings.Repeat(" ", 10)+" y 5") {
		t.Fatalf("missing half bar:\n%s", md)
	}
}

func TestMarkdown_Empty(t *testing.T) {
	res := render(t, pipeline.Request{Text: "", View: view.Bar})
	if md := Markdown(res, ""); !strings.Contains(md, "No data") {
		t.Fatalf("empty preview:\n%s", md)
	}
}
