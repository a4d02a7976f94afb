// Package preview renders view results as plain Markdown for terminals.
package preview

import (
	"fmt"
	"math"
	"strings"

	"github.com/KaramelBytes/dataview-cli/internal/numeric"
	"github.com/KaramelBytes/dataview-cli/internal/view"
)

const barWidth = 20

// Markdown renders res. name labels the source and may be empty.
func Markdown(res *view.Result, name string) string {
	var b strings.Builder
	b.WriteString("[DATA VIEW]\n")
	if name != "" {
		b.WriteString(fmt.Sprintf("Source: %s\n", name))
	}
	if res.Meta.Title != "" {
		b.WriteString(fmt.Sprintf("Title: %s\n", res.Meta.Title))
	}
	b.WriteString(fmt.Sprintf("View: %s (%s layout)\n", res.View, res.Layout.Tier))
	if res.Meta.Description != "" {
		b.WriteString(fmt.Sprintf("Caption: %s\n", safeVal(res.Meta.Description)))
	}
	if len(res.Warnings) > 0 {
		b.WriteString("\n[WARNINGS]\n")
		for _, w := range res.Warnings {
			b.WriteString(fmt.Sprintf("- %s\n", w))
		}
	}
	b.WriteString("\n")
	if res.Empty && res.Kind != view.KindTable {
		b.WriteString("No data: the source has no non-empty rows.\n")
		return b.String()
	}

	switch res.Kind {
	case view.KindChart:
		writeChart(&b, res.Chart)
	case view.KindTable:
		writeTable(&b, res.Table)
	case view.KindStats:
		writeStats(&b, res.Stats)
	case view.KindRanked:
		writeRanked(&b, res.Ranked)
	}
	return b.String()
}

func writeChart(b *strings.Builder, c *view.ChartModel) {
	b.WriteString("[SERIES]\n")
	headers := []string{"label"}
	for _, d := range c.Datasets {
		h := safeName(d.Label)
		if d.Kind == view.SeriesLine {
			h += " (line)"
		}
		headers = append(headers, h)
	}
	rows := make([][]string, len(c.Labels))
	for i, l := range c.Labels {
		row := []string{safeVal(l)}
		for _, d := range c.Datasets {
			cell := numeric.Display(d.Values[i].Float(), false)
			if i < len(d.PercentOfTotal) {
				cell = fmt.Sprintf("%s (%d%%)", cell, d.PercentOfTotal[i])
			}
			row = append(row, cell)
		}
		rows[i] = row
	}
	writeGrid(b, headers, rows)

	b.WriteString("\n[COLOURS]\n")
	for _, d := range c.Datasets {
		if len(d.Colours) > 0 {
			b.WriteString(fmt.Sprintf("- %s: %s\n", safeName(d.Label), strings.Join(d.Colours, ", ")))
			continue
		}
		b.WriteString(fmt.Sprintf("- %s: %s\n", safeName(d.Label), d.Colour))
	}
}

func writeTable(b *strings.Builder, t *view.TableModel) {
	if t.Search != "" {
		b.WriteString(fmt.Sprintf("Search %q: %d of %d rows\n\n", t.Search, t.Matched, t.Total))
	}
	if len(t.Headers) == 0 {
		b.WriteString("No data: the source has no columns.\n")
		return
	}
	rows := make([][]string, len(t.Rows))
	for i, r := range t.Rows {
		row := make([]string, len(t.Headers))
		for j, h := range t.Headers {
			row[j] = safeVal(r[h])
		}
		rows[i] = row
	}
	headers := make([]string, len(t.Headers))
	for i, h := range t.Headers {
		headers[i] = safeName(h)
	}
	writeGrid(b, headers, rows)
	if len(t.Rows) == 0 {
		b.WriteString("\nNo matching rows.\n")
	}
}

func writeStats(b *strings.Builder, s *view.StatsModel) {
	b.WriteString("[CARDS]\n")
	for _, c := range s.Cards {
		b.WriteString(fmt.Sprintf("- %s: %s", safeVal(c.Label), c.PrimaryDisplay))
		if c.HasSubColumns && !c.IsText {
			b.WriteString(fmt.Sprintf(" (%s)", c.PrimaryKey))
		}
		b.WriteString("\n")
		for _, sub := range c.Subs {
			b.WriteString(fmt.Sprintf("  %s %s: %s\n", arrow(sub.Direction), sub.Label, sub.Display))
		}
	}
}

func writeRanked(b *strings.Builder, r *view.RankedModel) {
	b.WriteString("[RANKED]\n")
	for gi, g := range r.Groups {
		if gi > 0 {
			b.WriteString("\n")
		}
		if !g.Implicit {
			title := safeVal(g.Title)
			if g.Subtitle != "" {
				title += " (" + safeVal(g.Subtitle) + ")"
			}
			b.WriteString(fmt.Sprintf("## %s\n", title))
		}
		for _, row := range g.Rows {
			b.WriteString(fmt.Sprintf("%d. %-*s %s %s\n", row.Rank, barWidth, bar(row.PercentOfGroupMax.Float()), safeVal(row.Label), row.Display))
		}
	}
}

func bar(pct float64) string {
	if math.IsNaN(pct) || pct <= 0 {
		return ""
	}
	n := int(math.Round(math.Min(pct, 100) / 100 * barWidth))
	return strings.Repeat("█", n)
}

func arrow(d view.Direction) string {
	switch d {
	case view.Up:
		return "▲"
	case view.Down:
		return "▼"
	}
	return "="
}

func writeGrid(b *strings.Builder, headers []string, rows [][]string) {
	b.WriteString("| " + strings.Join(headers, " | ") + " |\n")
	sep := make([]string, len(headers))
	for i := range sep {
		sep[i] = "---"
	}
	b.WriteString("| " + strings.Join(sep, " | ") + " |\n")
	for _, r := range rows {
		b.WriteString("| " + strings.Join(r, " | ") + " |\n")
	}
}

func safeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(unnamed)"
	}
	return safeVal(s)
}

func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }
