// Package filter narrows table rows by a free-text search term.
package filter

import (
	"strings"

	"github.com/samber/lo"
	"golang.org/x/text/cases"

	"github.com/KaramelBytes/dataview-cli/internal/dataset"
)

// Result is a filtered row set. Headers survive a search with no matches.
type Result struct {
	Headers []string      `json:"headers"`
	Rows    []dataset.Row `json:"rows"`
	Matched int           `json:"matched"`
	Total   int           `json:"total"`
	Term    string        `json:"term,omitempty"`
}

// Rows returns the rows where any header's value contains term, compared
// case-folded. A blank term returns every row.
func Rows(rows []dataset.Row, headers []string, term string) []dataset.Row {
	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(term))
	if needle == "" {
		return append([]dataset.Row{}, rows...)
	}
	return lo.Filter(rows, func(row dataset.Row, _ int) bool {
		return lo.ContainsBy(headers, func(h string) bool {
			return strings.Contains(fold.String(row[h]), needle)
		})
	})
}

// Table filters a normalised table and reports how many rows matched.
func Table(t *dataset.Table, term string) Result {
	if t == nil {
		t = &dataset.Table{}
	}
	rows := Rows(t.Rows, t.Headers, term)
	return Result{
		Headers: append([]string{}, t.Headers...),
		Rows:    rows,
		Matched: len(rows),
		Total:   len(t.Rows),
		Term:    strings.TrimSpace(term),
	}
}
