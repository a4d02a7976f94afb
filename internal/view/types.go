package view

import (
	"errors"
	"fmt"
	"strings"

	"github.com/KaramelBytes/dataview-cli/internal/layout"
)

// ErrUnknownView is returned for a view identifier outside the supported set.
var ErrUnknownView = errors.New("unknown view")

// Type identifies one of the supported presentation modes.
type Type string

const (
	Bar             Type = "bar"
	BarHorizontal   Type = "barHorizontal"
	Line            Type = "line"
	Pie             Type = "pie"
	Doughnut        Type = "doughnut"
	Pyramid         Type = "pyramid"
	Mixed           Type = "mixed"
	Table           Type = "table"
	SearchableTable Type = "searchableTable"
	Stats           Type = "stats"
	RankedBars      Type = "rankedBars"
	RankedCards     Type = "rankedCards"
)

// Info describes a view for listings.
type Info struct {
	Type        Type   `json:"type"`
	Family      string `json:"family"`
	Description string `json:"description"`
}

var catalog = []Info{
	{Bar, "chart", "Grouped vertical bars, one series per value column"},
	{BarHorizontal, "chart", "Grouped bars along the horizontal axis"},
	{Line, "chart", "One line per value column"},
	{Pie, "chart", "Slices coloured per row"},
	{Doughnut, "chart", "Pie with a hollow centre"},
	{Pyramid, "pyramid", "Two series mirrored around a shared zero axis"},
	{Mixed, "chart", "Bars with the last value column drawn as a line overlay"},
	{Table, "table", "All rows as a plain table"},
	{SearchableTable, "table", "Table narrowed by a free-text search"},
	{Stats, "stats", "Statistic cards with deltas against a primary value"},
	{RankedBars, "rankedBars", "Proportional bars grouped by the first column"},
	{RankedCards, "rankedCards", "One ranked list card per group"},
}

// Catalog lists every supported view in display order.
func Catalog() []Info {
	return append([]Info{}, catalog...)
}

// Types returns the supported identifiers.
func Types() []Type {
	out := make([]Type, len(catalog))
	for i, c := range catalog {
		out[i] = c.Type
	}
	return out
}

// ParseType resolves an identifier case-insensitively. Empty means bar.
func ParseType(s string) (Type, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Bar, nil
	}
	for _, c := range catalog {
		if strings.EqualFold(string(c.Type), s) {
			return c.Type, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownView, s)
}

// Family maps a view onto the column arrangement it consumes.
func (t Type) Family() layout.Family {
	switch t {
	case Pyramid:
		return layout.FamilyPyramid
	case Table, SearchableTable:
		return layout.FamilyTable
	case Stats:
		return layout.FamilyStats
	case RankedBars:
		return layout.FamilyRankedBars
	case RankedCards:
		return layout.FamilyRankedCards
	}
	return layout.FamilyChart
}

// IsPie reports whether slices are coloured per row.
func (t Type) IsPie() bool { return t == Pie || t == Doughnut }
