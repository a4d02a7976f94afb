// Package layout assigns column roles from the shape of a header row.
//
// Resolution never looks at cell values: it is a total function of the view
// family, the number of headers and, for ranked views, the text of the second
// header. When there are too few columns for the preferred arrangement the
// resolver falls back to the least demanding tier the header count supports.
package layout

import "strings"

// SubtitleHeader marks the optional second column of ranked views.
const SubtitleHeader = "subtitle"

// Family groups view types that share a column arrangement.
type Family int

const (
	FamilyChart Family = iota
	FamilyPyramid
	FamilyRankedBars
	FamilyRankedCards
	FamilyStats
	FamilyTable
)

func (f Family) String() string {
	switch f {
	case FamilyChart:
		return "chart"
	case FamilyPyramid:
		return "pyramid"
	case FamilyRankedBars:
		return "rankedBars"
	case FamilyRankedCards:
		return "rankedCards"
	case FamilyStats:
		return "stats"
	case FamilyTable:
		return "table"
	}
	return "unknown"
}

// Tier names the arrangement that was chosen.
type Tier string

const (
	TierEmpty     Tier = "empty"
	TierSeries    Tier = "series"    // label + dataset columns
	TierSubtitled Tier = "subtitled" // group, subtitle, label, value
	TierGrouped   Tier = "grouped"   // group, label, value
	TierFlat      Tier = "flat"      // label, value in one implicit group
	TierGroupOnly Tier = "groupOnly" // ranked cards with fewer than three columns
	TierStats     Tier = "stats"     // label, primary, sub-indicators
	TierColumns   Tier = "columns"   // every header is a display column
)

// Layout is the resolved role assignment. Role keys are always taken from the
// header list; an empty key means the role is absent.
type Layout struct {
	Family   Family   `json:"-"`
	Tier     Tier     `json:"tier"`
	Label    string   `json:"label,omitempty"`
	Value    string   `json:"value,omitempty"`
	Group    string   `json:"group,omitempty"`
	Subtitle string   `json:"subtitle,omitempty"`
	Primary  string   `json:"primary,omitempty"`
	Datasets []string `json:"datasets,omitempty"`
	Subs     []string `json:"subs,omitempty"`
	Columns  []string `json:"columns,omitempty"`
}

// Grouped reports whether rows are partitioned by an explicit group column.
func (l Layout) Grouped() bool { return l.Group != "" }

// Degraded reports whether the header count forced a fallback tier.
func (l Layout) Degraded() bool {
	switch l.Family {
	case FamilyRankedBars:
		return l.Tier == TierFlat || l.Tier == TierEmpty
	case FamilyRankedCards:
		return l.Tier == TierGroupOnly || l.Tier == TierEmpty
	case FamilyPyramid:
		return len(l.Datasets) != 2
	case FamilyStats:
		return l.Primary == ""
	}
	return l.Tier == TierEmpty
}

// Resolve computes the layout for a family once per header set.
func Resolve(f Family, headers []string) Layout {
	l := Layout{Family: f, Tier: TierEmpty}
	n := len(headers)
	if n == 0 {
		return l
	}
	switch f {
	case FamilyChart, FamilyPyramid:
		l.Tier = TierSeries
		l.Label = headers[0]
		l.Datasets = append([]string{}, headers[1:]...)
	case FamilyRankedBars, FamilyRankedCards:
		resolveRanked(&l, headers)
	case FamilyStats:
		l.Tier = TierStats
		l.Label = headers[0]
		if n > 1 {
			l.Primary = headers[1]
		}
		if n > 2 {
			l.Subs = append([]string{}, headers[2:]...)
		}
	case FamilyTable:
		l.Tier = TierColumns
		l.Columns = append([]string{}, headers...)
	}
	return l
}

func resolveRanked(l *Layout, headers []string) {
	n := len(headers)
	switch {
	case n >= 4 && strings.EqualFold(headers[1], SubtitleHeader):
		l.Tier = TierSubtitled
		l.Group, l.Subtitle, l.Label, l.Value = headers[0], headers[1], headers[2], headers[3]
	case n >= 3:
		l.Tier = TierGrouped
		l.Group, l.Label, l.Value = headers[0], headers[1], headers[2]
	case l.Family == FamilyRankedBars:
		l.Tier = TierFlat
		l.Label = headers[0]
		if n > 1 {
			l.Value = headers[1]
		}
	default:
		l.Tier = TierGroupOnly
		l.Group = headers[0]
		if n > 1 {
			l.Label = headers[1]
		}
	}
}
