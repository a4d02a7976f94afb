package view

import (
	"github.com/KaramelBytes/dataview-cli/internal/dataset"
	"github.com/KaramelBytes/dataview-cli/internal/layout"
	"github.com/KaramelBytes/dataview-cli/internal/numeric"
)

// Kind discriminates the model carried by a Result.
type Kind string

const (
	KindChart  Kind = "chart"
	KindTable  Kind = "table"
	KindStats  Kind = "stats"
	KindRanked Kind = "ranked"
)

// Result is the renderer-ready output for one view. Exactly one of Chart,
// Table, Stats or Ranked is set, matching Kind. Empty marks the "no data"
// state, which renderers must show distinctly from a loading state.
type Result struct {
	View     Type          `json:"view"`
	Kind     Kind          `json:"kind"`
	Empty    bool          `json:"empty"`
	Layout   layout.Layout `json:"layout"`
	Chart    *ChartModel   `json:"chart,omitempty"`
	Table    *TableModel   `json:"table,omitempty"`
	Stats    *StatsModel   `json:"stats,omitempty"`
	Ranked   *RankedModel  `json:"ranked,omitempty"`
	Meta     Meta          `json:"meta"`
	Warnings []string      `json:"warnings,omitempty"`
}

// Meta is block-level presentation data passed through from the options.
type Meta struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Narrow      bool   `json:"narrow"`
	Independent bool   `json:"independent"`
}

// SeriesKind is how a dataset is drawn.
type SeriesKind string

const (
	SeriesBar  SeriesKind = "bar"
	SeriesLine SeriesKind = "line"
	SeriesArc  SeriesKind = "arc"
)

// Dataset is one chart series.
type Dataset struct {
	Label        string           `json:"label"`
	Kind         SeriesKind       `json:"kind"`
	Values       []numeric.Number `json:"values"`
	Colour       string           `json:"colour,omitempty"`
	Colours      []string         `json:"colours,omitempty"` // pie and doughnut, one per point
	Background   string           `json:"background,omitempty"`
	Order        int              `json:"order"`
	MinBarLength int              `json:"minBarLength"`
	// PercentOfTotal holds rounded slice shares for pie and doughnut.
	PercentOfTotal []int `json:"percentOfTotal,omitempty"`
}

// Axes carries the axis flags for cartesian charts.
type Axes struct {
	Horizontal bool   `json:"horizontal"`
	ReverseX   bool   `json:"reverseX"`
	ReverseY   bool   `json:"reverseY"`
	XPercent   bool   `json:"xPercent"`
	YPercent   bool   `json:"yPercent"`
	XLabel     string `json:"xLabel,omitempty"`
	YLabel     string `json:"yLabel,omitempty"`
}

// LabelFormat names how data labels print a point.
type LabelFormat string

const (
	LabelNumber         LabelFormat = "number"
	LabelAbsolute       LabelFormat = "absolute"
	LabelPercentOfTotal LabelFormat = "percent-of-total"
)

// DataLabels is the per-chart data label placement.
type DataLabels struct {
	Anchor string      `json:"anchor"`
	Align  string      `json:"align"`
	Offset int         `json:"offset"`
	Format LabelFormat `json:"format"`
	// Colour is a literal colour or "dataset" to reuse the series colour.
	Colour   string `json:"colour"`
	SkipLine bool   `json:"skipLine,omitempty"`
}

// ChartModel feeds bar, line, pie, doughnut, mixed and pyramid charts.
// Axes is nil for pie and doughnut.
type ChartModel struct {
	Labels     []string    `json:"labels"`
	Datasets   []Dataset   `json:"datasets"`
	Axes       *Axes       `json:"axes,omitempty"`
	Legend     bool        `json:"legend"`
	DataLabels *DataLabels `json:"dataLabels,omitempty"`
}

// TableModel is the display table. Rows is the full normalised set until a
// search narrows it; Total always counts the unfiltered rows.
type TableModel struct {
	Headers           []string      `json:"headers"`
	Rows              []dataset.Row `json:"rows"`
	Searchable        bool          `json:"searchable"`
	SearchPlaceholder string        `json:"searchPlaceholder,omitempty"`
	Search            string        `json:"search,omitempty"`
	Matched           int           `json:"matched"`
	Total             int           `json:"total"`
}

// Appearance is the card styling derived from cardBackgroundColor and cardAlignment.
type Appearance struct {
	Background  string `json:"background,omitempty"`
	ColourClass string `json:"colourClass,omitempty"`
	ThemeClass  string `json:"themeClass,omitempty"`
	AlignClass  string `json:"alignClass"`
}

// Direction of a sub-indicator relative to its card's primary value.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
	Flat Direction = "flat"
)

// SubIndicator is a secondary value on a stat card.
type SubIndicator struct {
	Label     string         `json:"label"`
	Value     numeric.Number `json:"value"`
	Delta     numeric.Number `json:"delta"`
	IsPercent bool           `json:"isPercent"`
	Direction Direction      `json:"direction"`
	Display   string         `json:"display"`
}

// StatCard is one row of a stats view. Primary is nil for text cards.
type StatCard struct {
	Label          string          `json:"label"`
	PrimaryKey     string          `json:"primaryKey"`
	Primary        *numeric.Number `json:"primary"`
	PrimaryText    string          `json:"primaryText,omitempty"`
	PrimaryDisplay string          `json:"primaryDisplay"`
	IsPercent      bool            `json:"isPercent"`
	IsText         bool            `json:"isText"`
	HasSubColumns  bool            `json:"hasSubColumns"`
	Subs           []SubIndicator  `json:"subIndicators"`
	Colour         string          `json:"colour"`
}

// StatsModel holds every stat card in row order.
type StatsModel struct {
	Cards       []StatCard `json:"cards"`
	Columns     int        `json:"columns"`
	AnimationMs int        `json:"animationMs"`
	Carousel    bool       `json:"carousel"`
	Appearance  Appearance `json:"appearance"`
}

// RankedRow is one entry in a ranked group.
type RankedRow struct {
	Rank              int            `json:"rank"`
	Label             string         `json:"label"`
	Value             numeric.Number `json:"value"`
	RawText           string         `json:"rawText"`
	IsPercent         bool           `json:"isPercent"`
	PercentOfGroupMax numeric.Number `json:"percentOfGroupMax"`
	Display           string         `json:"display"`
}

// Group is a ranked list. Implicit groups have no title.
type Group struct {
	Title    string      `json:"title,omitempty"`
	Implicit bool        `json:"implicit,omitempty"`
	Subtitle string      `json:"subtitle,omitempty"`
	Max      float64     `json:"max"`
	Colour   string      `json:"colour"`
	Rows     []RankedRow `json:"rows"`
}

// RankedVariant distinguishes the two ranked presentations.
type RankedVariant string

const (
	VariantBars  RankedVariant = "bars"
	VariantCards RankedVariant = "cards"
)

// RankedModel is shared by ranked bars and ranked cards.
type RankedModel struct {
	Variant        RankedVariant `json:"variant"`
	Groups         []Group       `json:"groups"`
	ShowBarTrack   bool          `json:"showBarTrack"`
	ShowBarInCards bool          `json:"showBarInCards"`
	Columns        int           `json:"columns,omitempty"`
	Carousel       bool          `json:"carousel"`
	Appearance     Appearance    `json:"appearance"`
}
