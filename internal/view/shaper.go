package view

import (
	"fmt"
	"math"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/KaramelBytes/dataview-cli/internal/dataset"
	"github.com/KaramelBytes/dataview-cli/internal/layout"
	"github.com/KaramelBytes/dataview-cli/internal/numeric"
	"github.com/KaramelBytes/dataview-cli/internal/palette"
)

// Shaper turns a normalised table into a view model.
type Shaper struct {
	palette *palette.Generator
}

// NewShaper builds a Shaper. A nil generator uses the built-in colours.
func NewShaper(g *palette.Generator) *Shaper {
	if g == nil {
		g = palette.New(palette.DefaultConfig())
	}
	return &Shaper{palette: g}
}

// Palette returns the generator the shaper colours with.
func (s *Shaper) Palette() *palette.Generator { return s.palette }

type input struct {
	view   Type
	rows   []dataset.Row
	layout layout.Layout
	opts   Options
}

type handler func(s *Shaper, in input) *Result

var handlers = map[layout.Family]handler{
	layout.FamilyChart:       (*Shaper).chart,
	layout.FamilyPyramid:     (*Shaper).pyramid,
	layout.FamilyTable:       (*Shaper).table,
	layout.FamilyStats:       (*Shaper).stats,
	layout.FamilyRankedBars:  (*Shaper).ranked,
	layout.FamilyRankedCards: (*Shaper).ranked,
}

// Shape resolves the column layout for t once and runs the family handler.
// Malformed values never fail shaping; only an unknown view is an error.
func (s *Shaper) Shape(t Type, tbl *dataset.Table, opts Options) (*Result, error) {
	t, err := ParseType(string(t))
	if err != nil {
		return nil, err
	}
	if tbl == nil {
		tbl = &dataset.Table{}
	}
	l := layout.Resolve(t.Family(), tbl.Headers)
	h := handlers[t.Family()]
	res := h(s, input{view: t, rows: tbl.Rows, layout: l, opts: opts})

	res.View = t
	res.Layout = l
	res.Empty = len(tbl.Rows) == 0
	res.Meta = Meta{
		Title:       opts.Title,
		Description: opts.Description,
		Narrow:      opts.UseNarrow,
		Independent: opts.Independent,
	}
	if w := degradation(t, l, len(tbl.Headers)); w != "" {
		log.Debug().Str("view", string(t)).Str("tier", string(l.Tier)).Int("columns", len(tbl.Headers)).Msg("layout degraded")
		res.Warnings = append(res.Warnings, w)
	}
	return res, nil
}

func degradation(t Type, l layout.Layout, n int) string {
	if n == 0 || !l.Degraded() {
		return ""
	}
	switch t.Family() {
	case layout.FamilyPyramid:
		return fmt.Sprintf("%s expects a label column and two value columns, found %d columns", t, n)
	case layout.FamilyStats:
		return fmt.Sprintf("%s expects a label and a primary value column, found %d columns", t, n)
	case layout.FamilyRankedBars:
		return fmt.Sprintf("%s found %d columns, showing one ungrouped list", t, n)
	case layout.FamilyRankedCards:
		return fmt.Sprintf("%s expects group, label and value columns, found %d columns", t, n)
	}
	return ""
}

// cell reads an optional role; an empty key means the role is absent.
func cell(row dataset.Row, key string) string {
	if key == "" {
		return ""
	}
	return row[key]
}

func column(rows []dataset.Row, key string) []numeric.Number {
	return lo.Map(rows, func(r dataset.Row, _ int) numeric.Number {
		return numeric.Number(numeric.Parse(r[key]))
	})
}

func axes(t Type, o Options) *Axes {
	return &Axes{
		Horizontal: t == BarHorizontal || t == Pyramid,
		ReverseX:   o.ReverseX,
		ReverseY:   o.ReverseY,
		XPercent:   o.XPercent,
		YPercent:   o.YPercent,
		XLabel:     o.XLabel,
		YLabel:     o.YLabel,
	}
}

func (s *Shaper) chart(in input) *Result {
	l := in.layout
	m := &ChartModel{
		Labels:     lo.Map(in.rows, func(r dataset.Row, _ int) string { return r[l.Label] }),
		Datasets:   []Dataset{},
		Legend:     in.view.IsPie() || len(l.Datasets) > 1,
		DataLabels: dataLabels(in.view, in.opts),
	}
	if !in.view.IsPie() {
		m.Axes = axes(in.view, in.opts)
	}
	if len(in.rows) == 0 {
		return &Result{Kind: KindChart, Chart: m}
	}

	shuffle := in.opts.ShuffleColours
	graph := s.palette.Graph(len(l.Datasets), shuffle)
	var slices []string
	if in.view.IsPie() {
		slices = s.palette.Pie(len(in.rows), shuffle)
	}
	last := len(l.Datasets) - 1
	for i, key := range l.Datasets {
		ds := Dataset{Label: key, Kind: SeriesBar, Values: column(in.rows, key), Order: 2}
		switch {
		case in.view.IsPie():
			ds.Kind = SeriesArc
			ds.Colours = slices
			ds.PercentOfTotal = percentOfTotal(ds.Values)
		case in.view == Mixed && i == last:
			// line overlay drawn above the bars
			ds.Kind = SeriesLine
			ds.Order = 1
			ds.Colour = graph[i]
			ds.Background = "transparent"
		case in.view == Line:
			ds.Kind = SeriesLine
			ds.Colour = graph[i]
			ds.Background = graph[i]
		default:
			ds.Colour = graph[i]
			ds.Background = graph[i]
			ds.MinBarLength = 4
		}
		m.Datasets = append(m.Datasets, ds)
	}
	return &Result{Kind: KindChart, Chart: m}
}

func percentOfTotal(values []numeric.Number) []int {
	total := 0.0
	for _, v := range values {
		total += float64(v)
	}
	out := make([]int, len(values))
	if !(total > 0) {
		return out
	}
	for i, v := range values {
		f := float64(v)
		if math.IsNaN(f) {
			continue
		}
		out[i] = int(math.Floor(f/total*100 + 0.5))
	}
	return out
}

func (s *Shaper) pyramid(in input) *Result {
	l := in.layout
	base := s.palette.Graph(6, false)
	m := &ChartModel{
		Labels:     lo.Map(in.rows, func(r dataset.Row, _ int) string { return r[l.Label] }),
		Datasets:   []Dataset{},
		Axes:       axes(in.view, in.opts),
		Legend:     true,
		DataLabels: dataLabels(in.view, in.opts),
	}
	if len(in.rows) == 0 {
		return &Result{Kind: KindChart, Chart: m}
	}
	for i, key := range l.Datasets {
		values := column(in.rows, key)
		for j, v := range values {
			a := math.Abs(float64(v))
			if i == 0 {
				a = -a
			}
			values[j] = numeric.Number(a)
		}
		colour := base[5]
		if i == 0 {
			colour = base[3]
		}
		m.Datasets = append(m.Datasets, Dataset{
			Label:        key,
			Kind:         SeriesBar,
			Values:       values,
			Colour:       colour,
			Background:   colour,
			MinBarLength: 4,
		})
	}
	return &Result{Kind: KindChart, Chart: m}
}

func (s *Shaper) table(in input) *Result {
	m := &TableModel{
		Headers:    append([]string{}, in.layout.Columns...),
		Rows:       append([]dataset.Row{}, in.rows...),
		Searchable: in.view == SearchableTable,
		Matched:    len(in.rows),
		Total:      len(in.rows),
	}
	if m.Searchable {
		m.SearchPlaceholder = in.opts.SearchPlaceholder
	}
	return &Result{Kind: KindTable, Table: m}
}

func direction(delta float64) Direction {
	switch {
	case delta > 0:
		return Up
	case delta < 0:
		return Down
	}
	return Flat
}

func (s *Shaper) stats(in input) *Result {
	l := in.layout
	colours := s.palette.Graph(len(in.rows), in.opts.ShuffleColours)
	m := &StatsModel{
		Cards:       make([]StatCard, 0, len(in.rows)),
		Columns:     in.opts.StatColumns,
		AnimationMs: in.opts.StatAnimationMs,
		Carousel:    in.opts.MobileCarousel,
		Appearance:  cardAppearance(in.opts),
	}
	for i, row := range in.rows {
		raw := strings.TrimSpace(cell(row, l.Primary))
		v := numeric.Coerce(raw)
		card := StatCard{
			Label:         row[l.Label],
			PrimaryKey:    l.Primary,
			IsPercent:     v.IsPercent,
			IsText:        v.IsText,
			HasSubColumns: len(l.Subs) > 0,
			Subs:          make([]SubIndicator, 0, len(l.Subs)),
			Colour:        colours[i],
		}
		if v.IsText {
			card.PrimaryText = raw
			card.PrimaryDisplay = raw
		} else {
			n := v.Number
			card.Primary = &n
			card.PrimaryDisplay = numeric.Display(n.Float(), v.IsPercent)
		}
		for _, key := range l.Subs {
			sraw := row[key]
			sv := numeric.Parse(sraw)
			delta := 0.0
			if !v.IsText {
				delta = sv - v.Number.Float()
			}
			pct := numeric.IsPercent(sraw)
			card.Subs = append(card.Subs, SubIndicator{
				Label:     key,
				Value:     numeric.Number(sv),
				Delta:     numeric.Number(delta),
				IsPercent: pct,
				Direction: direction(delta),
				Display:   numeric.Display(sv, pct),
			})
		}
		m.Cards = append(m.Cards, card)
	}
	return &Result{Kind: KindStats, Stats: m}
}

func (s *Shaper) ranked(in input) *Result {
	l := in.layout
	groups := []Group{}
	index := map[string]int{}
	for _, row := range in.rows {
		title := cell(row, l.Group)
		gi, ok := index[title]
		if !ok {
			g := Group{Title: title, Implicit: !l.Grouped(), Rows: []RankedRow{}}
			if l.Subtitle != "" {
				g.Subtitle = row[l.Subtitle]
			}
			gi = len(groups)
			index[title] = gi
			groups = append(groups, g)
		}
		raw := cell(row, l.Value)
		pct := numeric.IsPercent(raw)
		v := numeric.Parse(raw)
		groups[gi].Rows = append(groups[gi].Rows, RankedRow{
			Rank:      len(groups[gi].Rows) + 1,
			Label:     cell(row, l.Label),
			Value:     numeric.Number(v),
			RawText:   raw,
			IsPercent: pct,
			Display:   numeric.Display(v, pct),
		})
	}

	colours := s.palette.Graph(len(groups), in.opts.ShuffleColours)
	for gi := range groups {
		g := &groups[gi]
		g.Colour = colours[gi]
		g.Max = groupMax(g.Rows)
		for ri := range g.Rows {
			g.Rows[ri].PercentOfGroupMax = numeric.Number(g.Rows[ri].Value.Float() / g.Max * 100)
		}
	}

	m := &RankedModel{
		Variant:        VariantBars,
		Groups:         groups,
		ShowBarTrack:   in.opts.ShowBarTrack,
		ShowBarInCards: in.opts.ShowBarInCards,
		Carousel:       in.opts.MobileCarousel,
		Appearance:     cardAppearance(in.opts),
	}
	if in.view == RankedCards {
		m.Variant = VariantCards
		m.Columns = in.opts.RankedCardColumns
	}
	return &Result{Kind: KindRanked, Ranked: m}
}

// groupMax is the largest parsed value in the group, floored at 1.
func groupMax(rows []RankedRow) float64 {
	valid := lo.Filter(rows, func(r RankedRow, _ int) bool { return !math.IsNaN(r.Value.Float()) })
	top := 1.0
	for _, r := range valid {
		if r.Value.Float() > top {
			top = r.Value.Float()
		}
	}
	return top
}
