package view

import "strings"

// cardAppearance parses cardBackgroundColor ("css-value|theme", e.g.
// "var(--blue-base)|dark"). Empty or "none" leaves cards transparent.
func cardAppearance(o Options) Appearance {
	align := o.CardAlignment
	if align == "" {
		align = "left"
	}
	a := Appearance{AlignClass: "align-" + align}

	raw := strings.TrimSpace(o.CardBackgroundColor)
	if raw == "" || raw == "none" {
		return a
	}
	parts := strings.Split(raw, "|")
	bg := strings.TrimSpace(parts[0])
	theme := "light"
	if len(parts) > 1 && strings.TrimSpace(parts[1]) != "" {
		theme = strings.TrimSpace(parts[1])
	}

	slug := strings.TrimPrefix(bg, "var(--")
	slug = strings.TrimSuffix(slug, ")")
	slug = strings.TrimPrefix(slug, "#")

	a.Background = bg
	a.ColourClass = "color-" + slug
	a.ThemeClass = "theme-" + theme
	return a
}

// dataLabels returns the label placement for a chart view, or nil when
// labels are switched off.
func dataLabels(t Type, o Options) *DataLabels {
	if !o.ShowDataLabels {
		return nil
	}
	pos := o.DataLabelPosition
	if pos == "" {
		pos = "end"
	}
	switch t {
	case Pie, Doughnut:
		return &DataLabels{Anchor: "end", Align: "end", Offset: 8, Format: LabelPercentOfTotal, Colour: "dataset"}
	case Pyramid:
		return &DataLabels{Anchor: "end", Align: "end", Format: LabelAbsolute, Colour: "#333"}
	case Line:
		return &DataLabels{Anchor: "end", Align: "top", Offset: 4, Format: LabelNumber, Colour: "dataset"}
	case Mixed:
		return &DataLabels{Anchor: pos, Align: pos, Format: LabelNumber, Colour: "#333", SkipLine: true}
	}
	dl := &DataLabels{Anchor: pos, Align: pos, Format: LabelNumber, Colour: "dataset"}
	if pos == "end" {
		dl.Offset = 4
	} else {
		// inside the bar
		dl.Colour = "#fff"
	}
	return dl
}
