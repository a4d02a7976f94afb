package layout

import (
	"reflect"
	"testing"
)

func TestResolve_Chart(t *testing.T) {
	l := Resolve(FamilyChart, []string{"year", "north", "south", "east"})
	if l.Tier != TierSeries || l.Label != "year" {
		t.Fatalf("layout = %#v", l)
	}
	if !reflect.DeepEqual(l.Datasets, []string{"north", "south", "east"}) {
		t.Fatalf("datasets = %#v", l.Datasets)
	}
	single := Resolve(FamilyChart, []string{"only"})
	if single.Label != "only" || len(single.Datasets) != 0 {
		t.Fatalf("single column layout = %#v", single)
	}
}

func TestResolve_Pyramid(t *testing.T) {
	l := Resolve(FamilyPyramid, []string{"age", "male", "female"})
	if !reflect.DeepEqual(l.Datasets, []string{"male", "female"}) || l.Degraded() {
		t.Fatalf("layout = %#v", l)
	}
	if !Resolve(FamilyPyramid, []string{"age", "male"}).Degraded() {
		t.Fatalf("pyramid with one dataset should be degraded")
	}
}

func TestResolve_RankedBarsBoundaries(t *testing.T) {
	cases := []struct {
		headers []string
		want    Layout
	}{
		{[]string{"label", "value"}, Layout{Family: FamilyRankedBars, Tier: TierFlat, Label: "label", Value: "value"}},
		{[]string{"group", "label", "value"}, Layout{Family: FamilyRankedBars, Tier: TierGrouped, Group: "group", Label: "label", Value: "value"}},
		{[]string{"group", "Subtitle", "label", "value"}, Layout{Family: FamilyRankedBars, Tier: TierSubtitled, Group: "group", Subtitle: "Subtitle", Label: "label", Value: "value"}},
		{[]string{"group", "note", "label", "value"}, Layout{Family: FamilyRankedBars, Tier: TierGrouped, Group: "group", Label: "note", Value: "label"}},
		{[]string{"group", "SUBTITLE", "label", "value", "extra"}, Layout{Family: FamilyRankedBars, Tier: TierSubtitled, Group: "group", Subtitle: "SUBTITLE", Label: "label", Value: "value"}},
		{[]string{"group", "subtitle", "label"}, Layout{Family: FamilyRankedBars, Tier: TierGrouped, Group: "group", Label: "subtitle", Value: "label"}},
	}
	for _, c := range cases {
		got := Resolve(FamilyRankedBars, c.headers)
		if !reflect.DeepEqual(got, c.want) {
			t.Fatalf("Resolve(%v) = %#v, want %#v", c.headers, got, c.want)
		}
	}
}

func TestResolve_RankedCardsRequiresGroup(t *testing.T) {
	l := Resolve(FamilyRankedCards, []string{"group", "label"})
	if l.Tier != TierGroupOnly || l.Group != "group" || l.Label != "label" || l.Value != "" {
		t.Fatalf("layout = %#v", l)
	}
	if !l.Degraded() {
		t.Fatalf("two column ranked cards should be degraded")
	}
	one := Resolve(FamilyRankedCards, []string{"group"})
	if one.Group != "group" || one.Label != "" {
		t.Fatalf("layout = %#v", one)
	}
	full := Resolve(FamilyRankedCards, []string{"g", "subtitle", "l", "v"})
	if full.Tier != TierSubtitled || full.Degraded() {
		t.Fatalf("layout = %#v", full)
	}
}

func TestResolve_Stats(t *testing.T) {
	l := Resolve(FamilyStats, []string{"country", "gdp", "2019", "2020"})
	if l.Label != "country" || l.Primary != "gdp" || !reflect.DeepEqual(l.Subs, []string{"2019", "2020"}) {
		t.Fatalf("layout = %#v", l)
	}
	two := Resolve(FamilyStats, []string{"country", "gdp"})
	if len(two.Subs) != 0 {
		t.Fatalf("subs = %#v", two.Subs)
	}
}

func TestResolve_TableAndEmpty(t *testing.T) {
	l := Resolve(FamilyTable, []string{"a", "b", "c"})
	if !reflect.DeepEqual(l.Columns, []string{"a", "b", "c"}) {
		t.Fatalf("columns = %#v", l.Columns)
	}
	for _, f := range []Family{FamilyChart, FamilyPyramid, FamilyRankedBars, FamilyRankedCards, FamilyStats, FamilyTable} {
		e := Resolve(f, nil)
		if e.Tier != TierEmpty || !e.Degraded() {
			t.Fatalf("%s: empty layout = %#v", f, e)
		}
	}
}
