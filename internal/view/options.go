package view

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cast"
)

// Options is the flat per-block configuration. Every field has a default and
// an absent key leaves it in place. The opt tag names the map key.
type Options struct {
	ShuffleColours      bool   `opt:"shuffleColours" json:"shuffleColours"`
	ShowDataLabels      bool   `opt:"showDataLabels" json:"showDataLabels"`
	DataLabelPosition   string `opt:"dataLabelPosition" json:"dataLabelPosition" validate:"caseinsensitiveoneof=end center start"`
	XLabel              string `opt:"xLabel" json:"xLabel,omitempty"`
	YLabel              string `opt:"yLabel" json:"yLabel,omitempty"`
	ReverseX            bool   `opt:"reverseX" json:"reverseX"`
	ReverseY            bool   `opt:"reverseY" json:"reverseY"`
	XPercent            bool   `opt:"xPercent" json:"xPercent"`
	YPercent            bool   `opt:"yPercent" json:"yPercent"`
	CardAlignment       string `opt:"cardAlignment" json:"cardAlignment" validate:"caseinsensitiveoneof=left center right"`
	CardBackgroundColor string `opt:"cardBackgroundColor" json:"cardBackgroundColor,omitempty"`
	StatColumns         int    `opt:"statColumns" json:"statColumns" validate:"min=2,max=5"`
	RankedCardColumns   int    `opt:"rankedCardColumns" json:"rankedCardColumns" validate:"min=2,max=4"`
	StatAnimationMs     int    `opt:"statAnimationMs" json:"statAnimationMs" validate:"min=0,max=60000"`
	ShowBarTrack        bool   `opt:"showBarTrack" json:"showBarTrack"`
	ShowBarInCards      bool   `opt:"showBarInCards" json:"showBarInCards"`
	MobileCarousel      bool   `opt:"mobileCarousel" json:"mobileCarousel"`
	SearchPlaceholder   string `opt:"searchPlaceholder" json:"searchPlaceholder"`
	Title               string `opt:"title" json:"title,omitempty"`
	Description         string `opt:"description" json:"description,omitempty"`
	UseNarrow           bool   `opt:"useNarrow" json:"useNarrow"`
	Independent         bool   `opt:"independent" json:"independent"`
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		DataLabelPosition: "end",
		CardAlignment:     "left",
		StatColumns:       3,
		RankedCardColumns: 3,
		StatAnimationMs:   1500,
		ShowBarTrack:      true,
		MobileCarousel:    true,
		SearchPlaceholder: "Search...",
	}
}

var (
	optionValidator     *validator.Validate
	optionValidatorOnce sync.Once
)

func validate() *validator.Validate {
	optionValidatorOnce.Do(func() {
		optionValidator = NewValidator()
	})
	return optionValidator
}

// OptionKeys lists the recognised keys in sorted order.
func OptionKeys() []string {
	t := reflect.TypeOf(Options{})
	keys := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		keys = append(keys, t.Field(i).Tag.Get("opt"))
	}
	sort.Strings(keys)
	return keys
}

// DecodeOptions reads a flat option map on top of the defaults. Keys match
// case-insensitively and unknown keys are ignored. A value that cannot be
// coerced or fails validation keeps the default and yields a warning.
func DecodeOptions(m map[string]any) (Options, []string) {
	opts := DefaultOptions()
	if len(m) == 0 {
		return opts, nil
	}
	lower := make(map[string]any, len(m))
	for k, v := range m {
		lower[strings.ToLower(strings.TrimSpace(k))] = v
	}

	var warnings []string
	rv := reflect.ValueOf(&opts).Elem()
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		key := rt.Field(i).Tag.Get("opt")
		raw, ok := lower[strings.ToLower(key)]
		if !ok || raw == nil {
			continue
		}
		if err := assign(rv.Field(i), raw); err != nil {
			warnings = append(warnings, fmt.Sprintf("option %s: %v, using default", key, err))
		}
	}

	if err := validate().Struct(opts); err != nil {
		var ve validator.ValidationErrors
		if !errors.As(err, &ve) {
			return DefaultOptions(), append(warnings, fmt.Sprintf("options: %v, using defaults", err))
		}
		def := reflect.ValueOf(DefaultOptions())
		for _, fe := range ve {
			f, _ := rt.FieldByName(fe.StructField())
			rv.FieldByName(fe.StructField()).Set(def.FieldByName(fe.StructField()))
			warnings = append(warnings, fmt.Sprintf("option %s: invalid value %v (%s), using default", f.Tag.Get("opt"), fe.Value(), fe.Tag()))
		}
	}
	opts.DataLabelPosition = strings.ToLower(opts.DataLabelPosition)
	opts.CardAlignment = strings.ToLower(opts.CardAlignment)
	return opts, warnings
}

func assign(field reflect.Value, raw any) error {
	switch field.Kind() {
	case reflect.Bool:
		b, err := cast.ToBoolE(raw)
		if err != nil {
			return fmt.Errorf("not a boolean: %v", raw)
		}
		field.SetBool(b)
	case reflect.Int:
		n, err := cast.ToIntE(raw)
		if err != nil {
			return fmt.Errorf("not an integer: %v", raw)
		}
		field.SetInt(int64(n))
	case reflect.String:
		s, err := cast.ToStringE(raw)
		if err != nil {
			return fmt.Errorf("not a string: %v", raw)
		}
		field.SetString(strings.TrimSpace(s))
	}
	return nil
}

// Map returns the options as a flat map keyed like DecodeOptions input.
func (o Options) Map() map[string]any {
	rv := reflect.ValueOf(o)
	rt := rv.Type()
	out := make(map[string]any, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		out[rt.Field(i).Tag.Get("opt")] = rv.Field(i).Interface()
	}
	return out
}
