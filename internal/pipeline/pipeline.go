// Package pipeline runs parse, normalise and shape as one call and
// optionally memoises the result.
package pipeline

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"
	"github.com/zeebo/xxh3"

	"github.com/KaramelBytes/dataview-cli/internal/dataset"
	"github.com/KaramelBytes/dataview-cli/internal/filter"
	"github.com/KaramelBytes/dataview-cli/internal/palette"
	"github.com/KaramelBytes/dataview-cli/internal/view"
)

// Request is one render: decoded text, its delimiter, the view and the
// flat option map. Search narrows searchable tables.
type Request struct {
	Text      string
	Delimiter rune
	View      view.Type
	Options   map[string]any
	Search    string
}

// Config configures a Renderer. A zero CacheTTL disables memoisation.
type Config struct {
	Palette  palette.Config
	CacheTTL time.Duration
}

// Renderer is safe for concurrent use.
type Renderer struct {
	shaper *view.Shaper
	cache  *cache.Cache
}

// New builds a Renderer.
func New(cfg Config) *Renderer {
	r := &Renderer{shaper: view.NewShaper(palette.New(cfg.Palette))}
	if cfg.CacheTTL > 0 {
		r.cache = cache.New(cfg.CacheTTL, 2*cfg.CacheTTL)
	}
	return r
}

// Palette returns the generator views are coloured with.
func (r *Renderer) Palette() *palette.Generator { return r.shaper.Palette() }

// Render parses, normalises and shapes req. The only errors are malformed
// delimited text and an unknown view. Results may be shared between callers
// when memoised and must be treated as read-only.
func (r *Renderer) Render(req Request) (*view.Result, error) {
	start := time.Now()
	if req.View == "" {
		req.View = view.Bar
	}
	if req.Delimiter == 0 {
		req.Delimiter = dataset.DefaultDelimiter
	}
	opts, warnings := view.DecodeOptions(req.Options)
	for _, w := range warnings {
		log.Debug().Str("view", string(req.View)).Msg(w)
	}

	var key string
	if r.cache != nil {
		key = cacheKey(req, opts)
		if v, ok := r.cache.Get(key); ok {
			RenderCache.WithLabelValues("hit").Inc()
			log.Debug().Str("view", string(req.View)).Str("key", key).Msg("render cache hit")
			return v.(*view.Result), nil
		}
		RenderCache.WithLabelValues("miss").Inc()
	}

	tbl, err := dataset.Load(req.Text, req.Delimiter)
	if err != nil {
		RenderErrors.WithLabelValues("parse").Inc()
		return nil, err
	}
	res, err := r.shaper.Shape(req.View, tbl, opts)
	if err != nil {
		RenderErrors.WithLabelValues("shape").Inc()
		return nil, err
	}
	res.Warnings = append(warnings, res.Warnings...)

	if term := strings.TrimSpace(req.Search); term != "" {
		if res.Table != nil && res.Table.Searchable {
			fr := filter.Table(tbl, term)
			res.Table.Rows = fr.Rows
			res.Table.Matched = fr.Matched
			res.Table.Search = fr.Term
		} else {
			res.Warnings = append(res.Warnings, fmt.Sprintf("search applies to %s only; ignored for %s", view.SearchableTable, req.View))
		}
	}

	RenderDuration.WithLabelValues(string(req.View)).Observe(time.Since(start).Seconds())
	if r.cache != nil {
		r.cache.SetDefault(key, res)
	}
	return res, nil
}

// Filter parses text and returns the rows matching term.
func (r *Renderer) Filter(text string, delim rune, term string) (filter.Result, error) {
	if delim == 0 {
		delim = dataset.DefaultDelimiter
	}
	tbl, err := dataset.Load(text, delim)
	if err != nil {
		return filter.Result{}, err
	}
	return filter.Table(tbl, term), nil
}

type keyParts struct {
	Text      string       `json:"text"`
	Delimiter string       `json:"delimiter"`
	View      view.Type    `json:"view"`
	Options   view.Options `json:"options"`
	Search    string       `json:"search"`
}

// cacheKey hashes the canonical request. Options are hashed after decoding
// so equivalent maps share an entry.
func cacheKey(req Request, opts view.Options) string {
	b, err := json.Marshal(keyParts{
		Text:      req.Text,
		Delimiter: string(req.Delimiter),
		View:      req.View,
		Options:   opts,
		Search:    strings.TrimSpace(req.Search),
	})
	if err != nil {
		// unreachable for these field types
		return strconv.FormatUint(xxh3.HashString(req.Text), 16)
	}
	return strconv.FormatUint(xxh3.Hash(b), 16)
}
