// Package source retrieves tabular files and hands back decoded delimited text.
package source

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Document is a retrieved source, decoded to UTF-8 delimited text.
type Document struct {
	Name     string `json:"name"`
	Text     string `json:"-"`
	Encoding string `json:"encoding"`
	// Delimiter is the separator the text was written with, or 0 when the
	// caller's setting applies.
	Delimiter rune `json:"-"`
	// FixedDelimiter marks text the loader encoded itself; callers must not
	// override Delimiter.
	FixedDelimiter bool   `json:"-"`
	Sheet          string `json:"sheet,omitempty"`
}

// Options tune retrieval and workbook sheet selection.
type Options struct {
	Sheet      string
	SheetIndex int // 1-based, used when Sheet is empty
	Timeout    time.Duration
	Client     *http.Client
}

// RetrievalError reports a source that could not be fetched or read.
type RetrievalError struct {
	Source     string
	StatusCode int
	Err        error
}

func (e *RetrievalError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("retrieve %s: status %d: %v", e.Source, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("retrieve %s: %v", e.Source, e.Err)
}

func (e *RetrievalError) Unwrap() error { return e.Err }

// ErrUnsupported indicates a format no loader accepts.
var ErrUnsupported = errors.New("unsupported source format")

// Loader turns raw bytes into a Document.
type Loader interface {
	CanLoad(name string) bool
	Load(name string, content []byte, opt Options) (*Document, error)
}

var registry []Loader

// Register adds a loader implementation to the registry.
func Register(l Loader) {
	registry = append(registry, l)
}

func init() {
	Register(xlsxLoader{})
	Register(textLoader{})
}

// IsURL reports whether ref is an http(s) URL.
func IsURL(ref string) bool {
	u, err := url.Parse(ref)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Load reads a local path or http(s) URL and decodes it with the first
// loader that accepts its name.
func Load(ctx context.Context, ref string, opt Options) (*Document, error) {
	var (
		content []byte
		name    = ref
		err     error
	)
	if IsURL(ref) {
		content, err = Fetch(ctx, ref, opt)
		if u, perr := url.Parse(ref); perr == nil {
			name = path.Base(u.Path)
		}
	} else {
		content, err = os.ReadFile(ref)
		if err != nil {
			err = &RetrievalError{Source: ref, Err: err}
		}
	}
	if err != nil {
		log.Warn().Err(err).Str("source", ref).Msg("retrieval failed")
		return nil, err
	}
	return Bytes(name, content, opt)
}

// Bytes decodes already-retrieved content named name.
func Bytes(name string, content []byte, opt Options) (*Document, error) {
	for _, l := range registry {
		if l.CanLoad(name) {
			return l.Load(name, content, opt)
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupported, name)
}

func lowerExt(name string) string {
	return strings.ToLower(path.Ext(strings.ReplaceAll(name, "\\", "/")))
}
