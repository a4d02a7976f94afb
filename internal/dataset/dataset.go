package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// DefaultDelimiter is the column separator used when none is configured.
const DefaultDelimiter = ';'

// ErrUnsupportedDelimiter is returned by ParseDelimiter for separators outside the supported set.
var ErrUnsupportedDelimiter = errors.New("unsupported delimiter")

// Row maps a column header to its raw cell text.
type Row map[string]string

// Raw is the direct output of the parser: headers exactly as written in the
// first line and one Row per data line, keyed by those untrimmed headers.
type Raw struct {
	Headers []string
	Rows    []Row
}

// Table is the normalized form every view is shaped from. Headers are trimmed
// and keep source column order; every row carries exactly the header key set.
type Table struct {
	Headers []string
	Rows    []Row
}

// Empty reports whether the table has no data rows.
func (t *Table) Empty() bool {
	return t == nil || len(t.Rows) == 0
}

// ParseError reports malformed delimited text, such as an unterminated quote.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse csv: line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("parse csv: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ParseDelimiter maps a configured separator to a rune. The empty string
// selects DefaultDelimiter.
func ParseDelimiter(s string) (rune, error) {
	switch s {
	case "":
		return DefaultDelimiter, nil
	case ";":
		return ';', nil
	case ",":
		return ',', nil
	case "\t", `\t`:
		return '\t', nil
	case "|":
		return '|', nil
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "semicolon":
		return ';', nil
	case "comma":
		return ',', nil
	case "tab":
		return '\t', nil
	case "pipe":
		return '|', nil
	}
	return 0, fmt.Errorf("%w: %q (use ';', ',', 'tab' or '|')", ErrUnsupportedDelimiter, s)
}

// Parse reads delimited text with a header row. Empty or whitespace-only text
// yields an empty Raw and no error. Lines shorter than the header are padded
// with empty cells, longer lines are truncated.
func Parse(text string, delim rune) (*Raw, error) {
	if delim == 0 {
		delim = DefaultDelimiter
	}
	text = strings.TrimPrefix(text, "\ufeff")
	if strings.TrimSpace(text) == "" {
		return &Raw{}, nil
	}

	r := csv.NewReader(strings.NewReader(text))
	r.Comma = delim
	r.FieldsPerRecord = -1

	header, err := readRecord(r, text, delim)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return &Raw{}, nil
		}
		return nil, wrapParseError(err)
	}
	raw := &Raw{Headers: append([]string(nil), header...)}
	for {
		rec, err := readRecord(r, text, delim)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, wrapParseError(err)
		}
		raw.Rows = append(raw.Rows, toRow(raw.Headers, rec))
	}
	return raw, nil
}

// readRecord reads the next record strictly. A record rejected only for a
// bare quote inside an unquoted cell is re-read on its own with lazy quotes,
// so the quote is kept as literal text while an unterminated quoted field
// elsewhere still fails.
func readRecord(r *csv.Reader, text string, delim rune) ([]string, error) {
	start := r.InputOffset()
	rec, err := r.Read()
	if err == nil || !errors.Is(err, csv.ErrBareQuote) {
		return rec, err
	}
	lr := csv.NewReader(strings.NewReader(text[start:r.InputOffset()]))
	lr.Comma = delim
	lr.FieldsPerRecord = -1
	lr.LazyQuotes = true
	lenient, lerr := lr.Read()
	if lerr != nil {
		return nil, err
	}
	return lenient, nil
}

// FromRecords builds a Raw from already split records, the first of which is
// the header. It is used for sources that are not delimited text.
func FromRecords(records [][]string) *Raw {
	if len(records) == 0 {
		return &Raw{}
	}
	raw := &Raw{Headers: append([]string(nil), records[0]...)}
	for _, rec := range records[1:] {
		raw.Rows = append(raw.Rows, toRow(raw.Headers, rec))
	}
	return raw
}

// Normalize trims headers, re-keys every row onto the trimmed headers and
// drops rows whose values are all blank. Duplicate headers after trimming are
// not rejected; the later column wins.
func Normalize(raw *Raw) *Table {
	if raw == nil {
		return &Table{}
	}
	headers := make([]string, len(raw.Headers))
	for i, h := range raw.Headers {
		headers[i] = strings.TrimSpace(h)
	}
	t := &Table{Headers: headers}
	for _, row := range raw.Rows {
		clean := make(Row, len(headers))
		var joined strings.Builder
		for i, orig := range raw.Headers {
			v := row[orig]
			clean[headers[i]] = v
			joined.WriteString(v)
		}
		if strings.TrimSpace(joined.String()) == "" {
			continue
		}
		t.Rows = append(t.Rows, clean)
	}
	return t
}

// Load parses and normalizes text in one step.
func Load(text string, delim rune) (*Table, error) {
	raw, err := Parse(text, delim)
	if err != nil {
		return nil, err
	}
	return Normalize(raw), nil
}

// Records returns the table as header plus positional records, the inverse of FromRecords.
func (t *Table) Records() [][]string {
	out := make([][]string, 0, len(t.Rows)+1)
	out = append(out, append([]string(nil), t.Headers...))
	for _, row := range t.Rows {
		rec := make([]string, len(t.Headers))
		for i, h := range t.Headers {
			rec[i] = row[h]
		}
		out = append(out, rec)
	}
	return out
}

// Encode writes the table back out as delimited text.
func (t *Table) Encode(delim rune) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if delim != 0 {
		w.Comma = delim
	}
	if err := w.WriteAll(t.Records()); err != nil {
		return "", fmt.Errorf("encode csv: %w", err)
	}
	return buf.String(), nil
}

func toRow(headers []string, rec []string) Row {
	row := make(Row, len(headers))
	for i, h := range headers {
		if i < len(rec) {
			row[h] = rec[i]
		} else {
			row[h] = ""
		}
	}
	return row
}

func wrapParseError(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &ParseError{Line: pe.Line, Err: pe.Err}
	}
	return &ParseError{Err: err}
}
