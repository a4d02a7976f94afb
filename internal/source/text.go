package source

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// textLoader accepts delimited text files and anything without a workbook extension.
type textLoader struct{}

func (textLoader) CanLoad(name string) bool {
	return lowerExt(name) != ".xlsx"
}

func (textLoader) Load(name string, content []byte, _ Options) (*Document, error) {
	text, enc := Decode(content)
	doc := &Document{Name: name, Text: text, Encoding: enc}
	if lowerExt(name) == ".tsv" {
		doc.Delimiter = '\t'
	}
	return doc, nil
}

// Decode strips a UTF-8 byte order mark and converts legacy single-byte
// encodings to UTF-8. It returns the text and the encoding it was read as.
func Decode(b []byte) (string, string) {
	b = bytes.TrimPrefix(b, utf8BOM)
	if utf8.Valid(b) {
		return string(b), "utf-8"
	}
	cs := "windows-1252"
	if det, err := chardet.NewTextDetector().DetectBest(b); err == nil && det != nil {
		cs = strings.ToLower(det.Charset)
	}
	var dec *encoding.Decoder
	switch cs {
	case "iso-8859-1":
		dec = charmap.ISO8859_1.NewDecoder()
	default:
		cs = "windows-1252"
		dec = charmap.Windows1252.NewDecoder()
	}
	out, err := dec.Bytes(b)
	if err != nil {
		return string(b), "utf-8"
	}
	return string(out), cs
}
