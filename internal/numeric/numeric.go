package numeric

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// decimalLiteral is a plain decimal number with an optional sign and exponent.
// Go-only spellings such as "1_000" or "0x1p4" do not match.
var decimalLiteral = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// radixLiteral is an unsigned 0x, 0o or 0b integer literal.
var radixLiteral = regexp.MustCompile(`^0([xX][0-9a-fA-F]+|[oO][0-7]+|[bB][01]+)$`)

// numericLike matches text made only of digits, separators, spaces and percent signs.
var numericLike = regexp.MustCompile(`^-?[\d,. %]+$`)

// Number is a float64 that encodes NaN and infinities as JSON null.
type Number float64

// MarshalJSON implements json.Marshaler.
func (n Number) MarshalJSON() ([]byte, error) {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(f, 'f', -1, 64)), nil
}

// Float returns n as a float64.
func (n Number) Float() float64 { return float64(n) }

// Value is a coerced cell.
type Value struct {
	Number    Number `json:"number"`
	IsPercent bool   `json:"isPercent"`
	IsText    bool   `json:"isText"`
	Raw       string `json:"raw"`
}

// Parse strips thousands-separator commas and percent signs and parses what
// remains. Blank text parses as 0. Decimal literals with an optional sign and
// exponent parse as numbers, as do unsigned 0x, 0o and 0b integers; anything
// else, including infinities, parses as NaN.
func Parse(s string) float64 {
	raw := strings.ReplaceAll(s, ",", "")
	raw = strings.ReplaceAll(raw, "%", "")
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	if radixLiteral.MatchString(raw) {
		return parseRadix(raw[2:], radix(raw[1]))
	}
	if !decimalLiteral.MatchString(raw) {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsInf(f, 0) {
		// out of range
		return math.NaN()
	}
	return f
}

func radix(c byte) float64 {
	switch c {
	case 'x', 'X':
		return 16
	case 'o', 'O':
		return 8
	}
	return 2
}

// parseRadix accumulates in float64 so long literals lose precision instead
// of overflowing.
func parseRadix(digits string, base float64) float64 {
	var f float64
	for _, r := range strings.ToLower(digits) {
		d := float64(r - '0')
		if r >= 'a' {
			d = float64(r-'a') + 10
		}
		f = f*base + d
	}
	return f
}

// IsPercent reports whether the raw text carries a percent sign.
func IsPercent(s string) bool {
	return strings.Contains(s, "%")
}

// LooksNumeric reports whether raw reads as a number rather than free text.
// A parsed zero only counts when the text is "0", "0%" or otherwise made of
// digits, separators, spaces and percent signs.
func LooksNumeric(raw string) bool {
	raw = strings.TrimSpace(raw)
	n := Parse(raw)
	if math.IsNaN(n) {
		return false
	}
	if n == 0 && raw != "0" && raw != "0%" && !numericLike.MatchString(raw) {
		return false
	}
	return true
}

// Coerce parses raw into a Value. IsText is set when the text fails LooksNumeric.
func Coerce(raw string) Value {
	return Value{
		Number:    Number(Parse(raw)),
		IsPercent: IsPercent(raw),
		IsText:    !LooksNumeric(raw),
		Raw:       raw,
	}
}

// Display formats v for people: "45%" for percentages, otherwise en-US
// grouping with at most three fraction digits.
func Display(v float64, percent bool) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	if percent {
		return strconv.FormatFloat(v, 'f', -1, 64) + "%"
	}
	p := message.NewPrinter(language.English)
	return p.Sprintf("%v", number.Decimal(v, number.MaxFractionDigits(3)))
}
