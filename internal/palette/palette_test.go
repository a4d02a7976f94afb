package palette

import (
	"reflect"
	"regexp"
	"sort"
	"testing"
)

var (
	hslPattern = regexp.MustCompile(`^hsl\(\d{1,3}, 60%, 48%\)$`)
	hexPattern = regexp.MustCompile(`^#[0-9a-f]{6}$`)
)

func TestHash_KnownValues(t *testing.T) {
	// (1 * 2654435761) = 0x9E3779B1; xor with its upper half
	if got := Hash(0); got != 0x9E37E786 {
		t.Fatalf("Hash(0) = %#x", got)
	}
	if Hash(7) != Hash(7) {
		t.Fatalf("hash not stable")
	}
}

func TestGet_BaseOnly(t *testing.T) {
	got := Get(DefaultGraph, 3, false)
	if !reflect.DeepEqual(got, DefaultGraph[:3]) {
		t.Fatalf("Get = %v", got)
	}
	if len(Get(DefaultGraph, 0, false)) != 0 {
		t.Fatalf("zero count should be empty")
	}
}

func TestGet_Deterministic(t *testing.T) {
	a := Get(DefaultPie, 20, false)
	b := Get(DefaultPie, 20, false)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("palette not deterministic")
	}
	for i, c := range a[len(DefaultPie):] {
		if !hslPattern.MatchString(c) {
			t.Fatalf("generated colour %d = %q", i, c)
		}
	}
}

func TestGet_PrefixStable(t *testing.T) {
	short := Get(DefaultGraph, 8, false)
	long := Get(DefaultGraph, 15, false)
	if !reflect.DeepEqual(short, long[:8]) {
		t.Fatalf("extension not prefix stable:\n%v\n%v", short, long)
	}
	if long[10] != Generate(10) {
		t.Fatalf("index 10 = %q, want %q", long[10], Generate(10))
	}
}

func TestGet_ShuffleStablePermutation(t *testing.T) {
	for _, n := range []int{1, 2, 6, 11} {
		a := Get(DefaultGraph, n, true)
		b := Get(DefaultGraph, n, true)
		if !reflect.DeepEqual(a, b) {
			t.Fatalf("n=%d: shuffle not stable", n)
		}
		plain := Get(DefaultGraph, n, false)
		sa := append([]string{}, a...)
		sort.Strings(sa)
		sort.Strings(plain)
		if !reflect.DeepEqual(sa, plain) {
			t.Fatalf("n=%d: shuffle is not a permutation", n)
		}
	}
}

func TestGet_DoesNotMutateBase(t *testing.T) {
	base := []string{"#111111", "#222222", "#333333"}
	_ = Get(base, 3, true)
	_ = Get(base, 9, false)
	if !reflect.DeepEqual(base, []string{"#111111", "#222222", "#333333"}) {
		t.Fatalf("base mutated: %v", base)
	}
}

func TestHueRange(t *testing.T) {
	for i := 0; i < 500; i++ {
		if h := Hue(i); h < 0 || h > 360 {
			t.Fatalf("Hue(%d) = %d", i, h)
		}
	}
}

func TestGenerator_HexAndFallbacks(t *testing.T) {
	g := New(Config{Graph: []string{"#000000"}, Format: FormatHex})
	got := g.Graph(4, false)
	if got[0] != "#000000" {
		t.Fatalf("base colour lost: %v", got)
	}
	for _, c := range got[1:] {
		if !hexPattern.MatchString(c) {
			t.Fatalf("hex colour = %q", c)
		}
	}
	if !reflect.DeepEqual(g.Pie(6, false), DefaultPie) {
		t.Fatalf("empty pie config should fall back to default")
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("HEX"); err != nil || f != FormatHex {
		t.Fatalf("ParseFormat(HEX) = %q, %v", f, err)
	}
	if f, err := ParseFormat(""); err != nil || f != FormatHSL {
		t.Fatalf("ParseFormat('') = %q, %v", f, err)
	}
	if _, err := ParseFormat("rgb"); err == nil {
		t.Fatalf("expected error for rgb")
	}
}
