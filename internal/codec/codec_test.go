package codec

import (
	"errors"
	"slices"
	"testing"

	"gen-ca/internal/core"
	"gen-ca/internal/life"
)

func gridOf(t *testing.T, rows [][]life.Cell) *life.Grid {
	t.Helper()
	g, err := core.FromRows(rows)
	if err != nil {
		t.Fatalf("FromRows: %v", err)
	}
	return g
}

func filled(t *testing.T, cols, rows int, v life.Cell) *life.Grid {
	t.Helper()
	g, err := core.NewGrid(cols, rows, v)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestBitStringToBase64(t *testing.T) {
	var w bitWriter
	for _, c := range "111010001111011" {
		w.write(uint64(c-'0'), 1)
	}
	if got := encodeBase64(w.buf); got != "6PY=" {
		t.Fatalf("encode = %q, want 6PY=", got)
	}
	b, err := decodeBase64("6PY=")
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(b, []byte{0xE8, 0xF6}) {
		t.Fatalf("decode = %x", b)
	}
}

func TestDecodeBase64Lenient(t *testing.T) {
	tests := map[string][]byte{
		"+/8=":     {0xFB, 0xFF},
		"-_8":      {0xFB, 0xFF},
		"+/\r\n8=": {0xFB, 0xFF},
		"/w==!":    {0xFF},
		"////A":    {0xFF, 0xFF, 0xFF},
		"":         {},
	}
	for in, want := range tests {
		got, err := decodeBase64(in)
		if err != nil {
			t.Fatalf("decodeBase64(%q): %v", in, err)
		}
		if !slices.Equal(got, want) {
			t.Errorf("decodeBase64(%q) = %x, want %x", in, got, want)
		}
	}
}

func TestEncodeFixedFixtures(t *testing.T) {
	lexicon := gridOf(t, [][]life.Cell{
		{0, 0, 0, 0, 1, 1, 0, 0, 0, 0, 0, 0, 1, 1, 0, 0, 0, 0},
		{0, 0, 0, 1, 0, 1, 0, 0, 0, 0, 0, 0, 1, 0, 1, 0, 0, 0},
		{0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0},
		{1, 1, 0, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 0, 1, 1},
		{1, 1, 0, 1, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0, 1, 0, 1, 1},
		{0, 0, 0, 1, 0, 1, 0, 1, 0, 0, 1, 0, 1, 0, 1, 0, 0, 0},
		{0, 0, 0, 1, 0, 1, 0, 1, 0, 0, 1, 0, 1, 0, 1, 0, 0, 0},
		{1, 1, 0, 1, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0, 1, 0, 1, 1},
		{1, 1, 0, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 0, 1, 1},
		{0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0},
		{0, 0, 0, 1, 0, 1, 0, 0, 0, 0, 0, 0, 1, 0, 1, 0, 0, 0},
		{0, 0, 0, 0, 1, 1, 0, 0, 0, 0, 0, 0, 1, 1, 0, 0, 0, 0},
	})
	tests := []struct {
		name  string
		grid  *life.Grid
		width int
		want  string
	}{
		{"empty", filled(t, 12, 8, life.Death), 1, "12-8:0"},
		{"full", filled(t, 12, 8, life.Live), 1, "12-8-////////////////"},
		{"small full", filled(t, 2, 3, life.Live), 1, "2-3:1r"},
		{"lexicon", lexicon, 1, "18-12-DAwFAoEAI0AL1MrFSoFSo1Mr0ALEAIFAoDAw"},
		{"tie picks base64", filled(t, 17, 1, life.Live), 1, "17-1-//+A"},
		{"width 2", gridOf(t, [][]life.Cell{{-2, -1, 0}, {1, -2, -1}}), 2, "3-2:c1"},
		{"width 8", filled(t, 1, 1, 253), 8, "1-1:73"},
	}
	for _, tt := range tests {
		got, err := EncodeFixed(tt.grid, tt.width)
		if err != nil {
			t.Fatalf("%s: %v", tt.name, err)
		}
		if got != tt.want {
			t.Errorf("%s: EncodeFixed = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestEncodeFixedRejects(t *testing.T) {
	if _, err := EncodeFixed(filled(t, 2, 2, life.Undead), 1); !errors.Is(err, ErrValueRange) {
		t.Errorf("undead at width 1: %v", err)
	}
	if _, err := EncodeFixed(filled(t, 2, 2, 2), 2); !errors.Is(err, ErrValueRange) {
		t.Errorf("aging cell at width 2: %v", err)
	}
	if _, err := EncodeFixed(filled(t, 2, 2, 14), 4); !errors.Is(err, ErrValueRange) {
		t.Errorf("14 at width 4: %v", err)
	}
	if _, err := EncodeFixed(filled(t, 2, 2, 0), 3); !errors.Is(err, ErrWidth) {
		t.Errorf("width 3: %v", err)
	}
	if _, err := DecodeFixed("2-2:0", 5); !errors.Is(err, ErrWidth) {
		t.Errorf("decode width 5: %v", err)
	}
}

func TestFixedRoundTrip(t *testing.T) {
	mixed := gridOf(t, [][]life.Cell{
		{-2, -1, 0, 1, 0},
		{1, 1, -1, 0, -2},
		{0, 0, 0, 1, 1},
	})
	for _, width := range []int{1, 2, 4, 8} {
		_, hi := fixedRange(width)
		grids := []*life.Grid{
			filled(t, 7, 5, life.Death),
			filled(t, 7, 5, hi),
			filled(t, 40, 30, hi),
		}
		if width > 1 {
			grids = append(grids, mixed, filled(t, 3, 3, life.Tomb))
		}
		for _, g := range grids {
			s, err := EncodeFixed(g, width)
			if err != nil {
				t.Fatalf("width %d: encode: %v", width, err)
			}
			back, err := DecodeFixed(s, width)
			if err != nil {
				t.Fatalf("width %d: decode %q: %v", width, s, err)
			}
			if !core.Equal(g, back) {
				t.Errorf("width %d: round trip of %q lost data: %v", width, s, back.Rows2D())
			}
		}
	}
}

func TestDecodeFixedRobustness(t *testing.T) {
	g, err := DecodeFixed("4-2-/w", 1)
	if err != nil {
		t.Fatal(err)
	}
	if life.Population(g) != 8 {
		t.Fatalf("unpadded payload: population %d", life.Population(g))
	}

	g, err = DecodeFixed("  4-4-8A==  ", 1)
	if err != nil {
		t.Fatal(err)
	}
	if life.Population(g) != 4 || g.Get(3, 0) != life.Live || g.Get(0, 1) != life.Death {
		t.Fatalf("short payload should pad with death: %v", g.Rows2D())
	}

	g, err = DecodeFixed("2-1-////", 1)
	if err != nil {
		t.Fatal(err)
	}
	if g.Len() != 2 || life.Population(g) != 2 {
		t.Fatalf("long payload should clip: %v", g.Rows2D())
	}

	g, err = DecodeFixed("3-1:zzzzzz", 1)
	if err != nil {
		t.Fatal(err)
	}
	if g.Len() != 3 {
		t.Fatalf("oversized base36 value should clip, got %d cells", g.Len())
	}

	for _, bad := range []string{"", "12", "12-", "a-2-AA", "2-b:0", "-2-2"} {
		if _, err := DecodeFixed(bad, 1); !errors.Is(err, ErrMalformed) {
			t.Errorf("DecodeFixed(%q) err = %v, want ErrMalformed", bad, err)
		}
	}
	for _, bad := range []string{"0-2-AA", "2-0:0", "3--1-AA"} {
		if _, err := DecodeFixed(bad, 1); !errors.Is(err, core.ErrInvalidDimensions) && !errors.Is(err, ErrMalformed) {
			t.Errorf("DecodeFixed(%q) err = %v", bad, err)
		}
	}
	if _, err := DecodeFixed("0-2-AA", 1); !errors.Is(err, core.ErrInvalidDimensions) {
		t.Errorf("zero width err = %v", err)
	}
	if _, err := DecodeFixed("100000-100000:0", 1); !errors.Is(err, ErrMalformed) {
		t.Errorf("huge grid err = %v", err)
	}
}
