package codec

import (
	"fmt"

	"gen-ca/internal/core"
	"gen-ca/internal/life"
)

// fixedOffset shifts Tomb..Live into the non-negative range for widths
// above one.
const fixedOffset = 2

func checkWidth(width int) error {
	switch width {
	case 1, 2, 4, 8:
		return nil
	}
	return fmt.Errorf("%w: %d", ErrWidth, width)
}

// fixedRange reports the cell values a width can store.
func fixedRange(width int) (lo, hi life.Cell) {
	if width == 1 {
		return life.Death, life.Live
	}
	return -fixedOffset, life.Cell(1<<width - 1 - fixedOffset)
}

// EncodeFixed writes g using width bits per cell. Width 1 stores Death and
// Live only; widths 2, 4 and 8 store value+2, covering Tomb..Live, Tomb..13
// and Tomb..253 respectively.
func EncodeFixed(g *life.Grid, width int) (string, error) {
	if err := checkWidth(width); err != nil {
		return "", err
	}
	lo, hi := fixedRange(width)
	var w bitWriter
	for i, c := range g.Values() {
		if c < lo || c > hi {
			x, y := g.XY(i)
			return "", fmt.Errorf("%w: %d at (%d,%d) for width %d", ErrValueRange, c, x, y, width)
		}
		v := int(c)
		if width > 1 {
			v += fixedOffset
		}
		w.write(uint64(v), width)
	}
	text, base36 := chooseText(encodeBase64(w.buf), w.buf, w.n)
	h := header{cols: g.Columns(), rows: g.Rows(), base36: base36, rest: text}
	return h.String('-'), nil
}

// DecodeFixed parses text written by EncodeFixed with the same width. Missing
// trailing cells decode as Death and surplus payload is ignored.
func DecodeFixed(s string, width int) (*life.Grid, error) {
	if err := checkWidth(width); err != nil {
		return nil, err
	}
	h, err := parseHeader(s, '-')
	if err != nil {
		return nil, err
	}
	n := h.cols * h.rows
	var payload []byte
	if h.base36 {
		payload, err = bytesFromBase36(h.rest, n*width)
	} else {
		payload, err = decodeBase64(h.rest)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: payload: %v", ErrMalformed, err)
	}

	g, err := core.NewGrid(h.cols, h.rows, life.Death)
	if err != nil {
		return nil, err
	}
	values := g.Values()
	r := bitReader{buf: payload}
	for i := 0; i < n && r.remaining() >= width; i++ {
		v := life.Cell(r.read(width))
		if width > 1 {
			v -= fixedOffset
		}
		values[i] = v
	}
	return g, nil
}
