package codec

import (
	"fmt"
	"math/bits"
	"strconv"
	"strings"

	"gen-ca/internal/core"
	"gen-ca/internal/life"
)

// Signed is the set of integer types Pack accepts.
type Signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// Packed is a value sequence stored at the smallest bit width that holds its
// range. Negative values are stored as (1<<BitSize)+v and trailing zero
// bytes are dropped.
type Packed struct {
	Bytes    []byte
	BitSize  int
	MinValue int
}

// Pack stores values MSB-first at BitSize = bit length of
// max(1, max(0,values) - min(0,values)).
func Pack[T Signed](values []T) Packed {
	lo, hi := 0, 0
	for _, v := range values {
		lo = min(lo, int(v))
		hi = max(hi, int(v))
	}
	size := bits.Len(uint(max(1, hi-lo)))

	var w bitWriter
	for _, v := range values {
		e := int64(v)
		if e < 0 {
			e += 1 << size
		}
		w.write(uint64(e), size)
	}
	return Packed{Bytes: trimZeros(w.buf), BitSize: size, MinValue: lo}
}

// Unpack reads every complete BitSize group in p.Bytes. Groups at or above
// (1<<BitSize)+MinValue are negative. The result may run past the packed
// values with zero padding.
func Unpack[T Signed](p Packed) []T {
	if p.BitSize <= 0 {
		return nil
	}
	r := bitReader{buf: p.Bytes}
	out := make([]T, 0, len(p.Bytes)*8/p.BitSize)
	limit := int64(1)<<p.BitSize + int64(p.MinValue)
	for r.remaining() >= p.BitSize {
		v := int64(r.read(p.BitSize))
		if p.MinValue < 0 && v >= limit {
			v -= 1 << p.BitSize
		}
		out = append(out, T(v))
	}
	return out
}

func trimZeros(b []byte) []byte {
	for len(b) > 0 && b[len(b)-1] == 0 {
		b = b[:len(b)-1]
	}
	return b
}

// suffix formats the ".<b><m>" tail. It is empty for the common 0/1 case and
// ".1" for grids holding only Death and Undead.
func (p Packed) suffix() string {
	switch {
	case p.BitSize == 1 && p.MinValue == 0:
		return ""
	case p.BitSize == 1:
		return ".1"
	case p.MinValue == 0:
		return "." + strconv.FormatInt(int64(p.BitSize), 36)
	}
	return "." + strconv.FormatInt(int64(p.BitSize), 36) + strconv.Itoa(-p.MinValue)
}

func parseSuffix(s string) (size, minValue int, err error) {
	switch s {
	case "":
		return 1, 0, nil
	case "1":
		return 1, -1, nil
	}
	b, err := strconv.ParseInt(s[:1], 36, 8)
	if err != nil || b == 0 {
		return 0, 0, fmt.Errorf("%w: bit size %q", ErrMalformed, s[:1])
	}
	if s[1:] == "" {
		return int(b), 0, nil
	}
	m, err := strconv.Atoi(s[1:])
	if err != nil || m < 0 {
		return 0, 0, fmt.Errorf("%w: minimum %q", ErrMalformed, s[1:])
	}
	return int(b), -m, nil
}

// EncodePacked writes g with the packed scheme.
func EncodePacked(g *life.Grid) (string, error) {
	p := Pack(g.Values())
	if p.BitSize > 35 {
		return "", fmt.Errorf("%w: %d bits per cell", ErrValueRange, p.BitSize)
	}
	n := g.Len() * p.BitSize
	full := make([]byte, (n+7)/8)
	copy(full, p.Bytes)
	text, base36 := chooseText(encodeBase64(p.Bytes), full, n)
	h := header{cols: g.Columns(), rows: g.Rows(), base36: base36, rest: text + p.suffix()}
	return h.String('.'), nil
}

// DecodePacked parses text written by EncodePacked. Missing trailing cells
// decode as Death and surplus payload is ignored.
func DecodePacked(s string) (*life.Grid, error) {
	h, err := parseHeader(s, '.')
	if err != nil {
		return nil, err
	}
	payload, tail, _ := strings.Cut(h.rest, ".")
	if strings.Contains(tail, ".") {
		return nil, fmt.Errorf("%w: trailing fields in %q", ErrMalformed, s)
	}
	size, minValue, err := parseSuffix(tail)
	if err != nil {
		return nil, err
	}
	// Cells are int16.
	if size > 16 {
		return nil, fmt.Errorf("%w: %d bits per cell", ErrValueRange, size)
	}

	n := h.cols * h.rows
	p := Packed{BitSize: size, MinValue: minValue}
	if h.base36 {
		p.Bytes, err = bytesFromBase36(payload, n*size)
	} else {
		p.Bytes, err = decodeBase64(payload)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: payload: %v", ErrMalformed, err)
	}

	g, err := core.NewGrid(h.cols, h.rows, life.Death)
	if err != nil {
		return nil, err
	}
	values := Unpack[life.Cell](p)
	copy(g.Values(), values[:min(len(values), n)])
	return g, nil
}
