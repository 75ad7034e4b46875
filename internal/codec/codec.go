// Package codec turns cell grids into short shareable strings and back.
//
// Two schemes are provided. The fixed scheme stores every cell in 1, 2, 4 or
// 8 bits and is written "<w>-<h>-<base64>" or "<w>-<h>:<base36>". The packed
// scheme picks the smallest width able to hold the grid's value range and is
// written "<w>.<h>.<base64>[.<b><m>]" or "<w>.<h>:<base36>[.<b><m>]".
//
// Either way the base-36 form is used only when the whole bit sequence, read
// as one integer, stays below 2^53-1 and its base-36 text is strictly shorter
// than the base64 text.
package codec

import (
	"encoding/base64"
	"errors"
	"math/big"
	"strings"
)

var (
	// ErrMalformed reports text that does not follow either layout.
	ErrMalformed = errors.New("codec: malformed data")
	// ErrValueRange reports a cell value the chosen width cannot hold.
	ErrValueRange = errors.New("codec: value out of range")
	// ErrWidth reports an unsupported fixed bit width.
	ErrWidth = errors.New("codec: unsupported bit width")
)

// MaxCells bounds the grid size accepted by the decoders.
const MaxCells = 1 << 24

// maxSafe is 2^53-1, the largest integer the base-36 form may carry.
var maxSafe = new(big.Int).SetUint64(1<<53 - 1)

type bitWriter struct {
	buf []byte
	n   int
}

// write appends the low width bits of v, most significant bit first.
func (w *bitWriter) write(v uint64, width int) {
	for i := width - 1; i >= 0; i-- {
		if w.n%8 == 0 {
			w.buf = append(w.buf, 0)
		}
		if v>>uint(i)&1 == 1 {
			w.buf[len(w.buf)-1] |= 0x80 >> uint(w.n%8)
		}
		w.n++
	}
}

type bitReader struct {
	buf []byte
	n   int
}

func (r *bitReader) remaining() int { return len(r.buf)*8 - r.n }

func (r *bitReader) read(width int) uint64 {
	var v uint64
	for i := 0; i < width; i++ {
		bit := r.buf[r.n/8] >> uint(7-r.n%8) & 1
		v = v<<1 | uint64(bit)
		r.n++
	}
	return v
}

// chooseText returns the payload text and whether it is base-36. bits is the
// number of meaningful leading bits in full.
func chooseText(b64 string, full []byte, bits int) (string, bool) {
	v := new(big.Int).SetBytes(full)
	v.Rsh(v, uint(len(full)*8-bits))
	if v.Cmp(maxSafe) >= 0 {
		return b64, false
	}
	if s := v.Text(36); len(s) < len(b64) {
		return s, true
	}
	return b64, false
}

// bytesFromBase36 expands a base-36 integer into bits leading bits, left
// padding short values with zeros and keeping the leading bits of long ones.
func bytesFromBase36(s string, bits int) ([]byte, error) {
	s = strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			return r
		}
		return -1
	}, s)
	v := new(big.Int)
	if s != "" {
		if _, ok := v.SetString(s, 36); !ok {
			return nil, ErrMalformed
		}
	}
	if extra := v.BitLen() - bits; extra > 0 {
		v.Rsh(v, uint(extra))
	}
	size := (bits + 7) / 8
	v.Lsh(v, uint(size*8-bits))
	return v.FillBytes(make([]byte, size)), nil
}

// decodeBase64 accepts standard or URL-safe text, with or without padding
// or line breaks. Characters outside the alphabet are skipped, as is a
// dangling final character that cannot complete a byte.
func decodeBase64(s string) ([]byte, error) {
	s = strings.Map(func(r rune) rune {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '+', r == '/':
			return r
		case r == '-':
			return '+'
		case r == '_':
			return '/'
		}
		return -1
	}, s)
	if len(s)%4 == 1 {
		s = s[:len(s)-1]
	}
	return base64.RawStdEncoding.DecodeString(s)
}

func encodeBase64(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}
