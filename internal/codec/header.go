package codec

import (
	"fmt"
	"strconv"
	"strings"

	"gen-ca/internal/core"
)

type header struct {
	cols, rows int
	base36     bool
	rest       string
}

// parseHeader reads "<w><sep><h><kind><rest>" where kind is ':' for base-36
// payloads and the scheme separator otherwise.
func parseHeader(s string, sep byte) (header, error) {
	s = strings.TrimSpace(s)
	i := strings.IndexByte(s, sep)
	if i < 0 {
		return header{}, fmt.Errorf("%w: missing width in %q", ErrMalformed, s)
	}
	j := strings.IndexAny(s[i+1:], string([]byte{sep, ':'}))
	if j < 0 {
		return header{}, fmt.Errorf("%w: missing height in %q", ErrMalformed, s)
	}
	j += i + 1
	cols, err := strconv.Atoi(s[:i])
	if err != nil {
		return header{}, fmt.Errorf("%w: width %q", ErrMalformed, s[:i])
	}
	rows, err := strconv.Atoi(s[i+1 : j])
	if err != nil {
		return header{}, fmt.Errorf("%w: height %q", ErrMalformed, s[i+1:j])
	}
	if cols <= 0 || rows <= 0 {
		return header{}, fmt.Errorf("%w: %dx%d", core.ErrInvalidDimensions, cols, rows)
	}
	if cols > MaxCells/rows {
		return header{}, fmt.Errorf("%w: %dx%d exceeds %d cells", ErrMalformed, cols, rows, MaxCells)
	}
	return header{cols: cols, rows: rows, base36: s[j] == ':', rest: s[j+1:]}, nil
}

func (h header) String(sep byte) string {
	kind := sep
	if h.base36 {
		kind = ':'
	}
	return strconv.Itoa(h.cols) + string(sep) + strconv.Itoa(h.rows) + string(kind) + h.rest
}
