package core

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDimensions reports a width or height that is not positive.
	ErrInvalidDimensions = errors.New("core: invalid dimensions")
	// ErrOutOfRange reports a coordinate or row/column index outside the grid.
	ErrOutOfRange = errors.New("core: out of range")
)

// Edge selects how reads outside the grid are resolved.
type Edge uint8

const (
	// EdgeUndefined reports reads outside the grid as missing.
	EdgeUndefined Edge = iota
	// EdgeLoop wraps coordinates toroidally.
	EdgeLoop
	// EdgeClamp answers reads outside the grid with the grid's outside value.
	EdgeClamp
)

func (e Edge) String() string {
	switch e {
	case EdgeLoop:
		return "loop"
	case EdgeClamp:
		return "clamp"
	default:
		return "undefined"
	}
}

// Anchor names the corner whose content is kept in place by Resize.
type Anchor uint8

const (
	AnchorTopLeft Anchor = iota
	AnchorTopRight
	AnchorBottomLeft
	AnchorBottomRight
)

func (a Anchor) right() bool  { return a == AnchorTopRight || a == AnchorBottomRight }
func (a Anchor) bottom() bool { return a == AnchorBottomLeft || a == AnchorBottomRight }

// Grid stores a 2D grid of values in row-major order.
type Grid[V any] struct {
	cols, rows int
	values     []V
	edge       Edge
	outside    V
}

// NewGrid allocates a cols×rows grid with every cell set to initial.
func NewGrid[V any](cols, rows int, initial V) (*Grid[V], error) {
	if cols <= 0 || rows <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, cols, rows)
	}
	values := make([]V, cols*rows)
	for i := range values {
		values[i] = initial
	}
	return &Grid[V]{cols: cols, rows: rows, values: values}, nil
}

// FromRows builds a grid from a slice of rows. The width is taken from the
// first row; shorter rows are padded with the zero value and longer ones are
// clipped.
func FromRows[V any](rows [][]V) (*Grid[V], error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: empty rows", ErrInvalidDimensions)
	}
	cols := len(rows[0])
	g := &Grid[V]{cols: cols, rows: len(rows), values: make([]V, cols*len(rows))}
	for y, row := range rows {
		copy(g.values[y*cols:(y+1)*cols], row)
	}
	return g, nil
}

// FromValues builds a grid from a row-major slice, which is copied.
func FromValues[V any](cols, rows int, values []V) (*Grid[V], error) {
	if cols <= 0 || rows <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, cols, rows)
	}
	if len(values) != cols*rows {
		return nil, fmt.Errorf("%w: %d values for %dx%d", ErrInvalidDimensions, len(values), cols, rows)
	}
	return &Grid[V]{cols: cols, rows: rows, values: append([]V(nil), values...)}, nil
}

// Columns returns the grid width.
func (g *Grid[V]) Columns() int { return g.cols }

// Rows returns the grid height.
func (g *Grid[V]) Rows() int { return g.rows }

// Size returns both dimensions.
func (g *Grid[V]) Size() Size { return Size{W: g.cols, H: g.rows} }

// Len returns the number of cells.
func (g *Grid[V]) Len() int { return len(g.values) }

// Values exposes the backing slice. It is replaced by every structural
// change, so callers must not hold on to it across mutations.
func (g *Grid[V]) Values() []V { return g.values }

// Edge returns the edge policy used by At.
func (g *Grid[V]) Edge() Edge { return g.edge }

// Outside returns the value EdgeClamp reads report beyond the border.
func (g *Grid[V]) Outside() V { return g.outside }

// SetEdge configures how At resolves coordinates beyond the border.
func (g *Grid[V]) SetEdge(edge Edge, outside V) {
	g.edge = edge
	g.outside = outside
}

// Index returns the linear slice index for coordinates (x, y).
func (g *Grid[V]) Index(x, y int) int { return y*g.cols + x }

// XY splits a linear index into coordinates.
func (g *Grid[V]) XY(i int) (int, int) { return floorMod(i, g.cols), floorDiv(i, g.cols) }

// Contains reports whether (x, y) lies inside the grid.
func (g *Grid[V]) Contains(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.cols && y < g.rows
}

// At reads (x, y) using the grid's edge policy. The boolean is false only for
// EdgeUndefined reads outside the grid.
func (g *Grid[V]) At(x, y int) (V, bool) {
	return g.Lookup(x, y, g.edge, g.outside)
}

// AtIndex reads a linear index using the grid's edge policy.
func (g *Grid[V]) AtIndex(i int) (V, bool) {
	if i >= 0 && i < len(g.values) {
		return g.values[i], true
	}
	x, y := g.XY(i)
	return g.At(x, y)
}

// Lookup reads (x, y) with an explicit edge policy and outside value.
func (g *Grid[V]) Lookup(x, y int, edge Edge, outside V) (V, bool) {
	if g.Contains(x, y) {
		return g.values[y*g.cols+x], true
	}
	switch edge {
	case EdgeLoop:
		x = floorMod(x, g.cols)
		y = floorMod(y, g.rows)
		return g.values[y*g.cols+x], true
	case EdgeClamp:
		return outside, true
	}
	var zero V
	return zero, false
}

// Get reads (x, y) and drops the presence flag.
func (g *Grid[V]) Get(x, y int) V {
	v, _ := g.At(x, y)
	return v
}

// Set writes v at (x, y).
func (g *Grid[V]) Set(x, y int, v V) error {
	if !g.Contains(x, y) {
		return fmt.Errorf("%w: (%d,%d) in %dx%d", ErrOutOfRange, x, y, g.cols, g.rows)
	}
	g.values[y*g.cols+x] = v
	return nil
}

// SetIndex writes v at linear index i.
func (g *Grid[V]) SetIndex(i int, v V) error {
	if i < 0 || i >= len(g.values) {
		return fmt.Errorf("%w: index %d of %d", ErrOutOfRange, i, len(g.values))
	}
	g.values[i] = v
	return nil
}

// Fill sets every cell to v.
func (g *Grid[V]) Fill(v V) {
	for i := range g.values {
		g.values[i] = v
	}
}

// Clone returns a deep copy, edge policy included.
func (g *Grid[V]) Clone() *Grid[V] {
	c := *g
	c.values = append([]V(nil), g.values...)
	return &c
}

// Resize changes the dimensions. Content stays attached to the anchor corner
// and new cells take fill. Invalid dimensions leave the grid untouched.
func (g *Grid[V]) Resize(cols, rows int, anchor Anchor, fill V) error {
	if cols <= 0 || rows <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, cols, rows)
	}
	dx, dy := 0, 0
	if anchor.right() {
		dx = cols - g.cols
	}
	if anchor.bottom() {
		dy = rows - g.rows
	}
	values := make([]V, cols*rows)
	for y := 0; y < rows; y++ {
		sy := y - dy
		for x := 0; x < cols; x++ {
			sx := x - dx
			if sx >= 0 && sy >= 0 && sx < g.cols && sy < g.rows {
				values[y*cols+x] = g.values[sy*g.cols+sx]
				continue
			}
			values[y*cols+x] = fill
		}
	}
	g.cols, g.rows, g.values = cols, rows, values
	return nil
}

// AddRow inserts a row of fill before row at. A negative at counts from the
// end and at == Rows() appends.
func (g *Grid[V]) AddRow(at int, fill V) error {
	if at < 0 {
		at += g.rows
	}
	if at < 0 || at > g.rows {
		return fmt.Errorf("%w: row %d of %d", ErrOutOfRange, at, g.rows)
	}
	values := make([]V, 0, len(g.values)+g.cols)
	values = append(values, g.values[:at*g.cols]...)
	for x := 0; x < g.cols; x++ {
		values = append(values, fill)
	}
	values = append(values, g.values[at*g.cols:]...)
	g.rows++
	g.values = values
	return nil
}

// RemoveRow deletes row at. A negative at counts from the end.
func (g *Grid[V]) RemoveRow(at int) error {
	if at < 0 {
		at += g.rows
	}
	if at < 0 || at >= g.rows {
		return fmt.Errorf("%w: row %d of %d", ErrOutOfRange, at, g.rows)
	}
	if g.rows == 1 {
		return fmt.Errorf("%w: cannot remove the only row", ErrInvalidDimensions)
	}
	values := make([]V, 0, len(g.values)-g.cols)
	values = append(values, g.values[:at*g.cols]...)
	values = append(values, g.values[(at+1)*g.cols:]...)
	g.rows--
	g.values = values
	return nil
}

// AddColumn inserts a column of fill before column at. A negative at counts
// from the end and at == Columns() appends.
func (g *Grid[V]) AddColumn(at int, fill V) error {
	if at < 0 {
		at += g.cols
	}
	if at < 0 || at > g.cols {
		return fmt.Errorf("%w: column %d of %d", ErrOutOfRange, at, g.cols)
	}
	cols := g.cols + 1
	values := make([]V, 0, cols*g.rows)
	for y := 0; y < g.rows; y++ {
		row := g.values[y*g.cols : (y+1)*g.cols]
		values = append(values, row[:at]...)
		values = append(values, fill)
		values = append(values, row[at:]...)
	}
	g.cols = cols
	g.values = values
	return nil
}

// RemoveColumn deletes column at. A negative at counts from the end.
func (g *Grid[V]) RemoveColumn(at int) error {
	if at < 0 {
		at += g.cols
	}
	if at < 0 || at >= g.cols {
		return fmt.Errorf("%w: column %d of %d", ErrOutOfRange, at, g.cols)
	}
	if g.cols == 1 {
		return fmt.Errorf("%w: cannot remove the only column", ErrInvalidDimensions)
	}
	cols := g.cols - 1
	values := make([]V, 0, cols*g.rows)
	for y := 0; y < g.rows; y++ {
		row := g.values[y*g.cols : (y+1)*g.cols]
		values = append(values, row[:at]...)
		values = append(values, row[at+1:]...)
	}
	g.cols = cols
	g.values = values
	return nil
}

// Rotate turns the grid by 90 degrees, swapping its dimensions.
func (g *Grid[V]) Rotate(clockwise bool) {
	cols, rows := g.rows, g.cols
	values := make([]V, len(g.values))
	for y := 0; y < g.rows; y++ {
		for x := 0; x < g.cols; x++ {
			nx, ny := y, g.cols-1-x
			if clockwise {
				nx, ny = g.rows-1-y, x
			}
			values[ny*cols+nx] = g.values[y*g.cols+x]
		}
	}
	g.cols, g.rows, g.values = cols, rows, values
}

// Insert copies src into the center of the grid, first growing the grid with
// fill when src does not fit.
func (g *Grid[V]) Insert(src *Grid[V], fill V) {
	cols := max(g.cols, src.cols)
	rows := max(g.rows, src.rows)
	if cols != g.cols || rows != g.rows {
		// Dimensions are positive, Resize cannot fail here.
		_ = g.Resize(cols, rows, AnchorTopLeft, fill)
	}
	ox := (cols - src.cols) / 2
	oy := (rows - src.rows) / 2
	for y := 0; y < src.rows; y++ {
		copy(g.values[(y+oy)*cols+ox:], src.values[y*src.cols:(y+1)*src.cols])
	}
}

// ForEach visits every cell in row-major order.
func (g *Grid[V]) ForEach(fn func(v V, x, y, i int)) {
	for i, v := range g.values {
		fn(v, i%g.cols, i/g.cols, i)
	}
}

// Each rebuilds the grid from the values returned by fn. Every call sees the
// values from before the pass.
func (g *Grid[V]) Each(fn func(v V, x, y, i int) V) {
	values := make([]V, len(g.values))
	for i, v := range g.values {
		values[i] = fn(v, i%g.cols, i/g.cols, i)
	}
	g.values = values
}

// Map produces a new grid of the same shape from the values returned by fn.
// The edge policy is carried over; the outside value is reset.
func Map[V, U any](g *Grid[V], fn func(v V, x, y, i int) U) *Grid[U] {
	out := &Grid[U]{cols: g.cols, rows: g.rows, values: make([]U, len(g.values)), edge: g.edge}
	for i, v := range g.values {
		out.values[i] = fn(v, i%g.cols, i/g.cols, i)
	}
	return out
}

// Rows2D copies the grid into a slice of rows.
func (g *Grid[V]) Rows2D() [][]V {
	out := make([][]V, g.rows)
	for y := range out {
		out[y] = append([]V(nil), g.values[y*g.cols:(y+1)*g.cols]...)
	}
	return out
}

// Equal reports whether a and b have the same shape and values.
func Equal[V comparable](a, b *Grid[V]) bool {
	if a.cols != b.cols || a.rows != b.rows {
		return false
	}
	for i, v := range a.values {
		if b.values[i] != v {
			return false
		}
	}
	return true
}

func floorMod(a, n int) int { return (a%n + n) % n }

func floorDiv(a, n int) int {
	q := a / n
	if a%n != 0 && (a < 0) != (n < 0) {
		q--
	}
	return q
}
