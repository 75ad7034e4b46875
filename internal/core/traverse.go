package core

import (
	"math"
	"sort"
)

// FloodFill returns the indices of the 4-connected region of cells equal to
// the value at (x, y). A start outside the grid yields nil.
func FloodFill[V comparable](g *Grid[V], x, y int) []int {
	if !g.Contains(x, y) {
		return nil
	}
	target := g.values[g.Index(x, y)]
	seen := make([]bool, len(g.values))
	stack := []int{g.Index(x, y)}
	seen[stack[0]] = true
	var out []int
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, i)
		cx, cy := i%g.cols, i/g.cols
		for _, d := range [4]Point{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			nx, ny := cx+d.X, cy+d.Y
			if !g.Contains(nx, ny) {
				continue
			}
			n := ny*g.cols + nx
			if seen[n] || g.values[n] != target {
				continue
			}
			seen[n] = true
			stack = append(stack, n)
		}
	}
	return out
}

// Near visits cells inside the grid in order of increasing Euclidean distance
// from (x, y), up to radius. A negative radius covers the whole grid. Cells at
// equal distance are visited top to bottom, then left to right. Returning true
// from fn stops the walk.
func Near[V any](g *Grid[V], x, y int, radius float64, fn func(v V, x, y, i int, dist float64) bool) {
	r := int(math.Ceil(radius))
	if radius < 0 {
		r = max(g.cols, g.rows) + max(abs(x), abs(y))
	}
	type hit struct {
		x, y int
		dist float64
	}
	var hits []hit
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			px, py := x+dx, y+dy
			if !g.Contains(px, py) {
				continue
			}
			d := math.Hypot(float64(dx), float64(dy))
			if radius >= 0 && d > radius {
				continue
			}
			hits = append(hits, hit{px, py, d})
		}
	}
	sort.SliceStable(hits, func(a, b int) bool { return hits[a].dist < hits[b].dist })
	for _, h := range hits {
		i := h.y*g.cols + h.x
		if fn(g.values[i], h.x, h.y, i, h.dist) {
			return
		}
	}
}

// Spiral walks outward from (x, y) in a square spiral: right, down, left, up
// with leg lengths 1, 1, 2, 2, 3, 3 and so on. Only cells inside the grid are
// passed to fn, and the walk ends once every cell was visited or fn returns
// true.
func Spiral[V any](g *Grid[V], x, y int, fn func(v V, x, y, i int) bool) {
	dirs := [4]Point{{1, 0}, {0, 1}, {-1, 0}, {0, -1}}
	remaining := len(g.values)
	dir, step, leg, second := 0, 1, 1, false
	for remaining > 0 {
		if g.Contains(x, y) {
			remaining--
			i := y*g.cols + x
			if fn(g.values[i], x, y, i) {
				return
			}
		}
		x += dirs[dir].X
		y += dirs[dir].Y
		if step >= leg {
			step = 0
			dir = (dir + 1) % 4
			if second {
				leg++
			}
			second = !second
		}
		step++
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
