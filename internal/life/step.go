package life

import (
	"gen-ca/internal/core"
	"gen-ca/internal/rule"
)

// Step computes the next generation of g under r into a new grid carrying
// the same edge policy. g is not modified.
//
// Tomb and Undead cells are copied through. Every other cell counts the Live
// and Undead cells among its eight neighbors, resolving positions beyond the
// border through the grid's edge policy, then:
//
//	Death with a count in Born       -> Live
//	Live with a count in Survival    -> Live
//	any other value >= 1             -> (value+1) mod Cycle
//	anything else                    -> Death
func Step(g *Grid, r rule.Rule) *Grid {
	limit := r.MaxCount()
	next := core.Map(g, func(c Cell, x, y, _ int) Cell {
		if c.Immutable() {
			return c
		}
		n := 0
		if limit >= 0 {
			n = neighbors(g, x, y, limit)
		}
		switch {
		case c == Death:
			if r.Borns(n) {
				return Live
			}
			return Death
		case c == Live && r.Survives(n):
			return Live
		case c >= Live:
			return Cell((int(c) + 1) % r.Cycle)
		}
		return Death
	})
	next.SetEdge(g.Edge(), g.Outside())
	return next
}

// neighbors counts live Moore neighbors, giving up once the count passes
// limit since no rule member can match beyond it.
func neighbors(g *Grid, x, y, limit int) int {
	n := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if c, ok := g.At(x+dx, y+dy); ok && c.Alive() {
				n++
				if n > limit {
					return n
				}
			}
		}
	}
	return n
}

// Run applies Step n times and returns the final grid.
func Run(g *Grid, r rule.Rule, n int) *Grid {
	for i := 0; i < n; i++ {
		g = Step(g, r)
	}
	return g
}
