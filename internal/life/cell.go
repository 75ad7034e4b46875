// Package life advances Life-like and Generations automata one generation at
// a time.
package life

import (
	"strconv"

	"gen-ca/internal/core"
)

// Cell is a single automaton state. Values from 2 up to the rule's cycle
// minus one are aging states of a Generations rule.
type Cell int16

const (
	// Tomb is permanently dead. It is never counted as a neighbor.
	Tomb Cell = -2
	// Undead is permanently alive and counts as a live neighbor.
	Undead Cell = -1
	Death  Cell = 0
	Live   Cell = 1
)

// Immutable reports whether the step function leaves the cell untouched.
func (c Cell) Immutable() bool { return c == Tomb || c == Undead }

// Alive reports whether the cell counts toward its neighbors' totals.
func (c Cell) Alive() bool { return c == Live || c == Undead }

func (c Cell) String() string {
	switch c {
	case Tomb:
		return "tomb"
	case Undead:
		return "undead"
	case Death:
		return "death"
	case Live:
		return "live"
	}
	return "age" + strconv.Itoa(int(c))
}

// Grid is the cell grid the step function works on.
type Grid = core.Grid[Cell]

// NewGrid returns a cols×rows grid of Death cells.
func NewGrid(cols, rows int) (*Grid, error) {
	return core.NewGrid(cols, rows, Death)
}

// Population counts the cells that are neither Death nor Tomb.
func Population(g *Grid) int {
	n := 0
	for _, c := range g.Values() {
		if c != Death && c != Tomb {
			n++
		}
	}
	return n
}

// Changed reports whether two grids differ in shape or in any cell.
func Changed(a, b *Grid) bool {
	return !core.Equal(a, b)
}
