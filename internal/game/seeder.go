package game

import (
	"fmt"
	"math"

	"gen-ca/internal/core"
	"gen-ca/internal/life"
)

// Bias shapes a random soup along one axis.
type Bias int

const (
	BiasNone Bias = iota
	// BiasCenter favors live cells towards the middle of the axis.
	BiasCenter
	// BiasEdge favors live cells towards both ends of the axis.
	BiasEdge
)

func (b Bias) String() string {
	switch b {
	case BiasCenter:
		return "center"
	case BiasEdge:
		return "edge"
	}
	return "none"
}

// ParseBias maps "center" and "edge" to their Bias; anything else is BiasNone.
func ParseBias(s string) Bias {
	switch normalize(s) {
	case "center":
		return BiasCenter
	case "edge":
		return BiasEdge
	}
	return BiasNone
}

// Seeder fills a controller's grid with generated patterns. All results
// depend only on the seed and the grid dimensions.
type Seeder struct {
	c *Controller
}

// Seeder returns the pattern generator bound to c.
func (c *Controller) Seeder() *Seeder { return &Seeder{c: c} }

// weight returns the sine bias for position i of n along one axis.
func (b Bias) weight(i, n int) float64 {
	s := math.Sin(float64(i) / float64(n) * math.Pi)
	switch b {
	case BiasCenter:
		return s - 0.5
	case BiasEdge:
		return 0.5 - s
	}
	return 0
}

// SetArea splits the grid into cols x rows random areas. Every corner point
// starts at the configured density.
func (s *Seeder) SetArea(cols, rows int) error {
	if cols < 1 || rows < 1 {
		return fmt.Errorf("%w: %dx%d areas", core.ErrInvalidDimensions, cols, rows)
	}
	c := s.c
	c.mu.Lock()
	defer c.mu.Unlock()
	area, err := core.NewGrid(cols+1, rows+1, c.density)
	if err != nil {
		return err
	}
	c.area = area
	return nil
}

// SetPoint sets the density at corner point (x, y) of the area grid.
func (s *Seeder) SetPoint(x, y int, density float64) error {
	if density < 0 || density > 1 {
		return fmt.Errorf("%w: density %v", core.ErrOutOfRange, density)
	}
	c := s.c
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.area.Set(x, y, density)
}

// Area returns a copy of the corner-point densities.
func (s *Seeder) Area() *core.Grid[float64] {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	return s.c.area.Clone()
}

// Density returns the live probability Randomize uses for cell (x, y).
func (s *Seeder) Density(x, y int) float64 {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	return s.c.densityLocked(x, y)
}

// densityLocked interpolates bilinearly between the four corner points of the
// area holding (x, y).
func (c *Controller) densityLocked(x, y int) float64 {
	ac, ar := c.area.Columns()-1, c.area.Rows()-1
	dx := float64(x) / float64(c.cells.Columns()) * float64(ac)
	dy := float64(y) / float64(c.cells.Rows()) * float64(ar)
	x0, x1 := int(math.Floor(dx)), int(math.Ceil(dx))
	y0, y1 := int(math.Floor(dy)), int(math.Ceil(dy))
	fx, fy := dx-math.Floor(dx), dy-math.Floor(dy)

	top := c.area.Get(x0, y0) + (c.area.Get(x1, y0)-c.area.Get(x0, y0))*fx
	bottom := c.area.Get(x0, y1) + (c.area.Get(x1, y1)-c.area.Get(x0, y1))*fx
	return top + (bottom-top)*fy
}

// Randomize replaces every mutable cell with Live or Death and restarts at
// generation 0. A cell lives when a uniform draw plus a fifth of the combined
// axis bias reaches 1 minus its area density, so with no bias the density is
// the expected share of live cells.
func (s *Seeder) Randomize(seed int64, biasX, biasY Bias) {
	c := s.c
	c.mu.Lock()
	defer c.mu.Unlock()
	rng := core.NewRNG(seed)
	cols, rows := c.cells.Columns(), c.cells.Rows()
	next := c.cells.Clone()
	next.Each(func(v life.Cell, x, y, _ int) life.Cell {
		r := rng.Float64()
		if v.Immutable() {
			return v
		}
		if r+(biasX.weight(x, cols)+biasY.weight(y, rows))/5 >= 1-c.densityLocked(x, y) {
			return life.Live
		}
		return life.Death
	})
	core.Logger().Debug("randomize", "seed", seed, "biasX", biasX, "biasY", biasY)
	c.initLocked(next)
}

// FillEdge seeds random-length runs of live cells from each corner along all
// four borders.
func (s *Seeder) FillEdge(seed int64) {
	c := s.c
	c.mu.Lock()
	defer c.mu.Unlock()
	rng := core.NewRNG(seed)
	cols, rows := c.cells.Columns(), c.cells.Rows()
	span := func(n int) int {
		lo, hi := float64(n)/15, float64(n)/5
		k := int(math.Floor(lo + rng.Float64()*(hi-lo+1)))
		return min(max(k, 0), n)
	}
	paint := func(x, y int) {
		if v := c.cells.Get(x, y); !v.Immutable() {
			_ = c.cells.Set(x, y, life.Live)
		}
	}
	for _, x := range [2]int{0, cols - 1} {
		top, bottom := span(rows), span(rows)
		for y := 0; y < top; y++ {
			paint(x, y)
		}
		for y := 0; y < bottom; y++ {
			paint(x, rows-1-y)
		}
	}
	for _, y := range [2]int{0, rows - 1} {
		left, right := span(cols), span(cols)
		for x := 0; x < left; x++ {
			paint(x, y)
		}
		for x := 0; x < right; x++ {
			paint(cols-1-x, y)
		}
	}
	c.afterEditLocked()
}

// UndeadCross turns the middle column and middle row into Undead cells and
// restarts at generation 0.
func (s *Seeder) UndeadCross() {
	c := s.c
	c.mu.Lock()
	defer c.mu.Unlock()
	cols, rows := c.cells.Columns(), c.cells.Rows()
	next := c.cells.Clone()
	next.Each(func(v life.Cell, x, y, _ int) life.Cell {
		if x == cols/2 || y == rows/2 {
			return life.Undead
		}
		return v
	})
	c.initLocked(next)
}
