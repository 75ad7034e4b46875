// Package game owns a running automaton: its grid, rule, generation counter
// and tick loop. Every exported method is safe for concurrent use.
package game

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"gen-ca/internal/codec"
	"gen-ca/internal/core"
	"gen-ca/internal/life"
	"gen-ca/internal/rule"
)

// ErrUnknownEdge reports an edge name other than loop, death, tomb or undead.
var ErrUnknownEdge = errors.New("game: unknown edge mode")

var (
	tickIntervals = [...]time.Duration{
		128 * time.Millisecond,
		64 * time.Millisecond,
		32 * time.Millisecond,
		16 * time.Millisecond,
	}
	speeds = [...]int{1, 2, 4, 8}
)

// State is a point-in-time summary of the controller.
type State struct {
	Columns    int
	Rows       int
	Generation int
	Population int
	Running    bool
	Rule       string
	Edge       string
	SpeedIndex int
	// Speed is the multiplier for SpeedIndex.
	Speed    int
	AutoStop bool
	// Changed reports whether the last step altered the grid.
	Changed bool
}

// Controller drives a Life grid.
type Controller struct {
	mu sync.Mutex

	cells      *life.Grid
	memory     *life.Grid
	rule       rule.Rule
	edge       string
	generation int
	population int
	changed    bool
	autoStop   bool
	speedIndex int

	ticker *core.Ticker
	subs   map[int]chan Event
	nextID int

	seed    int64
	density float64
	// area holds the seeding density at the corner points of each random
	// area, (areaColumns+1) x (areaRows+1).
	area *core.Grid[float64]
}

// New creates a controller with an empty grid.
func New(cfg Config) (*Controller, error) {
	r, err := rule.Resolve(cfg.Rule)
	if err != nil {
		return nil, err
	}
	policy, outside, err := edgePolicy(cfg.Edge)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", err, cfg.Edge)
	}
	cells, err := life.NewGrid(cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}
	cells.SetEdge(policy, outside)
	area, _ := core.NewGrid(2, 2, cfg.Density)

	c := &Controller{
		cells:      cells,
		rule:       r,
		edge:       normalize(cfg.Edge),
		autoStop:   cfg.AutoStop,
		speedIndex: wrapSpeed(cfg.Speed),
		subs:       make(map[int]chan Event),
		seed:       cfg.Seed,
		density:    cfg.Density,
		area:       area,
	}
	c.ticker = core.NewTicker(cfg.Clock, tickIntervals[c.speedIndex], c.tick)
	return c, nil
}

func wrapSpeed(i int) int {
	n := len(tickIntervals)
	return (i%n + n) % n
}

// newCells allocates a Death grid carrying the current edge policy.
func (c *Controller) newCells(cols, rows int) *life.Grid {
	g, _ := life.NewGrid(cols, rows)
	g.SetEdge(c.cells.Edge(), c.cells.Outside())
	return g
}

// Init starts over at generation 0 with src cropped or padded to the current
// dimensions from the top-left corner. A nil src clears the grid.
func (c *Controller) Init(src *life.Grid) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.initLocked(src)
}

func (c *Controller) initLocked(src *life.Grid) {
	next := c.newCells(c.cells.Columns(), c.cells.Rows())
	if src != nil {
		for y := 0; y < min(src.Rows(), next.Rows()); y++ {
			for x := 0; x < min(src.Columns(), next.Columns()); x++ {
				_ = next.Set(x, y, src.Get(x, y))
			}
		}
	}
	c.cells = next
	c.generation = 0
	c.changed = true
	c.afterEditLocked()
}

// Clear stops the ticker and empties the grid.
func (c *Controller) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
	c.initLocked(nil)
}

// Insert centers pattern in a fresh Death grid large enough for both the
// pattern and the current dimensions, and resets the generation counter.
func (c *Controller) Insert(pattern *life.Grid) error {
	if pattern == nil {
		return fmt.Errorf("%w: nil pattern", core.ErrInvalidDimensions)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.insertLocked(pattern)
	return nil
}

func (c *Controller) insertLocked(pattern *life.Grid) {
	resized := pattern.Columns() > c.cells.Columns() || pattern.Rows() > c.cells.Rows()
	next := c.newCells(c.cells.Columns(), c.cells.Rows())
	next.Insert(pattern, life.Death)
	c.cells = next
	c.generation = 0
	c.changed = true
	if resized {
		c.emitLocked(EventResize)
	}
	c.afterEditLocked()
}

// Reset restores the pattern remembered at generation 0.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	mem := c.memory
	if mem == nil {
		mem = c.newCells(1, 1)
	}
	c.insertLocked(mem)
}

// Load inserts a pattern in the fixed-width text format and remembers it as
// the reset point.
func (c *Controller) Load(s string, width int) error {
	g, err := codec.DecodeFixed(s, width)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.insertLocked(g)
	c.memory = c.cells.Clone()
	core.Logger().Info("pattern loaded", "columns", g.Columns(), "rows", g.Rows())
	return nil
}

// Save writes the grid in the fixed-width text format.
func (c *Controller) Save(width int) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return codec.EncodeFixed(c.cells, width)
}

// Export writes the grid in the packed text format.
func (c *Controller) Export() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return codec.EncodePacked(c.cells)
}

// Import inserts a pattern in the packed text format and remembers it as the
// reset point.
func (c *Controller) Import(s string) error {
	g, err := codec.DecodePacked(s)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.insertLocked(g)
	c.memory = c.cells.Clone()
	core.Logger().Info("pattern imported", "columns", g.Columns(), "rows", g.Rows())
	return nil
}

// Rule returns the active rule.
func (c *Controller) Rule() rule.Rule {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rule
}

// SetRule parses s, a rule string or preset name, optionally takes its
// reversal, and makes it the active rule. On error the previous rule stays
// active. Either way the active rule's canonical string is returned.
func (c *Controller) SetRule(s string, reversal bool) (string, error) {
	r, err := rule.Resolve(s)
	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		core.Logger().Warn("rule rejected", "input", s, "err", err)
		return c.rule.String(), err
	}
	if reversal {
		r = r.Reversal()
	}
	c.rule = r
	core.Logger().Debug("rule changed", "rule", r.String())
	c.emitLocked(EventSettings)
	return r.String(), nil
}

// SetEdge switches the edge mode between loop, death, tomb and undead.
func (c *Controller) SetEdge(name string) error {
	policy, outside, err := edgePolicy(name)
	if err != nil {
		return fmt.Errorf("%w: %q", err, name)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cells.SetEdge(policy, outside)
	c.edge = normalize(name)
	c.emitLocked(EventSettings)
	return nil
}

// SetAutoStop toggles stopping once a step leaves the grid unchanged.
func (c *Controller) SetAutoStop(on bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.autoStop = on
	c.emitLocked(EventSettings)
}

// SetSpeed selects a tick interval by index; out-of-range indexes wrap.
func (c *Controller) SetSpeed(i int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.speedIndex = wrapSpeed(i)
	c.ticker.SetInterval(tickIntervals[c.speedIndex])
	c.emitLocked(EventSettings)
}

// Interval returns the tick interval for the current speed.
func (c *Controller) Interval() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return tickIntervals[c.speedIndex]
}

// Step advances one generation and reports whether the grid changed.
func (c *Controller) Step() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stepLocked()
	return c.changed
}

func (c *Controller) stepLocked() {
	next := life.Step(c.cells, c.rule)
	c.changed = life.Changed(c.cells, next)
	c.cells = next
	c.generation++
	c.population = life.Population(next)
	core.Logger().Debug("step", "generation", c.generation, "population", c.population)
	c.emitLocked(EventUpdate)

	if !c.ticker.Running() {
		return
	}
	switch {
	case c.population == 0:
		core.Logger().Info("auto-stop", "reason", "extinct", "generation", c.generation)
		c.stopLocked()
	case c.autoStop && !c.changed:
		core.Logger().Info("auto-stop", "reason", "stable", "generation", c.generation)
		c.stopLocked()
	}
}

func (c *Controller) tick(epoch uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.ticker.Current(epoch) {
		return false
	}
	c.stepLocked()
	return c.ticker.Running()
}

// Start begins ticking. It does nothing when the grid is empty or already
// running. Starting at generation 0 remembers the grid for Reset.
func (c *Controller) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ticker.Running() || life.Population(c.cells) == 0 {
		return
	}
	c.ticker.Start()
	if c.generation == 0 {
		c.memory = c.cells.Clone()
	}
	core.Logger().Debug("start", "generation", c.generation, "interval", tickIntervals[c.speedIndex])
	c.emitLocked(EventStart)
}

// Stop halts ticking. Stopping a stopped controller does nothing.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
}

func (c *Controller) stopLocked() {
	if c.ticker.Stop() {
		core.Logger().Debug("stop", "generation", c.generation)
		c.emitLocked(EventStop)
	}
}

// Running reports whether the controller is ticking.
func (c *Controller) Running() bool {
	return c.ticker.Running()
}

// Resize changes the grid dimensions keeping content attached to anchor.
func (c *Controller) Resize(cols, rows int, anchor core.Anchor) error {
	return c.reshape(func(g *life.Grid) error {
		return g.Resize(cols, rows, anchor, life.Death)
	})
}

// AddRow inserts an empty row before row at; at == Rows appends.
func (c *Controller) AddRow(at int) error {
	return c.reshape(func(g *life.Grid) error { return g.AddRow(at, life.Death) })
}

// RemoveRow deletes row at; negative values count from the end.
func (c *Controller) RemoveRow(at int) error {
	return c.reshape(func(g *life.Grid) error { return g.RemoveRow(at) })
}

// AddColumn inserts an empty column before column at; at == Columns appends.
func (c *Controller) AddColumn(at int) error {
	return c.reshape(func(g *life.Grid) error { return g.AddColumn(at, life.Death) })
}

// RemoveColumn deletes column at; negative values count from the end.
func (c *Controller) RemoveColumn(at int) error {
	return c.reshape(func(g *life.Grid) error { return g.RemoveColumn(at) })
}

// Rotate turns the grid by 90 degrees.
func (c *Controller) Rotate(clockwise bool) {
	_ = c.reshape(func(g *life.Grid) error {
		g.Rotate(clockwise)
		return nil
	})
}

func (c *Controller) reshape(fn func(g *life.Grid) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := fn(c.cells); err != nil {
		return err
	}
	c.emitLocked(EventResize)
	c.afterEditLocked()
	return nil
}

// Reverse swaps Death with Live and Tomb with Undead. Aging cells keep their
// value.
func (c *Controller) Reverse() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cells.Each(func(v life.Cell, _, _, _ int) life.Cell {
		switch v {
		case life.Death:
			return life.Live
		case life.Live:
			return life.Death
		case life.Tomb:
			return life.Undead
		case life.Undead:
			return life.Tomb
		}
		return v
	})
	c.afterEditLocked()
}

// Draw sets a single cell.
func (c *Controller) Draw(x, y int, v life.Cell) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.cells.Set(x, y, v); err != nil {
		return err
	}
	c.afterEditLocked()
	return nil
}

// Fill paints the 4-connected region of equal cells containing (x, y) and
// returns the number of cells painted.
func (c *Controller) Fill(x, y int, v life.Cell) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	idx := core.FloodFill(c.cells, x, y)
	if idx == nil {
		return 0, fmt.Errorf("%w: (%d,%d)", core.ErrOutOfRange, x, y)
	}
	values := c.cells.Values()
	for _, i := range idx {
		values[i] = v
	}
	c.afterEditLocked()
	return len(idx), nil
}

// Brush paints every cell within radius of (x, y) and returns the number of
// cells painted.
func (c *Controller) Brush(x, y int, radius float64, v life.Cell) int {
	if radius < 0 {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	values := c.cells.Values()
	n := 0
	core.Near(c.cells, x, y, radius, func(_ life.Cell, _, _, i int, _ float64) bool {
		values[i] = v
		n++
		return false
	})
	if n > 0 {
		c.afterEditLocked()
	}
	return n
}

// Seek finds the cell holding target nearest to (x, y) along a square spiral
// and sets it to v. It reports the cell's position and whether one was found.
func (c *Controller) Seek(x, y int, target, v life.Cell) (core.Point, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var (
		found core.Point
		ok    bool
	)
	core.Spiral(c.cells, x, y, func(cell life.Cell, cx, cy, i int) bool {
		if cell != target {
			return false
		}
		c.cells.Values()[i] = v
		found, ok = core.Point{X: cx, Y: cy}, true
		return true
	})
	if ok {
		c.afterEditLocked()
	}
	return found, ok
}

// afterEditLocked recounts the population, remembers the grid while still at
// generation 0, stops an emptied run and notifies subscribers.
func (c *Controller) afterEditLocked() {
	c.population = life.Population(c.cells)
	if c.generation == 0 && c.population > 0 {
		c.memory = c.cells.Clone()
	}
	c.emitLocked(EventUpdate)
	if c.population == 0 {
		c.stopLocked()
	}
}

// State returns a summary of the controller.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

func (c *Controller) stateLocked() State {
	return State{
		Columns:    c.cells.Columns(),
		Rows:       c.cells.Rows(),
		Generation: c.generation,
		Population: c.population,
		Running:    c.ticker.Running(),
		Rule:       c.rule.String(),
		Edge:       c.edge,
		SpeedIndex: c.speedIndex,
		Speed:      speeds[c.speedIndex],
		AutoStop:   c.autoStop,
		Changed:    c.changed,
	}
}

// View calls fn with the live grid while holding the controller's lock. fn
// must not retain the grid or call back into the controller.
func (c *Controller) View(fn func(g *life.Grid)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(c.cells)
}

// Snapshot returns a deep copy of the grid.
func (c *Controller) Snapshot() *life.Grid {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cells.Clone()
}

// Memory returns a copy of the grid Reset restores, or nil.
func (c *Controller) Memory() *life.Grid {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.memory == nil {
		return nil
	}
	return c.memory.Clone()
}
