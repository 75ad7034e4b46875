package game

import (
	"errors"
	"math"
	"testing"

	"gen-ca/internal/core"
	"gen-ca/internal/life"
)

func TestRandomizeIsDeterministic(t *testing.T) {
	a, _ := newTestController(t, 16, 12)
	b, _ := newTestController(t, 16, 12)
	a.Seeder().Randomize(99, BiasCenter, BiasEdge)
	b.Seeder().Randomize(99, BiasCenter, BiasEdge)
	if !core.Equal(a.Snapshot(), b.Snapshot()) {
		t.Fatal("same seed produced different soups")
	}

	b.Seeder().Randomize(100, BiasCenter, BiasEdge)
	if core.Equal(a.Snapshot(), b.Snapshot()) {
		t.Fatal("different seeds produced the same soup")
	}
}

func TestRandomizeDensityExtremes(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 8, 8
	cfg.Clock = &core.ManualClock{}

	cfg.Density = 0
	empty, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	empty.Seeder().Randomize(1, BiasNone, BiasNone)
	if got := empty.State().Population; got != 0 {
		t.Fatalf("density 0 population = %d, want 0", got)
	}

	cfg.Density = 1
	full, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	full.Seeder().Randomize(1, BiasNone, BiasNone)
	if got := full.State().Population; got != 64 {
		t.Fatalf("density 1 population = %d, want 64", got)
	}
}

func TestRandomizeRestartsAndKeepsImmutableCells(t *testing.T) {
	c, _ := newTestController(t, 10, 10)
	draw(t, c, life.Live, block...)
	c.Step()
	draw(t, c, life.Tomb, core.Point{X: 9, Y: 9})

	c.Seeder().Randomize(5, BiasNone, BiasNone)
	st := c.State()
	if st.Generation != 0 {
		t.Fatalf("generation = %d, want 0", st.Generation)
	}
	if cellAt(c, 9, 9) != life.Tomb {
		t.Fatal("randomize overwrote a tomb")
	}
	if !core.Equal(c.Memory(), c.Snapshot()) {
		t.Fatal("randomized soup should become the reset point")
	}
}

func TestFillEdgeTouchesBordersOnly(t *testing.T) {
	a, _ := newTestController(t, 30, 30)
	b, _ := newTestController(t, 30, 30)
	a.Seeder().FillEdge(3)
	b.Seeder().FillEdge(3)
	if !core.Equal(a.Snapshot(), b.Snapshot()) {
		t.Fatal("same seed produced different edges")
	}

	a.View(func(g *life.Grid) {
		g.ForEach(func(v life.Cell, x, y, _ int) {
			border := x == 0 || y == 0 || x == 29 || y == 29
			if !border && v != life.Death {
				t.Fatalf("interior cell (%d,%d) = %v", x, y, v)
			}
		})
		for _, p := range []core.Point{{X: 0, Y: 0}, {X: 29, Y: 0}, {X: 0, Y: 29}, {X: 29, Y: 29}} {
			if g.Get(p.X, p.Y) != life.Live {
				t.Fatalf("corner %v not live", p)
			}
		}
	})
}

func TestUndeadCross(t *testing.T) {
	c, _ := newTestController(t, 5, 5)
	c.Seeder().UndeadCross()
	if got := c.State().Population; got != 9 {
		t.Fatalf("population = %d, want 9", got)
	}
	for i := 0; i < 5; i++ {
		if cellAt(c, 2, i) != life.Undead || cellAt(c, i, 2) != life.Undead {
			t.Fatalf("cross missing at %d", i)
		}
	}
	c.Step()
	if cellAt(c, 2, 0) != life.Undead {
		t.Fatal("undead cell changed after a step")
	}
}

func TestParseBias(t *testing.T) {
	for in, want := range map[string]Bias{"center": BiasCenter, " EDGE": BiasEdge, "": BiasNone, "left": BiasNone} {
		if got := ParseBias(in); got != want {
			t.Fatalf("ParseBias(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestAreaDensityInterpolates(t *testing.T) {
	c, _ := newTestController(t, 10, 10)
	s := c.Seeder()
	if got := s.Density(3, 7); got != 0.5 {
		t.Fatalf("default density = %v, want 0.5", got)
	}

	if err := s.SetArea(1, 1); err != nil {
		t.Fatal(err)
	}
	if err := s.SetPoint(0, 0, 1); err != nil {
		t.Fatal(err)
	}
	for _, p := range []core.Point{{X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}} {
		if err := s.SetPoint(p.X, p.Y, 0); err != nil {
			t.Fatal(err)
		}
	}
	cases := []struct {
		x, y int
		want float64
	}{
		{0, 0, 1},
		{5, 0, 0.5},
		{0, 5, 0.5},
		{5, 5, 0.25},
	}
	for _, tc := range cases {
		if got := s.Density(tc.x, tc.y); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("Density(%d,%d) = %v, want %v", tc.x, tc.y, got, tc.want)
		}
	}
}

func TestAreaRejectsInvalidInput(t *testing.T) {
	c, _ := newTestController(t, 10, 10)
	s := c.Seeder()
	if err := s.SetArea(0, 2); !errors.Is(err, core.ErrInvalidDimensions) {
		t.Fatalf("SetArea(0,2) err = %v", err)
	}
	if err := s.SetPoint(0, 0, 1.5); !errors.Is(err, core.ErrOutOfRange) {
		t.Fatalf("SetPoint density 1.5 err = %v", err)
	}
	if err := s.SetPoint(2, 0, 0.1); !errors.Is(err, core.ErrOutOfRange) {
		t.Fatalf("SetPoint outside err = %v", err)
	}
	if area := s.Area(); area.Columns() != 2 || area.Rows() != 2 {
		t.Fatalf("area = %dx%d, want 2x2 points", area.Columns(), area.Rows())
	}
}

func TestRandomizeFollowsAreaDensity(t *testing.T) {
	c, _ := newTestController(t, 20, 20)
	s := c.Seeder()
	if err := s.SetArea(2, 1); err != nil {
		t.Fatal(err)
	}
	for y := 0; y <= 1; y++ {
		for x, d := range []float64{1, 1, 0} {
			if err := s.SetPoint(x, y, d); err != nil {
				t.Fatal(err)
			}
		}
	}
	s.Randomize(11, BiasNone, BiasNone)

	left, right := 0, 0
	c.View(func(g *life.Grid) {
		g.ForEach(func(v life.Cell, x, y, _ int) {
			if v != life.Live {
				return
			}
			if x < 10 {
				left++
			} else {
				right++
			}
		})
	})
	if left != 200 {
		t.Fatalf("left half live cells = %d, want 200", left)
	}
	if right == 0 || right >= 150 {
		t.Fatalf("right half live cells = %d, want a sparse fade", right)
	}
}
