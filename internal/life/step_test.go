package life

import (
	"reflect"
	"testing"

	"gen-ca/internal/core"
	"gen-ca/internal/rule"
)

func gridOf(t *testing.T, edge core.Edge, rows [][]Cell) *Grid {
	t.Helper()
	g, err := core.FromRows(rows)
	if err != nil {
		t.Fatalf("FromRows: %v", err)
	}
	g.SetEdge(edge, Death)
	return g
}

func TestBlinkerOscillation(t *testing.T) {
	g, _ := NewGrid(5, 5)
	_ = g.Set(2, 1, Live)
	_ = g.Set(2, 2, Live)
	_ = g.Set(2, 3, Live)

	g = Step(g, rule.Conway)
	expects := map[core.Point]bool{{X: 1, Y: 2}: true, {X: 2, Y: 2}: true, {X: 3, Y: 2}: true}
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			alive := g.Get(x, y) == Live
			if expects[core.Point{X: x, Y: y}] != alive {
				t.Fatalf("cell (%d,%d) alive=%v, expected %v", x, y, alive, !alive)
			}
		}
	}

	g = Step(g, rule.Conway)
	expects = map[core.Point]bool{{X: 2, Y: 1}: true, {X: 2, Y: 2}: true, {X: 2, Y: 3}: true}
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			alive := g.Get(x, y) == Live
			if expects[core.Point{X: x, Y: y}] != alive {
				t.Fatalf("after second step cell (%d,%d) alive=%v, expected %v", x, y, alive, !alive)
			}
		}
	}
}

func livePoints(g *Grid) []core.Point {
	var out []core.Point
	g.ForEach(func(c Cell, x, y, _ int) {
		if c == Live {
			out = append(out, core.Point{X: x, Y: y})
		}
	})
	return out
}

func TestGlider(t *testing.T) {
	g, _ := NewGrid(8, 8)
	for _, p := range []core.Point{{X: 5, Y: 1}, {X: 4, Y: 2}, {X: 4, Y: 3}, {X: 5, Y: 3}, {X: 6, Y: 3}} {
		_ = g.Set(p.X, p.Y, Live)
	}
	// Row-major order.
	want := [][]core.Point{
		{{X: 4, Y: 2}, {X: 6, Y: 2}, {X: 4, Y: 3}, {X: 5, Y: 3}, {X: 5, Y: 4}},
		{{X: 4, Y: 2}, {X: 4, Y: 3}, {X: 6, Y: 3}, {X: 4, Y: 4}, {X: 5, Y: 4}},
		{{X: 5, Y: 2}, {X: 3, Y: 3}, {X: 4, Y: 3}, {X: 4, Y: 4}, {X: 5, Y: 4}},
	}
	for i, w := range want {
		g = Step(g, rule.Conway)
		if got := livePoints(g); !reflect.DeepEqual(got, w) {
			t.Fatalf("generation %d: got %v, want %v", i+1, got, w)
		}
	}
}

func TestLoopEdges(t *testing.T) {
	g := gridOf(t, core.EdgeLoop, [][]Cell{
		{0, 1, 0, 0},
		{0, 1, 1, 0},
		{0, 1, 0, 0},
	})
	want := [][][]Cell{
		{{1, 1, 0, 0}, {1, 1, 1, 0}, {1, 1, 0, 0}},
		{{0, 0, 0, 0}, {0, 0, 1, 0}, {0, 0, 0, 0}},
	}
	for i, w := range want {
		g = Step(g, rule.Conway)
		if got := g.Rows2D(); !reflect.DeepEqual(got, w) {
			t.Fatalf("step %d: got %v, want %v", i+1, got, w)
		}
	}
	if g.Edge() != core.EdgeLoop {
		t.Fatalf("edge policy lost: %v", g.Edge())
	}
}

func TestGenerationsAging(t *testing.T) {
	r := rule.MustParse("B23678/S145678/C4")
	g := gridOf(t, core.EdgeLoop, [][]Cell{
		{0, 1, 0, 0},
		{0, 1, 1, 0},
		{0, 1, 0, 0},
	})
	want := [][][]Cell{
		{{1, 2, 0, 0}, {1, 2, 2, 0}, {1, 2, 0, 0}},
		{{2, 3, 0, 1}, {2, 3, 3, 1}, {2, 3, 0, 1}},
		{{3, 0, 1, 2}, {3, 0, 0, 2}, {3, 0, 1, 2}},
	}
	for i, w := range want {
		g = Step(g, r)
		if got := g.Rows2D(); !reflect.DeepEqual(got, w) {
			t.Fatalf("step %d: got %v, want %v", i+1, got, w)
		}
	}
}

func TestUndeadCycle(t *testing.T) {
	r := rule.MustParse("B234/S2/C5")
	start := [][]Cell{
		{0, 0, -1, 0},
		{0, 0, 0, 0},
		{0, 0, -1, 0},
	}
	g := gridOf(t, core.EdgeLoop, start)
	for age := Cell(1); age <= 4; age++ {
		g = Step(g, r)
		want := [][]Cell{
			{0, age, Undead, age},
			{0, age, age, age},
			{0, age, Undead, age},
		}
		if got := g.Rows2D(); !reflect.DeepEqual(got, want) {
			t.Fatalf("age %d: got %v, want %v", age, got, want)
		}
	}
	g = Step(g, r)
	if got := g.Rows2D(); !reflect.DeepEqual(got, start) {
		t.Fatalf("cycle did not close: %v", got)
	}
}

func TestNeighborStates(t *testing.T) {
	tests := []struct {
		name   string
		around Cell
		want   Cell
	}{
		{"live", Live, Live},
		{"undead counts", Undead, Live},
		{"tomb ignored", Tomb, Death},
		{"aging ignored", 2, Death},
	}
	for _, tt := range tests {
		g := gridOf(t, core.EdgeUndefined, [][]Cell{
			{tt.around, tt.around, tt.around},
			{0, 0, 0},
			{0, 0, 0},
		})
		next := Step(g, rule.MustParse("B3/S23/C3"))
		if got := next.Get(1, 1); got != tt.want {
			t.Errorf("%s: center = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestClampEdgeCell(t *testing.T) {
	g, _ := NewGrid(3, 3)
	g.SetEdge(core.EdgeClamp, Undead)
	want := [][]Cell{
		{0, 1, 0},
		{1, 0, 1},
		{0, 1, 0},
	}
	if got := Step(g, rule.Conway).Rows2D(); !reflect.DeepEqual(got, want) {
		t.Fatalf("undead edge: got %v, want %v", got, want)
	}

	g.SetEdge(core.EdgeClamp, Tomb)
	if Population(Step(g, rule.Conway)) != 0 {
		t.Fatal("tomb edge should not give birth")
	}
}

func TestImmutableAndStrayValues(t *testing.T) {
	g := gridOf(t, core.EdgeUndefined, [][]Cell{
		{Tomb, Undead, -7},
	})
	next := Step(g, rule.MustParse("B/S012345678"))
	want := [][]Cell{{Tomb, Undead, Death}}
	if got := next.Rows2D(); !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestStepIsPure(t *testing.T) {
	g := gridOf(t, core.EdgeLoop, [][]Cell{
		{0, 1, 0, 0},
		{0, 1, 1, 0},
		{0, 1, 0, 0},
	})
	before := g.Clone()
	a := Step(g, rule.Conway)
	b := Step(g, rule.Conway)
	if Changed(a, b) {
		t.Fatal("step is not deterministic")
	}
	if Changed(g, before) {
		t.Fatal("step mutated its input")
	}
	if !Changed(g, a) {
		t.Fatal("expected the pattern to change")
	}
}

func TestPopulation(t *testing.T) {
	g := gridOf(t, core.EdgeUndefined, [][]Cell{
		{Tomb, Undead, Death, Live, 3},
	})
	if got := Population(g); got != 3 {
		t.Fatalf("Population = %d, want 3", got)
	}
}

func TestRun(t *testing.T) {
	g, _ := NewGrid(4, 4)
	for _, p := range []core.Point{{X: 1, Y: 1}, {X: 2, Y: 1}, {X: 1, Y: 2}, {X: 2, Y: 2}} {
		_ = g.Set(p.X, p.Y, Live)
	}
	if Changed(Run(g, rule.Conway, 10), g) {
		t.Fatal("block should be still life")
	}
}
