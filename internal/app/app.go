//go:build ebiten

package app

import (
	"time"

	"gen-ca/internal/core"
	"gen-ca/internal/game"
	"gen-ca/internal/life"
	"gen-ca/internal/render"
	"gen-ca/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var speedKeys = [...]ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4}

// Game adapts a controller to the ebiten.Game interface. The controller
// ticks on its own clock; Update only handles input.
type Game struct {
	ctrl    *game.Controller
	painter *render.GridPainter
	hud     *ui.HUD

	scale    int
	hudWidth int
	seed     int64
}

// New constructs a Game for the provided controller.
func New(ctrl *game.Controller, scale, hudWidth int, seed int64) *Game {
	if scale <= 0 {
		scale = 1
	}
	return &Game{
		ctrl:     ctrl,
		painter:  render.NewGridPainter(),
		hud:      ui.NewHUD(ctrl, hudWidth),
		scale:    scale,
		hudWidth: max(hudWidth, 0),
		seed:     seed,
	}
}

// Update handles per-frame input.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		if g.ctrl.Running() {
			g.ctrl.Stop()
		} else {
			g.ctrl.Start()
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.ctrl.Stop()
		g.ctrl.Step()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.ctrl.Stop()
		g.ctrl.Reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.ctrl.Clear()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.seed = time.Now().UnixNano()
		g.ctrl.Seeder().Randomize(g.seed, game.BiasNone, game.BiasNone)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyE) {
		g.ctrl.Seeder().FillEdge(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyU) {
		g.ctrl.Seeder().UndeadCross()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyV) {
		g.ctrl.Reverse()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		g.ctrl.Rotate(!ebiten.IsKeyPressed(ebiten.KeyShift))
	}
	for i, k := range speedKeys {
		if inpututil.IsKeyJustPressed(k) {
			g.ctrl.SetSpeed(i)
		}
	}

	g.handleMouse()
	st := g.ctrl.State()
	g.hud.Update(st.Columns * g.scale)
	return nil
}

// handleMouse paints Live with the left button and Death with the right.
// Holding F flood-fills instead.
func (g *Game) handleMouse() {
	v := life.Live
	switch {
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight):
		v = life.Death
	default:
		return
	}
	mx, my := ebiten.CursorPosition()
	x, y := mx/g.scale, my/g.scale
	st := g.ctrl.State()
	if mx < 0 || my < 0 || x >= st.Columns || y >= st.Rows {
		return
	}
	if ebiten.IsKeyPressed(ebiten.KeyF) {
		if _, err := g.ctrl.Fill(x, y, v); err != nil {
			core.Logger().Debug("fill", "err", err)
		}
		return
	}
	_ = g.ctrl.Draw(x, y, v)
}

// Draw renders the grid and the parameter panel.
func (g *Game) Draw(screen *ebiten.Image) {
	palette := render.DefaultPalette(g.ctrl.Rule().Cycle)
	var cols, rows int
	g.ctrl.View(func(grid *life.Grid) {
		cols, rows = grid.Columns(), grid.Rows()
		g.painter.Blit(screen, grid, palette, g.scale)
	})
	g.hud.Draw(screen, cols*g.scale, rows*g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	st := g.ctrl.State()
	return st.Columns*g.scale + g.hudWidth, st.Rows * g.scale
}
