//go:build ebiten

package ui

import (
	"image"
	"image/color"

	"gen-ca/internal/core"
	"gen-ca/internal/game"
	"gen-ca/internal/rule"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

const (
	panelPadding   = 10
	headerBaseline = 13
	lineHeight     = 18
	groupGap       = 8
	buttonSize     = 14
	buttonGap      = 4
)

var (
	panelColor = color.RGBA{R: 16, G: 16, B: 20, A: 255}
	titleColor = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	labelColor = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	dimColor   = color.RGBA{R: 160, G: 160, B: 170, A: 255}
)

// hudButton steps a setting up or down.
type hudButton struct {
	key   string
	dir   int
	rect  image.Rectangle
	label string
}

// HUD renders the parameter panel to the right of the grid view.
type HUD struct {
	ctrl       *game.Controller
	width      int
	panel      *ebiten.Image
	lastHeight int
	snapshot   core.ParameterSnapshot

	buttons      []hudButton
	panelOffsetX int

	pixel *ebiten.Image
}

// NewHUD constructs a HUD for the controller and panel width.
func NewHUD(ctrl *game.Controller, width int) *HUD {
	if width < 0 {
		width = 0
	}
	h := &HUD{ctrl: ctrl, width: width}
	if width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	return h
}

// Update refreshes the cached snapshot and handles button clicks.
func (h *HUD) Update(panelOffsetX int) {
	if h == nil {
		return
	}
	h.panelOffsetX = panelOffsetX
	h.snapshot = h.ctrl.Parameters()
	h.handleInput()
}

func (h *HUD) handleInput() {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	if mx < h.panelOffsetX {
		return
	}
	px := mx - h.panelOffsetX
	for _, b := range h.buttons {
		if image.Pt(px, my).In(b.rect) {
			h.apply(b.key, b.dir)
			return
		}
	}
}

func (h *HUD) apply(key string, dir int) {
	switch key {
	case "speed":
		h.ctrl.SetSpeed(h.ctrl.State().SpeedIndex + dir)
	case "rule":
		_, _ = h.ctrl.SetRule(rule.Next(h.ctrl.Rule(), dir).Name, false)
	case "autostop":
		h.ctrl.SetAutoStop(!h.ctrl.State().AutoStop)
	}
}

// adjustable lists the parameter keys that get buttons.
var adjustable = map[string]bool{"speed": true, "rule": true, "autostop": true}

// Draw paints the HUD panel at offsetX with the given height.
func (h *HUD) Draw(screen *ebiten.Image, offsetX, height int) {
	if h == nil || h.width <= 0 || height <= 0 {
		return
	}
	if h.panel == nil || h.lastHeight != height {
		if h.panel != nil {
			h.panel.Dispose()
		}
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(panelColor)
	h.drawGroups()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) drawGroups() {
	face := basicfont.Face7x13
	h.buttons = h.buttons[:0]
	y := panelPadding
	for _, group := range h.snapshot.Groups {
		title := group.Name
		if group.Summary != "" {
			title += " (" + group.Summary + ")"
		}
		text.Draw(h.panel, title, face, panelPadding, y+headerBaseline, titleColor)
		y += lineHeight
		for _, p := range group.Params {
			text.Draw(h.panel, p.Label, face, panelPadding, y+headerBaseline, labelColor)
			right := h.width - panelPadding
			if adjustable[p.Key] {
				plus := image.Rect(right-buttonSize, y+2, right, y+2+buttonSize)
				minus := image.Rect(plus.Min.X-buttonGap-buttonSize, y+2, plus.Min.X-buttonGap, y+2+buttonSize)
				h.buttons = append(h.buttons,
					hudButton{key: p.Key, dir: -1, rect: minus, label: "-"},
					hudButton{key: p.Key, dir: 1, rect: plus, label: "+"},
				)
				right = minus.Min.X - buttonGap
			}
			w := text.BoundString(face, p.Value).Dx()
			text.Draw(h.panel, p.Value, face, right-w, y+headerBaseline, dimColor)
			y += lineHeight
		}
		y += groupGap
	}
	for _, b := range h.buttons {
		h.drawButton(b.rect, b.label)
	}
}

func (h *HUD) drawButton(rect image.Rectangle, label string) {
	if h.pixel == nil {
		return
	}
	bg := color.RGBA{R: 54, G: 56, B: 64, A: 255}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.ScaleWithColor(bg)
	h.panel.DrawImage(h.pixel, op)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-bounds.Dx())/2
	y := rect.Min.Y + (rect.Dy()-bounds.Dy())/2 + bounds.Dy()
	text.Draw(h.panel, label, face, x, y, labelColor)
}
