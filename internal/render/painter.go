//go:build ebiten

package render

import (
	"gen-ca/internal/life"

	"github.com/hajimehoshi/ebiten/v2"
)

// GridPainter updates a single RGBA image from cell data.
type GridPainter struct {
	w, h int
	img  *ebiten.Image
	buf  []byte
}

// NewGridPainter returns a painter; its image is allocated on first use.
func NewGridPainter() *GridPainter {
	return &GridPainter{}
}

// Blit uploads g into the painter image and draws it scaled onto dst. The
// image is reallocated when the grid dimensions change.
func (gp *GridPainter) Blit(dst *ebiten.Image, g *life.Grid, p Palette, scale int) {
	if g.Columns() != gp.w || g.Rows() != gp.h || gp.img == nil {
		if gp.img != nil {
			gp.img.Dispose()
		}
		gp.w, gp.h = g.Columns(), g.Rows()
		gp.img = ebiten.NewImage(gp.w, gp.h)
		gp.buf = make([]byte, 4*gp.w*gp.h)
	}
	fillCellsRGBA(gp.buf, g.Values(), p)
	gp.img.WritePixels(gp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(gp.img, op)
}

// Size returns the dimensions of the underlying image.
func (gp *GridPainter) Size() (int, int) { return gp.w, gp.h }
