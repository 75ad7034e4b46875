package render

import (
	"fmt"
	"io"

	"gen-ca/internal/life"

	"github.com/gogpu/gg"
)

// WritePNG draws g with scale×scale pixels per cell and encodes it as PNG.
func WritePNG(w io.Writer, g *life.Grid, p Palette, scale int) error {
	if scale <= 0 {
		return fmt.Errorf("render: scale %d must be positive", scale)
	}
	dc := gg.NewContext(g.Columns()*scale, g.Rows()*scale)
	defer dc.Close()

	dc.ClearWithColor(gg.FromColor(p.Death))
	s := float64(scale)
	var fillErr error
	g.ForEach(func(c life.Cell, x, y, _ int) {
		if fillErr != nil || c == life.Death {
			return
		}
		dc.SetColor(p.Color(c))
		dc.DrawRectangle(float64(x)*s, float64(y)*s, s, s)
		fillErr = dc.Fill()
	})
	if fillErr != nil {
		return fmt.Errorf("render: fill: %w", fillErr)
	}
	return dc.EncodePNG(w)
}
