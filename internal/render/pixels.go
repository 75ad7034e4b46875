// Package render turns cell grids into pixels, either for the ebiten window
// or for PNG snapshots.
package render

import (
	"image/color"

	"gen-ca/internal/life"
)

// Palette assigns a color to every cell state.
type Palette struct {
	Death  color.RGBA
	Live   color.RGBA
	Undead color.RGBA
	Tomb   color.RGBA
	// Cycle is the rule's state count. Aging states fade from Live towards
	// Death over it.
	Cycle int
}

// DefaultPalette returns the standard palette for a rule with the given cycle.
func DefaultPalette(cycle int) Palette {
	return Palette{
		Death:  color.RGBA{0x10, 0x10, 0x14, 0xff},
		Live:   color.RGBA{0xf0, 0xf0, 0xe8, 0xff},
		Undead: color.RGBA{0xd0, 0x40, 0x40, 0xff},
		Tomb:   color.RGBA{0x48, 0x48, 0x58, 0xff},
		Cycle:  cycle,
	}
}

// Color returns the color for c.
func (p Palette) Color(c life.Cell) color.RGBA {
	switch {
	case c == life.Death:
		return p.Death
	case c == life.Live:
		return p.Live
	case c == life.Undead:
		return p.Undead
	case c == life.Tomb:
		return p.Tomb
	case c < 0:
		return p.Death
	}
	span := max(p.Cycle, int(c)+1) - 1
	return blend(p.Live, p.Death, float64(c-1)/float64(span))
}

func blend(a, b color.RGBA, t float64) color.RGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5)
	}
	return color.RGBA{mix(a.R, b.R), mix(a.G, b.G), mix(a.B, b.B), mix(a.A, b.A)}
}

// fillCellsRGBA converts cells into RGBA pixels in buf using a palette.
func fillCellsRGBA(buf []byte, cells []life.Cell, p Palette) {
	for i, c := range cells {
		base := i * 4
		col := p.Color(c)
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}
