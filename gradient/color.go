package gradient

import (
	"fmt"
	"image/color"
)

// Color is an opaque 8-bit RGB triple.
type Color struct {
	R, G, B uint8
}

var _ color.Color = Color{}

func (c Color) RGBA() (uint32, uint32, uint32, uint32) {
	r := uint32(c.R)
	g := uint32(c.G)
	b := uint32(c.B)
	return r | r<<8, g | g<<8, b | b<<8, 0xffff
}

func (c Color) String() string {
	return fmt.Sprintf("%d %d %d", c.R, c.G, c.B)
}

// Model converts any color to Color, dropping alpha.
var Model = color.ModelFunc(convert)

func convert(c color.Color) color.Color {
	if _, ok := c.(Color); ok {
		return c
	}
	r, g, b, _ := c.RGBA()
	return Color{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
}
