// Package gradient computes the colors of a red/green gradient over a fixed
// blue channel. Every pixel is a pure function of its position and the image
// dimensions.
package gradient

import (
	"errors"
	"fmt"
)

const (
	DefaultWidth  = 256
	DefaultHeight = 256
)

// Scale maps a ratio in [0, 1] to a channel value before truncation.
type Scale float64

const (
	TextScale   Scale = 255.99
	RasterScale Scale = 255.999
)

const blueRatio = 0.25

var ErrDegenerate = errors.New("degenerate image dimensions")

type Dimensions struct {
	Width  int
	Height int
}

// Validate rejects sizes where x/(W-1) or y/(H-1) would divide by zero.
func (d Dimensions) Validate() error {
	if d.Width < 2 || d.Height < 2 {
		return fmt.Errorf("%w: %dx%d, both sides must be at least 2", ErrDegenerate, d.Width, d.Height)
	}
	return nil
}

func (d Dimensions) Pixels() int {
	return d.Width * d.Height
}

func (d Dimensions) String() string {
	return fmt.Sprintf("%dx%d", d.Width, d.Height)
}

type Generator struct {
	dims  Dimensions
	scale Scale
}

func New(dims Dimensions, scale Scale) (*Generator, error) {
	if err := dims.Validate(); err != nil {
		return nil, err
	}
	return &Generator{dims: dims, scale: scale}, nil
}

func (g *Generator) Dimensions() Dimensions {
	return g.dims
}

func (g *Generator) Scale() Scale {
	return g.scale
}

// At returns the color at (x, y). The caller guarantees 0 <= x < W and
// 0 <= y < H.
func (g *Generator) At(x, y int) Color {
	r := float64(x) / float64(g.dims.Width-1)
	gr := float64(y) / float64(g.dims.Height-1)

	return Color{
		R: Channel(r, g.scale),
		G: Channel(gr, g.scale),
		B: Channel(blueRatio, g.scale),
	}
}

func (g *Generator) Size() (int, int) {
	return g.dims.Width, g.dims.Height
}

func (g *Generator) RGB(x, y int) (uint8, uint8, uint8) {
	c := g.At(x, y)
	return c.R, c.G, c.B
}

// Channel truncates v*scale toward zero and clamps it into [0, 255].
func Channel(v float64, scale Scale) uint8 {
	f := v * float64(scale)
	switch {
	case f <= 0:
		return 0
	case f >= 255:
		return 255
	}
	return uint8(f)
}
