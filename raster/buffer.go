// Package raster fills an in-memory pixel buffer from a generator and
// persists it as a compressed image file.
package raster

import (
	"image"
	"image/color"

	"gradimg/gradient"
)

// Buffer is a fixed-size arena of colors.
type Buffer struct {
	// Pix holds the pixels in row-major order. The pixel at (x, y) is
	// Pix[y*Rect.Dx() + x].
	Pix  []gradient.Color
	Rect image.Rectangle
}

var _ image.Image = (*Buffer)(nil)

func NewBuffer(dims gradient.Dimensions) *Buffer {
	return &Buffer{
		Pix:  make([]gradient.Color, dims.Pixels()),
		Rect: image.Rect(0, 0, dims.Width, dims.Height),
	}
}

func (b *Buffer) ColorModel() color.Model {
	return gradient.Model
}

func (b *Buffer) Bounds() image.Rectangle {
	return b.Rect
}

func (b *Buffer) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}.In(b.Rect)) {
		return gradient.Color{}
	}
	return b.Pix[b.offset(x, y)]
}

// Opaque lets encoders skip the alpha channel.
func (b *Buffer) Opaque() bool {
	return true
}

func (b *Buffer) Size() (int, int) {
	return b.Rect.Dx(), b.Rect.Dy()
}

func (b *Buffer) Set(x, y int, c gradient.Color) {
	if !(image.Point{X: x, Y: y}.In(b.Rect)) {
		return
	}
	b.Pix[b.offset(x, y)] = c
}

func (b *Buffer) offset(x, y int) int {
	return (y-b.Rect.Min.Y)*b.Rect.Dx() + (x - b.Rect.Min.X)
}
