package raster

import (
	"gradimg/gradient"
	"gradimg/parallel"
)

// Canvas receives generated pixels.
type Canvas interface {
	Size() (width, height int)
	Set(x, y int, c gradient.Color)
}

// Fill writes gen's color into every slot of dst exactly once, y growing
// downward. Each row is one task for worker; rows never share a slot.
func Fill(dst Canvas, gen *gradient.Generator, worker parallel.WorkerFunc, wait parallel.WaitFunc) {
	width, height := dst.Size()
	for y := range height {
		worker(func() {
			for x := range width {
				dst.Set(x, y, gen.At(x, y))
			}
		})
	}
	wait(true)
}
