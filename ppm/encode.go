// Package ppm reads and writes the plain-text PPM (P3) format.
package ppm

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

const (
	magic  = "P3"
	maxVal = 255
)

// Source yields pixels for the encoder.
type Source interface {
	Size() (width, height int)
	RGB(x, y int) (r, g, b uint8)
}

// Order is the sequence in which source rows are written.
type Order int

const (
	// BottomUp writes y = H-1 first and y = 0 last.
	BottomUp Order = iota
	TopDown
)

func (o Order) String() string {
	switch o {
	case BottomUp:
		return "bottom-up"
	case TopDown:
		return "top-down"
	}
	return "unknown"
}

func ParseOrder(s string) (Order, error) {
	switch s {
	case "bottom-up":
		return BottomUp, nil
	case "top-down":
		return TopDown, nil
	}
	return 0, fmt.Errorf("unsupported scan order: %q", s)
}

type Encoder struct {
	Order Order
	// Progress, if set, is called before each row with the row's y value.
	Progress func(remaining int)
}

func (e *Encoder) Encode(w io.Writer, src Source) error {
	width, height := src.Size()
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid image size %dx%d", width, height)
	}

	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%s\n%d %d\n%d\n", magic, width, height, maxVal); err != nil {
		return fmt.Errorf("could not write header: %w", err)
	}

	line := make([]byte, 0, len("255 255 255\n"))
	for i := range height {
		y := i
		if e.Order == BottomUp {
			y = height - 1 - i
		}
		if e.Progress != nil {
			e.Progress(y)
		}

		for x := range width {
			r, g, b := src.RGB(x, y)
			line = strconv.AppendUint(line[:0], uint64(r), 10)
			line = append(line, ' ')
			line = strconv.AppendUint(line, uint64(g), 10)
			line = append(line, ' ')
			line = strconv.AppendUint(line, uint64(b), 10)
			line = append(line, '\n')
			if _, err := bw.Write(line); err != nil {
				return fmt.Errorf("could not write row %d: %w", y, err)
			}
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("could not flush pixel data: %w", err)
	}
	return nil
}

// Encode writes src bottom-up without progress reporting.
func Encode(w io.Writer, src Source) error {
	e := Encoder{}
	return e.Encode(w, src)
}
