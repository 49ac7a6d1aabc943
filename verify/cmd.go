package verify

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"os"

	"gradimg/gradient"
	_ "gradimg/ppm"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const (
	ConventionAuto   = "auto"
	ConventionText   = "text"
	ConventionRaster = "raster"
)

var ErrMismatch = errors.New("image does not match the generated gradient")

type CLICmd struct {
	File       string `arg:"" help:"Image file to check" type:"existingfile"`
	Convention string `help:"Scale and row order the file was written with" enum:"auto,text,raster" default:"auto"`

	Stdout io.Writer `kong:"-"`
}

func (c *CLICmd) Run() error {
	stdout := c.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	logger := slog.Default().With("file", c.File)

	f, err := os.Open(c.File)
	if err != nil {
		return fmt.Errorf("could not open image %q: %w", c.File, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			logger.Error("could not close image", "error", closeErr)
		}
	}()

	img, format, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("could not decode image %q: %w", c.File, err)
	}

	convention := c.Convention
	if convention == ConventionAuto || convention == "" {
		convention = ConventionRaster
		if format == "ppm" {
			convention = ConventionText
		}
	}
	logger.Debug("decoded image", "format", format, "bounds", img.Bounds(), "convention", convention)

	mismatches, err := Compare(img, convention)
	if err != nil {
		return err
	}
	if mismatches > 0 {
		return fmt.Errorf("%w: %d pixels differ", ErrMismatch, mismatches)
	}

	fmt.Fprintf(stdout, "%s: %s %dx%d matches\n", c.File, format, img.Bounds().Dx(), img.Bounds().Dy())
	return nil
}

// Compare counts the pixels of img that differ from the gradient written
// with the given convention. Text images store row y = H-1 first.
func Compare(img image.Image, convention string) (int, error) {
	b := img.Bounds()
	dims := gradient.Dimensions{Width: b.Dx(), Height: b.Dy()}

	scale := gradient.RasterScale
	inverted := false
	switch convention {
	case ConventionText:
		scale, inverted = gradient.TextScale, true
	case ConventionRaster:
	default:
		return 0, fmt.Errorf("unsupported convention: %q", convention)
	}

	gen, err := gradient.New(dims, scale)
	if err != nil {
		return 0, err
	}

	var mismatches int
	for r := range dims.Height {
		y := r
		if inverted {
			y = dims.Height - 1 - r
		}
		for x := range dims.Width {
			got := gradient.Model.Convert(img.At(b.Min.X+x, b.Min.Y+r))
			if got != gen.At(x, y) {
				if mismatches == 0 {
					slog.Debug("first mismatch", "x", x, "row", r, "got", got, "want", gen.At(x, y))
				}
				mismatches++
			}
		}
	}
	return mismatches, nil
}
