package emit

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"gradimg/gradient"
	"gradimg/ppm"

	"github.com/alecthomas/kong"
)

type CLICmd struct {
	Width    int    `help:"Image width" default:"${width}"`
	Height   int    `help:"Image height" default:"${height}"`
	Progress bool   `help:"Report remaining scanlines on stderr" default:"true" negatable:""`
	Order    string `help:"Row scan order" enum:"bottom-up,top-down" default:"bottom-up"`

	Stdout io.Writer `kong:"-"`
	Stderr io.Writer `kong:"-"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	dims := gradient.Dimensions{Width: c.Width, Height: c.Height}
	if err := dims.Validate(); err != nil {
		return fmt.Errorf("invalid dimensions: %w", err)
	}
	if _, err := ppm.ParseOrder(c.Order); err != nil {
		return err
	}
	return nil
}

func (c *CLICmd) Run() error {
	stdout, stderr := c.Stdout, c.Stderr
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	dims := gradient.Dimensions{Width: c.Width, Height: c.Height}
	gen, err := gradient.New(dims, gradient.TextScale)
	if err != nil {
		return err
	}
	order, err := ppm.ParseOrder(c.Order)
	if err != nil {
		return err
	}

	enc := ppm.Encoder{Order: order}
	if c.Progress {
		enc.Progress = func(remaining int) {
			fmt.Fprintf(stderr, "Scanlines remaining: %d\n", remaining)
		}
	}

	slog.Debug("writing text image", "size", dims, "order", order)
	if err := enc.Encode(stdout, gen); err != nil {
		return fmt.Errorf("could not write text image: %w", err)
	}
	slog.Debug("text image written", "pixels", dims.Pixels())
	return nil
}
