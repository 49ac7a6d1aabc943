package render

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gradimg/gradient"
	"gradimg/parallel"
	"gradimg/raster"

	"github.com/alecthomas/kong"
	"github.com/dustin/go-humanize"
)

type CLICmd struct {
	Width        int    `help:"Image width" default:"${width}"`
	Height       int    `help:"Image height" default:"${height}"`
	Out          string `help:"Destination PNG file" default:"${out}" type:"path"`
	AbortOnError bool   `help:"Exit with an error status when the file cannot be written instead of reporting it" default:"false"`

	Persister raster.Persister `kong:"-"`
	Stdout    io.Writer        `kong:"-"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	dims := gradient.Dimensions{Width: c.Width, Height: c.Height}
	if err := dims.Validate(); err != nil {
		return fmt.Errorf("invalid dimensions: %w", err)
	}
	if c.Out == "" {
		return fmt.Errorf("no destination file given")
	}
	return nil
}

func (c *CLICmd) Run(worker parallel.WorkerFunc, wait parallel.WaitFunc) error {
	stdout := c.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	persister := c.Persister
	if persister == nil {
		persister = raster.PNGFile{}
	}

	dims := gradient.Dimensions{Width: c.Width, Height: c.Height}
	gen, err := gradient.New(dims, gradient.RasterScale)
	if err != nil {
		return err
	}

	logger := slog.Default().With("file", c.Out)
	logger.Debug("filling buffer", "size", dims)
	buf := raster.NewBuffer(dims)
	raster.Fill(buf, gen, worker, wait)

	if err = raster.Write(persister, buf, c.Out); err != nil {
		var werr *raster.WriteError
		if c.AbortOnError || !errors.As(err, &werr) {
			return err
		}
		logger.Error("error writing file", "error", werr.Err)
		return nil
	}

	if info, statErr := os.Stat(c.Out); statErr == nil {
		logger.Info("image written", "size", dims, "bytes", humanize.Bytes(uint64(info.Size())))
	}
	fmt.Fprintln(stdout, "Done.")
	return nil
}
