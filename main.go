package main

import (
	"io"
	"log/slog"
	"os"
	"strconv"

	"gradimg/emit"
	"gradimg/gradient"
	"gradimg/parallel"
	"gradimg/raster"
	"gradimg/render"
	"gradimg/verify"

	"github.com/alecthomas/kong"
	"github.com/natefinch/lumberjack"
)

type LogParams struct {
	LogLevel      string `help:"Diagnostic log level" enum:"debug,info,warn,error" default:"info"`
	LogFile       string `help:"Also append diagnostic logs to this file, rotated by size" type:"path"`
	LogMaxSize    int    `help:"Rotate the log file after this many megabytes" default:"10"`
	LogMaxBackups int    `help:"Number of rotated log files to keep" default:"3"`
}

type CLI struct {
	LogParams
	Workers int `help:"Number of workers filling the raster buffer, 0 for one per CPU" default:"1"`

	Emit   emit.CLICmd   `cmd:"" help:"Write the gradient as a plain-text PPM (P3) image to stdout"`
	Render render.CLICmd `cmd:"" help:"Write the gradient to a PNG file"`
	Verify verify.CLICmd `cmd:"" help:"Check that an image file holds the expected gradient"`
}

func (p LogParams) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(p.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func setupLogging(p LogParams) io.Closer {
	var w io.Writer = os.Stderr
	var closer io.Closer
	if p.LogFile != "" {
		rotated := &lumberjack.Logger{
			Filename:   p.LogFile,
			MaxSize:    p.LogMaxSize,
			MaxBackups: p.LogMaxBackups,
		}
		w = io.MultiWriter(os.Stderr, rotated)
		closer = rotated
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: p.Level()})))
	return closer
}

func options() []kong.Option {
	return []kong.Option{
		kong.Name("gradimg"),
		kong.Description("Generate a red/green gradient test image."),
		kong.UsageOnError(),
		kong.Vars{
			"width":  strconv.Itoa(gradient.DefaultWidth),
			"height": strconv.Itoa(gradient.DefaultHeight),
			"out":    raster.DefaultPath,
		},
	}
}

func main() {
	var cli CLI
	parser := kong.Must(&cli, options()...)
	kctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	if err := run(kctx, &cli); err != nil {
		os.Exit(1)
	}
}

func run(kctx *kong.Context, cli *CLI) error {
	if closer := setupLogging(cli.LogParams); closer != nil {
		defer func() {
			if err := closer.Close(); err != nil {
				slog.Error("could not close log file", "error", err)
			}
		}()
	}

	pool := parallel.Start(parallel.NumWorkers(cli.Workers))
	defer pool.Cancel()
	slog.Debug("running", "command", kctx.Command(), "workers", pool.Workers())

	if err := kctx.Run(pool.Do, pool.Wait); err != nil {
		slog.Error("command failed", "command", kctx.Command(), "error", err)
		return err
	}
	return nil
}
