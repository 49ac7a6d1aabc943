package render

import (
	"bytes"
	"errors"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gradimg/gradient"
	"gradimg/parallel"
	"gradimg/raster"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func run(t *testing.T, cmd *CLICmd) error {
	t.Helper()
	pool := parallel.Start(1)
	return cmd.Run(pool.Do, pool.Wait)
}

func TestRunWritesPNG(t *testing.T) {
	logs := captureLog(t)
	var out bytes.Buffer
	path := filepath.Join(t.TempDir(), raster.DefaultPath)
	cmd := &CLICmd{Width: gradient.DefaultWidth, Height: gradient.DefaultHeight, Out: path, Stdout: &out}
	require.NoError(t, cmd.Validate(nil))
	require.NoError(t, run(t, cmd))

	assert.Equal(t, "Done.\n", out.String())
	assert.Contains(t, logs.String(), "image written")

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	conf, format, err := image.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 256, conf.Width)
	assert.Equal(t, 256, conf.Height)
}

type capturePersister struct {
	img  image.Image
	path string
	err  error
}

func (p *capturePersister) Persist(img image.Image, path string) error {
	p.img, p.path = img, path
	return p.err
}

func TestRunPassesFilledBuffer(t *testing.T) {
	captureLog(t)
	p := &capturePersister{}
	cmd := &CLICmd{Width: 5, Height: 4, Out: "grad.png", Persister: p, Stdout: &bytes.Buffer{}}
	require.NoError(t, run(t, cmd))

	require.NotNil(t, p.img)
	assert.Equal(t, "grad.png", p.path)
	assert.Equal(t, image.Rect(0, 0, 5, 4), p.img.Bounds())
	assert.Equal(t, gradient.Color{R: 255, G: 255, B: 63}, p.img.At(4, 3))
	assert.Equal(t, gradient.Color{R: 0, G: 0, B: 63}, p.img.At(0, 0))
}

func TestRunReportsWriteFailure(t *testing.T) {
	logs := captureLog(t)
	var out bytes.Buffer
	p := &capturePersister{err: errors.New("permission denied")}
	cmd := &CLICmd{Width: 8, Height: 8, Out: "/readonly/image.png", Persister: p, Stdout: &out}

	require.NoError(t, run(t, cmd))
	assert.Empty(t, out.String())
	assert.Contains(t, logs.String(), "error writing file")
	assert.Contains(t, logs.String(), "permission denied")
}

func TestRunAbortsOnWriteFailure(t *testing.T) {
	logs := captureLog(t)
	var out bytes.Buffer
	boom := errors.New("disk full")
	p := &capturePersister{err: boom}
	cmd := &CLICmd{Width: 8, Height: 8, Out: "image.png", AbortOnError: true, Persister: p, Stdout: &out}

	err := run(t, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	var werr *raster.WriteError
	assert.ErrorAs(t, err, &werr)
	assert.Empty(t, out.String())
	assert.NotContains(t, logs.String(), "error writing file")
}

func TestRunUnwritableDirectory(t *testing.T) {
	logs := captureLog(t)
	var out bytes.Buffer
	path := filepath.Join(t.TempDir(), "no", "such", "dir", "image.png")
	cmd := &CLICmd{Width: 4, Height: 4, Out: path, Stdout: &out}

	require.NoError(t, run(t, cmd))
	assert.Empty(t, out.String())
	assert.Contains(t, logs.String(), "error writing file")
}

func TestValidate(t *testing.T) {
	cmd := &CLICmd{Width: 256, Height: 0, Out: "x.png"}
	assert.ErrorIs(t, cmd.Validate(nil), gradient.ErrDegenerate)

	cmd = &CLICmd{Width: 16, Height: 16}
	assert.Error(t, cmd.Validate(nil))
}
