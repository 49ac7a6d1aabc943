package raster

import (
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

const DefaultPath = "image.png"

// Persister serializes an image to path.
type Persister interface {
	Persist(img image.Image, path string) error
}

type PersisterFunc func(img image.Image, path string) error

func (f PersisterFunc) Persist(img image.Image, path string) error {
	return f(img, path)
}

type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("could not write %q: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// Write makes one attempt to persist img. Failures are returned as
// *WriteError.
func Write(p Persister, img image.Image, path string) error {
	if err := p.Persist(img, path); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}

// PNGFile writes PNG files through a temporary file in the destination
// directory, renamed into place once the encode succeeds.
type PNGFile struct {
	CompressionLevel png.CompressionLevel
}

var _ Persister = PNGFile{}

func (p PNGFile) Persist(img image.Image, path string) (err error) {
	destDir, destName := filepath.Split(path)
	if destDir == "" {
		destDir = "."
	}

	outFile, err := os.CreateTemp(destDir, destName+".*")
	if err != nil {
		return fmt.Errorf("could not create temporary destination for %q: %w", destName, err)
	}
	canRename := false
	defer func() {
		if defErr := outFile.Sync(); defErr != nil && err == nil {
			err = fmt.Errorf("could not flush temporary destination %q: %w", outFile.Name(), defErr)
		}
		if defErr := outFile.Close(); defErr != nil && err == nil {
			err = fmt.Errorf("could not close temporary destination %q: %w", outFile.Name(), defErr)
		}

		if canRename && err == nil {
			if defErr := os.Rename(outFile.Name(), path); defErr != nil {
				err = fmt.Errorf("could not rename destination file %q: %w", path, defErr)
			}
		}
		if err != nil {
			if defErr := os.Remove(outFile.Name()); defErr != nil {
				slog.Warn("could not remove temporary destination", "name", outFile.Name(), "error", defErr)
			}
		}
	}()

	enc := png.Encoder{
		CompressionLevel: p.CompressionLevel,
		BufferPool:       pngPool,
	}
	if err = enc.Encode(outFile, img); err != nil {
		return fmt.Errorf("could not encode PNG destination %q: %w", path, err)
	}
	if err = outFile.Chmod(0o644); err != nil {
		return fmt.Errorf("could not set permissions on %q: %w", outFile.Name(), err)
	}

	canRename = true
	return nil
}

type pngEncoderBufferPool struct {
	pool sync.Pool
}

func (p *pngEncoderBufferPool) Get() *png.EncoderBuffer {
	return p.pool.Get().(*png.EncoderBuffer)
}

func (p *pngEncoderBufferPool) Put(buf *png.EncoderBuffer) {
	p.pool.Put(buf)
}

var pngPool = &pngEncoderBufferPool{
	pool: sync.Pool{
		New: func() any {
			return &png.EncoderBuffer{}
		},
	},
}
