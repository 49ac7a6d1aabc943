package ppm

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"strconv"
)

var ErrFormat = errors.New("ppm: invalid format")

func init() {
	image.RegisterFormat("ppm", magic, Decode, DecodeConfig)
}

type reader struct {
	br *bufio.Reader
}

// token returns the next whitespace separated word, skipping '#' comments.
func (r *reader) token() (string, error) {
	var tok []byte
	for {
		c, err := r.br.ReadByte()
		if err != nil {
			if err == io.EOF && len(tok) > 0 {
				return string(tok), nil
			}
			return "", err
		}

		switch {
		case c == '#':
			if len(tok) > 0 {
				return string(tok), r.br.UnreadByte()
			}
			if _, err := r.br.ReadString('\n'); err != nil && err != io.EOF {
				return "", err
			}
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f':
			if len(tok) > 0 {
				return string(tok), nil
			}
		default:
			tok = append(tok, c)
		}
	}
}

func (r *reader) number(what string, limit int) (int, error) {
	tok, err := r.token()
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return 0, fmt.Errorf("could not read %s: %w", what, err)
	}
	v, err := strconv.Atoi(tok)
	if err != nil || v < 0 || v > limit {
		return 0, fmt.Errorf("%w: bad %s %q", ErrFormat, what, tok)
	}
	return v, nil
}

func (r *reader) header() (image.Config, int, error) {
	tok, err := r.token()
	if err != nil {
		return image.Config{}, 0, fmt.Errorf("could not read magic: %w", err)
	}
	if tok != magic {
		return image.Config{}, 0, fmt.Errorf("%w: unsupported magic %q", ErrFormat, tok)
	}

	const limit = 1 << 16
	width, err := r.number("width", limit)
	if err != nil {
		return image.Config{}, 0, err
	}
	height, err := r.number("height", limit)
	if err != nil {
		return image.Config{}, 0, err
	}
	maxv, err := r.number("max value", maxVal)
	if err != nil {
		return image.Config{}, 0, err
	}
	if width == 0 || height == 0 || maxv == 0 {
		return image.Config{}, 0, fmt.Errorf("%w: empty image %dx%d max %d", ErrFormat, width, height, maxv)
	}

	return image.Config{ColorModel: color.RGBAModel, Width: width, Height: height}, maxv, nil
}

func DecodeConfig(r io.Reader) (image.Config, error) {
	rd := &reader{br: bufio.NewReader(r)}
	conf, _, err := rd.header()
	return conf, err
}

// Decode reads a P3 image. Rows are returned in file order, first row at
// y = 0. Samples are rescaled to 8 bits when the max value is below 255.
func Decode(r io.Reader) (image.Image, error) {
	rd := &reader{br: bufio.NewReader(r)}
	conf, maxv, err := rd.header()
	if err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, conf.Width, conf.Height))
	for y := range conf.Height {
		for x := range conf.Width {
			var rgb [3]uint8
			for i := range rgb {
				v, err := rd.number("sample", maxv)
				if err != nil {
					return nil, fmt.Errorf("pixel (%d, %d): %w", x, y, err)
				}
				rgb[i] = uint8(v * 255 / maxv)
			}
			img.SetRGBA(x, y, color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 0xff})
		}
	}
	return img, nil
}
