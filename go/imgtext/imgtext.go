// Package imgtext contains a plain-text image format decoder, used to write
// readable image fixtures in tests.
//
// The format:
//
//	! PIXTEXT
//	width height
//	0x000000ff 0xffffffff ...
//	0xddddddff 0xffffff88 ...
//	...
//
// Pixel values are encoded as 0xRRGGBBAA. Grayscale pixels can be written
// as 0xXX, shorthand for 0xXXXXXXff.
package imgtext

import (
	"bufio"
	"image"
	"image/color"
	"image/draw"
	"io"
	"strconv"
	"strings"

	"github.com/agpipeline/resultcheck/go/skerr"
)

const header = "! PIXTEXT"

// Decode reads a PIXTEXT image from r and returns it as an *image.NRGBA.
func Decode(r io.Reader) (*image.NRGBA, error) {
	scanner := bufio.NewScanner(r)

	if !scanner.Scan() || strings.TrimSpace(scanner.Text()) != header {
		return nil, skerr.Fmt("not a valid PIXTEXT file, missing %q header", header)
	}
	if !scanner.Scan() {
		return nil, skerr.Fmt("missing PIXTEXT dimensions line")
	}
	dims := strings.Fields(scanner.Text())
	if len(dims) != 2 {
		return nil, skerr.Fmt("invalid PIXTEXT dimensions line %q", scanner.Text())
	}
	width, err := strconv.Atoi(dims[0])
	if err != nil {
		return nil, skerr.Wrapf(err, "invalid width %q", dims[0])
	}
	height, err := strconv.Atoi(dims[1])
	if err != nil {
		return nil, skerr.Wrapf(err, "invalid height %q", dims[1])
	}

	ret := image.NewNRGBA(image.Rect(0, 0, width, height))
	y := 0
	for scanner.Scan() {
		tokens := strings.Fields(scanner.Text())
		if len(tokens) == 0 {
			continue
		}
		if y >= height {
			return nil, skerr.Fmt("too many pixel rows, expected %d", height)
		}
		if len(tokens) != width {
			return nil, skerr.Fmt("row %d has %d pixels, expected %d", y, len(tokens), width)
		}
		for x, tok := range tokens {
			px, err := parsePixel(tok)
			if err != nil {
				return nil, err
			}
			ret.SetNRGBA(x, y, px)
		}
		y++
	}
	if err := scanner.Err(); err != nil {
		return nil, skerr.Wrap(err)
	}
	if y != height {
		return nil, skerr.Fmt("got %d pixel rows, expected %d", y, height)
	}
	return ret, nil
}

// parsePixel parses a 0xRRGGBBAA or 0xXX token.
func parsePixel(tok string) (color.NRGBA, error) {
	if !strings.HasPrefix(tok, "0x") || (len(tok) != 4 && len(tok) != 10) {
		return color.NRGBA{}, skerr.Fmt("invalid pixel %q, must be 0xRRGGBBAA or 0xXX", tok)
	}
	v, err := strconv.ParseUint(tok, 0, 32)
	if err != nil {
		return color.NRGBA{}, skerr.Wrapf(err, "invalid pixel %q", tok)
	}
	if len(tok) == 4 {
		// Grayscale shorthand.
		g := uint8(v)
		return color.NRGBA{R: g, G: g, B: g, A: 0xff}, nil
	}
	return color.NRGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}

// MustToNRGBA decodes the given PIXTEXT string, panicking on invalid input.
// Suitable only for test code.
func MustToNRGBA(s string) *image.NRGBA {
	img, err := Decode(strings.NewReader(strings.TrimSpace(s) + "\n"))
	if err != nil {
		// This indicates an error with the static test data.
		panic(err)
	}
	return img
}

// MustToGray decodes the given PIXTEXT string and converts the result to
// grayscale. Suitable only for test code.
func MustToGray(s string) *image.Gray {
	nrgba := MustToNRGBA(s)
	gray := image.NewGray(nrgba.Bounds())
	draw.Draw(gray, nrgba.Bounds(), nrgba, nrgba.Bounds().Min, draw.Src)
	return gray
}
