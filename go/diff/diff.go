// Package diff implements the image comparison core: decoding raster files,
// comparing image shapes with a row-count tolerance, and histogram-based
// pixel difference checks.
package diff

import (
	"image"
	"image/draw"
	"os"
	"path/filepath"
	"strings"

	// Registered image formats. TIFF decoding comes from golang.org/x/image.
	_ "image/png"

	_ "golang.org/x/image/tiff"

	"github.com/agpipeline/resultcheck/go/skerr"
	"github.com/agpipeline/resultcheck/go/util"
)

// SupportedExtension returns true if files with the given path are raster
// images this package knows how to compare. Everything else passes the size
// gate only.
func SupportedExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return util.In(ext, []string{".tif", ".tiff", ".png"})
}

// IsGeoTIFF returns true for TIFF files, the only format the optional
// clipping step applies to.
func IsGeoTIFF(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".tif" || ext == ".tiff"
}

// OpenImage opens the specified file and decodes it with any of the
// registered formats (PNG and TIFF).
func OpenImage(filePath string) (image.Image, error) {
	reader, err := os.Open(filePath)
	if err != nil {
		return nil, skerr.Wrap(err)
	}
	defer util.Close(reader)
	im, _, err := image.Decode(reader)
	if err != nil {
		return nil, skerr.Wrapf(err, "decoding %s", filePath)
	}
	return im, nil
}

// GetNRGBA converts the image to an *image.NRGBA in an efficient manner.
func GetNRGBA(img image.Image) *image.NRGBA {
	switch t := img.(type) {
	case *image.NRGBA:
		return t
	default:
		ret := image.NewNRGBA(img.Bounds())
		draw.Draw(ret, img.Bounds(), img, img.Bounds().Min, draw.Src)
		return ret
	}
}

// Shape describes the dimensions of a decoded image. Channels is 1 for
// grayscale images and 4 for everything else (after NRGBA conversion).
type Shape struct {
	Width    int
	Height   int
	Channels int
}

// ShapeOf returns the Shape of the given image.
func ShapeOf(img image.Image) Shape {
	channels := 4
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		channels = 1
	}
	return Shape{
		Width:    img.Bounds().Dx(),
		Height:   img.Bounds().Dy(),
		Channels: channels,
	}
}

// ShapeResult classifies the outcome of a shape comparison.
type ShapeResult int

const (
	// ShapesEqual means the shapes match exactly; histogram comparison
	// applies.
	ShapesEqual ShapeResult = iota
	// ShapesTolerable means the shapes differ only in row count, within the
	// configured pixel budget, with matching channel counts. The pair is
	// treated as equivalent and the histogram step is skipped.
	ShapesTolerable
	// ShapesMismatch is a hard dimensional failure.
	ShapesMismatch
)

// CompareShapes compares two image shapes. A mismatch is tolerable only
// when the channel counts agree and the row-count difference is within
// maxPixelDimDiff; only the row axis participates in the tolerance.
func CompareShapes(master, source Shape, maxPixelDimDiff int) ShapeResult {
	if master == source {
		return ShapesEqual
	}
	if master.Channels != source.Channels {
		return ShapesMismatch
	}
	if util.AbsInt(master.Height-source.Height) > maxPixelDimDiff {
		return ShapesMismatch
	}
	return ShapesTolerable
}
