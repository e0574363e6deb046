// Package clip shells out to gdal_translate to cut a GeoTIFF down to a
// geographic bounding box before it is compared.
package clip

import (
	"context"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/agpipeline/resultcheck/go/executil"
	"github.com/agpipeline/resultcheck/go/skerr"
	"github.com/agpipeline/resultcheck/go/sklog"
)

// Bounds is a geographic bounding box.
type Bounds struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// ParseBounds parses "x1,y1,x2,y2" into normalized Bounds; the coordinate
// pairs may come in any order. Anything other than exactly 4 parseable
// numbers is an error.
func ParseBounds(s string) (Bounds, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return Bounds{}, skerr.Fmt("clip bounds %q must have exactly 4 comma-separated values", s)
	}
	vals := make([]float64, 4)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return Bounds{}, skerr.Wrapf(err, "clip bounds component %q", p)
		}
		vals[i] = v
	}
	b := Bounds{
		MinX: vals[0],
		MinY: vals[1],
		MaxX: vals[2],
		MaxY: vals[3],
	}
	if b.MinX > b.MaxX {
		b.MinX, b.MaxX = b.MaxX, b.MinX
	}
	if b.MinY > b.MaxY {
		b.MinY, b.MaxY = b.MaxY, b.MinY
	}
	return b, nil
}

// Clipper clips a raster file, placing the result in dstDir and returning
// the clipped file's path. Callers own dstDir and its cleanup.
type Clipper interface {
	Clip(ctx context.Context, srcPath, dstDir string) (string, error)
}

// GDAL is a Clipper that invokes gdal_translate.
type GDAL struct {
	Bounds Bounds
}

// formatCoord renders a coordinate the way gdal_translate expects it.
func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Clip implements Clipper. The -projwin window is given as upper-left then
// lower-right corner.
func (g *GDAL) Clip(ctx context.Context, srcPath, dstDir string) (string, error) {
	dstPath := filepath.Join(dstDir, filepath.Base(srcPath))
	cmd := executil.CommandContext(ctx, "gdal_translate",
		"-projwin",
		formatCoord(g.Bounds.MinX),
		formatCoord(g.Bounds.MaxY),
		formatCoord(g.Bounds.MaxX),
		formatCoord(g.Bounds.MinY),
		srcPath, dstPath)
	output, err := cmd.CombinedOutput()
	if len(output) > 0 {
		sklog.Debugf("gdal_translate: %s", strings.TrimSpace(string(output)))
	}
	if err != nil {
		return "", skerr.Wrapf(err, "clipping %s", srcPath)
	}
	return dstPath, nil
}

var _ Clipper = &GDAL{}
