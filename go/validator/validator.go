// Package validator drives the comparison of a generated dataset tree
// against a master tree and decides PASS/FAIL for each resolved file pair.
// The run stops at the first failing pair.
package validator

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/agpipeline/resultcheck/go/clip"
	"github.com/agpipeline/resultcheck/go/diff"
	"github.com/agpipeline/resultcheck/go/filesearch"
	"github.com/agpipeline/resultcheck/go/skerr"
	"github.com/agpipeline/resultcheck/go/sklog"
	"github.com/agpipeline/resultcheck/go/util"
	"github.com/agpipeline/resultcheck/go/vfs"
)

var (
	// ErrMissingMaster means no comparison master file matched an ending.
	ErrMissingMaster = errors.New("missing the comparison files used to validate results")
	// ErrMissingSource means no generated output file matched an ending.
	ErrMissingSource = errors.New("missing the resulting files from the dataset")
	// ErrImageLoad means a file did not decode as an image. Callers treat
	// this as a distinct, immediate exit path.
	ErrImageLoad = errors.New("image was not loaded")
)

// Validator checks one dataset tree against one master tree.
type Validator struct {
	cfg     Config
	fs      vfs.FS
	clipper clip.Clipper
}

// New returns a Validator operating on the local filesystem, with a
// gdal_translate-backed clipper when clip bounds are configured.
func New(cfg Config) *Validator {
	v := &Validator{
		cfg: cfg,
		fs:  vfs.Local("."),
	}
	if cfg.ClipBounds != nil {
		v.clipper = &clip.GDAL{Bounds: *cfg.ClipBounds}
	}
	return v
}

// NewWithDeps returns a Validator with explicit filesystem and clipper
// collaborators, for tests. The filesystem only covers locating and
// statting files; image decoding and clip output go through the OS, so
// any path reaching the image comparison must name a real file on disk.
func NewWithDeps(cfg Config, fs vfs.FS, clipper clip.Clipper) *Validator {
	return &Validator{cfg: cfg, fs: fs, clipper: clipper}
}

// Run evaluates every configured file ending against every selected
// subfolder. The first pair that fails any check aborts the run; a nil
// return means every pair passed.
func (v *Validator) Run(ctx context.Context) error {
	for _, ending := range v.cfg.FileEndings {
		for _, subFolder := range v.selectFolders(ctx) {
			if err := v.checkPair(ctx, ending, subFolder); err != nil {
				return err
			}
		}
	}
	return nil
}

// selectFolders returns the subfolder names participating in the run. The
// single empty selection means "compare the roots directly". Finding no
// matching subfolders falls back to the unfiltered case; it is not a test
// failure.
func (v *Validator) selectFolders(ctx context.Context) []string {
	if v.cfg.DatasetFilter == nil {
		return []string{""}
	}
	if folders, ok := filesearch.FilteredFolders(ctx, v.fs, v.cfg.CompareDir, v.cfg.DatasetFilter); ok {
		return folders
	}
	if folders, ok := filesearch.FilteredFolders(ctx, v.fs, v.cfg.DatasetsDir, v.cfg.DatasetFilter); ok {
		return folders
	}
	return []string{""}
}

// checkPair resolves and compares the file pair for one ending and one
// subfolder selection.
func (v *Validator) checkPair(ctx context.Context, ending, subFolder string) error {
	masterRoot := v.cfg.CompareDir
	sourceRoot := v.cfg.DatasetsDir
	if subFolder != "" {
		masterRoot = filepath.Join(masterRoot, subFolder)
		sourceRoot = filepath.Join(sourceRoot, subFolder)
	}

	master, masterFound := filesearch.FindMatch(ctx, v.fs, masterRoot, ending)
	source, sourceFound := filesearch.FindMatch(ctx, v.fs, sourceRoot, ending)
	sklog.Infof("Master file: %s", master)
	sklog.Infof("Source file: %s", source)

	if !masterFound {
		return skerr.Wrapf(ErrMissingMaster, "%s", ending)
	}
	if !sourceFound {
		return skerr.Wrapf(ErrMissingSource, "%s", ending)
	}

	proceed, err := v.sizeGate(ctx, ending, master, source)
	if err != nil || !proceed {
		return err
	}
	return v.compareImages(ctx, ending, master, source)
}

// sizeGate compares raw byte sizes against the fractional tolerance. It
// returns false when the pair is already settled (trivially passing) and no
// pixel-level comparison should run.
func (v *Validator) sizeGate(ctx context.Context, ending, master, source string) (bool, error) {
	masterInfo, err := vfs.Stat(ctx, v.fs, master)
	if err != nil {
		return false, skerr.Wrap(err)
	}
	sourceInfo, err := vfs.Stat(ctx, v.fs, source)
	if err != nil {
		return false, skerr.Wrap(err)
	}
	masterSize := masterInfo.Size()
	sourceSize := sourceInfo.Size()

	if masterSize == 0 && sourceSize > 0 {
		return false, skerr.Fmt("generated file is not empty like comparison file: %s vs %s", source, master)
	}
	if masterSize > 0 {
		sizeDiff := masterSize - sourceSize
		if sizeDiff < 0 {
			sizeDiff = -sizeDiff
		}
		if sizeDiff != 0 && float64(sizeDiff)/float64(masterSize) > v.cfg.MaxSizeDiffFraction {
			return false, skerr.Fmt("file size difference exceeds limit of %v: %s vs %s", v.cfg.MaxSizeDiffFraction, source, master)
		}
	}
	if masterSize == 0 || sourceSize == 0 {
		sklog.Infof("Success compare empty files (%s): %s vs %s", ending, source, master)
		return false, nil
	}

	if filepath.Ext(master) == "" {
		sklog.Infof("Success compare extension-less files (%s): %s vs %s", ending, source, master)
		return false, nil
	}
	if !diff.SupportedExtension(master) {
		sklog.Infof("Success. No further tests for files (%s): %s vs %s", ending, source, master)
		return false, nil
	}
	return true, nil
}

// compareImages runs the structural and histogram comparisons for one pair
// of raster files, clipping GeoTIFFs first when bounds are configured.
func (v *Validator) compareImages(ctx context.Context, ending, master, source string) error {
	cmpMaster := master
	cmpSource := source
	if v.clipper != nil && diff.IsGeoTIFF(master) {
		tmpDir, err := os.MkdirTemp("", "resultcheck-clip")
		if err != nil {
			return skerr.Wrap(err)
		}
		// The clipped copies only live for this pair's comparison.
		defer util.RemoveAll(tmpDir)

		if cmpMaster, err = v.clipper.Clip(ctx, master, tmpDir); err != nil {
			return skerr.Wrap(err)
		}
		if cmpSource, err = v.clipper.Clip(ctx, source, tmpDir); err != nil {
			return skerr.Wrap(err)
		}
	}

	masterImg, err := diff.OpenImage(cmpMaster)
	if err != nil {
		return skerr.Wrapf(ErrImageLoad, "master image '%s': %s", cmpMaster, err)
	}
	sourceImg, err := diff.OpenImage(cmpSource)
	if err != nil {
		return skerr.Wrapf(ErrImageLoad, "source image '%s': %s", cmpSource, err)
	}

	failures := FailureSet{}
	masterShape := diff.ShapeOf(masterImg)
	sourceShape := diff.ShapeOf(sourceImg)
	switch diff.CompareShapes(masterShape, sourceShape, v.cfg.MaxPixelDimDiff) {
	case diff.ShapesMismatch:
		sklog.Errorf("Image dimensions differ (%s): %v vs %v", ending, sourceShape, masterShape)
		failures.Add(DimensionFailure)
	case diff.ShapesTolerable:
		sklog.Infof("Image dimensions differ within pixel tolerance %d (%s); skipping histogram comparison", v.cfg.MaxPixelDimDiff, ending)
	case diff.ShapesEqual:
		hist := diff.Histogram(diff.GetNRGBA(masterImg), diff.GetNRGBA(sourceImg))
		if breach, bad := hist.Check(diff.StartIndex(v.cfg.HistStartFraction), v.cfg.HistBinMax); bad {
			sklog.Errorf("Image difference over threshold (%s): %s: %s vs %s", ending, breach, source, master)
			if v.cfg.StrictHistogram {
				failures.Add(DifferenceFailure)
			}
		}
	}

	if !failures.Empty() {
		return skerr.Fmt("we have %d errors detected for files (%s): %s vs %s: %s", len(failures), ending, source, master, failures)
	}
	sklog.Infof("Success compare files (%s): %s vs %s", ending, source, master)
	return nil
}
