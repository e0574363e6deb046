package validator

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/agpipeline/resultcheck/go/clip"
	"github.com/agpipeline/resultcheck/go/skerr"
	"github.com/agpipeline/resultcheck/go/sklog"
)

const (
	// DefaultDatasetsDir is where the generated output tree is expected.
	DefaultDatasetsDir = "./datasets"
	// DefaultCompareDir is where the master/reference tree is expected.
	DefaultCompareDir = "./compare"

	// defaultMaxSizeDiffFraction is the maximum allowed difference in size
	// of a generated file vs. its master.
	defaultMaxSizeDiffFraction = 0.10
	// defaultHistStartFraction determines the first inspected histogram
	// bucket; differences below it are expected noise. 5% of 256 buckets
	// means inspection starts at bucket 13.
	defaultHistStartFraction = 5.0 / 100.0
	// defaultHistBinMax is the number of pixels a single bucket may hold
	// before the pair is considered a failure.
	defaultHistBinMax = 100
)

// Config carries all knobs for one validation run. It is built once by
// argument parsing and treated as read-only afterwards.
type Config struct {
	// FileEndings are the filename suffixes to check, each evaluated
	// independently and in order.
	FileEndings []string
	// DatasetFilter selects which subfolders of the two trees participate.
	// Nil means no subfolder indirection.
	DatasetFilter *regexp.Regexp

	MaxSizeDiffFraction float64
	HistStartFraction   float64
	HistBinMax          int
	// MaxPixelDimDiff is the allowed difference in image row counts, set by
	// the pixdiff argument.
	MaxPixelDimDiff int
	// ClipBounds, when set, causes GeoTIFFs to be clipped to this region
	// before comparison. Set by the geotiffclip argument.
	ClipBounds *clip.Bounds
	// StrictHistogram controls whether histogram breaches fail the run or
	// are only logged.
	StrictHistogram bool

	DatasetsDir string
	CompareDir  string
}

// DefaultConfig returns a Config with all tolerances at their defaults.
func DefaultConfig() Config {
	return Config{
		MaxSizeDiffFraction: defaultMaxSizeDiffFraction,
		HistStartFraction:   defaultHistStartFraction,
		HistBinMax:          defaultHistBinMax,
		StrictHistogram:     true,
		DatasetsDir:         DefaultDatasetsDir,
		CompareDir:          DefaultCompareDir,
	}
}

// ParseArgs builds a Config from the positional CLI arguments: the required
// comma-separated file endings, an optional dataset filter, and any number
// of key=value parameters. Malformed key=value parameters are logged and
// ignored, never fatal.
func ParseArgs(args []string) (Config, error) {
	cfg := DefaultConfig()

	if len(args) < 1 {
		return cfg, skerr.Fmt("missing filename match strings parameter")
	}
	for _, ending := range strings.Split(args[0], ",") {
		if trimmed := strings.TrimSpace(ending); trimmed != "" {
			cfg.FileEndings = append(cfg.FileEndings, trimmed)
		}
	}
	if len(cfg.FileEndings) == 0 {
		return cfg, skerr.Fmt("missing filename match strings parameter")
	}

	// An empty filter string means no filter.
	if len(args) >= 2 && args[1] != "" {
		re, err := regexp.Compile(args[1])
		if err != nil {
			return cfg, skerr.Wrapf(err, "invalid dataset filter %q", args[1])
		}
		cfg.DatasetFilter = re
	}

	if len(args) > 2 {
		for _, arg := range args[2:] {
			parseOption(&cfg, arg)
		}
	}
	return cfg, nil
}

// parseOption applies one key=value argument to the Config. Unrecognized or
// malformed arguments are rejected with a warning.
func parseOption(cfg *Config, arg string) {
	key, value, ok := strings.Cut(arg, "=")
	if !ok {
		sklog.Warningf("Ignoring unrecognized argument %q", arg)
		return
	}
	switch key {
	case "pixdiff":
		// Fractional values are accepted and truncated.
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f < 0 {
			sklog.Warningf("Ignoring invalid pixdiff value %q", value)
			return
		}
		cfg.MaxPixelDimDiff = int(f)
	case "geotiffclip":
		bounds, err := clip.ParseBounds(value)
		if err != nil {
			sklog.Warningf("Ignoring invalid geotiffclip value %q: %s", value, err)
			return
		}
		cfg.ClipBounds = &bounds
	default:
		sklog.Warningf("Ignoring unrecognized parameter %q", key)
	}
}
