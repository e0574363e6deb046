// Command resultcheck validates the output files of a processing pipeline
// run against a set of master files.
//
// Usage:
//
//	resultcheck [options] <fileEndings> [datasetFilter] [key=value ...]
//
// fileEndings is a required comma-separated list of filename suffixes to
// check, e.g. "out.tif,summary.csv". datasetFilter is an optional regular
// expression selecting which subfolders of the datasets/compare trees
// participate. Recognized key=value parameters are pixdiff=<n> (allowed
// difference in image row counts) and geotiffclip=<x1,y1,x2,y2> (clip
// GeoTIFFs to the given bounds before comparing).
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/agpipeline/resultcheck/go/fileutil"
	"github.com/agpipeline/resultcheck/go/sklog"
	"github.com/agpipeline/resultcheck/go/validator"
)

// flag names
const (
	datasetsFlagName = "datasets"
	compareFlagName  = "compare"
	lenientFlagName  = "lenient-histogram"
)

func main() {
	app := &cli.App{
		Name:      "resultcheck",
		Usage:     "compare generated dataset outputs against master files",
		ArgsUsage: "<fileEndings> [datasetFilter] [key=value ...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  datasetsFlagName,
				Value: validator.DefaultDatasetsDir,
				Usage: "root of the generated output tree",
			},
			&cli.StringFlag{
				Name:  compareFlagName,
				Value: validator.DefaultCompareDir,
				Usage: "root of the master/reference tree",
			},
			&cli.BoolFlag{
				Name:  lenientFlagName,
				Usage: "log histogram breaches instead of failing on them",
			},
		},
		Action: func(ctx *cli.Context) error {
			cfg, err := validator.ParseArgs(ctx.Args().Slice())
			if err != nil {
				return cli.Exit(err.Error(), 2)
			}
			cfg.DatasetsDir = ctx.String(datasetsFlagName)
			cfg.CompareDir = ctx.String(compareFlagName)
			if ctx.Bool(lenientFlagName) {
				cfg.StrictHistogram = false
			}
			if !fileutil.IsDir(cfg.CompareDir) {
				return cli.Exit(fmt.Sprintf("comparison directory %s does not exist", cfg.CompareDir), 2)
			}

			if err := validator.New(cfg).Run(ctx.Context); err != nil {
				// A decode failure gets its own immediate exit path.
				if errors.Is(err, validator.ErrImageLoad) {
					sklog.Error(err)
					return cli.Exit("", 1)
				}
				return cli.Exit(err.Error(), 2)
			}
			fmt.Println("Test has run successfully")
			return nil
		},
	}
	if err := app.Run(os.Args); err != nil {
		sklog.Fatal(err)
	}
}
