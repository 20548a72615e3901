package main

import (
	"errors"
	"io"
	"os"

	"github.com/urfave/cli/v2"
	"github.com/usnistgov/parhist/app/histo"
	"github.com/usnistgov/parhist/app/parreduce"
	"github.com/usnistgov/parhist/app/samplegen"
	"github.com/usnistgov/parhist/core/histogram"
	"github.com/usnistgov/parhist/core/workerpool"
	"go4.org/must"
)

// execCount computes the octet histogram of a file.
// It prints non-zero bins as JSON lines, or one JSON array up to the last non-zero bin if all is set.
func execCount(w io.Writer, filename string, pool workerpool.Config, all bool) error {
	samples, e := samplegen.ReadFile(filename)
	if e != nil {
		return e
	}

	p, e := workerpool.New(pool)
	if e != nil {
		return e
	}
	defer must.Close(p)

	h, e := histo.Parallel(p, samples, histogram.DefaultNBins, parreduce.Partitioner{})
	if e != nil {
		return e
	}

	if all {
		return printJSON(w, h.Trim())
	}
	for _, bin := range h.NonZero() {
		if e := printJSON(w, bin); e != nil {
			return e
		}
	}
	return nil
}

func init() {
	var pool workerpool.Config
	var all bool
	defineCommand(&cli.Command{
		Name:      "count",
		Usage:     "Compute histogram of octet values in a file.",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:        "workers",
				Usage:       "number of workers (0 means one per core)",
				Destination: &pool.NWorkers,
			},
			&cli.BoolFlag{
				Name:        "all",
				Usage:       "print every bin up to the last non-zero bin as a JSON array",
				Destination: &all,
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return errors.New("exactly one FILE argument is required")
			}
			return execCount(os.Stdout, c.Args().First(), pool, all)
		},
	})
}
