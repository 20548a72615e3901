package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/urfave/cli/v2"
	"github.com/usnistgov/parhist/app/benchmark"
	"github.com/usnistgov/parhist/app/samplegen"
	"github.com/usnistgov/parhist/core/histogram"
	"github.com/usnistgov/parhist/core/workerpool"
	"github.com/usnistgov/parhist/core/yamlflag"
	"go4.org/must"
	"golang.org/x/exp/constraints"
)

type runConfig struct {
	Samples   samplegen.Config  `json:"samples"`
	Pool      workerpool.Config `json:"pool"`
	Benchmark benchmark.Config  `json:"benchmark"`
	JSON      bool              `json:"json,omitempty"`
}

func newRunConfig() *runConfig {
	return &runConfig{
		Samples: samplegen.Config{Count: samplegen.DefaultCount},
	}
}

func runFlags() []cli.Flag {
	return []cli.Flag{
		&cli.GenericFlag{
			Name:  "config",
			Usage: "configuration `document` in YAML or JSON, or @file.yaml to read from file",
			Value: yamlflag.New(newRunConfig()),
		},
		&cli.IntFlag{
			Name:  "samples",
			Usage: "number of generated samples",
			Value: samplegen.DefaultCount,
		},
		&cli.IntFlag{
			Name:  "bins",
			Usage: "number of histogram bins",
			Value: histogram.DefaultNBins,
		},
		&cli.IntFlag{
			Name:  "workers",
			Usage: "number of workers (0 means one per core)",
		},
		&cli.BoolFlag{
			Name:  "primary-only",
			Usage: "use only the first logical core of each physical core",
		},
		&cli.BoolFlag{
			Name:  "pin",
			Usage: "pin each worker to its assigned core",
		},
		&cli.IntFlag{
			Name:  "partitions",
			Usage: "force the number of partitions",
		},
		&cli.IntFlag{
			Name:  "grain",
			Usage: "force the number of samples per partition",
		},
		&cli.IntFlag{
			Name:  "trials",
			Usage: "number of serial and parallel runs",
			Value: benchmark.DefaultTrials,
		},
		&cli.Uint64Flag{
			Name:  "seed",
			Usage: "PRNG seed (0 means random)",
		},
		&cli.BoolFlag{
			Name:  "validate",
			Usage: "check sample range before timed passes",
			Value: true,
		},
		&cli.BoolFlag{
			Name:  "json",
			Usage: "print result as JSON",
		},
	}
}

// parseRunConfig reads the configuration document, then applies flags that are explicitly set.
func parseRunConfig(c *cli.Context) (cfg runConfig, e error) {
	if doc, ok := c.Generic("config").(*yamlflag.Value[runConfig]); ok {
		cfg = *doc.Ptr()
	} else {
		cfg = *newRunConfig()
	}

	if c.IsSet("samples") {
		cfg.Samples.Count = c.Int("samples")
	}
	if c.IsSet("bins") {
		cfg.Samples.NBins = c.Int("bins")
		cfg.Benchmark.NBins = c.Int("bins")
	}
	if c.IsSet("workers") {
		cfg.Pool.NWorkers = c.Int("workers")
	}
	if c.IsSet("primary-only") {
		cfg.Pool.PrimaryOnly = c.Bool("primary-only")
	}
	if c.IsSet("pin") {
		cfg.Pool.PinCores = c.Bool("pin")
	}
	if c.IsSet("partitions") {
		cfg.Benchmark.Partitioner.Count = c.Int("partitions")
	}
	if c.IsSet("grain") {
		cfg.Benchmark.Partitioner.Grain = c.Int("grain")
	}
	if c.IsSet("trials") {
		cfg.Benchmark.Trials = c.Int("trials")
	}
	if c.IsSet("seed") {
		cfg.Samples.Seed = c.Uint64("seed")
	}
	if c.IsSet("validate") {
		cfg.Benchmark.SkipValidation = !c.Bool("validate")
	}
	if c.IsSet("json") {
		cfg.JSON = c.Bool("json")
	}

	switch {
	case cfg.Samples.NBins == 0 && cfg.Benchmark.NBins == 0:
		cfg.Samples.NBins = histogram.DefaultNBins
		cfg.Benchmark.NBins = histogram.DefaultNBins
	case cfg.Samples.NBins == 0:
		cfg.Samples.NBins = cfg.Benchmark.NBins
	case cfg.Benchmark.NBins == 0:
		cfg.Benchmark.NBins = cfg.Samples.NBins
	case cfg.Samples.NBins != cfg.Benchmark.NBins:
		return cfg, fmt.Errorf("samples.nBins %d differs from benchmark.nBins %d", cfg.Samples.NBins, cfg.Benchmark.NBins)
	}
	return cfg, nil
}

// execRun generates samples with the narrowest sample type that fits the bin count,
// then runs the benchmark.
// The result is written to w. A mismatch notice is written to errW.
func execRun(w, errW io.Writer, cfg runConfig) error {
	pool, e := workerpool.New(cfg.Pool)
	if e != nil {
		return e
	}
	defer must.Close(pool)
	log.Printf("workers: %v", pool.Workers())

	var r benchmark.Result
	switch nBins := cfg.Samples.NBins; {
	case nBins <= 1<<8:
		r, e = runTyped[uint8](pool, cfg)
	case nBins <= 1<<16:
		r, e = runTyped[uint16](pool, cfg)
	default:
		r, e = runTyped[uint32](pool, cfg)
	}
	if e != nil {
		return e
	}

	return printResult(w, errW, r, cfg.JSON)
}

// printResult writes the benchmark result to w, and the mismatch notice, if any, to errW.
func printResult(w, errW io.Writer, r benchmark.Result, asJSON bool) (e error) {
	if notice := r.MismatchNotice(); notice != "" {
		fmt.Fprintln(errW, notice)
	}
	if asJSON {
		return printJSON(w, r)
	}
	_, e = fmt.Fprintln(w, r)
	return e
}

func runTyped[S constraints.Unsigned](pool *workerpool.Pool, cfg runConfig) (r benchmark.Result, e error) {
	samples, e := samplegen.Generate[S](pool, cfg.Samples)
	if e != nil {
		return r, e
	}
	return benchmark.Run(pool, samples, cfg.Benchmark)
}

func init() {
	defineCommand(&cli.Command{
		Name:  "run",
		Usage: "Generate random samples and compare serial and parallel histogram computation.",
		Flags: runFlags(),
		Action: func(c *cli.Context) error {
			cfg, e := parseRunConfig(c)
			if e != nil {
				return e
			}
			log.Printf("samples=%d bins=%d workers=%d", cfg.Samples.Count, cfg.Samples.NBins, cfg.Pool.NWorkers)
			return execRun(os.Stdout, os.Stderr, cfg)
		},
	})
}
