// Package benchmark compares the serial and parallel histogram passes.
package benchmark

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rickb777/plural"
	"github.com/usnistgov/parhist/app/histo"
	"github.com/usnistgov/parhist/app/parreduce"
	"github.com/usnistgov/parhist/core/histogram"
	"github.com/usnistgov/parhist/core/logging"
	"github.com/usnistgov/parhist/core/runningstat"
	"github.com/usnistgov/parhist/core/workerpool"
	"go.uber.org/zap"
	"golang.org/x/exp/constraints"
)

var logger = logging.New("benchmark")

const secondsPerNano = float64(time.Nanosecond) / float64(time.Second)

var mismatchPlural = plural.FromOne("%v mismatched bin", "%v mismatched bins")

// Result contains benchmark results.
// Durations are in seconds.
type Result struct {
	NSamples int `json:"nSamples"`
	NBins    int `json:"nBins"`
	NWorkers int `json:"nWorkers"`
	Trials   int `json:"trials"`

	Serial   runningstat.Snapshot `json:"serial"`
	Parallel runningstat.Snapshot `json:"parallel"`
	Speedup  float64              `json:"speedup"`

	// Histogram is the serial result of the last trial.
	Histogram histogram.Histogram `json:"histogram"`

	// Mismatches lists differing bins in the last trial whose results differed.
	Mismatches []histo.Mismatch `json:"mismatches,omitempty"`

	// MismatchTrials counts trials whose results differed.
	MismatchTrials int `json:"mismatchTrials,omitempty"`

	// LoadStats contains per-worker task counts during parallel passes, if available.
	LoadStats []workerpool.LoadStat `json:"loadStats,omitempty"`
}

// OK determines whether serial and parallel results agreed in every trial.
func (r Result) OK() bool {
	return r.MismatchTrials == 0
}

func (r Result) String() string {
	return fmt.Sprintf("Serial: %g, Parallel: %g, Speed-up: %g", r.Serial.Mean, r.Parallel.Mean, r.Speedup)
}

// MismatchNotice describes failed trials, or returns empty string if every trial agreed.
func (r Result) MismatchNotice() string {
	if r.OK() {
		return ""
	}
	return fmt.Sprintf("Parallel computation failed: %s in %d of %d trials",
		mismatchPlural.FormatInt(len(r.Mismatches)), r.MismatchTrials, r.Trials)
}

type loadStatReader interface {
	LoadStats() []workerpool.LoadStat
}

// Run validates samples, then times the serial and parallel passes over them.
//
// An invalid sample fails the run before any timed pass.
// A mismatch between serial and parallel results is logged as a warning and recorded in the
// Result; it is not an error.
func Run[S constraints.Unsigned](sched parreduce.Scheduler, samples []S, cfg Config) (r Result, e error) {
	cfg.ApplyDefaults()
	if e := cfg.Validate(); e != nil {
		return r, e
	}

	if cfg.SkipValidation {
		e = histo.ValidateNBins[S](cfg.NBins)
	} else {
		e = histo.ValidateParallel(sched, samples, cfg.NBins, cfg.Partitioner)
	}
	if e != nil {
		return r, fmt.Errorf("input validation: %w", e)
	}

	r = Result{
		NSamples: len(samples),
		NBins:    cfg.NBins,
		NWorkers: sched.NWorkers(),
		Trials:   cfg.Trials,
	}
	logger.Info("benchmark start",
		zap.String("nSamples", humanize.Comma(int64(r.NSamples))),
		zap.Int("nBins", r.NBins),
		zap.Int("nWorkers", r.NWorkers),
		zap.Int("trials", r.Trials),
	)

	lsr, hasLoadStats := sched.(loadStatReader)
	var loadStats0 []workerpool.LoadStat
	var serialStat, parallelStat runningstat.RunningStat
	for trial := 0; trial < cfg.Trials; trial++ {
		t0 := time.Now()
		serial := histo.Serial(samples, cfg.NBins)
		serialStat.Push(float64(time.Since(t0)))

		if hasLoadStats {
			loadStats0 = lsr.LoadStats()
		}
		t0 = time.Now()
		parallel, e := histo.Parallel(sched, samples, cfg.NBins, cfg.Partitioner)
		parallelStat.Push(float64(time.Since(t0)))
		if e != nil {
			return r, e
		}
		if hasLoadStats {
			r.LoadStats = workerpool.SubAll(lsr.LoadStats(), loadStats0)
		}

		r.Histogram = serial
		if mismatches := histo.Compare(serial, parallel); len(mismatches) > 0 {
			r.Mismatches = mismatches
			r.MismatchTrials++
			logger.Warn("parallel computation failed",
				zap.Int("trial", trial),
				zap.Int("mismatchedBins", len(mismatches)),
				zap.Stringer("first", mismatches[0]),
			)
		}
	}

	r.Serial = serialStat.Read().Scale(secondsPerNano)
	r.Parallel = parallelStat.Read().Scale(secondsPerNano)
	if r.Parallel.Mean > 0 {
		r.Speedup = r.Serial.Mean / r.Parallel.Mean
	}
	logger.Info("benchmark done",
		zap.Float64("serial", r.Serial.Mean),
		zap.Float64("parallel", r.Parallel.Mean),
		zap.Float64("speedup", r.Speedup),
		zap.Bool("ok", r.OK()),
	)
	return r, nil
}
