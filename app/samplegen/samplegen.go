// Package samplegen produces sample sequences for histogram computation.
package samplegen

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"unsafe"

	"github.com/dustin/go-humanize"
	"github.com/usnistgov/parhist/app/histo"
	"github.com/usnistgov/parhist/app/parreduce"
	"github.com/usnistgov/parhist/core/histogram"
	"github.com/usnistgov/parhist/core/hwinfo"
	"github.com/usnistgov/parhist/core/logging"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/exp/constraints"
)

var logger = logging.New("samplegen")

// Limits and defaults.
const (
	DefaultCount    = 1000000000
	DefaultChunkLen = 1 << 20
)

// ErrInsufficientMemory indicates the sample sequence cannot be allocated.
var ErrInsufficientMemory = errors.New("insufficient memory for samples")

// Config contains generator configuration.
type Config struct {
	// Count is the number of samples.
	Count int `json:"count"`

	// NBins is the exclusive upper bound of sample values.
	// Default is histogram.DefaultNBins.
	NBins int `json:"nBins,omitempty"`

	// Seed determines the generated sequence.
	// Zero means a random seed.
	Seed uint64 `json:"seed,omitempty"`

	// ChunkLen is the number of samples generated from one PRNG stream.
	// The sequence depends on Seed and ChunkLen, but not on the number of workers.
	// Default is DefaultChunkLen.
	ChunkLen int `json:"chunkLen,omitempty"`

	// HwInfo provides available memory.
	// Default is hwinfo.Default.
	HwInfo hwinfo.Provider `json:"-"`
}

func (cfg *Config) applyDefaults() {
	if cfg.NBins == 0 {
		cfg.NBins = histogram.DefaultNBins
	}
	if cfg.Seed == 0 {
		cfg.Seed = rand.Uint64()
	}
	if cfg.ChunkLen == 0 {
		cfg.ChunkLen = DefaultChunkLen
	}
	if cfg.HwInfo == nil {
		cfg.HwInfo = hwinfo.Default
	}
}

func validate[S constraints.Unsigned](cfg Config) error {
	var errs []error
	if cfg.Count < 0 {
		errs = append(errs, fmt.Errorf("count %d is negative", cfg.Count))
	}
	if cfg.ChunkLen < 0 {
		errs = append(errs, fmt.Errorf("chunkLen %d is negative", cfg.ChunkLen))
	}
	errs = append(errs, histo.ValidateNBins[S](cfg.NBins))
	return multierr.Combine(errs...)
}

// Generate creates cfg.Count uniformly distributed samples in [0, cfg.NBins).
// Chunks of the sequence are filled in parallel on sched.
func Generate[S constraints.Unsigned](sched parreduce.Scheduler, cfg Config) (samples []S, e error) {
	cfg.applyDefaults()
	if e := validate[S](cfg); e != nil {
		return nil, e
	}

	if samples, e = allocate[S](cfg); e != nil {
		return nil, e
	}

	ranges := parreduce.Partitioner{Grain: cfg.ChunkLen}.Split(cfg.Count, sched.NWorkers())
	nBins := uint64(cfg.NBins)
	if e = sched.Do(len(ranges), func(worker, chunk int) {
		rng := rand.New(rand.NewPCG(cfg.Seed, uint64(chunk)))
		r := ranges[chunk]
		for i := range samples[r.Begin:r.End] {
			samples[r.Begin+i] = S(rng.Uint64N(nBins))
		}
	}); e != nil {
		return nil, e
	}

	logger.Info("samples generated",
		zap.String("count", humanize.Comma(int64(cfg.Count))),
		zap.Int("nBins", cfg.NBins),
		zap.Uint64("seed", cfg.Seed),
		zap.Int("chunks", len(ranges)),
	)
	return samples, nil
}

func allocate[S constraints.Unsigned](cfg Config) (samples []S, e error) {
	need := uint64(cfg.Count) * uint64(unsafe.Sizeof(S(0)))
	if mem, ok := cfg.HwInfo.Memory(); ok && need > mem.Available {
		return nil, fmt.Errorf("%w: need %s, available %s", ErrInsufficientMemory,
			humanize.IBytes(need), humanize.IBytes(mem.Available))
	}

	defer func() {
		if r := recover(); r != nil {
			samples, e = nil, fmt.Errorf("%w: %v", ErrInsufficientMemory, r)
		}
	}()
	return make([]S, cfg.Count), nil
}

// ReadFile reads a file as a sample sequence, one sample per octet.
// The bin count of such samples is histogram.DefaultNBins.
func ReadFile(filename string) (samples []uint8, e error) {
	if samples, e = os.ReadFile(filename); e != nil {
		return nil, e
	}
	logger.Info("samples read",
		zap.String("filename", filename),
		zap.String("size", humanize.IBytes(uint64(len(samples)))),
	)
	return samples, nil
}
