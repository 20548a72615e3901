package benchmark

import (
	"fmt"

	"github.com/usnistgov/parhist/app/parreduce"
	"github.com/usnistgov/parhist/core/histogram"
	"go.uber.org/multierr"
)

// Limits and defaults.
const (
	MaxTrials     = 1000
	DefaultTrials = 1
)

// Config contains benchmark configuration.
type Config struct {
	// NBins is the bin count.
	// Default is histogram.DefaultNBins.
	NBins int `json:"nBins,omitempty"`

	// Trials is the number of serial and parallel runs.
	// Default is DefaultTrials.
	Trials int `json:"trials,omitempty"`

	// Partitioner determines partitioning of the parallel pass.
	Partitioner parreduce.Partitioner `json:"partitioner,omitempty"`

	// SkipValidation skips the sample range check before timed passes.
	SkipValidation bool `json:"skipValidation,omitempty"`
}

// ApplyDefaults fills in default values.
func (cfg *Config) ApplyDefaults() {
	if cfg.NBins == 0 {
		cfg.NBins = histogram.DefaultNBins
	}
	if cfg.Trials == 0 {
		cfg.Trials = DefaultTrials
	}
}

// Validate checks configuration values.
func (cfg Config) Validate() error {
	errs := []error{cfg.Partitioner.Validate()}
	if cfg.NBins < 0 {
		errs = append(errs, fmt.Errorf("nBins %d is negative", cfg.NBins))
	}
	if cfg.Trials < 0 || cfg.Trials > MaxTrials {
		errs = append(errs, fmt.Errorf("trials %d out of range [1:%d]", cfg.Trials, MaxTrials))
	}
	return multierr.Combine(errs...)
}
