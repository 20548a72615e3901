package workerpool

import (
	"fmt"

	"github.com/pkg/math"
	"github.com/usnistgov/parhist/core/hwinfo"
	"go.uber.org/multierr"
)

// Limits and defaults.
const (
	MaxWorkers = 1024

	DefaultQueuePerWorker = 4
)

// Config contains worker pool configuration.
type Config struct {
	// NWorkers is the number of worker goroutines.
	// Default is one per usable logical core, or one per physical core if PrimaryOnly is set.
	NWorkers int `json:"nWorkers,omitempty"`

	// PrimaryOnly restricts core assignment to the first logical core of each physical core.
	PrimaryOnly bool `json:"primaryOnly,omitempty"`

	// PinCores binds each worker to an OS thread whose CPU affinity is its assigned core.
	// Workers beyond the number of cores wrap around.
	PinCores bool `json:"pinCores,omitempty"`

	// QueueCapacity is the task queue capacity.
	// Default is DefaultQueuePerWorker*NWorkers.
	QueueCapacity int `json:"queueCapacity,omitempty"`

	// HwInfo provides CPU core information.
	// Default is hwinfo.Default.
	HwInfo hwinfo.Provider `json:"-"`
}

func (cfg *Config) applyDefaults() (lcores []int) {
	if cfg.HwInfo == nil {
		cfg.HwInfo = hwinfo.Default
	}

	cores := cfg.HwInfo.Cores()
	if cfg.PrimaryOnly {
		lcores = cores.ListPrimary()
	} else {
		lcores = cores.IDs()
	}

	if cfg.NWorkers == 0 {
		cfg.NWorkers = math.MaxInt(1, len(lcores))
	}
	if cfg.QueueCapacity == 0 {
		cfg.QueueCapacity = DefaultQueuePerWorker * math.MaxInt(1, cfg.NWorkers)
	}
	return lcores
}

func (cfg Config) validate() error {
	var errs []error
	if cfg.NWorkers < 0 || cfg.NWorkers > MaxWorkers {
		errs = append(errs, fmt.Errorf("nWorkers %d out of range [1:%d]", cfg.NWorkers, MaxWorkers))
	}
	if cfg.QueueCapacity < 0 {
		errs = append(errs, fmt.Errorf("queueCapacity %d is negative", cfg.QueueCapacity))
	}
	return multierr.Combine(errs...)
}
