package parreduce

import (
	"fmt"

	binutils "github.com/jfoster/binary-utilities"
	"github.com/pkg/math"
	"github.com/zyedidia/generic"
	"go.uber.org/multierr"
)

// Defaults of automatic partitioning.
const (
	DefaultChunksPerWorker = 4
	MinGrain               = 4096
)

// Range is a half-open interval [Begin, End) of sequence indices.
type Range struct {
	Begin int `json:"begin"`
	End   int `json:"end"`
}

// Len returns the number of indices in the range.
func (r Range) Len() int {
	return r.End - r.Begin
}

func (r Range) String() string {
	return fmt.Sprintf("[%d,%d)", r.Begin, r.End)
}

// Partitioner decides how a sequence is split into partitions.
// Any choice covers the sequence exactly once with contiguous, non-overlapping ranges.
//
// If Count is positive, the sequence is split into Count near-equal partitions.
// Otherwise, if Grain is positive, each partition has Grain indices, except the last one.
// Otherwise, each worker receives about ChunksPerWorker partitions, whose length is rounded to a
// near power of two and is at least MinGrain.
type Partitioner struct {
	Count           int `json:"count,omitempty"`
	Grain           int `json:"grain,omitempty"`
	ChunksPerWorker int `json:"chunksPerWorker,omitempty"`
}

// Validate checks the partitioner settings.
func (p Partitioner) Validate() error {
	var errs []error
	if p.Count < 0 {
		errs = append(errs, fmt.Errorf("partition count %d is negative", p.Count))
	}
	if p.Grain < 0 {
		errs = append(errs, fmt.Errorf("partition grain %d is negative", p.Grain))
	}
	if p.ChunksPerWorker < 0 {
		errs = append(errs, fmt.Errorf("chunksPerWorker %d is negative", p.ChunksPerWorker))
	}
	return multierr.Combine(errs...)
}

// Split partitions [0, n) for nWorkers workers.
// Returns nil if n is zero.
func (p Partitioner) Split(n, nWorkers int) []Range {
	switch {
	case n <= 0:
		return nil
	case p.Count > 0:
		return splitCount(n, math.MinInt(p.Count, n))
	case p.Grain > 0:
		return splitGrain(n, p.Grain)
	default:
		return splitGrain(n, p.autoGrain(n, nWorkers))
	}
}

func (p Partitioner) autoGrain(n, nWorkers int) int {
	chunksPerWorker := p.ChunksPerWorker
	if chunksPerWorker == 0 {
		chunksPerWorker = DefaultChunksPerWorker
	}
	nChunks := math.MaxInt(1, nWorkers) * chunksPerWorker
	grain := int(binutils.NearPowerOfTwo(int64((n + nChunks - 1) / nChunks)))
	return generic.Clamp(grain, generic.Min(MinGrain, n), n)
}

func splitCount(n, count int) (list []Range) {
	list = make([]Range, 0, count)
	base, rem := n/count, n%count
	begin := 0
	for i := 0; i < count; i++ {
		end := begin + base
		if i < rem {
			end++
		}
		list = append(list, Range{begin, end})
		begin = end
	}
	return list
}

func splitGrain(n, grain int) (list []Range) {
	list = make([]Range, 0, (n+grain-1)/grain)
	for begin := 0; begin < n; begin += grain {
		list = append(list, Range{begin, generic.Min(begin+grain, n)})
	}
	return list
}
