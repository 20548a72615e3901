package histo

import (
	"errors"
	"fmt"

	"github.com/usnistgov/parhist/app/parreduce"
	"go.uber.org/zap"
	"golang.org/x/exp/constraints"
)

// Error conditions.
var (
	ErrNBins      = errors.New("invalid bin count")
	ErrOutOfRange = errors.New("sample out of range")
)

// RangeError reports a sample that is not less than the bin count.
type RangeError struct {
	Index int
	Value uint64
	NBins int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("sample[%d]=%d out of range [0,%d)", e.Index, e.Value, e.NBins)
}

// Unwrap returns ErrOutOfRange.
func (e *RangeError) Unwrap() error {
	return ErrOutOfRange
}

// ValidateNBins checks that nBins is positive and every bin is representable by S.
func ValidateNBins[S constraints.Unsigned](nBins int) error {
	if nBins <= 0 {
		return fmt.Errorf("%w: %d is not positive", ErrNBins, nBins)
	}
	if uint64(nBins-1) > uint64(^S(0)) {
		return fmt.Errorf("%w: %d exceeds %T range", ErrNBins, nBins, S(0))
	}
	return nil
}

// coversType determines whether every value of S is a valid bin.
func coversType[S constraints.Unsigned](nBins int) bool {
	return uint64(nBins-1) >= uint64(^S(0))
}

// Validate checks that every sample is less than nBins.
// It returns a *RangeError describing the first offending sample.
func Validate[S constraints.Unsigned](samples []S, nBins int) error {
	if e := ValidateNBins[S](nBins); e != nil {
		return e
	}
	if coversType[S](nBins) {
		return nil
	}
	if i := firstInvalid(samples, nBins, 0); i >= 0 {
		return newRangeError(samples, i, nBins)
	}
	return nil
}

// ValidateParallel is like Validate, but scans partitions of samples on sched.
// The reported sample is the same as Validate would report.
func ValidateParallel[S constraints.Unsigned](sched parreduce.Scheduler, samples []S, nBins int, p parreduce.Partitioner) error {
	if e := ValidateNBins[S](nBins); e != nil {
		return e
	}
	if coversType[S](nBins) {
		return nil
	}

	first, e := parreduce.Reduce(sched, len(samples), p,
		func() int { return -1 },
		func(r parreduce.Range, acc int) int {
			return minIndex(acc, firstInvalid(samples[r.Begin:r.End], nBins, r.Begin))
		},
		minIndex,
	)
	if e != nil {
		return e
	}
	if first >= 0 {
		e := newRangeError(samples, first, nBins)
		logger.Debug("validation failed", zap.Error(e))
		return e
	}
	return nil
}

func firstInvalid[S constraints.Unsigned](samples []S, nBins int, offset int) int {
	limit := S(nBins)
	for i, v := range samples {
		if v >= limit {
			return offset + i
		}
	}
	return -1
}

// minIndex returns the lesser of two indices, where -1 means absent.
func minIndex(a, b int) int {
	switch {
	case a < 0:
		return b
	case b < 0:
		return a
	case a < b:
		return a
	}
	return b
}

func newRangeError[S constraints.Unsigned](samples []S, i, nBins int) error {
	return &RangeError{Index: i, Value: uint64(samples[i]), NBins: nBins}
}
