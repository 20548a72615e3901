// Package parreduce implements a fork-join parallel reduction over an index range.
//
// The range is split into partitions by a Partitioner. Each worker folds the partitions it
// executes into a private accumulator, starting from the identity. Accumulators are never
// shared between concurrent tasks; they are combined pairwise after all partitions are done.
// The result is correct for any partitioning as long as join is associative and commutative.
package parreduce

import (
	"github.com/usnistgov/parhist/core/logging"
	"go.uber.org/zap"
)

var logger = logging.New("parreduce")

// Scheduler executes batches of tasks.
// *workerpool.Pool implements this interface.
type Scheduler interface {
	// NWorkers returns the number of workers.
	NWorkers() int

	// Do executes fn for each task in [0, nTasks) and waits for completion.
	// A worker must execute one task at a time.
	Do(nTasks int, fn func(worker, task int)) error
}

// Inline is a Scheduler that executes every task on the calling goroutine.
type Inline struct{}

var _ Scheduler = Inline{}

// NWorkers implements Scheduler interface.
func (Inline) NWorkers() int {
	return 1
}

// Do implements Scheduler interface.
func (Inline) Do(nTasks int, fn func(worker, task int)) error {
	for i := 0; i < nTasks; i++ {
		fn(0, i)
	}
	return nil
}

const cacheLineSize = 64

// slot holds a per-worker accumulator.
// The padding keeps accumulators of different workers on separate cache lines.
type slot[T any] struct {
	acc  T
	used bool
	_    [cacheLineSize]byte
}

// Reduce computes a reduction over [0, n).
//
//  identity returns a fresh neutral accumulator.
//  body folds a partition into an exclusively owned accumulator, and returns the accumulator.
//  join combines two exclusively owned accumulators, and may return one of them modified.
//
// When n is zero, Reduce returns identity() without scheduling any task.
func Reduce[T any](sched Scheduler, n int, p Partitioner,
	identity func() T, body func(r Range, acc T) T, join func(a, b T) T) (result T, e error) {
	ranges := p.Split(n, sched.NWorkers())
	if len(ranges) == 0 {
		return identity(), nil
	}

	slots := make([]slot[T], sched.NWorkers())
	e = sched.Do(len(ranges), func(worker, task int) {
		s := &slots[worker]
		if !s.used {
			s.acc, s.used = identity(), true
		}
		s.acc = body(ranges[task], s.acc)
	})
	if e != nil {
		return result, e
	}

	partials := make([]T, 0, len(slots))
	for _, s := range slots {
		if s.used {
			partials = append(partials, s.acc)
		}
	}
	logger.Debug("partitions folded",
		zap.Int("n", n),
		zap.Int("partitions", len(ranges)),
		zap.Int("partials", len(partials)),
	)
	return Combine(sched, partials, join)
}

// Combine merges partial results pairwise in waves until one remains.
// In each wave, partials[i] and partials[len-1-i] are joined into partials[i], so no partial is
// touched by two tasks at once. The partials slice is overwritten.
// Panics if partials is empty.
func Combine[T any](sched Scheduler, partials []T, join func(a, b T) T) (result T, e error) {
	if len(partials) == 0 {
		panic("parreduce.Combine: no partials")
	}
	for n := len(partials); n > 1; n = (n + 1) / 2 {
		last := n - 1
		if e = sched.Do(n/2, func(worker, i int) {
			partials[i] = join(partials[i], partials[last-i])
		}); e != nil {
			return result, e
		}
	}
	return partials[0], nil
}
