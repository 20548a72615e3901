// Package histo computes frequency histograms of bounded-range samples.
//
// Serial is the single-pass baseline. Parallel folds partitions of the samples into private
// per-worker histograms and merges them pairwise; its result equals Serial for any worker count
// and any partitioning.
//
// Neither pass checks sample values: a sample not less than nBins causes an index-out-of-range
// panic. Call Validate or ValidateParallel beforehand when the input is untrusted.
package histo

import (
	"github.com/usnistgov/parhist/app/parreduce"
	"github.com/usnistgov/parhist/core/histogram"
	"github.com/usnistgov/parhist/core/logging"
	"golang.org/x/exp/constraints"
)

var logger = logging.New("histo")

// Serial computes a histogram in one traversal of samples.
func Serial[S constraints.Unsigned](samples []S, nBins int) histogram.Histogram {
	h := histogram.New(nBins)
	count(h, samples)
	return h
}

// Parallel computes a histogram with a partitioned fork-join reduction on sched.
func Parallel[S constraints.Unsigned](sched parreduce.Scheduler, samples []S, nBins int, p parreduce.Partitioner) (histogram.Histogram, error) {
	return parreduce.Reduce(sched, len(samples), p,
		func() histogram.Histogram {
			return histogram.New(nBins)
		},
		func(r parreduce.Range, acc histogram.Histogram) histogram.Histogram {
			count(acc, samples[r.Begin:r.End])
			return acc
		},
		func(a, b histogram.Histogram) histogram.Histogram {
			a.Accumulate(b)
			return a
		},
	)
}

func count[S constraints.Unsigned](h histogram.Histogram, samples []S) {
	for _, v := range samples {
		h[v]++
	}
}
