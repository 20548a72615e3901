// Package histogram defines a frequency histogram over a small, fixed range of bins.
package histogram

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// DefaultNBins is the bin count of octet-valued samples.
const DefaultNBins = 256

// Histogram is an ordered sequence of counters; index is bin ID.
type Histogram []uint64

// New creates the identity histogram: nBins counters all set to zero.
// Panics if nBins is negative.
func New(nBins int) Histogram {
	if nBins < 0 {
		panic(fmt.Errorf("negative nBins %d", nBins))
	}
	return make(Histogram, nBins)
}

// Sum returns the total count in all bins.
func (h Histogram) Sum() (sum uint64) {
	for _, c := range h {
		sum += c
	}
	return sum
}

// Clone returns a copy that does not share storage with h.
func (h Histogram) Clone() Histogram {
	return append(make(Histogram, 0, len(h)), h...)
}

// Accumulate adds every counter of o into h.
// h must be exclusively owned by the caller.
// Panics if bin counts differ.
func (h Histogram) Accumulate(o Histogram) {
	if len(h) != len(o) {
		panic(fmt.Errorf("cannot merge histograms of %d and %d bins", len(h), len(o)))
	}
	o = o[:len(h)]
	for b, c := range o {
		h[b] += c
	}
}

// Merge combines two histograms by pairwise addition into a new histogram.
// Neither argument is modified.
// Merge is associative and commutative, and New(n) is its identity element.
func Merge(a, b Histogram) Histogram {
	merged := a.Clone()
	merged.Accumulate(b)
	return merged
}

// Equal determines whether two histograms have the same bins with the same counts.
func Equal(a, b Histogram) bool {
	return slices.Equal(a, b)
}

// Trim returns a prefix of h that ends at the last non-zero counter.
func (h Histogram) Trim() Histogram {
	right := len(h)
	for right > 0 && h[right-1] == 0 {
		right--
	}
	return h[:right]
}

// Bin is a bin ID and its counter.
type Bin struct {
	Bin   int    `json:"bin"`
	Count uint64 `json:"count"`
}

// NonZero lists bins with non-zero counter in increasing bin order.
func (h Histogram) NonZero() (list []Bin) {
	for b, c := range h {
		if c != 0 {
			list = append(list, Bin{b, c})
		}
	}
	return list
}
