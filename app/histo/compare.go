package histo

import (
	"fmt"

	"github.com/usnistgov/parhist/core/histogram"
	"github.com/zyedidia/generic"
)

// Mismatch describes a bin whose counts differ between two histograms.
type Mismatch struct {
	Bin      int    `json:"bin"`
	Expected uint64 `json:"expected"`
	Actual   uint64 `json:"actual"`
}

func (m Mismatch) String() string {
	return fmt.Sprintf("bin %d: expected %d, actual %d", m.Bin, m.Expected, m.Actual)
}

// Compare lists every bin where actual differs from expected.
// A bin present in only one histogram is always listed, with zero as the missing count.
// An empty result means the histograms are equal.
func Compare(expected, actual histogram.Histogram) (list []Mismatch) {
	get := func(h histogram.Histogram, b int) uint64 {
		if b < len(h) {
			return h[b]
		}
		return 0
	}

	for b, last := 0, generic.Max(len(expected), len(actual)); b < last; b++ {
		m := Mismatch{Bin: b, Expected: get(expected, b), Actual: get(actual, b)}
		if m.Expected != m.Actual || b >= len(expected) || b >= len(actual) {
			list = append(list, m)
		}
	}
	return list
}
