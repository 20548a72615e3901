package runningstat

import (
	"math"
)

// Snapshot contains a snapshot of RunningStat reading.
type Snapshot struct {
	Len      uint64   `json:"len"`
	Mean     float64  `json:"mean"`
	Variance float64  `json:"variance"`
	Stdev    float64  `json:"stdev"`
	M1       float64  `json:"m1"`
	M2       float64  `json:"m2"`
	Min      *float64 `json:"min,omitempty"`
	Max      *float64 `json:"max,omitempty"`
}

// Scale multiplies every number by a ratio, such as a time unit conversion.
func (s Snapshot) Scale(ratio float64) Snapshot {
	if s.Len == 0 {
		return s
	}
	min, max := *s.Min*ratio, *s.Max*ratio
	if ratio < 0 {
		min, max = max, min
	}
	return newSnapshot(s.Len, s.M1*ratio, s.M2*ratio*ratio, min, max)
}

func newSnapshot(n uint64, m1, m2, min, max float64) (s Snapshot) {
	s.Len = n
	s.M1, s.M2 = m1, m2
	if n == 0 {
		return s
	}
	s.Mean = m1
	s.Min, s.Max = &min, &max
	if n > 1 {
		s.Variance = m2 / float64(n-1)
		s.Stdev = math.Sqrt(s.Variance)
	}
	return s
}
