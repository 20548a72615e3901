package workerpool

// LoadStat contains statistics of a worker.
type LoadStat struct {
	// Tasks is the number of tasks executed.
	Tasks uint64 `json:"tasks"`
}

// Sub computes the difference.
func (s LoadStat) Sub(prev LoadStat) (diff LoadStat) {
	diff.Tasks = s.Tasks - prev.Tasks
	return diff
}

// SubAll computes per-worker differences between two LoadStats readings.
func SubAll(curr, prev []LoadStat) (diff []LoadStat) {
	for i, s := range curr {
		if i < len(prev) {
			s = s.Sub(prev[i])
		}
		diff = append(diff, s)
	}
	return diff
}
