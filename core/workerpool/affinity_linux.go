package workerpool

import "golang.org/x/sys/unix"

// pinThread sets CPU affinity of the calling OS thread.
func pinThread(lcore int) error {
	var set unix.CPUSet
	set.Zero()
	set.Set(lcore)
	return unix.SchedSetaffinity(0, &set)
}
