//go:build !linux

package workerpool

import "errors"

func pinThread(lcore int) error {
	return errors.New("CPU affinity is only supported on Linux")
}
