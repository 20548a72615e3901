// Package testenv provides general test utilities.
package testenv

import (
	"math/rand"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MakeAR creates testify assert and require objects.
func MakeAR(t require.TestingT) (*assert.Assertions, *require.Assertions) {
	return assert.New(t), require.New(t)
}

// RandBytes fills []byte with non-crypto-safe random bytes.
func RandBytes(p []byte) {
	rand.New(rand.NewSource(rand.Int63())).Read(p)
}

// Shuffle returns a shuffled copy of a slice.
// The input slice is not modified.
func Shuffle[T any](input []T) []T {
	output := append([]T{}, input...)
	rand.Shuffle(len(output), func(i, j int) { output[i], output[j] = output[j], output[i] })
	return output
}
