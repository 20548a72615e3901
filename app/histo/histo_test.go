package histo_test

import (
	"math/rand"
	"testing"

	"github.com/usnistgov/parhist/app/histo"
	"github.com/usnistgov/parhist/app/parreduce"
	"github.com/usnistgov/parhist/core/histogram"
	"github.com/usnistgov/parhist/core/hwinfo"
	"github.com/usnistgov/parhist/core/testenv"
	"github.com/usnistgov/parhist/core/workerpool"
)

func randomSamples(n, nBins int) []uint8 {
	samples := make([]uint8, n)
	for i := range samples {
		samples[i] = uint8(rand.Intn(nBins))
	}
	return samples
}

func TestScenarios(t *testing.T) {
	assert, require := makeAR(t)

	allBins := make([]uint8, 256)
	for i := range allBins {
		allBins[i] = uint8(i)
	}
	allOnes := histogram.New(256)
	for b := range allOnes {
		allOnes[b] = 1
	}

	for _, tt := range []struct {
		name     string
		samples  []uint8
		nBins    int
		expected histogram.Histogram
	}{
		{"empty", nil, 4, histogram.Histogram{0, 0, 0, 0}},
		{"four", []uint8{0, 1, 1, 3}, 4, histogram.Histogram{1, 2, 0, 1}},
		{"each-once", allBins, 256, allOnes},
	} {
		serial := histo.Serial(tt.samples, tt.nBins)
		assert.Equal(tt.expected, serial, tt.name)

		parallel, e := histo.Parallel(pool, tt.samples, tt.nBins, parreduce.Partitioner{})
		require.NoError(e)
		assert.Equal(tt.expected, parallel, tt.name)
		assert.Empty(histo.Compare(serial, parallel), tt.name)
	}
}

func TestEquivalence(t *testing.T) {
	assert, require := makeAR(t)

	samples := randomSamples(300000, 256)
	serial := histo.Serial(samples, 256)
	assert.EqualValues(len(samples), serial.Sum())

	for nWorkers := 1; nWorkers <= 8; nWorkers++ {
		p, e := workerpool.New(workerpool.Config{NWorkers: nWorkers, HwInfo: hwinfo.Uniform(nWorkers, false)})
		require.NoError(e)

		for _, partitioner := range []parreduce.Partitioner{
			{},
			{Count: 1},
			{Count: nWorkers},
			{Count: 97},
			{Grain: 1000},
			{Grain: 4096, ChunksPerWorker: 1},
		} {
			parallel, e := histo.Parallel(p, samples, 256, partitioner)
			require.NoError(e)
			assert.True(histogram.Equal(serial, parallel), "nWorkers=%d %+v", nWorkers, partitioner)
			assert.EqualValues(len(samples), parallel.Sum())
		}
		p.Close()
	}

	inline, e := histo.Parallel(parreduce.Inline{}, samples, 256, parreduce.Partitioner{Grain: 10000})
	require.NoError(e)
	assert.Equal(serial, inline)
}

func TestSinglePartition(t *testing.T) {
	assert, require := makeAR(t)

	samples := randomSamples(50000, 16)
	parallel, e := histo.Parallel(pool, samples, 16, parreduce.Partitioner{Count: 1})
	require.NoError(e)
	assert.Equal(histo.Serial(samples, 16), parallel)
}

func TestOrderIndependence(t *testing.T) {
	assert, require := makeAR(t)

	samples := randomSamples(20000, 200)
	expected := histo.Serial(samples, 200)
	for i := 0; i < 5; i++ {
		shuffled := testenv.Shuffle(samples)
		assert.Equal(expected, histo.Serial(shuffled, 200))

		parallel, e := histo.Parallel(pool, shuffled, 200, parreduce.Partitioner{Grain: 333})
		require.NoError(e)
		assert.Equal(expected, parallel)
	}
}

func TestWideSamples(t *testing.T) {
	assert, require := makeAR(t)

	const nBins = 5000
	samples := make([]uint16, 100000)
	for i := range samples {
		samples[i] = uint16(rand.Intn(nBins))
	}
	serial := histo.Serial(samples, nBins)
	assert.Len(serial, nBins)
	assert.EqualValues(len(samples), serial.Sum())

	parallel, e := histo.Parallel(pool, samples, nBins, parreduce.Partitioner{})
	require.NoError(e)
	assert.Equal(serial, parallel)
}

func TestUnvalidatedPanics(t *testing.T) {
	assert, _ := makeAR(t)

	samples := []uint8{0, 1, 4}
	assert.Panics(func() { histo.Serial(samples, 4) })
	assert.Panics(func() { histo.Parallel(pool, samples, 4, parreduce.Partitioner{}) })
}

func TestClosedPool(t *testing.T) {
	assert, require := makeAR(t)

	p, e := workerpool.New(workerpool.Config{NWorkers: 2, HwInfo: hwinfo.Uniform(2, false)})
	require.NoError(e)
	p.Close()

	_, e = histo.Parallel(p, []uint8{1, 2, 3}, 4, parreduce.Partitioner{})
	assert.ErrorIs(e, workerpool.ErrClosed)

	h, e := histo.Parallel(p, []uint8{}, 4, parreduce.Partitioner{})
	assert.NoError(e)
	assert.Equal(histogram.New(4), h)
}
