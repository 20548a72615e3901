package parreduce_test

import (
	"testing"

	"github.com/usnistgov/parhist/app/parreduce"
)

func checkCoverage(t *testing.T, n int, ranges []parreduce.Range) {
	assert, _ := makeAR(t)
	next := 0
	for i, r := range ranges {
		assert.Equal(next, r.Begin, "range %d %s has gap or overlap", i, r)
		assert.Greater(r.Len(), 0, "range %d %s is empty", i, r)
		next = r.End
	}
	assert.Equal(n, next)
}

func TestSplitCount(t *testing.T) {
	assert, _ := makeAR(t)

	p := parreduce.Partitioner{Count: 3}
	ranges := p.Split(10, 8)
	assert.Equal([]parreduce.Range{{0, 4}, {4, 7}, {7, 10}}, ranges)
	checkCoverage(t, 10, ranges)

	ranges = parreduce.Partitioner{Count: 1}.Split(1000, 8)
	assert.Equal([]parreduce.Range{{0, 1000}}, ranges)

	ranges = parreduce.Partitioner{Count: 50}.Split(7, 8)
	assert.Len(ranges, 7)
	checkCoverage(t, 7, ranges)
}

func TestSplitGrain(t *testing.T) {
	assert, _ := makeAR(t)

	ranges := parreduce.Partitioner{Grain: 4}.Split(10, 2)
	assert.Equal([]parreduce.Range{{0, 4}, {4, 8}, {8, 10}}, ranges)
	assert.Equal("[8,10)", ranges[2].String())

	ranges = parreduce.Partitioner{Grain: 100}.Split(10, 2)
	assert.Equal([]parreduce.Range{{0, 10}}, ranges)
}

func TestSplitAuto(t *testing.T) {
	assert, _ := makeAR(t)

	for _, n := range []int{1, 17, 4095, 4096, 4097, 100000, 1 << 22, 12345678} {
		for _, nWorkers := range []int{0, 1, 3, 8, 64} {
			ranges := parreduce.Partitioner{}.Split(n, nWorkers)
			checkCoverage(t, n, ranges)
			if n >= parreduce.MinGrain {
				assert.GreaterOrEqual(ranges[0].Len(), parreduce.MinGrain, "n=%d nWorkers=%d", n, nWorkers)
			} else {
				assert.Len(ranges, 1)
			}
		}
	}

	ranges := parreduce.Partitioner{}.Split(1<<24, 4)
	assert.Len(ranges, 4*parreduce.DefaultChunksPerWorker)
	ranges = parreduce.Partitioner{ChunksPerWorker: 1}.Split(1<<24, 4)
	assert.Len(ranges, 4)
}

func TestSplitEmpty(t *testing.T) {
	assert, _ := makeAR(t)
	assert.Nil(parreduce.Partitioner{}.Split(0, 4))
	assert.Nil(parreduce.Partitioner{Count: 3}.Split(0, 4))
	assert.Nil(parreduce.Partitioner{Grain: 3}.Split(0, 4))
}

func TestValidate(t *testing.T) {
	assert, _ := makeAR(t)
	assert.NoError(parreduce.Partitioner{}.Validate())
	assert.NoError(parreduce.Partitioner{Count: 4, Grain: 8}.Validate())

	e := parreduce.Partitioner{Count: -1, Grain: -2, ChunksPerWorker: -3}.Validate()
	assert.ErrorContains(e, "count")
	assert.ErrorContains(e, "grain")
	assert.ErrorContains(e, "chunksPerWorker")
}
