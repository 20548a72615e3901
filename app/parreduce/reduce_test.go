package parreduce_test

import (
	"testing"

	"github.com/usnistgov/parhist/app/parreduce"
)

func sumReduce(sched parreduce.Scheduler, input []int, p parreduce.Partitioner) (int, error) {
	return parreduce.Reduce(sched, len(input), p,
		func() int { return 0 },
		func(r parreduce.Range, acc int) int {
			for _, v := range input[r.Begin:r.End] {
				acc += v
			}
			return acc
		},
		func(a, b int) int { return a + b },
	)
}

func TestReduceSum(t *testing.T) {
	assert, require := makeAR(t)

	input := make([]int, 100000)
	expected := 0
	for i := range input {
		input[i] = i % 977
		expected += input[i]
	}

	for _, p := range []parreduce.Partitioner{
		{},
		{Count: 1},
		{Count: 3},
		{Count: 1000},
		{Grain: 1},
		{Grain: 4093},
	} {
		sum, e := sumReduce(pool, input, p)
		require.NoError(e)
		assert.Equal(expected, sum, "%+v", p)

		sum, e = sumReduce(parreduce.Inline{}, input, p)
		require.NoError(e)
		assert.Equal(expected, sum, "%+v inline", p)
	}
}

func TestReduceEmpty(t *testing.T) {
	assert, require := makeAR(t)

	nIdentity := 0
	result, e := parreduce.Reduce(pool, 0, parreduce.Partitioner{},
		func() []int { nIdentity++; return []int{} },
		func(r parreduce.Range, acc []int) []int { t.Error("unexpected body"); return acc },
		func(a, b []int) []int { t.Error("unexpected join"); return a },
	)
	require.NoError(e)
	assert.Equal([]int{}, result)
	assert.Equal(1, nIdentity)
}

func TestReduceVisitsOnce(t *testing.T) {
	assert, require := makeAR(t)

	const n = 50000
	// Each accumulator records visited indices; the join concatenates.
	result, e := parreduce.Reduce(pool, n, parreduce.Partitioner{Grain: 777},
		func() []int { return nil },
		func(r parreduce.Range, acc []int) []int {
			for i := r.Begin; i < r.End; i++ {
				acc = append(acc, i)
			}
			return acc
		},
		func(a, b []int) []int { return append(a, b...) },
	)
	require.NoError(e)
	require.Len(result, n)

	seen := make([]bool, n)
	for _, i := range result {
		assert.False(seen[i], "index %d visited twice", i)
		seen[i] = true
	}
}

func TestCombine(t *testing.T) {
	assert, require := makeAR(t)

	for n := 1; n <= 17; n++ {
		partials := make([]int, n)
		for i := range partials {
			partials[i] = 1 << i
		}
		result, e := parreduce.Combine(pool, partials, func(a, b int) int {
			assert.Zero(a&b, "partial joined twice")
			return a | b
		})
		require.NoError(e)
		assert.Equal(1<<n-1, result)
	}

	assert.Panics(func() { parreduce.Combine(pool, []int{}, func(a, b int) int { return a + b }) })
}

type failScheduler struct{ parreduce.Inline }

func (failScheduler) Do(nTasks int, fn func(worker, task int)) error {
	return errClosed
}

var errClosed = &closedError{}

type closedError struct{}

func (*closedError) Error() string { return "closed" }

func TestSchedulerError(t *testing.T) {
	assert, _ := makeAR(t)

	_, e := sumReduce(failScheduler{}, []int{1, 2, 3}, parreduce.Partitioner{})
	assert.ErrorIs(e, errClosed)

	_, e = parreduce.Combine(failScheduler{}, []int{1, 2}, func(a, b int) int { return a + b })
	assert.ErrorIs(e, errClosed)
}
