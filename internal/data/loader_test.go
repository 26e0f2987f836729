package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// newTestSet builds a dataset where sample j carries the value j in both
// inputs and targets, so batches can be traced back to source samples.
func newTestSet(n int) (*mat.Dense, *mat.Dense) {
	inputs := mat.NewDense(2, n, nil)
	targets := mat.NewDense(1, n, nil)
	for j := 0; j < n; j++ {
		inputs.Set(0, j, float64(j))
		inputs.Set(1, j, float64(j)*10)
		targets.Set(0, j, float64(j))
	}
	return inputs, targets
}

// drainEpoch collects the sample ids of one epoch in iteration order.
func drainEpoch(t *testing.T, l *Loader) ([]int, []int) {
	t.Helper()
	var order []int
	var sizes []int
	for {
		b, ok := l.Next()
		if !ok {
			break
		}
		sizes = append(sizes, b.Size)
		for k := 0; k < b.Size; k++ {
			order = append(order, int(b.Targets.At(0, k)))
		}
	}
	return order, sizes
}

func TestLoader_PartialFinalBatchIsKept(t *testing.T) {
	inputs, targets := newTestSet(10)
	l, err := NewLoader(inputs, targets, 4, false, 1)
	require.NoError(t, err)

	assert.Equal(t, 3, l.Batches())

	order, sizes := drainEpoch(t, l)
	assert.Equal(t, []int{4, 4, 2}, sizes)
	// Without shuffling, the epoch preserves dataset order.
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, order)
}

func TestLoader_EpochCoversEverySampleOnce(t *testing.T) {
	inputs, targets := newTestSet(10)
	l, err := NewLoader(inputs, targets, 4, true, 42)
	require.NoError(t, err)

	for epoch := 0; epoch < 3; epoch++ {
		order, _ := drainEpoch(t, l)
		require.Len(t, order, 10)

		seen := make(map[int]int)
		for _, id := range order {
			seen[id]++
		}
		for j := 0; j < 10; j++ {
			assert.Equal(t, 1, seen[j], "epoch %d, sample %d", epoch, j)
		}
		l.Reset()
	}
}

func TestLoader_ShuffleRedrawsPermutationEachEpoch(t *testing.T) {
	inputs, targets := newTestSet(32)
	l, err := NewLoader(inputs, targets, 8, true, 7)
	require.NoError(t, err)

	first, _ := drainEpoch(t, l)
	l.Reset()
	second, _ := drainEpoch(t, l)
	l.Reset()
	third, _ := drainEpoch(t, l)

	// Consecutive epochs drawing identical 32-element permutations would
	// require an astronomically unlikely rng coincidence.
	assert.False(t, equalOrder(first, second) && equalOrder(second, third),
		"shuffle produced the same order three epochs in a row")
}

func TestLoader_SameSeedSameOrder(t *testing.T) {
	inputs, targets := newTestSet(16)

	a, err := NewLoader(inputs, targets, 4, true, 99)
	require.NoError(t, err)
	b, err := NewLoader(inputs, targets, 4, true, 99)
	require.NoError(t, err)

	orderA, _ := drainEpoch(t, a)
	orderB, _ := drainEpoch(t, b)
	assert.Equal(t, orderA, orderB)
}

func TestLoader_BatchContentsMatchSource(t *testing.T) {
	inputs, targets := newTestSet(6)
	l, err := NewLoader(inputs, targets, 3, true, 5)
	require.NoError(t, err)

	for {
		b, ok := l.Next()
		if !ok {
			break
		}
		for k := 0; k < b.Size; k++ {
			id := int(b.Targets.At(0, k))
			assert.Equal(t, float64(id), b.Inputs.At(0, k))
			assert.Equal(t, float64(id)*10, b.Inputs.At(1, k))
		}
	}
}

func TestLoader_DoesNotMutateDataset(t *testing.T) {
	inputs, targets := newTestSet(10)
	inputsBefore := mat.DenseCopyOf(inputs)
	targetsBefore := mat.DenseCopyOf(targets)

	l, err := NewLoader(inputs, targets, 3, true, 2)
	require.NoError(t, err)

	b, ok := l.Next()
	require.True(t, ok)
	// Writing to a batch must not reach the dataset.
	b.Inputs.Set(0, 0, -999)
	b.Targets.Set(0, 0, -999)
	drainEpoch(t, l)

	assert.True(t, mat.Equal(inputsBefore, inputs))
	assert.True(t, mat.Equal(targetsBefore, targets))
}

func TestLoader_BatchLargerThanDataset(t *testing.T) {
	inputs, targets := newTestSet(3)
	l, err := NewLoader(inputs, targets, 10, false, 1)
	require.NoError(t, err)

	assert.Equal(t, 1, l.Batches())
	_, sizes := drainEpoch(t, l)
	assert.Equal(t, []int{3}, sizes)
}

func TestNewLoader_Validation(t *testing.T) {
	inputs, targets := newTestSet(4)

	_, err := NewLoader(inputs, targets, 0, false, 1)
	assert.Error(t, err)

	short := mat.NewDense(1, 3, nil)
	_, err = NewLoader(inputs, short, 2, false, 1)
	assert.Error(t, err)
}

func equalOrder(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
