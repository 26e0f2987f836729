// Package data partitions paired input/target matrices into shuffled
// mini-batches for training.
package data

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// Batch is one mini-batch of samples: inputs and targets stacked along the
// column (batch) axis. Batches are built fresh each iteration and hold
// copies, so consumers can never mutate the underlying dataset.
type Batch struct {
	Inputs  *mat.Dense // (in_features, Size)
	Targets *mat.Dense // (target_features, Size)
	Size    int
}

// Loader partitions a dataset into mini-batches, one epoch at a time.
//
// Columns are samples: inputs has shape (in_features, N) and targets
// (target_features, N) with matching N. Each epoch yields exactly
// ceil(N / batchSize) batches; the final batch is smaller when N is not a
// multiple of batchSize (partial batches are kept, never dropped), so every
// sample is seen exactly once per epoch.
//
// With shuffling enabled, the sample permutation is redrawn uniformly at
// random at the start of every epoch. The dataset matrices are read-only to
// the loader.
type Loader struct {
	inputs  *mat.Dense
	targets *mat.Dense
	n       int
	batch   int
	shuffle bool
	rng     *rand.Rand

	perm   []int
	cursor int
}

// NewLoader creates a loader over aligned dataset matrices.
//
// Returns an error if the sample counts disagree or batchSize is not
// positive. The seed drives the per-epoch shuffle permutations; runs with
// the same seed see the same batch order.
func NewLoader(inputs, targets *mat.Dense, batchSize int, shuffle bool, seed int64) (*Loader, error) {
	_, ni := inputs.Dims()
	_, nt := targets.Dims()
	if ni != nt {
		return nil, fmt.Errorf("data: inputs have %d samples but targets have %d", ni, nt)
	}
	if ni == 0 {
		return nil, fmt.Errorf("data: dataset is empty")
	}
	if batchSize <= 0 {
		return nil, fmt.Errorf("data: batch size must be positive, got %d", batchSize)
	}

	l := &Loader{
		inputs:  inputs,
		targets: targets,
		n:       ni,
		batch:   batchSize,
		shuffle: shuffle,
		rng:     rand.New(rand.NewSource(seed)),
		perm:    make([]int, ni),
	}
	l.Reset()
	return l, nil
}

// Batches returns the number of batches per epoch: ceil(N / batchSize).
func (l *Loader) Batches() int {
	return (l.n + l.batch - 1) / l.batch
}

// Len returns the total number of samples.
func (l *Loader) Len() int {
	return l.n
}

// Reset starts a new epoch, redrawing the sample permutation when shuffling
// is enabled.
func (l *Loader) Reset() {
	for i := range l.perm {
		l.perm[i] = i
	}
	if l.shuffle {
		l.rng.Shuffle(l.n, func(i, j int) {
			l.perm[i], l.perm[j] = l.perm[j], l.perm[i]
		})
	}
	l.cursor = 0
}

// Next returns the next batch of the current epoch, or ok == false when the
// epoch is exhausted. Call Reset to begin the next epoch.
func (l *Loader) Next() (Batch, bool) {
	if l.cursor >= l.n {
		return Batch{}, false
	}

	end := l.cursor + l.batch
	if end > l.n {
		end = l.n
	}
	size := end - l.cursor

	ri, _ := l.inputs.Dims()
	rt, _ := l.targets.Dims()
	in := mat.NewDense(ri, size, nil)
	tg := mat.NewDense(rt, size, nil)

	col := make([]float64, ri)
	tcol := make([]float64, rt)
	for k := 0; k < size; k++ {
		idx := l.perm[l.cursor+k]
		mat.Col(col, idx, l.inputs)
		in.SetCol(k, col)
		mat.Col(tcol, idx, l.targets)
		tg.SetCol(k, tcol)
	}

	l.cursor = end
	return Batch{Inputs: in, Targets: tg, Size: size}, true
}
