package nn

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// defaultEps is the floor added inside logarithms to keep cross-entropy
// finite when a predicted probability reaches zero.
const defaultEps = 1e-12

// Loss is a scalar function of a (prediction, target) batch.
type Loss interface {
	// Forward computes the scalar loss. Panics if prediction and target
	// shapes disagree.
	Forward(pred, target *mat.Dense) float64

	Name() string
}

// MSE is the mean squared error loss mean((pred - target)²), averaged over
// every element of the batch. Used for regression.
type MSE struct{}

// Forward computes the mean squared error.
func (MSE) Forward(pred, target *mat.Dense) float64 {
	checkSameShape("MSE", pred, target)

	r, c := pred.Dims()
	sum := 0.0
	for j := 0; j < c; j++ {
		for i := 0; i < r; i++ {
			d := pred.At(i, j) - target.At(i, j)
			sum += d * d
		}
	}
	return sum / float64(r*c)
}

func (MSE) Name() string { return "mse" }

// CrossEntropy is the multi-class cross-entropy loss for one-hot targets:
//
//	-mean_over_samples( sum_over_features( target * log(pred + eps) ) )
//
// Predictions must form a probability distribution per column (as produced
// by Softmax). Eps guards log(0); the zero value selects 1e-12.
type CrossEntropy struct {
	Eps float64
}

// Forward computes the cross-entropy, averaged over the batch axis.
func (ce CrossEntropy) Forward(pred, target *mat.Dense) float64 {
	checkSameShape("CrossEntropy", pred, target)

	eps := ce.Eps
	if eps == 0 {
		eps = defaultEps
	}

	r, c := pred.Dims()
	sum := 0.0
	for j := 0; j < c; j++ {
		for i := 0; i < r; i++ {
			t := target.At(i, j)
			if t == 0 {
				continue
			}
			sum += t * math.Log(pred.At(i, j)+eps)
		}
	}
	return -sum / float64(c)
}

func (CrossEntropy) Name() string { return "cross_entropy" }

func checkSameShape(name string, pred, target *mat.Dense) {
	pr, pc := pred.Dims()
	tr, tc := target.Dims()
	if pr != tr || pc != tc {
		panic(fmt.Sprintf("nn: %s expects matching shapes, got (%d, %d) and (%d, %d)",
			name, pr, pc, tr, tc))
	}
}
