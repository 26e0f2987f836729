package nn

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Softmax normalizes each column of raw scores into a probability
// distribution: every element is non-negative and each column sums to 1.
//
// The largest score in a column is subtracted before exponentiation
// (log-sum-exp shift), so the layer stays finite for scores far outside the
// float64 exp range.
type Softmax struct{}

// Forward applies column-wise softmax.
func (Softmax) Forward(x *mat.Dense) *mat.Dense {
	r, c := x.Dims()
	out := mat.NewDense(r, c, nil)

	col := make([]float64, r)
	for j := 0; j < c; j++ {
		mat.Col(col, j, x)
		shift := floats.Max(col)

		sum := 0.0
		for i, v := range col {
			e := math.Exp(v - shift)
			col[i] = e
			sum += e
		}
		for i := range col {
			out.Set(i, j, col[i]/sum)
		}
	}
	return out
}

// Parameters returns nil; Softmax has no trainable parameters.
func (Softmax) Parameters() []*Parameter { return nil }
