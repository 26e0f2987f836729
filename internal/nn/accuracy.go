package nn

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Accuracy compares the argmax of each prediction column against the argmax
// of the corresponding one-hot target column and returns the percentage of
// matches, rounded to two decimal places.
//
// Ties are broken deterministically: the first (lowest) index wins. A model
// that reproduces every one-hot target exactly scores 100.0.
func Accuracy(pred, target *mat.Dense) float64 {
	checkSameShape("Accuracy", pred, target)

	_, c := pred.Dims()
	correct := 0
	for j := 0; j < c; j++ {
		if colArgmax(pred, j) == colArgmax(target, j) {
			correct++
		}
	}

	pct := 100.0 * float64(correct) / float64(c)
	return math.Round(pct*100) / 100
}

// colArgmax returns the row index of the maximum value in column j,
// preferring the first index on ties.
func colArgmax(m *mat.Dense, j int) int {
	r, _ := m.Dims()
	best := 0
	bestVal := m.At(0, j)
	for i := 1; i < r; i++ {
		if v := m.At(i, j); v > bestVal {
			best = i
			bestVal = v
		}
	}
	return best
}
