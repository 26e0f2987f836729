// Package metrics records per-epoch training statistics.
package metrics

import "gonum.org/v1/gonum/stat"

// Point holds the metrics of one training epoch. Accuracy is a percentage in
// [0, 100]; it is only meaningful when an evaluation set was supplied.
type Point struct {
	Epoch    int
	Loss     float64
	Accuracy float64
}

// History accumulates one Point per epoch over a training run.
type History struct {
	points []Point
}

// Add appends an epoch's metrics.
func (h *History) Add(p Point) {
	h.points = append(h.points, p)
}

// Points returns the recorded epochs in order.
func (h *History) Points() []Point {
	return h.points
}

// Len returns the number of recorded epochs.
func (h *History) Len() int {
	return len(h.points)
}

// Last returns the most recent point, or a zero Point when empty.
func (h *History) Last() Point {
	if len(h.points) == 0 {
		return Point{}
	}
	return h.points[len(h.points)-1]
}

// MeanLoss returns the mean of the recorded epoch losses.
func (h *History) MeanLoss() float64 {
	if len(h.points) == 0 {
		return 0
	}
	losses := make([]float64, len(h.points))
	for i, p := range h.points {
		losses[i] = p.Loss
	}
	return stat.Mean(losses, nil)
}

// BestAccuracy returns the highest recorded accuracy and its epoch.
func (h *History) BestAccuracy() (epoch int, accuracy float64) {
	for _, p := range h.points {
		if p.Accuracy > accuracy {
			accuracy = p.Accuracy
			epoch = p.Epoch
		}
	}
	return epoch, accuracy
}

// emaK matches a ~10-sample smoothing window.
const emaK = 2.0 / 11.0

// EMA is an exponential moving average accumulator for smoothing noisy
// per-epoch values. The zero value is ready to use.
type EMA struct {
	value  float64
	primed bool
}

// Add folds val into the average and returns the smoothed value. The first
// call seeds the average with val itself.
func (e *EMA) Add(val float64) float64 {
	if !e.primed {
		e.value = val
		e.primed = true
		return val
	}
	e.value = val*emaK + e.value*(1-emaK)
	return e.value
}

// Value returns the current smoothed value.
func (e *EMA) Value() float64 {
	return e.value
}
