package nn

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/diff/fd"
)

func TestActivations_KnownValues(t *testing.T) {
	assert.InDelta(t, 0.5, Sigmoid{}.Apply(0), 1e-12)
	assert.InDelta(t, 1.0/(1.0+math.Exp(-2)), Sigmoid{}.Apply(2), 1e-12)

	assert.InDelta(t, 0.0, Tanh{}.Apply(0), 1e-12)
	assert.InDelta(t, math.Tanh(1), Tanh{}.Apply(1), 1e-12)

	assert.Equal(t, 0.0, ReLU{}.Apply(-2))
	assert.Equal(t, 3.0, ReLU{}.Apply(3))
	assert.Equal(t, 0.0, ReLU{}.Apply(0))

	assert.InDelta(t, math.Log(2), Softplus{}.Apply(0), 1e-12)

	assert.Equal(t, -1.5, Identity{}.Apply(-1.5))
}

// Activations must stay finite far outside the naive exp range.
func TestActivations_NumericallyStable(t *testing.T) {
	acts := []Activation{Sigmoid{}, Tanh{}, ReLU{}, Softplus{}, Identity{}}
	inputs := []float64{-100, -50, -5, 0, 5, 50, 100}

	for _, act := range acts {
		for _, z := range inputs {
			y := act.Apply(z)
			g := act.Grad(z)
			assert.False(t, math.IsNaN(y) || math.IsInf(y, 0),
				"%s.Apply(%v) = %v", act.Name(), z, y)
			assert.False(t, math.IsNaN(g) || math.IsInf(g, 0),
				"%s.Grad(%v) = %v", act.Name(), z, g)
		}
	}

	// Saturation limits.
	assert.InDelta(t, 0.0, Sigmoid{}.Apply(-50), 1e-12)
	assert.InDelta(t, 1.0, Sigmoid{}.Apply(50), 1e-12)
	assert.InDelta(t, 50.0, Softplus{}.Apply(50), 1e-9)
	assert.InDelta(t, 0.0, Softplus{}.Apply(-50), 1e-12)
}

// Grad must agree with a numerical derivative of Apply.
func TestActivations_GradMatchesNumericalDerivative(t *testing.T) {
	acts := []Activation{Sigmoid{}, Tanh{}, ReLU{}, Softplus{}, Identity{}}
	// Points away from the ReLU kink at zero.
	inputs := []float64{-2.1, -0.7, 0.4, 1.3, 3.0}

	settings := &fd.Settings{Formula: fd.Central}
	for _, act := range acts {
		for _, z := range inputs {
			want := fd.Derivative(act.Apply, z, settings)
			assert.InDelta(t, want, act.Grad(z), 1e-6,
				"%s.Grad(%v)", act.Name(), z)
		}
	}
}

func TestSigmoid_Range(t *testing.T) {
	// Stay below the saturation point where 1 + exp(-z) rounds to 1 in
	// float64 (z ≈ 36.7).
	for z := -30.0; z <= 30.0; z += 2.5 {
		y := Sigmoid{}.Apply(z)
		assert.Greater(t, y, 0.0)
		assert.Less(t, y, 1.0)
	}
}
