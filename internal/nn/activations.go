package nn

import "math"

// Activation is an elementwise scalar nonlinearity applied after a layer's
// affine transformation.
//
// Grad returns the derivative at the pre-activation value z; it is consumed
// by gradient providers during the backward pass.
//
// All implementations are finite (no NaN/Inf) for inputs well beyond ±50.
type Activation interface {
	Apply(z float64) float64
	Grad(z float64) float64
	Name() string
}

// Sigmoid is the logistic function 1 / (1 + exp(-z)), range (0, 1).
type Sigmoid struct{}

// Apply computes the sigmoid using the sign-split form so exp never
// overflows for large |z|.
func (Sigmoid) Apply(z float64) float64 {
	if z >= 0 {
		return 1.0 / (1.0 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1.0 + e)
}

// Grad computes σ(z)·(1-σ(z)).
func (s Sigmoid) Grad(z float64) float64 {
	y := s.Apply(z)
	return y * (1.0 - y)
}

func (Sigmoid) Name() string { return "sigmoid" }

// Tanh is the hyperbolic tangent, range (-1, 1).
type Tanh struct{}

func (Tanh) Apply(z float64) float64 { return math.Tanh(z) }

// Grad computes 1 - tanh(z)².
func (Tanh) Grad(z float64) float64 {
	y := math.Tanh(z)
	return 1.0 - y*y
}

func (Tanh) Name() string { return "tanh" }

// ReLU is the rectified linear unit max(0, z).
type ReLU struct{}

func (ReLU) Apply(z float64) float64 {
	if z > 0 {
		return z
	}
	return 0
}

// Grad is the step function; the derivative at z == 0 is taken as 0.
func (ReLU) Grad(z float64) float64 {
	if z > 0 {
		return 1
	}
	return 0
}

func (ReLU) Name() string { return "relu" }

// Softplus is the smooth ReLU approximation log(1 + exp(z)).
type Softplus struct{}

// Apply uses log1p with the exponent kept non-positive, so it is stable for
// arbitrarily large |z|: for z > 0, log(1+e^z) = z + log1p(e^-z).
func (Softplus) Apply(z float64) float64 {
	if z > 0 {
		return z + math.Log1p(math.Exp(-z))
	}
	return math.Log1p(math.Exp(z))
}

// Grad is the sigmoid of z.
func (Softplus) Grad(z float64) float64 { return Sigmoid{}.Apply(z) }

func (Softplus) Name() string { return "softplus" }

// Identity passes values through unchanged. It is the usual choice for the
// final layer of a classifier whose probabilities come from Softmax.
type Identity struct{}

func (Identity) Apply(z float64) float64 { return z }

func (Identity) Grad(float64) float64 { return 1 }

func (Identity) Name() string { return "identity" }
