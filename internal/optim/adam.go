package optim

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/sprout-ml/sprout/internal/nn"
)

// Adam implements the Adam (Adaptive Moment Estimation) optimizer.
//
// Per parameter it maintains exponential moving averages of the gradient
// (first moment m) and the squared gradient (second moment v), with bias
// correction for their zero initialization:
//
//	t += 1
//	m = beta1*m + (1-beta1)*g
//	v = beta2*v + (1-beta2)*g²
//	m_hat = m / (1 - beta1^t)
//	v_hat = v / (1 - beta2^t)
//	param -= lr * m_hat / (sqrt(v_hat) + eps)
//
// Reference: "Adam: A Method for Stochastic Optimization" (Kingma & Ba, 2014).
type Adam struct {
	params []*nn.Parameter
	lr     float64
	beta1  float64
	beta2  float64
	eps    float64
	t      int
	m      map[*nn.Parameter][]float64
	v      map[*nn.Parameter][]float64
}

// AdamConfig holds Adam hyperparameters. Zero values select the defaults
// lr=0.001, beta1=0.9, beta2=0.999, eps=1e-8.
type AdamConfig struct {
	LR    float64
	Beta1 float64
	Beta2 float64
	Eps   float64
}

// NewAdam creates an Adam optimizer over the given parameters. Moment
// buffers are allocated up front, one zeroed pair per parameter.
func NewAdam(params []*nn.Parameter, config AdamConfig) *Adam {
	if config.LR == 0 {
		config.LR = 0.001
	}
	if config.Beta1 == 0 {
		config.Beta1 = 0.9
	}
	if config.Beta2 == 0 {
		config.Beta2 = 0.999
	}
	if config.Eps == 0 {
		config.Eps = 1e-8
	}

	a := &Adam{
		params: params,
		lr:     config.LR,
		beta1:  config.Beta1,
		beta2:  config.Beta2,
		eps:    config.Eps,
		m:      make(map[*nn.Parameter][]float64, len(params)),
		v:      make(map[*nn.Parameter][]float64, len(params)),
	}
	for _, p := range params {
		r, c := p.Dims()
		a.m[p] = make([]float64, r*c)
		a.v[p] = make([]float64, r*c)
	}
	return a
}

// Step performs one Adam update on every parameter with a gradient.
//
// The step counter advances once per call, shared across all parameters.
// Returns an error without touching any state if a gradient shape mismatch
// is detected.
func (a *Adam) Step(grads map[*nn.Parameter]*mat.Dense) error {
	for _, p := range a.params {
		if _, err := gradFor(p, grads); err != nil {
			return err
		}
	}

	a.t++
	bc1 := 1.0 - math.Pow(a.beta1, float64(a.t))
	bc2 := 1.0 - math.Pow(a.beta2, float64(a.t))

	for _, p := range a.params {
		g, _ := gradFor(p, grads)
		if g == nil {
			continue
		}

		gd := g.RawMatrix().Data
		pd := p.Value().RawMatrix().Data
		m := a.m[p]
		v := a.v[p]

		for i := range pd {
			gi := gd[i]
			m[i] = a.beta1*m[i] + (1.0-a.beta1)*gi
			v[i] = a.beta2*v[i] + (1.0-a.beta2)*gi*gi

			mHat := m[i] / bc1
			vHat := v[i] / bc2
			pd[i] -= a.lr * mHat / (math.Sqrt(vHat) + a.eps)
		}
	}
	return nil
}

// LR returns the current learning rate.
func (a *Adam) LR() float64 { return a.lr }

// SetLR updates the learning rate, for scheduling during training.
func (a *Adam) SetLR(lr float64) { a.lr = lr }

// Timestep returns the number of steps taken so far.
func (a *Adam) Timestep() int { return a.t }
