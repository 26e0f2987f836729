package optim

import (
	"gonum.org/v1/gonum/mat"

	"github.com/sprout-ml/sprout/internal/nn"
)

// SGD implements stochastic gradient descent with optional momentum.
//
// Without momentum:
//
//	param -= lr * g
//
// With momentum:
//
//	velocity = momentum*velocity + g
//	param -= lr * velocity
type SGD struct {
	params     []*nn.Parameter
	lr         float64
	momentum   float64
	velocities map[*nn.Parameter][]float64
}

// SGDConfig holds SGD hyperparameters. A zero LR selects the default 0.01;
// zero momentum disables it.
type SGDConfig struct {
	LR       float64
	Momentum float64
}

// NewSGD creates an SGD optimizer over the given parameters.
func NewSGD(params []*nn.Parameter, config SGDConfig) *SGD {
	if config.LR == 0 {
		config.LR = 0.01
	}
	return &SGD{
		params:     params,
		lr:         config.LR,
		momentum:   config.Momentum,
		velocities: make(map[*nn.Parameter][]float64, len(params)),
	}
}

// Step applies one gradient descent update to every parameter with a
// gradient. Returns an error on gradient/parameter shape mismatch.
func (s *SGD) Step(grads map[*nn.Parameter]*mat.Dense) error {
	for _, p := range s.params {
		if _, err := gradFor(p, grads); err != nil {
			return err
		}
	}

	for _, p := range s.params {
		g, _ := gradFor(p, grads)
		if g == nil {
			continue
		}

		gd := g.RawMatrix().Data
		pd := p.Value().RawMatrix().Data

		if s.momentum == 0 {
			for i := range pd {
				pd[i] -= s.lr * gd[i]
			}
			continue
		}

		vel, ok := s.velocities[p]
		if !ok {
			vel = make([]float64, len(pd))
			s.velocities[p] = vel
		}
		for i := range pd {
			vel[i] = s.momentum*vel[i] + gd[i]
			pd[i] -= s.lr * vel[i]
		}
	}
	return nil
}

// LR returns the current learning rate.
func (s *SGD) LR() float64 { return s.lr }

// SetLR updates the learning rate.
func (s *SGD) SetLR(lr float64) { s.lr = lr }
