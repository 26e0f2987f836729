// Package optim implements parameter update rules for training neural
// networks.
//
// This package provides:
//   - Optimizer interface: base interface for all optimizers
//   - SGD: stochastic gradient descent with optional momentum
//   - Adam: adaptive moment estimation
//
// Example usage:
//
//	optimizer := optim.NewAdam(model.Parameters(), optim.AdamConfig{LR: 3e-4})
//
//	for epoch := 0; epoch < epochs; epoch++ {
//	    for batch := range batches {
//	        grads, err := provider.Gradients(model, loss, batch.Inputs, batch.Targets)
//	        ...
//	        if err := optimizer.Step(grads); err != nil { ... }
//	    }
//	}
package optim

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/sprout-ml/sprout/internal/nn"
)

// Optimizer is the base interface for all update rules.
//
// Optimizers mutate parameter matrices in place based on the gradients
// produced for the current step.
type Optimizer interface {
	// Step applies one update to every parameter present in grads.
	// Parameters without an entry are skipped. Returns an error if a
	// gradient's shape does not match its parameter's shape.
	Step(grads map[*nn.Parameter]*mat.Dense) error

	// LR returns the current learning rate.
	LR() float64
}

// gradFor fetches the gradient for a parameter and validates its shape.
// A nil return with nil error means the parameter has no gradient this step.
func gradFor(p *nn.Parameter, grads map[*nn.Parameter]*mat.Dense) (*mat.Dense, error) {
	g, ok := grads[p]
	if !ok {
		return nil, nil
	}
	pr, pc := p.Dims()
	gr, gc := g.Dims()
	if pr != gr || pc != gc {
		return nil, fmt.Errorf("optim: gradient shape (%d, %d) does not match parameter %q shape (%d, %d)",
			gr, gc, p.Name(), pr, pc)
	}
	return g, nil
}
