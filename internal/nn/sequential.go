package nn

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Sequential chains modules into a network: each module's output becomes the
// next module's input.
//
// Construction validates the layer chain: every Dense layer's in_features
// must equal the previous Dense layer's out_features. Shape-preserving
// modules such as Softmax may appear anywhere in the chain.
type Sequential struct {
	modules []Module
}

// NewSequential creates a network from an ordered list of modules.
//
// Returns an error if consecutive Dense layers have mismatched feature
// dimensions; a mis-sized chain is never silently broadcast or truncated.
func NewSequential(modules ...Module) (*Sequential, error) {
	if len(modules) == 0 {
		return nil, fmt.Errorf("nn: Sequential requires at least one module")
	}

	prev := -1
	for i, m := range modules {
		d, ok := m.(*Dense)
		if !ok {
			continue
		}
		if prev >= 0 && d.InFeatures() != prev {
			return nil, fmt.Errorf("nn: layer %d expects %d input features, previous layer produces %d",
				i, d.InFeatures(), prev)
		}
		prev = d.OutFeatures()
	}

	return &Sequential{modules: modules}, nil
}

// Forward threads the input through every module in order and returns the
// final output. No internal state changes.
func (s *Sequential) Forward(x *mat.Dense) *mat.Dense {
	out := x
	for _, m := range s.modules {
		out = m.Forward(out)
	}
	return out
}

// Parameters returns all trainable parameters from all modules, in chain
// order.
func (s *Sequential) Parameters() []*Parameter {
	var params []*Parameter
	for _, m := range s.modules {
		params = append(params, m.Parameters()...)
	}
	return params
}

// Modules returns the module chain. Gradient providers walk it to mirror the
// forward pass.
func (s *Sequential) Modules() []Module {
	return s.modules
}

// Len returns the number of modules in the chain.
func (s *Sequential) Len() int {
	return len(s.modules)
}
