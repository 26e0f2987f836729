package nn

import "gonum.org/v1/gonum/mat"

// Parameter is a trainable parameter in a neural network, typically a
// layer's weight matrix or bias vector.
//
// The underlying matrix is owned by its layer for the lifetime of the
// network and is mutated in place by optimizers during training.
type Parameter struct {
	name  string
	value *mat.Dense
}

// NewParameter creates a trainable parameter wrapping an initialized matrix.
func NewParameter(name string, value *mat.Dense) *Parameter {
	return &Parameter{name: name, value: value}
}

// Name returns the parameter name (e.g. "weight", "bias").
func (p *Parameter) Name() string {
	return p.name
}

// Value returns the parameter matrix. The matrix is shared, not copied:
// optimizers write updates through it.
func (p *Parameter) Value() *mat.Dense {
	return p.value
}

// Dims returns the parameter's matrix dimensions.
func (p *Parameter) Dims() (r, c int) {
	return p.value.Dims()
}
