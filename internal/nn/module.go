// Package nn implements building blocks for feed-forward neural networks:
//   - Module interface: base interface for all network components
//   - Parameter: trainable parameter matrices
//   - Dense: fully connected layer with an elementwise activation
//   - Softmax: column-wise probability normalization
//   - Loss functions: MSE, CrossEntropy
//   - Sequential: container chaining layers into a network
//
// Matrices follow the columns-as-samples convention: an input batch has
// shape (in_features, batch_size) and every layer maps it to
// (out_features, batch_size).
package nn

import "gonum.org/v1/gonum/mat"

// Module is the base interface for all neural network components.
//
// Modules are composed with Sequential to build networks:
//
//	model, err := nn.NewSequential(
//	    nn.NewDense(784, 128, nn.ReLU{}),
//	    nn.NewDense(128, 10, nn.Identity{}),
//	    nn.Softmax{},
//	)
type Module interface {
	// Forward computes the module output for a batch of column vectors.
	// Implementations do not mutate the input or their own parameters.
	Forward(x *mat.Dense) *mat.Dense

	// Parameters returns the trainable parameters of this module.
	// Modules without parameters (activations, Softmax) return nil.
	Parameters() []*Parameter
}
