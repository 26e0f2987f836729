package nn

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// Dense implements a fully connected layer.
//
// It computes y = act(W·x + b) where:
//   - x is the input with shape (in_features, batch_size)
//   - W is the weight matrix with shape (out_features, in_features)
//   - b is the bias vector with shape (out_features, 1), broadcast over the
//     batch axis
//   - y has shape (out_features, batch_size)
//
// Weights are drawn from a normal distribution scaled by the Glorot bound
// sqrt(2 / (in + out)); biases start at zero. Parameter shapes are fixed for
// the lifetime of the layer.
type Dense struct {
	in, out int
	weight  *Parameter // (out, in)
	bias    *Parameter // (out, 1)
	act     Activation
}

// NewDense creates a dense layer using the shared math/rand source for
// weight initialization.
func NewDense(in, out int, act Activation) *Dense {
	return NewDenseRand(rand.New(rand.NewSource(rand.Int63())), in, out, act)
}

// NewDenseRand creates a dense layer drawing initial weights from rng.
// Passing a seeded source makes initialization reproducible.
func NewDenseRand(rng *rand.Rand, in, out int, act Activation) *Dense {
	if in <= 0 || out <= 0 {
		panic(fmt.Sprintf("nn: Dense dimensions must be positive, got (%d, %d)", in, out))
	}
	if act == nil {
		act = Identity{}
	}

	std := math.Sqrt(2.0 / float64(in+out))
	w := make([]float64, out*in)
	for i := range w {
		w[i] = rng.NormFloat64() * std
	}

	return &Dense{
		in:     in,
		out:    out,
		weight: NewParameter("weight", mat.NewDense(out, in, w)),
		bias:   NewParameter("bias", mat.NewDense(out, 1, nil)),
		act:    act,
	}
}

// Forward computes act(W·x + b) over the batch.
//
// Panics if the input row count does not equal the layer's in_features.
// Forward is a pure function of the current parameters; it never mutates
// layer state or the input.
func (d *Dense) Forward(x *mat.Dense) *mat.Dense {
	z := d.Affine(x)
	z.Apply(func(_, _ int, v float64) float64 { return d.act.Apply(v) }, z)
	return z
}

// Affine computes the pre-activation W·x + b. Gradient providers use it to
// recover the values the activation derivative is evaluated at.
func (d *Dense) Affine(x *mat.Dense) *mat.Dense {
	r, c := x.Dims()
	if r != d.in {
		panic(fmt.Sprintf("nn: Dense expects input with %d features, got %d", d.in, r))
	}

	z := mat.NewDense(d.out, c, nil)
	z.Mul(d.weight.Value(), x)
	z.Apply(func(i, _ int, v float64) float64 { return v + d.bias.Value().At(i, 0) }, z)
	return z
}

// Parameters returns [weight, bias].
func (d *Dense) Parameters() []*Parameter {
	return []*Parameter{d.weight, d.bias}
}

// Weight returns the weight parameter, shape (out_features, in_features).
func (d *Dense) Weight() *Parameter { return d.weight }

// Bias returns the bias parameter, shape (out_features, 1).
func (d *Dense) Bias() *Parameter { return d.bias }

// Activation returns the layer's elementwise nonlinearity.
func (d *Dense) Activation() Activation { return d.act }

// InFeatures returns the expected input feature count.
func (d *Dense) InFeatures() int { return d.in }

// OutFeatures returns the output feature count.
func (d *Dense) OutFeatures() int { return d.out }
