// Package grad computes loss gradients for the training loop.
//
// The training loop depends only on the Provider interface; Backprop is the
// bundled implementation, a manual reverse pass specialized to chains of
// dense layers. It is not a general autodiff engine: it supports exactly the
// network shapes the nn package can express (Dense chains with an optional
// trailing Softmax) and the MSE and CrossEntropy losses.
package grad

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/sprout-ml/sprout/internal/nn"
)

// Provider produces the gradient of a loss with respect to every trainable
// parameter of a model, evaluated at one batch. The returned map holds one
// gradient matrix per parameter, matching the parameter's shape exactly.
type Provider interface {
	Gradients(model *nn.Sequential, loss nn.Loss, inputs, targets *mat.Dense) (map[*nn.Parameter]*mat.Dense, error)
}

// Backprop is a reverse-mode gradient provider for Sequential networks built
// from Dense layers, optionally terminated by a Softmax.
//
// Supported combinations:
//   - MSE over a plain Dense chain (no Softmax).
//   - CrossEntropy over a Dense chain whose last layer uses the Identity
//     activation, followed by Softmax. Softmax and cross-entropy are fused,
//     giving the exact output delta (probs - targets) / batch_size.
//
// Any other chain or loss is rejected with an error rather than silently
// producing wrong gradients.
type Backprop struct{}

// Gradients runs a forward pass recording pre-activations, then propagates
// the loss delta back through the chain. Gradients are averaged consistently
// with the loss definitions, so Step updates match the scalar loss exactly.
func (Backprop) Gradients(model *nn.Sequential, loss nn.Loss, inputs, targets *mat.Dense) (map[*nn.Parameter]*mat.Dense, error) {
	layers, hasSoftmax, err := splitChain(model)
	if err != nil {
		return nil, err
	}

	// Forward pass, keeping each layer's input and pre-activation.
	acts := make([]*mat.Dense, len(layers)+1) // acts[l] is the input to layer l
	pres := make([]*mat.Dense, len(layers))
	acts[0] = inputs
	for l, layer := range layers {
		z := layer.Affine(acts[l])
		pres[l] = z

		a := mat.DenseCopyOf(z)
		act := layer.Activation()
		a.Apply(func(_, _ int, v float64) float64 { return act.Apply(v) }, a)
		acts[l+1] = a
	}

	_, batch := inputs.Dims()
	last := len(layers) - 1

	// Delta at the last layer's pre-activation.
	var delta *mat.Dense
	switch loss.(type) {
	case nn.CrossEntropy, *nn.CrossEntropy:
		if !hasSoftmax {
			return nil, fmt.Errorf("grad: CrossEntropy requires a trailing Softmax module")
		}
		if _, ok := layers[last].Activation().(nn.Identity); !ok {
			return nil, fmt.Errorf("grad: CrossEntropy with Softmax requires the Identity activation on the last layer, got %q",
				layers[last].Activation().Name())
		}
		// Fused softmax + cross-entropy: d(loss)/d(logits) = (p - y) / batch.
		probs := nn.Softmax{}.Forward(acts[last+1])
		delta = probs
		delta.Sub(probs, targets)
		delta.Scale(1.0/float64(batch), delta)

	case nn.MSE, *nn.MSE:
		if hasSoftmax {
			return nil, fmt.Errorf("grad: MSE through Softmax is not supported")
		}
		pred := acts[last+1]
		r, c := pred.Dims()
		// d(loss)/d(pred) = 2 (pred - y) / numElements, then through the
		// last activation.
		delta = mat.NewDense(r, c, nil)
		delta.Sub(pred, targets)
		delta.Scale(2.0/float64(r*c), delta)
		applyActGrad(delta, pres[last], layers[last].Activation())

	default:
		return nil, fmt.Errorf("grad: unsupported loss %q", loss.Name())
	}

	grads := make(map[*nn.Parameter]*mat.Dense, 2*len(layers))
	for l := last; l >= 0; l-- {
		layer := layers[l]

		// dW = delta · input^T, db = row sums of delta.
		gw := mat.NewDense(layer.OutFeatures(), layer.InFeatures(), nil)
		gw.Mul(delta, acts[l].T())
		grads[layer.Weight()] = gw

		gb := mat.NewDense(layer.OutFeatures(), 1, nil)
		dr, dc := delta.Dims()
		for i := 0; i < dr; i++ {
			sum := 0.0
			for j := 0; j < dc; j++ {
				sum += delta.At(i, j)
			}
			gb.Set(i, 0, sum)
		}
		grads[layer.Bias()] = gb

		if l > 0 {
			// delta_{l-1} = (W^T · delta) ⊙ act'(z_{l-1})
			prev := mat.NewDense(layer.InFeatures(), dc, nil)
			prev.Mul(layer.Weight().Value().T(), delta)
			applyActGrad(prev, pres[l-1], layers[l-1].Activation())
			delta = prev
		}
	}

	return grads, nil
}

// applyActGrad multiplies delta elementwise by act'(z).
func applyActGrad(delta, z *mat.Dense, act nn.Activation) {
	delta.Apply(func(i, j int, v float64) float64 {
		return v * act.Grad(z.At(i, j))
	}, delta)
}

// splitChain decomposes a Sequential into its Dense layers and an optional
// trailing Softmax, rejecting any other arrangement.
func splitChain(model *nn.Sequential) ([]*nn.Dense, bool, error) {
	modules := model.Modules()
	var layers []*nn.Dense
	hasSoftmax := false

	for i, m := range modules {
		switch v := m.(type) {
		case *nn.Dense:
			if hasSoftmax {
				return nil, false, fmt.Errorf("grad: Softmax must be the final module, found Dense after it")
			}
			layers = append(layers, v)
		case nn.Softmax, *nn.Softmax:
			if i != len(modules)-1 {
				return nil, false, fmt.Errorf("grad: Softmax must be the final module")
			}
			hasSoftmax = true
		default:
			return nil, false, fmt.Errorf("grad: unsupported module at position %d", i)
		}
	}

	if len(layers) == 0 {
		return nil, false, fmt.Errorf("grad: network has no Dense layers")
	}
	return layers, hasSoftmax, nil
}
