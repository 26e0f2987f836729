// Package train orchestrates mini-batch gradient descent: epochs of forward
// pass, loss, gradient computation, and parameter updates, with divergence
// detection and optional held-out evaluation.
package train

import (
	"errors"
	"fmt"
	"log"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/sprout-ml/sprout/internal/data"
	"github.com/sprout-ml/sprout/internal/grad"
	"github.com/sprout-ml/sprout/internal/metrics"
	"github.com/sprout-ml/sprout/internal/nn"
	"github.com/sprout-ml/sprout/internal/optim"
)

// ErrDiverged reports that training produced a non-finite loss. Training
// halts immediately rather than letting NaN/Inf propagate through the
// parameters.
var ErrDiverged = errors.New("train: loss is not finite")

// Config captures the knobs of a training run.
type Config struct {
	// Epochs is the number of full passes over the training set. Required.
	Epochs int

	// LogEvery logs progress every n epochs; 0 defaults to 1, negative
	// disables logging.
	LogEvery int

	// EvalInputs/EvalTargets, when both set, are a held-out set evaluated
	// for accuracy after every epoch.
	EvalInputs  *mat.Dense
	EvalTargets *mat.Dense
}

// Trainer runs mini-batch training of a network against a loss, with
// gradients supplied by a Provider and updates applied by an Optimizer.
type Trainer struct {
	model    *nn.Sequential
	loss     nn.Loss
	provider grad.Provider
	opt      optim.Optimizer
}

// New creates a Trainer. A nil provider selects the built-in backprop
// implementation.
func New(model *nn.Sequential, loss nn.Loss, provider grad.Provider, opt optim.Optimizer) *Trainer {
	if provider == nil {
		provider = grad.Backprop{}
	}
	return &Trainer{model: model, loss: loss, provider: provider, opt: opt}
}

// Fit trains for cfg.Epochs epochs over the loader and returns the per-epoch
// history.
//
// Each batch runs forward pass, loss, gradient computation, and one
// optimizer step. The epoch loss is the mean batch loss. A non-finite batch
// loss halts training with an error wrapping ErrDiverged; the history up to
// that point is still returned.
func (t *Trainer) Fit(loader *data.Loader, cfg Config) (*metrics.History, error) {
	if cfg.Epochs <= 0 {
		return nil, fmt.Errorf("train: epochs must be positive, got %d", cfg.Epochs)
	}
	logEvery := cfg.LogEvery
	if logEvery == 0 {
		logEvery = 1
	}
	evaluate := cfg.EvalInputs != nil && cfg.EvalTargets != nil

	history := &metrics.History{}
	numBatches := loader.Batches()

	var smoothed metrics.EMA

	for epoch := 1; epoch <= cfg.Epochs; epoch++ {
		loader.Reset()

		epochLoss := 0.0
		for {
			batch, ok := loader.Next()
			if !ok {
				break
			}

			pred := t.model.Forward(batch.Inputs)
			loss := t.loss.Forward(pred, batch.Targets)
			if math.IsNaN(loss) || math.IsInf(loss, 0) {
				return history, fmt.Errorf("epoch %d: %w", epoch, ErrDiverged)
			}

			grads, err := t.provider.Gradients(t.model, t.loss, batch.Inputs, batch.Targets)
			if err != nil {
				return history, fmt.Errorf("epoch %d: %w", epoch, err)
			}
			if err := t.opt.Step(grads); err != nil {
				return history, fmt.Errorf("epoch %d: %w", epoch, err)
			}

			epochLoss += loss / float64(numBatches)
		}

		point := metrics.Point{Epoch: epoch, Loss: epochLoss}
		if evaluate {
			point.Accuracy = Evaluate(t.model, cfg.EvalInputs, cfg.EvalTargets)
		}
		history.Add(point)

		ema := smoothed.Add(point.Loss)
		if logEvery > 0 && epoch%logEvery == 0 {
			if evaluate {
				log.Printf("epoch=%d loss=%.4f loss_ema=%.4f accuracy=%.2f", epoch, point.Loss, ema, point.Accuracy)
			} else {
				log.Printf("epoch=%d loss=%.4f loss_ema=%.4f", epoch, point.Loss, ema)
			}
		}
	}

	return history, nil
}

// Evaluate runs a single forward pass over a full dataset and returns the
// classification accuracy percentage, rounded to two decimal places. It
// never mutates the model.
func Evaluate(model *nn.Sequential, inputs, targets *mat.Dense) float64 {
	return nn.Accuracy(model.Forward(inputs), targets)
}
