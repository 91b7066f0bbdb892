// Package loss implements training loss functions for the Ember ML library.
//
// This package provides:
//   - Loss interface: forward value and explicit gradient
//   - Regression losses: MSE, MAE, Huber
//   - Classification losses: CrossEntropy, Focal
//   - Registry: name-to-factory lookup for configuration-driven construction
//
// Every builtin loss is registered under a canonical name at init time, so
// callers can build one from a plain configuration mapping:
//
//	criterion, err := loss.Build(loss.Config{"name": "huber", "delta": 1.5})
//
// Design inspired by PyTorch's loss modules, adapted for explicit gradients.
package loss

import (
	"github.com/ember-ml/ember/internal/tensor"
)

// Loss computes a scalar training objective and its gradient with respect
// to the predictions.
//
// Forward and Backward panic on mismatched shapes; shape agreement is the
// caller's contract, not a runtime condition.
type Loss interface {
	// Name returns the canonical registry name of the loss.
	Name() string

	// Forward computes the scalar loss value for a batch.
	Forward(pred, target *tensor.Tensor) float32

	// Backward computes the gradient of the loss with respect to pred.
	// The returned tensor has the same shape as pred.
	Backward(pred, target *tensor.Tensor) *tensor.Tensor
}

// checkSameShape panics unless pred and target have identical shapes.
func checkSameShape(name string, pred, target *tensor.Tensor) {
	if !pred.Shape().Equal(target.Shape()) {
		panic(name + ": predictions and targets must have the same shape, got " +
			pred.Shape().String() + " and " + target.Shape().String())
	}
}
