// Package optim implements optimization algorithms for training.
//
// This package provides:
//   - Optimizer interface: base interface for all optimizers
//   - SGD: stochastic gradient descent with optional momentum
//
// Example usage:
//
//	optimizer := optim.NewSGD(optim.SGDConfig{LR: 0.01, Momentum: 0.9})
//
//	for step := 0; step < steps; step++ {
//	    grad := criterion.Backward(model.Forward(batch), targets)
//	    optimizer.Step(model.Parameters(), model.Gradients(grad, batch))
//	}
package optim

import (
	"github.com/ember-ml/ember/internal/tensor"
)

// Optimizer is the base interface for all optimization algorithms.
//
// Optimizers update parameters in place from computed gradients. params
// and grads are parallel slices; grads[i] must have the same shape as
// params[i].
type Optimizer interface {
	// Step applies one gradient update to all parameters.
	Step(params, grads []*tensor.Tensor)

	// GetLR returns the current learning rate.
	GetLR() float64

	// SetLR updates the learning rate. Useful for scheduling.
	SetLR(lr float64)
}
