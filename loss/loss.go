// Copyright 2026 Ember ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package loss

import (
	"github.com/ember-ml/ember/internal/loss"
)

// Loss computes a scalar training objective and its gradient.
type Loss = loss.Loss

// Config is the configuration mapping consumed by Build. It must contain
// a "name" key; all other keys are passed to the factory as parameters.
type Config = loss.Config

// Params holds the constructor parameters extracted from a Config.
type Params = loss.Params

// Factory constructs a Loss from configuration parameters.
type Factory = loss.Factory

// Registry maps loss names to factory functions.
type Registry = loss.Registry

// ConfigError describes why a loss could not be built from configuration.
type ConfigError = loss.ConfigError

// Errors returned when building losses from configuration.
var (
	ErrUnknownLoss   = loss.ErrUnknownLoss
	ErrDuplicateLoss = loss.ErrDuplicateLoss
	ErrMissingName   = loss.ErrMissingName
	ErrMissingParam  = loss.ErrMissingParam
	ErrBadParam      = loss.ErrBadParam
)

// Builtin losses

// MSE is mean squared error.
type MSE = loss.MSE

// NewMSE creates a new MSE loss function.
func NewMSE() *MSE {
	return loss.NewMSE()
}

// MAE is mean absolute error.
type MAE = loss.MAE

// NewMAE creates a new MAE loss function.
func NewMAE() *MAE {
	return loss.NewMAE()
}

// Huber is quadratic near zero and linear beyond Delta.
type Huber = loss.Huber

// NewHuber creates a Huber loss with the given transition point.
func NewHuber(delta float64) *Huber {
	return loss.NewHuber(delta)
}

// CrossEntropy is numerically stable softmax cross-entropy.
type CrossEntropy = loss.CrossEntropy

// NewCrossEntropy creates a new cross-entropy loss function.
func NewCrossEntropy() *CrossEntropy {
	return loss.NewCrossEntropy()
}

// Focal is alpha-balanced focal loss.
type Focal = loss.Focal

// NewFocal creates a focal loss.
//
// Example:
//
//	criterion := loss.NewFocal(0.25, 2)
func NewFocal(alpha, gamma float64) *Focal {
	return loss.NewFocal(alpha, gamma)
}

// Registration mechanism

// NewRegistry creates an empty registry, independent of the default one.
func NewRegistry() *Registry {
	return loss.NewRegistry()
}

// Register adds a factory to the default registry.
//
// Example:
//
//	loss.Register("my_loss", func(params loss.Params) (loss.Loss, error) {
//	    alpha, err := params.Float("alpha")
//	    if err != nil {
//	        return nil, err
//	    }
//	    return NewMyLoss(alpha), nil
//	})
func Register(name string, factory Factory) error {
	return loss.Register(name, factory)
}

// Build constructs a loss from the default registry.
//
// Example:
//
//	criterion, err := loss.Build(loss.Config{"name": "focal", "alpha": 0.25})
func Build(cfg Config) (Loss, error) {
	return loss.Build(cfg)
}

// Lookup returns a factory from the default registry.
func Lookup(name string) (Factory, bool) {
	return loss.Lookup(name)
}

// Supported returns the names registered in the default registry.
func Supported() []string {
	return loss.Supported()
}
