// Copyright 2026 Ember ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package loss provides training loss functions and their registry.
//
// # Overview
//
// This package contains:
//   - Regression losses: MSE, MAE, Huber
//   - Classification losses: CrossEntropy, Focal
//   - Registration mechanism: Register, Build, Lookup, Supported
//
// # Basic Usage
//
//	import (
//	    "github.com/ember-ml/ember/loss"
//	    "github.com/ember-ml/ember/tensor"
//	)
//
//	func main() {
//	    criterion := loss.NewHuber(1.0)
//	    value := criterion.Forward(predictions, targets)
//	    grad := criterion.Backward(predictions, targets)
//	}
//
// # Configuration-Driven Construction
//
// Losses can be built from a plain configuration mapping, typically
// decoded from YAML. The "name" key selects the registered loss and the
// remaining keys are constructor parameters:
//
//	criterion, err := loss.Build(loss.Config{
//	    "name":  "focal",
//	    "alpha": 0.25,
//	})
//
// A required parameter that is missing fails construction:
//
//	_, err := loss.Build(loss.Config{"name": "focal"})
//	// errors.Is(err, loss.ErrMissingParam) == true
//
// # Custom Losses
//
// Register a factory to make a custom loss buildable by name:
//
//	type tilted struct{ alpha float64 }
//
//	loss.Register("tilted", func(params loss.Params) (loss.Loss, error) {
//	    alpha, err := params.Float("alpha")
//	    if err != nil {
//	        return nil, err
//	    }
//	    return &tilted{alpha: alpha}, nil
//	})
package loss
