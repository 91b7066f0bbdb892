package optim

import (
	"fmt"

	"github.com/ember-ml/ember/internal/tensor"
)

// SGD implements stochastic gradient descent with optional momentum.
//
// Update rule without momentum:
//
//	param = param - lr * gradient
//
// Update rule with momentum:
//
//	velocity = momentum * velocity + gradient
//	param = param - lr * velocity
//
// Momentum helps accelerate SGD in relevant directions and dampens
// oscillations.
type SGD struct {
	lr         float64
	momentum   float64
	velocities map[int]*tensor.Tensor
}

// SGDConfig holds configuration for the SGD optimizer.
type SGDConfig struct {
	LR       float64 // Learning rate (default: 0.01)
	Momentum float64 // Momentum factor (default: 0.0, range: [0, 1))
}

// NewSGD creates a new SGD optimizer.
func NewSGD(config SGDConfig) *SGD {
	if config.LR == 0 {
		config.LR = 0.01
	}
	return &SGD{
		lr:         config.LR,
		momentum:   config.Momentum,
		velocities: make(map[int]*tensor.Tensor),
	}
}

// Step applies one gradient update to all parameters in place.
//
// Velocity buffers are keyed by parameter index, so the same parameter
// ordering must be used on every call.
func (s *SGD) Step(params, grads []*tensor.Tensor) {
	if len(params) != len(grads) {
		panic(fmt.Sprintf("SGD: %d params but %d grads", len(params), len(grads)))
	}

	for i, param := range params {
		grad := grads[i]
		if grad == nil {
			continue
		}
		if !grad.Shape().Equal(param.Shape()) {
			panic(fmt.Sprintf("SGD: grad shape %v does not match param shape %v",
				grad.Shape(), param.Shape()))
		}

		p := param.Data()
		g := grad.Data()

		if s.momentum == 0 {
			for j := range p {
				p[j] -= float32(s.lr) * g[j]
			}
			continue
		}

		velocity, ok := s.velocities[i]
		if !ok {
			velocity = tensor.New(param.Shape())
			s.velocities[i] = velocity
		}
		v := velocity.Data()
		for j := range p {
			v[j] = float32(s.momentum)*v[j] + g[j]
			p[j] -= float32(s.lr) * v[j]
		}
	}
}

// GetLR returns the current learning rate.
func (s *SGD) GetLR() float64 {
	return s.lr
}

// SetLR updates the learning rate.
func (s *SGD) SetLR(lr float64) {
	s.lr = lr
}
