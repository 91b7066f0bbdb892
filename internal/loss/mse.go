package loss

import (
	"github.com/ember-ml/ember/internal/tensor"
)

// MSE computes Mean Squared Error loss.
//
//	Loss = mean((pred - target)²)
//
// MSE is commonly used for regression tasks where the goal is to predict
// continuous values.
//
// Example:
//
//	mse := loss.NewMSE()
//	value := mse.Forward(predictions, targets)
//	grad := mse.Backward(predictions, targets)
type MSE struct{}

// NewMSE creates a new MSE loss function.
func NewMSE() *MSE {
	return &MSE{}
}

// Name returns "mse".
func (m *MSE) Name() string { return "mse" }

// Forward computes mean((pred - target)²).
func (m *MSE) Forward(pred, target *tensor.Tensor) float32 {
	checkSameShape("MSE", pred, target)

	p := pred.Data()
	tg := target.Data()
	var sum float64
	for i := range p {
		d := float64(p[i] - tg[i])
		sum += d * d
	}
	return float32(sum / float64(len(p)))
}

// Backward computes 2*(pred - target)/n.
func (m *MSE) Backward(pred, target *tensor.Tensor) *tensor.Tensor {
	checkSameShape("MSE", pred, target)

	p := pred.Data()
	tg := target.Data()
	grad := tensor.New(pred.Shape())
	g := grad.Data()
	n := float32(len(p))
	for i := range p {
		g[i] = 2 * (p[i] - tg[i]) / n
	}
	return grad
}
