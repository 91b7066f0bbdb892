package loss

import (
	"github.com/ember-ml/ember/internal/tensor"
)

// MAE computes Mean Absolute Error loss.
//
//	Loss = mean(|pred - target|)
//
// MAE is less sensitive to outliers than MSE. Its gradient is the sign of
// the residual; the subgradient at zero is taken as 0.
type MAE struct{}

// NewMAE creates a new MAE loss function.
func NewMAE() *MAE {
	return &MAE{}
}

// L1 is a proxy for NewMAE.
func L1() *MAE {
	return NewMAE()
}

// Name returns "mae".
func (m *MAE) Name() string { return "mae" }

// Forward computes mean(|pred - target|).
func (m *MAE) Forward(pred, target *tensor.Tensor) float32 {
	checkSameShape("MAE", pred, target)

	p := pred.Data()
	tg := target.Data()
	var sum float64
	for i := range p {
		d := float64(p[i] - tg[i])
		if d < 0 {
			d = -d
		}
		sum += d
	}
	return float32(sum / float64(len(p)))
}

// Backward computes sign(pred - target)/n.
func (m *MAE) Backward(pred, target *tensor.Tensor) *tensor.Tensor {
	checkSameShape("MAE", pred, target)

	p := pred.Data()
	tg := target.Data()
	grad := tensor.New(pred.Shape())
	g := grad.Data()
	n := float32(len(p))
	for i := range p {
		switch d := p[i] - tg[i]; {
		case d > 0:
			g[i] = 1 / n
		case d < 0:
			g[i] = -1 / n
		}
	}
	return grad
}
