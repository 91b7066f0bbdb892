package loss

import (
	"math"

	"github.com/ember-ml/ember/internal/tensor"
)

// DefaultHuberDelta is the transition point used when none is configured.
const DefaultHuberDelta = 1.0

// Huber computes Huber loss, quadratic for small residuals and linear for
// large ones.
//
//	|d| <= δ:  0.5 * d²
//	|d| >  δ:  δ * |d| - 0.5 * δ²
//
// Delta controls the bounds of the transition between MSE and absolute
// value behaviour.
type Huber struct {
	delta float64
}

// NewHuber creates a Huber loss with the given delta. Non-positive delta
// falls back to DefaultHuberDelta.
func NewHuber(delta float64) *Huber {
	if delta <= 0 {
		delta = DefaultHuberDelta
	}
	return &Huber{delta: delta}
}

// Name returns "huber".
func (h *Huber) Name() string { return "huber" }

// Delta returns the configured transition point.
func (h *Huber) Delta() float64 { return h.delta }

// Forward computes the mean Huber loss over all elements.
func (h *Huber) Forward(pred, target *tensor.Tensor) float32 {
	checkSameShape("Huber", pred, target)

	p := pred.Data()
	tg := target.Data()
	var sum float64
	for i := range p {
		d := math.Abs(float64(p[i] - tg[i]))
		if d <= h.delta {
			sum += 0.5 * d * d
		} else {
			sum += h.delta*d - 0.5*h.delta*h.delta
		}
	}
	return float32(sum / float64(len(p)))
}

// Backward computes the elementwise Huber gradient divided by n.
func (h *Huber) Backward(pred, target *tensor.Tensor) *tensor.Tensor {
	checkSameShape("Huber", pred, target)

	p := pred.Data()
	tg := target.Data()
	grad := tensor.New(pred.Shape())
	g := grad.Data()
	n := float64(len(p))
	for i := range p {
		d := float64(p[i] - tg[i])
		if d >= -h.delta && d <= h.delta {
			g[i] = float32(d / n)
		} else {
			g[i] = float32(math.Copysign(h.delta, d) / n)
		}
	}
	return grad
}
