package loss

import (
	"math"

	"github.com/ember-ml/ember/internal/tensor"
)

// DefaultFocalGamma is the focusing exponent used when none is configured.
const DefaultFocalGamma = 2.0

// Focal computes alpha-balanced focal loss for multi-class classification.
//
//	Loss = -α * (1 - p_t)^γ * log(p_t)
//	where p_t = Softmax(logits)[target]
//
// The (1 - p_t)^γ term down-weights well-classified samples so training
// concentrates on hard ones; α rescales the loss overall. With γ = 0 focal
// loss reduces to cross-entropy scaled by α.
//
// Alpha has no default: it must be supplied explicitly, and building a
// focal loss from a configuration mapping without an "alpha" key fails.
//
// Reference: "Focal Loss for Dense Object Detection" (Lin et al., 2017).
type Focal struct {
	alpha float64
	gamma float64
}

// NewFocal creates a focal loss with the given balancing factor alpha.
// Negative gamma falls back to DefaultFocalGamma.
func NewFocal(alpha, gamma float64) *Focal {
	if gamma < 0 {
		gamma = DefaultFocalGamma
	}
	return &Focal{alpha: alpha, gamma: gamma}
}

// Name returns "focal".
func (f *Focal) Name() string { return "focal" }

// Alpha returns the configured balancing factor.
func (f *Focal) Alpha() float64 { return f.alpha }

// Gamma returns the configured focusing exponent.
func (f *Focal) Gamma() float64 { return f.gamma }

// Forward computes the mean focal loss over the batch.
//
// Parameters:
//   - pred: logits with shape [batch_size, num_classes]
//   - target: class indices with shape [batch_size]
func (f *Focal) Forward(pred, target *tensor.Tensor) float32 {
	batchSize, numClasses := classificationShapes("Focal", pred, target)

	logits := pred.Data()
	var total float64
	for b := 0; b < batchSize; b++ {
		row := logits[b*numClasses : (b+1)*numClasses]
		logProbs := logSoftmax(row)
		t := targetIndex("Focal", target, b, numClasses)

		logPt := float64(logProbs[t])
		pt := math.Exp(logPt)
		total += -f.alpha * math.Pow(1-pt, f.gamma) * logPt
	}
	return float32(total / float64(batchSize))
}

// Backward computes the focal loss gradient with respect to the logits.
//
// For sample gradient with p = Softmax(logits) and p_t = p[target]:
//
//	∂L/∂z_i = c * (p_i - 1{i==target})
//	c = α * ((1-p_t)^γ - γ * p_t * (1-p_t)^(γ-1) * log(p_t))
//
// which collapses to the cross-entropy gradient scaled by α when γ = 0.
// The gradient is averaged over the batch.
func (f *Focal) Backward(pred, target *tensor.Tensor) *tensor.Tensor {
	batchSize, numClasses := classificationShapes("Focal", pred, target)

	logits := pred.Data()
	grad := tensor.New(pred.Shape())
	g := grad.Data()
	for b := 0; b < batchSize; b++ {
		row := logits[b*numClasses : (b+1)*numClasses]
		logProbs := logSoftmax(row)
		t := targetIndex("Focal", target, b, numClasses)

		logPt := float64(logProbs[t])
		pt := math.Exp(logPt)

		c := f.alpha * math.Pow(1-pt, f.gamma)
		if f.gamma != 0 && pt < 1 {
			c -= f.alpha * f.gamma * pt * math.Pow(1-pt, f.gamma-1) * logPt
		}

		for i := 0; i < numClasses; i++ {
			p := math.Exp(float64(logProbs[i]))
			d := p
			if i == t {
				d -= 1.0
			}
			g[b*numClasses+i] = float32(c * d / float64(batchSize))
		}
	}
	return grad
}
