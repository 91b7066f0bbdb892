package loss

import (
	"fmt"
	"math"

	"github.com/ember-ml/ember/internal/tensor"
)

// CrossEntropy computes cross-entropy loss for multi-class classification.
//
// This implementation uses the LogSoftmax + NLLLoss decomposition for
// numerical stability:
//
//	Loss = -log_probs[target]
//	where log_probs = LogSoftmax(logits)
//
// Gradient:
//
//	∂L/∂logits = Softmax(logits) - y_one_hot
//
// Key properties:
//   - Expects raw logits (unnormalized scores) as input
//   - Uses the log-sum-exp trick to prevent overflow for large logits
//   - Loss and gradient are averaged over the batch
type CrossEntropy struct{}

// NewCrossEntropy creates a new cross-entropy loss function.
func NewCrossEntropy() *CrossEntropy {
	return &CrossEntropy{}
}

// Name returns "cross_entropy".
func (c *CrossEntropy) Name() string { return "cross_entropy" }

// Forward computes mean negative log-likelihood over the batch.
//
// Parameters:
//   - pred: logits with shape [batch_size, num_classes]
//   - target: class indices with shape [batch_size]
func (c *CrossEntropy) Forward(pred, target *tensor.Tensor) float32 {
	batchSize, numClasses := classificationShapes("CrossEntropy", pred, target)

	logits := pred.Data()
	var total float64
	for b := 0; b < batchSize; b++ {
		row := logits[b*numClasses : (b+1)*numClasses]
		logProbs := logSoftmax(row)
		t := targetIndex("CrossEntropy", target, b, numClasses)
		total += -float64(logProbs[t])
	}
	return float32(total / float64(batchSize))
}

// Backward computes (softmax(logits) - one_hot) / batch_size.
func (c *CrossEntropy) Backward(pred, target *tensor.Tensor) *tensor.Tensor {
	batchSize, numClasses := classificationShapes("CrossEntropy", pred, target)

	logits := pred.Data()
	grad := tensor.New(pred.Shape())
	g := grad.Data()
	for b := 0; b < batchSize; b++ {
		row := logits[b*numClasses : (b+1)*numClasses]
		probs := softmax(row)
		t := targetIndex("CrossEntropy", target, b, numClasses)
		for i := 0; i < numClasses; i++ {
			d := probs[i]
			if i == t {
				d -= 1.0
			}
			g[b*numClasses+i] = d / float32(batchSize)
		}
	}
	return grad
}

// classificationShapes validates the [batch, classes] / [batch] pairing
// shared by the classification losses and returns both dimensions.
func classificationShapes(name string, pred, target *tensor.Tensor) (batchSize, numClasses int) {
	shape := pred.Shape()
	if len(shape) != 2 {
		panic(name + ": logits must be 2D [batch_size, num_classes], got " + shape.String())
	}
	batchSize = shape[0]
	numClasses = shape[1]
	if target.NumElements() != batchSize {
		panic(fmt.Sprintf("%s: targets must have shape [%d], got %v",
			name, batchSize, target.Shape()))
	}
	return batchSize, numClasses
}

// targetIndex reads the class index for sample b, panicking when it is out
// of range.
func targetIndex(name string, target *tensor.Tensor, b, numClasses int) int {
	t := int(target.At(b))
	if t < 0 || t >= numClasses {
		panic(fmt.Sprintf("%s: target index %d out of range [0, %d)", name, t, numClasses))
	}
	return t
}

// logSoftmax computes log(softmax(z)) in a numerically stable way.
//
//	LogSoftmax(z)[i] = z[i] - (max(z) + log(Σ exp(z - max(z))))
//
// Subtracting max(z) before exponentiating prevents overflow.
func logSoftmax(z []float32) []float32 {
	n := len(z)
	result := make([]float32, n)

	maxZ := z[0]
	for i := 1; i < n; i++ {
		if z[i] > maxZ {
			maxZ = z[i]
		}
	}

	var sumExp float64
	for i := 0; i < n; i++ {
		sumExp += math.Exp(float64(z[i] - maxZ))
	}
	logSumExp := float64(maxZ) + math.Log(sumExp)

	for i := 0; i < n; i++ {
		result[i] = float32(float64(z[i]) - logSumExp)
	}
	return result
}

// softmax computes softmax(z) = exp(LogSoftmax(z)).
func softmax(z []float32) []float32 {
	logProbs := logSoftmax(z)
	result := make([]float32, len(logProbs))
	for i, lp := range logProbs {
		result[i] = float32(math.Exp(float64(lp)))
	}
	return result
}
