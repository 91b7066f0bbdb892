package loss_test

import (
	"math"
	"testing"

	"github.com/ember-ml/ember/internal/loss"
	"github.com/ember-ml/ember/internal/tensor"
)

func TestCrossEntropyUniformLogits(t *testing.T) {
	ce := loss.NewCrossEntropy()

	// Uniform logits over 3 classes -> loss = ln(3) regardless of target.
	pred := mustTensor(t, []float32{0, 0, 0}, tensor.Shape{1, 3})
	target := mustTensor(t, []float32{1}, tensor.Shape{1})

	got := ce.Forward(pred, target)
	want := float32(math.Log(3))
	if !floatEqual(got, want, 1e-5) {
		t.Errorf("Forward() = %f, want %f", got, want)
	}
}

func TestCrossEntropyConfidentPrediction(t *testing.T) {
	ce := loss.NewCrossEntropy()

	// Strongly correct logit -> near-zero loss.
	pred := mustTensor(t, []float32{10, 0, 0}, tensor.Shape{1, 3})
	target := mustTensor(t, []float32{0}, tensor.Shape{1})

	if got := ce.Forward(pred, target); got > 0.001 {
		t.Errorf("Forward() = %f, want near 0", got)
	}
}

func TestCrossEntropyNumericalStability(t *testing.T) {
	ce := loss.NewCrossEntropy()

	// Logits beyond float32 exp range must not overflow to Inf/NaN.
	pred := mustTensor(t, []float32{1000, 0, -1000}, tensor.Shape{1, 3})
	target := mustTensor(t, []float32{0}, tensor.Shape{1})

	got := ce.Forward(pred, target)
	if math.IsNaN(float64(got)) || math.IsInf(float64(got), 0) {
		t.Fatalf("Forward() = %f, want finite value", got)
	}
	if !floatEqual(got, 0, 1e-5) {
		t.Errorf("Forward() = %f, want ~0 for dominant correct logit", got)
	}
}

func TestCrossEntropyBatchAverage(t *testing.T) {
	ce := loss.NewCrossEntropy()

	// Two identical samples must give the same loss as one.
	single := mustTensor(t, []float32{1, 2, 3}, tensor.Shape{1, 3})
	singleTarget := mustTensor(t, []float32{2}, tensor.Shape{1})
	double := mustTensor(t, []float32{1, 2, 3, 1, 2, 3}, tensor.Shape{2, 3})
	doubleTarget := mustTensor(t, []float32{2, 2}, tensor.Shape{2})

	a := ce.Forward(single, singleTarget)
	b := ce.Forward(double, doubleTarget)
	if !floatEqual(a, b, 1e-5) {
		t.Errorf("batch of 2 identical samples: loss %f != %f", b, a)
	}
}

func TestCrossEntropyBackward(t *testing.T) {
	ce := loss.NewCrossEntropy()

	pred := mustTensor(t, []float32{0, 0, 0}, tensor.Shape{1, 3})
	target := mustTensor(t, []float32{0}, tensor.Shape{1})

	// Uniform probs: grad = [1/3 - 1, 1/3, 1/3]
	grad := ce.Backward(pred, target)
	want := []float32{1.0/3.0 - 1, 1.0 / 3.0, 1.0 / 3.0}
	for i, w := range want {
		if !floatEqual(grad.At(i), w, 1e-5) {
			t.Errorf("grad[%d] = %f, want %f", i, grad.At(i), w)
		}
	}
}

func TestCrossEntropyBackwardRowsSumToZero(t *testing.T) {
	ce := loss.NewCrossEntropy()

	pred := mustTensor(t, []float32{0.5, -1, 2, 3, 0, -2}, tensor.Shape{2, 3})
	target := mustTensor(t, []float32{2, 0}, tensor.Shape{2})

	// Softmax minus one-hot sums to zero per sample.
	grad := ce.Backward(pred, target)
	for b := 0; b < 2; b++ {
		var sum float32
		for i := 0; i < 3; i++ {
			sum += grad.At(b*3 + i)
		}
		if !floatEqual(sum, 0, 1e-5) {
			t.Errorf("row %d gradient sum = %f, want 0", b, sum)
		}
	}
}

func TestCrossEntropyGradientCheck(t *testing.T) {
	ce := loss.NewCrossEntropy()
	checkGradient(t, ce,
		[]float32{0.5, -1.2, 2.1, 0.3, 1.7, -0.4}, tensor.Shape{2, 3},
		[]float32{2, 0})
}

func TestCrossEntropyBadShapesPanic(t *testing.T) {
	ce := loss.NewCrossEntropy()

	t.Run("1D logits", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("expected panic for 1D logits")
			}
		}()
		pred := mustTensor(t, []float32{1, 2, 3}, tensor.Shape{3})
		target := mustTensor(t, []float32{0}, tensor.Shape{1})
		ce.Forward(pred, target)
	})

	t.Run("target out of range", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("expected panic for out-of-range target")
			}
		}()
		pred := mustTensor(t, []float32{1, 2, 3}, tensor.Shape{1, 3})
		target := mustTensor(t, []float32{3}, tensor.Shape{1})
		ce.Forward(pred, target)
	})

	t.Run("target batch mismatch", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("expected panic for mismatched target batch")
			}
		}()
		pred := mustTensor(t, []float32{1, 2, 3}, tensor.Shape{1, 3})
		target := mustTensor(t, []float32{0, 1}, tensor.Shape{2})
		ce.Forward(pred, target)
	})
}

// checkGradient compares Backward against central finite differences of
// Forward. Tolerances are loose since Forward rounds through float32.
func checkGradient(t *testing.T, l loss.Loss, logits []float32, shape tensor.Shape, targets []float32) {
	t.Helper()

	target := mustTensor(t, targets, tensor.Shape{len(targets)})
	pred := mustTensor(t, logits, shape)
	analytic := l.Backward(pred, target)

	const eps = 1e-2
	for i := range logits {
		plus := make([]float32, len(logits))
		minus := make([]float32, len(logits))
		copy(plus, logits)
		copy(minus, logits)
		plus[i] += eps
		minus[i] -= eps

		predPlus := mustTensor(t, plus, shape)
		predMinus := mustTensor(t, minus, shape)
		numeric := (l.Forward(predPlus, target) - l.Forward(predMinus, target)) / (2 * eps)

		if !floatEqual(numeric, analytic.At(i), 1e-2) {
			t.Errorf("gradient[%d]: numeric %f vs analytic %f", i, numeric, analytic.At(i))
		}
	}
}
