package optim_test

import (
	"testing"

	"github.com/ember-ml/ember/internal/optim"
	"github.com/ember-ml/ember/internal/tensor"
)

func floatEqual(a, b, epsilon float32) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff < epsilon
}

func TestSGDStep(t *testing.T) {
	sgd := optim.NewSGD(optim.SGDConfig{LR: 0.1})

	param, _ := tensor.FromSlice([]float32{1, 2, 3}, tensor.Shape{3})
	grad, _ := tensor.FromSlice([]float32{1, 1, 1}, tensor.Shape{3})

	sgd.Step([]*tensor.Tensor{param}, []*tensor.Tensor{grad})

	want := []float32{0.9, 1.9, 2.9}
	for i, w := range want {
		if !floatEqual(param.At(i), w, 1e-6) {
			t.Errorf("param[%d] = %f, want %f", i, param.At(i), w)
		}
	}
}

func TestSGDMomentum(t *testing.T) {
	sgd := optim.NewSGD(optim.SGDConfig{LR: 0.1, Momentum: 0.9})

	param, _ := tensor.FromSlice([]float32{1}, tensor.Shape{1})
	grad, _ := tensor.FromSlice([]float32{1}, tensor.Shape{1})

	// Step 1: v = 1,    param = 1 - 0.1*1    = 0.9
	// Step 2: v = 1.9,  param = 0.9 - 0.1*1.9 = 0.71
	sgd.Step([]*tensor.Tensor{param}, []*tensor.Tensor{grad})
	if !floatEqual(param.At(0), 0.9, 1e-6) {
		t.Fatalf("after step 1: param = %f, want 0.9", param.At(0))
	}

	sgd.Step([]*tensor.Tensor{param}, []*tensor.Tensor{grad})
	if !floatEqual(param.At(0), 0.71, 1e-6) {
		t.Fatalf("after step 2: param = %f, want 0.71", param.At(0))
	}
}

func TestSGDDefaultLR(t *testing.T) {
	sgd := optim.NewSGD(optim.SGDConfig{})
	if sgd.GetLR() != 0.01 {
		t.Errorf("GetLR() = %f, want default 0.01", sgd.GetLR())
	}

	sgd.SetLR(0.5)
	if sgd.GetLR() != 0.5 {
		t.Errorf("GetLR() after SetLR = %f, want 0.5", sgd.GetLR())
	}
}

func TestSGDNilGradSkipped(t *testing.T) {
	sgd := optim.NewSGD(optim.SGDConfig{LR: 0.1})

	param, _ := tensor.FromSlice([]float32{1}, tensor.Shape{1})
	sgd.Step([]*tensor.Tensor{param}, []*tensor.Tensor{nil})

	if param.At(0) != 1 {
		t.Errorf("param = %f, want unchanged 1", param.At(0))
	}
}

func TestSGDMismatchedLengthsPanic(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Step should panic on mismatched params/grads lengths")
		}
	}()

	sgd := optim.NewSGD(optim.SGDConfig{})
	param, _ := tensor.FromSlice([]float32{1}, tensor.Shape{1})
	sgd.Step([]*tensor.Tensor{param}, nil)
}
