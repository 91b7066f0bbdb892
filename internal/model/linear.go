// Package model provides the small models used by the training harness.
package model

import (
	"fmt"
	"math/rand"

	"github.com/ember-ml/ember/internal/tensor"
)

// Linear is a fully connected model: y = Wx + b.
//
// It has no opinion about the training objective; gradients flow in from
// whatever loss the registry produced.
type Linear struct {
	inFeatures  int
	outFeatures int
	weight      *tensor.Tensor // [out_features, in_features]
	bias        *tensor.Tensor // [out_features]
}

// NewLinear constructs the model with small seeded random weights.
func NewLinear(inFeatures, outFeatures int, seed int64) *Linear {
	if inFeatures <= 0 {
		inFeatures = 1
	}
	if outFeatures <= 0 {
		outFeatures = 1
	}
	rng := rand.New(rand.NewSource(seed))
	weight := tensor.New(tensor.Shape{outFeatures, inFeatures})
	w := weight.Data()
	for i := range w {
		w[i] = (rng.Float32()*2 - 1) * 0.1
	}
	return &Linear{
		inFeatures:  inFeatures,
		outFeatures: outFeatures,
		weight:      weight,
		bias:        tensor.New(tensor.Shape{outFeatures}),
	}
}

// InFeatures returns the input dimensionality.
func (l *Linear) InFeatures() int {
	return l.inFeatures
}

// OutFeatures returns the output dimensionality.
func (l *Linear) OutFeatures() int {
	return l.outFeatures
}

// Parameters returns the trainable parameters in a stable order.
func (l *Linear) Parameters() []*tensor.Tensor {
	return []*tensor.Tensor{l.weight, l.bias}
}

// Forward computes predictions for a batch of inputs.
//
// inputs is [batch][in_features]; the result has shape
// [batch, out_features].
func (l *Linear) Forward(inputs [][]float32) *tensor.Tensor {
	preds := tensor.New(tensor.Shape{len(inputs), l.outFeatures})
	p := preds.Data()
	w := l.weight.Data()
	b := l.bias.Data()
	for i, x := range inputs {
		if len(x) != l.inFeatures {
			panic(fmt.Sprintf("Linear: sample %d has %d features, want %d",
				i, len(x), l.inFeatures))
		}
		for o := 0; o < l.outFeatures; o++ {
			sum := b[o]
			row := w[o*l.inFeatures : (o+1)*l.inFeatures]
			for j, v := range x {
				sum += row[j] * v
			}
			p[i*l.outFeatures+o] = sum
		}
	}
	return preds
}

// Gradients backpropagates the loss gradient with respect to the
// predictions into parameter gradients, in the same order as Parameters.
//
//	∂L/∂W_oj = Σ_b ∂L/∂pred_bo * x_bj
//	∂L/∂b_o  = Σ_b ∂L/∂pred_bo
func (l *Linear) Gradients(predGrad *tensor.Tensor, inputs [][]float32) []*tensor.Tensor {
	if predGrad.NumElements() != len(inputs)*l.outFeatures {
		panic(fmt.Sprintf("Linear: %d prediction gradients for %d inputs with %d outputs",
			predGrad.NumElements(), len(inputs), l.outFeatures))
	}

	wGrad := tensor.New(tensor.Shape{l.outFeatures, l.inFeatures})
	bGrad := tensor.New(tensor.Shape{l.outFeatures})
	wg := wGrad.Data()
	bg := bGrad.Data()
	g := predGrad.Data()
	for i, x := range inputs {
		for o := 0; o < l.outFeatures; o++ {
			gi := g[i*l.outFeatures+o]
			row := wg[o*l.inFeatures : (o+1)*l.inFeatures]
			for j, v := range x {
				row[j] += gi * v
			}
			bg[o] += gi
		}
	}
	return []*tensor.Tensor{wGrad, bGrad}
}

// Weights returns a copy of the current weight matrix, row-major.
// Intended for inspection in demos and tests.
func (l *Linear) Weights() []float32 {
	out := make([]float32, len(l.weight.Data()))
	copy(out, l.weight.Data())
	return out
}

// Bias returns a copy of the current bias vector.
func (l *Linear) Bias() []float32 {
	out := make([]float32, len(l.bias.Data()))
	copy(out, l.bias.Data())
	return out
}
