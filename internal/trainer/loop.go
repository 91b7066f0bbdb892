// Package trainer runs the demonstration training loop on synthetic data.
//
// The loop exists to exercise a registry-built loss end to end: the loss
// named in the configuration drives gradient descent on a linear model,
// with a regression or classification task synthesised to match the kind
// of loss requested.
package trainer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/ember-ml/ember/internal/loss"
	"github.com/ember-ml/ember/internal/metrics"
	"github.com/ember-ml/ember/internal/model"
	"github.com/ember-ml/ember/internal/optim"
	"github.com/ember-ml/ember/internal/tensor"
)

const numFeatures = 4
const numClasses = 2

// RunConfig captures the knobs required by the training loop.
type RunConfig struct {
	Loss      loss.Config
	Steps     int
	BatchSize int
	LR        float64
	Momentum  float64
	Seed      int64
	LogEvery  int
}

// Summary reports what a run did.
type Summary struct {
	RunID     string
	LossName  string
	Steps     int
	FirstLoss float64
	FinalLoss float64
}

// Run executes the training workload.
func Run(ctx context.Context, cfg RunConfig) (Summary, error) {
	if cfg.Steps <= 0 {
		return Summary{}, errors.New("trainer: steps must be > 0")
	}
	if cfg.BatchSize <= 0 {
		return Summary{}, errors.New("trainer: batch size must be > 0")
	}
	if cfg.LogEvery <= 0 {
		cfg.LogEvery = 50
	}

	criterion, err := loss.Build(cfg.Loss)
	if err != nil {
		return Summary{}, fmt.Errorf("trainer: build loss: %w", err)
	}

	task := taskFor(criterion, cfg.Seed)
	mdl := model.NewLinear(numFeatures, task.outFeatures, cfg.Seed)
	sgd := optim.NewSGD(optim.SGDConfig{LR: cfg.LR, Momentum: cfg.Momentum})

	runID := uuid.NewString()[:8]
	log.Printf("run=%s loss=%s steps=%d batch_size=%d lr=%g",
		runID, criterion.Name(), cfg.Steps, cfg.BatchSize, sgd.GetLR())

	summary := Summary{RunID: runID, LossName: criterion.Name(), Steps: cfg.Steps}
	var window metrics.Window

	for step := 1; step <= cfg.Steps; step++ {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		inputs, targets := task.nextBatch(cfg.BatchSize)

		start := time.Now()
		preds := mdl.Forward(inputs)
		value := float64(criterion.Forward(preds, targets))
		grad := criterion.Backward(preds, targets)
		sgd.Step(mdl.Parameters(), mdl.Gradients(grad, inputs))
		window.Record(cfg.BatchSize, time.Since(start), value)

		if step == 1 {
			summary.FirstLoss = value
		}
		summary.FinalLoss = value

		if step%cfg.LogEvery == 0 {
			snap := window.Snapshot()
			log.Printf("run=%s step=%d samples_per_sec=%.0f step_ms=%.3f loss=%.4f",
				runID, step, snap.SamplesPerSec, snap.AvgStepMS, snap.LastLoss)
		}
	}

	log.Printf("run=%s done first_loss=%.4f final_loss=%.4f",
		runID, summary.FirstLoss, summary.FinalLoss)
	return summary, nil
}

// task synthesises batches shaped for the requested loss.
type task struct {
	rng         *rand.Rand
	outFeatures int
	classify    bool
	trueWeights []float32
	trueBias    float32
}

// taskFor picks classification for the classification losses and
// regression for everything else, so every builtin loss has a runnable
// demo task.
func taskFor(criterion loss.Loss, seed int64) *task {
	t := &task{
		rng:         rand.New(rand.NewSource(seed)),
		outFeatures: 1,
		trueWeights: []float32{3, -2, 0.5, 1},
		trueBias:    -0.5,
	}
	switch criterion.(type) {
	case *loss.CrossEntropy, *loss.Focal:
		t.classify = true
		t.outFeatures = numClasses
	}
	return t
}

// nextBatch draws a fresh synthetic batch.
//
// Regression targets are the noisy linear response with shape [batch, 1];
// classification targets are the class indices with shape [batch].
func (t *task) nextBatch(batchSize int) ([][]float32, *tensor.Tensor) {
	inputs := make([][]float32, batchSize)
	values := make([]float32, batchSize)
	for i := range inputs {
		x := make([]float32, numFeatures)
		for j := range x {
			x[j] = t.rng.Float32()*2 - 1
		}
		inputs[i] = x

		y := t.trueBias
		for j, w := range t.trueWeights {
			y += w * x[j]
		}
		if t.classify {
			if y > 0 {
				values[i] = 1
			}
		} else {
			values[i] = y + float32(t.rng.NormFloat64())*0.01
		}
	}

	shape := tensor.Shape{batchSize, 1}
	if t.classify {
		shape = tensor.Shape{batchSize}
	}
	targets, err := tensor.FromSlice(values, shape)
	if err != nil {
		panic(err)
	}
	return inputs, targets
}
