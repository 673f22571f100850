// SPDX-License-Identifier: MIT

package train

import (
	"time"

	"github.com/katalvlaran/aquanet/optim"
)

// Learner is a model the Trainer can fit.
type Learner[X any] interface {
	// Predict returns the model output for x without side effects.
	Predict(x X) (float64, error)
	// Accumulate adds d((y-target)²)/dθ into every Param.Grad and returns
	// (y-target)².
	Accumulate(x X, target float64) (float64, error)
	// Params returns the trainable parameters. The slice must be stable.
	Params() []*optim.Param
}

// Example is one input with its target.
type Example[X any] struct {
	ID     int
	Input  X
	Target float64
}

// Recorder receives training measurements. metrics.Registry implements it.
type Recorder interface {
	ObserveEpoch(loss float64, d time.Duration)
	ObserveTest(loss float64)
	ObserveNonFinite()
}

// EpochStats is passed to OnEpoch hooks.
type EpochStats struct {
	Epoch    int // 1-based
	Loss     float64
	Duration time.Duration
}

// Prediction pairs a model output with its target.
type Prediction struct {
	SampleID  int
	Predicted float64
	Actual    float64
}

// Report summarizes a Fit call.
//
// TestLoss is NaN when no test examples were given; Example then comes from
// the first training example.
type Report struct {
	RunID          string
	Optimizer      string
	Epochs         int // completed epochs
	TrainLoss      []float64
	FinalTrainLoss float64
	TestLoss       float64
	TestSamples    int
	Example        Prediction
	Duration       time.Duration
}
