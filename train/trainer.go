// SPDX-License-Identifier: MIT

package train

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/katalvlaran/aquanet/matrix"
	"github.com/katalvlaran/aquanet/optim"
)

// Trainer runs the per-sample training loop for one Learner.
type Trainer[X any] struct {
	learner Learner[X]
	cfg     config
}

// New returns a Trainer for l.
//
// Errors:
//   - ErrNilLearner; ErrInvalidEpochs for a non-positive epoch count.
func New[X any](l Learner[X], opts ...Option) (*Trainer[X], error) {
	if l == nil {
		return nil, ErrNilLearner
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.epochs <= 0 {
		return nil, fmt.Errorf("epochs=%d: %w", cfg.epochs, ErrInvalidEpochs)
	}
	if cfg.runID == "" {
		cfg.runID = uuid.NewString()
	}

	return &Trainer[X]{learner: l, cfg: cfg}, nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// nonFinite reports whether err stems from a NaN or Inf in a forward pass.
func nonFinite(err error) bool { return errors.Is(err, matrix.ErrNaNInf) }

// epoch runs one pass over train in order and returns the mean loss. bad
// counts samples skipped for non-finite values; their losses are excluded.
func (t *Trainer[X]) epoch(train []Example[X], order []int) (mean float64, bad int, err error) {
	params := t.learner.Params()
	sum := 0.0
	for _, i := range order {
		ex := train[i]
		optim.ZeroGrad(params)
		loss, err := t.learner.Accumulate(ex.Input, ex.Target)
		if err != nil {
			if nonFinite(err) {
				bad++
				continue
			}

			return 0, bad, fmt.Errorf("sample %d: %w", ex.ID, err)
		}
		if !finite(loss) {
			bad++
			continue
		}
		if name, ok := optim.GradsFinite(params); !ok {
			t.cfg.logger.Warn("non-finite gradient", "run", t.cfg.runID, "sample", ex.ID, "param", name)
			bad++
			continue
		}
		t.cfg.optimizer.Step(params)
		sum += loss
	}
	if bad > 0 {
		return math.NaN(), bad, nil
	}

	return sum / float64(len(order)), 0, nil
}

// Fit trains on train for the configured epochs, then evaluates on test.
//
// ctx is checked before every epoch; cancellation returns the partial
// Report and ctx.Err().
//
// Errors:
//   - ErrNoExamples for an empty training set.
//   - ErrNonFinite (after the offending epoch) with the partial Report.
//   - Learner errors other than non-finite values, wrapped with ErrTraining.
func (t *Trainer[X]) Fit(ctx context.Context, train, test []Example[X]) (Report, error) {
	start := time.Now()
	rep := Report{
		RunID:       t.cfg.runID,
		Optimizer:   t.cfg.optimizer.Name(),
		TrainLoss:   make([]float64, 0, t.cfg.epochs),
		TestLoss:    math.NaN(),
		TestSamples: len(test),
	}
	if len(train) == 0 {
		return rep, ErrNoExamples
	}
	log := t.cfg.logger.With("run", rep.RunID)
	log.Info("training started",
		"epochs", t.cfg.epochs, "train", len(train), "test", len(test),
		"optimizer", rep.Optimizer, "params", optim.Count(t.learner.Params()))

	order := make([]int, len(train))
	for i := range order {
		order[i] = i
	}
	for e := 1; e <= t.cfg.epochs; e++ {
		if err := ctx.Err(); err != nil {
			rep.Duration = time.Since(start)
			return rep, fmt.Errorf("before epoch %d: %w", e, err)
		}
		if t.cfg.shuffle != nil {
			t.cfg.shuffle.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
		}

		began := time.Now()
		loss, bad, err := t.epoch(train, order)
		if err != nil {
			rep.Duration = time.Since(start)
			return rep, fmt.Errorf("epoch %d: %w: %w", e, ErrTraining, err)
		}
		stats := EpochStats{Epoch: e, Loss: loss, Duration: time.Since(began)}
		rep.Epochs = e
		rep.TrainLoss = append(rep.TrainLoss, loss)
		rep.FinalTrainLoss = loss
		if t.cfg.recorder != nil {
			t.cfg.recorder.ObserveEpoch(loss, stats.Duration)
		}
		for _, fn := range t.cfg.onEpoch {
			fn(stats)
		}
		log.Debug("epoch finished", "epoch", e, "loss", loss, "duration", stats.Duration)

		if bad > 0 {
			if t.cfg.recorder != nil {
				t.cfg.recorder.ObserveNonFinite()
			}
			rep.Duration = time.Since(start)
			log.Error("non-finite values", "epoch", e, "samples", bad)

			return rep, fmt.Errorf("epoch %d: %d samples: %w", e, bad, ErrNonFinite)
		}
	}

	if len(test) > 0 {
		mse, err := Evaluate(t.learner, test)
		if err != nil {
			rep.Duration = time.Since(start)
			return rep, fmt.Errorf("test: %w", err)
		}
		rep.TestLoss = mse
		if t.cfg.recorder != nil {
			t.cfg.recorder.ObserveTest(mse)
		}
	}
	sample := train[0]
	if len(test) > 0 {
		sample = test[0]
	}
	y, err := t.learner.Predict(sample.Input)
	if err != nil {
		rep.Duration = time.Since(start)
		return rep, fmt.Errorf("example: %w: %w", ErrTraining, err)
	}
	rep.Example = Prediction{SampleID: sample.ID, Predicted: y, Actual: sample.Target}
	rep.Duration = time.Since(start)
	log.Info("training finished",
		"final_loss", rep.FinalTrainLoss, "test_loss", rep.TestLoss, "duration", rep.Duration)

	return rep, nil
}

// Evaluate returns the mean squared error of l over examples without
// touching gradients.
//
// Errors:
//   - ErrNoExamples; ErrNonFinite for a NaN or Inf prediction.
func Evaluate[X any](l Learner[X], examples []Example[X]) (float64, error) {
	if len(examples) == 0 {
		return 0, ErrNoExamples
	}
	sum := 0.0
	for _, ex := range examples {
		y, err := l.Predict(ex.Input)
		if err != nil {
			if nonFinite(err) {
				return 0, fmt.Errorf("sample %d: %w", ex.ID, ErrNonFinite)
			}

			return 0, fmt.Errorf("sample %d: %w: %w", ex.ID, ErrTraining, err)
		}
		if !finite(y) {
			return 0, fmt.Errorf("sample %d: %w", ex.ID, ErrNonFinite)
		}
		d := y - ex.Target
		sum += d * d
	}

	return sum / float64(len(examples)), nil
}
