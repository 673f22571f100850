// SPDX-License-Identifier: MIT

package train

import (
	"io"
	"log/slog"
	"math/rand"

	"github.com/katalvlaran/aquanet/optim"
)

// Default training settings.
const (
	DefaultEpochs         = 200
	DefaultBaselineEpochs = 2000
)

// Option configures a Trainer.
type Option func(*config)

type config struct {
	epochs    int
	optimizer optim.Optimizer
	logger    *slog.Logger
	recorder  Recorder
	shuffle   *rand.Rand
	onEpoch   []func(EpochStats)
	runID     string
}

func defaultConfig() config {
	return config{
		epochs:    DefaultEpochs,
		optimizer: optim.NewAdam(optim.DefaultLearningRate),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithEpochs sets the number of passes over the training set.
func WithEpochs(n int) Option { return func(c *config) { c.epochs = n } }

// WithOptimizer replaces the default Adam(0.01).
func WithOptimizer(o optim.Optimizer) Option { return func(c *config) { c.optimizer = o } }

// WithLogger sets the structured logger. Default: discard.
func WithLogger(l *slog.Logger) Option { return func(c *config) { c.logger = l } }

// WithRecorder reports epochs and test loss to r.
func WithRecorder(r Recorder) Option { return func(c *config) { c.recorder = r } }

// WithShuffle visits training examples in an order drawn from rng each
// epoch. Default: declaration order.
func WithShuffle(rng *rand.Rand) Option { return func(c *config) { c.shuffle = rng } }

// OnEpoch registers a hook run after every epoch, in registration order.
func OnEpoch(fn func(EpochStats)) Option {
	return func(c *config) { c.onEpoch = append(c.onEpoch, fn) }
}

// WithRunID fixes the report's run identifier. Default: a random UUID.
func WithRunID(id string) Option { return func(c *config) { c.runID = id } }
