// SPDX-License-Identifier: MIT

package synth

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand"

	"github.com/katalvlaran/aquanet/dataset"
	"github.com/katalvlaran/aquanet/network"
)

var (
	// ErrNeedRandSource indicates Generate was called without WithRand or WithSeed.
	ErrNeedRandSource = errors.New("synth: random source required")

	// ErrInvalidCount indicates a non-positive sample count.
	ErrInvalidCount = errors.New("synth: sample count must be > 0")

	// ErrInvalidRange indicates a distribution range with lo > hi or a non-finite bound.
	ErrInvalidRange = errors.New("synth: invalid distribution range")
)

// DefaultDistribution is the range of TotalDistribucion in the survey data.
var DefaultDistribution = network.Range{Lo: 250, Hi: 310}

// Option configures Generate.
type Option func(*config)

type config struct {
	rng          *rand.Rand
	distribution network.Range
	logger       *slog.Logger
	onSample     func()
}

// WithRand injects the random source. The generator advances it.
func WithRand(r *rand.Rand) Option {
	return func(c *config) { c.rng = r }
}

// WithSeed is WithRand(NewRand(seed)).
func WithSeed(seed int64) Option {
	return func(c *config) { c.rng = NewRand(seed) }
}

// WithDistributionRange overrides the range TotalDistribucion is drawn from.
func WithDistributionRange(r network.Range) Option {
	return func(c *config) { c.distribution = r }
}

// WithLogger sets the logger. Default: discard.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// OnSample registers a hook called once per generated sample (metrics).
func OnSample(fn func()) Option {
	return func(c *config) { c.onSample = fn }
}

// uniform draws from [r.Lo, r.Hi]; a point range returns Lo without
// consuming randomness.
func uniform(rng *rand.Rand, r network.Range) float64 {
	if r.Width() == 0 {
		return r.Lo
	}

	return r.Lo + rng.Float64()*r.Width()
}

// Generate draws n samples over topo. Sample IDs are 1-based.
//
// Per sample and in node order: flow, loss, pressure. The distribution
// target is drawn last. The draw order is part of the contract: a fixed
// seed reproduces the same dataset.
//
// Errors:
//   - ErrInvalidCount if n <= 0.
//   - ErrNeedRandSource if no random source was configured.
//   - ErrInvalidRange for a malformed WithDistributionRange.
func Generate(topo *network.Topology, n int, opts ...Option) (dataset.Dataset, error) {
	cfg := config{distribution: DefaultDistribution}
	for _, opt := range opts {
		opt(&cfg)
	}
	if n <= 0 {
		return dataset.Dataset{}, fmt.Errorf("Generate(%d): %w", n, ErrInvalidCount)
	}
	if cfg.rng == nil {
		return dataset.Dataset{}, ErrNeedRandSource
	}
	d := cfg.distribution
	if math.IsNaN(d.Lo) || math.IsNaN(d.Hi) || math.IsInf(d.Lo, 0) || math.IsInf(d.Hi, 0) || d.Lo > d.Hi {
		return dataset.Dataset{}, fmt.Errorf("distribution [%g,%g]: %w", d.Lo, d.Hi, ErrInvalidRange)
	}
	logger := cfg.logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	nodes := topo.Nodes()
	ds := dataset.Dataset{
		NodeIDs: topo.IDs(),
		Samples: make([]dataset.Sample, n),
	}
	for k := range ds.Samples {
		s := dataset.Sample{ID: k + 1, Readings: make([]dataset.Reading, len(nodes))}
		for i, node := range nodes {
			r := dataset.Reading{
				Flow:     uniform(cfg.rng, node.Flow),
				Loss:     uniform(cfg.rng, node.Loss),
				Volume:   math.NaN(),
				Pressure: uniform(cfg.rng, node.Pressure),
			}
			if node.HasVolume {
				r.Volume = node.Volume
			}
			if node.Category == network.Source {
				s.TotalInflow += r.Flow
			}
			s.Readings[i] = r
		}
		s.TotalDistribution = uniform(cfg.rng, cfg.distribution)
		ds.Samples[k] = s
		if cfg.onSample != nil {
			cfg.onSample()
		}
	}
	logger.Debug("generated samples", "count", n, "nodes", len(nodes))

	return ds, nil
}
