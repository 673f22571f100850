// SPDX-License-Identifier: MIT

package equity

import (
	"fmt"
	"math"
	"math/rand"
)

// DefaultLearningRate is the weight step of Train.
const DefaultLearningRate = 0.01

// gradScale damps every weight update of Train.
const gradScale = 0.1

// Option configures NewAllocator.
type Option func(*Allocator)

// WithLearningRate sets the weight step of Train. Default: 0.01.
func WithLearningRate(lr float64) Option {
	return func(a *Allocator) { a.lr = lr }
}

// WithWeights sets the initial sector weights instead of drawing them.
func WithWeights(w []float64) Option {
	return func(a *Allocator) { a.weights = append([]float64(nil), w...) }
}

// Allocator is a learned split of supply among sectors. Sector i receives
// the share softmax(w·demand·(1 - loss/100))ᵢ of the total.
type Allocator struct {
	sectors []Sector
	weights []float64
	lr      float64
	trained bool
}

// NewAllocator returns an untrained allocator over sectors. Weights are
// drawn uniformly from [0.5, 1) unless WithWeights is given.
func NewAllocator(sectors []Sector, rng *rand.Rand, opts ...Option) (*Allocator, error) {
	for _, s := range sectors {
		if err := s.validate(); err != nil {
			return nil, fmt.Errorf("NewAllocator: %w", err)
		}
	}
	a := &Allocator{sectors: append([]Sector(nil), sectors...), lr: DefaultLearningRate}
	for _, opt := range opts {
		opt(a)
	}
	if !(a.lr > 0) {
		return nil, fmt.Errorf("NewAllocator: %v: %w", a.lr, ErrInvalidRate)
	}
	if a.weights == nil {
		if rng == nil {
			return nil, fmt.Errorf("NewAllocator: %w", ErrNilRand)
		}
		a.weights = make([]float64, len(sectors))
		for i := range a.weights {
			a.weights[i] = 0.5 + 0.5*rng.Float64()
		}
	}
	if len(a.weights) != len(sectors) {
		return nil, fmt.Errorf("NewAllocator: %d weights for %d sectors: %w", len(a.weights), len(sectors), ErrSectorCount)
	}

	return a, nil
}

// Sectors returns a copy of the sectors.
func (a *Allocator) Sectors() []Sector { return append([]Sector(nil), a.sectors...) }

// Weights returns a copy of the current weights.
func (a *Allocator) Weights() []float64 { return append([]float64(nil), a.weights...) }

// Trained reports whether Train has completed at least once.
func (a *Allocator) Trained() bool { return a.trained }

func (a *Allocator) check(total float64, demands []float64) error {
	if !validAmount(total) {
		return fmt.Errorf("supply %v: %w", total, ErrInvalidAmount)
	}
	if len(demands) != len(a.sectors) {
		return fmt.Errorf("%d demands for %d sectors: %w", len(demands), len(a.sectors), ErrSectorCount)
	}
	for i, d := range demands {
		if !validAmount(d) {
			return fmt.Errorf("sector %d demand %v: %w", a.sectors[i].ID, d, ErrInvalidAmount)
		}
	}

	return nil
}

func (a *Allocator) predict(total float64, demands []float64) []float64 {
	out := make([]float64, len(demands))
	peak := math.Inf(-1)
	for i, d := range demands {
		out[i] = a.weights[i] * d * (1 - a.sectors[i].Loss/100)
		peak = math.Max(peak, out[i])
	}
	var sum float64
	for i := range out {
		out[i] = math.Exp(out[i] - peak)
		sum += out[i]
	}
	for i := range out {
		out[i] *= total / sum
	}

	return out
}

// Predict splits total among the sectors for the given demands. The shares
// sum to total.
func (a *Allocator) Predict(total float64, demands []float64) ([]float64, error) {
	if err := a.check(total, demands); err != nil {
		return nil, fmt.Errorf("Predict: %w", err)
	}

	return a.predict(total, demands), nil
}

// Train runs epochs updates on a fixed (total, demands) pair. Each update
// moves weight i against the deviation of sector i's satisfaction ratio
// from the mean ratio; a sector with zero demand counts as satisfied.
func (a *Allocator) Train(total float64, demands []float64, epochs int) error {
	if epochs < 1 {
		return fmt.Errorf("Train: %d: %w", epochs, ErrInvalidEpochs)
	}
	if err := a.check(total, demands); err != nil {
		return fmt.Errorf("Train: %w", err)
	}
	if len(demands) == 0 {
		a.trained = true
		return nil
	}
	ratios := make([]float64, len(demands))
	for e := 0; e < epochs; e++ {
		alloc := a.predict(total, demands)
		var mean float64
		for i, d := range demands {
			ratios[i] = 1
			if d > 0 {
				ratios[i] = alloc[i] / d
			}
			mean += ratios[i]
		}
		mean /= float64(len(ratios))
		for i := range a.weights {
			a.weights[i] -= a.lr * (ratios[i] - mean) * gradScale
		}
	}
	a.trained = true

	return nil
}

// Proportional gives every sector the same fraction of its demand, capped
// at full demand. With zero total demand every sector receives 0.
func Proportional(total float64, demands []float64) ([]float64, error) {
	if !validAmount(total) {
		return nil, fmt.Errorf("Proportional: supply %v: %w", total, ErrInvalidAmount)
	}
	var sum float64
	for _, d := range demands {
		if !validAmount(d) {
			return nil, fmt.Errorf("Proportional: demand %v: %w", d, ErrInvalidAmount)
		}
		sum += d
	}
	out := make([]float64, len(demands))
	if sum == 0 {
		return out, nil
	}
	ratio := math.Min(total/sum, 1)
	for i, d := range demands {
		out[i] = d * ratio
	}

	return out, nil
}
