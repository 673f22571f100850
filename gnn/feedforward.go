// SPDX-License-Identifier: MIT

package gnn

import (
	"fmt"
	"math/rand"

	"github.com/katalvlaran/aquanet/matrix"
	"github.com/katalvlaran/aquanet/network"
	"github.com/katalvlaran/aquanet/optim"
)

// FeedForward is the graph-free baseline: Linear layers, each followed by
// ReLU (the output layer included).
type FeedForward struct {
	layers []*Linear
	params []*optim.Param
}

// LayerSizes returns the baseline layout of topo: source count, plant
// count, tank count, 1. Empty categories are skipped.
func LayerSizes(topo *network.Topology) []int {
	var sizes []int
	for _, c := range []network.Category{network.Source, network.Plant, network.Tank} {
		if n := len(topo.ByCategory(c)); n > 0 {
			sizes = append(sizes, n)
		}
	}

	return append(sizes, 1)
}

// NewFeedForward builds sizes[0]→sizes[1]→…→sizes[len-1].
//
// Errors:
//   - ErrNilRand; ErrInvalidLayer for fewer than two sizes or a width <= 0.
func NewFeedForward(rng *rand.Rand, sizes ...int) (*FeedForward, error) {
	if rng == nil {
		return nil, ErrNilRand
	}
	if len(sizes) < 2 {
		return nil, fmt.Errorf("NewFeedForward %v: %w", sizes, ErrInvalidLayer)
	}
	f := &FeedForward{}
	for k := 1; k < len(sizes); k++ {
		l, err := NewLinear(fmt.Sprintf("fc%d", k), sizes[k-1], sizes[k], rng)
		if err != nil {
			return nil, fmt.Errorf("NewFeedForward: %w", err)
		}
		f.layers = append(f.layers, l)
		f.params = append(f.params, l.W, l.B)
	}

	return f, nil
}

// Params returns the trainable parameters in layer order.
func (f *FeedForward) Params() []*optim.Param { return f.params }

// Layers returns the widths input→…→output.
func (f *FeedForward) Layers() []int {
	sizes := []int{f.layers[0].In()}
	for _, l := range f.layers {
		sizes = append(sizes, l.Out())
	}

	return sizes
}

// ffTape holds per-layer inputs and pre-activations.
type ffTape struct {
	inputs []*matrix.Dense
	pres   []*matrix.Dense
}

func (f *FeedForward) forward(x []float64) (*matrix.Dense, ffTape, error) {
	var tape ffTape
	if len(x) != f.layers[0].In() {
		return nil, tape, fmt.Errorf("%d inputs, want %d: %w", len(x), f.layers[0].In(), ErrInputShape)
	}
	a, err := matrix.NewDenseFrom(1, len(x), x)
	if err != nil {
		return nil, tape, err
	}
	for _, l := range f.layers {
		z, err := l.Forward(a)
		if err != nil {
			return nil, tape, err
		}
		tape.inputs = append(tape.inputs, a)
		tape.pres = append(tape.pres, z)
		a = z.Clone()
		a.Apply(relu)
	}

	return a, tape, nil
}

// Activations returns the post-ReLU output of every layer for x.
func (f *FeedForward) Activations(x []float64) ([][]float64, error) {
	_, tape, err := f.forward(x)
	if err != nil {
		return nil, fmt.Errorf("Activations: %w", err)
	}
	acts := make([][]float64, len(tape.pres))
	for k, z := range tape.pres {
		a := z.Clone()
		a.Apply(relu)
		acts[k] = a.Data()
	}

	return acts, nil
}

// Predict returns the first output unit for input x.
func (f *FeedForward) Predict(x []float64) (float64, error) {
	out, _, err := f.forward(x)
	if err != nil {
		return 0, fmt.Errorf("Predict: %w", err)
	}

	return out.Data()[0], nil
}

// Accumulate adds the gradients of (y - target)² into Params and returns
// that loss. y is the first output unit.
func (f *FeedForward) Accumulate(x []float64, target float64) (float64, error) {
	out, tape, err := f.forward(x)
	if err != nil {
		return 0, fmt.Errorf("Accumulate: %w", err)
	}
	diff := out.Data()[0] - target
	d, err := matrix.NewDense(1, out.Cols())
	if err != nil {
		return 0, fmt.Errorf("Accumulate: %w", err)
	}
	d.Data()[0] = 2 * diff

	for k := len(f.layers) - 1; k >= 0; k-- {
		reluMask(d, tape.pres[k])
		if d, err = f.layers[k].backward(tape.inputs[k], d); err != nil {
			return 0, fmt.Errorf("Accumulate: %w", err)
		}
	}

	return diff * diff, nil
}
