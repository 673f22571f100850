// SPDX-License-Identifier: MIT

package dataset

import (
	"fmt"

	"github.com/katalvlaran/aquanet/matrix"
	"github.com/katalvlaran/aquanet/network"
)

// FeatureColumns returns the node indices whose flows feed the model: every
// node except the sink, in topology order.
func FeatureColumns(topo *network.Topology) []int {
	cols := make([]int, 0, topo.Len()-1)
	for i := 0; i < topo.Len(); i++ {
		if i != topo.Sink() {
			cols = append(cols, i)
		}
	}

	return cols
}

// FlowMatrix returns a len(d.Samples)×len(cols) matrix of raw flows, column k
// holding the flow of node cols[k].
//
// Errors:
//   - ErrNoSamples for an empty dataset.
//   - ErrData wrapping matrix.ErrNaNInf for a non-finite flow.
func FlowMatrix(d Dataset, cols []int) (*matrix.Dense, error) {
	if len(d.Samples) == 0 {
		return nil, fmt.Errorf("FlowMatrix: %w", ErrNoSamples)
	}
	values := make([]float64, 0, len(d.Samples)*len(cols))
	for _, s := range d.Samples {
		for _, c := range cols {
			if c < 0 || c >= len(s.Readings) {
				return nil, fmt.Errorf("FlowMatrix: sample %d column %d: %w", s.ID, c, ErrNodeMismatch)
			}
			values = append(values, s.Readings[c].Flow)
		}
	}
	m, err := matrix.NewDenseFrom(len(d.Samples), len(cols), values)
	if err != nil {
		return nil, fmt.Errorf("FlowMatrix: %w: %w", ErrData, err)
	}

	return m, nil
}

// Flows returns the raw flows of s at cols.
func Flows(s Sample, cols []int) []float64 {
	out := make([]float64, len(cols))
	for k, c := range cols {
		out[k] = s.Readings[c].Flow
	}

	return out
}

// NodeFeatures builds the N×1 feature matrix of one sample: row cols[k]
// holds scaled[k], every other row (the sink) stays exactly 0.
//
// Errors:
//   - ErrNodeMismatch if len(scaled) != len(cols) or a column is out of range.
//   - ErrData wrapping matrix.ErrNaNInf for a non-finite feature.
func NodeFeatures(topo *network.Topology, cols []int, scaled []float64) (*matrix.Dense, error) {
	if len(scaled) != len(cols) {
		return nil, fmt.Errorf("NodeFeatures: %d values for %d columns: %w", len(scaled), len(cols), ErrNodeMismatch)
	}
	x, err := matrix.NewDense(topo.Len(), 1)
	if err != nil {
		return nil, fmt.Errorf("NodeFeatures: %w", err)
	}
	for k, c := range cols {
		if c == topo.Sink() {
			continue
		}
		if err = x.Set(c, 0, scaled[k]); err != nil {
			if c < 0 || c >= topo.Len() {
				return nil, fmt.Errorf("NodeFeatures: column %d: %w", c, ErrNodeMismatch)
			}

			return nil, fmt.Errorf("NodeFeatures: %w: %w", ErrData, err)
		}
	}

	return x, nil
}
