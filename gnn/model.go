// SPDX-License-Identifier: MIT

package gnn

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/katalvlaran/aquanet/matrix"
	"github.com/katalvlaran/aquanet/network"
	"github.com/katalvlaran/aquanet/optim"
)

// Default layer widths of the predictor.
var defaultHidden = []int{16, 8}

// ModelOption configures NewModel.
type ModelOption func(*modelConfig)

type modelConfig struct {
	inputDim int
	hidden   []int
}

// WithHidden sets the output width of each propagation round. The number
// of rounds equals len(sizes). Default: 16, 8.
func WithHidden(sizes ...int) ModelOption {
	return func(c *modelConfig) { c.hidden = append([]int(nil), sizes...) }
}

// WithInputDim sets the per-node feature width. Default: 1 (scaled flow).
func WithInputDim(d int) ModelOption {
	return func(c *modelConfig) { c.inputDim = d }
}

// Model is the message-passing predictor: stacked GraphConv rounds and a
// Linear readout of the sink row.
type Model struct {
	prop    *Propagator
	sink    int
	convs   []*GraphConv
	readout *Linear
	params  []*optim.Param
}

// NewModel builds a model over topo with weights drawn from rng.
//
// Errors:
//   - ErrNilRand; ErrInvalidLayer for an empty or non-positive layer list.
func NewModel(topo *network.Topology, rng *rand.Rand, opts ...ModelOption) (*Model, error) {
	cfg := modelConfig{inputDim: 1, hidden: defaultHidden}
	for _, opt := range opts {
		opt(&cfg)
	}
	if rng == nil {
		return nil, ErrNilRand
	}
	if len(cfg.hidden) == 0 {
		return nil, fmt.Errorf("NewModel: no propagation rounds: %w", ErrInvalidLayer)
	}

	m := &Model{prop: NewPropagator(topo), sink: topo.Sink()}
	in := cfg.inputDim
	for k, out := range cfg.hidden {
		conv, err := NewGraphConv(fmt.Sprintf("conv%d", k+1), in, out, rng)
		if err != nil {
			return nil, fmt.Errorf("NewModel: %w", err)
		}
		m.convs = append(m.convs, conv)
		m.params = append(m.params, conv.W, conv.B)
		in = out
	}
	readout, err := NewLinear("readout", in, 1, rng)
	if err != nil {
		return nil, fmt.Errorf("NewModel: %w", err)
	}
	m.readout = readout
	m.params = append(m.params, readout.W, readout.B)

	return m, nil
}

// Params returns the trainable parameters in layer order.
func (m *Model) Params() []*optim.Param { return m.params }

// Propagator returns the operator the model aggregates with.
func (m *Model) Propagator() *Propagator { return m.prop }

// Layers returns the widths input→hidden…→1.
func (m *Model) Layers() []int {
	sizes := []int{m.convs[0].In()}
	for _, c := range m.convs {
		sizes = append(sizes, c.Out())
	}

	return append(sizes, m.readout.Out())
}

// modelTape is the forward state needed by Accumulate.
type modelTape struct {
	convs  []convTape
	hidden *matrix.Dense // last conv output, N×h
	sinkH  *matrix.Dense // its sink row, 1×h
}

func (m *Model) forward(x *matrix.Dense) (float64, modelTape, error) {
	var tape modelTape
	h := x
	for _, conv := range m.convs {
		out, ct, err := conv.forward(m.prop, h)
		if err != nil {
			return 0, tape, err
		}
		tape.convs = append(tape.convs, ct)
		h = out
	}
	row, err := h.Row(m.sink)
	if err != nil {
		return 0, tape, err
	}
	sinkH, err := matrix.NewDenseFrom(1, len(row), row)
	if err != nil {
		return 0, tape, err
	}
	y, err := m.readout.Forward(sinkH)
	if err != nil {
		return 0, tape, err
	}
	tape.hidden, tape.sinkH = h, sinkH

	return y.Data()[0], tape, nil
}

// Predict returns the sink prediction for the N×in feature matrix x.
func (m *Model) Predict(x *matrix.Dense) (float64, error) {
	y, _, err := m.forward(x)
	if err != nil {
		return 0, fmt.Errorf("Predict: %w", err)
	}

	return y, nil
}

// Accumulate runs a forward and backward pass for one sample, adds the
// gradients of (y - target)² into Params, and returns that loss. A
// non-finite difference is returned as a NaN or Inf loss with no
// gradient update.
func (m *Model) Accumulate(x *matrix.Dense, target float64) (float64, error) {
	y, tape, err := m.forward(x)
	if err != nil {
		return 0, fmt.Errorf("Accumulate: %w", err)
	}
	diff := y - target
	if math.IsNaN(diff) || math.IsInf(diff, 0) {
		// Leave the gradients untouched; the caller sees a non-finite loss.
		return diff * diff, nil
	}
	dy, err := matrix.NewDenseFrom(1, 1, []float64{2 * diff})
	if err != nil {
		return 0, fmt.Errorf("Accumulate: %w", err)
	}

	dSink, err := m.readout.backward(tape.sinkH, dy)
	if err != nil {
		return 0, fmt.Errorf("Accumulate: %w", err)
	}
	dh, err := matrix.NewDense(tape.hidden.Rows(), tape.hidden.Cols())
	if err != nil {
		return 0, fmt.Errorf("Accumulate: %w", err)
	}
	row, err := dh.Row(m.sink)
	if err != nil {
		return 0, fmt.Errorf("Accumulate: %w", err)
	}
	copy(row, dSink.Data())

	for k := len(m.convs) - 1; k >= 0; k-- {
		if dh, err = m.convs[k].backward(m.prop, tape.convs[k], dh); err != nil {
			return 0, fmt.Errorf("Accumulate: %w", err)
		}
	}

	return diff * diff, nil
}
