// SPDX-License-Identifier: MIT

package gnn

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/katalvlaran/aquanet/matrix"
	"github.com/katalvlaran/aquanet/optim"
)

// GraphConv is one propagation round: H = ReLU(P·X·W + b).
type GraphConv struct {
	W *optim.Param // in×out
	B *optim.Param // 1×out
}

// convTape keeps what the backward pass needs from a forward pass.
type convTape struct {
	agg *matrix.Dense // P·X
	pre *matrix.Dense // P·X·W + b
}

// NewGraphConv allocates a Glorot-initialized in→out layer.
func NewGraphConv(name string, in, out int, rng *rand.Rand) (*GraphConv, error) {
	if rng == nil {
		return nil, ErrNilRand
	}
	if in <= 0 || out <= 0 {
		return nil, fmt.Errorf("%s %d→%d: %w", name, in, out, ErrInvalidLayer)
	}
	w, err := optim.NewParam(name+".weight", in, out)
	if err != nil {
		return nil, err
	}
	b, err := optim.NewParam(name+".bias", 1, out)
	if err != nil {
		return nil, err
	}
	glorotUniform(rng, w.Value)

	return &GraphConv{W: w, B: b}, nil
}

// In returns the input width.
func (l *GraphConv) In() int { return l.W.Value.Rows() }

// Out returns the output width.
func (l *GraphConv) Out() int { return l.W.Value.Cols() }

func (l *GraphConv) forward(p *Propagator, x *matrix.Dense) (*matrix.Dense, convTape, error) {
	if x != nil && x.Cols() != l.In() {
		return nil, convTape{}, fmt.Errorf("%s: %d features, want %d: %w", l.W.Name, x.Cols(), l.In(), ErrInputShape)
	}
	agg, err := p.Aggregate(x)
	if err != nil {
		return nil, convTape{}, err
	}
	pre, err := matrix.Mul(agg, l.W.Value)
	if err != nil {
		return nil, convTape{}, err
	}
	if err = matrix.AddRowVector(pre, l.B.Value.Data()); err != nil {
		return nil, convTape{}, err
	}
	h := pre.Clone()
	h.Apply(relu)

	return h, convTape{agg: agg, pre: pre}, nil
}

// Forward returns ReLU(P·X·W + b) without touching gradients.
func (l *GraphConv) Forward(p *Propagator, x *matrix.Dense) (*matrix.Dense, error) {
	h, _, err := l.forward(p, x)

	return h, err
}

// backward accumulates dW = Aᵀ·dZ and db = Σrows dZ, and returns
// dX = Pᵀ·(dZ·Wᵀ), where dZ = dH masked by the ReLU.
func (l *GraphConv) backward(p *Propagator, tape convTape, dh *matrix.Dense) (*matrix.Dense, error) {
	dz := dh.Clone()
	reluMask(dz, tape.pre)

	dw, err := matrix.MulTransA(tape.agg, dz)
	if err != nil {
		return nil, err
	}
	addInto(l.W.Grad, dw.Data())
	db, err := matrix.ColumnSums(dz)
	if err != nil {
		return nil, err
	}
	addInto(l.B.Grad, db)

	dagg, err := matrix.MulTransB(dz, l.W.Value)
	if err != nil {
		return nil, err
	}

	return p.AggregateT(dagg)
}

// Linear is a dense affine layer y = x·W + b over row vectors.
type Linear struct {
	W *optim.Param // in×out
	B *optim.Param // 1×out
}

// NewLinear allocates an in→out layer with W, b ~ U(-1/√in, 1/√in).
func NewLinear(name string, in, out int, rng *rand.Rand) (*Linear, error) {
	if rng == nil {
		return nil, ErrNilRand
	}
	if in <= 0 || out <= 0 {
		return nil, fmt.Errorf("%s %d→%d: %w", name, in, out, ErrInvalidLayer)
	}
	w, err := optim.NewParam(name+".weight", in, out)
	if err != nil {
		return nil, err
	}
	b, err := optim.NewParam(name+".bias", 1, out)
	if err != nil {
		return nil, err
	}
	bound := 1 / math.Sqrt(float64(in))
	fillUniform(rng, w.Value, bound)
	fillUniform(rng, b.Value, bound)

	return &Linear{W: w, B: b}, nil
}

// In returns the input width.
func (l *Linear) In() int { return l.W.Value.Rows() }

// Out returns the output width.
func (l *Linear) Out() int { return l.W.Value.Cols() }

// Forward returns x·W + b for every row of x.
func (l *Linear) Forward(x *matrix.Dense) (*matrix.Dense, error) {
	if x != nil && x.Cols() != l.In() {
		return nil, fmt.Errorf("%s: %d inputs, want %d: %w", l.W.Name, x.Cols(), l.In(), ErrInputShape)
	}
	z, err := matrix.Mul(x, l.W.Value)
	if err != nil {
		return nil, err
	}
	if err = matrix.AddRowVector(z, l.B.Value.Data()); err != nil {
		return nil, err
	}

	return z, nil
}

// backward accumulates dW = xᵀ·dz, db = Σrows dz and returns dx = dz·Wᵀ.
func (l *Linear) backward(x, dz *matrix.Dense) (*matrix.Dense, error) {
	dw, err := matrix.MulTransA(x, dz)
	if err != nil {
		return nil, err
	}
	addInto(l.W.Grad, dw.Data())
	db, err := matrix.ColumnSums(dz)
	if err != nil {
		return nil, err
	}
	addInto(l.B.Grad, db)

	return matrix.MulTransB(dz, l.W.Value)
}
