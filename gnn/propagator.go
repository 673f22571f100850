// SPDX-License-Identifier: MIT

package gnn

import (
	"fmt"

	"github.com/katalvlaran/aquanet/matrix"
	"github.com/katalvlaran/aquanet/network"
)

// Propagator applies the neighbor-mean operator P of a topology.
type Propagator struct {
	hood [][]int // hood[i]: rows averaged into row i
}

// NewPropagator derives P from topo's incoming edges.
func NewPropagator(topo *network.Topology) *Propagator {
	p := &Propagator{hood: make([][]int, topo.Len())}
	for i := range p.hood {
		if in := topo.InNeighbors(i); len(in) > 0 {
			p.hood[i] = in
		} else {
			p.hood[i] = []int{i}
		}
	}

	return p
}

// Len returns the node count.
func (p *Propagator) Len() int { return len(p.hood) }

// Neighborhood returns the rows averaged into row i (i itself for roots).
func (p *Propagator) Neighborhood(i int) []int { return append([]int(nil), p.hood[i]...) }

// Aggregate returns P·X: row i is the mean of X's rows over Neighborhood(i).
//
// Errors:
//   - matrix.ErrNilMatrix; ErrInputShape if X.Rows != Len.
//
// Complexity: O((V+E)·cols).
func (p *Propagator) Aggregate(x *matrix.Dense) (*matrix.Dense, error) {
	if x == nil {
		return nil, fmt.Errorf("Aggregate: %w", matrix.ErrNilMatrix)
	}
	if x.Rows() != len(p.hood) {
		return nil, fmt.Errorf("Aggregate: %d rows for %d nodes: %w", x.Rows(), len(p.hood), ErrInputShape)
	}
	out, err := matrix.NewDense(x.Rows(), x.Cols())
	if err != nil {
		return nil, fmt.Errorf("Aggregate: %w", err)
	}
	cols := x.Cols()
	src, dst := x.Data(), out.Data()
	for i, hood := range p.hood {
		w := 1 / float64(len(hood))
		row := dst[i*cols : (i+1)*cols]
		for _, j := range hood {
			for c, v := range src[j*cols : (j+1)*cols] {
				row[c] += w * v
			}
		}
	}

	return out, nil
}

// AggregateT returns Pᵀ·D, the adjoint of Aggregate used in backward passes.
func (p *Propagator) AggregateT(d *matrix.Dense) (*matrix.Dense, error) {
	if d == nil {
		return nil, fmt.Errorf("AggregateT: %w", matrix.ErrNilMatrix)
	}
	if d.Rows() != len(p.hood) {
		return nil, fmt.Errorf("AggregateT: %d rows for %d nodes: %w", d.Rows(), len(p.hood), ErrInputShape)
	}
	out, err := matrix.NewDense(d.Rows(), d.Cols())
	if err != nil {
		return nil, fmt.Errorf("AggregateT: %w", err)
	}
	cols := d.Cols()
	src, dst := d.Data(), out.Data()
	for i, hood := range p.hood {
		w := 1 / float64(len(hood))
		g := src[i*cols : (i+1)*cols]
		for _, j := range hood {
			row := dst[j*cols : (j+1)*cols]
			for c, v := range g {
				row[c] += w * v
			}
		}
	}

	return out, nil
}

// Matrix materializes P as an N×N dense matrix. Diagnostics and tests only.
func (p *Propagator) Matrix() *matrix.Dense {
	n := len(p.hood)
	m, _ := matrix.NewDense(n, n)
	data := m.Data()
	for i, hood := range p.hood {
		w := 1 / float64(len(hood))
		for _, j := range hood {
			data[i*n+j] += w
		}
	}

	return m
}
