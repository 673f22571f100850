// SPDX-License-Identifier: MIT

package optim

import (
	"fmt"
	"math"

	"github.com/katalvlaran/aquanet/matrix"
)

// Param is a named trainable tensor and its accumulated gradient.
type Param struct {
	Name  string
	Value *matrix.Dense
	Grad  *matrix.Dense
}

// NewParam allocates a zero value and gradient of shape rows×cols.
func NewParam(name string, rows, cols int) (*Param, error) {
	v, err := matrix.NewDense(rows, cols)
	if err != nil {
		return nil, fmt.Errorf("param %s: %w", name, err)
	}

	return &Param{Name: name, Value: v, Grad: v.Clone()}, nil
}

// Size returns the number of scalars in p.
func (p *Param) Size() int { return len(p.Value.Data()) }

// ZeroGrad clears every gradient.
func ZeroGrad(params []*Param) {
	for _, p := range params {
		p.Grad.Zero()
	}
}

// GradsFinite returns the name of the first parameter whose gradient holds
// a NaN or ±Inf, and false; or "", true.
func GradsFinite(params []*Param) (string, bool) {
	for _, p := range params {
		for _, g := range p.Grad.Data() {
			if math.IsNaN(g) || math.IsInf(g, 0) {
				return p.Name, false
			}
		}
	}

	return "", true
}

// Count returns the total number of scalars across params.
func Count(params []*Param) int {
	n := 0
	for _, p := range params {
		n += p.Size()
	}

	return n
}
