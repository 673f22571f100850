// SPDX-License-Identifier: MIT

package optim

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	// ErrUnknownOptimizer indicates an optimizer name New does not know.
	ErrUnknownOptimizer = errors.New("optim: unknown optimizer")

	// ErrInvalidRate indicates a non-positive or non-finite learning rate.
	ErrInvalidRate = errors.New("optim: learning rate must be finite and > 0")
)

// Default hyper-parameters.
const (
	DefaultLearningRate = 0.01
	DefaultBeta1        = 0.9
	DefaultBeta2        = 0.999
	DefaultEpsilon      = 1e-8
)

// Optimizer updates parameter values from their gradients.
type Optimizer interface {
	// Step applies one update to every param.
	Step(params []*Param)
	// Name identifies the optimizer in logs.
	Name() string
}

// SGD is plain gradient descent: v -= lr·g.
type SGD struct {
	LR float64
}

// NewSGD returns SGD with learning rate lr.
func NewSGD(lr float64) *SGD { return &SGD{LR: lr} }

// Name returns "sgd".
func (o *SGD) Name() string { return "sgd" }

// Step applies v -= lr·g.
func (o *SGD) Step(params []*Param) {
	for _, p := range params {
		v, g := p.Value.Data(), p.Grad.Data()
		for i := range v {
			v[i] -= o.LR * g[i]
		}
	}
}

// Adam is the bias-corrected adaptive moment optimizer.
//
//	m ← β1·m + (1-β1)·g
//	v ← β2·v + (1-β2)·g²
//	θ ← θ - (lr / (1-β1ᵗ)) · m / (√v / √(1-β2ᵗ) + ε)
type Adam struct {
	LR, Beta1, Beta2, Epsilon float64

	t     int
	state map[*Param]*moments
}

type moments struct {
	m, v []float64
}

// NewAdam returns Adam with learning rate lr and default betas and epsilon.
func NewAdam(lr float64) *Adam {
	return &Adam{LR: lr, Beta1: DefaultBeta1, Beta2: DefaultBeta2, Epsilon: DefaultEpsilon}
}

// Name returns "adam".
func (o *Adam) Name() string { return "adam" }

// Steps returns how many updates have been applied.
func (o *Adam) Steps() int { return o.t }

// Step applies one Adam update. Moment buffers are created on first sight of
// a parameter.
func (o *Adam) Step(params []*Param) {
	if o.state == nil {
		o.state = make(map[*Param]*moments, len(params))
	}
	o.t++
	bc1 := 1 - math.Pow(o.Beta1, float64(o.t))
	bc2 := math.Sqrt(1 - math.Pow(o.Beta2, float64(o.t)))
	stepSize := o.LR / bc1

	for _, p := range params {
		st, ok := o.state[p]
		if !ok {
			st = &moments{m: make([]float64, p.Size()), v: make([]float64, p.Size())}
			o.state[p] = st
		}
		val, grad := p.Value.Data(), p.Grad.Data()
		for i, g := range grad {
			st.m[i] = o.Beta1*st.m[i] + (1-o.Beta1)*g
			st.v[i] = o.Beta2*st.v[i] + (1-o.Beta2)*g*g
			val[i] -= stepSize * st.m[i] / (math.Sqrt(st.v[i])/bc2 + o.Epsilon)
		}
	}
}

// New builds an optimizer by name ("adam" or "sgd").
func New(name string, lr float64) (Optimizer, error) {
	if math.IsNaN(lr) || math.IsInf(lr, 0) || lr <= 0 {
		return nil, fmt.Errorf("%s lr=%g: %w", name, lr, ErrInvalidRate)
	}
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "adam":
		return NewAdam(lr), nil
	case "sgd":
		return NewSGD(lr), nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownOptimizer, name)
}
