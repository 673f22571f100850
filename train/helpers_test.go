// SPDX-License-Identifier: MIT

package train_test

import (
	"math"
	"time"

	"github.com/katalvlaran/aquanet/optim"
	"github.com/katalvlaran/aquanet/train"
)

// line is a one-feature linear learner y = w·x + b.
type line struct {
	w, b   *optim.Param
	seen   []int // sample inputs passed to Accumulate, in order
	poison func(x float64) bool
}

func newLine() *line {
	w, _ := optim.NewParam("w", 1, 1)
	b, _ := optim.NewParam("b", 1, 1)

	return &line{w: w, b: b}
}

func (l *line) Predict(x float64) (float64, error) {
	return l.w.Value.Data()[0]*x + l.b.Value.Data()[0], nil
}

func (l *line) Accumulate(x, target float64) (float64, error) {
	l.seen = append(l.seen, int(x))
	if l.poison != nil && l.poison(x) {
		return math.NaN(), nil
	}
	y, _ := l.Predict(x)
	d := y - target
	l.w.Grad.Data()[0] += 2 * d * x
	l.b.Grad.Data()[0] += 2 * d

	return d * d, nil
}

func (l *line) Params() []*optim.Param { return []*optim.Param{l.w, l.b} }

// examples returns y = 2x + 1 for x = 1..n, ID = x.
func examples(n int) []train.Example[float64] {
	out := make([]train.Example[float64], n)
	for i := range out {
		x := float64(i + 1)
		out[i] = train.Example[float64]{ID: i + 1, Input: x, Target: 2*x + 1}
	}

	return out
}

type recorder struct {
	epochs    int
	test      float64
	nonFinite int
}

func (r *recorder) ObserveEpoch(float64, time.Duration) { r.epochs++ }

func (r *recorder) ObserveTest(loss float64) { r.test = loss }

func (r *recorder) ObserveNonFinite() { r.nonFinite++ }
