// SPDX-License-Identifier: MIT

package gnn

import (
	"math"
	"math/rand"

	"github.com/katalvlaran/aquanet/matrix"
)

// fillUniform draws every element of m from U(-bound, bound).
func fillUniform(rng *rand.Rand, m *matrix.Dense, bound float64) {
	m.Apply(func(_, _ int, _ float64) float64 {
		return (2*rng.Float64() - 1) * bound
	})
}

// glorotUniform fills an in×out weight with U(-a, a), a = √(6/(in+out)).
func glorotUniform(rng *rand.Rand, w *matrix.Dense) {
	fanIn, fanOut := w.Shape()
	fillUniform(rng, w, math.Sqrt(6/float64(fanIn+fanOut)))
}

func relu(_, _ int, v float64) float64 {
	if v > 0 {
		return v
	}

	return 0
}

// reluMask zeroes grad wherever pre <= 0. Both share a shape.
func reluMask(grad, pre *matrix.Dense) {
	g, z := grad.Data(), pre.Data()
	for i := range g {
		if z[i] <= 0 {
			g[i] = 0
		}
	}
}

// addInto adds src element-wise into dst. Both share a shape.
func addInto(dst *matrix.Dense, src []float64) {
	d := dst.Data()
	for i, v := range src {
		d[i] += v
	}
}
