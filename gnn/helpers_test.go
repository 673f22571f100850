// SPDX-License-Identifier: MIT

package gnn_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/aquanet/matrix"
	"github.com/katalvlaran/aquanet/network"
	"github.com/katalvlaran/aquanet/optim"
)

func sogamoso(t testing.TB) *network.Topology {
	t.Helper()
	topo, err := network.Sogamoso()
	require.NoError(t, err)

	return topo
}

// randomFeatures returns an N×cols matrix in [0,1) with the sink row zero.
func randomFeatures(t testing.TB, topo *network.Topology, cols int, rng *rand.Rand) *matrix.Dense {
	t.Helper()
	x, err := matrix.NewDense(topo.Len(), cols)
	require.NoError(t, err)
	x.Apply(func(i, _ int, _ float64) float64 {
		if i == topo.Sink() {
			return 0
		}

		return rng.Float64()
	})

	return x
}

// checkGradients compares analytic gradients against central differences of
// loss, one scalar at a time.
func checkGradients(t *testing.T, params []*optim.Param, loss func() float64, accumulate func()) {
	t.Helper()
	const h = 1e-6
	optim.ZeroGrad(params)
	accumulate()

	for _, p := range params {
		vals, grads := p.Value.Data(), p.Grad.Data()
		for i := range vals {
			orig := vals[i]
			vals[i] = orig + h
			up := loss()
			vals[i] = orig - h
			down := loss()
			vals[i] = orig

			numeric := (up - down) / (2 * h)
			tol := 1e-5 + 1e-4*math.Abs(numeric)
			require.InDelta(t, numeric, grads[i], tol, "%s[%d]", p.Name, i)
		}
	}
}
