// SPDX-License-Identifier: MIT

package dataset_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/aquanet/dataset"
	"github.com/katalvlaran/aquanet/network"
)

// sogamoso returns the canonical topology or fails the test.
func sogamoso(t testing.TB) *network.Topology {
	t.Helper()
	topo, err := network.Sogamoso()
	require.NoError(t, err)

	return topo
}

// rampDataset builds n samples over topo where node i of sample k has flow
// 10*i + k, a loss of i/10, volume from the node definition and pressure 30.
func rampDataset(topo *network.Topology, n int) dataset.Dataset {
	d := dataset.Dataset{NodeIDs: topo.IDs()}
	for k := 1; k <= n; k++ {
		s := dataset.Sample{ID: k, Readings: make([]dataset.Reading, topo.Len())}
		for i, node := range topo.Nodes() {
			vol := math.NaN()
			if node.HasVolume {
				vol = node.Volume
			}
			s.Readings[i] = dataset.Reading{
				Flow:     float64(10*i + k),
				Loss:     float64(i) / 10,
				Volume:   vol,
				Pressure: 30,
			}
			if node.Category == network.Source {
				s.TotalInflow += s.Readings[i].Flow
			}
		}
		s.TotalDistribution = 250 + float64(k)
		d.Samples = append(d.Samples, s)
	}

	return d
}
