// SPDX-License-Identifier: MIT

package network_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/aquanet/network"
)

func TestSogamoso_Shape(t *testing.T) {
	topo, err := network.Sogamoso()
	require.NoError(t, err)

	assert.Equal(t, 12, topo.Len())
	assert.Equal(t, 14, topo.EdgeCount())
	assert.Equal(t, 0, topo.OutDegree(topo.Sink()))
	assert.Equal(t, network.Distribution, topo.Node(topo.Sink()).ID)
	assert.Equal(t, topo.Len()-1, topo.Sink(), "sink is the last node")

	// Sink inflow comes from all five tanks.
	assert.Equal(t, topo.ByCategory(network.Tank), topo.InNeighbors(topo.Sink()))
}

func TestSogamoso_Ranges(t *testing.T) {
	topo, err := network.Sogamoso()
	require.NoError(t, err)

	i, ok := topo.Index(network.TankCH)
	require.True(t, ok)
	n := topo.Node(i)
	assert.True(t, n.HasVolume)
	assert.Equal(t, 10000.0, n.Volume)
	assert.Equal(t, network.Range{Lo: 2, Hi: 5}, n.Loss)

	i, _ = topo.Index(network.LagoTota)
	n = topo.Node(i)
	assert.False(t, n.HasVolume)
	assert.True(t, n.Loss.IsZero())
	assert.Equal(t, network.SourcePressure, n.Pressure)
}
