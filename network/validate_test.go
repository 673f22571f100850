// SPDX-License-Identifier: MIT

package network_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/aquanet/network"
)

func position(order []int, v int) int {
	for i, x := range order {
		if x == v {
			return i
		}
	}

	return -1
}

func TestTopologicalOrder_RespectsEdges(t *testing.T) {
	topo, err := network.Sogamoso()
	require.NoError(t, err)

	order := topo.TopologicalOrder()
	require.Len(t, order, topo.Len())
	for _, p := range topo.EdgeIndex() {
		assert.Less(t, position(order, p[0]), position(order, p[1]), "edge %v", p)
	}
}

func TestLint_Sogamoso(t *testing.T) {
	topo, err := network.Sogamoso()
	require.NoError(t, err)

	assert.Equal(t, []string{network.TankPorv}, topo.Orphans())
	assert.Equal(t, []string{network.PlantSur}, topo.DeadEnds())
	assert.Equal(t, []string{network.TankPorv}, topo.Unfed())
	assert.Equal(t, []network.Issue{
		{Kind: network.IssueOrphan, Node: network.TankPorv},
		{Kind: network.IssueDeadEnd, Node: network.PlantSur},
		{Kind: network.IssueUnfed, Node: network.TankPorv},
	}, topo.Lint())
}

func TestStrictReachability(t *testing.T) {
	_, err := network.Sogamoso(network.WithStrictReachability())
	assert.ErrorIs(t, err, network.ErrUnreachable)
	assert.ErrorIs(t, err, network.ErrConfiguration)

	// Closing both gaps satisfies strict mode.
	edges := append(network.SogamosoEdges(),
		network.Edge{From: network.PlantSur, To: network.TankPorv},
	)
	topo, err := network.New(network.SogamosoNodes(), edges, network.WithStrictReachability())
	require.NoError(t, err)
	assert.Empty(t, topo.Lint())
}

func TestHasPathToSink(t *testing.T) {
	topo, err := network.Sogamoso()
	require.NoError(t, err)
	for i, id := range topo.IDs() {
		if id == network.PlantSur {
			assert.False(t, topo.HasPathToSink(i), id)
			continue
		}
		assert.True(t, topo.HasPathToSink(i), id)
	}
}

func TestWithEdge_WithoutEdge(t *testing.T) {
	topo, err := network.Sogamoso()
	require.NoError(t, err)

	extra := network.Edge{From: network.PlantSur, To: network.TankPorv}
	grown, err := topo.WithEdge(extra)
	require.NoError(t, err)
	assert.Equal(t, 15, grown.EdgeCount())
	assert.Equal(t, 14, topo.EdgeCount(), "receiver must be unchanged")

	shrunk, err := grown.WithoutEdge(extra)
	require.NoError(t, err)
	assert.Equal(t, topo.Edges(), shrunk.Edges())

	_, err = topo.WithoutEdge(extra)
	assert.ErrorIs(t, err, network.ErrEdgeNotFound)

	_, err = topo.WithEdge(network.Edge{From: network.TankCH, To: network.PlantCH})
	assert.ErrorIs(t, err, network.ErrCycleDetected)
}
