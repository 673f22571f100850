// SPDX-License-Identifier: MIT

package network

import "fmt"

// WithEdge returns a new Topology with e appended to the edge list. The
// receiver is unchanged. The result is validated like New (same options),
// so an edge closing a cycle yields ErrCycleDetected.
func (t *Topology) WithEdge(e Edge) (*Topology, error) {
	edges := append(t.Edges(), e)

	return New(t.nodes, edges, t.opts...)
}

// WithoutEdge returns a new Topology without e. The receiver is unchanged.
func (t *Topology) WithoutEdge(e Edge) (*Topology, error) {
	edges := make([]Edge, 0, len(t.edges))
	found := false
	for _, x := range t.edges {
		if x == e {
			found = true
			continue
		}
		edges = append(edges, x)
	}
	if !found {
		return nil, fmt.Errorf("edge %s: %w", e, ErrEdgeNotFound)
	}

	return New(t.nodes, edges, t.opts...)
}
