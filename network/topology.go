// SPDX-License-Identifier: MIT

package network

import (
	"fmt"
)

// Option configures topology validation.
type Option func(*options)

type options struct {
	strictReachability bool
}

// WithStrictReachability turns Lint findings into construction errors
// (ErrUnreachable): every non-source node must have an incoming edge, every
// node must reach the sink and be reachable from a source.
func WithStrictReachability() Option {
	return func(o *options) { o.strictReachability = true }
}

// Topology is an immutable, validated network graph.
//
// Node order is the caller's order; indices returned by Index and the
// neighbor methods refer to it. All slices handed out are copies.
type Topology struct {
	nodes     []Node
	index     map[string]int
	edges     []Edge
	edgeIndex [][2]int
	in        [][]int // in[i]  = sources of edges into i, in edge order
	out       [][]int // out[i] = targets of edges out of i, in edge order
	sink      int
	order     []int // topological order of node indices
	opts      []Option
}

// BuildIndex maps ids to dense indices in input order and converts edges to
// index pairs.
//
// Errors:
//   - ErrEmptyNodeID, ErrDuplicateNode for bad ids.
//   - ErrUnknownNode when an edge endpoint is not in ids.
//
// Complexity: O(V + E).
func BuildIndex(ids []string, edges []Edge) (map[string]int, [][2]int, error) {
	index := make(map[string]int, len(ids))
	for i, id := range ids {
		if id == "" {
			return nil, nil, fmt.Errorf("node #%d: %w", i, ErrEmptyNodeID)
		}
		if _, dup := index[id]; dup {
			return nil, nil, fmt.Errorf("node %q: %w", id, ErrDuplicateNode)
		}
		index[id] = i
	}

	pairs := make([][2]int, 0, len(edges))
	for _, e := range edges {
		from, ok := index[e.From]
		if !ok {
			return nil, nil, fmt.Errorf("edge %s: %q: %w", e, e.From, ErrUnknownNode)
		}
		to, ok := index[e.To]
		if !ok {
			return nil, nil, fmt.Errorf("edge %s: %q: %w", e, e.To, ErrUnknownNode)
		}
		pairs = append(pairs, [2]int{from, to})
	}

	return index, pairs, nil
}

// New validates nodes and edges and builds a Topology.
//
// Implementation:
//   - Stage 1: index ids (BuildIndex) and validate ranges, filling default pressures.
//   - Stage 2: reject self-loops and duplicate edges; build in/out adjacency.
//   - Stage 3: locate the single NetworkSink and reject edges leaving it.
//   - Stage 4: compute a topological order (fails on cycles).
//   - Stage 5: under WithStrictReachability, reject any Lint finding.
//
// Complexity: O(V + E).
func New(nodes []Node, edges []Edge, opts ...Option) (*Topology, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	ids := make([]string, len(nodes))
	for i := range nodes {
		ids[i] = nodes[i].ID
	}
	index, pairs, err := BuildIndex(ids, edges)
	if err != nil {
		return nil, err
	}

	t := &Topology{
		nodes:     make([]Node, len(nodes)),
		index:     index,
		edges:     append([]Edge(nil), edges...),
		edgeIndex: pairs,
		in:        make([][]int, len(nodes)),
		out:       make([][]int, len(nodes)),
		sink:      -1,
		opts:      append([]Option(nil), opts...),
	}

	for i, n := range nodes {
		if n.Pressure.IsZero() {
			n.Pressure = DefaultPressure(n.Category)
		}
		for _, r := range []struct {
			name string
			rng  Range
		}{{"flow", n.Flow}, {"loss", n.Loss}, {"pressure", n.Pressure}} {
			if err = r.rng.validate(); err != nil {
				return nil, fmt.Errorf("node %q %s [%g,%g]: %w", n.ID, r.name, r.rng.Lo, r.rng.Hi, err)
			}
		}
		if n.Category > NetworkSink {
			return nil, fmt.Errorf("node %q: %w", n.ID, ErrUnknownCategory)
		}
		if n.Category == NetworkSink {
			if t.sink >= 0 {
				return nil, fmt.Errorf("nodes %q and %q: %w", t.nodes[t.sink].ID, n.ID, ErrMultipleSinks)
			}
			t.sink = i
		}
		t.nodes[i] = n
	}
	if t.sink < 0 {
		return nil, ErrMissingSink
	}

	seen := make(map[[2]int]struct{}, len(pairs))
	for k, p := range pairs {
		if p[0] == p[1] {
			return nil, fmt.Errorf("edge %s: %w", edges[k], ErrSelfLoop)
		}
		if _, dup := seen[p]; dup {
			return nil, fmt.Errorf("edge %s: %w", edges[k], ErrDuplicateEdge)
		}
		seen[p] = struct{}{}
		if p[0] == t.sink {
			return nil, fmt.Errorf("edge %s: %w", edges[k], ErrSinkHasOutEdges)
		}
		t.out[p[0]] = append(t.out[p[0]], p[1])
		t.in[p[1]] = append(t.in[p[1]], p[0])
	}

	if t.order, err = topologicalOrder(t.out); err != nil {
		return nil, err
	}

	if o.strictReachability {
		if issues := t.Lint(); len(issues) > 0 {
			return nil, fmt.Errorf("%s: %w", issues[0], ErrUnreachable)
		}
	}

	return t, nil
}

// Len returns the number of nodes.
func (t *Topology) Len() int { return len(t.nodes) }

// EdgeCount returns the number of edges.
func (t *Topology) EdgeCount() int { return len(t.edges) }

// Node returns the node at index i. It panics on an out-of-range index, like
// a slice access.
func (t *Topology) Node(i int) Node { return t.nodes[i] }

// Nodes returns a copy of all nodes in index order.
func (t *Topology) Nodes() []Node { return append([]Node(nil), t.nodes...) }

// IDs returns node identifiers in index order.
func (t *Topology) IDs() []string {
	ids := make([]string, len(t.nodes))
	for i, n := range t.nodes {
		ids[i] = n.ID
	}

	return ids
}

// Index returns the dense index of id.
func (t *Topology) Index(id string) (int, bool) {
	i, ok := t.index[id]

	return i, ok
}

// Edges returns a copy of the edge list in declaration order.
func (t *Topology) Edges() []Edge { return append([]Edge(nil), t.edges...) }

// EdgeIndex returns the (from,to) index pairs in declaration order.
func (t *Topology) EdgeIndex() [][2]int { return append([][2]int(nil), t.edgeIndex...) }

// InNeighbors returns the indices with an edge into i.
func (t *Topology) InNeighbors(i int) []int { return append([]int(nil), t.in[i]...) }

// OutNeighbors returns the indices i has an edge into.
func (t *Topology) OutNeighbors(i int) []int { return append([]int(nil), t.out[i]...) }

// InDegree returns len(InNeighbors(i)) without copying.
func (t *Topology) InDegree(i int) int { return len(t.in[i]) }

// OutDegree returns len(OutNeighbors(i)) without copying.
func (t *Topology) OutDegree(i int) int { return len(t.out[i]) }

// Sink returns the index of the NetworkSink node.
func (t *Topology) Sink() int { return t.sink }

// ByCategory returns the indices of nodes of category c in index order.
func (t *Topology) ByCategory(c Category) []int {
	var idx []int
	for i, n := range t.nodes {
		if n.Category == c {
			idx = append(idx, i)
		}
	}

	return idx
}

// TopologicalOrder returns node indices such that every edge u→v has u before v.
func (t *Topology) TopologicalOrder() []int { return append([]int(nil), t.order...) }
