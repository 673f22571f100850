// SPDX-License-Identifier: MIT

package network

import "fmt"

// visitation colours for the cycle-detecting DFS
const (
	white = iota // not visited
	gray         // on the recursion stack
	black        // fully explored
)

// topologicalOrder runs a three-colour DFS over out-adjacency from every
// unvisited node in index order and returns the reversed post-order.
// A gray→gray edge is a back-edge and yields ErrCycleDetected.
//
// Complexity: O(V + E) time, O(V) space.
func topologicalOrder(out [][]int) ([]int, error) {
	state := make([]int, len(out))
	order := make([]int, 0, len(out))

	var visit func(u int) error
	visit = func(u int) error {
		switch state[u] {
		case gray:
			return fmt.Errorf("at node #%d: %w", u, ErrCycleDetected)
		case black:
			return nil
		}
		state[u] = gray
		for _, v := range out[u] {
			if err := visit(v); err != nil {
				return err
			}
		}
		state[u] = black
		order = append(order, u)

		return nil
	}

	for u := range out {
		if state[u] == white {
			if err := visit(u); err != nil {
				return nil, err
			}
		}
	}
	for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
		order[i], order[j] = order[j], order[i]
	}

	return order, nil
}

// reach performs a BFS from the start indices over adj and returns the set
// of visited indices (starts included).
func reach(adj [][]int, starts []int) []bool {
	seen := make([]bool, len(adj))
	queue := make([]int, 0, len(adj))
	for _, s := range starts {
		if !seen[s] {
			seen[s] = true
			queue = append(queue, s)
		}
	}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for _, v := range adj[u] {
			if !seen[v] {
				seen[v] = true
				queue = append(queue, v)
			}
		}
	}

	return seen
}

// HasPathToSink reports whether a directed path leads from i to the sink.
// The sink trivially reaches itself.
func (t *Topology) HasPathToSink(i int) bool {
	return reach(t.in, []int{t.sink})[i]
}

// Orphans returns the IDs of non-source nodes with no incoming edge.
// Such nodes act as their own neighborhood during propagation.
func (t *Topology) Orphans() []string {
	var ids []string
	for i, n := range t.nodes {
		if n.Category != Source && len(t.in[i]) == 0 {
			ids = append(ids, n.ID)
		}
	}

	return ids
}

// DeadEnds returns the IDs of nodes with no directed path to the sink.
func (t *Topology) DeadEnds() []string {
	toSink := reach(t.in, []int{t.sink})
	var ids []string
	for i, ok := range toSink {
		if !ok {
			ids = append(ids, t.nodes[i].ID)
		}
	}

	return ids
}

// Unfed returns the IDs of nodes that no source reaches.
func (t *Topology) Unfed() []string {
	fed := reach(t.out, t.ByCategory(Source))
	var ids []string
	for i, ok := range fed {
		if !ok {
			ids = append(ids, t.nodes[i].ID)
		}
	}

	return ids
}

// Lint returns every soft reachability finding, grouped by kind
// (orphans, dead ends, unfed) and in node order within a kind.
func (t *Topology) Lint() []Issue {
	var issues []Issue
	for _, id := range t.Orphans() {
		issues = append(issues, Issue{Kind: IssueOrphan, Node: id})
	}
	for _, id := range t.DeadEnds() {
		issues = append(issues, Issue{Kind: IssueDeadEnd, Node: id})
	}
	for _, id := range t.Unfed() {
		issues = append(issues, Issue{Kind: IssueUnfed, Node: id})
	}

	return issues
}
