// Package network describes the physical water network as an immutable,
// validated directed graph: typed nodes (sources, treatment plants, storage
// tanks and one distribution sink) connected by unweighted directed edges.
//
// What:
//
//   - BuildIndex maps an ordered list of node IDs to dense indices [0,N) and
//     converts ID edges into index pairs (the edge-index structure consumed by
//     message passing).
//   - New validates a full node/edge description and returns a *Topology with
//     neighbor lookups, a topological order and the sink index.
//   - Lint reports soft reachability issues (orphans, dead ends, unfed nodes)
//     that are tolerated unless WithStrictReachability is set.
//   - Sogamoso returns the canonical 12-node / 14-edge capture network.
//   - LoadYAML / WriteYAML read and write topology files.
//
// Errors:
//
// Every structural failure matches ErrConfiguration with errors.Is; the
// specific sentinels (ErrUnknownNode, ErrDuplicateNode, ErrCycleDetected,
// ErrMissingSink, ...) can be matched individually.
//
// Complexity:
//
//   - New:     O(V + E)
//   - Lint:    O(V + E)
//   - Queries: O(1) or O(deg)
package network
