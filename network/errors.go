// SPDX-License-Identifier: MIT

package network

import (
	"errors"
	"fmt"
)

// ErrConfiguration is the category sentinel for malformed topologies. Every
// other error in this package wraps it.
var ErrConfiguration = errors.New("network: configuration error")

var (
	// ErrEmptyNodeID indicates a node with an empty identifier.
	ErrEmptyNodeID = fmt.Errorf("%w: empty node id", ErrConfiguration)

	// ErrDuplicateNode indicates the same identifier listed twice.
	ErrDuplicateNode = fmt.Errorf("%w: duplicate node", ErrConfiguration)

	// ErrUnknownNode indicates an edge endpoint that is not a declared node.
	ErrUnknownNode = fmt.Errorf("%w: unknown node", ErrConfiguration)

	// ErrDuplicateEdge indicates the same (from,to) pair listed twice.
	ErrDuplicateEdge = fmt.Errorf("%w: duplicate edge", ErrConfiguration)

	// ErrSelfLoop indicates an edge from a node to itself.
	ErrSelfLoop = fmt.Errorf("%w: self-loop", ErrConfiguration)

	// ErrCycleDetected indicates the edge set is not acyclic.
	ErrCycleDetected = fmt.Errorf("%w: cycle detected", ErrConfiguration)

	// ErrMissingSink indicates no node of category NetworkSink.
	ErrMissingSink = fmt.Errorf("%w: missing sink", ErrConfiguration)

	// ErrMultipleSinks indicates more than one NetworkSink node.
	ErrMultipleSinks = fmt.Errorf("%w: multiple sinks", ErrConfiguration)

	// ErrSinkHasOutEdges indicates an edge leaving the sink.
	ErrSinkHasOutEdges = fmt.Errorf("%w: sink has outgoing edges", ErrConfiguration)

	// ErrInvalidRange indicates lo > hi or a non-finite bound.
	ErrInvalidRange = fmt.Errorf("%w: invalid range", ErrConfiguration)

	// ErrUnknownCategory indicates a category name that cannot be parsed.
	ErrUnknownCategory = fmt.Errorf("%w: unknown category", ErrConfiguration)

	// ErrEdgeNotFound indicates WithoutEdge was asked to drop a missing edge.
	ErrEdgeNotFound = fmt.Errorf("%w: edge not found", ErrConfiguration)

	// ErrUnreachable indicates a reachability issue found under strict mode.
	ErrUnreachable = fmt.Errorf("%w: unreachable node", ErrConfiguration)
)
