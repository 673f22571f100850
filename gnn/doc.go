// SPDX-License-Identifier: MIT

// Package gnn implements the message-passing predictor and its
// feed-forward baseline, with hand-written backward passes.
//
// Propagation:
//
// A Propagator is built once from a network.Topology. Row i of its operator
// P averages the feature rows of i's incoming neighbors; a node without
// incoming edges (a source, or an orphaned tank) uses its own row. The
// operator is a plain neighbor mean, not a degree-symmetric normalization.
//
// Layers:
//
//   - GraphConv:  H = ReLU(P·X·W + b)
//   - Linear:     y = x·W + b
//
// Models:
//
//   - Model: GraphConv(in→16) → GraphConv(16→8) → Linear(8→1) applied to the
//     sink row only. The sink's own input row is expected to be zero.
//   - FeedForward: Linear layers with ReLU after every layer, output
//     included; the survey layout is 3→3→5→1 (sources→plants→tanks→sink).
//
// Both satisfy the trainer's contract: Predict is pure, Accumulate adds
// d(loss)/d(param) into each Param.Grad and returns the squared error.
//
// Initialization:
//
// GraphConv weights are Glorot-uniform with zero bias; Linear layers use
// U(-1/√in, 1/√in) for weights and bias. All draws come from the injected
// *rand.Rand.
package gnn
