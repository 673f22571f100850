// SPDX-License-Identifier: MIT

// Package synth generates synthetic operating-condition samples for a
// network topology.
//
// Every value is drawn uniformly and independently from the node's
// configured range: flow from Node.Flow, loss from Node.Loss (0 when the
// node has none), pressure from Node.Pressure. Volume is copied from the
// node or left NaN. TotalEntrada is the sum of source flows;
// TotalDistribucion is drawn on its own from WithDistributionRange and is
// deliberately not derived from upstream flows.
//
// Randomness is always injected: Generate refuses to run without WithRand or
// WithSeed, so identical seeds give identical datasets.
package synth
