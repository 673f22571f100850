// SPDX-License-Identifier: MIT

// Package optim holds trainable parameters and the first-order optimizers
// that update them.
//
// A Param pairs a value matrix with a gradient matrix of the same shape.
// Models own their Params and accumulate into Grad during a backward pass;
// an Optimizer reads Grad and updates Value in place. ZeroGrad resets the
// gradients between samples.
//
// Optimizers keep per-parameter state keyed by *Param, so the same slice of
// Params must be passed to every Step.
package optim
