// SPDX-License-Identifier: MIT

package gnn

import "errors"

var (
	// ErrNilRand indicates a constructor called without a random source.
	ErrNilRand = errors.New("gnn: nil random source")

	// ErrInvalidLayer indicates a non-positive layer width or too few layers.
	ErrInvalidLayer = errors.New("gnn: invalid layer sizes")

	// ErrInputShape indicates an input whose shape does not match the model.
	ErrInputShape = errors.New("gnn: input shape mismatch")
)
