// SPDX-License-Identifier: MIT

package dataset

import (
	"errors"
	"fmt"
)

// ErrData is the category sentinel for malformed or inconsistent data.
// Packages consuming datasets (normalize) wrap it too.
var ErrData = errors.New("dataset: data error")

var (
	// ErrMissingColumn indicates a CSV header without an expected column.
	ErrMissingColumn = fmt.Errorf("%w: missing column", ErrData)

	// ErrNotNumeric indicates a cell that does not parse as a number.
	ErrNotNumeric = fmt.Errorf("%w: not numeric", ErrData)

	// ErrEmpty indicates input with no header row.
	ErrEmpty = fmt.Errorf("%w: empty input", ErrData)

	// ErrNodeMismatch indicates samples recorded for a different node list.
	ErrNodeMismatch = fmt.Errorf("%w: node list mismatch", ErrData)

	// ErrInvalidFraction indicates a split fraction outside [0,1].
	ErrInvalidFraction = fmt.Errorf("%w: split fraction must be in [0,1]", ErrData)

	// ErrUnknownTarget indicates a target name that cannot be parsed.
	ErrUnknownTarget = fmt.Errorf("%w: unknown target", ErrData)

	// ErrNoSamples indicates an operation that needs at least one sample.
	ErrNoSamples = fmt.Errorf("%w: no samples", ErrData)
)
