// SPDX-License-Identifier: MIT

package normalize

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/aquanet/dataset"
)

var (
	// ErrNotFitted indicates a transform before Fit.
	ErrNotFitted = errors.New("normalize: scaler not fitted")

	// ErrAlreadyFitted indicates a second Fit on the same Scaler.
	ErrAlreadyFitted = errors.New("normalize: scaler already fitted")

	// ErrColumnMismatch indicates input width differing from the fitted width.
	ErrColumnMismatch = fmt.Errorf("%w: normalize: column count mismatch", dataset.ErrData)

	// ErrZeroRange indicates a column whose maximum equals its minimum.
	ErrZeroRange = fmt.Errorf("%w: normalize: zero-range column", dataset.ErrData)

	// ErrUnknownScope indicates a scope name that cannot be parsed.
	ErrUnknownScope = errors.New("normalize: unknown scope")
)
