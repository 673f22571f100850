// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Column statistics used by feature scaling (per-column min/max).
//   - Finite-value validation used by the trainer and the dataset loader.
//
// Determinism:
//   - Fixed i→j traversal; ties never matter because only extrema are kept.

package matrix

import "math"

// ColumnMinMax returns the per-column minimum and maximum of m.
//
// Implementation:
//   - Stage 1: seed mins/maxs from row 0.
//   - Stage 2: scan the remaining rows in order and update extrema.
//
// Errors:
//   - ErrNilMatrix for nil input.
//   - ErrNaNInf if a non-finite value is met (extrema would be meaningless).
//
// Complexity:
//   - Time O(r*c), Space O(c).
func ColumnMinMax(m *Dense) (mins, maxs []float64, err error) {
	if err = validateNotNil(m); err != nil {
		return nil, nil, matrixErrorf(opColumnMinMax, err)
	}
	mins = make([]float64, m.c)
	maxs = make([]float64, m.c)
	copy(mins, m.data[:m.c])
	copy(maxs, m.data[:m.c])

	var i, j int
	var v float64
	for i = 0; i < m.r; i++ {
		for j = 0; j < m.c; j++ {
			v = m.data[i*m.c+j]
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, nil, matrixErrorf(opColumnMinMax, denseErrorf(ctxAt, i, j, ErrNaNInf))
			}
			if v < mins[j] {
				mins[j] = v
			}
			if v > maxs[j] {
				maxs[j] = v
			}
		}
	}

	return mins, maxs, nil
}

// ValidateFinite returns ErrNaNInf (with coordinates) if m holds a NaN or ±Inf.
// Complexity: O(r*c).
func ValidateFinite(m *Dense) error {
	if err := validateNotNil(m); err != nil {
		return matrixErrorf(opFinite, err)
	}
	for off, v := range m.data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return matrixErrorf(opFinite, denseErrorf(ctxAt, off/m.c, off%m.c, ErrNaNInf))
		}
	}

	return nil
}
