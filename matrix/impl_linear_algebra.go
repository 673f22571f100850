// SPDX-License-Identifier: MIT
// Package matrix - product kernels and broadcasting.
//
// Purpose:
//   - Mul, MulTransA and MulTransB cover the forward (X·W) and backward
//     (Xᵀ·G, G·Wᵀ) products of a dense layer without materialising transposes.
//   - AddRowVector broadcasts a bias row; ColumnSums reduces a gradient to a bias gradient.
//
// Determinism & Performance:
//   - Fixed i→k→j loop order for all products; zero multiplicands are skipped.
//   - One allocation per call (the result); operands are never mutated.

package matrix

// validateNotNil returns ErrNilMatrix when any operand is nil.
func validateNotNil(ms ...*Dense) error {
	for _, m := range ms {
		if m == nil {
			return ErrNilMatrix
		}
	}

	return nil
}

// Mul computes C = A·B.
//
// Inputs:
//   - a: r×n, b: n×c.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (a.Cols != b.Rows).
//
// Complexity:
//   - Time O(r*n*c), Space O(r*c).
func Mul(a, b *Dense) (*Dense, error) {
	if err := validateNotNil(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	if a.c != b.r {
		return nil, matrixErrorf(opMul, ErrDimensionMismatch)
	}
	res, err := NewDense(a.r, b.c)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	var (
		i, j, k          int
		av               float64
		offA, offB, offR int
	)
	for i = 0; i < a.r; i++ {
		offA = i * a.c
		offR = i * b.c
		for k = 0; k < a.c; k++ {
			av = a.data[offA+k]
			if av == 0 {
				continue // skip zero for performance
			}
			offB = k * b.c
			for j = 0; j < b.c; j++ {
				res.data[offR+j] += av * b.data[offB+j]
			}
		}
	}

	return res, nil
}

// MulTransA computes C = Aᵀ·B without forming Aᵀ.
//
// Inputs:
//   - a: n×r, b: n×c (shared leading dimension n).
//
// Returns:
//   - r×c matrix.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (a.Rows != b.Rows).
//
// Complexity:
//   - Time O(n*r*c), Space O(r*c).
func MulTransA(a, b *Dense) (*Dense, error) {
	if err := validateNotNil(a, b); err != nil {
		return nil, matrixErrorf(opMulTransA, err)
	}
	if a.r != b.r {
		return nil, matrixErrorf(opMulTransA, ErrDimensionMismatch)
	}
	res, err := NewDense(a.c, b.c)
	if err != nil {
		return nil, matrixErrorf(opMulTransA, err)
	}

	var (
		i, j, k    int
		av         float64
		offA, offB int
	)
	// Accumulate rank-1 updates row by row of the shared dimension.
	for k = 0; k < a.r; k++ {
		offA = k * a.c
		offB = k * b.c
		for i = 0; i < a.c; i++ {
			av = a.data[offA+i]
			if av == 0 {
				continue
			}
			for j = 0; j < b.c; j++ {
				res.data[i*b.c+j] += av * b.data[offB+j]
			}
		}
	}

	return res, nil
}

// MulTransB computes C = A·Bᵀ without forming Bᵀ.
//
// Inputs:
//   - a: r×n, b: c×n (shared trailing dimension n).
//
// Returns:
//   - r×c matrix.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (a.Cols != b.Cols).
//
// Complexity:
//   - Time O(r*c*n), Space O(r*c).
func MulTransB(a, b *Dense) (*Dense, error) {
	if err := validateNotNil(a, b); err != nil {
		return nil, matrixErrorf(opMulTransB, err)
	}
	if a.c != b.c {
		return nil, matrixErrorf(opMulTransB, ErrDimensionMismatch)
	}
	res, err := NewDense(a.r, b.r)
	if err != nil {
		return nil, matrixErrorf(opMulTransB, err)
	}

	var (
		i, j, k    int
		sum        float64
		offA, offB int
	)
	for i = 0; i < a.r; i++ {
		offA = i * a.c
		for j = 0; j < b.r; j++ {
			offB = j * b.c
			sum = 0
			for k = 0; k < a.c; k++ {
				sum += a.data[offA+k] * b.data[offB+k]
			}
			res.data[i*b.r+j] = sum
		}
	}

	return res, nil
}

// Transpose returns a new c×r matrix holding mᵀ.
// Complexity: Time O(r*c), Space O(r*c).
func Transpose(m *Dense) (*Dense, error) {
	if err := validateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	res, err := NewDense(m.c, m.r)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	var i, j int
	for i = 0; i < m.r; i++ {
		for j = 0; j < m.c; j++ {
			res.data[j*m.r+i] = m.data[i*m.c+j]
		}
	}

	return res, nil
}

// AddRowVector adds v to every row of m in place (bias broadcast).
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (len(v) != m.Cols).
//
// Complexity: O(r*c).
func AddRowVector(m *Dense, v []float64) error {
	if err := validateNotNil(m); err != nil {
		return matrixErrorf(opAddRowVector, err)
	}
	if len(v) != m.c {
		return matrixErrorf(opAddRowVector, ErrDimensionMismatch)
	}
	var i, j, base int
	for i = 0; i < m.r; i++ {
		base = i * m.c
		for j = 0; j < m.c; j++ {
			m.data[base+j] += v[j]
		}
	}

	return nil
}

// ColumnSums returns Σ_i m[i,j] for every column j.
// Complexity: O(r*c) time, O(c) space.
func ColumnSums(m *Dense) ([]float64, error) {
	if err := validateNotNil(m); err != nil {
		return nil, matrixErrorf(opColumnSums, err)
	}
	sums := make([]float64, m.c)
	var i, j, base int
	for i = 0; i < m.r; i++ {
		base = i * m.c
		for j = 0; j < m.c; j++ {
			sums[j] += m.data[base+j]
		}
	}

	return sums, nil
}
