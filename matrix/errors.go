// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
//
// Every message is prefixed with "matrix: " so it can be grepped in logs.
// Kernels return these sentinels wrapped with the operation tag
// (fmt.Errorf("%s: %w", op, err)); callers match them with errors.Is.

package matrix

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrOutOfRange indicates that an index (row or column) is outside valid bounds.
	// At/Set/Row return this instead of panicking.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions between operands,
	// e.g. Mul where a.Cols != b.Rows, or a broadcast vector of the wrong length.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNaNInf signals a NaN or ±Inf value where finite values are required.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrNilMatrix indicates that a nil *Dense was used as an operand.
	ErrNilMatrix = errors.New("matrix: nil matrix")
)

// Operation tags used by matrixErrorf.
const (
	opMul          = "Mul"
	opMulTransA    = "MulTransA"
	opMulTransB    = "MulTransB"
	opTranspose    = "Transpose"
	opAddRowVector = "AddRowVector"
	opColumnSums   = "ColumnSums"
	opColumnMinMax = "ColumnMinMax"
	opFinite       = "ValidateFinite"
	opFrom         = "NewDenseFrom"
)

// matrixErrorf attaches an operation tag to err while keeping it matchable
// with errors.Is. err must be non-nil.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
