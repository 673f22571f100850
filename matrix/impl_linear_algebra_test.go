// SPDX-License-Identifier: MIT

package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/aquanet/matrix"
)

func TestMul_Small(t *testing.T) {
	a := NewFilledDense(t, 2, 3, []float64{1, 2, 3, 4, 5, 6})
	b := NewFilledDense(t, 3, 2, []float64{7, 8, 9, 10, 11, 12})

	c, err := matrix.Mul(a, b)
	require.NoError(t, err)
	CompareClose(t, c, NewFilledDense(t, 2, 2, []float64{58, 64, 139, 154}), epsTight)
}

func TestMul_Mismatch(t *testing.T) {
	a := NewFilledDense(t, 2, 3, make([]float64, 6))
	_, err := matrix.Mul(a, a)
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = matrix.Mul(nil, a)
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)
}

// MulTransA and MulTransB must agree with an explicit transpose followed by Mul.
func TestMulTrans_MatchExplicitTranspose(t *testing.T) {
	a := NewFilledDense(t, 3, 2, []float64{1, -2, 0, 4, 5, 0.5})
	b := NewFilledDense(t, 3, 4, []float64{1, 2, 3, 4, 0, -1, 2, 1, 3, 3, 0, 2})

	at, err := matrix.Transpose(a)
	require.NoError(t, err)
	want, err := matrix.Mul(at, b)
	require.NoError(t, err)
	got, err := matrix.MulTransA(a, b)
	require.NoError(t, err)
	CompareClose(t, got, want, epsTight)

	c := NewFilledDense(t, 4, 2, []float64{1, 0, 2, 1, -1, 3, 0.5, 0.5})
	ct, err := matrix.Transpose(c)
	require.NoError(t, err)
	want, err = matrix.Mul(a, ct)
	require.NoError(t, err)
	got, err = matrix.MulTransB(a, c)
	require.NoError(t, err)
	CompareClose(t, got, want, epsTight)

	_, err = matrix.MulTransA(a, c)
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.MulTransB(a, b)
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestAddRowVectorAndColumnSums(t *testing.T) {
	m := NewFilledDense(t, 2, 3, []float64{1, 2, 3, 4, 5, 6})
	require.NoError(t, matrix.AddRowVector(m, []float64{10, 20, 30}))
	assert.Equal(t, []float64{11, 22, 33, 14, 25, 36}, m.Data())

	sums, err := matrix.ColumnSums(m)
	require.NoError(t, err)
	assert.Equal(t, []float64{25, 47, 69}, sums)

	assert.ErrorIs(t, matrix.AddRowVector(m, []float64{1}), matrix.ErrDimensionMismatch)
}
