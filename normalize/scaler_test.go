// SPDX-License-Identifier: MIT

package normalize_test

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/aquanet/dataset"
	"github.com/katalvlaran/aquanet/matrix"
	"github.com/katalvlaran/aquanet/normalize"
)

func dense(t testing.TB, rows, cols int, values ...float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFrom(rows, cols, values)
	require.NoError(t, err)

	return m
}

func TestScaler_FitTransform(t *testing.T) {
	s := normalize.New()
	require.NoError(t, s.Fit(dense(t, 3, 2,
		0, 10,
		5, 30,
		10, 20,
	)))
	assert.True(t, s.Fitted())
	assert.Equal(t, 2, s.Width())
	assert.Equal(t, []float64{0, 10}, s.Min())
	assert.Equal(t, []float64{10, 30}, s.Max())
	assert.Empty(t, s.Degenerate())

	row, err := s.TransformRow([]float64{5, 25})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.5, 0.75}, row, 1e-12)

	// Values outside the reference range extrapolate linearly.
	row, err = s.TransformRow([]float64{20, 0})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{2, -0.5}, row, 1e-12)

	out, err := s.Transform(dense(t, 1, 2, 10, 10))
	require.NoError(t, err)
	assert.Equal(t, "[1, 0]\n", out.String())
}

func TestScaler_Lifecycle(t *testing.T) {
	s := normalize.New()

	_, err := s.TransformRow([]float64{1})
	assert.ErrorIs(t, err, normalize.ErrNotFitted)
	_, err = s.Inverse(dense(t, 1, 1, 0))
	assert.ErrorIs(t, err, normalize.ErrNotFitted)
	_, err = s.InverseValue(0, 0)
	assert.ErrorIs(t, err, normalize.ErrNotFitted)

	require.NoError(t, s.Fit(dense(t, 2, 1, 1, 2)))
	assert.ErrorIs(t, s.Fit(dense(t, 2, 1, 5, 9)), normalize.ErrAlreadyFitted)
	assert.Equal(t, []float64{1}, s.Min(), "refit must not change statistics")

	_, err = s.TransformRow([]float64{1, 2})
	assert.ErrorIs(t, err, normalize.ErrColumnMismatch)
	assert.ErrorIs(t, err, dataset.ErrData)
	_, err = s.InverseValue(3, 0)
	assert.ErrorIs(t, err, normalize.ErrColumnMismatch)
}

func TestScaler_ZeroRange(t *testing.T) {
	m := dense(t, 2, 2,
		4, 1,
		4, 3,
	)
	err := normalize.New().Fit(m)
	assert.ErrorIs(t, err, normalize.ErrZeroRange)
	assert.ErrorIs(t, err, dataset.ErrData)

	s := normalize.New(normalize.WithZeroRangeFallback(0))
	require.NoError(t, s.Fit(m))
	assert.Equal(t, []int{0}, s.Degenerate())

	row, err := s.TransformRow([]float64{4, 2})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0.5}, row)
	for _, v := range row {
		assert.False(t, math.IsNaN(v))
	}

	back, err := s.InverseValue(0, row[0])
	require.NoError(t, err)
	assert.Equal(t, 4.0, back)
}

func TestScaler_RejectsNonFinite(t *testing.T) {
	m := dense(t, 2, 1, 1, 2)
	m.Data()[1] = math.NaN()
	assert.ErrorIs(t, normalize.New().Fit(m), matrix.ErrNaNInf)
	assert.ErrorIs(t, normalize.New().Fit(nil), matrix.ErrNilMatrix)
}

func TestScaler_InverseProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 300
	properties := gopter.NewProperties(parameters)

	properties.Property("inverse(transform(x)) == x for non-zero ranges", prop.ForAll(
		func(lo, width, x float64) bool {
			s := normalize.New()
			ref, err := matrix.NewDenseFrom(2, 1, []float64{lo, lo + width})
			if err != nil || s.Fit(ref) != nil {
				return false
			}
			scaled, err := s.TransformRow([]float64{x})
			if err != nil {
				return false
			}
			back, err := s.InverseValue(0, scaled[0])
			if err != nil {
				return false
			}
			tol := 1e-9 * math.Max(1, math.Max(math.Abs(x), math.Abs(lo)+width))

			return math.Abs(back-x) <= tol
		},
		gen.Float64Range(-1e4, 1e4),
		gen.Float64Range(1e-3, 1e4),
		gen.Float64Range(-2e4, 2e4),
	))

	properties.TestingRun(t)
}

func TestScaler_InverseMatrix(t *testing.T) {
	ref := dense(t, 3, 2, 250, 10, 300, 20, 275, 15)
	s := normalize.New()
	require.NoError(t, s.Fit(ref))

	scaled, err := s.Transform(ref)
	require.NoError(t, err)
	back, err := s.Inverse(scaled)
	require.NoError(t, err)
	for i, v := range back.Data() {
		assert.InDelta(t, ref.Data()[i], v, 1e-9)
	}
}

func TestParseScope(t *testing.T) {
	sc, err := normalize.ParseScope("")
	require.NoError(t, err)
	assert.Equal(t, normalize.ScopeTrain, sc)
	sc, err = normalize.ParseScope("FULL")
	require.NoError(t, err)
	assert.Equal(t, normalize.ScopeFull, sc)
	assert.Equal(t, "full", sc.String())
	_, err = normalize.ParseScope("test")
	assert.ErrorIs(t, err, normalize.ErrUnknownScope)
}
