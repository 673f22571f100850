// SPDX-License-Identifier: MIT

package normalize

import (
	"fmt"

	"github.com/katalvlaran/aquanet/matrix"
)

// Option configures a Scaler.
type Option func(*Scaler)

// WithZeroRangeFallback accepts degenerate columns: they transform to v and
// invert to the column minimum.
func WithZeroRangeFallback(v float64) Option {
	return func(s *Scaler) {
		s.allowZeroRange = true
		s.fallback = v
	}
}

// Scaler maps each column to (x - min) / (max - min).
type Scaler struct {
	mins, maxs     []float64
	degenerate     []int
	fitted         bool
	allowZeroRange bool
	fallback       float64
}

// New returns an unfitted Scaler.
func New(opts ...Option) *Scaler {
	s := &Scaler{}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Fit records per-column min and max of m.
//
// Errors:
//   - ErrAlreadyFitted on a second call.
//   - ErrZeroRange (column listed) unless WithZeroRangeFallback was given.
//   - matrix errors for nil or non-finite input.
func (s *Scaler) Fit(m *matrix.Dense) error {
	if s.fitted {
		return ErrAlreadyFitted
	}
	mins, maxs, err := matrix.ColumnMinMax(m)
	if err != nil {
		return fmt.Errorf("Fit: %w", err)
	}
	var degenerate []int
	for j := range mins {
		if maxs[j] == mins[j] {
			degenerate = append(degenerate, j)
		}
	}
	if len(degenerate) > 0 && !s.allowZeroRange {
		return fmt.Errorf("Fit: columns %v: %w", degenerate, ErrZeroRange)
	}
	s.mins, s.maxs, s.degenerate, s.fitted = mins, maxs, degenerate, true

	return nil
}

// Fitted reports whether Fit succeeded.
func (s *Scaler) Fitted() bool { return s.fitted }

// Width returns the fitted column count (0 before Fit).
func (s *Scaler) Width() int { return len(s.mins) }

// Min returns a copy of the per-column minima.
func (s *Scaler) Min() []float64 { return append([]float64(nil), s.mins...) }

// Max returns a copy of the per-column maxima.
func (s *Scaler) Max() []float64 { return append([]float64(nil), s.maxs...) }

// Degenerate returns the indices of zero-range columns accepted by the fallback.
func (s *Scaler) Degenerate() []int { return append([]int(nil), s.degenerate...) }

func (s *Scaler) check(width int) error {
	if !s.fitted {
		return ErrNotFitted
	}
	if width != len(s.mins) {
		return fmt.Errorf("%d columns, fitted %d: %w", width, len(s.mins), ErrColumnMismatch)
	}

	return nil
}

func (s *Scaler) forward(j int, v float64) float64 {
	span := s.maxs[j] - s.mins[j]
	if span == 0 {
		return s.fallback
	}

	return (v - s.mins[j]) / span
}

func (s *Scaler) backward(j int, v float64) float64 {
	return s.mins[j] + v*(s.maxs[j]-s.mins[j])
}

// TransformRow scales one row into a new slice.
func (s *Scaler) TransformRow(row []float64) ([]float64, error) {
	if err := s.check(len(row)); err != nil {
		return nil, fmt.Errorf("TransformRow: %w", err)
	}
	out := make([]float64, len(row))
	for j, v := range row {
		out[j] = s.forward(j, v)
	}

	return out, nil
}

// Transform scales every row of m into a new matrix.
func (s *Scaler) Transform(m *matrix.Dense) (*matrix.Dense, error) {
	if m == nil {
		return nil, fmt.Errorf("Transform: %w", matrix.ErrNilMatrix)
	}
	if err := s.check(m.Cols()); err != nil {
		return nil, fmt.Errorf("Transform: %w", err)
	}
	out := m.Clone()
	out.Apply(func(_, j int, v float64) float64 { return s.forward(j, v) })

	return out, nil
}

// Inverse maps scaled rows of m back to raw units.
func (s *Scaler) Inverse(m *matrix.Dense) (*matrix.Dense, error) {
	if m == nil {
		return nil, fmt.Errorf("Inverse: %w", matrix.ErrNilMatrix)
	}
	if err := s.check(m.Cols()); err != nil {
		return nil, fmt.Errorf("Inverse: %w", err)
	}
	out := m.Clone()
	out.Apply(func(_, j int, v float64) float64 { return s.backward(j, v) })

	return out, nil
}

// InverseValue maps one scaled value of column col back to raw units.
func (s *Scaler) InverseValue(col int, v float64) (float64, error) {
	if !s.fitted {
		return 0, fmt.Errorf("InverseValue: %w", ErrNotFitted)
	}
	if col < 0 || col >= len(s.mins) {
		return 0, fmt.Errorf("InverseValue(%d): %w", col, ErrColumnMismatch)
	}

	return s.backward(col, v), nil
}
