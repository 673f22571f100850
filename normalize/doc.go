// SPDX-License-Identifier: MIT

// Package normalize implements per-column min-max feature scaling.
//
// A Scaler is fit exactly once on a reference matrix and then applied with
// the same statistics to every later row, so train and test features share
// one scale. Refitting is an error; build a new Scaler instead.
//
// Degenerate columns (max == min) have no defined scale. By default Fit
// rejects them with ErrZeroRange; WithZeroRangeFallback makes such a column
// transform to a constant and invert to its minimum.
package normalize
