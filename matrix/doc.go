// Package matrix provides the small dense linear-algebra surface used by the
// aquanet model: a row-major Dense container with safe accessors, the three
// product kernels needed for forward and backward passes (A·B, Aᵀ·B, A·Bᵀ),
// row-vector broadcasting, column reductions and column min/max statistics.
//
// Node feature matrices are tiny (12 nodes × at most 16 features), so every
// kernel allocates a fresh result and walks the flat buffer in a fixed i→k→j
// order. Results are therefore bit-for-bit reproducible for identical inputs.
//
// Errors:
//
//	ErrInvalidDimensions - requested shape has a non-positive side.
//	ErrOutOfRange        - row or column index outside the matrix.
//	ErrDimensionMismatch - operands are not conformable.
//	ErrNaNInf            - a non-finite value was written or detected.
//	ErrNilMatrix         - a nil *Dense was passed.
package matrix
