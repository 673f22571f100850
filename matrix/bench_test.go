// Package matrix_test provides benchmarks for the product kernels,
// using deterministic random fill for Dense matrices.
package matrix_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/katalvlaran/aquanet/matrix"
)

// benchSizes mirror node-feature shapes: 12 nodes, up to 16 hidden features.
var benchSizes = [][3]int{{12, 1, 16}, {12, 16, 8}, {64, 16, 16}}

// sink to defeat dead-code elimination
var sinkM *matrix.Dense

func fillRand(b *testing.B, r, c int, seed int64) *matrix.Dense {
	b.Helper()
	rng := rand.New(rand.NewSource(seed))
	vals := make([]float64, r*c)
	for i := range vals {
		vals[i] = rng.Float64()*2 - 1
	}
	m, err := matrix.NewDenseFrom(r, c, vals)
	if err != nil {
		b.Fatal(err)
	}

	return m
}

func BenchmarkMul(b *testing.B) {
	b.ReportAllocs()
	for _, s := range benchSizes {
		b.Run(fmt.Sprintf("%dx%dx%d", s[0], s[1], s[2]), func(b *testing.B) {
			x := fillRand(b, s[0], s[1], 1337)
			w := fillRand(b, s[1], s[2], 4242)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				m, err := matrix.Mul(x, w)
				if err != nil {
					b.Fatal(err)
				}
				sinkM = m
			}
		})
	}
}

func BenchmarkMulTransA(b *testing.B) {
	b.ReportAllocs()
	for _, s := range benchSizes {
		b.Run(fmt.Sprintf("%dx%dx%d", s[0], s[1], s[2]), func(b *testing.B) {
			x := fillRand(b, s[0], s[1], 7)
			g := fillRand(b, s[0], s[2], 8)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				m, err := matrix.MulTransA(x, g)
				if err != nil {
					b.Fatal(err)
				}
				sinkM = m
			}
		})
	}
}
