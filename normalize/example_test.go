// SPDX-License-Identifier: MIT

package normalize_test

import (
	"fmt"

	"github.com/katalvlaran/aquanet/matrix"
	"github.com/katalvlaran/aquanet/normalize"
)

// ExampleScaler fits on a reference set and reuses it for a new row.
func ExampleScaler() {
	ref, _ := matrix.NewDenseFrom(3, 2, []float64{
		250, 10,
		300, 20,
		270, 12,
	})
	s := normalize.New()
	if err := s.Fit(ref); err != nil {
		fmt.Println("error:", err)
		return
	}
	row, _ := s.TransformRow([]float64{275, 15})
	fmt.Println(row)
	raw, _ := s.InverseValue(0, row[0])
	fmt.Println(raw)

	// Output:
	// [0.5 0.5]
	// 275
}
