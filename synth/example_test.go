// SPDX-License-Identifier: MIT

package synth_test

import (
	"fmt"

	"github.com/katalvlaran/aquanet/network"
	"github.com/katalvlaran/aquanet/synth"
)

// ExampleGenerate draws a reproducible dataset for the canonical network.
func ExampleGenerate() {
	topo, err := network.Sogamoso()
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	d, err := synth.Generate(topo, 100, synth.WithSeed(2024))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	first := d.Samples[0]
	fmt.Println("samples:", d.Len(), "first id:", first.ID)
	fmt.Println("readings per sample:", len(first.Readings))
	fmt.Println("target in range:", synth.DefaultDistribution.Contains(first.TotalDistribution))

	// Output:
	// samples: 100 first id: 1
	// readings per sample: 12
	// target in range: true
}
