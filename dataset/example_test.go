// SPDX-License-Identifier: MIT

package dataset_test

import (
	"fmt"

	"github.com/katalvlaran/aquanet/dataset"
)

// ExampleDataset_Split shows the ordered prefix split.
func ExampleDataset_Split() {
	d := dataset.Dataset{NodeIDs: []string{"DISTR"}}
	for id := 1; id <= 10; id++ {
		d.Samples = append(d.Samples, dataset.Sample{ID: id, Readings: make([]dataset.Reading, 1)})
	}
	train, test, err := d.Split(0.8)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println("train:", train.Samples[0].ID, "..", train.Samples[train.Len()-1].ID)
	fmt.Println("test: ", test.Samples[0].ID, "..", test.Samples[test.Len()-1].ID)

	// Output:
	// train: 1 .. 8
	// test:  9 .. 10
}
