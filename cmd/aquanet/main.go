// SPDX-License-Identifier: MIT

// Command aquanet generates Sogamoso network samples and trains the
// flow predictor on them.
//
//	aquanet topology
//	aquanet generate -n 100 -o sogamoso_gcn_dataset.csv
//	aquanet train --dataset sogamoso_gcn_dataset.csv --epochs 200
//	aquanet baseline
package main

import "github.com/katalvlaran/aquanet/cmd/aquanet/commands"

func main() {
	commands.Execute()
}
