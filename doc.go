// SPDX-License-Identifier: MIT

// Package aquanet predicts the outflow of a small water capture and
// distribution network from the flows observed upstream of it.
//
// The network is a directed acyclic graph of sources, treatment plants,
// storage tanks and a single distribution sink. A message-passing model
// averages node features over in-neighbors for two rounds and reads the
// prediction off the sink row.
//
// Packages, leaves first:
//
//	matrix/      row-major Dense container and the product kernels
//	network/     validated Topology, the Sogamoso network, YAML topology files
//	dataset/     samples, in-order split, CSV persistence, node features
//	synth/       seeded sample generator and derived random streams
//	normalize/   per-column min-max Scaler
//	optim/       parameters, SGD and Adam
//	gnn/         GraphConv, Linear, the graph Model and the FeedForward baseline
//	train/       generic Trainer with per-epoch loss, test MSE and reports
//	equity/      sector supply split, scenarios and equity scores
//	metrics/     Prometheus registry for runs, epochs, samples and equity
//	config/      YAML run configuration
//	pipeline/    topology → dataset → features → trained model; allocation
//	cmd/aquanet  command-line interface
//
// Quick start:
//
//	p, _ := pipeline.New(config.Default())
//	res, err := p.Run(ctx)
//	fmt.Println(res.Report.FinalTrainLoss, res.Report.TestLoss)
//
// Every random draw is taken from a stream derived from one seed, so a
// configuration reproduces its dataset, weights and training order.
package aquanet
