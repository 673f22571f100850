// SPDX-License-Identifier: MIT

// Package pipeline wires the aquanet stages together from a config.Config.
//
// A run is a fixed sequence of typed stages:
//
//	topo, _ := p.BuildTopology()     // Sogamoso or a topology file
//	ds, _   := p.Ingest(topo)        // CSV file or synthetic samples
//	prep, _ := p.Prepare(topo, ds)   // split, scale, node feature matrices
//	res, _  := p.Train(ctx, topo, prep)
//
// Run executes all four. RunBaseline fits the graph-free feed-forward
// network on the single configured pair instead.
//
// Every random draw comes from a stream derived from Config.Seed
// (synth.DeriveRand), so a config reproduces its dataset, its initial
// weights and its shuffling order independently of each other.
package pipeline
