// SPDX-License-Identifier: MIT

// Package dataset holds operating-condition samples of a water network and
// the conversions the learning core needs from them.
//
// A Dataset is an ordered list of Samples plus the node order they were
// recorded in. Order matters: Split is a prefix split, never a shuffle.
//
// What:
//
//   - WriteCSV / ReadCSV persist datasets in the survey column layout
//     (sample_id, <node>_caudal, <node>_perdida, <node>_volumen,
//     <node>_presion, ..., TotalEntrada, TotalDistribucion).
//   - FlowMatrix extracts the raw flow columns used to fit a scaler.
//   - NodeFeatures turns one scaled flow row into the N×1 feature matrix of
//     a propagation round, with the sink row masked to zero.
//   - Target selects the training target of a sample.
//
// Errors:
//
// Every data error matches ErrData with errors.Is.
package dataset
