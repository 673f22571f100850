// SPDX-License-Identifier: MIT

// Package equity splits the available supply of the Sogamoso network among
// its ten distribution sectors and scores how evenly each split satisfies
// demand.
//
// What:
//
//   - SogamosoSectors and SogamosoSources describe the demand side (sector
//     population, mean demand, historical loss) and the nominal capacity of
//     each capture source. CheckSources ties the sources to a
//     *network.Topology.
//   - Available applies a Scenario (normal, drought, peak, failure) to the
//     sources; Demands draws an hourly demand profile.
//   - Proportional is the reference split: every sector receives the same
//     fraction of its demand.
//   - Allocator is a learned split: a softmax over per-sector weight ×
//     demand × (1 - loss), trained to pull each sector's satisfaction ratio
//     toward the mean.
//   - Measure reports the satisfaction ratios, their mean, standard
//     deviation, coefficient of variation, Gini coefficient and an equity
//     index of max(0, 100 - CV).
//
// Errors:
//
// Every failure matches ErrEquity with errors.Is.
//
// Complexity: all operations are O(S) or O(S log S) in the sector count,
// Train is O(epochs·S).
package equity
