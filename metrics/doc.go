// SPDX-License-Identifier: MIT

// Package metrics exposes training and generation counters through a
// private Prometheus registry.
//
// A Registry satisfies train.Recorder, so a trainer reports each epoch
// without knowing about Prometheus. Callers read values back with Gather or
// write a text exposition with WriteText.
package metrics
