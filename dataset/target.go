// SPDX-License-Identifier: MIT

package dataset

import (
	"fmt"
	"strings"
)

// Target selects which scalar of a sample the model is trained to predict.
type Target uint8

const (
	// TotalDistribution is the sink outflow column (TotalDistribucion).
	TotalDistribution Target = iota
	// SinkFlow is the sink node's own flow reading (<sink>_caudal).
	SinkFlow
	// TotalInflow is the sum of source flows (TotalEntrada).
	TotalInflow
)

var targetNames = [...]string{"total_distribution", "sink_flow", "total_inflow"}

func (t Target) String() string {
	if int(t) < len(targetNames) {
		return targetNames[t]
	}

	return fmt.Sprintf("target(%d)", uint8(t))
}

// ParseTarget accepts the names written by String and the CSV column names.
func ParseTarget(s string) (Target, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "total_distribution", "totaldistribucion":
		return TotalDistribution, nil
	case "sink_flow", "sink":
		return SinkFlow, nil
	case "total_inflow", "totalentrada":
		return TotalInflow, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownTarget, s)
}

// Value returns the target of s; sink is the sink's node index.
func (t Target) Value(s Sample, sink int) float64 {
	switch t {
	case SinkFlow:
		return s.Readings[sink].Flow
	case TotalInflow:
		return s.TotalInflow
	default:
		return s.TotalDistribution
	}
}
