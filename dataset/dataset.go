// SPDX-License-Identifier: MIT

package dataset

import (
	"fmt"
	"math"

	"github.com/katalvlaran/aquanet/network"
)

// Reading is the state of one node in one sample. Volume is NaN for nodes
// without storage.
type Reading struct {
	Flow     float64
	Loss     float64
	Volume   float64
	Pressure float64
}

// HasVolume reports whether the reading carries a storage volume.
func (r Reading) HasVolume() bool { return !math.IsNaN(r.Volume) }

// Sample is one row of observed or simulated values.
//
// TotalInflow is the sum of source flows. TotalDistribution is the sink's
// observed outflow; it is recorded independently of the upstream readings
// and is not required to balance them.
type Sample struct {
	ID                int
	Readings          []Reading // one per node, dataset node order
	TotalInflow       float64
	TotalDistribution float64
}

// Dataset is an ordered list of samples over a fixed node order.
type Dataset struct {
	NodeIDs []string
	Samples []Sample
}

// Len returns the number of samples.
func (d Dataset) Len() int { return len(d.Samples) }

// Check verifies that d was recorded over topo's nodes in topo's order and
// that every sample carries one reading per node.
func (d Dataset) Check(topo *network.Topology) error {
	ids := topo.IDs()
	if len(ids) != len(d.NodeIDs) {
		return fmt.Errorf("%d nodes, topology has %d: %w", len(d.NodeIDs), len(ids), ErrNodeMismatch)
	}
	for i := range ids {
		if ids[i] != d.NodeIDs[i] {
			return fmt.Errorf("node #%d is %q, topology has %q: %w", i, d.NodeIDs[i], ids[i], ErrNodeMismatch)
		}
	}
	for _, s := range d.Samples {
		if len(s.Readings) != len(ids) {
			return fmt.Errorf("sample %d has %d readings: %w", s.ID, len(s.Readings), ErrNodeMismatch)
		}
	}

	return nil
}

// Split returns the first ⌊fraction·n⌋ samples as train and the rest as
// test. Both halves share the node list; sample slices are not copied.
func (d Dataset) Split(fraction float64) (train, test Dataset, err error) {
	if math.IsNaN(fraction) || fraction < 0 || fraction > 1 {
		return Dataset{}, Dataset{}, fmt.Errorf("Split(%g): %w", fraction, ErrInvalidFraction)
	}
	cut := int(math.Floor(fraction * float64(len(d.Samples))))
	train = Dataset{NodeIDs: d.NodeIDs, Samples: d.Samples[:cut:cut]}
	test = Dataset{NodeIDs: d.NodeIDs, Samples: d.Samples[cut:]}

	return train, test, nil
}
