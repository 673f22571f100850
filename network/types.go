// SPDX-License-Identifier: MIT

package network

import (
	"fmt"
	"math"
	"strings"
)

// Category classifies a node by its role in the network.
type Category uint8

const (
	// Source supplies inflow (lake, river, well).
	Source Category = iota
	// Plant treats source inflow.
	Plant
	// Tank stores treated water.
	Tank
	// NetworkSink is the terminal distribution point; exactly one per topology.
	NetworkSink
)

var categoryNames = [...]string{"source", "plant", "tank", "sink"}

// String returns the lower-case category name used in topology files.
func (c Category) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}

	return fmt.Sprintf("category(%d)", uint8(c))
}

// ParseCategory accepts the English names written by String, "network_sink",
// and the Spanish labels of the survey data (Fuente, Planta, Tanque, Red).
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "source", "fuente":
		return Source, nil
	case "plant", "planta":
		return Plant, nil
	case "tank", "tanque":
		return Tank, nil
	case "sink", "network_sink", "networksink", "red":
		return NetworkSink, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// Range is an inclusive interval [Lo, Hi]. The zero Range is the point 0,
// which is how "no loss" is expressed.
type Range struct {
	Lo float64
	Hi float64
}

// Contains reports whether lo <= v <= hi.
func (r Range) Contains(v float64) bool { return v >= r.Lo && v <= r.Hi }

// IsZero reports whether r is the degenerate [0,0] interval.
func (r Range) IsZero() bool { return r.Lo == 0 && r.Hi == 0 }

// Width returns Hi - Lo.
func (r Range) Width() float64 { return r.Hi - r.Lo }

func (r Range) validate() error {
	if math.IsNaN(r.Lo) || math.IsNaN(r.Hi) || math.IsInf(r.Lo, 0) || math.IsInf(r.Hi, 0) {
		return ErrInvalidRange
	}
	if r.Lo > r.Hi {
		return ErrInvalidRange
	}

	return nil
}

// Default pressure bands (bar-equivalent units of the survey data). Sources
// operate in a narrower, lower band than everything downstream.
var (
	SourcePressure     = Range{Lo: 20, Hi: 30}
	DownstreamPressure = Range{Lo: 25, Hi: 55}
)

// DefaultPressure returns the pressure band for a category.
func DefaultPressure(c Category) Range {
	if c == Source {
		return SourcePressure
	}

	return DownstreamPressure
}

// Node is one physical entity of the network.
//
// A zero Pressure is replaced by DefaultPressure(Category) when the topology
// is built. HasVolume distinguishes tanks with a fixed storage volume from
// nodes without storage (written as NaN / empty in datasets).
type Node struct {
	ID        string
	Category  Category
	Flow      Range // operating flow, L/s
	Loss      Range // loss band; zero Range means no loss
	Volume    float64
	HasVolume bool
	Pressure  Range
}

// Edge is a directed, unweighted connection From → To.
type Edge struct {
	From string
	To   string
}

// String renders "From->To".
func (e Edge) String() string { return e.From + "->" + e.To }

// IssueKind enumerates soft reachability findings.
type IssueKind uint8

const (
	// IssueOrphan: a non-source node without incoming edges.
	IssueOrphan IssueKind = iota
	// IssueDeadEnd: a node with no directed path to the sink.
	IssueDeadEnd
	// IssueUnfed: a node not reachable from any source.
	IssueUnfed
)

func (k IssueKind) String() string {
	switch k {
	case IssueOrphan:
		return "orphan"
	case IssueDeadEnd:
		return "dead-end"
	case IssueUnfed:
		return "unfed"
	}

	return "unknown"
}

// Issue is one finding of Lint.
type Issue struct {
	Kind IssueKind
	Node string
}

func (i Issue) String() string { return i.Kind.String() + ": " + i.Node }
