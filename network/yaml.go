// SPDX-License-Identifier: MIT

package network

import (
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// validate is the shared struct validator for topology files.
var validate = validator.New()

// File is the on-disk topology description.
//
//	nodes:
//	  - id: T_CH
//	    category: tank
//	    flow: [100, 110]
//	    loss: [2, 5]
//	    volume: 10000
//	edges:
//	  - {from: P_CH, to: T_CH}
type File struct {
	Nodes []FileNode `yaml:"nodes" validate:"required,min=1,dive"`
	Edges []FileEdge `yaml:"edges" validate:"dive"`
}

// FileNode is one node entry. Ranges are two-element [lo, hi] lists.
type FileNode struct {
	ID       string    `yaml:"id" validate:"required"`
	Category string    `yaml:"category" validate:"required"`
	Flow     []float64 `yaml:"flow" validate:"len=2"`
	Loss     []float64 `yaml:"loss,omitempty" validate:"omitempty,len=2"`
	Volume   *float64  `yaml:"volume,omitempty" validate:"omitempty,gt=0"`
	Pressure []float64 `yaml:"pressure,omitempty" validate:"omitempty,len=2"`
}

// FileEdge is one directed edge entry.
type FileEdge struct {
	From string `yaml:"from" validate:"required"`
	To   string `yaml:"to" validate:"required"`
}

func toRange(v []float64) Range {
	if len(v) != 2 {
		return Range{}
	}

	return Range{Lo: v[0], Hi: v[1]}
}

func fromRange(r Range) []float64 {
	if r.IsZero() {
		return nil
	}

	return []float64{r.Lo, r.Hi}
}

// Build converts a decoded File into a validated Topology.
func (f *File) Build(opts ...Option) (*Topology, error) {
	if err := validate.Struct(f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	nodes := make([]Node, 0, len(f.Nodes))
	for _, fn := range f.Nodes {
		c, err := ParseCategory(fn.Category)
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", fn.ID, err)
		}
		n := Node{
			ID:       fn.ID,
			Category: c,
			Flow:     toRange(fn.Flow),
			Loss:     toRange(fn.Loss),
			Pressure: toRange(fn.Pressure),
		}
		if fn.Volume != nil {
			n.Volume, n.HasVolume = *fn.Volume, true
		}
		nodes = append(nodes, n)
	}
	edges := make([]Edge, 0, len(f.Edges))
	for _, fe := range f.Edges {
		edges = append(edges, Edge{From: fe.From, To: fe.To})
	}

	return New(nodes, edges, opts...)
}

// LoadYAML decodes a topology file from r and builds it.
func LoadYAML(r io.Reader, opts ...Option) (*Topology, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("%w: decode topology: %v", ErrConfiguration, err)
	}

	return f.Build(opts...)
}

// LoadFile opens path and calls LoadYAML.
func LoadFile(path string, opts ...Option) (*Topology, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open topology: %w", err)
	}
	defer fh.Close()

	return LoadYAML(fh, opts...)
}

// ToFile converts t back into its file form. Pressures are always written.
func (t *Topology) ToFile() File {
	f := File{
		Nodes: make([]FileNode, 0, len(t.nodes)),
		Edges: make([]FileEdge, 0, len(t.edges)),
	}
	for _, n := range t.nodes {
		fn := FileNode{
			ID:       n.ID,
			Category: n.Category.String(),
			Flow:     []float64{n.Flow.Lo, n.Flow.Hi},
			Loss:     fromRange(n.Loss),
			Pressure: []float64{n.Pressure.Lo, n.Pressure.Hi},
		}
		if n.HasVolume {
			v := n.Volume
			fn.Volume = &v
		}
		f.Nodes = append(f.Nodes, fn)
	}
	for _, e := range t.edges {
		f.Edges = append(f.Edges, FileEdge{From: e.From, To: e.To})
	}

	return f
}

// WriteYAML encodes t as a topology file.
func WriteYAML(w io.Writer, t *Topology) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(t.ToFile()); err != nil {
		return fmt.Errorf("encode topology: %w", err)
	}

	return enc.Close()
}
