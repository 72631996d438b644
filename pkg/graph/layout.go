package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/amas/pkg/layout"
	"github.com/matzehuels/amas/pkg/workspace"
)

// =============================================================================
// Layout - Placement Serialization
// =============================================================================

// Layout is the serialized form of a computed layout.
type Layout struct {
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	Seed       uint64  `json:"seed,omitempty"`
	Iterations int     `json:"iterations,omitempty"`

	Nodes []PlacedNode `json:"nodes"`
	Edges []Edge       `json:"edges"`
}

// PlacedNode is a [Node] with its canvas position.
type PlacedNode struct {
	Node
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// FromResult converts a layout result. opts records the parameters that
// produced it and may be zero.
func FromResult(r layout.Result, opts layout.Options) Layout {
	out := Layout{
		Width:      r.Width,
		Height:     r.Height,
		Seed:       opts.Seed,
		Iterations: opts.Iterations,
		Nodes:      make([]PlacedNode, len(r.Placements)),
		Edges:      make([]Edge, len(r.Edges)),
	}
	for i, p := range r.Placements {
		out.Nodes[i] = PlacedNode{
			Node: Node{
				ID:     int(p.ID),
				Path:   p.File.Path,
				Name:   p.File.Name,
				Degree: len(p.Connected),
			},
			X: p.Position.X,
			Y: p.Position.Y,
		}
	}
	for i, e := range r.Edges {
		out.Edges[i] = Edge{A: int(e.A), B: int(e.B), Weight: e.Weight}
	}
	return out
}

// ToResult rebuilds a layout result, deriving connected positions from the
// edge list. It validates nodes and edges like [ToWorkspace].
func ToResult(l Layout) (layout.Result, error) {
	gj := Graph{Nodes: make([]Node, len(l.Nodes)), Edges: l.Edges}
	for i, n := range l.Nodes {
		gj.Nodes[i] = n.Node
	}
	g, err := ToWorkspace(gj)
	if err != nil {
		return layout.Result{}, err
	}

	res := layout.Result{
		Width:      l.Width,
		Height:     l.Height,
		Placements: make([]layout.Placement, len(l.Nodes)),
		Edges:      g.Edges(),
	}
	for i, n := range l.Nodes {
		id := workspace.NodeID(i)
		nbrs := g.Neighbors(id)
		connected := make([]layout.Point, len(nbrs))
		for j, nb := range nbrs {
			connected[j] = layout.Point{X: l.Nodes[nb].X, Y: l.Nodes[nb].Y}
		}
		res.Placements[i] = layout.Placement{
			ID:        id,
			File:      g.File(id),
			Position:  layout.Point{X: n.X, Y: n.Y},
			Connected: connected,
		}
	}
	return res, nil
}

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes l to indented JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	var buf bytes.Buffer
	if err := encode(&buf, l); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
// The canvas must have a positive size.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}
	if l.Width <= 0 || l.Height <= 0 {
		return Layout{}, fmt.Errorf("layout canvas must be positive, got %vx%v", l.Width, l.Height)
	}
	return l, nil
}

// WriteLayout writes l as indented JSON to w.
func WriteLayout(l Layout, w io.Writer) error {
	return encode(w, l)
}

// WriteLayoutFile writes l to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
