package graph

import (
	"fmt"

	"github.com/matzehuels/amas/pkg/workspace"
)

// =============================================================================
// Graph - Import Graph Serialization
// =============================================================================

// Graph is the serialized form of a workspace graph.
type Graph struct {
	Root        string       `json:"root,omitempty"`
	Nodes       []Node       `json:"nodes"`
	Edges       []Edge       `json:"edges"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
}

// Node is one source file.
type Node struct {
	ID     int    `json:"id"`
	Path   string `json:"path"`
	Name   string `json:"name"`
	Degree int    `json:"degree,omitempty"` // informational, ignored on read
}

// Edge is an undirected connection between two node IDs.
type Edge struct {
	A      int     `json:"a"`
	B      int     `json:"b"`
	Weight float64 `json:"weight"`
}

// Diagnostic records a file that could not be analyzed.
type Diagnostic struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

// =============================================================================
// Workspace ↔ Graph Conversion
// =============================================================================

// FromWorkspace converts g to its serialization format.
// Nodes are emitted in ID order, edges in insertion order.
func FromWorkspace(g *workspace.Graph) Graph {
	files := g.Files()
	edges := g.Edges()
	out := Graph{
		Nodes: make([]Node, len(files)),
		Edges: make([]Edge, len(edges)),
	}
	for i, f := range files {
		out.Nodes[i] = Node{
			ID:     i,
			Path:   f.Path,
			Name:   f.Name,
			Degree: g.Degree(workspace.NodeID(i)),
		}
	}
	for i, e := range edges {
		out.Edges[i] = Edge{A: int(e.A), B: int(e.B), Weight: e.Weight}
	}
	return out
}

// ToWorkspace rebuilds a workspace graph.
// Node IDs must equal their position in Nodes and paths must be unique.
// A zero edge weight reads as [workspace.DefaultWeight].
func ToWorkspace(gj Graph) (*workspace.Graph, error) {
	g := workspace.New()
	for i, n := range gj.Nodes {
		if n.ID != i {
			return nil, fmt.Errorf("node %d: id %d out of sequence", i, n.ID)
		}
		_, inserted, err := g.AddFile(n.Path)
		if err != nil {
			return nil, fmt.Errorf("node %d: %w", n.ID, err)
		}
		if !inserted {
			return nil, fmt.Errorf("node %d: duplicate path %s", n.ID, n.Path)
		}
	}
	for i, e := range gj.Edges {
		w := e.Weight
		if w == 0 {
			w = workspace.DefaultWeight
		}
		if err := g.AddWeightedEdge(workspace.NodeID(e.A), workspace.NodeID(e.B), w); err != nil {
			return nil, fmt.Errorf("edge %d (%d-%d): %w", i, e.A, e.B, err)
		}
	}
	return g, nil
}
