package workspace

import (
	"errors"
	"path/filepath"
	"slices"
)

var (
	// ErrEmptyPath is returned by [Graph.AddFile] for an empty path.
	ErrEmptyPath = errors.New("source path must not be empty")

	// ErrUnknownNode is returned by [Graph.AddEdge] when an endpoint is not a
	// node of the graph.
	ErrUnknownNode = errors.New("unknown node")
)

// DefaultWeight is the weight of edges added with [Graph.AddEdge].
const DefaultWeight = 1.0

// NodeID is a stable handle for a node, valid for the graph's lifetime.
// IDs are dense: the n-th inserted file gets ID n-1.
type NodeID int

// SourceFile is a discovered source file. Path is the canonical absolute
// path and serves as identity; Name is its basename for display.
type SourceFile struct {
	Path string
	Name string
}

// NewSourceFile returns the SourceFile for a canonical path.
func NewSourceFile(path string) SourceFile {
	return SourceFile{Path: path, Name: filepath.Base(path)}
}

// Edge is an undirected connection between two nodes.
type Edge struct {
	A, B   NodeID
	Weight float64
}

// Other returns the endpoint of e opposite to id.
func (e Edge) Other(id NodeID) NodeID {
	if e.A == id {
		return e.B
	}
	return e.A
}

// IsLoop reports whether both endpoints are the same node.
func (e Edge) IsLoop() bool { return e.A == e.B }

// Graph is an undirected multigraph of source files.
// The zero value is not usable; call [New].
type Graph struct {
	files    []SourceFile
	index    map[string]NodeID
	edges    []Edge
	incident [][]int // node -> indices into edges
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{index: make(map[string]NodeID)}
}

// AddFile inserts the file at the canonical path and returns its ID. If the
// path is already present, the existing ID is returned and inserted is false.
func (g *Graph) AddFile(path string) (id NodeID, inserted bool, err error) {
	if path == "" {
		return 0, false, ErrEmptyPath
	}
	if id, ok := g.index[path]; ok {
		return id, false, nil
	}
	id = NodeID(len(g.files))
	g.files = append(g.files, NewSourceFile(path))
	g.incident = append(g.incident, nil)
	g.index[path] = id
	return id, true, nil
}

// Lookup returns the ID for a canonical path.
func (g *Graph) Lookup(path string) (NodeID, bool) {
	id, ok := g.index[path]
	return id, ok
}

// AddEdge adds an edge of [DefaultWeight] between a and b.
func (g *Graph) AddEdge(a, b NodeID) error {
	return g.AddWeightedEdge(a, b, DefaultWeight)
}

// AddWeightedEdge adds an edge between a and b. Parallel edges and
// self-loops are allowed.
func (g *Graph) AddWeightedEdge(a, b NodeID, weight float64) error {
	if !g.Has(a) || !g.Has(b) {
		return ErrUnknownNode
	}
	idx := len(g.edges)
	g.edges = append(g.edges, Edge{A: a, B: b, Weight: weight})
	g.incident[a] = append(g.incident[a], idx)
	if b != a {
		g.incident[b] = append(g.incident[b], idx)
	}
	return nil
}

// Has reports whether id is a node of g.
func (g *Graph) Has(id NodeID) bool {
	return id >= 0 && int(id) < len(g.files)
}

// File returns the source file for id. It panics if id is out of range.
func (g *Graph) File(id NodeID) SourceFile { return g.files[id] }

// Files returns all files in ID order.
func (g *Graph) Files() []SourceFile { return slices.Clone(g.files) }

// Edges returns all edges in insertion order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.files) }

// EdgeCount returns the number of edges, counting parallel edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// IncidentEdges returns the edges touching id, in insertion order.
// A self-loop appears once.
func (g *Graph) IncidentEdges(id NodeID) []Edge {
	out := make([]Edge, len(g.incident[id]))
	for i, idx := range g.incident[id] {
		out[i] = g.edges[idx]
	}
	return out
}

// Neighbors returns the opposite endpoint of every incident edge. A node
// reached through k parallel edges appears k times.
func (g *Graph) Neighbors(id NodeID) []NodeID {
	out := make([]NodeID, len(g.incident[id]))
	for i, idx := range g.incident[id] {
		out[i] = g.edges[idx].Other(id)
	}
	return out
}

// Degree returns the number of incident edges, counting parallel edges.
// A self-loop counts once.
func (g *Graph) Degree(id NodeID) int { return len(g.incident[id]) }
