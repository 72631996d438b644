// Package graph provides serialization types for import graphs and layouts.
//
// This package defines the JSON wire format used by the CLI's graph and
// layout files, the HTTP API and the extraction-free replay path
// (graph.json → layout → render).
//
// # Architecture
//
// The package sits at the serialization boundary:
//
//   - [Graph], [Layout]: serialization types (this package)
//   - pkg/workspace.Graph: in-memory multigraph
//   - pkg/layout.Result: computed placement
//
// Use [FromWorkspace]/[ToWorkspace] and [FromResult]/[ToResult] to convert.
//
// # Graph Format
//
//	{
//	  "root": "/abs/project",
//	  "nodes": [{"id": 0, "path": "/abs/project/a.ts", "name": "a.ts", "degree": 1}],
//	  "edges": [{"a": 0, "b": 1, "weight": 1}]
//	}
//
// Node IDs are dense and equal to the node's index. Edges are unordered;
// duplicates and self-loops are kept.
//
// # Layout Format
//
// A layout carries the canvas size, the simulation parameters that produced
// it, every node with its x/y position, and the edge list. Connected-node
// positions are not stored; [ToResult] derives them from the edges.
package graph
