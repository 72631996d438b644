// Package workspace holds the in-memory dependency graph of a source tree.
//
// A [Graph] is an undirected multigraph whose nodes are [SourceFile] values
// addressed by a dense [NodeID] assigned at insertion. Each canonical path
// maps to exactly one node; inserting a path twice returns the existing ID.
// Edges are unordered pairs with a weight (1.0 by default). Duplicate edges
// between the same pair and self-loops are kept: one edge per import
// statement.
//
// Graphs are built once by pkg/imports and are read-only afterwards. They
// are not safe for concurrent mutation, but concurrent readers are fine once
// building has finished.
package workspace
