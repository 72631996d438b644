package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/amas/pkg/workspace"
)

// =============================================================================
// Graph Serialization API
// =============================================================================

// MarshalGraph converts a workspace graph to JSON bytes.
func MarshalGraph(g *workspace.Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := encode(&buf, FromWorkspace(g)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteGraph writes gj as indented JSON to w.
func WriteGraph(gj Graph, w io.Writer) error {
	return encode(w, gj)
}

// WriteGraphFile writes gj to a JSON file.
// The file is created with 0644 permissions.
func WriteGraphFile(gj Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return encode(f, gj)
}

// ReadGraph decodes a JSON graph from r into a workspace graph.
func ReadGraph(r io.Reader) (*workspace.Graph, error) {
	var gj Graph
	if err := json.NewDecoder(r).Decode(&gj); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return ToWorkspace(gj)
}

// ReadGraphFile reads a JSON file and returns the decoded workspace graph.
func ReadGraphFile(path string) (*workspace.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadGraph(f)
}

// =============================================================================
// Internal Implementation
// =============================================================================

func encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
