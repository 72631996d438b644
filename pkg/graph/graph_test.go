package graph

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/amas/pkg/layout"
	"github.com/matzehuels/amas/pkg/workspace"
)

func sample(t *testing.T) *workspace.Graph {
	t.Helper()
	g := workspace.New()
	for _, p := range []string{"/p/a.ts", "/p/b.ts", "/p/c.ts"} {
		if _, _, err := g.AddFile(p); err != nil {
			t.Fatal(err)
		}
	}
	_ = g.AddEdge(0, 1)
	_ = g.AddEdge(0, 1)
	_ = g.AddWeightedEdge(1, 2, 2.5)
	_ = g.AddEdge(2, 2)
	return g
}

func TestFromWorkspace(t *testing.T) {
	gj := FromWorkspace(sample(t))

	if len(gj.Nodes) != 3 || len(gj.Edges) != 4 {
		t.Fatalf("got %d nodes, %d edges", len(gj.Nodes), len(gj.Edges))
	}
	want := Node{ID: 1, Path: "/p/b.ts", Name: "b.ts", Degree: 3}
	if gj.Nodes[1] != want {
		t.Errorf("Nodes[1] = %+v, want %+v", gj.Nodes[1], want)
	}
	if gj.Edges[2] != (Edge{A: 1, B: 2, Weight: 2.5}) {
		t.Errorf("Edges[2] = %+v", gj.Edges[2])
	}
}

func TestGraphRoundTrip(t *testing.T) {
	g := sample(t)
	data, err := MarshalGraph(g)
	if err != nil {
		t.Fatalf("MarshalGraph: %v", err)
	}
	back, err := ReadGraph(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ReadGraph: %v", err)
	}
	if !reflect.DeepEqual(g.Files(), back.Files()) {
		t.Errorf("files = %v, want %v", back.Files(), g.Files())
	}
	if !reflect.DeepEqual(g.Edges(), back.Edges()) {
		t.Errorf("edges = %v, want %v", back.Edges(), g.Edges())
	}
}

func TestToWorkspaceErrors(t *testing.T) {
	tests := []struct {
		name string
		gj   Graph
		want string
	}{
		{
			name: "out of sequence",
			gj:   Graph{Nodes: []Node{{ID: 1, Path: "/a"}}},
			want: "out of sequence",
		},
		{
			name: "duplicate path",
			gj:   Graph{Nodes: []Node{{ID: 0, Path: "/a"}, {ID: 1, Path: "/a"}}},
			want: "duplicate path",
		},
		{
			name: "empty path",
			gj:   Graph{Nodes: []Node{{ID: 0}}},
			want: "empty",
		},
		{
			name: "dangling edge",
			gj:   Graph{Nodes: []Node{{ID: 0, Path: "/a"}}, Edges: []Edge{{A: 0, B: 3}}},
			want: "edge 0",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ToWorkspace(tt.gj)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("ToWorkspace() err = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestToWorkspaceDefaultWeight(t *testing.T) {
	g, err := ToWorkspace(Graph{
		Nodes: []Node{{ID: 0, Path: "/a"}, {ID: 1, Path: "/b"}},
		Edges: []Edge{{A: 0, B: 1}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if w := g.Edges()[0].Weight; w != workspace.DefaultWeight {
		t.Errorf("Weight = %v, want %v", w, workspace.DefaultWeight)
	}
}

func TestGraphFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.json")
	gj := FromWorkspace(sample(t))
	gj.Diagnostics = []Diagnostic{{Path: "/p/bad.ts", Error: "parse error at 1:1"}}
	if err := WriteGraphFile(gj, path); err != nil {
		t.Fatalf("WriteGraphFile: %v", err)
	}
	g, err := ReadGraphFile(path)
	if err != nil {
		t.Fatalf("ReadGraphFile: %v", err)
	}
	if g.NodeCount() != 3 {
		t.Errorf("NodeCount() = %d", g.NodeCount())
	}

	if _, err := ReadGraphFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("ReadGraphFile(missing) = nil error")
	}
}

func TestLayoutRoundTrip(t *testing.T) {
	g := sample(t)
	opts := layout.Options{Seed: 7, Iterations: 20}
	res := layout.Run(g, opts)

	l := FromResult(res, opts)
	if l.Seed != 7 || l.Iterations != 20 {
		t.Errorf("params = %d/%d", l.Seed, l.Iterations)
	}
	data, err := MarshalLayout(l)
	if err != nil {
		t.Fatal(err)
	}
	parsed, err := UnmarshalLayout(data)
	if err != nil {
		t.Fatalf("UnmarshalLayout: %v", err)
	}
	back, err := ToResult(parsed)
	if err != nil {
		t.Fatalf("ToResult: %v", err)
	}
	if !reflect.DeepEqual(res, back) {
		t.Errorf("round trip differs:\n got %+v\nwant %+v", back, res)
	}
}

func TestLayoutJSONShape(t *testing.T) {
	l := Layout{
		Width:  100,
		Height: 50,
		Nodes:  []PlacedNode{{Node: Node{ID: 0, Path: "/a.ts", Name: "a.ts"}, X: 1, Y: 2}},
		Edges:  []Edge{},
	}
	data, err := json.Marshal(l)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"width":100,"height":50,"nodes":[{"id":0,"path":"/a.ts","name":"a.ts","x":1,"y":2}],"edges":[]}`
	if string(data) != want {
		t.Errorf("json = %s\nwant %s", data, want)
	}
}

func TestUnmarshalLayoutInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", "nope"},
		{"zero canvas", `{"width":0,"height":10,"nodes":[]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := UnmarshalLayout([]byte(tt.data)); err == nil {
				t.Error("UnmarshalLayout() = nil error")
			}
		})
	}
}

func TestLayoutFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.json")
	l := FromResult(layout.Run(sample(t), layout.Options{}), layout.Options{})
	if err := WriteLayoutFile(l, path); err != nil {
		t.Fatal(err)
	}
	got, err := ReadLayoutFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, l) {
		t.Error("layout file round trip differs")
	}
}
