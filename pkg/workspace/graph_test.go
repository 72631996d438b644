package workspace

import (
	"errors"
	"testing"
)

func TestAddFileReusesCanonicalPath(t *testing.T) {
	g := New()

	a, inserted, err := g.AddFile("/proj/a.ts")
	if err != nil || !inserted {
		t.Fatalf("AddFile(a) = %v, %v, %v", a, inserted, err)
	}
	b, _, _ := g.AddFile("/proj/b.ts")
	again, inserted, err := g.AddFile("/proj/a.ts")
	if err != nil {
		t.Fatal(err)
	}
	if inserted || again != a {
		t.Errorf("AddFile(a) again = %v, inserted %v; want %v, false", again, inserted, a)
	}
	if a != 0 || b != 1 {
		t.Errorf("ids = %d, %d; want 0, 1", a, b)
	}
	if g.NodeCount() != 2 {
		t.Errorf("NodeCount = %d, want 2", g.NodeCount())
	}
	if got := g.File(b).Name; got != "b.ts" {
		t.Errorf("Name = %q, want b.ts", got)
	}
}

func TestAddFileEmpty(t *testing.T) {
	if _, _, err := New().AddFile(""); !errors.Is(err, ErrEmptyPath) {
		t.Errorf("AddFile(\"\") = %v, want ErrEmptyPath", err)
	}
}

func TestAddEdgeUnknown(t *testing.T) {
	g := New()
	a, _, _ := g.AddFile("/a.js")
	if err := g.AddEdge(a, 7); !errors.Is(err, ErrUnknownNode) {
		t.Errorf("AddEdge(a, 7) = %v, want ErrUnknownNode", err)
	}
	if err := g.AddEdge(-1, a); !errors.Is(err, ErrUnknownNode) {
		t.Errorf("AddEdge(-1, a) = %v, want ErrUnknownNode", err)
	}
}

func TestDegrees(t *testing.T) {
	g := New()
	ids := map[string]NodeID{}
	for _, name := range []string{"A", "B", "C", "D", "E"} {
		ids[name], _, _ = g.AddFile("/proj/" + name + ".ts")
	}
	for _, e := range [][2]string{{"A", "B"}, {"B", "C"}, {"B", "D"}, {"A", "E"}, {"B", "E"}} {
		if err := g.AddEdge(ids[e[0]], ids[e[1]]); err != nil {
			t.Fatal(err)
		}
	}

	want := map[string]int{"A": 2, "B": 4, "C": 1, "D": 1, "E": 2}
	for name, d := range want {
		if got := g.Degree(ids[name]); got != d {
			t.Errorf("Degree(%s) = %d, want %d", name, got, d)
		}
	}
	if g.EdgeCount() != 5 {
		t.Errorf("EdgeCount = %d, want 5", g.EdgeCount())
	}
	for _, e := range g.Edges() {
		if e.Weight != DefaultWeight {
			t.Errorf("edge weight = %v, want %v", e.Weight, DefaultWeight)
		}
	}
}

func TestParallelEdgesAndLoops(t *testing.T) {
	g := New()
	a, _, _ := g.AddFile("/a.ts")
	b, _, _ := g.AddFile("/b.ts")
	c, _, _ := g.AddFile("/c.ts")
	_ = g.AddEdge(a, b)
	_ = g.AddEdge(b, a)
	_ = g.AddEdge(a, a)

	if got := g.Degree(a); got != 3 {
		t.Errorf("Degree(a) = %d, want 3", got)
	}
	if got := g.Neighbors(b); len(got) != 2 || got[0] != a || got[1] != a {
		t.Errorf("Neighbors(b) = %v, want [a a]", got)
	}

	s := g.Stats()
	want := Stats{Nodes: 3, Edges: 3, Loops: 1, Parallel: 1, Isolated: 1, MaxDegree: 3}
	if s != want {
		t.Errorf("Stats = %+v, want %+v", s, want)
	}
	if iso := g.Isolated(); len(iso) != 1 || iso[0] != c {
		t.Errorf("Isolated = %v, want [%d]", iso, c)
	}
}

func TestEdgesReturnsCopy(t *testing.T) {
	g := New()
	a, _, _ := g.AddFile("/a.ts")
	b, _, _ := g.AddFile("/b.ts")
	_ = g.AddEdge(a, b)

	edges := g.Edges()
	edges[0].Weight = 99
	if g.Edges()[0].Weight != DefaultWeight {
		t.Error("mutating Edges() result changed the graph")
	}
}
