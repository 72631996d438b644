package layout

import (
	"math"
	"reflect"
	"testing"

	"github.com/matzehuels/amas/pkg/workspace"
)

func buildGraph(t *testing.T, paths []string, edges [][2]int) *workspace.Graph {
	t.Helper()
	g := workspace.New()
	for _, p := range paths {
		if _, _, err := g.AddFile(p); err != nil {
			t.Fatalf("AddFile(%s): %v", p, err)
		}
	}
	for _, e := range edges {
		if err := g.AddEdge(workspace.NodeID(e[0]), workspace.NodeID(e[1])); err != nil {
			t.Fatalf("AddEdge(%v): %v", e, err)
		}
	}
	return g
}

func fiveFiles(t *testing.T) *workspace.Graph {
	return buildGraph(t,
		[]string{"/p/a.ts", "/p/b.ts", "/p/c.ts", "/p/d.ts", "/p/e.ts"},
		[][2]int{{0, 1}, {0, 4}, {1, 2}, {1, 3}, {1, 4}},
	)
}

func TestRunEmpty(t *testing.T) {
	res := Run(workspace.New(), Options{})
	if res.Len() != 0 {
		t.Errorf("Len() = %d, want 0", res.Len())
	}
	if len(res.Edges) != 0 {
		t.Errorf("Edges = %v, want none", res.Edges)
	}
	if res.Width != DefaultWidth || res.Height != DefaultHeight {
		t.Errorf("canvas = %vx%v, want %vx%v", res.Width, res.Height, DefaultWidth, DefaultHeight)
	}
}

func TestRunWithinBounds(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"defaults", Options{}},
		{"small canvas", Options{Width: 50, Height: 20}},
		{"no centering", Options{NoCentering: true}},
		{"few iterations", Options{Iterations: 1}},
		{"other seed", Options{Seed: 7}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Run(fiveFiles(t), tt.opts)
			if res.Len() != 5 {
				t.Fatalf("Len() = %d, want 5", res.Len())
			}
			for _, p := range res.Placements {
				x, y := p.Position.X, p.Position.Y
				if math.IsNaN(x) || math.IsNaN(y) {
					t.Fatalf("%s: NaN position", p.File.Name)
				}
				if x < 0 || x > res.Width || y < 0 || y > res.Height {
					t.Errorf("%s at (%v,%v) outside %vx%v", p.File.Name, x, y, res.Width, res.Height)
				}
			}
		})
	}
}

func TestRunDeterministic(t *testing.T) {
	a := Run(fiveFiles(t), Options{})
	b := Run(fiveFiles(t), Options{})
	if !reflect.DeepEqual(a, b) {
		t.Error("two runs over the same graph differ")
	}

	c := Run(fiveFiles(t), Options{Seed: 99})
	if reflect.DeepEqual(a.Placements, c.Placements) {
		t.Error("different seeds produced identical placements")
	}
}

func TestZeroSeedIsDefault(t *testing.T) {
	if got := (Options{}).WithDefaults().Seed; got != DefaultSeed {
		t.Errorf("Seed = %d, want %d", got, DefaultSeed)
	}
	a := Run(fiveFiles(t), Options{Seed: 0})
	b := Run(fiveFiles(t), Options{Seed: DefaultSeed})
	if !reflect.DeepEqual(a.Placements, b.Placements) {
		t.Error("seed 0 did not behave as the default seed")
	}
}

func TestRunDoesNotModifyGraph(t *testing.T) {
	g := fiveFiles(t)
	files, edges := g.Files(), g.Edges()

	Run(g, Options{})

	if !reflect.DeepEqual(files, g.Files()) {
		t.Error("files changed")
	}
	if !reflect.DeepEqual(edges, g.Edges()) {
		t.Error("edges changed")
	}
}

func TestConnectedPerEdgeInstance(t *testing.T) {
	g := buildGraph(t,
		[]string{"/p/a.ts", "/p/b.ts", "/p/c.ts"},
		[][2]int{{0, 1}, {0, 1}, {0, 2}, {2, 2}},
	)
	res := Run(g, Options{})

	want := map[string]int{"a.ts": 3, "b.ts": 2, "c.ts": 2}
	for _, p := range res.Placements {
		if got := len(p.Connected); got != want[p.File.Name] {
			t.Errorf("%s: %d connected, want %d", p.File.Name, got, want[p.File.Name])
		}
	}

	a, b := res.Placements[0], res.Placements[1]
	for _, pt := range a.Connected[:2] {
		if pt != b.Position {
			t.Errorf("a connected point %v, want b at %v", pt, b.Position)
		}
	}
	c := res.Placements[2]
	if c.Connected[len(c.Connected)-1] != c.Position {
		t.Error("self-loop should connect a node to its own position")
	}
}

func TestPlacementsInIDOrder(t *testing.T) {
	res := Run(fiveFiles(t), Options{})
	for i, p := range res.Placements {
		if int(p.ID) != i {
			t.Errorf("Placements[%d].ID = %d", i, p.ID)
		}
	}
}

func TestSingleNodeCentered(t *testing.T) {
	g := buildGraph(t, []string{"/p/only.ts"}, nil)
	res := Run(g, Options{Iterations: 500})
	p := res.Placements[0].Position
	if math.Abs(p.X-DefaultWidth/2) > 1 || math.Abs(p.Y-DefaultHeight/2) > 1 {
		t.Errorf("single node at %v, want near canvas center", p)
	}
}

func TestConnectedCloserThanUnconnected(t *testing.T) {
	// Two tight pairs with no edge between them.
	g := buildGraph(t,
		[]string{"/p/a.ts", "/p/b.ts", "/p/c.ts", "/p/d.ts"},
		[][2]int{{0, 1}, {0, 1}, {0, 1}, {2, 3}, {2, 3}, {2, 3}},
	)
	res := Run(g, Options{})
	dist := func(i, j int) float64 {
		p, q := res.Placements[i].Position, res.Placements[j].Position
		return math.Hypot(p.X-q.X, p.Y-q.Y)
	}
	if dist(0, 1) >= dist(0, 2) && dist(0, 1) >= dist(0, 3) {
		t.Errorf("a-b = %.1f not shorter than a-c = %.1f or a-d = %.1f", dist(0, 1), dist(0, 2), dist(0, 3))
	}
}

func TestRepelCoincident(t *testing.T) {
	pos := []Point{{10, 10}, {10, 10}}
	disp := make([]Point, 2)
	repel(pos, disp, 5)

	if disp[0].X != coincidentRepulsion || disp[1].X != -coincidentRepulsion {
		t.Errorf("disp = %v, want ±%v along x", disp, coincidentRepulsion)
	}
	if disp[0].Y != 0 || disp[1].Y != 0 {
		t.Errorf("disp = %v, want no y component", disp)
	}
}

func TestAttractSkipsLoopsAndCoincident(t *testing.T) {
	pos := []Point{{0, 0}, {0, 0}}
	disp := make([]Point, 2)
	attract(pos, disp, []workspace.Edge{{A: 0, B: 0}, {A: 0, B: 1}}, 10)
	if disp[0] != (Point{}) || disp[1] != (Point{}) {
		t.Errorf("disp = %v, want zero", disp)
	}
}

func TestWithDefaults(t *testing.T) {
	o := Options{Cooling: 1.5}.WithDefaults()
	want := Options{
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		Iterations: DefaultIterations,
		Seed:       DefaultSeed,
		Cooling:    DefaultCooling,
	}
	if o != want {
		t.Errorf("WithDefaults() = %+v, want %+v", o, want)
	}
}
