package layout

import (
	"math"
	"math/rand/v2"

	"github.com/matzehuels/amas/pkg/workspace"
)

// Defaults for [Options].
const (
	DefaultWidth      = 800.0
	DefaultHeight     = 600.0
	DefaultIterations = 100
	DefaultSeed       = 42
	DefaultCooling    = 0.95
)

const (
	// coincidentRepulsion is the repulsive force between nodes at distance 0.
	coincidentRepulsion = 1000.0
	// centeringFactor scales k into the pull toward the canvas center.
	centeringFactor = 0.02
)

// Point is a position in canvas units.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Options configures the simulation. Zero fields take their defaults.
type Options struct {
	Width      float64
	Height     float64
	Iterations int
	// Seed drives the initial positions. Zero means unset and selects
	// DefaultSeed, so seed 0 itself cannot be chosen.
	Seed    uint64
	Cooling float64
	// NoCentering disables the pull toward the canvas center.
	NoCentering bool
}

// WithDefaults returns o with zero fields replaced by defaults.
func (o Options) WithDefaults() Options {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.Iterations <= 0 {
		o.Iterations = DefaultIterations
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Cooling <= 0 || o.Cooling >= 1 {
		o.Cooling = DefaultCooling
	}
	return o
}

// Placement is the computed position of one node, with the positions of
// the nodes it is connected to (one entry per incident edge).
type Placement struct {
	ID        workspace.NodeID
	File      workspace.SourceFile
	Position  Point
	Connected []Point
}

// Result is a finished layout. Placements are in node ID order.
type Result struct {
	Width      float64
	Height     float64
	Placements []Placement
	Edges      []workspace.Edge
}

// Len returns the number of placed nodes.
func (r Result) Len() int { return len(r.Placements) }

// Engine runs the simulation.
type Engine struct {
	opts Options
}

// New creates an engine. Zero option fields take their defaults.
func New(opts Options) *Engine {
	return &Engine{opts: opts.WithDefaults()}
}

// Options returns the effective options.
func (e *Engine) Options() Options { return e.opts }

// Run lays out g. A graph without nodes yields an empty result.
func Run(g *workspace.Graph, opts Options) Result {
	return New(opts).Run(g)
}

// Run lays out g.
func (e *Engine) Run(g *workspace.Graph) Result {
	o := e.opts
	res := Result{Width: o.Width, Height: o.Height}
	n := g.NodeCount()
	if n == 0 {
		return res
	}

	edges := g.Edges()
	pos := e.seed(n)
	disp := make([]Point, n)

	k := math.Sqrt(o.Width * o.Height / float64(n))
	temp := o.Width / 10
	center := Point{o.Width / 2, o.Height / 2}

	for range o.Iterations {
		clear(disp)
		repel(pos, disp, k)
		attract(pos, disp, edges, k)
		if !o.NoCentering {
			pull := k * centeringFactor
			for i := range pos {
				disp[i].X += (center.X - pos[i].X) * pull
				disp[i].Y += (center.Y - pos[i].Y) * pull
			}
		}
		for i := range pos {
			d := disp[i]
			if m := math.Hypot(d.X, d.Y); m > temp {
				d.X *= temp / m
				d.Y *= temp / m
			}
			pos[i].X = clamp(pos[i].X+d.X, 0, o.Width)
			pos[i].Y = clamp(pos[i].Y+d.Y, 0, o.Height)
		}
		temp *= o.Cooling
	}

	res.Edges = edges
	res.Placements = make([]Placement, n)
	for i := range n {
		id := workspace.NodeID(i)
		nbrs := g.Neighbors(id)
		connected := make([]Point, len(nbrs))
		for j, nb := range nbrs {
			connected[j] = pos[nb]
		}
		res.Placements[i] = Placement{
			ID:        id,
			File:      g.File(id),
			Position:  pos[i],
			Connected: connected,
		}
	}
	return res
}

// seed places n nodes uniformly at random within the canvas.
func (e *Engine) seed(n int) []Point {
	rng := rand.New(rand.NewPCG(e.opts.Seed, e.opts.Seed^0xdeadbeef))
	pos := make([]Point, n)
	for i := range pos {
		pos[i] = Point{rng.Float64() * e.opts.Width, rng.Float64() * e.opts.Height}
	}
	return pos
}

// repel applies k²/d between every pair. Coincident nodes get a fixed push
// along x: the lower index moves right, the higher one left.
func repel(pos, disp []Point, k float64) {
	for i := 0; i < len(pos); i++ {
		for j := i + 1; j < len(pos); j++ {
			dx := pos[i].X - pos[j].X
			dy := pos[i].Y - pos[j].Y
			d := math.Hypot(dx, dy)

			var ux, uy, f float64
			if d == 0 {
				ux, uy, f = 1, 0, coincidentRepulsion
			} else {
				ux, uy, f = dx/d, dy/d, k*k/d
			}
			disp[i].X += ux * f
			disp[i].Y += uy * f
			disp[j].X -= ux * f
			disp[j].Y -= uy * f
		}
	}
}

// attract applies d²/k along every edge instance. Self-loops and
// coincident endpoints contribute nothing.
func attract(pos, disp []Point, edges []workspace.Edge, k float64) {
	for _, e := range edges {
		a, b := int(e.A), int(e.B)
		if a == b {
			continue
		}
		dx := pos[a].X - pos[b].X
		dy := pos[a].Y - pos[b].Y
		d := math.Hypot(dx, dy)
		if d == 0 {
			continue
		}
		f := d * d / k
		ux, uy := dx/d, dy/d
		disp[a].X -= ux * f
		disp[a].Y -= uy * f
		disp[b].X += ux * f
		disp[b].Y += uy * f
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
