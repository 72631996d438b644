package render

import (
	"github.com/matzehuels/amas/pkg/layout"
	"github.com/matzehuels/amas/pkg/viewport"
	"github.com/matzehuels/amas/pkg/workspace"
)

// Output formats.
const (
	FormatSVG      = "svg"
	FormatPNG      = "png"
	FormatDOT      = "dot"
	FormatGraphviz = "graphviz" // SVG laid out by Graphviz from pinned DOT
)

// Formats lists every supported output format.
var Formats = []string{FormatSVG, FormatPNG, FormatDOT, FormatGraphviz}

// DefaultPadding is the margin [StaticScene] adds around the canvas so
// boxes clamped to its edges stay fully visible.
const DefaultPadding = viewport.DefaultBoxSize

// Node is a node as drawn.
type Node struct {
	viewport.Box
	Hovered  bool
	Selected bool
}

// Line is an edge as drawn, between the centers of nodes A and B.
type Line struct {
	A, B     workspace.NodeID
	From, To layout.Point
}

// Scene is everything a sink needs for one draw.
type Scene struct {
	Width  float64
	Height float64
	Zoom   float64
	Nodes  []Node
	Lines  []Line
}

// NewScene frames res in c and captures the result. The scene's size is
// the layout canvas. A nil controller uses a fresh one.
func NewScene(res layout.Result, c *viewport.Controller) Scene {
	if c == nil {
		c = viewport.New()
	}
	boxes := c.Frame(res)
	hovered, hasHover := c.Hovered()

	s := Scene{
		Width:  res.Width,
		Height: res.Height,
		Zoom:   c.Zoom(),
		Nodes:  make([]Node, len(boxes)),
	}
	for i, b := range boxes {
		s.Nodes[i] = Node{
			Box:      b,
			Hovered:  hasHover && b.ID == hovered.ID,
			Selected: c.IsSelected(b.File.Path),
		}
	}
	for _, e := range res.Edges {
		a, b := int(e.A), int(e.B)
		if e.IsLoop() || a >= len(boxes) || b >= len(boxes) {
			continue
		}
		s.Lines = append(s.Lines, Line{A: e.A, B: e.B, From: boxes[a].Center, To: boxes[b].Center})
	}
	return s
}

// StaticScene renders res at zoom 1 on a canvas padded by [DefaultPadding]
// on every side. Selected paths are marked as selected.
func StaticScene(res layout.Result, selected ...string) Scene {
	c := viewport.New()
	c.Pan(DefaultPadding, DefaultPadding)
	c.Select(selected...)
	s := NewScene(res, c)
	s.Width += 2 * DefaultPadding
	s.Height += 2 * DefaultPadding
	return s
}
