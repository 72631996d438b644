package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/amas/pkg/render"
)

// Palette, shared with the PNG sink.
const (
	colorBackground = "#1e1e2e"
	colorEdge       = "#cdd6f4"
	colorNode       = "#1f6feb"
	colorHover      = "#58a6ff"
	colorSelected   = "#f9e2af"
	colorLabel      = "#ffffff"
)

const nodeInteractionCSS = `
    .node { transition: fill 0.15s ease; }
    .node:hover { fill: ` + colorHover + `; }
    .edge { stroke-opacity: 0.6; }`

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	hideNames   bool
	interactive bool
}

// WithoutNames omits node labels.
func WithoutNames() SVGOption { return func(r *svgRenderer) { r.hideNames = true } }

// WithInteraction embeds CSS that highlights nodes under the mouse.
func WithInteraction() SVGOption { return func(r *svgRenderer) { r.interactive = true } }

// RenderSVG renders s as a standalone SVG document.
func RenderSVG(s render.Scene, opts ...SVGOption) []byte {
	var r svgRenderer
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		s.Width, s.Height, s.Width, s.Height)
	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", colorBackground)
	if r.interactive {
		fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", nodeInteractionCSS)
	}

	stroke := max(1, 2*s.Zoom)
	for _, l := range s.Lines {
		fmt.Fprintf(&buf, `  <line class="edge" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%.2f"/>`+"\n",
			l.From.X, l.From.Y, l.To.X, l.To.Y, colorEdge, stroke)
	}
	for _, n := range s.Nodes {
		renderNode(&buf, n, s.Zoom)
	}
	if !r.hideNames {
		size := render.LabelFontSize(s.Zoom)
		for _, n := range s.Nodes {
			fmt.Fprintf(&buf, `  <text class="label" x="%.2f" y="%.2f" font-family="sans-serif" font-size="%.1f" fill="%s" text-anchor="middle">%s</text>`+"\n",
				n.Center.X, n.Max().Y+size*1.2, size, colorLabel, render.EscapeXML(n.File.Name))
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderNode(buf *bytes.Buffer, n render.Node, zoom float64) {
	class, fill := "node", colorNode
	if n.Hovered {
		class, fill = class+" hovered", colorHover
	}
	var stroke string
	if n.Selected {
		class += " selected"
		stroke = fmt.Sprintf(` stroke="%s" stroke-width="%.2f"`, colorSelected, max(1.5, 3*zoom))
	}
	lo := n.Min()
	fmt.Fprintf(buf, `  <rect id="node-%d" class="%s" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"%s><title>%s</title></rect>`+"\n",
		n.ID, class, lo.X, lo.Y, n.Size, n.Size, fill, stroke, render.EscapeXML(n.File.Path))
}
