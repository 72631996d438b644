package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/amas/pkg/render"
)

// Options configures DOT generation.
type Options struct {
	// Detailed labels each node with its full path instead of its name.
	Detailed bool
}

// pointsPerInch is Graphviz's unit conversion for node sizes.
const pointsPerInch = 72.0

// ToDOT converts a scene to Graphviz DOT with pinned node positions.
func ToDOT(s render.Scene, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  inputscale=72;\n")
	buf.WriteString("  notranslate=true;\n")
	buf.WriteString("  splines=false;\n")
	buf.WriteString("  bgcolor=\"#1e1e2e\";\n")
	buf.WriteString("  node [shape=box, style=filled, fixedsize=true, fillcolor=\"#1f6feb\", color=\"#1f6feb\", fontcolor=white, fontname=\"sans-serif\"];\n")
	buf.WriteString("  edge [color=\"#cdd6f4\"];\n")
	buf.WriteString("\n")

	for _, n := range s.Nodes {
		fmt.Fprintf(&buf, "  %q [%s];\n", strconv.Itoa(int(n.ID)), strings.Join(fmtAttrs(n, s, opts), ", "))
	}

	buf.WriteString("\n")
	for _, l := range s.Lines {
		fmt.Fprintf(&buf, "  %q -- %q;\n", strconv.Itoa(int(l.A)), strconv.Itoa(int(l.B)))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtAttrs(n render.Node, s render.Scene, opts Options) []string {
	label := n.File.Name
	if opts.Detailed {
		label = n.File.Path
	}
	side := n.Size / pointsPerInch
	attrs := []string{
		fmt.Sprintf("label=%q", label),
		fmt.Sprintf("pos=\"%.2f,%.2f!\"", n.Center.X, s.Height-n.Center.Y),
		fmt.Sprintf("width=%.3f", side),
		fmt.Sprintf("height=%.3f", side),
		fmt.Sprintf("fontsize=%.1f", render.LabelFontSize(s.Zoom)),
		fmt.Sprintf("tooltip=%q", n.File.Path),
	}
	if n.Hovered {
		attrs = append(attrs, "fillcolor=\"#58a6ff\"")
	}
	if n.Selected {
		attrs = append(attrs, "color=\"#f9e2af\"", "penwidth=3")
	}
	return attrs
}

// RenderSVG lays out a DOT graph with neato and renders it to SVG.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with a plain
// pixel-sized one so the SVG scales like the native sink's output.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
