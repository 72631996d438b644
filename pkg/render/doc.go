// Package render turns a computed layout into drawable output.
//
// # Overview
//
// A [Scene] is a snapshot of one draw: every node's screen box with its
// hover and selection state, and one line per edge between box centers. It
// is built by framing a [layout.Result] in a [viewport.Controller], exactly
// as an interactive host does on every redraw, so static output and
// interactive hosts share one coordinate mapping.
//
//	scene := render.StaticScene(res)              // padded, zoom 1
//	scene := render.NewScene(res, controller)     // current pan/zoom/hover
//
// Sinks consume scenes:
//
//   - [sink]: hand-written SVG and supersampled PNG
//   - [nodelink]: Graphviz DOT with pinned positions, rendered in-process
//
// [sink]: github.com/matzehuels/amas/pkg/render/sink
// [nodelink]: github.com/matzehuels/amas/pkg/render/nodelink
package render
