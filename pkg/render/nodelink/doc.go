// Package nodelink renders scenes through Graphviz.
//
// # Overview
//
// [ToDOT] writes an undirected DOT graph whose nodes are pinned to their
// scene positions (pos="x,y!", inputscale=72, y flipped to Graphviz's
// bottom-up axis). [RenderSVG] lays it out with the neato engine, which
// honors pinned positions, and renders SVG in-process.
//
//	dot := nodelink.ToDOT(scene, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// The DOT text is also useful on its own: `neato -n -Tpdf graph.dot`.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process rendering.
package nodelink
