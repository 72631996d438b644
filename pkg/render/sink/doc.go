// Package sink writes [render.Scene] values as SVG or PNG.
//
// SVG is written by hand: edges first, then node squares, then labels
// below each square. Hovered and selected nodes get their own classes
// (and colors), and [WithInteraction] adds a small CSS hover effect for
// browsers.
//
// PNG is rasterized in-process with golang.org/x/image at 4x and
// downsampled with Catmull-Rom, so no external tools are needed.
package sink
