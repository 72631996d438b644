// Package viewport maps pointer and gesture input onto pan/zoom state and
// hit-tests it against a computed layout.
//
// A [Controller] owns the zoom factor, the translation, the drag state, the
// hovered node and the set of selected files. Hosts feed it discrete calls
// (PointerDown, PointerMove, PointerUp, Wheel, Pinch, Click, DoubleClick) and
// redraw after each one; nothing is observed or scheduled implicitly.
//
// # Coordinates
//
// A layout position p is drawn at screen point p*zoom + translation. Every
// node gets a square [Box] of side BoxSize*zoom centered there. Boxes are
// rebuilt from the most recent [Controller.Frame] and the current transform
// each time they are queried.
//
// # Opening files
//
// Double-click, or a pinch that zooms in to the maximum while a node is
// hovered, passes the hovered file's path to the configured [Opener].
package viewport
