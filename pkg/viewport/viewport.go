package viewport

import (
	"math"
	"slices"

	"github.com/matzehuels/amas/pkg/layout"
	"github.com/matzehuels/amas/pkg/workspace"
)

const (
	DefaultMinZoom = 0.1
	DefaultMaxZoom = 10.0
	DefaultBoxSize = 40.0

	// WheelZoomScale converts a modified wheel delta into a zoom delta.
	WheelZoomScale = 0.01
)

// Opener receives "open this file" requests.
type Opener interface {
	Open(path string) error
}

// OpenerFunc adapts a function to [Opener].
type OpenerFunc func(path string) error

// Open calls f(path).
func (f OpenerFunc) Open(path string) error { return f(path) }

// Box is a node's hit area in screen space.
type Box struct {
	ID     workspace.NodeID
	File   workspace.SourceFile
	Center layout.Point
	Size   float64
}

// Min returns the top-left corner.
func (b Box) Min() layout.Point {
	return layout.Point{X: b.Center.X - b.Size/2, Y: b.Center.Y - b.Size/2}
}

// Max returns the bottom-right corner.
func (b Box) Max() layout.Point {
	return layout.Point{X: b.Center.X + b.Size/2, Y: b.Center.Y + b.Size/2}
}

// Contains reports whether (x, y) lies inside b, edges included.
func (b Box) Contains(x, y float64) bool {
	lo, hi := b.Min(), b.Max()
	return x >= lo.X && x <= hi.X && y >= lo.Y && y <= hi.Y
}

// Option configures a [Controller].
type Option func(*Controller)

// WithZoomBounds sets the zoom clamp. Invalid bounds are ignored.
func WithZoomBounds(lo, hi float64) Option {
	return func(c *Controller) {
		if lo > 0 && hi >= lo {
			c.minZoom, c.maxZoom = lo, hi
		}
	}
}

// WithBoxSize sets the side of a node box at zoom 1.
func WithBoxSize(size float64) Option {
	return func(c *Controller) {
		if size > 0 {
			c.boxSize = size
		}
	}
}

// WithOpener sets the collaborator that opens files.
func WithOpener(o Opener) Option {
	return func(c *Controller) { c.opener = o }
}

// Controller holds viewport and selection state. It is not safe for
// concurrent use.
type Controller struct {
	minZoom, maxZoom float64
	boxSize          float64
	opener           Opener

	zoom   float64
	tx, ty float64

	dragging     bool
	lastX, lastY float64
	pointer      layout.Point

	frame    []layout.Placement
	hovered  int // index into frame, -1 for none
	selected map[string]struct{}
}

// New creates a controller at zoom 1 with no translation.
func New(opts ...Option) *Controller {
	c := &Controller{
		minZoom:  DefaultMinZoom,
		maxZoom:  DefaultMaxZoom,
		boxSize:  DefaultBoxSize,
		zoom:     1,
		hovered:  -1,
		selected: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// =============================================================================
// Transform
// =============================================================================

// Zoom returns the current zoom factor.
func (c *Controller) Zoom() float64 { return c.zoom }

// ZoomBounds returns the zoom clamp.
func (c *Controller) ZoomBounds() (lo, hi float64) { return c.minZoom, c.maxZoom }

// Translation returns the current translation.
func (c *Controller) Translation() (x, y float64) { return c.tx, c.ty }

// Pointer returns the last pointer position seen.
func (c *Controller) Pointer() layout.Point { return c.pointer }

// Pan shifts the translation by (dx, dy).
func (c *Controller) Pan(dx, dy float64) {
	c.tx += dx
	c.ty += dy
}

// ZoomAt changes the zoom by delta, keeping the world point under (px, py)
// fixed on screen. It reports whether the zoom changed.
func (c *Controller) ZoomAt(delta, px, py float64) bool {
	old := c.zoom
	next := math.Max(c.minZoom, math.Min(old+delta, c.maxZoom))
	if next == old {
		return false
	}
	wx := (px - c.tx) / old
	wy := (py - c.ty) / old
	c.zoom = next
	c.tx = px - wx*next
	c.ty = py - wy*next
	return true
}

// ZoomBy zooms around the last pointer position.
func (c *Controller) ZoomBy(delta float64) bool {
	return c.ZoomAt(delta, c.pointer.X, c.pointer.Y)
}

// Reset restores zoom 1 and zero translation. Selection is kept.
func (c *Controller) Reset() {
	c.zoom = 1
	c.tx, c.ty = 0, 0
	c.dragging = false
}

// WorldPoint maps a screen point back to layout coordinates.
func (c *Controller) WorldPoint(x, y float64) layout.Point {
	return layout.Point{X: (x - c.tx) / c.zoom, Y: (y - c.ty) / c.zoom}
}

// ScreenPoint maps a layout point to screen coordinates.
func (c *Controller) ScreenPoint(p layout.Point) layout.Point {
	return layout.Point{X: p.X*c.zoom + c.tx, Y: p.Y*c.zoom + c.ty}
}

// =============================================================================
// Pointer input
// =============================================================================

// PointerDown starts a drag at (x, y).
func (c *Controller) PointerDown(x, y float64) {
	c.pointer = layout.Point{X: x, Y: y}
	c.dragging = true
	c.lastX, c.lastY = x, y
}

// PointerMove records the pointer, pans by the delta from the previous
// move while dragging, then recomputes hover.
func (c *Controller) PointerMove(x, y float64) {
	c.pointer = layout.Point{X: x, Y: y}
	if c.dragging {
		c.Pan(x-c.lastX, y-c.lastY)
		c.lastX, c.lastY = x, y
	}
	c.hovered = c.hit(x, y)
}

// PointerUp ends a drag.
func (c *Controller) PointerUp() { c.dragging = false }

// Dragging reports whether a drag is in progress.
func (c *Controller) Dragging() bool { return c.dragging }

// Wheel pans by (dx, dy). With modifier held it zooms around the pointer
// instead, scrolling up (negative dy) zooming in.
func (c *Controller) Wheel(dx, dy float64, modifier bool) {
	if modifier {
		c.ZoomBy(-dy * WheelZoomScale)
		return
	}
	c.Pan(dx, dy)
}

// Pinch zooms by delta around the pointer. A pinch in that leaves the zoom at
// the maximum with a node hovered opens it, including when the zoom was
// already there; opened reports whether that happened.
func (c *Controller) Pinch(delta float64) (opened bool, err error) {
	c.ZoomBy(delta)
	if delta > 0 && c.zoom == c.maxZoom && c.hovered >= 0 {
		return c.open()
	}
	return false, nil
}

// Click selects the hovered file alone, or clears the selection.
func (c *Controller) Click() {
	clear(c.selected)
	if c.hovered >= 0 {
		c.selected[c.frame[c.hovered].File.Path] = struct{}{}
	}
}

// ToggleSelect adds or removes the hovered file from the selection.
func (c *Controller) ToggleSelect() {
	if c.hovered < 0 {
		return
	}
	p := c.frame[c.hovered].File.Path
	if _, ok := c.selected[p]; ok {
		delete(c.selected, p)
	} else {
		c.selected[p] = struct{}{}
	}
}

// DoubleClick opens the hovered file.
func (c *Controller) DoubleClick() (opened bool, err error) {
	if c.hovered < 0 {
		return false, nil
	}
	return c.open()
}

func (c *Controller) open() (bool, error) {
	if c.opener == nil {
		return false, nil
	}
	if err := c.opener.Open(c.frame[c.hovered].File.Path); err != nil {
		return false, err
	}
	return true, nil
}

// =============================================================================
// Frames and hit-testing
// =============================================================================

// Frame installs the placements of a new draw and returns their boxes.
// The hovered file stays hovered if it is still part of the frame.
func (c *Controller) Frame(res layout.Result) []Box {
	var path string
	if c.hovered >= 0 {
		path = c.frame[c.hovered].File.Path
	}
	c.frame = res.Placements
	c.SetHover(path)
	return c.Boxes()
}

// Boxes returns the current screen boxes in placement order.
func (c *Controller) Boxes() []Box {
	boxes := make([]Box, len(c.frame))
	for i := range c.frame {
		boxes[i] = c.box(i)
	}
	return boxes
}

// HitTest returns the first box containing (x, y).
func (c *Controller) HitTest(x, y float64) (Box, bool) {
	i := c.hit(x, y)
	if i < 0 {
		return Box{}, false
	}
	return c.box(i), true
}

func (c *Controller) hit(x, y float64) int {
	for i := range c.frame {
		if c.box(i).Contains(x, y) {
			return i
		}
	}
	return -1
}

func (c *Controller) box(i int) Box {
	p := c.frame[i]
	return Box{
		ID:     p.ID,
		File:   p.File,
		Center: c.ScreenPoint(p.Position),
		Size:   c.boxSize * c.zoom,
	}
}

// =============================================================================
// Hover and selection
// =============================================================================

// Hovered returns the hovered node's box.
func (c *Controller) Hovered() (Box, bool) {
	if c.hovered < 0 {
		return Box{}, false
	}
	return c.box(c.hovered), true
}

// SetHover hovers the node with the given path in the current frame.
// An empty or unknown path clears hover.
func (c *Controller) SetHover(path string) {
	c.hovered = -1
	if path == "" {
		return
	}
	for i, p := range c.frame {
		if p.File.Path == path {
			c.hovered = i
			return
		}
	}
}

// Select replaces the selection with paths.
func (c *Controller) Select(paths ...string) {
	clear(c.selected)
	for _, p := range paths {
		c.selected[p] = struct{}{}
	}
}

// IsSelected reports whether path is selected.
func (c *Controller) IsSelected(path string) bool {
	_, ok := c.selected[path]
	return ok
}

// Selected returns the selected paths, sorted.
func (c *Controller) Selected() []string {
	out := make([]string, 0, len(c.selected))
	for p := range c.selected {
		out = append(out, p)
	}
	slices.Sort(out)
	return out
}
