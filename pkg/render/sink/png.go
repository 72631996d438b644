package sink

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/matzehuels/amas/pkg/render"
)

// supersample is the factor the image is drawn at before downsampling.
const supersample = 4

// maxPNGPixels bounds the supersampled canvas.
const maxPNGPixels = 1 << 28

var (
	rgbaBackground = color.RGBA{0x1e, 0x1e, 0x2e, 0xff}
	rgbaEdge       = color.RGBA{0xcd, 0xd6, 0xf4, 0xff}
	rgbaNode       = color.RGBA{0x1f, 0x6f, 0xeb, 0xff}
	rgbaHover      = color.RGBA{0x58, 0xa6, 0xff, 0xff}
	rgbaSelected   = color.RGBA{0xf9, 0xe2, 0xaf, 0xff}
	rgbaLabel      = color.RGBA{0xff, 0xff, 0xff, 0xff}
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale     float64
	hideNames bool
}

// WithScale sets the output scale factor (default 1).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

// WithoutPNGNames omits node labels.
func WithoutPNGNames() PNGOption { return func(r *pngRenderer) { r.hideNames = true } }

// canvas is a supersampled drawing surface.
type canvas struct {
	img    *image.RGBA
	factor float64 // scene units to pixels
	face   font.Face
}

// RenderPNG rasterizes s.
func RenderPNG(s render.Scene, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 1}
	for _, opt := range opts {
		opt(&r)
	}

	w := int(math.Ceil(s.Width * r.scale))
	h := int(math.Ceil(s.Height * r.scale))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("empty canvas %dx%d", w, h)
	}
	if w*h*supersample*supersample > maxPNGPixels {
		return nil, fmt.Errorf("canvas %dx%d at scale %.1f is too large", w, h, r.scale)
	}

	c, err := newCanvas(w*supersample, h*supersample, r.scale*supersample, s.Zoom)
	if err != nil {
		return nil, err
	}
	c.draw(s, !r.hideNames)

	final := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(final, final.Bounds(), c.img, c.img.Bounds(), draw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, final); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func newCanvas(w, h int, factor, zoom float64) (*canvas, error) {
	fnt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    render.LabelFontSize(zoom) * factor,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("font face: %w", err)
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(rgbaBackground), image.Point{}, draw.Src)
	return &canvas{img: img, factor: factor, face: face}, nil
}

func (c *canvas) draw(s render.Scene, names bool) {
	thick := max(1, 2*s.Zoom) * c.factor
	for _, l := range s.Lines {
		c.line(l.From.X*c.factor, l.From.Y*c.factor, l.To.X*c.factor, l.To.Y*c.factor, thick, rgbaEdge)
	}
	for _, n := range s.Nodes {
		fill := rgbaNode
		if n.Hovered {
			fill = rgbaHover
		}
		lo, hi := n.Min(), n.Max()
		if n.Selected {
			border := max(1.5, 3*s.Zoom)
			c.rect(lo.X-border, lo.Y-border, hi.X+border, hi.Y+border, rgbaSelected)
		}
		c.rect(lo.X, lo.Y, hi.X, hi.Y, fill)
	}
	if !names {
		return
	}
	size := render.LabelFontSize(s.Zoom)
	for _, n := range s.Nodes {
		c.textCentered(n.Center.X*c.factor, (n.Max().Y+size*1.2)*c.factor, n.File.Name, rgbaLabel)
	}
}

// rect fills an axis-aligned rectangle given in scene units.
func (c *canvas) rect(x0, y0, x1, y1 float64, col color.Color) {
	r := image.Rect(
		int(x0*c.factor), int(y0*c.factor),
		int(math.Ceil(x1*c.factor)), int(math.Ceil(y1*c.factor)),
	)
	draw.Draw(c.img, r.Intersect(c.img.Bounds()), image.NewUniform(col), image.Point{}, draw.Src)
}

// line draws a thick segment in pixel coordinates.
func (c *canvas) line(x1, y1, x2, y2, thickness float64, col color.Color) {
	dx, dy := x2-x1, y2-y1
	dist := math.Hypot(dx, dy)
	if dist < 1 {
		return
	}
	steps := math.Max(math.Abs(dx), math.Abs(dy))
	perpX, perpY := -dy/dist, dx/dist
	half := thickness / 2

	for i := 0.0; i <= steps; i++ {
		t := i / steps
		cx, cy := x1+dx*t, y1+dy*t
		for off := -half; off <= half; off += 0.5 {
			c.img.Set(int(cx+perpX*off), int(cy+perpY*off), col)
		}
	}
}

// textCentered draws text with its baseline at y, centered on x.
func (c *canvas) textCentered(x, y float64, text string, col color.Color) {
	width := font.MeasureString(c.face, text)
	d := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: c.face,
		Dot: fixed.Point26_6{
			X: fixed.I(int(x)) - width/2,
			Y: fixed.I(int(y)),
		},
	}
	d.DrawString(text)
}
