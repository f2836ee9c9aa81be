// Package raster draws target lines into an in-memory image with the gg
// software rasterizer, for PNG snapshots and tests.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"

	"chosenoffset.com/targetlines/internal/core/geom"
	"chosenoffset.com/targetlines/internal/logging"
	"chosenoffset.com/targetlines/internal/render"
)

// fontSize is the size of overlay text in points.
const fontSize = 13

var (
	fontOnce sync.Once
	font     *text.FontSource
)

func fontSource() *text.FontSource {
	fontOnce.Do(func() {
		src, err := text.NewFontSource(goregular.TTF)
		if err != nil {
			logging.Logger().Warn("failed to load raster font", "err", err)
			return
		}
		font = src
	})
	return font
}

// Texture is a decoded image usable by a Canvas.
type Texture struct {
	buf *gg.ImageBuf
}

// NewTexture converts img into a texture.
func NewTexture(img image.Image) *Texture {
	return &Texture{buf: gg.ImageBufFromImage(img)}
}

// Size implements render.Texture.
func (t *Texture) Size() (int, int) {
	return t.buf.Bounds()
}

// sample returns the straight alpha texel nearest to (u, v).
func (t *Texture) sample(u, v float64) gg.RGBA {
	w, h := t.buf.Bounds()
	x := clampIndex(int(u*float64(w)), w)
	y := clampIndex(int(v*float64(h)), h)
	r, g, b, a := t.buf.GetRGBA(x, y)
	return gg.RGBA{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255, A: float64(a) / 255}
}

func clampIndex(i, n int) int {
	return max(0, min(i, n-1))
}

// Loader reads textures from image files.
type Loader struct{}

// LoadTexture implements render.ResourceLoader.
func (Loader) LoadTexture(path string) (render.Texture, error) {
	buf, err := gg.LoadImage(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load texture %s: %w", path, err)
	}
	return &Texture{buf: buf}, nil
}

// Canvas is a render.DrawList backed by a gg context.
type Canvas struct {
	ctx  *gg.Context
	face text.Face
}

// NewCanvas returns a transparent canvas of the given size.
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{ctx: gg.NewContext(width, height)}
	if src := fontSource(); src != nil {
		c.face = src.Face(fontSize)
		c.ctx.SetFont(c.face)
	}
	c.ctx.SetLineCap(gg.LineCapRound)
	c.ctx.SetLineJoin(gg.LineJoinRound)
	return c
}

// Context exposes the underlying gg context for drawing a backdrop.
func (c *Canvas) Context() *gg.Context { return c.ctx }

// Clear fills the whole canvas with col.
func (c *Canvas) Clear(col color.Color) {
	c.ctx.ClearWithColor(gg.FromColor(col))
}

// Image returns the canvas contents.
func (c *Canvas) Image() image.Image { return c.ctx.Image() }

// SavePNG writes the canvas to a PNG file.
func (c *Canvas) SavePNG(path string) error {
	if err := c.ctx.SavePNG(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

// EncodePNG writes the canvas as PNG to w.
func (c *Canvas) EncodePNG(w io.Writer) error {
	return c.ctx.EncodePNG(w)
}

// Close releases the context.
func (c *Canvas) Close() error {
	return c.ctx.Close()
}

// AddBezierQuadratic implements render.DrawList.
func (c *Canvas) AddBezierQuadratic(p0, p1, p2 mgl64.Vec2, clr color.NRGBA, thickness float64) {
	if thickness <= 0 || clr.A == 0 {
		return
	}
	c.ctx.MoveTo(p0[0], p0[1])
	c.ctx.QuadraticTo(p1[0], p1[1], p2[0], p2[1])
	c.stroke(clr, thickness)
}

// AddBezierCubic implements render.DrawList.
func (c *Canvas) AddBezierCubic(p0, p1, p2, p3 mgl64.Vec2, clr color.NRGBA, thickness float64) {
	if thickness <= 0 || clr.A == 0 {
		return
	}
	c.ctx.MoveTo(p0[0], p0[1])
	c.ctx.CubicTo(p1[0], p1[1], p2[0], p2[1], p3[0], p3[1])
	c.stroke(clr, thickness)
}

func (c *Canvas) stroke(clr color.NRGBA, thickness float64) {
	c.setColor(clr)
	c.ctx.SetLineWidth(thickness)
	if err := c.ctx.Stroke(); err != nil {
		logging.Logger().Debug("stroke failed", "err", err)
	}
}

func (c *Canvas) setColor(clr color.NRGBA) {
	r, g, b, a := render.NormalizedColor(clr)
	c.ctx.SetRGBA(float64(r), float64(g), float64(b), float64(a))
}

// AddImageQuad implements render.DrawList. Only textures created by this
// package are drawn.
func (c *Canvas) AddImageQuad(tex render.Texture, quad [4]mgl64.Vec2, uv [4]mgl64.Vec2, clr color.NRGBA) {
	t, ok := tex.(*Texture)
	if !ok || t == nil || clr.A == 0 {
		return
	}
	pattern, ok := newQuadPattern(t, quad, uv, clr)
	if !ok {
		return
	}

	c.ctx.SetFillPattern(pattern)
	c.ctx.MoveTo(quad[0][0], quad[0][1])
	for _, p := range quad[1:] {
		c.ctx.LineTo(p[0], p[1])
	}
	c.ctx.ClosePath()
	if err := c.ctx.Fill(); err != nil {
		logging.Logger().Debug("quad fill failed", "err", err)
	}
}

// AddText implements render.DrawList. pos is the top-left corner.
func (c *Canvas) AddText(pos mgl64.Vec2, clr color.NRGBA, label string) {
	if c.face == nil {
		return
	}
	c.setColor(clr)
	c.ctx.DrawString(label, pos[0], pos[1]+fontSize)
}

// quadPattern maps screen positions inside a parallelogram quad back to
// texture coordinates and tints the texel.
type quadPattern struct {
	tex    *Texture
	origin mgl64.Vec2
	e1, e2 mgl64.Vec2 // quad[1]-quad[0] and quad[3]-quad[0]
	det    float64
	uv0    mgl64.Vec2
	du, dv mgl64.Vec2
	tint   gg.RGBA
}

func newQuadPattern(t *Texture, quad, uv [4]mgl64.Vec2, clr color.NRGBA) (*quadPattern, bool) {
	e1 := quad[1].Sub(quad[0])
	e2 := quad[3].Sub(quad[0])
	det := cross(e1, e2)
	if math.Abs(det) < 1e-9 {
		return nil, false
	}
	r, g, b, a := render.NormalizedColor(clr)
	return &quadPattern{
		tex:    t,
		origin: quad[0],
		e1:     e1,
		e2:     e2,
		det:    det,
		uv0:    uv[0],
		du:     uv[1].Sub(uv[0]),
		dv:     uv[3].Sub(uv[0]),
		tint:   gg.RGBA{R: float64(r), G: float64(g), B: float64(b), A: float64(a)},
	}, true
}

// ColorAt implements gg.Pattern.
func (p *quadPattern) ColorAt(x, y float64) gg.RGBA {
	d := mgl64.Vec2{x, y}.Sub(p.origin)
	s := geom.Clamp01(cross(d, p.e2) / p.det)
	t := geom.Clamp01(cross(p.e1, d) / p.det)
	uv := p.uv0.Add(p.du.Mul(s)).Add(p.dv.Mul(t))

	texel := p.tex.sample(geom.Clamp01(uv[0]), geom.Clamp01(uv[1]))
	return gg.RGBA{
		R: texel.R * p.tint.R,
		G: texel.G * p.tint.G,
		B: texel.B * p.tint.B,
		A: texel.A * p.tint.A,
	}
}

func cross(a, b mgl64.Vec2) float64 {
	return a[0]*b[1] - a[1]*b[0]
}
