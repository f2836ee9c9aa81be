package ebiten

import (
	"bytes"
	"image"
	"image/color"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"

	"chosenoffset.com/targetlines/internal/logging"
	"chosenoffset.com/targetlines/internal/render"
)

// debugFontSize is the size of overlay text in pixels.
const debugFontSize = 14

var (
	whiteOnce     sync.Once
	whiteSubImage *ebiten.Image

	faceOnce sync.Once
	face     *text.GoTextFace
)

// white returns a one pixel white source for untextured triangles. The
// pixel is taken from the middle of a 3x3 image so filtering never samples
// the edge.
func white() *ebiten.Image {
	whiteOnce.Do(func() {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whiteSubImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	})
	return whiteSubImage
}

// debugFace returns the overlay font, or nil if it failed to load.
func debugFace() *text.GoTextFace {
	faceOnce.Do(func() {
		src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
		if err != nil {
			logging.Logger().Warn("failed to load debug font", "err", err)
			return
		}
		face = &text.GoTextFace{Source: src, Size: debugFontSize}
	})
	return face
}

// DrawList draws target line primitives straight onto an ebiten image.
type DrawList struct {
	dst *ebiten.Image

	// Scratch buffers reused between strokes
	vertices []ebiten.Vertex
	indices  []uint16
}

// NewDrawList returns a sink drawing onto dst.
func NewDrawList(dst *ebiten.Image) *DrawList {
	return &DrawList{dst: dst}
}

// AddBezierQuadratic implements render.DrawList.
func (d *DrawList) AddBezierQuadratic(p0, p1, p2 mgl64.Vec2, clr color.NRGBA, thickness float64) {
	var path vector.Path
	path.MoveTo(float32(p0[0]), float32(p0[1]))
	path.QuadTo(float32(p1[0]), float32(p1[1]), float32(p2[0]), float32(p2[1]))
	d.stroke(&path, clr, thickness)
}

// AddBezierCubic implements render.DrawList.
func (d *DrawList) AddBezierCubic(p0, p1, p2, p3 mgl64.Vec2, clr color.NRGBA, thickness float64) {
	var path vector.Path
	path.MoveTo(float32(p0[0]), float32(p0[1]))
	path.CubicTo(float32(p1[0]), float32(p1[1]), float32(p2[0]), float32(p2[1]), float32(p3[0]), float32(p3[1]))
	d.stroke(&path, clr, thickness)
}

func (d *DrawList) stroke(path *vector.Path, clr color.NRGBA, thickness float64) {
	if thickness <= 0 || clr.A == 0 {
		return
	}
	d.vertices, d.indices = path.AppendVerticesAndIndicesForStroke(d.vertices[:0], d.indices[:0], &vector.StrokeOptions{
		Width:    float32(thickness),
		LineJoin: vector.LineJoinRound,
		LineCap:  vector.LineCapRound,
	})

	r, g, b, a := render.NormalizedColor(clr)
	for i := range d.vertices {
		d.vertices[i].SrcX = 1
		d.vertices[i].SrcY = 1
		d.vertices[i].ColorR = r
		d.vertices[i].ColorG = g
		d.vertices[i].ColorB = b
		d.vertices[i].ColorA = a
	}
	d.dst.DrawTriangles(d.vertices, d.indices, white(), &ebiten.DrawTrianglesOptions{
		AntiAlias: true,
	})
}

// AddImageQuad implements render.DrawList. Textures from another backend
// are skipped.
func (d *DrawList) AddImageQuad(tex render.Texture, quad [4]mgl64.Vec2, uv [4]mgl64.Vec2, clr color.NRGBA) {
	src, ok := tex.(*EbitenImage)
	if !ok || src == nil {
		return
	}
	vertices, indices := render.QuadMesh(tex, quad, uv, clr)

	ebitenVertices := make([]ebiten.Vertex, len(vertices))
	for i, v := range vertices {
		ebitenVertices[i] = ebiten.Vertex{
			DstX:   v.DstX,
			DstY:   v.DstY,
			SrcX:   v.SrcX,
			SrcY:   v.SrcY,
			ColorR: v.ColorR,
			ColorG: v.ColorG,
			ColorB: v.ColorB,
			ColorA: v.ColorA,
		}
	}
	d.dst.DrawTriangles(ebitenVertices, indices, src.img, &ebiten.DrawTrianglesOptions{
		Filter: ebiten.FilterLinear,
	})
}

// AddText implements render.DrawList.
func (d *DrawList) AddText(pos mgl64.Vec2, clr color.NRGBA, label string) {
	f := debugFace()
	if f == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(pos[0], pos[1])
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(d.dst, label, f, op)
}
