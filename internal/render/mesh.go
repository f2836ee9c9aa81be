package render

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
)

// quadIndices splits a four corner quad into two triangles.
var quadIndices = []uint16{0, 1, 2, 0, 2, 3}

// QuadMesh converts a textured quad into triangles. uv is normalized and is
// scaled to the texture's pixel size.
func QuadMesh(tex Texture, quad [4]mgl64.Vec2, uv [4]mgl64.Vec2, clr color.NRGBA) ([]Vertex, []uint16) {
	w, h := tex.Size()
	r, g, b, a := NormalizedColor(clr)

	vertices := make([]Vertex, 4)
	for i := range quad {
		vertices[i] = Vertex{
			DstX:   float32(quad[i][0]),
			DstY:   float32(quad[i][1]),
			SrcX:   float32(uv[i][0] * float64(w)),
			SrcY:   float32(uv[i][1] * float64(h)),
			ColorR: r,
			ColorG: g,
			ColorB: b,
			ColorA: a,
		}
	}
	return vertices, quadIndices
}

// NormalizedColor returns the straight-alpha channels of c in [0, 1].
func NormalizedColor(c color.NRGBA) (r, g, b, a float32) {
	return float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255, float32(c.A) / 255
}

// FlattenBezier evaluates the bezier with the given control points (3 for
// quadratic, 4 for cubic) at segments+1 evenly spaced parameters.
func FlattenBezier(ctrl []mgl64.Vec2, segments int) []mgl64.Vec2 {
	if len(ctrl) == 0 {
		return nil
	}
	if segments < 1 {
		segments = 1
	}
	points := make([]mgl64.Vec2, 0, segments+1)
	scratch := make([]mgl64.Vec2, len(ctrl))
	for i := 0; i <= segments; i++ {
		t := float64(i) / float64(segments)
		copy(scratch, ctrl)
		for n := len(scratch) - 1; n > 0; n-- {
			for j := 0; j < n; j++ {
				scratch[j] = scratch[j].Add(scratch[j+1].Sub(scratch[j]).Mul(t))
			}
		}
		points = append(points, scratch[0])
	}
	return points
}
