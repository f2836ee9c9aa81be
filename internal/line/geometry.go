package line

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl64"

	"chosenoffset.com/targetlines/internal/core/geom"
	"chosenoffset.com/targetlines/internal/render"
)

// capExtent is the half size of an end cap relative to the line thickness.
const capExtent = 0.45

// Texture coordinates for segment quads. u runs across the line and v along
// it.
var segmentUV = [4]mgl64.Vec2{{0, 0}, {0, 1}, {1, 1}, {1, 0}}

var capUV = [4]mgl64.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

// drawSolid strokes the curve as two flat beziers, outline first.
func (l *Line) drawSolid(f *Frame, dl render.DrawList) {
	cfg := f.Config
	outline := cfg.OutlineThickness
	thickness := cfg.LineThickness

	if l.quadratic() {
		if outline > 0 {
			dl.AddBezierQuadratic(l.screenSource, l.screenMid, l.screenTarget, l.drawOutline, outline)
		}
		if thickness > 0 {
			dl.AddBezierQuadratic(l.screenSource, l.screenMid, l.screenTarget, l.drawColor, thickness)
		}
		return
	}

	if outline > 0 {
		dl.AddBezierCubic(l.screenSource, l.screenMid, l.screenMid, l.screenTarget, l.drawOutline, outline)
	}
	if thickness > 0 {
		dl.AddBezierCubic(l.screenSource, l.screenMid, l.screenMid, l.screenTarget, l.drawColor, thickness)
	}
}

// drawFancy emits textured segment quads followed by the end caps.
func (l *Line) drawFancy(f *Frame, dl render.DrawList, textures render.TextureProvider) {
	thickness := f.Config.LineThickness * 2
	outline := f.Config.OutlineThickness * 2

	firstOccluded, lastOccluded := l.drawSegments(f, dl, textures, thickness, outline)
	l.drawCaps(f, dl, textures, thickness, firstOccluded, lastOccluded)
}

func (l *Line) drawSegments(f *Frame, dl render.DrawList, textures render.TextureProvider, thickness, outlineThickness float64) (firstOccluded, lastOccluded bool) {
	scene := f.Scene
	last := l.sampleCount - 2
	lineTex, hasLine := lookup(textures, render.TextureLine)
	outlineTex, hasOutline := lookup(textures, render.TextureOutline)

	for i := 0; i <= last; i++ {
		a, b := l.samples[i], l.samples[i+1]
		if !a.Visible && !b.Visible {
			continue
		}

		// Segments passing through the first person camera are hidden.
		if !scene.InsidePerspective(a.CameraAngle) || !scene.InsidePerspective(b.CameraAngle) {
			if i == 0 {
				firstOccluded = true
			}
			if i == last {
				lastOccluded = true
			}
			continue
		}

		fill, outline := l.segmentColors(f, i)
		occluded := fill.A == 0 || thickness == 0
		if i == 0 {
			firstOccluded = occluded
		}
		if i == last {
			lastOccluded = occluded
		}
		if occluded {
			continue
		}

		perp := geom.Perp(geom.Direction(a.Pos, b.Pos))
		if hasOutline && outline.A != 0 && outlineThickness != 0 {
			dl.AddImageQuad(outlineTex, segmentQuad(a.Pos, b.Pos, perp.Mul(outlineThickness)), segmentUV, outline)
		}
		if hasLine {
			dl.AddImageQuad(lineTex, segmentQuad(a.Pos, b.Pos, perp.Mul(thickness)), segmentUV, fill)
		}
	}
	return firstOccluded, lastOccluded
}

func (l *Line) drawCaps(f *Frame, dl render.DrawList, textures render.TextureProvider, thickness float64, firstOccluded, lastOccluded bool) {
	edge, ok := lookup(textures, render.TextureEdge)
	if !ok {
		return
	}
	n := l.sampleCount
	extent := thickness * capExtent

	if l.drawBeginCap && !firstOccluded {
		dir := geom.Direction(l.samples[0].Pos, l.samples[1].Pos)
		dl.AddImageQuad(edge, capQuad(l.samples[0].Pos, dir, extent), capUV, l.drawColor)
	}
	if l.drawEndCap && !lastOccluded {
		dir := geom.Direction(l.samples[n-2].Pos, l.samples[n-1].Pos)
		dl.AddImageQuad(edge, capQuad(l.samples[n-1].Pos, dir, extent), capUV, l.endCapColor(f))
	}
}

// drawDebug labels the line with its sample count, entity and state.
func (l *Line) drawDebug(dl render.DrawList) {
	count := fmt.Sprint(l.sampleCount)
	dl.AddText(l.screenSource, color.NRGBA{A: 255}, count)
	dl.AddText(l.screenMid, color.NRGBA{R: 255, G: 255, A: 255}, count)
	dl.AddText(l.screenTarget, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, count)

	below := l.screenSource.Add(mgl64.Vec2{0, 32})
	dl.AddText(below, color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		fmt.Sprintf("Entity: %X; State: %s", l.self.ID(), l.state))
	below = below.Add(mgl64.Vec2{0, 32})
	dl.AddText(below, color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		fmt.Sprintf("Dead? %v; Hidden? %v", l.self.Dead(), l.self.Hidden()))
}

// segmentQuad spans a segment with the given perpendicular half width.
func segmentQuad(a, b, perp mgl64.Vec2) [4]mgl64.Vec2 {
	return [4]mgl64.Vec2{a.Sub(perp), b.Sub(perp), b.Add(perp), a.Add(perp)}
}

// capQuad is a square centred on c and rotated to the tangent dir.
func capQuad(c, dir mgl64.Vec2, extent float64) [4]mgl64.Vec2 {
	if dir == (mgl64.Vec2{}) {
		dir = mgl64.Vec2{1, 0}
	}
	along := dir.Mul(extent)
	across := geom.Perp(dir).Mul(extent)
	return [4]mgl64.Vec2{
		c.Sub(along).Sub(across),
		c.Add(along).Sub(across),
		c.Add(along).Add(across),
		c.Sub(along).Add(across),
	}
}

func lookup(textures render.TextureProvider, kind render.TextureKind) (render.Texture, bool) {
	if textures == nil {
		return nil, false
	}
	return textures.Texture(kind)
}
