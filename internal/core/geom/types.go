// Package geom holds the pure maths behind target lines: interpolation,
// easing, bezier evaluation and screen-space rectangles.
package geom

import "github.com/go-gl/mathgl/mgl64"

// UpAxis is the index of the vertical component in world positions.
const UpAxis = 1

// Rect is an axis-aligned screen-space rectangle.
type Rect struct {
	Min mgl64.Vec2
	Max mgl64.Vec2
}

// BoundsOf returns the smallest Rect covering all points.
func BoundsOf(points ...mgl64.Vec2) Rect {
	if len(points) == 0 {
		return Rect{}
	}
	r := Rect{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		r.Min[0] = min(r.Min[0], p[0])
		r.Min[1] = min(r.Min[1], p[1])
		r.Max[0] = max(r.Max[0], p[0])
		r.Max[1] = max(r.Max[1], p[1])
	}
	return r
}

// Expand grows the rectangle by margin on every side.
func (r Rect) Expand(margin float64) Rect {
	return Rect{
		Min: mgl64.Vec2{r.Min[0] - margin, r.Min[1] - margin},
		Max: mgl64.Vec2{r.Max[0] + margin, r.Max[1] + margin},
	}
}

// Width returns the horizontal extent.
func (r Rect) Width() float64 { return r.Max[0] - r.Min[0] }

// Height returns the vertical extent.
func (r Rect) Height() float64 { return r.Max[1] - r.Min[1] }

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p mgl64.Vec2) bool {
	return p[0] >= r.Min[0] && p[0] <= r.Max[0] && p[1] >= r.Min[1] && p[1] <= r.Max[1]
}

// Perp returns v rotated a quarter turn: (-y, x).
func Perp(v mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{-v[1], v[0]}
}

// Direction returns the unit vector from a to b, or zero when they coincide.
func Direction(a, b mgl64.Vec2) mgl64.Vec2 {
	d := b.Sub(a)
	if d.Len() == 0 {
		return mgl64.Vec2{}
	}
	return d.Normalize()
}

// WithHeight returns p raised by dy along the up axis.
func WithHeight(p mgl64.Vec3, dy float64) mgl64.Vec3 {
	p[UpAxis] += dy
	return p
}
