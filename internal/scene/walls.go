package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Wall is a vertical occluder standing on the ground plane between A and B.
// A and B are (x, z) coordinates.
type Wall struct {
	A, B   mgl64.Vec2
	Height float64
}

const epsilon = 0.001

// Blocks reports whether the wall hides p from eye.
func (w Wall) Blocks(eye, p mgl64.Vec3) bool {
	from := mgl64.Vec2{eye[0], eye[2]}
	to := mgl64.Vec2{p[0], p[2]}
	t, ok := intersect(from, to, w.A, w.B)
	if !ok {
		return false
	}
	// Height of the sight line where it crosses the wall
	y := eye[1] + (p[1]-eye[1])*t
	return y <= w.Height
}

// intersect returns the parameter along p0->p1 where it crosses q0->q1.
func intersect(p0, p1, q0, q1 mgl64.Vec2) (float64, bool) {
	r := p1.Sub(p0)
	s := q1.Sub(q0)
	denom := cross(r, s)
	if math.Abs(denom) < epsilon*epsilon {
		return 0, false
	}
	d := q0.Sub(p0)
	t := cross(d, s) / denom
	u := cross(d, r) / denom
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return 0, false
	}
	return t, true
}

func cross(a, b mgl64.Vec2) float64 {
	return a[0]*b[1] - a[1]*b[0]
}

// MergeWalls joins walls of equal height that continue each other along the
// same line, so occlusion tests run over fewer segments.
func MergeWalls(walls []Wall) []Wall {
	merged := make([]bool, len(walls))
	var result []Wall

	for i := range walls {
		if merged[i] {
			continue
		}
		current := walls[i]
		merged[i] = true

		// Keep extending until nothing else attaches
		extended := true
		for extended {
			extended = false
			for j := range walls {
				if merged[j] || !canMerge(current, walls[j]) {
					continue
				}
				current = mergeWalls(current, walls[j])
				merged[j] = true
				extended = true
				break
			}
		}
		result = append(result, current)
	}
	return result
}

// canMerge checks that two walls are colinear, equally tall and share an end.
func canMerge(a, b Wall) bool {
	if math.Abs(a.Height-b.Height) > epsilon {
		return false
	}
	dir := a.B.Sub(a.A)
	if math.Abs(cross(dir, b.A.Sub(a.A))) > epsilon || math.Abs(cross(dir, b.B.Sub(a.A))) > epsilon {
		return false
	}
	return a.B.ApproxEqualThreshold(b.A, epsilon) || a.A.ApproxEqualThreshold(b.B, epsilon) ||
		a.A.ApproxEqualThreshold(b.A, epsilon) || a.B.ApproxEqualThreshold(b.B, epsilon)
}

// mergeWalls spans the two ends of a and b that lie furthest apart.
func mergeWalls(a, b Wall) Wall {
	points := []mgl64.Vec2{a.A, a.B, b.A, b.B}
	dir := a.B.Sub(a.A)
	lo, hi := points[0], points[0]
	for _, p := range points[1:] {
		if p.Sub(a.A).Dot(dir) < lo.Sub(a.A).Dot(dir) {
			lo = p
		}
		if p.Sub(a.A).Dot(dir) > hi.Sub(a.A).Dot(dir) {
			hi = p
		}
	}
	return Wall{A: lo, B: hi, Height: a.Height}
}
