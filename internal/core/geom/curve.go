package geom

import "github.com/go-gl/mathgl/mgl64"

// Shape corrections applied to the arc height so that a quadratic and a
// degenerate cubic with the same configured arc look alike.
const (
	CubicShapeFix     = 0.75
	QuadraticShapeFix = 1.0
)

// ShapeFix returns the arc height correction for the curve family.
func ShapeFix(quadratic bool) float64 {
	if quadratic {
		return QuadraticShapeFix
	}
	return CubicShapeFix
}

// Clamp01 clamps x to [0, 1].
func Clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// EaseAlpha returns elapsed/duration clamped to [0, 1]. A non-positive
// duration completes immediately.
func EaseAlpha(elapsed, duration float64) float64 {
	if duration <= 0 {
		return 1
	}
	return Clamp01(elapsed / duration)
}

// Lerp interpolates linearly between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// QuadraticLerp interpolates between a and b along t².
func QuadraticLerp(a, b, t float64) float64 {
	return a + (b-a)*t*t
}

// CubicLerp interpolates between a and b along t³.
func CubicLerp(a, b, t float64) float64 {
	return a + (b-a)*t*t*t
}

// LerpVec3 interpolates linearly between a and b.
func LerpVec3(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

// EvalQuadratic evaluates the quadratic bezier (p0, p1, p2) at t.
func EvalQuadratic(p0, p1, p2 mgl64.Vec3, t float64) mgl64.Vec3 {
	u := 1 - t
	return p0.Mul(u * u).Add(p1.Mul(2 * u * t)).Add(p2.Mul(t * t))
}

// EvalCubic evaluates the cubic bezier (p0, p1, p2, p3) at t.
func EvalCubic(p0, p1, p2, p3 mgl64.Vec3, t float64) mgl64.Vec3 {
	u := 1 - t
	return p0.Mul(u * u * u).
		Add(p1.Mul(3 * u * u * t)).
		Add(p2.Mul(3 * u * t * t)).
		Add(p3.Mul(t * t * t))
}

// Arc is the curve drawn between a source and a target. The cubic family
// uses Mid as both inner control points.
type Arc struct {
	Start     mgl64.Vec3
	Mid       mgl64.Vec3
	End       mgl64.Vec3
	Quadratic bool
}

// Eval returns the point at parameter t in [0, 1].
func (a Arc) Eval(t float64) mgl64.Vec3 {
	if a.Quadratic {
		return EvalQuadratic(a.Start, a.Mid, a.End, t)
	}
	return EvalCubic(a.Start, a.Mid, a.Mid, a.End, t)
}
