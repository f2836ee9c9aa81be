package line

import (
	"github.com/go-gl/mathgl/mgl64"

	"chosenoffset.com/targetlines/internal/core/geom"
)

// Sample is one evaluated point of the curve.
type Sample struct {
	Pos         mgl64.Vec2
	Visible     bool    // The point projected onto the screen
	CameraAngle float64 // Angle between the view direction and the point
}

// arc returns the curve through the current source, control and target
// positions in the active rule's curve family.
func (l *Line) arc() geom.Arc {
	return geom.Arc{
		Start:     l.sourcePos,
		Mid:       l.midPos,
		End:       l.targetPos,
		Quadratic: l.quadratic(),
	}
}

// step is the parametric distance between samples.
func (l *Line) step() float64 {
	return 1 / float64(l.sampleCount-1)
}

// sampleCurve evaluates sampleCount evenly spaced points and projects them.
func (l *Line) sampleCurve(scene Scene) {
	arc := l.arc()
	step := l.step()
	for i := 0; i < l.sampleCount; i++ {
		p := arc.Eval(float64(i) * step)
		screen, ok := scene.WorldToScreen(p)
		l.samples[i] = Sample{
			Pos:         screen,
			Visible:     ok,
			CameraAngle: scene.AngleToCamera(p),
		}
	}
}
