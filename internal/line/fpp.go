package line

import (
	"github.com/go-gl/mathgl/mgl64"

	"chosenoffset.com/targetlines/internal/core/geom"
)

// fppBlendTime is the length of a first person blend in seconds. Entering
// first person runs twice as fast and leaving runs at half speed.
const fppBlendTime = 0.49

// fppTimer times the blend between the third person and camera positions.
// It runs on the frame clock so restarting it never reads the wall clock.
type fppTimer struct {
	running bool
	start   float64
	last    float64
}

func (t *fppTimer) elapsed(now float64) float64 {
	if !t.running {
		return 0
	}
	return now - t.start
}

// blend returns the endpoint for this frame. A zero transition stops the
// timer and snaps to whichever end matches the current camera mode.
func (t *fppTimer) blend(now float64, thirdPerson, camera mgl64.Vec3, transition float64, firstPerson bool) mgl64.Vec3 {
	if transition == 0 {
		t.running = false
		if firstPerson {
			return camera
		}
		return thirdPerson
	}

	if !t.running || sign(transition) != sign(t.last) {
		t.running = true
		t.start = now
	}
	t.last = transition

	a := t.elapsed(now) / fppBlendTime
	if transition < 0 {
		a *= 0.5
	} else {
		a *= 2
	}
	a = geom.Clamp01(a)

	if transition > 0 {
		return geom.LerpVec3(thirdPerson, camera, a)
	}
	return geom.LerpVec3(camera, thirdPerson, a)
}

func sign(x float64) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
