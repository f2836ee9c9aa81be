package line

import (
	"github.com/go-gl/mathgl/mgl64"

	"chosenoffset.com/targetlines/internal/config"
	"chosenoffset.com/targetlines/internal/core/geom"
)

// endpointHeight is the vertical offset of a curve end. An end seen from
// first person sits at the camera and gets none.
func endpointHeight(cfg *config.Config, cursorHeight float64, firstPerson bool) float64 {
	if firstPerson {
		return 0
	}
	return cursorHeight * cfg.HeightScale
}

// endpoint returns e's position, blended toward the camera when e is the
// local player and the camera is in or moving through first person.
func (l *Line) endpoint(f *Frame, e Entity) (mgl64.Vec3, bool) {
	pos := e.Position()
	if e.ID() != f.Scene.LocalPlayerID() {
		return pos, false
	}

	firstPerson := f.Scene.FirstPerson()
	transition := f.transitionScalar()
	if firstPerson || transition != 0 || l.fpp.running {
		cam := f.Scene.CameraPosition().Sub(f.Scene.CameraForward().Mul(2))
		cam[geom.UpAxis] -= e.HeadHeight()
		pos = l.fpp.blend(f.Runtime, pos, cam, transition, firstPerson)
	}
	return pos, firstPerson
}

func (l *Line) quadratic() bool {
	return l.activeRule != nil && l.activeRule.UseQuadratic
}

// updateMidPosition places the control point above the middle of the line.
// The arc eases in with NewTarget and flattens while dying.
func (l *Line) updateMidPosition(f *Frame) {
	cfg := f.Config
	mid := geom.LerpVec3(l.sourcePos, l.targetPos, 0.5)

	if l.self.IsPlayer() {
		mid[geom.UpAxis] += cfg.PlayerHeightBump
	} else if l.self.IsBattleChara() {
		mid[geom.UpAxis] += cfg.EnemyHeightBump
	}

	fix := geom.ShapeFix(l.quadratic())
	switch l.state {
	case StateDying, StateDying2:
		fix *= 1 - geom.EaseAlpha(l.stateTime, cfg.NoTargetFadeTime)
	case StateNewTarget:
		fix *= geom.EaseAlpha(l.stateTime, cfg.NewTargetEaseTime)
	}

	mid[geom.UpAxis] += l.midHeight * cfg.ArcHeightScale * fix
	l.midPos = mid
}
