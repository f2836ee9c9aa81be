package line

import (
	"github.com/go-gl/mathgl/mgl64"

	"chosenoffset.com/targetlines/internal/config"
	"chosenoffset.com/targetlines/internal/core/geom"
	"chosenoffset.com/targetlines/internal/logging"
)

func (l *Line) updateNewTarget(f *Frame, target Entity) {
	cfg := f.Config
	source, sourceFPP := l.endpoint(f, l.self)
	dest, destFPP := l.endpoint(f, target)

	startHeight := l.self.CursorHeight()
	endHeight := target.CursorHeight()
	alpha := geom.EaseAlpha(l.stateTime, cfg.NewTargetEaseTime)

	l.lastTargetHeight = endHeight
	l.midHeight = (startHeight + endHeight) * 0.5

	start := geom.WithHeight(source, endpointHeight(cfg, startHeight, sourceFPP))
	end := geom.WithHeight(dest, endpointHeight(cfg, endHeight, destFPP))

	l.sourcePos = start
	l.targetPos = geom.LerpVec3(start, end, alpha)
	l.lastTargetPos2 = geom.LerpVec3(source, dest, alpha)

	if alpha >= 1 {
		l.settle(target, dest, endHeight)
	}
}

func (l *Line) updateDying(f *Frame) {
	cfg := f.Config
	source, sourceFPP := l.endpoint(f, l.self)

	startHeight := l.self.CursorHeight()
	endHeight := l.lastTargetHeight
	alpha := geom.EaseAlpha(l.stateTime, cfg.NoTargetFadeTime)

	l.midHeight = deathHeight(cfg, (startHeight+endHeight)*0.5, l.stateTime)

	start := geom.WithHeight(source, endpointHeight(cfg, startHeight, sourceFPP))
	end := geom.WithHeight(l.lastTargetPos, endHeight*cfg.HeightScale)

	if alpha >= 1 && !l.sleeping {
		l.sleeping = true
		logging.Logger().Debug("line asleep", "entity", l.self.ID())
	}

	l.sourcePos = start
	l.targetPos = geom.LerpVec3(end, start, alpha)
	l.lastTargetPos2 = geom.LerpVec3(l.lastTargetPos, source, alpha)
}

func (l *Line) updateSwitching(f *Frame, target Entity) {
	cfg := f.Config
	source, sourceFPP := l.endpoint(f, l.self)
	dest, destFPP := l.endpoint(f, target)

	startHeight := l.self.CursorHeight()
	endHeight := target.CursorHeight()
	alpha := geom.EaseAlpha(l.stateTime, cfg.NewTargetEaseTime)

	start := geom.WithHeight(l.lastTargetPos, l.lastTargetHeight*cfg.HeightScale)
	end := geom.WithHeight(dest, endpointHeight(cfg, endHeight, destFPP))

	l.sourcePos = geom.WithHeight(source, endpointHeight(cfg, startHeight, sourceFPP))
	l.targetPos = geom.LerpVec3(start, end, alpha)
	l.lastTargetPos2 = geom.LerpVec3(l.lastTargetPos, dest, alpha)
	l.midHeight = geom.Lerp(l.lastMidHeight, (startHeight+endHeight)*0.5, alpha)

	if alpha >= 1 {
		l.settle(target, dest, endHeight)
	}
}

// settle finishes an ease. The baseline becomes the reached target so a loss
// on the very next frame collapses from the right place.
func (l *Line) settle(target Entity, dest mgl64.Vec3, endHeight float64) {
	l.lastTargetID = target.ID()
	l.lastTargetPos = dest
	l.lastTargetPos2 = dest
	l.lastTargetHeight = endHeight
	l.enter(StateIdle)
}

func (l *Line) updateIdle(f *Frame, target Entity) {
	cfg := f.Config
	source, sourceFPP := l.endpoint(f, l.self)
	dest, destFPP := l.endpoint(f, target)

	startHeight := l.self.CursorHeight()
	endHeight := target.CursorHeight()

	l.lastTargetHeight = endHeight
	l.midHeight = (startHeight + endHeight) * 0.5

	l.lastTargetPos = dest
	l.lastTargetPos2 = dest

	l.sourcePos = geom.WithHeight(source, endpointHeight(cfg, startHeight, sourceFPP))
	l.targetPos = geom.WithHeight(dest, endpointHeight(cfg, endHeight, destFPP))
}

// deathHeight shrinks the arc height toward zero along the configured death
// curve. The curve runs DeathAnimationTimeScale times faster than the fade.
func deathHeight(cfg *config.Config, height, elapsed float64) float64 {
	a := 1.0
	if cfg.NoTargetFadeTime > 0 {
		a = min(1, elapsed/cfg.NoTargetFadeTime*cfg.DeathAnimationTimeScale)
	}
	switch cfg.DeathAnimation {
	case config.DeathSquare:
		return geom.QuadraticLerp(height, 0, a)
	case config.DeathCube:
		return geom.CubicLerp(height, 0, a)
	default:
		return geom.Lerp(height, 0, a)
	}
}
