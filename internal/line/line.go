package line

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"

	"chosenoffset.com/targetlines/internal/core/geom"
	"chosenoffset.com/targetlines/internal/logging"
	"chosenoffset.com/targetlines/internal/render"
	"chosenoffset.com/targetlines/internal/style"
)

// Line is the animated connector for one entity.
type Line struct {
	self Entity

	state     State
	sleeping  bool
	stateTime float64

	hasTarget bool
	hadTarget bool

	// World positions
	sourcePos      mgl64.Vec3
	midPos         mgl64.Vec3
	targetPos      mgl64.Vec3
	lastTargetPos  mgl64.Vec3 // Baseline the current transition starts from
	lastTargetPos2 mgl64.Vec3 // Raw interpolated end position, copied into the baseline on snapshot

	midHeight        float64
	lastMidHeight    float64
	lastTargetHeight float64
	lastTargetID     uint64

	// Base colours and the last ones seen while a target existed
	lineColor        color.NRGBA
	outlineColor     color.NRGBA
	lastLineColor    color.NRGBA
	lastOutlineColor color.NRGBA

	// Colours after breathing for this frame
	drawColor   color.NRGBA
	drawOutline color.NRGBA

	activeRule *style.Rule

	samples     []Sample
	sampleCount int

	// Screen positions and whether they projected
	screenSource mgl64.Vec2
	screenMid    mgl64.Vec2
	screenTarget mgl64.Vec2
	drawBeginCap bool
	drawMid      bool
	drawEndCap   bool
	boxMargin    float64

	fpp fppTimer
}

// New returns an unbound, sleeping line.
func New() *Line {
	return &Line{
		state:       StateNewTarget,
		sleeping:    true,
		sampleCount: minSamples,
	}
}

// Initialize binds the line to e and seeds the baseline from e's current
// target, or from e itself when it has none. A sleeping or force-dying line
// restarts in NewTarget.
func (l *Line) Initialize(e Entity) {
	if e == nil {
		return
	}
	l.self = e

	if t := e.Target(); t != nil && t.Valid() {
		l.lastTargetID = t.ID()
		l.lastTargetPos = t.Position()
	} else {
		l.lastTargetPos = e.Position()
	}
	l.lastTargetPos2 = l.lastTargetPos

	if l.sleeping || l.state == StateDying2 {
		l.enter(StateNewTarget)
	}
	l.sleeping = false
	l.sampleCount = minSamples
}

// Release unbinds the line and puts it to sleep so it can be bound again.
func (l *Line) Release() {
	l.self = nil
	l.sleeping = true
	l.hasTarget = false
	l.hadTarget = false
	l.activeRule = nil
}

// Update advances the animation by one frame.
func (l *Line) Update(f *Frame) {
	if l.self == nil || !l.self.Valid() {
		l.sleeping = true
		return
	}
	if f.Scene == nil || !f.Scene.RenderReady() {
		return
	}

	if (l.self.Hidden() || l.self.Dead()) && l.state != StateDying2 {
		l.logTransition(l.state, StateDying2, "forced")
		l.enter(StateDying2)
	}

	target := l.target()
	l.hasTarget = target != nil

	l.updateState(f, target)
	l.updateColors(f, target)
}

// Draw emits the line into dl and reports whether anything was drawn.
func (l *Line) Draw(f *Frame, dl render.DrawList, textures render.TextureProvider) bool {
	if l.sleeping || l.self == nil {
		return false
	}
	if f.Scene == nil || !f.Scene.RenderReady() {
		return false
	}
	if l.activeRule != nil && !l.activeRule.Visible {
		return false
	}

	cfg := f.Config
	l.boxMargin = 0.5 * cfg.LineThickness
	l.planSamples(f)

	if !l.updateVisibility(f) {
		return false
	}

	if cfg.SolidColor {
		l.drawSolid(f, dl)
	} else {
		l.drawFancy(f, dl, textures)
	}
	if cfg.DebugSampleCount {
		l.drawDebug(dl)
	}
	return true
}

// BoundingBox covers the screen positions of the source, midpoint and
// target from the last Draw, padded by half the line thickness.
func (l *Line) BoundingBox() geom.Rect {
	return geom.BoundsOf(l.screenSource, l.screenMid, l.screenTarget).Expand(l.boxMargin)
}

// Entity returns the bound entity.
func (l *Line) Entity() Entity { return l.self }

// State returns the current animation phase.
func (l *Line) State() State { return l.state }

// Sleeping reports whether the line is inert and may be recycled.
func (l *Line) Sleeping() bool { return l.sleeping }

// StateTime returns the seconds spent in the current state.
func (l *Line) StateTime() float64 { return l.stateTime }

// SampleCount returns the number of curve samples used by the last Draw.
func (l *Line) SampleCount() int { return l.sampleCount }

// Samples returns the samples evaluated by the last Draw.
func (l *Line) Samples() []Sample { return l.samples[:min(l.sampleCount, len(l.samples))] }

// ActiveRule returns the style rule applied on the last Update, if any.
func (l *Line) ActiveRule() *style.Rule { return l.activeRule }

// SourcePosition returns the height adjusted source position.
func (l *Line) SourcePosition() mgl64.Vec3 { return l.sourcePos }

// MidPosition returns the curve's control point.
func (l *Line) MidPosition() mgl64.Vec3 { return l.midPos }

// TargetPosition returns the height adjusted, interpolated end position.
func (l *Line) TargetPosition() mgl64.Vec3 { return l.targetPos }

// Colors returns the line and outline colours for this frame.
func (l *Line) Colors() (line, outline color.NRGBA) { return l.drawColor, l.drawOutline }

func (l *Line) target() Entity {
	t := l.self.Target()
	if t == nil || !t.Valid() {
		return nil
	}
	return t
}

func (l *Line) enter(s State) {
	l.state = s
	l.stateTime = 0
}

func (l *Line) detectEdge(target Entity) edge {
	switch {
	case l.hasTarget && !l.hadTarget:
		return edgeAcquired
	case !l.hasTarget && l.hadTarget:
		return edgeLost
	case l.hasTarget && target.ID() != l.lastTargetID:
		return edgeSwitched
	}
	return edgeNone
}

func (l *Line) updateState(f *Frame, target Entity) {
	if l.state != StateDying2 {
		e := l.detectEdge(target)
		if tr := transitions[l.state][e]; tr.apply {
			if tr.snapshot {
				l.lastTargetPos = l.lastTargetPos2
			}
			if tr.cacheMid {
				l.lastMidHeight = l.midHeight
			}
			if target != nil {
				l.lastTargetID = target.ID()
			}
			l.logTransition(l.state, tr.next, e.String())
			l.enter(tr.next)
		}
	}

	// A routine that reads the target never runs without one.
	if target == nil && l.state.needsTarget() {
		l.logTransition(l.state, StateDying, "no target")
		l.enter(StateDying)
	}

	switch l.state {
	case StateNewTarget:
		l.updateNewTarget(f, target)
	case StateDying, StateDying2:
		l.updateDying(f)
	case StateSwitching:
		l.updateSwitching(f, target)
	case StateIdle:
		l.updateIdle(f, target)
	}

	l.updateMidPosition(f)

	l.stateTime += f.Delta
	l.hadTarget = l.hasTarget
}

func (l *Line) logTransition(from, to State, cause string) {
	logging.Logger().Debug("line transition",
		"entity", l.self.ID(), "from", from.String(), "to", to.String(), "cause", cause)
}
