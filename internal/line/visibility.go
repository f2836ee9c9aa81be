package line

// updateVisibility projects the line for this frame and decides whether it
// should be drawn at all.
func (l *Line) updateVisibility(f *Frame) bool {
	scene := f.Scene
	occlusion := f.Config.OcclusionCulling || l.self.IsHostile()

	sourceVisible := l.self.Visible(occlusion)
	var targetVisible bool
	if target := l.target(); target != nil {
		targetVisible = target.Visible(occlusion)
	} else {
		targetVisible = scene.PointVisible(l.targetPos, occlusion)
	}
	midVisible := scene.PointVisible(l.midPos, occlusion)

	l.screenSource, l.drawBeginCap = scene.WorldToScreen(l.sourcePos)
	l.screenTarget, l.drawEndCap = scene.WorldToScreen(l.targetPos)
	l.screenMid, l.drawMid = scene.WorldToScreen(l.midPos)

	if !f.Config.SolidColor {
		l.sampleCurve(scene)
	}

	if !(l.drawBeginCap || l.drawEndCap || l.drawMid) {
		return false
	}
	if !occlusion {
		return true
	}

	// An end that failed to project cannot vouch for the line.
	if !l.drawBeginCap {
		sourceVisible = false
	}
	if !l.drawEndCap {
		targetVisible = false
	}
	return sourceVisible || targetVisible || midVisible
}
