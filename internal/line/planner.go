package line

import (
	"math"

	"chosenoffset.com/targetlines/internal/config"
)

// minSamples is the count used by solid lines, enough for one bezier.
const minSamples = 3

// sampleBudget lowers the per-line maximum as more lines are on screen so
// the total sampling work per frame stays bounded.
func sampleBudget(lo, hi, activeLines int) int {
	hi = max(lo+3, hi)
	return min(hi, 7*hi/max(activeLines, 1))
}

// dynamicTarget is the distance driven sample count before thickness and
// first person scaling.
func dynamicTarget(cfg *config.Config, distance float64, activeLines int) int {
	lo := cfg.TextureCurveSampleMin
	budget := sampleBudget(lo, cfg.TextureCurveSampleMax, activeLines)
	target := lo + 2*int(math.Floor(1.5+distance))
	return min(target, budget)
}

// planSampleCount returns the odd sample count for this frame.
func planSampleCount(cfg *config.Config, distance float64, activeLines int, firstPerson bool) int {
	if cfg.SolidColor {
		return minSamples
	}

	n := cfg.TextureCurveSampleCount
	if cfg.DynamicSampleCount {
		n = dynamicTarget(cfg, distance, activeLines)
		n = int(math.Floor(float64(n) * max(1, cfg.LineThickness/32)))
		if firstPerson {
			n *= 2
		}
	}

	n = max(cfg.TextureCurveSampleMin, min(n, cfg.TextureCurveSampleMax))
	if n%2 == 0 {
		n++
	}
	return n
}

// planSamples sizes the sample buffer for this frame. The buffer is only
// reallocated when the configured maximum changes.
func (l *Line) planSamples(f *Frame) {
	cfg := f.Config
	if cap(l.samples) != cfg.TextureCurveSampleMax {
		l.samples = make([]Sample, cfg.TextureCurveSampleMax)
	}
	distance := l.targetPos.Sub(l.sourcePos).Len()
	l.sampleCount = planSampleCount(cfg, distance, f.ActiveLines, f.Scene.FirstPerson())
	if l.sampleCount > len(l.samples) {
		l.samples = append(l.samples, make([]Sample, l.sampleCount-len(l.samples))...)
	}
}
