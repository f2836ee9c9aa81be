package line

import (
	"image/color"
	"math"

	"chosenoffset.com/targetlines/internal/core/geom"
)

// updateColors picks the base colours from the matching rule and applies the
// breathing wave.
//
// Without a target the last colours seen with one are reused, so a dying line
// keeps its look. With a target but no matching rule the fallback rule takes
// over; an invisible fallback leaves the colours alone and hides the line.
func (l *Line) updateColors(f *Frame, target Entity) {
	cfg := f.Config

	if target == nil {
		l.lineColor = l.lastLineColor
		l.outlineColor = l.lastOutlineColor
	} else {
		rule, matched := f.Rules.Resolve(l.self.Attributes(), target.Attributes())
		if !matched {
			rule = cfg.Fallback
		}
		if rule != nil {
			l.activeRule = rule
			if matched || rule.Visible {
				l.lineColor = rule.Color.NRGBA()
				l.outlineColor = rule.OutlineColor.NRGBA()
			}
		}
		l.lastLineColor = l.lineColor
		l.lastOutlineColor = l.outlineColor
	}

	l.drawColor = l.lineColor
	l.drawOutline = l.outlineColor
	if cfg.BreathingEffect {
		amp := cfg.WaveAmplitudeOffset
		a := (1 - amp) + math.Cos(f.Runtime*cfg.WaveFrequencyScalar)*amp
		l.drawColor.A = scaleAlpha(l.drawColor.A, a)
		l.drawOutline.A = scaleAlpha(l.drawOutline.A, a)
	}
}

// segmentColors returns the fill and outline colours of sample i after the
// pulsing wave and the end fade.
func (l *Line) segmentColors(f *Frame, i int) (fill, outline color.NRGBA) {
	cfg := f.Config
	fill, outline = l.drawColor, l.drawOutline
	p := float64(i) * l.step()

	if cfg.PulsingEffect {
		hi := float64(fill.A)
		lo := hi * 0.5
		wave := math.Sin(-f.Runtime*cfg.WaveFrequencyScalar + p*math.Pi + math.Pi/2)
		amp := (hi - lo) * (1 - cfg.WaveAmplitudeOffset)
		a := uint8(min(max(wave*amp+lo, lo), hi))
		fill.A = a
		outline.A = a
	}

	if cfg.FadeToEnd {
		base := float64(outline.A)
		outline.A = uint8(geom.Lerp(base, base*cfg.FadeToEndScalar, p))
	}
	return fill, outline
}

// endCapColor is the fill colour faded to the configured end opacity.
func (l *Line) endCapColor(f *Frame) color.NRGBA {
	c := l.drawColor
	if f.Config.FadeToEnd {
		c.A = scaleAlpha(c.A, f.Config.FadeToEndScalar)
	}
	return c
}

func scaleAlpha(a uint8, s float64) uint8 {
	return uint8(min(max(float64(a)*s, 0), 255))
}
