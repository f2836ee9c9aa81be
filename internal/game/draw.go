package game

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl64"

	"chosenoffset.com/targetlines/internal/linemgr"
	"chosenoffset.com/targetlines/internal/render"
	"chosenoffset.com/targetlines/internal/scene"
)

// lineHeight is the spacing between HUD rows in pixels.
const lineHeight = 20

var (
	wallColor   = color.NRGBA{110, 100, 90, 255}
	playerColor = color.NRGBA{0, 255, 100, 255}
	partyColor  = color.NRGBA{120, 200, 255, 255}
	enemyColor  = color.NRGBA{255, 50, 50, 255}
	deadColor   = color.NRGBA{120, 120, 120, 255}
	hudColor    = color.NRGBA{200, 200, 200, 255}
)

// Background is the clear colour used by every front end.
var Background = color.NRGBA{30, 28, 25, 255}

// Draw renders the scene, every target line and the HUD into dl. It returns
// the line manager's statistics for the frame.
func (g *Game) Draw(dl render.DrawList) linemgr.Stats {
	g.drawWalls(dl)
	g.drawActors(dl)

	g.LastStats = g.Lines.Frame(g.Frame(), g.World.Entities(), dl, g.Textures)

	g.drawUI(dl)
	g.drawHUD(dl)
	return g.LastStats
}

// drawWalls outlines each wall's base and top edge.
func (g *Game) drawWalls(dl render.DrawList) {
	for _, w := range g.World.Walls {
		for _, y := range []float64{0, w.Height} {
			a, okA := g.World.WorldToScreen(mgl64.Vec3{w.A[0], y, w.A[1]})
			b, okB := g.World.WorldToScreen(mgl64.Vec3{w.B[0], y, w.B[1]})
			if !okA || !okB {
				continue
			}
			dl.AddBezierQuadratic(a, a.Add(b).Mul(0.5), b, wallColor, 2)
		}
	}
}

// drawActors labels every actor at its feet.
func (g *Game) drawActors(dl render.DrawList) {
	for _, a := range g.World.Actors {
		if a.Hidden() {
			continue
		}
		pos, ok := g.World.WorldToScreen(a.Position())
		if !ok {
			continue
		}
		label := a.Name()
		if a.Dead() {
			label += " (dead)"
		}
		dl.AddText(pos, actorColor(g.World, a), label)
	}
}

func actorColor(w *scene.World, a *scene.Actor) color.NRGBA {
	switch {
	case a.Dead():
		return deadColor
	case a == w.Player:
		return playerColor
	case a.IsBattleChara():
		return enemyColor
	default:
		return partyColor
	}
}

func (g *Game) drawUI(dl render.DrawList) {
	// Draw on-screen messages
	y := float64(g.ScreenHeight) - lineHeight*2
	for i := len(g.Messages) - 1; i >= 0; i-- {
		msg := g.Messages[i]
		alpha := uint8(255 * (msg.TimeLeft / msg.MaxTime))
		dl.AddText(mgl64.Vec2{20, y}, color.NRGBA{255, 255, 255, alpha}, msg.Text)
		y -= lineHeight
	}
}

func (g *Game) drawHUD(dl render.DrawList) {
	rows := []string{
		fmt.Sprintf("lines %d  drawn %d  pooled %d", g.LastStats.Lines, g.LastStats.Drawn, g.LastStats.Pooled),
		fmt.Sprintf("combat %t  weapon drawn %t  gated %t", g.World.InCombat(), g.World.WeaponDrawn(), g.LastStats.Gated),
	}
	if g.ShowHelp {
		rows = append(rows,
			"F first person  S solid  D samples  O occlusion",
			"Up/Down enemies  Space sheathe  P pause  H help  Esc quit",
		)
	}
	for i, row := range rows {
		dl.AddText(mgl64.Vec2{10, float64(10 + i*lineHeight)}, hudColor, row)
	}
}
