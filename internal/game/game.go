// Package game runs the target line demo: a simulated scene, its line
// manager and the keyboard toggles shared by every front end.
package game

import (
	"errors"
	"fmt"

	"chosenoffset.com/targetlines/internal/config"
	"chosenoffset.com/targetlines/internal/line"
	"chosenoffset.com/targetlines/internal/linemgr"
	"chosenoffset.com/targetlines/internal/logging"
	"chosenoffset.com/targetlines/internal/render"
	"chosenoffset.com/targetlines/internal/scene"
	"chosenoffset.com/targetlines/internal/style"
)

// ErrQuit is returned by Update when the user asked to leave.
var ErrQuit = errors.New("quit")

// MaxEnemies caps the enemy count changed from the keyboard.
const MaxEnemies = 24

// Game holds the demo state and logic.
type Game struct {
	ScreenWidth  int
	ScreenHeight int

	World    *scene.World
	Lines    *linemgr.Manager
	Config   *config.Config
	Rules    *style.RuleSet
	Textures render.TextureProvider

	Paused    bool
	Runtime   float64 // Seconds of unpaused time
	Delta     float64 // Length of the last step
	LastStats linemgr.Stats

	// UI state
	Messages []Message
	ShowHelp bool
}

// New builds a game over a fresh world. cfg must already be normalised.
func New(cfg *config.Config, opts scene.Options, textures render.TextureProvider) *Game {
	world := scene.NewWorld(opts)
	return &Game{
		ScreenWidth:  opts.Width,
		ScreenHeight: opts.Height,
		World:        world,
		Lines:        linemgr.NewManager(world),
		Config:       cfg,
		Rules:        cfg.RuleSet(),
		Textures:     textures,
		ShowHelp:     true,
	}
}

// Step advances the simulation by dt seconds.
func (g *Game) Step(dt float64) {
	g.updateMessages(dt)
	if g.Paused {
		g.Delta = 0
		return
	}
	g.Delta = dt
	g.Runtime += dt
	g.World.Step(dt)
}

// Frame returns the line frame for the current step.
func (g *Game) Frame() *line.Frame {
	return &line.Frame{
		Config:  g.Config,
		Rules:   g.Rules,
		Runtime: g.Runtime,
		Delta:   g.Delta,
		Scene:   g.World,
		Camera:  g.World.Camera,
	}
}

// Resize changes the screen size of the world's camera.
func (g *Game) Resize(width, height int) {
	if width == g.ScreenWidth && height == g.ScreenHeight {
		return
	}
	g.ScreenWidth = width
	g.ScreenHeight = height
	g.World.Resize(width, height)
}

// SetConfig swaps the configuration. Lines keep their state; the new rules
// apply from the next frame.
func (g *Game) SetConfig(cfg *config.Config) {
	g.Config = cfg
	g.Rules = cfg.RuleSet()
	logging.Logger().Info("config applied", "rules", g.Rules.Len())
}

// Apply performs a user action. It returns ErrQuit for ActionQuit.
func (g *Game) Apply(a Action) error {
	switch a {
	case ActionToggleFirstPerson:
		g.World.Camera.ToggleFirstPerson()
		g.ShowMessage(onOff("First person", g.World.Camera.FirstPerson()))
	case ActionToggleSolid:
		g.Config.SolidColor = !g.Config.SolidColor
		g.ShowMessage(onOff("Solid color", g.Config.SolidColor))
	case ActionToggleDebug:
		g.Config.DebugSampleCount = !g.Config.DebugSampleCount
		g.ShowMessage(onOff("Sample count overlay", g.Config.DebugSampleCount))
	case ActionToggleOcclusion:
		g.Config.OcclusionCulling = !g.Config.OcclusionCulling
		g.ShowMessage(onOff("Occlusion culling", g.Config.OcclusionCulling))
	case ActionMoreEnemies:
		g.setEnemies(len(g.World.Enemies()) + 1)
	case ActionFewerEnemies:
		g.setEnemies(len(g.World.Enemies()) - 1)
	case ActionToggleSheathe:
		g.World.Sheathed = !g.World.Sheathed
		g.ShowMessage(onOff("Weapon sheathed", g.World.Sheathed))
	case ActionPause:
		g.Paused = !g.Paused
		g.ShowMessage(onOff("Paused", g.Paused))
	case ActionToggleHelp:
		g.ShowHelp = !g.ShowHelp
	case ActionQuit:
		return ErrQuit
	}
	return nil
}

func (g *Game) setEnemies(n int) {
	n = max(0, min(n, MaxEnemies))
	g.World.SetEnemyCount(n)
	g.ShowMessage(fmt.Sprintf("Enemies: %d", n))
}

func onOff(name string, on bool) string {
	if on {
		return name + ": on"
	}
	return name + ": off"
}

func (g *Game) updateMessages(dt float64) {
	var active []Message
	for _, msg := range g.Messages {
		msg.TimeLeft -= dt
		if msg.TimeLeft > 0 {
			active = append(active, msg)
		}
	}
	g.Messages = active
}

// ShowMessage adds a new message to be displayed on screen.
func (g *Game) ShowMessage(text string) {
	g.Messages = append(g.Messages, Message{
		Text:     text,
		TimeLeft: 3.0,
		MaxTime:  3.0,
	})
}
