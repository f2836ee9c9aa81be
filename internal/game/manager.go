package game

import (
	"errors"

	"chosenoffset.com/targetlines/internal/logging"
	"chosenoffset.com/targetlines/internal/render"
)

// keyActions maps the demo keys to actions.
var keyActions = []struct {
	key    render.Key
	action Action
}{
	{render.KeyF, ActionToggleFirstPerson},
	{render.KeyS, ActionToggleSolid},
	{render.KeyD, ActionToggleDebug},
	{render.KeyO, ActionToggleOcclusion},
	{render.KeyUp, ActionMoreEnemies},
	{render.KeyDown, ActionFewerEnemies},
	{render.KeySpace, ActionToggleSheathe},
	{render.KeyP, ActionPause},
	{render.KeyH, ActionToggleHelp},
	{render.KeyEscape, ActionQuit},
}

// Manager adapts a Game to a windowed render.Engine.
type Manager struct {
	Game     *Game
	Renderer render.Renderer
	InputMgr render.InputManager

	// TickRate is the number of Update calls per second.
	TickRate float64
}

// NewManager creates a manager driving g.
func NewManager(g *Game, r render.Renderer, input render.InputManager) *Manager {
	return &Manager{
		Game:     g,
		Renderer: r,
		InputMgr: input,
		TickRate: 60,
	}
}

// Update handles input and advances the game by one tick.
func (m *Manager) Update() error {
	for _, ka := range keyActions {
		if !m.InputMgr.IsKeyJustPressed(ka.key) {
			continue
		}
		if err := m.Game.Apply(ka.action); err != nil {
			if errors.Is(err, ErrQuit) {
				logging.Logger().Info("quit requested")
			}
			return err
		}
	}
	m.Game.Step(1.0 / m.TickRate)
	return nil
}

// Draw draws the game onto screen.
func (m *Manager) Draw(screen render.Image) {
	screen.Fill(Background)
	m.Game.Draw(m.Renderer.DrawList(screen))
}

// Layout handles window resize.
func (m *Manager) Layout(outsideWidth, outsideHeight int) (int, int) {
	m.Game.Resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}
