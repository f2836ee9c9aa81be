// Package linemgr owns the target lines of a scene. Each frame it binds
// lines to the entities that have targets, updates every line and then
// draws every line.
package linemgr

import (
	"chosenoffset.com/targetlines/internal/config"
	"chosenoffset.com/targetlines/internal/line"
	"chosenoffset.com/targetlines/internal/logging"
	"chosenoffset.com/targetlines/internal/render"
)

// Host reports the local player's state used to gate the whole line set.
type Host interface {
	InCombat() bool
	WeaponDrawn() bool
}

// Stats summarises one frame.
type Stats struct {
	Lines  int // Lines bound to an entity
	Drawn  int // Lines that emitted geometry
	Pooled int // Idle lines kept for reuse
	Gated  bool
}

// Manager keeps one line per entity and recycles lines whose entity lost
// its target.
type Manager struct {
	Host Host

	lines map[uint64]*line.Line
	order []uint64 // Bind order, so draw order is stable between frames
	pool  []*line.Line
	seen  map[uint64]bool
	drawn int
}

// NewManager creates a manager. host may be nil, which disables combat and
// weapon gating.
func NewManager(host Host) *Manager {
	return &Manager{
		Host:  host,
		lines: make(map[uint64]*line.Line),
		seen:  make(map[uint64]bool),
	}
}

// Frame runs one frame for entities: bind, Update every line, then Draw
// every line into dl. ActiveLines on f is set to the number of lines drawn
// on the previous frame before the first Draw.
func (m *Manager) Frame(f *line.Frame, entities []line.Entity, dl render.DrawList, textures render.TextureProvider) Stats {
	m.sync(entities)

	for _, id := range m.order {
		m.lines[id].Update(f)
	}
	m.releaseSleeping()

	stats := Stats{Lines: len(m.order), Pooled: len(m.pool)}
	if !m.allowed(f.Config) {
		m.drawn = 0
		stats.Gated = true
		return stats
	}

	f.ActiveLines = max(m.drawn, 1)
	drawn := 0
	for _, id := range m.order {
		if m.lines[id].Draw(f, dl, textures) {
			drawn++
		}
	}
	m.drawn = drawn
	stats.Drawn = drawn
	return stats
}

// Line returns the line bound to the entity with the given id.
func (m *Manager) Line(id uint64) (*line.Line, bool) {
	l, ok := m.lines[id]
	return l, ok
}

// Lines returns the bound lines in draw order.
func (m *Manager) Lines() []*line.Line {
	out := make([]*line.Line, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.lines[id])
	}
	return out
}

// Reset unbinds every line.
func (m *Manager) Reset() {
	for _, id := range m.order {
		l := m.lines[id]
		l.Release()
		m.pool = append(m.pool, l)
	}
	clear(m.lines)
	m.order = m.order[:0]
	m.drawn = 0
}

// sync binds a line to every entity that should have one and drops lines
// whose entity left the list or became invalid.
func (m *Manager) sync(entities []line.Entity) {
	clear(m.seen)
	for _, e := range entities {
		if e == nil || !e.Valid() {
			continue
		}
		id := e.ID()
		m.seen[id] = true

		l, ok := m.lines[id]
		switch {
		case ok && l.Sleeping() && canWake(e):
			l.Initialize(e)
		case !ok && canWake(e):
			l = m.acquire()
			l.Initialize(e)
			m.lines[id] = l
			m.order = append(m.order, id)
			logging.Logger().Debug("line bound", "entity", id)
		}
	}

	kept := m.order[:0]
	for _, id := range m.order {
		if m.seen[id] {
			kept = append(kept, id)
			continue
		}
		m.release(id)
	}
	m.order = kept
}

// releaseSleeping returns lines that went to sleep and cannot wake right
// away to the pool.
func (m *Manager) releaseSleeping() {
	kept := m.order[:0]
	for _, id := range m.order {
		l := m.lines[id]
		if e := l.Entity(); l.Sleeping() && (e == nil || !e.Valid() || !canWake(e)) {
			m.release(id)
			continue
		}
		kept = append(kept, id)
	}
	m.order = kept
}

func (m *Manager) acquire() *line.Line {
	if n := len(m.pool); n > 0 {
		l := m.pool[n-1]
		m.pool = m.pool[:n-1]
		return l
	}
	return line.New()
}

// release unbinds the line of id. The caller removes id from order.
func (m *Manager) release(id uint64) {
	l, ok := m.lines[id]
	if !ok {
		return
	}
	delete(m.lines, id)
	l.Release()
	m.pool = append(m.pool, l)
	logging.Logger().Debug("line released", "entity", id)
}

// allowed applies the combat and weapon options.
func (m *Manager) allowed(cfg *config.Config) bool {
	if m.Host == nil {
		return true
	}
	inCombat := m.Host.InCombat()
	switch cfg.OnlyInCombat {
	case config.CombatOnly:
		if !inCombat {
			return false
		}
	case config.CombatOutOfCombat:
		if inCombat {
			return false
		}
	}
	if cfg.OnlyUnsheathed && !m.Host.WeaponDrawn() {
		return false
	}
	return true
}

// canWake reports whether e can start a new line now.
func canWake(e line.Entity) bool {
	t := e.Target()
	return t != nil && t.Valid() && !e.Dead() && !e.Hidden()
}
