// Package scene is a small simulated world for the demo commands: a party
// and some enemies walking in circles and picking targets, seen through a
// perspective camera that follows the local player.
//
// World implements the entity and scene queries target lines read.
package scene

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"

	"chosenoffset.com/targetlines/internal/line"
	"chosenoffset.com/targetlines/internal/logging"
	"chosenoffset.com/targetlines/internal/style"
)

// Options configures a new world.
type Options struct {
	Seed    uint64
	Party   int // Party members besides the local player
	Enemies int
	Width   int
	Height  int

	// Seconds between two retargets of the same actor
	RetargetMin float64
	RetargetMax float64

	// Seconds between enemy deaths, zero for none, and how long they stay dead
	DeathEvery  float64
	RespawnTime float64
}

// DefaultOptions returns a lively demo setup.
func DefaultOptions() Options {
	return Options{
		Seed:        1,
		Party:       3,
		Enemies:     4,
		Width:       1280,
		Height:      720,
		RetargetMin: 2,
		RetargetMax: 5,
		DeathEvery:  7,
		RespawnTime: 3,
	}
}

var partyJobs = []style.Job{JobWhiteMage, JobBlackMage, JobDragoon, JobBotanist, JobCarpenter}

// World holds every actor, the occluding walls and the camera.
type World struct {
	Actors []*Actor
	Player *Actor
	Camera *Camera
	Walls  []Wall

	// Ready is reported as RenderReady. Hosts clear it while loading.
	Ready bool
	// Sheathed puts the player's weapon away outside combat.
	Sheathed bool

	opts    Options
	rng     *rand.Rand
	time    float64
	nextID  uint64
	deathIn float64
}

// NewWorld builds a world from opts.
func NewWorld(opts Options) *World {
	w := &World{
		Camera:  NewCamera(opts.Width, opts.Height),
		Ready:   true,
		opts:    opts,
		rng:     rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15)),
		nextID:  1,
		deathIn: opts.DeathEvery,
	}

	w.Player = w.spawn(fmt.Sprintf("Player %d", w.nextID), false)
	w.Player.player = true
	w.Player.job = JobPaladin
	w.Player.Radius = 3
	w.Player.Speed = 0.15

	for i := 0; i < opts.Party; i++ {
		a := w.spawn(fmt.Sprintf("Member %d", i+1), false)
		a.player = true
		a.job = partyJobs[i%len(partyJobs)]
	}
	w.SetEnemyCount(opts.Enemies)

	w.Walls = MergeWalls([]Wall{
		{A: mgl64.Vec2{-8, -6}, B: mgl64.Vec2{-2, -6}, Height: 3},
		{A: mgl64.Vec2{-2, -6}, B: mgl64.Vec2{4, -6}, Height: 3},
		{A: mgl64.Vec2{9, -2}, B: mgl64.Vec2{9, 4}, Height: 4},
	})

	for _, a := range w.Actors {
		a.walk(0)
		w.retarget(a)
	}
	w.Camera.Follow(w.Player.pos, w.Player.facing, w.Player.head)
	return w
}

func (w *World) spawn(name string, hostile bool) *Actor {
	a := &Actor{
		world:  w,
		id:     w.nextID,
		name:   name,
		head:   defaultHead,
		cursor: defaultCursor,
		job:    style.JobNone,
		Phase:  w.rng.Float64() * 2 * math.Pi,
	}
	w.nextID++

	if hostile {
		a.hostile = true
		a.flags = style.FlagEnemy | style.FlagNPC
		a.cursor = 2.5
		a.Radius = 6 + w.rng.Float64()*6
		a.Speed = -(0.1 + w.rng.Float64()*0.2)
	} else {
		a.flags = style.FlagPlayer | style.FlagPartyMember
		a.Radius = 4 + w.rng.Float64()*3
		a.Speed = 0.1 + w.rng.Float64()*0.3
	}
	a.retargetIn = w.retargetDelay()
	w.Actors = append(w.Actors, a)
	return a
}

// SetEnemyCount adds or removes enemies until n are present.
func (w *World) SetEnemyCount(n int) {
	n = max(n, 0)
	enemies := w.Enemies()
	for i := len(enemies); i < n; i++ {
		a := w.spawn(fmt.Sprintf("Enemy %d", w.nextID), true)
		a.walk(w.time)
		w.retarget(a)
	}
	for i := n; i < len(enemies); i++ {
		w.remove(enemies[i])
	}
}

func (w *World) remove(gone *Actor) {
	gone.removed = true
	kept := w.Actors[:0]
	for _, a := range w.Actors {
		if a.target == gone {
			a.target = nil
		}
		if a != gone {
			kept = append(kept, a)
		}
	}
	w.Actors = kept
}

// Enemies returns the hostile actors, dead or alive.
func (w *World) Enemies() []*Actor {
	var out []*Actor
	for _, a := range w.Actors {
		if a.hostile {
			out = append(out, a)
		}
	}
	return out
}

// Entities returns every actor as a line entity.
func (w *World) Entities() []line.Entity {
	out := make([]line.Entity, 0, len(w.Actors))
	for _, a := range w.Actors {
		out = append(out, a)
	}
	return out
}

// Time returns the simulated seconds since the world was built.
func (w *World) Time() float64 { return w.time }

// Step advances the simulation by dt seconds.
func (w *World) Step(dt float64) {
	w.time += dt

	for _, a := range w.Actors {
		if a.dead {
			a.respawnIn -= dt
			if a.respawnIn <= 0 {
				a.dead = false
				a.Phase = w.rng.Float64() * 2 * math.Pi
				w.retarget(a)
				logging.Logger().Debug("actor respawned", "actor", a.name)
			}
			continue
		}
		a.walk(w.time)

		a.retargetIn -= dt
		if a.retargetIn <= 0 {
			w.retarget(a)
		}
	}

	if w.opts.DeathEvery > 0 {
		w.deathIn -= dt
		if w.deathIn <= 0 {
			w.deathIn = w.opts.DeathEvery
			w.killRandomEnemy()
		}
	}

	w.Camera.Step(dt)
	w.Camera.Follow(w.Player.pos, w.Player.facing, w.Player.head)
}

func (w *World) killRandomEnemy() {
	var alive []*Actor
	for _, a := range w.Enemies() {
		if !a.dead {
			alive = append(alive, a)
		}
	}
	if len(alive) == 0 {
		return
	}
	a := alive[w.rng.IntN(len(alive))]
	a.dead = true
	a.respawnIn = w.opts.RespawnTime
	logging.Logger().Debug("actor died", "actor", a.name)
}

// retarget picks a new living target: enemies go after the party and the
// party goes after enemies. The player sometimes clears the target.
func (w *World) retarget(a *Actor) {
	a.retargetIn = w.retargetDelay()

	if a == w.Player && w.rng.Float64() < 0.2 {
		a.target = nil
		return
	}

	var candidates []*Actor
	for _, b := range w.Actors {
		if b != a && !b.dead && b.hostile != a.hostile {
			candidates = append(candidates, b)
		}
	}
	if len(candidates) == 0 {
		a.target = nil
		return
	}
	a.target = candidates[w.rng.IntN(len(candidates))]
}

func (w *World) retargetDelay() float64 {
	lo, hi := w.opts.RetargetMin, w.opts.RetargetMax
	if hi <= lo {
		return lo
	}
	return lo + w.rng.Float64()*(hi-lo)
}

// Resize changes the viewport size.
func (w *World) Resize(width, height int) {
	w.Camera.Resize(width, height)
}

// InCombat reports whether a living enemy is targeting the party.
func (w *World) InCombat() bool {
	for _, a := range w.Actors {
		if a.hostile && !a.dead && a.target != nil && !a.target.hostile {
			return true
		}
	}
	return false
}

// WeaponDrawn is true in combat or when the weapon was not sheathed.
func (w *World) WeaponDrawn() bool {
	return !w.Sheathed || w.InCombat()
}

// RenderReady implements line.Scene.
func (w *World) RenderReady() bool { return w.Ready }

// LocalPlayerID implements line.Scene.
func (w *World) LocalPlayerID() uint64 { return w.Player.id }

func (w *World) FirstPerson() bool          { return w.Camera.FirstPerson() }
func (w *World) CameraPosition() mgl64.Vec3 { return w.Camera.Eye }
func (w *World) CameraForward() mgl64.Vec3  { return w.Camera.Forward() }

// AngleToCamera implements line.Scene.
func (w *World) AngleToCamera(p mgl64.Vec3) float64 { return w.Camera.AngleTo(p) }

// WorldToScreen implements line.Scene.
func (w *World) WorldToScreen(p mgl64.Vec3) (mgl64.Vec2, bool) {
	return w.Camera.Project(p)
}

// PointVisible tests the sight line from the camera to p against the walls.
// Without occlusion every point is visible.
func (w *World) PointVisible(p mgl64.Vec3, occlusion bool) bool {
	if !occlusion {
		return true
	}
	for _, wall := range w.Walls {
		if wall.Blocks(w.Camera.Eye, p) {
			return false
		}
	}
	return true
}

// InsidePerspective hides directions outside the view cone while the camera
// is in first person.
func (w *World) InsidePerspective(angle float64) bool {
	if !w.Camera.FirstPerson() {
		return true
	}
	return angle <= w.Camera.HalfFov()
}
