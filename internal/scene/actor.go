package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"chosenoffset.com/targetlines/internal/line"
	"chosenoffset.com/targetlines/internal/style"
)

// Jobs used by the demo party.
const (
	JobPaladin   style.Job = 19
	JobWhiteMage style.Job = 24
	JobBlackMage style.Job = 25
	JobDragoon   style.Job = 22
	JobBotanist  style.Job = 17
	JobCarpenter style.Job = 8
)

const (
	defaultCursor = 2.0
	defaultHead   = 1.6
)

// roleFlags maps a job to its role flag.
func roleFlags(j style.Job) style.Flags {
	switch j {
	case JobPaladin:
		return style.FlagTank
	case JobWhiteMage:
		return style.FlagHealer
	case JobBlackMage, JobDragoon:
		return style.FlagDPS
	case JobBotanist:
		return style.FlagGatherer
	case JobCarpenter:
		return style.FlagCrafter
	}
	return 0
}

// Actor is a simulated character walking a circle around a centre point.
type Actor struct {
	world *World

	id     uint64
	name   string
	pos    mgl64.Vec3
	facing mgl64.Vec3

	// Orbit
	Center mgl64.Vec3
	Radius float64
	Speed  float64 // Radians per second
	Phase  float64

	head   float64
	cursor float64

	player  bool
	hostile bool
	job     style.Job
	flags   style.Flags

	dead      bool
	hidden    bool
	removed   bool
	respawnIn float64

	target     *Actor
	retargetIn float64
}

// ID implements line.Entity.
func (a *Actor) ID() uint64 { return a.id }

// Name returns the display name.
func (a *Actor) Name() string { return a.name }

// Valid is false once the actor has left the world.
func (a *Actor) Valid() bool { return !a.removed }

func (a *Actor) Position() mgl64.Vec3  { return a.pos }
func (a *Actor) Facing() mgl64.Vec3    { return a.facing }
func (a *Actor) HeadHeight() float64   { return a.head }
func (a *Actor) CursorHeight() float64 { return a.cursor }
func (a *Actor) IsPlayer() bool        { return a.player }
func (a *Actor) IsBattleChara() bool   { return a.hostile }
func (a *Actor) IsHostile() bool       { return a.hostile && !a.dead }
func (a *Actor) Dead() bool            { return a.dead }
func (a *Actor) Hidden() bool          { return a.hidden }
func (a *Actor) SetHidden(hidden bool) { a.hidden = hidden }
func (a *Actor) Job() style.Job        { return a.job }
func (a *Actor) CurrentTarget() *Actor { return a.target }

// Visible tests the actor's cursor point against the walls when occlusion is
// on.
func (a *Actor) Visible(occlusion bool) bool {
	if a.world == nil {
		return true
	}
	return a.world.PointVisible(a.pos.Add(mgl64.Vec3{0, a.cursor, 0}), occlusion)
}

// Target implements line.Entity. It returns a nil interface, not a nil
// *Actor, when there is no target.
func (a *Actor) Target() line.Entity {
	if a.target == nil || a.target.removed {
		return nil
	}
	return a.target
}

// SetTarget points the actor at t, or clears its target when t is nil.
func (a *Actor) SetTarget(t *Actor) { a.target = t }

// Attributes implements line.Entity.
func (a *Actor) Attributes() style.Attributes {
	flags := a.flags | roleFlags(a.job)
	if a.world != nil && a.world.Player == a {
		flags |= style.FlagSelf
	}
	return style.Attributes{Flags: flags, Job: a.job}
}

// walk moves the actor along its orbit to time t.
func (a *Actor) walk(t float64) {
	angle := a.Phase + a.Speed*t
	a.pos = a.Center.Add(mgl64.Vec3{math.Cos(angle) * a.Radius, 0, math.Sin(angle) * a.Radius})

	// Tangent of the circle in the direction of travel
	dir := mgl64.Vec3{-math.Sin(angle), 0, math.Cos(angle)}
	if a.Speed < 0 {
		dir = dir.Mul(-1)
	}
	if a.Speed == 0 || a.Radius == 0 {
		dir = a.Center.Sub(a.pos)
		if dir.Len() == 0 {
			dir = mgl64.Vec3{0, 0, 1}
		}
		dir = dir.Normalize()
	}
	a.facing = dir
}
