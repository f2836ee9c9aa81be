// Package line animates and draws the curved connector between one world
// entity and whatever it is targeting.
//
// A Line is bound to an Entity by an external manager which calls Update on
// every line and then Draw on every line, once per rendered frame. The line
// never owns the entity, the scene or the textures it reads.
package line

import (
	"github.com/go-gl/mathgl/mgl64"

	"chosenoffset.com/targetlines/internal/config"
	"chosenoffset.com/targetlines/internal/style"
)

// Entity is a live world object a line can start or end at.
type Entity interface {
	ID() uint64
	Valid() bool
	Position() mgl64.Vec3
	HeadHeight() float64
	CursorHeight() float64

	IsPlayer() bool
	IsBattleChara() bool
	// IsHostile reports battle NPCs, which are always occlusion tested.
	IsHostile() bool

	Visible(occlusion bool) bool
	Dead() bool
	Hidden() bool

	// Target returns the entity being targeted, or nil.
	Target() Entity
	Attributes() style.Attributes
}

// Scene answers camera and projection queries for the current frame.
type Scene interface {
	// RenderReady is false while the host cannot answer queries; lines skip
	// the frame and retry on the next one.
	RenderReady() bool

	LocalPlayerID() uint64
	FirstPerson() bool
	CameraPosition() mgl64.Vec3
	CameraForward() mgl64.Vec3

	WorldToScreen(p mgl64.Vec3) (mgl64.Vec2, bool)
	PointVisible(p mgl64.Vec3, occlusion bool) bool

	// AngleToCamera returns the angle between the view direction and the
	// direction from the camera to p.
	AngleToCamera(p mgl64.Vec3) float64
	InsidePerspective(angle float64) bool
}

// CameraTransitionSource reports the camera's first person transition.
// Positive values move into first person, negative values move out of it and
// zero means no transition is running.
type CameraTransitionSource interface {
	TransitionScalar() float64
}

// Frame carries everything a line reads during one Update/Draw pass. It is
// read-only to the line.
type Frame struct {
	Config *config.Config
	Rules  *style.RuleSet

	Runtime float64 // Seconds since start, monotonic
	Delta   float64 // Seconds since the previous frame

	// ActiveLines is the number of lines drawn on the previous frame, at
	// least 1. It is fixed before the first Draw of the frame.
	ActiveLines int

	Scene  Scene
	Camera CameraTransitionSource
}

func (f *Frame) transitionScalar() float64 {
	if f.Camera == nil {
		return 0
	}
	return f.Camera.TransitionScalar()
}
