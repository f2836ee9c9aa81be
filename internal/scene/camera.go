package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Transition lengths in seconds. Entering first person is quicker than
// leaving it.
const (
	enterFirstPersonTime = 0.25
	leaveFirstPersonTime = 1.0
)

// Camera is a perspective camera that follows the local player, either from
// behind and above or from the player's eyes.
type Camera struct {
	Eye    mgl64.Vec3
	Center mgl64.Vec3
	Up     mgl64.Vec3

	FovY   float64 // Vertical field of view in radians
	Near   float64
	Far    float64
	Width  int
	Height int

	// Distance and height of the third person camera behind the player
	Distance float64
	Lift     float64

	firstPerson    bool
	transition     float64 // +1 entering first person, -1 leaving, 0 settled
	transitionLeft float64
}

// NewCamera returns a third person camera for a width x height viewport.
func NewCamera(width, height int) *Camera {
	return &Camera{
		Up:       mgl64.Vec3{0, 1, 0},
		FovY:     mgl64.DegToRad(60),
		Near:     0.1,
		Far:      500,
		Width:    width,
		Height:   height,
		Distance: 9,
		Lift:     5,
	}
}

// Resize changes the viewport size.
func (c *Camera) Resize(width, height int) {
	c.Width = width
	c.Height = height
}

// Follow places the camera for a player at pos facing along facing.
func (c *Camera) Follow(pos, facing mgl64.Vec3, headHeight float64) {
	head := pos.Add(mgl64.Vec3{0, headHeight, 0})
	if c.firstPerson {
		c.Eye = head
		c.Center = head.Add(facing)
		return
	}
	c.Eye = pos.Sub(facing.Mul(c.Distance)).Add(mgl64.Vec3{0, c.Lift, 0})
	c.Center = head
}

// ToggleFirstPerson switches camera mode and starts the matching transition.
func (c *Camera) ToggleFirstPerson() {
	c.firstPerson = !c.firstPerson
	if c.firstPerson {
		c.transition = 1
		c.transitionLeft = enterFirstPersonTime
	} else {
		c.transition = -1
		c.transitionLeft = leaveFirstPersonTime
	}
}

// Step advances the running transition.
func (c *Camera) Step(dt float64) {
	if c.transition == 0 {
		return
	}
	c.transitionLeft -= dt
	if c.transitionLeft <= 0 {
		c.transition = 0
		c.transitionLeft = 0
	}
}

// FirstPerson reports whether the camera is at the player's eyes.
func (c *Camera) FirstPerson() bool { return c.firstPerson }

// TransitionScalar is positive while entering first person, negative while
// leaving and zero otherwise.
func (c *Camera) TransitionScalar() float64 { return c.transition }

// Forward returns the unit view direction.
func (c *Camera) Forward() mgl64.Vec3 {
	d := c.Center.Sub(c.Eye)
	if d.Len() == 0 {
		return mgl64.Vec3{0, 0, -1}
	}
	return d.Normalize()
}

func (c *Camera) aspect() float64 {
	if c.Height == 0 {
		return 1
	}
	return float64(c.Width) / float64(c.Height)
}

// View returns the world to eye matrix.
func (c *Camera) View() mgl64.Mat4 {
	return mgl64.LookAtV(c.Eye, c.Center, c.Up)
}

// Projection returns the perspective matrix.
func (c *Camera) Projection() mgl64.Mat4 {
	return mgl64.Perspective(c.FovY, c.aspect(), c.Near, c.Far)
}

// Project maps p to screen pixels with the origin at the top left. Points at
// or behind the eye do not project.
func (c *Camera) Project(p mgl64.Vec3) (mgl64.Vec2, bool) {
	view := c.View()
	proj := c.Projection()
	clip := proj.Mul4(view).Mul4x1(p.Vec4(1))
	if clip[3] <= c.Near {
		return mgl64.Vec2{}, false
	}
	win := mgl64.Project(p, view, proj, 0, 0, c.Width, c.Height)
	return mgl64.Vec2{win[0], float64(c.Height) - win[1]}, true
}

// AngleTo returns the angle between the view direction and the direction
// from the eye to p.
func (c *Camera) AngleTo(p mgl64.Vec3) float64 {
	d := p.Sub(c.Eye)
	if d.Len() == 0 {
		return 0
	}
	cos := mgl64.Clamp(c.Forward().Dot(d.Normalize()), -1, 1)
	return math.Acos(cos)
}

// HalfFov is the angle from the view direction to a corner of the frustum.
func (c *Camera) HalfFov() float64 {
	t := math.Tan(c.FovY / 2)
	return math.Atan(t * math.Sqrt(1+c.aspect()*c.aspect()))
}
