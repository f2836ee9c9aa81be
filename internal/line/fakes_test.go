package line

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"

	"chosenoffset.com/targetlines/internal/config"
	"chosenoffset.com/targetlines/internal/render"
	"chosenoffset.com/targetlines/internal/style"
)

type fakeEntity struct {
	id      uint64
	pos     mgl64.Vec3
	head    float64
	cursor  float64
	player  bool
	battle  bool
	hostile bool
	hideOcc bool // Not visible when occlusion testing is on
	dead    bool
	hidden  bool
	invalid bool
	target  *fakeEntity
	attrs   style.Attributes
}

func (e *fakeEntity) ID() uint64            { return e.id }
func (e *fakeEntity) Valid() bool           { return !e.invalid }
func (e *fakeEntity) Position() mgl64.Vec3  { return e.pos }
func (e *fakeEntity) HeadHeight() float64   { return e.head }
func (e *fakeEntity) CursorHeight() float64 { return e.cursor }
func (e *fakeEntity) IsPlayer() bool        { return e.player }
func (e *fakeEntity) IsBattleChara() bool   { return e.battle }
func (e *fakeEntity) IsHostile() bool       { return e.hostile }
func (e *fakeEntity) Dead() bool            { return e.dead }
func (e *fakeEntity) Hidden() bool          { return e.hidden }

func (e *fakeEntity) Visible(occlusion bool) bool {
	return !(occlusion && e.hideOcc)
}

func (e *fakeEntity) Target() Entity {
	if e.target == nil {
		return nil
	}
	return e.target
}

func (e *fakeEntity) Attributes() style.Attributes { return e.attrs }

// fakeScene projects world (x, y, z) straight onto screen (x, y).
type fakeScene struct {
	notReady      bool
	local         uint64
	firstPerson   bool
	camPos        mgl64.Vec3
	camForward    mgl64.Vec3
	noProjection  bool
	occludeAll    bool // PointVisible fails when occlusion testing is on
	outsideCamera bool
}

func (s *fakeScene) RenderReady() bool          { return !s.notReady }
func (s *fakeScene) LocalPlayerID() uint64      { return s.local }
func (s *fakeScene) FirstPerson() bool          { return s.firstPerson }
func (s *fakeScene) CameraPosition() mgl64.Vec3 { return s.camPos }
func (s *fakeScene) CameraForward() mgl64.Vec3  { return s.camForward }

func (s *fakeScene) WorldToScreen(p mgl64.Vec3) (mgl64.Vec2, bool) {
	return mgl64.Vec2{p[0], p[1]}, !s.noProjection
}

func (s *fakeScene) PointVisible(p mgl64.Vec3, occlusion bool) bool {
	return !(occlusion && s.occludeAll)
}

func (s *fakeScene) AngleToCamera(p mgl64.Vec3) float64 { return 0 }
func (s *fakeScene) InsidePerspective(angle float64) bool {
	return !s.outsideCamera
}

type fakeCamera struct{ scalar float64 }

func (c *fakeCamera) TransitionScalar() float64 { return c.scalar }

type fakeTexture struct{ name string }

func (*fakeTexture) Size() (int, int) { return 16, 16 }

type call struct {
	kind  string
	tex   render.Texture
	color color.NRGBA
	width float64
	quad  [4]mgl64.Vec2
	text  string
}

// recorder is a DrawList that keeps every call in order.
type recorder struct {
	calls []call
}

func (r *recorder) AddBezierQuadratic(p0, p1, p2 mgl64.Vec2, clr color.NRGBA, thickness float64) {
	r.calls = append(r.calls, call{kind: "quadratic", color: clr, width: thickness})
}

func (r *recorder) AddBezierCubic(p0, p1, p2, p3 mgl64.Vec2, clr color.NRGBA, thickness float64) {
	r.calls = append(r.calls, call{kind: "cubic", color: clr, width: thickness})
}

func (r *recorder) AddImageQuad(tex render.Texture, quad [4]mgl64.Vec2, uv [4]mgl64.Vec2, clr color.NRGBA) {
	r.calls = append(r.calls, call{kind: "quad", tex: tex, color: clr, quad: quad})
}

func (r *recorder) AddText(pos mgl64.Vec2, clr color.NRGBA, text string) {
	r.calls = append(r.calls, call{kind: "text", color: clr, text: text})
}

func (r *recorder) count(kind string) int {
	n := 0
	for _, c := range r.calls {
		if c.kind == kind {
			n++
		}
	}
	return n
}

var (
	lineTex    = &fakeTexture{name: "line"}
	outlineTex = &fakeTexture{name: "outline"}
	edgeTex    = &fakeTexture{name: "edge"}
)

func allTextures() render.TextureSet {
	return render.TextureSet{
		render.TextureLine:    lineTex,
		render.TextureOutline: outlineTex,
		render.TextureEdge:    edgeTex,
	}
}

// newWorld returns a player at the origin and an enemy 10 units along x,
// both with a cursor height of 2.
func newWorld() (self, enemy *fakeEntity) {
	self = &fakeEntity{
		id:     1,
		cursor: 2,
		head:   1.5,
		player: true,
		attrs:  style.Attributes{Flags: style.FlagSelf | style.FlagPlayer, Job: 19},
	}
	enemy = &fakeEntity{
		id:      2,
		pos:     mgl64.Vec3{10, 0, 0},
		cursor:  2,
		battle:  true,
		hostile: true,
		attrs:   style.Attributes{Flags: style.FlagEnemy | style.FlagNPC, Job: style.JobNone},
	}
	return self, enemy
}

// newFrame uses exact binary steps so alpha thresholds land on frame
// boundaries: ease 0.25 s, fade 0.5 s, delta 0.125 s.
func newFrame(scene *fakeScene) *Frame {
	cfg := config.DefaultConfig()
	cfg.BreathingEffect = false
	cfg.PulsingEffect = false
	cfg.NewTargetEaseTime = 0.25
	cfg.NoTargetFadeTime = 0.5
	return &Frame{
		Config:      cfg,
		Rules:       cfg.RuleSet(),
		Delta:       0.125,
		ActiveLines: 1,
		Scene:       scene,
	}
}

func tick(l *Line, f *Frame) {
	l.Update(f)
	f.Runtime += f.Delta
}

// idleLine returns a line bound to self that has settled on enemy.
func idleLine(self, enemy *fakeEntity, f *Frame) *Line {
	self.target = enemy
	l := New()
	l.Initialize(self)
	for i := 0; i < 100 && l.State() != StateIdle; i++ {
		tick(l, f)
	}
	tick(l, f)
	return l
}
