package line

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestAcquireTargetEasesFromSource(t *testing.T) {
	self, enemy := newWorld()
	f := newFrame(&fakeScene{})

	l := New()
	if !l.Sleeping() {
		t.Fatal("Expected a new line to sleep")
	}
	self.target = enemy
	l.Initialize(self)

	want := []struct {
		state  State
		target mgl64.Vec3
	}{
		{StateNewTarget, mgl64.Vec3{0, 2, 0}},
		{StateNewTarget, mgl64.Vec3{5, 2, 0}},
		{StateIdle, mgl64.Vec3{10, 2, 0}},
	}
	for i, w := range want {
		tick(l, f)
		if l.State() != w.state {
			t.Fatalf("Frame %d: Expected state %s, got %s", i, w.state, l.State())
		}
		if !l.TargetPosition().ApproxEqual(w.target) {
			t.Errorf("Frame %d: Expected target position %v, got %v", i, w.target, l.TargetPosition())
		}
	}
	if !l.SourcePosition().ApproxEqual(mgl64.Vec3{0, 2, 0}) {
		t.Errorf("Expected height adjusted source, got %v", l.SourcePosition())
	}
}

func TestAcquireResetsStateTime(t *testing.T) {
	self, enemy := newWorld()
	f := newFrame(&fakeScene{})

	l := New()
	l.Initialize(self) // No target yet
	for i := 0; i < 3; i++ {
		tick(l, f)
	}
	if l.State() != StateDying {
		t.Fatalf("Expected an untargeted line to collapse, got %s", l.State())
	}

	self.target = enemy
	l.Update(f)
	if l.State() != StateNewTarget {
		t.Fatalf("Expected NewTarget after acquiring, got %s", l.State())
	}
	if l.StateTime() != f.Delta {
		t.Errorf("Expected state time to restart, got %v", l.StateTime())
	}
}

func TestSwitchTargetStartsFromPreviousTarget(t *testing.T) {
	self, enemy := newWorld()
	f := newFrame(&fakeScene{})
	l := idleLine(self, enemy, f)

	other := &fakeEntity{id: 3, pos: mgl64.Vec3{0, 0, 10}, cursor: 4, attrs: enemy.attrs}
	self.target = other

	tick(l, f)
	if l.State() != StateSwitching {
		t.Fatalf("Expected Switching, got %s", l.State())
	}
	if !l.TargetPosition().ApproxEqual(mgl64.Vec3{10, 2, 0}) {
		t.Errorf("Expected switch to start at the old target, got %v", l.TargetPosition())
	}

	tick(l, f)
	if l.State() != StateSwitching {
		t.Fatalf("Expected Switching half way, got %s", l.State())
	}
	if !l.TargetPosition().ApproxEqual(mgl64.Vec3{5, 3, 5}) {
		t.Errorf("Expected half way position, got %v", l.TargetPosition())
	}

	tick(l, f)
	if l.State() != StateIdle {
		t.Fatalf("Expected Idle once the ease completes, got %s", l.State())
	}
	if !l.TargetPosition().ApproxEqual(mgl64.Vec3{0, 4, 10}) {
		t.Errorf("Expected new target position, got %v", l.TargetPosition())
	}
}

func TestSwitchDuringSwitchKeepsBlending(t *testing.T) {
	self, enemy := newWorld()
	f := newFrame(&fakeScene{})
	l := idleLine(self, enemy, f)

	a := &fakeEntity{id: 3, pos: mgl64.Vec3{0, 0, 10}, cursor: 2}
	b := &fakeEntity{id: 4, pos: mgl64.Vec3{-10, 0, 0}, cursor: 2}

	self.target = a
	tick(l, f)
	tick(l, f) // Half way to a
	mid := l.TargetPosition()

	self.target = b
	tick(l, f)
	if l.State() != StateSwitching {
		t.Fatalf("Expected Switching, got %s", l.State())
	}
	if !l.TargetPosition().ApproxEqual(mid) {
		t.Errorf("Expected the second switch to start where the first one was, got %v want %v",
			l.TargetPosition(), mid)
	}
}

func TestLoseTargetSleepsWhenFadeCompletes(t *testing.T) {
	self, enemy := newWorld()
	f := newFrame(&fakeScene{})
	l := idleLine(self, enemy, f)

	self.target = nil
	tick(l, f)
	if l.State() != StateDying {
		t.Fatalf("Expected Dying after losing the target, got %s", l.State())
	}
	if !l.TargetPosition().ApproxEqual(mgl64.Vec3{10, 2, 0}) {
		t.Errorf("Expected collapse to start at the old target, got %v", l.TargetPosition())
	}

	// Fade is 0.5 s: alpha reaches 1 on the fifth update after the loss.
	for i := 1; i < 4; i++ {
		tick(l, f)
		if l.Sleeping() {
			t.Fatalf("Expected line awake at update %d", i+1)
		}
	}
	tick(l, f)
	if !l.Sleeping() {
		t.Fatal("Expected line asleep once the fade alpha reaches 1")
	}
	if !l.TargetPosition().ApproxEqual(l.SourcePosition()) {
		t.Errorf("Expected the line collapsed onto its source, got %v and %v", l.TargetPosition(), l.SourcePosition())
	}
}

func TestStateTimeNeverResetsWithoutEdge(t *testing.T) {
	self, enemy := newWorld()
	f := newFrame(&fakeScene{})
	f.Config.NoTargetFadeTime = 5
	l := idleLine(self, enemy, f)

	self.target = nil
	tick(l, f)
	last := l.StateTime()
	for i := 0; i < 20; i++ {
		tick(l, f)
		if l.State() != StateDying {
			t.Fatalf("Expected to stay Dying, got %s", l.State())
		}
		if l.StateTime() <= last {
			t.Fatalf("Expected state time to keep growing, got %v after %v", l.StateTime(), last)
		}
		last = l.StateTime()
	}
}

func TestDying2IgnoresEdgesUntilInitialize(t *testing.T) {
	self, enemy := newWorld()
	f := newFrame(&fakeScene{})
	f.Config.NoTargetFadeTime = 1
	l := idleLine(self, enemy, f)

	self.hidden = true
	tick(l, f)
	if l.State() != StateDying2 {
		t.Fatalf("Expected Dying2 for a hidden entity, got %s", l.State())
	}

	// Loss, reacquire and switch are all ignored.
	other := &fakeEntity{id: 9, pos: mgl64.Vec3{3, 0, 3}}
	for i, target := range []*fakeEntity{nil, enemy, other, nil} {
		before := l.StateTime()
		self.target = target
		tick(l, f)
		if l.State() != StateDying2 {
			t.Fatalf("Step %d: Expected Dying2 to stick, got %s", i, l.State())
		}
		if l.StateTime() <= before {
			t.Fatalf("Step %d: Expected the Dying2 animation to keep running", i)
		}
	}

	for i := 0; i < 10 && !l.Sleeping(); i++ {
		tick(l, f)
	}
	if !l.Sleeping() {
		t.Fatal("Expected Dying2 to end asleep")
	}

	self.hidden = false
	self.target = enemy
	l.Initialize(self)
	if l.State() != StateNewTarget || l.Sleeping() {
		t.Fatalf("Expected Initialize to clear Dying2, got %s sleeping=%v", l.State(), l.Sleeping())
	}

	tick(l, f)
	self.target = nil
	tick(l, f)
	if l.State() != StateDying {
		t.Errorf("Expected normal edge detection to resume, got %s", l.State())
	}
}

func TestInvalidEntitySleeps(t *testing.T) {
	self, enemy := newWorld()
	f := newFrame(&fakeScene{})
	l := idleLine(self, enemy, f)

	self.invalid = true
	l.Update(f)
	if !l.Sleeping() {
		t.Error("Expected an invalid entity to put the line to sleep")
	}
	if l.Draw(f, &recorder{}, allTextures()) {
		t.Error("Expected a sleeping line not to draw")
	}
}

func TestRenderNotReadySkipsFrame(t *testing.T) {
	self, enemy := newWorld()
	scene := &fakeScene{}
	f := newFrame(scene)
	l := idleLine(self, enemy, f)

	before := l.StateTime()
	scene.notReady = true
	self.target = nil
	l.Update(f)
	if l.State() != StateIdle || l.StateTime() != before {
		t.Errorf("Expected the frame to be skipped, got %s at %v", l.State(), l.StateTime())
	}
	if l.Draw(f, &recorder{}, allTextures()) {
		t.Error("Expected no draw while the scene is not ready")
	}
}

func TestTransitionTableDying2Row(t *testing.T) {
	for e := edgeNone; e < edgeCount; e++ {
		if transitions[StateDying2][e].apply {
			t.Errorf("Expected Dying2 to ignore edge %s", e)
		}
	}
	for s := StateNewTarget; s <= StateIdle; s++ {
		if transitions[s][edgeNone].apply {
			t.Errorf("Expected state %s to ignore the empty edge", s)
		}
	}
}

func TestMidPointArcHeight(t *testing.T) {
	self, enemy := newWorld()
	f := newFrame(&fakeScene{})
	l := idleLine(self, enemy, f)

	// Average cursor height 2, arc scale 0.5, cubic correction 0.75.
	want := mgl64.Vec3{5, 2 + 2*0.5*0.75, 0}
	if !l.MidPosition().ApproxEqual(want) {
		t.Errorf("Expected midpoint %v, got %v", want, l.MidPosition())
	}

	f.Config.PlayerHeightBump = 1
	tick(l, f)
	if !l.MidPosition().ApproxEqual(want.Add(mgl64.Vec3{0, 1, 0})) {
		t.Errorf("Expected player bump to raise the midpoint, got %v", l.MidPosition())
	}
}

func TestDeathHeightCurves(t *testing.T) {
	f := newFrame(&fakeScene{})
	cfg := f.Config
	cfg.NoTargetFadeTime = 1
	cfg.DeathAnimationTimeScale = 2

	cfg.DeathAnimation = "linear"
	if got := deathHeight(cfg, 4, 0.25); got != 2 {
		t.Errorf("Expected linear height 2, got %v", got)
	}
	cfg.DeathAnimation = "square"
	if got := deathHeight(cfg, 4, 0.25); got != 3 {
		t.Errorf("Expected square height 3, got %v", got)
	}
	cfg.DeathAnimation = "cube"
	if got := deathHeight(cfg, 4, 0.25); got != 3.5 {
		t.Errorf("Expected cube height 3.5, got %v", got)
	}
	for _, elapsed := range []float64{0.5, 1, 10} {
		if got := deathHeight(cfg, 4, elapsed); got != 0 {
			t.Errorf("Expected flat arc at %v s, got %v", elapsed, got)
		}
	}

	cfg.NoTargetFadeTime = 0
	if got := deathHeight(cfg, 4, 0); got != 0 {
		t.Errorf("Expected zero fade time to flatten at once, got %v", got)
	}
}
