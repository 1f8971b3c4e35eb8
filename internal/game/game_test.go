package game

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/Ghost-Loop/internal/config"
	"github.com/Garsondee/Ghost-Loop/internal/screen"
	"github.com/Garsondee/Ghost-Loop/internal/sim"
	"github.com/Garsondee/Ghost-Loop/internal/stage"
)

// keyboard is a fake key state for driving the host.
type keyboard map[ebiten.Key]bool

func (k keyboard) pressed(key ebiten.Key) bool { return k[key] }

func newTestGame(t *testing.T) (*Game, keyboard) {
	t.Helper()
	st, err := stage.Default()
	if err != nil {
		t.Fatalf("default stage: %v", err)
	}
	cfg := &config.Config{Window: config.WindowConfig{Width: 1280, Height: 720, TPS: 60}}
	g, err := New(cfg, st, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	kb := keyboard{}
	g.pressed = kb.pressed
	return g, kb
}

func TestHeldKeys_WASDAndArrows(t *testing.T) {
	kb := keyboard{ebiten.KeyW: true, ebiten.KeyArrowLeft: true}
	if got := heldKeys(kb.pressed); got != sim.KeyUp|sim.KeyLeft {
		t.Fatalf("expected UL, got %s", got)
	}
	kb = keyboard{ebiten.KeyArrowDown: true, ebiten.KeyD: true}
	if got := heldKeys(kb.pressed); got != sim.KeyDown|sim.KeyRight {
		t.Fatalf("expected DR, got %s", got)
	}
	if got := heldKeys(keyboard{}.pressed); got != 0 {
		t.Fatalf("expected no keys, got %s", got)
	}
}

func TestNew_RejectsUnknownMoveStyle(t *testing.T) {
	st, err := stage.Default()
	if err != nil {
		t.Fatal(err)
	}
	cfg := &config.Config{
		Window:  config.WindowConfig{Width: 1280, Height: 720, TPS: 60},
		Session: config.SessionConfig{MoveStyle: "hover"},
	}
	if _, err := New(cfg, st, nil); err == nil {
		t.Fatal("expected an error for an unknown move style")
	}
}

func TestUpdate_ConfirmIsEdgeTriggered(t *testing.T) {
	g, kb := newTestGame(t)
	if g.session.Screen() != screen.Title {
		t.Fatalf("expected title, got %s", g.session.Screen())
	}

	kb[ebiten.KeyEnter] = true
	if err := g.Update(); err != nil {
		t.Fatal(err)
	}
	if g.session.Screen() != screen.Playing || g.world == nil {
		t.Fatalf("Enter should start play, screen %s", g.session.Screen())
	}
	first := g.world

	// Holding Enter must not fire again.
	for i := 0; i < 5; i++ {
		if err := g.Update(); err != nil {
			t.Fatal(err)
		}
	}
	if g.world != first || g.session.Stats().Attempts != 1 {
		t.Fatalf("held Enter respawned the world, attempts=%d", g.session.Stats().Attempts)
	}
	if g.world.Tick() != 5 {
		t.Fatalf("expected 5 world ticks, got %d", g.world.Tick())
	}
}

func TestUpdate_PauseStopsTheWorld(t *testing.T) {
	g, kb := newTestGame(t)
	kb[ebiten.KeyEnter] = true
	_ = g.Update()
	kb[ebiten.KeyEnter] = false

	kb[ebiten.KeyP] = true
	_ = g.Update()
	kb[ebiten.KeyP] = false
	before := g.world.Tick()
	for i := 0; i < 3; i++ {
		_ = g.Update()
	}
	if g.world.Tick() != before {
		t.Fatalf("paused world advanced from %d to %d", before, g.world.Tick())
	}
}

func TestUpdate_EscapeQuitsFromTitle(t *testing.T) {
	g, kb := newTestGame(t)
	kb[ebiten.KeyEscape] = true
	if err := g.Update(); !errors.Is(err, ebiten.Termination) {
		t.Fatalf("expected termination, got %v", err)
	}
}

func TestUpdate_MovesPlayer(t *testing.T) {
	g, kb := newTestGame(t)
	kb[ebiten.KeyEnter] = true
	_ = g.Update()
	kb[ebiten.KeyEnter] = false

	start := g.world.Player().Transform.Translation
	kb[ebiten.KeyW] = true
	for i := 0; i < 10; i++ {
		_ = g.Update()
	}
	now := g.world.Player().Transform.Translation
	if now.Z <= start.Z {
		t.Fatalf("holding W should move toward +Z, %.3f -> %.3f", start.Z, now.Z)
	}
}

func TestCopyReport_WritesSessionReport(t *testing.T) {
	g, kb := newTestGame(t)
	var copied string
	orig := writeClipboard
	writeClipboard = func(s string) error { copied = s; return nil }
	t.Cleanup(func() { writeClipboard = orig })

	kb[ebiten.KeyEnter] = true
	_ = g.Update()
	kb[ebiten.KeyEnter] = false
	kb[ebiten.KeyC] = true
	_ = g.Update()

	if !strings.Contains(copied, g.session.ID().String()) {
		t.Fatalf("report should name the session, got:\n%s", copied)
	}
	if !strings.Contains(copied, "generation=") {
		t.Fatalf("report should include the world summary, got:\n%s", copied)
	}
	if g.notice == "" {
		t.Fatal("copying should leave a notice")
	}
}

func TestCopyReport_ClipboardFailureIsANotice(t *testing.T) {
	g, kb := newTestGame(t)
	orig := writeClipboard
	writeClipboard = func(string) error { return errors.New("no display") }
	t.Cleanup(func() { writeClipboard = orig })

	kb[ebiten.KeyC] = true
	if err := g.Update(); err != nil {
		t.Fatalf("clipboard failure must not stop the game: %v", err)
	}
	if g.notice != "clipboard unavailable" {
		t.Fatalf("unexpected notice %q", g.notice)
	}
}

func TestSessionReport_BeforePlay(t *testing.T) {
	g, _ := newTestGame(t)
	r := sessionReport(g.session)
	if !strings.Contains(r, "No world spawned yet.") {
		t.Fatalf("unexpected report:\n%s", r)
	}
}

func TestFeed_ReceivesWorldEvents(t *testing.T) {
	g, kb := newTestGame(t)
	kb[ebiten.KeyEnter] = true
	_ = g.Update()
	kb[ebiten.KeyEnter] = false

	// Standing at the spawn, the first guard turns back along its route at
	// ten seconds and has a clear line to the player.
	for i := 0; i < 20*60 && g.session.Screen() == screen.Playing; i++ {
		if err := g.Update(); err != nil {
			t.Fatal(err)
		}
	}
	if g.session.Screen() != screen.Hell {
		t.Fatalf("expected hell, got %s", g.session.Screen())
	}
	if g.session.Stats().Deaths != 1 {
		t.Fatalf("expected one death, got %d", g.session.Stats().Deaths)
	}

	seen := map[string]bool{}
	for _, e := range g.feed.Recent() {
		seen[e.Category+"/"+e.Key] = true
	}
	for _, want := range []string{"stage/spawn", "detect/spotted", "death/terminal"} {
		if !seen[want] {
			t.Fatalf("feed is missing %s, has %v", want, seen)
		}
	}
}

func TestFeed_RingKeepsNewest(t *testing.T) {
	f := NewFeed()
	for i := 0; i < feedMaxEntries+5; i++ {
		f.Add(sim.SimLogEntry{Tick: i})
	}
	got := f.Recent()
	if len(got) != feedMaxEntries {
		t.Fatalf("expected %d entries, got %d", feedMaxEntries, len(got))
	}
	if got[0].Tick != 5 || got[len(got)-1].Tick != feedMaxEntries+4 {
		t.Fatalf("expected ticks 5..%d, got %d..%d", feedMaxEntries+4, got[0].Tick, got[len(got)-1].Tick)
	}
	f.Reset()
	if len(f.Recent()) != 0 {
		t.Fatal("reset should empty the feed")
	}
}

func TestAnimations_Age(t *testing.T) {
	a := NewAnimations(nil)
	id := sim.NewEntityID(2, 0)
	a.Transition(id, sim.TrackIdle, sim.TrackPunch)
	a.Advance()
	a.Advance()
	if age, ok := a.Age(id, sim.TrackPunch); !ok || age != 2 {
		t.Fatalf("expected punch age 2, got %d %v", age, ok)
	}
	if _, ok := a.Age(id, sim.TrackWalk); ok {
		t.Fatal("actor is not walking")
	}
	a.Prune(func(sim.EntityID) bool { return true })
	if _, ok := a.Age(id, sim.TrackPunch); !ok {
		t.Fatal("prune should keep live actors")
	}
	a.Prune(func(sim.EntityID) bool { return false })
	if _, ok := a.Age(id, sim.TrackPunch); ok {
		t.Fatal("prune should forget released actors")
	}
}

func TestView_ToScreen(t *testing.T) {
	v := view{cx: 100, cy: 50, focus: sim.V3(2, 0, 3), scale: 10}
	x, y := v.toScreen(sim.V3(2, 0, 3))
	if x != 100 || y != 50 {
		t.Fatalf("focus should map to the centre, got (%.1f,%.1f)", x, y)
	}
	// +X is screen left, +Z is screen up.
	x, y = v.toScreen(sim.V3(3, 0, 4))
	if x != 90 || y != 40 {
		t.Fatalf("expected (90,40), got (%.1f,%.1f)", x, y)
	}
	rx, ry, rw, rh := v.rect(sim.Rect{Center: sim.V3(2, 0, 3), HalfX: 1, HalfZ: 2})
	if rx != 90 || ry != 30 || rw != 20 || rh != 40 {
		t.Fatalf("unexpected rect %.0f %.0f %.0f %.0f", rx, ry, rw, rh)
	}
}

func TestRayRectHitT(t *testing.T) {
	r := sim.Rect{Center: sim.V3(0, 0, 5), HalfX: 1, HalfZ: 1}
	tHit, hit := rayRectHitT(sim.V3(0, 0, 0), sim.V3(0, 0, 10), r)
	if !hit || math.Abs(tHit-0.4) > 1e-9 {
		t.Fatalf("expected hit at 0.4, got %.3f %v", tHit, hit)
	}
	if _, hit := rayRectHitT(sim.V3(3, 0, 0), sim.V3(3, 0, 10), r); hit {
		t.Fatal("parallel ray beside the rect should miss")
	}
	if _, hit := rayRectHitT(sim.V3(0, 0, 0), sim.V3(0, 0, 3), r); hit {
		t.Fatal("segment ending short of the rect should miss")
	}
}

func TestClipRay_StopsAtWall(t *testing.T) {
	walls := []sim.Wall{{Rect: sim.Rect{Center: sim.V3(0, 0, 5), HalfX: 1, HalfZ: 1}}}
	end := clipRay(sim.Vec3{}, 0, coneRange, walls)
	if end.Z >= 4 || end.Z < 3.8 {
		t.Fatalf("ray should stop just short of z=4, got %.3f", end.Z)
	}
	end = clipRay(sim.Vec3{}, math.Pi, coneRange, walls)
	if math.Abs(end.Z+coneRange) > 1e-9 {
		t.Fatalf("ray away from the wall should run full length, got %.3f", end.Z)
	}
}

func TestConePoints_Shape(t *testing.T) {
	gd := sim.Guard{Transform: sim.Transform{Translation: sim.V3(1, 0, 1), Yaw: 0}}
	pts := conePoints(gd, nil)
	if len(pts) != coneSteps+2 {
		t.Fatalf("expected %d points, got %d", coneSteps+2, len(pts))
	}
	if pts[0] != gd.Transform.Translation {
		t.Fatal("fan should start at the guard")
	}
	for _, p := range pts[1:] {
		d := p.Sub(gd.Transform.Translation)
		if math.Abs(d.Length()-coneRange) > 1e-9 {
			t.Fatalf("unclipped arc point at distance %.3f", d.Length())
		}
		if sim.AngleBetween(d, gd.Transform.Forward()) > sim.HalfCone+1e-9 {
			t.Fatal("arc point outside the cone")
		}
	}
}

func TestPalette_UnknownKey(t *testing.T) {
	p := DefaultPalette()
	if c := p.Color(matCount); c.R != 255 || c.B != 255 {
		t.Fatalf("unknown key should be magenta, got %v", c)
	}
	if p.Color(MatBlue) == p.Color(MatRed) {
		t.Fatal("walls and floor need distinct colours")
	}
}
