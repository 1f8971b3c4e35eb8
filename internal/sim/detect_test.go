package sim

import (
	"math"
	"testing"

	"pgregory.net/rapid"
)

func guardAt(pos Vec3, yaw float64) Guard {
	return Guard{
		ID:        NewEntityID(7, 0),
		Name:      "Enemy",
		Transform: Transform{Translation: pos, Yaw: yaw},
	}
}

func TestLook_WallBetweenBlocks(t *testing.T) {
	g := guardAt(Vec3{}, 0)
	wall := Wall{ID: NewEntityID(3, 0), Rect: Rect{Center: V3(0, 0, 2.5), HalfX: 5, HalfZ: 5}}
	s := Look(&g, V3(0, 0, 5), []Wall{wall})
	if !s.InCone {
		t.Fatal("target dead ahead should be in the cone")
	}
	if !s.Blocked || s.Sees() {
		t.Fatal("the wall should block the line")
	}
	if len(s.Blockers) != 1 || s.Blockers[0] != wall.ID {
		t.Fatalf("expected the wall listed as blocker, got %v", s.Blockers)
	}
}

func TestLook_ChecksEveryWall(t *testing.T) {
	g := guardAt(Vec3{}, 0)
	walls := []Wall{
		{ID: NewEntityID(1, 0), Rect: Rect{Center: V3(20, 0, 20), HalfX: 1, HalfZ: 1}},
		{ID: NewEntityID(2, 0), Rect: Rect{Center: V3(0, 0, 3), HalfX: 1, HalfZ: 0.5}},
		{ID: NewEntityID(3, 0), Rect: Rect{Center: V3(0, 0, 6), HalfX: 1, HalfZ: 0.5}},
	}
	s := Look(&g, V3(0, 0, 9), walls)
	if len(s.Blockers) != 2 {
		t.Fatalf("expected both walls in the line listed, got %v", s.Blockers)
	}
}

func TestLook_ClearLine(t *testing.T) {
	g := guardAt(Vec3{}, 0)
	wall := Wall{Rect: Rect{Center: V3(4, 0, 2.5), HalfX: 1, HalfZ: 1}}
	s := Look(&g, V3(0, 0, 5), []Wall{wall})
	if !s.Sees() {
		t.Fatalf("expected a clear sighting, got %+v", s)
	}
}

func TestLook_SamePointNotInCone(t *testing.T) {
	g := guardAt(V3(1, 0, 1), 0)
	if Look(&g, V3(1, 0, 1), nil).InCone {
		t.Fatal("a zero-length line has no direction")
	}
}

func TestDetect_SpotsPlayer(t *testing.T) {
	guards := []Guard{guardAt(Vec3{}, 0.3)}
	p := testPlayer(V3(1, 0, 5))
	p.ID = NewEntityID(1, 0)

	got := Detect(guards, p, nil)
	if len(got) != 1 {
		t.Fatalf("expected one detection, got %d", len(got))
	}
	g := guards[0]
	if g.State.Mode() != GuardShooting || g.State.Target() != p.ID {
		t.Fatalf("guard should be shooting the player, got %s", g.State.Mode())
	}
	if math.Abs(g.Transform.Yaw-math.Atan2(1, 5)) > 1e-9 {
		t.Fatalf("guard should face the player, yaw %.3f", g.Transform.Yaw)
	}
	if g.Action.Desired != TrackShoot {
		t.Fatalf("guard track %s, want shoot", g.Action.Desired)
	}
	if p.Life.Phase() != Descending || p.Life.Countdown() != 0.5 {
		t.Fatalf("player should be descending with 0.5s, got %s %.2f", p.Life.Phase(), p.Life.Countdown())
	}
}

func TestDetect_BlockedByWall(t *testing.T) {
	guards := []Guard{guardAt(Vec3{}, 0)}
	p := testPlayer(V3(0, 0, 5))
	wall := Wall{Rect: Rect{Center: V3(0, 0, 2.5), HalfX: 5, HalfZ: 5}}
	if got := Detect(guards, p, []Wall{wall}); len(got) != 0 {
		t.Fatalf("expected no detection through the wall, got %v", got)
	}
	if !p.Life.Alive() {
		t.Fatal("player should still be alive")
	}
}

func TestDetect_DownGuardIsBlind(t *testing.T) {
	guards := []Guard{guardAt(Vec3{}, 0)}
	if err := guards[0].State.KnockDown(); err != nil {
		t.Fatal(err)
	}
	p := testPlayer(V3(0, 0, 5))
	if got := Detect(guards, p, nil); len(got) != 0 {
		t.Fatal("a downed guard must not detect")
	}
}

func TestDetect_OnlyOnceForDeadPlayer(t *testing.T) {
	guards := []Guard{guardAt(Vec3{}, 0), guardAt(V3(0, 0, 1), 0)}
	p := testPlayer(V3(0, 0, 5))
	if got := Detect(guards, p, nil); len(got) != 2 {
		t.Fatalf("both guards should open fire, got %d", len(got))
	}
	if got := Detect(guards, p, nil); got != nil {
		t.Fatal("a descending player cannot be detected again")
	}
}

func TestDetect_OutsideConeNeverDetected(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		yaw := rapid.Float64Range(-math.Pi, math.Pi).Draw(t, "yaw")
		off := rapid.Float64Range(HalfCone+1e-6, math.Pi).Draw(t, "off")
		if rapid.Bool().Draw(t, "left") {
			off = -off
		}
		dist := rapid.Float64Range(0.1, 50).Draw(t, "dist")
		guards := []Guard{guardAt(Vec3{}, yaw)}
		p := testPlayer(Forward(yaw + off).Scale(dist))
		if got := Detect(guards, p, nil); len(got) != 0 {
			t.Fatalf("detected at %.4f rad off forward", off)
		}
	})
}
