package session

import (
	"testing"

	"github.com/Garsondee/Ghost-Loop/internal/screen"
	"github.com/Garsondee/Ghost-Loop/internal/sim"
	"github.com/Garsondee/Ghost-Loop/internal/stage"
)

const dt = 0.125

func mustStage(t *testing.T, src string) *stage.Stage {
	t.Helper()
	st, err := stage.Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return st
}

// watchedStage puts the player in plain view of a standing guard.
const watchedStage = `
name: watched
max_time: 20
player: { spawn: [0, 0, 5], speed: 4 }
guards:
  - name: Watcher
    path:
      - { time: 0, at: [0, 0, 0] }
      - { time: 1, at: [0, 0, 0] }
`

func update(t *testing.T, s *Session, in Input) {
	t.Helper()
	if err := s.Update(dt, in); err != nil {
		t.Fatalf("Update: %v", err)
	}
}

func TestSession_TitleToPlaying(t *testing.T) {
	s := New(mustStage(t, watchedStage), nil, Options{})
	defer s.Close()
	if s.Screen() != screen.Title || s.World() != nil {
		t.Fatal("a new session waits on the title screen")
	}
	update(t, s, Input{})
	if s.Screen() != screen.Title {
		t.Fatal("title should wait for confirm")
	}
	update(t, s, Input{Confirm: true})
	if s.Screen() != screen.Playing || s.World() == nil {
		t.Fatalf("expected a spawned world on Playing, got %s", s.Screen())
	}
	if s.Stats().Attempts != 1 {
		t.Fatalf("expected 1 attempt, got %d", s.Stats().Attempts)
	}
}

func TestSession_CaughtThenRespawn(t *testing.T) {
	s := New(mustStage(t, watchedStage), nil, Options{})
	defer s.Close()
	var spotted int
	s.Subscribe(func(e sim.SimLogEntry) {
		if e.Category == sim.CatDetect {
			spotted++
		}
	})
	update(t, s, Input{Confirm: true})
	first := s.World()
	for i := 0; i < 4; i++ {
		update(t, s, Input{})
	}
	oldPlayer := first.Player().ID
	if s.Screen() != screen.Hell {
		t.Fatalf("expected Hell after the countdown, got %s", s.Screen())
	}
	if s.Stats().Deaths != 1 || spotted != 1 {
		t.Fatalf("expected one death and one sighting, got %+v, %d", s.Stats(), spotted)
	}
	// Hell keeps the last world for drawing.
	if s.World() != first {
		t.Fatal("world replaced before respawn")
	}

	update(t, s, Input{Confirm: true})
	if s.Screen() != screen.Playing || s.World() == first {
		t.Fatal("confirm on Hell should respawn a fresh world")
	}
	if s.Alive(oldPlayer) {
		t.Fatalf("player %s of the old world should be released", oldPlayer)
	}
	if id := s.World().Player().ID; !s.Alive(id) || id == oldPlayer {
		t.Fatalf("respawned player needs a fresh live ID, got %s", id)
	}
	if s.World().Tick() != 0 || s.World().Clock().Generation != 0 {
		t.Fatal("respawned world should start from zero")
	}
	if s.Stats().Attempts != 2 {
		t.Fatalf("expected 2 attempts, got %d", s.Stats().Attempts)
	}
}

func TestSession_ScriptedWinReturnsToTitle(t *testing.T) {
	s := New(mustStage(t, `
name: scripted
max_time: 1
player: { spawn: [0, 0, 0], speed: 4 }
objective: |
  function reached(x, z, generation, time)
    return generation >= 1
  end
`), nil, Options{})
	defer s.Close()

	update(t, s, Input{Confirm: true})
	for i := 0; i < 9; i++ {
		update(t, s, Input{})
	}
	if s.Screen() != screen.Win || s.Stats().Wins != 1 {
		t.Fatalf("expected a win on the first wrap, got %s %+v", s.Screen(), s.Stats())
	}
	update(t, s, Input{Confirm: true})
	if s.Screen() != screen.Title {
		t.Fatalf("expected Title after the win, got %s", s.Screen())
	}
}

func TestSession_BadObjectiveFailsSpawn(t *testing.T) {
	s := New(mustStage(t, `
name: broken
max_time: 5
player: { speed: 4 }
objective: "function reached("
`), nil, Options{})
	defer s.Close()
	if err := s.Update(dt, Input{Confirm: true}); err == nil {
		t.Fatal("expected the spawn to fail")
	}
}

func TestSession_IDsAreUnique(t *testing.T) {
	st := mustStage(t, watchedStage)
	a, b := New(st, nil, Options{}), New(st, nil, Options{})
	if a.ID() == b.ID() {
		t.Fatal("sessions share an id")
	}
}
