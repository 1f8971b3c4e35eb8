package main

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Ghost-Loop/internal/sim"
)

func TestKeyFor_RunesAndArrows(t *testing.T) {
	cases := []struct {
		key  tcell.Key
		r    rune
		want sim.KeySet
	}{
		{tcell.KeyRune, 'w', sim.KeyUp},
		{tcell.KeyRune, 'S', sim.KeyDown},
		{tcell.KeyRune, 'a', sim.KeyLeft},
		{tcell.KeyRune, 'd', sim.KeyRight},
		{tcell.KeyUp, 0, sim.KeyUp},
		{tcell.KeyRight, 0, sim.KeyRight},
	}
	for _, c := range cases {
		got, ok := keyFor(c.key, c.r)
		if !ok || got != c.want {
			t.Fatalf("keyFor(%v,%q) = %s %v, want %s", c.key, c.r, got, ok, c.want)
		}
	}
	if _, ok := keyFor(tcell.KeyRune, 'x'); ok {
		t.Fatal("x is not a direction")
	}
}

func TestIsConfirm(t *testing.T) {
	if !isConfirm(tcell.KeyEnter, 0) || !isConfirm(tcell.KeyRune, ' ') {
		t.Fatal("Enter and Space confirm")
	}
	if isConfirm(tcell.KeyRune, 'w') {
		t.Fatal("w does not confirm")
	}
}

func TestKeyHold_DecaysWithoutRepeat(t *testing.T) {
	h := newKeyHold(3)
	h.press(sim.KeyUp)
	for i := 0; i < 3; i++ {
		if got := h.tick(); got != sim.KeyUp {
			t.Fatalf("tick %d: expected U, got %s", i, got)
		}
	}
	if got := h.tick(); got != 0 {
		t.Fatalf("press should have expired, got %s", got)
	}
}

func TestKeyHold_RepeatKeepsKeyHeld(t *testing.T) {
	h := newKeyHold(2)
	h.press(sim.KeyLeft)
	h.tick()
	h.press(sim.KeyLeft)
	h.press(sim.KeyUp)
	if got := h.tick(); got != sim.KeyUp|sim.KeyLeft {
		t.Fatalf("expected UL, got %s", got)
	}
	if got := h.tick(); got != sim.KeyUp|sim.KeyLeft {
		t.Fatalf("expected UL on the second tick, got %s", got)
	}
}

func TestHoldTicks_Minimum(t *testing.T) {
	if holdTicks(60) != 10 {
		t.Fatalf("expected 10 ticks at 60 tps, got %d", holdTicks(60))
	}
	if holdTicks(5) != 2 {
		t.Fatalf("expected the floor of 2, got %d", holdTicks(5))
	}
}

func TestCellView_RoundTrip(t *testing.T) {
	v := cellView{cx: 40, cy: 12, focus: sim.V3(1, 0, 2)}
	col, row := v.cellOf(sim.V3(1, 0, 2))
	if col != 40 || row != 12 {
		t.Fatalf("focus should be the centre cell, got (%d,%d)", col, row)
	}
	// +X is left, +Z is up.
	col, row = v.cellOf(sim.V3(3, 0, 5))
	if col != 36 || row != 9 {
		t.Fatalf("expected (36,9), got (%d,%d)", col, row)
	}
	p := v.worldOf(36, 9)
	if p != sim.V3(3, 0, 5) {
		t.Fatalf("worldOf should invert cellOf, got %+v", p)
	}
}

func TestDrawWorld_PlacesActors(t *testing.T) {
	s := tcell.NewSimulationScreen("")
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}
	defer s.Fini()
	s.SetSize(80, 24)

	snap := sim.Snapshot{
		Stage:  "test",
		Player: sim.Player{Transform: sim.Transform{Translation: sim.V3(0, 0, 0)}},
		Guards: []sim.Guard{{Name: "Enemy", Transform: sim.Transform{Translation: sim.V3(0, 0, 4)}}},
		Walls:  []sim.Wall{{Rect: sim.Rect{Center: sim.V3(-5, 0, 0), HalfX: 1, HalfZ: 1}}},
	}
	drawWorld(s, 80, 24, snap)

	check := func(col, row int, want rune) {
		t.Helper()
		got, _, _, _ := s.GetContent(col, row)
		if got != want {
			t.Fatalf("cell (%d,%d) = %q, want %q", col, row, got, want)
		}
	}
	check(40, 12, '@')
	check(40, 8, 'G')
	check(50, 12, '█')
	// Straight ahead of the guard, nothing in the way.
	check(40, 5, '░')
}
