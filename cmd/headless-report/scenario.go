package main

import (
	"math"
	"sort"

	"github.com/Garsondee/Ghost-Loop/internal/sim"
)

// leg holds keys for a number of seconds.
type leg struct {
	keys    sim.KeySet
	seconds float64
}

// scenario is a scripted player. Each run idles for delay seconds first so
// the same route meets the guards at different points of their patrol.
type scenario struct {
	name string
	legs []leg
	loop int // times legs repeat
}

func (s scenario) moves(delay float64, tps int) []sim.Move {
	var out []sim.Move
	if n := secondsToTicks(delay, tps); n > 0 {
		out = append(out, sim.Move{Ticks: n})
	}
	for i := 0; i < max(1, s.loop); i++ {
		for _, l := range s.legs {
			out = append(out, sim.Move{Keys: l.keys, Ticks: secondsToTicks(l.seconds, tps)})
		}
	}
	return out
}

func secondsToTicks(s float64, tps int) int {
	return int(math.Round(s * float64(tps)))
}

var scenarios = map[string]scenario{
	// Stand at the spawn and wait to be found.
	"standstill": {name: "standstill"},

	// Round the long wall on its open end, cross the gap between the two
	// short walls and walk into the furnace.
	"route": {name: "route", legs: []leg{
		{sim.KeyLeft, 0.55},
		{sim.KeyUp, 2.0},
		{sim.KeyRight, 1.64},
		{sim.KeyUp, 0.73},
	}},

	// Walk a small square near the spawn.
	"wander": {name: "wander", loop: 6, legs: []leg{
		{sim.KeyUp, 0.5},
		{sim.KeyLeft, 0.5},
		{sim.KeyDown, 0.5},
		{sim.KeyRight, 0.5},
	}},
}

func scenarioNames() []string {
	names := make([]string, 0, len(scenarios))
	for n := range scenarios {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
