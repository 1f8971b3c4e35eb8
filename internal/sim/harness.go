package sim

import (
	"fmt"

	"github.com/Garsondee/Ghost-Loop/internal/screen"
)

// Harness event categories.
const (
	CatScreen = "screen"
	CatState  = "state"
)

// TestSim is a headless harness around a World. It drives the world from a
// scripted key sequence at a fixed tick rate, applies screen requests after
// every tick like a host would, and logs state changes to the SimLog. Tests
// and the headless report use it.
type TestSim struct {
	Layout  Layout
	World   *World
	SimLog  *SimLog
	Screens *screen.State
	DT      float64

	script    []Move
	scriptPos int
	scriptAt  int // ticks spent on script[scriptPos]
	worldOpts []Option
}

// Move holds keys for a number of ticks.
type Move struct {
	Keys  KeySet
	Ticks int
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptLayout simOptionKind = iota // stage shape, applied first
	simOptRun                         // tick rate, logging, script, world options
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// WithLayout replaces the whole stage.
func WithLayout(l Layout) SimOption {
	return SimOption{simOptLayout, func(ts *TestSim) {
		ts.Layout = l
	}}
}

// WithLoop sets the loop period in seconds.
func WithLoop(maxTime float64) SimOption {
	return SimOption{simOptLayout, func(ts *TestSim) {
		ts.Layout.MaxTime = maxTime
	}}
}

// WithWall adds a wall centred at (cx,cz) with half-extents hx, hz.
func WithWall(cx, cz, hx, hz float64) SimOption {
	return SimOption{simOptLayout, func(ts *TestSim) {
		ts.Layout.Walls = append(ts.Layout.Walls, Rect{Center: V3(cx, 0, cz), HalfX: hx, HalfZ: hz})
	}}
}

// WithGuard adds a patrolling guard.
func WithGuard(name string, wps ...Waypoint) SimOption {
	return SimOption{simOptLayout, func(ts *TestSim) {
		ts.Layout.Guards = append(ts.Layout.Guards, GuardSpec{Name: name, Waypoints: wps})
	}}
}

// WithSpawn places the player.
func WithSpawn(x, z, yaw float64) SimOption {
	return SimOption{simOptLayout, func(ts *TestSim) {
		ts.Layout.PlayerSpawn = V3(x, 0, z)
		ts.Layout.PlayerYaw = yaw
	}}
}

// WithPlayerSpeed sets the player's movement constants.
func WithPlayerSpeed(speed, rotation float64) SimOption {
	return SimOption{simOptLayout, func(ts *TestSim) {
		ts.Layout.PlayerMovement = Movement{Speed: speed, Rotation: rotation}
	}}
}

// WithFurnace places the goal rectangle.
func WithFurnace(cx, cz, hx, hz float64) SimOption {
	return SimOption{simOptLayout, func(ts *TestSim) {
		ts.Layout.Furnace = &Rect{Center: V3(cx, 0, cz), HalfX: hx, HalfZ: hz}
	}}
}

// WithTickRate sets how many ticks make one second.
func WithTickRate(tps int) SimOption {
	return SimOption{simOptRun, func(ts *TestSim) {
		if tps > 0 {
			ts.DT = 1 / float64(tps)
		}
	}}
}

// WithVerbose enables per-tick verbose logging.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptRun, func(ts *TestSim) {
		ts.SimLog = NewSimLog(v)
	}}
}

// WithScript queues held-key segments. After the script runs out no keys
// are held.
func WithScript(moves ...Move) SimOption {
	return SimOption{simOptRun, func(ts *TestSim) {
		ts.script = append(ts.script, moves...)
	}}
}

// WithWorldOption passes an option through to NewWorld.
func WithWorldOption(opt Option) SimOption {
	return SimOption{simOptRun, func(ts *TestSim) {
		ts.worldOpts = append(ts.worldOpts, opt)
	}}
}

// NewTestSim builds a TestSim in two ordered passes: the stage first, then
// the run settings. The world starts on the Playing screen.
func NewTestSim(opts ...SimOption) (*TestSim, error) {
	ts := &TestSim{
		Layout: Layout{
			Name:           "test",
			MaxTime:        20,
			PlayerMovement: Movement{Speed: 5.5, Rotation: 3},
		},
		SimLog:  NewSimLog(false),
		Screens: screen.NewState(screen.Playing),
		DT:      1.0 / 60,
	}
	for _, o := range opts {
		if o.kind == simOptLayout {
			o.fn(ts)
		}
	}
	for _, o := range opts {
		if o.kind == simOptRun {
			o.fn(ts)
		}
	}
	wopts := append([]Option{WithSimLog(ts.SimLog), WithScreens(ts.Screens)}, ts.worldOpts...)
	w, err := NewWorld(ts.Layout, wopts...)
	if err != nil {
		return nil, err
	}
	ts.World = w
	return ts, nil
}

// nextKeys pops the keys for the coming tick off the script.
func (ts *TestSim) nextKeys() KeySet {
	for ts.scriptPos < len(ts.script) {
		m := ts.script[ts.scriptPos]
		if ts.scriptAt < m.Ticks {
			ts.scriptAt++
			return m.Keys
		}
		ts.scriptPos++
		ts.scriptAt = 0
	}
	return 0
}

// RunTicks advances the simulation n ticks.
func (ts *TestSim) RunTicks(n int) {
	for i := 0; i < n; i++ {
		ts.runOneTick()
	}
}

// RunUntil advances the simulation up to maxTicks, stopping early if predicate
// returns true. Returns the tick at which the predicate was satisfied, or -1.
func (ts *TestSim) RunUntil(predicate func(*TestSim) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		ts.runOneTick()
		if predicate(ts) {
			return ts.World.Tick()
		}
	}
	return -1
}

// runOneTick mirrors a host frame: step, then apply the screen request.
func (ts *TestSim) runOneTick() {
	w := ts.World
	prevPhase := w.player.Life.Phase()
	prevModes := make([]GuardMode, len(w.guards))
	for i, g := range w.guards {
		prevModes[i] = g.State.Mode()
	}

	w.Step(ts.DT, ts.nextKeys())
	tick, stamp := w.Tick(), w.clock.Stamp()

	// --- Post-tick logging ---

	if now := w.player.Life.Phase(); now != prevPhase {
		ts.SimLog.Add(tick, stamp, w.player.Name, CatState, "change",
			fmt.Sprintf("%s → %s", prevPhase, now), 0)
	}
	for i, g := range w.guards {
		if now := g.State.Mode(); now != prevModes[i] {
			ts.SimLog.Add(tick, stamp, g.Name, CatState, "change",
				fmt.Sprintf("%s → %s", prevModes[i], now), 0)
		}
	}
	ts.SimLog.AddVerbose(tick, stamp, w.player.Name, CatMove, "position",
		fmt.Sprintf("(%.2f,%.2f)", w.player.Transform.Translation.X, w.player.Transform.Translation.Z), 0)

	if prev, changed := ts.Screens.Apply(); changed {
		ts.SimLog.Add(tick, stamp, "--", CatScreen, "change",
			fmt.Sprintf("%s → %s", prev, ts.Screens.Current()), 0)
	}
}

// CurrentTick returns the current simulation tick.
func (ts *TestSim) CurrentTick() int {
	return ts.World.Tick()
}

// Screen returns the screen the harness is on.
func (ts *TestSim) Screen() screen.Screen {
	return ts.Screens.Current()
}
