package sim

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Garsondee/Ghost-Loop/internal/screen"
)

// GuardSpec is one guard as authored in a stage.
type GuardSpec struct {
	Name      string
	Waypoints []Waypoint
}

// Layout is everything a stage spawns. It is read once by NewWorld.
type Layout struct {
	Name           string
	MaxTime        float64
	PlayerName     string
	PlayerSpawn    Vec3
	PlayerYaw      float64
	PlayerMovement Movement
	CameraOffset   Vec3
	Walls          []Rect
	Guards         []GuardSpec
	Furnace        *Rect
}

// Option configures a World.
type Option func(*World)

// WithLogger routes world events to a zap logger.
func WithLogger(l *zap.Logger) Option {
	return func(w *World) { w.log = l }
}

// WithScreens sets where screen transitions are requested.
func WithScreens(s ScreenRequester) Option {
	return func(w *World) { w.screens = s }
}

// WithAnimator sets the receiver of track changes.
func WithAnimator(a Animator) Option {
	return func(w *World) { w.animator = a }
}

// WithObjective replaces the furnace as the win condition.
func WithObjective(o Objective) Option {
	return func(w *World) { w.objective = o }
}

// WithMoveStyle picks direct or tank controls.
func WithMoveStyle(s MoveStyle) Option {
	return func(w *World) { w.style = s }
}

// WithMaxGhostSamples caps the ghost route buffer. Zero is unbounded.
func WithMaxGhostSamples(n int) Option {
	return func(w *World) { w.maxSamples = n }
}

// WithEntityPool draws IDs from a pool shared across worlds. Release hands
// them back, so an ID held over from an earlier world stops being Alive.
func WithEntityPool(p *EntityPool) Option {
	return func(w *World) {
		if p != nil {
			w.pool = p
		}
	}
}

// WithSimLog records events into an existing log.
func WithSimLog(sl *SimLog) Option {
	return func(w *World) { w.simLog = sl }
}

// Phase is one step of a tick. Phases always run in this order.
type Phase int

const (
	PhaseInput Phase = iota
	PhaseMove
	PhaseClock
	PhasePosition
	PhaseDetect
	PhaseTakedown
	PhaseObjective
	PhaseEscalate
	PhaseAnimate
	numPhases
)

func (p Phase) String() string {
	switch p {
	case PhaseInput:
		return "input"
	case PhaseMove:
		return "move"
	case PhaseClock:
		return "clock"
	case PhasePosition:
		return "position"
	case PhaseDetect:
		return "detect"
	case PhaseTakedown:
		return "takedown"
	case PhaseObjective:
		return "objective"
	case PhaseEscalate:
		return "escalate"
	case PhaseAnimate:
		return "animate"
	default:
		return "unknown"
	}
}

// World is one running stage. It is driven by a single goroutine through
// Step and holds no locks.
type World struct {
	log       *zap.Logger
	simLog    *SimLog
	screens   ScreenRequester
	animator  Animator
	objective Objective
	style     MoveStyle

	maxSamples int

	name      string
	pool      *EntityPool
	walls     []Wall
	player    Player
	guards    []Guard
	ghosts    []Ghost
	camera    Camera
	furnace   *Rect
	clock     Timeloop
	ghostPath *GhostPath
	recorder  GhostRecorder

	tick  int
	won   bool
	keys  KeySet
	from  Vec3
	moved bool

	phases [numPhases]func(dt float64)
}

// NewWorld spawns a stage. Layout errors such as a degenerate patrol path
// are fatal here so nothing fails mid-tick.
func NewWorld(layout Layout, opts ...Option) (*World, error) {
	clock, err := NewTimeloop(layout.MaxTime)
	if err != nil {
		return nil, fmt.Errorf("stage %q: %w", layout.Name, err)
	}
	w := &World{
		log:      zap.NewNop(),
		screens:  discardScreens{},
		animator: discardAnimator{},
		name:     layout.Name,
		pool:     NewEntityPool(),
		clock:    clock,
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.simLog == nil {
		w.simLog = NewSimLog(false)
	}

	for _, r := range layout.Walls {
		w.walls = append(w.walls, Wall{ID: w.pool.Create(), Rect: r})
	}
	for i, spec := range layout.Guards {
		path, err := NewPath(spec.Waypoints, clock.MaxTime)
		if err != nil {
			return nil, fmt.Errorf("stage %q: guard %d %q: %w", layout.Name, i, spec.Name, err)
		}
		g := Guard{ID: w.pool.Create(), Name: spec.Name, Path: path}
		g.Transform.Translation, g.Transform.Yaw, _ = path.Sample(clock.CurrentTime)
		w.guards = append(w.guards, g)
	}

	name := layout.PlayerName
	if name == "" {
		name = "Player"
	}
	w.player = Player{
		ID:        w.pool.Create(),
		Name:      name,
		Transform: Transform{Translation: layout.PlayerSpawn, Yaw: layout.PlayerYaw},
		Movement:  layout.PlayerMovement,
		Spawn:     layout.PlayerSpawn,
	}
	w.camera = Camera{Offset: layout.CameraOffset}
	w.camera.Follow(layout.PlayerSpawn)
	w.ghostPath = NewGhostPath(layout.PlayerSpawn, w.maxSamples)

	if layout.Furnace != nil {
		f := *layout.Furnace
		w.furnace = &f
		if w.objective == nil {
			w.objective = FurnaceObjective{Area: f}
		}
	}

	w.phases = [numPhases]func(float64){
		PhaseInput:     w.phaseInput,
		PhaseMove:      w.phaseMove,
		PhaseClock:     w.phaseClock,
		PhasePosition:  w.phasePosition,
		PhaseDetect:    w.phaseDetect,
		PhaseTakedown:  w.phaseTakedown,
		PhaseObjective: w.phaseObjective,
		PhaseEscalate:  w.phaseEscalate,
		PhaseAnimate:   w.phaseAnimate,
	}

	w.log.Info("stage spawned",
		zap.String("stage", layout.Name),
		zap.Int("walls", len(w.walls)),
		zap.Int("guards", len(w.guards)),
		zap.Int("entities", w.pool.Live()),
		zap.Float64("loop", clock.MaxTime),
		zap.Stringer("move_style", w.style))
	w.simLog.Add(0, 0, "--", CatStage, "spawn", layout.Name, float64(len(w.guards)))
	return w, nil
}

// Step advances the world by dt seconds with the keys held this tick.
func (w *World) Step(dt float64, keys KeySet) {
	w.tick++
	w.keys = keys
	for _, run := range w.phases {
		run(dt)
	}
}

// 1. INPUT: the controller is overwritten every tick.
func (w *World) phaseInput(float64) {
	RecordInput(&w.player.Controller, w.keys)
}

// 2. MOVE: integrate, follow with the camera and feed the recorder.
func (w *World) phaseMove(dt float64) {
	p := &w.player
	w.from = p.Transform.Translation
	w.moved = MovePlayer(p, w.walls, w.style, dt)
	w.camera.Follow(p.Transform.Translation)
	if w.recorder.Observe(w.ghostPath, p, w.from, w.moved, w.clock) {
		w.simLog.AddVerbose(w.tick, w.clock.Stamp(), p.Name, CatGhost, "sample",
			fmt.Sprintf("(%.2f, %.2f)", w.from.X, w.from.Z), float64(w.ghostPath.Len()))
	}
}

// 3. CLOCK: a wrap closes the loop on the route and spawns one ghost.
func (w *World) phaseClock(dt float64) {
	if !w.clock.Advance(dt) {
		return
	}
	pos := w.player.Transform.Translation
	w.ghostPath.Append(w.clock.Stamp(), pos)
	gh := Ghost{
		ID:         w.pool.Create(),
		Generation: w.clock.Generation,
		Transform:  Transform{Translation: w.player.Spawn},
	}
	w.ghosts = append(w.ghosts, gh)

	w.log.Info("loop wrapped",
		zap.Int("generation", w.clock.Generation),
		zap.Stringer("ghost", gh.ID),
		zap.Int("samples", w.ghostPath.Len()))
	w.simLog.Add(w.tick, w.clock.Stamp(), "--", CatClock, "wrap",
		fmt.Sprintf("generation %d, ghost %s", w.clock.Generation, gh.ID), float64(w.clock.Generation))
}

// 4. POSITION: guards follow their patrols, ghosts their loop of the route.
func (w *World) phasePosition(float64) {
	PatrolGuards(w.guards, w.clock)
	ReplayGhosts(w.ghosts, w.ghostPath, w.clock)
}

// 5. DETECT
func (w *World) phaseDetect(float64) {
	for _, d := range Detect(w.guards, &w.player, w.walls) {
		w.log.Info("player spotted",
			zap.String("guard", d.GuardName),
			zap.Float64("angle", d.Angle),
			zap.Int("generation", w.clock.Generation))
		w.simLog.Add(w.tick, w.clock.Stamp(), d.GuardName, CatDetect, "spotted",
			fmt.Sprintf("%s at %.2f rad", w.player.Name, d.Angle), d.Angle)
	}
}

// 6. TAKEDOWN
func (w *World) phaseTakedown(float64) {
	for _, td := range Takedowns(w.guards, &w.player) {
		w.log.Info("guard knocked down", zap.String("guard", td.GuardName))
		w.simLog.Add(w.tick, w.clock.Stamp(), td.GuardName, CatTakedown, "down",
			fmt.Sprintf("by %s at (%.2f, %.2f)", w.player.Name, td.Position.X, td.Position.Z), 0)
	}
}

// 7. OBJECTIVE: the win is requested once.
func (w *World) phaseObjective(float64) {
	if w.won || w.objective == nil || !w.player.Life.Alive() {
		return
	}
	pos := w.player.Transform.Translation
	if !w.objective.Reached(pos, w.clock) {
		return
	}
	w.won = true
	w.screens.Request(screen.Win)
	w.log.Info("objective reached", zap.Int("generation", w.clock.Generation))
	w.simLog.Add(w.tick, w.clock.Stamp(), w.player.Name, CatObjective, "reached",
		fmt.Sprintf("(%.2f, %.2f)", pos.X, pos.Z), float64(w.clock.Generation))
}

// 8. ESCALATE
func (w *World) phaseEscalate(dt float64) {
	p := &w.player
	if Escalate(p, dt, w.screens) {
		w.log.Info("player terminal", zap.Int("generation", w.clock.Generation))
		w.simLog.Add(w.tick, w.clock.Stamp(), p.Name, CatDeath, "terminal", screen.Hell.String(), 0)
	}
}

// 9. ANIMATE: report changed tracks, then settle them.
func (w *World) phaseAnimate(float64) {
	w.settle(w.player.ID, w.player.Name, &w.player.Action)
	for i := range w.guards {
		w.settle(w.guards[i].ID, w.guards[i].Name, &w.guards[i].Action)
	}
	for i := range w.ghosts {
		w.settle(w.ghosts[i].ID, "ghost", &w.ghosts[i].Action)
	}
}

func (w *World) settle(id EntityID, name string, a *Action) {
	if a.Current == a.Desired {
		return
	}
	w.animator.Transition(id, a.Current, a.Desired)
	w.simLog.AddVerbose(w.tick, w.clock.Stamp(), name, CatAnim, "track",
		a.Current.String()+" -> "+a.Desired.String(), 0)
	a.Current = a.Desired
}

// Release returns every ID the world handed out to its pool. The world must
// not be stepped afterwards.
func (w *World) Release() {
	for _, wl := range w.walls {
		w.pool.Destroy(wl.ID)
	}
	for _, g := range w.guards {
		w.pool.Destroy(g.ID)
	}
	for _, gh := range w.ghosts {
		w.pool.Destroy(gh.ID)
	}
	w.pool.Destroy(w.player.ID)
}

// Alive reports whether id still names an actor of a live world on this
// world's pool.
func (w *World) Alive(id EntityID) bool { return w.pool.Alive(id) }

// Name is the stage name.
func (w *World) Name() string { return w.name }

// Tick is the number of steps taken.
func (w *World) Tick() int { return w.tick }

// Clock returns the loop clock.
func (w *World) Clock() Timeloop { return w.clock }

// Player returns a copy of the player.
func (w *World) Player() Player { return w.player }

// Guards returns a copy of the guards.
func (w *World) Guards() []Guard { return append([]Guard(nil), w.guards...) }

// Ghosts returns a copy of the ghosts.
func (w *World) Ghosts() []Ghost { return append([]Ghost(nil), w.ghosts...) }

// Walls returns a copy of the walls.
func (w *World) Walls() []Wall { return append([]Wall(nil), w.walls...) }

// Camera returns the trailing camera.
func (w *World) Camera() Camera { return w.camera }

// GhostPath is the shared route buffer.
func (w *World) GhostPath() *GhostPath { return w.ghostPath }

// SimLog is the world's event log.
func (w *World) SimLog() *SimLog { return w.simLog }

// Won reports whether the objective was reached.
func (w *World) Won() bool { return w.won }

// Snapshot is a copy of everything a host draws.
type Snapshot struct {
	Stage   string
	Tick    int
	Clock   Timeloop
	Player  Player
	Guards  []Guard
	Ghosts  []Ghost
	Walls   []Wall
	Camera  Camera
	Furnace *Rect
	Won     bool
}

// Snapshot copies the render-relevant state.
func (w *World) Snapshot() Snapshot {
	s := Snapshot{
		Stage:  w.name,
		Tick:   w.tick,
		Clock:  w.clock,
		Player: w.player,
		Guards: w.Guards(),
		Ghosts: w.Ghosts(),
		Walls:  w.Walls(),
		Camera: w.camera,
		Won:    w.won,
	}
	if w.furnace != nil {
		f := *w.furnace
		s.Furnace = &f
	}
	return s
}
