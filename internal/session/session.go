// Package session runs the screen flow around a stage: title, play, hell
// and win, respawning the world each time play starts. Hosts feed it input
// and draw what it exposes; it knows nothing about windows or terminals.
package session

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Garsondee/Ghost-Loop/internal/screen"
	"github.com/Garsondee/Ghost-Loop/internal/script"
	"github.com/Garsondee/Ghost-Loop/internal/sim"
	"github.com/Garsondee/Ghost-Loop/internal/stage"
)

// Options tune every world the session spawns.
type Options struct {
	MoveStyle       sim.MoveStyle
	MaxGhostSamples int
	Animator        sim.Animator
	VerboseLog      bool
}

// Input is one tick of host input.
type Input struct {
	Keys    sim.KeySet
	Confirm bool // edge-triggered: advance past a title/hell/win screen
}

// Stats counts what happened in the session so far.
type Stats struct {
	Attempts int
	Deaths   int
	Wins     int
}

// Session owns the screen state and the current world.
type Session struct {
	id      uuid.UUID
	log     *zap.Logger
	stage   *stage.Stage
	opts    Options
	screens *screen.State
	pool    *sim.EntityPool

	world     *sim.World
	objective *script.Objective
	listeners []func(sim.SimLogEntry)
	stats     Stats
}

// New starts a session on the title screen.
func New(st *stage.Stage, log *zap.Logger, opts Options) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	id := uuid.New()
	return &Session{
		id:      id,
		log:     log.With(zap.String("session", id.String())),
		stage:   st,
		opts:    opts,
		screens: screen.NewState(screen.Title),
		pool:    sim.NewEntityPool(),
	}
}

func (s *Session) ID() uuid.UUID         { return s.id }
func (s *Session) Screen() screen.Screen { return s.screens.Current() }
func (s *Session) Stats() Stats          { return s.stats }
func (s *Session) Stage() *stage.Stage   { return s.stage }
func (s *Session) Logger() *zap.Logger   { return s.log }

// World is the current world, or the last one after play ended. It is nil
// before the first play.
func (s *Session) World() *sim.World { return s.world }

// Alive reports whether id names an actor of the current world. IDs from
// earlier worlds are released on respawn and report false.
func (s *Session) Alive(id sim.EntityID) bool { return s.pool.Alive(id) }

// Subscribe receives the SimLog entries of every world spawned from now on.
func (s *Session) Subscribe(fn func(sim.SimLogEntry)) {
	s.listeners = append(s.listeners, fn)
}

// Update runs one host tick: screens that wait for the player react to
// Confirm, and Playing steps the world. A pending screen change is applied
// at the end of the tick.
func (s *Session) Update(dt float64, in Input) error {
	switch s.screens.Current() {
	case screen.Title, screen.Hell:
		if in.Confirm {
			s.screens.Request(screen.Playing)
		}
	case screen.Win:
		if in.Confirm {
			s.screens.Request(screen.Title)
		}
	case screen.Playing:
		if s.world != nil {
			s.world.Step(dt, in.Keys)
		}
	}

	prev, changed := s.screens.Apply()
	if !changed {
		return nil
	}
	now := s.screens.Current()
	s.log.Info("screen changed", zap.Stringer("from", prev), zap.Stringer("to", now))
	switch now {
	case screen.Playing:
		return s.spawn()
	case screen.Hell:
		s.stats.Deaths++
	case screen.Win:
		s.stats.Wins++
	}
	return nil
}

// spawn builds a fresh world, so the clock and ghost route start over.
func (s *Session) spawn() error {
	s.closeObjective()
	if s.world != nil {
		s.world.Release()
	}

	sl := sim.NewSimLog(s.opts.VerboseLog)
	for _, fn := range s.listeners {
		sl.Subscribe(fn)
	}
	opts := []sim.Option{
		sim.WithLogger(s.log),
		sim.WithScreens(s.screens),
		sim.WithMoveStyle(s.opts.MoveStyle),
		sim.WithMaxGhostSamples(s.opts.MaxGhostSamples),
		sim.WithSimLog(sl),
		sim.WithEntityPool(s.pool),
	}
	if s.opts.Animator != nil {
		opts = append(opts, sim.WithAnimator(s.opts.Animator))
	}
	if src := s.stage.Objective; src != "" {
		obj, err := script.NewObjective(src, s.log)
		if err != nil {
			return fmt.Errorf("stage %q: %w", s.stage.Name, err)
		}
		s.objective = obj
		opts = append(opts, sim.WithObjective(obj))
	}

	w, err := sim.NewWorld(s.stage.Layout(), opts...)
	if err != nil {
		s.closeObjective()
		return fmt.Errorf("spawn: %w", err)
	}
	s.world = w
	s.stats.Attempts++
	return nil
}

func (s *Session) closeObjective() {
	if s.objective != nil {
		s.objective.Close()
		s.objective = nil
	}
}

// Close releases the objective script VM.
func (s *Session) Close() {
	s.closeObjective()
}
