package game

import (
	"go.uber.org/zap"

	"github.com/Garsondee/Ghost-Loop/internal/sim"
)

// trackChange is the last track an actor switched to and the frame it did.
type trackChange struct {
	track sim.Track
	frame int
}

// Animations stands in for a skeletal blender: it remembers when each actor
// changed track so the renderer can flash a punch or a muzzle.
type Animations struct {
	log    *zap.Logger
	frame  int
	tracks map[sim.EntityID]trackChange
}

// NewAnimations creates an empty animation registry.
func NewAnimations(log *zap.Logger) *Animations {
	if log == nil {
		log = zap.NewNop()
	}
	return &Animations{log: log, tracks: make(map[sim.EntityID]trackChange)}
}

// Transition implements sim.Animator.
func (a *Animations) Transition(id sim.EntityID, from, to sim.Track) {
	a.tracks[id] = trackChange{track: to, frame: a.frame}
	a.log.Debug("track", zap.Stringer("entity", id), zap.Stringer("from", from), zap.Stringer("to", to))
}

// Advance moves the registry one rendered frame forward.
func (a *Animations) Advance() { a.frame++ }

// Age reports how many frames ago id started playing track. ok is false if
// id is on another track or never changed.
func (a *Animations) Age(id sim.EntityID, track sim.Track) (frames int, ok bool) {
	c, found := a.tracks[id]
	if !found || c.track != track {
		return 0, false
	}
	return a.frame - c.frame, true
}

// Prune forgets every actor alive no longer reports as live. Hosts call it
// when the session respawns its world.
func (a *Animations) Prune(alive func(sim.EntityID) bool) {
	for id := range a.tracks {
		if !alive(id) {
			delete(a.tracks, id)
		}
	}
}
