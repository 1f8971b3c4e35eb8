package sim

import (
	"errors"
	"fmt"
)

// ErrIllegalTransition is returned when a state machine is asked to make a
// move its current state does not allow.
var ErrIllegalTransition = errors.New("illegal state transition")

// Track is the animation track an actor should be playing. The blending
// itself belongs to the host; the core only picks the track.
type Track int

const (
	TrackIdle Track = iota
	TrackWalk
	TrackShoot
	TrackDie
	TrackPunch
)

func (t Track) String() string {
	switch t {
	case TrackIdle:
		return "idle"
	case TrackWalk:
		return "walk"
	case TrackShoot:
		return "shoot"
	case TrackDie:
		return "die"
	case TrackPunch:
		return "punch"
	default:
		return "unknown"
	}
}

// Action pairs the track currently shown with the one gameplay wants next.
type Action struct {
	Current Track
	Desired Track
}

// Transform is the slice of an engine transform the core reads and writes.
type Transform struct {
	Translation Vec3
	Yaw         float64
	Scale       Vec3
	Fallen      bool // knocked-down actors are drawn lying on their side
}

// Forward is the actor's facing vector.
func (t Transform) Forward() Vec3 { return Forward(t.Yaw) }

// Movement holds per-actor speed constants, fixed at spawn.
type Movement struct {
	Speed    float64 // units per second
	Rotation float64 // radians per second, tank style only
}

// LifePhase is the player's position in the death escalation.
type LifePhase int

const (
	Alive LifePhase = iota
	Detected
	Descending
	Terminal
)

func (p LifePhase) String() string {
	switch p {
	case Alive:
		return "alive"
	case Detected:
		return "detected"
	case Descending:
		return "descending"
	case Terminal:
		return "terminal"
	default:
		return "unknown"
	}
}

// LifeState is the player's tagged death state. Countdown is only meaningful
// while Descending.
type LifeState struct {
	phase     LifePhase
	countdown float64
}

func (l LifeState) Phase() LifePhase   { return l.phase }
func (l LifeState) Alive() bool        { return l.phase == Alive }
func (l LifeState) Countdown() float64 { return l.countdown }

func (l *LifeState) transition(from, to LifePhase) error {
	if l.phase != from {
		return fmt.Errorf("%w: %s -> %s (in %s)", ErrIllegalTransition, from, to, l.phase)
	}
	l.phase = to
	return nil
}

// Detect marks a living player as spotted.
func (l *LifeState) Detect() error {
	return l.transition(Alive, Detected)
}

// Descend starts the countdown toward the terminal screen.
func (l *LifeState) Descend(countdown float64) error {
	if err := l.transition(Detected, Descending); err != nil {
		return err
	}
	l.countdown = countdown
	return nil
}

// Tick burns dt off the countdown and reports whether this call reached
// Terminal. It is a no-op outside Descending and for a bad dt.
func (l *LifeState) Tick(dt float64) bool {
	if l.phase != Descending || !(dt >= 0) {
		return false
	}
	l.countdown -= dt
	if l.countdown > 0 {
		return false
	}
	l.phase = Terminal
	return true
}

// GuardMode is a guard's behaviour state.
type GuardMode int

const (
	GuardPatrolling GuardMode = iota
	GuardShooting
	GuardDown
)

func (m GuardMode) String() string {
	switch m {
	case GuardPatrolling:
		return "patrolling"
	case GuardShooting:
		return "shooting"
	case GuardDown:
		return "down"
	default:
		return "unknown"
	}
}

// GuardState is a guard's tagged behaviour state. Target is set while
// Shooting.
type GuardState struct {
	mode   GuardMode
	target EntityID
}

func (s GuardState) Mode() GuardMode  { return s.mode }
func (s GuardState) Target() EntityID { return s.target }
func (s GuardState) Active() bool     { return s.mode != GuardDown }

// Shoot switches a patrolling guard onto a target.
func (s *GuardState) Shoot(target EntityID) error {
	if s.mode != GuardPatrolling {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, s.mode, GuardShooting)
	}
	s.mode = GuardShooting
	s.target = target
	return nil
}

// KnockDown takes a standing guard out of play for the rest of the stage.
func (s *GuardState) KnockDown() error {
	if s.mode == GuardDown {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, s.mode, GuardDown)
	}
	s.mode = GuardDown
	s.target = 0
	return nil
}

// Player is the controllable actor.
type Player struct {
	ID         EntityID
	Name       string
	Transform  Transform
	Movement   Movement
	Controller MovementController
	Action     Action
	Life       LifeState
	Spawn      Vec3
}

// Guard is a patrolling NPC that can spot the player.
type Guard struct {
	ID        EntityID
	Name      string
	Transform Transform
	Path      *Path
	State     GuardState
	Action    Action
}

// Ghost replays the player's recorded route for one earlier loop. Its
// transform is recomputed every tick and never integrated.
type Ghost struct {
	ID         EntityID
	Generation int // clock generation the ghost was spawned into
	Transform  Transform
	Action     Action
}
