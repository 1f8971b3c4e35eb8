// Package screen holds the game's top-level screen states and the one-slot
// request mailbox that gameplay code uses to ask for a transition.
package screen

// Screen is one of the game's top-level states.
type Screen int

const (
	Title Screen = iota
	Playing
	Hell // the player was caught
	Win  // the player reached the furnace
)

func (s Screen) String() string {
	switch s {
	case Title:
		return "title"
	case Playing:
		return "playing"
	case Hell:
		return "hell"
	case Win:
		return "win"
	default:
		return "unknown"
	}
}

// State tracks the current screen plus at most one pending transition.
// Systems only call Request; the host calls Apply between ticks so a
// transition never lands in the middle of a simulation step.
type State struct {
	current Screen
	next    Screen
	pending bool
}

// NewState starts on the given screen with nothing pending.
func NewState(initial Screen) *State {
	return &State{current: initial}
}

// Current returns the active screen.
func (s *State) Current() Screen { return s.current }

// Pending reports the requested next screen, if any.
func (s *State) Pending() (Screen, bool) { return s.next, s.pending }

// Request records next as the screen to enter at the next Apply. A later
// request in the same tick replaces an earlier one.
func (s *State) Request(next Screen) {
	s.next = next
	s.pending = true
}

// Apply performs the pending transition. It returns the screen that was left
// and true when the current screen changed.
func (s *State) Apply() (Screen, bool) {
	if !s.pending {
		return s.current, false
	}
	s.pending = false
	if s.next == s.current {
		return s.current, false
	}
	prev := s.current
	s.current = s.next
	return prev, true
}
