package sim

import "github.com/Garsondee/Ghost-Loop/internal/screen"

//go:generate go tool mockgen -destination=./mocks/hooks_mock.go -package=mocks . ScreenRequester,Animator

// ScreenRequester receives screen transitions asked for by the core. The
// host applies them between ticks.
type ScreenRequester interface {
	Request(next screen.Screen)
}

// Animator is told whenever an actor's wanted track changes. Blending is
// the host's business.
type Animator interface {
	Transition(id EntityID, from, to Track)
}

type discardScreens struct{}

func (discardScreens) Request(screen.Screen) {}

type discardAnimator struct{}

func (discardAnimator) Transition(EntityID, Track, Track) {}
