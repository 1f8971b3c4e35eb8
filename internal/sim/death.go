package sim

import "github.com/Garsondee/Ghost-Loop/internal/screen"

// Escalate advances the player's death sequence by dt. While descending or
// terminal the player plays the die track. The tick that runs the countdown
// out moves the player to Terminal and asks for the Hell screen; it reports
// whether that happened.
func Escalate(p *Player, dt float64, screens ScreenRequester) bool {
	switch p.Life.Phase() {
	case Descending, Terminal:
		p.Action.Desired = TrackDie
	}
	if !p.Life.Tick(dt) {
		return false
	}
	if screens != nil {
		screens.Request(screen.Hell)
	}
	return true
}
