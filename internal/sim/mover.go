package sim

import (
	"fmt"
	"strings"
)

// walkThreshold is the intent length above which an actor counts as walking
// and turns to face its movement.
const walkThreshold = 0.5

// MoveStyle selects how intent becomes motion.
type MoveStyle int

const (
	// MoveDirect slides the player along the intent in world space.
	MoveDirect MoveStyle = iota
	// MoveTank turns with left/right and walks along the facing with up/down.
	MoveTank
)

func (s MoveStyle) String() string {
	switch s {
	case MoveDirect:
		return "direct"
	case MoveTank:
		return "tank"
	default:
		return "unknown"
	}
}

// ParseMoveStyle reads a config value. Empty means direct.
func ParseMoveStyle(s string) (MoveStyle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "direct":
		return MoveDirect, nil
	case "tank":
		return MoveTank, nil
	default:
		return MoveDirect, fmt.Errorf("unknown move style %q", s)
	}
}

// MovePlayer integrates one tick of the player's intent. A candidate position
// strictly inside any wall rejects the whole move; there is no sliding. In
// direct style a rejected move keeps the old yaw too. Tank style turns
// before it steps, so the turn survives a blocked step. It reports whether
// the translation changed. Players past Alive stay put.
func MovePlayer(p *Player, walls []Wall, style MoveStyle, dt float64) bool {
	if !p.Life.Alive() || !(dt > 0) {
		return false
	}
	intent := p.Controller.Intent
	walking := intent.Length() > walkThreshold

	var candidate Vec3
	yaw := p.Transform.Yaw
	switch style {
	case MoveTank:
		yaw = normalizeAngle(yaw + p.Movement.Rotation*intent.X*dt)
		p.Transform.Yaw = yaw
		step := p.Transform.Forward().Scale(p.Movement.Speed * intent.Z * dt)
		candidate = p.Transform.Translation.Add(step)
	default:
		candidate = p.Transform.Translation.Add(intent.Scale(p.Movement.Speed * dt))
		if walking {
			yaw = YawOf(intent)
		}
	}

	if walking {
		p.Action.Desired = TrackWalk
	} else {
		p.Action.Desired = TrackIdle
	}

	if candidate == p.Transform.Translation || insideAnyWall(candidate, walls) {
		return false
	}
	p.Transform.Translation = candidate
	p.Transform.Yaw = yaw
	return true
}

// Camera trails the player at a fixed offset.
type Camera struct {
	Translation Vec3
	Offset      Vec3
}

// Follow snaps the camera to target plus its offset.
func (c *Camera) Follow(target Vec3) {
	c.Translation = target.Add(c.Offset)
}

// Focus is the ground point the camera is tracking.
func (c Camera) Focus() Vec3 {
	return c.Translation.Sub(c.Offset)
}
