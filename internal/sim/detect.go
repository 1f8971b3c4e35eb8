package sim

import "math"

const (
	// HalfCone is half of a guard's field of view. Hosts draw the same fan.
	HalfCone = math.Pi / 4
	// descendDelay is how long the player lingers between being shot and the
	// terminal screen.
	descendDelay = 0.5
)

// Sight is the result of one guard looking at one point.
type Sight struct {
	InCone   bool
	Angle    float64 // between the guard's forward and the target, radians
	Blocked  bool
	Blockers []EntityID // every wall hiding the target
}

// Sees reports whether the target is in the cone with a clear line.
func (s Sight) Sees() bool { return s.InCone && !s.Blocked }

// Look checks whether a guard can see a point. Every wall is examined so
// the result lists all blockers, not just the first.
func Look(g *Guard, target Vec3, walls []Wall) Sight {
	from := g.Transform.Translation
	diff := target.Sub(from)
	diff.Y = 0
	s := Sight{Angle: AngleBetween(diff, g.Transform.Forward())}
	s.InCone = s.Angle < HalfCone
	for _, w := range walls {
		if w.Occludes(from, target) {
			s.Blocked = true
			s.Blockers = append(s.Blockers, w.ID)
		}
	}
	return s
}

// Detection records a guard spotting the player.
type Detection struct {
	Guard     EntityID
	GuardName string
	Player    EntityID
	Angle     float64
	Position  Vec3 // player's position when spotted
}

// Detect runs every patrolling guard's sight check against a living player.
// A guard that sees the player turns to face them and starts shooting, and
// the player drops straight into the descending countdown. All guards are
// checked, so several can open fire on the same tick.
func Detect(guards []Guard, p *Player, walls []Wall) []Detection {
	if !p.Life.Alive() {
		return nil
	}
	var out []Detection
	target := p.Transform.Translation
	for i := range guards {
		g := &guards[i]
		if g.State.Mode() != GuardPatrolling {
			continue
		}
		sight := Look(g, target, walls)
		if !sight.Sees() {
			continue
		}
		if err := g.State.Shoot(p.ID); err != nil {
			continue
		}
		g.Transform.Yaw = YawOf(target.Sub(g.Transform.Translation))
		g.Action.Desired = TrackShoot
		out = append(out, Detection{
			Guard:     g.ID,
			GuardName: g.Name,
			Player:    p.ID,
			Angle:     sight.Angle,
			Position:  target,
		})
	}
	if len(out) > 0 && p.Life.Alive() {
		// Detect then Descend cannot fail from Alive.
		_ = p.Life.Detect()
		_ = p.Life.Descend(descendDelay)
		p.Action.Desired = TrackDie
	}
	return out
}
