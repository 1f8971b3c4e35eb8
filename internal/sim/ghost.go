package sim

import "math"

// headingThreshold is the yaw change between ticks that makes the recorder
// drop a new sample while the player walks.
const headingThreshold = math.Pi / 10

// GhostPath is the session-wide, append-only record of the player's route.
// Samples are keyed on absolute session time (Timeloop.Stamp) and are never
// cleared between loops, so every ghost can read its own loop's slice.
type GhostPath struct {
	samples    []Waypoint
	maxSamples int  // 0 = unbounded
	trimmed    bool // oldest samples were dropped to honour maxSamples
}

// NewGhostPath starts a route at the player's spawn at time zero.
func NewGhostPath(spawn Vec3, maxSamples int) *GhostPath {
	return &GhostPath{
		samples:    []Waypoint{{Time: 0, Position: spawn}},
		maxSamples: maxSamples,
	}
}

// Append records a sample. Samples must arrive in time order; a sample at the
// same stamp as the newest one replaces its position and an older one is
// dropped. It reports whether the buffer grew.
func (g *GhostPath) Append(stamp float64, pos Vec3) bool {
	if n := len(g.samples); n > 0 {
		last := &g.samples[n-1]
		if stamp < last.Time {
			return false
		}
		if stamp == last.Time {
			last.Position = pos
			return false
		}
	}
	g.samples = append(g.samples, Waypoint{Time: stamp, Position: pos})
	if g.maxSamples > 0 && len(g.samples) > g.maxSamples {
		drop := len(g.samples) - g.maxSamples
		g.samples = append(g.samples[:0], g.samples[drop:]...)
		g.trimmed = true
	}
	return true
}

// Len is the number of stored samples.
func (g *GhostPath) Len() int { return len(g.samples) }

// Samples returns a copy of the stored samples.
func (g *GhostPath) Samples() []Waypoint {
	out := make([]Waypoint, len(g.samples))
	copy(out, g.samples)
	return out
}

// Sample interpolates the route at an absolute stamp. Unlike a patrol loop
// the route never wraps onto its own end: before the first sample the
// segment starts from a synthetic origin waypoint at time zero, and after
// the newest sample the ghost holds still.
func (g *GhostPath) Sample(key float64) (Vec3, float64, bool) {
	s := g.samples
	if len(s) == 0 {
		return Vec3{}, 0, false
	}
	for i, wp := range s {
		if key < wp.Time {
			prev := Waypoint{}
			switch {
			case i > 0:
				prev = s[i-1]
			case g.trimmed:
				// History before the oldest kept sample is gone.
				return wp.Position, 0, false
			}
			return interpolate(prev, wp, key-prev.Time, wp.Time-prev.Time)
		}
	}
	return s[len(s)-1].Position, 0, false
}

// GhostRecorder samples the player's heading changes into a GhostPath.
type GhostRecorder struct {
	primed    bool
	lastYaw   float64
	wasMoving bool
}

// Observe is called once per tick after the player moved; from is where the
// player stood before the move, which is where they were at clock's stamp.
// It appends a sample when the player, while walking, turned by more than
// π/10 since the previous tick, and when the player starts or stops moving
// so that pauses replay exactly.
func (r *GhostRecorder) Observe(path *GhostPath, p *Player, from Vec3, moving bool, clock Timeloop) bool {
	yaw := p.Transform.Yaw
	record := false
	if r.primed {
		walking := p.Action.Desired == TrackWalk
		turned := walking && yawDelta(yaw, r.lastYaw) > headingThreshold
		record = turned || moving != r.wasMoving
	}
	r.primed, r.lastYaw, r.wasMoving = true, yaw, moving
	if !record {
		return false
	}
	return path.Append(clock.Stamp(), from)
}

// Reset forgets the previous tick, for a fresh stage.
func (r *GhostRecorder) Reset() {
	*r = GhostRecorder{}
}

// replayKey maps the live clock onto the slice of the route a ghost replays.
// The ghost spawned into generation g replays loop g-1.
func replayKey(g Ghost, clock Timeloop) float64 {
	return clock.CurrentTime + float64(g.Generation-1)*clock.MaxTime
}

// ReplayGhosts positions every ghost from the shared route.
func ReplayGhosts(ghosts []Ghost, path *GhostPath, clock Timeloop) {
	for i := range ghosts {
		gh := &ghosts[i]
		pos, yaw, moved := path.Sample(replayKey(*gh, clock))
		gh.Transform.Translation = pos
		if moved {
			gh.Transform.Yaw = yaw
			gh.Action.Desired = TrackWalk
		} else {
			gh.Action.Desired = TrackIdle
		}
	}
}
