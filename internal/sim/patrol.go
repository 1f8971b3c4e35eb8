package sim

// PatrolGuards puts every patrolling guard where its path says it is at the
// current loop time. Guards that are shooting or down hold their ground. A
// guard on a zero-length segment keeps its last yaw and idles.
func PatrolGuards(guards []Guard, clock Timeloop) {
	for i := range guards {
		g := &guards[i]
		if g.State.Mode() != GuardPatrolling || g.Path == nil {
			continue
		}
		pos, yaw, turned := g.Path.Sample(clock.CurrentTime)
		g.Transform.Translation = pos
		if turned {
			g.Transform.Yaw = yaw
			g.Action.Desired = TrackWalk
		} else {
			g.Action.Desired = TrackIdle
		}
	}
}
