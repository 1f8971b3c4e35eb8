package sim

// takedownReach is how close the player must get to knock a guard out.
const takedownReach = 1.0

// Takedown is a guard knocked out by the player.
type Takedown struct {
	Guard     EntityID
	GuardName string
	Position  Vec3
}

// Takedowns lets a living player knock out every standing guard within
// reach. A downed guard is tipped over, stops patrolling and stops looking.
func Takedowns(guards []Guard, p *Player) []Takedown {
	if !p.Life.Alive() {
		return nil
	}
	var out []Takedown
	for i := range guards {
		g := &guards[i]
		if !g.State.Active() {
			continue
		}
		d := g.Transform.Translation.Sub(p.Transform.Translation)
		d.Y = 0
		if d.Length() >= takedownReach {
			continue
		}
		if err := g.State.KnockDown(); err != nil {
			continue
		}
		g.Transform.Fallen = true
		g.Action.Desired = TrackDie
		out = append(out, Takedown{Guard: g.ID, GuardName: g.Name, Position: g.Transform.Translation})
	}
	if len(out) > 0 {
		p.Action.Desired = TrackPunch
	}
	return out
}
