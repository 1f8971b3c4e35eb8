package sim

// Objective decides when the stage is won.
type Objective interface {
	Reached(pos Vec3, clock Timeloop) bool
}

// FurnaceObjective is won by stepping into the furnace.
type FurnaceObjective struct {
	Area Rect
}

func (f FurnaceObjective) Reached(pos Vec3, _ Timeloop) bool {
	return f.Area.Contains(pos)
}

// ObjectiveFunc adapts a plain function.
type ObjectiveFunc func(pos Vec3, clock Timeloop) bool

func (f ObjectiveFunc) Reached(pos Vec3, clock Timeloop) bool { return f(pos, clock) }
