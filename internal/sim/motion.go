package sim

// KeySet is the set of logical direction keys held this tick. Hosts map their
// physical keys (WASD, arrows, terminal runes) onto these bits.
type KeySet uint8

const (
	KeyUp KeySet = 1 << iota
	KeyDown
	KeyLeft
	KeyRight
)

// Has reports whether every key in k is held.
func (s KeySet) Has(k KeySet) bool { return s&k == k }

func (s KeySet) String() string {
	if s == 0 {
		return "-"
	}
	out := make([]byte, 0, 4)
	for _, k := range []struct {
		key KeySet
		c   byte
	}{{KeyUp, 'U'}, {KeyDown, 'D'}, {KeyLeft, 'L'}, {KeyRight, 'R'}} {
		if s.Has(k.key) {
			out = append(out, k.c)
		}
	}
	return string(out)
}

// MovementController holds the per-tick movement intent. Y is always zero.
type MovementController struct {
	Intent Vec3
}

// Intent turns held keys into a movement intent of length 0 or 1. Up moves
// toward +Z and Left toward +X, matching a camera that looks down +Z.
func Intent(keys KeySet) Vec3 {
	var v Vec3
	if keys.Has(KeyUp) {
		v.Z += 1
	}
	if keys.Has(KeyDown) {
		v.Z -= 1
	}
	if keys.Has(KeyLeft) {
		v.X += 1
	}
	if keys.Has(KeyRight) {
		v.X -= 1
	}
	// Diagonals get the same speed as straight moves.
	return v.Normalize()
}

// RecordInput overwrites the controller with this tick's intent. The input
// phase calls it at the start of every World.Step, so a key already held
// when play starts moves the player on the first tick. Screens without a
// world capture nothing.
func RecordInput(c *MovementController, keys KeySet) {
	c.Intent = Intent(keys)
}
