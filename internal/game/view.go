package game

import (
	"github.com/Garsondee/Ghost-Loop/internal/sim"
)

// view maps the ground plane onto the playfield. The camera looks down +Z,
// so +Z runs up the screen and +X runs to the left.
type view struct {
	cx, cy float64 // playfield centre, pixels
	focus  sim.Vec3
	scale  float64 // pixels per world unit
}

func (v view) toScreen(p sim.Vec3) (float32, float32) {
	return float32(v.cx - (p.X-v.focus.X)*v.scale), float32(v.cy - (p.Z-v.focus.Z)*v.scale)
}

// rect returns the top-left corner and size of r on screen.
func (v view) rect(r sim.Rect) (x, y, w, h float32) {
	x, y = v.toScreen(sim.V3(r.Center.X+r.HalfX, 0, r.Center.Z+r.HalfZ))
	return x, y, float32(2 * r.HalfX * v.scale), float32(2 * r.HalfZ * v.scale)
}

// length converts a world distance to pixels.
func (v view) length(d float64) float32 { return float32(d * v.scale) }
