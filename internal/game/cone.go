package game

import (
	"math"

	"github.com/Garsondee/Ghost-Loop/internal/sim"
)

const (
	coneRange = 12.0 // drawn length of a sight fan, world units
	coneSteps = 24
)

// rayRectHitT tests segment o→e against an axis-aligned rectangle on the
// ground plane using the slab method. It returns the entry fraction along
// the segment in [0,1].
func rayRectHitT(o, e sim.Vec3, r sim.Rect) (float64, bool) {
	minX, maxX := r.Center.X-r.HalfX, r.Center.X+r.HalfX
	minZ, maxZ := r.Center.Z-r.HalfZ, r.Center.Z+r.HalfZ
	dx := e.X - o.X
	dz := e.Z - o.Z

	tMin := 0.0
	tMax := 1.0

	// X slab
	if math.Abs(dx) < 1e-12 {
		if o.X < minX || o.X > maxX {
			return 0, false
		}
	} else {
		t1 := (minX - o.X) / dx
		t2 := (maxX - o.X) / dx
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return 0, false
		}
	}

	// Z slab
	if math.Abs(dz) < 1e-12 {
		if o.Z < minZ || o.Z > maxZ {
			return 0, false
		}
	} else {
		t1 := (minZ - o.Z) / dz
		t2 := (maxZ - o.Z) / dz
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return 0, false
		}
	}
	return tMin, true
}

// clipRay returns the end of a ray from o along yaw, stopped just short of
// the nearest wall.
func clipRay(o sim.Vec3, yaw, length float64, walls []sim.Wall) sim.Vec3 {
	e := o.Add(sim.Forward(yaw).Scale(length))
	best := 1.0
	for _, w := range walls {
		if t, hit := rayRectHitT(o, e, w.Rect); hit && t < best {
			best = t
		}
	}
	if best < 1 {
		return o.Lerp(e, math.Max(0, best-0.01))
	}
	return e
}

// conePoints is the outline of a guard's sight fan: the apex followed by
// coneSteps+1 points along the clipped arc.
func conePoints(g sim.Guard, walls []sim.Wall) []sim.Vec3 {
	o := g.Transform.Translation
	pts := make([]sim.Vec3, 0, coneSteps+2)
	pts = append(pts, o)
	start := g.Transform.Yaw - sim.HalfCone
	step := 2 * sim.HalfCone / coneSteps
	for i := 0; i <= coneSteps; i++ {
		pts = append(pts, clipRay(o, start+step*float64(i), coneRange, walls))
	}
	return pts
}
