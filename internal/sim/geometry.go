package sim

import "math"

// Rect is an axis-aligned rectangle on the ground plane, stored as a centre
// and half-extents.
type Rect struct {
	Center Vec3
	HalfX  float64
	HalfZ  float64
}

// Contains reports whether p lies strictly inside r. Points on the border are
// outside, so a mover may stand flush against a wall.
func (r Rect) Contains(p Vec3) bool {
	return math.Abs(p.X-r.Center.X) < r.HalfX && math.Abs(p.Z-r.Center.Z) < r.HalfZ
}

// Corners returns the four corners in winding order starting at (+x,+z).
func (r Rect) Corners() [4]Vec3 {
	c := r.Center
	return [4]Vec3{
		{X: c.X + r.HalfX, Z: c.Z + r.HalfZ},
		{X: c.X - r.HalfX, Z: c.Z + r.HalfZ},
		{X: c.X - r.HalfX, Z: c.Z - r.HalfZ},
		{X: c.X + r.HalfX, Z: c.Z - r.HalfZ},
	}
}

// Edges returns the four border segments built from Corners.
func (r Rect) Edges() [4][2]Vec3 {
	k := r.Corners()
	return [4][2]Vec3{
		{k[0], k[1]},
		{k[1], k[2]},
		{k[2], k[3]},
		{k[3], k[0]},
	}
}

// Wall is a static rectangular obstacle. It blocks both movement and sight.
type Wall struct {
	ID EntityID
	Rect
}

// Occludes reports whether the wall hides b from a: the segment crosses one
// of the wall's edges, or one of its endpoints is buried inside the wall.
func (w Wall) Occludes(a, b Vec3) bool {
	if w.Contains(a) || w.Contains(b) {
		return true
	}
	for _, e := range w.Edges() {
		if SegmentsIntersect(a, b, e[0], e[1]) {
			return true
		}
	}
	return false
}

// SegmentsIntersect tests segment a-b against segment c-d on the X/Z plane
// with the parametric cross-ratio form: both parameters must lie in [0,1].
// Parallel and collinear pairs have no unique crossing and report false.
func SegmentsIntersect(a, b, c, d Vec3) bool {
	den := (d.Z-c.Z)*(b.X-a.X) - (d.X-c.X)*(b.Z-a.Z)
	if math.Abs(den) < 1e-12 {
		return false
	}
	ua := ((d.X-c.X)*(a.Z-c.Z) - (d.Z-c.Z)*(a.X-c.X)) / den
	ub := ((b.X-a.X)*(a.Z-c.Z) - (b.Z-a.Z)*(a.X-c.X)) / den
	if math.IsNaN(ua) || math.IsNaN(ub) || math.IsInf(ua, 0) || math.IsInf(ub, 0) {
		return false
	}
	return ua >= 0 && ua <= 1 && ub >= 0 && ub <= 1
}

// insideAnyWall reports whether p is strictly inside any wall.
func insideAnyWall(p Vec3, walls []Wall) bool {
	for _, w := range walls {
		if w.Contains(p) {
			return true
		}
	}
	return false
}
