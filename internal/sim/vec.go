package sim

import "math"

// Vec3 is a point or direction in world space. Everything in the core lives
// on the X/Z ground plane; Y is carried through untouched.
type Vec3 struct {
	X, Y, Z float64
}

// V3 is shorthand for a Vec3 literal.
func V3(x, y, z float64) Vec3 { return Vec3{X: x, Y: y, Z: z} }

func (v Vec3) Add(o Vec3) Vec3             { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3             { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3        { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Dot(o Vec3) float64          { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }
func (v Vec3) Length() float64             { return math.Sqrt(v.Dot(v)) }
func (v Vec3) IsZero() bool                { return v.X == 0 && v.Y == 0 && v.Z == 0 }
func (v Vec3) Lerp(o Vec3, t float64) Vec3 { return v.Add(o.Sub(v).Scale(t)) }

// Normalize returns the unit vector along v, or the zero vector when v has
// no length.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l < 1e-12 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// AngleBetween returns the unsigned angle in radians between a and b. Zero
// vectors have no direction; the result for them is π so they never fall
// inside a cone.
func AngleBetween(a, b Vec3) float64 {
	la, lb := a.Length(), b.Length()
	if la < 1e-12 || lb < 1e-12 {
		return math.Pi
	}
	c := a.Dot(b) / (la * lb)
	if c > 1 {
		c = 1
	} else if c < -1 {
		c = -1
	}
	return math.Acos(c)
}

// Forward returns the unit facing vector for a yaw. Yaw 0 faces +Z and
// positive yaw turns toward +X.
func Forward(yaw float64) Vec3 {
	return Vec3{X: math.Sin(yaw), Z: math.Cos(yaw)}
}

// YawOf returns the yaw that faces along dir on the ground plane.
func YawOf(dir Vec3) float64 {
	return math.Atan2(dir.X, dir.Z)
}

// normalizeAngle wraps an angle to [-pi, pi].
func normalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// yawDelta is the unsigned shortest turn between two yaws.
func yawDelta(a, b float64) float64 {
	return math.Abs(normalizeAngle(a - b))
}
