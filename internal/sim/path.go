package sim

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrDegeneratePath means a path has fewer than two waypoints, so no
	// segment exists to interpolate along.
	ErrDegeneratePath = errors.New("path needs at least two waypoints")
	// ErrWaypointRange means a timestamp falls outside [0, loop period).
	ErrWaypointRange = errors.New("waypoint time outside the loop period")
	// ErrWaypointOrder means timestamps are not strictly ascending.
	ErrWaypointOrder = errors.New("waypoint times must be strictly ascending")
)

// Waypoint is one timed vertex of a patrol or ghost route.
type Waypoint struct {
	Time     float64
	Position Vec3
}

// Path is a closed, time-keyed patrol loop. The segment from the last
// waypoint back to the first closes the loop across the clock wrap.
type Path struct {
	points  []Waypoint
	maxTime float64
}

// NewPath validates a patrol loop. Bad layouts are rejected here, at spawn,
// so sampling never has to fail.
func NewPath(points []Waypoint, maxTime float64) (*Path, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrDegeneratePath, len(points))
	}
	for i, p := range points {
		if p.Time < 0 || p.Time >= maxTime || math.IsNaN(p.Time) {
			return nil, fmt.Errorf("%w: waypoint %d at t=%.3f, period %.3f", ErrWaypointRange, i, p.Time, maxTime)
		}
		if i > 0 && p.Time <= points[i-1].Time {
			return nil, fmt.Errorf("%w: waypoint %d at t=%.3f after t=%.3f", ErrWaypointOrder, i, p.Time, points[i-1].Time)
		}
	}
	own := make([]Waypoint, len(points))
	copy(own, points)
	return &Path{points: own, maxTime: maxTime}, nil
}

// MaxTime is the loop period the path was built for.
func (p *Path) MaxTime() float64 { return p.maxTime }

// Sample returns the interpolated position at loop time t and the yaw along
// the active segment. turned is false when the segment has no length (the
// guard is standing still) and the caller should keep its old yaw.
func (p *Path) Sample(t float64) (pos Vec3, yaw float64, turned bool) {
	pts := p.points
	// Past the last waypoint the active segment is the closing one.
	next, prev := pts[0], pts[len(pts)-1]
	for i, wp := range pts {
		if t < wp.Time {
			next = wp
			if i > 0 {
				prev = pts[i-1]
			}
			break
		}
	}

	span := next.Time - prev.Time
	if span <= 0 {
		span += p.maxTime
	}
	elapsed := t - prev.Time
	if elapsed < 0 {
		elapsed += p.maxTime
	}
	return interpolate(prev, next, elapsed, span)
}

// interpolate is shared by patrol and ghost sampling.
func interpolate(prev, next Waypoint, elapsed, span float64) (Vec3, float64, bool) {
	seg := next.Position.Sub(prev.Position)
	f := 0.0
	if span > 0 {
		f = elapsed / span
	}
	pos := prev.Position.Add(seg.Scale(f))
	if seg.X == 0 && seg.Z == 0 {
		return pos, 0, false
	}
	return pos, YawOf(seg), true
}
