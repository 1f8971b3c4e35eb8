// Package stage loads stage layouts from YAML and turns them into the
// simulation's spawn data.
package stage

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Garsondee/Ghost-Loop/internal/sim"
)

//go:embed default.yaml
var defaultStage []byte

// ErrInvalid marks a stage file that parsed but cannot be spawned.
var ErrInvalid = errors.New("invalid stage")

// Vec is a [x, y, z] triple.
type Vec [3]float64

func (v Vec) sim() sim.Vec3 { return sim.V3(v[0], v[1], v[2]) }

// Box is a centre plus a scale; the scale's X and Z are half-extents on
// the ground plane.
type Box struct {
	Center Vec `yaml:"center"`
	Scale  Vec `yaml:"scale"`
}

func (b Box) rect() sim.Rect {
	return sim.Rect{Center: b.Center.sim(), HalfX: b.Scale[0], HalfZ: b.Scale[2]}
}

// Waypoint is one timed point of a guard's patrol.
type Waypoint struct {
	Time float64 `yaml:"time"`
	At   Vec     `yaml:"at"`
}

// Guard is a patrolling guard.
type Guard struct {
	Name string     `yaml:"name"`
	Path []Waypoint `yaml:"path"`
}

// Player holds the player's spawn and movement constants.
type Player struct {
	Name     string  `yaml:"name"`
	Spawn    Vec     `yaml:"spawn"`
	Yaw      float64 `yaml:"yaw"`
	Speed    float64 `yaml:"speed"`
	Rotation float64 `yaml:"rotation"`
}

// Stage is a stage file.
type Stage struct {
	Name         string  `yaml:"name"`
	MaxTime      float64 `yaml:"max_time"`
	CameraOffset Vec     `yaml:"camera_offset"`
	Player       Player  `yaml:"player"`
	Walls        []Box   `yaml:"walls"`
	Guards       []Guard `yaml:"guards"`
	Furnace      *Box    `yaml:"furnace"`
	// Objective is an optional Lua chunk defining reached(x, z, generation, time).
	Objective string `yaml:"objective"`
}

// Default returns the embedded furnace-hall stage.
func Default() (*Stage, error) {
	s, err := Parse(defaultStage)
	if err != nil {
		return nil, fmt.Errorf("default stage: %w", err)
	}
	return s, nil
}

// Load reads a stage from a YAML file. An empty path loads the default.
func Load(path string) (*Stage, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read stage %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("stage %s: %w", path, err)
	}
	return s, nil
}

// Parse decodes and validates a stage.
func Parse(data []byte) (*Stage, error) {
	var s Stage
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse stage: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks what YAML cannot express. Patrol paths are validated
// again, fully, when the world spawns.
func (s *Stage) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalid)
	}
	if !(s.MaxTime > 0) || math.IsInf(s.MaxTime, 0) {
		return fmt.Errorf("%w: max_time must be positive, got %v", ErrInvalid, s.MaxTime)
	}
	if !(s.Player.Speed > 0) {
		return fmt.Errorf("%w: player speed must be positive, got %v", ErrInvalid, s.Player.Speed)
	}
	for i, w := range s.Walls {
		if !(w.Scale[0] > 0) || !(w.Scale[2] > 0) {
			return fmt.Errorf("%w: wall %d has no area", ErrInvalid, i)
		}
		if w.rect().Contains(s.Player.Spawn.sim()) {
			return fmt.Errorf("%w: player spawns inside wall %d", ErrInvalid, i)
		}
	}
	for i, g := range s.Guards {
		if g.Name == "" {
			return fmt.Errorf("%w: guard %d has no name", ErrInvalid, i)
		}
		if len(g.Path) < 2 {
			return fmt.Errorf("%w: guard %q needs at least two waypoints", ErrInvalid, g.Name)
		}
	}
	if f := s.Furnace; f != nil && (!(f.Scale[0] > 0) || !(f.Scale[2] > 0)) {
		return fmt.Errorf("%w: furnace has no area", ErrInvalid)
	}
	return nil
}

// Layout converts the stage into spawn data for sim.NewWorld.
func (s *Stage) Layout() sim.Layout {
	l := sim.Layout{
		Name:        s.Name,
		MaxTime:     s.MaxTime,
		PlayerName:  s.Player.Name,
		PlayerSpawn: s.Player.Spawn.sim(),
		PlayerYaw:   s.Player.Yaw,
		PlayerMovement: sim.Movement{
			Speed:    s.Player.Speed,
			Rotation: s.Player.Rotation,
		},
		CameraOffset: s.CameraOffset.sim(),
	}
	for _, w := range s.Walls {
		l.Walls = append(l.Walls, w.rect())
	}
	for _, g := range s.Guards {
		spec := sim.GuardSpec{Name: g.Name}
		for _, wp := range g.Path {
			spec.Waypoints = append(spec.Waypoints, sim.Waypoint{Time: wp.Time, Position: wp.At.sim()})
		}
		l.Guards = append(l.Guards, spec)
	}
	if s.Furnace != nil {
		r := s.Furnace.rect()
		l.Furnace = &r
	}
	return l
}
