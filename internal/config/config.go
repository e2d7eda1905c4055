package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	b2rope "github.com/Alexander-r/b2rope.go"
)

// Demo holds all configuration for the terminal rope demo.
type Demo struct {
	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"` // empty disables logging while the screen is up

	// Timing
	TickRate  int `yaml:"tick_rate"`  // fixed physics steps per second
	FrameRate int `yaml:"frame_rate"` // display refresh per second
	MaxSteps  int `yaml:"max_steps"`  // fixed steps allowed per frame

	// Terminal cells per simulation length unit.
	CellsPerUnit float64 `yaml:"cells_per_unit"`

	Sound bool `yaml:"sound"`

	Rope      RopeConfig       `yaml:"rope"`
	Obstacles []ObstacleConfig `yaml:"obstacles"`
}

// RopeConfig mirrors b2rope.B2RopeDef.
type RopeConfig struct {
	Start             Vec2    `yaml:"start"`
	Nodes             int     `yaml:"nodes"`
	NodeDistance      float64 `yaml:"node_distance"`
	Width             float64 `yaml:"width"`
	Gravity           Vec2    `yaml:"gravity"`
	Iterations        int     `yaml:"iterations"`
	CollisionInterval int     `yaml:"collision_interval"`
	SolidLayer        uint8   `yaml:"solid_layer"`
	IgnoreLayer       uint8   `yaml:"ignore_layer"`
}

// ObstacleConfig describes one circular obstacle.
type ObstacleConfig struct {
	Center Vec2    `yaml:"center"`
	Radius float64 `yaml:"radius"`
	Layer  uint8   `yaml:"layer"`
}

// Vec2 is a point or vector in simulation space.
type Vec2 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func (v Vec2) B2() b2rope.B2Vec2 {
	return b2rope.MakeB2Vec2(v.X, v.Y)
}

// DefaultDemo returns Demo config with the rope defaults and a few obstacles.
func DefaultDemo() Demo {
	def := b2rope.MakeB2RopeDef()
	return Demo{
		LogLevel:     "info",
		TickRate:     50,
		FrameRate:    60,
		MaxSteps:     5,
		CellsPerUnit: 8,
		Sound:        true,
		Rope: RopeConfig{
			Start:             Vec2{X: def.Position.X, Y: def.Position.Y},
			Nodes:             def.Count,
			NodeDistance:      def.NodeDistance,
			Width:             def.Width,
			Gravity:           Vec2{X: def.Gravity.X, Y: def.Gravity.Y},
			Iterations:        def.Tuning.Iterations,
			CollisionInterval: def.Tuning.CollisionInterval,
			SolidLayer:        uint8(def.Tuning.SolidLayer),
			IgnoreLayer:       uint8(def.Tuning.IgnoreLayer),
		},
		Obstacles: []ObstacleConfig{
			{Center: Vec2{X: 0, Y: -4}, Radius: 1.0, Layer: uint8(b2rope.B2_solidLayer)},
			{Center: Vec2{X: -3, Y: -6}, Radius: 0.75, Layer: uint8(b2rope.B2_solidLayer)},
			{Center: Vec2{X: 3, Y: -7}, Radius: 1.25, Layer: uint8(b2rope.B2_solidLayer)},
		},
	}
}

// TickDuration is the fixed physics step.
func (d Demo) TickDuration() time.Duration {
	return time.Second / time.Duration(d.TickRate)
}

// FrameDuration is the display refresh interval.
func (d Demo) FrameDuration() time.Duration {
	return time.Second / time.Duration(d.FrameRate)
}

// RopeDef converts the rope section into a rope definition.
func (d Demo) RopeDef() b2rope.B2RopeDef {
	def := b2rope.MakeB2RopeDef()
	def.Position = d.Rope.Start.B2()
	def.Count = d.Rope.Nodes
	def.NodeDistance = d.Rope.NodeDistance
	def.Width = d.Rope.Width
	def.Gravity = d.Rope.Gravity.B2()
	def.Tuning.Iterations = d.Rope.Iterations
	def.Tuning.CollisionInterval = d.Rope.CollisionInterval
	def.Tuning.SolidLayer = b2rope.B2Layer(d.Rope.SolidLayer)
	def.Tuning.IgnoreLayer = b2rope.B2Layer(d.Rope.IgnoreLayer)
	return def
}

// ObstacleDefs converts the obstacle list into obstacle definitions.
func (d Demo) ObstacleDefs() []b2rope.B2ObstacleDef {
	defs := make([]b2rope.B2ObstacleDef, 0, len(d.Obstacles))
	for _, o := range d.Obstacles {
		def := b2rope.MakeB2ObstacleDef()
		def.Position = o.Center.B2()
		def.Radius = o.Radius
		def.Layer = b2rope.B2Layer(o.Layer)
		defs = append(defs, def)
	}
	return defs
}

// Validate checks values the rope and host loop cannot run with.
func (d Demo) Validate() error {
	if d.TickRate <= 0 {
		return fmt.Errorf("tick_rate must be positive, got %d", d.TickRate)
	}
	if d.FrameRate <= 0 {
		return fmt.Errorf("frame_rate must be positive, got %d", d.FrameRate)
	}
	if d.MaxSteps <= 0 {
		return fmt.Errorf("max_steps must be positive, got %d", d.MaxSteps)
	}
	if !(d.CellsPerUnit > 0) || !b2rope.B2IsValid(d.CellsPerUnit) {
		return fmt.Errorf("cells_per_unit must be positive and finite, got %v", d.CellsPerUnit)
	}
	for i, o := range d.Obstacles {
		if !(o.Radius > 0) || !b2rope.B2IsValid(o.Radius) {
			return fmt.Errorf("obstacle %d: radius must be positive and finite, got %v", i, o.Radius)
		}
		if !o.Center.B2().IsValid() {
			return fmt.Errorf("obstacle %d: center must be finite, got %v,%v", i, o.Center.X, o.Center.Y)
		}
	}
	if err := d.RopeDef().Validate(); err != nil {
		return fmt.Errorf("rope: %w", err)
	}
	return nil
}

// LoadDemo loads demo config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadDemo(path string) (Demo, error) {
	cfg := DefaultDemo()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validating config %s: %w", path, err)
	}

	return cfg, nil
}
