// Package config holds the yaml-backed simulation configuration and the
// built-in scenario presets.
package config

import (
	"fmt"
	"os"

	"gonum.org/v1/gonum/spatial/r2"
	"gopkg.in/yaml.v3"

	"github.com/coopsim/coopsim/internal/shape"
	"github.com/coopsim/coopsim/internal/world"
)

const (
	DefaultDt        = 1.0 / 60
	DefaultDuration  = 30.0
	DefaultFrameRate = 30
)

type Config struct {
	Scenario  string  `yaml:"scenario"`
	Dt        float64 `yaml:"dt"`
	Duration  float64 `yaml:"duration"`
	FrameRate int     `yaml:"frame_rate"`

	World   WorldConfig   `yaml:"world"`
	Physics PhysicsConfig `yaml:"physics"`
	Agents  AgentsConfig  `yaml:"agents"`
}

type WorldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type AgentsConfig struct {
	Radius   float64 `yaml:"radius"`
	MaxSpeed float64 `yaml:"max_speed"`
}

type PhysicsConfig struct {
	PushStrength   float64 `yaml:"push_strength"`
	Separation     float64 `yaml:"separation"`
	Damping        float64 `yaml:"damping"`
	PushCompliance float64 `yaml:"push_compliance"`
	RotCompliance  float64 `yaml:"rotation_compliance"`
	GoalPoints     int     `yaml:"goal_points"`
}

func DefaultConfig() *Config {
	return &Config{
		Scenario:  "sorting",
		Dt:        DefaultDt,
		Duration:  DefaultDuration,
		FrameRate: DefaultFrameRate,
		World: WorldConfig{
			Width:  1000,
			Height: 700,
		},
		Physics: PhysicsConfig{
			PushStrength:   2.5,
			Separation:     0.5,
			Damping:        world.DefaultDamping,
			PushCompliance: world.DefaultPushCompliance,
			RotCompliance:  world.DefaultRotCompliance,
			GoalPoints:     100,
		},
		Agents: AgentsConfig{
			Radius:   world.DefaultAgentRadius,
			MaxSpeed: world.DefaultAgentSpeed,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", c.Dt)
	}
	if c.Duration < c.Dt {
		return fmt.Errorf("duration %f shorter than dt %f", c.Duration, c.Dt)
	}
	if c.World.Width <= 0 || c.World.Height <= 0 {
		return fmt.Errorf("world dimensions must be positive, got %fx%f",
			c.World.Width, c.World.Height)
	}
	if c.Scenario != "" {
		if _, ok := Scenarios[c.Scenario]; !ok {
			return fmt.Errorf("unknown scenario %q", c.Scenario)
		}
	}
	return nil
}

// Params maps the config onto world tuning.
func (c *Config) Params() world.Params {
	return world.Params{
		Width:        c.World.Width,
		Height:       c.World.Height,
		PushStrength: c.Physics.PushStrength,
		Separation:   c.Physics.Separation,
		GoalPoints:   c.Physics.GoalPoints,
	}
}

// ObjectSpec places one pushable object in a scenario.
type ObjectSpec struct {
	Name     string     `yaml:"name"`
	Shape    shape.Kind `yaml:"shape"`
	X        float64    `yaml:"x"`
	Y        float64    `yaml:"y"`
	Size     float64    `yaml:"size"`
	Rotation float64    `yaml:"rotation"`
}

// GoalSpec places one goal zone in a scenario.
type GoalSpec struct {
	Name   string       `yaml:"name"`
	X      float64      `yaml:"x"`
	Y      float64      `yaml:"y"`
	Width  float64      `yaml:"width"`
	Height float64      `yaml:"height"`
	Owner  world.Owner  `yaml:"owner"`
	Shapes []shape.Kind `yaml:"shapes"`
}

// Scenario is a named starting layout of objects and goals.
type Scenario struct {
	Name    string       `yaml:"name"`
	Summary string       `yaml:"summary"`
	Objects []ObjectSpec `yaml:"objects"`
	Goals   []GoalSpec   `yaml:"goals"`
}

// Build constructs a fresh world from the config's dimensions, physics
// tuning and scenario layout.
func (c *Config) Build() (*world.World, error) {
	scenario, ok := Scenarios[c.Scenario]
	if !ok {
		return nil, fmt.Errorf("unknown scenario %q", c.Scenario)
	}
	w := world.New(c.Params())
	for _, kind := range []world.AgentKind{world.Human, world.AI} {
		a := w.Agent(kind)
		if c.Agents.Radius > 0 {
			a.Radius = c.Agents.Radius
		}
		if c.Agents.MaxSpeed > 0 {
			a.MaxSpeed = c.Agents.MaxSpeed
		}
	}
	Populate(w, scenario, c.Physics)
	return w, nil
}

// Populate adds a scenario's objects and goals to an existing world,
// applying the physics tuning to every object. Used by Build and by
// interactive resets.
func Populate(w *world.World, scenario *Scenario, physics PhysicsConfig) {
	for _, spec := range scenario.Objects {
		size := spec.Size
		if size <= 0 {
			size = defaultSize(spec.Shape)
		}
		o := world.NewObject(spec.Name, spec.Shape, vec(spec.X, spec.Y), size)
		o.Rot = spec.Rotation
		if physics.Damping > 0 {
			o.Damping = physics.Damping
		}
		if physics.PushCompliance > 0 {
			o.PushCompliance = physics.PushCompliance
		}
		if physics.RotCompliance > 0 {
			o.RotCompliance = physics.RotCompliance
		}
		w.AddObject(o)
	}
	for _, spec := range scenario.Goals {
		width, height := spec.Width, spec.Height
		if width <= 0 {
			width = world.DefaultGoalSize
		}
		if height <= 0 {
			height = world.DefaultGoalSize
		}
		g := world.NewGoalZone(spec.Name, vec(spec.X, spec.Y), width, height, spec.Owner)
		g.AcceptShapes = spec.Shapes
		w.AddGoal(g)
	}
}

func defaultSize(kind shape.Kind) float64 {
	if kind == shape.Box {
		return 40
	}
	return 50
}

func vec(x, y float64) r2.Vec {
	return r2.Vec{X: x, Y: y}
}
