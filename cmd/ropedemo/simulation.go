package main

import (
	"fmt"

	b2rope "github.com/Alexander-r/b2rope.go"
	"github.com/Alexander-r/b2rope.go/internal/config"
)

// simulation bundles the rope with the obstacle world it queries and the
// fixed-step clock that drives it.
type simulation struct {
	world   *b2rope.B2ObstacleWorld
	rope    *b2rope.B2Rope
	stepper b2rope.B2FixedStep
	start   b2rope.B2Vec2
}

func newSimulation(cfg config.Demo) (*simulation, error) {
	world := b2rope.NewB2ObstacleWorld()
	for _, def := range cfg.ObstacleDefs() {
		world.CreateObstacle(&def)
	}

	def := cfg.RopeDef()
	rope, err := b2rope.NewB2Rope(&def, world)
	if err != nil {
		return nil, fmt.Errorf("creating rope: %w", err)
	}

	return &simulation{
		world:   world,
		rope:    rope,
		stepper: b2rope.MakeB2FixedStep(cfg.TickDuration().Seconds(), cfg.MaxSteps),
		start:   def.Position,
	}, nil
}

// advance runs the fixed steps due for frameTime seconds of wall time.
func (s *simulation) advance(frameTime float64) int {
	steps := s.stepper.Advance(frameTime)
	for i := 0; i < steps; i++ {
		s.rope.Step(s.stepper.Dt)
	}
	return steps
}

func (s *simulation) reset() {
	s.rope.Reset(s.start)
	s.stepper.Reset()
}
