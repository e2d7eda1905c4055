package b2rope

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidNodeCount         = errors.New("b2rope: node count must be positive")
	ErrInvalidNodeDistance      = errors.New("b2rope: node distance must be positive")
	ErrInvalidWidth             = errors.New("b2rope: width must not be negative")
	ErrInvalidIterations        = errors.New("b2rope: iteration count must be positive")
	ErrInvalidCollisionInterval = errors.New("b2rope: collision interval must be positive")
	ErrInvalidVector            = errors.New("b2rope: vector is not finite")
)

///
type B2RopeTuning struct {
	// Relaxation passes per step. Higher is stiffer and less elastic.
	Iterations int
	// Overlap correction runs on every CollisionInterval-th pass.
	CollisionInterval int
	// Swept hits are only honored on this layer.
	SolidLayer B2Layer
	// Overlaps on this layer are skipped.
	IgnoreLayer B2Layer
}

func MakeB2RopeTuning() B2RopeTuning {
	res := B2RopeTuning{}

	res.Iterations = B2_ropeIterations
	res.CollisionInterval = B2_ropeCollisionInterval
	res.SolidLayer = B2_solidLayer
	res.IgnoreLayer = B2_ropeLayer

	return res
}

///
type B2RopeDef struct {
	// Position of node zero. The chain is laid out downward from here.
	Position     B2Vec2
	Count        int
	NodeDistance float64
	// Stroke width. Nodes collide as circles of half this width.
	Width   float64
	Gravity B2Vec2
	Tuning  B2RopeTuning
}

func MakeB2RopeDef() B2RopeDef {
	res := B2RopeDef{}

	res.Position.SetZero()
	res.Count = B2_ropeNodeCount
	res.NodeDistance = B2_ropeNodeDistance
	res.Width = B2_ropeWidth
	res.Gravity.Set(0.0, B2_ropeGravityY)
	res.Tuning = MakeB2RopeTuning()

	return res
}

func (def B2RopeDef) Validate() error {
	if def.Count <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidNodeCount, def.Count)
	}
	if !(def.NodeDistance > 0.0) || !B2IsValid(def.NodeDistance) {
		return fmt.Errorf("%w: got %v", ErrInvalidNodeDistance, def.NodeDistance)
	}
	if !(def.Width >= 0.0) || !B2IsValid(def.Width) {
		return fmt.Errorf("%w: got %v", ErrInvalidWidth, def.Width)
	}
	if def.Tuning.Iterations <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidIterations, def.Tuning.Iterations)
	}
	if def.Tuning.CollisionInterval <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidCollisionInterval, def.Tuning.CollisionInterval)
	}
	if !def.Position.IsValid() {
		return fmt.Errorf("%w: position %v", ErrInvalidVector, def.Position)
	}
	if !def.Gravity.IsValid() {
		return fmt.Errorf("%w: gravity %v", ErrInvalidVector, def.Gravity)
	}
	return nil
}

/// A rope node. PreviousPosition is the position as of the prior integration
/// step; the difference is the node's velocity.
type B2RopeNode struct {
	Position         B2Vec2
	PreviousPosition B2Vec2
	Radius           float64
}

///
type B2Rope struct {
	M_def   B2RopeDef
	M_nodes []B2RopeNode

	M_anchor B2RopeAnchor

	M_integrator B2RopeIntegrator
	M_solver     B2RopeDistanceSolver
	M_corrector  B2RopeCollisionCorrector
}

// NewB2Rope lays out def.Count nodes NodeDistance apart below def.Position.
// The anchor starts live at def.Position. query may be nil for a rope without
// obstacles.
func NewB2Rope(def *B2RopeDef, query B2ObstacleQuery) (*B2Rope, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}

	rope := &B2Rope{
		M_def:        *def,
		M_nodes:      make([]B2RopeNode, def.Count),
		M_anchor:     MakeB2RopeAnchor(def.Position),
		M_integrator: MakeB2RopeIntegrator(query, def.Gravity, def.Tuning.SolidLayer),
		M_solver:     MakeB2RopeDistanceSolver(def.NodeDistance),
		M_corrector:  MakeB2RopeCollisionCorrector(query, def.Tuning.IgnoreLayer),
	}

	rope.layout(def.Position)

	return rope, nil
}

func (rope *B2Rope) layout(position B2Vec2) {
	radius := 0.5 * rope.M_def.Width
	for i := range rope.M_nodes {
		p := MakeB2Vec2(position.X, position.Y-float64(i)*rope.M_def.NodeDistance)
		rope.M_nodes[i] = B2RopeNode{
			Position:         p,
			PreviousPosition: p,
			Radius:           radius,
		}
	}
}

///
func (rope B2Rope) GetVertexCount() int {
	return len(rope.M_nodes)
}

/// A copy of the current node positions.
func (rope B2Rope) GetVertices() []B2Vec2 {
	return rope.ExportPositions(nil)
}

/// Copy the node positions into dst, reusing its storage, and return it.
func (rope B2Rope) ExportPositions(dst []B2Vec2) []B2Vec2 {
	dst = dst[:0]
	for i := range rope.M_nodes {
		dst = append(dst, rope.M_nodes[i].Position)
	}
	return dst
}

/// Fill line with the current polyline and the configured width.
func (rope B2Rope) ExportLine(line *B2RopeLine) {
	line.M_vertices = rope.ExportPositions(line.M_vertices)
	line.M_count = len(line.M_vertices)
	line.M_width = rope.M_def.Width
}

func (rope B2Rope) GetNode(index int) B2RopeNode {
	B2Assert(0 <= index && index < len(rope.M_nodes))
	return rope.M_nodes[index]
}

func (rope B2Rope) GetNodeCount() int {
	return len(rope.M_nodes)
}

func (rope B2Rope) GetDef() B2RopeDef {
	return rope.M_def
}

func (rope B2Rope) GetAnchor() B2RopeAnchor {
	return rope.M_anchor
}

/// Get the largest deviation from the rest distance.
func (rope B2Rope) GetMaxStretch() float64 {
	return rope.M_solver.GetMaxError(rope.M_nodes)
}

/// Pin node zero to a world position until the lock is cleared.
func (rope *B2Rope) SetAnchorLock(position B2Vec2) {
	rope.M_anchor.Locked = true
	rope.M_anchor.LockedPosition = position
}

func (rope *B2Rope) ClearAnchorLock() {
	rope.M_anchor.Locked = false
}

func (rope B2Rope) IsAnchorLocked() bool {
	return rope.M_anchor.Locked
}

/// Set the position node zero follows while no lock is set. Call once per
/// display frame with the pointer position in simulation space.
func (rope *B2Rope) SetLiveAnchor(position B2Vec2) {
	rope.M_anchor.LivePosition = position
}

// Step advances the rope by one fixed time step: one integration, then
// Iterations relaxation passes with overlap correction on every
// CollisionInterval-th pass.
func (rope *B2Rope) Step(dt float64) {
	if dt <= 0.0 {
		return
	}

	rope.M_integrator.Integrate(rope.M_nodes, dt)

	interval := rope.M_def.Tuning.CollisionInterval
	for i := 0; i < rope.M_def.Tuning.Iterations; i++ {
		rope.M_solver.PinAnchor(rope.M_nodes, rope.M_anchor)
		rope.M_solver.Relax(rope.M_nodes)

		if i%interval == interval-1 {
			rope.M_corrector.Correct(rope.M_nodes)
		}
	}
}

/// Lay the chain out again below position and drop all motion. The anchor
/// lock is cleared and the live anchor moves to position.
func (rope *B2Rope) Reset(position B2Vec2) {
	rope.M_def.Position = position
	rope.M_anchor = MakeB2RopeAnchor(position)
	rope.layout(position)
}
