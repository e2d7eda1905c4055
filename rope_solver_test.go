package b2rope_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	b2rope "github.com/Alexander-r/b2rope.go"
)

// scriptedQuery answers every query with fixed results.
type scriptedQuery struct {
	hits     []b2rope.B2CircleCastHit
	overlaps []b2rope.B2CircleOverlap

	casts        int
	overlapCalls []b2rope.B2Vec2
}

func (q *scriptedQuery) CircleCast(center b2rope.B2Vec2, radius float64, direction b2rope.B2Vec2, distance float64, hits []b2rope.B2CircleCastHit) int {
	q.casts++
	return copy(hits, q.hits)
}

func (q *scriptedQuery) OverlapCircle(center b2rope.B2Vec2, radius float64, results []b2rope.B2CircleOverlap) int {
	q.overlapCalls = append(q.overlapCalls, center)
	return copy(results, q.overlaps)
}

func restingNodes(positions ...b2rope.B2Vec2) []b2rope.B2RopeNode {
	nodes := make([]b2rope.B2RopeNode, len(positions))
	for i, p := range positions {
		nodes[i] = b2rope.B2RopeNode{Position: p, PreviousPosition: p, Radius: 0.05}
	}
	return nodes
}

func TestRopeAnchorTarget(t *testing.T) {
	anchor := b2rope.MakeB2RopeAnchor(b2rope.MakeB2Vec2(1.0, 2.0))
	assert.Equal(t, b2rope.MakeB2Vec2(1.0, 2.0), anchor.Target())

	anchor.Locked = true
	anchor.LockedPosition = b2rope.MakeB2Vec2(0.0, 0.0)
	assert.Equal(t, b2rope.MakeB2Vec2(0.0, 0.0), anchor.Target())
}

func TestDistanceSolverRelaxSplitsError(t *testing.T) {
	solver := b2rope.MakeB2RopeDistanceSolver(1.0)

	// Stretched pair moves together, compressed pair moves apart, by half the
	// error each.
	nodes := restingNodes(b2rope.MakeB2Vec2(0.0, 0.0), b2rope.MakeB2Vec2(2.0, 0.0))
	solver.Relax(nodes)
	assert.InDelta(t, 0.5, nodes[0].Position.X, 1e-12)
	assert.InDelta(t, 1.5, nodes[1].Position.X, 1e-12)

	nodes = restingNodes(b2rope.MakeB2Vec2(0.0, 0.0), b2rope.MakeB2Vec2(0.0, -0.5))
	solver.Relax(nodes)
	assert.InDelta(t, 0.25, nodes[0].Position.Y, 1e-12)
	assert.InDelta(t, -0.75, nodes[1].Position.Y, 1e-12)

	// Previous positions are left alone.
	assert.Equal(t, b2rope.MakeB2Vec2(0.0, -0.5), nodes[1].PreviousPosition)
}

func TestDistanceSolverCoincidentNodesStay(t *testing.T) {
	solver := b2rope.MakeB2RopeDistanceSolver(1.0)

	nodes := restingNodes(b2rope.MakeB2Vec2(1.0, 1.0), b2rope.MakeB2Vec2(1.0, 1.0))
	solver.Relax(nodes)

	assert.Equal(t, b2rope.MakeB2Vec2(1.0, 1.0), nodes[0].Position)
	assert.Equal(t, b2rope.MakeB2Vec2(1.0, 1.0), nodes[1].Position)
}

func TestDistanceSolverPinAndMeasure(t *testing.T) {
	solver := b2rope.MakeB2RopeDistanceSolver(0.5)
	nodes := restingNodes(
		b2rope.MakeB2Vec2(0.0, 0.0),
		b2rope.MakeB2Vec2(0.0, -0.5),
		b2rope.MakeB2Vec2(0.0, -1.25),
	)

	assert.InDelta(t, 0.5, solver.GetCurrentLength(nodes, 0), 1e-12)
	assert.InDelta(t, 0.75, solver.GetCurrentLength(nodes, 1), 1e-12)
	assert.InDelta(t, 0.25, solver.GetMaxError(nodes), 1e-12)

	anchor := b2rope.MakeB2RopeAnchor(b2rope.MakeB2Vec2(3.0, 0.0))
	solver.PinAnchor(nodes, anchor)
	assert.Equal(t, b2rope.MakeB2Vec2(3.0, 0.0), nodes[0].Position)

	assert.Panics(t, func() { solver.GetCurrentLength(nodes, 2) })
}

func TestIntegratorVerletStep(t *testing.T) {
	integrator := b2rope.MakeB2RopeIntegrator(nil, b2rope.MakeB2Vec2(0.0, -5.0), b2rope.B2_solidLayer)

	nodes := []b2rope.B2RopeNode{{
		Position:         b2rope.MakeB2Vec2(1.0, 0.0),
		PreviousPosition: b2rope.MakeB2Vec2(0.9, 0.0),
		Radius:           0.05,
	}}

	contacts := integrator.Integrate(nodes, 0.02)
	assert.Equal(t, 0, contacts)

	// Gravity is scaled by dt once.
	assert.InDelta(t, 1.1, nodes[0].Position.X, 1e-12)
	assert.InDelta(t, -0.1, nodes[0].Position.Y, 1e-12)
	assert.Equal(t, b2rope.MakeB2Vec2(1.0, 0.0), nodes[0].PreviousPosition)
}

func TestIntegratorHonorsFirstSolidHit(t *testing.T) {
	query := &scriptedQuery{
		hits: []b2rope.B2CircleCastHit{
			{
				Point:          b2rope.MakeB2Vec2(0.0, -0.5),
				ColliderCenter: b2rope.MakeB2Vec2(0.0, -1.0),
				ColliderRadius: 0.5,
				Layer:          b2rope.B2_defaultLayer,
				Fraction:       0.1,
			},
			{
				Point:          b2rope.MakeB2Vec2(0.0, -0.6),
				ColliderCenter: b2rope.MakeB2Vec2(0.0, -2.0),
				ColliderRadius: 1.4,
				Layer:          b2rope.B2_solidLayer,
				Fraction:       0.2,
			},
			{
				Point:          b2rope.MakeB2Vec2(0.0, -0.7),
				ColliderCenter: b2rope.MakeB2Vec2(0.0, -3.0),
				ColliderRadius: 2.3,
				Layer:          b2rope.B2_solidLayer,
				Fraction:       0.3,
			},
		},
	}

	integrator := b2rope.MakeB2RopeIntegrator(query, b2rope.MakeB2Vec2(0.0, -5.0), b2rope.B2_solidLayer)
	nodes := restingNodes(b2rope.MakeB2Vec2(0.0, 0.0))
	nodes[0].PreviousPosition = b2rope.MakeB2Vec2(0.0, 1.0)

	contacts := integrator.Integrate(nodes, 0.02)

	require.Equal(t, 1, contacts)
	assert.Equal(t, 1, query.casts)
	// Resting on the second hit: center + normal * (R + r).
	assert.InDelta(t, 0.0, nodes[0].Position.X, 1e-12)
	assert.InDelta(t, -2.0+1.45, nodes[0].Position.Y, 1e-12)
}

func TestIntegratorIgnoresHitAtColliderCenter(t *testing.T) {
	query := &scriptedQuery{
		hits: []b2rope.B2CircleCastHit{{
			Point:          b2rope.MakeB2Vec2(0.0, -0.05),
			ColliderCenter: b2rope.MakeB2Vec2(0.0, -0.05),
			ColliderRadius: 0.5,
			Layer:          b2rope.B2_solidLayer,
			Fraction:       0.5,
		}},
	}

	integrator := b2rope.MakeB2RopeIntegrator(query, b2rope.MakeB2Vec2(0.0, -5.0), b2rope.B2_solidLayer)
	nodes := restingNodes(b2rope.MakeB2Vec2(0.0, 0.0))

	contacts := integrator.Integrate(nodes, 0.02)

	assert.Equal(t, 0, contacts)
	assert.Equal(t, 1, query.casts)
	// No surface normal, so the node keeps its Verlet position.
	assert.InDelta(t, 0.0, nodes[0].Position.X, 1e-12)
	assert.InDelta(t, -0.1, nodes[0].Position.Y, 1e-12)
	assert.True(t, nodes[0].Position.IsValid())
}

func TestIntegratorSkipsSweepWhenNotMoving(t *testing.T) {
	query := &scriptedQuery{}
	integrator := b2rope.MakeB2RopeIntegrator(query, b2rope.B2Vec2{}, b2rope.B2_solidLayer)

	nodes := restingNodes(b2rope.MakeB2Vec2(0.0, 0.0), b2rope.MakeB2Vec2(0.0, -0.2))
	integrator.Integrate(nodes, 0.02)

	assert.Equal(t, 0, query.casts)
}

func TestCorrectorPushesOutFirstOverlap(t *testing.T) {
	query := &scriptedQuery{
		overlaps: []b2rope.B2CircleOverlap{
			{Center: b2rope.MakeB2Vec2(5.0, 5.0), Radius: 1.0, Layer: b2rope.B2_ropeLayer},
			{Center: b2rope.MakeB2Vec2(-1.0, 0.0), Radius: 1.0, Layer: b2rope.B2_solidLayer},
			{Center: b2rope.MakeB2Vec2(1.0, 0.0), Radius: 1.0, Layer: b2rope.B2_solidLayer},
		},
	}

	corrector := b2rope.MakeB2RopeCollisionCorrector(query, b2rope.B2_ropeLayer)
	nodes := restingNodes(
		b2rope.MakeB2Vec2(0.0, 0.0),
		b2rope.MakeB2Vec2(0.0, -0.2),
		b2rope.MakeB2Vec2(0.0, -0.4),
	)

	corrected := corrector.Correct(nodes)

	assert.Equal(t, 2, corrected)
	// The tail is never queried.
	assert.Len(t, query.overlapCalls, 2)
	assert.Equal(t, b2rope.MakeB2Vec2(0.0, -0.4), nodes[2].Position)

	// Pushed away from the first non-ignored obstacle only.
	assert.InDelta(t, 0.05, nodes[0].Position.X, 1e-12)
	assert.InDelta(t, 0.0, nodes[0].Position.Y, 1e-12)
	assert.InDelta(t, 1.05, b2rope.B2Vec2Distance(nodes[1].Position, b2rope.MakeB2Vec2(-1.0, 0.0)), 1e-12)
}

func TestCorrectorLeavesNodeAtOverlapCenter(t *testing.T) {
	query := &scriptedQuery{
		overlaps: []b2rope.B2CircleOverlap{
			{Center: b2rope.MakeB2Vec2(0.0, 0.0), Radius: 0.5, Layer: b2rope.B2_solidLayer},
			{Center: b2rope.MakeB2Vec2(0.3, 0.0), Radius: 0.5, Layer: b2rope.B2_solidLayer},
		},
	}

	corrector := b2rope.MakeB2RopeCollisionCorrector(query, b2rope.B2_ropeLayer)
	nodes := restingNodes(b2rope.MakeB2Vec2(0.0, 0.0), b2rope.MakeB2Vec2(0.0, -0.2))

	corrected := corrector.Correct(nodes)

	assert.Equal(t, 0, corrected)
	require.Len(t, query.overlapCalls, 1)
	// The later overlap is not used as a fallback.
	assert.Equal(t, b2rope.MakeB2Vec2(0.0, 0.0), nodes[0].Position)
}

func TestCorrectorWithoutQuery(t *testing.T) {
	corrector := b2rope.MakeB2RopeCollisionCorrector(nil, b2rope.B2_ropeLayer)
	nodes := restingNodes(b2rope.MakeB2Vec2(0.0, 0.0), b2rope.MakeB2Vec2(0.0, -0.2))

	assert.Equal(t, 0, corrector.Correct(nodes))
}
