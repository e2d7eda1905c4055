package b2rope

import (
	"math"
)

/// The rope anchor. Node zero follows the live position (typically a pointer)
/// unless a lock is set, in which case it is pinned to the locked position.
type B2RopeAnchor struct {
	Locked         bool
	LockedPosition B2Vec2
	LivePosition   B2Vec2
}

func MakeB2RopeAnchor(live B2Vec2) B2RopeAnchor {
	return B2RopeAnchor{
		Locked:       false,
		LivePosition: live,
	}
}

/// The position node zero is pinned to.
func (anchor B2RopeAnchor) Target() B2Vec2 {
	if anchor.Locked {
		return anchor.LockedPosition
	}

	return anchor.LivePosition
}

/// Relaxes the distance constraints between adjacent rope nodes. Each pass
/// splits the error evenly between the two nodes and only partially satisfies
/// the chain; repeated passes converge.
type B2RopeDistanceSolver struct {
	/// The rest length between adjacent nodes.
	RestDistance float64
}

func MakeB2RopeDistanceSolver(restDistance float64) B2RopeDistanceSolver {
	return B2RopeDistanceSolver{
		RestDistance: restDistance,
	}
}

func (solver B2RopeDistanceSolver) PinAnchor(nodes []B2RopeNode, anchor B2RopeAnchor) {
	B2Assert(len(nodes) > 0)
	nodes[0].Position = anchor.Target()
}

func (solver B2RopeDistanceSolver) Relax(nodes []B2RopeNode) {
	for i := 0; i < len(nodes)-1; i++ {
		p1 := nodes[i].Position
		p2 := nodes[i+1].Position

		currentDistance := B2Vec2Distance(p1, p2)
		difference := math.Abs(currentDistance - solver.RestDistance)

		var direction B2Vec2
		if currentDistance > solver.RestDistance {
			direction = B2Vec2Normalized(B2Vec2Sub(p1, p2))
		} else if currentDistance < solver.RestDistance {
			direction = B2Vec2Normalized(B2Vec2Sub(p2, p1))
		}

		movement := B2Vec2MulScalar(difference, direction)

		p1.OperatorMinusInplace(B2Vec2MulScalar(0.5, movement))
		p2.OperatorPlusInplace(B2Vec2MulScalar(0.5, movement))

		nodes[i].Position = p1
		nodes[i+1].Position = p2
	}
}

/// Get the distance between nodes i and i+1.
func (solver B2RopeDistanceSolver) GetCurrentLength(nodes []B2RopeNode, i int) float64 {
	B2Assert(0 <= i && i < len(nodes)-1)
	return B2Vec2Distance(nodes[i].Position, nodes[i+1].Position)
}

/// Get the largest deviation from the rest length over the chain.
func (solver B2RopeDistanceSolver) GetMaxError(nodes []B2RopeNode) float64 {
	maxError := 0.0
	for i := 0; i < len(nodes)-1; i++ {
		maxError = math.Max(maxError, math.Abs(solver.GetCurrentLength(nodes, i)-solver.RestDistance))
	}
	return maxError
}
