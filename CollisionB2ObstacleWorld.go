package b2rope

import (
	"sort"
)

/// An obstacle definition holds the data needed to create a circular obstacle.
type B2ObstacleDef struct {
	Position B2Vec2
	Radius   float64
	Layer    B2Layer

	/// Use this to store application specific obstacle data.
	UserData interface{}
}

func MakeB2ObstacleDef() B2ObstacleDef {
	return B2ObstacleDef{
		Position: MakeB2Vec2(0, 0),
		Radius:   0.5 * B2_lengthUnitsPerMeter,
		Layer:    B2_solidLayer,
	}
}

// A static or kinematic circle living in a B2ObstacleWorld.
type B2Obstacle struct {
	M_proxyId  int
	M_shape    B2CircleShape
	M_layer    B2Layer
	M_userData interface{}
}

func (obstacle B2Obstacle) GetPosition() B2Vec2 {
	return obstacle.M_shape.P
}

func (obstacle B2Obstacle) GetRadius() float64 {
	return obstacle.M_shape.Radius
}

func (obstacle B2Obstacle) GetLayer() B2Layer {
	return obstacle.M_layer
}

func (obstacle B2Obstacle) GetShape() B2CircleShape {
	return obstacle.M_shape
}

func (obstacle B2Obstacle) GetUserData() interface{} {
	return obstacle.M_userData
}

// The obstacle world manages circular obstacles and answers the rope's
// collision queries through a grid broad-phase. It is not safe for concurrent
// use; mutate it between rope steps.
type B2ObstacleWorld struct {
	M_broadPhase B2BroadPhase
	M_obstacles  map[int]*B2Obstacle

	// Reused query scratch.
	m_candidates []*B2Obstacle
	m_castHits   []B2CircleCastHit
}

var _ B2ObstacleQuery = (*B2ObstacleWorld)(nil)

func MakeB2ObstacleWorld() B2ObstacleWorld {
	return B2ObstacleWorld{
		M_broadPhase: MakeB2BroadPhase(),
		M_obstacles:  make(map[int]*B2Obstacle),
	}
}

func NewB2ObstacleWorld() *B2ObstacleWorld {
	res := MakeB2ObstacleWorld()
	return &res
}

func (world *B2ObstacleWorld) CreateObstacle(def *B2ObstacleDef) *B2Obstacle {
	shape := B2CircleShape{P: def.Position, Radius: def.Radius}
	B2Assert(shape.Validate())

	obstacle := &B2Obstacle{
		M_shape:    shape,
		M_layer:    def.Layer,
		M_userData: def.UserData,
	}

	var aabb B2AABB
	shape.ComputeAABB(&aabb)
	obstacle.M_proxyId = world.M_broadPhase.CreateProxy(aabb, obstacle)
	world.M_obstacles[obstacle.M_proxyId] = obstacle

	return obstacle
}

func (world *B2ObstacleWorld) DestroyObstacle(obstacle *B2Obstacle) {
	B2Assert(world.M_obstacles[obstacle.M_proxyId] == obstacle)

	world.M_broadPhase.DestroyProxy(obstacle.M_proxyId)
	delete(world.M_obstacles, obstacle.M_proxyId)
	obstacle.M_proxyId = E_nullProxy
}

// Teleport an obstacle. The broad-phase is updated when it leaves its fat AABB.
func (world *B2ObstacleWorld) SetObstaclePosition(obstacle *B2Obstacle, position B2Vec2) {
	B2Assert(world.M_obstacles[obstacle.M_proxyId] == obstacle)
	B2Assert(position.IsValid())

	displacement := B2Vec2Sub(position, obstacle.M_shape.P)
	obstacle.M_shape.P = position

	var aabb B2AABB
	obstacle.M_shape.ComputeAABB(&aabb)
	world.M_broadPhase.MoveProxy(obstacle.M_proxyId, aabb, displacement)
}

func (world B2ObstacleWorld) GetObstacleCount() int {
	return len(world.M_obstacles)
}

// Obstacles ordered by creation slot.
func (world B2ObstacleWorld) GetObstacleList() []*B2Obstacle {
	list := make([]*B2Obstacle, 0, len(world.M_obstacles))
	for _, obstacle := range world.M_obstacles {
		list = append(list, obstacle)
	}

	sort.Slice(list, func(i, j int) bool {
		return list[i].M_proxyId < list[j].M_proxyId
	})

	return list
}

// Gather broad-phase candidates for aabb ordered by proxy id so that results
// do not depend on grid iteration order.
func (world *B2ObstacleWorld) gather(aabb B2AABB) []*B2Obstacle {
	world.m_candidates = world.m_candidates[:0]
	world.M_broadPhase.Query(func(proxyId int) bool {
		world.m_candidates = append(world.m_candidates, world.M_broadPhase.GetUserData(proxyId).(*B2Obstacle))
		return true
	}, aabb)

	sort.Slice(world.m_candidates, func(i, j int) bool {
		return world.m_candidates[i].M_proxyId < world.m_candidates[j].M_proxyId
	})

	return world.m_candidates
}

func (world *B2ObstacleWorld) CircleCast(center B2Vec2, radius float64, direction B2Vec2, distance float64, hits []B2CircleCastHit) int {
	if len(hits) == 0 || distance <= 0.0 {
		return 0
	}

	input := MakeB2CircleCastInput()
	input.Center = center
	input.Radius = radius
	input.Translation = B2Vec2MulScalar(distance, direction)

	world.m_castHits = world.m_castHits[:0]
	for _, obstacle := range world.gather(B2ComputeSweptCircleAABB(center, radius, input.Translation)) {
		output := MakeB2CircleCastOutput()
		if !obstacle.M_shape.CircleCast(&output, input) {
			continue
		}

		world.m_castHits = append(world.m_castHits, B2CircleCastHit{
			Point:          output.Point,
			ColliderCenter: obstacle.M_shape.P,
			ColliderRadius: obstacle.M_shape.Radius,
			Layer:          obstacle.M_layer,
			Fraction:       output.Fraction,
		})
	}

	// Nearest first; candidates are already in id order.
	sort.SliceStable(world.m_castHits, func(i, j int) bool {
		return world.m_castHits[i].Fraction < world.m_castHits[j].Fraction
	})

	return copy(hits, world.m_castHits)
}

func (world *B2ObstacleWorld) OverlapCircle(center B2Vec2, radius float64, results []B2CircleOverlap) int {
	if len(results) == 0 {
		return 0
	}

	var aabb B2AABB
	B2CircleShape{P: center, Radius: radius}.ComputeAABB(&aabb)

	count := 0
	for _, obstacle := range world.gather(aabb) {
		if !obstacle.M_shape.TestOverlapCircle(center, radius) {
			continue
		}

		results[count] = B2CircleOverlap{
			Center: obstacle.M_shape.P,
			Radius: obstacle.M_shape.Radius,
			Layer:  obstacle.M_layer,
		}
		count++

		if count == len(results) {
			break
		}
	}

	return count
}
