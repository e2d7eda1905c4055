package b2rope

///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////
// B2Collision.h
///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////

// Obstacle classification tag. Queries report it so that callers can keep or
// skip an obstacle (solid, rope, ignorable).
type B2Layer uint8

// Ray-cast input data. The ray extends from p1 to p1 + maxFraction * (p2 - p1).
type B2RayCastInput struct {
	P1, P2      B2Vec2
	MaxFraction float64
}

func MakeB2RayCastInput() B2RayCastInput {
	return B2RayCastInput{
		P1:          MakeB2Vec2(0, 0),
		P2:          MakeB2Vec2(0, 0),
		MaxFraction: 0,
	}
}

// Ray-cast output data. The ray hits at p1 + fraction * (p2 - p1), where p1 and p2
// come from b2RayCastInput.
type B2RayCastOutput struct {
	Normal   B2Vec2
	Fraction float64
}

func MakeB2RayCastOutput() B2RayCastOutput {
	return B2RayCastOutput{
		Normal:   MakeB2Vec2(0, 0),
		Fraction: 0,
	}
}

// Circle-cast input. A circle of the given radius is swept from Center to
// Center + Translation.
type B2CircleCastInput struct {
	Center      B2Vec2
	Radius      float64
	Translation B2Vec2
}

func MakeB2CircleCastInput() B2CircleCastInput {
	return B2CircleCastInput{}
}

// Circle-cast output. The swept circle first touches the target at
// Center + Fraction * Translation. Point lies on the target surface.
// A fraction of zero means the circle was already overlapping.
type B2CircleCastOutput struct {
	Point    B2Vec2
	Normal   B2Vec2
	Fraction float64
}

func MakeB2CircleCastOutput() B2CircleCastOutput {
	return B2CircleCastOutput{}
}

// One swept-circle hit reported by a B2ObstacleQuery.
type B2CircleCastHit struct {
	Point          B2Vec2 // contact point on the obstacle surface
	ColliderCenter B2Vec2
	ColliderRadius float64
	Layer          B2Layer
	Fraction       float64 // fraction of the cast distance travelled before contact
}

// One stationary overlap reported by a B2ObstacleQuery.
type B2CircleOverlap struct {
	Center B2Vec2
	Radius float64
	Layer  B2Layer
}

// B2ObstacleQuery is the collision capability consumed by the rope. Both
// queries fill the caller's buffer, return the number of records written and
// have no side effects.
type B2ObstacleQuery interface {
	// CircleCast sweeps a circle from center along the unit direction for
	// distance. Hits are ordered nearest first.
	CircleCast(center B2Vec2, radius float64, direction B2Vec2, distance float64, hits []B2CircleCastHit) int

	// OverlapCircle reports obstacles overlapping a stationary circle.
	OverlapCircle(center B2Vec2, radius float64, results []B2CircleOverlap) int
}

// An axis aligned bounding box.
type B2AABB struct {
	LowerBound B2Vec2 // the lower vertex
	UpperBound B2Vec2 // the upper vertex
}

func MakeB2AABB() B2AABB {
	return B2AABB{
		LowerBound: MakeB2Vec2(0, 0),
		UpperBound: MakeB2Vec2(0, 0),
	}
}

// Get the center of the AABB.
func (bb B2AABB) GetCenter() B2Vec2 {
	return B2Vec2MulScalar(
		0.5,
		B2Vec2Add(bb.LowerBound, bb.UpperBound),
	)
}

// Combine an AABB into this one.
func (bb *B2AABB) CombineInPlace(aabb B2AABB) {
	bb.LowerBound = B2Vec2Min(bb.LowerBound, aabb.LowerBound)
	bb.UpperBound = B2Vec2Max(bb.UpperBound, aabb.UpperBound)
}

// Does this aabb contain the provided AABB.
func (bb B2AABB) Contains(aabb B2AABB) bool {
	return (bb.LowerBound.X <= aabb.LowerBound.X &&
		bb.LowerBound.Y <= aabb.LowerBound.Y &&
		aabb.UpperBound.X <= bb.UpperBound.X &&
		aabb.UpperBound.Y <= bb.UpperBound.Y)
}

func (bb B2AABB) IsValid() bool {
	d := B2Vec2Sub(bb.UpperBound, bb.LowerBound)
	valid := d.X >= 0.0 && d.Y >= 0.0
	valid = valid && bb.LowerBound.IsValid() && bb.UpperBound.IsValid()
	return valid
}

// Grow the box by r on every side.
func (bb B2AABB) Extend(r float64) B2AABB {
	ext := MakeB2Vec2(r, r)
	return B2AABB{
		LowerBound: B2Vec2Sub(bb.LowerBound, ext),
		UpperBound: B2Vec2Add(bb.UpperBound, ext),
	}
}

func B2TestOverlapBoundingBoxes(a, b B2AABB) bool {

	d1 := B2Vec2Sub(b.LowerBound, a.UpperBound)
	d2 := B2Vec2Sub(a.LowerBound, b.UpperBound)

	if d1.X > 0.0 || d1.Y > 0.0 {
		return false
	}

	if d2.X > 0.0 || d2.Y > 0.0 {
		return false
	}

	return true
}

// Bounding box of a circle swept from center by translation.
func B2ComputeSweptCircleAABB(center B2Vec2, radius float64, translation B2Vec2) B2AABB {
	end := B2Vec2Add(center, translation)
	aabb := B2AABB{
		LowerBound: B2Vec2Min(center, end),
		UpperBound: B2Vec2Max(center, end),
	}
	return aabb.Extend(radius)
}

// Strict overlap test between two circles. Touching circles do not overlap.
func B2TestOverlapCircles(centerA B2Vec2, radiusA float64, centerB B2Vec2, radiusB float64) bool {
	rr := radiusA + radiusB
	return B2Vec2DistanceSquared(centerA, centerB) < rr*rr
}
