package b2rope

import (
	"math"
)

// A solid circle. Obstacles in the rope world are circles so that contact
// resolution stays analytic.
type B2CircleShape struct {
	/// Position
	P B2Vec2

	Radius float64
}

func MakeB2CircleShape() B2CircleShape {
	return B2CircleShape{
		P:      MakeB2Vec2(0, 0),
		Radius: 0.0,
	}
}

func NewB2CircleShape() *B2CircleShape {
	res := MakeB2CircleShape()
	return &res
}

///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////
// B2CircleShape.cpp
///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////

func (shape B2CircleShape) Clone() B2CircleShape {
	return B2CircleShape{
		P:      shape.P,
		Radius: shape.Radius,
	}
}

func (shape B2CircleShape) TestPoint(p B2Vec2) bool {
	d := B2Vec2Sub(p, shape.P)
	return B2Vec2Dot(d, d) <= shape.Radius*shape.Radius
}

// Does a circle of the given radius at center overlap this shape? Resting
// contact is not an overlap.
func (shape B2CircleShape) TestOverlapCircle(center B2Vec2, radius float64) bool {
	return B2TestOverlapCircles(shape.P, shape.Radius, center, radius)
}

// Collision Detection in Interactive 3D Environments by Gino van den Bergen
// From Section 3.1.2
// x = s + a * r
// norm(x) = radius
func (shape B2CircleShape) RayCast(output *B2RayCastOutput, input B2RayCastInput) bool {

	s := B2Vec2Sub(input.P1, shape.P)
	b := B2Vec2Dot(s, s) - shape.Radius*shape.Radius

	// Solve quadratic equation.
	r := B2Vec2Sub(input.P2, input.P1)
	c := B2Vec2Dot(s, r)
	rr := B2Vec2Dot(r, r)
	sigma := c*c - rr*b

	// Check for negative discriminant and short segment.
	if sigma < 0.0 || rr < B2_epsilon {
		return false
	}

	// Find the point of intersection of the line with the circle.
	a := -(c + math.Sqrt(sigma))

	// Is the intersection point on the segment?
	if 0.0 <= a && a <= input.MaxFraction*rr {
		a /= rr
		output.Fraction = a
		output.Normal = B2Vec2Normalized(B2Vec2Add(s, B2Vec2MulScalar(a, r)))
		return true
	}

	return false
}

// Sweep a circle against this shape. This is a ray cast against the circle
// grown by the cast radius, except that a circle starting in overlap reports
// a hit at fraction zero.
func (shape B2CircleShape) CircleCast(output *B2CircleCastOutput, input B2CircleCastInput) bool {
	m := B2Vec2Sub(input.Center, shape.P)
	rr := shape.Radius + input.Radius
	c := B2Vec2Dot(m, m) - rr*rr

	var t float64
	if c <= 0.0 {
		t = 0.0
	} else {
		a := B2Vec2Dot(input.Translation, input.Translation)
		b := B2Vec2Dot(m, input.Translation)

		// Moving away or not moving at all.
		if b >= 0.0 || a < B2_epsilon {
			return false
		}

		sigma := b*b - a*c
		if sigma < 0.0 {
			return false
		}

		t = (-b - math.Sqrt(sigma)) / a
		if t > 1.0 {
			return false
		}
	}

	center := B2Vec2Add(input.Center, B2Vec2MulScalar(t, input.Translation))
	normal := B2Vec2Normalized(B2Vec2Sub(center, shape.P))

	output.Fraction = t
	output.Normal = normal
	output.Point = B2Vec2Add(shape.P, B2Vec2MulScalar(shape.Radius, normal))
	return true
}

func (shape B2CircleShape) ComputeAABB(aabb *B2AABB) {
	aabb.LowerBound.Set(shape.P.X-shape.Radius, shape.P.Y-shape.Radius)
	aabb.UpperBound.Set(shape.P.X+shape.Radius, shape.P.Y+shape.Radius)
}

func (shape B2CircleShape) Validate() bool {
	return shape.P.IsValid() && B2IsValid(shape.Radius) && shape.Radius > 0.0
}
