package b2rope

/// A rope line is the polyline snapshot of a rope handed to renderers: the
/// ordered node positions and the stroke width. It is a copy, so it stays
/// valid while the rope keeps stepping.
type B2RopeLine struct {
	/// The vertices. Owned by this class.
	M_vertices []B2Vec2

	/// The vertex count.
	M_count int

	/// The stroke width.
	M_width float64
}

func MakeB2RopeLine() B2RopeLine {
	return B2RopeLine{
		M_vertices: nil,
		M_count:    0,
		M_width:    B2_ropeWidth,
	}
}

///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////
// B2RopeLine.cpp
///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////

func (line *B2RopeLine) Clear() {
	line.M_vertices = line.M_vertices[:0]
	line.M_count = 0
}

/// Create the line. The vertex storage is reused between calls.
/// @param vertices an array of vertices, these are copied
/// @param width the stroke width
func (line *B2RopeLine) CreateChain(vertices []B2Vec2, width float64) {
	B2Assert(len(vertices) >= 1)
	B2Assert(width >= 0.0)

	line.M_vertices = append(line.M_vertices[:0], vertices...)
	line.M_count = len(vertices)
	line.M_width = width
}

func (line B2RopeLine) Clone() B2RopeLine {
	clone := MakeB2RopeLine()
	clone.M_width = line.M_width
	if line.M_count > 0 {
		clone.CreateChain(line.M_vertices, line.M_width)
	}
	return clone
}

func (line B2RopeLine) GetVertices() []B2Vec2 {
	return line.M_vertices
}

func (line B2RopeLine) GetVertexCount() int {
	return line.M_count
}

func (line B2RopeLine) GetWidth() float64 {
	return line.M_width
}

func (line B2RopeLine) GetChildCount() int {
	// segment count = vertex count - 1
	return MaxInt(line.M_count-1, 0)
}

func (line B2RopeLine) GetChildSegment(index int) (B2Vec2, B2Vec2) {
	B2Assert(0 <= index && index < line.M_count-1)
	return line.M_vertices[index], line.M_vertices[index+1]
}

// Total length along the polyline.
func (line B2RopeLine) GetLength() float64 {
	length := 0.0
	for i := 0; i < line.GetChildCount(); i++ {
		v1, v2 := line.GetChildSegment(i)
		length += B2Vec2Distance(v1, v2)
	}
	return length
}

// Bounds of one stroked segment.
func (line B2RopeLine) ComputeAABB(aabb *B2AABB, childIndex int) {
	v1, v2 := line.GetChildSegment(childIndex)

	lower := B2Vec2Min(v1, v2)
	upper := B2Vec2Max(v1, v2)

	r := MakeB2Vec2(0.5*line.M_width, 0.5*line.M_width)
	aabb.LowerBound = B2Vec2Sub(lower, r)
	aabb.UpperBound = B2Vec2Add(upper, r)
}

// Bounds of the whole stroked line.
func (line B2RopeLine) ComputeBounds(aabb *B2AABB) {
	B2Assert(line.M_count >= 1)

	r := MakeB2Vec2(0.5*line.M_width, 0.5*line.M_width)
	aabb.LowerBound = B2Vec2Sub(line.M_vertices[0], r)
	aabb.UpperBound = B2Vec2Add(line.M_vertices[0], r)

	var child B2AABB
	for i := 0; i < line.GetChildCount(); i++ {
		line.ComputeAABB(&child, i)
		aabb.CombineInPlace(child)
	}
}
