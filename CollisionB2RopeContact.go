package b2rope

// Pushes rope nodes out of obstacles they currently overlap. Obstacles on the
// ignore layer (usually the rope's own) are skipped. The tail node is never
// corrected and only the first overlap of a node is resolved per call.
type B2RopeCollisionCorrector struct {
	Query       B2ObstacleQuery
	IgnoreLayer B2Layer

	m_overlaps [B2_maxRopeQueryResults]B2CircleOverlap
}

func MakeB2RopeCollisionCorrector(query B2ObstacleQuery, ignoreLayer B2Layer) B2RopeCollisionCorrector {
	return B2RopeCollisionCorrector{
		Query:       query,
		IgnoreLayer: ignoreLayer,
	}
}

// Correct returns the number of nodes that were moved.
func (corrector *B2RopeCollisionCorrector) Correct(nodes []B2RopeNode) int {
	if corrector.Query == nil {
		return 0
	}

	corrected := 0
	for i := 0; i < len(nodes)-1; i++ {
		node := &nodes[i]

		count := corrector.Query.OverlapCircle(node.Position, node.Radius, corrector.m_overlaps[:])
		for n := 0; n < count; n++ {
			overlap := corrector.m_overlaps[n]
			if overlap.Layer == corrector.IgnoreLayer {
				continue
			}

			// Rest the node on the obstacle surface.
			direction := B2Vec2Sub(node.Position, overlap.Center)
			if direction.Normalize() > 0.0 {
				node.Position = B2Vec2Add(overlap.Center, B2Vec2MulScalar(overlap.Radius+node.Radius, direction))
				corrected++
			}
			break
		}
	}

	return corrected
}
