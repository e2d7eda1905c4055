package b2rope

// Verlet integrator for rope nodes. Velocity is never stored: it is the
// displacement since the previous step. Each node sweeps its radius along the
// intended displacement so that it cannot tunnel through a solid obstacle.
type B2RopeIntegrator struct {
	Query      B2ObstacleQuery
	Gravity    B2Vec2
	SolidLayer B2Layer

	m_hits [B2_maxRopeQueryResults]B2CircleCastHit
}

func MakeB2RopeIntegrator(query B2ObstacleQuery, gravity B2Vec2, solidLayer B2Layer) B2RopeIntegrator {
	return B2RopeIntegrator{
		Query:      query,
		Gravity:    gravity,
		SolidLayer: solidLayer,
	}
}

// Integrate advances every node by one step and returns the number of nodes
// that were stopped on an obstacle surface.
func (integrator *B2RopeIntegrator) Integrate(nodes []B2RopeNode, dt float64) int {
	gravity := B2Vec2MulScalar(dt, integrator.Gravity)

	contacts := 0
	for i := range nodes {
		node := &nodes[i]

		velocity := B2Vec2Sub(node.Position, node.PreviousPosition)
		node.PreviousPosition = node.Position

		newPosition := B2Vec2Add(B2Vec2Add(node.Position, velocity), gravity)

		if integrator.Query != nil {
			direction := B2Vec2Sub(newPosition, node.Position)
			distance := direction.Normalize()
			if distance > 0.0 {
				if p, ok := integrator.sweep(node, direction, distance); ok {
					newPosition = p
					contacts++
				}
			}
		}

		node.Position = newPosition
	}

	return contacts
}

// Only the first solid hit is honored.
func (integrator *B2RopeIntegrator) sweep(node *B2RopeNode, direction B2Vec2, distance float64) (B2Vec2, bool) {
	count := integrator.Query.CircleCast(node.Position, node.Radius, direction, distance, integrator.m_hits[:])
	for n := 0; n < count; n++ {
		hit := integrator.m_hits[n]
		if hit.Layer != integrator.SolidLayer {
			continue
		}

		normal := B2Vec2Sub(hit.Point, hit.ColliderCenter)
		if normal.Normalize() == 0.0 {
			return B2Vec2{}, false
		}

		return B2Vec2Add(hit.ColliderCenter, B2Vec2MulScalar(hit.ColliderRadius+node.Radius, normal)), true
	}

	return B2Vec2{}, false
}
