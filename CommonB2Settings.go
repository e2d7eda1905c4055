package b2rope

// @file
// Settings that can be overriden for your application
//

// Tunable Constants

// You can use this to change the length scale used by your game.
// For example for inches you could use 39.4.
const B2_lengthUnitsPerMeter = 1.0

const B2_epsilon = 2.220446049250313e-16

// This is used to fatten AABBs in the broad-phase so that obstacles can move
// a little without touching the grid.
const B2_aabbExtension = 0.1 * B2_lengthUnitsPerMeter

// Edge length of one broad-phase grid cell.
const B2_broadPhaseCellSize = 1.0 * B2_lengthUnitsPerMeter

// Grid coordinates are clamped to this range on either side of the origin.
const B2_maxGridCell = 1 << 28

// Proxies whose fat AABB covers more cells than this skip the grid.
const B2_maxProxyCells = 64

// Rope defaults

const B2_ropeNodeCount = 50
const B2_ropeNodeDistance = 0.2 * B2_lengthUnitsPerMeter
const B2_ropeWidth = 0.1 * B2_lengthUnitsPerMeter
const B2_ropeGravityY = -5.0

// Higher iteration counts give stiffer ropes and a more stable simulation.
const B2_ropeIterations = 80

// Overlap correction runs on every n-th relaxation pass.
const B2_ropeCollisionInterval = 2

// Capacity of the per-node obstacle query buffers.
const B2_maxRopeQueryResults = 10

// Layers

const B2_defaultLayer B2Layer = 0
const B2_ropeLayer B2Layer = 8
const B2_solidLayer B2Layer = 9

func B2Assert(a bool) {
	if !a {
		panic("B2Assert")
	}
}
