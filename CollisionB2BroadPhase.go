package b2rope

import (
	"math"
)

// Return false from the callback to terminate the query.
type B2BroadPhaseQueryCallback func(proxyId int) bool

const E_nullProxy = -1

type B2GridCell struct {
	X, Y int
}

type B2BroadPhaseProxy struct {
	AABB      B2AABB // fattened
	UserData  interface{}
	Next      int  // free list link
	Stamp     int  // last query that visited this proxy
	Live      bool // false while on the free list
	Oversized bool // kept in M_oversized instead of the grid
}

// The broad-phase is used for computing candidate obstacles for a query. It
// buckets fat AABBs into a uniform grid. Obstacles are few and mostly static,
// so a grid keyed by cell gives predictable query cost without a tree.
//
// Work per call is bounded by the proxy count: proxies covering more than
// B2_maxProxyCells cells live in a side list, and a query whose box covers
// more cells than there are proxies scans the proxies instead of the grid.
type B2BroadPhase struct {
	M_proxies    []B2BroadPhaseProxy
	M_freeList   int
	M_proxyCount int

	M_cellSize  float64
	M_cells     map[B2GridCell][]int
	M_oversized []int

	M_queryStamp int
}

func MakeB2BroadPhase() B2BroadPhase {
	return B2BroadPhase{
		M_proxies:    make([]B2BroadPhaseProxy, 0, 16),
		M_freeList:   E_nullProxy,
		M_proxyCount: 0,
		M_cellSize:   B2_broadPhaseCellSize,
		M_cells:      make(map[B2GridCell][]int),
	}
}

func (bp B2BroadPhase) GetUserData(proxyId int) interface{} {
	B2Assert(0 <= proxyId && proxyId < len(bp.M_proxies))
	return bp.M_proxies[proxyId].UserData
}

func (bp B2BroadPhase) GetFatAABB(proxyId int) B2AABB {
	B2Assert(0 <= proxyId && proxyId < len(bp.M_proxies))
	return bp.M_proxies[proxyId].AABB
}

func (bp B2BroadPhase) GetProxyCount() int {
	return bp.M_proxyCount
}

///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////
// BroadPhase.cpp
///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////
///////////////////////////////////////////////////////////////////////////////

func (bp *B2BroadPhase) CreateProxy(aabb B2AABB, userData interface{}) int {
	B2Assert(aabb.IsValid())

	proxyId := bp.allocateProxy()
	proxy := &bp.M_proxies[proxyId]
	proxy.AABB = aabb.Extend(B2_aabbExtension)
	proxy.UserData = userData
	proxy.Next = E_nullProxy
	proxy.Stamp = 0
	proxy.Live = true

	bp.insertCells(proxyId)
	bp.M_proxyCount++

	return proxyId
}

func (bp *B2BroadPhase) DestroyProxy(proxyId int) {
	B2Assert(0 <= proxyId && proxyId < len(bp.M_proxies))

	bp.removeCells(proxyId)

	proxy := &bp.M_proxies[proxyId]
	proxy.UserData = nil
	proxy.Live = false
	proxy.Next = bp.M_freeList
	bp.M_freeList = proxyId
	bp.M_proxyCount--
}

// Move a proxy. The grid is only touched when the new AABB leaves the fat
// AABB. Returns true when the proxy was re-bucketed.
func (bp *B2BroadPhase) MoveProxy(proxyId int, aabb B2AABB, displacement B2Vec2) bool {
	B2Assert(0 <= proxyId && proxyId < len(bp.M_proxies))
	B2Assert(aabb.IsValid())

	if bp.M_proxies[proxyId].AABB.Contains(aabb) {
		return false
	}

	bp.removeCells(proxyId)

	// Predict motion so that steady drift does not re-bucket every step.
	fat := aabb.Extend(B2_aabbExtension)
	if displacement.X < 0.0 {
		fat.LowerBound.X += displacement.X
	} else {
		fat.UpperBound.X += displacement.X
	}

	if displacement.Y < 0.0 {
		fat.LowerBound.Y += displacement.Y
	} else {
		fat.UpperBound.Y += displacement.Y
	}

	bp.M_proxies[proxyId].AABB = fat
	bp.insertCells(proxyId)

	return true
}

// Query every proxy whose fat AABB overlaps the supplied AABB. Each proxy is
// reported at most once.
func (bp *B2BroadPhase) Query(callback B2BroadPhaseQueryCallback, aabb B2AABB) {
	bp.M_queryStamp++
	stamp := bp.M_queryStamp

	// Returns false once the callback asks to stop.
	visit := func(proxyId int) bool {
		proxy := &bp.M_proxies[proxyId]
		if !proxy.Live || proxy.Stamp == stamp {
			return true
		}
		proxy.Stamp = stamp

		if !B2TestOverlapBoundingBoxes(proxy.AABB, aabb) {
			return true
		}

		return callback(proxyId)
	}

	lower, upper := bp.cellRange(aabb)
	if cellCount(lower, upper) > float64(len(bp.M_proxies)) {
		for proxyId := range bp.M_proxies {
			if !visit(proxyId) {
				return
			}
		}
		return
	}

	for y := lower.Y; y <= upper.Y; y++ {
		for x := lower.X; x <= upper.X; x++ {
			for _, proxyId := range bp.M_cells[B2GridCell{X: x, Y: y}] {
				if !visit(proxyId) {
					return
				}
			}
		}
	}

	for _, proxyId := range bp.M_oversized {
		if !visit(proxyId) {
			return
		}
	}
}

func (bp *B2BroadPhase) allocateProxy() int {
	if bp.M_freeList != E_nullProxy {
		proxyId := bp.M_freeList
		bp.M_freeList = bp.M_proxies[proxyId].Next
		return proxyId
	}

	bp.M_proxies = append(bp.M_proxies, B2BroadPhaseProxy{Next: E_nullProxy})
	return len(bp.M_proxies) - 1
}

func (bp B2BroadPhase) cellOf(p B2Vec2) B2GridCell {
	return B2GridCell{
		X: clampCell(math.Floor(p.X / bp.M_cellSize)),
		Y: clampCell(math.Floor(p.Y / bp.M_cellSize)),
	}
}

// NaN maps to the lower limit.
func clampCell(c float64) int {
	if c >= B2_maxGridCell {
		return B2_maxGridCell
	}
	if !(c > -B2_maxGridCell) {
		return -B2_maxGridCell
	}
	return int(c)
}

func cellCount(lower, upper B2GridCell) float64 {
	return float64(upper.X-lower.X+1) * float64(upper.Y-lower.Y+1)
}

func (bp B2BroadPhase) cellRange(aabb B2AABB) (B2GridCell, B2GridCell) {
	return bp.cellOf(aabb.LowerBound), bp.cellOf(aabb.UpperBound)
}

func (bp *B2BroadPhase) insertCells(proxyId int) {
	lower, upper := bp.cellRange(bp.M_proxies[proxyId].AABB)
	if cellCount(lower, upper) > B2_maxProxyCells {
		bp.M_proxies[proxyId].Oversized = true
		bp.M_oversized = append(bp.M_oversized, proxyId)
		return
	}

	for y := lower.Y; y <= upper.Y; y++ {
		for x := lower.X; x <= upper.X; x++ {
			cell := B2GridCell{X: x, Y: y}
			bp.M_cells[cell] = append(bp.M_cells[cell], proxyId)
		}
	}
}

func (bp *B2BroadPhase) removeCells(proxyId int) {
	proxy := &bp.M_proxies[proxyId]
	if proxy.Oversized {
		proxy.Oversized = false
		bp.M_oversized = removeProxyId(bp.M_oversized, proxyId)
		return
	}

	lower, upper := bp.cellRange(proxy.AABB)
	for y := lower.Y; y <= upper.Y; y++ {
		for x := lower.X; x <= upper.X; x++ {
			cell := B2GridCell{X: x, Y: y}
			ids := removeProxyId(bp.M_cells[cell], proxyId)
			if len(ids) == 0 {
				delete(bp.M_cells, cell)
			} else {
				bp.M_cells[cell] = ids
			}
		}
	}
}

func removeProxyId(ids []int, proxyId int) []int {
	for i, id := range ids {
		if id == proxyId {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
