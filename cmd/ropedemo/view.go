package main

import (
	"math"

	b2rope "github.com/Alexander-r/b2rope.go"
)

// Terminal cells are roughly twice as tall as they are wide.
const cellAspect = 2.0

// Rows reserved above the simulation origin for the status line.
const topMargin = 2

// view maps simulation space (Y up) to terminal cells (Y down). The world
// origin sits at the top center of the screen.
type view struct {
	width, height int
	cellsPerUnit  float64
}

func newView(width, height int, cellsPerUnit float64) view {
	return view{width: width, height: height, cellsPerUnit: cellsPerUnit}
}

func (v *view) resize(width, height int) {
	v.width = width
	v.height = height
}

func (v view) toScreen(p b2rope.B2Vec2) (int, int) {
	x := float64(v.width/2) + p.X*v.cellsPerUnit*cellAspect
	y := float64(topMargin) - p.Y*v.cellsPerUnit
	return int(math.Round(x)), int(math.Round(y))
}

func (v view) toWorld(x, y int) b2rope.B2Vec2 {
	return b2rope.MakeB2Vec2(
		(float64(x)-float64(v.width/2))/(v.cellsPerUnit*cellAspect),
		(float64(topMargin)-float64(y))/v.cellsPerUnit,
	)
}

func (v view) contains(x, y int) bool {
	return x >= 0 && x < v.width && y >= 0 && y < v.height
}

// segmentCells rasterizes the segment a-b into screen cells, sampling at
// least once per cell along the longer axis.
func (v view) segmentCells(a, b b2rope.B2Vec2, visit func(x, y int)) {
	ax, ay := v.toScreen(a)
	bx, by := v.toScreen(b)

	steps := maxInt(absInt(bx-ax), absInt(by-ay))
	if steps == 0 {
		visit(ax, ay)
		return
	}

	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := float64(ax) + float64(bx-ax)*t
		y := float64(ay) + float64(by-ay)*t
		visit(int(math.Round(x)), int(math.Round(y)))
	}
}

// circleCells visits every on-screen cell whose center lies inside the circle.
func (v view) circleCells(shape b2rope.B2CircleShape, visit func(x, y int)) {
	var aabb b2rope.B2AABB
	shape.ComputeAABB(&aabb)

	x0, y1 := v.toScreen(aabb.LowerBound)
	x1, y0 := v.toScreen(aabb.UpperBound)

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if !v.contains(x, y) {
				continue
			}
			if shape.TestPoint(v.toWorld(x, y)) {
				visit(x, y)
			}
		}
	}
}

func absInt(a int) int {
	if a < 0 {
		return -a
	}
	return a
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
