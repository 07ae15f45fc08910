package terrain

import (
	"math"

	"voxel-terrain/internal/noise"
)

// extentEpsilon absorbs float error so 2.0000001/1 still yields 2 columns.
const extentEpsilon = 1e-4

// HeightGrid holds one shaped height per column. Heights are stored
// width-major: index col*Rows + row.
type HeightGrid struct {
	Cols      int
	Rows      int
	VoxelSize float32
	Heights   []float32
}

// Len returns the number of columns in the grid.
func (g HeightGrid) Len() int {
	return len(g.Heights)
}

// At returns the height of column (col, row).
func (g HeightGrid) At(col, row int) float32 {
	return g.Heights[col*g.Rows+row]
}

// Origin returns the ground-level corner of column (col, row) in the
// width/depth plane.
func (g HeightGrid) Origin(col, row int) (x, y float32) {
	return float32(col) * g.VoxelSize, float32(row) * g.VoxelSize
}

// MaxHeight returns the tallest column, or 0 for an empty grid.
func (g HeightGrid) MaxHeight() float32 {
	var m float32
	for _, h := range g.Heights {
		m = max(m, h)
	}
	return m
}

// GridSize returns the column counts along width and depth: one column per
// voxel step starting at 0 while the coordinate is below the footprint.
func GridSize(p Parameters) (cols, rows int) {
	return gridExtent(p.Width, p.VoxelSize), gridExtent(p.Depth, p.VoxelSize)
}

func gridExtent(length, voxel float32) int {
	if !(length > 0) || !(voxel > 0) {
		return 0
	}
	n := math.Ceil(float64(length)/float64(voxel) - extentEpsilon)
	if math.IsNaN(n) || n < 1 {
		return 1
	}
	if n > MaxGridExtent {
		return MaxGridExtent
	}
	return int(n)
}

// BuildGrid samples and shapes every column of the footprint.
func BuildGrid(s noise.Sampler, p Parameters) HeightGrid {
	cols, rows := GridSize(p)
	g := HeightGrid{
		Cols:      cols,
		Rows:      rows,
		VoxelSize: p.VoxelSize,
		Heights:   make([]float32, cols*rows),
	}
	for col := range cols {
		for row := range rows {
			x, y := g.Origin(col, row)
			g.Heights[col*rows+row] = Shape(p, FractalHeight(s, p, x, y), x, y)
		}
	}
	return g
}
