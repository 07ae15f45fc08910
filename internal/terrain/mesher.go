package terrain

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"voxel-terrain/internal/noise"
)

// Per-cube geometry.
const (
	VerticesPerCube  = 8
	TrianglesPerCube = 12
	indicesPerCube   = TrianglesPerCube * 3
)

// Height-graded shading: the bias added to every channel runs from ShadeLow
// at the bottom of a column to ShadeHigh at its top.
const (
	ShadeLow  float32 = -48
	ShadeHigh float32 = 48
)

// levelEpsilon is the fraction of a voxel below which a remainder is
// treated as zero.
const levelEpsilon = 1e-4

// cubeIndices are the 12 triangles of a cube over corners 0..7, laid out as
//
//	0 (0,0,0)  1 (s,0,0)  2 (s,h,0)  3 (0,h,0)
//	4 (0,0,s)  5 (s,0,s)  6 (s,h,s)  7 (0,h,s)
//
// Each face is counter-clockwise seen from outside.
var cubeIndices = [indicesPerCube]uint32{
	0, 2, 1, 0, 3, 2, // front  -z
	4, 5, 6, 4, 6, 7, // back   +z
	0, 4, 7, 0, 7, 3, // left   -x
	1, 2, 6, 1, 6, 5, // right  +x
	3, 7, 6, 3, 6, 2, // top    +y
	0, 1, 5, 0, 5, 4, // bottom -y
}

// Mesh is an indexed triangle list with one color per vertex. A built Mesh
// is never modified; rebuilding produces a new one.
type Mesh struct {
	Positions []mgl32.Vec3
	Indices   []uint32
	Colors    []color.RGBA
}

// VertexCount returns the number of vertices.
func (m Mesh) VertexCount() int { return len(m.Positions) }

// TriangleCount returns the number of triangles.
func (m Mesh) TriangleCount() int { return len(m.Indices) / 3 }

// maxColumnCubes is the tallest stack Build emits: MaxColumnLevels of relief
// plus the base voxel.
const maxColumnCubes = MaxColumnLevels + 1

// ColumnLevels splits a column height into whole voxels and the remaining
// partial height. The remainder is zero when h is within levelEpsilon of a
// multiple of voxel. Columns taller than maxColumnCubes voxels are clamped.
func ColumnLevels(h, voxel float32) (full int, remainder float32) {
	if !(h > 0) || !(voxel > 0) || math.IsInf(float64(h), 0) {
		return 0, 0
	}
	levels := float64(h) / float64(voxel)
	if levels > maxColumnCubes {
		return maxColumnCubes, 0
	}
	full = int(math.Floor(levels + levelEpsilon))
	remainder = h - float32(full)*voxel
	if remainder < voxel*levelEpsilon {
		remainder = 0
	}
	return full, remainder
}

// Shade biases base by the height-graded term for a cube whose top sits at
// fraction t of its column height.
func Shade(base RGB, t float32) color.RGBA {
	bias := ShadeLow + (ShadeHigh-ShadeLow)*clamp01(t)
	channel := func(c uint8) uint8 {
		v := float32(c) + bias
		switch {
		case v < 0:
			return 0
		case v > 255:
			return 255
		}
		return uint8(v + 0.5)
	}
	return color.RGBA{R: channel(base.R), G: channel(base.G), B: channel(base.B), A: 255}
}

// Build converts every column of the grid into a stack of cubes. Grid width
// runs along +x, depth along +z and height along +y.
func Build(g HeightGrid, p Parameters) Mesh {
	cubes := 0
	for _, h := range g.Heights {
		full, rem := ColumnLevels(h, g.VoxelSize)
		cubes += full
		if rem > 0 {
			cubes++
		}
	}

	m := Mesh{
		Positions: make([]mgl32.Vec3, 0, cubes*VerticesPerCube),
		Indices:   make([]uint32, 0, cubes*indicesPerCube),
		Colors:    make([]color.RGBA, 0, cubes*VerticesPerCube),
	}
	for col := 0; col < g.Cols; col++ {
		for row := 0; row < g.Rows; row++ {
			x, z := g.Origin(col, row)
			m.addColumn(x, z, g.At(col, row), g.VoxelSize, p.Color)
		}
	}
	return m
}

func (m *Mesh) addColumn(x, z, h, voxel float32, base RGB) {
	full, rem := ColumnLevels(h, voxel)
	var y float32
	for range full {
		m.addCube(mgl32.Vec3{x, y, z}, voxel, voxel, Shade(base, (y+voxel)/h))
		y += voxel
	}
	if rem > 0 {
		m.addCube(mgl32.Vec3{x, y, z}, voxel, rem, Shade(base, 1))
	}
}

func (m *Mesh) addCube(origin mgl32.Vec3, size, height float32, c color.RGBA) {
	start := uint32(len(m.Positions))
	m.Positions = append(m.Positions,
		origin,
		origin.Add(mgl32.Vec3{size, 0, 0}),
		origin.Add(mgl32.Vec3{size, height, 0}),
		origin.Add(mgl32.Vec3{0, height, 0}),
		origin.Add(mgl32.Vec3{0, 0, size}),
		origin.Add(mgl32.Vec3{size, 0, size}),
		origin.Add(mgl32.Vec3{size, height, size}),
		origin.Add(mgl32.Vec3{0, height, size}),
	)
	for _, i := range cubeIndices {
		m.Indices = append(m.Indices, start+i)
	}
	for range VerticesPerCube {
		m.Colors = append(m.Colors, c)
	}
}

// Regenerate builds the complete mesh for p. It is deterministic for a fixed
// sampler and parameter set.
func Regenerate(s noise.Sampler, p Parameters) Mesh {
	return Build(BuildGrid(s, p), p)
}
