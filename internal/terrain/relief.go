package terrain

import "math"

// radiusEpsilon is the smallest falloff radius treated as non-zero.
const radiusEpsilon = 1e-6

type knot struct {
	x, y float32
}

// reliefCurve flattens lowlands and sharpens peaks. Knots are sorted by x and
// the curve is monotonic with Remap(0) = 0 and Remap(1) = 1.
var reliefCurve = [...]knot{
	{0, 0},
	{0.2, 0.02},
	{0.3, 0.05},
	{0.5, 0.15},
	{0.7, 0.35},
	{0.85, 0.6},
	{0.95, 0.8},
	{1, 1},
}

// Remap applies the relief curve by linear interpolation between the two
// bracketing knots. Inputs outside [0,1] clamp to the end knots.
func Remap(h float32) float32 {
	first, last := reliefCurve[0], reliefCurve[len(reliefCurve)-1]
	switch {
	case h != h || h <= first.x:
		return first.y
	case h >= last.x:
		return last.y
	}
	for i := 1; i < len(reliefCurve); i++ {
		k0, k1 := reliefCurve[i-1], reliefCurve[i]
		if h <= k1.x {
			return k0.y + (h-k0.x)*(k1.y-k0.y)/(k1.x-k0.x)
		}
	}
	return last.y
}

// Falloff attenuates height linearly with distance from the origin, reaching
// zero at FalloffRadius. A zero radius flattens everything.
func Falloff(p Parameters, x, y float32) float32 {
	if !(p.FalloffRadius > radiusEpsilon) {
		return 0
	}
	dist := float32(math.Sqrt(float64(x*x + y*y)))
	return max(0, 1-dist/p.FalloffRadius)
}

// Shape turns a normalized fractal height into the final column height:
// remapped, scaled by MaxHeight, attenuated by falloff and lifted by one
// voxel so every column has at least one cube.
func Shape(p Parameters, normalized, x, y float32) float32 {
	h := Remap(normalized)*p.MaxHeight*Falloff(p, x, y) + p.VoxelSize
	if math.IsNaN(float64(h)) || math.IsInf(float64(h), 0) {
		return p.VoxelSize
	}
	return h
}
