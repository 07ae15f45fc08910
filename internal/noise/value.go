package noise

import "math"

// Value is hash-lattice value noise: random values on the integer lattice,
// blended with a quintic fade. It needs no permutation table, so it is
// stateless and seed changes are free.
type Value struct{}

// NewValue creates a value-noise sampler.
func NewValue() Value {
	return Value{}
}

// Sample3D implements Sampler.
func (Value) Sample3D(seed int64, x, y, z float64) float32 {
	return clampUnit(valueNoise3D(x, y, z, seed)*2 - 1)
}

// fade is the smoothstep polynomial 6t^5 - 15t^4 + 10t^3.
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// hash3 is a SplitMix64 style hash with a distinct odd multiplier per axis,
// so swapping coordinates changes the result.
func hash3(x, y, z int64, seed int64) uint64 {
	v := uint64(x)*0x9E3779B97F4A7C15 + uint64(y)*0x517CC1B727220A95 + uint64(z)*0x6C62272E07BB0142 + uint64(seed)
	v += 0x9E3779B97F4A7C15
	v = (v ^ (v >> 30)) * 0xBF58476D1CE4E5B9
	v = (v ^ (v >> 27)) * 0x94D049BB133111EB
	return v ^ (v >> 31)
}

// latticeValue3D maps the lattice hash into [0,1].
func latticeValue3D(x, y, z int64, seed int64) float64 {
	return float64(hash3(x, y, z, seed)&0xFFFFFFFF) / float64(0xFFFFFFFF)
}

// valueNoise3D returns trilinearly blended lattice values in [0,1].
func valueNoise3D(x, y, z float64, seed int64) float64 {
	x0, y0, z0 := math.Floor(x), math.Floor(y), math.Floor(z)
	ix, iy, iz := int64(x0), int64(y0), int64(z0)

	fx := fade(x - x0)
	fy := fade(y - y0)
	fz := fade(z - z0)

	corner := func(dx, dy, dz int64) float64 {
		return latticeValue3D(ix+dx, iy+dy, iz+dz, seed)
	}

	// Along X, then Y, then Z.
	i00 := lerp(corner(0, 0, 0), corner(1, 0, 0), fx)
	i10 := lerp(corner(0, 1, 0), corner(1, 1, 0), fx)
	i01 := lerp(corner(0, 0, 1), corner(1, 0, 1), fx)
	i11 := lerp(corner(0, 1, 1), corner(1, 1, 1), fx)

	return lerp(lerp(i00, i10, fy), lerp(i01, i11, fy), fz)
}
