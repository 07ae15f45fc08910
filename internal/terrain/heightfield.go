package terrain

import (
	"math"

	"voxel-terrain/internal/noise"
)

// boundEpsilon keeps the normalizing amplitude bound away from zero.
const boundEpsilon = 1e-6

// FractalHeight sums Octaves noise samples at (x, y) and normalizes the sum to
// [0,1]. Frequency grows by Lacunarity and amplitude by Gain per octave.
// Coordinates and frequency stay in float64 so deep octaves do not drift.
func FractalHeight(s noise.Sampler, p Parameters, x, y float32) float32 {
	if p.Octaves < 1 {
		return 0.5
	}

	var sum float32
	amplitude := float32(1)
	frequency := 1.0
	for range p.Octaves {
		sum += s.Sample3D(p.Seed, float64(x)*frequency, float64(y)*frequency, p.Z) * amplitude
		amplitude *= p.Gain
		frequency *= p.Lacunarity
	}

	h := (sum/amplitudeBound(p.Gain, p.Octaves) + 1) * 0.5
	return clamp01(h)
}

// amplitudeBound is the closed form 2(1 - gain^octaves). With gain = 1 the
// form degenerates to 0; the exact sum of unit amplitudes is used instead.
func amplitudeBound(gain float32, octaves int) float32 {
	bound := 2 * (1 - float32(math.Pow(float64(gain), float64(octaves))))
	if bound < 0 {
		bound = -bound
	}
	if bound < boundEpsilon || math.IsInf(float64(bound), 0) || math.IsNaN(float64(bound)) {
		return float32(octaves)
	}
	return bound
}

func clamp01(v float32) float32 {
	switch {
	case v != v:
		return 0
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
