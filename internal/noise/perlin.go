package noise

import (
	"sync"

	"github.com/aquilax/go-perlin"
)

// Perlin generator settings: weight 2, harmonic scaling 2, 3 internal octaves.
const (
	perlinAlpha = 2.0
	perlinBeta  = 2.0
	perlinN     = 3
)

// Perlin samples classic gradient noise. Gradient noise is zero on integer
// lattice points, so grids aligned to whole units with z = 0 come out flat;
// offset z to avoid that.
type Perlin struct {
	mu   sync.Mutex
	seed int64
	gen  *perlin.Perlin
}

// NewPerlin creates a Perlin sampler.
func NewPerlin() *Perlin {
	return &Perlin{}
}

// Sample3D implements Sampler.
func (s *Perlin) Sample3D(seed int64, x, y, z float64) float32 {
	return clampUnit(s.generator(seed).Noise3D(x, y, z))
}

func (s *Perlin) generator(seed int64) *perlin.Perlin {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen == nil || s.seed != seed {
		s.gen = perlin.NewPerlin(perlinAlpha, perlinBeta, perlinN, seed)
		s.seed = seed
	}
	return s.gen
}
