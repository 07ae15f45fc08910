package noise

import (
	"sync"

	"github.com/ojrac/opensimplex-go"
)

// OpenSimplex samples OpenSimplex noise. The generator for the most recently
// used seed is kept, so a stable seed costs one permutation table.
type OpenSimplex struct {
	mu   sync.Mutex
	seed int64
	gen  opensimplex.Noise
}

// NewOpenSimplex creates an OpenSimplex sampler.
func NewOpenSimplex() *OpenSimplex {
	return &OpenSimplex{}
}

// Sample3D implements Sampler.
func (s *OpenSimplex) Sample3D(seed int64, x, y, z float64) float32 {
	return clampUnit(s.generator(seed).Eval3(x, y, z))
}

func (s *OpenSimplex) generator(seed int64) opensimplex.Noise {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen == nil || s.seed != seed {
		s.gen = opensimplex.New(seed)
		s.seed = seed
	}
	return s.gen
}
