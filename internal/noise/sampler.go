package noise

import (
	"fmt"
	"math"
	"strings"
)

// Sampler is a deterministic 3D noise function keyed by an integer seed.
// Implementations return values in [-1, 1] and are safe for concurrent use.
type Sampler interface {
	Sample3D(seed int64, x, y, z float64) float32
}

// Sampler kinds accepted by New.
const (
	KindOpenSimplex = "opensimplex"
	KindPerlin      = "perlin"
	KindValue       = "value"
)

// Kinds lists every sampler kind New understands.
func Kinds() []string {
	return []string{KindOpenSimplex, KindPerlin, KindValue}
}

// New returns a fresh sampler of the given kind. An empty kind selects OpenSimplex.
func New(kind string) (Sampler, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", KindOpenSimplex:
		return NewOpenSimplex(), nil
	case KindPerlin:
		return NewPerlin(), nil
	case KindValue:
		return NewValue(), nil
	default:
		return nil, fmt.Errorf("unknown noise kind %q (want one of %s)", kind, strings.Join(Kinds(), ", "))
	}
}

// clampUnit narrows a raw sample to float32 in [-1, 1]. NaN maps to 0.
func clampUnit(v float64) float32 {
	if math.IsNaN(v) {
		return 0
	}
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return float32(v)
}
