package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// ZNear is the fixed near clip distance.
const ZNear float32 = 0.1

// Parameters describe where the viewer looks from. Like terrain.Parameters
// they are replaced wholesale on every change.
type Parameters struct {
	Position     mgl32.Vec3 `json:"position" yaml:"position,flow"`
	Target       mgl32.Vec3 `json:"target" yaml:"target,flow"`
	Up           mgl32.Vec3 `json:"up" yaml:"up,flow"`
	FieldOfViewY float32    `json:"field_of_view_y" yaml:"field_of_view_y"`
	ZFar         float32    `json:"z_far" yaml:"z_far"`
}

// DefaultParameters returns the startup camera.
func DefaultParameters() Parameters {
	return Parameters{
		Position:     mgl32.Vec3{35, 22, 82},
		Target:       mgl32.Vec3{18, -10, 0},
		Up:           mgl32.Vec3{0, 15, 0},
		FieldOfViewY: 45,
		ZFar:         100,
	}
}

// Finite reports whether every component is a finite number.
func (p Parameters) Finite() bool {
	vals := []float32{p.FieldOfViewY, p.ZFar}
	for _, v := range []mgl32.Vec3{p.Position, p.Target, p.Up} {
		vals = append(vals, v[:]...)
	}
	for _, v := range vals {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}
