package terrain

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// Limits on derived sizes, applied while building so that a footprint or
// column beyond them cannot allocate millions of cubes per frame. They clamp
// the output and never reject parameters.
const (
	MaxGridExtent = 1024 // columns per axis
	// MaxColumnLevels bounds max_height in voxels. Shape lifts every column
	// by one voxel, so a column may hold MaxColumnLevels+1 cubes.
	MaxColumnLevels = 1024
	MaxOctaves      = 16
)

// ErrInvalidColor is returned when a color string is not six hex digits.
var ErrInvalidColor = errors.New("color must be six hex digits")

// RGB is a 24-bit base color.
type RGB struct {
	R, G, B uint8
}

// ParseRGB decodes "rrggbb" into its three channels.
func ParseRGB(s string) (RGB, error) {
	if len(s) != 6 {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	var ch [3]uint8
	for i := range ch {
		v, err := strconv.ParseUint(s[i*2:i*2+2], 16, 8)
		if err != nil {
			return RGB{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		ch[i] = uint8(v)
	}
	return RGB{R: ch[0], G: ch[1], B: ch[2]}, nil
}

// Hex returns the lowercase "rrggbb" form.
func (c RGB) Hex() string {
	return fmt.Sprintf("%02x%02x%02x", c.R, c.G, c.B)
}

func (c RGB) String() string { return c.Hex() }

// MarshalText implements encoding.TextMarshaler.
func (c RGB) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *RGB) UnmarshalText(b []byte) error {
	v, err := ParseRGB(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// Parameters fully determine a terrain. They are treated as an immutable
// value: changes produce a modified copy.
type Parameters struct {
	Width         float32 `json:"width" yaml:"width"`
	Depth         float32 `json:"depth" yaml:"depth"`
	Seed          int64   `json:"seed" yaml:"seed"`
	VoxelSize     float32 `json:"voxel_size" yaml:"voxel_size"`
	Color         RGB     `json:"color" yaml:"color"`
	MaxHeight     float32 `json:"max_height" yaml:"max_height"`
	FalloffRadius float32 `json:"falloff_radius" yaml:"falloff_radius"`
	// Z is a fixed offset along the third noise axis, not a grid axis.
	Z          float64 `json:"z" yaml:"z"`
	Octaves    int     `json:"octaves" yaml:"octaves"`
	Gain       float32 `json:"gain" yaml:"gain"`
	Lacunarity float64 `json:"lacunarity" yaml:"lacunarity"`
}

// DefaultParameters returns the terrain shown at startup.
func DefaultParameters() Parameters {
	return Parameters{
		Width:         50,
		Depth:         50,
		Seed:          40000345266,
		VoxelSize:     1,
		Color:         RGB{R: 0x30, G: 0x46, B: 0x30},
		MaxHeight:     25,
		FalloffRadius: 60,
		Z:             0,
		Octaves:       3,
		Gain:          0.5,
		Lacunarity:    2,
	}
}

// Validate reports the first invariant the parameters break. Every check
// looks at a single field, so folding updates to different fields commutes.
func (p Parameters) Validate() error {
	finite := map[string]float64{
		"width":          float64(p.Width),
		"depth":          float64(p.Depth),
		"voxel_size":     float64(p.VoxelSize),
		"max_height":     float64(p.MaxHeight),
		"falloff_radius": float64(p.FalloffRadius),
		"z":              p.Z,
		"gain":           float64(p.Gain),
		"lacunarity":     p.Lacunarity,
	}
	for name, v := range finite {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s must be finite", name)
		}
	}
	switch {
	case p.VoxelSize <= 0:
		return fmt.Errorf("voxel_size must be > 0, got %v", p.VoxelSize)
	case p.Octaves < 1 || p.Octaves > MaxOctaves:
		return fmt.Errorf("octaves must be in [1, %d], got %d", MaxOctaves, p.Octaves)
	}
	return nil
}
