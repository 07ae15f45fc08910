package config

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"voxel-terrain/internal/terrain"
)

var (
	// ErrUnknownField is returned for a field name or tag outside the enum.
	ErrUnknownField = errors.New("unknown field")
	// ErrInvalidValue is returned when a value cannot be parsed or is out of
	// range for its field.
	ErrInvalidValue = errors.New("invalid value")
)

// Field names one mutable parameter.
type Field uint8

const (
	FieldUnknown Field = iota

	FieldTerrainWidth
	FieldTerrainDepth
	FieldTerrainSeed
	FieldTerrainVoxelSize
	FieldTerrainColor
	FieldTerrainMaxHeight
	FieldTerrainFalloff
	FieldTerrainZ
	FieldTerrainOctaves
	FieldTerrainGain
	FieldTerrainLacunarity

	FieldCameraPositionX
	FieldCameraPositionY
	FieldCameraPositionZ
	FieldCameraFieldOfViewY
	FieldCameraZFar
	FieldCameraTargetX
	FieldCameraTargetY
	FieldCameraTargetZ
	FieldCameraUpX
	FieldCameraUpY
	FieldCameraUpZ

	fieldCount
)

var fieldNames = [fieldCount]string{
	FieldUnknown:            "unknown",
	FieldTerrainWidth:       "terrain.width",
	FieldTerrainDepth:       "terrain.depth",
	FieldTerrainSeed:        "terrain.seed",
	FieldTerrainVoxelSize:   "terrain.voxel_size",
	FieldTerrainColor:       "terrain.color",
	FieldTerrainMaxHeight:   "terrain.max_height",
	FieldTerrainFalloff:     "terrain.falloff_radius",
	FieldTerrainZ:           "terrain.z",
	FieldTerrainOctaves:     "terrain.octaves",
	FieldTerrainGain:        "terrain.gain",
	FieldTerrainLacunarity:  "terrain.lacunarity",
	FieldCameraPositionX:    "camera.position.x",
	FieldCameraPositionY:    "camera.position.y",
	FieldCameraPositionZ:    "camera.position.z",
	FieldCameraFieldOfViewY: "camera.field_of_view_y",
	FieldCameraZFar:         "camera.z_far",
	FieldCameraTargetX:      "camera.target.x",
	FieldCameraTargetY:      "camera.target.y",
	FieldCameraTargetZ:      "camera.target.z",
	FieldCameraUpX:          "camera.up.x",
	FieldCameraUpY:          "camera.up.y",
	FieldCameraUpZ:          "camera.up.z",
}

func (f Field) String() string {
	if f >= fieldCount {
		return fieldNames[FieldUnknown]
	}
	return fieldNames[f]
}

// Valid reports whether f names a real field.
func (f Field) Valid() bool {
	return f > FieldUnknown && f < fieldCount
}

// Terrain reports whether f belongs to terrain.Parameters.
func (f Field) Terrain() bool {
	return f >= FieldTerrainWidth && f <= FieldTerrainLacunarity
}

// Camera reports whether f belongs to camera.Parameters.
func (f Field) Camera() bool {
	return f >= FieldCameraPositionX && f <= FieldCameraUpZ
}

// Fields lists every valid field in declaration order.
func Fields() []Field {
	out := make([]Field, 0, fieldCount-1)
	for f := FieldUnknown + 1; f < fieldCount; f++ {
		out = append(out, f)
	}
	return out
}

// FieldNames lists the string form of every valid field.
func FieldNames() []string {
	fields := Fields()
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.String()
	}
	return out
}

// ParseField maps a stable field name back to its tag.
func ParseField(name string) (Field, error) {
	for f := FieldUnknown + 1; f < fieldCount; f++ {
		if fieldNames[f] == name {
			return f, nil
		}
	}
	return FieldUnknown, fmt.Errorf("%w: %q", ErrUnknownField, name)
}

// Update replaces exactly one field. The zero Update has FieldUnknown and is
// ignored by every fold.
type Update struct {
	field Field
	num   float64 // float fields
	whole int64   // seed, octaves
	text  string  // color
}

// Field returns the tag of the field this update replaces.
func (u Update) Field() Field { return u.field }

func number(f Field, v float64) Update { return Update{field: f, num: v} }

func TerrainWidth(v float32) Update     { return number(FieldTerrainWidth, float64(v)) }
func TerrainDepth(v float32) Update     { return number(FieldTerrainDepth, float64(v)) }
func TerrainSeed(v int64) Update        { return Update{field: FieldTerrainSeed, whole: v} }
func TerrainVoxelSize(v float32) Update { return number(FieldTerrainVoxelSize, float64(v)) }
func TerrainMaxHeight(v float32) Update { return number(FieldTerrainMaxHeight, float64(v)) }
func TerrainFalloff(v float32) Update   { return number(FieldTerrainFalloff, float64(v)) }
func TerrainZ(v float64) Update         { return number(FieldTerrainZ, v) }
func TerrainOctaves(v int) Update       { return Update{field: FieldTerrainOctaves, whole: int64(v)} }
func TerrainGain(v float32) Update      { return number(FieldTerrainGain, float64(v)) }
func TerrainLacunarity(v float64) Update {
	return number(FieldTerrainLacunarity, v)
}

// TerrainColor carries the color as text; the fold decodes it and ignores
// strings that are not six hex digits.
func TerrainColor(hex string) Update { return Update{field: FieldTerrainColor, text: hex} }

func CameraPositionX(v float32) Update    { return number(FieldCameraPositionX, float64(v)) }
func CameraPositionY(v float32) Update    { return number(FieldCameraPositionY, float64(v)) }
func CameraPositionZ(v float32) Update    { return number(FieldCameraPositionZ, float64(v)) }
func CameraFieldOfViewY(v float32) Update { return number(FieldCameraFieldOfViewY, float64(v)) }
func CameraZFar(v float32) Update         { return number(FieldCameraZFar, float64(v)) }
func CameraTargetX(v float32) Update      { return number(FieldCameraTargetX, float64(v)) }
func CameraTargetY(v float32) Update      { return number(FieldCameraTargetY, float64(v)) }
func CameraTargetZ(v float32) Update      { return number(FieldCameraTargetZ, float64(v)) }
func CameraUpX(v float32) Update          { return number(FieldCameraUpX, float64(v)) }
func CameraUpY(v float32) Update          { return number(FieldCameraUpY, float64(v)) }
func CameraUpZ(v float32) Update          { return number(FieldCameraUpZ, float64(v)) }

// single reports whether the field is stored as float32 in its parameters.
func (f Field) single() bool {
	switch f {
	case FieldTerrainZ, FieldTerrainLacunarity:
		return false
	}
	return f != FieldTerrainSeed && f != FieldTerrainOctaves && f != FieldTerrainColor
}

// Encode returns the canonical text form of the value. Parse(u.Field(),
// u.Encode()) reproduces u.
func (u Update) Encode() string {
	switch u.field {
	case FieldTerrainSeed, FieldTerrainOctaves:
		return strconv.FormatInt(u.whole, 10)
	case FieldTerrainColor:
		return u.text
	case FieldUnknown:
		return ""
	}
	if u.field.single() {
		return strconv.FormatFloat(u.num, 'g', -1, 32)
	}
	return strconv.FormatFloat(u.num, 'g', -1, 64)
}

func (u Update) String() string {
	return u.field.String() + "=" + u.Encode()
}

// Parse validates raw as a value for field f. It is the single boundary
// check shared by every intake path; cross-field limits are enforced later
// by the fold.
func Parse(f Field, raw string) (Update, error) {
	if !f.Valid() {
		return Update{}, fmt.Errorf("%w: %d", ErrUnknownField, f)
	}

	switch f {
	case FieldTerrainSeed:
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return Update{}, fmt.Errorf("%w: %s: %q is not an integer", ErrInvalidValue, f, raw)
		}
		return TerrainSeed(v), nil
	case FieldTerrainOctaves:
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > terrain.MaxOctaves {
			return Update{}, fmt.Errorf("%w: %s must be an integer in [1, %d], got %q", ErrInvalidValue, f, terrain.MaxOctaves, raw)
		}
		return TerrainOctaves(v), nil
	case FieldTerrainColor:
		c, err := terrain.ParseRGB(raw)
		if err != nil {
			return Update{}, fmt.Errorf("%w: %s: %w", ErrInvalidValue, f, err)
		}
		return TerrainColor(c.Hex()), nil
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return Update{}, fmt.Errorf("%w: %s: %q is not a finite number", ErrInvalidValue, f, raw)
	}
	if f.single() {
		if math.Abs(v) > math.MaxFloat32 {
			return Update{}, fmt.Errorf("%w: %s: %q overflows float32", ErrInvalidValue, f, raw)
		}
		v = float64(float32(v))
	}
	if f == FieldTerrainVoxelSize && !(float32(v) > 0) {
		return Update{}, fmt.Errorf("%w: %s must be > 0, got %q", ErrInvalidValue, f, raw)
	}
	return number(f, v), nil
}

// ParseNamed is Parse keyed by the stable field name.
func ParseNamed(name, raw string) (Update, error) {
	f, err := ParseField(name)
	if err != nil {
		return Update{}, err
	}
	return Parse(f, raw)
}
