package config

import (
	"voxel-terrain/internal/camera"
	"voxel-terrain/internal/terrain"
)

// State is the snapshot the pipeline renders from. It is a comparable value;
// two States are equal exactly when every parameter is.
type State struct {
	Terrain terrain.Parameters `json:"terrain" yaml:"terrain"`
	Camera  camera.Parameters  `json:"camera" yaml:"camera"`
}

// DefaultState returns the startup terrain and camera.
func DefaultState() State {
	return State{
		Terrain: terrain.DefaultParameters(),
		Camera:  camera.DefaultParameters(),
	}
}

// Apply folds u into s. A nil, unknown or malformed update returns s
// unchanged.
func Apply(s State, u *Update) State {
	switch {
	case u == nil:
	case u.field.Terrain():
		s.Terrain = ApplyTerrain(s.Terrain, u)
	case u.field.Camera():
		s.Camera = ApplyCamera(s.Camera, u)
	}
	return s
}

// ApplyAll folds updates in order.
func ApplyAll(s State, updates []Update) State {
	for i := range updates {
		s = Apply(s, &updates[i])
	}
	return s
}

// ApplyTerrain returns p with the field named by u replaced. The result is
// rejected, and p returned, if it would break a parameter invariant.
func ApplyTerrain(p terrain.Parameters, u *Update) terrain.Parameters {
	if u == nil {
		return p
	}
	next := p
	switch u.field {
	case FieldTerrainWidth:
		next.Width = float32(u.num)
	case FieldTerrainDepth:
		next.Depth = float32(u.num)
	case FieldTerrainSeed:
		next.Seed = u.whole
	case FieldTerrainVoxelSize:
		next.VoxelSize = float32(u.num)
	case FieldTerrainColor:
		c, err := terrain.ParseRGB(u.text)
		if err != nil {
			return p
		}
		next.Color = c
	case FieldTerrainMaxHeight:
		next.MaxHeight = float32(u.num)
	case FieldTerrainFalloff:
		next.FalloffRadius = float32(u.num)
	case FieldTerrainZ:
		next.Z = u.num
	case FieldTerrainOctaves:
		next.Octaves = int(u.whole)
	case FieldTerrainGain:
		next.Gain = float32(u.num)
	case FieldTerrainLacunarity:
		next.Lacunarity = u.num
	default:
		return p
	}
	if next.Validate() != nil {
		return p
	}
	return next
}

// ApplyCamera returns p with the field named by u replaced. Non-finite
// values are ignored.
func ApplyCamera(p camera.Parameters, u *Update) camera.Parameters {
	if u == nil {
		return p
	}
	next := p
	v := float32(u.num)
	switch u.field {
	case FieldCameraPositionX:
		next.Position[0] = v
	case FieldCameraPositionY:
		next.Position[1] = v
	case FieldCameraPositionZ:
		next.Position[2] = v
	case FieldCameraFieldOfViewY:
		next.FieldOfViewY = v
	case FieldCameraZFar:
		next.ZFar = v
	case FieldCameraTargetX:
		next.Target[0] = v
	case FieldCameraTargetY:
		next.Target[1] = v
	case FieldCameraTargetZ:
		next.Target[2] = v
	case FieldCameraUpX:
		next.Up[0] = v
	case FieldCameraUpY:
		next.Up[1] = v
	case FieldCameraUpZ:
		next.Up[2] = v
	default:
		return p
	}
	if !next.Finite() {
		return p
	}
	return next
}
