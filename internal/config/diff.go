package config

import (
	"voxel-terrain/internal/camera"
	"voxel-terrain/internal/terrain"
)

// Diff returns the updates that turn from into to, one per differing field,
// terrain fields first. Applying them in any order yields to.
func Diff(from, to State) []Update {
	return append(diffTerrain(from.Terrain, to.Terrain), diffCamera(from.Camera, to.Camera)...)
}

func diffTerrain(a, b terrain.Parameters) []Update {
	var out []Update
	add := func(changed bool, u Update) {
		if changed {
			out = append(out, u)
		}
	}
	add(a.Width != b.Width, TerrainWidth(b.Width))
	add(a.Depth != b.Depth, TerrainDepth(b.Depth))
	add(a.Seed != b.Seed, TerrainSeed(b.Seed))
	add(a.VoxelSize != b.VoxelSize, TerrainVoxelSize(b.VoxelSize))
	add(a.Color != b.Color, TerrainColor(b.Color.Hex()))
	add(a.MaxHeight != b.MaxHeight, TerrainMaxHeight(b.MaxHeight))
	add(a.FalloffRadius != b.FalloffRadius, TerrainFalloff(b.FalloffRadius))
	add(a.Z != b.Z, TerrainZ(b.Z))
	add(a.Octaves != b.Octaves, TerrainOctaves(b.Octaves))
	add(a.Gain != b.Gain, TerrainGain(b.Gain))
	add(a.Lacunarity != b.Lacunarity, TerrainLacunarity(b.Lacunarity))
	return out
}

func diffCamera(a, b camera.Parameters) []Update {
	var out []Update
	vec := [...]struct {
		from, to [3]float32
		ctor     [3]func(float32) Update
	}{
		{a.Position, b.Position, [3]func(float32) Update{CameraPositionX, CameraPositionY, CameraPositionZ}},
		{a.Target, b.Target, [3]func(float32) Update{CameraTargetX, CameraTargetY, CameraTargetZ}},
		{a.Up, b.Up, [3]func(float32) Update{CameraUpX, CameraUpY, CameraUpZ}},
	}
	for _, v := range vec {
		for i := range 3 {
			if v.from[i] != v.to[i] {
				out = append(out, v.ctor[i](v.to[i]))
			}
		}
	}
	if a.FieldOfViewY != b.FieldOfViewY {
		out = append(out, CameraFieldOfViewY(b.FieldOfViewY))
	}
	if a.ZFar != b.ZFar {
		out = append(out, CameraZFar(b.ZFar))
	}
	return out
}
