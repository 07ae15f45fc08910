package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spf13/viper"

	"voxel-terrain/internal/camera"
	"voxel-terrain/internal/terrain"
)

// EnvPrefix prefixes environment overrides: terrain.seed is read from
// VOXEL_TERRAIN_TERRAIN_SEED.
const EnvPrefix = "VOXEL_TERRAIN"

// Settings is the process configuration read at startup.
type Settings struct {
	Server struct {
		Addr string
	}
	Log struct {
		Level  string
		Format string
	}
	Noise         string
	QueueCapacity int
	Journal       struct {
		Path   string
		Replay bool
	}
	Window struct {
		Width  int
		Height int
		Title  string
	}
	FPSLimit  int
	Wireframe bool

	Terrain terrain.Parameters
	Camera  camera.Parameters
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", "0.0.0.0:8090")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("noise", "opensimplex")
	v.SetDefault("queue.capacity", 256)
	v.SetDefault("journal.path", "")
	v.SetDefault("journal.replay", true)
	v.SetDefault("window.width", 1280)
	v.SetDefault("window.height", 720)
	v.SetDefault("window.title", "voxel-terrain")
	v.SetDefault("render.fps_limit", 60)
	v.SetDefault("render.wireframe", false)

	t := terrain.DefaultParameters()
	v.SetDefault("terrain.width", t.Width)
	v.SetDefault("terrain.depth", t.Depth)
	v.SetDefault("terrain.seed", t.Seed)
	v.SetDefault("terrain.voxel_size", t.VoxelSize)
	v.SetDefault("terrain.color", t.Color.Hex())
	v.SetDefault("terrain.max_height", t.MaxHeight)
	v.SetDefault("terrain.falloff_radius", t.FalloffRadius)
	v.SetDefault("terrain.z", t.Z)
	v.SetDefault("terrain.octaves", t.Octaves)
	v.SetDefault("terrain.gain", t.Gain)
	v.SetDefault("terrain.lacunarity", t.Lacunarity)

	c := camera.DefaultParameters()
	setVecDefault(v, "camera.position", c.Position)
	setVecDefault(v, "camera.target", c.Target)
	setVecDefault(v, "camera.up", c.Up)
	v.SetDefault("camera.field_of_view_y", c.FieldOfViewY)
	v.SetDefault("camera.z_far", c.ZFar)
}

func setVecDefault(v *viper.Viper, key string, vec mgl32.Vec3) {
	v.SetDefault(key+".x", vec.X())
	v.SetDefault(key+".y", vec.Y())
	v.SetDefault(key+".z", vec.Z())
}

func getVec(v *viper.Viper, key string) mgl32.Vec3 {
	return mgl32.Vec3{
		float32(v.GetFloat64(key + ".x")),
		float32(v.GetFloat64(key + ".y")),
		float32(v.GetFloat64(key + ".z")),
	}
}

// Load reads settings from defaults, an optional YAML file and the
// environment, in increasing precedence. With an empty path it looks for
// voxel-terrain.yaml in the working directory and carries on without one.
func Load(path string) (Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Settings{}, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		v.SetConfigName("voxel-terrain")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Settings{}, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	var s Settings
	s.Server.Addr = v.GetString("server.addr")
	s.Log.Level = v.GetString("log.level")
	s.Log.Format = v.GetString("log.format")
	s.Noise = v.GetString("noise")
	s.QueueCapacity = v.GetInt("queue.capacity")
	s.Journal.Path = v.GetString("journal.path")
	s.Journal.Replay = v.GetBool("journal.replay")
	s.Window.Width = v.GetInt("window.width")
	s.Window.Height = v.GetInt("window.height")
	s.Window.Title = v.GetString("window.title")
	s.FPSLimit = v.GetInt("render.fps_limit")
	s.Wireframe = v.GetBool("render.wireframe")

	color, err := terrain.ParseRGB(v.GetString("terrain.color"))
	if err != nil {
		return Settings{}, fmt.Errorf("terrain.color: %w", err)
	}
	s.Terrain = terrain.Parameters{
		Width:         float32(v.GetFloat64("terrain.width")),
		Depth:         float32(v.GetFloat64("terrain.depth")),
		Seed:          v.GetInt64("terrain.seed"),
		VoxelSize:     float32(v.GetFloat64("terrain.voxel_size")),
		Color:         color,
		MaxHeight:     float32(v.GetFloat64("terrain.max_height")),
		FalloffRadius: float32(v.GetFloat64("terrain.falloff_radius")),
		Z:             v.GetFloat64("terrain.z"),
		Octaves:       v.GetInt("terrain.octaves"),
		Gain:          float32(v.GetFloat64("terrain.gain")),
		Lacunarity:    v.GetFloat64("terrain.lacunarity"),
	}
	s.Camera = camera.Parameters{
		Position:     getVec(v, "camera.position"),
		Target:       getVec(v, "camera.target"),
		Up:           getVec(v, "camera.up"),
		FieldOfViewY: float32(v.GetFloat64("camera.field_of_view_y")),
		ZFar:         float32(v.GetFloat64("camera.z_far")),
	}

	if s.QueueCapacity < 1 {
		return Settings{}, fmt.Errorf("queue.capacity must be >= 1, got %d", s.QueueCapacity)
	}
	return s, nil
}

// State returns the initial snapshot described by the settings.
func (s Settings) State() (State, error) {
	if err := s.Terrain.Validate(); err != nil {
		return State{}, fmt.Errorf("terrain: %w", err)
	}
	if !s.Camera.Finite() {
		return State{}, errors.New("camera: parameters must be finite")
	}
	return State{Terrain: s.Terrain, Camera: s.Camera}, nil
}
