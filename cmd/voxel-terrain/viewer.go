package main

import (
	"context"
	"fmt"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/rs/zerolog"

	"voxel-terrain/internal/camera"
	"voxel-terrain/internal/config"
	"voxel-terrain/internal/orchestrator"
	"voxel-terrain/internal/profiling"
	"voxel-terrain/internal/render"
)

const statsInterval = 5 * time.Second

func setupWindow(s config.Settings) (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	window, err := glfw.CreateWindow(s.Window.Width, s.Window.Height, s.Window.Title, nil, nil)
	if err != nil {
		return nil, err
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("gl init: %w", err)
	}

	// Disable V-Sync; the FPS limiter paces frames.
	glfw.SwapInterval(0)
	return window, nil
}

// runViewer owns the window and drives the orchestrator once per frame until
// the window closes or ctx is cancelled.
func runViewer(ctx context.Context, s config.Settings, orch *orchestrator.Orchestrator, log zerolog.Logger) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	window, err := setupWindow(s)
	if err != nil {
		return err
	}
	defer window.Destroy()

	terrainRenderer, err := render.NewTerrainRenderer()
	if err != nil {
		return err
	}
	defer terrainRenderer.Dispose()

	cam := orch.State().Camera
	orbit := camera.NewOrbit(cam)
	setupInputHandlers(window, orbit)

	log.Info().
		Str("gl", gl.GoStr(gl.GetString(gl.VERSION))).
		Str("renderer", gl.GoStr(gl.GetString(gl.RENDERER))).
		Msg("viewer started")

	limiter := NewFPSLimiter(config.GetFPSLimit)
	frames := 0
	lastStats := time.Now()

	for !window.ShouldClose() && ctx.Err() == nil {
		profiling.ResetFrame()
		func() { defer profiling.Track("glfw.PollEvents")(); glfw.PollEvents() }()

		func() {
			defer profiling.Track("orchestrator.Frame")()
			if orch.Frame() && orch.State().Camera != cam {
				cam = orch.State().Camera
				orbit.Reset(cam)
			}
		}()
		if gen := orch.Generation(); gen != terrainRenderer.Generation() {
			terrainRenderer.Upload(orch.Mesh(), gen)
		}

		width, height := window.GetFramebufferSize()
		gl.Viewport(0, 0, int32(width), int32(height))
		aspect := float32(1)
		if height > 0 {
			aspect = float32(width) / float32(height)
		}
		terrainRenderer.Draw(orbit.Apply(cam), aspect, config.GetWireframe())

		func() { defer profiling.Track("glfw.SwapBuffers")(); window.SwapBuffers() }()

		frames++
		if since := time.Since(lastStats); since >= statsInterval {
			log.Debug().
				Float64("fps", float64(frames)/since.Seconds()).
				Uint64("generation", orch.Generation()).
				Str("top", profiling.TopN(3)).
				Msg("frame stats")
			frames = 0
			lastStats = time.Now()
		}

		limiter.Wait()
	}
	return nil
}
