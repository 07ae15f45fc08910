package config

import "sync"

// RenderSettings holds viewer options that can change while running.
type RenderSettings struct {
	mu        sync.RWMutex
	fpsLimit  int
	wireframe bool
}

// FPS limits accepted by SetFPSLimit. Zero disables the limiter.
const (
	MinFPSLimit = 10
	MaxFPSLimit = 500
)

var globalRenderSettings = &RenderSettings{
	fpsLimit: 60,
}

// GetFPSLimit returns the frame rate cap, or 0 when uncapped.
func GetFPSLimit() int {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.fpsLimit
}

// SetFPSLimit sets the frame rate cap. Non-zero values are clamped to
// [MinFPSLimit, MaxFPSLimit].
func SetFPSLimit(fps int) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()

	switch {
	case fps <= 0:
		fps = 0
	case fps < MinFPSLimit:
		fps = MinFPSLimit
	case fps > MaxFPSLimit:
		fps = MaxFPSLimit
	}
	globalRenderSettings.fpsLimit = fps
}

// GetWireframe returns whether the terrain is drawn as lines.
func GetWireframe() bool {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.wireframe
}

// SetWireframe enables or disables line rendering.
func SetWireframe(enabled bool) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.wireframe = enabled
}

// ToggleWireframe flips line rendering and returns the new value.
func ToggleWireframe() bool {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.wireframe = !globalRenderSettings.wireframe
	return globalRenderSettings.wireframe
}
