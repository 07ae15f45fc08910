package main

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"voxel-terrain/internal/camera"
	"voxel-terrain/internal/config"
)

func setupInputHandlers(window *glfw.Window, orbit *camera.Orbit) {
	window.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		orbit.HandleMouseMovement(xpos, ypos)
	})

	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		if button != glfw.MouseButtonLeft {
			return
		}
		switch action {
		case glfw.Press:
			orbit.Dragging = true
		case glfw.Release:
			orbit.Dragging = false
		}
	})

	window.SetScrollCallback(func(w *glfw.Window, xoff, yoff float64) {
		orbit.HandleScroll(yoff)
	})

	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action != glfw.Press {
			return
		}
		switch key {
		case glfw.KeyF:
			config.ToggleWireframe()
		case glfw.KeyEscape:
			w.SetShouldClose(true)
		}
	})
}
