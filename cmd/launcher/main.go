// Command launcher is the point-and-click front end that selects a trace
// algorithm and acceleration structure and starts cmd/raytracer, the Go
// counterpart to the reference's pygame button launcher (console.py).
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/df07/go-accel-tracer/internal/display"
	"github.com/df07/go-accel-tracer/internal/launcher"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	raytracerPath := locateRaytracerBinary()

	surface, err := display.Open(1000, 1000, "raytracer launcher")
	if err != nil {
		fmt.Fprintf(os.Stderr, "launcher: %v\n", err)
		os.Exit(1)
	}
	defer surface.Close()

	state := launcher.New(raytracerPath)

	surface.Window().SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		if button != glfw.MouseButtonLeft || action != glfw.Press {
			return
		}
		x, y := w.GetCursorPos()
		state.HandleClick(int(x), int(y))
	})

	surface.Window().SetCharCallback(func(w *glfw.Window, r rune) {
		state.TypeRune(r)
	})

	surface.Window().SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action != glfw.Press && action != glfw.Repeat {
			return
		}
		switch key {
		case glfw.KeyBackspace:
			state.Backspace()
		case glfw.KeyEnter:
			if err := state.Launch(); err != nil {
				fmt.Fprintf(os.Stderr, "launcher: %v\n", err)
			}
		}
	})

	for !surface.ShouldClose() {
		surface.Present(state.Render(), 1000, 1000)
	}
}

// locateRaytracerBinary looks for a sibling "raytracer" binary next to the
// launcher executable, falling back to expecting it on PATH.
func locateRaytracerBinary() string {
	exe, err := os.Executable()
	if err != nil {
		return "raytracer"
	}
	sibling := filepath.Join(filepath.Dir(exe), "raytracer")
	if _, err := os.Stat(sibling); err == nil {
		return sibling
	}
	return "raytracer"
}
