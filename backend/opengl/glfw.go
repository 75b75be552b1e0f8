package opengl

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// InputState is the demo-relevant input gathered between two Update calls.
type InputState struct {
	// ZoomSteps counts +/- key presses (positive zooms in).
	ZoomSteps int
	// Resized is set when the framebuffer size changed.
	Resized       bool
	Width, Height int
}

// Resizer receives framebuffer size changes.
type Resizer interface {
	Resize(width, height int)
}

// GLFWInputAdapter adapts GLFW window callbacks for the text demo.
// Escape closes the window; framebuffer size changes update the GL
// viewport and are forwarded to the resizer.
type GLFWInputAdapter struct {
	window  *glfw.Window
	resizer Resizer
	input   InputState
}

// NewGLFWInputAdapter creates a new GLFW input adapter.
// resizer may be nil.
func NewGLFWInputAdapter(window *glfw.Window, resizer Resizer) *GLFWInputAdapter {
	adapter := &GLFWInputAdapter{
		window:  window,
		resizer: resizer,
	}

	window.SetKeyCallback(adapter.keyCallback)
	window.SetFramebufferSizeCallback(adapter.framebufferSizeCallback)

	return adapter
}

// Update returns the input collected since the previous call and resets it.
// Call this once per frame after glfw.PollEvents.
func (a *GLFWInputAdapter) Update() InputState {
	in := a.input
	a.input = InputState{}
	return in
}

func (a *GLFWInputAdapter) keyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if action != glfw.Press && action != glfw.Repeat {
		return
	}
	switch key {
	case glfw.KeyEscape:
		w.SetShouldClose(true)
	case glfw.KeyEqual, glfw.KeyKPAdd:
		a.input.ZoomSteps++
	case glfw.KeyMinus, glfw.KeyKPSubtract:
		a.input.ZoomSteps--
	}
}

// framebufferSizeCallback keeps the viewport matching the framebuffer, which
// may be larger than the window size on high-DPI displays.
func (a *GLFWInputAdapter) framebufferSizeCallback(w *glfw.Window, width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
	if a.resizer != nil {
		a.resizer.Resize(width, height)
	}
	a.input.Resized = true
	a.input.Width, a.input.Height = width, height
}
