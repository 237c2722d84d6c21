// Copyright (c) 2026, The Glitter Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package system

import (
	"image"
	"log/slog"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"glitter.dev/glitter/base/errors"
	"glitter.dev/glitter/config"
	"glitter.dev/glitter/render"
)

// Window is a glfw window with a current OpenGL 4.1 core context.
type Window struct {
	// Glw is the glfw window.
	Glw *glfw.Window

	// Screenshots is the directory F12 saves screenshots to.
	Screenshots string

	gr *render.Graphics
}

// NewWindow creates a resizable window with an OpenGL 4.1 core
// forward-compatible context, and makes the context current.
// [Init] must have been called.
func NewWindow(wc *config.Window) (*Window, error) {
	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.Focused, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glw, err := glfw.CreateWindow(wc.Width, wc.Height, wc.Title, nil, nil)
	if err != nil {
		return nil, err
	}
	glw.MakeContextCurrent()
	if wc.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
	slog.Debug("system: created window", "size", image.Pt(wc.Width, wc.Height), "title", wc.Title, "vsync", wc.VSync)
	return &Window{Glw: glw, Screenshots: "."}, nil
}

// FramebufferSize returns the size of the window framebuffer in pixels,
// which differs from the window size on high-DPI displays.
func (w *Window) FramebufferSize() image.Point {
	x, y := w.Glw.GetFramebufferSize()
	return image.Pt(x, y)
}

// SetTitle sets the window title.
func (w *Window) SetTitle(title string) {
	w.Glw.SetTitle(title)
}

// Attach forwards the input and resize events of the window to gr.
func (w *Window) Attach(gr *render.Graphics) {
	w.gr = gr
	w.Glw.SetFramebufferSizeCallback(w.fbResized)
	w.Glw.SetCursorPosCallback(w.cursorMoved)
	w.Glw.SetMouseButtonCallback(w.mouseButton)
	w.Glw.SetKeyCallback(w.key)
}

func (w *Window) fbResized(gw *glfw.Window, width, height int) {
	w.gr.OnResize(image.Pt(width, height))
}

func (w *Window) cursorMoved(gw *glfw.Window, x, y float64) {
	w.gr.OnCursorMoved(mgl32.Vec2{float32(x), float32(y)})
}

func (w *Window) mouseButton(gw *glfw.Window, button glfw.MouseButton, action glfw.Action, mod glfw.ModifierKey) {
	switch action {
	case glfw.Press:
		w.gr.OnMouseButton(int(button), render.Press)
	case glfw.Release:
		w.gr.OnMouseButton(int(button), render.Release)
	}
}

func (w *Window) key(gw *glfw.Window, ky glfw.Key, scancode int, action glfw.Action, mod glfw.ModifierKey) {
	if action != glfw.Press {
		return
	}
	switch ky {
	case glfw.KeyEscape:
		gw.SetShouldClose(true)
	case glfw.KeyF12:
		errors.Log1(w.gr.Screenshot(w.Screenshots))
	}
}

// Run draws frames until the window is closed.
func (w *Window) Run() {
	for !w.Glw.ShouldClose() {
		w.gr.Draw()
		w.Glw.SwapBuffers()
		glfw.PollEvents()
	}
}

// Release destroys the window. The attached Graphics must
// be released first, while the context still exists.
func (w *Window) Release() {
	if w.Glw == nil {
		return
	}
	w.Glw.Destroy()
	w.Glw = nil
}
