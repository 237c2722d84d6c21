// Copyright (c) 2026, The Glitter Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package system connects a [render.Graphics] to a desktop window
// through glfw: it creates the window and its OpenGL context,
// forwards input and resize events, and runs the frame loop.
package system

import (
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	"glitter.dev/glitter/base/errors"
)

func init() {
	// glfw and the GL context must stay on the main thread
	runtime.LockOSThread()
}

// Init initializes glfw. It must be called on the main thread,
// before any window is created.
func Init() error {
	return errors.Log(glfw.Init())
}

// Terminate shuts glfw down, destroying any remaining windows.
// It must be called on the main thread, as the last thing before quitting.
func Terminate() {
	glfw.Terminate()
}
