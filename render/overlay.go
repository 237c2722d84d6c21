// Copyright (c) 2026, The Glitter Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import "glitter.dev/glitter/xyz"

// FalloffSamples is the number of points in [FrameInfo.Falloff].
const FalloffSamples = 100

// FrameInfo is what [Graphics] shows in its overlay each frame.
type FrameInfo struct {
	// Delta is the frame time in seconds.
	Delta float32

	// FPS is the frame rate implied by Delta.
	FPS float32

	// Err is the stored scene error, if any.
	Err error

	// Light is the scene light. An overlay may change its Specular
	// color, from which the diffuse and ambient colors are derived
	// after the frame.
	Light *xyz.Light

	// MaxDistance is the largest distance in Falloff.
	// An overlay may change it for the next frame.
	MaxDistance float32

	// Falloff is the light attenuation sampled from 0 to MaxDistance.
	Falloff []float32

	// CutoffDegrees is the inner cone angle of the light, and
	// EdgeDegrees the width of its soft edge. An overlay may change
	// them for the next frame, which also resizes the shadow frustum.
	// Cones of 90 degrees or wider are ignored.
	CutoffDegrees float32
	EdgeDegrees   float32

	// Penumbra is the shadow penumbra size. An overlay may change it
	// for the next frame. Values that are not positive are ignored.
	Penumbra float32
}

// Overlay is the user interface drawn over the scene.
type Overlay interface {
	// WantCaptureMouse reports whether the overlay is using the mouse,
	// in which case a press does not start a camera drag.
	WantCaptureMouse() bool

	// Frame draws the overlay for one frame, into the window framebuffer.
	Frame(fi *FrameInfo)
}

// NopOverlay is an [Overlay] that shows nothing.
type NopOverlay struct{}

func (NopOverlay) WantCaptureMouse() bool { return false }

func (NopOverlay) Frame(fi *FrameInfo) {}
