// Copyright (c) 2026, The Glitter Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// MaxPitch is the largest pitch, in radians, an [ArcCamera] accepts
// in either direction, keeping it off the vertical axis.
var MaxPitch = mgl32.DegToRad(89)

// ArcCamera is an arc-ball camera orbiting a centre point at a fixed
// distance. The camera sits on +Z of the centre when pitch and yaw are
// zero, and looks at the centre. Angles are in radians.
type ArcCamera struct {
	// Centre is the point the camera orbits and looks at.
	Centre mgl32.Vec3

	// Distance from the centre.
	Distance float32

	pitch float32
	yaw   float32
}

// NewArcCamera returns a camera with the given centre, distance
// and starting angles.
func NewArcCamera(centre mgl32.Vec3, distance, pitch, yaw float32) *ArcCamera {
	cm := &ArcCamera{Centre: centre, Distance: distance}
	cm.Yaw(yaw)
	cm.Pitch(pitch)
	return cm
}

// Angles returns the current pitch and yaw.
func (cm *ArcCamera) Angles() (pitch, yaw float32) {
	return cm.pitch, cm.yaw
}

// Yaw rotates the camera by d radians about the vertical axis.
func (cm *ArcCamera) Yaw(d float32) {
	cm.yaw = math32.Mod(cm.yaw+d, 2*math32.Pi)
}

// Pitch rotates the camera by d radians up (positive) or down,
// clamped to [MaxPitch].
func (cm *ArcCamera) Pitch(d float32) {
	cm.pitch = mgl32.Clamp(cm.pitch+d, -MaxPitch, MaxPitch)
}

// World returns the camera-to-world transform:
// translate(centre) * rotate(yaw, pitch) * translate(0, 0, distance).
func (cm *ArcCamera) World() mgl32.Mat4 {
	rot := mgl32.QuatRotate(cm.yaw, mgl32.Vec3{0, 1, 0}).Mul(mgl32.QuatRotate(-cm.pitch, mgl32.Vec3{1, 0, 0}))
	return mgl32.Translate3D(cm.Centre[0], cm.Centre[1], cm.Centre[2]).
		Mul4(rot.Mat4()).
		Mul4(mgl32.Translate3D(0, 0, cm.Distance))
}

// ViewMatrix returns the world-to-camera transform.
func (cm *ArcCamera) ViewMatrix() mgl32.Mat4 {
	return cm.World().Inv()
}

// Position returns the camera position in world coordinates.
func (cm *ArcCamera) Position() mgl32.Vec3 {
	return cm.World().Col(3).Vec3()
}
