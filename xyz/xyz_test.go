// Copyright (c) 2026, The Glitter Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"glitter.dev/glitter/gpu"
	"glitter.dev/glitter/gpu/gputest"
)

func assertVec3(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	for i := range 3 {
		assert.InDelta(t, want[i], got[i], 1e-4, "component %d of %v", i, got)
	}
}

func TestArcCamera(t *testing.T) {
	cm := NewArcCamera(mgl32.Vec3{0, 1.4, 0}, 2, 0, 0)
	assertVec3(t, mgl32.Vec3{0, 1.4, 2}, cm.Position())

	// the centre is straight ahead, Distance away
	c := cm.ViewMatrix().Mul4x1(mgl32.Vec4{0, 1.4, 0, 1}).Vec3()
	assertVec3(t, mgl32.Vec3{0, 0, -2}, c)

	cm.Yaw(math.Pi / 2)
	assertVec3(t, mgl32.Vec3{2, 1.4, 0}, cm.Position())

	cm = NewArcCamera(mgl32.Vec3{0, 1.4, 0}, 2, 0.2, 0.2)
	assert.Greater(t, cm.Position().Y(), float32(1.4))
	assert.InDelta(t, 2, cm.Position().Sub(cm.Centre).Len(), 1e-4)
	c = cm.ViewMatrix().Mul4x1(cm.Centre.Vec4(1)).Vec3()
	assertVec3(t, mgl32.Vec3{0, 0, -2}, c)
}

func TestArcCameraOrigin(t *testing.T) {
	// the translation of the inverse view is the eye position
	for _, d := range []float32{1, 2, 7.5} {
		cm := NewArcCamera(mgl32.Vec3{}, d, 0, 0)
		eye := cm.ViewMatrix().Inv().Col(3).Vec3()
		assertVec3(t, mgl32.Vec3{0, 0, d}, eye)
	}
}

func TestArcCameraPitchClamp(t *testing.T) {
	cm := NewArcCamera(mgl32.Vec3{}, 1, 0, 0)
	cm.Pitch(10)
	pitch, _ := cm.Angles()
	assert.Equal(t, MaxPitch, pitch)
	cm.Pitch(-20)
	pitch, _ = cm.Angles()
	assert.Equal(t, -MaxPitch, pitch)

	for _, v := range cm.ViewMatrix() {
		assert.False(t, math.IsNaN(float64(v)))
	}
}

func TestLightDefaults(t *testing.T) {
	var lt Light
	lt.Defaults()
	assert.InDelta(t, math.Cos(35*math.Pi/180), lt.CutOff, 1e-5)
	assert.InDelta(t, math.Cos(47*math.Pi/180), lt.OuterCutOff, 1e-5)
	assertVec3(t, mgl32.Vec3{0.2, 0.2, 0.2}, lt.Ambient)
	assertVec3(t, mgl32.Vec3{1, 1, 1}, lt.Specular)
	assertVec3(t, lt.Position.Mul(-1).Normalize(), lt.Direction)
	assert.InDelta(t, 1, lt.Direction.Len(), 1e-5)
	require.NoError(t, lt.Validate(100))
}

func TestAttenuation(t *testing.T) {
	var lt Light
	lt.Defaults()
	assert.Equal(t, float32(1), lt.Attenuation(0))

	fs := lt.Falloff(100, 100)
	require.Len(t, fs, 100)
	assert.Equal(t, float32(1), fs[0])
	assert.Equal(t, lt.Attenuation(100), fs[99])
	for i := 1; i < len(fs); i++ {
		assert.Less(t, fs[i], fs[i-1])
	}
	assert.Nil(t, lt.Falloff(0, 50))
	assert.Len(t, lt.Falloff(1, 50), 1)
}

func TestLightValidate(t *testing.T) {
	var lt Light
	lt.Defaults()
	lt.Constant = 0
	assert.Error(t, lt.Validate(100))

	lt.Defaults()
	lt.Constant, lt.Linear, lt.Quadratic = 1, -1, 0.01
	// 1 - d + 0.01 d^2 has its minimum of -24 at d = 50
	assert.Error(t, lt.Validate(100))
	assert.NoError(t, lt.Validate(0.5))

	lt.Defaults()
	lt.SetCutoffDegrees(40, -10)
	assert.Error(t, lt.Validate(100))
}

func TestLightView(t *testing.T) {
	var lt Light
	lt.Defaults()
	o := lt.View().Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Vec3()
	assertVec3(t, mgl32.Vec3{0, 0, -lt.Position.Len()}, o)

	lt.Position = mgl32.Vec3{0, 5, 0}
	for _, v := range lt.View() {
		assert.False(t, math.IsNaN(float64(v)))
	}

	// the origin lies in the middle of the shadow map
	p := SpotProjection(35).Mul4(lt.View()).Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assert.InDelta(t, 0, p.X()/p.W(), 1e-5)
	assert.InDelta(t, 0, p.Y()/p.W(), 1e-5)
}

func TestOrbit(t *testing.T) {
	start := mgl32.Vec3{2.2, 4, 2}
	assertVec3(t, start, Orbit(start, -20, 0))
	assertVec3(t, mgl32.Vec3{0, 0, -1}, Orbit(mgl32.Vec3{1, 0, 0}, 90, 1))
	p := Orbit(start, -20, 7.5)
	assert.InDelta(t, start.Y(), p.Y(), 1e-5)
	assert.InDelta(t, start.Len(), p.Len(), 1e-4)
	assertVec3(t, start, Orbit(start, -20, 18))
}

func TestLightColors(t *testing.T) {
	lc, err := ParseLightColor("halogen")
	require.NoError(t, err)
	assert.Equal(t, Halogen, lc)
	assert.Equal(t, "Halogen", lc.String())
	assertVec3(t, mgl32.Vec3{1, 1, 1}, DirectSun.Vec3())
	_, err = ParseLightColor("laser")
	assert.Error(t, err)
	assert.Equal(t, "LightColors(99)", LightColors(99).String())
}

func newSceneShader(t *testing.T) (*gputest.Device, *gpu.Shader) {
	dev := gputest.NewDevice()
	sh := gpu.NewShader(gpu.NewContext(dev), "textured")
	require.NoError(t, sh.AttachShader("../assets/shaders/drawing.vert"))
	require.NoError(t, sh.AttachShader("../assets/shaders/textured.frag"))
	require.NoError(t, sh.Link())
	return dev, sh
}

func TestSetLight(t *testing.T) {
	dev, sh := newSceneShader(t)
	var lt Light
	lt.Defaults()
	space := SpotProjection(35).Mul4(lt.View())
	SetLight(sh, &lt, space, 500)

	get := func(name string) []float32 {
		v, ok := dev.Uniform(sh.Handle(), name)
		require.True(t, ok, name)
		return v
	}
	assert.Equal(t, lt.Position[:], get("light.position"))
	assert.Equal(t, lt.Direction[:], get("light.direction"))
	assert.Equal(t, []float32{lt.OuterCutOff}, get("light.outerCutOff"))
	assert.Equal(t, []float32{lt.Quadratic}, get("light.quadratic"))
	assert.Equal(t, space[:], get("lightSpaceMatrix"))
	assert.Equal(t, []float32{500}, get("penumbraSize"))
}

func TestSetMaterial(t *testing.T) {
	dev, sh := newSceneShader(t)
	before, _ := dev.Uniform(sh.Handle(), "material.diffuse")
	var mt Material
	mt.Defaults()
	mt.Shininess = 64
	SetMaterial(sh, &mt)

	v, ok := dev.Uniform(sh.Handle(), "material.shininess")
	require.True(t, ok)
	assert.Equal(t, []float32{64}, v)
	after, _ := dev.Uniform(sh.Handle(), "material.diffuse")
	assert.Equal(t, before, after)
	assert.Contains(t, mt.String(), "Shininess: 64")
}
