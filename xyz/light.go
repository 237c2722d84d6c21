// Copyright (c) 2026, The Glitter Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"glitter.dev/glitter/gpu"
)

// Light is a spot light with a position and direction, a soft edge
// between two cone angles, and distance attenuation
// 1 / (Constant + Linear*d + Quadratic*d*d).
// The quadratic factor dominates at longer distances.
type Light struct {
	// Position of the light in world coordinates.
	Position mgl32.Vec3

	// Direction the light points in, normalized.
	Direction mgl32.Vec3

	// CutOff is the cosine of the inner cone angle, inside of which
	// the light is at full intensity.
	CutOff float32

	// OuterCutOff is the cosine of the outer cone angle, outside of
	// which the light contributes nothing. It is <= CutOff.
	OuterCutOff float32

	Ambient  mgl32.Vec3
	Diffuse  mgl32.Vec3
	Specular mgl32.Vec3

	// Constant, Linear and Quadratic are the distance decay factors.
	Constant  float32
	Linear    float32
	Quadratic float32
}

// Defaults sets a white light at (2.2, 4, 2) pointing at the origin,
// with a 35 degree cone, a 12 degree soft edge, and a range of about 100.
func (lt *Light) Defaults() {
	lt.Position = mgl32.Vec3{2.2, 4, 2}
	lt.LookAtOrigin()
	lt.SetCutoffDegrees(35, 12)
	lt.SetColor(mgl32.Vec3{1, 1, 1}, 0.2)
	lt.Constant = 1
	lt.Linear = 0.027
	lt.Quadratic = 0.0028
}

// Attenuation returns the intensity factor at distance d.
func (lt *Light) Attenuation(d float32) float32 {
	return 1 / (lt.Constant + lt.Linear*d + lt.Quadratic*d*d)
}

// Falloff samples [Light.Attenuation] at n evenly spaced distances
// from 0 to maxDist inclusive.
func (lt *Light) Falloff(n int, maxDist float32) []float32 {
	if n <= 0 {
		return nil
	}
	fs := make([]float32, n)
	if n == 1 {
		fs[0] = lt.Attenuation(0)
		return fs
	}
	for i := range fs {
		fs[i] = lt.Attenuation(maxDist * float32(i) / float32(n-1))
	}
	return fs
}

// SetColor sets the diffuse and specular colors to c,
// and the ambient color to c scaled by ambient.
func (lt *Light) SetColor(c mgl32.Vec3, ambient float32) {
	lt.Specular = c
	lt.Diffuse = c
	lt.Ambient = c.Mul(ambient)
}

// SetCutoffDegrees sets the inner cone angle and the width of the
// soft edge outside it, both in degrees.
func (lt *Light) SetCutoffDegrees(inner, edge float32) {
	lt.CutOff = math32.Cos(mgl32.DegToRad(inner))
	lt.OuterCutOff = math32.Cos(mgl32.DegToRad(inner + edge))
}

// LookAtOrigin points the light at the origin.
// A light at the origin keeps its direction.
func (lt *Light) LookAtOrigin() {
	if lt.Position.Len() == 0 {
		return
	}
	lt.Direction = lt.Position.Mul(-1).Normalize()
}

// View returns the world-to-light transform, looking from the light
// position at the origin.
func (lt *Light) View() mgl32.Mat4 {
	up := mgl32.Vec3{0, 1, 0}
	if math32.Abs(lt.Position.X()) < 1e-6 && math32.Abs(lt.Position.Z()) < 1e-6 {
		// straight above or below the origin
		up = mgl32.Vec3{0, 0, -1}
	}
	return mgl32.LookAtV(lt.Position, mgl32.Vec3{}, up)
}

// SpotProjection returns the shadow map projection of a spot light with
// the given inner cone angle in degrees: a square frustum twice that
// wide, from 1 to 10 units.
func SpotProjection(innerDegrees float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(innerDegrees)*2, 1, 1, 10)
}

// Validate returns an error if the cone angles are inverted, or if the
// attenuation denominator is not positive at some distance in [0, maxDist].
func (lt *Light) Validate(maxDist float32) error {
	if lt.OuterCutOff > lt.CutOff {
		return fmt.Errorf("xyz: light outer cutoff %g is inside the inner cutoff %g", lt.OuterCutOff, lt.CutOff)
	}
	den := func(d float32) float32 { return lt.Constant + lt.Linear*d + lt.Quadratic*d*d }
	lowest := min(den(0), den(maxDist))
	if lt.Quadratic > 0 {
		if d := -lt.Linear / (2 * lt.Quadratic); d > 0 && d < maxDist {
			lowest = min(lowest, den(d))
		}
	}
	if lowest <= 0 {
		return fmt.Errorf("xyz: light attenuation %g + %g*d + %g*d^2 is not positive on [0, %g]", lt.Constant, lt.Linear, lt.Quadratic, maxDist)
	}
	return nil
}

// SetLight uploads the light to the "light" struct uniform of sh,
// along with the light space matrix and penumbra size of the shadow.
func SetLight(sh *gpu.Shader, lt *Light, lightSpace mgl32.Mat4, penumbra float32) {
	sh.SetUniform("light.position", lt.Position)
	sh.SetUniform("light.direction", lt.Direction)
	sh.SetUniform("light.cutOff", lt.CutOff)
	sh.SetUniform("light.outerCutOff", lt.OuterCutOff)
	sh.SetUniform("light.ambient", lt.Ambient)
	sh.SetUniform("light.diffuse", lt.Diffuse)
	sh.SetUniform("light.specular", lt.Specular)
	sh.SetUniform("light.constant", lt.Constant)
	sh.SetUniform("light.linear", lt.Linear)
	sh.SetUniform("light.quadratic", lt.Quadratic)
	sh.SetUniform("lightSpaceMatrix", lightSpace)
	sh.SetUniform("penumbraSize", penumbra)
}

// Orbit returns start rotated about +Y by degPerSec degrees for
// each of t seconds.
func Orbit(start mgl32.Vec3, degPerSec, t float32) mgl32.Vec3 {
	return mgl32.HomogRotate3DY(mgl32.DegToRad(degPerSec * t)).Mul4x1(start.Vec4(1)).Vec3()
}

////////  Standard Light Colors

// http://planetpixelemporium.com/tutorialpages/light.html

// LightColors are standard light colors for different light sources
type LightColors int32

const (
	DirectSun LightColors = iota
	CarbonArc
	Halogen
	Tungsten100W
	Tungsten40W
	Candle
	Overcast
	FluorWarm
	FluorStd
	FluorCool
	FluorFull
	FluorGrow
	MercuryVapor
	SodiumVapor
	MetalHalide
	LightColorsN
)

var lightColorNames = [LightColorsN]string{
	"DirectSun", "CarbonArc", "Halogen", "Tungsten100W", "Tungsten40W",
	"Candle", "Overcast", "FluorWarm", "FluorStd", "FluorCool",
	"FluorFull", "FluorGrow", "MercuryVapor", "SodiumVapor", "MetalHalide",
}

func (lc LightColors) String() string {
	if lc < 0 || lc >= LightColorsN {
		return fmt.Sprintf("LightColors(%d)", int32(lc))
	}
	return lightColorNames[lc]
}

// ParseLightColor returns the light color with the given name,
// ignoring case.
func ParseLightColor(name string) (LightColors, error) {
	for i, n := range lightColorNames {
		if strings.EqualFold(n, name) {
			return LightColors(i), nil
		}
	}
	return 0, fmt.Errorf("xyz: unknown light color %q", name)
}

// Vec3 returns the color with components in [0, 1].
func (lc LightColors) Vec3() mgl32.Vec3 {
	c := LightColorMap[lc]
	return mgl32.Vec3{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255}
}

// LightColorMap provides a map of named light colors
var LightColorMap = map[LightColors]color.RGBA{
	DirectSun:    {255, 255, 255, 255},
	CarbonArc:    {255, 250, 244, 255},
	Halogen:      {255, 241, 224, 255},
	Tungsten100W: {255, 214, 170, 255},
	Tungsten40W:  {255, 197, 143, 255},
	Candle:       {255, 147, 41, 255},
	Overcast:     {201, 226, 255, 255},
	FluorWarm:    {255, 244, 229, 255},
	FluorStd:     {244, 255, 250, 255},
	FluorCool:    {212, 235, 255, 255},
	FluorFull:    {255, 244, 242, 255},
	FluorGrow:    {255, 239, 247, 255},
	MercuryVapor: {216, 247, 255, 255},
	SodiumVapor:  {255, 209, 178, 255},
	MetalHalide:  {242, 252, 255, 255},
}
