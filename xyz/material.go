// Copyright (c) 2026, The Glitter Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"glitter.dev/glitter/gpu"
)

// Material describes the surface reflectance of a solid for the
// "material" struct uniform. Textured materials take their colors
// from samplers of the same names instead.
type Material struct {
	Ambient  mgl32.Vec3
	Diffuse  mgl32.Vec3
	Specular mgl32.Vec3

	// Shininess is the specular exponent: how focally vs. broad the
	// surface shines back directional light, with higher values having
	// a smaller, more focal specular reflection.
	Shininess float32
}

// Defaults sets a white material with shininess 32.
func (mt *Material) Defaults() {
	mt.Ambient = mgl32.Vec3{1, 1, 1}
	mt.Diffuse = mgl32.Vec3{1, 1, 1}
	mt.Specular = mgl32.Vec3{1, 1, 1}
	mt.Shininess = 32
}

func (mt Material) String() string {
	return fmt.Sprintf("Diffuse: %v, Specular: %v, Shininess: %g", mt.Diffuse, mt.Specular, mt.Shininess)
}

// SetMaterial uploads the material to the "material" struct uniform
// of sh. Color members are optional: those the program lacks, or
// declares as samplers, are left to the textures added for them.
func SetMaterial(sh *gpu.Shader, mt *Material) {
	set := func(name string, v mgl32.Vec3) {
		if u, ok := sh.Uniform(name); !ok || u.Type.IsSampler() {
			return
		}
		sh.SetUniform(name, v)
	}
	set("material.ambient", mt.Ambient)
	set("material.diffuse", mt.Diffuse)
	set("material.specular", mt.Specular)
	sh.SetUniform("material.shininess", mt.Shininess)
}
