// Copyright (c) 2026, The Glitter Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"fmt"
	"image"
	"log/slog"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"
	"glitter.dev/glitter/config"
	"glitter.dev/glitter/gpu"
	"glitter.dev/glitter/shape"
	"glitter.dev/glitter/shape/obj"
	"glitter.dev/glitter/xyz"
)

// solid is a drawable placed in the scene.
type solid struct {
	dw    *gpu.Drawable
	model mgl32.Mat4
}

func (sd solid) draw(view, projection mgl32.Mat4, override *gpu.Shader) {
	sd.dw.Draw(sd.model, view, projection, override)
}

type textureKey struct {
	path string
	cs   gpu.ColorSpaces
}

// texture kinds of a material, which select the default texture
// used when no file is named
const (
	diffuseTexture = iota
	normalTexture
	specularTexture
)

// default 1x1 texture colors: white diffuse, flat normal, no specular
var defaultTextureColors = [...][3]byte{
	diffuseTexture:  {255, 255, 255},
	normalTexture:   {128, 128, 255},
	specularTexture: {0, 0, 0},
}

// newShader compiles and links the named shader source files
// from the shaders directory.
func (gr *Graphics) newShader(name string, files ...string) (*gpu.Shader, error) {
	sh := gpu.NewShader(gr.ctx, name)
	gr.shaders = append(gr.shaders, sh)
	for _, f := range files {
		path, err := gr.cfg.Assets.Shader(f)
		if err != nil {
			return nil, err
		}
		if err := sh.AttachShader(path); err != nil {
			return nil, err
		}
	}
	if err := sh.Link(); err != nil {
		return nil, err
	}
	return sh, nil
}

// texture returns the texture of the named file in the textures
// directory, loading it on first use. An empty name gives the
// 1x1 default texture of the kind.
func (gr *Graphics) texture(name string, kind int, cs gpu.ColorSpaces) (*gpu.Texture, error) {
	key := textureKey{path: name, cs: cs}
	if name == "" {
		key.path = fmt.Sprintf("default %d", kind)
	} else {
		path, err := gr.cfg.Assets.Texture(name)
		if err != nil {
			return nil, err
		}
		key.path = path
	}
	if tx, ok := gr.textures[key]; ok {
		return tx, nil
	}
	var tx *gpu.Texture
	var err error
	if name == "" {
		c := defaultTextureColors[kind]
		tx, err = gpu.NewTexture(gr.ctx, image.Pt(1, 1), cs, gpu.RGB, gpu.UnsignedByte, c[:])
	} else {
		tx, err = gpu.NewTextureFromFile(gr.ctx, key.path, cs, false)
	}
	if err != nil {
		return nil, err
	}
	tx.SetWrapMode(gpu.ClampToEdge)
	tx.SetFiltering(gpu.Linear)
	gr.textures[key] = tx
	return tx, nil
}

// materialShader returns the textured shader of the material,
// sharing one shader among equal materials.
func (gr *Graphics) materialShader(mt config.Material) (*gpu.Shader, error) {
	if sh, ok := gr.materials[mt]; ok {
		return sh, nil
	}
	sh, err := gr.newShader("textured", "drawing.vert", "textured.frag")
	if err != nil {
		return nil, err
	}
	surf := mt.Surface()
	xyz.SetMaterial(sh, &surf)
	maps := []struct {
		sampler string
		file    string
		kind    int
		cs      gpu.ColorSpaces
	}{
		{"material.diffuse", mt.Diffuse, diffuseTexture, gpu.SRGB},
		{"material.normal", mt.Normal, normalTexture, gpu.LinearSpace},
		{"material.specular", mt.Specular, specularTexture, gpu.SRGB},
	}
	for _, m := range maps {
		tx, err := gr.texture(m.file, m.kind, m.cs)
		if err != nil {
			return nil, err
		}
		if err := sh.AddTexture(m.sampler, tx); err != nil {
			return nil, err
		}
	}
	if err := sh.AddTexture("shadowMap", gr.depthMap.Depth); err != nil {
		return nil, err
	}
	gr.materials[mt] = sh
	gr.sceneShaders = append(gr.sceneShaders, sh)
	return sh, nil
}

// newDrawable uploads the mesh, keeping the drawable for release.
func (gr *Graphics) newDrawable(ms *shape.Mesh, sh *gpu.Shader) (*gpu.Drawable, error) {
	dw, err := gpu.NewDrawable(gr.ctx, ms, sh)
	if err != nil {
		return nil, err
	}
	gr.drawables = append(gr.drawables, dw)
	return dw, nil
}

func (gr *Graphics) initDepthBuffer() error {
	sz := gr.cfg.Shadow.Size
	dm, err := gpu.NewDepthMap(gr.ctx, "shadow map", image.Pt(sz, sz), gpu.Greater)
	if err != nil {
		return err
	}
	gr.depthMap = dm
	gr.depthShader, err = gr.newShader("depth", "depth.vert", "depth.frag")
	return err
}

func (gr *Graphics) initSkybox() error {
	if gr.cfg.Scene.Skybox == "" {
		return nil
	}
	dir, err := gr.cfg.Assets.Texture(gr.cfg.Scene.Skybox)
	if err != nil {
		return err
	}
	tx, err := gpu.NewCubeMap(gr.ctx, gpu.CubeMapFaces(dir, ".jpg"), gpu.SRGB)
	if err != nil {
		return err
	}
	gr.skyboxTexture = tx
	tx.SetFiltering(gpu.Linear)
	tx.SetWrapMode(gpu.ClampToEdge)

	sh, err := gr.newShader("skybox", "skybox.vert", "skybox.frag")
	if err != nil {
		return err
	}
	if err := sh.Require("viewProjection", "cubemap"); err != nil {
		return err
	}
	if err := sh.AddTexture("cubemap", tx); err != nil {
		return err
	}
	gr.skyboxShader = sh
	gr.skybox, err = gpu.NewVertexArray(gr.ctx, shape.SkyboxPositions(), gpu.Component{Name: "position", Size: 3})
	return err
}

func (gr *Graphics) initScene() error {
	sc := &gr.cfg.Scene
	var err error
	gr.markerShader, err = gr.newShader("light", "drawing.vert", "light.frag")
	if err != nil {
		return err
	}
	gr.marker, err = gr.newDrawable(shape.NewCube(sc.MarkerSize), gr.markerShader)
	if err != nil {
		return err
	}

	for _, md := range sc.Models {
		path, err := gr.cfg.Assets.Model(md.Path)
		if err != nil {
			return err
		}
		meshes, err := obj.Open(path)
		if err != nil {
			return err
		}
		model := mgl32.HomogRotate3DY(mgl32.DegToRad(md.RotateY))
		for i, ms := range meshes {
			var mt config.Material
			if n := len(md.Parts); n > 0 {
				mt = md.Parts[min(i, n-1)]
			}
			sh, err := gr.materialShader(mt)
			if err != nil {
				return err
			}
			dw, err := gr.newDrawable(ms, sh)
			if err != nil {
				return err
			}
			gr.solids = append(gr.solids, solid{dw: dw, model: model})
		}
		slog.Info("render: added model", "model", filepath.Base(path), "meshes", len(meshes))
	}

	sh, err := gr.materialShader(sc.Floor)
	if err != nil {
		return err
	}
	dw, err := gr.newDrawable(shape.NewPlane(sc.FloorSize), sh)
	if err != nil {
		return err
	}
	gr.floor = solid{dw: dw, model: mgl32.Ident4()}
	return nil
}

func (gr *Graphics) initFramebuffer() error {
	rt, err := gpu.NewRenderTexture(gr.ctx, "scene", gr.size)
	if err != nil {
		return err
	}
	gr.target = rt
	rt.Color.SetFiltering(gpu.Linear)

	sh, err := gr.newShader("screen", "framebuffer-display.vert", "framebuffer-display.frag")
	if err != nil {
		return err
	}
	if err := sh.Require("screenTexture"); err != nil {
		return err
	}
	if err := sh.AddTexture("screenTexture", rt.Color); err != nil {
		return err
	}
	gr.screenShader = sh
	gr.quad, err = gpu.NewVertexArray(gr.ctx, shape.ScreenQuad(),
		gpu.Component{Name: "position", Size: 2}, gpu.Component{Name: "texcoord", Size: 2})
	return err
}

// initView sets the camera projection for the framebuffer size.
func (gr *Graphics) initView() {
	cm := &gr.cfg.Camera
	aspect := float32(1)
	if gr.size.Y > 0 {
		aspect = float32(gr.size.X) / float32(gr.size.Y)
	}
	gr.projection = mgl32.Perspective(mgl32.DegToRad(cm.FOV), aspect, cm.Near, cm.Far)
}
