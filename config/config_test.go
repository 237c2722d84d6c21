// Copyright (c) 2026, The Glitter Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"glitter.dev/glitter/xyz"
)

func TestDefaults(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	assert.Equal(t, 800, c.Window.Width)
	assert.Equal(t, 512, c.Shadow.Size)
	assert.Equal(t, mgl32.Vec3{0, 1.4, 0}, c.Camera.Centre)
	require.Len(t, c.Scene.Models, 1)
	assert.Len(t, c.Scene.Models[0].Parts, 3)
	assert.Equal(t, c.Scene.Models[0].Parts[0], c.Scene.Models[0].Parts[1])
}

func TestSaveOpen(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"glitter.toml", "glitter.yaml", "glitter.yml"} {
		t.Run(name, func(t *testing.T) {
			fn := filepath.Join(dir, name)
			want := Default()
			want.Window.Title = "sandbox"
			want.Light.Preset = "Halogen"
			want.Dev.Watch = true
			require.NoError(t, want.Save(fn))
			got, err := Open(fn)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestOpenPartial(t *testing.T) {
	dir := t.TempDir()
	fn := filepath.Join(dir, "partial.toml")
	require.NoError(t, os.WriteFile(fn, []byte("[Window]\nWidth = 1024\n\n[Light]\nOrbitSpeed = 0.0\n"), 0o644))
	c, err := Open(fn)
	require.NoError(t, err)
	assert.Equal(t, 1024, c.Window.Width)
	assert.Equal(t, 600, c.Window.Height)
	assert.Equal(t, float32(0), c.Light.OrbitSpeed)
	assert.Equal(t, float32(0.027), c.Light.Linear)

	fn = filepath.Join(dir, "partial.yaml")
	require.NoError(t, os.WriteFile(fn, []byte("window:\n  title: hello\nshadow:\n  size: 1024\n"), 0o644))
	c, err = Open(fn)
	require.NoError(t, err)
	assert.Equal(t, "hello", c.Window.Title)
	assert.Equal(t, 1024, c.Shadow.Size)
	assert.Equal(t, 800, c.Window.Width)
}

func TestOpenErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := Open(filepath.Join(dir, "glitter.json"))
	assert.ErrorContains(t, err, "unsupported file type")

	_, err = Open(filepath.Join(dir, "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	fn := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(fn, []byte("[Window\n"), 0o644))
	_, err = Open(fn)
	assert.ErrorContains(t, err, "bad.toml")

	assert.Error(t, Default().Save(filepath.Join(dir, "glitter.ini")))
}

func TestValidate(t *testing.T) {
	c := Default()
	c.Window.Width = 0
	c.Shadow.Size = -1
	c.Light.Constant, c.Light.Linear, c.Light.Quadratic = 1, -1, 0.01
	err := c.Validate()
	require.Error(t, err)
	assert.ErrorContains(t, err, "window size")
	assert.ErrorContains(t, err, "shadow map size")
	assert.ErrorContains(t, err, "attenuation")

	c = Default()
	c.Light.Preset = "laser"
	assert.ErrorContains(t, c.Validate(), "unknown light color")

	c = Default()
	c.Scene.Models = append(c.Scene.Models, Model{})
	assert.ErrorContains(t, c.Validate(), "model 1 has no path")
}

func TestApplyLight(t *testing.T) {
	c := Default()
	var lt xyz.Light
	require.NoError(t, c.Light.Apply(&lt))
	var want xyz.Light
	want.Defaults()
	assert.Equal(t, want.Position, lt.Position)
	assert.Equal(t, want.Quadratic, lt.Quadratic)
	assert.InDelta(t, want.CutOff, lt.CutOff, 1e-6)
	assert.InDelta(t, want.OuterCutOff, lt.OuterCutOff, 1e-6)
	assert.Equal(t, want.Ambient, lt.Ambient)
	assert.InDelta(t, 1, lt.Direction.Len(), 1e-5)

	c.Light.Preset = "Candle"
	c.Light.Position = mgl32.Vec3{0, 3, 0}
	require.NoError(t, c.Light.Apply(&lt))
	assert.Equal(t, xyz.Candle.Vec3(), lt.Specular)
	assert.InDelta(t, -1, lt.Direction.Y(), 1e-6)
}

func TestMaterialSurface(t *testing.T) {
	m := Material{Diffuse: "brick.jpg", Shininess: 64}
	xm := m.Surface()
	assert.Equal(t, float32(64), xm.Shininess)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, xm.Diffuse)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, xm.Specular)
}

func TestResolve(t *testing.T) {
	as := Assets{Dir: "/data/assets", Shaders: "shaders", Textures: "/srv/textures", Models: "models"}
	p, err := as.Shader("depth.vert")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/data/assets", "shaders", "depth.vert"), p)

	p, err = as.Texture("skybox")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/srv/textures", "skybox"), p)

	p, err = as.Model("/abs/Skye.obj")
	require.NoError(t, err)
	assert.Equal(t, "/abs/Skye.obj", p)

	home, err := homedir.Expand("~/glitter")
	require.NoError(t, err)
	as.Dir = "~/glitter"
	p, err = as.Model("Skye.obj")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "models", "Skye.obj"), p)
}
