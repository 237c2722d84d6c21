// Copyright (c) 2026, The Glitter Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu_test

import (
	"bytes"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"glitter.dev/glitter/gpu"
	"glitter.dev/glitter/gpu/gputest"
)

const testVert = `#version 410 core
layout (location = 0) in vec3 position;
uniform mat4 modelViewProjection;
uniform mat4 model;
void main() {
    gl_Position = modelViewProjection * vec4(position, 1.0);
}
`

const testFrag = `#version 410 core
struct Material {
    sampler2D diffuse;
    sampler2D normal;
    float shininess;
};
uniform Material material;
uniform sampler2D shadowMap;
uniform vec3 color;
out vec4 outColor;
void main() {
    outColor = vec4(color, 1.0);
}
`

func newTestContext() (*gputest.Device, *gpu.Context) {
	dev := gputest.NewDevice()
	return dev, gpu.NewContext(dev)
}

func newTestShader(t *testing.T, ctx *gpu.Context, name, vert, frag string) *gpu.Shader {
	t.Helper()
	sh := gpu.NewShader(ctx, name)
	require.NoError(t, sh.AttachSource(gpu.VertexShader, name+".vert", vert))
	require.NoError(t, sh.AttachSource(gpu.FragmentShader, name+".frag", frag))
	require.NoError(t, sh.Link())
	return sh
}

// captureLog redirects the default logger into a buffer for the test.
func captureLog(t *testing.T) *bytes.Buffer {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestContextProgramCache(t *testing.T) {
	dev, ctx := newTestContext()
	a := newTestShader(t, ctx, "a", testVert, testFrag)
	b := newTestShader(t, ctx, "b", testVert, testFrag)
	dev.ResetCalls()

	a.Activate()
	a.Activate()
	a.Activate()
	assert.Equal(t, 1, dev.Count("UseProgram"))
	b.Activate()
	a.Activate()
	assert.Equal(t, 3, dev.Count("UseProgram"))
	assert.Equal(t, a.Handle(), dev.Program)
	assert.Equal(t, a.Handle(), ctx.Program())

	ctx.Invalidate()
	a.Activate()
	assert.Equal(t, 4, dev.Count("UseProgram"))
}

func TestContextTextureUnits(t *testing.T) {
	dev, ctx := newTestContext()
	tex, err := gpu.NewTexture(ctx, image.Pt(2, 2), gpu.LinearSpace, gpu.RGBA, gpu.UnsignedByte, nil)
	require.NoError(t, err)
	dev.ResetCalls()
	before := ctx.Stats

	// bound on unit 0 at creation
	tex.Bind(0)
	assert.Equal(t, 0, dev.Count("BindTexture"))

	// the same texture on another unit is a separate binding
	tex.Bind(1)
	tex.Bind(1)
	assert.Equal(t, 1, dev.Count("BindTexture"))
	assert.Equal(t, 1, dev.Count("ActiveTexture"))
	assert.Equal(t, tex.Handle(), dev.Bound[1][gpu.Texture2D])
	assert.Equal(t, tex.Handle(), dev.Bound[0][gpu.Texture2D])
	assert.Equal(t, 2, ctx.Stats.Skipped-before.Skipped)

	tex.Release()
	tex2, err := gpu.NewTexture(ctx, image.Pt(2, 2), gpu.LinearSpace, gpu.RGBA, gpu.UnsignedByte, nil)
	require.NoError(t, err)
	dev.ResetCalls()
	tex2.Bind(1)
	assert.Equal(t, 1, dev.Count("BindTexture"))
}

func TestContextFixedState(t *testing.T) {
	dev, ctx := newTestContext()
	ctx.Enable(gpu.DepthTest)
	ctx.Enable(gpu.DepthTest)
	ctx.Disable(gpu.CullFace)
	ctx.Disable(gpu.CullFace)
	ctx.SetDepthFunc(gpu.LessEqual)
	ctx.SetDepthFunc(gpu.LessEqual)
	ctx.Viewport(image.Pt(800, 600))
	ctx.Viewport(image.Pt(800, 600))
	ctx.BindFramebuffer(0)
	ctx.BindFramebuffer(0)
	assert.Equal(t, 1, dev.Count("Enable"))
	assert.Equal(t, 1, dev.Count("Disable"))
	assert.Equal(t, 1, dev.Count("DepthFunc"))
	assert.Equal(t, 1, dev.Count("Viewport"))
	assert.Equal(t, 1, dev.Count("BindFramebuffer"))
	assert.Equal(t, gpu.Stats{Issued: 5, Skipped: 5}, ctx.Stats)
	assert.True(t, dev.Caps[gpu.DepthTest])
	assert.Equal(t, gpu.LessEqual, dev.DepthCompare)
}

func TestShaderUniforms(t *testing.T) {
	dev, ctx := newTestContext()
	sh := newTestShader(t, ctx, "test", testVert, testFrag)

	assert.True(t, sh.HasUniform("modelViewProjection"))
	assert.True(t, sh.HasUniform("material.shininess"))
	assert.False(t, sh.HasUniform("material"))
	assert.Equal(t, []string{"material.diffuse", "material.normal", "shadowMap"}, sh.Samplers())

	// samplers are set to their units at link
	for i, name := range sh.Samplers() {
		v, ok := dev.Uniform(sh.Handle(), name)
		require.True(t, ok, name)
		assert.Equal(t, []float32{float32(i)}, v)
	}

	sh.SetUniform("color", mgl32.Vec3{0.1, 0.2, 0.3})
	v, ok := dev.Uniform(sh.Handle(), "color")
	require.True(t, ok)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, v)

	sh.SetUniform("material.shininess", float32(32))
	v, _ = dev.Uniform(sh.Handle(), "material.shininess")
	assert.Equal(t, []float32{32}, v)
}

func TestShaderMissingUniformWarnsOnce(t *testing.T) {
	buf := captureLog(t)
	dev, ctx := newTestContext()
	sh := newTestShader(t, ctx, "test", testVert, testFrag)
	dev.ResetCalls()

	sh.SetUniform("nope", float32(1))
	sh.SetUniform("nope", float32(2))
	assert.Equal(t, 0, dev.Count("UniformFloats"))
	assert.Equal(t, 1, strings.Count(buf.String(), "uniform not in program"))

	// wrong type is skipped too
	sh.SetUniform("color", float32(1))
	sh.SetUniform("color", float32(1))
	assert.Equal(t, 0, dev.Count("UniformFloats"))
	assert.Equal(t, 1, strings.Count(buf.String(), "does not match its type"))
}

func TestShaderRequire(t *testing.T) {
	_, ctx := newTestContext()
	sh := newTestShader(t, ctx, "test", testVert, testFrag)
	require.NoError(t, sh.Require("modelViewProjection", "shadowMap"))

	err := sh.Require("viewProjection", "cubemap")
	require.Error(t, err)
	var mu *gpu.MissingUniformError
	require.ErrorAs(t, err, &mu)
	assert.Equal(t, "test", mu.Program)
	assert.Contains(t, err.Error(), "viewProjection")
	assert.Contains(t, err.Error(), "cubemap")
}

func TestShaderCompileAndLinkErrors(t *testing.T) {
	dev, ctx := newTestContext()
	sh := gpu.NewShader(ctx, "bad")
	err := sh.AttachSource(gpu.FragmentShader, "bad.frag", "#version 410 core\n#error syntax\n")
	var ce *gpu.CompileError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "bad.frag", ce.Path)
	assert.Equal(t, gpu.FragmentShader, ce.Stage)
	assert.Contains(t, ce.Log, "syntax")
	assert.Equal(t, 0, dev.Live(gputest.KindShader))

	// a vertex shader alone does not link
	require.NoError(t, sh.AttachSource(gpu.VertexShader, "ok.vert", testVert))
	err = sh.Link()
	var le *gpu.LinkError
	require.ErrorAs(t, err, &le)
	assert.NotEmpty(t, le.Log)
	assert.Equal(t, 0, dev.Live(gputest.KindShader))
	assert.Equal(t, 0, dev.Live(gputest.KindProgram))

	dev.FailLink = true
	sh2 := gpu.NewShader(ctx, "fail")
	require.NoError(t, sh2.AttachSource(gpu.VertexShader, "v", testVert))
	require.NoError(t, sh2.AttachSource(gpu.FragmentShader, "f", testFrag))
	require.ErrorAs(t, sh2.Link(), &le)
}

func TestAttachShaderFiles(t *testing.T) {
	_, ctx := newTestContext()
	dir := t.TempDir()
	sh := gpu.NewShader(ctx, "files")

	err := sh.AttachShader(filepath.Join(dir, "missing.vert"))
	var le *gpu.LoadError
	require.ErrorAs(t, err, &le)
	assert.ErrorIs(t, err, os.ErrNotExist)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.glsl"), []byte(testVert), 0o644))
	assert.Error(t, sh.AttachShader(filepath.Join(dir, "a.glsl")))

	vert := writeFile(t, dir, "a.vert", testVert)
	frag := writeFile(t, dir, "a.frag", testFrag)
	require.NoError(t, sh.AttachShader(vert))
	require.NoError(t, sh.AttachShader(frag))
	require.NoError(t, sh.Link())
	assert.Equal(t, []string{vert, frag}, sh.Sources())
}

func TestShaderTextures(t *testing.T) {
	dev, ctx := newTestContext()
	sh := newTestShader(t, ctx, "test", testVert, testFrag)
	diffuse := newRGBA(t, ctx)
	shadow := newRGBA(t, ctx)
	other := newRGBA(t, ctx)

	// added out of sampler order
	require.NoError(t, sh.AddTexture("shadowMap", shadow))
	require.NoError(t, sh.AddTexture("material.diffuse", other))
	require.NoError(t, sh.AddTexture("material.diffuse", diffuse))

	var mu *gpu.MissingUniformError
	require.ErrorAs(t, sh.AddTexture("material.specular", other), &mu)
	assert.Equal(t, "material.specular", mu.Name)

	slot, ok := sh.Slot("shadowMap")
	require.True(t, ok)
	assert.Equal(t, 2, slot)

	sh.BindTextures()
	assert.Equal(t, diffuse.Handle(), dev.Bound[0][gpu.Texture2D])
	assert.Equal(t, shadow.Handle(), dev.Bound[2][gpu.Texture2D])
}

func TestShaderReload(t *testing.T) {
	dev, ctx := newTestContext()
	dir := t.TempDir()
	vert := writeFile(t, dir, "s.vert", testVert)
	frag := writeFile(t, dir, "s.frag", testFrag)
	sh := gpu.NewShader(ctx, "reload")
	require.NoError(t, sh.AttachShader(vert))
	require.NoError(t, sh.AttachShader(frag))
	require.NoError(t, sh.Link())
	tex := newRGBA(t, ctx)
	require.NoError(t, sh.AddTexture("shadowMap", tex))
	sh.SetUniform("color", mgl32.Vec3{1, 0, 0})
	old := sh.Handle()

	// a broken edit keeps the old program
	writeFile(t, dir, "s.frag", "#error missing semicolon\n")
	var ce *gpu.CompileError
	require.ErrorAs(t, sh.Reload(), &ce)
	assert.Equal(t, old, sh.Handle())
	assert.Equal(t, 1, dev.Live(gputest.KindProgram))

	// a good edit swaps in a new program with the old values
	writeFile(t, dir, "s.frag", strings.Replace(testFrag, "uniform vec3 color;", "uniform vec3 color;\nuniform float time;", 1))
	require.NoError(t, sh.Reload())
	assert.NotEqual(t, old, sh.Handle())
	assert.True(t, sh.HasUniform("time"))
	assert.Equal(t, 1, dev.Live(gputest.KindProgram))
	v, ok := dev.Uniform(sh.Handle(), "color")
	require.True(t, ok)
	assert.Equal(t, []float32{1, 0, 0}, v)
	v, ok = dev.Uniform(sh.Handle(), "shadowMap")
	require.True(t, ok)
	assert.Equal(t, []float32{2}, v)

	sh.BindTextures()
	assert.Equal(t, tex.Handle(), dev.Bound[2][gpu.Texture2D])
}

func TestShaderReloadMissingRequired(t *testing.T) {
	dev, ctx := newTestContext()
	dir := t.TempDir()
	vert := writeFile(t, dir, "s.vert", testVert)
	frag := writeFile(t, dir, "s.frag", testFrag)
	sh := gpu.NewShader(ctx, "reload")
	require.NoError(t, sh.AttachShader(vert))
	require.NoError(t, sh.AttachShader(frag))
	require.NoError(t, sh.Link())
	require.NoError(t, sh.Require("modelViewProjection"))
	old := sh.Handle()

	// the edit links, but renames a required uniform
	writeFile(t, dir, "s.vert", strings.ReplaceAll(testVert, "modelViewProjection", "mvp"))
	var mu *gpu.MissingUniformError
	require.ErrorAs(t, sh.Reload(), &mu)
	assert.Equal(t, "modelViewProjection", mu.Name)
	assert.Equal(t, old, sh.Handle())
	assert.True(t, sh.HasUniform("modelViewProjection"))
	assert.False(t, sh.HasUniform("mvp"))
	assert.Equal(t, 1, dev.Live(gputest.KindProgram))

	// restoring it reloads
	writeFile(t, dir, "s.vert", testVert)
	require.NoError(t, sh.Reload())
	assert.NotEqual(t, old, sh.Handle())
	assert.Equal(t, 1, dev.Live(gputest.KindProgram))
}

func TestShaderRelease(t *testing.T) {
	dev, ctx := newTestContext()
	sh := newTestShader(t, ctx, "test", testVert, testFrag)
	sh.Release()
	sh.Release()
	assert.Equal(t, 0, dev.Live(gputest.KindProgram))
	assert.Equal(t, 0, dev.DoubleFrees)
	assert.Equal(t, uint32(0), sh.Handle())
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	fn := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(fn, []byte(content), 0o644))
	return fn
}
