// Copyright (c) 2026, The Glitter Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu_test

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"glitter.dev/glitter/base/iox/imagex"
	"glitter.dev/glitter/gpu"
	"glitter.dev/glitter/gpu/gputest"
	"glitter.dev/glitter/shape"
)

func newRGBA(t *testing.T, ctx *gpu.Context) *gpu.Texture {
	t.Helper()
	tex, err := gpu.NewTexture(ctx, image.Pt(1, 1), gpu.LinearSpace, gpu.RGBA, gpu.UnsignedByte, []byte{255, 255, 255, 255})
	require.NoError(t, err)
	return tex
}

func saveImage(t *testing.T, dir, name string, size image.Point, c color.Color) string {
	t.Helper()
	img := image.NewRGBA(image.Rectangle{Max: size})
	for y := range size.Y {
		for x := range size.X {
			img.Set(x, y, c)
		}
	}
	fn := filepath.Join(dir, name)
	require.NoError(t, imagex.Save(img, fn))
	return fn
}

func TestTextureFormats(t *testing.T) {
	dev, ctx := newTestContext()

	tex, err := gpu.NewTexture(ctx, image.Pt(4, 2), gpu.LinearSpace, gpu.RGBA, gpu.Float, nil)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(4, 2), tex.Size())
	dt := dev.Textures[tex.Handle()]
	assert.Equal(t, gpu.ValueLinear, dt.Params[gpu.ParamMinFilter])
	assert.Equal(t, gpu.ValueClampToEdge, dt.Params[gpu.ParamWrapT])

	// depth storage of bytes is not accepted
	_, err = gpu.NewTexture(ctx, image.Pt(4, 2), gpu.LinearSpace, gpu.DepthComponent, gpu.UnsignedByte, nil)
	var ue *gpu.TextureUploadError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, gpu.DepthComponent, ue.Format)
	assert.Equal(t, gpu.InvalidOperation, ue.Code)
	assert.Equal(t, 1, dev.Live(gputest.KindTexture))

	dev.RejectTextures = true
	_, err = gpu.NewTexture(ctx, image.Pt(4, 2), gpu.LinearSpace, gpu.RGB, gpu.UnsignedByte, nil)
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, 1, dev.Live(gputest.KindTexture))
}

func TestTexturePendingError(t *testing.T) {
	dev, ctx := newTestContext()
	// an unrelated failed call leaves an error code behind
	dev.UseProgram(999)
	tex, err := gpu.NewTexture(ctx, image.Pt(4, 2), gpu.LinearSpace, gpu.RGBA, gpu.UnsignedByte, nil)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(4, 2), tex.Size())
	assert.Equal(t, gpu.NoError, dev.GetError())
}

func TestTextureResize(t *testing.T) {
	dev, ctx := newTestContext()
	tex, err := gpu.NewTexture(ctx, image.Pt(8, 8), gpu.LinearSpace, gpu.RGB, gpu.UnsignedByte, nil)
	require.NoError(t, err)
	h := tex.Handle()
	dev.ResetCalls()
	require.NoError(t, tex.Resize(image.Pt(8, 8)))
	assert.Equal(t, 0, dev.Count("TexImage2D"))

	require.NoError(t, tex.Resize(image.Pt(16, 4)))
	assert.Equal(t, h, tex.Handle())
	assert.Equal(t, image.Pt(16, 4), tex.Size())
	assert.Equal(t, image.Pt(16, 4), dev.Textures[h].Images[gpu.Texture2D].Size)
}

func TestTextureFromFile(t *testing.T) {
	dev, ctx := newTestContext()
	dir := t.TempDir()
	opaque := saveImage(t, dir, "opaque.png", image.Pt(3, 2), color.RGBA{255, 0, 0, 255})
	translucent := saveImage(t, dir, "clear.png", image.Pt(2, 2), color.NRGBA{0, 0, 255, 128})

	tex, err := gpu.NewTextureFromFile(ctx, opaque, gpu.SRGB, true)
	require.NoError(t, err)
	assert.Equal(t, "opaque.png", tex.Name)
	assert.Equal(t, gpu.RGB, tex.Format)
	assert.Equal(t, image.Pt(3, 2), tex.Size())
	ti := dev.Textures[tex.Handle()].Images[gpu.Texture2D]
	assert.Len(t, ti.Data, 3*2*4)
	assert.Equal(t, []byte{255, 0, 0, 255}, ti.Data[:4])
	assert.Equal(t, gpu.ValueRepeat, dev.Textures[tex.Handle()].Params[gpu.ParamWrapS])

	tex, err = gpu.NewTextureFromFile(ctx, translucent, gpu.LinearSpace, false)
	require.NoError(t, err)
	assert.Equal(t, gpu.RGBA, tex.Format)

	_, err = gpu.NewTextureFromFile(ctx, filepath.Join(dir, "none.png"), gpu.SRGB, true)
	var le *gpu.LoadError
	require.ErrorAs(t, err, &le)
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.png")
	require.NoError(t, os.WriteFile(bad, []byte("not an image"), 0o644))
	_, err = gpu.NewTextureFromFile(ctx, bad, gpu.SRGB, true)
	require.ErrorAs(t, err, &le)
	assert.Equal(t, bad, le.Path)
}

func TestCubeMap(t *testing.T) {
	dev, ctx := newTestContext()
	dir := t.TempDir()
	for _, nm := range gpu.CubeFaceNames {
		saveImage(t, dir, nm+".png", image.Pt(2, 2), color.White)
	}
	tex, err := gpu.NewCubeMap(ctx, gpu.CubeMapFaces(dir, ".png"), gpu.SRGB)
	require.NoError(t, err)
	dt := dev.Textures[tex.Handle()]
	assert.Equal(t, gpu.TextureCubeMap, dt.Target)
	assert.Len(t, dt.Images, 6)
	assert.Equal(t, gpu.ValueClampToEdge, dt.Params[gpu.ParamWrapR])
	assert.Error(t, tex.Resize(image.Pt(4, 4)))

	saveImage(t, dir, "back.png", image.Pt(4, 4), color.White)
	_, err = gpu.NewCubeMap(ctx, gpu.CubeMapFaces(dir, ".png"), gpu.SRGB)
	var le *gpu.LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, filepath.Join(dir, "back.png"), le.Path)
}

func TestDrawable(t *testing.T) {
	dev, ctx := newTestContext()
	sh := newTestShader(t, ctx, "test", testVert, testFrag)
	ms := shape.NewCube(1)
	dw, err := gpu.NewDrawable(ctx, ms, sh)
	require.NoError(t, err)
	assert.Equal(t, 36, dw.Elements())

	vb, ib := dw.ReadBack()
	assert.Equal(t, ms.VertexBytes(), vb)
	assert.Equal(t, ms.IndexBytes(), ib)

	model := mgl32.Translate3D(1, 2, 3)
	view := mgl32.LookAtV(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	proj := mgl32.Perspective(mgl32.DegToRad(45), 1, 0.1, 100)
	dev.ResetCalls()
	dw.Draw(model, view, proj, nil)
	require.Len(t, dev.Draws, 1)
	dr := dev.Draws[0]
	assert.Equal(t, 36, dr.Count)
	assert.True(t, dr.Indexed)
	assert.Equal(t, sh.Handle(), dr.Program)
	mvp, ok := dev.Uniform(sh.Handle(), "modelViewProjection")
	require.True(t, ok)
	want := proj.Mul4(view).Mul4(model)
	assert.Equal(t, want[:], mvp)

	other := newTestShader(t, ctx, "other", testVert, testFrag)
	dw.Draw(model, view, proj, other)
	require.Len(t, dev.Draws, 2)
	assert.Equal(t, other.Handle(), dev.Draws[1].Program)

	dw.Release()
	dw.Release()
	assert.Equal(t, 0, dev.DoubleFrees)
	assert.Equal(t, 0, dev.Live(gputest.KindBuffer))
	assert.Equal(t, 0, dev.Live(gputest.KindVertexArray))
	dev.ResetCalls()
	dw.Draw(model, view, proj, nil)
	assert.Empty(t, dev.Draws)
}

func TestDrawableErrors(t *testing.T) {
	_, ctx := newTestContext()
	sh := newTestShader(t, ctx, "test", testVert, testFrag)
	ms := shape.NewCube(1)
	ms.Indices = ms.Indices[:4]
	_, err := gpu.NewDrawable(ctx, ms, sh)
	assert.Error(t, err)

	noMVP := newTestShader(t, ctx, "plain", "#version 410 core\nuniform mat4 model;\nvoid main() {}\n", testFrag)
	_, err = gpu.NewDrawable(ctx, shape.NewCube(1), noMVP)
	var mu *gpu.MissingUniformError
	require.ErrorAs(t, err, &mu)
	assert.Equal(t, "modelViewProjection", mu.Name)
}

func TestRenderTexture(t *testing.T) {
	dev, ctx := newTestContext()
	rt, err := gpu.NewRenderTexture(ctx, "offscreen", image.Pt(64, 32))
	require.NoError(t, err)
	assert.Equal(t, uint32(0), dev.Framebuffer)
	fb := rt.Framebuffer.Handle()
	assert.Equal(t, rt.Color.Handle(), dev.Attachments(fb)[gpu.ColorAttachment0])

	require.NoError(t, rt.SetSize(image.Pt(128, 64)))
	assert.Equal(t, image.Pt(128, 64), rt.Size())
	assert.Equal(t, image.Pt(128, 64), dev.Textures[rt.Color.Handle()].Images[gpu.Texture2D].Size)
	assert.Equal(t, 1, dev.Live(gputest.KindRenderbuffer))

	rt.Bind()
	dev.ClearColor(1, 0, 0, 1)
	dev.Clear(gpu.ClearColor)
	img := gpu.ReadImage(ctx, image.Pt(4, 2))
	assert.Equal(t, image.Pt(4, 2), img.Bounds().Size())
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, img.RGBAAt(3, 1))

	rt.Release()
	rt.Release()
	assert.Equal(t, 0, dev.DoubleFrees)
	assert.Equal(t, 0, dev.Live(gputest.KindFramebuffer))
	assert.Equal(t, 0, dev.Live(gputest.KindRenderbuffer))
	assert.Equal(t, 0, dev.Live(gputest.KindTexture))
}

func TestFramebufferIncomplete(t *testing.T) {
	dev, ctx := newTestContext()
	fb := gpu.NewFramebuffer(ctx, "empty")
	err := fb.Check()
	var fe *gpu.FramebufferIncompleteError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, gpu.FramebufferIncompleteMissingAttachment, fe.Status)
	assert.Contains(t, err.Error(), "missing attachment")
	fb.Release()

	dev.ForceIncomplete = true
	_, err = gpu.NewRenderTexture(ctx, "offscreen", image.Pt(8, 8))
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "offscreen", fe.Name)
	assert.Equal(t, 0, dev.Live(gputest.KindFramebuffer))
	assert.Equal(t, 0, dev.Live(gputest.KindTexture))
	assert.Equal(t, 0, dev.Live(gputest.KindRenderbuffer))
}

func TestDepthMap(t *testing.T) {
	dev, ctx := newTestContext()
	dm, err := gpu.NewDepthMap(ctx, "shadow", image.Pt(512, 512), gpu.Greater)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(512, 512), dm.Size())
	dt := dev.Textures[dm.Depth.Handle()]
	assert.Equal(t, gpu.ValueClampToBorder, dt.Params[gpu.ParamWrapS])
	assert.Equal(t, gpu.ValueCompareRefToTexture, dt.Params[gpu.ParamCompareMode])
	assert.Equal(t, int32(gpu.Greater), dt.Params[gpu.ParamCompareFunc])
	assert.Equal(t, []float32{1, 1, 1, 1}, dt.ParamsF[gpu.ParamBorderColor])
	assert.Equal(t, dm.Depth.Handle(), dev.Attachments(dm.Framebuffer.Handle())[gpu.DepthAttachment])
	dm.Release()
	assert.Equal(t, 0, dev.Live(gputest.KindTexture))
}

func TestVertexArray(t *testing.T) {
	dev, ctx := newTestContext()
	va, err := gpu.NewVertexArray(ctx, shape.ScreenQuad(), gpu.Component{Name: "position", Size: 2}, gpu.Component{Name: "texcoord", Size: 2})
	require.NoError(t, err)
	assert.Equal(t, 6, va.Vertices())

	pos, _ := shape.AttributeByName("position")
	tc, _ := shape.AttributeByName("texcoord")
	as := dev.Attribs(dev.VertexArray)
	assert.Equal(t, gputest.Attrib{Buffer: as[pos.Location].Buffer, Size: 2, Stride: 16, Offset: 0, Enabled: true}, as[pos.Location])
	assert.Equal(t, 8, as[tc.Location].Offset)

	sh := newTestShader(t, ctx, "test", testVert, testFrag)
	sh.Activate()
	dev.ResetCalls()
	va.Draw()
	require.Len(t, dev.Draws, 1)
	assert.False(t, dev.Draws[0].Indexed)
	assert.Equal(t, 6, dev.Draws[0].Count)

	_, err = gpu.NewVertexArray(ctx, []float32{1, 2, 3}, gpu.Component{Name: "position", Size: 2})
	assert.Error(t, err)
	_, err = gpu.NewVertexArray(ctx, []float32{1, 2}, gpu.Component{Name: "color", Size: 2})
	assert.Error(t, err)

	va.Release()
	va.Release()
	assert.Equal(t, 0, dev.DoubleFrees)
}

func TestSRGB(t *testing.T) {
	for _, v := range []float32{0, 0.001, 0.2, 0.5, 1} {
		assert.InDelta(t, v, gpu.SRGBToLinearComp(gpu.SRGBFromLinearComp(v)), 1e-5)
	}
	assert.InDelta(t, 1, gpu.SRGBFromLinearComp(1), 1e-6)

	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Pix = []byte{0, 128, 255, 77}
	gpu.SetImageSRGBFromLinear(img)
	assert.Equal(t, byte(0), img.Pix[0])
	assert.InDelta(t, 188, int(img.Pix[1]), 1)
	assert.Equal(t, byte(255), img.Pix[2])
	assert.Equal(t, byte(77), img.Pix[3])
}
