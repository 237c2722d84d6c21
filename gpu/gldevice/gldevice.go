// Copyright (c) 2026, The Glitter Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gldevice implements [gpu.Device] on OpenGL 4.1 core,
// through the go-gl bindings. A GL context must be current on the
// calling OS thread for every call, including [New].
package gldevice

import (
	"log/slog"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"glitter.dev/glitter/gpu"
)

// Device is the OpenGL [gpu.Device].
type Device struct {
	// Version is the GL version string of the context.
	Version string

	// Renderer is the GL renderer string of the context.
	Renderer string
}

var _ gpu.Device = (*Device)(nil)

// New loads the GL function pointers for the current context
// and returns a device using them.
func New() (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, err
	}
	d := &Device{
		Version:  gl.GoStr(gl.GetString(gl.VERSION)),
		Renderer: gl.GoStr(gl.GetString(gl.RENDERER)),
	}
	slog.Info("gldevice: initialized OpenGL", "version", d.Version, "renderer", d.Renderer)
	return d, nil
}

// cstr returns s null-terminated, as the gl string functions need.
func cstr(s string) string {
	if strings.HasSuffix(s, "\x00") {
		return s
	}
	return s + "\x00"
}

// infoLog reads an info log of the given length with the getter.
func infoLog(n int32, get func(n int32, buf *uint8)) string {
	if n <= 0 {
		return ""
	}
	buf := make([]uint8, n+1)
	get(n, &buf[0])
	return strings.TrimRight(string(buf), "\x00")
}

////////  Shaders

func (d *Device) CreateShader(stage gpu.ShaderStages) uint32 {
	return gl.CreateShader(uint32(stage))
}

func (d *Device) ShaderSource(sh uint32, src string) {
	csrc, free := gl.Strs(cstr(src))
	gl.ShaderSource(sh, 1, csrc, nil)
	free()
}

func (d *Device) CompileShader(sh uint32) (bool, string) {
	gl.CompileShader(sh)
	var status, n int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &status)
	gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, &n)
	log := infoLog(n, func(n int32, buf *uint8) { gl.GetShaderInfoLog(sh, n, nil, buf) })
	return status != gl.FALSE, log
}

func (d *Device) DeleteShader(sh uint32) {
	gl.DeleteShader(sh)
}

func (d *Device) CreateProgram() uint32 {
	return gl.CreateProgram()
}

func (d *Device) AttachShader(prog, sh uint32) {
	gl.AttachShader(prog, sh)
}

func (d *Device) BindAttribLocation(prog, index uint32, name string) {
	gl.BindAttribLocation(prog, index, gl.Str(cstr(name)))
}

func (d *Device) LinkProgram(prog uint32) (bool, string) {
	gl.LinkProgram(prog)
	var status, n int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &n)
	log := infoLog(n, func(n int32, buf *uint8) { gl.GetProgramInfoLog(prog, n, nil, buf) })
	return status != gl.FALSE, log
}

func (d *Device) ActiveUniforms(prog uint32) []gpu.UniformInfo {
	var count, maxLen int32
	gl.GetProgramiv(prog, gl.ACTIVE_UNIFORMS, &count)
	gl.GetProgramiv(prog, gl.ACTIVE_UNIFORM_MAX_LENGTH, &maxLen)
	if count == 0 || maxLen == 0 {
		return nil
	}
	us := make([]gpu.UniformInfo, 0, count)
	buf := make([]uint8, maxLen+1)
	for i := range uint32(count) {
		var n, size int32
		var typ uint32
		gl.GetActiveUniform(prog, i, maxLen, &n, &size, &typ, &buf[0])
		name := string(buf[:n])
		loc := gl.GetUniformLocation(prog, gl.Str(cstr(name)))
		us = append(us, gpu.UniformInfo{
			Name:     strings.TrimSuffix(name, "[0]"),
			Location: loc,
			Type:     gpu.UniformTypes(typ),
			Size:     int(size),
		})
	}
	return us
}

func (d *Device) UseProgram(prog uint32) {
	gl.UseProgram(prog)
}

func (d *Device) DeleteProgram(prog uint32) {
	gl.DeleteProgram(prog)
}

////////  Uniforms

func (d *Device) UniformInt(loc int32, v int32) {
	gl.Uniform1i(loc, v)
}

func (d *Device) UniformFloats(loc int32, v []float32) {
	switch len(v) {
	case 1:
		gl.Uniform1fv(loc, 1, &v[0])
	case 2:
		gl.Uniform2fv(loc, 1, &v[0])
	case 3:
		gl.Uniform3fv(loc, 1, &v[0])
	case 4:
		gl.Uniform4fv(loc, 1, &v[0])
	}
}

func (d *Device) UniformMatrix(loc int32, v []float32) {
	switch len(v) {
	case 9:
		gl.UniformMatrix3fv(loc, 1, false, &v[0])
	case 16:
		gl.UniformMatrix4fv(loc, 1, false, &v[0])
	}
}

////////  Textures

func (d *Device) GenTexture() uint32 {
	var h uint32
	gl.GenTextures(1, &h)
	return h
}

func (d *Device) ActiveTexture(unit int) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
}

func (d *Device) BindTexture(target gpu.TextureTargets, tex uint32) {
	gl.BindTexture(uint32(target), tex)
}

func (d *Device) TexImage2D(target gpu.TextureTargets, internalFormat int32, width, height int, format, pixelType uint32, data []byte) {
	var ptr unsafe.Pointer
	if len(data) > 0 {
		ptr = gl.Ptr(data)
	}
	// rows of 3-byte pixels are not 4-byte aligned
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(uint32(target), 0, internalFormat, int32(width), int32(height), 0, format, pixelType, ptr)
}

func (d *Device) TexParameteri(target gpu.TextureTargets, pname uint32, v int32) {
	gl.TexParameteri(uint32(target), pname, v)
}

func (d *Device) TexParameterfv(target gpu.TextureTargets, pname uint32, v []float32) {
	gl.TexParameterfv(uint32(target), pname, &v[0])
}

func (d *Device) DeleteTexture(tex uint32) {
	gl.DeleteTextures(1, &tex)
}

////////  Buffers

func (d *Device) GenBuffer() uint32 {
	var h uint32
	gl.GenBuffers(1, &h)
	return h
}

func (d *Device) BindBuffer(target gpu.BufferTargets, buf uint32) {
	gl.BindBuffer(uint32(target), buf)
}

func (d *Device) BufferData(target gpu.BufferTargets, data []byte) {
	var ptr unsafe.Pointer
	if len(data) > 0 {
		ptr = gl.Ptr(data)
	}
	gl.BufferData(uint32(target), len(data), ptr, gl.STATIC_DRAW)
}

func (d *Device) GetBufferSubData(target gpu.BufferTargets, offset int, out []byte) {
	if len(out) == 0 {
		return
	}
	gl.GetBufferSubData(uint32(target), offset, len(out), gl.Ptr(out))
}

func (d *Device) DeleteBuffer(buf uint32) {
	gl.DeleteBuffers(1, &buf)
}

func (d *Device) GenVertexArray() uint32 {
	var h uint32
	gl.GenVertexArrays(1, &h)
	return h
}

func (d *Device) BindVertexArray(vao uint32) {
	gl.BindVertexArray(vao)
}

func (d *Device) EnableVertexAttribArray(index uint32) {
	gl.EnableVertexAttribArray(index)
}

func (d *Device) VertexAttribPointer(index uint32, size, stride, offset int) {
	gl.VertexAttribPointerWithOffset(index, int32(size), gl.FLOAT, false, int32(stride), uintptr(offset))
}

func (d *Device) DeleteVertexArray(vao uint32) {
	gl.DeleteVertexArrays(1, &vao)
}

////////  Framebuffers

func (d *Device) GenFramebuffer() uint32 {
	var h uint32
	gl.GenFramebuffers(1, &h)
	return h
}

func (d *Device) BindFramebuffer(fb uint32) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, fb)
}

func (d *Device) FramebufferTexture2D(attachment gpu.Attachments, target gpu.TextureTargets, tex uint32) {
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, uint32(attachment), uint32(target), tex, 0)
}

func (d *Device) SetColorBuffers(enabled bool) {
	buf := uint32(gl.NONE)
	if enabled {
		buf = gl.COLOR_ATTACHMENT0
	}
	gl.DrawBuffer(buf)
	gl.ReadBuffer(buf)
}

func (d *Device) CheckFramebufferStatus() uint32 {
	return gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
}

func (d *Device) DeleteFramebuffer(fb uint32) {
	gl.DeleteFramebuffers(1, &fb)
}

func (d *Device) GenRenderbuffer() uint32 {
	var h uint32
	gl.GenRenderbuffers(1, &h)
	return h
}

func (d *Device) BindRenderbuffer(rb uint32) {
	gl.BindRenderbuffer(gl.RENDERBUFFER, rb)
}

func (d *Device) RenderbufferStorage(internalFormat uint32, width, height int) {
	gl.RenderbufferStorage(gl.RENDERBUFFER, internalFormat, int32(width), int32(height))
}

func (d *Device) FramebufferRenderbuffer(attachment gpu.Attachments, rb uint32) {
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, uint32(attachment), gl.RENDERBUFFER, rb)
}

func (d *Device) DeleteRenderbuffer(rb uint32) {
	gl.DeleteRenderbuffers(1, &rb)
}

////////  State and drawing

func (d *Device) Viewport(x, y, width, height int) {
	gl.Viewport(int32(x), int32(y), int32(width), int32(height))
}

func (d *Device) ClearColor(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
}

func (d *Device) Clear(bits gpu.ClearBits) {
	gl.Clear(uint32(bits))
}

func (d *Device) Enable(c gpu.Capabilities) {
	gl.Enable(uint32(c))
}

func (d *Device) Disable(c gpu.Capabilities) {
	gl.Disable(uint32(c))
}

func (d *Device) DepthFunc(f gpu.CompareFuncs) {
	gl.DepthFunc(uint32(f))
}

func (d *Device) DrawElements(count int) {
	gl.DrawElementsWithOffset(gl.TRIANGLES, int32(count), gl.UNSIGNED_INT, 0)
}

func (d *Device) DrawArrays(first, count int) {
	gl.DrawArrays(gl.TRIANGLES, int32(first), int32(count))
}

func (d *Device) ReadPixels(x, y, width, height int) []byte {
	pix := make([]byte, 4*width*height)
	if len(pix) == 0 {
		return pix
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(int32(x), int32(y), int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))
	return pix
}

func (d *Device) GetError() uint32 {
	return gl.GetError()
}
