// Copyright (c) 2026, The Glitter Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

// Device is the graphics API surface used by this package.
// It follows OpenGL 4.1 core semantics: handles are non-zero
// uint32 names, zero means "none", and all calls must be made
// from the goroutine that owns the current GL context.
//
// The gldevice package provides the OpenGL implementation,
// and gputest provides an in-memory recording implementation.
type Device interface {
	// shaders and programs

	CreateShader(stage ShaderStages) uint32
	ShaderSource(shader uint32, src string)
	// CompileShader compiles the shader and returns whether it succeeded,
	// along with the compiler info log.
	CompileShader(shader uint32) (ok bool, log string)
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	BindAttribLocation(program, index uint32, name string)
	// LinkProgram links the program and returns whether it succeeded,
	// along with the linker info log.
	LinkProgram(program uint32) (ok bool, log string)
	// ActiveUniforms returns the active uniforms of a linked program.
	ActiveUniforms(program uint32) []UniformInfo
	UseProgram(program uint32)
	DeleteProgram(program uint32)

	// uniforms of the program in use

	UniformInt(location int32, v int32)
	// UniformFloats uploads a float, vec2, vec3 or vec4
	// depending on len(v).
	UniformFloats(location int32, v []float32)
	// UniformMatrix uploads a column-major mat3 (len 9) or mat4 (len 16).
	UniformMatrix(location int32, v []float32)

	// textures

	GenTexture() uint32
	ActiveTexture(unit int)
	BindTexture(target TextureTargets, texture uint32)
	// TexImage2D allocates storage for the bound texture at the given
	// target (Texture2D or a cube face), uploading data if non-nil.
	TexImage2D(target TextureTargets, internalFormat int32, width, height int, format, pixelType uint32, data []byte)
	TexParameteri(target TextureTargets, pname uint32, v int32)
	TexParameterfv(target TextureTargets, pname uint32, v []float32)
	DeleteTexture(texture uint32)

	// buffers and vertex arrays

	GenBuffer() uint32
	BindBuffer(target BufferTargets, buffer uint32)
	BufferData(target BufferTargets, data []byte)
	// GetBufferSubData reads back len(out) bytes at offset
	// from the buffer bound to target.
	GetBufferSubData(target BufferTargets, offset int, out []byte)
	DeleteBuffer(buffer uint32)

	GenVertexArray() uint32
	BindVertexArray(vao uint32)
	EnableVertexAttribArray(index uint32)
	// VertexAttribPointer describes float attribute data in the bound
	// array buffer; stride and offset are in bytes.
	VertexAttribPointer(index uint32, size, stride, offset int)
	DeleteVertexArray(vao uint32)

	// framebuffers

	GenFramebuffer() uint32
	BindFramebuffer(framebuffer uint32)
	FramebufferTexture2D(attachment Attachments, target TextureTargets, texture uint32)
	// SetColorBuffers enables or disables color reads and writes
	// on the bound framebuffer (glDrawBuffer / glReadBuffer).
	SetColorBuffers(enabled bool)
	CheckFramebufferStatus() uint32
	DeleteFramebuffer(framebuffer uint32)

	GenRenderbuffer() uint32
	BindRenderbuffer(renderbuffer uint32)
	RenderbufferStorage(internalFormat uint32, width, height int)
	FramebufferRenderbuffer(attachment Attachments, renderbuffer uint32)
	DeleteRenderbuffer(renderbuffer uint32)

	// fixed-function state and drawing

	Viewport(x, y, width, height int)
	ClearColor(r, g, b, a float32)
	Clear(bits ClearBits)
	Enable(c Capabilities)
	Disable(c Capabilities)
	DepthFunc(f CompareFuncs)
	// DrawElements draws count indices of uint32 triangles from
	// the bound vertex array.
	DrawElements(count int)
	// DrawArrays draws count vertices of triangles from the bound vertex array.
	DrawArrays(first, count int)
	// ReadPixels reads back RGBA 8-bit pixels from the bound framebuffer.
	ReadPixels(x, y, width, height int) []byte
	// GetError returns and clears the oldest recorded error code.
	GetError() uint32
}
