// Copyright (c) 2026, The Glitter Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"image"
	"log/slog"
)

// MaxTextureUnits is the number of texture units tracked by [Context].
// OpenGL 4.1 guarantees at least 16 per stage.
const MaxTextureUnits = 16

// Stats counts the state changes requested of a [Context], split into
// those passed to the [Device] and those skipped because the state
// was already current.
type Stats struct {
	Issued  int
	Skipped int
}

type texBinding struct {
	target TextureTargets
	handle uint32
}

// Context owns a [Device] and caches the GL state it has set, so that
// redundant state changes are not issued. All resources in this package
// are created against a Context and must be used only from the
// goroutine that owns it.
type Context struct {
	// Dev is the device all calls are made through.
	Dev Device

	// Stats has the counts of issued and skipped state changes.
	Stats Stats

	program     uint32
	unit        int
	textures    [MaxTextureUnits]texBinding
	framebuffer uint32
	vao         uint32
	viewport    image.Point
	depthFunc   CompareFuncs
	caps        map[Capabilities]bool
}

// unknown marks a cached handle whose device state is not known.
const unknown = ^uint32(0)

// NewContext returns a new Context for the given device.
func NewContext(dev Device) *Context {
	ctx := &Context{Dev: dev}
	ctx.Invalidate()
	return ctx
}

// Invalidate forgets all cached state, so that the next call
// of each kind is issued to the device. Call this after code outside
// of the Context has changed GL state.
func (ctx *Context) Invalidate() {
	ctx.program = unknown
	ctx.unit = -1
	ctx.framebuffer = unknown
	ctx.vao = unknown
	for i := range ctx.textures {
		ctx.textures[i] = texBinding{handle: unknown}
	}
	ctx.viewport = image.Point{-1, -1}
	ctx.depthFunc = 0
	ctx.caps = map[Capabilities]bool{}
}

func (ctx *Context) skip(same bool) bool {
	if same {
		ctx.Stats.Skipped++
		return true
	}
	ctx.Stats.Issued++
	return false
}

// UseProgram makes the program current, unless it already is.
func (ctx *Context) UseProgram(program uint32) {
	if ctx.skip(ctx.program == program) {
		return
	}
	ctx.program = program
	ctx.Dev.UseProgram(program)
}

// Program returns the current program handle, or 0.
func (ctx *Context) Program() uint32 {
	if ctx.program == unknown {
		return 0
	}
	return ctx.program
}

// ActiveTexture selects the active texture unit, unless it already is.
func (ctx *Context) ActiveTexture(unit int) {
	if ctx.skip(ctx.unit == unit) {
		return
	}
	ctx.unit = unit
	ctx.Dev.ActiveTexture(unit)
}

// BindTexture binds the texture to target on the given unit,
// unless it is already bound there. The unit is made active when
// a bind is issued.
func (ctx *Context) BindTexture(unit int, target TextureTargets, texture uint32) {
	if unit < 0 || unit >= MaxTextureUnits {
		slog.Warn("gpu: texture unit out of range", "unit", unit)
		return
	}
	b := texBinding{target: target, handle: texture}
	if ctx.skip(ctx.textures[unit] == b) {
		return
	}
	ctx.ActiveTexture(unit)
	ctx.textures[unit] = b
	ctx.Dev.BindTexture(target, texture)
}

// forgetTexture clears any cached binding of the texture,
// which is called when it is deleted so that a recycled handle
// is bound again.
func (ctx *Context) forgetTexture(texture uint32) {
	for i, b := range ctx.textures {
		if b.handle == texture {
			ctx.textures[i] = texBinding{handle: unknown}
		}
	}
}

// BindFramebuffer binds the framebuffer (0 for the default one),
// unless it already is.
func (ctx *Context) BindFramebuffer(framebuffer uint32) {
	if ctx.skip(ctx.framebuffer == framebuffer) {
		return
	}
	ctx.framebuffer = framebuffer
	ctx.Dev.BindFramebuffer(framebuffer)
}

// BindVertexArray binds the vertex array, unless it already is.
func (ctx *Context) BindVertexArray(vao uint32) {
	if ctx.skip(ctx.vao == vao) {
		return
	}
	ctx.vao = vao
	ctx.Dev.BindVertexArray(vao)
}

// Viewport sets the viewport to (0,0)-size, unless it already is.
func (ctx *Context) Viewport(size image.Point) {
	if ctx.skip(ctx.viewport == size) {
		return
	}
	ctx.viewport = size
	ctx.Dev.Viewport(0, 0, size.X, size.Y)
}

// SetDepthFunc sets the depth test comparison, unless it already is.
func (ctx *Context) SetDepthFunc(f CompareFuncs) {
	if ctx.skip(ctx.depthFunc == f) {
		return
	}
	ctx.depthFunc = f
	ctx.Dev.DepthFunc(f)
}

// Enable enables the capability, unless it already is.
func (ctx *Context) Enable(c Capabilities) {
	on, known := ctx.caps[c]
	if ctx.skip(known && on) {
		return
	}
	ctx.caps[c] = true
	ctx.Dev.Enable(c)
}

// Disable disables the capability, unless it already is.
func (ctx *Context) Disable(c Capabilities) {
	on, known := ctx.caps[c]
	if ctx.skip(known && !on) {
		return
	}
	ctx.caps[c] = false
	ctx.Dev.Disable(c)
}

// CheckError returns the pending device error code, if any,
// draining any further queued codes.
func (ctx *Context) CheckError() uint32 {
	first := ctx.Dev.GetError()
	if first == NoError {
		return NoError
	}
	for range 8 {
		if ctx.Dev.GetError() == NoError {
			break
		}
	}
	return first
}
