// Copyright (c) 2026, The Glitter Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"image"
	"log/slog"
)

// Framebuffer is an offscreen render target, with textures and
// optionally a depth-stencil renderbuffer attached.
type Framebuffer struct {
	// Name of the framebuffer, for logs and errors.
	Name string

	ctx          *Context
	handle       uint32
	renderbuffer uint32
	rbSize       image.Point
	textures     []*Texture
}

// NewFramebuffer returns a new framebuffer with nothing attached.
func NewFramebuffer(ctx *Context, name string) *Framebuffer {
	fb := &Framebuffer{Name: name, ctx: ctx}
	fb.handle = ctx.Dev.GenFramebuffer()
	slog.Debug("gpu: created framebuffer", "framebuffer", name, "handle", fb.handle)
	return fb
}

// Bind makes the framebuffer the render target, unless it already is.
func (fb *Framebuffer) Bind() {
	fb.ctx.BindFramebuffer(fb.handle)
}

// AttachTexture attaches the 2D texture at the attachment point.
// The framebuffer does not own the texture, but resizes it on
// [Framebuffer.Resize].
func (fb *Framebuffer) AttachTexture(attachment Attachments, tex *Texture) {
	fb.Bind()
	fb.ctx.Dev.FramebufferTexture2D(attachment, Texture2D, tex.Handle())
	fb.textures = append(fb.textures, tex)
}

// AttachDepthStencil attaches a new depth-stencil renderbuffer
// of the given size.
func (fb *Framebuffer) AttachDepthStencil(size image.Point) {
	fb.Bind()
	dev := fb.ctx.Dev
	if fb.renderbuffer == 0 {
		fb.renderbuffer = dev.GenRenderbuffer()
	}
	dev.BindRenderbuffer(fb.renderbuffer)
	dev.RenderbufferStorage(Depth24Stencil8, size.X, size.Y)
	dev.FramebufferRenderbuffer(DepthStencilAttachment, fb.renderbuffer)
	fb.rbSize = size
}

// DisableColor turns off color reads and writes, for a depth-only target.
func (fb *Framebuffer) DisableColor() {
	fb.Bind()
	fb.ctx.Dev.SetColorBuffers(false)
}

// Check returns a [*FramebufferIncompleteError] if the framebuffer
// is not complete.
func (fb *Framebuffer) Check() error {
	fb.Bind()
	st := fb.ctx.Dev.CheckFramebufferStatus()
	if st != FramebufferComplete {
		return &FramebufferIncompleteError{Name: fb.Name, Status: st}
	}
	return nil
}

// Resize reallocates the attached textures and renderbuffer at the
// new size, keeping their handles and attachments.
func (fb *Framebuffer) Resize(size image.Point) error {
	for _, tex := range fb.textures {
		if err := tex.Resize(size); err != nil {
			return err
		}
	}
	if fb.renderbuffer != 0 && fb.rbSize != size {
		fb.ctx.Dev.BindRenderbuffer(fb.renderbuffer)
		fb.ctx.Dev.RenderbufferStorage(Depth24Stencil8, size.X, size.Y)
		fb.rbSize = size
	}
	return nil
}

// Handle returns the device handle, 0 once released.
func (fb *Framebuffer) Handle() uint32 {
	return fb.handle
}

// Release deletes the framebuffer and its renderbuffer, but not the
// attached textures. It is safe to call more than once.
func (fb *Framebuffer) Release() {
	if fb == nil {
		return
	}
	dev := fb.ctx.Dev
	if fb.renderbuffer != 0 {
		dev.DeleteRenderbuffer(fb.renderbuffer)
		fb.renderbuffer = 0
	}
	if fb.handle != 0 {
		if fb.ctx.framebuffer == fb.handle {
			fb.ctx.BindFramebuffer(0)
		}
		dev.DeleteFramebuffer(fb.handle)
		fb.handle = 0
	}
	fb.textures = nil
}
