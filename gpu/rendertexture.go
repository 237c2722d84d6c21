// Copyright (c) 2026, The Glitter Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"image"

	"github.com/go-gl/mathgl/mgl32"
)

// RenderTexture is an offscreen color render target: a framebuffer
// with a color texture and a depth-stencil renderbuffer. The color
// texture is sampled by a later pass, which decouples the scene
// rendering from the window surface.
type RenderTexture struct {
	// Framebuffer is the render target.
	Framebuffer *Framebuffer

	// Color is the color attachment, in linear RGB.
	Color *Texture
}

// NewRenderTexture returns a new complete render texture of the given size.
// It returns a [*FramebufferIncompleteError] if the device does not
// accept the attachments.
func NewRenderTexture(ctx *Context, name string, size image.Point) (*RenderTexture, error) {
	color, err := NewTexture(ctx, size, LinearSpace, RGB, UnsignedByte, nil)
	if err != nil {
		return nil, err
	}
	color.Name = name + " color"
	rt := &RenderTexture{Color: color}
	rt.Framebuffer = NewFramebuffer(ctx, name)
	rt.Framebuffer.AttachTexture(ColorAttachment0, color)
	rt.Framebuffer.AttachDepthStencil(size)
	if err := rt.Framebuffer.Check(); err != nil {
		rt.Release()
		return nil, err
	}
	ctx.BindFramebuffer(0)
	return rt, nil
}

// Bind makes the render texture the render target.
func (rt *RenderTexture) Bind() {
	rt.Framebuffer.Bind()
}

// SetSize resizes the color texture and depth-stencil storage in place.
func (rt *RenderTexture) SetSize(size image.Point) error {
	return rt.Framebuffer.Resize(size)
}

// Size returns the current size.
func (rt *RenderTexture) Size() image.Point {
	return rt.Color.Size()
}

// Release releases the framebuffer and the color texture.
func (rt *RenderTexture) Release() {
	if rt == nil {
		return
	}
	rt.Framebuffer.Release()
	rt.Color.Release()
}

// DepthMap is a depth-only render target whose depth texture is sampled
// with depth comparison, as a shadow map.
type DepthMap struct {
	// Framebuffer is the render target.
	Framebuffer *Framebuffer

	// Depth is the depth attachment.
	Depth *Texture
}

// NewDepthMap returns a new complete depth map of the given size.
// Lookups outside of the map compare against the border depth of 1,
// and the comparison function is compare.
func NewDepthMap(ctx *Context, name string, size image.Point, compare CompareFuncs) (*DepthMap, error) {
	depth, err := NewTexture(ctx, size, LinearSpace, DepthComponent, Float, nil)
	if err != nil {
		return nil, err
	}
	depth.Name = name + " depth"
	depth.SetFiltering(Linear)
	depth.SetWrapMode(ClampToBorder)
	depth.SetBorder(mgl32.Vec4{1, 1, 1, 1})
	depth.SetCompare(compare)

	dm := &DepthMap{Depth: depth}
	dm.Framebuffer = NewFramebuffer(ctx, name)
	dm.Framebuffer.AttachTexture(DepthAttachment, depth)
	dm.Framebuffer.DisableColor()
	if err := dm.Framebuffer.Check(); err != nil {
		dm.Release()
		return nil, err
	}
	ctx.BindFramebuffer(0)
	return dm, nil
}

// Bind makes the depth map the render target.
func (dm *DepthMap) Bind() {
	dm.Framebuffer.Bind()
}

// Size returns the size of the map.
func (dm *DepthMap) Size() image.Point {
	return dm.Depth.Size()
}

// Release releases the framebuffer and the depth texture.
func (dm *DepthMap) Release() {
	if dm == nil {
		return
	}
	dm.Framebuffer.Release()
	dm.Depth.Release()
}
