// Copyright (c) 2026, The Glitter Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"

	"glitter.dev/glitter/shape"
)

// VertexArray is an unindexed array of interleaved float vertices,
// drawn with a single array draw call. It is used for the skybox cube
// and the full-screen quad.
type VertexArray struct {
	ctx      *Context
	vao      uint32
	vbo      uint32
	vertices int
}

// Component is one float attribute of the vertices of a [VertexArray].
// The name must be in [shape.VertexLayout], and the attribute is bound
// at its location there.
type Component struct {
	Name string
	Size int
}

// NewVertexArray uploads the interleaved data, which has the given
// components per vertex. For example a 2D position followed by a
// texture coordinate is
//
//	NewVertexArray(ctx, data, Component{"position", 2}, Component{"texcoord", 2})
func NewVertexArray(ctx *Context, data []float32, comps ...Component) (*VertexArray, error) {
	stride := 0
	locs := make([]uint32, len(comps))
	for i, c := range comps {
		a, ok := shape.AttributeByName(c.Name)
		if !ok {
			return nil, fmt.Errorf("gpu: unknown vertex attribute %q", c.Name)
		}
		locs[i] = a.Location
		stride += c.Size
	}
	if stride == 0 || len(data)%stride != 0 {
		return nil, fmt.Errorf("gpu: vertex data of %d floats is not a multiple of %d", len(data), stride)
	}
	dev := ctx.Dev
	va := &VertexArray{ctx: ctx, vertices: len(data) / stride}
	va.vao = dev.GenVertexArray()
	ctx.BindVertexArray(va.vao)
	va.vbo = dev.GenBuffer()
	dev.BindBuffer(ArrayBuffer, va.vbo)
	dev.BufferData(ArrayBuffer, shape.Float32Bytes(data))
	off := 0
	for i, loc := range locs {
		dev.EnableVertexAttribArray(loc)
		dev.VertexAttribPointer(loc, comps[i].Size, stride*4, off*4)
		off += comps[i].Size
	}
	return va, nil
}

// Vertices returns the number of vertices.
func (va *VertexArray) Vertices() int {
	return va.vertices
}

// Draw draws all vertices as triangles with the current program.
func (va *VertexArray) Draw() {
	if va.vao == 0 {
		return
	}
	va.ctx.BindVertexArray(va.vao)
	va.ctx.Dev.DrawArrays(0, va.vertices)
}

// Release deletes the vertex array and its buffer.
// It is safe to call more than once.
func (va *VertexArray) Release() {
	if va == nil {
		return
	}
	if va.vbo != 0 {
		va.ctx.Dev.DeleteBuffer(va.vbo)
		va.vbo = 0
	}
	if va.vao != 0 {
		if va.ctx.vao == va.vao {
			va.ctx.vao = unknown
		}
		va.ctx.Dev.DeleteVertexArray(va.vao)
		va.vao = 0
	}
}
