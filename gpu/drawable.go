// Copyright (c) 2026, The Glitter Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"
	"glitter.dev/glitter/shape"
)

// Drawable is a mesh uploaded into device buffers together with the
// shader it is drawn with by default. Each [Drawable.Draw] issues
// one indexed draw call.
type Drawable struct {
	// Name is the mesh name, for logs.
	Name string

	// Shader is the default shader used to draw.
	Shader *Shader

	ctx      *Context
	vao      uint32
	vbo      uint32
	ebo      uint32
	elements int

	// size of the vertex buffer in bytes
	vertexSize int
}

// NewDrawable uploads the vertices and indices of the mesh into new
// buffers, and sets up a vertex array with the attributes of
// [shape.VertexLayout] at their fixed locations. The mesh is not
// retained. The shader must have a modelViewProjection uniform.
func NewDrawable(ctx *Context, ms *shape.Mesh, sh *Shader) (*Drawable, error) {
	if err := ms.Validate(); err != nil {
		return nil, err
	}
	if err := sh.Require("modelViewProjection"); err != nil {
		return nil, err
	}
	dev := ctx.Dev
	dw := &Drawable{Name: ms.Name, Shader: sh, ctx: ctx, elements: ms.NumElements()}
	dw.vao = dev.GenVertexArray()
	ctx.BindVertexArray(dw.vao)

	dw.vbo = dev.GenBuffer()
	dev.BindBuffer(ArrayBuffer, dw.vbo)
	vb := ms.VertexBytes()
	dw.vertexSize = len(vb)
	dev.BufferData(ArrayBuffer, vb)

	dw.ebo = dev.GenBuffer()
	dev.BindBuffer(ElementArrayBuffer, dw.ebo)
	dev.BufferData(ElementArrayBuffer, ms.IndexBytes())

	stride := shape.VertexFloats * 4
	for _, a := range shape.VertexLayout {
		dev.EnableVertexAttribArray(a.Location)
		dev.VertexAttribPointer(a.Location, a.Size, stride, a.Offset*4)
	}
	slog.Debug("gpu: created drawable", "mesh", ms.Name, "vertices", ms.NumVertices(), "elements", dw.elements)
	return dw, nil
}

// Draw draws the mesh with the given model, view and projection
// matrices, using the override shader instead of the default one if it
// is non-nil. The shader's textures are bound, and it is given the
// model, modelViewProjection, modelInverseTranspose and
// worldSpaceCameraPos uniforms, those it does not have being skipped.
func (dw *Drawable) Draw(model, view, projection mgl32.Mat4, override *Shader) {
	if dw.vao == 0 {
		return
	}
	sh := dw.Shader
	if override != nil {
		sh = override
	}
	sh.Activate()
	sh.BindTextures()
	dw.ctx.BindVertexArray(dw.vao)

	setOptional(sh, "model", model)
	sh.SetUniform("modelViewProjection", projection.Mul4(view).Mul4(model))
	setOptional(sh, "modelInverseTranspose", model.Inv().Transpose().Mat3())
	setOptional(sh, "worldSpaceCameraPos", view.Inv().Col(3).Vec3())
	dw.ctx.Dev.DrawElements(dw.elements)
}

// setOptional sets the uniform only if the shader has it.
func setOptional(sh *Shader, name string, v any) {
	if sh.HasUniform(name) {
		sh.SetUniform(name, v)
	}
}

// Elements returns the number of indices drawn.
func (dw *Drawable) Elements() int {
	return dw.elements
}

// ReadBack reads the vertex and index buffers back from the device.
func (dw *Drawable) ReadBack() (vertices, indices []byte) {
	dev := dw.ctx.Dev
	dw.ctx.BindVertexArray(dw.vao)
	vertices = make([]byte, dw.vertexSize)
	dev.BindBuffer(ArrayBuffer, dw.vbo)
	dev.GetBufferSubData(ArrayBuffer, 0, vertices)
	indices = make([]byte, 4*dw.elements)
	dev.GetBufferSubData(ElementArrayBuffer, 0, indices)
	return
}

// Release deletes the vertex array and both buffers. Each handle is
// zeroed after deletion, so it is safe to call more than once.
func (dw *Drawable) Release() {
	if dw == nil {
		return
	}
	dev := dw.ctx.Dev
	if dw.vbo != 0 {
		dev.DeleteBuffer(dw.vbo)
		dw.vbo = 0
	}
	if dw.ebo != 0 {
		dev.DeleteBuffer(dw.ebo)
		dw.ebo = 0
	}
	if dw.vao != 0 {
		if dw.ctx.vao == dw.vao {
			dw.ctx.vao = unknown
		}
		dev.DeleteVertexArray(dw.vao)
		dw.vao = 0
	}
}
