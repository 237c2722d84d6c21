// Copyright (c) 2026, The Glitter Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package shape provides CPU-side triangle meshes in the fixed vertex
// layout used by the renderer, and the procedural primitives
// (cube, plane, skybox, screen quad) built from it.
package shape

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Attribute describes one vertex attribute in [VertexLayout].
type Attribute struct {
	// Name is the vertex shader input name.
	Name string

	// Location is the fixed attribute index bound before linking.
	Location uint32

	// Size is the number of float components.
	Size int

	// Offset is the float offset within a vertex.
	Offset int
}

// VertexLayout is the interleaved per-vertex layout of every [Mesh]:
// position, normal, tangent, bitangent and texture coordinate.
var VertexLayout = []Attribute{
	{Name: "position", Location: 0, Size: 3, Offset: 0},
	{Name: "normal", Location: 1, Size: 3, Offset: 3},
	{Name: "tangent", Location: 2, Size: 3, Offset: 6},
	{Name: "bitangent", Location: 3, Size: 3, Offset: 9},
	{Name: "texcoord", Location: 4, Size: 2, Offset: 12},
}

// VertexFloats is the number of floats per vertex in [VertexLayout].
const VertexFloats = 14

// AttributeByName returns the attribute of [VertexLayout] with the given name.
func AttributeByName(name string) (Attribute, bool) {
	for _, a := range VertexLayout {
		if a.Name == name {
			return a, true
		}
	}
	return Attribute{}, false
}

// Vertex is one vertex of a [Mesh] in unpacked form.
type Vertex struct {
	Position  mgl32.Vec3
	Normal    mgl32.Vec3
	Tangent   mgl32.Vec3
	Bitangent mgl32.Vec3
	TexCoord  mgl32.Vec2
}

// appendTo appends the vertex to vtx in [VertexLayout] order.
func (v *Vertex) appendTo(vtx []float32) []float32 {
	vtx = append(vtx, v.Position[:]...)
	vtx = append(vtx, v.Normal[:]...)
	vtx = append(vtx, v.Tangent[:]...)
	vtx = append(vtx, v.Bitangent[:]...)
	return append(vtx, v.TexCoord[:]...)
}

// Mesh is an indexed triangle mesh with interleaved vertices
// in [VertexLayout]. It is treated as immutable once built.
type Mesh struct {
	// Name is the object or group name the mesh was built from.
	Name string

	// Vertices has [VertexFloats] floats per vertex.
	Vertices []float32

	// Indices has three vertex indexes per triangle.
	Indices []uint32
}

// NewMesh returns a mesh built from the given vertices and indices.
func NewMesh(name string, vtxs []Vertex, idxs []uint32) *Mesh {
	ms := &Mesh{Name: name, Indices: idxs}
	ms.Vertices = make([]float32, 0, len(vtxs)*VertexFloats)
	for i := range vtxs {
		ms.Vertices = vtxs[i].appendTo(ms.Vertices)
	}
	return ms
}

// NumVertices returns the number of vertices.
func (ms *Mesh) NumVertices() int {
	return len(ms.Vertices) / VertexFloats
}

// NumElements returns the number of indices, which is the element
// count of the indexed draw call.
func (ms *Mesh) NumElements() int {
	return len(ms.Indices)
}

// Vertex returns vertex i unpacked.
func (ms *Mesh) Vertex(i int) Vertex {
	f := ms.Vertices[i*VertexFloats : (i+1)*VertexFloats]
	return Vertex{
		Position:  mgl32.Vec3{f[0], f[1], f[2]},
		Normal:    mgl32.Vec3{f[3], f[4], f[5]},
		Tangent:   mgl32.Vec3{f[6], f[7], f[8]},
		Bitangent: mgl32.Vec3{f[9], f[10], f[11]},
		TexCoord:  mgl32.Vec2{f[12], f[13]},
	}
}

// SetVertex replaces vertex i.
func (ms *Mesh) SetVertex(i int, v Vertex) {
	var buf [VertexFloats]float32
	v.appendTo(buf[:0])
	copy(ms.Vertices[i*VertexFloats:], buf[:])
}

// Validate checks that the vertex data is a whole number of vertices,
// the indices form whole triangles, and every index is in range.
func (ms *Mesh) Validate() error {
	if len(ms.Vertices)%VertexFloats != 0 {
		return fmt.Errorf("shape: mesh %q has %d floats, not a multiple of %d", ms.Name, len(ms.Vertices), VertexFloats)
	}
	if len(ms.Indices)%3 != 0 {
		return fmt.Errorf("shape: mesh %q has %d indices, not whole triangles", ms.Name, len(ms.Indices))
	}
	n := uint32(ms.NumVertices())
	for i, idx := range ms.Indices {
		if idx >= n {
			return fmt.Errorf("shape: mesh %q index %d is %d, out of range of %d vertices", ms.Name, i, idx, n)
		}
	}
	return nil
}

// VertexBytes returns the vertex data as little-endian bytes,
// as uploaded into a vertex buffer.
func (ms *Mesh) VertexBytes() []byte {
	return Float32Bytes(ms.Vertices)
}

// IndexBytes returns the index data as little-endian bytes,
// as uploaded into an element buffer.
func (ms *Mesh) IndexBytes() []byte {
	b := make([]byte, 4*len(ms.Indices))
	for i, idx := range ms.Indices {
		binary.LittleEndian.PutUint32(b[4*i:], idx)
	}
	return b
}

// Float32Bytes returns the floats as little-endian bytes.
func Float32Bytes(fs []float32) []byte {
	b := make([]byte, 4*len(fs))
	for i, f := range fs {
		binary.LittleEndian.PutUint32(b[4*i:], math.Float32bits(f))
	}
	return b
}
