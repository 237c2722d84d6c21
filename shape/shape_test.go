// Copyright (c) 2026, The Glitter Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shape

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-5

func TestCube(t *testing.T) {
	ms := NewCube(1)
	require.NoError(t, ms.Validate())
	assert.Equal(t, 24, ms.NumVertices())
	assert.Equal(t, 36, ms.NumElements())

	for tri := 0; tri < len(ms.Indices); tri += 3 {
		a := ms.Vertex(int(ms.Indices[tri]))
		b := ms.Vertex(int(ms.Indices[tri+1]))
		c := ms.Vertex(int(ms.Indices[tri+2]))
		e1 := b.Position.Sub(a.Position)
		e2 := c.Position.Sub(a.Position)
		for _, v := range []Vertex{a, b, c} {
			assert.InDelta(t, 1, v.Normal.Len(), eps)
			assert.InDelta(t, 0, v.Normal.Dot(e1), eps)
			assert.InDelta(t, 0, v.Normal.Dot(e2), eps)
			assert.InDelta(t, 0, v.Normal.Dot(v.Tangent), eps)
		}
		// counter-clockwise seen from outside
		assert.Greater(t, e1.Cross(e2).Dot(a.Normal), float32(0))
		// every face lies on the surface of the cube
		assert.InDelta(t, 0.5, a.Position.Dot(a.Normal), eps)
	}
}

func TestCubeSize(t *testing.T) {
	ms := NewCube(0.1)
	for i := range ms.NumVertices() {
		p := ms.Vertex(i).Position
		for _, c := range p {
			assert.InDelta(t, 0.05, math.Abs(float64(c)), eps)
		}
	}
}

func TestPlane(t *testing.T) {
	const size = 12
	ms := NewPlane(size)
	require.NoError(t, ms.Validate())
	assert.Equal(t, 4, ms.NumVertices())
	assert.Equal(t, 6, ms.NumElements())

	want := []mgl32.Vec3{{-6, 0, -6}, {6, 0, -6}, {-6, 0, 6}, {6, 0, 6}}
	for i, w := range want {
		assert.True(t, ms.Vertex(i).Position.ApproxEqual(w), "vertex %d", i)
	}
	up := mgl32.Vec3{0, 1, 0}
	for tri := 0; tri < 6; tri += 3 {
		a := ms.Vertex(int(ms.Indices[tri])).Position
		b := ms.Vertex(int(ms.Indices[tri+1])).Position
		c := ms.Vertex(int(ms.Indices[tri+2])).Position
		assert.True(t, FaceNormal(a, b, c).ApproxEqual(up), "triangle %d", tri/3)
	}
}

func TestBytes(t *testing.T) {
	ms := NewPlane(2)
	vb := ms.VertexBytes()
	require.Len(t, vb, 4*VertexFloats*4)
	for i, f := range ms.Vertices {
		assert.Equal(t, f, math.Float32frombits(binary.LittleEndian.Uint32(vb[4*i:])))
	}
	ib := ms.IndexBytes()
	require.Len(t, ib, 4*6)
	for i, idx := range ms.Indices {
		assert.Equal(t, idx, binary.LittleEndian.Uint32(ib[4*i:]))
	}
}

func TestValidate(t *testing.T) {
	ms := NewPlane(1)
	ms.Indices = append(ms.Indices, 0, 1, 9)
	assert.Error(t, ms.Validate())

	ms = NewPlane(1)
	ms.Indices = ms.Indices[:5]
	assert.Error(t, ms.Validate())

	ms = NewPlane(1)
	ms.Vertices = ms.Vertices[:len(ms.Vertices)-1]
	assert.Error(t, ms.Validate())
}

func TestComputeTangents(t *testing.T) {
	ms := NewPlane(4)
	for i := range ms.NumVertices() {
		v := ms.Vertex(i)
		v.Tangent = mgl32.Vec3{}
		v.Bitangent = mgl32.Vec3{}
		ms.SetVertex(i, v)
	}
	ComputeTangents(ms)
	for i := range ms.NumVertices() {
		got := ms.Vertex(i)
		assert.InDelta(t, 1, got.Tangent.Len(), eps)
		assert.InDelta(t, 0, got.Tangent.Dot(got.Normal), eps)
		assert.InDelta(t, 0, got.Bitangent.Dot(got.Normal), eps)
		// +U runs along +X and +V along +Z
		assert.True(t, got.Tangent.ApproxEqual(mgl32.Vec3{1, 0, 0}), "tangent %v", got.Tangent)
		assert.True(t, got.Bitangent.ApproxEqual(mgl32.Vec3{0, 0, 1}), "bitangent %v", got.Bitangent)
	}
}

func TestComputeTangentsDegenerate(t *testing.T) {
	v := Vertex{Normal: mgl32.Vec3{0, 0, 1}}
	a, b, c := v, v, v
	b.Position = mgl32.Vec3{1, 0, 0}
	c.Position = mgl32.Vec3{0, 1, 0}
	ms := NewMesh("flat", []Vertex{a, b, c}, []uint32{0, 1, 2})
	ComputeTangents(ms)
	for i := range 3 {
		got := ms.Vertex(i)
		assert.InDelta(t, 1, got.Tangent.Len(), eps)
		assert.InDelta(t, 0, got.Tangent.Dot(got.Normal), eps)
	}
}

func TestSkyboxAndQuad(t *testing.T) {
	sky := SkyboxPositions()
	assert.Len(t, sky, 36*3)
	for _, c := range sky {
		assert.InDelta(t, 1, math.Abs(float64(c)), eps)
	}
	assert.Len(t, ScreenQuad(), 6*4)
}

func TestAttributeByName(t *testing.T) {
	a, ok := AttributeByName("texcoord")
	require.True(t, ok)
	assert.Equal(t, uint32(4), a.Location)
	assert.Equal(t, 12, a.Offset)
	_, ok = AttributeByName("color")
	assert.False(t, ok)

	total := 0
	for _, a := range VertexLayout {
		total += a.Size
	}
	assert.Equal(t, VertexFloats, total)
}
