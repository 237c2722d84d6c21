// Copyright (c) 2026, The Glitter Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shape

import "github.com/go-gl/mathgl/mgl32"

// face is one side of a cube: its normal and tangent frame, and the
// two in-plane axes along which its corners are laid out.
type face struct {
	name                       string
	normal, tangent, bitangent mgl32.Vec3
	u, v                       mgl32.Vec3
}

// cubeFaces are in the order top, front, left, back, right, bottom.
// Corners of each face are centre - u - v, centre - u + v ... walking
// the texture coordinates (0,0), (0,1), (1,1), (1,0).
var cubeFaces = []face{
	{"top", mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}},
	{"front", mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, -1, 0}},
	{"left", mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, -1, 0}},
	{"back", mgl32.Vec3{0, 0, -1}, mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 1, 0}, mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, -1, 0}},
	{"right", mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, -1, 0}},
	{"bottom", mgl32.Vec3{0, -1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}},
}

// NewCube returns an axis-aligned cube with edge length size centered
// on the origin: 4 vertices and 2 counter-clockwise triangles per face,
// so each face has its own normal and tangent frame.
func NewCube(size float32) *Mesh {
	r := size / 2
	uvs := []mgl32.Vec2{{0, 0}, {0, 1}, {1, 1}, {1, 0}}
	// corner signs along (u, v) matching uvs
	signs := [][2]float32{{-1, -1}, {-1, 1}, {1, 1}, {1, -1}}
	vtxs := make([]Vertex, 0, 24)
	idxs := make([]uint32, 0, 36)
	for _, f := range cubeFaces {
		base := uint32(len(vtxs))
		centre := f.normal.Mul(r)
		for i, s := range signs {
			pos := centre.Add(f.u.Mul(s[0] * r)).Add(f.v.Mul(s[1] * r))
			vtxs = append(vtxs, Vertex{Position: pos, Normal: f.normal, Tangent: f.tangent, Bitangent: f.bitangent, TexCoord: uvs[i]})
		}
		idxs = append(idxs, base, base+1, base+2, base+2, base+3, base)
	}
	return NewMesh("cube", vtxs, idxs)
}

// NewPlane returns a square in the XZ plane with edge length size,
// centered on the origin and facing +Y.
func NewPlane(size float32) *Mesh {
	h := size / 2
	n := mgl32.Vec3{0, 1, 0}
	t := mgl32.Vec3{0, 0, -1}
	b := mgl32.Vec3{1, 0, 0}
	vtxs := []Vertex{
		{Position: mgl32.Vec3{-h, 0, -h}, Normal: n, Tangent: t, Bitangent: b, TexCoord: mgl32.Vec2{0, 0}},
		{Position: mgl32.Vec3{h, 0, -h}, Normal: n, Tangent: t, Bitangent: b, TexCoord: mgl32.Vec2{1, 0}},
		{Position: mgl32.Vec3{-h, 0, h}, Normal: n, Tangent: t, Bitangent: b, TexCoord: mgl32.Vec2{0, 1}},
		{Position: mgl32.Vec3{h, 0, h}, Normal: n, Tangent: t, Bitangent: b, TexCoord: mgl32.Vec2{1, 1}},
	}
	return NewMesh("plane", vtxs, []uint32{0, 2, 1, 2, 3, 1})
}

// SkyboxPositions returns the 36 positions (12 triangles, 3 floats each)
// of a unit cube seen from the inside, for drawing a cube-map skybox
// without indices.
func SkyboxPositions() []float32 {
	cube := NewCube(2)
	pos := make([]float32, 0, 3*len(cube.Indices))
	for t := 0; t < len(cube.Indices); t += 3 {
		// reversed winding so front faces point inward
		for _, k := range []int{0, 2, 1} {
			v := cube.Vertex(int(cube.Indices[t+k]))
			pos = append(pos, v.Position[:]...)
		}
	}
	return pos
}

// ScreenQuad returns the 6 vertices of two triangles covering clip space,
// each as a 2D position followed by a texture coordinate.
func ScreenQuad() []float32 {
	return []float32{
		-1, 1, 0, 1,
		-1, -1, 0, 0,
		1, -1, 1, 0,

		-1, 1, 0, 1,
		1, -1, 1, 0,
		1, 1, 1, 1,
	}
}
