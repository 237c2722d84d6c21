// Copyright (c) 2026, The Glitter Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shape

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// degenerate is the smallest UV-space triangle area treated as non-zero.
const degenerate = 1e-12

// ComputeTangents sets the tangent and bitangent of every vertex from
// the texture coordinates of the triangles using it. Per-triangle frames
// are accumulated per vertex, and the result is made orthonormal to the
// vertex normal. Vertices whose triangles have no usable texture
// coordinates get an arbitrary frame perpendicular to the normal.
func ComputeTangents(ms *Mesh) {
	n := ms.NumVertices()
	tan := make([]mgl32.Vec3, n)
	bit := make([]mgl32.Vec3, n)
	for t := 0; t+2 < len(ms.Indices); t += 3 {
		i0, i1, i2 := ms.Indices[t], ms.Indices[t+1], ms.Indices[t+2]
		v0, v1, v2 := ms.Vertex(int(i0)), ms.Vertex(int(i1)), ms.Vertex(int(i2))
		e1 := v1.Position.Sub(v0.Position)
		e2 := v2.Position.Sub(v0.Position)
		d1 := v1.TexCoord.Sub(v0.TexCoord)
		d2 := v2.TexCoord.Sub(v0.TexCoord)
		det := d1.X()*d2.Y() - d2.X()*d1.Y()
		if math32.Abs(det) < degenerate {
			continue
		}
		r := 1 / det
		ft := e1.Mul(d2.Y()).Sub(e2.Mul(d1.Y())).Mul(r)
		fb := e2.Mul(d1.X()).Sub(e1.Mul(d2.X())).Mul(r)
		for _, i := range []uint32{i0, i1, i2} {
			tan[i] = tan[i].Add(ft)
			bit[i] = bit[i].Add(fb)
		}
	}
	for i := range n {
		v := ms.Vertex(i)
		nrm := v.Normal
		if nrm.Len() == 0 {
			nrm = mgl32.Vec3{0, 1, 0}
		}
		nrm = nrm.Normalize()
		// Gram-Schmidt
		t := tan[i].Sub(nrm.Mul(nrm.Dot(tan[i])))
		if t.Len() < 1e-6 {
			t = Perpendicular(nrm)
		}
		t = t.Normalize()
		b := nrm.Cross(t)
		if b.Dot(bit[i]) < 0 {
			b = b.Mul(-1)
		}
		v.Tangent = t
		v.Bitangent = b
		ms.SetVertex(i, v)
	}
}

// Perpendicular returns a unit vector perpendicular to the unit vector n.
func Perpendicular(n mgl32.Vec3) mgl32.Vec3 {
	axis := mgl32.Vec3{1, 0, 0}
	if math32.Abs(n.X()) > 0.9 {
		axis = mgl32.Vec3{0, 1, 0}
	}
	return axis.Sub(n.Mul(n.Dot(axis))).Normalize()
}

// FaceNormal returns the unit normal of the counter-clockwise
// triangle a, b, c, or the zero vector for a degenerate triangle.
func FaceNormal(a, b, c mgl32.Vec3) mgl32.Vec3 {
	n := b.Sub(a).Cross(c.Sub(a))
	if n.Len() == 0 {
		return n
	}
	return n.Normalize()
}
